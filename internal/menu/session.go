package menu

import (
	goerrors "errors"
	"sync"
	"time"

	"github.com/kapu/combot-go/internal/domain"
	"github.com/kapu/combot-go/internal/pagination"
	"github.com/kapu/combot-go/pkg/errors"
)

var (
	// ErrNotOwner rejects actions from anyone but the session's opener.
	ErrNotOwner = goerrors.New("session belongs to another user")
	// ErrClosed rejects actions against a closed or timed-out session.
	ErrClosed = goerrors.New("session is no longer active")
)

// Catalog is the read-only slice of the store a session validates against.
// Every action re-checks its references here so a category or starter that
// was deleted after the screen was rendered is caught, not crashed on.
type Catalog interface {
	Config() domain.Configuration
	GetCombos(category, starter string) []domain.Combo
	GetComboCount(category, starter string) int
	GetResources() (string, []domain.Resource)
}

// Session is the live navigation state bound to one displayed surface. It
// is owned by the user who opened it, times out after inactivity, and is
// never persisted: a restart simply invalidates all open menus.
type Session struct {
	catalog Catalog
	owner   string

	mu        sync.Mutex
	screen    Screen
	timeout   time.Duration
	timer     *time.Timer
	closed    bool
	onTimeout func()
}

func NewSession(catalog Catalog, owner string, initial Screen, timeout time.Duration) *Session {
	return &Session{
		catalog: catalog,
		owner:   owner,
		screen:  initial,
		timeout: timeout,
	}
}

func (s *Session) Owner() string { return s.owner }

func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

func (s *Session) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// StartTimeout arms the inactivity timer. The callback fires at most once,
// after the session is already marked closed, so a late user action can
// never transition a timed-out session.
func (s *Session) StartTimeout(onTimeout func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.onTimeout = onTimeout
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.timeout, s.expire)
}

func (s *Session) expire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.screen = Closed()
	callback := s.onTimeout
	s.mu.Unlock()

	if callback != nil {
		callback()
	}
}

// begin performs the ownership and liveness checks shared by every action
// and leaves the mutex held on success.
func (s *Session) begin(actor string) error {
	if actor != s.owner {
		return ErrNotOwner
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	return nil
}

// touchLocked resets the inactivity timer after a successful action.
func (s *Session) touchLocked() {
	if s.timer != nil {
		s.timer.Reset(s.timeout)
	}
}

// Close tears the session down on behalf of its owner. The timer is stopped
// so the timeout callback never fires afterwards.
func (s *Session) Close(actor string) error {
	if err := s.begin(actor); err != nil {
		return err
	}
	defer s.mu.Unlock()
	s.closed = true
	s.screen = Closed()
	if s.timer != nil {
		s.timer.Stop()
	}
	return nil
}

// Shutdown closes the session unconditionally, for process teardown.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.screen = Closed()
	if s.timer != nil {
		s.timer.Stop()
	}
}

// transition applies an unconditional screen change after the shared
// checks.
func (s *Session) transition(actor string, next Screen) (Screen, error) {
	if err := s.begin(actor); err != nil {
		return Screen{}, err
	}
	defer s.mu.Unlock()
	s.screen = next
	s.touchLocked()
	return s.screen, nil
}

// OpenCategory moves from the main menu to a category's starter list. The
// category is re-validated against live configuration.
func (s *Session) OpenCategory(actor, category string) (Screen, error) {
	if err := s.begin(actor); err != nil {
		return Screen{}, err
	}
	defer s.mu.Unlock()

	cfg := s.catalog.Config()
	if !cfg.HasCategory(category) {
		return Screen{}, errors.NewValidationError("category no longer exists", "category", category)
	}
	s.screen = StarterList(category)
	s.touchLocked()
	return s.screen, nil
}

// OpenResources moves to the resources submenu.
func (s *Session) OpenResources(actor string) (Screen, error) {
	return s.transition(actor, ResourceMenu())
}

// OpenResourceList moves from the resources submenu to the resource list.
func (s *Session) OpenResourceList(actor string) (Screen, error) {
	return s.transition(actor, ResourceList())
}

// OpenPlayerList moves to the notable-players list. fromMain records which
// parent "back" should return to.
func (s *Session) OpenPlayerList(actor string, fromMain bool) (Screen, error) {
	return s.transition(actor, PlayerList(fromMain))
}

// OpenPlayerDetail drills into one player by index on the current page.
func (s *Session) OpenPlayerDetail(actor string, index int) (Screen, error) {
	if err := s.begin(actor); err != nil {
		return Screen{}, err
	}
	defer s.mu.Unlock()

	cfg := s.catalog.Config()
	if index < 0 || index >= len(cfg.NotablePlayers) {
		return Screen{}, errors.NewValidationError("player no longer exists", "index", index)
	}
	fromMain := s.screen.FromMain
	s.screen = PlayerDetail(index, fromMain)
	s.touchLocked()
	return s.screen, nil
}

// StepPlayer moves the player detail forward or backward, clamping at the
// ends, and reports whether the index changed.
func (s *Session) StepPlayer(actor string, delta int) (Screen, bool, error) {
	if err := s.begin(actor); err != nil {
		return Screen{}, false, err
	}
	defer s.mu.Unlock()

	if s.screen.Kind != KindPlayerDetail {
		return s.screen, false, nil
	}
	count := len(s.catalog.Config().NotablePlayers)
	next := s.screen.PlayerIndex + delta
	if next < 0 || next >= count {
		s.touchLocked()
		return s.screen, false, nil
	}
	s.screen.PlayerIndex = next
	s.touchLocked()
	return s.screen, true, nil
}

// Touch resets the inactivity timer for actions that reveal data without
// changing the screen.
func (s *Session) Touch(actor string) error {
	if err := s.begin(actor); err != nil {
		return err
	}
	defer s.mu.Unlock()
	s.touchLocked()
	return nil
}

// OpenEnderInfo shows the configured ender info section.
func (s *Session) OpenEnderInfo(actor string) (Screen, error) {
	return s.transition(actor, EnderInfo())
}

// OpenRoutesInfo shows the configured interesting-routes section.
func (s *Session) OpenRoutesInfo(actor string) (Screen, error) {
	return s.transition(actor, RoutesInfo())
}

// Back returns to the current screen's parent. The main menu is always
// rebuilt from live configuration, and backing out of a player detail lands
// on the list page containing the player just viewed.
func (s *Session) Back(actor string) (Screen, error) {
	if err := s.begin(actor); err != nil {
		return Screen{}, err
	}
	defer s.mu.Unlock()

	switch s.screen.Kind {
	case KindStarterList, KindResourceMenu, KindEnderInfo, KindRoutesInfo:
		s.screen = MainMenu()
	case KindResourceList:
		s.screen = ResourceMenu()
	case KindPlayerList:
		if s.screen.FromMain {
			s.screen = MainMenu()
		} else {
			s.screen = ResourceMenu()
		}
	case KindPlayerDetail:
		cfg := s.catalog.Config()
		pager := pagination.New(len(cfg.NotablePlayers), cfg.PageSizes.Players)
		list := PlayerList(s.screen.FromMain)
		list.Page = pager.PageFor(s.screen.PlayerIndex)
		s.screen = list
	case KindComboList:
		// A combo list is its own surface with no parent menu. Backing
		// out of one closes it.
		s.closed = true
		s.screen = Closed()
		if s.timer != nil {
			s.timer.Stop()
		}
		return s.screen, nil
	default:
		s.screen = MainMenu()
	}
	s.touchLocked()
	return s.screen, nil
}

// Paginate moves the current list screen by delta pages and reports whether
// a redraw is needed. Boundary navigation is acknowledged silently.
func (s *Session) Paginate(actor string, delta int) (Screen, bool, error) {
	if err := s.begin(actor); err != nil {
		return Screen{}, false, err
	}
	defer s.mu.Unlock()

	count, perPage, ok := s.pageShapeLocked()
	if !ok {
		return s.screen, false, nil
	}

	pager := pagination.New(count, perPage)
	pager.SetPage(s.screen.Page)
	changed := false
	if delta > 0 {
		changed = pager.Next()
	} else if delta < 0 {
		changed = pager.Prev()
	}
	s.screen.Page = pager.Page()
	s.touchLocked()
	return s.screen, changed, nil
}

// pageShapeLocked resolves the item count and page size for the current
// screen's list, if it has one.
func (s *Session) pageShapeLocked() (count, perPage int, ok bool) {
	cfg := s.catalog.Config()
	switch s.screen.Kind {
	case KindStarterList:
		return len(cfg.StartersFor(s.screen.Category)), cfg.PageSizes.Starters, true
	case KindComboList:
		return len(s.catalog.GetCombos(s.screen.Category, s.screen.Starter)), cfg.PageSizes.Combos, true
	case KindResourceList:
		_, resources := s.catalog.GetResources()
		return len(resources), cfg.PageSizes.Resources, true
	case KindPlayerList:
		return len(cfg.NotablePlayers), cfg.PageSizes.Players, true
	default:
		return 0, 0, false
	}
}

// ValidateStarter re-checks that a starter still exists before a drill-down
// into its combos.
func (s *Session) ValidateStarter(actor, category, starter string) error {
	if err := s.begin(actor); err != nil {
		return err
	}
	defer s.mu.Unlock()

	cfg := s.catalog.Config()
	if !cfg.HasCategory(category) {
		return errors.NewValidationError("category no longer exists", "category", category)
	}
	if !cfg.HasStarter(category, starter) {
		return errors.NewValidationError("starter no longer exists", "starter", starter)
	}
	s.touchLocked()
	return nil
}
