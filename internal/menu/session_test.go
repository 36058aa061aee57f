package menu

import (
	goerrors "errors"
	"testing"
	"time"

	"github.com/kapu/combot-go/internal/domain"
)

type fakeCatalog struct {
	config    domain.Configuration
	combos    map[string][]domain.Combo
	resources []domain.Resource
}

func (f *fakeCatalog) Config() domain.Configuration { return f.config.Clone() }

func (f *fakeCatalog) GetCombos(category, starter string) []domain.Combo {
	return f.combos[category+"/"+starter]
}

func (f *fakeCatalog) GetComboCount(category, starter string) int {
	return len(f.GetCombos(category, starter))
}

func (f *fakeCatalog) GetResources() (string, []domain.Resource) {
	return "note", f.resources
}

func newFakeCatalog() *fakeCatalog {
	cfg := domain.DefaultConfiguration()
	cfg.Starters["Midscreen"] = []string{"5K", "2D", "c.S"}
	cfg.NotablePlayers = make([]domain.Player, 12)
	for i := range cfg.NotablePlayers {
		cfg.NotablePlayers[i] = domain.Player{Name: string(rune('A' + i))}
	}
	return &fakeCatalog{
		config: cfg,
		combos: map[string][]domain.Combo{
			"Midscreen/5K": {
				{Notation: "5K > 2D", Notes: "easy", Link: "https://youtu.be/aaa111bbb22"},
			},
		},
	}
}

func newTestSession(catalog Catalog) *Session {
	return NewSession(catalog, "owner", MainMenu(), time.Minute)
}

func TestOwnershipRejected(t *testing.T) {
	s := newTestSession(newFakeCatalog())
	if _, err := s.OpenCategory("intruder", "Midscreen"); !goerrors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if s.Screen().Kind != KindMainMenu {
		t.Error("rejected action must not change state")
	}
}

func TestClosedSessionRejectsActions(t *testing.T) {
	s := newTestSession(newFakeCatalog())
	if err := s.Close("owner"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := s.OpenCategory("owner", "Midscreen"); !goerrors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if s.Screen().Kind != KindClosed {
		t.Errorf("screen = %v", s.Screen().Kind)
	}
}

func TestOpenCategoryValidatesLiveConfig(t *testing.T) {
	catalog := newFakeCatalog()
	s := newTestSession(catalog)
	if _, err := s.OpenCategory("owner", "Deleted Category"); err == nil {
		t.Fatal("expected stale category to be rejected")
	}
	screen, err := s.OpenCategory("owner", "Midscreen")
	if err != nil {
		t.Fatalf("OpenCategory failed: %v", err)
	}
	if screen.Kind != KindStarterList || screen.Category != "Midscreen" || screen.Page != 0 {
		t.Errorf("screen = %+v", screen)
	}
}

func TestComboListOpensAsSeparateSession(t *testing.T) {
	catalog := newFakeCatalog()
	parent := newTestSession(catalog)
	if _, err := parent.OpenCategory("owner", "Midscreen"); err != nil {
		t.Fatal(err)
	}
	if err := parent.ValidateStarter("owner", "Midscreen", "5K"); err != nil {
		t.Fatalf("ValidateStarter failed: %v", err)
	}

	child := NewSession(catalog, "owner", ComboList("Midscreen", "5K"), time.Minute)
	if child.Screen().Kind != KindComboList {
		t.Errorf("child screen = %v", child.Screen().Kind)
	}
	if got := parent.Screen(); got.Kind != KindStarterList || got.Category != "Midscreen" {
		t.Errorf("parent must keep its starter list, got %+v", got)
	}
}

func TestBackTransitions(t *testing.T) {
	catalog := newFakeCatalog()

	s := newTestSession(catalog)
	s.OpenCategory("owner", "Midscreen")
	if screen, _ := s.Back("owner"); screen.Kind != KindMainMenu {
		t.Errorf("back from starter list → %v", screen.Kind)
	}

	s.OpenResources("owner")
	s.OpenResourceList("owner")
	if screen, _ := s.Back("owner"); screen.Kind != KindResourceMenu {
		t.Errorf("back from resource list → %v", screen.Kind)
	}

	s.OpenPlayerList("owner", false)
	if screen, _ := s.Back("owner"); screen.Kind != KindResourceMenu {
		t.Errorf("back from players (via resources) → %v", screen.Kind)
	}

	s.Back("owner")
	s.OpenPlayerList("owner", true)
	if screen, _ := s.Back("owner"); screen.Kind != KindMainMenu {
		t.Errorf("back from players (via main shortcut) → %v", screen.Kind)
	}
}

func TestBackFromComboListClosesSession(t *testing.T) {
	catalog := newFakeCatalog()
	s := NewSession(catalog, "owner", ComboList("Midscreen", "5K"), time.Minute)

	screen, err := s.Back("owner")
	if err != nil {
		t.Fatal(err)
	}
	if screen.Kind != KindClosed {
		t.Errorf("back from combo list → %v, want closed", screen.Kind)
	}
	if _, err := s.OpenCategory("owner", "Midscreen"); err != ErrClosed {
		t.Errorf("closed session should reject further actions, got %v", err)
	}
}

func TestBackFromPlayerDetailLandsOnPlayersPage(t *testing.T) {
	catalog := newFakeCatalog() // 12 players, page size 5
	s := newTestSession(catalog)
	s.OpenPlayerList("owner", false)
	if _, err := s.OpenPlayerDetail("owner", 7); err != nil {
		t.Fatalf("OpenPlayerDetail failed: %v", err)
	}

	screen, err := s.Back("owner")
	if err != nil {
		t.Fatal(err)
	}
	if screen.Kind != KindPlayerList || screen.Page != 1 {
		t.Errorf("back from player 7 should land on page 1, got %+v", screen)
	}
}

func TestOpenPlayerDetailValidatesIndex(t *testing.T) {
	s := newTestSession(newFakeCatalog())
	s.OpenPlayerList("owner", false)
	if _, err := s.OpenPlayerDetail("owner", 99); err == nil {
		t.Error("expected out-of-range player index to be rejected")
	}
}

func TestStepPlayerClampsAtEnds(t *testing.T) {
	s := newTestSession(newFakeCatalog())
	s.OpenPlayerList("owner", false)
	s.OpenPlayerDetail("owner", 0)

	if _, changed, _ := s.StepPlayer("owner", -1); changed {
		t.Error("stepping before the first player should not change the index")
	}
	screen, changed, _ := s.StepPlayer("owner", 1)
	if !changed || screen.PlayerIndex != 1 {
		t.Errorf("step forward = %+v changed=%v", screen, changed)
	}
	s.OpenPlayerDetail("owner", 11)
	if _, changed, _ := s.StepPlayer("owner", 1); changed {
		t.Error("stepping past the last player should not change the index")
	}
}

func TestPaginateBoundary(t *testing.T) {
	catalog := newFakeCatalog() // 3 starters, page size 10: one page
	s := newTestSession(catalog)
	s.OpenCategory("owner", "Midscreen")

	if _, changed, err := s.Paginate("owner", 1); err != nil || changed {
		t.Errorf("next on single page: changed=%v err=%v", changed, err)
	}

	catalog.config.Starters["Midscreen"] = []string{
		"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k",
	}
	screen, changed, err := s.Paginate("owner", 1)
	if err != nil || !changed || screen.Page != 1 {
		t.Errorf("next onto page 1: screen=%+v changed=%v err=%v", screen, changed, err)
	}
	if _, changed, _ = s.Paginate("owner", -1); !changed {
		t.Error("prev from page 1 should change")
	}
}

func TestTimeoutClosesSession(t *testing.T) {
	s := NewSession(newFakeCatalog(), "owner", MainMenu(), 10*time.Millisecond)
	timedOut := make(chan struct{})
	s.StartTimeout(func() { close(timedOut) })

	select {
	case <-timedOut:
	case <-time.After(time.Second):
		t.Fatal("timeout callback never fired")
	}
	if !s.IsClosed() {
		t.Error("session should be closed after timeout")
	}
	if _, err := s.Back("owner"); !goerrors.Is(err, ErrClosed) {
		t.Errorf("post-timeout action error = %v", err)
	}
}

func TestCloseStopsTimeoutCallback(t *testing.T) {
	s := NewSession(newFakeCatalog(), "owner", MainMenu(), 20*time.Millisecond)
	fired := make(chan struct{}, 1)
	s.StartTimeout(func() { fired <- struct{}{} })

	if err := s.Close("owner"); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fired:
		t.Error("timeout callback fired after explicit close")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestActionsResetTimeout(t *testing.T) {
	s := NewSession(newFakeCatalog(), "owner", MainMenu(), 50*time.Millisecond)
	fired := make(chan struct{}, 1)
	s.StartTimeout(func() { fired <- struct{}{} })

	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		if _, err := s.OpenResources("owner"); err != nil {
			t.Fatalf("action %d failed: %v", i, err)
		}
	}
	select {
	case <-fired:
		t.Error("timeout fired despite activity")
	default:
	}
}
