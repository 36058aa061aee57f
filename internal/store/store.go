// Package store owns the persistent JSON document: the configuration, the
// per-category combo data and the general resource bucket. All access goes
// through a single mutex; writes are debounced and atomic.
package store

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/combot-go/internal/constants"
	"github.com/kapu/combot-go/internal/domain"
	"github.com/kapu/combot-go/pkg/errors"
)

const defaultResourceNote = "Additional resources"

// StarterEntry is the persisted value for one starter: a free-text note and
// the ordered combo list.
type StarterEntry struct {
	Note   string         `json:"note"`
	Combos []domain.Combo `json:"combos"`
}

// Stats is a point-in-time summary of the document, used by the admin
// overview embed.
type Stats struct {
	Categories  int
	Starters    int
	Combos      int
	Resources   int
	Players     int
	LastSavedAt time.Time
	Dirty       bool
}

// Store is the single owner of the on-disk document. Mutations mark the
// document dirty and schedule a debounced save; Save(true) flushes
// immediately.
type Store struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	config    domain.Configuration
	comboData map[string]map[string]StarterEntry
	resources domain.ResourceBucket
	dirty     bool
	lastSave  time.Time
	timer     *time.Timer
	loaded    bool
}

func New(path string, logger *zap.Logger) *Store {
	return &Store{
		path:     path,
		debounce: constants.Store.SaveDebounce,
		logger:   logger,
		resources: domain.ResourceBucket{
			Note:      defaultResourceNote,
			Resources: []domain.Resource{},
		},
		comboData: map[string]map[string]StarterEntry{},
	}
}

// Load reads the document from disk. A missing file starts a fresh document;
// a file that is not valid JSON is quarantined next to the original and the
// bot starts fresh rather than refusing to boot.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := map[string]json.RawMessage{}

	content, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		s.logger.Info("creating new data file", zap.String("path", s.path))
	case err != nil:
		s.logger.Error("failed to read data file, starting fresh",
			zap.String("path", s.path), zap.Error(err))
	default:
		if jsonErr := json.Unmarshal(content, &raw); jsonErr != nil {
			quarantine := s.path + constants.Store.CorruptedSuffix
			if renameErr := os.Rename(s.path, quarantine); renameErr != nil {
				s.logger.Error("failed to quarantine corrupted data file",
					zap.String("path", s.path), zap.Error(renameErr))
			} else {
				s.logger.Warn("corrupted data file backed up",
					zap.String("path", s.path),
					zap.String("backup", quarantine),
					zap.Error(jsonErr))
			}
			raw = map[string]json.RawMessage{}
		} else {
			s.logger.Info("loaded existing data", zap.String("path", s.path))
		}
	}

	cfg, cfgErr := domain.ConfigurationFromDocument(raw["config"])
	if cfgErr != nil {
		s.logger.Error("invalid configuration section, using defaults", zap.Error(cfgErr))
		cfg = domain.DefaultConfiguration()
		cfg.Reconcile()
	}
	s.config = cfg

	s.comboData = map[string]map[string]StarterEntry{}
	for _, category := range s.config.ComboCategories {
		entries := map[string]StarterEntry{}
		if blob, ok := raw[category]; ok {
			if err := json.Unmarshal(blob, &entries); err != nil {
				s.logger.Warn("invalid combo data for category, discarding",
					zap.String("category", category), zap.Error(err))
				entries = map[string]StarterEntry{}
			}
		}
		s.comboData[category] = entries
	}

	s.resources = domain.ResourceBucket{Note: defaultResourceNote, Resources: []domain.Resource{}}
	if blob, ok := raw["RESOURCES"]; ok {
		var bucket domain.ResourceBucket
		if err := json.Unmarshal(blob, &bucket); err != nil {
			s.logger.Warn("invalid resources section, discarding", zap.Error(err))
		} else {
			if bucket.Resources == nil {
				bucket.Resources = []domain.Resource{}
			}
			if bucket.Note == "" {
				bucket.Note = defaultResourceNote
			}
			s.resources = bucket
		}
	}

	s.loaded = true
	s.dirty = false
	s.logger.Info("data loaded",
		zap.String("character", s.config.CharacterName),
		zap.Int("categories", len(s.config.ComboCategories)),
		zap.Int("resources", len(s.resources.Resources)),
		zap.Int("players", len(s.config.NotablePlayers)))
	return nil
}

// Save persists the document. When force is false, a clean document is a
// no-op and a save inside the debounce window is deferred to a single
// pending timer, coalescing bursts of mutations into one write.
func (s *Store) Save(force bool) error {
	s.mu.Lock()

	if !force && !s.dirty {
		s.mu.Unlock()
		return nil
	}
	if !force && time.Since(s.lastSave) < s.debounce {
		if s.timer == nil {
			s.timer = time.AfterFunc(s.debounce, s.delayedSave)
		}
		s.mu.Unlock()
		return nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	err := s.writeLocked()
	s.mu.Unlock()
	return err
}

func (s *Store) delayedSave() {
	s.mu.Lock()
	s.timer = nil
	s.mu.Unlock()
	if err := s.Save(false); err != nil {
		s.logger.Error("delayed save failed", zap.Error(err))
	}
}

// writeLocked marshals the document and replaces the file atomically via a
// temp file rename. The dirty flag survives a failed write so the data is
// retried on the next save.
func (s *Store) writeLocked() error {
	doc := map[string]any{
		"RESOURCES": s.resources,
	}
	configDoc, err := s.config.ToDocument()
	if err != nil {
		return errors.NewStorageError("failed to serialize configuration", "save", s.path, err)
	}
	doc["config"] = configDoc
	for category, entries := range s.comboData {
		doc[category] = entries
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to serialize data document", "save", s.path, err)
	}

	tempPath := s.path + constants.Store.TempSuffix
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		os.Remove(tempPath)
		return errors.NewStorageError("failed to write temp file", "save", s.path, err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return errors.NewStorageError("failed to replace data file", "save", s.path, err)
	}

	s.dirty = false
	s.lastSave = time.Now()
	s.logger.Info("data saved", zap.String("path", s.path))
	return nil
}

// Cleanup cancels any pending debounced save and flushes to disk. Called on
// shutdown.
func (s *Store) Cleanup() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	return s.Save(true)
}

// markDirtyLocked flags the document and arms the debounce timer if no save
// is already pending. Callers hold the mutex.
func (s *Store) markDirtyLocked() {
	s.dirty = true
	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, s.delayedSave)
	}
}

// Config returns a deep copy of the live configuration.
func (s *Store) Config() domain.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Clone()
}

// UpdateConfig lets the caller mutate the configuration under the store's
// lock. The invariant between categories and starters is re-established
// afterwards and the change is scheduled for saving.
func (s *Store) UpdateConfig(mutate func(*domain.Configuration)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.config)
	s.config.Reconcile()
	s.syncCategoriesLocked()
	s.markDirtyLocked()
}

// syncCategoriesLocked makes sure every configured category has a combo-data
// bucket.
func (s *Store) syncCategoriesLocked() {
	for _, category := range s.config.ComboCategories {
		if _, ok := s.comboData[category]; !ok {
			s.comboData[category] = map[string]StarterEntry{}
		}
	}
}

// GetCombos returns the validated combos for a category/starter pair.
// Malformed entries are logged and skipped rather than failing the read.
func (s *Store) GetCombos(category, starter string) []domain.Combo {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.comboData[category][starter]
	if !ok {
		return nil
	}
	combos := make([]domain.Combo, 0, len(entry.Combos))
	for _, c := range entry.Combos {
		valid, err := domain.NewCombo(c.Notation, c.Notes, c.Link)
		if err != nil {
			s.logger.Warn("invalid combo skipped",
				zap.String("category", category),
				zap.String("starter", starter),
				zap.Error(err))
			continue
		}
		combos = append(combos, valid)
	}
	return combos
}

func (s *Store) GetComboCount(category, starter string) int {
	return len(s.GetCombos(category, starter))
}

// StarterNote returns the free-text note stored with a starter's combo set.
func (s *Store) StarterNote(category, starter string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comboData[category][starter].Note
}

// UpdateCombos replaces the combo set for a category/starter pair. Invalid
// combos are dropped with a warning; an empty note gets a generated one.
func (s *Store) UpdateCombos(category, starter string, combos []domain.Combo, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comboData[category]; !ok {
		s.comboData[category] = map[string]StarterEntry{}
	}

	validated := make([]domain.Combo, 0, len(combos))
	for _, c := range combos {
		valid, err := domain.NewCombo(c.Notation, c.Notes, c.Link)
		if err != nil {
			s.logger.Warn("invalid combo skipped", zap.Error(err))
			continue
		}
		validated = append(validated, valid)
	}

	if note == "" {
		note = "Combos for " + starter
	}
	s.comboData[category][starter] = StarterEntry{Note: note, Combos: validated}
	s.markDirtyLocked()
	s.logger.Info("updated combos",
		zap.String("category", category),
		zap.String("starter", starter),
		zap.Int("count", len(validated)))
}

// GetResources returns the resource bucket note and its validated entries.
func (s *Store) GetResources() (string, []domain.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resources := make([]domain.Resource, 0, len(s.resources.Resources))
	for _, r := range s.resources.Resources {
		valid, err := domain.NewResource(r.Name, r.Type, r.Link, r.Credit)
		if err != nil {
			s.logger.Warn("invalid resource skipped", zap.Error(err))
			continue
		}
		resources = append(resources, valid)
	}
	return s.resources.Note, resources
}

func (s *Store) AddResource(resource domain.Resource) error {
	valid, err := domain.NewResource(resource.Name, resource.Type, resource.Link, resource.Credit)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources.Resources = append(s.resources.Resources, valid)
	s.markDirtyLocked()
	s.logger.Info("added resource", zap.String("name", valid.Name))
	return nil
}

// AddStarter appends a starter to a category's list, reporting whether it
// was actually added.
func (s *Store) AddStarter(category, starter string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.Starters == nil {
		s.config.Starters = map[string][]string{}
	}
	for _, existing := range s.config.Starters[category] {
		if existing == starter {
			return false
		}
	}
	s.config.Starters[category] = append(s.config.Starters[category], starter)
	s.markDirtyLocked()
	s.logger.Info("added starter",
		zap.String("category", category), zap.String("starter", starter))
	return true
}

// RemoveStarter removes a starter from the configuration and deletes its
// combo data, reporting each removal independently so the caller can tell a
// missing starter from a config-only one.
func (s *Store) RemoveStarter(category, starter string) (removedConfig, removedData bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	starters := s.config.Starters[category]
	for i, existing := range starters {
		if existing == starter {
			s.config.Starters[category] = append(starters[:i], starters[i+1:]...)
			removedConfig = true
			break
		}
	}
	if _, ok := s.comboData[category][starter]; ok {
		delete(s.comboData[category], starter)
		removedData = true
	}

	if removedConfig || removedData {
		s.markDirtyLocked()
		s.logger.Info("removed starter",
			zap.String("category", category),
			zap.String("starter", starter),
			zap.Bool("config", removedConfig),
			zap.Bool("data", removedData))
	}
	return removedConfig, removedData
}

// AddCategory registers a new combo category with an empty starter list,
// reporting whether the name was new.
func (s *Store) AddCategory(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.HasCategory(name) {
		return false
	}
	s.config.ComboCategories = append(s.config.ComboCategories, name)
	s.config.Starters[name] = []string{}
	s.comboData[name] = map[string]StarterEntry{}
	s.markDirtyLocked()
	s.logger.Info("added category", zap.String("category", name))
	return true
}

// AddPlayer appends a notable player, rejecting case-insensitive duplicate
// names.
func (s *Store) AddPlayer(player domain.Player) error {
	valid, err := domain.NewPlayer(player.Name, player.RegionEmoji, player.SocialLink,
		player.ImageURL, player.DescriptionLines, player.ColorFooter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.config.FindPlayer(valid.Name); exists {
		return errors.NewValidationError("player already exists", "name", valid.Name)
	}
	s.config.NotablePlayers = append(s.config.NotablePlayers, valid)
	s.markDirtyLocked()
	s.logger.Info("added player", zap.String("name", valid.Name))
	return nil
}

// RemovePlayer removes a player by case-insensitive name, reporting whether
// anyone was removed.
func (s *Store) RemovePlayer(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.config.NotablePlayers[:0]
	removed := false
	for _, p := range s.config.NotablePlayers {
		if strings.EqualFold(p.Name, name) {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	s.config.NotablePlayers = kept

	if removed {
		s.markDirtyLocked()
		s.logger.Info("removed player", zap.String("name", name))
	}
	return removed
}

// TotalCombos counts every stored combo across all categories.
func (s *Store) TotalCombos() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, entries := range s.comboData {
		for _, entry := range entries {
			total += len(entry.Combos)
		}
	}
	return total
}

// Stats summarizes the document for the admin overview.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	combos := 0
	for _, entries := range s.comboData {
		for _, entry := range entries {
			combos += len(entry.Combos)
		}
	}
	return Stats{
		Categories:  len(s.config.ComboCategories),
		Starters:    s.config.TotalStarters(),
		Combos:      combos,
		Resources:   len(s.resources.Resources),
		Players:     len(s.config.NotablePlayers),
		LastSavedAt: s.lastSave,
		Dirty:       s.dirty,
	}
}

