package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/combot-go/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	s := New(path, zap.NewNop())
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s
}

func TestLoadMissingFileStartsFresh(t *testing.T) {
	s := newTestStore(t)
	cfg := s.Config()
	if cfg.CharacterName != "Character" {
		t.Errorf("character name = %q", cfg.CharacterName)
	}
	note, resources := s.GetResources()
	if note != "Additional resources" || len(resources) != 0 {
		t.Errorf("fresh resources = %q, %v", note, resources)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := New(path, zap.NewNop())
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s.AddStarter("Midscreen", "5K")
	s.UpdateCombos("Midscreen", "5K", []domain.Combo{
		{Notation: "5K > 2D", Notes: "basic", Link: "https://youtu.be/abc123defgh"},
	}, "")
	if err := s.AddResource(domain.Resource{Name: "Dustloop", Type: "Wiki", Link: "https://dustloop.com"}); err != nil {
		t.Fatalf("AddResource failed: %v", err)
	}
	if err := s.Save(true); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}

	reloaded := New(path, zap.NewNop())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	combos := reloaded.GetCombos("Midscreen", "5K")
	if len(combos) != 1 || combos[0].Notation != "5K > 2D" {
		t.Errorf("reloaded combos = %v", combos)
	}
	if note := reloaded.StarterNote("Midscreen", "5K"); note != "Combos for 5K" {
		t.Errorf("generated note = %q", note)
	}
	_, resources := reloaded.GetResources()
	if len(resources) != 1 || resources[0].Name != "Dustloop" {
		t.Errorf("reloaded resources = %v", resources)
	}
}

func TestLoadQuarantinesCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(path, zap.NewNop())
	if err := s.Load(); err != nil {
		t.Fatalf("Load should recover from corruption, got %v", err)
	}
	if _, err := os.Stat(path + ".corrupted"); err != nil {
		t.Errorf("corrupted backup missing: %v", err)
	}
	if cfg := s.Config(); cfg.CharacterName != "Character" {
		t.Errorf("expected default config after corruption, got %q", cfg.CharacterName)
	}
}

func TestSaveCleanDocumentIsNoop(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(false); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(s.path); !os.IsNotExist(err) {
		t.Error("clean unforced save should not touch disk")
	}
}

func TestDebouncedSaveCoalesces(t *testing.T) {
	s := newTestStore(t)
	s.debounce = 20 * time.Millisecond

	if err := s.Save(true); err != nil {
		t.Fatalf("initial save failed: %v", err)
	}

	s.AddStarter("Midscreen", "5K")
	s.AddStarter("Midscreen", "2D")
	s.AddStarter("Corner", "c.S")

	s.mu.Lock()
	dirty, pending := s.dirty, s.timer != nil
	s.mu.Unlock()
	if !dirty || !pending {
		t.Fatalf("expected dirty document with pending save, dirty=%v pending=%v", dirty, pending)
	}

	deadline := time.Now().Add(time.Second)
	for {
		s.mu.Lock()
		dirty = s.dirty
		s.mu.Unlock()
		if !dirty {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("debounced save never flushed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	reloaded := New(s.path, zap.NewNop())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	cfg := reloaded.Config()
	if len(cfg.Starters["Midscreen"]) != 2 || len(cfg.Starters["Corner"]) != 1 {
		t.Errorf("coalesced save lost mutations: %v", cfg.Starters)
	}
}

func TestFailedSaveKeepsDirty(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "missing", "data.json"), zap.NewNop())
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s.AddStarter("Midscreen", "5K")
	if err := s.Save(true); err == nil {
		t.Fatal("expected save into missing directory to fail")
	}
	s.mu.Lock()
	dirty := s.dirty
	s.mu.Unlock()
	if !dirty {
		t.Error("dirty flag should survive a failed write")
	}
}

func TestFailedWriteLeavesPriorFileIntact(t *testing.T) {
	s := newTestStore(t)
	s.AddStarter("Midscreen", "5K")
	if err := s.Save(true); err != nil {
		t.Fatalf("initial save failed: %v", err)
	}
	before, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}

	// Occupy the temp path with a directory so the next write fails
	// before the rename.
	tempPath := s.path + ".tmp"
	if err := os.Mkdir(tempPath, 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	s.AddStarter("Corner", "c.S")
	if err := s.Save(true); err == nil {
		t.Fatal("expected save to fail with blocked temp path")
	}

	after, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatalf("rereading saved file: %v", err)
	}
	if string(before) != string(after) {
		t.Error("failed write modified the previously saved file")
	}
	if _, err := os.Stat(tempPath); !os.IsNotExist(err) {
		t.Error("failed write should clean up the temp path")
	}
	s.mu.Lock()
	dirty := s.dirty
	s.mu.Unlock()
	if !dirty {
		t.Error("dirty flag should survive a failed write")
	}
}

func TestUpdateCombosSkipsInvalid(t *testing.T) {
	s := newTestStore(t)
	s.UpdateCombos("Midscreen", "5K", []domain.Combo{
		{Notation: "5K > 6P", Notes: "", Link: "https://youtu.be/abc123defgh"},
		{Notation: "  ", Notes: "no notation", Link: "https://youtu.be/abc123defgh"},
		{Notation: "2D", Notes: "", Link: ""},
	}, "custom note")

	combos := s.GetCombos("Midscreen", "5K")
	if len(combos) != 1 {
		t.Fatalf("expected one valid combo, got %d", len(combos))
	}
	if combos[0].Notes != domain.NoNotesProvided {
		t.Errorf("blank notes should collapse to sentinel, got %q", combos[0].Notes)
	}
	if note := s.StarterNote("Midscreen", "5K"); note != "custom note" {
		t.Errorf("note = %q", note)
	}
}

func TestRemoveStarterReportsBothRemovals(t *testing.T) {
	s := newTestStore(t)
	s.AddStarter("Midscreen", "5K")
	s.UpdateCombos("Midscreen", "5K", []domain.Combo{
		{Notation: "5K", Link: "https://youtu.be/abc123defgh"},
	}, "")

	removedConfig, removedData := s.RemoveStarter("Midscreen", "5K")
	if !removedConfig || !removedData {
		t.Errorf("expected both removals, got config=%v data=%v", removedConfig, removedData)
	}
	removedConfig, removedData = s.RemoveStarter("Midscreen", "5K")
	if removedConfig || removedData {
		t.Error("second removal should be a no-op")
	}
}

func TestAddCategory(t *testing.T) {
	s := newTestStore(t)
	if !s.AddCategory("Throw") {
		t.Fatal("new category rejected")
	}
	if s.AddCategory("Throw") {
		t.Error("duplicate category accepted")
	}
	cfg := s.Config()
	if !cfg.HasCategory("Throw") {
		t.Error("category missing from config")
	}
	if _, ok := cfg.Starters["Throw"]; !ok {
		t.Error("new category has no starters entry")
	}
}

func TestAddPlayerRejectsCaseInsensitiveDuplicate(t *testing.T) {
	s := newTestStore(t)
	player := domain.Player{Name: "Daru", SocialLink: "https://twitter.com/daru_i_b"}
	if err := s.AddPlayer(player); err != nil {
		t.Fatalf("AddPlayer failed: %v", err)
	}
	player.Name = "dARu"
	if err := s.AddPlayer(player); err == nil {
		t.Error("duplicate player name accepted")
	}
	if !s.RemovePlayer("DARU") {
		t.Error("case-insensitive removal failed")
	}
	if s.RemovePlayer("Daru") {
		t.Error("removal of absent player reported success")
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	s.AddStarter("Midscreen", "5K")
	s.UpdateCombos("Midscreen", "5K", []domain.Combo{
		{Notation: "5K", Link: "https://youtu.be/abc123defgh"},
		{Notation: "2D", Link: "https://youtu.be/abc123defgh"},
	}, "")

	stats := s.Stats()
	if stats.Categories != 2 || stats.Starters != 1 || stats.Combos != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if !stats.Dirty {
		t.Error("mutated document should be dirty")
	}
}

func TestDocumentShape(t *testing.T) {
	s := newTestStore(t)
	s.AddStarter("Corner", "c.S")
	s.UpdateCombos("Corner", "c.S", []domain.Combo{
		{Notation: "c.S > 2D", Link: "https://youtu.be/abc123defgh"},
	}, "")
	if err := s.Save(true); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	for _, key := range []string{"config", "RESOURCES", "Midscreen", "Corner"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("document missing top-level key %q", key)
		}
	}
}
