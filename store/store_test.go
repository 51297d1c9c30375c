package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"todovault/logger"
	"todovault/model"
)

func fileBridge(t *testing.T) (*Bridge, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	return NewBridge(NewFileKV(path), logger.Noop()), path
}

func sampleTasks() []model.Task {
	return []model.Task{
		{Text: "newest done", Completed: true},
		{Text: "older done", Completed: true},
		{Text: "first todo"},
		{Text: "second todo"},
	}
}

func TestLoadAccountsMissingFileIsFirstRun(t *testing.T) {
	bridge, _ := fileBridge(t)

	accounts, err := bridge.LoadAccounts()
	if err != nil {
		t.Fatalf("load on missing file failed: %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected empty accounts document, got %d entries", len(accounts))
	}
}

func TestSaveThenLoadTasksRoundTrip(t *testing.T) {
	bridge, _ := fileBridge(t)
	accounts := model.NewAccounts()
	accounts["alice"] = model.StoredUser{Password: "cGFzcw==", Tasks: []model.Task{}}
	if err := bridge.SaveAccounts(accounts); err != nil {
		t.Fatalf("save accounts failed: %v", err)
	}

	want := sampleTasks()
	if err := bridge.SaveTasks("alice", want); err != nil {
		t.Fatalf("save tasks failed: %v", err)
	}

	got, err := bridge.LoadTasks("alice")
	if err != nil {
		t.Fatalf("load tasks failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Text != want[i].Text || got[i].Completed != want[i].Completed {
			t.Fatalf("task %d mismatch: want %+v, got %+v", i, want[i], got[i])
		}
		if got[i].ID == "" {
			t.Fatalf("loaded task %d should get a fresh id", i)
		}
	}
}

func TestSaveTasksUnknownUser(t *testing.T) {
	bridge, _ := fileBridge(t)
	if err := bridge.SaveTasks("nobody", sampleTasks()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := bridge.LoadTasks("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCorruptFileIsDistinctFromNotFound(t *testing.T) {
	bridge, path := fileBridge(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file failed: %v", err)
	}

	_, err := bridge.LoadAccounts()
	if !errors.Is(err, ErrCorruptStore) {
		t.Fatalf("expected ErrCorruptStore, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("corrupt store must not be reported as not found")
	}

	// The corrupt file must survive untouched; nothing may auto-erase it.
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read corrupt file failed: %v", readErr)
	}
	if string(data) != "{not json" {
		t.Fatalf("corrupt file was rewritten: %q", data)
	}
}

func TestCorruptValueInsideKVIsCorruptStore(t *testing.T) {
	kv := NewMemKV()
	if err := kv.Set(model.AccountsKey, `"a string, not an object"`); err != nil {
		t.Fatalf("seed kv failed: %v", err)
	}
	bridge := NewBridge(kv, logger.Noop())

	if _, err := bridge.LoadAccounts(); !errors.Is(err, ErrCorruptStore) {
		t.Fatalf("expected ErrCorruptStore, got %v", err)
	}
}

func TestFileKVWritesBackupOnRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	kv := NewFileKV(path)

	if err := kv.Set("k", "v1"); err != nil {
		t.Fatalf("first set failed: %v", err)
	}
	if err := kv.Set("k", "v2"); err != nil {
		t.Fatalf("second set failed: %v", err)
	}

	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Fatalf("expected backup file after rewrite: %v", err)
	}

	v, ok, err := kv.Get("k")
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if v != "v2" {
		t.Fatalf("expected latest value v2, got %q", v)
	}
}

func TestFileKVMissingKey(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "state.json"))
	_, ok, err := kv.Get("absent")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatalf("expected absent key")
	}
}

func TestThemeRoundTripAndDefault(t *testing.T) {
	bridge, _ := fileBridge(t)

	if got := bridge.LoadTheme(); got != model.ThemeLight {
		t.Fatalf("expected default light theme, got %q", got)
	}
	if err := bridge.SaveTheme(model.ThemeDark); err != nil {
		t.Fatalf("save theme failed: %v", err)
	}
	if got := bridge.LoadTheme(); got != model.ThemeDark {
		t.Fatalf("expected dark theme after save, got %q", got)
	}
}
