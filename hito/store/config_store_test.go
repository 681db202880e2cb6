package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/iomz/hito/hito/storage"
	"github.com/iomz/hito/types"
)

const testPath = "/cfg/config.json"

func newMockStore(t *testing.T, opts ...Option) (*ConfigStore, *storage.MockFileSystem, *storage.MockFileLockFactory) {
	t.Helper()
	mockFS := storage.NewMockFileSystem()
	mockLocks := storage.NewMockFileLockFactory()

	counter := 0
	base := []Option{
		WithFileSystem(mockFS),
		WithFileLockFactory(mockLocks),
		WithIDFunc(func() string {
			counter++
			return fmt.Sprintf("id-%d", counter)
		}),
	}
	return NewConfigStore(testPath, append(base, opts...)...), mockFS, mockLocks
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields default document", func(t *testing.T) {
		s, mockFS, _ := newMockStore(t)

		doc, err := s.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if diff := cmp.Diff(types.NewConfigDocument(), doc); diff != "" {
			t.Errorf("default document mismatch (-want +got):\n%s", diff)
		}
		if mockFS.FileExists(testPath) {
			t.Error("Load must not create the file")
		}
	})

	t.Run("empty file yields default document", func(t *testing.T) {
		s, mockFS, _ := newMockStore(t)
		_ = mockFS.WriteFile(testPath, nil, 0644)

		doc, err := s.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(doc.Categories) != 0 || len(doc.Hotkeys) != 0 || doc.DirectoryPaths != nil {
			t.Errorf("expected default document, got %+v", doc)
		}
	})

	t.Run("malformed file is corrupt", func(t *testing.T) {
		s, mockFS, _ := newMockStore(t)
		_ = mockFS.WriteFile(testPath, []byte("{not json"), 0644)

		_, err := s.Load()
		if !errors.Is(err, ErrConfigCorrupt) {
			t.Fatalf("expected ErrConfigCorrupt, got %v", err)
		}

		err = s.SetDirectoryPath("/photos", "/elsewhere.json")
		if !errors.Is(err, ErrConfigCorrupt) {
			t.Fatalf("expected ErrConfigCorrupt from mutate, got %v", err)
		}
		content, _ := mockFS.GetFileContent(testPath)
		if string(content) != "{not json" {
			t.Errorf("corrupt file was overwritten: %q", content)
		}
	})

	t.Run("null lists are normalized", func(t *testing.T) {
		s, mockFS, _ := newMockStore(t)
		_ = mockFS.WriteFile(testPath, []byte(`{"categories":null,"hotkeys":[{"id":"h","key":"K","modifiers":null,"action":"next"}]}`), 0644)

		doc, err := s.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if doc.Categories == nil || doc.Hotkeys[0].Modifiers == nil {
			t.Errorf("expected empty slices, got %+v", doc)
		}
	})

	t.Run("read error is wrapped", func(t *testing.T) {
		s, mockFS, _ := newMockStore(t)
		_ = mockFS.WriteFile(testPath, []byte(`{}`), 0644)
		diskErr := errors.New("disk read error")
		mockFS.ReadFileError = diskErr

		_, err := s.Load()
		if !errors.Is(err, diskErr) {
			t.Fatalf("expected wrapped disk error, got %v", err)
		}
	})
}

func TestMutate(t *testing.T) {
	t.Run("transform error aborts without writing", func(t *testing.T) {
		s, mockFS, _ := newMockStore(t)
		if err := s.SetDirectoryPath("/a", "/a.json"); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		before, _ := mockFS.GetFileContent(testPath)

		boom := errors.New("boom")
		err := s.Mutate(func(doc types.ConfigDocument) (types.ConfigDocument, error) {
			doc.DirectoryPaths["/b"] = "/b.json"
			return doc, boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected transform error, got %v", err)
		}

		after, _ := mockFS.GetFileContent(testPath)
		if string(before) != string(after) {
			t.Errorf("file changed after failed transform:\nbefore %s\nafter  %s", before, after)
		}
	})

	t.Run("rename failure keeps the prior file", func(t *testing.T) {
		s, mockFS, _ := newMockStore(t)
		if err := s.SetDirectoryPath("/a", "/a.json"); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		before, _ := mockFS.GetFileContent(testPath)

		mockFS.RenameError = errors.New("rename failed")
		if err := s.SetDirectoryPath("/b", "/b.json"); err == nil {
			t.Fatal("expected error on rename failure")
		}

		after, _ := mockFS.GetFileContent(testPath)
		if string(before) != string(after) {
			t.Errorf("prior file was modified")
		}
		if mockFS.FileExists(testPath + ".tmp") {
			t.Error("temp file left behind")
		}
	})

	t.Run("write failure keeps the prior file", func(t *testing.T) {
		s, mockFS, _ := newMockStore(t)
		if _, err := s.AddCategory(types.CategoryData{Name: "cats"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		before, _ := mockFS.GetFileContent(testPath)

		mockFS.WriteFileError = errors.New("disk full")
		if _, err := s.AddCategory(types.CategoryData{Name: "dogs"}); err == nil {
			t.Fatal("expected error on write failure")
		}

		after, _ := mockFS.GetFileContent(testPath)
		if string(before) != string(after) {
			t.Errorf("prior file was modified")
		}
	})

	t.Run("lock held by another process", func(t *testing.T) {
		s, mockFS, mockLocks := newMockStore(t)
		mockLocks.New(testPath + ".lock").(*storage.MockFileLock).Hold()

		err := s.SetDirectoryPath("/a", "/a.json")
		if !errors.Is(err, ErrLockUnavailable) {
			t.Fatalf("expected ErrLockUnavailable, got %v", err)
		}
		if mockFS.FileExists(testPath) {
			t.Error("nothing should be written without the lock")
		}
	})

	t.Run("lock error is surfaced", func(t *testing.T) {
		s, mockFS, mockLocks := newMockStore(t)
		_ = mockFS.WriteFile(testPath, []byte(`{"categories":[],"hotkeys":[]}`), 0644)
		lockErr := errors.New("lock broken")
		mockLocks.New(testPath + ".lock").(*storage.MockFileLock).SetLockError(lockErr)

		if _, err := s.Load(); !errors.Is(err, lockErr) {
			t.Fatalf("expected lock error, got %v", err)
		}
		if err := s.SetDirectoryPath("/a", "/a.json"); !errors.Is(err, lockErr) {
			t.Fatalf("expected lock error from mutation, got %v", err)
		}
	})

	t.Run("unlockable missing config loads defaults", func(t *testing.T) {
		s, _, mockLocks := newMockStore(t)
		mockLocks.New(testPath + ".lock").(*storage.MockFileLock).SetLockError(errors.New("read-only file system"))

		doc, err := s.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if diff := cmp.Diff(types.NewConfigDocument(), doc); diff != "" {
			t.Errorf("default document mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("load does not create the config directory", func(t *testing.T) {
		s, mockFS, _ := newMockStore(t)
		mockFS.MkdirAllError = errors.New("read-only file system")

		if _, err := s.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if err := s.SetDirectoryPath("/a", "/a.json"); err == nil {
			t.Error("mutation should fail when the directory cannot be created")
		}
	})

	t.Run("lock is released after each operation", func(t *testing.T) {
		s, _, mockLocks := newMockStore(t)
		if err := s.SetDirectoryPath("/a", "/a.json"); err != nil {
			t.Fatalf("mutate failed: %v", err)
		}
		if _, err := s.Load(); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		lock := mockLocks.GetLock(testPath + ".lock")
		if lock.IsLocked() {
			t.Error("lock still held")
		}
		if lock.LockAttempts != 2 || lock.UnlockAttempts != 2 {
			t.Errorf("expected 2 lock/unlock pairs, got %d/%d", lock.LockAttempts, lock.UnlockAttempts)
		}
	})
}

func TestDirectoryPaths(t *testing.T) {
	s, _, _ := newMockStore(t)

	if _, ok, err := s.GetDirectoryPath("/photos"); err != nil || ok {
		t.Fatalf("expected no entry, got ok=%v err=%v", ok, err)
	}

	if err := s.SetDirectoryPath("/photos/", "/data/photos.json"); err != nil {
		t.Fatalf("SetDirectoryPath failed: %v", err)
	}
	if err := s.SetDirectoryPath("/music", "/data/music.json"); err != nil {
		t.Fatalf("SetDirectoryPath failed: %v", err)
	}
	if err := s.SetDirectoryPath("/photos", "/data/photos2.json"); err != nil {
		t.Fatalf("SetDirectoryPath failed: %v", err)
	}

	got, ok, err := s.GetDirectoryPath("/photos")
	if err != nil || !ok || got != "/data/photos2.json" {
		t.Errorf("GetDirectoryPath = %q, %v, %v", got, ok, err)
	}

	all, err := s.DirectoryPaths()
	if err != nil {
		t.Fatalf("DirectoryPaths failed: %v", err)
	}
	want := map[string]string{"/photos": "/data/photos2.json", "/music": "/data/music.json"}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}

	if err := s.RemoveDirectoryPath("/music"); err != nil {
		t.Fatalf("RemoveDirectoryPath failed: %v", err)
	}
	if err := s.RemoveDirectoryPath("/never-set"); err != nil {
		t.Fatalf("removing an unknown dir should be a no-op: %v", err)
	}
	if _, ok, _ := s.GetDirectoryPath("/music"); ok {
		t.Error("expected /music to be removed")
	}
}

func TestFieldIsolation(t *testing.T) {
	s, mockFS, _ := newMockStore(t)

	if err := s.SetCategories([]types.CategoryData{{ID: "c1", Name: "Cats", Color: "#ff0000"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetHotkeys([]types.HotkeyData{{ID: "h1", Key: "C", Modifiers: []string{"ctrl"}, Action: "toggle_category_c1"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDirectoryPath("/photos", "/data/photos.json"); err != nil {
		t.Fatal(err)
	}

	fields := func() map[string]json.RawMessage {
		t.Helper()
		content, _ := mockFS.GetFileContent(testPath)
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(content, &raw); err != nil {
			t.Fatalf("file is not JSON: %v", err)
		}
		return raw
	}

	edits := []struct {
		name    string
		touches string
		edit    func() error
	}{
		{"directory path", "directory_paths", func() error { return s.SetDirectoryPath("/other", "/data/other.json") }},
		{"category add", "categories", func() error {
			_, err := s.AddCategory(types.CategoryData{Name: "Dogs", Color: "#00ff00"})
			return err
		}},
		{"hotkey update", "hotkeys", func() error {
			return s.UpdateHotkey(types.HotkeyData{ID: "h1", Key: "D", Modifiers: []string{}, Action: "next"})
		}},
	}

	for _, e := range edits {
		t.Run(e.name, func(t *testing.T) {
			before := fields()
			if err := e.edit(); err != nil {
				t.Fatalf("edit failed: %v", err)
			}
			after := fields()

			for key, raw := range before {
				if key == e.touches {
					continue
				}
				if string(raw) != string(after[key]) {
					t.Errorf("field %q changed:\nbefore %s\nafter  %s", key, raw, after[key])
				}
			}
		})
	}
}

func TestCategoriesAndHotkeys(t *testing.T) {
	s, mockFS, _ := newMockStore(t)

	added, err := s.AddCategory(types.CategoryData{Name: "Cats", Color: "#ff0000"})
	if err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if added.ID != "id-1" {
		t.Errorf("expected generated id, got %q", added.ID)
	}
	if _, err := s.AddCategory(types.CategoryData{ID: "fixed", Name: "Dogs"}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}

	if err := s.UpdateCategory(types.CategoryData{ID: "fixed", Name: "Hounds", Color: "#0000ff"}); err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}
	if err := s.RemoveCategory("id-1"); err != nil {
		t.Fatalf("RemoveCategory failed: %v", err)
	}

	got, err := s.Categories()
	if err != nil {
		t.Fatal(err)
	}
	want := []types.CategoryData{{ID: "fixed", Name: "Hounds", Color: "#0000ff"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	t.Run("missing ids are not found and write nothing", func(t *testing.T) {
		before, _ := mockFS.GetFileContent(testPath)

		if err := s.UpdateCategory(types.CategoryData{ID: "ghost"}); !errors.Is(err, ErrNotFound) {
			t.Errorf("UpdateCategory: expected ErrNotFound, got %v", err)
		}
		if err := s.RemoveCategory("ghost"); !errors.Is(err, ErrNotFound) {
			t.Errorf("RemoveCategory: expected ErrNotFound, got %v", err)
		}
		if err := s.UpdateHotkey(types.HotkeyData{ID: "ghost"}); !errors.Is(err, ErrNotFound) {
			t.Errorf("UpdateHotkey: expected ErrNotFound, got %v", err)
		}
		if err := s.RemoveHotkey("ghost"); !errors.Is(err, ErrNotFound) {
			t.Errorf("RemoveHotkey: expected ErrNotFound, got %v", err)
		}

		after, _ := mockFS.GetFileContent(testPath)
		if string(before) != string(after) {
			t.Error("file changed on not-found edit")
		}
	})

	t.Run("hotkeys", func(t *testing.T) {
		hk, err := s.AddHotkey(types.HotkeyData{Key: "N", Action: "next_image"})
		if err != nil {
			t.Fatalf("AddHotkey failed: %v", err)
		}
		if hk.ID == "" || hk.Modifiers == nil {
			t.Errorf("expected id and empty modifiers, got %+v", hk)
		}

		if err := s.RemoveHotkey(hk.ID); err != nil {
			t.Fatalf("RemoveHotkey failed: %v", err)
		}
		hotkeys, err := s.Hotkeys()
		if err != nil {
			t.Fatal(err)
		}
		if len(hotkeys) != 0 {
			t.Errorf("expected no hotkeys, got %+v", hotkeys)
		}
	})
}

func TestConcurrentMutations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	// Two stores on one file exercise both the in-process mutex and the file lock
	stores := []*ConfigStore{
		NewConfigStore(path, WithLockTimeout(10*time.Second)),
		NewConfigStore(path, WithLockTimeout(10*time.Second)),
	}

	const perStore = 10
	var wg sync.WaitGroup
	errs := make(chan error, len(stores)*perStore*2)

	for si, s := range stores {
		for i := 0; i < perStore; i++ {
			wg.Add(2)
			go func(s *ConfigStore, n int) {
				defer wg.Done()
				_, err := s.AddCategory(types.CategoryData{Name: fmt.Sprintf("cat-%d", n)})
				errs <- err
			}(s, si*perStore+i)
			go func(s *ConfigStore, n int) {
				defer wg.Done()
				errs <- s.SetDirectoryPath(fmt.Sprintf("/dir/%d", n), fmt.Sprintf("/data/%d.json", n))
			}(s, si*perStore+i)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent mutation failed: %v", err)
		}
	}

	doc, err := stores[0].Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	total := len(stores) * perStore
	if len(doc.Categories) != total {
		t.Errorf("lost category updates: got %d, want %d", len(doc.Categories), total)
	}
	if len(doc.DirectoryPaths) != total {
		t.Errorf("lost directory updates: got %d, want %d", len(doc.DirectoryPaths), total)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath failed: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("hito", "config.json")) {
		t.Errorf("unexpected path %q", path)
	}
}

func TestValidator(t *testing.T) {
	rejectEmpty := func(_, next types.ConfigDocument) error {
		for _, c := range next.Categories {
			if c.Name == "" {
				return errors.New("empty name")
			}
		}
		return nil
	}
	s, mockFS, _ := newMockStore(t, WithValidator(rejectEmpty))

	if _, err := s.AddCategory(types.CategoryData{Name: "ok"}); err != nil {
		t.Fatalf("valid add failed: %v", err)
	}
	before, _ := mockFS.GetFileContent(testPath)

	if _, err := s.AddCategory(types.CategoryData{}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	after, _ := mockFS.GetFileContent(testPath)
	if string(before) != string(after) {
		t.Error("invalid document was written")
	}

	t.Run("previous document is not touched by in-place edits", func(t *testing.T) {
		var prevName, nextName string
		record := func(prev, next types.ConfigDocument) error {
			prevName, nextName = prev.Categories[0].Name, next.Categories[0].Name
			return nil
		}
		s, _, _ := newMockStore(t, WithValidator(record))
		c, err := s.AddCategory(types.CategoryData{Name: "before"})
		if err != nil {
			t.Fatal(err)
		}
		c.Name = "after"
		if err := s.UpdateCategory(c); err != nil {
			t.Fatal(err)
		}
		if prevName != "before" || nextName != "after" {
			t.Errorf("validator saw prev=%q next=%q", prevName, nextName)
		}
	})
}
