package storage

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLockManagerSerializes(t *testing.T) {
	lm := NewLockManager()

	var (
		wg      sync.WaitGroup
		active  int
		maxSeen int
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.Execute(func() error {
				active++
				if active > maxSeen {
					maxSeen = active
				}
				counter++
				time.Sleep(time.Millisecond)
				active--
				return nil
			})
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("expected exclusive execution, saw %d concurrent holders", maxSeen)
	}
	if counter != 50 {
		t.Errorf("expected 50 increments, got %d", counter)
	}
}

func TestLockManagerReleasesOnPanic(t *testing.T) {
	lm := NewLockManager()

	func() {
		defer func() { _ = recover() }()
		_ = lm.Execute(func() error { panic("boom") })
	}()

	got, err := ExecuteWithResult(lm, func() (string, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Errorf("lock not released after panic: %q, %v", got, err)
	}
}

func TestWriteAtomic(t *testing.T) {
	t.Run("replaces content", func(t *testing.T) {
		fsys := NewMockFileSystem()
		_ = fsys.WriteFile("/d/f.json", []byte("old"), 0644)

		if err := WriteAtomic(fsys, "/d/f.json", []byte("new")); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}
		content, _ := fsys.GetFileContent("/d/f.json")
		if string(content) != "new" {
			t.Errorf("expected new content, got %q", content)
		}
		if fsys.FileExists("/d/f.json.tmp") {
			t.Error("temp file left behind")
		}
	})

	t.Run("rename failure leaves original", func(t *testing.T) {
		fsys := NewMockFileSystem()
		_ = fsys.WriteFile("/d/f.json", []byte("old"), 0644)
		fsys.RenameError = errors.New("cross-device")

		if err := WriteAtomic(fsys, "/d/f.json", []byte("new")); err == nil {
			t.Fatal("expected error")
		}
		content, _ := fsys.GetFileContent("/d/f.json")
		if string(content) != "old" {
			t.Errorf("original modified: %q", content)
		}
		if fsys.FileExists("/d/f.json.tmp") {
			t.Error("temp file left behind")
		}
	})

	t.Run("mkdir failure", func(t *testing.T) {
		fsys := NewMockFileSystem()
		fsys.MkdirAllError = errors.New("read-only")
		if err := WriteAtomic(fsys, "/d/f.json", []byte("x")); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestReadIfExists(t *testing.T) {
	fsys := NewMockFileSystem()

	if _, ok, err := ReadIfExists(fsys, "/missing"); ok || err != nil {
		t.Errorf("missing file: ok=%v err=%v", ok, err)
	}

	_ = fsys.WriteFile("/present", []byte("data"), 0644)
	data, ok, err := ReadIfExists(fsys, "/present")
	if !ok || err != nil || string(data) != "data" {
		t.Errorf("present file: %q ok=%v err=%v", data, ok, err)
	}
}

func TestAcquireFileLock(t *testing.T) {
	lock := &MockFileLock{}
	release, err := AcquireFileLock(lock, time.Second)
	if err != nil {
		t.Fatalf("AcquireFileLock failed: %v", err)
	}
	if !lock.IsLocked() {
		t.Error("expected lock to be held")
	}

	if _, err := AcquireFileLock(lock, time.Second); !errors.Is(err, ErrLockUnavailable) {
		t.Errorf("expected ErrLockUnavailable, got %v", err)
	}

	release()
	if lock.IsLocked() {
		t.Error("expected lock to be released")
	}
}
