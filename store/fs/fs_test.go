package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veemo-wt/Lumina-Backend/store"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestFSStore(t *testing.T) {
	t.Run("WriteCreatesParents", func(t *testing.T) {
		s := newStore(t)
		err := s.Write("users/abc/app/sessions/s1/state.json", []byte(`{"a":1}`))
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		got, err := s.Read("users/abc/app/sessions/s1/state.json")
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if string(got) != `{"a":1}` {
			t.Errorf("Read returned %q", got)
		}
	})

	t.Run("WriteLeavesNoTempFiles", func(t *testing.T) {
		s := newStore(t)
		if err := s.Write("a/b.json", []byte("data")); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		entries, err := os.ReadDir(filepath.Join(s.root, "a"))
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		if len(entries) != 1 || entries[0].Name() != "b.json" {
			t.Errorf("unexpected directory contents: %v", entries)
		}
	})

	t.Run("ReadNotFound", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.Read("nope.json"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteNotFound", func(t *testing.T) {
		s := newStore(t)
		if err := s.Delete("nope.json"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListSkipsDirectories", func(t *testing.T) {
		s := newStore(t)
		s.Write("d/files/a.txt", []byte("aa"))
		s.Write("d/files/sub/b.txt", []byte("b"))

		infos, err := s.List("d/files")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(infos) != 1 || infos[0].Name != "a.txt" || infos[0].Size != 2 {
			t.Errorf("unexpected listing: %v", infos)
		}
	})

	t.Run("ListMissingDir", func(t *testing.T) {
		s := newStore(t)
		infos, err := s.List("missing")
		if err != nil || len(infos) != 0 {
			t.Errorf("expected empty listing, got %v, %v", infos, err)
		}
	})

	t.Run("EnsureDirIdempotent", func(t *testing.T) {
		s := newStore(t)
		if err := s.EnsureDir("x/y/z"); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}
		if err := s.EnsureDir("x/y/z"); err != nil {
			t.Fatalf("second EnsureDir failed: %v", err)
		}
		fi, err := os.Stat(filepath.Join(s.root, "x", "y", "z"))
		if err != nil || !fi.IsDir() {
			t.Errorf("directory not created: %v", err)
		}
	})

	t.Run("RemoveAll", func(t *testing.T) {
		s := newStore(t)
		s.Write("d/s1/state.json", []byte("{}"))
		s.Write("d/s1/files/a.txt", []byte("a"))

		if err := s.RemoveAll("d/s1"); err != nil {
			t.Fatalf("RemoveAll failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(s.root, "d", "s1")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("directory still exists: %v", err)
		}
		if err := s.RemoveAll("d/s1"); err != nil {
			t.Errorf("RemoveAll on missing dir: %v", err)
		}
	})
}
