package memory

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Veemo-wt/Lumina-Backend/store"
)

func TestMemoryStore(t *testing.T) {
	s := New()

	t.Run("WriteAndRead", func(t *testing.T) {
		if err := s.Write("users/u1/app/sessions_index.json", []byte(`[]`)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		got, err := s.Read("users/u1/app/sessions_index.json")
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if string(got) != `[]` {
			t.Errorf("Read returned %q", got)
		}

		// Test isolation (cloning)
		got[0] = 'X'
		got2, _ := s.Read("users/u1/app/sessions_index.json")
		if got2[0] == 'X' {
			t.Error("memory store should return copies of blobs")
		}
	})

	t.Run("ReadNotFound", func(t *testing.T) {
		_, err := s.Read("missing/key")
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteNotFound", func(t *testing.T) {
		if err := s.Delete("missing/key"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListDirectChildrenOnly", func(t *testing.T) {
		s := New()
		s.Write("d/files/a.txt", []byte("aa"))
		s.Write("d/files/b.txt", []byte("b"))
		s.Write("d/files/nested/c.txt", []byte("c"))

		infos, err := s.List("d/files")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(infos) != 2 {
			t.Fatalf("expected 2 entries, got %d: %v", len(infos), infos)
		}
		if infos[0].Name != "a.txt" || infos[0].Size != 2 {
			t.Errorf("unexpected first entry: %+v", infos[0])
		}
	})

	t.Run("ListMissingDir", func(t *testing.T) {
		infos, err := s.List("no/such/dir")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(infos) != 0 {
			t.Errorf("expected empty listing, got %v", infos)
		}
	})

	t.Run("RemoveAll", func(t *testing.T) {
		s := New()
		for i := 0; i < 3; i++ {
			s.Write(fmt.Sprintf("d/sessions/s1/files/f%d", i), []byte("x"))
		}
		s.Write("d/sessions/s2/state.json", []byte("{}"))

		if err := s.RemoveAll("d/sessions/s1"); err != nil {
			t.Fatalf("RemoveAll failed: %v", err)
		}
		if infos, _ := s.List("d/sessions/s1/files"); len(infos) != 0 {
			t.Errorf("expected files gone, got %v", infos)
		}
		if _, err := s.Read("d/sessions/s2/state.json"); err != nil {
			t.Errorf("sibling session affected: %v", err)
		}

		// Removing a missing directory is a no-op.
		if err := s.RemoveAll("d/sessions/s1"); err != nil {
			t.Errorf("RemoveAll on missing dir: %v", err)
		}
	})
}
