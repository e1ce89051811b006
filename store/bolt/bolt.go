// Package bolt provides a bbolt-backed implementation of store.Store for
// single-file deployments.
package bolt

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/Veemo-wt/Lumina-Backend/store"
)

var (
	blobsBucket = []byte("blobs")
	dirsBucket  = []byte("dirs")
)

// Store implements store.Store backed by a bbolt database. Blob keys and
// directory markers live in separate buckets; keys keep their slash form.
type Store struct {
	db *bbolt.DB
}

var _ store.Store = (*Store)(nil)

// New returns a Store backed by the given bbolt database.
func New(db *bbolt.DB) (*Store, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(blobsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(dirsBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("initializing buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// NewFromFile opens a bbolt database at the given path and returns a Store.
func NewFromFile(dbPath string, options *bbolt.Options) (*Store, error) {
	db, err := bbolt.Open(dbPath, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return New(db)
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Read(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(blobsBucket).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("%s: %w", key, store.ErrNotFound)
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) Write(key string, data []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := ensureDirInTx(tx, path.Dir(key)); err != nil {
			return err
		}
		return tx.Bucket(blobsBucket).Put([]byte(key), data)
	})
}

func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(blobsBucket)
		if b.Get([]byte(key)) == nil {
			return fmt.Errorf("%s: %w", key, store.ErrNotFound)
		}
		return b.Delete([]byte(key))
	})
}

func (s *Store) List(dir string) ([]store.FileInfo, error) {
	var infos []store.FileInfo
	prefix := []byte(dir + "/")
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(blobsBucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			name := string(k[len(prefix):])
			if strings.Contains(name, "/") {
				continue
			}
			infos = append(infos, store.FileInfo{Name: name, Size: int64(len(v))})
		}
		return nil
	})
	return infos, err
}

func (s *Store) EnsureDir(dir string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return ensureDirInTx(tx, dir)
	})
}

func ensureDirInTx(tx *bbolt.Tx, dir string) error {
	b := tx.Bucket(dirsBucket)
	for dir != "." && dir != "/" && dir != "" {
		if err := b.Put([]byte(dir), nil); err != nil {
			return err
		}
		dir = path.Dir(dir)
	}
	return nil
}

func (s *Store) RemoveAll(dir string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		prefix := []byte(dir + "/")
		if err := deletePrefix(tx.Bucket(blobsBucket), prefix); err != nil {
			return err
		}
		b := tx.Bucket(dirsBucket)
		if err := deletePrefix(b, prefix); err != nil {
			return err
		}
		if b.Get([]byte(dir)) != nil {
			return b.Delete([]byte(dir))
		}
		return nil
	})
}

func deletePrefix(b *bbolt.Bucket, prefix []byte) error {
	c := b.Cursor()
	var keys [][]byte
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
