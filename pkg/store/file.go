package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/pageview/pkg/errors"
)

// Store persists snapshots by ID.
type Store interface {
	// Save writes a snapshot, replacing any existing one with the same ID.
	Save(ctx context.Context, s *Snapshot) error

	// Load retrieves a snapshot by ID.
	// It fails with SNAPSHOT_NOT_FOUND for an unknown ID.
	Load(ctx context.Context, id string) (*Snapshot, error)

	// List returns all snapshots, oldest first.
	List(ctx context.Context) ([]*Snapshot, error)

	// Delete removes a snapshot by ID.
	// It fails with SNAPSHOT_NOT_FOUND for an unknown ID.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// FileStore keeps snapshots as JSON files in a directory, one file per
// snapshot named <id>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store in the given directory,
// creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Save writes a snapshot, replacing any existing one with the same ID.
func (st *FileStore) Save(ctx context.Context, s *Snapshot) error {
	if s.ID == "" {
		return errors.New(errors.ErrCodeInvalidSnapshot, "snapshot has no id")
	}
	if err := errors.ValidateFilename(s.ID); err != nil {
		return err
	}
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(st.path(s.ID), data, 0644)
}

// Load retrieves a snapshot by ID. IDs arrive from API paths, so
// anything that is not a plain filename is rejected before it touches
// the filesystem.
func (st *FileStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	if err := errors.ValidateFilename(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(st.path(id))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// List returns all snapshots, oldest first.
func (st *FileStore) List(ctx context.Context) ([]*Snapshot, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, err
	}
	var out []*Snapshot
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(st.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		s, err := Unmarshal(data)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a snapshot by ID.
func (st *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateFilename(id); err != nil {
		return err
	}
	err := os.Remove(st.path(id))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
	}
	return err
}

// Close does nothing for a file store.
func (st *FileStore) Close(ctx context.Context) error {
	return nil
}

func (st *FileStore) path(id string) string {
	// Callers validate the ID, so the join cannot leave the store dir.
	return filepath.Join(st.dir, id+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
