package results

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrCorruptSnapshot indicates a snapshot file exists and is non-empty but
// its content is not a stagehand store. Callers should treat the run as
// unrecoverable rather than silently starting empty.
var ErrCorruptSnapshot = errors.New("results: snapshot content is not a stagehand store")

const (
	snapshotMagic   = "stagehand-snapshot"
	snapshotVersion = 1
)

// snapshotEnvelope is the on-disk shape of the binary snapshot: a magic
// marker and version guarding against foreign content, provenance fields,
// and the live entry list in exact store order.
type snapshotEnvelope struct {
	Magic      string        `msgpack:"magic"`
	Version    int           `msgpack:"version"`
	SnapshotID string        `msgpack:"snapshot_id"`
	SavedAt    time.Time     `msgpack:"saved_at"`
	Results    []StageResult `msgpack:"results"`
}

// WriteSnapshot serializes the store's object graph to path, preserving
// entry order, identities, and artifact kinds exactly. Each write stamps a
// fresh snapshot ID and timestamp into the envelope for provenance. Parent
// directories are created as needed.
func (s *Store) WriteSnapshot(path string) error {
	env := snapshotEnvelope{
		Magic:      snapshotMagic,
		Version:    snapshotVersion,
		SnapshotID: uuid.NewString(),
		SavedAt:    time.Now().UTC(),
		Results:    s.entries,
	}
	data, err := msgpack.Marshal(env)
	if err != nil {
		return fmt.Errorf("results: encode snapshot for %s: %w", path, err)
	}
	if err := writeDocument(path, data); err != nil {
		return err
	}
	s.book.Info("wrote snapshot %s to %s (%d entries)", env.SnapshotID, path, len(s.entries))
	return nil
}

// LoadSnapshot restores a store from a binary snapshot. A path that does
// not exist, or exists but is empty, yields a fresh empty store: the first
// stage of a pipeline has no prior state. Non-empty content that does not
// decode as a snapshot fails with ErrCorruptSnapshot. The snapshot's parent
// directory is created if missing so a later write cannot fail on it.
func LoadSnapshot(path string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("results: create directory %s: %w", dir, err)
		}
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(opts...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("results: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return New(opts...), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("results: read %s: %w", path, err)
	}
	var env snapshotEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, path, err)
	}
	if env.Magic != snapshotMagic || env.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: %s", ErrCorruptSnapshot, path)
	}
	store := New(opts...)
	store.entries = env.Results
	store.book.Info("loaded snapshot %s from %s (%d entries)", env.SnapshotID, path, len(store.entries))
	return store, nil
}
