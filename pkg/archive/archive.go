// Package archive stores framed binq snapshots in a local pebble database.
//
// Snapshots are addressed by name; every put creates a new time-ordered
// revision, so earlier saves stay retrievable. Snapshot bytes are verified
// against their embedded checksum on the way in, keeping corrupt data out of
// the archive.
package archive

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/tmarsden/binq/pkg/frame"
)

// Errors
var (
	ErrNotFound    = &ArchiveError{"snapshot not found"}
	ErrCorrupt     = &ArchiveError{"snapshot checksum mismatch"}
	ErrInvalidName = &ArchiveError{"snapshot name must be non-empty and must not contain '/'"}
)

// ArchiveError represents a snapshot archive error
type ArchiveError struct {
	Message string
}

func (e *ArchiveError) Error() string {
	return e.Message
}

const keyPrefix = "snap/"

// Revision identifies one stored copy of a named snapshot.
type Revision struct {
	Name string
	ID   ksuid.KSUID
	Size int
}

// Store is a pebble-backed snapshot archive.
type Store struct {
	db *pebble.DB
}

// Open opens or creates the archive at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func snapshotKey(name string, id ksuid.KSUID) []byte {
	return []byte(keyPrefix + name + "/" + id.String())
}

func namePrefix(name string) []byte {
	return []byte(keyPrefix + name + "/")
}

// prefixUpperBound returns the smallest key greater than every key with the
// given prefix.
func prefixUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func validName(name string) bool {
	return name != "" && !strings.Contains(name, "/")
}

// Put stores framed snapshot bytes under name and returns the new revision
// id. The embedded checksum is verified first; corrupt data is refused.
func (s *Store) Put(name string, framed []byte) (ksuid.KSUID, error) {
	if !validName(name) {
		return ksuid.Nil, ErrInvalidName
	}
	buf, sum, err := frame.Decode(framed)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("malformed snapshot: %w", err)
	}
	if frame.Checksum(buf) != sum {
		return ksuid.Nil, ErrCorrupt
	}

	id := ksuid.New()
	if err := s.db.Set(snapshotKey(name, id), framed, pebble.NoSync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return id, nil
}

// Latest returns the most recent revision of a named snapshot.
func (s *Store) Latest(name string) ([]byte, Revision, error) {
	if !validName(name) {
		return nil, Revision{}, ErrInvalidName
	}
	prefix := namePrefix(name)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return nil, Revision{}, fmt.Errorf("failed to scan archive: %w", err)
	}
	defer iter.Close()

	if !iter.Last() {
		return nil, Revision{}, ErrNotFound
	}
	rev, err := revisionFromKey(iter.Key(), len(iter.Value()))
	if err != nil {
		return nil, Revision{}, err
	}
	data := append([]byte(nil), iter.Value()...)
	return data, rev, nil
}

// Get returns one specific revision of a named snapshot.
func (s *Store) Get(name string, id ksuid.KSUID) ([]byte, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	value, closer, err := s.db.Get(snapshotKey(name, id))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	defer closer.Close()

	data := append([]byte(nil), value...)
	return data, nil
}

// Revisions lists every stored revision of a named snapshot, oldest first.
func (s *Store) Revisions(name string) ([]Revision, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	prefix := namePrefix(name)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan archive: %w", err)
	}
	defer iter.Close()

	var revs []Revision
	for iter.First(); iter.Valid(); iter.Next() {
		rev, err := revisionFromKey(iter.Key(), len(iter.Value()))
		if err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}
	return revs, nil
}

// Names lists every snapshot name in the archive.
func (s *Store) Names() ([]string, error) {
	prefix := []byte(keyPrefix)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan archive: %w", err)
	}
	defer iter.Close()

	var names []string
	var last string
	for iter.First(); iter.Valid(); iter.Next() {
		rev, err := revisionFromKey(iter.Key(), 0)
		if err != nil {
			return nil, err
		}
		if rev.Name != last {
			names = append(names, rev.Name)
			last = rev.Name
		}
	}
	return names, nil
}

// Delete removes every revision of a named snapshot.
func (s *Store) Delete(name string) error {
	if !validName(name) {
		return ErrInvalidName
	}
	revs, err := s.Revisions(name)
	if err != nil {
		return err
	}
	if len(revs) == 0 {
		return ErrNotFound
	}

	batch := s.db.NewBatch()
	defer batch.Close()
	for _, rev := range revs {
		if err := batch.Delete(snapshotKey(name, rev.ID), nil); err != nil {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}
	}
	return batch.Commit(pebble.NoSync)
}

func revisionFromKey(key []byte, size int) (Revision, error) {
	rest, ok := strings.CutPrefix(string(key), keyPrefix)
	if !ok {
		return Revision{}, fmt.Errorf("unexpected archive key %q", key)
	}
	name, idPart, ok := strings.Cut(rest, "/")
	if !ok {
		return Revision{}, fmt.Errorf("unexpected archive key %q", key)
	}
	id, err := ksuid.Parse(idPart)
	if err != nil {
		return Revision{}, fmt.Errorf("bad revision id in key %q: %w", key, err)
	}
	return Revision{Name: name, ID: id, Size: size}, nil
}
