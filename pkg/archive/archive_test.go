package archive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarsden/binq/pkg/frame"
	"github.com/tmarsden/binq/pkg/serq"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func framedSnapshot(t *testing.T, label string) []byte {
	t.Helper()
	q := serq.New()
	serq.String.Push(q, label)
	buf, err := q.Finalize()
	require.NoError(t, err)
	return frame.Encode(buf)
}

func TestPutAndLatest(t *testing.T) {
	s := openTestStore(t)

	framed := framedSnapshot(t, "slot-1")
	id, err := s.Put("game", framed)
	require.NoError(t, err)
	assert.NotEqual(t, id.String(), "")

	data, rev, err := s.Latest("game")
	require.NoError(t, err)
	assert.Equal(t, framed, data)
	assert.Equal(t, "game", rev.Name)
	assert.Equal(t, id, rev.ID)
	assert.Equal(t, len(framed), rev.Size)
}

func TestLatestPicksNewestRevision(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Put("game", framedSnapshot(t, "old"))
	require.NoError(t, err)
	newer := framedSnapshot(t, "new")
	newID, err := s.Put("game", newer)
	require.NoError(t, err)

	data, rev, err := s.Latest("game")
	require.NoError(t, err)
	assert.Equal(t, newer, data)
	assert.Equal(t, newID, rev.ID)
}

func TestGetSpecificRevision(t *testing.T) {
	s := openTestStore(t)

	first := framedSnapshot(t, "first")
	firstID, err := s.Put("game", first)
	require.NoError(t, err)
	_, err = s.Put("game", framedSnapshot(t, "second"))
	require.NoError(t, err)

	data, err := s.Get("game", firstID)
	require.NoError(t, err)
	assert.Equal(t, first, data)
}

func TestPut_RejectsCorruptSnapshot(t *testing.T) {
	s := openTestStore(t)

	framed := framedSnapshot(t, "slot")
	framed[len(framed)-1] ^= 0xFF

	_, err := s.Put("game", framed)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestPut_RejectsBadName(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"", "a/b"} {
		_, err := s.Put(name, framedSnapshot(t, "x"))
		assert.True(t, errors.Is(err, ErrInvalidName), "name %q", name)
	}
}

func TestLatest_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, _, err := s.Latest("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRevisionsAndNames(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.Put("alpha", framedSnapshot(t, "a"))
		require.NoError(t, err)
	}
	_, err := s.Put("beta", framedSnapshot(t, "b"))
	require.NoError(t, err)

	revs, err := s.Revisions("alpha")
	require.NoError(t, err)
	assert.Len(t, revs, 3)
	for i := 1; i < len(revs); i++ {
		assert.True(t, revs[i-1].ID.String() < revs[i].ID.String(), "revisions must be time ordered")
	}

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Put("game", framedSnapshot(t, "a"))
	require.NoError(t, err)
	_, err = s.Put("game", framedSnapshot(t, "b"))
	require.NoError(t, err)

	require.NoError(t, s.Delete("game"))

	_, _, err = s.Latest("game")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = s.Delete("game")
	assert.True(t, errors.Is(err, ErrNotFound))
}
