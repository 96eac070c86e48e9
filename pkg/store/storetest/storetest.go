// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"src.squeak.sh/pkg/store/storedefs"
)

var cmds = []string{"help", "history", "shutup error", "history", "speakup"}

// TestCmd tests the command history functionality of a Store.
func TestCmd(t *testing.T, s storedefs.Store) {
	t.Helper()

	seq, err := s.NextCmdSeq()
	require.NoError(t, err)
	assert.Equal(t, 1, seq, "NextCmdSeq of an empty store")

	_, err = s.LastCmd()
	assert.True(t, errors.Is(err, storedefs.ErrNoMatchingCmd), "LastCmd of an empty store")

	for i, cmd := range cmds {
		seq, err := s.AddCmd(cmd)
		require.NoError(t, err)
		assert.Equal(t, i+1, seq)
	}

	seq, err = s.NextCmdSeq()
	require.NoError(t, err)
	assert.Equal(t, len(cmds)+1, seq)

	for i, want := range cmds {
		got, err := s.Cmd(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = s.Cmd(0)
	assert.ErrorIs(t, err, storedefs.ErrNoMatchingCmd)
	_, err = s.Cmd(len(cmds) + 1)
	assert.ErrorIs(t, err, storedefs.ErrNoMatchingCmd)

	got, err := s.CmdsWithSeq(2, 4)
	require.NoError(t, err)
	assert.Equal(t, []storedefs.Cmd{{Text: "history", Seq: 2}, {Text: "shutup error", Seq: 3}}, got)

	last, err := s.LastCmd()
	require.NoError(t, err)
	assert.Equal(t, storedefs.Cmd{Text: "speakup", Seq: 5}, last)

	prev, err := s.PrevCmd(5, "hist")
	require.NoError(t, err)
	assert.Equal(t, storedefs.Cmd{Text: "history", Seq: 4}, prev)
	_, err = s.PrevCmd(1, "")
	assert.ErrorIs(t, err, storedefs.ErrNoMatchingCmd)

	require.NoError(t, s.DelCmd(3))
	_, err = s.Cmd(3)
	assert.ErrorIs(t, err, storedefs.ErrNoMatchingCmd)
	all, err := s.CmdsWithSeq(0, 100)
	require.NoError(t, err)
	assert.Len(t, all, len(cmds)-1)

	// Sequence numbers of deleted commands are not reused.
	seq, err = s.AddCmd("list")
	require.NoError(t, err)
	assert.Equal(t, len(cmds)+1, seq)
}
