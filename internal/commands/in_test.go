package commands

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JRDK92/Clockbuster/internal/db"
)

func TestClockInPlainInterruptDiscards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockbuster.db")
	require.NoError(t, db.EnsureSchema(path))

	stdin, stdinWriter := io.Pipe()
	defer stdinWriter.Close() // unblocks the reader

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	cmd.SetIn(stdin)
	var out bytes.Buffer
	cmd.SetOut(&out)

	session, err := clockInPlain(cmd, path, "WRITING")
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Contains(t, out.String(), "Clocked in on WRITING")

	sessions, err := db.ListSessions(path, db.Ascending)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestClockInPlainEOFSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockbuster.db")

	cmd := &cobra.Command{}
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetOut(io.Discard)

	session, err := clockInPlain(cmd, path, "WRITING")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.EqualValues(t, 1, session.ID)
}
