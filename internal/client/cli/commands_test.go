package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notekeeper/internal/client/auth"
	"github.com/iudanet/notekeeper/internal/models"
)

func TestRun_UnknownCommand(t *testing.T) {
	tc := newTestCli(t)

	err := tc.cli.Run(context.Background(), "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
	assert.Contains(t, tc.out.String(), "Commands:")
	assert.Len(t, tc.syncer.WaitCalls(), 1)
}

func TestRun_ResumesSession(t *testing.T) {
	tests := []struct {
		command    string
		args       []string
		wantResume bool
	}{
		{command: "list", wantResume: true},
		{command: "status", wantResume: true},
		{command: "help", wantResume: false},
		{command: "login", args: []string{"--credential", "x"}, wantResume: false},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Setenv(CredentialEnv, "")
			tc := newTestCli(t)
			tc.auth.LoginFunc = func(ctx context.Context, credential string) (*auth.LoginResult, error) {
				return &auth.LoginResult{UserID: "user-1"}, nil
			}

			require.NoError(t, tc.cli.Run(context.Background(), tt.command, tt.args))

			if tt.wantResume {
				assert.Len(t, tc.syncer.ResumeSessionCalls(), 1)
			} else {
				assert.Empty(t, tc.syncer.ResumeSessionCalls())
			}
			assert.Len(t, tc.syncer.WaitCalls(), 1, "background flushes are awaited before exit")
		})
	}
}

func TestRun_NoteLifecycle(t *testing.T) {
	tc := newTestCli(t)
	ctx := context.Background()

	require.NoError(t, tc.cli.Run(ctx, "add", []string{"--pin", "#", "Groceries"}))
	require.NoError(t, tc.cli.Run(ctx, "add", []string{"second", "note"}))
	assert.Equal(t, 2, tc.recorder.upserts)

	list, err := tc.notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	pinned := list[0]
	assert.True(t, pinned.Pinned)
	assert.Equal(t, "# Groceries", pinned.MarkdownText)

	tc.out.Reset()
	require.NoError(t, tc.cli.Run(ctx, "list", nil))
	output := tc.out.String()
	assert.Contains(t, output, "Found 2 note(s)")
	assert.Contains(t, output, "1. Groceries [pinned]")
	assert.Contains(t, output, "2. second note")

	require.NoError(t, tc.cli.Run(ctx, "edit", []string{pinned.NoteID, "#", "Shopping"}))
	require.NoError(t, tc.cli.Run(ctx, "unpin", []string{pinned.NoteID}))

	tc.out.Reset()
	require.NoError(t, tc.cli.Run(ctx, "get", []string{pinned.NoteID}))
	output = tc.out.String()
	assert.Contains(t, output, "ID:       "+pinned.NoteID)
	assert.Contains(t, output, "Pinned:   no")
	assert.Contains(t, output, "# Shopping")

	require.NoError(t, tc.cli.Run(ctx, "delete", []string{"-y", pinned.NoteID}))
	assert.Equal(t, 1, tc.recorder.deletes)

	_, err = tc.notes.Get(ctx, pinned.NoteID)
	assert.Error(t, err)
}

func TestRun_AddReadsTextFromPrompt(t *testing.T) {
	tc := newTestCli(t)
	tc.io.ReadInputFunc = func(prompt string) (string, error) { return "typed text", nil }

	require.NoError(t, tc.cli.Run(context.Background(), "add", nil))

	list, err := tc.notes.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "typed text", list[0].MarkdownText)
}

func TestRun_ArgumentErrors(t *testing.T) {
	tests := []struct {
		command string
		args    []string
	}{
		{command: "edit", args: []string{"only-id"}},
		{command: "pin"},
		{command: "get"},
		{command: "get", args: []string{"missing"}},
		{command: "delete"},
		{command: "delete", args: []string{"missing"}},
		{command: "export"},
		{command: "import"},
		{command: "import", args: []string{"/nonexistent/notes.json"}},
		{command: "add", args: []string{"--unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.command+" "+strings.Join(tt.args, " "), func(t *testing.T) {
			tc := newTestCli(t)
			assert.Error(t, tc.cli.Run(context.Background(), tt.command, tt.args))
		})
	}
}

func TestRun_DeleteCancelled(t *testing.T) {
	tc := newTestCli(t)
	ctx := context.Background()

	note, err := tc.notes.Create(ctx, "keep me", false)
	require.NoError(t, err)

	tc.io.ReadInputFunc = func(prompt string) (string, error) { return "no", nil }
	require.NoError(t, tc.cli.Run(ctx, "delete", []string{note.NoteID}))

	assert.Contains(t, tc.out.String(), "Deletion cancelled.")
	assert.Zero(t, tc.recorder.deletes)
	_, err = tc.notes.Get(ctx, note.NoteID)
	assert.NoError(t, err)
}

func TestRun_ExportImport(t *testing.T) {
	ctx := context.Background()
	source := newTestCli(t)

	_, err := source.notes.Create(ctx, "first", true)
	require.NoError(t, err)
	_, err = source.notes.Create(ctx, "second", false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, source.cli.Run(ctx, "export", []string{path}))
	assert.Contains(t, source.out.String(), "Exported 2 note(s)")

	target := newTestCli(t)
	require.NoError(t, target.cli.Run(ctx, "import", []string{path}))
	assert.Contains(t, target.out.String(), "Imported 2 note(s)")

	want, err := source.notes.List(ctx)
	require.NoError(t, err)
	got, err := target.notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]))
	}
}

func TestRun_ExportToStdout(t *testing.T) {
	tc := newTestCli(t)
	ctx := context.Background()

	_, err := tc.notes.Create(ctx, "stdout note", false)
	require.NoError(t, err)

	require.NoError(t, tc.cli.Run(ctx, "export", []string{"-"}))

	var exported []models.NoteRecord
	require.NoError(t, json.NewDecoder(bytes.NewReader(tc.out.Bytes())).Decode(&exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "stdout note", exported[0].MarkdownText)
}

func TestRun_Sync(t *testing.T) {
	t.Run("not authenticated", func(t *testing.T) {
		tc := newTestCli(t)

		err := tc.cli.Run(context.Background(), "sync", nil)
		assert.ErrorIs(t, err, errNotAuthenticated)
		assert.Empty(t, tc.syncer.FlushCalls())
	})

	t.Run("flush and snapshot", func(t *testing.T) {
		tc := newTestCli(t)
		tc.auth.StatusFunc = authenticated

		require.NoError(t, tc.cli.Run(context.Background(), "sync", nil))
		assert.Len(t, tc.syncer.FlushCalls(), 1)
		assert.Len(t, tc.syncer.ReconcileSnapshotCalls(), 1)
		assert.Contains(t, tc.out.String(), "Synchronization completed successfully")
	})

	t.Run("flush failed", func(t *testing.T) {
		tc := newTestCli(t)
		tc.auth.StatusFunc = authenticated
		tc.syncer.FlushFunc = func(ctx context.Context) bool { return false }
		tc.syncer.PendingCountFunc = func() int { return 3 }

		require.NoError(t, tc.cli.Run(context.Background(), "sync", nil))
		assert.Empty(t, tc.syncer.ReconcileSnapshotCalls(), "snapshot only after the queue is empty")
		assert.Contains(t, tc.out.String(), "3 operation(s) are still queued")
	})

	t.Run("waits for background flush first", func(t *testing.T) {
		tc := newTestCli(t)
		tc.auth.StatusFunc = authenticated

		var calls []string
		tc.syncer.WaitFunc = func() { calls = append(calls, "wait") }
		tc.syncer.FlushFunc = func(ctx context.Context) bool {
			calls = append(calls, "flush")
			return true
		}

		require.NoError(t, tc.cli.Run(context.Background(), "sync", nil))
		require.GreaterOrEqual(t, len(calls), 2)
		assert.Equal(t, []string{"wait", "flush"}, calls[:2])
	})
}

func TestRun_Pull(t *testing.T) {
	tc := newTestCli(t)
	tc.auth.StatusFunc = authenticated
	tc.syncer.PendingCountFunc = func() int { return 2 }

	require.NoError(t, tc.cli.Run(context.Background(), "pull", nil))
	assert.Len(t, tc.syncer.ReconcileSnapshotCalls(), 1)
	assert.Empty(t, tc.syncer.FlushCalls())
	assert.Contains(t, tc.out.String(), "2 queued operation(s)")
}

func TestRun_Login(t *testing.T) {
	t.Setenv(CredentialEnv, "")
	tc := newTestCli(t)
	tc.auth.LoginFunc = func(ctx context.Context, credential string) (*auth.LoginResult, error) {
		return &auth.LoginResult{UserID: "user-1", QueueFlushed: true, SnapshotApplied: true}, nil
	}

	require.NoError(t, tc.cli.Run(context.Background(), "login", []string{"--credential", "token-abc"}))

	calls := tc.auth.LoginCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "token-abc", calls[0].Credential)
	assert.Contains(t, tc.out.String(), "User: user-1")
	assert.Contains(t, tc.out.String(), "Notes synchronized with server")
}

func TestRun_LoginFailed(t *testing.T) {
	t.Setenv(CredentialEnv, "")
	tc := newTestCli(t)
	tc.auth.LoginFunc = func(ctx context.Context, credential string) (*auth.LoginResult, error) {
		return nil, auth.ErrSignInFailed
	}

	err := tc.cli.Run(context.Background(), "login", []string{"--credential", "bad"})
	assert.ErrorIs(t, err, auth.ErrSignInFailed)
}

func TestRun_Logout(t *testing.T) {
	tc := newTestCli(t)
	tc.auth.LogoutFunc = func(ctx context.Context) error { return auth.ErrNotSignedIn }

	err := tc.cli.Run(context.Background(), "logout", nil)
	assert.ErrorIs(t, err, auth.ErrNotSignedIn)
}

func TestRun_LogoutReportsDiscarded(t *testing.T) {
	tc := newTestCli(t)
	tc.auth.StatusFunc = func(ctx context.Context) auth.Status {
		return auth.Status{UserID: "user-1", Authenticated: true, Pending: 3}
	}
	tc.auth.LogoutFunc = func(ctx context.Context) error { return nil }

	require.NoError(t, tc.cli.Run(context.Background(), "logout", nil))
	assert.Contains(t, tc.out.String(), "Signed out: user-1")
	assert.Contains(t, tc.out.String(), "Discarded 3 unsynced change(s)")
	assert.Len(t, tc.auth.LogoutCalls(), 1)
}

func TestRun_Status(t *testing.T) {
	tests := []struct {
		name   string
		status auth.Status
		want   []string
	}{
		{
			name: "signed out",
			want: []string{"Not authenticated"},
		},
		{
			name:   "authenticated with pending",
			status: auth.Status{UserID: "user-1", Authenticated: true, Pending: 2},
			want:   []string{"User: user-1", "Status: Authenticated", "Pending sync: 2"},
		},
		{
			name:   "expired token",
			status: auth.Status{UserID: "user-1"},
			want:   []string{"token expired", "All changes synchronized"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCli(t)
			tc.auth.StatusFunc = func(ctx context.Context) auth.Status { return tt.status }

			require.NoError(t, tc.cli.Run(context.Background(), "status", nil))
			for _, want := range tt.want {
				assert.Contains(t, tc.out.String(), want)
			}
		})
	}
}

func TestNoteTitle(t *testing.T) {
	tests := []struct {
		markdown string
		want     string
	}{
		{markdown: "# Title\nbody", want: "Title"},
		{markdown: "\n\n  plain line  ", want: "plain line"},
		{markdown: "   \n", want: "(empty)"},
		{markdown: strings.Repeat("я", 80), want: strings.Repeat("я", titleMaxRunes-1) + "…"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, noteTitle(tt.markdown))
	}
}
