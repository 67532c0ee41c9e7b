package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/notekeeper/internal/client/auth"
	"github.com/iudanet/notekeeper/internal/client/iocli"
	"github.com/iudanet/notekeeper/internal/client/notes"
)

// CredentialEnv переменная окружения с ID token провайдера
const CredentialEnv = "NOTEKEEPER_CREDENTIAL"

var errNotAuthenticated = errors.New("not authenticated. Please run 'notekeeper login' first")

//go:generate moq -out syncer_mock_test.go . Syncer

// Syncer управляет синхронизацией активной сессии
type Syncer interface {
	ResumeSession(ctx context.Context) bool
	Flush(ctx context.Context) bool
	ReconcileSnapshot(ctx context.Context) bool
	PendingCount() int
	Wait()
}

// Credentials источники credential, переданные через флаги
type Credentials struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io          iocli.IO
	authService auth.Service
	noteService notes.Service
	syncer      Syncer
}

func New(io iocli.IO, authService auth.Service, noteService notes.Service, syncer Syncer) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		noteService: noteService,
		syncer:      syncer,
	}
}

// getCredential retrieves the identity credential from various sources with priority:
// 1. Environment variable NOTEKEEPER_CREDENTIAL
// 2. File specified in FromFile
// 3. Command-line parameter FromArgs
// 4. Interactive prompt (fallback)
func (c *Cli) getCredential(credentials Credentials) (string, error) {
	// Priority 1: Environment variable
	if envCredential := strings.TrimSpace(os.Getenv(CredentialEnv)); envCredential != "" {
		return envCredential, nil
	}

	// Priority 2: File
	if credentials.FromFile != "" {
		content, err := os.ReadFile(credentials.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read credential file: %w", err)
		}
		credential := strings.TrimSpace(string(content))
		if credential == "" {
			return "", fmt.Errorf("credential file is empty")
		}
		return credential, nil
	}

	// Priority 3: CLI parameter
	if credentials.FromArgs != "" {
		return strings.TrimSpace(credentials.FromArgs), nil
	}

	// Priority 4: Interactive prompt (fallback)
	credential, err := c.io.ReadSecret("Google ID token: ")
	if err != nil {
		return "", fmt.Errorf("failed to read credential from stdin: %w", err)
	}
	if credential == "" {
		return "", fmt.Errorf("credential cannot be empty")
	}

	return credential, nil
}

func PrintUsage(out iocli.IO) {
	out.Println("NoteKeeper Client")
	out.Println()
	out.Println("Usage:")
	out.Println("  notekeeper [OPTIONS] COMMAND [ARGS]")
	out.Println()
	out.Println("Options:")
	out.Println("  --version                    Show version information")
	out.Println("  --server URL                 Server URL (default: http://localhost:8080)")
	out.Println("  --db PATH                    Path to local database (default: notekeeper-client.db)")
	out.Println("  --log-level LEVEL            debug, info, warn or error (default: warn)")
	out.Println()
	out.Println("Credential Priority for login (highest to lowest):")
	out.Println("  1. NOTEKEEPER_CREDENTIAL environment variable")
	out.Println("  2. login --credential-file PATH")
	out.Println("  3. login --credential TOKEN")
	out.Println("  4. Interactive prompt (fallback)")
	out.Println()
	out.Println("Commands:")
	out.Println("  login                   Exchange a Google ID token for a server session and sync")
	out.Println("  logout                  Sign out, local notes are kept")
	out.Println("  status                  Show session status and pending operations")
	out.Println("  add [--pin] <text>      Create a note")
	out.Println("  edit <id> <text>        Replace note text")
	out.Println("  pin <id> / unpin <id>   Pin or unpin a note")
	out.Println("  list                    List notes")
	out.Println("  get <id>                Show a note")
	out.Println("  delete [-y] <id>        Delete a note")
	out.Println("  sync                    Send queued changes, then pull the server state")
	out.Println("  pull                    Replace local notes with the server snapshot")
	out.Println("  export <file|->         Export notes as JSON")
	out.Println("  import <file>           Import notes from JSON")
	out.Println()
	out.Println("Examples:")
	out.Println("  export NOTEKEEPER_CREDENTIAL=\"$(gcloud auth print-identity-token)\"")
	out.Println("  notekeeper login")
	out.Println("  notekeeper add --pin '# Groceries'")
	out.Println("  notekeeper --server https://notes.example.com sync")
}
