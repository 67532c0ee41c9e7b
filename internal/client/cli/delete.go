package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iudanet/notekeeper/internal/client/storage"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("y", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid delete arguments: %w", err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("missing note ID. Usage: notekeeper delete <id>")
	}
	noteID := fs.Arg(0)

	c.io.Println("=== Delete Note ===")
	c.io.Println()

	note, err := c.noteService.Get(ctx, noteID)
	if err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			return fmt.Errorf("note not found with ID: %s", noteID)
		}
		return fmt.Errorf("failed to get note: %w", err)
	}

	if !*yes {
		c.io.Println("About to delete:")
		c.io.Printf("  %s\n", noteTitle(note.MarkdownText))
		c.io.Println()

		confirm, err := c.io.ReadInput("Are you sure you want to delete this note? (yes/no): ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if confirm != "yes" && confirm != "y" {
			c.io.Println()
			c.io.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := c.noteService.Delete(ctx, note.NoteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	c.io.Println("✓ Note deleted successfully!")
	return nil
}
