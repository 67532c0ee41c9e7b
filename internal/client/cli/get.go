package cli

import (
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/iudanet/notekeeper/internal/client/storage"
)

var noteTmpl = template.Must(template.New("note").Parse(noteTemplate))

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note ID. Usage: notekeeper get <id>")
	}

	note, err := c.noteService.Get(ctx, args[0])
	if err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			return fmt.Errorf("note not found with ID: %s", args[0])
		}
		return fmt.Errorf("failed to get note: %w", err)
	}

	if err := noteTmpl.Execute(c.io, note); err != nil {
		return fmt.Errorf("failed to render note: %w", err)
	}
	return nil
}
