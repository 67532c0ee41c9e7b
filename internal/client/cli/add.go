package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	pinned := fs.Bool("pin", false, "Pin the note")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid add arguments: %w", err)
	}

	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" {
		var err error
		text, err = c.io.ReadInput("Text: ")
		if err != nil {
			return fmt.Errorf("failed to read text: %w", err)
		}
	}

	note, err := c.noteService.Create(ctx, text, *pinned)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	c.io.Println("✓ Note added")
	c.io.Printf("ID: %s\n", note.NoteID)
	return nil
}

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: notekeeper edit <id> <text>")
	}

	note, err := c.noteService.Update(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("failed to edit note: %w", err)
	}

	c.io.Println("✓ Note updated")
	c.io.Printf("ID: %s\n", note.NoteID)
	return nil
}

func (c *Cli) runPin(ctx context.Context, args []string, pinned bool) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note ID")
	}

	note, err := c.noteService.SetPinned(ctx, args[0], pinned)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	if pinned {
		c.io.Printf("✓ Note %s pinned\n", note.NoteID)
	} else {
		c.io.Printf("✓ Note %s unpinned\n", note.NoteID)
	}
	return nil
}
