package cli

import (
	"context"
	"fmt"
	"os"
)

func (c *Cli) runExport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing file. Usage: notekeeper export <file|->")
	}

	if args[0] == "-" {
		_, err := c.noteService.Export(ctx, c.io)
		return err
	}

	file, err := os.OpenFile(args[0], os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	count, err := c.noteService.Export(ctx, file)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close export file: %w", closeErr)
	}
	if err != nil {
		return err
	}

	c.io.Printf("✓ Exported %d note(s) to %s\n", count, args[0])
	return nil
}

func (c *Cli) runImport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing file. Usage: notekeeper import <file>")
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = file.Close() }()

	count, err := c.noteService.Import(ctx, file)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Imported %d note(s) from %s\n", count, args[0])
	return nil
}
