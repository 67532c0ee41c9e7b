package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runList(ctx context.Context) error {
	c.io.Println("=== Notes ===")
	c.io.Println()

	records, err := c.noteService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if len(records) == 0 {
		c.io.Println("No notes found.")
		c.io.Println()
		c.io.Println("Use 'notekeeper add <text>' to add your first note.")
		return nil
	}

	c.io.Printf("Found %d note(s):\n", len(records))
	c.io.Println()

	for i, record := range records {
		marker := ""
		if record.Pinned {
			marker = " [pinned]"
		}
		c.io.Printf("%d. %s%s\n", i+1, noteTitle(record.MarkdownText), marker)
		c.io.Printf("   ID:      %s\n", record.NoteID)
		c.io.Printf("   Updated: %s\n", record.UpdatedAtISO)
		if len(record.Attachments) > 0 {
			c.io.Printf("   Attachments: %d\n", len(record.Attachments))
		}
		c.io.Println()
	}

	return nil
}
