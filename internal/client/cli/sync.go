package cli

import (
	"context"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()

	if !c.authService.Status(ctx).Authenticated {
		return errNotAuthenticated
	}

	// Фоновая отправка после локальных правок уже может идти, иначе Flush сразу вернет false
	c.syncer.Wait()

	c.io.Println("Sending queued changes...")
	if !c.syncer.Flush(ctx) {
		c.io.Printf("⚠️  %d operation(s) are still queued. Check the connection and retry.\n", c.syncer.PendingCount())
		return nil
	}
	c.io.Println("✓ Queue sent")

	if !c.syncer.ReconcileSnapshot(ctx) {
		c.io.Println("⚠️  Failed to fetch the server snapshot")
		return nil
	}

	c.io.Println("✓ Synchronization completed successfully!")
	return nil
}

func (c *Cli) runPull(ctx context.Context) error {
	c.io.Println("=== Pull ===")
	c.io.Println()

	if !c.authService.Status(ctx).Authenticated {
		return errNotAuthenticated
	}

	if !c.syncer.ReconcileSnapshot(ctx) {
		c.io.Println("⚠️  Failed to fetch the server snapshot")
		return nil
	}

	c.io.Println("✓ Local notes replaced with the server snapshot")
	if pending := c.syncer.PendingCount(); pending > 0 {
		c.io.Printf("Notes with %d queued operation(s) kept their local content.\n", pending)
	}
	return nil
}
