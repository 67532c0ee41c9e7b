package cli

import (
	"context"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	status := c.authService.Status(ctx)
	if status.UserID == "" {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'notekeeper login' to authenticate.")
		return nil
	}

	c.io.Printf("User: %s\n", status.UserID)
	if status.Authenticated {
		c.io.Println("Status: Authenticated")
		c.io.Printf("Token expires: %s\n", status.ExpiresAt.Format(time.RFC3339))
	} else {
		c.io.Println("Status: Signed in, token expired")
		c.io.Println("⚠️  Run 'notekeeper login' to continue synchronizing.")
	}

	c.io.Println()
	if status.Pending > 0 {
		c.io.Printf("⚠️  Pending sync: %d operation(s) waiting to be sent\n", status.Pending)
		c.io.Println("Run 'notekeeper sync' to synchronize with server.")
	} else {
		c.io.Println("✓ All changes synchronized with server")
	}

	return nil
}
