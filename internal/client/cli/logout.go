package cli

import (
	"context"
	"fmt"
)

// runLogout завершает сессию. Статус снимается до выхода, иначе счетчик очереди уже обнулен
func (c *Cli) runLogout(ctx context.Context) error {
	status := c.authService.Status(ctx)

	if err := c.authService.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	if status.UserID != "" {
		c.io.Printf("Signed out: %s\n", status.UserID)
	}
	if status.Pending > 0 {
		c.io.Printf("Discarded %d unsynced change(s), local notes are kept.\n", status.Pending)
	} else {
		c.io.Println("Local notes are kept.")
	}
	return nil
}
