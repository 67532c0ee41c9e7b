package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var credentials Credentials
	fs.StringVar(&credentials.FromArgs, "credential", "", "Google ID token (not recommended, use env var or file)")
	fs.StringVar(&credentials.FromFile, "credential-file", "", "Path to file containing Google ID token")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid login arguments: %w", err)
	}

	c.io.Println("=== Login ===")
	c.io.Println()

	credential, err := c.getCredential(credentials)
	if err != nil {
		return err
	}

	c.io.Println("Authenticating...")

	result, err := c.authService.Login(ctx, credential)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("User: %s\n", result.UserID)

	switch {
	case result.SnapshotApplied:
		c.io.Println("✓ Notes synchronized with server")
	case result.QueueFlushed:
		c.io.Println("⚠️  Local changes sent, but the server snapshot could not be fetched")
	default:
		c.io.Println("⚠️  Local changes are queued and will be sent on the next sync")
	}

	return nil
}
