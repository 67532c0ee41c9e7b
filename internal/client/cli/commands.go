package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду. Все команды кроме login работают в сохраненной сессии,
// перед возвратом дожидаемся фоновых отправок очереди.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	if command != "login" && command != "help" {
		c.syncer.ResumeSession(ctx)
	}
	defer c.syncer.Wait()

	switch command {
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "add":
		return c.runAdd(ctx, args)
	case "edit":
		return c.runEdit(ctx, args)
	case "pin":
		return c.runPin(ctx, args, true)
	case "unpin":
		return c.runPin(ctx, args, false)
	case "list":
		return c.runList(ctx)
	case "get":
		return c.runGet(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "sync":
		return c.runSync(ctx)
	case "pull":
		return c.runPull(ctx)
	case "export":
		return c.runExport(ctx, args)
	case "import":
		return c.runImport(ctx, args)
	case "help":
		PrintUsage(c.io)
		return nil
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}
