package cli

import (
	"context"
	"fmt"
	"os"
)

// Profile dispatches the profile subcommands:
//
//	profile              — show the active profile
//	profile list         — list all profiles
//	profile create NAME  — create a profile (first one becomes active)
//	profile select NAME  — switch the active profile
//	profile delete NAME  — delete a profile with all its records
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		active, err := a.profileService.Active(ctx)
		if err != nil {
			printlnFn("No active profile. Use: profile create <name>")
			return nil
		}
		printlnFn("Active profile:", active.Name)
		return nil
	}

	sub := args[0]
	name := ""
	if len(args) > 1 {
		name = args[1]
	}

	switch sub {
	case "list":
		list, err := a.profileService.List(ctx)
		if err != nil {
			a.log.Error(ctx, "profile list failed", "err", err)
			return err
		}
		for _, p := range list {
			printlnFn(p.Name)
		}
		return nil

	case "create":
		if name == "" {
			printlnFn("Usage: profile create <name>")
			return nil
		}
		p, err := a.profileService.Create(ctx, name)
		if err != nil {
			a.log.Error(ctx, "profile create failed", "err", err)
			return err
		}
		printlnFn("Created profile", p.Name)
		return nil

	case "select":
		if name == "" {
			printlnFn("Usage: profile select <name>")
			return nil
		}
		p, err := a.profileService.Select(ctx, name)
		if err != nil {
			a.log.Error(ctx, "profile select failed", "err", err)
			return err
		}
		printlnFn("Switched to profile", p.Name)
		return nil

	case "delete":
		if name == "" {
			printlnFn("Usage: profile delete <name>")
			return nil
		}
		confirm, err := getSimpleText(a.reader,
			fmt.Sprintf("Delete profile %q with all its applications and documents? (yes/no)", name), os.Stdout)
		if err != nil {
			return err
		}
		if confirm != "yes" {
			printlnFn("Cancelled.")
			return nil
		}
		if err := a.profileService.Delete(ctx, name); err != nil {
			a.log.Error(ctx, "profile delete failed", "err", err)
			return err
		}
		printlnFn("Deleted profile", name)
		return nil

	default:
		printlnFn("Usage: profile [list|create|select|delete]")
		return nil
	}
}

// activeProfileID resolves the active profile or tells the user to create one.
func (a *App) activeProfileID(ctx context.Context) (string, error) {
	active, err := a.profileService.Active(ctx)
	if err != nil {
		printlnFn("No active profile. Use: profile create <name>")
		return "", err
	}
	return active.ID, nil
}
