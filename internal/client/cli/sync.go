package cli

import (
	"context"
	"fmt"
)

// Sync pushes local record changes to the cloud and pulls remote ones.
// Requires a logged-in session; attachments stay local.
func (a *App) Sync(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in. Use: login")
		return nil
	}

	profileID, err := a.activeProfileID(ctx)
	if err != nil {
		return err
	}

	report, err := a.syncService.Sync(ctx, profileID)
	if err != nil {
		a.log.Error(ctx, "sync failed", "err", err)
		return err
	}

	a.setMode(ModeOnline)
	printlnFn(fmt.Sprintf("Synced: %d pushed, %d pulled", report.Pushed, report.Pulled))
	return nil
}
