package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dkozyrev/jobtrack/internal/filex"
)

// Export writes applications or documents of the active profile to the
// "export" subdirectory of the working directory.
//
//	export csv           — all applications as a CSV file
//	export zip           — documents of one application as a zip bundle
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: export [csv|zip]")
		return nil
	}

	profileID, err := a.activeProfileID(ctx)
	if err != nil {
		return err
	}

	dir, err := filex.EnsureSubDir("export")
	if err != nil {
		a.log.Error(ctx, "export dir failed", "err", err)
		return err
	}

	switch args[0] {
	case "csv":
		path := filepath.Join(dir, "applications.csv")
		f, err := os.Create(path)
		if err != nil {
			a.log.Error(ctx, "export failed", "err", err)
			return err
		}
		defer f.Close()

		if err := a.exportService.ExportCSV(ctx, profileID, f); err != nil {
			a.log.Error(ctx, "export failed", "err", err)
			return err
		}
		printlnFn("Exported to", path)
		return nil

	case "zip":
		id, err := getSimpleText(a.reader, "Enter application id", os.Stdout)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, "documents.zip")
		f, err := os.Create(path)
		if err != nil {
			a.log.Error(ctx, "export failed", "err", err)
			return err
		}
		defer f.Close()

		if err := a.exportService.ExportBundle(ctx, profileID, id, f); err != nil {
			a.log.Error(ctx, "export failed", "err", err)
			return err
		}
		printlnFn("Exported to", path)
		return nil

	default:
		printlnFn("Usage: export [csv|zip]")
		return nil
	}
}
