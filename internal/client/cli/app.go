package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/dkozyrev/jobtrack/internal/client/client"
	"github.com/dkozyrev/jobtrack/internal/client/cloud"
	"github.com/dkozyrev/jobtrack/internal/client/config"
	"github.com/dkozyrev/jobtrack/internal/client/services"
	"github.com/dkozyrev/jobtrack/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config             *config.Config
	log                logging.Logger
	authService        services.AuthService
	profileService     services.ProfileService
	applicationService services.ApplicationService
	attachmentService  services.AttachmentService
	exportService      services.ExportService
	syncService        services.SyncService
	loggedIn           bool
	Mode               Mode
	reader             *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	apiClient := cloud.NewHTTPClient(c.CloudEndpointAddr)

	return &App{
		config:             c,
		log:                log,
		authService:        services.NewAuthService(apiClient, db),
		profileService:     services.NewProfileService(db),
		applicationService: services.NewApplicationService(db),
		attachmentService:  services.NewAttachmentService(db),
		exportService:      services.NewExportService(db),
		syncService:        services.NewSyncService(apiClient, db),
		Mode:               ModeDisabled,
		reader:             bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

// Run restores a previously saved cloud session (if any), starts the
// connectivity watcher and enters the REPL. Blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	restored, err := a.authService.RestoreSession(ctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "err", err)
	}
	if restored {
		a.loggedIn = true
		a.setMode(ModeOffline)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.Root(ctx)
}

// StartOnlineStatusWatcher periodically pings the cloud endpoint and flips
// the mode between online and offline. Does nothing while logged out.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isLoggedIn() {
				continue
			}

			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
