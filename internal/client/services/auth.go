package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkozyrev/jobtrack/internal/client/cloud"
	"github.com/dkozyrev/jobtrack/internal/client/repositories/metadata"
	"github.com/dkozyrev/jobtrack/internal/dbx"
)

// AuthService manages the cloud session: register, login, logout, liveness
// probe, and persistence of the token pair so a session survives restarts.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error

	// RestoreSession loads a previously saved token pair into the cloud
	// client. Returns false when no session is stored.
	RestoreSession(ctx context.Context) (bool, error)

	Close(ctx context.Context) error
}

type authService struct {
	client cloud.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client cloud.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	if err := a.client.Register(ctx, username, string(password)); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Login authenticates against the server and saves the issued token pair.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	pair, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.saveTokens(ctx, pair); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

// Logout drops the stored session; the remote account is untouched.
func (a *authService) Logout(ctx context.Context) error {
	a.client.SetTokens(cloud.TokenPair{})

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, metadata.KeyCloudAccessToken); err != nil {
			return err
		}
		return repo.Delete(ctx, metadata.KeyCloudRefreshToken)
	})
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) RestoreSession(ctx context.Context) (bool, error) {
	repo := metadata.NewSQLiteRepository(a.db)

	access, err := repo.Get(ctx, metadata.KeyCloudAccessToken)
	if err != nil {
		return false, err
	}
	refresh, err := repo.Get(ctx, metadata.KeyCloudRefreshToken)
	if err != nil {
		return false, err
	}

	if access == nil {
		return false, nil
	}

	a.client.SetTokens(cloud.TokenPair{Access: string(access), Refresh: string(refresh)})
	return true, nil
}

func (a *authService) Close(ctx context.Context) error {
	// persist possibly-refreshed tokens before shutdown
	pair := a.client.Tokens()
	if pair.Access != "" {
		if err := a.saveTokens(ctx, pair); err != nil {
			return err
		}
	}
	return a.client.Close()
}

// saveTokens persists the token pair in a single transaction.
func (a *authService) saveTokens(ctx context.Context, pair cloud.TokenPair) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyCloudAccessToken, []byte(pair.Access)); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyCloudRefreshToken, []byte(pair.Refresh))
	})
}
