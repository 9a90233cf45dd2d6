package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/outlook-services/internal/adapters/driven/auth"
	"github.com/custodia-labs/outlook-services/internal/adapters/driven/bridge"
	"github.com/custodia-labs/outlook-services/internal/adapters/driven/config/file"
	"github.com/custodia-labs/outlook-services/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/outlook-services/internal/adapters/driving/cli"
	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft"
	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
	"github.com/custodia-labs/outlook-services/internal/core/domain"
	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Inject services into CLI commands
	cli.SetServices(&cli.Services{
		OpenConfig: func(path string) (driven.ConfigStore, error) {
			return file.NewStore(path)
		},
		Connect: connect,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// connect wires the token source, the HTTP bridge and the client for settings.
func connect(_ context.Context, settings *domain.Settings) (*cli.Session, error) {
	httpBridge := bridge.New(bridge.Options{
		RateLimiter: microsoft.NewRateLimiter(microsoft.RateLimitConfig{
			RequestsPerSecond: settings.RateLimit.RequestsPerSecond,
			BurstSize:         settings.RateLimit.Burst,
		}),
		UserAgent: bridge.DefaultUserAgent + "/" + version,
	})

	// A token from the environment bypasses sign-in and the token cache
	if settings.AccessToken != "" {
		tokens := auth.NewStaticTokenProvider(settings.AccessToken)
		return &cli.Session{
			Client: outlook.NewClient(outlook.ConfigFromSettings(settings), tokens, httpBridge),
			Tokens: tokens,
			UserID: settings.UserID,
		}, nil
	}

	store, err := sqlite.NewTokenStore(settings.TokenDB)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	handler := microsoft.NewOAuthHandler(settings, func(resp *oauth2.DeviceAuthResponse) {
		fmt.Fprintf(os.Stderr, "To sign in, open %s and enter the code %s\n", resp.VerificationURI, resp.UserCode)
	})
	tokens, err := auth.NewCachedTokenProvider(settings.TokenKey(), store, handler, handler)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &cli.Session{
		Client: outlook.NewClient(outlook.ConfigFromSettings(settings), tokens, httpBridge),
		Tokens: tokens,
		UserID: settings.UserID,
		Close: func() {
			tokens.Close()
			if err := store.Close(); err != nil {
				log.Printf("failed to close token store: %v", err)
			}
		},
	}, nil
}
