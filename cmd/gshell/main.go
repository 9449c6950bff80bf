// Command gshell manages Google Workspace through the Admin SDK.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/gshell/internal/adapters/driven/auth"
	"github.com/custodia-labs/gshell/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gshell/internal/adapters/driven/oauth"
	"github.com/custodia-labs/gshell/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gshell/internal/adapters/driving/cli"
	"github.com/custodia-labs/gshell/internal/core/services"
)

// Set by the release build.
var version = "dev"

func main() {
	// A .env file in the working directory may carry GSHELL_* overrides.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}

// bootstrap opens the configuration file and the account database under configDir.
func bootstrap(configDir string) (*cli.Services, error) {
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}
	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		return nil, err
	}

	settings := services.NewSettingsService(configStore)
	accounts := services.NewAccountService(store.AccountStore(), store.TokenStore(), settings)
	authService := services.NewAuthService(store.AccountStore(), store.TokenStore(), oauth.NewClient())
	factory := auth.NewFactory(store.TokenStore())

	return &cli.Services{
		Accounts:   accounts,
		Settings:   settings,
		Auth:       authService,
		Clients:    services.NewClientRegistry(accounts, settings, factory),
		ConfigPath: configStore.Path(),
		Close:      store.Close,
	}, nil
}
