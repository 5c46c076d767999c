// Package cli is the command line surface. Commands talk to the core
// services through the driving ports; wiring happens once per invocation in
// the root command's PersistentPreRunE.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inkpost/inkpost/internal/adapters/driven/config/file"
	"github.com/inkpost/inkpost/internal/adapters/driven/storage/sqlite"
	"github.com/inkpost/inkpost/internal/connectors/github"
	"github.com/inkpost/inkpost/internal/core/ports/driving"
	"github.com/inkpost/inkpost/internal/core/services"
	"github.com/inkpost/inkpost/internal/logger"
)

// version is set by Execute.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services wired by initServices. Tests inject fakes directly.
var (
	contentService     driving.ContentService
	credentialsService driving.CredentialsService
	remote             *github.Client
	store              *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "inkpost",
	Short: "Personal notes and blog, published through GitHub issues",
	Long: `inkpost keeps short notes and long-form blog posts. Drafts live in a
local store; published posts are GitHub issues on a content repository,
with issue comments as the discussion thread.

Reading needs no authentication. Publishing and commenting need a token,
configured with 'inkpost login'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Name() == "version" {
			return nil
		}
		return initServices(cmd.Context())
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if store != nil {
			_ = store.Close()
			store = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(
		&configDir, "config-dir", "", "config and data directory (default ~/.inkpost)")
}

// initServices builds the credential store, the draft store, the remote
// client, and the services on top. Already-injected services are left alone
// so tests can swap in fakes.
func initServices(ctx context.Context) error {
	if contentService != nil && credentialsService != nil {
		return nil
	}

	credStore, err := file.NewCredentialsStore(configDir)
	if err != nil {
		return fmt.Errorf("opening credentials store: %w", err)
	}
	credentialsService = services.NewCredentialsService(credStore)

	creds, err := credentialsService.Current(ctx)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	remote = github.New(ctx, *creds)

	dataDir := ""
	if configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening draft store: %w", err)
	}

	contentService = services.NewContentService(store.DraftStore(), remote)
	return nil
}

// Execute runs the root command.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}
