// Package cli implements the userextractl commands. Each command drives the
// same store and views as the web screens and prints them with package term.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"userextra/internal/client"
	"userextra/internal/logging"
	"userextra/internal/store"
	"userextra/internal/view"
)

const (
	envAPIURL     = "USEREXTRA_API_URL"
	defaultAPIURL = "http://127.0.0.1:8080"
)

// session is what a command needs once flags are parsed.
type session struct {
	api   *client.Client
	store *store.Store
	paths view.Paths
	log   zerolog.Logger
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnv(os.LookupEnv)
}

// NewRootCmdWithEnv takes the environment lookup explicitly for tests.
func NewRootCmdWithEnv(lookupEnv func(string) (string, bool)) *cobra.Command {
	apiURL := defaultAPIURL
	if v, ok := lookupEnv(envAPIURL); ok && v != "" {
		apiURL = v
	}

	var (
		debug   bool
		timeout time.Duration
		s       session
	)

	cmd := &cobra.Command{
		Use:           "userextractl",
		Short:         "Browse and edit user extras",
		Long:          "userextractl lists, shows, creates, updates and deletes user extras through the REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  # List all user extras
  userextractl list

  # Show one record
  userextractl get 42

  # Point at another server
  userextractl --api http://api.internal:8080 list`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if debug {
				level = "debug"
			}
			s.log = logging.Component(logging.New(cmd.ErrOrStderr(), level, time.Local), "cli")

			api, err := client.New(apiURL, timeout)
			if err != nil {
				return err
			}
			s.api = api
			s.store = store.New(api, s.log)
			s.paths = view.DefaultPaths
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&apiURL, "api", apiURL, fmt.Sprintf("API base URL (env %s)", envAPIURL))
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout, 0 disables it")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newListCmd(&s),
		newGetCmd(&s),
		newCreateCmd(&s),
		newUpdateCmd(&s),
		newDeleteCmd(&s),
		newUploadCmd(&s),
	)
	return cmd
}
