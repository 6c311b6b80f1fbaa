// Command excellencectl administers accounts directly against the configured
// store: it prints default passwords, lists and unlocks recovery requests,
// changes passwords and imports rosters.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/excellence-hub/excellence/internal/app"
	"github.com/excellence-hub/excellence/internal/config"
	"github.com/excellence-hub/excellence/internal/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

// cli carries the dependencies every command needs; tests swap them out.
type cli struct {
	openApp      func(ctx context.Context, logger *slog.Logger) (*app.App, error)
	readPassword func(prompt string) (string, error)
	fs           afero.Fs
	verbose      bool
}

func main() {
	c := &cli{
		openApp:      openConfiguredApp,
		readPassword: readTerminalPassword,
		fs:           afero.NewOsFs(),
	}
	cobra.CheckErr(newRootCmd(c).Execute())
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "excellencectl",
		Short:         "Excellence account administration",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `excellencectl operates on the store selected by STORE_BACKEND (and the
related STORE_*/DB_* variables, read from the environment or a .env file).

Administrative commands act as the administrator named by ADMIN_NAME.`,
	}
	root.PersistentFlags().BoolVar(&c.verbose, "verbose", false, "log at debug level to stderr")

	root.AddCommand(
		newDefaultPasswordCmd(),
		newRecoveryCmd(c),
		newUnlockCmd(c),
		newAttemptsCmd(c),
		newPasswdCmd(c),
		newRosterCmd(c),
	)
	return root
}

func (c *cli) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// withApp opens the store for the duration of fn.
func (c *cli) withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	a, err := c.openApp(cmd.Context(), c.logger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func openConfiguredApp(ctx context.Context, logger *slog.Logger) (*app.App, error) {
	cfg, err := config.LoadForCLI()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return app.New(ctx, cfg, logger)
}

func readTerminalPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

// identityFlags binds --name, --type, --role and --sub-role.
type identityFlags struct {
	name        string
	accountType string
	role        string
	subRole     string
}

func (f *identityFlags) register(cmd *cobra.Command, withRole bool) {
	cmd.Flags().StringVar(&f.name, "name", "", "display name of the account (required)")
	cmd.Flags().StringVar(&f.accountType, "type", "", "account type: student, master or mhs (required)")
	if withRole {
		cmd.Flags().StringVar(&f.role, "role", "", "MHS role")
	}
	cmd.Flags().StringVar(&f.subRole, "sub-role", "", "MHS sub-role")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
}

func (f *identityFlags) identity() (models.Identity, error) {
	t, err := models.ParseAccountType(f.accountType)
	if err != nil {
		return models.Identity{}, err
	}
	id := models.Identity{Name: f.name, Type: t, Role: f.role, SubRole: f.subRole}
	if err := id.Validate(); err != nil {
		return models.Identity{}, err
	}
	return id, nil
}

func newDefaultPasswordCmd() *cobra.Command {
	var flags identityFlags
	cmd := &cobra.Command{
		Use:   "default-password",
		Short: "Print the default password for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := flags.identity()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.DefaultPassword())
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}
