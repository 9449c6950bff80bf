// Package cli implements the gshell command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/gshell/internal/connectors/google/directory"
	"github.com/custodia-labs/gshell/internal/connectors/google/reports"
	"github.com/custodia-labs/gshell/internal/connectors/google/reseller"
	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/core/ports/driving"
	"github.com/custodia-labs/gshell/internal/logger"
	"github.com/custodia-labs/gshell/internal/output"
)

// Environment variables that override flag defaults.
const (
	EnvDomain    = "GSHELL_DOMAIN"
	EnvOutput    = "GSHELL_OUTPUT"
	EnvConfigDir = "GSHELL_CONFIG_DIR"
)

var version = "dev"

// ClientProvider hands out the per-domain API wrappers.
type ClientProvider interface {
	Directory(ctx context.Context, domainName string) (*directory.Service, error)
	Reports(ctx context.Context, domainName string) (*reports.Service, error)
	Reseller(ctx context.Context, domainName string) (*reseller.Service, error)
}

// Services are the collaborators commands run against.
type Services struct {
	Accounts driving.AccountService
	Settings driving.SettingsService
	Auth     driving.AuthService
	Clients  ClientProvider
	// ConfigPath is shown by 'gshell config path'.
	ConfigPath string
	// Close releases the stores. May be nil.
	Close func() error
}

// Bootstrap builds the services for a configuration directory.
type Bootstrap func(configDir string) (*Services, error)

var (
	bootstrap Bootstrap
	services  *Services
	printer   *output.Printer
)

// Global flags.
var (
	flagDomain    string
	flagOutput    string
	flagVerbose   bool
	flagWhatIf    bool
	flagConfigDir string
	flagColor     string
)

var rootCmd = &cobra.Command{
	Use:   "gshell",
	Short: "Manage Google Workspace from the command line",
	Long: `gshell drives the Google Admin SDK Directory, Reports and Reseller APIs.

Register a Workspace domain with 'gshell account add', then manage its users,
groups, org units, domains, schemas, reports and reseller subscriptions.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagDomain, "domain", "d", "", "Workspace domain to act as (default: configured default domain)")
	pf.StringVarP(&flagOutput, "output", "o", "", "Output format: table, json or yaml")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log API calls to stderr")
	pf.BoolVar(&flagWhatIf, "what-if", false, "Show what would change without calling the API")
	pf.StringVar(&flagConfigDir, "config-dir", "", "Configuration directory (default: ~/.gshell)")
	pf.StringVar(&flagColor, "color", "", "Colour mode: auto, always or never")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return domain.NewErrorRecord(err, domain.CategoryInvalidArgument, cmd.CommandPath(), "")
	})
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs ready-made services, bypassing the bootstrap.
func SetServices(s *Services) {
	services = s
}

// Execute runs the command tree and reports any error. It returns the
// process exit code.
func Execute(ctx context.Context) int {
	err := usageError(rootCmd.ExecuteContext(ctx))
	if total, failed := logger.Stats(); total > 0 {
		logger.Debug("%d API requests, %d failed", total, failed)
	}
	if services != nil && services.Close != nil {
		if cerr := services.Close(); cerr != nil {
			logger.Warn("close stores: %v", cerr)
		}
	}
	if err == nil {
		return output.ExitSuccess
	}

	p := printer
	if p == nil {
		p = output.NewPrinter(output.Options{Err: rootCmd.ErrOrStderr()})
	}
	p.PrintError(err)
	return output.ExitCode(err)
}

// cobraUsagePrefixes start the messages of cobra's own flag and command checks.
var cobraUsagePrefixes = []string{
	"required flag",
	"if any flags in the group",
	"at least one of the flags in the group",
	"unknown command",
	"invalid argument",
}

// usageError categorizes cobra validation failures as argument errors.
func usageError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := output.AsRecord(err); ok {
		return err
	}
	msg := err.Error()
	for _, prefix := range cobraUsagePrefixes {
		if strings.HasPrefix(msg, prefix) {
			return domain.NewErrorRecord(err, domain.CategoryInvalidArgument, rootCmd.Name(), "")
		}
	}
	return err
}

// setup applies environment overrides, builds services and the printer.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	envDefault(flags, "domain", EnvDomain, &flagDomain)
	envDefault(flags, "output", EnvOutput, &flagOutput)
	envDefault(flags, "config-dir", EnvConfigDir, &flagConfigDir)

	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(flagVerbose)

	if services == nil {
		if bootstrap == nil {
			return errors.New("services not configured")
		}
		s, err := bootstrap(flagConfigDir)
		if err != nil {
			return domain.NewErrorRecord(err, domain.CategoryObjectNotFound, "load configuration", flagConfigDir)
		}
		services = s
	}

	format, color, err := resolveOutput()
	if err != nil {
		return err
	}
	printer = output.NewPrinter(output.Options{
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
		Format: format,
		Color:  color,
	})
	return nil
}

// envDefault copies an environment variable into target unless the flag was given.
func envDefault(flags *pflag.FlagSet, name, env string, target *string) {
	if f := flags.Lookup(name); f != nil && f.Changed {
		return
	}
	if v := os.Getenv(env); v != "" {
		*target = v
	}
}

// resolveOutput combines flags with stored settings.
func resolveOutput() (domain.OutputFormat, domain.ColorMode, error) {
	format := domain.OutputTable
	color := domain.ColorAuto
	if services.Settings != nil {
		if settings, err := services.Settings.Get(); err == nil {
			format = settings.Output.Format
			color = settings.Output.Color
		}
	}

	if flagOutput != "" {
		format = domain.OutputFormat(flagOutput)
		if !format.IsValid() {
			return "", "", invalidArg("--output", fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidInput, flagOutput))
		}
	}
	if flagColor != "" {
		color = domain.ColorMode(flagColor)
		if !color.IsValid() {
			return "", "", invalidArg("--color", fmt.Errorf("%w: unknown colour mode %q", domain.ErrInvalidInput, flagColor))
		}
	}
	return format, color, nil
}
