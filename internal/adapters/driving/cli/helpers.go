package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/connectors/google/directory"
	"github.com/custodia-labs/gshell/internal/connectors/google/reports"
	"github.com/custodia-labs/gshell/internal/connectors/google/reseller"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// activity is the command path without the binary name, e.g. "user get".
func activity(cmd *cobra.Command) string {
	return strings.TrimPrefix(cmd.CommandPath(), rootCmd.Name()+" ")
}

// invalidArg reports rejected command input.
func invalidArg(target string, err error) error {
	return domain.NewErrorRecord(err, domain.CategoryInvalidArgument, "argument", target)
}

// apiErr wraps a connector failure for the command boundary. Input the
// connector rejected before calling the API is an argument error; every
// other failure is InvalidData.
func apiErr(cmd *cobra.Command, target string, err error) error {
	if err == nil {
		return nil
	}
	var apiError *google.APIError
	if !errors.As(err, &apiError) && errors.Is(err, domain.ErrInvalidInput) {
		return domain.NewErrorRecord(err, domain.CategoryInvalidArgument, activity(cmd), target)
	}
	return domain.NewErrorRecord(err, domain.CategoryInvalidData, activity(cmd), target)
}

// localErr wraps failures of local state (accounts, settings).
func localErr(cmd *cobra.Command, target string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNoAccount), errors.Is(err, domain.ErrNotFound):
		return domain.NewErrorRecord(err, domain.CategoryObjectNotFound, activity(cmd), target)
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrAlreadyExists):
		return domain.NewErrorRecord(err, domain.CategoryInvalidArgument, activity(cmd), target)
	default:
		return fmt.Errorf("%s: %w", activity(cmd), err)
	}
}

func directoryClient(cmd *cobra.Command) (*directory.Service, error) {
	svc, err := services.Clients.Directory(cmd.Context(), flagDomain)
	if err != nil {
		return nil, localErr(cmd, flagDomain, err)
	}
	return svc, nil
}

func reportsClient(cmd *cobra.Command) (*reports.Service, error) {
	svc, err := services.Clients.Reports(cmd.Context(), flagDomain)
	if err != nil {
		return nil, localErr(cmd, flagDomain, err)
	}
	return svc, nil
}

func resellerClient(cmd *cobra.Command) (*reseller.Service, error) {
	svc, err := services.Clients.Reseller(cmd.Context(), flagDomain)
	if err != nil {
		return nil, localErr(cmd, flagDomain, err)
	}
	return svc, nil
}

// whatIf reports the change --what-if suppresses. It returns true when
// the caller must not proceed.
func whatIf(action, target string) bool {
	if !flagWhatIf {
		return false
	}
	printer.Line("What if: %s on target %q", action, target)
	return true
}

// confirm asks before a destructive change unless force is set.
func confirm(cmd *cobra.Command, action, target string, force bool) error {
	if force {
		return nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Are you sure you want to %s %q? [y/N] ", action, target)

	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return domain.NewErrorRecord(domain.ErrConfirmationDeclined, domain.CategoryOperationStopped, activity(cmd), target)
	}
}

// change runs a non-destructive write unless --what-if is set.
func change(cmd *cobra.Command, action, target string, do func() error) error {
	if whatIf(action, target) {
		return nil
	}
	return apiErr(cmd, target, do())
}

// destructive runs a delete-like write after --what-if and confirmation.
func destructive(cmd *cobra.Command, action, target string, force bool, do func() error) error {
	if whatIf(action, target) {
		return nil
	}
	if err := confirm(cmd, action, target, force); err != nil {
		return err
	}
	return apiErr(cmd, target, do())
}

// exactArgs is cobra.ExactArgs reporting an argument error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return domain.NewErrorRecord(err, domain.CategoryInvalidArgument, activity(cmd), "")
		}
		return nil
	}
}

// rangeArgs is cobra.RangeArgs reporting an argument error.
func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(lo, hi)(cmd, args); err != nil {
			return domain.NewErrorRecord(err, domain.CategoryInvalidArgument, activity(cmd), "")
		}
		return nil
	}
}

// minArgs is cobra.MinimumNArgs reporting an argument error.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return domain.NewErrorRecord(err, domain.CategoryInvalidArgument, activity(cmd), "")
		}
		return nil
	}
}

// optString returns the flag value only when it was given.
func optString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// optBool returns the flag value only when it was given.
func optBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

// readPassword prompts for a password, without echo on a terminal.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	defer fmt.Fprintln(cmd.ErrOrStderr())

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
