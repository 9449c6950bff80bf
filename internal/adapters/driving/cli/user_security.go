package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

var userTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage OAuth tokens users issued to applications",
}

var userTokenListCmd = &cobra.Command{
	Use:   "list <user>",
	Short: "List a user's OAuth tokens",
	Args:  exactArgs(1),
	RunE:  runUserTokenList,
}

var userTokenRemoveCmd = &cobra.Command{
	Use:   "remove <user> <client-id>",
	Short: "Revoke the tokens a user issued to one application",
	Args:  exactArgs(2),
	RunE:  runUserTokenRemove,
}

var userASPCmd = &cobra.Command{
	Use:   "asp",
	Short: "Manage application-specific passwords",
}

var userASPListCmd = &cobra.Command{
	Use:   "list <user>",
	Short: "List a user's application-specific passwords",
	Args:  exactArgs(1),
	RunE:  runUserASPList,
}

var userASPRemoveCmd = &cobra.Command{
	Use:   "remove <user> <code-id>",
	Short: "Delete an application-specific password",
	Args:  exactArgs(2),
	RunE:  runUserASPRemove,
}

var userCodeCmd = &cobra.Command{
	Use:     "verification-code",
	Aliases: []string{"backup-code"},
	Short:   "Manage 2-step verification backup codes",
}

var userCodeListCmd = &cobra.Command{
	Use:   "list <user>",
	Short: "List a user's backup codes",
	Args:  exactArgs(1),
	RunE:  runUserCodeList,
}

var userCodeGenerateCmd = &cobra.Command{
	Use:   "generate <user>",
	Short: "Generate new backup codes, replacing the current ones",
	Args:  exactArgs(1),
	RunE:  runUserCodeGenerate,
}

var userCodeInvalidateCmd = &cobra.Command{
	Use:   "invalidate <user>",
	Short: "Invalidate every backup code of a user",
	Args:  exactArgs(1),
	RunE:  runUserCodeInvalidate,
}

func init() {
	userTokenRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")
	userASPRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")
	userCodeInvalidateCmd.Flags().Bool("force", false, "Do not ask for confirmation")

	userTokenCmd.AddCommand(userTokenListCmd, userTokenRemoveCmd)
	userASPCmd.AddCommand(userASPListCmd, userASPRemoveCmd)
	userCodeCmd.AddCommand(userCodeListCmd, userCodeGenerateCmd, userCodeInvalidateCmd)
	userCmd.AddCommand(userTokenCmd, userASPCmd, userCodeCmd)
}

func runUserTokenList(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	rows, err := svc.ListTokens(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(rows)
}

func runUserTokenRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	target := domain.NormalizeEmail(args[0], svc.Domain())

	return destructive(cmd, "revoke token "+args[1]+" of", target, force, func() error {
		return svc.DeleteToken(cmd.Context(), args[0], args[1])
	})
}

func runUserASPList(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	rows, err := svc.ListASPs(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(rows)
}

func runUserASPRemove(cmd *cobra.Command, args []string) error {
	codeID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return invalidArg(args[1], fmt.Errorf("%w: code id must be a number", domain.ErrInvalidInput))
	}
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	target := domain.NormalizeEmail(args[0], svc.Domain())

	return destructive(cmd, "delete application-specific password "+args[1]+" of", target, force, func() error {
		return svc.DeleteASP(cmd.Context(), args[0], codeID)
	})
}

func runUserCodeList(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	rows, err := svc.ListVerificationCodes(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(rows)
}

func runUserCodeGenerate(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	target := domain.NormalizeEmail(args[0], svc.Domain())
	if whatIf("Generate backup codes", target) {
		return nil
	}
	if err := svc.GenerateVerificationCodes(cmd.Context(), args[0]); err != nil {
		return apiErr(cmd, target, err)
	}
	rows, err := svc.ListVerificationCodes(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, target, err)
	}
	return printer.Print(rows)
}

func runUserCodeInvalidate(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	target := domain.NormalizeEmail(args[0], svc.Domain())

	return destructive(cmd, "invalidate the backup codes of", target, force, func() error {
		return svc.InvalidateVerificationCodes(cmd.Context(), args[0])
	})
}
