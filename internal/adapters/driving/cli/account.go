package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/adapters/driving/oauth"
	"github.com/custodia-labs/gshell/internal/core/domain"
	core "github.com/custodia-labs/gshell/internal/core/services"
)

// loginTimeout bounds the wait for the browser consent.
const loginTimeout = 5 * time.Minute

// accountRow is an account flattened for display. Secrets are left out.
type accountRow struct {
	Domain     string   `json:"domain" yaml:"domain"`
	AdminEmail string   `json:"admin_email,omitempty" yaml:"admin_email,omitempty"`
	CustomerID string   `json:"customer_id" yaml:"customer_id"`
	AuthMethod string   `json:"auth_method" yaml:"auth_method"`
	KeyFile    string   `json:"key_file,omitempty" yaml:"key_file,omitempty"`
	ClientID   string   `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	Scopes     []string `json:"scopes,omitempty" yaml:"scopes,omitempty"`
	Default    bool     `json:"default" yaml:"default"`
	ID         string   `json:"id" yaml:"id"`
}

// TableHeader returns the column names used by TableRow.
func (r accountRow) TableHeader() []string {
	return []string{"", "Domain", "Admin", "Customer", "Auth"}
}

// TableRow returns the row cells.
func (r accountRow) TableRow() []string {
	mark := ""
	if r.Default {
		mark = "*"
	}
	return []string{mark, r.Domain, r.AdminEmail, r.CustomerID, r.AuthMethod}
}

func newAccountRow(a domain.Account, def string) accountRow {
	return accountRow{
		Domain: a.Domain, AdminEmail: a.AdminEmail, CustomerID: a.Customer(),
		AuthMethod: a.AuthMethod.String(), KeyFile: a.KeyFile, ClientID: a.ClientID,
		Scopes: a.Scopes, Default: a.Domain == def, ID: a.ID,
	}
}

var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"accounts"},
	Short:   "Manage the Workspace domains gshell acts for",
	Long: `Register Workspace domains and their credentials. Every command runs as one
account, chosen with --domain or the default account.

Authentication methods:
  service_account  JSON key with domain-wide delegation, impersonating --admin-email
  oauth            installed-app OAuth client; run 'gshell account login' after adding
  adc              Google application default credentials`,
}

var accountAddCmd = &cobra.Command{
	Use:   "add <domain>",
	Short: "Register a Workspace domain",
	Example: `  gshell account add example.com --auth service_account --key-file key.json --admin-email admin@example.com
  gshell account add example.com --auth oauth --client-id ID --client-secret SECRET`,
	Args: exactArgs(1),
	RunE: runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered accounts",
	Args:  exactArgs(0),
	RunE:  runAccountList,
}

var accountShowCmd = &cobra.Command{
	Use:   "show [domain]",
	Short: "Show one account (default: the default account)",
	Args:  rangeArgs(0, 1),
	RunE:  runAccountShow,
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove <domain>",
	Short: "Forget an account and its stored token",
	Args:  exactArgs(1),
	RunE:  runAccountRemove,
}

var accountDefaultCmd = &cobra.Command{
	Use:   "default <domain>",
	Short: "Make an account the default",
	Args:  exactArgs(1),
	RunE:  runAccountDefault,
}

var accountLoginCmd = &cobra.Command{
	Use:   "login [domain]",
	Short: "Authorize an OAuth account in the browser",
	Args:  rangeArgs(0, 1),
	RunE:  runAccountLogin,
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout [domain]",
	Short: "Delete the stored OAuth token of an account",
	Args:  rangeArgs(0, 1),
	RunE:  runAccountLogout,
}

func init() {
	f := accountAddCmd.Flags()
	f.String("auth", string(domain.AuthMethodServiceAccount), "service_account, oauth or adc")
	f.String("admin-email", "", "Administrator to act as")
	f.String("customer-id", "", "Workspace customer ID (default: my_customer)")
	f.String("key-file", "", "Service account JSON key file")
	f.String("client-id", "", "OAuth client ID")
	f.String("client-secret", "", "OAuth client secret")
	f.StringSlice("scopes", nil, "Override the default scopes")
	f.Bool("default", false, "Make this the default account")

	accountRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")
	accountLoginCmd.Flags().Bool("no-browser", false, "Print the consent URL instead of opening a browser")

	accountCmd.AddCommand(accountAddCmd, accountListCmd, accountShowCmd, accountRemoveCmd,
		accountDefaultCmd, accountLoginCmd, accountLogoutCmd)
	rootCmd.AddCommand(accountCmd)
}

func defaultDomain() string {
	settings, err := services.Settings.Get()
	if err != nil {
		return ""
	}
	return settings.Domain.Default
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	auth, _ := f.GetString("auth")
	account := domain.Account{
		Domain:     args[0],
		AuthMethod: domain.AuthMethod(strings.ToLower(auth)),
	}
	account.AdminEmail, _ = f.GetString("admin-email")
	account.CustomerID, _ = f.GetString("customer-id")
	account.KeyFile, _ = f.GetString("key-file")
	account.ClientID, _ = f.GetString("client-id")
	account.ClientSecret, _ = f.GetString("client-secret")
	account.Scopes, _ = f.GetStringSlice("scopes")
	if account.KeyFile != "" {
		if abs, err := filepath.Abs(account.KeyFile); err == nil {
			account.KeyFile = abs
		}
	}

	created, err := services.Accounts.Add(cmd.Context(), account)
	if err != nil {
		return localErr(cmd, args[0], err)
	}
	if makeDefault, _ := f.GetBool("default"); makeDefault {
		if err := services.Accounts.SetDefault(cmd.Context(), created.Domain); err != nil {
			return localErr(cmd, created.Domain, err)
		}
	}

	printer.Success("Added account %s", created.Domain)
	if created.AuthMethod == domain.AuthMethodOAuth {
		printer.Info("Run 'gshell account login %s' to authorize it", created.Domain)
	}
	return printer.Print(newAccountRow(*created, defaultDomain()))
}

func runAccountList(cmd *cobra.Command, _ []string) error {
	accounts, err := services.Accounts.List(cmd.Context())
	if err != nil {
		return localErr(cmd, "", err)
	}
	def := defaultDomain()
	rows := make([]accountRow, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, newAccountRow(a, def))
	}
	if len(rows) == 0 {
		printer.Info("No accounts. Add one with 'gshell account add <domain>'")
	}
	return printer.Print(rows)
}

func runAccountShow(cmd *cobra.Command, args []string) error {
	name := flagDomain
	if len(args) == 1 {
		name = args[0]
	}
	account, err := services.Accounts.Resolve(cmd.Context(), name)
	if err != nil {
		return localErr(cmd, name, err)
	}
	return printer.Print(newAccountRow(*account, defaultDomain()))
}

func runAccountRemove(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	name := domain.NormalizeDomain(args[0])
	if whatIf("Remove account", name) {
		return nil
	}
	if err := confirm(cmd, "remove account", name, force); err != nil {
		return err
	}
	if err := services.Accounts.Remove(cmd.Context(), name); err != nil {
		return localErr(cmd, name, err)
	}
	printer.Success("Removed account %s", name)
	return nil
}

func runAccountDefault(cmd *cobra.Command, args []string) error {
	name := domain.NormalizeDomain(args[0])
	if err := services.Accounts.SetDefault(cmd.Context(), name); err != nil {
		return localErr(cmd, name, err)
	}
	printer.Success("Default account is now %s", name)
	return nil
}

func runAccountLogin(cmd *cobra.Command, args []string) error {
	name := flagDomain
	if len(args) == 1 {
		name = args[0]
	}
	account, err := services.Accounts.Resolve(cmd.Context(), name)
	if err != nil {
		return localErr(cmd, name, err)
	}

	port, err := core.FindAvailablePort(core.CallbackPortStart, core.CallbackPortEnd)
	if err != nil {
		return fmt.Errorf("start login: %w", err)
	}
	redirectURI := fmt.Sprintf("http://127.0.0.1:%d/callback", port)

	req, err := services.Auth.BeginLogin(cmd.Context(), account.Domain, redirectURI)
	if err != nil {
		return localErr(cmd, account.Domain, err)
	}

	server := oauth.NewCallbackServer(port, req.State)
	if err := server.Start(); err != nil {
		return fmt.Errorf("start login: %w", err)
	}
	defer server.Stop()

	noBrowser, _ := cmd.Flags().GetBool("no-browser")
	if noBrowser || oauth.OpenBrowser(req.URL) != nil {
		printer.Info("Open this URL to authorize %s:", account.Domain)
		printer.Line("%s", req.URL)
	} else {
		printer.Info("Waiting for authorization in the browser...")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), loginTimeout)
	defer cancel()
	code, err := server.WaitForCode(ctx)
	if err != nil {
		return domain.NewErrorRecord(fmt.Errorf("%w: %w", domain.ErrAuthRequired, err),
			domain.CategoryOperationStopped, activity(cmd), account.Domain)
	}

	if err := services.Auth.CompleteLogin(cmd.Context(), req, code); err != nil {
		return localErr(cmd, account.Domain, err)
	}
	printer.Success("Authorized %s", account.Domain)
	return nil
}

func runAccountLogout(cmd *cobra.Command, args []string) error {
	name := flagDomain
	if len(args) == 1 {
		name = args[0]
	}
	account, err := services.Accounts.Resolve(cmd.Context(), name)
	if err != nil {
		return localErr(cmd, name, err)
	}
	if whatIf("Delete stored token", account.Domain) {
		return nil
	}
	if err := services.Auth.Logout(cmd.Context(), account.Domain); err != nil {
		return localErr(cmd, account.Domain, err)
	}
	printer.Success("Logged out of %s", account.Domain)
	return nil
}
