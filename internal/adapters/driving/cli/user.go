package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/connectors/google/directory"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users"},
	Short:   "Manage users",
	Long: `Get, list, create, update and delete users of the Workspace domain.

User names without a domain are completed with the account domain, so
"jane" and "jane@example.com" name the same user.`,
}

var userGetCmd = &cobra.Command{
	Use:   "get <user>",
	Short: "Show one user",
	Args:  exactArgs(1),
	RunE:  runUserGet,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Long: `List the users of the account customer, or of one domain with --in-domain.

Use --query with the Admin SDK search syntax, e.g. --query "orgUnitPath=/Sales".`,
	Args: exactArgs(0),
	RunE: runUserList,
}

var userNewCmd = &cobra.Command{
	Use:   "new <user>",
	Short: "Create a user",
	Long: `Create a user. A random password is generated and printed when neither
--password nor --prompt-password is given.`,
	Args: exactArgs(1),
	RunE: runUserNew,
}

var userSetCmd = &cobra.Command{
	Use:   "set <user>",
	Short: "Update a user",
	Long:  `Update a user. Only the flags given are sent; --suspended=false clears a suspension.`,
	Args:  exactArgs(1),
	RunE:  runUserSet,
}

var userRemoveCmd = &cobra.Command{
	Use:   "remove <user>",
	Short: "Delete a user",
	Args:  exactArgs(1),
	RunE:  runUserRemove,
}

var userUndeleteCmd = &cobra.Command{
	Use:   "undelete <user-id>",
	Short: "Restore a recently deleted user",
	Args:  exactArgs(1),
	RunE:  runUserUndelete,
}

var userMakeAdminCmd = &cobra.Command{
	Use:   "make-admin <user>",
	Short: "Grant or revoke super administrator status",
	Args:  exactArgs(1),
	RunE:  runUserMakeAdmin,
}

func init() {
	f := userGetCmd.Flags()
	f.String("projection", "", "basic, custom or full")
	f.String("custom-field-mask", "", "Schemas to include with --projection custom")
	f.String("view-type", "", "admin_view or domain_public")

	f = userListCmd.Flags()
	f.String("in-domain", "", "List only users of this domain")
	f.String("customer", "", "Customer ID (default: the account customer)")
	f.StringP("query", "q", "", "Admin SDK user search query")
	f.String("order-by", "", "email, familyName or givenName")
	f.String("sort-order", "", "ASCENDING or DESCENDING")
	f.Bool("show-deleted", false, "List recently deleted users")
	f.String("projection", "", "basic, custom or full")
	f.String("view-type", "", "admin_view or domain_public")
	f.Int("max", 0, "Stop after this many users (0 lists all)")
	userListCmd.MarkFlagsMutuallyExclusive("in-domain", "customer")

	f = userNewCmd.Flags()
	f.String("given-name", "", "First name")
	f.String("family-name", "", "Last name")
	f.String("password", "", "Initial password")
	f.Bool("prompt-password", false, "Read the initial password from the terminal")
	f.Bool("hash-password", false, "Send the password as an MD5 digest")
	f.Bool("change-password", false, "Require a password change at next login")
	f.String("org-unit", "/", "Org unit path")
	f.Bool("suspended", false, "Create the user suspended")
	f.Bool("include-in-gal", true, "Include the user in the global address list")
	f.String("recovery-email", "", "Recovery email address")
	f.String("recovery-phone", "", "Recovery phone number (E.164)")
	_ = userNewCmd.MarkFlagRequired("given-name")
	_ = userNewCmd.MarkFlagRequired("family-name")
	userNewCmd.MarkFlagsMutuallyExclusive("password", "prompt-password")

	f = userSetCmd.Flags()
	f.String("new-name", "", "Rename the user's primary address")
	f.String("given-name", "", "First name")
	f.String("family-name", "", "Last name")
	f.String("password", "", "New password")
	f.Bool("prompt-password", false, "Read the new password from the terminal")
	f.Bool("hash-password", false, "Send the password as an MD5 digest")
	f.Bool("change-password", false, "Require a password change at next login")
	f.String("org-unit", "", "Move the user to this org unit")
	f.Bool("suspended", false, "Suspend or unsuspend the user")
	f.Bool("include-in-gal", true, "Include the user in the global address list")
	f.Bool("ip-whitelisted", false, "Apply the IP allowlist to the user")
	f.Bool("archived", false, "Archive or unarchive the user")
	f.String("recovery-email", "", "Recovery email address")
	f.String("recovery-phone", "", "Recovery phone number (E.164)")
	userSetCmd.MarkFlagsMutuallyExclusive("password", "prompt-password")

	userRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")
	userUndeleteCmd.Flags().String("org-unit", "/", "Org unit to restore the user into")
	userMakeAdminCmd.Flags().Bool("status", true, "true grants, false revokes")

	userCmd.AddCommand(userGetCmd, userListCmd, userNewCmd, userSetCmd,
		userRemoveCmd, userUndeleteCmd, userMakeAdminCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserGet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	projection, _ := f.GetString("projection")
	mask, _ := f.GetString("custom-field-mask")
	viewType, _ := f.GetString("view-type")

	user, err := svc.GetUser(cmd.Context(), args[0], directory.GetUserOptions{
		Projection:      projection,
		CustomFieldMask: mask,
		ViewType:        viewType,
	})
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(directory.NewUserView(user))
}

func runUserList(cmd *cobra.Command, _ []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	opts := directory.ListUsersOptions{}
	opts.Domain, _ = f.GetString("in-domain")
	opts.Customer, _ = f.GetString("customer")
	opts.Query, _ = f.GetString("query")
	opts.OrderBy, _ = f.GetString("order-by")
	opts.SortOrder, _ = f.GetString("sort-order")
	opts.ShowDeleted, _ = f.GetBool("show-deleted")
	opts.Projection, _ = f.GetString("projection")
	opts.ViewType, _ = f.GetString("view-type")
	opts.Max, _ = f.GetInt("max")

	users, err := svc.ListUsers(cmd.Context(), opts)
	if err != nil {
		return apiErr(cmd, svc.Domain(), err)
	}
	return printer.Print(directory.NewUserViews(users))
}

func runUserNew(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	nu := directory.NewUser{UserName: args[0]}
	nu.GivenName, _ = f.GetString("given-name")
	nu.FamilyName, _ = f.GetString("family-name")
	nu.Password, _ = f.GetString("password")
	nu.HashPassword, _ = f.GetBool("hash-password")
	nu.ChangePasswordAtNextLogin, _ = f.GetBool("change-password")
	nu.OrgUnitPath, _ = f.GetString("org-unit")
	nu.Suspended, _ = f.GetBool("suspended")
	nu.IncludeInGlobalAddressList = optBool(cmd, "include-in-gal")
	nu.RecoveryEmail, _ = f.GetString("recovery-email")
	nu.RecoveryPhone, _ = f.GetString("recovery-phone")

	target := domain.NormalizeEmail(args[0], svc.Domain())
	if whatIf("Create user", target) {
		return nil
	}
	if prompt, _ := f.GetBool("prompt-password"); prompt {
		if nu.Password, err = readPassword(cmd, "Password: "); err != nil {
			return err
		}
	}

	created, err := svc.InsertUser(cmd.Context(), nu)
	if err != nil {
		return apiErr(cmd, target, err)
	}
	if created.GeneratedPassword != "" {
		printer.Info("Generated password for %s: %s", target, created.GeneratedPassword)
	}
	return printer.Print(directory.NewUserView(created.User))
}

func runUserSet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	update := directory.UserUpdate{
		NewUserName:                optString(cmd, "new-name"),
		GivenName:                  optString(cmd, "given-name"),
		FamilyName:                 optString(cmd, "family-name"),
		Password:                   optString(cmd, "password"),
		ChangePasswordAtNextLogin:  optBool(cmd, "change-password"),
		OrgUnitPath:                optString(cmd, "org-unit"),
		Suspended:                  optBool(cmd, "suspended"),
		IncludeInGlobalAddressList: optBool(cmd, "include-in-gal"),
		IPWhitelisted:              optBool(cmd, "ip-whitelisted"),
		Archived:                   optBool(cmd, "archived"),
		RecoveryEmail:              optString(cmd, "recovery-email"),
		RecoveryPhone:              optString(cmd, "recovery-phone"),
	}
	update.HashPassword, _ = cmd.Flags().GetBool("hash-password")

	target := domain.NormalizeEmail(args[0], svc.Domain())
	if whatIf("Update user", target) {
		return nil
	}
	if prompt, _ := cmd.Flags().GetBool("prompt-password"); prompt {
		pw, err := readPassword(cmd, "New password: ")
		if err != nil {
			return err
		}
		update.Password = &pw
	}

	user, err := svc.SetUser(cmd.Context(), args[0], update)
	if err != nil {
		return apiErr(cmd, target, err)
	}
	return printer.Print(directory.NewUserView(user))
}

func runUserRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	target := domain.NormalizeEmail(args[0], svc.Domain())

	return destructive(cmd, "remove user", target, force, func() error {
		return svc.DeleteUser(cmd.Context(), args[0])
	})
}

func runUserUndelete(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	orgUnit, _ := cmd.Flags().GetString("org-unit")

	return change(cmd, "Restore user", args[0], func() error {
		return svc.UndeleteUser(cmd.Context(), args[0], orgUnit)
	})
}

func runUserMakeAdmin(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	status, _ := cmd.Flags().GetBool("status")
	target := domain.NormalizeEmail(args[0], svc.Domain())

	action := "Grant super administrator"
	if !status {
		action = "Revoke super administrator"
	}
	return change(cmd, action, target, func() error {
		return svc.MakeAdmin(cmd.Context(), args[0], status)
	})
}
