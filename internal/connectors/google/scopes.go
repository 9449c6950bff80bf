package google

// Scopes requested for each Admin SDK API.
var (
	DirectoryScopes = []string{
		"https://www.googleapis.com/auth/admin.directory.user",
		"https://www.googleapis.com/auth/admin.directory.user.alias",
		"https://www.googleapis.com/auth/admin.directory.user.security",
		"https://www.googleapis.com/auth/admin.directory.group",
		"https://www.googleapis.com/auth/admin.directory.group.member",
		"https://www.googleapis.com/auth/admin.directory.domain",
		"https://www.googleapis.com/auth/admin.directory.orgunit",
		"https://www.googleapis.com/auth/admin.directory.userschema",
		"https://www.googleapis.com/auth/admin.directory.customer.readonly",
	}

	ReportsScopes = []string{
		"https://www.googleapis.com/auth/admin.reports.audit.readonly",
		"https://www.googleapis.com/auth/admin.reports.usage.readonly",
	}

	ResellerScopes = []string{
		"https://www.googleapis.com/auth/apps.order",
	}
)

// AllScopes returns the union of every API's scopes, used for OAuth
// logins that should cover all commands.
func AllScopes() []string {
	all := make([]string, 0, len(DirectoryScopes)+len(ReportsScopes)+len(ResellerScopes))
	all = append(all, DirectoryScopes...)
	all = append(all, ReportsScopes...)
	return append(all, ResellerScopes...)
}
