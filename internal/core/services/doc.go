// Package services holds gshell's account, settings and login logic behind
// the driving ports.
//
//   - AccountService registers Workspace domains and tracks the default one.
//   - SettingsService validates and stores the keys of config.toml.
//   - AuthService runs the loopback OAuth login with PKCE.
//   - ClientRegistry resolves an account, obtains a token provider for it and
//     caches one Admin SDK client per domain per API for the process.
package services
