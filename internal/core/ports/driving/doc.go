// Package driving declares what the gshell commands need from the core:
// account registration, settings and the OAuth login. The cobra commands in
// internal/adapters/driving/cli call these; internal/core/services implements them.
package driving
