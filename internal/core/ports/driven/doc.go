// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ConfigStore: Application configuration (TOML)
//   - AccountStore: Registered Workspace accounts
//   - TokenStore: Stored OAuth tokens
//   - TokenProviderFactory: Builds a TokenProvider for an account
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
