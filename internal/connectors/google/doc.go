// Package google provides shared infrastructure for the Admin SDK connectors.
//
// This package contains common utilities used by the directory, reports and
// reseller connectors including:
//   - TokenSource adapter to bridge gshell's TokenProvider to oauth2.TokenSource
//   - Service factories for creating Admin SDK clients
//   - Error handling for common Google API errors (400, 401, 403, 404, 409, 429)
//   - Rate limiting applied before every request
//
// # Usage
//
//	ts := google.NewTokenSource(ctx, tokenProvider)
//	svc, err := google.NewDirectoryService(ctx, ts)
//
// # OAuth2 Scopes
//
// DirectoryScopes, ReportsScopes and ResellerScopes list the scopes each API
// needs. Service accounts must be granted these scopes in the domain-wide
// delegation settings of the Admin console.
package google
