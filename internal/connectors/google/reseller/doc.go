// Package reseller wraps the Google Workspace Reseller API: reseller
// customers and their subscriptions.
package reseller
