// Package reports wraps the Admin SDK Reports API: audit activities,
// activity push channels and usage reports.
package reports
