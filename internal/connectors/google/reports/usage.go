package reports

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	reports "google.golang.org/api/admin/reports/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
)

// UserUsageOptions shapes a userUsageReport.get request.
type UserUsageOptions struct {
	// UserKey defaults to all users.
	UserKey    string
	Date       string
	Filters    string
	Parameters string
	OrgUnitID  string
	// Max stops after this many reports. 0 lists all.
	Max int
}

// UsageRow is one parameter of a usage report.
type UsageRow struct {
	Date   string `json:"date" yaml:"date"`
	Entity string `json:"entity" yaml:"entity"`
	Name   string `json:"name" yaml:"name"`
	Value  string `json:"value" yaml:"value"`
}

// TableHeader returns the column names used by TableRow.
func (r UsageRow) TableHeader() []string {
	return []string{"Date", "Entity", "Parameter", "Value"}
}

// TableRow returns the row cells.
func (r UsageRow) TableRow() []string {
	return []string{r.Date, r.Entity, r.Name, r.Value}
}

// UsageRows flattens reports into one row per parameter.
func UsageRows(items []*reports.UsageReport) []UsageRow {
	rows := make([]UsageRow, 0, len(items))
	for _, u := range items {
		entity := ""
		if u.Entity != nil {
			entity = u.Entity.UserEmail
			if entity == "" {
				entity = u.Entity.CustomerId
			}
		}
		for _, p := range u.Parameters {
			rows = append(rows, UsageRow{Date: u.Date, Entity: entity, Name: p.Name, Value: usageValue(p)})
		}
	}
	return rows
}

func usageValue(p *reports.UsageReportParameters) string {
	switch {
	case p.StringValue != "":
		return p.StringValue
	case p.DatetimeValue != "":
		return p.DatetimeValue
	case p.IntValue != 0:
		return strconv.FormatInt(p.IntValue, 10)
	case len(p.MsgValue) > 0:
		return fmt.Sprintf("%d entries", len(p.MsgValue))
	default:
		return strconv.FormatBool(p.BoolValue)
	}
}

// CustomerUsage fetches the account-wide usage report of one day.
// parameters is a comma-separated app:parameter list; empty returns all.
func (s *Service) CustomerUsage(ctx context.Context, date, parameters string) ([]*reports.UsageReport, error) {
	date, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	call := s.api.CustomerUsageReports.Get(date)
	if parameters != "" {
		call.Parameters(strings.TrimSpace(parameters))
	}
	if id := s.customerID(); id != "" {
		call.CustomerId(id)
	}

	var items []*reports.UsageReport
	err = google.Paged(ctx, s.limiter, apiName, "customerUsageReports.get", date, func() error {
		return call.Pages(ctx, func(page *reports.UsageReports) error {
			items = append(items, page.UsageReports...)
			return google.PageGate(ctx, s.limiter, len(items), 0)
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UserUsage fetches per-user usage reports of one day.
func (s *Service) UserUsage(ctx context.Context, opts UserUsageOptions) ([]*reports.UsageReport, error) {
	date, err := ParseDate(opts.Date)
	if err != nil {
		return nil, err
	}

	user := s.userKey(opts.UserKey)
	call := s.api.UserUsageReport.Get(user, date).MaxResults(google.PageSize(s.pageSize, opts.Max))
	if opts.Filters != "" {
		call.Filters(opts.Filters)
	}
	if opts.Parameters != "" {
		call.Parameters(strings.TrimSpace(opts.Parameters))
	}
	if opts.OrgUnitID != "" {
		call.OrgUnitID(opts.OrgUnitID)
	}
	if id := s.customerID(); id != "" {
		call.CustomerId(id)
	}

	var items []*reports.UsageReport
	err = google.Paged(ctx, s.limiter, apiName, "userUsageReport.get", user+"/"+date, func() error {
		return call.Pages(ctx, func(page *reports.UsageReports) error {
			items = append(items, page.UsageReports...)
			return google.PageGate(ctx, s.limiter, len(items), opts.Max)
		})
	})
	if err != nil {
		return nil, err
	}
	return google.Truncate(items, opts.Max), nil
}
