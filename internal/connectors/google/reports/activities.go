package reports

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	reports "google.golang.org/api/admin/reports/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// ActivityOptions shapes an activities.list or activities.watch request.
type ActivityOptions struct {
	// Application is the audit log, such as admin, login or drive.
	Application string
	// UserKey defaults to all users.
	UserKey        string
	EventName      string
	Filters        string
	ActorIPAddress string
	// StartTime and EndTime are RFC 3339 timestamps.
	StartTime string
	EndTime   string
	OrgUnitID string
	// Max stops after this many activities. 0 lists all.
	Max int
}

// ActivityRow is one event of an activity flattened for display.
type ActivityRow struct {
	Time        string   `json:"time" yaml:"time"`
	Application string   `json:"application" yaml:"application"`
	Actor       string   `json:"actor" yaml:"actor"`
	IPAddress   string   `json:"ip_address,omitempty" yaml:"ip_address,omitempty"`
	EventType   string   `json:"event_type,omitempty" yaml:"event_type,omitempty"`
	EventName   string   `json:"event_name" yaml:"event_name"`
	Parameters  []string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// TableHeader returns the column names used by TableRow.
func (r ActivityRow) TableHeader() []string {
	return []string{"Time", "Actor", "IP", "Event", "Parameters"}
}

// TableRow returns the row cells.
func (r ActivityRow) TableRow() []string {
	return []string{r.Time, r.Actor, r.IPAddress, r.EventName, strings.Join(r.Parameters, " ")}
}

// ActivityRows flattens activities into one row per event.
func ActivityRows(items []*reports.Activity) []ActivityRow {
	rows := make([]ActivityRow, 0, len(items))
	for _, a := range items {
		base := ActivityRow{IPAddress: a.IpAddress}
		if a.Id != nil {
			base.Time = a.Id.Time
			base.Application = a.Id.ApplicationName
		}
		if a.Actor != nil {
			base.Actor = a.Actor.Email
			if base.Actor == "" {
				base.Actor = a.Actor.ProfileId
			}
		}
		if len(a.Events) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, e := range a.Events {
			row := base
			row.EventType = e.Type
			row.EventName = e.Name
			row.Parameters = eventParameters(e.Parameters)
			rows = append(rows, row)
		}
	}
	return rows
}

// eventParameters renders parameters as name=value pairs.
func eventParameters(params []*reports.ActivityEventsParameters) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, p.Name+"="+parameterValue(p))
	}
	return out
}

func parameterValue(p *reports.ActivityEventsParameters) string {
	switch {
	case p.Value != "":
		return p.Value
	case len(p.MultiValue) > 0:
		return strings.Join(p.MultiValue, ",")
	case len(p.MultiIntValue) > 0:
		vals := make([]string, 0, len(p.MultiIntValue))
		for _, v := range p.MultiIntValue {
			vals = append(vals, strconv.FormatInt(v, 10))
		}
		return strings.Join(vals, ",")
	case p.IntValue != 0:
		return strconv.FormatInt(p.IntValue, 10)
	case p.MessageValue != nil:
		return messageValue(p.MessageValue.Parameter)
	default:
		return strconv.FormatBool(p.BoolValue)
	}
}

func messageValue(params []*reports.NestedParameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		v := p.Value
		switch {
		case v != "":
		case len(p.MultiValue) > 0:
			v = strings.Join(p.MultiValue, ",")
		case p.IntValue != 0:
			v = strconv.FormatInt(p.IntValue, 10)
		default:
			v = strconv.FormatBool(p.BoolValue)
		}
		parts = append(parts, p.Name+":"+v)
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}

func (o ActivityOptions) validate() (ActivityOptions, error) {
	o.Application = strings.ToLower(strings.TrimSpace(o.Application))
	if o.Application == "" {
		return o, fmt.Errorf("%w: application is required", domain.ErrInvalidInput)
	}
	var err error
	if o.StartTime, err = parseTime("start time", o.StartTime); err != nil {
		return o, err
	}
	if o.EndTime, err = parseTime("end time", o.EndTime); err != nil {
		return o, err
	}
	return o, nil
}

// ListActivities lists audit activities of one application.
func (s *Service) ListActivities(ctx context.Context, opts ActivityOptions) ([]*reports.Activity, error) {
	opts, err := opts.validate()
	if err != nil {
		return nil, err
	}

	user := s.userKey(opts.UserKey)
	call := s.api.Activities.List(user, opts.Application).MaxResults(google.PageSize(s.pageSize, opts.Max))
	if opts.EventName != "" {
		call.EventName(opts.EventName)
	}
	if opts.Filters != "" {
		call.Filters(opts.Filters)
	}
	if opts.ActorIPAddress != "" {
		call.ActorIpAddress(opts.ActorIPAddress)
	}
	if opts.StartTime != "" {
		call.StartTime(opts.StartTime)
	}
	if opts.EndTime != "" {
		call.EndTime(opts.EndTime)
	}
	if opts.OrgUnitID != "" {
		call.OrgUnitID(opts.OrgUnitID)
	}
	if id := s.customerID(); id != "" {
		call.CustomerId(id)
	}

	var items []*reports.Activity
	err = google.Paged(ctx, s.limiter, apiName, "activities.list", opts.Application+"/"+user, func() error {
		return call.Pages(ctx, func(page *reports.Activities) error {
			items = append(items, page.Items...)
			return google.PageGate(ctx, s.limiter, len(items), opts.Max)
		})
	})
	if err != nil {
		return nil, err
	}
	return google.Truncate(items, opts.Max), nil
}

// WatchRequest describes a push notification channel for activities.
type WatchRequest struct {
	ActivityOptions
	// Address is the HTTPS URL notifications are sent to.
	Address string
	// Token is echoed back in every notification.
	Token string
	// TTL is the channel lifetime. 0 uses the API default.
	TTL time.Duration
}

// Watch opens a web-hook channel for an application's activities. The
// channel ID is a fresh UUID.
func (s *Service) Watch(ctx context.Context, req WatchRequest) (*reports.Channel, error) {
	opts, err := req.ActivityOptions.validate()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(req.Address, "https://") {
		return nil, fmt.Errorf("%w: watch address must be an https URL", domain.ErrInvalidInput)
	}
	if req.TTL < 0 {
		return nil, fmt.Errorf("%w: ttl must not be negative", domain.ErrInvalidInput)
	}

	channel := &reports.Channel{
		Id:      uuid.NewString(),
		Type:    "web_hook",
		Address: req.Address,
		Token:   req.Token,
	}
	if req.TTL > 0 {
		channel.Params = map[string]string{"ttl": strconv.FormatInt(int64(req.TTL/time.Second), 10)}
	}

	user := s.userKey(opts.UserKey)
	call := s.api.Activities.Watch(user, opts.Application, channel)
	if opts.EventName != "" {
		call.EventName(opts.EventName)
	}
	if opts.Filters != "" {
		call.Filters(opts.Filters)
	}
	if opts.ActorIPAddress != "" {
		call.ActorIpAddress(opts.ActorIPAddress)
	}
	if opts.StartTime != "" {
		call.StartTime(opts.StartTime)
	}
	if opts.EndTime != "" {
		call.EndTime(opts.EndTime)
	}
	if opts.OrgUnitID != "" {
		call.OrgUnitID(opts.OrgUnitID)
	}
	if id := s.customerID(); id != "" {
		call.CustomerId(id)
	}
	return google.Call(ctx, s.limiter, apiName, "activities.watch", opts.Application+"/"+user, call.Context(ctx).Do)
}

// StopChannel stops a push notification channel.
func (s *Service) StopChannel(ctx context.Context, id, resourceID string) error {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(resourceID) == "" {
		return fmt.Errorf("%w: channel id and resource id are required", domain.ErrInvalidInput)
	}
	channel := &reports.Channel{Id: id, ResourceId: resourceID}
	return google.Exec(ctx, s.limiter, apiName, "channels.stop", id,
		s.api.Channels.Stop(channel).Context(ctx).Do)
}
