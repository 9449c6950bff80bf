package directory

import (
	"context"
	"strconv"
	"time"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
)

// TokenRow is one OAuth token a user issued to an application.
type TokenRow struct {
	ClientID    string   `json:"client_id" yaml:"client_id"`
	DisplayText string   `json:"display_text" yaml:"display_text"`
	Anonymous   bool     `json:"anonymous" yaml:"anonymous"`
	NativeApp   bool     `json:"native_app" yaml:"native_app"`
	Scopes      []string `json:"scopes" yaml:"scopes"`
}

// TableHeader returns the column names used by TableRow.
func (r TokenRow) TableHeader() []string {
	return []string{"Client ID", "Application", "Native", "Scopes"}
}

// TableRow returns the row cells.
func (r TokenRow) TableRow() []string {
	return []string{r.ClientID, r.DisplayText, yesNo(r.NativeApp), strconv.Itoa(len(r.Scopes))}
}

// ASPRow is one application-specific password.
type ASPRow struct {
	CodeID       int64  `json:"code_id" yaml:"code_id"`
	Name         string `json:"name" yaml:"name"`
	CreationTime string `json:"creation_time" yaml:"creation_time"`
	LastTimeUsed string `json:"last_time_used,omitempty" yaml:"last_time_used,omitempty"`
}

// TableHeader returns the column names used by TableRow.
func (r ASPRow) TableHeader() []string {
	return []string{"Code ID", "Name", "Created", "Last Used"}
}

// TableRow returns the row cells.
func (r ASPRow) TableRow() []string {
	return []string{strconv.FormatInt(r.CodeID, 10), r.Name, r.CreationTime, r.LastTimeUsed}
}

// VerificationCodeRow is one backup verification code.
type VerificationCodeRow struct {
	UserID string `json:"user_id" yaml:"user_id"`
	Code   string `json:"code" yaml:"code"`
}

// TableHeader returns the column names used by TableRow.
func (r VerificationCodeRow) TableHeader() []string {
	return []string{"User ID", "Code"}
}

// TableRow returns the row cells.
func (r VerificationCodeRow) TableRow() []string {
	return []string{r.UserID, r.Code}
}

// ListTokens lists the OAuth tokens a user has issued.
func (s *Service) ListTokens(ctx context.Context, userKey string) ([]TokenRow, error) {
	if err := required("user", userKey); err != nil {
		return nil, err
	}
	key := s.email(userKey)
	resp, err := google.Call(ctx, s.limiter, apiName, "tokens.list", key,
		s.api.Tokens.List(key).Context(ctx).Do)
	if err != nil {
		return nil, err
	}
	rows := make([]TokenRow, 0, len(resp.Items))
	for _, t := range resp.Items {
		rows = append(rows, TokenRow{
			ClientID: t.ClientId, DisplayText: t.DisplayText,
			Anonymous: t.Anonymous, NativeApp: t.NativeApp, Scopes: t.Scopes,
		})
	}
	return rows, nil
}

// DeleteToken revokes the token a user issued to clientID.
func (s *Service) DeleteToken(ctx context.Context, userKey, clientID string) error {
	if err := required("user", userKey); err != nil {
		return err
	}
	if err := required("client id", clientID); err != nil {
		return err
	}
	key := s.email(userKey)
	return google.Exec(ctx, s.limiter, apiName, "tokens.delete", key,
		s.api.Tokens.Delete(key, clientID).Context(ctx).Do)
}

// ListASPs lists a user's application-specific passwords.
func (s *Service) ListASPs(ctx context.Context, userKey string) ([]ASPRow, error) {
	if err := required("user", userKey); err != nil {
		return nil, err
	}
	key := s.email(userKey)
	resp, err := google.Call(ctx, s.limiter, apiName, "asps.list", key,
		s.api.Asps.List(key).Context(ctx).Do)
	if err != nil {
		return nil, err
	}
	rows := make([]ASPRow, 0, len(resp.Items))
	for _, a := range resp.Items {
		rows = append(rows, ASPRow{
			CodeID:       a.CodeId,
			Name:         a.Name,
			CreationTime: millisToRFC3339(a.CreationTime),
			LastTimeUsed: millisToRFC3339(a.LastTimeUsed),
		})
	}
	return rows, nil
}

// DeleteASP revokes one application-specific password.
func (s *Service) DeleteASP(ctx context.Context, userKey string, codeID int64) error {
	if err := required("user", userKey); err != nil {
		return err
	}
	key := s.email(userKey)
	return google.Exec(ctx, s.limiter, apiName, "asps.delete", key,
		s.api.Asps.Delete(key, codeID).Context(ctx).Do)
}

// ListVerificationCodes lists a user's current backup verification codes.
func (s *Service) ListVerificationCodes(ctx context.Context, userKey string) ([]VerificationCodeRow, error) {
	if err := required("user", userKey); err != nil {
		return nil, err
	}
	key := s.email(userKey)
	resp, err := google.Call(ctx, s.limiter, apiName, "verificationCodes.list", key,
		s.api.VerificationCodes.List(key).Context(ctx).Do)
	if err != nil {
		return nil, err
	}
	return verificationRows(resp), nil
}

// GenerateVerificationCodes replaces a user's backup codes with new ones.
func (s *Service) GenerateVerificationCodes(ctx context.Context, userKey string) error {
	if err := required("user", userKey); err != nil {
		return err
	}
	key := s.email(userKey)
	return google.Exec(ctx, s.limiter, apiName, "verificationCodes.generate", key,
		s.api.VerificationCodes.Generate(key).Context(ctx).Do)
}

// InvalidateVerificationCodes invalidates all of a user's backup codes.
func (s *Service) InvalidateVerificationCodes(ctx context.Context, userKey string) error {
	if err := required("user", userKey); err != nil {
		return err
	}
	key := s.email(userKey)
	return google.Exec(ctx, s.limiter, apiName, "verificationCodes.invalidate", key,
		s.api.VerificationCodes.Invalidate(key).Context(ctx).Do)
}

func verificationRows(resp *admin.VerificationCodes) []VerificationCodeRow {
	rows := make([]VerificationCodeRow, 0, len(resp.Items))
	for _, c := range resp.Items {
		rows = append(rows, VerificationCodeRow{UserID: c.UserId, Code: c.VerificationCode})
	}
	return rows
}

// millisToRFC3339 formats epoch milliseconds. Zero yields "".
func millisToRFC3339(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
