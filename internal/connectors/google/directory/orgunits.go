package directory

import (
	"context"
	"strings"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// Org unit list types.
const (
	OrgUnitsAll                = "all"
	OrgUnitsChildren           = "children"
	OrgUnitsAllIncludingParent = "all_including_parent"
)

// NewOrgUnit describes an org unit to create.
type NewOrgUnit struct {
	Name string
	// ParentPath defaults to the root unit.
	ParentPath       string
	Description      string
	BlockInheritance bool
}

// OrgUnitUpdate holds the changes of a set-orgunit request. Nil fields are left untouched.
type OrgUnitUpdate struct {
	Name             *string
	ParentPath       *string
	Description      *string
	BlockInheritance *bool
}

// OrgUnitRow is an org unit flattened for display.
type OrgUnitRow struct {
	Path             string `json:"path" yaml:"path"`
	Name             string `json:"name" yaml:"name"`
	ID               string `json:"id" yaml:"id"`
	ParentPath       string `json:"parent_path,omitempty" yaml:"parent_path,omitempty"`
	Description      string `json:"description,omitempty" yaml:"description,omitempty"`
	BlockInheritance bool   `json:"block_inheritance" yaml:"block_inheritance"`
}

// NewOrgUnitRow flattens an org unit.
func NewOrgUnitRow(o *admin.OrgUnit) OrgUnitRow {
	return OrgUnitRow{
		Path: o.OrgUnitPath, Name: o.Name, ID: o.OrgUnitId, ParentPath: o.ParentOrgUnitPath,
		Description: o.Description, BlockInheritance: o.BlockInheritance,
	}
}

// TableHeader returns the column names used by TableRow.
func (r OrgUnitRow) TableHeader() []string {
	return []string{"Path", "Name", "Parent", "Description"}
}

// TableRow returns the row cells.
func (r OrgUnitRow) TableRow() []string {
	return []string{r.Path, r.Name, r.ParentPath, r.Description}
}

// orgUnitKey turns a path into the form used in request URLs, without the leading slash.
func orgUnitKey(path string) string {
	return strings.TrimPrefix(domain.NormalizeOrgUnitPath(path), "/")
}

// GetOrgUnit fetches an org unit by path or ID.
func (s *Service) GetOrgUnit(ctx context.Context, path string) (*admin.OrgUnit, error) {
	if err := required("org unit path", path); err != nil {
		return nil, err
	}
	key := orgUnitKey(path)
	return google.Call(ctx, s.limiter, apiName, "orgunits.get", key,
		s.api.Orgunits.Get(s.customer, key).Context(ctx).Do)
}

// ListOrgUnits lists org units below path. listType is all, children or
// all_including_parent; empty means all.
func (s *Service) ListOrgUnits(ctx context.Context, path, listType string) ([]*admin.OrgUnit, error) {
	t, err := oneOf("type", listType, OrgUnitsAll, OrgUnitsChildren, OrgUnitsAllIncludingParent)
	if err != nil {
		return nil, err
	}
	if t == "" {
		t = OrgUnitsAll
	}

	call := s.api.Orgunits.List(s.customer).Type(t)
	target := "/"
	if path != "" {
		target = domain.NormalizeOrgUnitPath(path)
		call.OrgUnitPath(target)
	}
	resp, err := google.Call(ctx, s.limiter, apiName, "orgunits.list", target, call.Context(ctx).Do)
	if err != nil {
		return nil, err
	}
	return resp.OrganizationUnits, nil
}

// InsertOrgUnit creates an org unit.
func (s *Service) InsertOrgUnit(ctx context.Context, ou NewOrgUnit) (*admin.OrgUnit, error) {
	if err := required("org unit name", ou.Name); err != nil {
		return nil, err
	}
	body := &admin.OrgUnit{
		Name:              strings.TrimSpace(ou.Name),
		ParentOrgUnitPath: domain.NormalizeOrgUnitPath(ou.ParentPath),
		Description:       ou.Description,
		BlockInheritance:  ou.BlockInheritance,
	}
	target := strings.TrimSuffix(body.ParentOrgUnitPath, "/") + "/" + body.Name
	return google.Call(ctx, s.limiter, apiName, "orgunits.insert", target,
		s.api.Orgunits.Insert(s.customer, body).Context(ctx).Do)
}

// PatchOrgUnit applies an OrgUnitUpdate.
func (s *Service) PatchOrgUnit(ctx context.Context, path string, update OrgUnitUpdate) (*admin.OrgUnit, error) {
	if err := required("org unit path", path); err != nil {
		return nil, err
	}
	patch := &admin.OrgUnit{}
	dirty := false
	if update.Name != nil {
		patch.Name = strings.TrimSpace(*update.Name)
		dirty = true
	}
	if update.ParentPath != nil {
		patch.ParentOrgUnitPath = domain.NormalizeOrgUnitPath(*update.ParentPath)
		dirty = true
	}
	if update.Description != nil {
		patch.Description = *update.Description
		patch.ForceSendFields = append(patch.ForceSendFields, "Description")
		dirty = true
	}
	if update.BlockInheritance != nil {
		patch.BlockInheritance = *update.BlockInheritance
		patch.ForceSendFields = append(patch.ForceSendFields, "BlockInheritance")
		dirty = true
	}
	if !dirty {
		return nil, errNothingToUpdate
	}

	key := orgUnitKey(path)
	return google.Call(ctx, s.limiter, apiName, "orgunits.patch", key,
		s.api.Orgunits.Patch(s.customer, key, patch).Context(ctx).Do)
}

// DeleteOrgUnit deletes an empty org unit.
func (s *Service) DeleteOrgUnit(ctx context.Context, path string) error {
	if err := required("org unit path", path); err != nil {
		return err
	}
	key := orgUnitKey(path)
	return google.Exec(ctx, s.limiter, apiName, "orgunits.delete", key,
		s.api.Orgunits.Delete(s.customer, key).Context(ctx).Do)
}
