package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// SchemaRow is a schema flattened for display.
type SchemaRow struct {
	Name        string   `json:"name" yaml:"name"`
	ID          string   `json:"id" yaml:"id"`
	DisplayName string   `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Fields      []string `json:"fields" yaml:"fields"`
}

// NewSchemaRow flattens a schema.
func NewSchemaRow(sc *admin.Schema) SchemaRow {
	row := SchemaRow{Name: sc.SchemaName, ID: sc.SchemaId, DisplayName: sc.DisplayName}
	for _, f := range sc.Fields {
		row.Fields = append(row.Fields, f.FieldName)
	}
	return row
}

// TableHeader returns the column names used by TableRow.
func (r SchemaRow) TableHeader() []string {
	return []string{"Name", "Display Name", "Fields", "ID"}
}

// TableRow returns the row cells.
func (r SchemaRow) TableRow() []string {
	return []string{r.Name, r.DisplayName, strings.Join(r.Fields, ", "), r.ID}
}

// SchemaFieldRow is one field of a schema.
type SchemaFieldRow struct {
	Schema             string `json:"schema" yaml:"schema"`
	domain.SchemaField `yaml:",inline"`
}

// TableHeader returns the column names used by TableRow.
func (r SchemaFieldRow) TableHeader() []string {
	return []string{"Schema", "Field", "Type", "Access", "Multi", "Indexed", "Range"}
}

// TableRow returns the row cells.
func (r SchemaFieldRow) TableRow() []string {
	indexed := ""
	if r.Indexed != nil {
		indexed = yesNo(*r.Indexed)
	}
	return []string{
		r.Schema, r.FieldName, string(r.FieldType), string(r.ReadAccessType),
		yesNo(r.MultiValued), indexed, formatRange(r.NumericMin, r.NumericMax),
	}
}

func formatRange(minV, maxV *float64) string {
	if minV == nil && maxV == nil {
		return ""
	}
	f := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	return f(minV) + ".." + f(maxV)
}

// ToSchemaFieldSpec converts a field into its API form.
func ToSchemaFieldSpec(f domain.SchemaField) *admin.SchemaFieldSpec {
	spec := &admin.SchemaFieldSpec{
		FieldId:        f.FieldID,
		FieldName:      f.FieldName,
		FieldType:      string(f.FieldType),
		DisplayName:    f.DisplayName,
		Indexed:        f.Indexed,
		MultiValued:    f.MultiValued,
		ReadAccessType: string(f.ReadAccessType),
	}
	if f.NumericMin != nil || f.NumericMax != nil {
		idx := &admin.SchemaFieldSpecNumericIndexingSpec{}
		if f.NumericMin != nil {
			idx.MinValue = *f.NumericMin
			idx.ForceSendFields = append(idx.ForceSendFields, "MinValue")
		}
		if f.NumericMax != nil {
			idx.MaxValue = *f.NumericMax
			idx.ForceSendFields = append(idx.ForceSendFields, "MaxValue")
		}
		spec.NumericIndexingSpec = idx
	}
	return spec
}

// FromSchemaFieldSpec converts an API field into its friendly form.
func FromSchemaFieldSpec(spec *admin.SchemaFieldSpec) domain.SchemaField {
	f := domain.SchemaField{
		FieldID:        spec.FieldId,
		FieldName:      spec.FieldName,
		FieldType:      domain.FieldType(strings.ToUpper(spec.FieldType)),
		DisplayName:    spec.DisplayName,
		Indexed:        spec.Indexed,
		MultiValued:    spec.MultiValued,
		ReadAccessType: domain.ReadAccessType(strings.ToUpper(spec.ReadAccessType)),
	}
	if idx := spec.NumericIndexingSpec; idx != nil {
		if idx.MinValue != 0 || slices.Contains(idx.ForceSendFields, "MinValue") {
			v := idx.MinValue
			f.NumericMin = &v
		}
		if idx.MaxValue != 0 || slices.Contains(idx.ForceSendFields, "MaxValue") {
			v := idx.MaxValue
			f.NumericMax = &v
		}
	}
	return f
}

// ToSchema builds an API schema from a field collection.
func ToSchema(name, displayName string, fields *domain.SchemaFieldCollection) *admin.Schema {
	sc := &admin.Schema{SchemaName: name, DisplayName: displayName}
	for _, f := range fields.Fields() {
		sc.Fields = append(sc.Fields, ToSchemaFieldSpec(f))
	}
	return sc
}

// FromSchema collects the fields of an API schema.
func FromSchema(sc *admin.Schema) (*domain.SchemaFieldCollection, error) {
	fields := make([]domain.SchemaField, 0, len(sc.Fields))
	for _, spec := range sc.Fields {
		fields = append(fields, FromSchemaFieldSpec(spec))
	}
	c, err := domain.NewSchemaFieldCollection(fields...)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", sc.SchemaName, err)
	}
	return c, nil
}

// SchemaFieldRows flattens the fields of a schema.
func SchemaFieldRows(sc *admin.Schema) []SchemaFieldRow {
	rows := make([]SchemaFieldRow, 0, len(sc.Fields))
	for _, spec := range sc.Fields {
		rows = append(rows, SchemaFieldRow{Schema: sc.SchemaName, SchemaField: FromSchemaFieldSpec(spec)})
	}
	return rows
}

const schemaPath = "admin/directory/v1/customer/{customerId}/schemas/{schemaKey}"

// GetSchema fetches a schema by name or ID. Numeric bounds the server
// sends as 0 stay set on the returned fields.
func (s *Service) GetSchema(ctx context.Context, schemaKey string) (*admin.Schema, error) {
	if err := required("schema", schemaKey); err != nil {
		return nil, err
	}
	return google.Call(ctx, s.limiter, apiName, "schemas.get", schemaKey,
		func(...googleapi.CallOption) (*admin.Schema, error) {
			return s.fetchSchema(ctx, schemaKey)
		})
}

// fetchSchema issues schemas.get itself so the raw body is available to
// decodeSchema.
func (s *Service) fetchSchema(ctx context.Context, schemaKey string) (*admin.Schema, error) {
	target := googleapi.ResolveRelative(s.api.BasePath, schemaPath) + "?alt=json&prettyPrint=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	googleapi.Expand(req.URL, map[string]string{
		"customerId": s.customer,
		"schemaKey":  schemaKey,
	})

	res, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer googleapi.CloseBody(res)
	if err := googleapi.CheckResponse(res); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return decodeSchema(data)
}

// decodeSchema decodes a schema and marks every numeric bound present in
// data as sent, so FromSchemaFieldSpec keeps a bound of 0.
func decodeSchema(data []byte) (*admin.Schema, error) {
	var sc admin.Schema
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	var raw struct {
		Fields []struct {
			NumericIndexingSpec map[string]json.RawMessage `json:"numericIndexingSpec"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	for i, f := range raw.Fields {
		if i >= len(sc.Fields) || sc.Fields[i].NumericIndexingSpec == nil {
			continue
		}
		idx := sc.Fields[i].NumericIndexingSpec
		if _, ok := f.NumericIndexingSpec["minValue"]; ok {
			idx.ForceSendFields = append(idx.ForceSendFields, "MinValue")
		}
		if _, ok := f.NumericIndexingSpec["maxValue"]; ok {
			idx.ForceSendFields = append(idx.ForceSendFields, "MaxValue")
		}
	}
	return &sc, nil
}

// ListSchemas lists the customer's schemas.
func (s *Service) ListSchemas(ctx context.Context) ([]*admin.Schema, error) {
	resp, err := google.Call(ctx, s.limiter, apiName, "schemas.list", s.customer,
		s.api.Schemas.List(s.customer).Context(ctx).Do)
	if err != nil {
		return nil, err
	}
	return resp.Schemas, nil
}

// InsertSchema creates a schema with at least one field.
func (s *Service) InsertSchema(ctx context.Context, name, displayName string, fields *domain.SchemaFieldCollection) (*admin.Schema, error) {
	if err := required("schema name", name); err != nil {
		return nil, err
	}
	if fields == nil || fields.Len() == 0 {
		return nil, fmt.Errorf("%w: a schema needs at least one field", domain.ErrInvalidInput)
	}
	body := ToSchema(strings.TrimSpace(name), displayName, fields)
	return google.Call(ctx, s.limiter, apiName, "schemas.insert", body.SchemaName,
		s.api.Schemas.Insert(s.customer, body).Context(ctx).Do)
}

// DeleteSchema deletes a schema.
func (s *Service) DeleteSchema(ctx context.Context, schemaKey string) error {
	if err := required("schema", schemaKey); err != nil {
		return err
	}
	return google.Exec(ctx, s.limiter, apiName, "schemas.delete", schemaKey,
		s.api.Schemas.Delete(s.customer, schemaKey).Context(ctx).Do)
}

// AddSchemaField fetches a schema, appends field and writes it back.
func (s *Service) AddSchemaField(ctx context.Context, schemaKey string, field domain.SchemaField) (*admin.Schema, error) {
	return s.modifySchema(ctx, schemaKey, func(fields *domain.SchemaFieldCollection) error {
		return fields.Add(field)
	})
}

// RemoveSchemaField fetches a schema, drops the named field and writes it back.
func (s *Service) RemoveSchemaField(ctx context.Context, schemaKey, fieldName string) (*admin.Schema, error) {
	return s.modifySchema(ctx, schemaKey, func(fields *domain.SchemaFieldCollection) error {
		if err := fields.Remove(fieldName); err != nil {
			return err
		}
		if fields.Len() == 0 {
			return fmt.Errorf("%w: cannot remove the last field of a schema", domain.ErrInvalidInput)
		}
		return nil
	})
}

func (s *Service) modifySchema(ctx context.Context, schemaKey string, modify func(*domain.SchemaFieldCollection) error) (*admin.Schema, error) {
	current, err := s.GetSchema(ctx, schemaKey)
	if err != nil {
		return nil, err
	}
	fields, err := FromSchema(current)
	if err != nil {
		return nil, err
	}
	if err := modify(fields); err != nil {
		return nil, err
	}

	body := ToSchema(current.SchemaName, current.DisplayName, fields)
	return google.Call(ctx, s.limiter, apiName, "schemas.update", schemaKey,
		s.api.Schemas.Update(s.customer, schemaKey, body).Context(ctx).Do)
}
