package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType is the data type of a custom schema field.
type FieldType string

// Field types accepted by the Directory API.
const (
	FieldTypeString FieldType = "STRING"
	FieldTypeInt64  FieldType = "INT64"
	FieldTypeBool   FieldType = "BOOL"
	FieldTypeDouble FieldType = "DOUBLE"
	FieldTypeEmail  FieldType = "EMAIL"
	FieldTypePhone  FieldType = "PHONE"
	FieldTypeDate   FieldType = "DATE"
)

// ParseFieldType parses a field type case-insensitively.
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case FieldTypeString, FieldTypeInt64, FieldTypeBool, FieldTypeDouble,
		FieldTypeEmail, FieldTypePhone, FieldTypeDate:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown field type %q", ErrInvalidInput, s)
	}
}

// IsNumeric returns true for types that accept a numeric indexing range.
func (t FieldType) IsNumeric() bool {
	return t == FieldTypeInt64 || t == FieldTypeDouble
}

// ReadAccessType controls who can read a custom field's value.
type ReadAccessType string

// Read access types accepted by the Directory API.
const (
	ReadAccessAllDomainUsers ReadAccessType = "ALL_DOMAIN_USERS"
	ReadAccessAdminsAndSelf  ReadAccessType = "ADMINS_AND_SELF"
)

// ParseReadAccessType parses a read access type case-insensitively.
// An empty string maps to ALL_DOMAIN_USERS, the API default.
func ParseReadAccessType(s string) (ReadAccessType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ReadAccessAllDomainUsers, nil
	}
	t := ReadAccessType(strings.ToUpper(s))
	switch t {
	case ReadAccessAllDomainUsers, ReadAccessAdminsAndSelf:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown read access type %q", ErrInvalidInput, s)
	}
}

// SchemaField is a custom user attribute definition.
type SchemaField struct {
	FieldID        string         `json:"field_id,omitempty" yaml:"field_id,omitempty"`
	FieldName      string         `json:"field_name" yaml:"field_name"`
	FieldType      FieldType      `json:"field_type" yaml:"field_type"`
	DisplayName    string         `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Indexed        *bool          `json:"indexed,omitempty" yaml:"indexed,omitempty"`
	MultiValued    bool           `json:"multi_valued" yaml:"multi_valued"`
	ReadAccessType ReadAccessType `json:"read_access_type" yaml:"read_access_type"`
	NumericMin     *float64       `json:"numeric_min,omitempty" yaml:"numeric_min,omitempty"`
	NumericMax     *float64       `json:"numeric_max,omitempty" yaml:"numeric_max,omitempty"`
}

// Validate checks the field name, type and numeric range.
func (f *SchemaField) Validate() error {
	if strings.TrimSpace(f.FieldName) == "" {
		return fmt.Errorf("%w: field name is required", ErrInvalidInput)
	}
	if _, err := ParseFieldType(string(f.FieldType)); err != nil {
		return err
	}
	if (f.NumericMin != nil || f.NumericMax != nil) && !f.FieldType.IsNumeric() {
		return fmt.Errorf("%w: numeric range is only valid for INT64 and DOUBLE fields", ErrInvalidInput)
	}
	if f.NumericMin != nil && f.NumericMax != nil && *f.NumericMin > *f.NumericMax {
		return fmt.Errorf("%w: numeric min %v exceeds max %v", ErrInvalidInput, *f.NumericMin, *f.NumericMax)
	}
	return nil
}

// ParseSchemaFieldSpec builds a field from name:TYPE[:ACCESS][:multi][:indexed][:min..max].
// Options after the type may appear in any order.
func ParseSchemaFieldSpec(spec string) (SchemaField, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return SchemaField{}, fmt.Errorf("%w: field spec %q must be name:TYPE", ErrInvalidInput, spec)
	}

	fieldType, err := ParseFieldType(parts[1])
	if err != nil {
		return SchemaField{}, err
	}

	field := SchemaField{
		FieldName:      strings.TrimSpace(parts[0]),
		FieldType:      fieldType,
		ReadAccessType: ReadAccessAllDomainUsers,
	}

	for _, opt := range parts[2:] {
		opt = strings.TrimSpace(opt)
		switch lower := strings.ToLower(opt); {
		case lower == "":
		case lower == "multi":
			field.MultiValued = true
		case lower == "indexed":
			indexed := true
			field.Indexed = &indexed
		case lower == "noindex":
			indexed := false
			field.Indexed = &indexed
		case strings.Contains(opt, ".."):
			lo, hi, err := parseRange(opt)
			if err != nil {
				return SchemaField{}, err
			}
			field.NumericMin, field.NumericMax = lo, hi
		default:
			access, err := ParseReadAccessType(opt)
			if err != nil {
				return SchemaField{}, fmt.Errorf("%w: unknown field option %q", ErrInvalidInput, opt)
			}
			field.ReadAccessType = access
		}
	}

	if err := field.Validate(); err != nil {
		return SchemaField{}, err
	}
	return field, nil
}

func parseRange(s string) (*float64, *float64, error) {
	lo, hi, _ := strings.Cut(s, "..")
	var minV, maxV *float64
	if lo != "" {
		v, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: bad range minimum %q", ErrInvalidInput, lo)
		}
		minV = &v
	}
	if hi != "" {
		v, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: bad range maximum %q", ErrInvalidInput, hi)
		}
		maxV = &v
	}
	return minV, maxV, nil
}

// SchemaFieldCollection is an ordered set of fields keyed by field name.
type SchemaFieldCollection struct {
	fields []SchemaField
}

// NewSchemaFieldCollection builds a collection, rejecting duplicate names.
func NewSchemaFieldCollection(fields ...SchemaField) (*SchemaFieldCollection, error) {
	c := &SchemaFieldCollection{}
	for _, f := range fields {
		if err := c.Add(f); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends a validated field. Names compare case-insensitively.
func (c *SchemaFieldCollection) Add(field SchemaField) error {
	if err := field.Validate(); err != nil {
		return err
	}
	if c.indexOf(field.FieldName) >= 0 {
		return fmt.Errorf("%w: field %q", ErrAlreadyExists, field.FieldName)
	}
	c.fields = append(c.fields, field)
	return nil
}

// Remove deletes the named field.
func (c *SchemaFieldCollection) Remove(name string) error {
	i := c.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: field %q", ErrNotFound, name)
	}
	c.fields = append(c.fields[:i], c.fields[i+1:]...)
	return nil
}

// Get returns the named field.
func (c *SchemaFieldCollection) Get(name string) (SchemaField, bool) {
	i := c.indexOf(name)
	if i < 0 {
		return SchemaField{}, false
	}
	return c.fields[i], true
}

// Fields returns a copy of the fields in insertion order.
func (c *SchemaFieldCollection) Fields() []SchemaField {
	out := make([]SchemaField, len(c.fields))
	copy(out, c.fields)
	return out
}

// Names returns the field names in insertion order.
func (c *SchemaFieldCollection) Names() []string {
	names := make([]string, 0, len(c.fields))
	for _, f := range c.fields {
		names = append(names, f.FieldName)
	}
	return names
}

// Len returns the number of fields.
func (c *SchemaFieldCollection) Len() int {
	return len(c.fields)
}

func (c *SchemaFieldCollection) indexOf(name string) int {
	for i, f := range c.fields {
		if strings.EqualFold(f.FieldName, name) {
			return i
		}
	}
	return -1
}
