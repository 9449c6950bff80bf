package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		input   string
		want    FieldType
		wantErr bool
	}{
		{"STRING", FieldTypeString, false},
		{"string", FieldTypeString, false},
		{" int64 ", FieldTypeInt64, false},
		{"Bool", FieldTypeBool, false},
		{"DOUBLE", FieldTypeDouble, false},
		{"email", FieldTypeEmail, false},
		{"phone", FieldTypePhone, false},
		{"date", FieldTypeDate, false},
		{"float", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFieldType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReadAccessType(t *testing.T) {
	got, err := ParseReadAccessType("")
	require.NoError(t, err)
	assert.Equal(t, ReadAccessAllDomainUsers, got)

	got, err = ParseReadAccessType("admins_and_self")
	require.NoError(t, err)
	assert.Equal(t, ReadAccessAdminsAndSelf, got)

	_, err = ParseReadAccessType("everyone")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseSchemaFieldSpec_Minimal(t *testing.T) {
	field, err := ParseSchemaFieldSpec("EmployeeNumber:STRING")

	require.NoError(t, err)
	assert.Equal(t, "EmployeeNumber", field.FieldName)
	assert.Equal(t, FieldTypeString, field.FieldType)
	assert.Equal(t, ReadAccessAllDomainUsers, field.ReadAccessType)
	assert.False(t, field.MultiValued)
	assert.Nil(t, field.Indexed)
}

func TestParseSchemaFieldSpec_AllOptions(t *testing.T) {
	field, err := ParseSchemaFieldSpec("Level:int64:admins_and_self:multi:indexed:1..10")

	require.NoError(t, err)
	assert.Equal(t, FieldTypeInt64, field.FieldType)
	assert.Equal(t, ReadAccessAdminsAndSelf, field.ReadAccessType)
	assert.True(t, field.MultiValued)
	require.NotNil(t, field.Indexed)
	assert.True(t, *field.Indexed)
	require.NotNil(t, field.NumericMin)
	require.NotNil(t, field.NumericMax)
	assert.Equal(t, 1.0, *field.NumericMin)
	assert.Equal(t, 10.0, *field.NumericMax)
}

func TestParseSchemaFieldSpec_Errors(t *testing.T) {
	tests := []string{
		"NoType",
		"Name:BLOB",
		":STRING",
		"Name:STRING:sometimes",
		"Name:STRING:1..2",
		"Name:INT64:5..1",
		"Name:INT64:a..b",
	}

	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseSchemaFieldSpec(spec)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSchemaFieldCollection_AddGetRemove(t *testing.T) {
	c, err := NewSchemaFieldCollection(
		SchemaField{FieldName: "A", FieldType: FieldTypeString},
		SchemaField{FieldName: "B", FieldType: FieldTypeBool},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"A", "B"}, c.Names())

	f, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, FieldTypeBool, f.FieldType)

	require.NoError(t, c.Remove("A"))
	assert.Equal(t, []string{"B"}, c.Names())

	assert.ErrorIs(t, c.Remove("A"), ErrNotFound)
}

func TestSchemaFieldCollection_RejectsDuplicate(t *testing.T) {
	c, err := NewSchemaFieldCollection(SchemaField{FieldName: "A", FieldType: FieldTypeString})
	require.NoError(t, err)

	err = c.Add(SchemaField{FieldName: "a", FieldType: FieldTypeDate})

	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, 1, c.Len())
}

func TestSchemaFieldCollection_RejectsInvalid(t *testing.T) {
	_, err := NewSchemaFieldCollection(SchemaField{FieldName: "", FieldType: FieldTypeString})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSchemaFieldCollection_FieldsIsCopy(t *testing.T) {
	c, err := NewSchemaFieldCollection(SchemaField{FieldName: "A", FieldType: FieldTypeString})
	require.NoError(t, err)

	fields := c.Fields()
	fields[0].FieldName = "changed"

	assert.Equal(t, []string{"A"}, c.Names())
}
