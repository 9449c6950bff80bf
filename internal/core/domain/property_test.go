package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePropertyCategory(t *testing.T) {
	tests := []struct {
		input string
		want  PropertyCategory
	}{
		{"address", PropertyAddresses},
		{"addresses", PropertyAddresses},
		{"Email", PropertyEmails},
		{"emails", PropertyEmails},
		{"external_id", PropertyExternalIDs},
		{"externalIds", PropertyExternalIDs},
		{"im", PropertyIms},
		{"ims", PropertyIms},
		{"organization", PropertyOrganizations},
		{"phones", PropertyPhones},
		{"relation", PropertyRelations},
		{"websites", PropertyWebsites},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePropertyCategory(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePropertyCategory_Unknown(t *testing.T) {
	_, err := ParsePropertyCategory("pets")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPropertyCategory_Has(t *testing.T) {
	set := PropertyPhones | PropertyEmails

	assert.True(t, set.Has(PropertyPhones))
	assert.True(t, set.Has(PropertyEmails))
	assert.True(t, set.Has(PropertyPhones|PropertyEmails))
	assert.False(t, set.Has(PropertyAddresses))
	assert.False(t, set.Has(PropertyNone))
}

func TestPropertyCategory_String(t *testing.T) {
	assert.Equal(t, "none", PropertyNone.String())
	assert.Equal(t, "phone", PropertyPhones.String())
	assert.Equal(t, "email,phone", (PropertyPhones | PropertyEmails).String())
}

func TestPropertyCategory_Categories(t *testing.T) {
	set := PropertyWebsites | PropertyAddresses

	assert.Equal(t, []PropertyCategory{PropertyAddresses, PropertyWebsites}, set.Categories())
	assert.Empty(t, PropertyNone.Categories())
}
