package domain

import (
	"fmt"
	"strings"
)

// PropertyCategory identifies one multi-valued user sub-property family.
// It is a bitfield so a set of dirty categories fits in one value.
type PropertyCategory uint16

const (
	// PropertyAddresses is the addresses list.
	PropertyAddresses PropertyCategory = 1 << iota
	// PropertyEmails is the secondary email addresses list.
	PropertyEmails
	// PropertyExternalIDs is the external identifiers list.
	PropertyExternalIDs
	// PropertyIms is the instant messaging accounts list.
	PropertyIms
	// PropertyOrganizations is the organizations list.
	PropertyOrganizations
	// PropertyPhones is the phone numbers list.
	PropertyPhones
	// PropertyRelations is the relations list.
	PropertyRelations
	// PropertyWebsites is the websites list.
	PropertyWebsites
)

// PropertyNone is the empty category set.
const PropertyNone PropertyCategory = 0

// AllPropertyCategories lists every single category in display order.
var AllPropertyCategories = []PropertyCategory{
	PropertyAddresses,
	PropertyEmails,
	PropertyExternalIDs,
	PropertyIms,
	PropertyOrganizations,
	PropertyPhones,
	PropertyRelations,
	PropertyWebsites,
}

var propertyNames = map[PropertyCategory]string{
	PropertyAddresses:     "address",
	PropertyEmails:        "email",
	PropertyExternalIDs:   "externalid",
	PropertyIms:           "im",
	PropertyOrganizations: "organization",
	PropertyPhones:        "phone",
	PropertyRelations:     "relation",
	PropertyWebsites:      "website",
}

// ParsePropertyCategory parses a single category name. Plural forms are accepted.
func ParsePropertyCategory(s string) (PropertyCategory, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", "", "-", "").Replace(name)
	candidates := []string{name, strings.TrimSuffix(name, "es"), strings.TrimSuffix(name, "s")}
	for _, cat := range AllPropertyCategories {
		for _, c := range candidates {
			if c == propertyNames[cat] {
				return cat, nil
			}
		}
	}
	return PropertyNone, fmt.Errorf("%w: unknown property type %q", ErrInvalidInput, s)
}

// Has returns true if every bit of other is set.
func (c PropertyCategory) Has(other PropertyCategory) bool {
	return other != PropertyNone && c&other == other
}

// Categories returns the single categories contained in c.
func (c PropertyCategory) Categories() []PropertyCategory {
	var out []PropertyCategory
	for _, cat := range AllPropertyCategories {
		if c.Has(cat) {
			out = append(out, cat)
		}
	}
	return out
}

// String returns a comma separated list of category names.
func (c PropertyCategory) String() string {
	if c == PropertyNone {
		return "none"
	}
	cats := c.Categories()
	parts := make([]string, 0, len(cats))
	for _, cat := range cats {
		parts = append(parts, propertyNames[cat])
	}
	return strings.Join(parts, ",")
}
