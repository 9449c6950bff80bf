package domain

const unknownDescription = "Unknown"

// OutputFormat selects how command results are rendered.
type OutputFormat string

// Available output formats.
const (
	// OutputTable renders results as an aligned table.
	OutputTable OutputFormat = "table"
	// OutputJSON renders results as indented JSON.
	OutputJSON OutputFormat = "json"
	// OutputYAML renders results as YAML.
	OutputYAML OutputFormat = "yaml"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputTable, OutputJSON, OutputYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// ColorMode controls coloured terminal output.
type ColorMode string

// Available colour modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the colour mode is recognised.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of the mode.
func (m ColorMode) Description() string {
	switch m {
	case ColorAuto:
		return "Auto (colour when writing to a terminal)"
	case ColorAlways:
		return "Always"
	case ColorNever:
		return "Never"
	default:
		return unknownDescription
	}
}

// Settings keys as stored in the configuration file.
const (
	SettingDefaultDomain      = "domain.default"
	SettingOutputFormat       = "output.format"
	SettingOutputColor        = "output.color"
	SettingPageSize           = "api.page_size"
	SettingRateLimitDirectory = "ratelimit.directory"
	SettingRateLimitReports   = "ratelimit.reports"
	SettingRateLimitReseller  = "ratelimit.reseller"
	SettingRateLimitBurst     = "ratelimit.burst"
)

// AllSettingKeys returns every settings key in display order.
func AllSettingKeys() []string {
	return []string{
		SettingDefaultDomain,
		SettingOutputFormat,
		SettingOutputColor,
		SettingPageSize,
		SettingRateLimitDirectory,
		SettingRateLimitReports,
		SettingRateLimitReseller,
		SettingRateLimitBurst,
	}
}

// DomainSettings holds account selection settings.
type DomainSettings struct {
	// Default is the domain used when --domain is not given.
	Default string
}

// OutputSettings holds rendering settings.
type OutputSettings struct {
	Format OutputFormat `default:"table"`
	Color  ColorMode    `default:"auto"`
}

// APISettings holds request shaping settings.
type APISettings struct {
	// PageSize is the maxResults sent with list requests.
	PageSize int `default:"100"`
}

// RateLimitSettings holds client-side request rates, per second.
type RateLimitSettings struct {
	Directory float64 `default:"10"`
	Reports   float64 `default:"5"`
	Reseller  float64 `default:"5"`
	Burst     int     `default:"10"`
}

// Settings holds all application settings.
type Settings struct {
	Domain    DomainSettings
	Output    OutputSettings
	API       APISettings
	RateLimit RateLimitSettings
}

// MaxPageSize is the largest maxResults value the Directory API accepts.
const MaxPageSize = 500
