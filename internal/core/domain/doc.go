// Package domain defines the core entities for gshell.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Account: A registered Google Workspace domain and how to authenticate to it
//   - Settings: Output, paging and rate limit preferences
//   - SchemaField / SchemaFieldCollection: Custom user attribute definitions
//   - PropertyCategory: The multi-valued user sub-property families
//   - ErrorRecord: The error reported at the command boundary
//
// It also holds the small normalisation helpers shared by every command:
// email and org unit path normalisation, MD5 password hashing and password
// generation.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
