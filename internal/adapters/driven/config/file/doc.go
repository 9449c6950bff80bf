// Package file stores gshell settings in ~/.gshell/config.toml.
// Keys are dotted paths ("output.format") mapped onto TOML tables.
package file
