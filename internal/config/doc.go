// Package config loads schemafix settings from defaults, an optional config
// file and SCHEMAFIX_* environment variables, in increasing precedence.
package config
