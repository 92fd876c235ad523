// Package model converts extracted parameter schemas into renderer-facing
// form models: one field per parameter, grouped and ordered the way the
// source declared them.
package model
