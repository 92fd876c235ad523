// Package scad defines the public contracts for loading annotated OpenSCAD
// model sources and extracting customizer parameter schemas from them.
// Implementations live under internal/scad; construction helpers are exposed
// by the top-level customizer package.
package scad
