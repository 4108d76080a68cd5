// Package manifest enumerates *.urls manifest files and turns their
// non-comment lines into download jobs. The manifest base name selects
// the destination directory: "default" maps to the output root, any
// other name maps to a same-named subdirectory.
package manifest
