// Package catalog holds the static description of GL program interfaces.
//
// It defines the GL enums used by program interface queries (interfaces,
// interface parameters, resource properties, shader stages, GLSL types) and
// the property table that decides which properties are queried for which
// interface:
//
//	props, err := catalog.PropertiesFor(catalog.Uniform)
//	// REFERENCED_BY_* x6, TYPE, ARRAY_SIZE, LOCATION, OFFSET, BLOCK_INDEX,
//	// ARRAY_STRIDE, MATRIX_STRIDE, IS_ROW_MAJOR, NAME_LENGTH
//
// Subroutine and subroutine-uniform interfaces exist once per shader stage;
// Interface.Category folds them into the eleven categories that share a
// property set.
//
// Array-valued properties (ACTIVE_VARIABLES, COMPATIBLE_SUBROUTINES) are not
// part of the scalar table and are reported by ArrayProperty together with
// the interface parameter that bounds their length.
//
// All tables are package-level and never mutated.
package catalog
