// Package types defines the Item entity, the Shelf interface, backend
// configuration, and the standard error values for the pantry inventory.
//
// The ItemStore in pkg/pantry and both shelf backends depend only on this
// package, so it carries no third-party imports.
package types
