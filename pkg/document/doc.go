// Package document loads and validates authored shaft definitions.
//
// A shaft document is a TOML file holding the overall length, display and
// page preferences, and one array of tables per segment kind. The document
// layer owns authored truth and input validation; the geometry packages
// only ever read the segment list it produces.
package document
