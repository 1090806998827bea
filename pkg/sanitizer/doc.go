// Package sanitizer normalizes human-entered registry data before
// validation and storage.
//
// All functions are idempotent: applying them twice produces the same
// result. Invalid input degrades to an empty string rather than an error.
//
// Normalization includes:
//   - Strings: collapse internal whitespace, trim leading/trailing spaces
//   - Course codes: uppercase, keep letters, digits and dashes only
//   - Phone numbers: convert to E.164 format (+[country][number])
package sanitizer
