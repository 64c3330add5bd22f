// Package sanitizer normalizes free-text input before validation and storage.
//
// All functions are idempotent: applying them twice yields the same result as
// applying them once. Invalid input is never an error; it normalizes to the
// empty string, which validation then rejects.
package sanitizer
