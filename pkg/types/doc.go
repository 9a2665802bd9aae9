// Package types defines the shared, stable types of the bookmark decoder:
// typed errors, the decoded Value sum type, record keys, decode limits and
// diagnostics.
//
// Design goals:
//   - Decoded values own their memory; nothing aliases the input buffer.
//   - Paranoid bounds checking; never panic on malformed input.
//   - Typed errors with stable categories (format/bounds/corrupt/limit/...).
//
// This package has no dependencies beyond the standard library and
// github.com/google/uuid.
package types
