// Package filesystem provides the OS implementation of the types.FS
// capability interface. Test doubles live in pkg/testutil.
package filesystem
