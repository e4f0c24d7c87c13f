// Package native hosts the thin FFI layer that links the Go API to the
// FRSDK shared library. The library is opened at runtime with purego, so the
// rest of the repository builds without cgo and without the SDK headers.
//
// This package should only be imported by pkg/frsdk. All unsafe pointer
// handling is isolated here.
package native
