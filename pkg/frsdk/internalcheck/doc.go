// Package internalcheck holds static policy tests over the frsdk-go module.
//
// The tests load the module with golang.org/x/tools/go/packages and inspect
// imports and syntax. They guard two rules:
//
//   - only internal/native may import unsafe or the purego loader, so every
//     pointer that crosses into the shared library is created in one place;
//   - raw image buffers are never handed to fmt, slog or the logging facade;
//     images are described by their length.
//
// This package is not intended for external use.
package internalcheck
