// Package internalcheck holds repository policy tests.
//
// The tests load the module's packages with golang.org/x/tools/go/packages
// and inspect their syntax:
//
//   - only internal/hostexec may import os/exec, so every subprocess goes
//     through a Runner that tests can replace;
//   - standard output belongs to the link-directive protocol, so only the
//     command entry points may reach it;
//   - panics are reserved for the unsupported-platform abort.
//
// This package has no exported API.
package internalcheck
