// Package barretenberg exposes Barretenberg's C entry points as Go functions,
// one exported wrapper per symbol (new_pippenger becomes NewPippenger). The
// wrappers live in bindings.go, which bbgen writes next to this file:
//
//	go generate ./pkg/barretenberg
//
// bindings.go also carries the #cgo LDFLAGS that link the static library and
// the OpenMP runtime, so it must be regenerated whenever the installed
// library moves.
package barretenberg

//go:generate env OUT_DIR=. go run ../../cmd/bbgen
