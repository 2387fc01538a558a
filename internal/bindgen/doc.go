// Package bindgen turns a curated subset of the native library's C++ headers
// into cgo declarations.
//
// The headers are parsed by a HeaderParser. ClangParser, the production
// implementation, runs clang with -ast-dump=json over an inlined wrapper
// header and reads the FunctionDecl nodes back. The Generator keeps only the
// allowlisted functions, in the order the parser discovered them, and renders
// a Go file whose cgo preamble declares each one as a C prototype next to the
// #cgo LDFLAGS derived from the emitted link directives.
//
// Tests drive the Generator with synthetic symbol tables and ClangParser with
// canned AST JSON, so neither needs the native header tree.
package bindgen
