// Command bbgen probes the installed Barretenberg library, prints the cgo link
// directives it needs and writes cgo bindings into $OUT_DIR.
package main

import (
	"context"
	"os"

	"github.com/aztecprotocol/barretenberg-go/internal/cli"
	"github.com/aztecprotocol/barretenberg-go/internal/diag"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	hook := diag.Install(os.Stderr)
	defer hook.Recover(&code)
	return hook.Report(cli.Execute(context.Background()))
}
