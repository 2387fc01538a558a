package bindgen

import (
	"os"
	"path/filepath"

	"github.com/aztecprotocol/barretenberg-go/internal/builderr"
)

// WriteFile persists the artifact at path. The source is written to a
// temporary file in the same directory and renamed into place, so path holds
// either the previous file or the complete new one.
func (a *Artifact) WriteFile(path string) (err error) {
	fail := func(cause error) error {
		return builderr.Wrap(builderr.KindBindgenWrite, path, cause)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(err)
	}
	tmp, err := os.CreateTemp(dir, ".bindings-*.tmp")
	if err != nil {
		return fail(err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(a.Source); err != nil {
		_ = tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err)
	}
	return nil
}
