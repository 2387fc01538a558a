package hostexec

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandString(t *testing.T) {
	assert.Equal(t, "brew --prefix", Command{Name: "brew", Args: []string{"--prefix"}}.String())
	assert.Equal(t, "cc", Command{Name: "cc"}.String())
}

func TestExecCapturesStdoutAndExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	r := NewExec()
	ctx := context.Background()

	res, err := r.Run(ctx, Command{Name: "sh", Args: []string{"-c", "printf out; printf err >&2; exit 3"}})
	require.NoError(t, err)
	assert.Equal(t, "out", string(res.Stdout))
	assert.Equal(t, "err", string(res.Stderr))
	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, res.Success())
}

func TestExecForwardsStdinAndEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	res, err := NewExec().Run(context.Background(), Command{
		Name:  "sh",
		Args:  []string{"-c", `cat; printf "$BBGEN_TEST_VAR"`},
		Stdin: []byte("in:"),
		Env:   []string{"BBGEN_TEST_VAR=set"},
	})
	require.NoError(t, err)
	assert.Equal(t, "in:set", string(res.Stdout))
	assert.True(t, res.Success())
}

func TestExecLaunchFailure(t *testing.T) {
	_, err := NewExec().Run(context.Background(), Command{Name: "bbgen-definitely-missing-binary"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestFake(t *testing.T) {
	f := NewFake().
		On("pkg-config --modversion barretenberg", "0.1.5\n", "", 0).
		OnError("brew --prefix", errors.New("boom"))
	ctx := context.Background()

	res, err := f.Run(ctx, Command{Name: "pkg-config", Args: []string{"--modversion", "barretenberg"}})
	require.NoError(t, err)
	assert.Equal(t, "0.1.5\n", string(res.Stdout))

	_, err = f.Run(ctx, Command{Name: "brew", Args: []string{"--prefix"}})
	assert.EqualError(t, err, "boom")

	_, err = f.Run(ctx, Command{Name: "cc"})
	assert.ErrorIs(t, err, exec.ErrNotFound)

	calls := f.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "cc", calls[2].Name)
}

func TestExecStreamsStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	var out strings.Builder
	res, err := NewExec().Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "printf streamed"},
		Stdout: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "streamed", out.String())
	assert.Empty(t, res.Stdout)
}

func TestFakeStreamsStdout(t *testing.T) {
	f := NewFake().On("clang -", "{}", "warning", 0)

	var out strings.Builder
	res, err := f.Run(context.Background(), Command{Name: "clang", Args: []string{"-"}, Stdout: &out})
	require.NoError(t, err)
	assert.Equal(t, "{}", out.String())
	assert.Empty(t, res.Stdout)
	assert.Equal(t, "warning", string(res.Stderr))
}
