package pkgconfig

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aztecprotocol/barretenberg-go/internal/builderr"
	"github.com/aztecprotocol/barretenberg-go/internal/config"
	"github.com/aztecprotocol/barretenberg-go/internal/directive"
	"github.com/aztecprotocol/barretenberg-go/internal/hostexec"
)

var bb = Requirement{Name: "barretenberg", Min: "0.1.0", Max: "0.2.0"}

const (
	modversion = "pkg-config --modversion barretenberg >= 0.1.0, barretenberg < 0.2.0"
	libsFlags  = "pkg-config --static --cflags --libs barretenberg"
)

func TestRequirementString(t *testing.T) {
	assert.Equal(t, "barretenberg >= 0.1.0, barretenberg < 0.2.0", bb.String())
}

func TestProbeSuccess(t *testing.T) {
	fake := hostexec.NewFake().
		On(modversion, "0.1.5\n", "", 0).
		On(libsFlags, "-I/usr/local/include -L/usr/local/lib -lbarretenberg -lstdc++ -pthread\n", "", 0)
	p := &Prober{Runner: fake}

	lib, err := p.Probe(context.Background(), bb)
	require.NoError(t, err)

	assert.Equal(t, "0.1.5", lib.Version)
	assert.Equal(t, []string{"/usr/local/include"}, lib.IncludeDirs)
	assert.Equal(t, []string{"/usr/local/lib"}, lib.LinkDirs)
	assert.Equal(t, []string{"stdc++"}, lib.ExtraLibs)
	assert.Equal(t, []directive.Directive{
		directive.Search("/usr/local/lib"),
		directive.StaticLibrary("barretenberg"),
		directive.Library("stdc++"),
	}, lib.Directives)
	assert.Len(t, fake.Calls(), 2)
}

func TestRangeIsSentToPkgConfig(t *testing.T) {
	fake := hostexec.NewFake().
		On(modversion, "0.1.5\n0.1.5\n", "", 0).
		On(libsFlags, "-lbarretenberg", "", 0)

	lib, err := (&Prober{Runner: fake}).Probe(context.Background(), bb)
	require.NoError(t, err)
	assert.Equal(t, "0.1.5", lib.Version)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"--modversion", "barretenberg >= 0.1.0, barretenberg < 0.2.0"}, calls[0].Args)
}

func TestVersionOutOfRange(t *testing.T) {
	stderr := "Requested 'barretenberg < 0.2.0' but version of barretenberg is 0.2.0\n"
	fake := hostexec.NewFake().On(modversion, "", stderr, 1)

	_, err := (&Prober{Runner: fake}).Probe(context.Background(), bb)
	require.ErrorIs(t, err, builderr.ErrPkgConfigProbe)
	assert.Contains(t, err.Error(), "Requested 'barretenberg < 0.2.0' but version of barretenberg is 0.2.0")
	assert.Len(t, fake.Calls(), 1)
}

func TestProbeDisabled(t *testing.T) {
	tests := []struct {
		env  map[string]string
		want string
	}{
		{map[string]string{"NO_PKG_CONFIG": "1"}, "NO_PKG_CONFIG"},
		{map[string]string{"NO_PKG_CONFIG": ""}, "NO_PKG_CONFIG"},
		{map[string]string{"BARRETENBERG_NO_PKG_CONFIG": "1", "NO_PKG_CONFIG": "1"}, "BARRETENBERG_NO_PKG_CONFIG"},
	}
	for _, tt := range tests {
		fake := hostexec.NewFake()
		p := &Prober{Runner: fake, Lookup: config.MapLookup(tt.env)}

		_, err := p.Probe(context.Background(), bb)
		require.ErrorIs(t, err, builderr.ErrPkgConfigDisabled)
		assert.Equal(t, "Barretenberg could not be found because "+tt.want+" was set.", err.Error())
		assert.Empty(t, fake.Calls(), "a disabled probe must not spawn pkg-config")
	}
}

func TestProbeNotInstalled(t *testing.T) {
	stderr := "Package barretenberg was not found in the pkg-config search path.\n" +
		"Perhaps you should add the directory containing `barretenberg.pc'\n" +
		"to the PKG_CONFIG_PATH environment variable\n\n"
	fake := hostexec.NewFake().On(modversion, "", stderr, 1)

	_, err := (&Prober{Runner: fake}).Probe(context.Background(), bb)
	require.ErrorIs(t, err, builderr.ErrPkgConfigProbe)

	var be *builderr.Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "Package barretenberg was not found in the pkg-config search path.\n"+
		"Perhaps you should add the directory containing `barretenberg.pc'\n"+
		"to the PKG_CONFIG_PATH environment variable", be.Detail)
}

func TestProbeSilentFailure(t *testing.T) {
	fake := hostexec.NewFake().On(modversion, "", "", 2)
	_, err := (&Prober{Runner: fake}).Probe(context.Background(), bb)
	require.ErrorIs(t, err, builderr.ErrPkgConfigProbe)
	assert.Contains(t, err.Error(), "exited with status 2")
}

func TestProbeCannotRun(t *testing.T) {
	p := &Prober{Runner: hostexec.NewFake(), Program: "/opt/missing/pkg-config"}
	_, err := p.Probe(context.Background(), bb)
	require.ErrorIs(t, err, builderr.ErrPkgConfigGeneric)
	assert.Contains(t, err.Error(), "Could not run `/opt/missing/pkg-config --modversion barretenberg >= 0.1.0")
}

func TestProbeNoVersionPrinted(t *testing.T) {
	fake := hostexec.NewFake().On(modversion, "\n", "", 0)
	_, err := (&Prober{Runner: fake}).Probe(context.Background(), bb)
	require.ErrorIs(t, err, builderr.ErrPkgConfigGeneric)
}

func TestProbeFlagsFailure(t *testing.T) {
	fake := hostexec.NewFake().
		On(modversion, "0.1.5", "", 0).
		On(libsFlags, "", "Package omp, required by barretenberg, not found\n", 1)
	_, err := (&Prober{Runner: fake}).Probe(context.Background(), bb)
	require.ErrorIs(t, err, builderr.ErrPkgConfigProbe)
	assert.Equal(t, "Failed to locate correct Barretenberg. Package omp, required by barretenberg, not found.", err.Error())
}

func TestDisableVariables(t *testing.T) {
	assert.Equal(t, []string{"LIB_FOO_NO_PKG_CONFIG", "NO_PKG_CONFIG"}, DisableVariables("lib-foo"))
}
