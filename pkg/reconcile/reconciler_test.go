// pkg/reconcile/reconciler_test.go
package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openembed/hosttools/pkg/install"
	"github.com/openembed/hosttools/pkg/manifest"
	"github.com/openembed/hosttools/pkg/platform"
	"github.com/openembed/hosttools/pkg/probe"
	"github.com/openembed/hosttools/pkg/shell"
)

// machine simulates a host: probe commands pass or fail according to
// current state, install commands mutate that state.
type machine struct {
	probes   map[string]bool
	installs map[string]installBehavior
	calls    []string
}

// installBehavior scripts one install command. An empty enables leaves
// the probe failing even though the install reported success, which is
// the pending-restart condition.
type installBehavior struct {
	fail    bool
	enables string
}

func (m *machine) Run(_ context.Context, command, _ string, _ bool) shell.Result {
	m.calls = append(m.calls, command)

	if b, ok := m.installs[command]; ok {
		if b.fail {
			return exit(1)
		}
		if b.enables != "" {
			m.probes[b.enables] = true
		}
		return pass("")
	}

	if m.probes[command] {
		return pass("version 1.0.0\n")
	}
	return exit(127)
}

func (m *machine) indexOf(command string) int {
	for i, c := range m.calls {
		if c == command {
			return i
		}
	}
	return -1
}

func pass(stdout string) shell.Result {
	zero := 0
	empty := ""
	return shell.Result{Stdout: &stdout, Stderr: &empty, ExitCode: &zero}
}

func exit(code int) shell.Result {
	out := ""
	return shell.Result{Stdout: &out, Stderr: &out, ExitCode: &code}
}

type fakeProbe struct {
	os   string
	arch string
}

func (f fakeProbe) OS(context.Context) (string, error)   { return f.os, nil }
func (f fakeProbe) Arch(context.Context) (string, error) { return f.arch, nil }

type noopRefresher struct{}

func (noopRefresher) Refresh() error { return nil }

const aptManifest = `{
	"supported_architectures": ["x86_64", "aarch64"],
	"package_managers": {
		"apt": {"check_command": "apt --version", "install_url": "https://wiki.debian.org/Apt"}
	},
	"platforms": {"linux": {"manager": "apt"}},
	"platform_packages": {
		"apt": [
			{"name": "cmake", "package": "cmake", "check_command": "cmake --version"},
			{"name": "ninja", "package": "ninja-build", "check_command": "ninja --version"},
			{"name": "gperf", "package": "gperf", "check_command": "gperf --version", "architectures": ["x86_64"]}
		]
	}
}`

func writeManifest(t *testing.T, data string) *manifest.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return manifest.NewStore(path)
}

func newReconciler(t *testing.T, data string, m *machine, env fakeProbe) *Reconciler {
	t.Helper()
	store := writeManifest(t, data)
	resolver := platform.NewResolver(store, env)
	prober := probe.NewProber(m, nil)
	installer := install.New(install.Config{
		Runner:    m,
		Prober:    prober,
		Refresher: noopRefresher{},
	})
	return New(Config{
		Store:     store,
		Resolver:  resolver,
		Prober:    prober,
		Installer: installer,
	})
}

func linuxAmd64() fakeProbe { return fakeProbe{os: "linux", arch: "x86_64"} }

const (
	installCmake = "sudo apt install --no-install-recommends -y cmake"
	installNinja = "sudo apt install --no-install-recommends -y ninja-build"
	installGperf = "sudo apt install --no-install-recommends -y gperf"
)

func TestCheckAllReportsEachPackage(t *testing.T) {
	m := &machine{probes: map[string]bool{
		"cmake --version": true,
		"ninja --version": false,
		"gperf --version": true,
	}}
	r := newReconciler(t, aptManifest, m, linuxAmd64())

	statuses, err := r.CheckAll(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.True(t, statuses[0].Available)
	assert.False(t, statuses[1].Available)
	assert.Empty(t, statuses[1].Err)
	assert.True(t, statuses[2].Available)
}

func TestCheckAllFiltersArchitecture(t *testing.T) {
	m := &machine{probes: map[string]bool{}}
	r := newReconciler(t, aptManifest, m, fakeProbe{os: "linux", arch: "aarch64"})

	statuses, err := r.CheckAll(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2, "gperf is x86_64-only")
	assert.Equal(t, -1, m.indexOf("gperf --version"))
}

func TestInstallAllMissingIdempotent(t *testing.T) {
	m := &machine{probes: map[string]bool{
		"cmake --version": true,
		"ninja --version": true,
		"gperf --version": true,
	}}
	r := newReconciler(t, aptManifest, m, linuxAmd64())

	result, err := r.InstallAllMissing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.InstalledCount())
	assert.False(t, result.HasErrors())
	assert.False(t, result.NeedsRestart())

	for _, c := range []string{installCmake, installNinja, installGperf} {
		assert.Equal(t, -1, m.indexOf(c), "no installer invocation for %s", c)
	}
}

func TestInstallAllMissingEndToEnd(t *testing.T) {
	// cmake present, ninja missing; installing ninja makes it visible
	m := &machine{
		probes: map[string]bool{
			"cmake --version": true,
			"gperf --version": true,
		},
		installs: map[string]installBehavior{
			installNinja: {enables: "ninja --version"},
		},
	}
	r := newReconciler(t, aptManifest, m, linuxAmd64())

	result, err := r.InstallAllMissing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ninja"}, result.Succeeded)
	assert.Equal(t, 1, result.InstalledCount())
	assert.False(t, result.HasErrors())
	assert.False(t, result.NeedsRestart())

	installCalls := 0
	for _, c := range m.calls {
		if c == installNinja {
			installCalls++
		}
	}
	assert.Equal(t, 1, installCalls)
}

func TestInstallAllMissingSequentialOrder(t *testing.T) {
	m := &machine{
		probes: map[string]bool{},
		installs: map[string]installBehavior{
			installCmake: {enables: "cmake --version"},
			installNinja: {enables: "ninja --version"},
			installGperf: {enables: "gperf --version"},
		},
	}
	r := newReconciler(t, aptManifest, m, linuxAmd64())

	result, err := r.InstallAllMissing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.InstalledCount())

	cmakeAt, ninjaAt, gperfAt := m.indexOf(installCmake), m.indexOf(installNinja), m.indexOf(installGperf)
	require.NotEqual(t, -1, cmakeAt)
	require.NotEqual(t, -1, ninjaAt)
	require.NotEqual(t, -1, gperfAt)
	assert.Less(t, cmakeAt, ninjaAt, "installs run in manifest order")
	assert.Less(t, ninjaAt, gperfAt, "installs run in manifest order")
}

func TestInstallAllMissingPendingRestart(t *testing.T) {
	// ninja's install reports success but the probe keeps failing
	m := &machine{
		probes: map[string]bool{
			"cmake --version": true,
			"gperf --version": true,
		},
		installs: map[string]installBehavior{
			installNinja: {},
		},
	}
	r := newReconciler(t, aptManifest, m, linuxAmd64())

	result, err := r.InstallAllMissing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ninja"}, result.PendingRestart)
	assert.True(t, result.NeedsRestart())
	assert.False(t, result.HasErrors(), "pending restart is not a failure")
	assert.Equal(t, 1, result.InstalledCount())
}

func TestInstallAllMissingAccumulatesFailures(t *testing.T) {
	m := &machine{
		probes: map[string]bool{
			"cmake --version": true,
		},
		installs: map[string]installBehavior{
			installNinja: {fail: true},
			installGperf: {enables: "gperf --version"},
		},
	}
	r := newReconciler(t, aptManifest, m, linuxAmd64())

	result, err := r.InstallAllMissing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ninja"}, result.Failed)
	assert.True(t, result.HasErrors())
	// the failure did not abort the rest of the batch
	assert.Equal(t, []string{"gperf"}, result.Succeeded)
}

func TestUnsupportedPlatform(t *testing.T) {
	m := &machine{probes: map[string]bool{}}
	r := newReconciler(t, aptManifest, m, fakeProbe{os: "plan9", arch: "x86_64"})

	statuses, err := r.CheckAll(context.Background())
	require.NoError(t, err)
	assert.Nil(t, statuses)

	available, err := r.CheckManagerAvailable(context.Background())
	require.NoError(t, err)
	assert.False(t, available)
	assert.Empty(t, m.calls, "no probe command for an unsupported platform")
}

func TestCheckManagerAvailable(t *testing.T) {
	m := &machine{probes: map[string]bool{"apt --version": true}}
	r := newReconciler(t, aptManifest, m, linuxAmd64())

	available, err := r.CheckManagerAvailable(context.Background())
	require.NoError(t, err)
	assert.True(t, available)
}
