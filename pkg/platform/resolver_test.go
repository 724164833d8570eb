// pkg/platform/resolver_test.go
package platform

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openembed/hosttools/pkg/manifest"
)

type fakeProbe struct {
	os   string
	arch string
}

func (f fakeProbe) OS(context.Context) (string, error)   { return f.os, nil }
func (f fakeProbe) Arch(context.Context) (string, error) { return f.arch, nil }

func TestNormalizeArch(t *testing.T) {
	assert.Equal(t, "x86_64", NormalizeArch("amd64"))
	assert.Equal(t, "aarch64", NormalizeArch("arm64"))
	assert.Equal(t, "riscv64", NormalizeArch("riscv64"))
}

func TestResolveManagerKnownPlatforms(t *testing.T) {
	store := manifest.NewStore("")

	cases := map[string]manifest.ManagerName{
		"darwin":  manifest.ManagerHomebrew,
		"linux":   manifest.ManagerApt,
		"windows": manifest.ManagerWinget,
	}
	for platform, want := range cases {
		r := NewResolver(store, fakeProbe{os: platform, arch: "x86_64"})
		resolved, err := r.ResolveManager(context.Background())
		require.NoError(t, err)
		require.NotNil(t, resolved, "platform %s", platform)
		assert.Equal(t, want, resolved.Name)
		assert.NotEmpty(t, resolved.Spec.CheckCommand)
	}
}

func TestResolveManagerUnsupportedPlatform(t *testing.T) {
	r := NewResolver(manifest.NewStore(""), fakeProbe{os: "plan9", arch: "x86_64"})

	resolved, err := r.ResolveManager(context.Background())
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestResolveManagerLocalMatchesRuntime(t *testing.T) {
	r := NewResolver(manifest.NewStore(""), nil)

	resolved, err := r.ResolveManagerLocal()
	require.NoError(t, err)
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
		require.NotNil(t, resolved)
	default:
		assert.Nil(t, resolved)
	}
}

func TestResolvePropagatesManifestError(t *testing.T) {
	store := manifest.NewStore(filepath.Join(t.TempDir(), "missing.json"))
	r := NewResolver(store, fakeProbe{os: "linux"})

	_, err := r.ResolveManager(context.Background())
	assert.ErrorIs(t, err, manifest.ErrLoad)
}

func TestResolveBadOverrideFileStillFailsLocally(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	r := NewResolver(manifest.NewStore(path), nil)
	_, err := r.ResolveManagerLocal()
	assert.ErrorIs(t, err, manifest.ErrLoad)
}
