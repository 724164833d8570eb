// pkg/pathenv/refresh_windows.go

//go:build windows

package pathenv

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows/registry"
)

const machineEnvKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`

type windowsRefresher struct{}

func newPlatformRefresher() Refresher {
	return windowsRefresher{}
}

// Refresh reads the Machine and User Path registry values and
// overwrites the process PATH with machine + user. Both reads are
// read-only queries; a missing User value is tolerated because fresh
// accounts may not have one.
func (windowsRefresher) Refresh() error {
	machine, err := readPathValue(registry.LOCAL_MACHINE, machineEnvKey)
	if err != nil {
		return fmt.Errorf("reading machine PATH: %w", err)
	}

	user, err := readPathValue(registry.CURRENT_USER, `Environment`)
	if err != nil {
		user = ""
	}

	return os.Setenv("PATH", MergePath(machine, user, ";"))
}

func readPathValue(root registry.Key, keyPath string) (string, error) {
	k, err := registry.OpenKey(root, keyPath, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer k.Close()

	value, _, err := k.GetStringValue("Path")
	if err != nil {
		return "", err
	}

	// PATH is usually REG_EXPAND_SZ; resolve %SystemRoot% style refs
	expanded, err := registry.ExpandString(value)
	if err != nil {
		return value, nil
	}
	return expanded, nil
}
