// pkg/pathenv/pathenv.go

// Package pathenv reloads the process PATH from the operating system's
// environment store. On Windows a freshly-installed tool is only
// visible to new processes because PATH changes land in the registry;
// re-reading the Machine and User values lets probes in this process
// see the tool without a restart. On every other platform the
// refresher is a no-op.
package pathenv

import "strings"

// Refresher reloads the current process's PATH from the OS
// environment store.
type Refresher interface {
	Refresh() error
}

// New returns the refresher for the current platform
func New() Refresher {
	return newPlatformRefresher()
}

// MergePath joins the Machine and User PATH values in the order
// Windows itself applies them: machine first, then user. Empty
// components are dropped.
func MergePath(machine, user string, sep string) string {
	parts := make([]string, 0, 2)
	if machine = strings.Trim(machine, sep); machine != "" {
		parts = append(parts, machine)
	}
	if user = strings.Trim(user, sep); user != "" {
		parts = append(parts, user)
	}
	return strings.Join(parts, sep)
}
