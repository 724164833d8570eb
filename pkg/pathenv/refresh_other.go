// pkg/pathenv/refresh_other.go

//go:build !windows

package pathenv

type noopRefresher struct{}

func newPlatformRefresher() Refresher {
	return noopRefresher{}
}

// Refresh does nothing: POSIX shells inherit PATH from configuration
// files, and installs in this process cannot change it behind our back.
func (noopRefresher) Refresh() error {
	return nil
}
