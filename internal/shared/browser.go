package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// opener builds the command that hands a URL to the desktop; swapped in tests.
var opener = func(name string, args ...string) interface{ Start() error } {
	return exec.Command(name, args...)
}

// OpenURL hands the URL (https://, wave://, ...) to the platform's default handler.
//
// Supports macOS, Linux, and Windows platforms.
func OpenURL(url string) error {
	var name string
	var args []string

	rt := getRuntime()
	switch rt {
	case "darwin":
		name, args = "open", []string{url}
	case "linux":
		name, args = "xdg-open", []string{url}
	case "windows":
		name, args = "cmd", []string{"/c", "start", url}
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := opener(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}

	return nil
}
