package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var currentOS = func() string { return runtime.GOOS }

// OpenBrowser opens the default system browser to the specified URL.
// Used during the authorization flow so the user can grant access.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	rt := currentOS()
	switch rt {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
