//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify displays a desktop notification using macOS Notification Center.
// Icons are not supported by osascript and are ignored.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, opts.appName())
	return exec.Command("osascript", "-e", script).Run()
}
