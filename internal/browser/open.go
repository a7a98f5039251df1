package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open opens the URL in the customer's default browser. Used for the
// order status page; share links go through the clipboard instead.
func Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
