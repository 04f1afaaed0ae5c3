package extcli

import (
	"context"
	"fmt"
	"strings"
)

// BrowserCommand returns the command that opens link in the default browser of goos.
func BrowserCommand(goos, link string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{link}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}
	default:
		return "xdg-open", []string{link}
	}
}

func OpenBrowser(ctx context.Context, executor Executor, goos, link string) error {
	name, args := BrowserCommand(goos, link)
	if _, stderr, err := executor.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("open a link with %s: %w: %s", name, err, strings.TrimSpace(stderr))
	}
	return nil
}
