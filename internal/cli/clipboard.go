package cli

import (
	"errors"
	"os/exec"
	"strings"
)

// clipboardTools lists the helpers to try in order: macOS first, then the
// two common Linux ones (X11, Wayland).
var clipboardTools = [][]string{
	{"pbcopy"},
	{"xclip", "-selection", "clipboard"},
	{"wl-copy"},
}

// copyToClipboard pipes text into the first available clipboard helper.
func copyToClipboard(text string) error {
	for _, tool := range clipboardTools {
		path, err := exec.LookPath(tool[0])
		if err != nil {
			continue
		}
		cmd := exec.Command(path, tool[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			return errors.Join(errors.New("clipboard tool failed"), err)
		}
		return nil
	}
	return ErrClipboardUnavailable
}
