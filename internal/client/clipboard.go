package client

import (
	"log"
	"strings"

	"island-discovery/pkg/terrain"

	"golang.design/x/clipboard"
)

var clipboardReady bool

// InitClipboard initializes the system clipboard. Paste and copy are disabled
// when it is unavailable (e.g. no display server).
func InitClipboard() {
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
		return
	}
	clipboardReady = true
}

// PasteColor reads a "#RRGGBB" colour from the clipboard.
func PasteColor() (terrain.Color, error) {
	if !clipboardReady {
		return "", ErrClipboardUnavailable
	}
	data := clipboard.Read(clipboard.FmtText)
	return terrain.ParseColor(strings.TrimSpace(string(data)))
}

// CopyColor writes a colour to the clipboard.
func CopyColor(c terrain.Color) error {
	if !clipboardReady {
		return ErrClipboardUnavailable
	}
	clipboard.Write(clipboard.FmtText, []byte(c))
	return nil
}
