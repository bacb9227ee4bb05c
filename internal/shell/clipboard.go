// Package shell provides the default implementations of the external
// collaborators the supervisor core depends on: clipboard, modal dialog
// and application window. The real webview UI lives outside this module;
// everything here is the boundary it plugs into.
package shell

import "github.com/atotto/clipboard"

// SystemClipboard writes through the OS clipboard.
type SystemClipboard struct{}

// WriteText places text on the system clipboard.
func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}
