package ui

import (
	"github.com/atotto/clipboard"

	"github.com/orhun/kmon/internal/logging"
)

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

// SystemClipboard returns the clipboard backed by the platform utilities.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// copyText writes text, logging failures. A missing clipboard is not fatal.
func (m *Model) copyText(text string) {
	if m.clipboard == nil {
		return
	}
	if err := m.clipboard.WriteAll(text); err != nil {
		logging.Error(err)
	}
}

// pasteText returns the clipboard contents, or "" when unavailable.
func (m *Model) pasteText() string {
	if m.clipboard == nil {
		return ""
	}
	text, err := m.clipboard.ReadAll()
	if err != nil {
		logging.Error(err)
		return ""
	}
	return text
}
