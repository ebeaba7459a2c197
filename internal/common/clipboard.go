package common

import (
	"github.com/atotto/clipboard"
)

// SetClipboardValue puts a generated comment body on the system clipboard.
func SetClipboardValue(value string) error {
	return clipboard.WriteAll(value)
}

// GetClipboardValue reads the current clipboard content.
func GetClipboardValue() (string, error) {
	value, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return value, nil
}
