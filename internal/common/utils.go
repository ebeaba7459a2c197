package common

import (
	"fmt"
	"os"
)

// LogError: to print an error message
// in case of "critic" at true, the program will stop on code 1
func LogError(
	message string,
	critic bool,
	help_menu bool,
	help_callback func() error,
) {
	fmt.Fprintf(os.Stderr, "%s\n", message)

	if critic {
		if help_menu && help_callback != nil {
			help_callback()
		}
		os.Exit(1)
	}
}

// LogInfo: for a simple logging info
func LogInfo(
	message string,
	callback func(),
) {
	fmt.Printf("%s\n", message)

	// for a given callback
	if callback != nil {
		callback()
	}
}
