package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// GetArgByKey get an argument value based on a key input + a strict mode for required params
func GetArgByKey(key string, cmdFlags *pflag.FlagSet, strictMode bool) string {
	value, err := cmdFlags.GetString(key)
	if strictMode && (err != nil || value == "") {
		fmt.Printf("[x] %v, is not set and is required for your command.\n", key)
		os.Exit(0)
	}
	return value
}
