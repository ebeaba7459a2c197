package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mcp-bot/reviewd/internal/common"
	"github.com/mcp-bot/reviewd/internal/config"
	"github.com/mcp-bot/reviewd/internal/platform"
)

// platformKeys maps a platform tag to the credential keys it needs.
var platformKeys = map[string][]string{
	"github":    {"github.app_id", "github.installation_id", "github.private_key_path"},
	"bitbucket": {"bitbucket.email", "bitbucket.token"},
}

func newConfigCmd(conf config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:     "config",
		Short:   "Interactively set platform credentials.",
		Example: "reviewd config",
		Run: func(cmd *cobra.Command, args []string) {
			_, tag, err := conf.Printers.SelectPlatform(platform.Names())
			if err != nil {
				common.LogError(fmt.Sprintf("[x] selection aborted: %v", err), true, false, nil)
			}

			keys, ok := platformKeys[tag]
			if !ok {
				common.LogError(fmt.Sprintf("[x] no credential keys known for %q", tag), true, false, nil)
			}

			for _, key := range keys {
				value, err := conf.Printers.PromptString(key)
				if err != nil {
					common.LogError(fmt.Sprintf("[x] prompt aborted: %v", err), true, false, nil)
				}
				conf.Viper.Set(key, value)
			}

			path, err := config.GetConfigFilePath()
			if err != nil {
				common.LogError(fmt.Sprintf("[x] cannot resolve config path: %v", err), true, false, nil)
			}
			if _, statErr := os.Stat(path); statErr == nil {
				if !conf.Printers.Confirm(fmt.Sprintf("Overwrite %s?", path)) {
					return
				}
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				common.LogError(fmt.Sprintf("[x] cannot create config dir: %v", err), true, false, nil)
			}
			if err := conf.Viper.WriteConfigAs(path); err != nil {
				common.LogError(fmt.Sprintf("[x] cannot write config: %v", err), true, false, nil)
			}
			common.LogInfo(fmt.Sprintf("Saved %s credentials to %s", tag, path), nil)
		},
	}

	return configCmd
}

func init() {
	rootCmd.AddCommand(newConfigCmd(config.NewDefaultConfig()))
}
