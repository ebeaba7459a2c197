// Package config assembles the process configuration: defaults, an optional
// YAML file under $HOME/.config/reviewd, and environment overrides.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/mcp-bot/reviewd/internal/printers"
)

const (
	ConfigDirName  = ".config/reviewd"
	ConfigFileName = "config.yml"
)

// Config contains the entire cli dependencies
type Config struct {
	Version  string
	Viper    *viper.Viper
	Debug    bool
	Port     int
	Printers printers.IPrinters

	// io writers useful for testing
	InReader  io.Reader
	OutWriter io.Writer
	ErrWriter io.Writer
}

// NewDefaultConfig creates a new default config
func NewDefaultConfig() Config {
	conf := Config{
		Printers:  printers.NewPrinters(),
		Debug:     false,
		Port:      3333,
		InReader:  os.Stdin,
		OutWriter: os.Stdout,
		ErrWriter: os.Stderr,
	}

	conf.Viper = setupViper()
	return conf
}

func setupViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("port", 3333)
	v.SetDefault("ai.base_url", "http://localhost:11434")
	v.SetDefault("ai.model", "codellama:7b")
	v.SetDefault("ai.timeout", 120*time.Second)
	v.SetDefault("review.analyze_timeout", 60*time.Second)
	v.SetDefault("review.ai_timeout", 120*time.Second)

	v.SetEnvPrefix("REVIEWD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credential variables keep their historical (unprefixed) names.
	_ = v.BindEnv("github.app_id", "GITHUB_APPID")
	_ = v.BindEnv("github.installation_id", "GITHUB_INSTALLATION_ID")
	_ = v.BindEnv("github.private_key_path", "GITHUB_PRIVATE_KEY_PATH")
	_ = v.BindEnv("bitbucket.email", "BITBUCKET_EMAIL")
	_ = v.BindEnv("bitbucket.token", "BITBUCKET_TOKEN")

	dir, err := GetConfigDirPath()
	if err != nil {
		return v
	}
	v.SetConfigFile(filepath.Join(dir, ConfigFileName))
	v.SetConfigType("yaml")
	// Config file not found is OK, we use defaults
	_ = v.ReadInConfig()

	return v
}

// GetConfigDirPath returns the directory holding the config file.
func GetConfigDirPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigDirName), nil
}

// GetConfigFilePath returns the full config file path.
func GetConfigFilePath() (string, error) {
	dir, err := GetConfigDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}
