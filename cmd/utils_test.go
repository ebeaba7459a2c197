package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestGetArgByKey_ReturnsFlagValue(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("platform", "github", "")

	assert.Equal(t, "github", GetArgByKey("platform", flags, false))
}

func TestGetArgByKey_NonStrictMissingFlagReturnsEmpty(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	assert.Equal(t, "", GetArgByKey("payload", flags, false))
}

func TestGetArgByKey_NonStrictEmptyValueReturnsEmpty(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("payload", "", "")

	assert.Equal(t, "", GetArgByKey("payload", flags, false))
}

func TestPlatformKeys_CoverRegisteredPlatforms(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"github.app_id", "github.installation_id", "github.private_key_path"},
		platformKeys["github"])
	assert.ElementsMatch(t,
		[]string{"bitbucket.email", "bitbucket.token"},
		platformKeys["bitbucket"])
}
