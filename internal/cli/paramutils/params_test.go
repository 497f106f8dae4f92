package paramutils

import (
	"testing"

	"github.com/mageroni/Agent-Quickstart/internal/configutils"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestPFlagSetWrapper(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("org", "", "")
	fs.Int("page", 1, "")
	fs.StringSlice("repos", nil, "")
	assert.NoError(t, fs.Parse([]string{"--org", "octo", "--repos", "a,b"}))
	w := NewFlagSet(fs)

	assert.Equal(t, "octo", w.GetStringOrDefault("org", "x"))
	assert.Equal(t, "x", w.GetStringOrDefault("missing", "x"))
	assert.Equal(t, 7, w.GetIntOrDefault("page", 7))
	assert.Equal(t, []string{"a", "b"}, w.GetStringSliceOrDefault("repos", nil))
	assert.True(t, w.GetBoolOrDefault("missing", true))
}

func TestGetCredentials(t *testing.T) {
	oldDefaultOrganization := defaultOrganization
	defer func() { defaultOrganization = oldDefaultOrganization }()
	defaultOrganization = func() string { return "from-git" }

	t.Run("prefers flags", func(t *testing.T) {
		v := configutils.New()
		v.Set(configutils.KeyOrganization, "from-config")
		v.Set(configutils.KeyToken, "config-token")

		c := GetCredentials(&MockFlagSet{Values: map[string]interface{}{
			"org":   "from-flag",
			"token": "flag-token",
		}}, v)

		assert.Equal(t, Credentials{Organization: "from-flag", Token: "flag-token"}, c)
	})

	t.Run("falls back to the configuration", func(t *testing.T) {
		v := configutils.New()
		v.Set(configutils.KeyOrganization, "from-config")
		v.Set(configutils.KeyToken, "config-token")

		c := GetCredentials(&MockFlagSet{}, v)

		assert.Equal(t, Credentials{Organization: "from-config", Token: "config-token"}, c)
	})

	t.Run("falls back to the git remote owner", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("AGENT_QUICKSTART_GITHUB_TOKEN", "")
		t.Setenv("AGENT_QUICKSTART_GITHUB_ORGANIZATION", "")

		c := GetCredentials(&MockFlagSet{}, configutils.New())

		assert.Equal(t, "from-git", c.Organization)
		assert.Equal(t, "", c.Token)
	})
}
