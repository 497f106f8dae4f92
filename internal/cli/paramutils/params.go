package paramutils

import (
	"os"

	"github.com/mageroni/Agent-Quickstart/internal/cli/utils"
	"github.com/mageroni/Agent-Quickstart/internal/configutils"
	"github.com/mageroni/Agent-Quickstart/internal/gitutils"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type FlagSet interface {
	GetStringOrDefault(flag, d string) string
	GetBoolOrDefault(flag string, d bool) bool
	GetIntOrDefault(flag string, d int) int
	GetStringSliceOrDefault(flag string, d []string) []string
}

func NewFlagSet(flags *pflag.FlagSet) FlagSet {
	return &PFlagSetWrapper{Flags: flags}
}

type PFlagSetWrapper struct {
	Flags *pflag.FlagSet
}

func (fs *PFlagSetWrapper) GetStringOrDefault(flag, d string) string {
	s, err := fs.Flags.GetString(flag)
	if err != nil || s == "" {
		return d
	}

	return s
}

func (fs *PFlagSetWrapper) GetBoolOrDefault(flag string, d bool) bool {
	s, err := fs.Flags.GetBool(flag)
	if err != nil {
		return d
	}

	return s
}

func (fs *PFlagSetWrapper) GetIntOrDefault(flag string, d int) int {
	if !fs.Flags.Changed(flag) {
		return d
	}
	v, err := fs.Flags.GetInt(flag)
	if err != nil {
		return d
	}

	return v
}

func (fs *PFlagSetWrapper) GetStringSliceOrDefault(flag string, d []string) []string {
	v, err := fs.Flags.GetStringSlice(flag)
	if err != nil || len(v) == 0 {
		return d
	}

	return v
}

var getWorkingDir = os.Getwd

var defaultOrganization = gitutils.DefaultOrganization

// LoadConfig loads the configuration named by --config, or the global one,
// merged with the local file of the working directory.
func LoadConfig(flags FlagSet) (*viper.Viper, error) {
	wd, err := getWorkingDir()
	if err != nil {
		wd = ""
	}

	v, err := configutils.Load(flags.GetStringOrDefault("config", ""), wd)
	if err != nil {
		return nil, &utils.ConfigError{Err: err}
	}

	return v, nil
}

type Credentials struct {
	Organization string
	Token        string
}

// GetCredentials resolves the organization from --org, the configuration or
// the owner of the local git remote, and the token from --token or the
// configuration.
func GetCredentials(flags FlagSet, v *viper.Viper) Credentials {
	org := flags.GetStringOrDefault("org", v.GetString(configutils.KeyOrganization))
	if org == "" {
		org = defaultOrganization()
	}

	return Credentials{
		Organization: org,
		Token:        flags.GetStringOrDefault("token", v.GetString(configutils.KeyToken)),
	}
}

// SetupLogging applies --log-level, or the configured level, and writes to
// out.
func SetupLogging(flags FlagSet, v *viper.Viper, out *os.File) error {
	level := flags.GetStringOrDefault("log-level", v.GetString(configutils.KeyLogLevel))
	return utils.SetupLogging(level, out)
}
