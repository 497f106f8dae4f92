package configutils

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/mageroni/Agent-Quickstart/internal/pkg/fs"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	AppName         = "agent-quickstart"
	ConfigDir       = "~/.config/" + AppName
	LocalConfigFile = "." + AppName
	EnvPrefix       = "AGENT_QUICKSTART"
)

const (
	KeyToken            = "github.token"
	KeyOrganization     = "github.organization"
	KeyAPIURL           = "github.api_url"
	KeyGraphQLURL       = "github.graphql_url"
	KeyWebURL           = "github.web_url"
	KeyRequestTimeout   = "request.timeout"
	KeyPageSize         = "catalog.page_size"
	KeyMaxRepositories  = "catalog.max_repositories"
	KeyPageDelay        = "catalog.page_delay"
	KeyViewPageSize     = "catalog.view_page_size"
	KeySearchCacheTTL   = "search.cache_ttl"
	KeyWorkflowDelay    = "workflow.delay"
	KeyAutoAdvanceDelay = "wizard.auto_advance_delay"
	KeyPromptsBaseURL   = "prompts.base_url"
	KeyPromptsTimeout   = "prompts.timeout"
	KeyLogLevel         = "log.level"
)

var Defaults = map[string]interface{}{
	KeyAPIURL:           "https://api.github.com",
	KeyGraphQLURL:       "https://api.github.com/graphql",
	KeyWebURL:           "https://github.com",
	KeyRequestTimeout:   30 * time.Second,
	KeyPageSize:         100,
	KeyMaxRepositories:  5000,
	KeyPageDelay:        100 * time.Millisecond,
	KeyViewPageSize:     10,
	KeySearchCacheTTL:   60 * time.Second,
	KeyWorkflowDelay:    time.Second,
	KeyAutoAdvanceDelay: 500 * time.Millisecond,
	KeyPromptsBaseURL:   "https://raw.githubusercontent.com/mageroni/Agent-Quickstart/main/prompts",
	KeyPromptsTimeout:   10 * time.Second,
	KeyLogLevel:         "warn",
}

var filetypes = []string{"yaml", "json", "toml"}

type FlagSet interface {
	GetString(string) (string, error)
	GetBool(string) (bool, error)
}

type configMerger interface {
	MergeConfig(io.Reader) error
}

var (
	ErrHomeDirNotFound = errors.New("unable to determine the home directory")
	ErrConfigFileIsDir = errors.New("configuration file is a directory")
)

var mergeConfig = func(in io.Reader, cm configMerger) error {
	err := cm.MergeConfig(in)
	if err != nil {
		return err
	}

	return nil
}

var fileExists = func(filename string, fs fs.Filesystem) error {
	info, err := fs.Stat(filename)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return ErrConfigFileIsDir
	}

	return nil
}

var loadFile = func(filename string, fs fs.Filesystem) (io.Reader, error) {
	err := fileExists(filename, fs)
	if err != nil {
		return nil, err
	}

	b, err := fs.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(b), nil
}

var loadConfig = func(filename string, v *viper.Viper) error {
	f, err := loadFile(filename, fs.OS{})
	if err != nil {
		return err
	}

	return mergeConfig(f, v)
}

var getConfigDir = func() (string, error) {
	return homedir.Expand(ConfigDir)
}

// New returns a viper instance carrying the defaults and the environment
// bindings, without any file merged.
func New() *viper.Viper {
	v := viper.New()
	for k, d := range Defaults {
		v.SetDefault(k, d)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyToken, EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")

	return v
}

// mergeFirstType merges f with the first file type that parses.
func mergeFirstType(f string, v *viper.Viper) error {
	var err error
	for _, ft := range filetypes {
		v.SetConfigType(ft)
		err = loadConfig(f, v)
		if err == nil {
			return nil
		}
		log.Debug().
			Str("file", f).
			Msgf("config loading failed for type %s, skipping to next filetype", ft)
	}

	return err
}

func MergeLocalConfig(v *viper.Viper, path string) error {
	f := filepath.Join(path, LocalConfigFile)
	if err := fileExists(f, fs.OS{}); err != nil {
		return nil
	}

	return errors.Wrapf(mergeFirstType(f, v), "could not load %s", f)
}

// MergeGlobalConfig merges config.{yaml,json,toml} of the config directory.
// A missing global file is not an error.
func MergeGlobalConfig(v *viper.Viper) error {
	cfgDir, err := getConfigDir()
	if err != nil {
		return ErrHomeDirNotFound
	}

	for _, ft := range filetypes {
		f := filepath.Join(cfgDir, fmt.Sprintf("config.%s", ft))
		if fileExists(f, fs.OS{}) != nil {
			continue
		}

		v.SetConfigType(ft)
		if err := loadConfig(f, v); err != nil {
			return errors.Wrapf(err, "could not load %s", f)
		}
		return nil
	}

	return nil
}

// Load layers defaults, the global file (or configFile when set), the local
// file of path and the environment.
func Load(configFile, path string) (*viper.Viper, error) {
	v := New()

	if configFile != "" {
		if err := mergeFirstType(configFile, v); err != nil {
			return nil, errors.Wrapf(err, "could not load %s", configFile)
		}
	} else if err := MergeGlobalConfig(v); err != nil {
		return nil, err
	}

	if path != "" {
		if err := MergeLocalConfig(v, path); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// LogFile is where the terminal UI writes its logs.
func LogFile() (string, error) {
	cfgDir, err := getConfigDir()
	if err != nil {
		return "", ErrHomeDirNotFound
	}

	return filepath.Join(cfgDir, AppName+".log"), nil
}

func GetBoolFlagOrDefault(fs FlagSet, flag string, d bool) bool {
	v, err := fs.GetBool(flag)
	if err != nil {
		return d
	}

	return v
}

func GetStringFlagOrDefault(fs FlagSet, flag, d string) string {
	s, err := fs.GetString(flag)
	if err != nil || s == "" {
		return d
	}

	return s
}
