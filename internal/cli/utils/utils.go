package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/client"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	ExitCodeGeneric        = 1
	ExitCodeValidation     = 2
	ExitCodeConfiguration  = 3
	ExitCodeWorkflowFailed = 4
)

var ErrWorkflowFailed = errors.New("workflow failed for every repository")

// ConfigError marks a failure to load or apply the configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %s", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func ExitCode(err error) int {
	var cfgErr *ConfigError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrWorkflowFailed):
		return ExitCodeWorkflowFailed
	case errors.As(err, &cfgErr):
		return ExitCodeConfiguration
	case errcodes.IsValidation(err):
		return ExitCodeValidation
	}

	return ExitCodeGeneric
}

// ErrorMessage renders err for the terminal. API errors use their user
// facing message.
func ErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}

	return err.Error()
}

var osExit = os.Exit

var stderr io.Writer = os.Stderr

type runCommandError func(*cobra.Command, []string) error
type runCommandNoError func(*cobra.Command, []string)

func RunCommandWrapper(fn runCommandError) runCommandNoError {
	return func(cmd *cobra.Command, args []string) {
		err := fn(cmd, args)
		if err != nil {
			log.Debug().Err(err).Str("command", cmd.Name()).Msg("command failed")
			fmt.Fprintln(stderr, ErrorMessage(err))
			osExit(ExitCode(err))
		}
	}
}

// SetupLogging points zerolog and logrus to out at the given level.
func SetupLogging(level string, out io.Writer) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return &ConfigError{Err: errors.Errorf("unknown log level %q", level)}
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: out != os.Stderr}).
		With().Timestamp().Logger()

	lrLevel, err := logrus.ParseLevel(lvl.String())
	if err != nil {
		lrLevel = logrus.WarnLevel
	}
	logrus.SetLevel(lrLevel)
	logrus.SetOutput(out)

	return nil
}
