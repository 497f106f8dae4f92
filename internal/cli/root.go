package cli

import (
	"os"
	"path/filepath"

	listcmd "github.com/mageroni/Agent-Quickstart/internal/cli/list"
	opencmd "github.com/mageroni/Agent-Quickstart/internal/cli/open"
	"github.com/mageroni/Agent-Quickstart/internal/cli/paramutils"
	runcmd "github.com/mageroni/Agent-Quickstart/internal/cli/run"
	"github.com/mageroni/Agent-Quickstart/internal/cli/utils"
	versioncmd "github.com/mageroni/Agent-Quickstart/internal/cli/version"
	whoamicmd "github.com/mageroni/Agent-Quickstart/internal/cli/whoami"
	"github.com/mageroni/Agent-Quickstart/internal/clientutils"
	"github.com/mageroni/Agent-Quickstart/internal/configutils"
	"github.com/mageroni/Agent-Quickstart/internal/session"
	"github.com/mageroni/Agent-Quickstart/internal/tui"
	"github.com/spf13/cobra"
)

// openLogFile returns the file the wizard logs to. The terminal belongs to
// the UI while it runs.
func openLogFile() *os.File {
	path, err := configutils.LogFile()
	if err == nil {
		if err = os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
				return f
			}
		}
	}

	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return os.Stderr
	}

	return f
}

func runWizard(cmd *cobra.Command, args []string) error {
	flags := paramutils.NewFlagSet(cmd.Flags())
	v, err := paramutils.LoadConfig(flags)
	if err != nil {
		return err
	}

	logFile := openLogFile()
	defer logFile.Close()
	if err := paramutils.SetupLogging(flags, v, logFile); err != nil {
		return err
	}

	creds := paramutils.GetCredentials(flags, v)
	s := session.New()
	s.SetOrganizationInput(creds.Organization)
	s.SetTokenInput(creds.Token)

	cf := clientutils.ClientFactory{Config: v}
	t := tui.New(s, cf.WizardBackend(), &tui.Options{
		AutoAdvanceDelay: v.GetDuration(configutils.KeyAutoAdvanceDelay),
	})

	return t.Start(flags.GetStringOrDefault("step", ""))
}

var rootCmd = &cobra.Command{
	Use:   "agent-quickstart",
	Short: "Hand repository chores to the Copilot coding agent",
	Long: `Opens a wizard that creates one issue per selected repository of an
organization and assigns the Copilot coding agent to each of them.`,
	Version: versioncmd.String(),
	Args:    cobra.NoArgs,
	Run:     utils.RunCommandWrapper(runWizard),
}

func Execute() {
	rootCmd.AddCommand(
		runcmd.New(),
		listcmd.New(),
		opencmd.New(),
		whoamicmd.New(),
		versioncmd.New(),
	)

	rootCmd.PersistentFlags().String("config", "", "config path")
	rootCmd.PersistentFlags().StringP("org", "o", "", "organization (default github.organization or the origin remote owner)")
	rootCmd.PersistentFlags().StringP("token", "t", "", "personal access token (default github.token or GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("log-level", "", "log level, values - (debug, info, warn, error)")
	rootCmd.Flags().String("step", "", "open the wizard on a stage, values - (use-case, auth, repositories, prompt)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(utils.ExitCodeGeneric)
	}
}
