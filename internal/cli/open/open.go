package open

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mageroni/Agent-Quickstart/internal/cli/paramutils"
	"github.com/mageroni/Agent-Quickstart/internal/cli/utils"
	"github.com/mageroni/Agent-Quickstart/internal/configutils"
	"github.com/mageroni/Agent-Quickstart/internal/domain/issue"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var ErrUnsupportedPlatform = errors.New("unsupported platform")

func runCmd(cmd *cobra.Command, args []string) error {
	flags := paramutils.NewFlagSet(cmd.Flags())
	v, err := paramutils.LoadConfig(flags)
	if err != nil {
		return err
	}
	if err := paramutils.SetupLogging(flags, v, os.Stderr); err != nil {
		return err
	}

	params := &openCmdParams{
		Organization: paramutils.GetCredentials(flags, v).Organization,
		WebURL:       v.GetString(configutils.KeyWebURL),
	}
	fillFlagOpenCmdParams(flags, params)
	if err := validateOpenCmdParams(params); err != nil {
		return err
	}

	return execute(parseArgs(args), params, os.Stdout)
}

// issuesURL lists the agent issues of the organization, or of repo when
// it is set.
func issuesURL(webURL, org, repo string) string {
	base := strings.TrimSuffix(webURL, "/")
	if repo != "" {
		q := url.Values{"q": {fmt.Sprintf("is:issue label:%s", issue.AgentLabel)}}
		return fmt.Sprintf("%s/%s/%s/issues?%s", base, org, repo, q.Encode())
	}

	q := url.Values{"q": {fmt.Sprintf("is:issue org:%s label:%s", org, issue.AgentLabel)}}
	return fmt.Sprintf("%s/issues?%s", base, q.Encode())
}

func execute(args *cmdArgs, params *openCmdParams, out io.Writer) error {
	u := issuesURL(params.WebURL, params.Organization, args.Repository)

	if params.PrintOnly {
		fmt.Fprintln(out, u)
		return nil
	}

	log.Debug().Str("url", u).Msg("opening browser")
	return openInBrowser(u)
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [REPO]",
		Aliases: []string{"o", "op"},
		Args:    cobra.MaximumNArgs(1),
		Short:   "Open agent issues",
		Long:    `Opens the issues handed to the coding agent in the organization, or in one of its repositories`,
		Run:     utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().Bool("print", false, "print the URL instead of opening it")

	return cmd
}

var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

func openInBrowser(u string) error {
	switch runtime.GOOS {
	case "linux":
		return startCommand("xdg-open", u)
	case "windows":
		return startCommand("rundll32", "url.dll,FileProtocolHandler", u)
	case "darwin":
		return startCommand("open", u)
	}

	return errors.Wrap(ErrUnsupportedPlatform, runtime.GOOS)
}
