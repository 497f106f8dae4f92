package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gosuri/uilive"
	"github.com/gosuri/uitable"
	"github.com/mageroni/Agent-Quickstart/internal/cli/paramutils"
	"github.com/mageroni/Agent-Quickstart/internal/cli/utils"
	"github.com/mageroni/Agent-Quickstart/internal/clientutils"
	"github.com/mageroni/Agent-Quickstart/internal/configutils"
	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/client"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/fs"
	"github.com/mageroni/Agent-Quickstart/internal/prompt"
	"github.com/mageroni/Agent-Quickstart/internal/ratelimit"
	"github.com/mageroni/Agent-Quickstart/internal/workflow"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func setUpFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("use-case", "u", "", "use case, values - (tests, documentation, technical-debt)")
	cmd.Flags().StringP("method", "m", "", "target repositories, values - (all, selected, properties)")
	cmd.Flags().StringSliceP("repos", "r", nil, "comma separated repository names")
	cmd.Flags().StringSlice("property", nil, "custom property filter in form of name=value, repeatable")
	cmd.Flags().StringP("prompt-file", "f", "", "file holding the issue body (default use case template)")
	cmd.Flags().Duration("delay", 0, "delay between repositories (default workflow.delay)")
	cmd.Flags().BoolP("interactive", "i", false, "ask for every missing parameter")
}

// factorySource serves the interactive prompts through the configured
// client factory.
type factorySource struct {
	cf     clientutils.ClientFactory
	loader *prompt.Loader
}

func (s *factorySource) Repositories(ctx context.Context, org, token string) ([]domain.Repository, error) {
	return s.cf.RepositoryCatalog(s.cf.NewClient(token)).Load(ctx, org)
}

func (s *factorySource) Properties(ctx context.Context, org, token string) []domain.Property {
	return s.cf.PropertyCatalog(s.cf.NewClient(token)).Load(ctx, org)
}

func (s *factorySource) Prompt(ctx context.Context, u domain.UseCase) string {
	text, _ := s.loader.Get(ctx, u)
	return text
}

func runCmd(cmd *cobra.Command, args []string) error {
	flags := paramutils.NewFlagSet(cmd.Flags())
	v, err := paramutils.LoadConfig(flags)
	if err != nil {
		return err
	}
	if err := paramutils.SetupLogging(flags, v, os.Stderr); err != nil {
		return err
	}

	creds := paramutils.GetCredentials(flags, v)
	params := &runCmdParams{
		Organization: creds.Organization,
		Token:        creds.Token,
		Delay:        v.GetDuration(configutils.KeyWorkflowDelay),
	}
	fillFlagRunCmdParams(flags, params)
	if cmd.Flags().Changed("delay") {
		params.Delay, _ = cmd.Flags().GetDuration("delay")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cf := clientutils.ClientFactory{Config: v}
	loader := cf.PromptLoader()

	if params.PromptFile != "" {
		params.Prompt, err = prompt.LoadFile(fs.OS{}, params.PromptFile)
		if err != nil {
			return err
		}
	}

	if params.Interactive {
		err := fillInteractiveParams(ctx, params, &factorySource{cf: cf, loader: loader})
		if err != nil {
			return err
		}
	}

	if params.Prompt == "" {
		if u, err := domain.ParseUseCase(params.UseCase); err == nil {
			params.Prompt, _ = loader.Get(ctx, u)
		}
	}

	r, err := params.request()
	if err != nil {
		return err
	}

	c := cf.NewClient(r.Token)

	return execute(ctx, c, r, params, os.Stdout)
}

func execute(ctx context.Context, c workflow.Client, r *workflow.Request, params *runCmdParams, out io.Writer) error {
	writer := uilive.New()
	writer.Out = out
	writer.Start()

	o := workflow.New(c, &workflow.Options{
		Pacer: ratelimit.NewInterval(params.Delay),
		Observer: func(done, total int, res workflow.Result) {
			status := "created"
			if !res.Succeeded {
				status = "failed"
			}
			fmt.Fprintf(writer, "[%d/%d] %s: %s\n", done, total, res.Repository, status)
		},
	})

	summary, err := o.Run(ctx, r)
	writer.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, summaryTable(summary).String())
	fmt.Fprintln(out)
	fmt.Fprintln(out, summary.Message())

	if summary.Status() == workflow.StatusFailed {
		return errors.Wrap(utils.ErrWorkflowFailed, summary.Message())
	}

	return nil
}

func summaryTable(s *workflow.Summary) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true
	table.AddRow("REPOSITORY", "STATUS", "ISSUE", "AGENT")
	table.AddRow("----------", "------", "-----", "-----")

	for _, res := range s.Results {
		if !res.Succeeded {
			_, msg := client.Classify(res.Error)
			table.AddRow(res.Repository, "failed", msg, "-")
			continue
		}

		agent := "not assigned"
		if res.AgentAssigned {
			agent = "assigned"
		}
		ref := fmt.Sprintf("#%d", res.Issue.Number)
		if res.Issue.URL != "" {
			ref = res.Issue.URL
		}
		table.AddRow(res.Repository, "created", ref, agent)
	}

	return table
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create agent issues without the wizard",
		Long: `Creates one issue per target repository of the organization and assigns
the Copilot coding agent to each of them.`,
		Example: `  agent-quickstart run -u tests -r api,web
  agent-quickstart run -u documentation -m all -f prompt.md
  agent-quickstart run -i`,
		Args: cobra.NoArgs,
		Run:  utils.RunCommandWrapper(runCmd),
	}
	setUpFlags(cmd)

	return cmd
}
