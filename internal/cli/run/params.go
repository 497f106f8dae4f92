package run

import (
	"strings"
	"time"

	"github.com/mageroni/Agent-Quickstart/internal/cli/paramutils"
	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/selection"
	"github.com/mageroni/Agent-Quickstart/internal/workflow"
)

type runCmdParams struct {
	UseCase      string
	Organization string
	Token        string
	Method       string
	Repositories []string
	Properties   []string
	PromptFile   string
	Prompt       string
	Delay        time.Duration
	Interactive  bool
}

func fillFlagRunCmdParams(flags paramutils.FlagSet, params *runCmdParams) {
	params.UseCase = flags.GetStringOrDefault("use-case", params.UseCase)
	params.Method = flags.GetStringOrDefault("method", params.Method)
	params.Repositories = flags.GetStringSliceOrDefault("repos", params.Repositories)
	params.Properties = flags.GetStringSliceOrDefault("property", params.Properties)
	params.PromptFile = flags.GetStringOrDefault("prompt-file", params.PromptFile)
	params.Interactive = flags.GetBoolOrDefault("interactive", params.Interactive)

	if params.Method == "" {
		switch {
		case len(params.Properties) > 0:
			params.Method = string(selection.MethodProperties)
		case len(params.Repositories) > 0 || params.Interactive:
			params.Method = string(selection.MethodSelected)
		}
	}
}

// request turns the parameters into a workflow request. Values are parsed
// here, the workflow validates the rest.
func (p *runCmdParams) request() (*workflow.Request, error) {
	u, err := domain.ParseUseCase(p.UseCase)
	if err != nil {
		return nil, err
	}

	m, err := selection.ParseMethod(p.Method)
	if err != nil {
		return nil, err
	}

	r := &workflow.Request{
		UseCase:      u,
		Organization: strings.TrimSpace(p.Organization),
		Token:        strings.TrimSpace(p.Token),
		Method:       m,
		Prompt:       p.Prompt,
	}

	sel := selection.New()
	for _, name := range p.Repositories {
		sel.Add(strings.TrimSpace(name))
	}
	r.Repositories = sel.Repositories()

	for _, raw := range p.Properties {
		f, err := selection.ParsePropertyFilter(raw)
		if err != nil {
			return nil, err
		}
		sel.SetProperty(f.Name, f.Value)
	}
	r.Properties = sel.Properties()

	return r, workflow.Validate(r)
}
