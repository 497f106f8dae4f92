package open

import (
	"strings"

	"github.com/mageroni/Agent-Quickstart/internal/cli/paramutils"
	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
	"github.com/mageroni/Agent-Quickstart/internal/validation"
)

type openCmdParams struct {
	Organization string
	WebURL       string
	PrintOnly    bool
}

type cmdArgs struct {
	Repository string
}

func parseArgs(args []string) *cmdArgs {
	if len(args) == 0 {
		return &cmdArgs{}
	}

	return &cmdArgs{Repository: strings.TrimSpace(validation.Sanitize(args[0]))}
}

func fillFlagOpenCmdParams(flags paramutils.FlagSet, params *openCmdParams) {
	params.PrintOnly = flags.GetBoolOrDefault("print", params.PrintOnly)
}

func validateOpenCmdParams(params *openCmdParams) error {
	if !validation.IsValidOrganizationName(params.Organization) {
		return errcodes.ErrInvalidOrganization
	}

	return nil
}
