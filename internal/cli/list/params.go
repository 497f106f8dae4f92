package list

import (
	"github.com/mageroni/Agent-Quickstart/internal/cli/paramutils"
	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
	"github.com/mageroni/Agent-Quickstart/internal/validation"
)

type listCmdParams struct {
	Organization string
	Token        string
	Search       string
	Page         int
	PageSize     int
	Properties   bool
}

func fillFlagListCmdParams(flags paramutils.FlagSet, params *listCmdParams) error {
	params.Search = flags.GetStringOrDefault("search", params.Search)
	params.Page = flags.GetIntOrDefault("page", params.Page)
	params.PageSize = flags.GetIntOrDefault("page-size", params.PageSize)
	params.Properties = flags.GetBoolOrDefault("properties", params.Properties)

	if params.Page < 1 {
		params.Page = 1
	}

	if !validation.IsValidOrganizationName(params.Organization) {
		return errcodes.ErrInvalidOrganization
	}
	if !validation.IsValidToken(params.Token) {
		return errcodes.ErrInvalidToken
	}

	return nil
}
