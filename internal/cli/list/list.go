package list

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/mageroni/Agent-Quickstart/internal/catalog"
	"github.com/mageroni/Agent-Quickstart/internal/cli/paramutils"
	"github.com/mageroni/Agent-Quickstart/internal/cli/utils"
	"github.com/mageroni/Agent-Quickstart/internal/clientutils"
	"github.com/mageroni/Agent-Quickstart/internal/configutils"
	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/spf13/cobra"
)

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
	params := &listCmdParams{
		Organization: creds.Organization,
		Token:        creds.Token,
		PageSize:     v.GetInt(configutils.KeyViewPageSize),
	}
	if err := fillFlagListCmdParams(flags, params); err != nil {
		return err
	}
	v.Set(configutils.KeyViewPageSize, params.PageSize)

	cf := clientutils.ClientFactory{Config: v}
	c := cf.NewClient(params.Token)

	if params.Properties {
		return executeProperties(cmd.Context(), cf.PropertyCatalog(c), params, os.Stdout)
	}

	return executeRepositories(cmd.Context(), cf.RepositoryCatalog(c), params, os.Stdout)
}

func executeRepositories(ctx context.Context, rc *catalog.RepositoryCatalog, params *listCmdParams, out io.Writer) error {
	repos, err := rc.Load(ctx, params.Organization)
	if len(repos) == 0 && err != nil {
		return err
	}
	if params.Search != "" {
		rc.Search(ctx, params.Search)
	}

	view := rc.View()
	view.GoTo(params.Page)

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("NAME", "VISIBILITY", "LANGUAGE", "DESCRIPTION")
	table.AddRow("----", "----------", "--------", "-----------")
	for _, r := range view.Visible() {
		table.AddRow(r.Name, visibility(r), r.Language, r.Description)
	}

	fmt.Fprintln(out, table.String())
	fmt.Fprintln(out, footer(view.Page(), view.TotalPages(), len(view.Filtered())))
	if err != nil {
		fmt.Fprintf(out, "Only %d repositories could be loaded: %s\n", len(repos), utils.ErrorMessage(err))
	}

	return nil
}

func executeProperties(ctx context.Context, pc *catalog.PropertyCatalog, params *listCmdParams, out io.Writer) error {
	pc.Load(ctx, params.Organization)
	if params.Search != "" {
		pc.Search(params.Search)
	}

	view := pc.View()
	view.GoTo(params.Page)

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("NAME", "TYPE", "VALUES", "DESCRIPTION")
	table.AddRow("----", "----", "------", "-----------")
	for _, p := range view.Visible() {
		table.AddRow(p.Name, p.ValueType, strings.Join(p.AllowedValues, ", "), p.Description)
	}

	fmt.Fprintln(out, table.String())
	fmt.Fprintln(out, footer(view.Page(), view.TotalPages(), len(view.Filtered())))
	if pc.FellBack() {
		fmt.Fprintln(out, "Custom properties of the organization could not be read, showing examples")
	}

	return nil
}

func visibility(r domain.Repository) string {
	switch {
	case r.Archived:
		return "archived"
	case r.Private:
		return "private"
	}

	return "public"
}

func footer(page, total, matches int) string {
	return fmt.Sprintf("page %d/%d (%d matches)", page, total, matches)
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List repositories or custom properties",
		Long:    `Lists the repositories of the organization, or its custom property schema with --properties`,
		Example: `  agent-quickstart list --search api
  agent-quickstart list --page 2 --page-size 20
  agent-quickstart list --properties`,
		Args: cobra.NoArgs,
		Run:  utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().StringP("search", "s", "", "filter by name or description")
	cmd.Flags().Int("page", 1, "page to show")
	cmd.Flags().Int("page-size", 0, "entries per page (default catalog.view_page_size)")
	cmd.Flags().Bool("properties", false, "list custom properties instead of repositories")

	return cmd
}
