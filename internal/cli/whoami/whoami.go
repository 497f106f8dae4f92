package whoami

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mageroni/Agent-Quickstart/internal/cli/paramutils"
	"github.com/mageroni/Agent-Quickstart/internal/cli/utils"
	"github.com/mageroni/Agent-Quickstart/internal/clientutils"
	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/github"
	"github.com/mageroni/Agent-Quickstart/internal/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type userGetter interface {
	CurrentUser(ctx context.Context) (*github.User, error)
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
	if !validation.IsValidToken(creds.Token) {
		return errcodes.ErrInvalidToken
	}

	c := clientutils.ClientFactory{Config: v}.NewClient(creds.Token)

	return execute(cmd.Context(), c, os.Stdout)
}

func execute(ctx context.Context, c userGetter, out io.Writer) error {
	u, err := c.CurrentUser(ctx)
	if err != nil {
		return err
	}
	log.Debug().Str("login", u.Login).Msg("token validated")

	if u.Name != "" {
		fmt.Fprintf(out, "Authenticated as %s (%s)\n", u.Login, u.Name)
	} else {
		fmt.Fprintf(out, "Authenticated as %s\n", u.Login)
	}

	return nil
}

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Check the configured token",
		Long:  `Checks the token against GitHub and prints the account it belongs to`,
		Args:  cobra.NoArgs,
		Run:   utils.RunCommandWrapper(runCmd),
	}
}
