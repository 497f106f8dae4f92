package run

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mageroni/Agent-Quickstart/internal/catalog"
	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
	"github.com/mageroni/Agent-Quickstart/internal/selection"
	"github.com/mageroni/Agent-Quickstart/internal/validation"
	"github.com/rs/zerolog/log"
)

var askOne = survey.AskOne

// interactiveSource loads what the prompts offer once credentials are known.
type interactiveSource interface {
	Repositories(ctx context.Context, org, token string) ([]domain.Repository, error)
	Properties(ctx context.Context, org, token string) []domain.Property
	Prompt(ctx context.Context, u domain.UseCase) string
}

func validatorOf(check func(string) bool, err error) survey.Validator {
	return func(val interface{}) error {
		if !check(fmt.Sprintf("%v", val)) {
			return err
		}

		return nil
	}
}

func fillInteractiveParams(ctx context.Context, params *runCmdParams, src interactiveSource) error {
	if _, err := domain.ParseUseCase(params.UseCase); err != nil {
		if err := askUseCase(params); err != nil {
			return err
		}
	}

	if !validation.IsValidOrganizationName(params.Organization) {
		err := askOne(&survey.Input{
			Message: "Organization",
			Default: params.Organization,
		}, &params.Organization, survey.WithValidator(
			validatorOf(validation.IsValidOrganizationName, errcodes.ErrInvalidOrganization),
		))
		if err != nil {
			return err
		}
	}

	if !validation.IsValidToken(params.Token) {
		err := askOne(&survey.Password{
			Message: "Personal access token",
		}, &params.Token, survey.WithValidator(
			validatorOf(validation.IsValidToken, errcodes.ErrInvalidToken),
		))
		if err != nil {
			return err
		}
	}

	if _, err := selection.ParseMethod(params.Method); err != nil {
		if err := askMethod(params); err != nil {
			return err
		}
	}

	switch selection.Method(params.Method) {
	case selection.MethodSelected:
		if len(params.Repositories) == 0 {
			if err := askRepositories(ctx, params, src); err != nil {
				return err
			}
		}
	case selection.MethodProperties:
		if len(params.Properties) == 0 {
			if err := askProperties(ctx, params, src); err != nil {
				return err
			}
		}
	}

	if params.Prompt == "" {
		u, _ := domain.ParseUseCase(params.UseCase)
		return askOne(&survey.Editor{
			Message:       "Issue body",
			Default:       src.Prompt(ctx, u),
			AppendDefault: true,
			HideDefault:   true,
		}, &params.Prompt, survey.WithValidator(survey.Required))
	}

	return nil
}

func askUseCase(params *runCmdParams) error {
	options := make([]string, 0, len(domain.UseCases))
	for _, u := range domain.UseCases {
		options = append(options, u.DisplayName())
	}

	var answer int
	err := askOne(&survey.Select{
		Message: "Use case",
		Options: options,
		Description: func(value string, index int) string {
			return domain.UseCases[index].Description()
		},
	}, &answer)
	if err != nil {
		return err
	}
	params.UseCase = string(domain.UseCases[answer])

	return nil
}

func askMethod(params *runCmdParams) error {
	options := make([]string, 0, len(selection.Methods))
	for _, m := range selection.Methods {
		options = append(options, m.DisplayName())
	}

	var answer int
	if err := askOne(&survey.Select{Message: "Target repositories", Options: options}, &answer); err != nil {
		return err
	}
	params.Method = string(selection.Methods[answer])

	return nil
}

func askRepositories(ctx context.Context, params *runCmdParams, src interactiveSource) error {
	repos, err := src.Repositories(ctx, params.Organization, params.Token)
	if len(repos) == 0 {
		if err != nil {
			return err
		}
		return errcodes.ErrNoTargetRepositories
	}
	if err != nil {
		log.Warn().Err(err).Int("loaded", len(repos)).Msg("showing a partial repository list")
	}

	options := make([]string, 0, len(repos))
	for _, r := range repos {
		options = append(options, r.Name)
	}

	return askOne(&survey.MultiSelect{
		Message:  "Repositories (type to search)",
		Options:  options,
		PageSize: catalog.DefaultViewPageSize,
		Description: func(value string, index int) string {
			return repos[index].Description
		},
	}, &params.Repositories, survey.WithValidator(survey.MinItems(1)))
}

func askProperties(ctx context.Context, params *runCmdParams, src interactiveSource) error {
	props := src.Properties(ctx, params.Organization, params.Token)
	options := make([]string, 0, len(props))
	for _, p := range props {
		options = append(options, p.Name)
	}

	var chosen []int
	err := askOne(&survey.MultiSelect{
		Message:  "Custom properties",
		Options:  options,
		PageSize: catalog.DefaultViewPageSize,
	}, &chosen, survey.WithValidator(survey.MinItems(1)))
	if err != nil {
		return err
	}

	for _, i := range chosen {
		p := props[i]
		var value string
		var prompt survey.Prompt = &survey.Input{Message: p.Name, Default: p.DefaultValue}
		if len(p.AllowedValues) > 0 {
			prompt = &survey.Select{Message: p.Name, Options: p.AllowedValues}
		}
		if err := askOne(prompt, &value); err != nil {
			return err
		}
		params.Properties = append(params.Properties, p.Name+"="+value)
	}

	if len(params.Repositories) > 0 {
		return nil
	}

	return askRepositories(ctx, params, src)
}
