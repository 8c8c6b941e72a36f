package main

import (
	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-canvas/internal/config"
)

// promptCredentials asks for whatever is missing. Username left blank means
// the operator wants bearer-token auth.
func promptCredentials(cfg config.Config) (config.Config, error) {
	if cfg.Username == "" {
		prompt := &survey.Input{
			Message: "GoCanvas username (leave empty to use a bearer token):",
		}
		if err := survey.AskOne(prompt, &cfg.Username); err != nil {
			return cfg, err
		}
	}

	if cfg.Username != "" && cfg.Password == "" {
		prompt := &survey.Password{Message: "GoCanvas password:"}
		if err := survey.AskOne(prompt, &cfg.Password); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	if cfg.Username == "" && cfg.BearerToken == "" {
		prompt := &survey.Password{Message: "OAuth bearer token:"}
		if err := survey.AskOne(prompt, &cfg.BearerToken); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
