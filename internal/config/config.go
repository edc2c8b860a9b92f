// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application.
type Config struct {
	GitHub GitHubConfig
}

// GitHubConfig holds the GitHub specific configuration.
type GitHubConfig struct {
	// Token is the personal access token used as the bearer credential.
	Token string

	// Owner is the repository owner, a user or an organization.
	Owner string

	// Repo is the repository name.
	Repo string

	// ProjectNumber is the default project board number, 0 when unset.
	ProjectNumber int
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.owner", "GITHUB_OWNER")
	v.BindEnv("github.repo", "GITHUB_REPO")
	v.BindEnv("github.project_number", "GITHUB_PROJECT_NUMBER")

	config := &Config{
		GitHub: GitHubConfig{
			Token:         v.GetString("github.token"),
			Owner:         v.GetString("github.owner"),
			Repo:          v.GetString("github.repo"),
			ProjectNumber: v.GetInt("github.project_number"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig ensures that all required configuration values are provided.
// The project number is optional: operations that need a board take an
// explicit number as well.
func validateConfig(config *Config) error {
	var missingVars []string

	if config.GitHub.Token == "" {
		missingVars = append(missingVars, "GITHUB_TOKEN")
	}
	if config.GitHub.Owner == "" {
		missingVars = append(missingVars, "GITHUB_OWNER")
	}
	if config.GitHub.Repo == "" {
		missingVars = append(missingVars, "GITHUB_REPO")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}
