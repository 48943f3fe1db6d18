package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/pipedream-labs/connect-go/internal/constants"
	"github.com/pipedream-labs/connect-go/pkg/connect"
	"github.com/pipedream-labs/connect-go/pkg/pdclient"
)

// cliConfig is the on-disk shape of ~/.pdconnect/config.yml.
type cliConfig struct {
	Project      string `yaml:"project"`
	Environment  string `yaml:"environment,omitempty"`
	API          string `yaml:"api,omitempty"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		projectID    string
		environment  string
		clientID     string
		clientSecret string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store Connect credentials",
		Long:  "Verify OAuth client credentials against the API and save them to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			if projectID == "" {
				projectID = viper.GetString("project")
			}

			if projectID == "" {
				fmt.Print("Project ID (proj_...): ")
				projectID, _ = reader.ReadString('\n')
				projectID = strings.TrimSpace(projectID)
			}

			if projectID == "" {
				return constants.ErrNoProjectConfigured
			}

			if clientID == "" {
				fmt.Print("Client ID: ")
				clientID, _ = reader.ReadString('\n')
				clientID = strings.TrimSpace(clientID)
			}

			if clientSecret == "" {
				fmt.Print("Client secret: ")

				byteSecret, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read client secret: %w", err)
				}

				clientSecret = string(byteSecret)

				fmt.Println()
			}

			if clientID == "" || clientSecret == "" {
				return constants.ErrNoCredentialsConfigured
			}

			// Verify the credentials before persisting them.
			client, err := pdclient.New(cmd.Context(), &connect.Config{
				APIEndpoint:  viper.GetString("api"),
				ProjectID:    projectID,
				Environment:  connect.Environment(environment),
				ClientID:     clientID,
				ClientSecret: clientSecret,
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			defer func() { _ = client.Close() }()

			_, err = client.GetToken(cmd.Context())
			if err != nil {
				return fmt.Errorf("verifying credentials: %w", err)
			}

			err = saveConfig(&cliConfig{
				Project:      projectID,
				Environment:  environment,
				API:          viper.GetString("api"),
				ClientID:     clientID,
				ClientSecret: clientSecret,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Logged in to project %s\n", projectID)

			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "project ID (proj_...)")
	cmd.Flags().StringVar(&environment, "env", "", "environment (development or production)")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth client secret")

	return cmd
}

func saveConfig(config *cliConfig) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".pdconnect")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yml")

	err = os.WriteFile(configPath, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
