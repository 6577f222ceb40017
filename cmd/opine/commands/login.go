package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/opine-io/opine-client/internal/constants"
	"github.com/opine-io/opine-client/pkg/opine"
	"github.com/opine-io/opine-client/pkg/opineclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		token       string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Opine",
		Long:  "Store an API endpoint and token for subsequent commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoginCommand(apiEndpoint, token)
		},
	}

	cmd.Flags().StringVar(&apiEndpoint, "api", "", "API endpoint URL")
	cmd.Flags().StringVar(&token, "token", "", "API token (prompted if not given)")

	return cmd
}

func runLoginCommand(apiEndpoint, token string) error {
	if apiEndpoint == "" {
		apiEndpoint = viper.GetString("api")
	}

	if apiEndpoint == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("API endpoint: ")

		input, _ := reader.ReadString('\n')
		apiEndpoint = strings.TrimSpace(input)
	}

	if apiEndpoint == "" {
		return ErrAPIEndpointRequired
	}

	if token == "" {
		fmt.Print("API token: ")

		byteToken, err := term.ReadPassword(int(syscall.Stdin))

		fmt.Println()

		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}

		token = strings.TrimSpace(string(byteToken))
	}

	if token == "" {
		return ErrTokenRequired
	}

	err := validateCredentials(apiEndpoint, token)
	if err != nil {
		return err
	}

	persister := NewConfigPersister()

	err = persister.UpdateCredentials(apiEndpoint, token)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Logged in to %s\n", apiEndpoint)

	return nil
}

// validateCredentials checks the endpoint and token with a cheap request.
func validateCredentials(apiEndpoint, token string) error {
	client, err := opineclient.NewWithToken(apiEndpoint, token)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShortHTTPTimeout)
	defer cancel()

	params := opine.NewQueryParams().WithLimit(1)

	_, err = client.Projects().List(ctx, params)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEndpointValidationFailed, err)
	}

	return nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Opine",
		Long:  "Remove the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			persister := NewConfigPersister()

			err := persister.ClearCredentials()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, "Logged out")

			return nil
		},
	}
}
