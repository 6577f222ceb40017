package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/opine-io/opine-client/internal/constants"
	"github.com/opine-io/opine-client/pkg/opine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List, create, and update platform users",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersSetPermissionsCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var (
		allPages bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "List platform users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsersListCommand(cmd, allPages, limit)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "results per page")

	return cmd
}

func runUsersListCommand(cmd *cobra.Command, allPages bool, limit int) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	ctx := context.Background()

	if allPages {
		iterator := opine.NewPageIterator(ctx, func(ctx context.Context, continuation string) ([]opine.User, string, error) {
			params := opine.NewQueryParams().WithLimit(limit).WithContinuation(continuation)

			page, err := client.Users().List(ctx, params)
			if err != nil {
				return nil, "", err
			}

			return page.Users, page.Continuation, nil
		})

		users, err := iterator.All()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		return outputUsers(users, "", true)
	}

	params := opine.NewQueryParams().WithLimit(limit)

	page, err := client.Users().List(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	return outputUsers(page.Users, page.Continuation, false)
}

func outputUsers(users []opine.User, continuation string, allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(users)
	case OutputFormatYAML:
		return StandardYAMLRenderer(users)
	default:
		return renderUserTable(users, continuation, allPages)
	}
}

func renderUserTable(users []opine.User, continuation string, allPages bool) error {
	if len(users) == 0 {
		_, _ = os.Stdout.WriteString("No users found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Username", "ID", "Email", "Global Permissions", "Created")

	for _, user := range users {
		_ = table.Append(user.Username, user.ID, user.Email,
			strings.Join(user.GlobalPermissions, ", "),
			user.CreatedAt.Format(tableDateFormat))
	}

	_ = table.Render()

	if !allPages && continuation != "" {
		_, _ = os.Stdout.WriteString("\nMore users available. Use --all to fetch all pages.\n")
	}

	return nil
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER",
		Short: "Get user details",
		Long:  "Display detailed information about a user, by id or username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsersGetCommand(cmd, args[0])
		},
	}
}

func runUsersGetCommand(cmd *cobra.Command, userArg string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	ctx := context.Background()

	user, err := findUser(ctx, client, userArg)
	if err != nil {
		return err
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(user)
	case OutputFormatYAML:
		return StandardYAMLRenderer(user)
	default:
		return renderUserDetailsTable(user)
	}
}

// findUser looks a user up by id when the argument parses as one, falling
// back to a username lookup.
func findUser(ctx context.Context, client opine.Client, userArg string) (*opine.User, error) {
	identifier, err := opine.ParseIdentifier(opine.KindUser, userArg)
	if err == nil {
		if id, ok := identifier.ID(); ok {
			user, err := client.Users().Get(ctx, id)
			if err == nil {
				return user, nil
			}
		}
	}

	return client.Users().GetByUsername(ctx, userArg)
}

func renderUserDetailsTable(user *opine.User) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Username", user.Username)
	_ = table.Append("ID", user.ID)
	_ = table.Append("Email", user.Email)
	_ = table.Append("Global Permissions", strings.Join(user.GlobalPermissions, ", "))
	_ = table.Append("Created", user.CreatedAt.Format(tableDateTimeFormat))

	_, _ = os.Stdout.WriteString("User details:\n\n")

	_ = table.Render()

	renderProjectPermissionsTable(user.ProjectPermissions)

	return nil
}

func renderProjectPermissionsTable(permissions map[string][]string) {
	if len(permissions) == 0 {
		return
	}

	_, _ = os.Stdout.WriteString("\nProject permissions:\n")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Project", "Permissions")

	for project, perms := range permissions {
		_ = table.Append(project, strings.Join(perms, ", "))
	}

	_ = table.Render()
}

func newUsersCreateCommand() *cobra.Command {
	var (
		username          string
		email             string
		globalPermissions []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Long:  "Create a new platform user",
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &opine.UserCreateRequest{
				Username:          username,
				Email:             email,
				GlobalPermissions: globalPermissions,
			}

			return runUsersCreateCommand(cmd, request)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "unique username")
	cmd.Flags().StringVar(&email, "email", "", "user email address")
	cmd.Flags().StringSliceVar(&globalPermissions, "permission", nil, "global permission to grant (repeatable)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runUsersCreateCommand(cmd *cobra.Command, request *opine.UserCreateRequest) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	ctx := context.Background()

	user, err := client.Users().Create(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Created user %s (%s)\n", user.Username, user.ID)

	return nil
}

func newUsersSetPermissionsCommand() *cobra.Command {
	var (
		globalPermissions  []string
		projectPermissions []string
	)

	cmd := &cobra.Command{
		Use:   "set-permissions USER",
		Short: "Replace a user's permissions",
		Long:  "Replace a user's global and per-project permissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &opine.UserPermissionsUpdateRequest{
				GlobalPermissions:  globalPermissions,
				ProjectPermissions: parseProjectPermissions(projectPermissions),
			}

			return runUsersSetPermissionsCommand(cmd, args[0], request)
		},
	}

	cmd.Flags().StringSliceVar(&globalPermissions, "global", nil, "global permission to grant (repeatable)")
	cmd.Flags().StringSliceVar(&projectPermissions, "project", nil, "project permission as project=permission (repeatable)")

	return cmd
}

// parseProjectPermissions parses project=permission pairs into a map.
// Malformed entries are skipped.
func parseProjectPermissions(pairs []string) map[string][]string {
	if len(pairs) == 0 {
		return nil
	}

	permissions := make(map[string][]string)

	for _, pair := range pairs {
		project, permission, ok := strings.Cut(pair, "=")
		if !ok || project == "" || permission == "" {
			continue
		}

		permissions[project] = append(permissions[project], permission)
	}

	return permissions
}

func runUsersSetPermissionsCommand(cmd *cobra.Command, userArg string, request *opine.UserPermissionsUpdateRequest) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	ctx := context.Background()

	user, err := findUser(ctx, client, userArg)
	if err != nil {
		return err
	}

	updated, err := client.Users().UpdatePermissions(ctx, user.ID, request)
	if err != nil {
		return fmt.Errorf("failed to update permissions: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Updated permissions for %s\n", updated.Username)

	return nil
}
