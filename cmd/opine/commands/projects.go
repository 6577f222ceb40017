package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/opine-io/opine-client/pkg/opine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
		Long:    "List, create, and update projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsCreateCommand())
	cmd.AddCommand(newProjectsUpdateCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List all projects the user has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectsListCommand(cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of projects to return")

	return cmd
}

func runProjectsListCommand(cmd *cobra.Command, limit int) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	ctx := context.Background()

	params := opine.NewQueryParams()
	if limit > 0 {
		params.WithLimit(limit)
	}

	projects, err := client.Projects().List(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	return outputProjects(projects)
}

func outputProjects(projects []opine.Project) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(projects)
	case OutputFormatYAML:
		return StandardYAMLRenderer(projects)
	default:
		return renderProjectTable(projects)
	}
}

func renderProjectTable(projects []opine.Project) error {
	if len(projects) == 0 {
		_, _ = os.Stdout.WriteString("No projects found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Title", "Created")

	for _, project := range projects {
		_ = table.Append(project.Name, project.ID, project.Title,
			project.CreatedAt.Format(tableDateFormat))
	}

	_ = table.Render()

	return nil
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Get project details",
		Long:  "Display detailed information about a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectsGetCommand(cmd, args[0])
		},
	}
}

func runProjectsGetCommand(cmd *cobra.Command, name string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	ctx := context.Background()

	project, err := client.Projects().Get(ctx, name)
	if err != nil {
		return err
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(project)
	case OutputFormatYAML:
		return StandardYAMLRenderer(project)
	default:
		return renderProjectDetailsTable(project)
	}
}

func renderProjectDetailsTable(project *opine.Project) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", project.Name)
	_ = table.Append("ID", project.ID)
	_ = table.Append("Title", project.Title)
	_ = table.Append("Description", project.Description)
	_ = table.Append("Created", project.CreatedAt.Format(tableDateTimeFormat))

	_, _ = os.Stdout.WriteString("Project details:\n\n")

	_ = table.Render()

	return nil
}

func newProjectsCreateCommand() *cobra.Command {
	var (
		title       string
		description string
		userIDs     []string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project",
		Long:  "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &opine.ProjectCreateRequest{
				Title:       title,
				Description: description,
				UserIDs:     userIDs,
			}

			return runProjectsCreateCommand(cmd, args[0], request)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "human-readable title")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringSliceVar(&userIDs, "user", nil, "user id to grant access (repeatable)")

	return cmd
}

func runProjectsCreateCommand(cmd *cobra.Command, name string, request *opine.ProjectCreateRequest) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	ctx := context.Background()

	project, err := client.Projects().Create(ctx, name, request)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Created project %s (%s)\n", project.Name, project.ID)

	return nil
}

func newProjectsUpdateCommand() *cobra.Command {
	var (
		title       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Update a project",
		Long:  "Update fields of an existing project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &opine.ProjectUpdateRequest{}
			if cmd.Flags().Changed("title") {
				request.Title = &title
			}

			if cmd.Flags().Changed("description") {
				request.Description = &description
			}

			return runProjectsUpdateCommand(cmd, args[0], request)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "human-readable title")
	cmd.Flags().StringVar(&description, "description", "", "project description")

	return cmd
}

func runProjectsUpdateCommand(cmd *cobra.Command, name string, request *opine.ProjectUpdateRequest) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	ctx := context.Background()

	project, err := client.Projects().Update(ctx, name, request)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Updated project %s\n", project.Name)

	return nil
}
