package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/opine-io/opine-client/pkg/opine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSourcesCommand creates the sources command group.
func NewSourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sources",
		Aliases: []string{"source", "src"},
		Short:   "Manage sources",
		Long:    "List, create, update, and delete comment sources",
	}

	cmd.AddCommand(newSourcesListCommand())
	cmd.AddCommand(newSourcesGetCommand())
	cmd.AddCommand(newSourcesCreateCommand())
	cmd.AddCommand(newSourcesUpdateCommand())
	cmd.AddCommand(newSourcesDeleteCommand())

	return cmd
}

func newSourcesListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sources",
		Long:  "List all sources the user has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSourcesListCommand(cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of sources to return")

	return cmd
}

func runSourcesListCommand(cmd *cobra.Command, limit int) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	ctx := context.Background()

	params := opine.NewQueryParams()
	if limit > 0 {
		params.WithLimit(limit)
	}

	sources, err := client.Sources().List(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	return outputSources(sources)
}

func outputSources(sources []opine.Source) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(sources)
	case OutputFormatYAML:
		return StandardYAMLRenderer(sources)
	default:
		return renderSourceTable(sources)
	}
}

func renderSourceTable(sources []opine.Source) error {
	if len(sources) == 0 {
		_, _ = os.Stdout.WriteString("No sources found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Title", "Language", "Created")

	for _, source := range sources {
		_ = table.Append(source.FullName(), source.ID, source.Title,
			source.Language,
			source.CreatedAt.Format(tableDateFormat))
	}

	_ = table.Render()

	return nil
}

func newSourcesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SOURCE",
		Short: "Get source details",
		Long:  "Display detailed information about a source, by owner/name or id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSourcesGetCommand(cmd, args[0])
		},
	}
}

func runSourcesGetCommand(cmd *cobra.Command, identifierArg string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	identifier, err := opine.ParseIdentifier(opine.KindSource, identifierArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	source, err := client.Sources().Get(ctx, identifier)
	if err != nil {
		return err
	}

	return outputSourceDetails(source)
}

func outputSourceDetails(source *opine.Source) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(source)
	case OutputFormatYAML:
		return StandardYAMLRenderer(source)
	default:
		return renderSourceDetailsTable(source)
	}
}

func renderSourceDetailsTable(source *opine.Source) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", source.FullName())
	_ = table.Append("ID", source.ID)
	_ = table.Append("Title", source.Title)
	_ = table.Append("Description", source.Description)
	_ = table.Append("Language", source.Language)
	_ = table.Append("Translate", fmt.Sprintf("%t", source.ShouldTranslate))
	_ = table.Append("Sensitive Properties", strings.Join(source.SensitiveProperties, ", "))
	_ = table.Append("Created", source.CreatedAt.Format(tableDateTimeFormat))
	_ = table.Append("Updated", source.UpdatedAt.Format(tableDateTimeFormat))

	_, _ = os.Stdout.WriteString("Source details:\n\n")

	_ = table.Render()

	return nil
}

func newSourcesCreateCommand() *cobra.Command {
	var (
		title               string
		description         string
		language            string
		translate           bool
		sensitiveProperties []string
	)

	cmd := &cobra.Command{
		Use:   "create OWNER/NAME",
		Short: "Create a source",
		Long:  "Create a new source under the given owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &opine.SourceCreateRequest{
				Title:               title,
				Description:         description,
				Language:            language,
				SensitiveProperties: sensitiveProperties,
			}
			if cmd.Flags().Changed("translate") {
				request.ShouldTranslate = &translate
			}

			return runSourcesCreateCommand(cmd, args[0], request)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "human-readable title")
	cmd.Flags().StringVar(&description, "description", "", "source description")
	cmd.Flags().StringVar(&language, "language", "", "comment language code")
	cmd.Flags().BoolVar(&translate, "translate", false, "translate comments on ingestion")
	cmd.Flags().StringSliceVar(&sensitiveProperties, "sensitive-property", nil, "property to redact (repeatable)")

	return cmd
}

func runSourcesCreateCommand(cmd *cobra.Command, fullName string, request *opine.SourceCreateRequest) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	owner, name, err := parseFullNameArg(opine.KindSource, fullName)
	if err != nil {
		return err
	}

	ctx := context.Background()

	source, err := client.Sources().Create(ctx, owner, name, request)
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Created source %s (%s)\n", source.FullName(), source.ID)

	return nil
}

func newSourcesUpdateCommand() *cobra.Command {
	var (
		title               string
		description         string
		translate           bool
		sensitiveProperties []string
	)

	cmd := &cobra.Command{
		Use:   "update SOURCE",
		Short: "Update a source",
		Long:  "Update fields of an existing source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &opine.SourceUpdateRequest{}
			if cmd.Flags().Changed("title") {
				request.Title = &title
			}

			if cmd.Flags().Changed("description") {
				request.Description = &description
			}

			if cmd.Flags().Changed("translate") {
				request.ShouldTranslate = &translate
			}

			if cmd.Flags().Changed("sensitive-property") {
				request.SensitiveProperties = sensitiveProperties
			}

			return runSourcesUpdateCommand(cmd, args[0], request)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "human-readable title")
	cmd.Flags().StringVar(&description, "description", "", "source description")
	cmd.Flags().BoolVar(&translate, "translate", false, "translate comments on ingestion")
	cmd.Flags().StringSliceVar(&sensitiveProperties, "sensitive-property", nil, "property to redact (repeatable)")

	return cmd
}

func runSourcesUpdateCommand(cmd *cobra.Command, identifierArg string, request *opine.SourceUpdateRequest) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	identifier, err := opine.ParseIdentifier(opine.KindSource, identifierArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	source, err := client.Sources().Update(ctx, identifier, request)
	if err != nil {
		return fmt.Errorf("failed to update source: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Updated source %s\n", source.FullName())

	return nil
}

func newSourcesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete SOURCE...",
		Short: "Delete sources",
		Long:  "Delete one or more sources, by owner/name or id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSourcesDeleteCommand(cmd, args)
		},
	}
}

func runSourcesDeleteCommand(cmd *cobra.Command, identifierArgs []string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	return runBatchDelete(client, opine.KindSource, identifierArgs)
}

// runBatchDelete deletes multiple resources concurrently and reports
// per-resource outcomes.
func runBatchDelete(client opine.Client, kind opine.ResourceKind, identifierArgs []string) error {
	operations := make([]opine.BatchOperation, 0, len(identifierArgs))

	for _, arg := range identifierArgs {
		identifier, err := opine.ParseIdentifier(kind, arg)
		if err != nil {
			return err
		}

		operations = append(operations, opine.BatchOperation{
			ID:         arg,
			Kind:       kind,
			Type:       opine.BatchOpDelete,
			Identifier: identifier,
		})
	}

	executor := opine.NewBatchExecutor(client, 0)
	results := executor.Execute(context.Background(), operations)

	failed := 0

	for _, result := range results {
		if result.Success {
			_, _ = fmt.Fprintf(os.Stdout, "Deleted %s %s\n", kind, result.ID)
		} else {
			failed++

			_, _ = fmt.Fprintf(os.Stderr, "Failed to delete %s %s: %v\n", kind, result.ID, result.Error)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w (%d of %d)", ErrDeleteFailed, failed, len(results))
	}

	return nil
}
