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

// NewDatasetsCommand creates the datasets command group.
func NewDatasetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"dataset", "ds"},
		Short:   "Manage datasets",
		Long:    "List, create, update, and delete datasets",
	}

	cmd.AddCommand(newDatasetsListCommand())
	cmd.AddCommand(newDatasetsGetCommand())
	cmd.AddCommand(newDatasetsCreateCommand())
	cmd.AddCommand(newDatasetsUpdateCommand())
	cmd.AddCommand(newDatasetsDeleteCommand())
	cmd.AddCommand(newDatasetsStatisticsCommand())

	return cmd
}

func newDatasetsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List datasets",
		Long:  "List all datasets the user has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetsListCommand(cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of datasets to return")

	return cmd
}

func runDatasetsListCommand(cmd *cobra.Command, limit int) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	ctx := context.Background()

	params := opine.NewQueryParams()
	if limit > 0 {
		params.WithLimit(limit)
	}

	datasets, err := client.Datasets().List(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}

	return outputDatasets(datasets)
}

func outputDatasets(datasets []opine.Dataset) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(datasets)
	case OutputFormatYAML:
		return StandardYAMLRenderer(datasets)
	default:
		return renderDatasetTable(datasets)
	}
}

func renderDatasetTable(datasets []opine.Dataset) error {
	if len(datasets) == 0 {
		_, _ = os.Stdout.WriteString("No datasets found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Title", "Sources", "Labels", "Created")

	for _, dataset := range datasets {
		_ = table.Append(dataset.FullName(), dataset.ID, dataset.Title,
			fmt.Sprintf("%d", len(dataset.SourceIDs)),
			fmt.Sprintf("%d", len(dataset.LabelDefs)),
			dataset.CreatedAt.Format(tableDateFormat))
	}

	_ = table.Render()

	return nil
}

func newDatasetsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DATASET",
		Short: "Get dataset details",
		Long:  "Display detailed information about a dataset, by owner/name or id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetsGetCommand(cmd, args[0])
		},
	}
}

func runDatasetsGetCommand(cmd *cobra.Command, identifierArg string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	identifier, err := opine.ParseIdentifier(opine.KindDataset, identifierArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	dataset, err := client.Datasets().Get(ctx, identifier)
	if err != nil {
		return err
	}

	return outputDatasetDetails(dataset)
}

func outputDatasetDetails(dataset *opine.Dataset) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(dataset)
	case OutputFormatYAML:
		return StandardYAMLRenderer(dataset)
	default:
		return renderDatasetDetailsTable(dataset)
	}
}

func renderDatasetDetailsTable(dataset *opine.Dataset) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", dataset.FullName())
	_ = table.Append("ID", dataset.ID)
	_ = table.Append("Title", dataset.Title)
	_ = table.Append("Description", dataset.Description)
	_ = table.Append("Sources", strings.Join(dataset.SourceIDs, ", "))
	_ = table.Append("Model Family", dataset.ModelFamily)
	_ = table.Append("Created", dataset.CreatedAt.Format(tableDateTimeFormat))
	_ = table.Append("Updated", dataset.UpdatedAt.Format(tableDateTimeFormat))

	_, _ = os.Stdout.WriteString("Dataset details:\n\n")

	_ = table.Render()

	renderLabelDefsTable(dataset.LabelDefs)

	return nil
}

func renderLabelDefsTable(labelDefs []opine.LabelDef) {
	if len(labelDefs) == 0 {
		return
	}

	_, _ = os.Stdout.WriteString("\nLabels:\n")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Title")

	for _, def := range labelDefs {
		_ = table.Append(def.Name, def.Title)
	}

	_ = table.Render()
}

func newDatasetsCreateCommand() *cobra.Command {
	var (
		title       string
		description string
		sourceIDs   []string
		labels      []string
		modelFamily string
	)

	cmd := &cobra.Command{
		Use:   "create OWNER/NAME",
		Short: "Create a dataset",
		Long:  "Create a new dataset over one or more sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &opine.DatasetCreateRequest{
				Title:       title,
				Description: description,
				SourceIDs:   sourceIDs,
				LabelDefs:   labelDefsFromFlags(labels),
				ModelFamily: modelFamily,
			}

			return runDatasetsCreateCommand(cmd, args[0], request)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "human-readable title")
	cmd.Flags().StringVar(&description, "description", "", "dataset description")
	cmd.Flags().StringSliceVar(&sourceIDs, "source", nil, "source id to include (repeatable)")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "label name to define (repeatable)")
	cmd.Flags().StringVar(&modelFamily, "model-family", "", "model family to train with")

	return cmd
}

func labelDefsFromFlags(labels []string) []opine.LabelDef {
	if len(labels) == 0 {
		return nil
	}

	defs := make([]opine.LabelDef, 0, len(labels))
	for _, name := range labels {
		defs = append(defs, opine.LabelDef{Name: name})
	}

	return defs
}

func runDatasetsCreateCommand(cmd *cobra.Command, fullName string, request *opine.DatasetCreateRequest) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	owner, name, err := parseFullNameArg(opine.KindDataset, fullName)
	if err != nil {
		return err
	}

	ctx := context.Background()

	dataset, err := client.Datasets().Create(ctx, owner, name, request)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Created dataset %s (%s)\n", dataset.FullName(), dataset.ID)

	return nil
}

func newDatasetsUpdateCommand() *cobra.Command {
	var (
		title       string
		description string
		sourceIDs   []string
		labels      []string
	)

	cmd := &cobra.Command{
		Use:   "update DATASET",
		Short: "Update a dataset",
		Long:  "Update fields of an existing dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &opine.DatasetUpdateRequest{}
			if cmd.Flags().Changed("title") {
				request.Title = &title
			}

			if cmd.Flags().Changed("description") {
				request.Description = &description
			}

			if cmd.Flags().Changed("source") {
				request.SourceIDs = sourceIDs
			}

			if cmd.Flags().Changed("label") {
				request.LabelDefs = labelDefsFromFlags(labels)
			}

			return runDatasetsUpdateCommand(cmd, args[0], request)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "human-readable title")
	cmd.Flags().StringVar(&description, "description", "", "dataset description")
	cmd.Flags().StringSliceVar(&sourceIDs, "source", nil, "source id to include (repeatable)")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "label name to define (repeatable)")

	return cmd
}

func runDatasetsUpdateCommand(cmd *cobra.Command, identifierArg string, request *opine.DatasetUpdateRequest) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	identifier, err := opine.ParseIdentifier(opine.KindDataset, identifierArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	dataset, err := client.Datasets().Update(ctx, identifier, request)
	if err != nil {
		return fmt.Errorf("failed to update dataset: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Updated dataset %s\n", dataset.FullName())

	return nil
}

func newDatasetsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DATASET...",
		Short: "Delete datasets",
		Long:  "Delete one or more datasets, by owner/name or id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			return runBatchDelete(client, opine.KindDataset, args)
		},
	}
}

func newDatasetsStatisticsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "statistics DATASET",
		Aliases: []string{"stats"},
		Short:   "Show validation statistics",
		Long:    "Display model validation statistics for a dataset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetsStatisticsCommand(cmd, args[0])
		},
	}
}

func runDatasetsStatisticsCommand(cmd *cobra.Command, identifierArg string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	identifier, err := opine.ParseIdentifier(opine.KindDataset, identifierArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	statistics, err := client.Datasets().Statistics(ctx, identifier)
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(statistics)
	case OutputFormatYAML:
		return StandardYAMLRenderer(statistics)
	default:
		return renderStatisticsTable(statistics)
	}
}

func renderStatisticsTable(statistics *opine.ValidationStatistics) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Labelled", fmt.Sprintf("%d", statistics.NumLabelled))
	_ = table.Append("Reviewed", fmt.Sprintf("%d", statistics.NumReviewed))
	_ = table.Append("Mean Average Precision", fmt.Sprintf("%.4f", statistics.MeanAveragePrecision))
	_ = table.Append("Updated", statistics.UpdatedAt.Format(tableDateTimeFormat))

	_ = table.Render()

	return nil
}
