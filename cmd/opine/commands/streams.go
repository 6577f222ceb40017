package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/opine-io/opine-client/internal/constants"
	"github.com/opine-io/opine-client/pkg/opine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewStreamsCommand creates the streams command group.
func NewStreamsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "streams",
		Aliases: []string{"stream"},
		Short:   "Manage streams",
		Long:    "List, create, delete, and consume streams over a dataset",
	}

	cmd.AddCommand(newStreamsListCommand())
	cmd.AddCommand(newStreamsGetCommand())
	cmd.AddCommand(newStreamsCreateCommand())
	cmd.AddCommand(newStreamsDeleteCommand())
	cmd.AddCommand(newStreamsFetchCommand())
	cmd.AddCommand(newStreamsAdvanceCommand())
	cmd.AddCommand(newStreamsResetCommand())

	return cmd
}

func newStreamsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list DATASET",
		Short: "List streams",
		Long:  "List all streams over the given dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStreamsListCommand(cmd, args[0])
		},
	}
}

func runStreamsListCommand(cmd *cobra.Command, datasetArg string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	dataset, err := opine.ParseIdentifier(opine.KindDataset, datasetArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	streams, err := client.Streams().List(ctx, dataset)
	if err != nil {
		return fmt.Errorf("failed to list streams: %w", err)
	}

	return outputStreams(streams)
}

func outputStreams(streams []opine.Stream) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(streams)
	case OutputFormatYAML:
		return StandardYAMLRenderer(streams)
	default:
		return renderStreamTable(streams)
	}
}

func renderStreamTable(streams []opine.Stream) error {
	if len(streams) == 0 {
		_, _ = os.Stdout.WriteString("No streams found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Title", "Model Version", "Created")

	for _, stream := range streams {
		_ = table.Append(stream.Name, stream.ID, stream.Title,
			fmt.Sprintf("%d", stream.ModelVersion),
			stream.CreatedAt.Format(tableDateFormat))
	}

	_ = table.Render()

	return nil
}

func newStreamsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DATASET STREAM",
		Short: "Get stream details",
		Long:  "Display detailed information about a stream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStreamsGetCommand(cmd, args[0], args[1])
		},
	}
}

func runStreamsGetCommand(cmd *cobra.Command, datasetArg, name string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	dataset, err := opine.ParseIdentifier(opine.KindDataset, datasetArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	stream, err := client.Streams().Get(ctx, dataset, name)
	if err != nil {
		return err
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(stream)
	case OutputFormatYAML:
		return StandardYAMLRenderer(stream)
	default:
		return renderStreamDetailsTable(stream)
	}
}

func renderStreamDetailsTable(stream *opine.Stream) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", stream.Name)
	_ = table.Append("ID", stream.ID)
	_ = table.Append("Title", stream.Title)
	_ = table.Append("Dataset ID", stream.DatasetID)
	_ = table.Append("Model Version", fmt.Sprintf("%d", stream.ModelVersion))
	_ = table.Append("Created", stream.CreatedAt.Format(tableDateTimeFormat))
	_ = table.Append("Updated", stream.UpdatedAt.Format(tableDateTimeFormat))

	_, _ = os.Stdout.WriteString("Stream details:\n\n")

	_ = table.Render()

	return nil
}

func newStreamsCreateCommand() *cobra.Command {
	var (
		title        string
		modelVersion int
	)

	cmd := &cobra.Command{
		Use:   "create DATASET NAME",
		Short: "Create a stream",
		Long:  "Create a new stream over the given dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &opine.StreamCreateRequest{
				Name:         args[1],
				Title:        title,
				ModelVersion: modelVersion,
			}

			return runStreamsCreateCommand(cmd, args[0], request)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "human-readable title")
	cmd.Flags().IntVar(&modelVersion, "model-version", 0, "pin predictions to a model version")

	return cmd
}

func runStreamsCreateCommand(cmd *cobra.Command, datasetArg string, request *opine.StreamCreateRequest) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	dataset, err := opine.ParseIdentifier(opine.KindDataset, datasetArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	stream, err := client.Streams().Create(ctx, dataset, request)
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Created stream %s (%s)\n", stream.Name, stream.ID)

	return nil
}

func newStreamsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DATASET STREAM",
		Short: "Delete a stream",
		Long:  "Delete a stream over the given dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStreamsDeleteCommand(cmd, args[0], args[1])
		},
	}
}

func runStreamsDeleteCommand(cmd *cobra.Command, datasetArg, name string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	dataset, err := opine.ParseIdentifier(opine.KindDataset, datasetArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	err = client.Streams().Delete(ctx, dataset, name)
	if err != nil {
		return fmt.Errorf("failed to delete stream: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Deleted stream %s\n", name)

	return nil
}

func newStreamsFetchCommand() *cobra.Command {
	var (
		size         int
		continuation string
		advance      bool
	)

	cmd := &cobra.Command{
		Use:   "fetch DATASET STREAM",
		Short: "Fetch stream results",
		Long:  "Fetch a batch of comments with predictions past the stream's committed position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStreamsFetchCommand(cmd, args[0], args[1], size, continuation, advance)
		},
	}

	cmd.Flags().IntVar(&size, "size", constants.DefaultPageSize, "batch size")
	cmd.Flags().StringVar(&continuation, "continuation", "", "fetch past this continuation instead of the committed position")
	cmd.Flags().BoolVar(&advance, "advance", false, "commit the stream past the fetched batch")

	return cmd
}

func runStreamsFetchCommand(cmd *cobra.Command, datasetArg, name string, size int, continuation string, advance bool) error {
	if size < 1 || size > constants.MaxPageSize {
		return fmt.Errorf("%w, got %d", constants.ErrInvalidPageSize, size)
	}

	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	dataset, err := opine.ParseIdentifier(opine.KindDataset, datasetArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	batch, err := client.Streams().Fetch(ctx, dataset, name, size, continuation)
	if err != nil {
		return fmt.Errorf("failed to fetch stream batch: %w", err)
	}

	err = outputStreamBatch(batch)
	if err != nil {
		return err
	}

	if advance && batch.Continuation != "" {
		err = client.Streams().Advance(ctx, dataset, name, batch.Continuation)
		if err != nil {
			return fmt.Errorf("failed to advance stream: %w", err)
		}
	}

	return nil
}

func outputStreamBatch(batch *opine.StreamBatch) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(batch)
	case OutputFormatYAML:
		return StandardYAMLRenderer(batch)
	default:
		return renderStreamBatchTable(batch)
	}
}

func renderStreamBatchTable(batch *opine.StreamBatch) error {
	if len(batch.Results) == 0 {
		_, _ = os.Stdout.WriteString("No results\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Comment", "Timestamp", "Top Label", "Probability")

	for _, result := range batch.Results {
		label, probability := topPrediction(result.Prediction)

		_ = table.Append(result.Comment.ID,
			result.Comment.Timestamp.Format(tableDateTimeFormat),
			label, probability)
	}

	_ = table.Render()

	_, _ = fmt.Fprintf(os.Stdout, "\nContinuation: %s\n", batch.Continuation)

	return nil
}

func topPrediction(predictions []opine.PredictedLabel) (string, string) {
	if len(predictions) == 0 {
		return "", ""
	}

	top := predictions[0]
	for _, prediction := range predictions[1:] {
		if prediction.Probability > top.Probability {
			top = prediction
		}
	}

	name := ""
	if len(top.Name) > 0 {
		name = top.Name[len(top.Name)-1]
	}

	return name, fmt.Sprintf("%.3f", top.Probability)
}

func newStreamsAdvanceCommand() *cobra.Command {
	var continuation string

	cmd := &cobra.Command{
		Use:   "advance DATASET STREAM",
		Short: "Advance a stream",
		Long:  "Commit the stream up to and including the batch that produced the continuation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStreamsAdvanceCommand(cmd, args[0], args[1], continuation)
		},
	}

	cmd.Flags().StringVar(&continuation, "continuation", "", "continuation token from a fetched batch")
	_ = cmd.MarkFlagRequired("continuation")

	return cmd
}

func runStreamsAdvanceCommand(cmd *cobra.Command, datasetArg, name, continuation string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	dataset, err := opine.ParseIdentifier(opine.KindDataset, datasetArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	err = client.Streams().Advance(ctx, dataset, name, continuation)
	if err != nil {
		return fmt.Errorf("failed to advance stream: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Advanced stream %s\n", name)

	return nil
}

func newStreamsResetCommand() *cobra.Command {
	var toTimestamp string

	cmd := &cobra.Command{
		Use:   "reset DATASET STREAM",
		Short: "Reset a stream",
		Long:  "Move the stream's committed position to the given time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStreamsResetCommand(cmd, args[0], args[1], toTimestamp)
		},
	}

	cmd.Flags().StringVar(&toTimestamp, "to", "", "RFC3339 timestamp to reset to")

	return cmd
}

func runStreamsResetCommand(cmd *cobra.Command, datasetArg, name, toTimestamp string) error {
	if toTimestamp == "" {
		return ErrTimestampRequired
	}

	to, err := time.Parse(time.RFC3339, toTimestamp)
	if err != nil {
		return fmt.Errorf("parsing timestamp: %w", err)
	}

	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	dataset, err := opine.ParseIdentifier(opine.KindDataset, datasetArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	err = client.Streams().Reset(ctx, dataset, name, to)
	if err != nil {
		return fmt.Errorf("failed to reset stream: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Reset stream %s to %s\n", name, to.Format(time.RFC3339))

	return nil
}
