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

// NewBucketsCommand creates the buckets command group.
func NewBucketsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "buckets",
		Aliases: []string{"bucket"},
		Short:   "Manage buckets",
		Long:    "List, create, and delete raw document buckets",
	}

	cmd.AddCommand(newBucketsListCommand())
	cmd.AddCommand(newBucketsGetCommand())
	cmd.AddCommand(newBucketsCreateCommand())
	cmd.AddCommand(newBucketsDeleteCommand())

	return cmd
}

func newBucketsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List buckets",
		Long:  "List all buckets the user has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBucketsListCommand(cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of buckets to return")

	return cmd
}

func runBucketsListCommand(cmd *cobra.Command, limit int) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	ctx := context.Background()

	params := opine.NewQueryParams()
	if limit > 0 {
		params.WithLimit(limit)
	}

	buckets, err := client.Buckets().List(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to list buckets: %w", err)
	}

	return outputBuckets(buckets)
}

func outputBuckets(buckets []opine.Bucket) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(buckets)
	case OutputFormatYAML:
		return StandardYAMLRenderer(buckets)
	default:
		return renderBucketTable(buckets)
	}
}

func renderBucketTable(buckets []opine.Bucket) error {
	if len(buckets) == 0 {
		_, _ = os.Stdout.WriteString("No buckets found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Transform Tag", "Created")

	for _, bucket := range buckets {
		_ = table.Append(bucket.FullName(), bucket.ID, bucket.TransformTag,
			bucket.CreatedAt.Format(tableDateFormat))
	}

	_ = table.Render()

	return nil
}

func newBucketsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BUCKET",
		Short: "Get bucket details",
		Long:  "Display detailed information about a bucket, by owner/name or id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBucketsGetCommand(cmd, args[0])
		},
	}
}

func runBucketsGetCommand(cmd *cobra.Command, identifierArg string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	identifier, err := opine.ParseIdentifier(opine.KindBucket, identifierArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	bucket, err := client.Buckets().Get(ctx, identifier)
	if err != nil {
		return err
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(bucket)
	case OutputFormatYAML:
		return StandardYAMLRenderer(bucket)
	default:
		return renderBucketDetailsTable(bucket)
	}
}

func renderBucketDetailsTable(bucket *opine.Bucket) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", bucket.FullName())
	_ = table.Append("ID", bucket.ID)
	_ = table.Append("Transform Tag", bucket.TransformTag)
	_ = table.Append("Created", bucket.CreatedAt.Format(tableDateTimeFormat))

	_, _ = os.Stdout.WriteString("Bucket details:\n\n")

	_ = table.Render()

	return nil
}

func newBucketsCreateCommand() *cobra.Command {
	var transformTag string

	cmd := &cobra.Command{
		Use:   "create OWNER/NAME",
		Short: "Create a bucket",
		Long:  "Create a new raw document bucket under the given owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &opine.BucketCreateRequest{
				TransformTag: transformTag,
			}

			return runBucketsCreateCommand(cmd, args[0], request)
		},
	}

	cmd.Flags().StringVar(&transformTag, "transform-tag", "", "transform applied to uploaded documents")

	return cmd
}

func runBucketsCreateCommand(cmd *cobra.Command, fullName string, request *opine.BucketCreateRequest) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	owner, name, err := parseFullNameArg(opine.KindBucket, fullName)
	if err != nil {
		return err
	}

	ctx := context.Background()

	bucket, err := client.Buckets().Create(ctx, owner, name, request)
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Created bucket %s (%s)\n", bucket.FullName(), bucket.ID)

	return nil
}

func newBucketsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete BUCKET...",
		Short: "Delete buckets",
		Long:  "Delete one or more buckets, by owner/name or id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			return runBatchDelete(client, opine.KindBucket, args)
		},
	}
}
