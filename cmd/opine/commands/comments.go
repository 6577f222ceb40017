package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/opine-io/opine-client/internal/constants"
	"github.com/opine-io/opine-client/pkg/opine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewCommentsCommand creates the comments command group.
func NewCommentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"comment"},
		Short:   "Manage comments",
		Long:    "Query, upload, and delete comments within a source",
	}

	cmd.AddCommand(newCommentsQueryCommand())
	cmd.AddCommand(newCommentsGetCommand())
	cmd.AddCommand(newCommentsPutCommand())
	cmd.AddCommand(newCommentsDeleteCommand())

	return cmd
}

func newCommentsQueryCommand() *cobra.Command {
	var (
		allPages bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:     "query SOURCE",
		Aliases: []string{"list"},
		Short:   "Query comments",
		Long:    "Page through the comments of a source in timestamp order",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentsQueryCommand(cmd, args[0], allPages, limit)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "results per page")

	return cmd
}

func runCommentsQueryCommand(cmd *cobra.Command, sourceArg string, allPages bool, limit int) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	source, err := opine.ParseIdentifier(opine.KindSource, sourceArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if allPages {
		iterator := opine.NewPageIterator(ctx, func(ctx context.Context, continuation string) ([]opine.Comment, string, error) {
			params := opine.NewQueryParams().WithLimit(limit).WithContinuation(continuation)

			page, err := client.Comments().Query(ctx, source, params)
			if err != nil {
				return nil, "", err
			}

			return page.Comments, page.Continuation, nil
		})

		comments, err := iterator.All()
		if err != nil {
			return fmt.Errorf("failed to query comments: %w", err)
		}

		return outputComments(comments, "", true)
	}

	params := opine.NewQueryParams().WithLimit(limit)

	page, err := client.Comments().Query(ctx, source, params)
	if err != nil {
		return fmt.Errorf("failed to query comments: %w", err)
	}

	return outputComments(page.Comments, page.Continuation, false)
}

func outputComments(comments []opine.Comment, continuation string, allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(comments)
	case OutputFormatYAML:
		return StandardYAMLRenderer(comments)
	default:
		return renderCommentTable(comments, continuation, allPages)
	}
}

func renderCommentTable(comments []opine.Comment, continuation string, allPages bool) error {
	if len(comments) == 0 {
		_, _ = os.Stdout.WriteString("No comments found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Timestamp", "Messages", "Preview")

	for _, comment := range comments {
		_ = table.Append(comment.ID,
			comment.Timestamp.Format(tableDateTimeFormat),
			fmt.Sprintf("%d", len(comment.Messages)),
			commentPreview(comment))
	}

	_ = table.Render()

	if !allPages && continuation != "" {
		_, _ = os.Stdout.WriteString("\nMore comments available. Use --all to fetch all pages.\n")
	}

	return nil
}

const previewLength = 60

func commentPreview(comment opine.Comment) string {
	if len(comment.Messages) == 0 {
		return ""
	}

	body := strings.ReplaceAll(comment.Messages[0].Body, "\n", " ")
	if len(body) > previewLength {
		body = body[:previewLength] + "..."
	}

	return body
}

func newCommentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SOURCE COMMENT_ID",
		Short: "Get a comment",
		Long:  "Display one comment from a source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentsGetCommand(cmd, args[0], args[1])
		},
	}
}

func runCommentsGetCommand(cmd *cobra.Command, sourceArg, commentID string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	source, err := opine.ParseIdentifier(opine.KindSource, sourceArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	comment, err := client.Comments().Get(ctx, source, commentID)
	if err != nil {
		return err
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatYAML:
		return StandardYAMLRenderer(comment)
	default:
		// Comments carry nested messages and free-form properties, so
		// the detail view is always structured.
		return StandardJSONRenderer(comment)
	}
}

func newCommentsPutCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "put SOURCE",
		Aliases: []string{"upload"},
		Short:   "Upload comments",
		Long:    "Upload comments to a source from a JSON file holding an array of comments",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentsPutCommand(cmd, args[0], file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with comments to upload")

	return cmd
}

func runCommentsPutCommand(cmd *cobra.Command, sourceArg, file string) error {
	if file == "" {
		return ErrCommentsFileRequired
	}

	comments, err := readCommentsFile(file)
	if err != nil {
		return err
	}

	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	source, err := opine.ParseIdentifier(opine.KindSource, sourceArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Upload in bounded batches so large files do not produce oversized
	// requests.
	for start := 0; start < len(comments); start += constants.CommentBatchSize {
		end := start + constants.CommentBatchSize
		if end > len(comments) {
			end = len(comments)
		}

		err = client.Comments().Put(ctx, source, comments[start:end])
		if err != nil {
			return fmt.Errorf("failed to upload comments %d-%d: %w", start, end-1, err)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Uploaded %d comments to %s\n", len(comments), sourceArg)

	return nil
}

func readCommentsFile(file string) ([]opine.NewComment, error) {
	data, err := os.ReadFile(file) // #nosec G304 -- user-supplied input file
	if err != nil {
		return nil, fmt.Errorf("reading comments file: %w", err)
	}

	var comments []opine.NewComment

	err = json.Unmarshal(data, &comments)
	if err != nil {
		return nil, fmt.Errorf("parsing comments file: %w", err)
	}

	return comments, nil
}

func newCommentsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete SOURCE COMMENT_ID",
		Short: "Delete a comment",
		Long:  "Delete one comment from a source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentsDeleteCommand(cmd, args[0], args[1])
		},
	}
}

func runCommentsDeleteCommand(cmd *cobra.Command, sourceArg, commentID string) error {
	client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
	if err != nil {
		return err
	}

	source, err := opine.ParseIdentifier(opine.KindSource, sourceArg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	err = client.Comments().Delete(ctx, source, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Deleted comment %s\n", commentID)

	return nil
}
