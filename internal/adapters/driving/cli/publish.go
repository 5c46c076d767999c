package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var publishType string

var publishCmd = &cobra.Command{
	Use:   "publish [draft-id]",
	Short: "Publish a local draft to the content repository",
	Long: `Publishes an existing local draft as a new GitHub issue. The draft
itself is left untouched; publishing can be retried after a failure.

Requires a token ('inkpost login').`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVarP(&publishType, "type", "t", "note", "content type (note or blog)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	contentType, err := parseContentType(publishType)
	if err != nil {
		return err
	}

	published, err := contentService.Publish(cmd.Context(), args[0], contentType)
	if err != nil {
		return fmt.Errorf("publishing %s: %w", args[0], err)
	}

	cmd.Printf("Published as issue #%d (%s)\n", published.IssueNumber, published.ID)
	return nil
}
