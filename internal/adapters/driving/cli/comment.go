package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var commentMessage string

var commentsCmd = &cobra.Command{
	Use:   "comments [issue]",
	Short: "List the discussion thread of a published post",
	Long: `Lists comments on a published post. The issue can be given as a bare
number or as the github-<number> id from the listing.`,
	Args: cobra.ExactArgs(1),
	RunE: runComments,
}

var commentCmd = &cobra.Command{
	Use:   "comment [issue]",
	Short: "Comment on a published post",
	Long: `Posts a comment to the discussion thread of a published post.
Requires a token ('inkpost login').

Example:
  inkpost comment 42 -m "Great post!"`,
	Args: cobra.ExactArgs(1),
	RunE: runComment,
}

func init() {
	commentCmd.Flags().StringVarP(&commentMessage, "message", "m", "", "comment body (required)")
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(commentCmd)
}

func runComments(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	number, err := parseIssueRef(args[0])
	if err != nil {
		return err
	}

	comments := contentService.Comments(cmd.Context(), number)
	if len(comments) == 0 {
		cmd.Println("No comments.")
		return nil
	}

	for _, c := range comments {
		header := fmt.Sprintf("%s  %s", c.Author, c.CreatedAt.Format("2006-01-02 15:04"))
		cmd.Println(metaStyle.Render(header))
		cmd.Println(c.Body)
		cmd.Println()
	}
	return nil
}

func runComment(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	if commentMessage == "" {
		return errors.New("a comment body is required (-m)")
	}

	number, err := parseIssueRef(args[0])
	if err != nil {
		return err
	}

	comment, err := contentService.AddComment(cmd.Context(), number, commentMessage)
	if err != nil {
		return fmt.Errorf("commenting on issue #%d: %w", number, err)
	}

	cmd.Printf("Comment %s posted by %s\n", comment.ID, comment.Author)
	return nil
}
