package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkpost/inkpost/internal/core/domain"
	"github.com/inkpost/inkpost/internal/render"
)

var (
	showType string
	showHTML bool
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one note or blog post",
	Long: `Shows a single item by id. Local drafts use their numeric draft id;
published posts use the github-<issue number> id from the listing.

Examples:
  inkpost show 1736951520000
  inkpost show github-42 --type blog --html`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showType, "type", "t", "note", "content type (note or blog)")
	showCmd.Flags().BoolVar(&showHTML, "html", false, "render the body as HTML")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	contentType, err := parseContentType(showType)
	if err != nil {
		return err
	}

	item, err := contentService.Resolve(cmd.Context(), args[0], contentType)
	if err != nil {
		return err
	}

	cmd.Println(titleStyle.Render(item.Title))
	meta := fmt.Sprintf("%s  %s  %s", item.Type, item.Origin, item.CreatedAt.Format("2006-01-02"))
	if len(item.Tags) > 0 {
		meta += "  #" + strings.Join(item.Tags, " #")
	}
	cmd.Println(metaStyle.Render(meta))
	cmd.Println()

	if showHTML {
		cmd.Println(string(render.Markdown([]byte(item.Body), render.DefaultTheme)))
	} else {
		cmd.Println(item.Body)
	}

	if item.IsRemote() {
		cmd.Println(metaStyle.Render(
			fmt.Sprintf("comments: inkpost comments %d", item.IssueNumber)))
	}
	return nil
}

// parseIssueRef accepts a bare issue number or a github-<number> listing id.
func parseIssueRef(ref string) (int, error) {
	if number, ok := domain.ParseRemoteID(ref); ok {
		return number, nil
	}
	var number int
	if _, err := fmt.Sscanf(ref, "%d", &number); err != nil || number <= 0 {
		return 0, fmt.Errorf("invalid issue reference %q", ref)
	}
	return number, nil
}
