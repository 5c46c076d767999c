package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/inkpost/inkpost/internal/core/domain"
	"github.com/inkpost/inkpost/internal/core/ports/driving"
)

var (
	listQuery      string
	listLocalOnly  bool
	listRemoteOnly bool
	listJSON       bool
)

var (
	yearStyle  = lipgloss.NewStyle().Bold(true)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	metaStyle  = lipgloss.NewStyle().Faint(true)
	newStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

var listCmd = &cobra.Command{
	Use:   "list [notes|blog]",
	Short: "List notes or blog posts, grouped by year",
	Long: `Lists local drafts and published posts in one view, newest first,
grouped by publication year. Items published in the last week carry a
"new" badge.

Examples:
  inkpost list notes
  inkpost list blog --query kubernetes
  inkpost list notes --local-only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "filter titles by case-insensitive substring")
	listCmd.Flags().BoolVar(&listLocalOnly, "local-only", false, "list local drafts only")
	listCmd.Flags().BoolVar(&listRemoteOnly, "remote-only", false, "list published posts only")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

// parseContentType maps a command argument to a content type.
// An empty argument defaults to notes.
func parseContentType(arg string) (domain.ContentType, error) {
	switch strings.ToLower(arg) {
	case "", "note", "notes":
		return domain.ContentTypeNote, nil
	case "blog", "post", "posts":
		return domain.ContentTypeBlog, nil
	default:
		return "", fmt.Errorf("unknown content type %q (want notes or blog)", arg)
	}
}

func runList(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	contentType, err := parseContentType(arg)
	if err != nil {
		return err
	}

	buckets, err := contentService.List(cmd.Context(), driving.ListOptions{
		Type:       contentType,
		Query:      listQuery,
		LocalOnly:  listLocalOnly,
		RemoteOnly: listRemoteOnly,
	})
	if err != nil {
		return fmt.Errorf("listing %s: %w", contentType, err)
	}

	if listJSON {
		data, err := json.MarshalIndent(buckets, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling listing: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Print(formatListing(buckets, time.Now()))
	return nil
}

// formatListing renders year-grouped items for the terminal.
func formatListing(buckets []domain.YearBucket, now time.Time) string {
	if len(buckets) == 0 {
		return "No posts yet.\n"
	}

	var b strings.Builder
	for _, bucket := range buckets {
		fmt.Fprintf(&b, "%s\n", yearStyle.Render(fmt.Sprintf("%d", bucket.Year)))
		for _, item := range bucket.Items {
			badge := ""
			if item.IsNew(now) {
				badge = " " + newStyle.Render("new")
			}
			origin := ""
			if !item.IsRemote() {
				origin = " (draft)"
			}
			fmt.Fprintf(&b, "  %s%s%s\n", titleStyle.Render(item.Title), badge, origin)
			meta := fmt.Sprintf("%s  %s", item.CreatedAt.Format("Jan 02"), item.ID)
			if len(item.Tags) > 0 {
				meta += "  #" + strings.Join(item.Tags, " #")
			}
			fmt.Fprintf(&b, "    %s\n", metaStyle.Render(meta))
		}
		b.WriteString("\n")
	}
	return b.String()
}
