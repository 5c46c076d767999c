package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkpost/inkpost/internal/core/ports/driving"
)

var (
	writeType    string
	writeTitle   string
	writeTags    string
	writeFile    string
	writePublish bool
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Save a new local draft",
	Long: `Saves a new draft to the local store. The body comes from --file or,
when omitted, from stdin. The draft stays local until published.

Examples:
  inkpost write --title "TIL: go test -run" --file til.md
  cat post.md | inkpost write --type blog --title "Shipping" --tags go,infra
  inkpost write --title "Hello" --file hello.md --publish`,
	Args: cobra.NoArgs,
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringVarP(&writeType, "type", "t", "note", "content type (note or blog)")
	writeCmd.Flags().StringVar(&writeTitle, "title", "", "draft title (required)")
	writeCmd.Flags().StringVar(&writeTags, "tags", "", "comma-separated tags")
	writeCmd.Flags().StringVarP(&writeFile, "file", "f", "", "read the body from a file instead of stdin")
	writeCmd.Flags().BoolVar(&writePublish, "publish", false, "publish to the content repository after saving")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	contentType, err := parseContentType(writeType)
	if err != nil {
		return err
	}

	body, err := readBody(cmd)
	if err != nil {
		return err
	}

	item, err := contentService.SaveDraft(cmd.Context(), driving.NewDraft{
		Type:  contentType,
		Title: writeTitle,
		Body:  body,
		Tags:  splitTags(writeTags),
	})
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	cmd.Printf("Saved %s draft %s\n", item.Type, item.ID)

	if !writePublish {
		return nil
	}

	// The draft is already safe locally. A publish failure here leaves it
	// behind for a later 'inkpost publish'.
	published, err := contentService.Publish(cmd.Context(), item.ID, item.Type)
	if err != nil {
		return fmt.Errorf("draft saved but publish failed: %w", err)
	}
	cmd.Printf("Published as issue #%d (%s)\n", published.IssueNumber, published.ID)
	return nil
}

// readBody returns the draft body from --file, or stdin when no file is set.
func readBody(cmd *cobra.Command) (string, error) {
	if writeFile != "" {
		data, err := os.ReadFile(writeFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", writeFile, err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// splitTags parses a comma-separated tag list, dropping empty entries.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
