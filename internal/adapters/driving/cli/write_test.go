package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/core/domain"
)

func TestWriteCmd(t *testing.T) {
	t.Run("saves a draft from a file", func(t *testing.T) {
		stub := &stubContentService{}
		withStubs(t, stub, &stubCredentialsService{})

		path := filepath.Join(t.TempDir(), "draft.md")
		require.NoError(t, os.WriteFile(path, []byte("# Hello\n"), 0600))

		out, err := execute(t, "write",
			"--title", "Hello", "--file", path, "--tags", "go, infra")

		require.NoError(t, err)
		require.Len(t, stub.saved, 1)
		assert.Equal(t, "Hello", stub.saved[0].Title)
		assert.Equal(t, "# Hello\n", stub.saved[0].Body)
		assert.Equal(t, []string{"go", "infra"}, stub.saved[0].Tags)
		assert.Equal(t, domain.ContentTypeNote, stub.saved[0].Type)
		assert.Contains(t, out, "Saved note draft")
	})

	t.Run("reads the body from stdin when no file is given", func(t *testing.T) {
		stub := &stubContentService{}
		withStubs(t, stub, &stubCredentialsService{})

		out, err := executeWithStdin(t, "piped body", "write", "--title", "Piped")

		require.NoError(t, err)
		require.Len(t, stub.saved, 1)
		assert.Equal(t, "piped body", stub.saved[0].Body)
		assert.Contains(t, out, "Saved")
	})

	t.Run("publish failure still reports the saved draft", func(t *testing.T) {
		stub := &stubContentService{publishErr: errors.New("remote down")}
		withStubs(t, stub, &stubCredentialsService{})

		out, err := executeWithStdin(t, "body", "write", "--title", "T", "--publish")

		require.Error(t, err)
		assert.Contains(t, out, "Saved note draft")
		assert.Contains(t, err.Error(), "publish failed")
		require.Len(t, stub.saved, 1)
	})

	t.Run("publish success reports the issue number", func(t *testing.T) {
		stub := &stubContentService{
			published: &domain.ContentItem{
				ID:          "github-9",
				IssueNumber: 9,
				Origin:      domain.OriginRemote,
			},
		}
		withStubs(t, stub, &stubCredentialsService{})

		out, err := executeWithStdin(t, "body", "write", "--title", "T", "--publish")

		require.NoError(t, err)
		assert.Contains(t, out, "Published as issue #9")
		assert.Equal(t, []string{"1736951520000"}, stub.publishIDs)
	})
}

func TestPublishCmd(t *testing.T) {
	t.Run("publishes an existing draft", func(t *testing.T) {
		stub := &stubContentService{
			published: &domain.ContentItem{ID: "github-3", IssueNumber: 3},
		}
		withStubs(t, stub, &stubCredentialsService{})

		out, err := execute(t, "publish", "1700000000000", "--type", "blog")

		require.NoError(t, err)
		assert.Equal(t, []string{"1700000000000"}, stub.publishIDs)
		assert.Contains(t, out, "Published as issue #3")
	})

	t.Run("failures propagate", func(t *testing.T) {
		stub := &stubContentService{publishErr: domain.ErrNotFound}
		withStubs(t, stub, &stubCredentialsService{})

		_, err := execute(t, "publish", "nope")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
