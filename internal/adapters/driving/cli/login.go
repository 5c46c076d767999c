package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inkpost/inkpost/internal/adapters/driven/oauth"
	"github.com/inkpost/inkpost/internal/connectors/github"
	"github.com/inkpost/inkpost/internal/core/domain"
)

// clientIDEnv names the environment variable holding the OAuth client id
// for device flow login. The id is configuration, never a compiled-in value.
const clientIDEnv = "INKPOST_CLIENT_ID"

var (
	loginToken  string
	loginDevice bool
	loginOwner  string
	loginRepo   string
)

// credentialsValidator is the post-login validation round-trip.
type credentialsValidator interface {
	ValidateCredentials(ctx context.Context) error
}

// newValidator builds the validation client. Swapped in tests.
var newValidator = func(ctx context.Context, creds domain.Credentials) credentialsValidator {
	return github.New(ctx, creds)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a GitHub token for publishing and commenting",
	Long: `Stores a token in the credential record. Without --token the token is
prompted for without echo; with --device the GitHub device authorization
flow runs instead (requires ` + clientIDEnv + ` to be set).

The token is saved first and validated after; an invalid token is
reported but kept, so a typo can be fixed by logging in again.

Examples:
  inkpost login                       # paste a personal access token
  inkpost login --device              # browser-based device flow
  inkpost login --owner me --repo my-content`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	Long: `Drops the token from the credential record. The repository owner and
name are kept, so unauthenticated reading keeps working.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication state and repository details",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "personal access token (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginDevice, "device", false, "use the GitHub device authorization flow")
	loginCmd.Flags().StringVar(&loginOwner, "owner", "", "content repository owner (kept if omitted)")
	loginCmd.Flags().StringVar(&loginRepo, "repo", "", "content repository name (kept if omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil {
		return errors.New("credentials service not configured")
	}

	token := loginToken
	var err error
	switch {
	case loginDevice:
		token, err = runDeviceLogin(cmd)
		if err != nil {
			return err
		}
	case token == "":
		token, err = promptToken(cmd)
		if err != nil {
			return err
		}
	}
	if token == "" {
		return errors.New("no token provided")
	}

	current, err := credentialsService.Current(cmd.Context())
	if err != nil {
		return err
	}
	owner := loginOwner
	if owner == "" {
		owner = current.Owner
	}
	repo := loginRepo
	if repo == "" {
		repo = current.Repo
	}

	if err := credentialsService.Set(cmd.Context(), token, owner, repo); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	cmd.Printf("Token saved for %s/%s\n", owner, repo)

	creds, err := credentialsService.Current(cmd.Context())
	if err != nil {
		return err
	}
	if err := newValidator(cmd.Context(), *creds).ValidateCredentials(cmd.Context()); err != nil {
		cmd.Printf("Warning: token did not validate: %v\n", err)
		return nil
	}
	cmd.Println("Token validated.")
	return nil
}

// runDeviceLogin drives the device authorization grant and returns the
// issued token.
func runDeviceLogin(cmd *cobra.Command) (string, error) {
	clientID := os.Getenv(clientIDEnv)
	if clientID == "" {
		return "", fmt.Errorf("device flow needs %s to be set", clientIDEnv)
	}

	flow := oauth.NewDeviceFlow(clientID, nil)
	flow.OnDeviceCode(func(code, verificationURL string) {
		cmd.Printf("Open %s and enter the code %s\n", verificationURL, code)
	})

	result, err := flow.Run(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("device login: %w", err)
	}
	cmd.Printf("Authorized as %s\n", result.Login)
	return result.Token, nil
}

// promptToken reads a token from the terminal without echo. Falls back to a
// plain line read when stdin is not a terminal (piped input).
func promptToken(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		var token string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &token); err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}
		return strings.TrimSpace(token), nil
	}

	cmd.Print("Token: ")
	raw, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil {
		return errors.New("credentials service not configured")
	}

	if err := credentialsService.ClearToken(cmd.Context()); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	cmd.Println("Token cleared. Repository settings kept.")
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil {
		return errors.New("credentials service not configured")
	}

	creds, err := credentialsService.Current(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Repository: %s/%s\n", creds.Owner, creds.Repo)
	if creds.IsAuthenticated() {
		cmd.Println("Authenticated: yes")
	} else {
		cmd.Println("Authenticated: no (read-only)")
	}

	if remote == nil {
		return nil
	}

	if details := remote.GetRepoDetails(cmd.Context()); details != nil {
		cmd.Println()
		cmd.Printf("%s\n", details.FullName)
		if details.Description != "" {
			cmd.Printf("  %s\n", details.Description)
		}
		cmd.Printf("  stars %d  forks %d  open issues %d\n",
			details.Stars, details.Forks, details.OpenIssues)
	}

	if user := remote.GetUserDetails(cmd.Context()); user != nil {
		cmd.Println()
		name := user.Login
		if user.Name != "" {
			name = fmt.Sprintf("%s (%s)", user.Name, user.Login)
		}
		cmd.Printf("%s\n", name)
		if user.Bio != "" {
			cmd.Printf("  %s\n", user.Bio)
		}
		cmd.Printf("  followers %d  public repos %d\n", user.Followers, user.PublicRepos)
	}
	return nil
}
