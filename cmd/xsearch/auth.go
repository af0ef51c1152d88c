package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"xsearch/pkg/auth"
	"xsearch/pkg/ui"
)

var (
	authLabel string
	authToken string
)

// authCmd represents the auth command group
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored API bearer tokens",
	Long: `Manage the bearer tokens used to call the X API.

Tokens are stored in the system keyring when available, with an
encrypted file under the user config directory as fallback. The
X_BEARER_TOKEN environment variable always works as a last resort and
never touches the stores.`,
}

// authLoginCmd stores a bearer token
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token",
	Example: `  # Prompt for the token (input is hidden)
  xsearch auth login

  # Store under a label for multiple developer apps
  xsearch auth login --label research-app`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := strings.TrimSpace(authToken)
		if token == "" {
			var err error
			token, err = promptForToken()
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
		}
		if token == "" {
			return fmt.Errorf("empty token")
		}

		manager, err := auth.NewManager()
		if err != nil {
			return fmt.Errorf("failed to initialize credential manager: %w", err)
		}

		if err := manager.Store(&auth.Credentials{Label: authLabel, BearerToken: token}); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}

		ui.PrintSuccess("Token stored")
		return nil
	},
}

// authLogoutCmd removes a stored token
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove a stored bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := auth.NewManager()
		if err != nil {
			return fmt.Errorf("failed to initialize credential manager: %w", err)
		}

		if err := manager.Delete(authLabel); err != nil {
			if err == auth.ErrCredentialsNotFound {
				ui.PrintWarning("No stored token found")
				return nil
			}
			return fmt.Errorf("failed to remove token: %w", err)
		}

		ui.PrintSuccess("Token removed")
		return nil
	},
}

// authStatusCmd reports whether a token is available
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a bearer token is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := auth.NewManager()
		if err != nil {
			return fmt.Errorf("failed to initialize credential manager: %w", err)
		}

		creds, err := manager.Retrieve(authLabel)
		if err != nil {
			ui.PrintWarning("No bearer token found")
			fmt.Println(ui.Dim("  store one with 'xsearch auth login' or set X_BEARER_TOKEN"))
			return nil
		}

		ui.PrintInfo("Token", maskToken(creds.BearerToken))
		if !creds.LastModified.IsZero() {
			ui.PrintInfo("Stored", creds.LastModified.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authCmd.PersistentFlags().StringVar(&authLabel, "label", "", "token label (default \"default\")")
	authLoginCmd.Flags().StringVar(&authToken, "token", "", "bearer token (prompted when omitted)")
}

// promptForToken reads the token without echoing when attached to a
// terminal.
func promptForToken() (string, error) {
	fmt.Print("Bearer token: ")

	if term.IsTerminal(int(syscall.Stdin)) {
		tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(tokenBytes)), nil
	}

	// piped input
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
