// internal/cli/credentials.go
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/law-makers/pricewatch/internal/credentials"
	"github.com/law-makers/pricewatch/internal/ui"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage the mail password stored in the OS keyring",
	Long: `Stores the SMTP password for MAIL_USER in the operating system keyring so it does
not have to live in .env. MAIL_PASS, when set, still takes precedence.`,
	Annotations: map[string]string{skipAppAnnotation: "true"},
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set <mail-user>",
	Short: "Store the mail password for an account",
	Example: `  # Prompt for the password
  pricewatch credentials set alerts@example.com

  # Read it from a pipe
  echo "$SMTP_PASSWORD" | pricewatch credentials set alerts@example.com`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("password cannot be empty")
		}

		creds, err := credentials.NewStore()
		if err != nil {
			return err
		}
		if err := creds.SetPassword(args[0], password); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("✓ Password stored for "+args[0]))
		return nil
	},
}

var credentialsDeleteCmd = &cobra.Command{
	Use:         "delete <mail-user>",
	Short:       "Remove the stored mail password for an account",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := credentials.NewStore()
		if err != nil {
			return err
		}
		if err := creds.DeletePassword(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("✓ Password removed for "+args[0]))
		return nil
	},
}

func init() {
	credentialsCmd.AddCommand(credentialsSetCmd)
	credentialsCmd.AddCommand(credentialsDeleteCmd)
	rootCmd.AddCommand(credentialsCmd)
}

// readPassword prompts without echo on a terminal and reads one line otherwise
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), ui.Info("Password: "))
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
