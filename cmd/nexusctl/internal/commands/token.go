package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

const tokenBytes = 32

// InitTokenCommands registers "token".
func InitTokenCommands(root *cobra.Command) {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a random admin token",
		Long: `token prints a random 32-byte hex admin token. With --hash it also prints
a bcrypt hash of it, which can go in admin_tokens instead of the token itself.`,
		Args: cobra.NoArgs,
		RunE: runToken,
	}
	tokenCmd.Flags().Bool("hash", false, "Also print a bcrypt hash of the token")
	tokenCmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost for --hash")
	root.AddCommand(tokenCmd)
}

// NewToken returns a random hex token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func runToken(cmd *cobra.Command, _ []string) error {
	withHash, err := cmd.Flags().GetBool("hash")
	if err != nil {
		return err
	}
	cost, err := cmd.Flags().GetInt("cost")
	if err != nil {
		return err
	}

	token, err := NewToken()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !withHash {
		fmt.Fprintln(out, token)
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	if err != nil {
		return fmt.Errorf("hash token: %w", err)
	}
	fmt.Fprintf(out, "token: %s\nhash:  %s\n", token, hash)
	return nil
}
