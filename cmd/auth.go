package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/crates/internal/catalog"
	"github.com/jfmyers9/crates/internal/config"
	"github.com/jfmyers9/crates/pkg/discogs"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store Discogs credentials",
	Long: `Store Discogs credentials in the config file.

Discogs accepts either a personal access token or an application's
consumer key and secret:
1. A token is generated at https://www.discogs.com/settings/developers
2. A key and secret come from registering an application on the same page

The credentials are checked with a one-result search before they are saved.`,
	Args: cobra.NoArgs,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.Flags().Bool("no-verify", false, "Save without checking the credentials against Discogs")
}

func runAuth(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Discogs Authentication")
	fmt.Fprintln(out, "======================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Get credentials from: https://www.discogs.com/settings/developers")
	fmt.Fprintln(out)

	if cfg.HasCredentials() {
		fmt.Fprintln(out, "Found existing credentials.")
		if !confirm(reader, out, "Replace them? [y/N]: ", false) {
			return nil
		}
	}

	userAgent, err := prompt(reader, out, fmt.Sprintf("User agent [%s]: ", cfg.UserAgent))
	if err != nil {
		return err
	}
	if userAgent != "" {
		cfg.UserAgent = userAgent
	}

	creds := config.DiscogsConfig{}
	if confirm(reader, out, "Use a personal access token? [Y/n]: ", true) {
		creds.Token, err = prompt(reader, out, "Enter your Discogs token: ")
		if err != nil {
			return err
		}
		if creds.Token == "" {
			return fmt.Errorf("token is required")
		}
	} else {
		creds.Key, err = prompt(reader, out, "Enter your consumer key: ")
		if err != nil {
			return err
		}
		creds.Secret, err = prompt(reader, out, "Enter your consumer secret: ")
		if err != nil {
			return err
		}
		if creds.Key == "" || creds.Secret == "" {
			return fmt.Errorf("consumer key and secret are required")
		}
	}
	cfg.Discogs = creds

	if noVerify, _ := cmd.Flags().GetBool("no-verify"); !noVerify {
		fmt.Fprintln(out, "\nChecking credentials...")
		if err := verifyCredentials(cmd.Context(), cfg); err != nil {
			return explain(err)
		}
	}

	save := cfg.Save
	if configPath != "" {
		save = func() error { return cfg.SaveTo(configPath) }
	}
	if err := save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "\n✓ Credentials saved\n")
	fmt.Fprintf(out, "✓ Sending %s\n", discogs.AuthorizationHeader(redacted(creds)))
	fmt.Fprintln(out, "\nYou can now use 'crates search'.")
	return nil
}

// verifyCredentials runs the cheapest request that needs authentication
func verifyCredentials(ctx context.Context, c *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := catalog.New(c, logger)
	if err != nil {
		return err
	}
	_, err = client.Search(ctx, catalog.SearchParams{PerPage: 1})
	return err
}

// redacted returns a credential safe to print
func redacted(c config.DiscogsConfig) discogs.Credential {
	mask := func(s string) string {
		if len(s) <= 4 {
			return strings.Repeat("*", len(s))
		}
		return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
	}
	if c.Token != "" {
		return discogs.TokenAuth{Token: mask(c.Token)}
	}
	return discogs.KeySecretAuth{Key: mask(c.Key), Secret: mask(c.Secret)}
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func confirm(reader *bufio.Reader, out io.Writer, label string, def bool) bool {
	response, err := prompt(reader, out, label)
	if err != nil || response == "" {
		return def
	}
	response = strings.ToLower(response)
	return response == "y" || response == "yes"
}
