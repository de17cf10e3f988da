/*
Copyright © 2026 M3t0r
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/M3t0r/slack-emoji/internal/sink"
	"github.com/M3t0r/slack-emoji/internal/slack"
)

var (
	listWorkspace string
	listToken     string
	listOutput    string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all custom emoji in a workspace",
	Long: `Fetch the full custom emoji catalog and write one pretty-printed
JSON record per emoji.

The output can be a directory (one <name>.json per emoji, the format
the download command reads back), a single file, or '-' for stdout.
Without --output a directory named after the workspace is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := listToken
		if token == "" {
			token = viper.GetString("token")
		}
		if token == "" {
			return fmt.Errorf("no token given: pass --token or set SLACK_TOKEN")
		}

		output := listOutput
		if output == "" {
			output = listWorkspace + string(os.PathSeparator)
		}

		// Pick the output variant before talking to the API, so a bad
		// destination fails fast and the choice never changes mid-run.
		writer, err := sink.New(output)
		if err != nil {
			return err
		}

		list, err := slack.New(listWorkspace, token).FetchAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("could not get emoji: %w", err)
		}

		pw, tracker := startProgress("writing emoji", len(list))
		for _, e := range list {
			log.Debug().Str("name", e.Name).Str("url", e.URL).Msg("emoji")

			serialized, err := json.MarshalIndent(e, "", "  ")
			if err != nil {
				log.Error().Err(err).Str("name", e.Name).Msg("could not serialize")
				tracker.IncrementWithError(1)
				continue
			}
			if _, err := writer.Write(e.Name, string(serialized)); err != nil {
				log.Error().Err(err).Str("name", e.Name).Msg("could not write")
				tracker.IncrementWithError(1)
				continue
			}
			tracker.Increment(1)
		}
		stopProgress(pw, tracker)

		log.Info().Int("count", len(list)).Msg("done")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listWorkspace, "workspace", "w", "", "workspace subdomain, as in https://<workspace>.slack.com")
	listCmd.Flags().StringVarP(&listToken, "token", "t", "", "authorization token (defaults to $SLACK_TOKEN)")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "file or directory to write JSON records to, '-' for stdout (default <workspace>/)")
	listCmd.MarkFlagRequired("workspace")
}
