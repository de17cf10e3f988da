/*
Copyright © 2026 M3t0r
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/M3t0r/slack-emoji/internal/archive"
	"github.com/M3t0r/slack-emoji/internal/domain"
	"github.com/M3t0r/slack-emoji/internal/download"
)

var downloadForce bool

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <path>",
	Short: "Download all emoji images for a folder of saved records",
	Long: `Read the JSON records previously saved by 'list' from <path> and
download every emoji image next to them, <name>.<ext> with the
extension taken from the image URL.

Images that are already present are skipped unless --force is given.
Failed downloads are reported and skipped, they never stop the run.
Alias emoji have no image of their own and are not downloaded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("specified path is not a directory: %s", dir)
		}

		list, err := archive.Load(dir)
		if err != nil {
			return err
		}
		assets := domain.Assets(list, dir)
		log.Debug().Int("records", len(list)).Int("assets", len(assets)).Msg("archive loaded")

		d := download.New()
		d.Force = downloadForce

		pw, tracker := startProgress("downloading emoji", len(assets))
		d.Progress = func(done, total int) {
			tracker.SetValue(int64(done))
		}

		failed := d.Run(cmd.Context(), assets)
		stopProgress(pw, tracker)

		if failed > 0 {
			log.Warn().Int("failed", failed).Int("total", len(assets)).Msg("some downloads failed")
		}
		log.Info().Int("count", len(assets)-failed).Msg("done")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().BoolVarP(&downloadForce, "force", "f", false, "download emoji again even if already present")
}
