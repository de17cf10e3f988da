package cmd

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/M3t0r/slack-emoji/internal/archive"
	"github.com/M3t0r/slack-emoji/internal/domain"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Show saved emoji records as a table",
	Long:  `Render the JSON records previously saved by 'list' as a table, oldest first.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := archive.Load(args[0])
		if err != nil {
			return err
		}
		domain.SortByCreated(list)

		t := table.NewWriter()
		t.SetStyle(table.StyleColoredDark)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Alias For", "Created", "Added By", "URL"})
		for _, e := range list {
			aliasFor := ""
			if e.Alias() {
				aliasFor = e.AliasFor
			}
			t.AppendRow(table.Row{
				e.Name,
				aliasFor,
				time.Unix(e.Created, 0).UTC().Format(time.DateOnly),
				e.UserDisplayName,
				e.URL,
			})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
