package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate a summary of all todos and print it",
	Long:  "Runs the summary pipeline once, including the Slack broadcast when a webhook is configured",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}

		app, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, app.close())
		}()

		summary, err := app.summaries.Summarize(cmd.Context())
		if err != nil {
			return err
		}

		logger.Debug("summary generated", slog.String("delivery", string(summary.Delivery.Status)))
		_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.Text)
		return err
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
