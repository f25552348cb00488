package main

import (
	"github.com/spf13/cobra"
)

func newInsightsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "insights [FILE]",
		Short: "Extract summary, decisions, action items and sentiment from a transcript",
		Long:  "Reads the transcript from FILE, or from stdin when FILE is omitted or \"-\".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			transcript, err := readTranscript(cmd, path)
			if err != nil {
				return err
			}

			format, err := ctx.format()
			if err != nil {
				return err
			}

			res, err := ctx.client().Insights(cmd.Context(), transcript)
			if err != nil {
				return err
			}
			return renderInsights(cmd, format, res)
		},
	}
}
