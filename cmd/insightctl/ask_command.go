package main

import (
	"github.com/spf13/cobra"
)

func newAskCommand(ctx *commandContext) *cobra.Command {
	var transcriptPath string

	cmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Ask a question about a meeting transcript",
		Long:  "Answers QUESTION using only the transcript read from --file, or from stdin when --file is omitted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript, err := readTranscript(cmd, transcriptPath)
			if err != nil {
				return err
			}

			format, err := ctx.format()
			if err != nil {
				return err
			}

			res, err := ctx.client().Ask(cmd.Context(), transcript, args[0])
			if err != nil {
				return err
			}
			return renderAnswer(cmd, format, res)
		},
	}

	cmd.Flags().StringVarP(&transcriptPath, "file", "f", "", "Transcript file (default stdin)")
	return cmd
}
