package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var serverFlag string
	var outputFlag string

	ctx := newCommandContext(&serverFlag, &outputFlag)

	rootCmd := &cobra.Command{
		Use:           "insightctl",
		Short:         "Meeting insights CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.format()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Insights server URL (default $INSIGHTS_SERVER or "+defaultServer+")")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", string(outputTable), "Output format: table, json or yaml")

	rootCmd.AddCommand(newInsightsCommand(ctx))
	rootCmd.AddCommand(newAskCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))

	return rootCmd
}
