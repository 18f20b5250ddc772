package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stageplot",
		Short:         "Assign mixer channels to a booking and print the input list",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newTemplateCommand())

	return rootCmd
}
