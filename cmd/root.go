package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "berezin",
		Short:         "Upload word and text dictionaries from an authenticated browser session",
		Long:          "berezin replays a stored browser session (cookie jar) to create dictionaries on the remote site: it re-validates the session via the CSRF form token, builds the submission form per source file, and reports per-file results.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().BoolVar(&app.verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newUploadCmd(app),
		newNormalizeCmd(),
		newHistoryCmd(app),
	)

	return rootCmd
}
