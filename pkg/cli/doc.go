/*
Package cli provides helpers shared by the savior commands.

Output Formatting:

Commands that print structured data pick a formatter from the --output flag:

	formatter, err := cli.NewFormatter(cli.FormatYAML)
	if err != nil {
		return err
	}
	if err := formatter.FormatTo(cmd.OutOrStdout(), cfg); err != nil {
		return err
	}

Signal Handling:

The run command stops on SIGINT or SIGTERM and reloads configuration on
SIGHUP:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

	reload, stopReload := cli.NotifyReload()
	defer stopReload()

Exit Codes:

ExitCode maps command errors to process exit codes. Configuration problems
exit with 2, everything else with 1.
*/
package cli
