package main

// setupCommands adds all subcommands to the root command
func setupCommands() {
	consolesListCmd.Flags().String("status", "", "Only list consoles with this status (DRAFT or RELEASE)")
	consolesListCmd.Flags().String("data-source", "", "Only list consoles of this connection alias or id")
	consolesListCmd.Flags().String("database", "", "Only list consoles of this database")
	consolesListCmd.Flags().String("schema", "", "Only list consoles of this schema")
	consolesListCmd.Flags().String("search", "", "List consoles whose name or query contains this text")
	consolesListCmd.Flags().Int("limit", 50, "Maximum number of search results")
	for _, filter := range []string{"status", "data-source", "database", "schema"} {
		consolesListCmd.MarkFlagsMutuallyExclusive("search", filter)
	}

	consolesSaveCmd.Flags().String("name", "", "Console name")
	consolesSaveCmd.Flags().String("file", "", "Read the query from this file instead of stdin")
	consolesSaveCmd.Flags().String("database", "", "Database the console belongs to")
	consolesSaveCmd.Flags().String("schema", "", "Schema the console belongs to")
	consolesSaveCmd.Flags().Bool("draft", false, "Save as a draft, hidden from the sidebar")
	_ = consolesSaveCmd.MarkFlagRequired("name")

	consolesExportCmd.Flags().String("format", "yaml", "Export format: csv, json or yaml")
	consolesExportCmd.Flags().StringP("out", "o", "consoles.yaml", "Output file")

	consolesCmd.AddCommand(consolesListCmd, consolesSaveCmd, consolesDeleteCmd, consolesExportCmd, consolesImportCmd)
	connectionsCmd.AddCommand(connectionsListCmd, connectionsSetPasswordCmd)

	rootCmd.AddCommand(consolesCmd, connectionsCmd)
}
