package cmd

import (
	"fmt"
	"os"

	"github.com/aibootcamp/submit/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	serverFlag string
	emailFlag  string
)

// Execute is the main entry point called from main.go. Running submit with
// -d/-a performs a submission; the list subcommand shows open assignments.
func Execute(version, commit, date string) {
	var (
		directory string
		name      string
		comment   string
		noSave    bool
	)

	rootCmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit assignments to the bootcamp homework system",
		Long: "submit authenticates against the homework server, packages a local\n" +
			"directory into a zip archive, and uploads it as a submission to the\n" +
			"named assignment.",
		Example: `  submit -d ./homework1 -a "Assignment 1"
  submit -d ./project -a "Final Project" -s https://aicamp.iiis.co
  submit -d ./hw2 -a "Homework 2" -c "Completed all bonus problems"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if directory == "" || name == "" {
				return fmt.Errorf("--directory and --assignment are required (see --help)")
			}
			return runSubmit(cmd.Context(), submitOptions{
				configPath: cfgFile,
				server:     serverFlag,
				email:      emailFlag,
				directory:  directory,
				assignment: name,
				comment:    comment,
				noSave:     noSave,
				prompter:   newTerminalPrompter(),
				out:        os.Stdout,
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ~/.aibootcamp/config.json)")
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "server URL (default: from config or "+config.DefaultServerURL+")")
	rootCmd.PersistentFlags().StringVarP(&emailFlag, "email", "e", "", "email address (default: from config, prompted otherwise)")

	// Submit flags
	rootCmd.Flags().StringVarP(&directory, "directory", "d", "", "directory to submit (will be zipped)")
	rootCmd.Flags().StringVarP(&name, "assignment", "a", "", "assignment name")
	rootCmd.Flags().StringVarP(&comment, "comment", "c", "", "optional comment or text content for the submission")
	rootCmd.Flags().BoolVar(&noSave, "no-save", false, "do not save email and server URL to the config file")

	// Subcommands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}
