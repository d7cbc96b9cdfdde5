package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aibootcamp/submit/internal/api"
	"github.com/aibootcamp/submit/internal/config"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assignments on the homework server",
		Long: "Logs in and prints the assignments you can submit to. Assignments that\n" +
			"are past due and closed to late submissions are hidden unless --all is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), listOptions{
				configPath: cfgFile,
				server:     serverFlag,
				email:      emailFlag,
				showAll:    showAll,
				prompter:   newTerminalPrompter(),
				out:        os.Stdout,
			})
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "include past-due assignments that are closed to late submissions")
	return cmd
}

type listOptions struct {
	configPath string
	server     string
	email      string
	showAll    bool
	prompter   Prompter
	out        io.Writer
}

func runList(ctx context.Context, opts listOptions) error {
	cfg := config.Load(opts.configPath)

	server, email, err := resolveSession(cfg, opts.server, opts.email, opts.prompter)
	if err != nil {
		return err
	}
	password, err := opts.prompter.ReadSecret("Password")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	client := api.NewClient(server, opts.out)
	if err := client.Login(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintln(opts.out)

	assignments, err := client.ListAssignments(ctx, opts.showAll)
	if err != nil {
		return err
	}
	if len(assignments) == 0 {
		fmt.Fprintln(opts.out, "No assignments available.")
		return nil
	}

	fmt.Fprintln(opts.out, "Assignments:")
	for _, a := range assignments {
		line := fmt.Sprintf("  - %s (Due: %s)", a.Title, a.DueDate.Format("2006-01-02 15:04"))
		if a.AllowLateSubmission {
			line += " [late allowed]"
		}
		fmt.Fprintln(opts.out, line)
	}
	return nil
}
