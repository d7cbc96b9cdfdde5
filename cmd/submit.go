package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aibootcamp/submit/internal/api"
	"github.com/aibootcamp/submit/internal/archive"
	"github.com/aibootcamp/submit/internal/config"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

// submitOptions carries everything the submit flow needs, resolved from
// flags. Keeping it explicit lets tests drive the whole flow with a fake
// prompter and a scratch config path.
type submitOptions struct {
	configPath string
	server     string
	email      string
	directory  string
	assignment string
	comment    string
	noSave     bool
	prompter   Prompter
	out        io.Writer
}

// resolveSession loads the config and settles the server URL and email:
// flag beats config beats default, and a missing email is prompted for.
func resolveSession(cfg *config.Config, server, email string, p Prompter) (string, string, error) {
	if server == "" {
		server = cfg.ServerURL
	}
	if server == "" {
		server = config.DefaultServerURL
	}
	if email == "" {
		email = cfg.Email
	}
	if email == "" {
		var err error
		email, err = p.ReadLine("Email")
		if err != nil {
			return "", "", fmt.Errorf("read email: %w", err)
		}
	}
	return server, email, nil
}

// runSubmit performs the full submission sequence. Any failed step aborts
// the rest; only temp-archive cleanup is best-effort.
func runSubmit(ctx context.Context, opts submitOptions) error {
	cfg := config.Load(opts.configPath)

	server, email, err := resolveSession(cfg, opts.server, opts.email, opts.prompter)
	if err != nil {
		return err
	}

	// Password is prompted every run and never persisted.
	password, err := opts.prompter.ReadSecret("Password")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	fmt.Fprintln(opts.out)
	fmt.Fprintln(opts.out, "============================================================")
	fmt.Fprintln(opts.out, "Assignment Submission")
	fmt.Fprintln(opts.out, "============================================================")
	fmt.Fprintln(opts.out)

	client := api.NewClient(server, opts.out)

	fmt.Fprintln(opts.out, "Authenticating...")
	if err := client.Login(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintln(opts.out)

	fmt.Fprintf(opts.out, "Looking for assignment: %s\n", opts.assignment)
	confirm := func(string) bool {
		return opts.prompter.Confirm("Is this the correct assignment?")
	}
	assignment, err := client.FindAssignment(ctx, opts.assignment, confirm)
	if err != nil {
		return err
	}
	fmt.Fprintf(opts.out, "✓ Found assignment: %s\n", assignment.Title)
	fmt.Fprintf(opts.out, "  Assignment ID: %s\n", assignment.ID)
	fmt.Fprintf(opts.out, "  Due date: %s\n", assignment.DueDate.Format("2006-01-02 15:04"))

	// Due-date policy: a blocked submission never reaches the archiver or
	// the upload endpoint.
	if assignment.PastDue(time.Now()) {
		if !assignment.AllowLateSubmission {
			return api.ErrPastDue
		}
		fmt.Fprintln(opts.out, "  ⚠ Warning: this assignment is past due (late submission allowed)")
	}
	fmt.Fprintln(opts.out)

	zipPath, err := buildArchive(opts.directory, opts.out)
	if err != nil {
		return err
	}
	fmt.Fprintln(opts.out)

	if _, err := client.CreateSubmission(ctx, assignment.ID, zipPath, opts.comment); err != nil {
		return err
	}

	if !opts.noSave {
		cfg.ServerURL = server
		cfg.Email = email
		if err := config.Save(cfg, opts.configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save config: %v\n", err)
		} else {
			fmt.Fprintln(opts.out, "\n✓ Configuration saved")
		}
	}

	// Best-effort cleanup; a stale temp archive never fails the run.
	_ = os.Remove(zipPath)

	fmt.Fprintln(opts.out)
	fmt.Fprintln(opts.out, "============================================================")
	fmt.Fprintln(opts.out, "Submission completed successfully!")
	fmt.Fprintln(opts.out, "============================================================")
	return nil
}

// buildArchive zips the submission directory into the per-user temp dir
// under a timestamped name and reports compression stats.
func buildArchive(directory string, out io.Writer) (string, error) {
	tempDir, err := config.TempDir()
	if err != nil {
		return "", err
	}
	// Resolve "-d ." and friends so the archive is named after the actual
	// directory rather than ".".
	directory, err = filepath.Abs(directory)
	if err != nil {
		return "", fmt.Errorf("resolve submission directory: %w", err)
	}
	timestamp := time.Now().Format("20060102_150405")
	zipName := fmt.Sprintf("%s_%s.zip", filepath.Base(directory), timestamp)
	zipPath := filepath.Join(tempDir, zipName)

	fmt.Fprintf(out, "Creating zip archive from: %s\n", directory)
	res, err := archive.Build(afero.NewOsFs(), directory, zipPath, archive.DefaultExcludes())
	if err != nil {
		return "", err
	}
	fmt.Fprintf(out, "✓ Zip archive created: %s\n", zipPath)
	fmt.Fprintf(out, "  Files: %d\n", res.FileCount)
	fmt.Fprintf(out, "  Original size: %s\n", humanize.Bytes(uint64(res.TotalSize)))
	fmt.Fprintf(out, "  Compressed size: %s\n", humanize.Bytes(uint64(res.ArchiveSize)))
	if ratio, ok := res.Ratio(); ok {
		fmt.Fprintf(out, "  Compression ratio: %.1f%%\n", ratio*100)
	}
	return zipPath, nil
}
