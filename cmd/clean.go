package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zhubert/huddle/internal/config"
	"github.com/zhubert/huddle/internal/logger"
)

var (
	skipConfirm   bool
	cleanSettings bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files and, optionally, saved settings",
	Long: `Removes huddle's log files from /tmp. With --settings the saved config
(theme, notifications, media inputs, online status) is deleted as well, so the
next start uses the defaults.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().BoolVar(&cleanSettings, "settings", false, "Also delete the saved config")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin, cmd.OutOrStdout())
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader, out io.Writer) error {
	logs, err := logger.LogFiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error listing log files: %v\n", err)
	}

	var settingsPath string
	if cleanSettings {
		path, err := config.Path()
		if err != nil {
			return fmt.Errorf("error locating config: %w", err)
		}
		if _, err := os.Stat(path); err == nil {
			settingsPath = path
		}
	}

	// Check if there's anything to clean
	if len(logs) == 0 && settingsPath == "" {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	// Print summary of what will be cleaned
	fmt.Fprintln(out, "This will clean:")
	if len(logs) > 0 {
		fmt.Fprintf(out, "  - %d log file(s)\n", len(logs))
		for _, l := range logs {
			fmt.Fprintf(out, "      %s\n", l)
		}
	}
	if settingsPath != "" {
		fmt.Fprintf(out, "  - Saved settings in %s\n", settingsPath)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	// The open log file would be recreated by the next log call
	logger.Close()

	var logsCleared int
	var g errgroup.Group
	g.Go(func() error {
		n, err := logger.ClearLogs()
		logsCleared = n
		if err != nil {
			return fmt.Errorf("error clearing logs: %w", err)
		}
		return nil
	})
	if settingsPath != "" {
		g.Go(func() error {
			if err := os.Remove(settingsPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("error removing settings: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Print results
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	if logsCleared > 0 {
		fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	}
	if settingsPath != "" {
		fmt.Fprintln(out, "  - Saved settings removed")
	}

	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
