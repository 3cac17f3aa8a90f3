package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/huddle/internal/app"
	"github.com/zhubert/huddle/internal/clipboard"
	"github.com/zhubert/huddle/internal/config"
	"github.com/zhubert/huddle/internal/logger"
	"github.com/zhubert/huddle/internal/sim"
)

var (
	debugMode             bool
	quietMode             bool
	logFile               string
	fixturePath           string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "huddle",
	Short: "Terminal chat client with contacts, group chats and calls",
	Long: `Huddle is a terminal chat client. Contacts, 1:1 chats and group chats
share one list; chats open in windows next to it.

Without a server huddle runs against a simulated network described by a
fixture file (--fixture), or the built-in one.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (default "+logger.DefaultLogPath+")")
	rootCmd.Flags().StringVar(&fixturePath, "fixture", "", "Network fixture to load (overrides fixture_path in the config)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("huddle %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("huddle %s\n", version)
}

func openLog() error {
	if logFile == "" {
		return nil
	}
	return logger.Init(logFile)
}

// loadNetwork builds the simulated network from the fixture at path, or the
// built-in one when path is empty.
func loadNetwork(path string) (*sim.Network, error) {
	if path == "" {
		return sim.DefaultFixture().Build(), nil
	}
	fixture, err := sim.LoadFixture(path)
	if err != nil {
		return nil, err
	}
	return fixture.Build(), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := openLog(); err != nil {
		return err
	}
	// Ensure logger is closed on exit
	defer logger.Close()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	path := fixturePath
	if path == "" {
		path = cfg.GetFixturePath()
	}
	network, err := loadNetwork(path)
	if err != nil {
		return fmt.Errorf("error loading network: %w", err)
	}

	// Without a clipboard, copying handles fails with an error dialog
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable: %v", err)
	}

	// Create and run the app
	m := app.New(cfg, network, version)
	defer m.Shutdown()
	p := tea.NewProgram(m)

	watcher, err := config.Watch(cfg.FilePath(), func() { p.Send(app.ConfigChangedMsg{}) })
	if err != nil {
		logger.Warn("not watching %s: %v", cfg.FilePath(), err)
	} else {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
