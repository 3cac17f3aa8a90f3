package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhubert/huddle/internal/demo"
	"github.com/zhubert/huddle/internal/demo/scenarios"
	"github.com/zhubert/huddle/internal/sim"
)

// demoOptions are the flags shared by demo run and demo cast.
type demoOptions struct {
	output     string
	width      int
	height     int
	theme      string
	fixture    string
	captureAll bool
}

var demoOpts demoOptions

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Record scripted sessions of huddle",
	Long: `Plays a scripted session against the simulated network and records what
the screen showed. Nothing touches a real account or your saved settings.

  huddle demo list                 show the scenarios
  huddle demo run basic            print every captured frame
  huddle demo cast comprehensive   write an asciinema v2 recording`,
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the available scenarios",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listScenarios(cmd.OutOrStdout())
	},
}

var demoRunCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Play a scenario and print the frames",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoRun,
}

var demoCastCmd = &cobra.Command{
	Use:   "cast <scenario>",
	Short: "Play a scenario into an asciinema cast file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoCast,
}

func init() {
	for _, c := range []*cobra.Command{demoRunCmd, demoCastCmd} {
		f := c.Flags()
		f.IntVarP(&demoOpts.width, "width", "w", 0, "Terminal width (default: the scenario's)")
		f.IntVarP(&demoOpts.height, "height", "H", 0, "Terminal height (default: the scenario's)")
		f.StringVar(&demoOpts.theme, "theme", "", "Theme to record with")
		f.StringVar(&demoOpts.fixture, "fixture", "", "YAML fixture replacing the built-in network")
		f.BoolVar(&demoOpts.captureAll, "capture-all", false, "Capture a frame after every step")
	}
	demoCastCmd.Flags().StringVarP(&demoOpts.output, "output", "o", "", "Cast file (default: <scenario>.cast)")

	demoCmd.AddCommand(demoListCmd, demoRunCmd, demoCastCmd)
	rootCmd.AddCommand(demoCmd)
}

func listScenarios(w io.Writer) {
	fmt.Fprintln(w, "Scenarios:")
	for _, s := range scenarios.All() {
		fmt.Fprintf(w, "  %-15s %s (%d steps)\n", s.Name, s.Description, len(s.Steps))
	}
}

// getScenario returns a copy of the named scenario with the flag overrides
// applied. The registered scenario is left alone.
func getScenario(name string) (*demo.Scenario, error) {
	registered := scenarios.Get(name)
	if registered == nil {
		return nil, fmt.Errorf("unknown scenario %q\nRun 'huddle demo list' to see available scenarios", name)
	}
	s := *registered
	setup := demo.DefaultSetup()
	if registered.Setup != nil {
		*setup = *registered.Setup
	}
	s.Setup = setup

	if demoOpts.width > 0 {
		s.Width = demoOpts.width
	}
	if demoOpts.height > 0 {
		s.Height = demoOpts.height
	}
	if demoOpts.theme != "" {
		s.Setup.Theme = demoOpts.theme
	}
	if demoOpts.fixture != "" {
		fx, err := sim.LoadFixture(demoOpts.fixture)
		if err != nil {
			return nil, fmt.Errorf("error loading fixture: %w", err)
		}
		s.Setup.Fixture = fx
	}
	return &s, nil
}

func playScenario(name string) (*demo.Scenario, []demo.Frame, error) {
	s, err := getScenario(name)
	if err != nil {
		return nil, nil, err
	}
	cfg := demo.DefaultExecutorConfig()
	cfg.CaptureEveryStep = demoOpts.captureAll

	frames, err := demo.NewExecutor(cfg).Run(s)
	if err != nil {
		return nil, nil, fmt.Errorf("error running scenario %s: %w", name, err)
	}
	return s, frames, nil
}

func runDemoRun(cmd *cobra.Command, args []string) error {
	_, frames, err := playScenario(args[0])
	if err != nil {
		return err
	}
	printFrames(cmd.OutOrStdout(), frames)
	return nil
}

// printFrames dumps frames as text for inspection.
func printFrames(w io.Writer, frames []demo.Frame) {
	fmt.Fprintf(w, "Captured %d frames\n", len(frames))
	for i, f := range frames {
		fmt.Fprintf(w, "\n=== Frame %d (after %v) ===\n", i, f.Delay)
		if f.Annotation != "" {
			fmt.Fprintf(w, "Annotation: %s\n", f.Annotation)
		}
		fmt.Fprintln(w, f.Content)
	}
}

func runDemoCast(cmd *cobra.Command, args []string) error {
	s, frames, err := playScenario(args[0])
	if err != nil {
		return err
	}

	path := demoOpts.output
	if path == "" {
		path = s.Name + ".cast"
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := demo.GenerateASCIICast(f, frames, s.Width, s.Height); err != nil {
		f.Close()
		return fmt.Errorf("error writing cast: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error writing cast: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated %s (%d frames)\n", path, len(frames))
	fmt.Fprintf(out, "Play with: asciinema play %s\n", path)
	return nil
}
