package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dwanav/internal/config"
	"github.com/san-kum/dwanav/internal/drive"
	"github.com/san-kum/dwanav/internal/dwa"
	"github.com/san-kum/dwanav/internal/render"
	"github.com/san-kum/dwanav/internal/storage"
	"github.com/san-kum/dwanav/internal/viz"
)

var (
	dataDir    string
	configFile string
	mapName    string
	startX     float64
	startY     float64
	startYaw   float64
	policy     string
	frameRate  int
	flock      bool
	outFile    string
	maxSteps   int
	goalFlags  []string
)

// main registers the dwanav commands: scenario runs (single robot and
// flock), live terminal visualization, and inspection of recorded runs.
func main() {
	rootCmd := &cobra.Command{
		Use:   "dwanav",
		Short: "dynamic window approach local motion planner",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dwanav", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a single-robot scenario",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	flockCmd := &cobra.Command{
		Use:   "flock",
		Short: "run a multi-agent scenario",
		RunE:  runFlock,
	}
	addScenarioFlags(flockCmd)
	flockCmd.Flags().StringVar(&policy, "policy", "", "goal advance policy (all|any)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario with live terminal visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().BoolVar(&flock, "flock", false, "run every agent in the scenario")
	liveCmd.Flags().StringVar(&policy, "policy", "", "goal advance policy (all|any)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot velocity and yaw-rate profiles of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a run to a PNG or SVG figure",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVarP(&outFile, "output", "o", "trajectory.png", "output file")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run states to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and states to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	mapsCmd := &cobra.Command{
		Use:   "maps",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tAGENTS\tGOALS\tOBSTACLES")
			for _, name := range config.ListScenarios() {
				sc := config.GetScenario(name)
				agents := len(sc.Agents)
				if agents == 0 {
					agents = 1
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", name, agents, len(sc.Goals), len(sc.Obstacles))
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, flockCmd, liveCmd, listCmd, plotCmd, renderCmd,
		exportCSVCmd, exportJSONCmd, mapsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().StringVar(&mapName, "map", "", "built-in scenario name")
	cmd.Flags().Float64Var(&startX, "x", 0, "start x override")
	cmd.Flags().Float64Var(&startY, "y", 0, "start y override")
	cmd.Flags().Float64Var(&startYaw, "yaw", 0, "start yaw override")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step limit override")
	cmd.Flags().StringArrayVar(&goalFlags, "goal", nil, `goal as "x,y" (repeatable, replaces scenario goals)`)
}

func parseGoals(specs []string) ([][]float64, error) {
	goals := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid goal %q: want x,y", spec)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid goal %q: %w", spec, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid goal %q: %w", spec, err)
		}
		goals = append(goals, []float64{x, y})
	}
	return goals, nil
}

// loadScenario resolves --map and --config (file wins over preset, defaults
// otherwise) and applies explicit flag overrides.
func loadScenario(cmd *cobra.Command) (*config.Scenario, error) {
	sc := config.Default()

	if mapName != "" {
		sc = config.GetScenario(mapName)
		if sc == nil {
			return nil, fmt.Errorf("unknown scenario: %s (available: %v)", mapName, config.ListScenarios())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		sc = loaded
	}

	if cmd.Flags().Changed("x") {
		sc.Start.X = startX
	}
	if cmd.Flags().Changed("y") {
		sc.Start.Y = startY
	}
	if cmd.Flags().Changed("yaw") {
		sc.Start.Yaw = startYaw
	}
	if cmd.Flags().Changed("max-steps") {
		sc.MaxSteps = maxSteps
	}
	if policy != "" {
		sc.GoalPolicy = policy
	}
	if len(goalFlags) > 0 {
		goals, err := parseGoals(goalFlags)
		if err != nil {
			return nil, err
		}
		sc.Goals = goals
	}
	return sc, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	cfg, err := sc.BuildConfig()
	if err != nil {
		return err
	}
	goals, err := sc.BuildGoals()
	if err != nil {
		return err
	}

	ctrl, err := drive.NewController(cfg, sc.BuildStart(), goals)
	if err != nil {
		return err
	}
	ctrl.StepLimit = sc.MaxSteps
	ctrl.AddMetric(drive.NewPathLength())
	ctrl.AddMetric(drive.NewControlEffort())
	ctrl.AddMetric(drive.NewMinClearance(cfg.Obstacles))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("running scenario %s...\n", sc.Name)
	start := time.Now()
	result, runErr := ctrl.Run(ctx)
	elapsed := time.Since(start)

	return report(sc, cfg, goals, result, runErr, elapsed)
}

func runFlock(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	cfg, err := sc.BuildConfig()
	if err != nil {
		return err
	}
	goals, err := sc.BuildGoals()
	if err != nil {
		return err
	}
	goalPolicy, err := sc.BuildPolicy()
	if err != nil {
		return err
	}

	swarm, err := drive.NewSwarm(cfg, sc.BuildAgents(), goals, goalPolicy)
	if err != nil {
		return err
	}
	swarm.StepLimit = sc.MaxSteps
	swarm.AddMetric(drive.NewPathLength())
	swarm.AddMetric(drive.NewControlEffort())
	swarm.AddMetric(drive.NewMinClearance(cfg.Obstacles))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("running scenario %s with %d agents (policy %s)...\n",
		sc.Name, len(sc.BuildAgents()), goalPolicy)
	start := time.Now()
	result, runErr := swarm.Run(ctx)
	elapsed := time.Since(start)

	return report(sc, cfg, goals, result, runErr, elapsed)
}

// report saves the (possibly partial) run and prints a summary. A step-limit
// or interrupt outcome is reported, not treated as a command failure.
func report(sc *config.Scenario, cfg *dwa.Config, goals []dwa.Point, result *drive.Result, runErr error, elapsed time.Duration) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(sc.Name, cfg.Dt, goals, cfg.Obstacles, result)
	if err != nil {
		return err
	}

	switch {
	case runErr == nil:
	case errors.Is(runErr, drive.ErrStepLimit):
		fmt.Println("warning: step limit reached before final goal")
	case errors.Is(runErr, context.Canceled):
		fmt.Println("interrupted")
	default:
		return runErr
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Printf("goals reached: %d/%d\n", result.GoalsReached, len(goals))
	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range result.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	cfg, err := sc.BuildConfig()
	if err != nil {
		return err
	}
	goals, err := sc.BuildGoals()
	if err != nil {
		return err
	}

	var stepper drive.Stepper
	if flock || len(sc.Agents) > 1 {
		goalPolicy, err := sc.BuildPolicy()
		if err != nil {
			return err
		}
		swarm, err := drive.NewSwarm(cfg, sc.BuildAgents(), goals, goalPolicy)
		if err != nil {
			return err
		}
		stepper = swarm
	} else {
		ctrl, err := drive.NewController(cfg, sc.BuildStart(), goals)
		if err != nil {
			return err
		}
		stepper = ctrl
	}

	m := viz.NewModel(stepper, cfg, goals, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tAGENTS\tSTEPS\tGOALS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d/%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Agents,
			run.Steps,
			run.GoalsReached,
			len(run.Goals),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%d agents)\n\n", meta.Scenario, meta.Agents)

	velocity := make([]float64, 0, len(rows))
	yawRate := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.Agent != 0 {
			continue
		}
		velocity = append(velocity, row.V)
		yawRate = append(yawRate, row.Omega)
	}

	fmt.Println(asciigraph.Plot(velocity,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("linear velocity [m/s] (agent 0)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(yawRate,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("yaw rate [rad/s] (agent 0)"),
	))
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	draw := render.TrajectoryPNG
	if strings.HasSuffix(outFile, ".svg") {
		draw = render.TrajectorySVG
	}
	if err := draw(outFile, meta, rows); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	rows, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "agent", "x", "y", "yaw", "v", "omega", "cmd_v", "cmd_omega"}); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			strconv.FormatFloat(row.Time, 'f', 6, 64),
			strconv.Itoa(row.Agent),
			strconv.FormatFloat(row.X, 'f', 6, 64),
			strconv.FormatFloat(row.Y, 'f', 6, 64),
			strconv.FormatFloat(row.Yaw, 'f', 6, 64),
			strconv.FormatFloat(row.V, 'f', 6, 64),
			strconv.FormatFloat(row.Omega, 'f', 6, 64),
			strconv.FormatFloat(row.CmdV, 'f', 6, 64),
			strconv.FormatFloat(row.CmdOmega, 'f', 6, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	doc := struct {
		Meta   *storage.RunMetadata `json:"meta"`
		States []storage.StateRow   `json:"states"`
	}{meta, rows}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
