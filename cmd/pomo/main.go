// Package main provides the CLI entrypoint for pomo.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/pomo/internal/clock"
	"github.com/verte-zerg/pomo/internal/config"
	"github.com/verte-zerg/pomo/internal/format"
	"github.com/verte-zerg/pomo/internal/model"
	"github.com/verte-zerg/pomo/internal/recovery"
	"github.com/verte-zerg/pomo/internal/stats"
	"github.com/verte-zerg/pomo/internal/statsui"
	"github.com/verte-zerg/pomo/internal/store"
	"github.com/verte-zerg/pomo/internal/timer"
	"github.com/verte-zerg/pomo/internal/tui"
)

const (
	defaultWork      = "25m"
	defaultShort     = "5m"
	defaultLong      = "15m"
	defaultInterval  = 4
	defaultPrecision = "seconds"
	defaultBarDays   = 14
)

var (
	timerWork      string
	timerShort     string
	timerLong      string
	timerInterval  int
	timerPrecision string
	timerTask      string
	timerType      string
	timerDuration  string

	statsType  string
	statsSince string
	statsLast  int
	statsPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pomo",
		Short:         "Terminal focus session timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTimerCmd,
	}

	rootCmd.Flags().StringVar(&timerWork, "work", defaultWork, "work session length")
	rootCmd.Flags().StringVar(&timerShort, "short-break", defaultShort, "short break length")
	rootCmd.Flags().StringVar(&timerLong, "long-break", defaultLong, "long break length")
	rootCmd.Flags().IntVar(&timerInterval, "long-break-interval", defaultInterval, "work sessions before a long break")
	rootCmd.Flags().StringVar(&timerPrecision, "precision", defaultPrecision, "display precision (seconds, tenths, hundredths)")
	rootCmd.Flags().StringVar(&timerTask, "task", "", "task id to associate with started sessions")
	rootCmd.Flags().StringVar(&timerType, "type", "", "start a session of this type immediately (work, short-break, long-break, custom)")
	rootCmd.Flags().StringVar(&timerDuration, "duration", "", "planned duration for an immediately started session")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runTimerCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "work", &timerWork, fileCfg.Timer.Work)
	applyStringConfig(cmd, "short-break", &timerShort, fileCfg.Timer.ShortBreak)
	applyStringConfig(cmd, "long-break", &timerLong, fileCfg.Timer.LongBreak)
	applyIntConfig(cmd, "long-break-interval", &timerInterval, fileCfg.Timer.LongBreakInterval)
	applyStringConfig(cmd, "precision", &timerPrecision, fileCfg.Timer.Precision)

	engineCfg, err := buildEngineConfig()
	if err != nil {
		return err
	}
	precision, err := format.ParsePrecision(timerPrecision)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	clk := clock.System
	eng := timer.NewEngine(engineCfg, clk)
	rec := recovery.NewManager(st, clk)
	eng.SetCheckpointer(rec)
	subscribeFinishedSessions(eng, rec, st)

	var recoverable *timer.Checkpoint
	switch res := rec.Load(); res.Outcome {
	case recovery.Finished:
		// The planned duration elapsed while the process was down; run
		// the normal completion path without prompting.
		s, err := eng.Restore(res.Checkpoint)
		if err != nil {
			logErrf("failed to restore finished session: %v\n", err)
			break
		}
		// Tick only completes Running sessions. A record paused right at
		// zero remaining has to be resumed before the tick can finish it.
		if s.State == timer.Paused {
			if _, err := eng.Resume(); err != nil {
				logErrf("failed to resume finished session: %v\n", err)
				break
			}
		}
		eng.Tick(clk.Now())
	case recovery.Resumable:
		cp := res.Checkpoint
		recoverable = &cp
	}

	if recoverable == nil && timerType != "" {
		if err := startImmediate(eng); err != nil {
			return err
		}
	}

	m := tui.NewModel(eng, rec, st, precision, timerTask, recoverable)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func buildEngineConfig() (timer.Config, error) {
	work, err := config.ParseDurationValue("work", timerWork)
	if err != nil {
		return timer.Config{}, err
	}
	short, err := config.ParseDurationValue("short-break", timerShort)
	if err != nil {
		return timer.Config{}, err
	}
	long, err := config.ParseDurationValue("long-break", timerLong)
	if err != nil {
		return timer.Config{}, err
	}
	if timerInterval < 1 {
		return timer.Config{}, fmt.Errorf("--long-break-interval must be >= 1")
	}
	return timer.Config{
		Work:              work,
		ShortBreak:        short,
		LongBreak:         long,
		CustomDefault:     work,
		LongBreakInterval: timerInterval,
	}, nil
}

func startImmediate(eng *timer.Engine) error {
	typ, err := timer.ParseSessionType(timerType)
	if err != nil {
		return err
	}
	opts := []timer.StartOption{timer.WithType(typ)}
	if timerDuration != "" {
		d, err := config.ParseDurationValue("duration", timerDuration)
		if err != nil {
			return err
		}
		opts = append(opts, timer.WithDuration(d))
	} else if typ == timer.Custom {
		return fmt.Errorf("--type custom requires --duration")
	}
	if timerTask != "" {
		opts = append(opts, timer.WithTask(timerTask))
	}
	if _, err := eng.Start(opts...); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	return nil
}

// subscribeFinishedSessions persists completed and cancelled sessions to
// history and acknowledges completions by clearing the recovery
// checkpoint.
func subscribeFinishedSessions(eng *timer.Engine, rec *recovery.Manager, st *store.Store) {
	eng.Subscribe(func(ev timer.Event) {
		if ev.Type != timer.EventCompleted && ev.Type != timer.EventCancelled {
			return
		}
		if err := st.InsertSummary(context.Background(), summaryFromEvent(ev)); err != nil {
			logErrf("failed to save session: %v\n", err)
		}
		if ev.Type == timer.EventCompleted {
			if err := rec.Clear(); err != nil {
				logErrf("failed to clear recovery checkpoint: %v\n", err)
			}
		}
	})
}

func summaryFromEvent(ev timer.Event) model.SessionSummary {
	outcome := model.OutcomeCompleted
	if ev.Type == timer.EventCancelled {
		outcome = model.OutcomeCancelled
	}
	s := ev.Session
	return model.SessionSummary{
		ID:        s.ID,
		Type:      s.Type.String(),
		TaskID:    s.TaskID,
		Outcome:   outcome,
		PlannedMs: s.Planned.Milliseconds(),
		ElapsedMs: s.Elapsed(ev.At).Milliseconds(),
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsType, "type", "", "session type filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain summary instead of the TUI")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsType != "" {
		if _, err := timer.ParseSessionType(statsType); err != nil {
			return err
		}
	}

	cfg := model.StatsConfig{
		Type:  statsType,
		Since: sinceTime,
		Last:  statsLast,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runPlainStats(st, cfg)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func runPlainStats(st *store.Store, cfg model.StatsConfig) error {
	sums, err := st.ListSummaries(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	if err := stats.RenderSummary(os.Stdout, sums); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if len(sums) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(os.Stdout); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	days := stats.LastDays(sums, defaultBarDays, time.Now())
	if err := stats.RenderDailyBars(os.Stdout, days); err != nil {
		return fmt.Errorf("failed to write daily bars: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# pomo configuration
# Uncomment a value to enable it. CLI flags override config values.

[timer]
# work = %q               # Work session length
# short-break = %q        # Short break length
# long-break = %q        # Long break length
# long-break-interval = %d    # Work sessions before a long break
# precision = %q      # Display precision: seconds, tenths, hundredths
`,
		defaultWork,
		defaultShort,
		defaultLong,
		defaultInterval,
		defaultPrecision,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
