// Package main provides the CLI entrypoint for quizdeck.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dkaul/quizdeck/internal/bank"
	"github.com/dkaul/quizdeck/internal/config"
	"github.com/dkaul/quizdeck/internal/game"
	"github.com/dkaul/quizdeck/internal/generator"
	"github.com/dkaul/quizdeck/internal/model"
	"github.com/dkaul/quizdeck/internal/stats"
	"github.com/dkaul/quizdeck/internal/statsui"
	"github.com/dkaul/quizdeck/internal/store"
	"github.com/dkaul/quizdeck/internal/tui"
)

const (
	defaultLang        = "en"
	defaultQuestions   = 10
	defaultMode        = "practice"
	defaultWeakTop     = 3
	defaultWeakRuns    = 2
	defaultWeakFactor  = 2.0
	defaultCurveWindow = 10
)

var (
	playTopic     string
	playLang      string
	playQuestions int
	playMode      string
	playFocusWeak bool
	playWeakTop   int
	playWeakRuns  int
	playTopicDir  string

	statsTopic       string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsText        bool

	historyClear bool
	importForce  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "quizdeck",
		Short:         "TUI quiz trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playTopic, "topic", "", "topic to play (default: mixed)")
	rootCmd.Flags().StringVar(&playLang, "lang", defaultLang, "language code for question text")
	rootCmd.Flags().IntVar(&playQuestions, "questions", defaultQuestions, "questions per quiz")
	rootCmd.Flags().StringVar(&playMode, "mode", defaultMode, "scoring mode: practice or attempt")
	rootCmd.Flags().BoolVar(&playFocusWeak, "focus-weak", false, "bias mixed quizzes toward weak topics")
	rootCmd.Flags().IntVar(&playWeakTop, "weak-top", defaultWeakTop, "number of weak topics to focus on")
	rootCmd.Flags().IntVar(&playWeakRuns, "weak-runs", defaultWeakRuns, "minimum quizzes before a topic counts as weak")
	rootCmd.Flags().StringVar(&playTopicDir, "topic-dir", "", "directory with topic files")

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &playLang, fileCfg.Quiz.Lang)
	applyIntConfig(cmd, "questions", &playQuestions, fileCfg.Quiz.Questions)
	applyStringConfig(cmd, "mode", &playMode, fileCfg.Quiz.Mode)
	applyBoolConfig(cmd, "focus-weak", &playFocusWeak, fileCfg.Quiz.FocusWeak)
	applyIntConfig(cmd, "weak-top", &playWeakTop, fileCfg.Quiz.WeakTop)
	applyIntConfig(cmd, "weak-runs", &playWeakRuns, fileCfg.Quiz.WeakRuns)
	applyStringConfig(cmd, "topic-dir", &playTopicDir, fileCfg.Quiz.TopicDir)

	cfg := model.Config{
		Lang:      playLang,
		Questions: playQuestions,
		Mode:      model.Mode(playMode),
		FocusWeak: playFocusWeak,
		WeakTop:   playWeakTop,
		WeakRuns:  playWeakRuns,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	topicDir := playTopicDir
	if topicDir == "" {
		topicDir = config.DefaultTopicDir()
	}
	topics, err := bank.ListTopics(topicDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no topics found in %s\nInstall one with: quizdeck import <file>", topicDir)
		}
		return fmt.Errorf("failed to list topics: %w", err)
	}
	if len(topics) == 0 {
		return fmt.Errorf("no topics found in %s\nInstall one with: quizdeck import <file>", topicDir)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	engine := game.NewEngine(st)
	topicName, loader, err := buildLoader(cfg, topics, st)
	if err != nil {
		return err
	}
	questions, err := engine.StartQuiz(context.Background(), loader, topicName)
	if err != nil {
		return err
	}

	quiz := tui.NewModel(engine, cfg, topicName, questions)
	program := tea.NewProgram(quiz, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildLoader resolves a single topic when --topic is set and otherwise
// mixes all installed topics, optionally biased toward weak ones.
func buildLoader(cfg model.Config, topics []model.Topic, st *store.Store) (string, game.QuestionLoader, error) {
	if playTopic != "" {
		for _, topic := range topics {
			if topic.Name.Get("en") == playTopic || topic.Name.Get(cfg.Lang) == playTopic {
				name := topic.Name.Get(cfg.Lang)
				fileLoader := bank.Loader(topic.File)
				loader := func(ctx context.Context) ([]model.Question, error) {
					pool, err := fileLoader(ctx)
					if err != nil {
						return nil, err
					}
					return generator.New().Pick(pool, cfg.Questions), nil
				}
				return name, loader, nil
			}
		}
		names := make([]string, 0, len(topics))
		for _, topic := range topics {
			names = append(names, topic.Name.Get("en"))
		}
		return "", nil, fmt.Errorf("unknown topic %q (available: %s)", playTopic, strings.Join(names, ", "))
	}

	if len(topics) == 1 {
		topic := topics[0]
		fileLoader := bank.Loader(topic.File)
		loader := func(ctx context.Context) ([]model.Question, error) {
			pool, err := fileLoader(ctx)
			if err != nil {
				return nil, err
			}
			return generator.New().Pick(pool, cfg.Questions), nil
		}
		return topic.Name.Get(cfg.Lang), loader, nil
	}

	weakTopics := map[string]struct{}{}
	if cfg.FocusWeak {
		history, err := st.History(context.Background())
		if err != nil {
			logErrf("failed to load history for weak-topic focus: %v\n", err)
		} else {
			weakTopics = stats.WeakTopics(history, cfg.WeakTop, cfg.WeakRuns)
			if len(weakTopics) == 0 {
				logErrln("no stats available for weak-topic focus yet; using an even mix")
			}
		}
	}

	loader := func(ctx context.Context) ([]model.Question, error) {
		pools := make(map[string][]model.Question, len(topics))
		for _, topic := range topics {
			pack, err := bank.LoadPack(topic.File)
			if err != nil {
				return nil, err
			}
			pools[topic.Name.Get(cfg.Lang)] = pack.Questions
		}
		return generator.New().PickMixed(pools, cfg.Questions, weakTopics, defaultWeakFactor), nil
	}
	return "Mixed", loader, nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progress stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsTopic, "topic", "", "topic filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N quizzes")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsText, "text", false, "print a plain text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &statsLast, fileCfg.Stats.Last)
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, fileCfg.Stats.CurveWindow)

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	cfg := model.StatsConfig{
		Topic:       statsTopic,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if statsText {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return err
		}
		return stats.WriteReport(cmd.OutOrStdout(), report, cfg, playLang)
	}

	ui := statsui.NewModel(st, cfg, playLang)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print quiz history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().BoolVar(&historyClear, "clear", false, "wipe history and progress")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	if historyClear {
		if !confirm("Clear all quiz history and progress?") {
			return nil
		}
		if err := game.NewEngine(st).ClearHistory(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	history, err := st.History(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return stats.RenderHistoryTable(cmd.OutOrStdout(), history)
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List available topics",
		Args:  cobra.NoArgs,
		RunE:  runTopicsCmd,
	}
}

func runTopicsCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	custom, err := st.CustomSubjects(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load custom subjects: %w", err)
	}
	subjects, err := bank.Subjects(topicDirOrDefault(), custom)
	if err != nil {
		return fmt.Errorf("failed to list topics: %w", err)
	}
	if len(subjects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No topics found. Install one with: quizdeck import <file>")
		return nil
	}
	out := cmd.OutOrStdout()
	for _, subject := range subjects {
		label := subject.Name.Get(playLang)
		if subject.Custom {
			label += " (custom)"
		}
		fmt.Fprintln(out, label)
		for _, topic := range subject.Topics {
			fmt.Fprintf(out, "  %s\n", topic.Name.Get(playLang))
		}
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Validate and install a question pack",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().BoolVar(&importForce, "force", false, "overwrite an existing topic")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	pack, err := bank.LoadPack(args[0])
	if err != nil {
		return err
	}
	dst, err := bank.Install(args[0], topicDirOrDefault(), importForce)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	subject := model.Subject{
		Name:   pack.Name,
		Icon:   pack.Icon,
		Topics: []model.Topic{{Name: pack.Name, File: dst}},
	}
	unlocked, err := game.NewEngine(st).SaveCustomSubject(context.Background(), subject, time.Now())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Installed %s\n", dst)
	for _, ach := range unlocked {
		fmt.Fprintf(out, "Achievement unlocked: %s\n", ach.Name.Get(playLang))
	}
	return nil
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a custom pack",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemoveCmd,
	}
}

func runRemoveCmd(cmd *cobra.Command, args []string) error {
	name := args[0]
	topics, err := bank.ListTopics(topicDirOrDefault())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to list topics: %w", err)
	}
	var file string
	for _, topic := range topics {
		if topic.Name.Get("en") == name {
			file = topic.File
			break
		}
	}
	if file == "" {
		return fmt.Errorf("no topic %q", name)
	}
	if !confirm(fmt.Sprintf("Remove topic %q?", name)) {
		return nil
	}
	if err := os.Remove(file); err != nil {
		return fmt.Errorf("failed to remove topic: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)
	if err := game.NewEngine(st).DeleteCustomSubject(context.Background(), name); err != nil {
		// Built-in packs have no custom subject entry.
		logErrf("note: %v\n", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", file)
	return nil
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
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func topicDirOrDefault() string {
	if playTopicDir != "" {
		return playTopicDir
	}
	return config.DefaultTopicDir()
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# quizdeck configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# lang = %q            # Language code for question text
# questions = %d       # Questions per quiz
# mode = %q     # Scoring mode: practice or attempt
# focus-weak = false    # Bias mixed quizzes toward weak topics
# weak-top = %d          # Number of weak topics to focus on
# weak-runs = %d         # Minimum quizzes before a topic counts as weak
# topic-dir = ""        # Directory with topic files

[stats]
# last = 0              # Limit stats to last N quizzes (0 = all)
# curve-window = %d     # Moving average window for learning curves
`,
		defaultLang,
		defaultQuestions,
		defaultMode,
		defaultWeakTop,
		defaultWeakRuns,
		defaultCurveWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if cfg.Questions <= 0 {
		return fmt.Errorf("--questions must be > 0")
	}
	if cfg.Mode != model.ModePractice && cfg.Mode != model.ModeAttempt {
		return fmt.Errorf("--mode must be practice or attempt")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakRuns < 0 {
		return fmt.Errorf("--weak-runs must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
