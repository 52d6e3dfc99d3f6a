package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/suapapa/lotto645_recommender/kv"
	"github.com/suapapa/lotto645_recommender/lotto"
)

type rootOptions struct {
	configPath  string
	storeDriver string
	storePath   string
	logLevel    string
}

// app is what every subcommand shares once the root command has set it up.
type app struct {
	cfg     *Config
	log     zerolog.Logger
	blobs   kv.Store
	sess    *Session
	logFile io.Closer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	var a app
	err := execute(ctx, newRootCmd(&a), &a)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute runs root and releases what setup opened, also when the command
// fails. cobra skips post-run hooks on error.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	defer a.close()
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:          "lotto645",
		Short:        "로또 6/45 번호 추천기",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context(), opts, isInteractive(cmd))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isInteractive(cmd) {
				return a.generate(cmd.Context(), cmd.OutOrStdout(), 0)
			}
			return a.runTUI(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", ".config.yaml", "config file")
	pf.StringVar(&opts.storeDriver, "store", "", "history store driver (file, sqlite, memory)")
	pf.StringVar(&opts.storePath, "store-path", "", "history store path")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newGenCmd(a),
		newHistoryCmd(a),
		newCopyCmd(a),
		newClearCmd(a),
		newBotCmd(a),
		newAICmd(a),
	)
	return root
}

// isInteractive is true when the bare root command runs on a terminal.
func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() && term.IsTerminal(int(os.Stdout.Fd()))
}

func (a *app) setup(ctx context.Context, opts rootOptions, interactive bool) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.storeDriver != "" {
		cfg.Store.Driver = opts.storeDriver
		if opts.storePath == "" {
			cfg.Store.Path = ""
			if err := cfg.setDefaults(); err != nil {
				return err
			}
		}
	}
	if opts.storePath != "" {
		cfg.Store.Path = opts.storePath
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	a.cfg = cfg

	// The TUI owns the terminal, so logs go to a file while it runs.
	var logOut io.Writer = os.Stderr
	logPretty := cfg.Log.Pretty
	logPath := cfg.Log.File
	if logPath == "" && interactive {
		logPath = filepath.Join(os.TempDir(), "lotto645.log")
	}
	if logPath != "" {
		f, err := openLogFile(logPath)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		logOut = f
		logPretty = false
	}
	a.log = newLogger(logOut, cfg.Log.Level, logPretty)

	a.blobs, err = kv.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	a.log.Debug().
		Str("driver", cfg.Store.Driver).
		Str("path", cfg.Store.Path).
		Msg("history store opened")

	a.sess = NewSession(
		lotto.NewHistoryStore(a.blobs, a.log),
		lotto.NewGenerator(nil),
		cfg.SetCount,
		a.log,
	)
	return nil
}

// close is safe to call more than once.
func (a *app) close() {
	if a.blobs != nil {
		if err := a.blobs.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close history store")
		}
		a.blobs = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

func (a *app) runTUI(ctx context.Context) error {
	var initial *Outcome
	if o, generated := a.sess.Start(ctx); generated {
		initial = &o
	}
	err := runTUI(ctx, a.sess, &systemCopier{term: os.Stderr}, initial)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func (a *app) generate(ctx context.Context, w io.Writer, n int) error {
	a.sess.Load(ctx)
	out := a.sess.Generate(ctx, n)
	return printSets(w, a.sess.State().LastSets, out.Status)
}

func printSets(w io.Writer, sets []lotto.Set, status string) error {
	_, err := fmt.Fprintf(w, "%s\n\n%s\n\n%s\n", renderSets(sets), lotto.ExportText(sets), status)
	return err
}

func newGenCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "번호를 추천받고 기록에 남깁니다",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd.Context(), cmd.OutOrStdout(), count)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of sets (1-10, default from config)")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "최근 추천 기록을 보여줍니다",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.sess.Load(cmd.Context())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderHistory(a.sess.State().History))
			return err
		},
	}
}

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "가장 최근 추천 번호를 클립보드에 복사합니다",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a.sess.Load(ctx)
			if !a.sess.Resume() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), lotto.NoHistoryText)
				return err
			}
			out, _ := a.sess.Copy(ctx, &systemCopier{term: cmd.OutOrStdout(), echo: true})
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out.Status)
			return err
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "추천 기록을 삭제합니다",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := a.sess.Clear(cmd.Context())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out.Status)
			return err
		},
	}
}

func newBotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "텔레그램 봇으로 번호를 추천합니다",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.cfg.validateTelegram(); err != nil {
				return err
			}

			var lottoAI *LottoAI
			if a.cfg.AI.Enabled {
				var err error
				if lottoAI, err = a.newLottoAI(ctx, false); err != nil {
					return err
				}
			}

			a.sess.Load(ctx)
			// 텔레그렘 봇 시작
			a.log.Info().Msg("Starting Telegram bot...")
			tb, err := NewTelegramBot(a.sess, lottoAI, a.log, a.cfg.TelegramAPIToken, a.cfg.ChatIDs...)
			if err != nil {
				return err
			}

			a.log.Info().Msg("Telegram bot started. Listening for commands...")
			tb.Serve(ctx)
			a.log.Info().Msg("Telegram bot stopped")
			return nil
		},
	}
}

func newAICmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "AI로 번호를 추천받고 기록에 남깁니다",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lottoAI, err := a.newLottoAI(ctx, true)
			if err != nil {
				return err
			}
			sets, err := lottoAI.Pick(ctx, count)
			if err != nil {
				return err
			}
			a.sess.Load(ctx)
			out := a.sess.Record(ctx, sets)
			return printSets(cmd.OutOrStdout(), sets, out.Status)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", lotto.DefaultSetCount, "number of sets (1-10)")
	return cmd
}

func (a *app) newLottoAI(ctx context.Context, showProgress bool) (*LottoAI, error) {
	if err := a.cfg.loadPrompt(); err != nil {
		return nil, err
	}
	docs, err := loadWinningDocs(a.cfg.AI, showProgress)
	if err != nil {
		return nil, err
	}
	a.log.Info().Int("docs", len(docs)).Str("model", a.cfg.AI.Model).Msg("AI picker ready")
	return NewLottoAI(ctx, a.cfg.AI, docs, a.log)
}
