package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/MyOne00/portfolio/internal/logger"
	"github.com/MyOne00/portfolio/internal/repofeed"
	"github.com/MyOne00/portfolio/internal/typewriter"
)

func newRootCmd() *cobra.Command {
	var cfg Config

	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Personal portfolio website",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = LoadConfig(os.Getenv)
			if err != nil {
				return err
			}

			logger.SetupLogger()
			logger.SetDebug(cfg.Debug)
			if cfg.Debug {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}
			return nil
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	repos := &cobra.Command{
		Use:   "repos",
		Short: "Load the project feed once and print the cards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			feed, err := newFeed(cfg, nil)
			if err != nil {
				return err
			}
			return printCards(cmd.OutOrStdout(), feed.Load(cmd.Context()))
		},
	}

	var (
		set      string
		duration time.Duration
	)
	typeCmd := &cobra.Command{
		Use:   "type",
		Short: "Run the typewriter animation in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			phrases, ok := phraseSets[set]
			if !ok {
				return fmt.Errorf("unknown phrase set %q", set)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), duration)
			defer cancel()
			return runTypewriter(ctx, cmd.OutOrStdout(), phrases, nil)
		},
	}
	typeCmd.Flags().StringVar(&set, "set", "hero", "phrase set: hero or projects")
	typeCmd.Flags().DurationVar(&duration, "for", 30*time.Second, "how long to animate")

	root.AddCommand(serve, repos, typeCmd)
	root.RunE = serve.RunE
	return root
}

func newFeed(cfg Config, recorder repofeed.Recorder) (*repofeed.Feed, error) {
	lister, err := repofeed.NewGitHubLister(&http.Client{Timeout: 10 * time.Second},
		repofeed.WithToken(cfg.GitHubToken),
		repofeed.WithBaseURL(cfg.GitHubAPIURL),
	)
	if err != nil {
		return nil, err
	}

	opts := []repofeed.Option{repofeed.WithFallbackDelay(cfg.FallbackDelay)}
	if recorder != nil {
		opts = append(opts, repofeed.WithRecorder(recorder))
	}
	return repofeed.New(lister, cfg.GitHubOwner, opts...), nil
}

func runServe(ctx context.Context, cfg Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := OpenStore(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}()

	feed, err := newFeed(cfg, store)
	if err != nil {
		return err
	}

	app := NewApp(ctx, cfg, store, feed)
	app.background(app.cleanupOldVisitorData)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr, "owner", cfg.GitHubOwner)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	app.Wait()
	return nil
}

func printCards(w io.Writer, res repofeed.Result) error {
	if _, err := fmt.Fprintf(w, "source: %s\n", res.Source); err != nil {
		return err
	}
	for _, c := range repofeed.BuildCards(res.Repos) {
		line := fmt.Sprintf("\n%s [%s]\n  %s\n  tags: %s\n  ★ %d  forks %d  %s\n  %s\n",
			c.Title, c.StatusText(), c.Description, strings.Join(c.Tags, ", "),
			c.Stars, c.Forks, c.Language, c.RepoURL)
		if c.HasDemo() {
			line += "  demo: " + c.DemoURL + "\n"
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// runTypewriter redraws the current line on every frame until ctx ends.
func runTypewriter(ctx context.Context, w io.Writer, phrases []string, clock typewriter.Clock) error {
	var opts []typewriter.Option
	if clock != nil {
		opts = append(opts, typewriter.WithClock(clock))
	}
	engine, err := typewriter.New(phrases, typewriter.SinkFunc(func(text string) {
		_, _ = fmt.Fprintf(w, "\r\033[K%s▌", text)
	}), opts...)
	if err != nil {
		return err
	}

	err = engine.Run(ctx)
	_, _ = fmt.Fprintln(w)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
