package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/myleshyson/lsprotocol-go/protocol"
	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"

	"github.com/problemlens/problemlens"
	"github.com/problemlens/problemlens/lsp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", os.Args[0], err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "problemlens.yaml", "path to config file")
	settle := flag.Duration("settle", 3*time.Second, "how long to collect diagnostics before rendering")
	cursor := flag.Int("cursor", 0, "one-based cursor line in the first file (0 = first line)")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		return errors.New("no files given")
	}

	cfg, err := problemlens.LoadConfigFile(*configPath)
	if err != nil {
		return err
	}

	logHandler := slogctx.NewHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}), nil)
	slog.SetDefault(slog.New(logHandler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := problemlens.NewStore()
	host := newTermHost()
	engine := problemlens.NewEngine(host, store, slog.Default())
	defer engine.Shutdown()

	session, err := lsp.Dial(ctx, cfg.Server, store, func(protocol.DocumentUri) {
		host.Emit(problemlens.EventDiagnosticsChanged, nil)
	})
	if err != nil {
		return err
	}
	if err := session.Initialize(ctx, ".", cfg.Server.InitializationOptions); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range files {
		g.Go(func() error {
			doc, err := session.OpenFile(gctx, f)
			if err != nil {
				return err
			}
			content, err := os.ReadFile(f)
			if err != nil {
				return err
			}
			host.AddEditor(doc, strings.Split(strings.TrimRight(string(content), "\n"), "\n"))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	host.SetCursor(*cursor)

	if err := engine.Reconfigure(cfg); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-time.After(*settle):
	}

	// One last pass in case the final publish raced the settle timer.
	engine.RefreshAll()
	host.Render(os.Stdout)

	return session.Shutdown(context.Background())
}
