// Command flowd runs the flowd-go FBP runtime: it loads a graph document,
// starts its components, and serves the management protocol over
// WebSocket (spec.md §6).
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/ERnsTL/flowd-go/components"
	"github.com/ERnsTL/flowd-go/config"
	"github.com/ERnsTL/flowd-go/host"
	"github.com/ERnsTL/flowd-go/internal/buildinfo"
	"github.com/ERnsTL/flowd-go/proto"
	"github.com/ERnsTL/flowd-go/registry"
)

// _ forces components/register.go's init() to run, wiring FileReader,
// SplitLines, and Trim into registry.Default.
var _ = components.FileReaderMetadata

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML runtime config file")
	listen := pflag.StringP("listen", "l", "", "address to listen on for the management protocol")
	graphPath := pflag.StringP("graph", "g", "", "path to a graph document to load at startup")
	pflag.Parse()

	var cfg config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Error().Err(err).Str("path", *configPath).Msg("could not load config file")
			os.Exit(1)
		}
		cfg = *loaded
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = envOr("FLOWD_LOG", "info")
	}
	configureLogging(cfg.LogLevel)

	if *listen == "" {
		*listen = cfg.Listen
	}
	if *listen == "" {
		*listen = envOr("FLOWD_LISTEN", "localhost:3569")
	}

	h := host.NewBuilder(registry.Default).WithDefaultCapacity(cfg.DefaultEdgeCapacity).Build()
	srv := proto.NewServer(registry.Default, h, buildinfo.RuntimeID())

	if *graphPath != "" {
		doc, raw, err := loadGraphFile(*graphPath)
		if err != nil {
			log.Error().Err(err).Str("path", *graphPath).Msg("could not load graph document")
			os.Exit(1)
		}
		srv.SetGraphSource(string(raw))
		if err := h.Start(doc); err != nil {
			log.Error().Err(err).Msg("could not start graph")
			os.Exit(1)
		}
	}

	httpSrv := &http.Server{Addr: *listen, Handler: srv.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("listen", *listen).Msg("management protocol listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("bind/listen failure")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)

	h.Stop()
}

func configureLogging(levelName string) {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func loadGraphFile(path string) (host.Document, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return host.Document{}, nil, err
	}
	var doc host.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return host.Document{}, nil, err
	}
	return doc, raw, nil
}
