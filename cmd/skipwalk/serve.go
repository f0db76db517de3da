package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/samcharles93/skipwalk/internal/api"
	"github.com/samcharles93/skipwalk/internal/embedding"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		keys        string
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:      "serve",
		Usage:     "Serve similarity queries over embedding files",
		ArgsUsage: "[name=]file...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			keysFlag(&keys),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyServeConfig(cmd, cfg, &addr)
			if err := checkKeys(keys); err != nil {
				return err
			}
			files := cmd.Args().Slice()
			if keys == keysInt {
				return serveEmbeddings[int64](ctx, files, embedding.IntKeys[int64]{}, addr, readTimeout)
			}
			return serveEmbeddings[string](ctx, files, embedding.StringKeys{}, addr, readTimeout)
		},
	}
}

func serveEmbeddings[W comparable](ctx context.Context, files []string, codec embedding.KeyCodec[W], addr string, readTimeout time.Duration) error {
	log := logger.FromContext(ctx)

	server := api.NewServer(api.NewStore[W](), codec)
	for _, arg := range files {
		name, path := modelSource(arg)
		e, err := embedding.Open(path, codec)
		if err != nil {
			return cli.Exit(fmt.Sprintf("error: load %s: %v", path, err), 1)
		}
		info := server.AddModel("", name, e)
		log.Info("loaded embeddings", "id", info.ID, "name", name, "path", path, "words", info.Words, "dimension", info.Dimension)
	}
	if len(files) == 0 {
		log.Warn("no embedding files given, starting with an empty store")
	}

	e := echo.New()
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	server.Register(e)
	log.Info("starting server", "address", addr)
	sc := echo.StartConfig{
		Address: addr,
		BeforeServeFunc: func(srv *http.Server) error {
			srv.ReadHeaderTimeout = readTimeout
			return nil
		},
	}
	return sc.Start(ctx, e)
}

// modelSource splits a "name=path" argument. Without a name the file name
// minus its extension is used.
func modelSource(arg string) (name, path string) {
	if n, p, ok := strings.Cut(arg, "="); ok && n != "" {
		return n, p
	}
	base := filepath.Base(arg)
	return strings.TrimSuffix(base, filepath.Ext(base)), arg
}
