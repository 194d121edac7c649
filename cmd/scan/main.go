package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"block_scanner/internal/app/bootstrap"
	"block_scanner/internal/infrastructure/configloader"
	"block_scanner/internal/infrastructure/walletloader"
	"block_scanner/internal/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config/config.yml", "path to the YAML configuration")
	outDir := flag.String("out", ".", "directory for image replies")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall command timeout")
	watchList := flag.String("wallets", "", "file of addresses or names appended to the command arguments")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <command> [args...]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "example: %s -wallets data/wallets.txt balancemulti\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
	}

	cfg, err := configloader.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.InitZap(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	app, err := bootstrap.New(ctx, cfg, zapLogger)
	if err != nil {
		logger.Fatal("Failed to initialize services", "error", err)
	}
	defer app.Close()

	args := flag.Args()
	if *watchList != "" {
		loader := walletloader.NewWatchListLoader(app.Network.NameSuffix, logger.NewSlogAdapter("component", "watchlist"))
		ids, err := loader.LoadFile(*watchList)
		if err != nil {
			logger.Fatal("Failed to load watch list", "error", err)
		}
		args = append(args, ids...)
	}

	line := cfg.Presentation.CommandPrefix + strings.Join(args, " ")
	reply, _ := app.Dispatcher.HandleLine(ctx, line)
	fmt.Println(reply.Text)

	if len(reply.Image) > 0 {
		path := filepath.Join(*outDir, reply.ImageName)
		if err := os.WriteFile(path, reply.Image, 0o644); err != nil {
			logger.Fatal("Failed to write image", "path", path, "error", err)
		}
		fmt.Println(path)
	}
}
