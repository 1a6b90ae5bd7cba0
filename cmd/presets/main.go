package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/terracegen/internal/config"
	"github.com/OCharnyshevich/terracegen/internal/storage"
)

func main() {
	var (
		src  = flag.String("src", "", "preset config url (http, git::, s3::, gcs::, file path)")
		name = flag.String("name", "", "preset name (defaults to the source file name)")
		dir  = flag.String("dir", "./data", "storage directory")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *src == "" {
		log.Error("source url required")
		os.Exit(2)
	}
	if *name == "" {
		base := filepath.Base(strings.SplitN(*src, "?", 2)[0])
		*name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := storage.New(*dir, log)
	if err != nil {
		log.Error("open storage", "error", err)
		os.Exit(1)
	}

	dst := filepath.Join(st.PresetDir(), *name+".json")
	log.Info("start downloading preset", "src", *src, "dst", dst)
	if err := get.GetFile(dst, *src, get.WithContext(ctx)); err != nil {
		log.Error("download preset", "error", err)
		os.Exit(1)
	}

	// Reject presets the generator would refuse before anyone uses them.
	cfg := config.DefaultConfig()
	if err := st.LoadPreset(*name, cfg); err != nil {
		os.Remove(dst)
		log.Error("load preset", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		os.Remove(dst)
		log.Error("invalid preset", "error", err)
		os.Exit(1)
	}
	log.Info("done downloading preset", "name", *name)
}
