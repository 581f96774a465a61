// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/nbtab/main.go
// Summary: Terminal start page with desktops, widgets and floating windows.
// Usage: Run `nbtab` in a terminal; state lives in ~/.nbtab unless -state is set.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"nbtab/assistant"
	"nbtab/catalog"
	"nbtab/config"
	"nbtab/desk"
	"nbtab/storage"
	"nbtab/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("nbtab", flag.ContinueOnError)
	backend := fs.String("store", "", "Storage backend: file, sqlite or memory (default from config)")
	statePath := fs.String("state", "", "Path of the state file (default: ~/.nbtab/state.json)")
	logPath := fs.String("log", "", "Log file (default: ~/.nbtab/nbtab.log)")
	showPaths := fs.Bool("paths", false, "Print config and state locations and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	stateDir, err := config.StateDir()
	if err != nil {
		return fmt.Errorf("resolve state dir: %w", err)
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	cfg := config.System()
	if err := config.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config: %v\n", err)
	}

	storeSettings := cfg.Storage()
	if *backend != "" {
		storeSettings.Backend = *backend
	}
	if *statePath != "" {
		storeSettings.Path = *statePath
	}
	resolvedState := storeSettings.ResolvePath(stateDir)

	catalogPath, err := config.CatalogPath()
	if err != nil {
		return fmt.Errorf("resolve catalog path: %w", err)
	}

	if *showPaths {
		fmt.Printf("catalog: %s\n", catalogPath)
		fmt.Printf("state:   %s (%s)\n", resolvedState, storeSettings.Backend)
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	if *logPath == "" {
		*logPath = filepath.Join(stateDir, "nbtab.log")
	}
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Println("nbtab starting...")

	cat := catalog.Default()
	overrides, err := catalog.LoadOverrides(catalogPath)
	if err != nil {
		log.Printf("Catalog: %v", err)
	}
	cat.Apply(overrides)

	if dir := filepath.Dir(resolvedState); storeSettings.Backend != storage.BackendMemory {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	store, err := storage.Open(storeSettings.Backend, resolvedState)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Storage: Close failed: %v", err)
		}
	}()

	shellSettings := cfg.Shell()
	windowSettings := cfg.Window()
	termSettings := cfg.Terminal()
	aiSettings := cfg.Assistant()

	ai := assistant.New(assistant.Config{
		Endpoint:     aiSettings.Endpoint,
		Model:        aiSettings.Model,
		APIKey:       aiSettings.APIKey(),
		SystemPrompt: aiSettings.SystemPrompt,
		Timeout:      aiSettings.Timeout,
	})
	if !ai.Configured() {
		log.Printf("Assistant: %s is not set, chat and quote use fallbacks", aiSettings.APIKeyEnv)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}

	app := tui.NewApp(tui.NewTcellScreenDriver(screen), tui.Options{
		Shell: desk.Options{
			Store:            store,
			Catalog:          cat,
			DefaultWallpaper: shellSettings.DefaultWallpaper,
			ScrollDebounce:   shellSettings.ScrollDebounce,
			DoubleClick:      shellSettings.DoubleClick,
			Limits: desk.WindowLimits{
				MinWidth:  windowSettings.MinWidth,
				MinHeight: windowSettings.MinHeight,
				ZFloor:    shellSettings.WindowZFloor,
				Default: desk.WindowConfig{
					WidthPercent:  windowSettings.DefaultWidthPercent,
					HeightPercent: windowSettings.DefaultHeightPercent,
				},
			},
		},
		CellWidth:  termSettings.CellWidth,
		CellHeight: termSettings.CellHeight,
		Assistant:  ai,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if err := store.Flush(); err != nil {
		log.Printf("Storage: Flush failed: %v", err)
	}
	log.Println("nbtab stopped cleanly.")
	return nil
}
