// Copyright 2025 The PathServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs PathServe, a file path autocomplete server with match
highlighting, and its interactive CLI.

Each suggestion is a path plus the inclusive rune ranges that matched the
typed token. PathServe renders these as plain and highlighted runs followed
by an optional link built from a URL template, and runs a configurable action
when an entry is picked.

# Usage

Serve completions over stdin/stdout from a newline separated path list:

	pathserve serve --paths paths.txt

Serve from a SQLite build database with a filenames(name) table, speaking
MessagePack:

	pathserve serve --db build.db --codec msgpack

Try it out interactively:

	pathserve cli --paths paths.txt

Turn a suggestion response into an HTML fragment:

	pathserve render < response.json

# Configuration

A TOML file is created at ~/.config/pathserve/config.toml on first start:

	[widget]
	highlighting = true
	on_select = "log"
	url_template = "https://cs.example.org/search?q=file:{path}"

	[source]
	paths_file = ""
	sqlite_db = ""
	limit = 20
	cache_ttl_seconds = 30

	[server]
	max_limit = 64
	default_limit = 20
	min_prefix = 1
	max_prefix = 60
	codec = "json"

Use --config to point at another file.

# IPC Protocol

One request per line (JSON) or per MessagePack value:

	{"id": "r1", "token": "file_u", "limit": 10}

	{"id":"r1","token":"file_u","candidates":[{"path":"base/file_util.cc","matchRanges":[[5,10]]}],"count":1,"time_ms":0}

A {"command": "health"} request answers {"status": "ok"}.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "pathserve"
	gh      = "https://github.com/bastiangx/pathserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func showVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ PathServe ] File path completions, highlighted")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available commands")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the loaded source.
func showStartupInfo(paths int, configPath, codec string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" PathServe ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("paths: %d", paths)
	if configPath != "" {
		log.Infof("config: ( %s )", configPath)
	}
	log.Infof("codec: %s", codec)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
