package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/pathserve/internal/cli"
	"github.com/bastiangx/pathserve/internal/logger"
	"github.com/bastiangx/pathserve/internal/utils"
	"github.com/bastiangx/pathserve/pkg/complete"
	"github.com/bastiangx/pathserve/pkg/config"
	"github.com/bastiangx/pathserve/pkg/render"
	"github.com/bastiangx/pathserve/pkg/server"
	"github.com/bastiangx/pathserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type rootFlags struct {
	configPath string
	debug      bool
	pathsFile  string
	sqliteDB   string

	cfg        *config.Config
	loadedPath string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   AppName,
		Short: "PathServe - file path completions with match highlighting",
		Long: `PathServe answers partial file names with matching paths, marks the
matched characters and links every entry to a configurable URL.

  Source Code available at:
	` + gh,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Configure(f.debug)
			cfg, path, err := config.LoadConfigWithPriority(f.configPath)
			if err != nil {
				return err
			}
			if f.pathsFile != "" {
				cfg.Source.PathsFile = f.pathsFile
			}
			if f.sqliteDB != "" {
				cfg.Source.SQLiteDB = f.sqliteDB
			}
			f.cfg, f.loadedPath = cfg, path
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Path to a TOML config file")
	pf.BoolVarP(&f.debug, "debug", "d", false, "Toggle debug logging")
	pf.StringVar(&f.pathsFile, "paths", "", "Newline separated path list (overrides source.paths_file)")
	pf.StringVar(&f.sqliteDB, "db", "", "SQLite database with a filenames table (overrides source.sqlite_db)")

	root.AddCommand(newServeCmd(f), newCLICmd(f), newRenderCmd(f), newConfigCmd(f), newVersionCmd())
	return root
}

func newServeCmd(f *rootFlags) *cobra.Command {
	var codec string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer completion requests on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if codec != "" {
				f.cfg.Server.Codec = codec
			}
			src, count, closeFn, err := buildSource(cmd.Context(), f.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			showStartupInfo(count, f.loadedPath, f.cfg.Server.Codec)
			srv := server.NewServer(src, f.cfg.Server, os.Stdin, os.Stdout)
			return srv.Start(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&codec, "codec", "", "IPC codec: json or msgpack (overrides server.codec)")
	return cmd
}

func newCLICmd(f *rootFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "cli",
		Short: "Interactive prompt for trying out completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit > 0 {
				f.cfg.Source.Limit = limit
			}
			src, _, closeFn, err := buildSource(cmd.Context(), f.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			w, err := complete.Setup(f.cfg, src)
			if err != nil {
				return err
			}
			st := f.cfg.Style
			styles := render.NewStyles(st.PlainFg, st.HighlightFg, st.LinkFg, st.HighlightBold)
			styled := term.IsTerminal(int(os.Stdout.Fd()))

			h := cli.NewInputHandler(w, os.Stdin, os.Stdout, styled, styles, st.Hyperlinks)
			if err := h.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("cli: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Number of suggestions to show (overrides source.limit)")
	return cmd
}

func newRenderCmd(f *rootFlags) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a suggestion response as an HTML fragment",
		Long: `Reads a suggestion response (a JSON array of {path, matchRanges} records or
the grouped remote envelope) from stdin or --input and writes one HTML row per
candidate to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = os.Stdin
			if input != "" {
				file, err := os.Open(input)
				if err != nil {
					return err
				}
				defer file.Close()
				r = file
			}
			w, err := complete.Setup(f.cfg, suggest.Static(nil))
			if err != nil {
				return err
			}
			return renderHTML(r, cmd.OutOrStdout(), w.Options())
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Read the response from this file instead of stdin")
	return cmd
}

func newConfigCmd(f *rootFlags) *cobra.Command {
	var rebuild bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the config file in use, or reset it to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := f.loadedPath
			if rebuild {
				rebuilt, err := config.RebuildConfigFile()
				if err != nil {
					return fmt.Errorf("rebuild config: %w", err)
				}
				log.Debugf("Rebuilt config file at: %s", rebuilt)
				path = rebuilt
			}
			if path == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "(built-in defaults)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.AbsPath(path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Overwrite the default config file with defaults")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Shows version info",
		// The banner does not need config.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			showVersion()
		},
	}
}

// buildSource loads the configured path lists into a trie, cached when the
// config asks for it. The returned func releases the cache.
func buildSource(ctx context.Context, cfg *config.Config) (suggest.Source, int, func(), error) {
	var paths []string
	if cfg.Source.PathsFile != "" {
		list, err := suggest.LoadPathFile(cfg.Source.PathsFile)
		if err != nil {
			return nil, 0, nil, err
		}
		paths = append(paths, list...)
	}
	if cfg.Source.SQLiteDB != "" {
		list, err := suggest.LoadSQLite(ctx, cfg.Source.SQLiteDB)
		if err != nil {
			return nil, 0, nil, err
		}
		paths = append(paths, list...)
	}
	if len(paths) == 0 {
		log.Warn("No paths loaded, set source.paths_file or source.sqlite_db")
	}

	trie := suggest.NewTrieSource(paths)
	log.Debugf("Indexed %d paths", trie.Len())

	ttl := cfg.CacheTTL()
	if ttl <= 0 {
		return trie, trie.Len(), func() {}, nil
	}
	cached := suggest.NewCached(trie, ttl)
	return cached, trie.Len(), func() {
		log.Debug("Cache stats", "stats", cached.Stats())
		cached.Close()
	}, nil
}

// renderHTML decodes a suggestion response and writes one row per candidate.
func renderHTML(r io.Reader, w io.Writer, opts render.Options) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	candidates, err := suggest.DecodeResponse(data)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	for _, c := range candidates {
		t := render.NewHTMLTarget(render.DefaultHTMLClasses())
		render.NewEntry(c, opts).RenderInto(t)
		if err := t.Render(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
