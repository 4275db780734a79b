package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/CutieJi/citation-generator/pkg/bibliography"
	"github.com/CutieJi/citation-generator/pkg/citation"
	"github.com/CutieJi/citation-generator/pkg/config"
	"github.com/CutieJi/citation-generator/pkg/render"
)

var version = "0.1.0"

// Global state shared by subcommands, set up in PersistentPreRunE.
var (
	logger     *zap.Logger
	settings   config.Settings
	configPath string
	verbose    bool
)

// errReported marks a failure that has already been shown to the user.
var errReported = errors.New("reported")

// clipboardWriteAll is replaced in tests.
var clipboardWriteAll = clipboard.WriteAll

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "citegen",
		Short: "Format book and website references",
		Long: `citegen formats bibliographic references in APA, MLA or Chicago style.

It builds single citations from flags, renders whole YAML bibliographies,
and can keep a bibliography rendered while you edit it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zapConfig := zap.NewProductionConfig()
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose {
				zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zapConfig.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			if configPath == "" {
				configPath, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}
			var reset []string
			settings, reset, err = config.Load(configPath)
			if err != nil {
				// Defaults keep "config set" usable for rewriting the file.
				logger.Warn("Ignoring unreadable settings", zap.String("path", configPath), zap.Error(err))
				settings = config.Default()
			}
			if len(reset) > 0 {
				logger.Warn("Invalid settings reset to defaults",
					zap.String("path", configPath),
					zap.Strings("keys", reset))
			}
			logger.Debug("Loaded settings",
				zap.String("path", configPath),
				zap.String("style", string(settings.Style)),
				zap.String("theme", string(settings.Theme)))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default $XDG_CONFIG_HOME/citegen/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(citeCmd())
	rootCmd.AddCommand(authorsCmd())
	rootCmd.AddCommand(dateCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(configCmd())

	return rootCmd
}

// styleFlag resolves --style, defaulting to the configured style.
func styleFlag(cmd *cobra.Command) (citation.Style, error) {
	name, _ := cmd.Flags().GetString("style")
	if name == "" {
		return settings.Style, nil
	}
	return citation.ParseStyle(name)
}

// newRenderer builds a renderer from --format, defaulting to the configured output.
func newRenderer(cmd *cobra.Command) (*render.Renderer, error) {
	output := settings.Output
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		output = config.Output(format)
	}
	switch output {
	case config.OutputANSI, config.OutputText, config.OutputHTML:
	default:
		return nil, fmt.Errorf("unknown format: %s (use ansi, text or html)", output)
	}
	return render.New(output, settings.Theme), nil
}

func citeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "cite [book|website]",
		Short:     "Format a single reference",
		ValidArgs: []string{string(citation.SourceBook), string(citation.SourceWebsite)},
		Long: `Format a single book or website reference.

Book citations need --author, --title, --publisher and --year.
Website citations need --title, --site-name, --url and --access-date
(YYYY-MM-DD); --author is optional.

Example:
  citegen cite book --author "Smith, Jones" --title "T" --publisher "P" --year 2020
  citegen cite website --title "T" --site-name "S" --url http://x --access-date 2023-01-01 --style mla
  citegen cite book ... --all-styles --copy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := settings.Source
			if len(args) > 0 {
				var err error
				if source, err = citation.ParseSourceType(args[0]); err != nil {
					return err
				}
			}

			style, err := styleFlag(cmd)
			if err != nil {
				return err
			}
			allStyles, _ := cmd.Flags().GetBool("all-styles")
			copyResult, _ := cmd.Flags().GetBool("copy")

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			fields := citation.Fields{}
			fields.Author, _ = cmd.Flags().GetString("author")
			fields.Title, _ = cmd.Flags().GetString("title")
			fields.Publisher, _ = cmd.Flags().GetString("publisher")
			fields.Year, _ = cmd.Flags().GetString("year")
			fields.SiteName, _ = cmd.Flags().GetString("site-name")
			fields.URL, _ = cmd.Flags().GetString("url")
			fields.AccessDate, _ = cmd.Flags().GetString("access-date")

			styles := []citation.Style{style}
			if allStyles {
				styles = citation.Styles()
			}

			out := cmd.OutOrStdout()
			var copied []string
			for i, style := range styles {
				text, err := citation.Build(source, style, fields)
				if err != nil {
					logger.Debug("Citation rejected", zap.String("source", string(source)), zap.Error(err))
					fmt.Fprintln(cmd.ErrOrStderr(), renderer.Error(err))
					return errReported
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, renderer.Citation(style, text))
				copied = append(copied, renderer.Plain(text))
			}

			if copyResult {
				copyToClipboard(out, renderer, copied)
			}
			return nil
		},
	}

	cmd.Flags().String("author", "", "Author names, comma separated")
	cmd.Flags().String("title", "", "Title of the book or page")
	cmd.Flags().String("publisher", "", "Publisher (books)")
	cmd.Flags().String("year", "", "Publication year (books)")
	cmd.Flags().String("site-name", "", "Website name (websites)")
	cmd.Flags().String("url", "", "Page URL (websites)")
	cmd.Flags().String("access-date", "", "Date accessed as YYYY-MM-DD (websites)")
	cmd.Flags().StringP("style", "s", "", "Citation style: apa, mla or chicago")
	cmd.Flags().Bool("all-styles", false, "Print the citation in every style")
	cmd.Flags().StringP("format", "f", "", "Output format: ansi, text or html")
	cmd.Flags().Bool("copy", false, "Copy the citation to the clipboard")

	return cmd
}

// copyToClipboard copies the citations, one per line. Clipboard failures
// are logged and reported but never fail the command.
func copyToClipboard(out io.Writer, renderer *render.Renderer, citations []string) {
	if err := clipboardWriteAll(strings.Join(citations, "\n")); err != nil {
		logger.Warn("Failed to copy citation", zap.Error(err))
		fmt.Fprintln(out, renderer.Note("Could not copy to clipboard: "+err.Error()))
		return
	}
	fmt.Fprintln(out, renderer.Note("Copied to clipboard."))
}

func authorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authors <names>",
		Short: "Format a comma-separated author list",
		Long: `Format a comma-separated author list the way a style joins names.

Example:
  citegen authors "Smith, Jones, Lee" --style chicago`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := styleFlag(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), citation.FormatAuthors(args[0], style))
			return nil
		},
	}
	cmd.Flags().StringP("style", "s", "", "Citation style: apa, mla or chicago")
	return cmd
}

func dateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date <YYYY-MM-DD>",
		Short: "Format an access date",
		Long: `Format a calendar date the way a style writes access dates.

Example:
  citegen date 2023-03-05 --style mla`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := styleFlag(cmd)
			if err != nil {
				return err
			}
			formatted := citation.FormatDate(args[0], style)
			if formatted == "" {
				return fmt.Errorf("unparsable date %q (expected YYYY-MM-DD)", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatted)
			return nil
		},
	}
	cmd.Flags().StringP("style", "s", "", "Citation style: apa, mla or chicago")
	return cmd
}

// newBibliographyRenderer builds the renderer used by batch and watch.
func newBibliographyRenderer(cmd *cobra.Command) (*bibliography.Renderer, error) {
	workers, _ := cmd.Flags().GetInt("workers")
	opts := []bibliography.RendererOption{
		bibliography.WithWorkers(workers),
		bibliography.WithDefaultStyle(settings.Style),
	}
	if name, _ := cmd.Flags().GetString("style"); name != "" {
		style, err := citation.ParseStyle(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bibliography.WithStyle(style))
	}
	return bibliography.NewRenderer(logger, opts...), nil
}

// printResults writes every result and returns how many failed.
func printResults(out, errOut io.Writer, renderer *render.Renderer, results []bibliography.Result) int {
	printed := 0
	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintf(errOut, "[%s] %s\n", result.ID, renderer.Error(result.Err))
			continue
		}
		if printed > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "[%s] %s\n", result.ID, renderer.Citation(result.Style, result.Citation))
		printed++
	}
	return bibliography.Failed(results)
}

func addBibliographyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("style", "s", "", "Force every entry into this style")
	cmd.Flags().StringP("format", "f", "", "Output format: ansi, text or html")
	cmd.Flags().Int("workers", bibliography.DefaultWorkers, "Entries rendered concurrently")
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <bibliography.yaml>",
		Short: "Render every entry of a bibliography file",
		Long: `Render every entry of a YAML bibliography file.

File format:
  style: apa            # optional default
  entries:
    - id: smith2020
      type: book
      author: Smith, Jones
      title: T
      publisher: P
      year: "2020"
    - type: website
      style: mla          # optional per-entry style
      title: T
      site_name: S
      url: http://x
      access_date: "2023-01-01"

Example:
  citegen batch refs.yaml --format text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			bibRenderer, err := newBibliographyRenderer(cmd)
			if err != nil {
				return err
			}

			file, err := bibliography.Load(args[0])
			if err != nil {
				return err
			}
			results, err := bibRenderer.Render(cmd.Context(), file)
			if err != nil {
				return err
			}

			if failed := printResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), renderer, results); failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d entries failed\n", failed, len(results))
				return errReported
			}
			return nil
		},
	}
	addBibliographyFlags(cmd)
	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <bibliography.yaml>",
		Short: "Re-render a bibliography file whenever it changes",
		Long: `Render a bibliography file, then render it again every time it is saved.
Stop with Ctrl-C.

Example:
  citegen watch refs.yaml --style chicago`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			bibRenderer, err := newBibliographyRenderer(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			show := func(results []bibliography.Result, err error) {
				if err != nil {
					fmt.Fprintln(errOut, renderer.Error(err))
					return
				}
				printResults(out, errOut, renderer, results)
				fmt.Fprintln(out, renderer.Note("--"))
			}

			file, err := bibliography.Load(args[0])
			if err != nil {
				return err
			}
			show(bibRenderer.Render(ctx, file))

			watcher, err := bibliography.NewWatcher(args[0], bibRenderer, logger, show)
			if err != nil {
				return err
			}
			if err := watcher.Start(ctx); err != nil {
				return err
			}
			defer watcher.Stop()

			<-ctx.Done()
			return nil
		},
	}
	addBibliographyFlags(cmd)
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change saved preferences",
		Long: `Show or change saved preferences: default style, source type,
display theme and output format.

Example:
  citegen config set style mla
  citegen config set theme dark
  citegen config get style`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, key := range config.Keys() {
				value, _ := settings.Get(key)
				fmt.Fprintf(out, "%s: %s\n", key, value)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), configPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "get <key>",
		Short:     "Print one setting",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := settings.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change and save one setting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(configPath, settings); err != nil {
				return err
			}
			logger.Info("Saved setting", zap.String("key", args[0]), zap.String("path", configPath))
			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}
