// docdex-tui is an interactive terminal search over a documentation
// index. It loads the index in the background, searches as you type and
// prints the URL of the chosen entry on exit.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/config"
	logpkg "github.com/kailas-cloud/docdex/internal/logger"
	"github.com/kailas-cloud/docdex/internal/repository/docindex"
	"github.com/kailas-cloud/docdex/internal/repository/resultcache"
	"github.com/kailas-cloud/docdex/internal/transport/tui"
	searchuc "github.com/kailas-cloud/docdex/internal/usecase/search"
	"github.com/kailas-cloud/docdex/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		source   string
		baseURL  string
		debounce time.Duration
		timeout  time.Duration
		logFile  string
		logLevel string
		env      string
	)

	flagSet := pflag.NewFlagSet("docdex-tui", pflag.ContinueOnError)
	flagSet.StringVarP(&source, "index", "i", ".", "docs root, js/doc.js URL or index file")
	flagSet.StringVar(&baseURL, "base-url", "", "prefix for the printed URL (default: the docs root)")
	flagSet.DurationVar(&debounce, "debounce", searchuc.DefaultQuietPeriod, "quiet period before a search runs")
	flagSet.DurationVar(&timeout, "load-timeout", 30*time.Second, "index load timeout")
	flagSet.StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.StringVar(&env, "env", "", "read index source, debounce and log level from config/<env>.yaml")
	flagSet.Bool("version", false, "print version and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if v, _ := flagSet.GetBool("version"); v {
		fmt.Println(version.Info("docdex-tui"))
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	maxResults := searchuc.MaxResults
	if env != "" {
		cfg, err := config.Load(env)
		if err != nil {
			return err
		}
		// Explicit flags win over the config file.
		if !flagSet.Changed("index") {
			source = cfg.Index.Source
		}
		if !flagSet.Changed("debounce") {
			debounce = time.Duration(cfg.Search.DebounceMs) * time.Millisecond
		}
		if !flagSet.Changed("load-timeout") {
			timeout = time.Duration(cfg.Index.LoadTimeoutSec) * time.Second
		}
		if !flagSet.Changed("log-level") && cfg.Logging.Level != "" {
			logLevel = cfg.Logging.Level
		}
		maxResults = cfg.Search.MaxResults
	}

	// The terminal belongs to the TUI; logs go to a file or nowhere.
	logger, err := logpkg.NewFileLogger(logFile, logLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	location := docindex.Locate(source)
	if baseURL == "" {
		baseURL = docsRoot(location)
	}

	holder := docindex.NewHolder()
	cache := resultcache.New(resultcache.Config{Size: 256}, nil, nil, logger)
	searcher := searchuc.NewInstrumentedSearcher(
		searchuc.New(holder, cache, maxResults, logger),
		logger,
	)

	var program *tea.Program
	session := searchuc.NewSession(searcher, holder, debounce, func(e searchuc.Event) {
		program.Send(tui.EventMsg{Event: e})
	})
	defer session.Close()

	program = tea.NewProgram(tui.NewModel(session), tea.WithAltScreen())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	go func() {
		loader := docindex.NewLoader(&http.Client{Timeout: timeout}, logger)
		program.Send(loadIndex(ctx, loader, holder, location))
	}()

	final, err := program.Run()
	if err != nil {
		return err
	}

	logger.Info("Session finished", zap.String("selected", final.(tui.Model).Selected()))

	if href := final.(tui.Model).Selected(); href != "" {
		fmt.Println(hrefURL(baseURL, href))
	}
	return nil
}

// loadIndex loads and installs the index and reports the outcome as a
// message for the widget.
func loadIndex(ctx context.Context, loader *docindex.Loader, holder *docindex.Holder, location string) tea.Msg {
	program, err := loader.Load(ctx, location)
	if err != nil {
		return tui.LoadFailedMsg{Err: err}
	}
	if err := holder.Install(program); err != nil {
		return tui.LoadFailedMsg{Err: err}
	}
	return tui.IndexLoadedMsg{Stats: program.Root.Count()}
}

// docsRoot returns the directory or URL prefix that hrefs are relative to.
func docsRoot(location string) string {
	i := strings.LastIndex(location, "/")
	if i < 0 {
		return ""
	}
	return location[:i+1]
}

func hrefURL(base, href string) string {
	if base == "" {
		return href
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(href, "/")
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `docdex-tui: search API documentation from the terminal.

Type to search. Prefix a term with # for instance methods, . for class
methods, constructors and macros, or use Type::name to scope it.
Arrows move the selection, enter prints the entry URL, esc clears,
ctrl+c quits.

Usage:
  docdex-tui [flags]

Examples:
  docdex-tui --index ./docs
  docdex-tui --index https://crystal-lang.org/api/1.14.0/
  docdex-tui --env local --debounce 100ms

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
