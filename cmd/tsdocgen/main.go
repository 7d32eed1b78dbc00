// Command tsdocgen extracts API documentation from TypeScript and
// JavaScript sources and renders it as Markdown.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnana997/tsdocgen/pkg/checker"
	mcpserver "github.com/gnana997/tsdocgen/pkg/mcp"
	"github.com/gnana997/tsdocgen/pkg/render"
	"github.com/gnana997/tsdocgen/pkg/util"
	"github.com/gnana997/tsdocgen/pkg/workspace"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "extract":
		err = runExtract(args)
	case "render":
		err = runRender(args)
	case "watch":
		err = runWatch(args)
	case "serve":
		err = runServe(args)
	case "version":
		fmt.Printf("tsdocgen %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tsdocgen %s: %v\n", command, err)
		os.Exit(1)
	}
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	root         string
	out          string
	logLevel     string
	includeDecls bool
}

func registerCommon(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{}
	fs.StringVar(&cf.root, "root", ".", "workspace root directory")
	fs.StringVar(&cf.out, "out", "", "output file (default stdout)")
	fs.StringVar(&cf.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&cf.includeDecls, "include-declarations", false, "also extract from .d.ts declaration files")
	return cf
}

// setup loads the project config, installs the logger, and creates the
// builder every subcommand runs on.
func setup(cf *commonFlags) (*workspace.Builder, workspace.Config, *ProjectConfig, error) {
	cfg, err := loadProjectConfig(cf.root)
	if err != nil {
		return nil, workspace.Config{}, nil, fmt.Errorf("failed to load project config: %w", err)
	}

	var cfgLevel, cfgFormat string
	includeDecls := cf.includeDecls
	if cfg != nil {
		cfgLevel = cfg.LogLevel
		cfgFormat = cfg.LogFormat
		includeDecls = includeDecls || cfg.IncludeDeclarations
	}

	logger := util.NewLogger(util.LoggerConfig{
		Level:  util.LogLevel(resolveString(cf.logLevel, cfgLevel, string(util.LevelInfo))),
		Format: util.LogFormat(resolveString("", cfgFormat, string(util.FormatText))),
		Output: os.Stderr,
	})
	util.SetDefault(logger)

	builder, err := workspace.NewBuilder(workspace.BuilderConfig{
		Options: checker.CompilerOptions{IncludeDeclarations: includeDecls},
		Logger:  logger,
	})
	if err != nil {
		return nil, workspace.Config{}, nil, err
	}

	return builder, workspaceConfig(cfg), cfg, nil
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	cf := registerCommon(fs)
	fs.Parse(args)

	builder, wsCfg, cfg, err := setup(cf)
	if err != nil {
		return err
	}
	defer builder.Close()

	entries, err := builder.BuildDir(cf.root, wsCfg)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	return writeOutput(outputPath(cf, cfg), append(data, '\n'))
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	cf := registerCommon(fs)
	fs.Parse(args)

	builder, wsCfg, cfg, err := setup(cf)
	if err != nil {
		return err
	}
	defer builder.Close()

	entries, err := builder.BuildDir(cf.root, wsCfg)
	if err != nil {
		return err
	}

	return writeOutput(outputPath(cf, cfg), []byte(render.Markdown(entries)))
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	cf := registerCommon(fs)
	fs.Parse(args)

	builder, wsCfg, cfg, err := setup(cf)
	if err != nil {
		return err
	}
	defer builder.Close()

	out := outputPath(cf, cfg)
	rebuild := func() {
		entries, err := builder.BuildDir(cf.root, wsCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
			return
		}
		if err := writeOutput(out, []byte(render.Markdown(entries))); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write output: %v\n", err)
		}
	}
	rebuild()

	watcher, err := workspace.NewWatcher(builder, workspace.DefaultWatchOptions(),
		func(string) { rebuild() }, nil)
	if err != nil {
		return err
	}
	if err := watcher.Start(cf.root); err != nil {
		return err
	}
	defer watcher.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cf := registerCommon(fs)
	fs.Parse(args)

	builder, wsCfg, _, err := setup(cf)
	if err != nil {
		return err
	}
	defer builder.Close()

	srv := mcpserver.NewServer(builder, wsCfg, nil)
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// outputPath applies the flag > config chain. Empty means stdout.
func outputPath(cf *commonFlags, cfg *ProjectConfig) string {
	var cfgOut string
	if cfg != nil {
		cfgOut = cfg.Output
	}
	return resolveString(cf.out, cfgOut, "")
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printUsage() {
	fmt.Println("Usage: tsdocgen <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  extract    Extract documentation entries as JSON")
	fmt.Println("  render     Render documentation as Markdown")
	fmt.Println("  watch      Re-render on file changes")
	fmt.Println("  serve      Start MCP server on stdin/stdout")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Common flags:")
	fmt.Println("  -root <dir>               workspace root (default \".\")")
	fmt.Println("  -out <file>               output file (default stdout)")
	fmt.Println("  -log-level <level>        debug, info, warn, error")
	fmt.Println("  -include-declarations     also extract from .d.ts files")
}
