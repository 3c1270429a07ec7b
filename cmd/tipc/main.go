package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tiplang/tipc/internal/analyzer"
	"github.com/tiplang/tipc/internal/config"
	"github.com/tiplang/tipc/internal/diagnostics"
	"github.com/tiplang/tipc/internal/idassign"
	"github.com/tiplang/tipc/internal/lexer"
	"github.com/tiplang/tipc/internal/parser"
	"github.com/tiplang/tipc/internal/pipeline"
	"github.com/tiplang/tipc/internal/prettyprinter"
)

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: tipc <command> [options] <file%s>

Commands:
  check    type-check the program (default)
  types    type-check and print the inferred declaration types
  print    parse and pretty-print the program

Options:
  -config <path>   read configuration from path instead of %s
  -collect         keep checking remaining functions after a type error
  -color <mode>    diagnostic colors: auto, always, never
`, config.SourceFileExt, config.ConfigFileName)
}

type options struct {
	command    string
	file       string
	configPath string
	collect    bool
	color      string
}

func parseArgs(args []string) (*options, error) {
	opts := &options{command: "check"}

	if len(args) > 0 {
		switch args[0] {
		case "check", "types", "print":
			opts.command = args[0]
			args = args[1:]
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name := strings.TrimLeft(arg, "-")
		switch {
		case arg != name && name == "collect":
			opts.collect = true
		case arg != name && name == "config":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("-config requires a path")
			}
			i++
			opts.configPath = args[i]
		case arg != name && name == "color":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("-color requires a mode")
			}
			i++
			opts.color = args[i]
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown option %s", arg)
		default:
			if opts.file != "" {
				return nil, fmt.Errorf("exactly one source file expected")
			}
			opts.file = arg
		}
	}
	if opts.file == "" {
		return nil, fmt.Errorf("no source file given")
	}
	if !isSourceFile(opts.file) {
		return nil, fmt.Errorf("%s is not a %s file", opts.file, config.SourceFileExt)
	}
	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	if opts.configPath != "" {
		return config.Load(opts.configPath)
	}
	// Look next to the source file first, then in the working directory.
	local := filepath.Join(filepath.Dir(opts.file), config.ConfigFileName)
	if _, err := os.Stat(local); err == nil {
		return config.Load(local)
	}
	return config.LoadIfPresent(config.ConfigFileName)
}

func run() int {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tipc: %v\n", err)
		printUsage()
		return 2
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tipc: %v\n", err)
		return 2
	}
	if opts.collect {
		cfg.Checker.CollectErrors = true
	}
	if opts.color != "" {
		cfg.Output.Color = opts.color
	}

	source, err := os.ReadFile(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tipc: %v\n", err)
		return 2
	}

	stages := []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
	}
	if opts.command != "print" {
		stages = append(stages,
			&idassign.IDProcessor{},
			&analyzer.CheckerProcessor{},
		)
	}

	ctx := pipeline.New(stages...).Run(&pipeline.PipelineContext{
		SourceCode: string(source),
		FilePath:   opts.file,
		Config:     cfg,
	})

	if len(ctx.Errors) > 0 {
		formatter := diagnostics.NewFormatter(os.Stderr, cfg.Output.Color)
		formatter.Print(ctx.Errors)
		return 1
	}

	switch opts.command {
	case "print":
		fmt.Print(prettyprinter.NewCodePrinter().Print(ctx.AstRoot))
	case "types":
		fmt.Print(prettyprinter.NewTypedPrinter(ctx.Solver).Print(ctx.AstRoot))
	default:
		if cfg.Output.Annotate {
			fmt.Print(prettyprinter.NewTypedPrinter(ctx.Solver).Print(ctx.AstRoot))
		}
	}
	return 0
}

func main() {
	os.Exit(run())
}
