// nasko CLI - runs NSKO bytecode programs and reports the final machine state
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/kutil/util"

	"github.com/chazu/nasko/config"
	"github.com/chazu/nasko/pkg/bytecode"
	"github.com/chazu/nasko/pkg/parser"
	"github.com/chazu/nasko/runner"
	"github.com/chazu/nasko/vm/report"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output (info-level logging)")
	trace := flag.Bool("trace", false, "Log every executed instruction")
	configPath := flag.String("config", "", "Config file (default: nearest nasko.toml)")
	reportPath := flag.String("report", "", "Write CBOR run reports to this file")
	disasm := flag.Bool("disasm", false, "Print a disassembly instead of running")
	noColor := flag.Bool("no-color", false, "Disable coloured output")
	workers := flag.Int("workers", 0, "Programs to run concurrently (default: config, then logical cores)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nasko [options] <bytecode path>...\n\n")
		fmt.Fprintf(os.Stderr, "Runs NSKO bytecode programs, raw binary or 3-digit decimal text.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nasko prog.nsko                  # Run one program\n")
		fmt.Fprintf(os.Stderr, "  nasko -disasm prog.nsko          # List its instructions\n")
		fmt.Fprintf(os.Stderr, "  nasko -report out.cbor a.nsko b.nsko  # Run both, save reports\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fail(newStderr(false), err)
	}

	stderr := newStderr(*noColor || !cfg.Output.Color)

	verbosity := cfg.Log.Verbosity
	if *verbose && verbosity < 1 {
		verbosity = 1
	}
	if *trace && verbosity < 2 {
		verbosity = 2
	}
	commonlog.Configure(verbosity, cfg.LogFile())

	if *workers > 0 {
		cfg.Runner.Workers = *workers
	}
	if *trace {
		cfg.Engine.Trace = true
	}

	jobs := make([]runner.Job, 0, len(paths))
	for _, path := range paths {
		fmt.Printf("checking validity of path: '%s'\n", path)
		if _, err := os.Stat(path); err != nil {
			fail(stderr, errors.New("file at path does not exist; you must provide a valid, existing path"))
		}

		fmt.Printf("parsing bytecode from file: %s\n", filepath.Base(path))
		program, err := readProgram(path)
		if err != nil {
			fail(stderr, err)
		}
		jobs = append(jobs, runner.Job{Name: path, Program: program})
	}

	if *disasm {
		for _, job := range jobs {
			fmt.Print(bytecode.DisassembleWithName(job.Program, job.Name))
		}
		return
	}

	pool := runner.New(cfg.Runner.Workers, cfg.EngineOptions()...)
	results, err := pool.Run(context.Background(), jobs)
	if err != nil {
		fail(stderr, err)
	}

	exitCode := 0
	reports := make([]*report.Report, 0, len(results))
	for _, res := range results {
		if len(results) > 1 {
			fmt.Printf("\n== %s ==\n", res.Name)
		}
		if res.Err != nil {
			printError(stderr, res.Err)
			exitCode = 1
		} else {
			describeEvents(os.Stdout, res.Events, cfg.Output.TimestampFormat)
			printRegisters(os.Stdout, res.Report)
			printMisc(os.Stdout, res.Report)
			if *verbose {
				printProfile(os.Stdout, res.Report)
			}
		}
		if res.Report == nil {
			res.Report = report.Failed(res.Name, res.Err)
		}
		reports = append(reports, res.Report)
	}

	if *reportPath != "" {
		if err := writeReports(*reportPath, reports); err != nil {
			fail(stderr, err)
		}
	}

	// Exit hooks flush and close the log writer.
	util.Exit(exitCode)
}

// loadConfig reads an explicit config file, or the nearest nasko.toml, or
// falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Default(), nil
	}
	cfg, err := config.FindAndLoad(wd)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}

// readProgram loads raw bytecode as is and parses anything else as the text
// format.
func readProgram(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return decodeProgram(path, data)
}

func decodeProgram(name string, data []byte) ([]byte, error) {
	if bytecode.HasHeader(data) {
		return data, nil
	}
	program, err := parser.Parse(name, string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return program, nil
}

func writeReports(path string, reports []*report.Report) error {
	data, err := report.MarshalBatch(reports)
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

func newStderr(plain bool) *termenv.Output {
	if plain {
		return termenv.NewOutput(os.Stderr, termenv.WithProfile(termenv.Ascii))
	}
	return termenv.NewOutput(os.Stderr)
}

func printError(out *termenv.Output, err error) {
	fmt.Fprintf(out, "%s %v\n", errorPrefix(out), err)
}

func errorPrefix(out *termenv.Output) string {
	return out.String("Error:").Foreground(out.Color("1")).String()
}

func fail(out *termenv.Output, err error) {
	printError(out, err)
	util.Exit(1)
}
