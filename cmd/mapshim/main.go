// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"mapshim/internal/ast"
	"mapshim/internal/config"
	"mapshim/internal/errors"
	"mapshim/internal/instrument"
	"mapshim/internal/interpose"
	"mapshim/internal/parser"
)

// targetList collects repeated -target flags
type targetList []interpose.Target

func (l *targetList) String() string {
	var parts []string
	for _, t := range *l {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ",")
}

func (l *targetList) Set(text string) error {
	target, err := interpose.ParseTarget(text)
	if err != nil {
		return err
	}
	*l = append(*l, target)
	return nil
}

func main() {
	var (
		targets    targetList
		configPath = flag.String("config", "", "YAML file listing targets")
		version    = flag.String("version", "", "solidity version, overriding the pragma")
		prefix     = flag.String("prefix", "", "prefix of generated identifiers")
		outDir     = flag.String("o", "", "write instrumented units into this directory instead of stdout")
		verbose    = flag.Int("v", 0, "log verbosity")
	)
	flag.Var(&targets, "target", "map to interpose, as Contract.variable[.member|[]]... (repeatable)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mapshim [flags] <file.sol>...")
		flag.PrintDefaults()
	}
	flag.Parse()

	commonlog.Configure(*verbose, nil)
	color.NoColor = !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd())

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	startTime := time.Now()
	sources := make(map[string]string)

	var opts []instrument.Option
	if *configPath != "" {
		file, err := config.Load(*configPath)
		if err != nil {
			fail(sources, err)
		}
		fromFile, err := file.Interposition()
		if err != nil {
			fail(sources, err)
		}
		targets = append(fromFile, targets...)
		opts = append(opts, file.Options()...)
	}
	// flags override the file
	if *version != "" {
		opts = append(opts, instrument.WithVersion(*version))
	}
	if *prefix != "" {
		opts = append(opts, instrument.WithPrefix(*prefix))
	}
	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "no targets given; use -target or -config")
		os.Exit(2)
	}

	units, ok := parseFiles(flag.Args(), sources)
	if !ok {
		color.Red("Parsing failed after %s", formatDuration(time.Since(startTime)))
		os.Exit(1)
	}

	ctx, err := instrument.New(units, opts...)
	if err != nil {
		fail(sources, err)
	}
	if err := interpose.Interpose(ctx, targets, units); err != nil {
		fail(sources, err)
	}

	if err := write(*outDir, append(units, ctx.Aux)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *outDir != "" {
		color.Green("Interposed %d targets in %s", len(targets), formatDuration(time.Since(startTime)))
	}
}

func parseFiles(paths []string, sources map[string]string) ([]*ast.SourceUnit, bool) {
	var units []*ast.SourceUnit
	ok := true
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
			os.Exit(1)
		}
		sources[path] = string(source)

		unit, parseErrors, scanErrors := parser.ParseSource(path, string(source))
		var reported []errors.CompilerError
		for _, e := range scanErrors {
			reported = append(reported,
				errors.NewError(errors.ErrorInvalidToken, e.Message, position(path, e.Position)).
					WithLength(e.Length).
					Build())
		}
		for _, e := range parseErrors {
			reported = append(reported,
				errors.NewError(errors.ErrorUnexpectedToken, e.Message, position(path, e.Position)).Build())
		}
		if len(reported) > 0 {
			fmt.Fprint(os.Stderr, errors.NewErrorReporter(path, string(source)).FormatErrors(reported))
			ok = false
		}
		units = append(units, unit)
	}
	return units, ok
}

func position(path string, pos parser.Position) ast.Position {
	return ast.Position{Filename: path, Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
}

// fail reports err against the source it points into and exits
func fail(sources map[string]string, err error) {
	compilerError, ok := errors.AsCompilerError(err)
	if !ok {
		color.Red("error: %v", err)
		os.Exit(1)
	}
	filename := compilerError.Position.Filename
	reporter := errors.NewErrorReporter(filename, sources[filename])
	fmt.Fprint(os.Stderr, reporter.FormatError(compilerError))
	os.Exit(1)
}

func write(dir string, units []*ast.SourceUnit) error {
	if dir == "" {
		for _, unit := range units {
			fmt.Printf("// %s\n%s\n", unit.Path, unit.String())
		}
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, unit := range units {
		path := filepath.Join(dir, filepath.Base(unit.Path))
		if err := os.WriteFile(path, []byte(unit.String()), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	default:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	}
}
