// Package config reads the YAML file naming the maps to interpose.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	yamlast "github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"mapshim/internal/ast"
	"mapshim/internal/errors"
	"mapshim/internal/instrument"
	"mapshim/internal/interpose"
)

// File is the decoded configuration
type File struct {
	Version string        `yaml:"version"`
	Prefix  string        `yaml:"prefix"`
	Aux     string        `yaml:"aux"`
	Targets []TargetEntry `yaml:"targets"`

	filename string
	root     *yamlast.File
}

// TargetEntry names one map. Path steps are struct member names; null
// steps stand for one index level.
type TargetEntry struct {
	Contract string    `yaml:"contract"`
	Variable string    `yaml:"variable"`
	Path     []*string `yaml:"path"`
}

// Error reports an invalid configuration
type Error struct {
	Message  string
	Position ast.Position
}

var _ errors.Reportable = &Error{}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Position.Filename, e.Message)
}

func (e *Error) CompilerError() errors.CompilerError {
	return errors.NewError(errors.ErrorInvalidConfig, e.Message, e.Position).Build()
}

// Load reads and validates the configuration at path
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: err.Error(), Position: ast.Position{Filename: path}}
	}
	return Parse(path, data)
}

// Parse decodes and validates configuration text. Unknown keys are errors.
func Parse(filename string, data []byte) (*File, error) {
	root, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, &Error{
			Message:  yaml.FormatError(err, false, false),
			Position: ast.Position{Filename: filename},
		}
	}

	f := &File{filename: filename, root: root}
	if len(root.Docs) > 0 && root.Docs[0].Body != nil {
		if err := yaml.NodeToValue(root.Docs[0].Body, f, yaml.Strict()); err != nil {
			return nil, &Error{
				Message:  yaml.FormatError(err, false, false),
				Position: ast.Position{Filename: filename},
			}
		}
	}

	if f.Version != "" {
		if _, err := instrument.CanonicalVersion(f.Version); err != nil {
			return nil, f.invalid("$.version", "invalid version %q", f.Version)
		}
	}
	if _, err := f.Interposition(); err != nil {
		return nil, err
	}
	return f, nil
}

// Interposition converts the target entries into interposer targets
func (f *File) Interposition() ([]interpose.Target, error) {
	var targets []interpose.Target
	for i, entry := range f.Targets {
		at := fmt.Sprintf("$.targets[%d]", i)
		if entry.Contract == "" {
			return nil, f.invalid(at, "target %d has no contract", i)
		}
		if entry.Variable == "" {
			return nil, f.invalid(at, "target %d has no variable", i)
		}
		target := interpose.Target{
			Contract: entry.Contract,
			Variable: entry.Variable,
			Path:     entry.Path,
		}
		// the textual form goes through the same checks as -target
		if _, err := interpose.ParseTarget(target.String()); err != nil {
			return nil, f.invalid(at, "%s", err)
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// Options returns the context options the file sets
func (f *File) Options() []instrument.Option {
	var opts []instrument.Option
	if f.Version != "" {
		opts = append(opts, instrument.WithVersion(f.Version))
	}
	if f.Prefix != "" {
		opts = append(opts, instrument.WithPrefix(f.Prefix))
	}
	if f.Aux != "" {
		opts = append(opts, instrument.WithAuxPath(f.Aux))
	}
	return opts
}

func (f *File) invalid(at, format string, args ...any) *Error {
	return &Error{
		Message:  fmt.Sprintf(format, args...),
		Position: f.position(at),
	}
}

// position locates a YAML path in the parsed file
func (f *File) position(at string) ast.Position {
	pos := ast.Position{Filename: f.filename}
	if f.root == nil {
		return pos
	}
	path, err := yaml.PathString(at)
	if err != nil {
		return pos
	}
	node, err := path.FilterFile(f.root)
	if err != nil || node == nil {
		return pos
	}
	if token := node.GetToken(); token != nil && token.Position != nil {
		pos.Line = token.Position.Line
		pos.Column = token.Position.Column
		pos.Offset = token.Position.Offset
	}
	return pos
}
