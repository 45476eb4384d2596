package parser

import (
	"fmt"
	"os"

	"mapshim/internal/ast"
)

type Parser struct {
	filename string
	source   string
	tokens   []Token
	current  int
	errors   []ParseError
}

type ParseError struct {
	Message  string
	Position Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

func NewParser(filename string, tokens []Token) *Parser {
	return &Parser{
		filename: filename,
		tokens:   tokens,
	}
}

// NewSourceParser creates a parser that can slice verbatim text such as
// pragma directives out of the original source
func NewSourceParser(filename, source string, tokens []Token) *Parser {
	p := NewParser(filename, tokens)
	p.source = source
	return p
}

func (p *Parser) Errors() []ParseError {
	return p.errors
}

// ParseSource scans and parses one Solidity file and assigns node metadata
// from a fresh tracker
func ParseSource(path string, source string) (*ast.SourceUnit, []ParseError, []ScanError) {
	return ParseSourceWithTracker(path, source, ast.NewNodeTracker())
}

// ParseSourceWithTracker parses one file drawing node IDs from tracker, so
// several units parsed for one run never share an ID
func ParseSourceWithTracker(path string, source string, tracker *ast.NodeTracker) (*ast.SourceUnit, []ParseError, []ScanError) {
	scanner := NewFileScanner(path, source)
	tokens := scanner.ScanTokens()

	parser := NewSourceParser(path, source, tokens)
	unit := parser.ParseSourceUnit()

	mv := ast.NewMetadataVisitor(source, tracker)
	mv.AssignMetadata(unit, 0) // 0 = no parent

	return unit, parser.errors, scanner.errors
}

func ParseFile(path string, tracker *ast.NodeTracker) (*ast.SourceUnit, []ParseError, []ScanError, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	unit, parseErrs, scanErrs := ParseSourceWithTracker(path, string(source), tracker)
	return unit, parseErrs, scanErrs, nil
}
