package naming

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"mapshim/internal/ast"
	"mapshim/internal/errors"
	"mapshim/internal/stdlib"
)

const (
	DefaultPrefix = "__mapshim_"

	// DefaultMaxSuffix bounds the numeric suffixes tried per name
	DefaultMaxSuffix = 1000
)

// Kind separates the namespaces of generated symbols
type Kind string

const (
	KindLib Kind = "lib"
	KindFn  Kind = "fn"
	KindTmp Kind = "tmp"
	KindArg Kind = "arg"
	KindVar Kind = "var"
)

var log = commonlog.GetLogger("mapshim.naming")

// Resolver hands out identifiers that collide with nothing declared or
// referenced in the input units, nothing predeclared by the language, and
// nothing it generated before. Output depends only on the input units and
// the sequence of requests.
type Resolver struct {
	prefix    string
	maxSuffix int
	reserved  map[string]bool // names appearing in the input
	taken     map[string]bool // reserved plus everything generated
	visible   map[string]bool // names usable unqualified at file level
	generated []string
}

type Option func(*Resolver)

func WithPrefix(prefix string) Option {
	return func(r *Resolver) {
		r.prefix = prefix
	}
}

func WithMaxSuffix(n int) Option {
	return func(r *Resolver) {
		r.maxSuffix = n
	}
}

func NewResolver(units []*ast.SourceUnit, opts ...Option) *Resolver {
	r := &Resolver{
		prefix:    DefaultPrefix,
		maxSuffix: DefaultMaxSuffix,
		reserved:  make(map[string]bool),
		taken:     make(map[string]bool),
		visible:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, name := range stdlib.GlobalNames() {
		r.reserve(name)
		r.visible[name] = true
	}
	for _, unit := range units {
		for _, item := range unit.Items {
			if name := declaredName(item); name != "" {
				r.visible[name] = true
			}
		}
		ast.Inspect(unit, func(n ast.Node) bool {
			for _, name := range namesOf(n) {
				r.reserve(name)
			}
			return true
		})
	}
	return r
}

func (r *Resolver) reserve(name string) {
	if name == "" {
		return
	}
	r.reserved[name] = true
	r.taken[name] = true
}

// declaredName is the name a file-level item declares
func declaredName(item ast.SourceUnitItem) string {
	switch d := item.(type) {
	case *ast.ContractDef:
		return d.Name.Value
	case *ast.StructDef:
		return d.Name.Value
	case *ast.EnumDef:
		return d.Name.Value
	case *ast.ErrorDef:
		return d.Name.Value
	}
	return ""
}

// namesOf lists the identifiers a node declares or references
func namesOf(n ast.Node) []string {
	switch n := n.(type) {
	case *ast.Ident:
		return []string{n.Value}
	case *ast.Identifier:
		return []string{n.Name}
	case *ast.MemberAccessExpr:
		return []string{n.Member}
	case *ast.UserDefinedTypeName:
		return strings.Split(n.Path, ".")
	case *ast.InheritanceSpecifier:
		return []string{n.Name}
	case *ast.ModifierInvocation:
		return []string{n.Name}
	case *ast.UsingForDirective:
		return strings.Split(n.Library, ".")
	case *ast.CallExpr:
		names := append([]string(nil), n.ArgNames...)
		for _, o := range n.Options {
			names = append(names, o.Name)
		}
		return names
	}
	return nil
}

// Prefix returns the prefix every generated name starts with
func (r *Resolver) Prefix() string {
	return r.prefix
}

// Reserve marks names as used, e.g. declarations added outside the resolver
func (r *Resolver) Reserve(names ...string) {
	for _, name := range names {
		if name != "" {
			r.taken[name] = true
			r.visible[name] = true
		}
	}
}

// IsTaken reports whether name is declared in the input or already generated
func (r *Resolver) IsTaken(name string) bool {
	return r.taken[name]
}

// FreshName returns prefix + kind + "_" + seed, made unique by appending
// _1, _2, ... The returned name is reserved.
func (r *Resolver) FreshName(kind Kind, seed string) (string, error) {
	name, err := pick(r.base(kind, seed), r.maxSuffix, func(name string) bool {
		return r.taken[name]
	})
	if err != nil {
		return "", err
	}
	r.taken[name] = true
	r.visible[name] = true
	r.generated = append(r.generated, name)
	return name, nil
}

// Generated returns every name handed out by FreshName, in order
func (r *Resolver) Generated() []string {
	return r.generated
}

func (r *Resolver) base(kind Kind, seed string) string {
	return r.prefix + string(kind) + "_" + sanitize(seed)
}

func pick(base string, maxSuffix int, taken func(string) bool) (string, error) {
	if !taken(base) {
		return base, nil
	}
	for i := 1; i <= maxSuffix; i++ {
		name := fmt.Sprintf("%s_%d", base, i)
		if !taken(name) {
			log.Debugf("name %s is taken, using %s", base, name)
			return name, nil
		}
	}
	return "", &errors.NameCollisionExhausted{Name: base, Attempts: maxSuffix}
}

// sanitize maps every character that cannot appear in an identifier to '_'
func sanitize(seed string) string {
	var b strings.Builder
	for _, r := range seed {
		if r == '_' || r == '$' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Scope allocates names that only need to be unique inside one generated
// declaration, such as the parameters of a helper function. Scoped names
// avoid the input names, so they never shadow a type the declaration uses.
type Scope struct {
	resolver *Resolver
	local    map[string]bool
}

func (r *Resolver) Scope() *Scope {
	return &Scope{resolver: r, local: make(map[string]bool)}
}

// Name returns a name unique within the scope
func (s *Scope) Name(kind Kind, seed string) (string, error) {
	name, err := pick(s.resolver.base(kind, seed), s.resolver.maxSuffix, func(name string) bool {
		return s.local[name] || s.resolver.reserved[name]
	})
	if err != nil {
		return "", err
	}
	s.local[name] = true
	return name, nil
}

// Member returns seed itself, or seed with the first free numeric suffix.
// Members of a file-level declaration shadow the file-level names inside
// it, so they avoid those, the language globals and every generated name.
func (s *Scope) Member(seed string) (string, error) {
	name, err := pick(sanitize(seed), s.resolver.maxSuffix, func(name string) bool {
		return s.local[name] || s.resolver.visible[name]
	})
	if err != nil {
		return "", err
	}
	s.local[name] = true
	return name, nil
}
