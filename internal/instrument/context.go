package instrument

import (
	"regexp"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/mod/semver"
	"golang.org/x/xerrors"

	"mapshim/internal/ast"
	"mapshim/internal/naming"
)

const (
	// DefaultVersion is assumed when no unit carries a solidity pragma
	DefaultVersion = "v0.8.0"

	// DefaultAuxPath names the unit generated declarations are emitted into
	DefaultAuxPath = "mapshim_libraries.sol"
)

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Context is the state of one instrumentation run: the auxiliary unit that
// receives generated declarations, the signature cache, the naming
// resolver and the language version. It is not safe for concurrent use;
// independent runs each get their own Context.
type Context struct {
	Aux     *ast.SourceUnit
	Naming  *naming.Resolver
	Log     commonlog.Logger
	Tracker *ast.NodeTracker

	version string
	cache   *Cache

	auxPath      string
	namingOpts   []naming.Option
	explicitVers string
}

type Option func(*Context)

// WithVersion overrides the version read from the input pragmas
func WithVersion(version string) Option {
	return func(c *Context) {
		c.explicitVers = version
	}
}

func WithPrefix(prefix string) Option {
	return func(c *Context) {
		c.namingOpts = append(c.namingOpts, naming.WithPrefix(prefix))
	}
}

func WithMaxSuffix(n int) Option {
	return func(c *Context) {
		c.namingOpts = append(c.namingOpts, naming.WithMaxSuffix(n))
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(c *Context) {
		c.Log = log
	}
}

func WithAuxPath(path string) Option {
	return func(c *Context) {
		c.auxPath = path
	}
}

// New creates the context for instrumenting units. The units are
// renumbered into the context's node ID space.
func New(units []*ast.SourceUnit, opts ...Option) (*Context, error) {
	c := &Context{
		Log:     commonlog.GetLogger("mapshim.instrument"),
		Tracker: ast.NewNodeTracker(),
		cache:   NewCache(),
		auxPath: DefaultAuxPath,
	}
	for _, opt := range opts {
		opt(c)
	}

	version := c.explicitVers
	if version == "" {
		version = pragmaVersion(units)
	}
	canonical, err := CanonicalVersion(version)
	if err != nil {
		return nil, err
	}
	c.version = canonical

	for _, unit := range units {
		ast.Renumber(c.Tracker, unit, 0)
	}
	c.Naming = naming.NewResolver(units, c.namingOpts...)

	c.Aux = &ast.SourceUnit{Path: c.auxPath}
	if pragma := solidityPragma(units); pragma != nil {
		c.Aux.Items = append(c.Aux.Items, &ast.PragmaDirective{Text: pragma.Text})
	}
	ast.AssignGeneratedMetadata(c.Tracker, c.Aux, 0)

	c.Log.Debugf("instrumenting %d units at solidity %s", len(units), c.version)
	return c, nil
}

// CanonicalVersion turns "0.8", "0.8.19" or "v0.8.19" into "v0.8.19" form
func CanonicalVersion(version string) (string, error) {
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", xerrors.Errorf("invalid solidity version %q", version)
	}
	return semver.Canonical(v), nil
}

// Version returns the language version in "v0.8.19" form
func (c *Context) Version() string {
	return c.version
}

// AtLeast reports whether the language version is at least version
func (c *Context) AtLeast(version string) bool {
	v, err := CanonicalVersion(version)
	if err != nil {
		return false
	}
	return semver.Compare(c.version, v) >= 0
}

// CheckedArithmetic reports whether arithmetic reverts on overflow by
// default, which makes unchecked blocks meaningful
func (c *Context) CheckedArithmetic() bool {
	return c.AtLeast("0.8.0")
}

// Cache returns the run's signature cache
func (c *Context) Cache() *Cache {
	return c.cache
}

// Emit appends a generated declaration to the auxiliary unit
func (c *Context) Emit(item ast.SourceUnitItem) {
	ast.AssignGeneratedMetadata(c.Tracker, item, ast.ID(c.Aux))
	c.Aux.Items = append(c.Aux.Items, item)
}

// Track gives IDs to every node of a generated subtree lacking one
func (c *Context) Track(node ast.Node, parent ast.Node) {
	ast.AssignGeneratedMetadata(c.Tracker, node, ast.ID(parent))
}

func solidityPragma(units []*ast.SourceUnit) *ast.PragmaDirective {
	for _, unit := range units {
		for _, item := range unit.Items {
			if p, ok := item.(*ast.PragmaDirective); ok && strings.HasPrefix(p.Text, "solidity") {
				return p
			}
		}
	}
	return nil
}

// pragmaVersion returns the lowest version the first solidity pragma admits
func pragmaVersion(units []*ast.SourceUnit) string {
	pragma := solidityPragma(units)
	if pragma == nil {
		return DefaultVersion
	}
	if v := versionPattern.FindString(pragma.Text); v != "" {
		return v
	}
	return DefaultVersion
}
