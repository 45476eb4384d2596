// Package maplib generates the wrapper libraries that mediate access to
// interposed maps. One library exists per distinct (key, value) signature
// within an instrumentation run.
package maplib

import (
	"golang.org/x/xerrors"

	"mapshim/internal/ast"
	"mapshim/internal/errors"
	"mapshim/internal/instrument"
	"mapshim/internal/naming"
	"mapshim/internal/types"
)

// Seeds of the member names of every generated library. A member takes
// its seed as name unless that would shadow a name of the input, which
// the library's types may refer to.
const (
	StructName = "S"
	GetFn      = "get"
	SetFn      = "set"
	ResetFn    = "reset"

	innerField = "innerM"
)

// Library is a generated wrapper around mapping(Key => Value). When Value
// is itself a mapping, the library stores Inner's struct in its place.
type Library struct {
	Name     string
	Key      types.Type
	Value    types.Type
	Strategy types.Strategy
	Inner    *Library
	Decl     *ast.ContractDef

	scope   *naming.Scope
	members map[string]string // seed -> allocated member name
	helpers []string
}

// Obtain returns the library for mapping(key => value), generating and
// emitting it into ctx's auxiliary unit on first request. Inner map levels
// are obtained first, so they are emitted before the libraries using them.
func Obtain(ctx *instrument.Context, key, value types.Type) (*Library, error) {
	mapping := &types.Mapping{Key: key, Value: value}
	signature := types.CanonicalSignature(mapping)
	if entry, ok := ctx.Cache().Lookup(signature); ok {
		lib, ok := entry.(*Library)
		if !ok {
			return nil, xerrors.Errorf("cache entry for %s is a %T", signature, entry)
		}
		return lib, nil
	}

	if err := types.CheckKey(key); err != nil {
		return nil, err
	}
	strategy, err := types.StorageStrategy(value)
	if err != nil {
		return nil, err
	}

	lib := &Library{
		Key:      key,
		Value:    value,
		Strategy: strategy,
		scope:    ctx.Naming.Scope(),
		members:  make(map[string]string),
	}
	if inner, ok := value.(*types.Mapping); ok {
		lib.Inner, err = Obtain(ctx, inner.Key, inner.Value)
		if err != nil {
			return nil, err
		}
	}

	lib.Name, err = ctx.Naming.FreshName(naming.KindLib, types.Mangle(mapping))
	if err != nil {
		return nil, err
	}
	if lib.Decl, err = lib.declare(ctx); err != nil {
		return nil, err
	}

	ctx.Cache().Store(signature, lib)
	ctx.Emit(lib.Decl)
	ctx.Log.Debugf("generated %s for %s (%s)", lib.Name, signature, strategy)
	return lib, nil
}

// Signature is the cache key of the library
func (l *Library) Signature() string {
	return types.CanonicalSignature(&types.Mapping{Key: l.Key, Value: l.Value})
}

// Levels returns the library followed by the libraries of its nested maps
func (l *Library) Levels() []*Library {
	var out []*Library
	for lib := l; lib != nil; lib = lib.Inner {
		out = append(out, lib)
	}
	return out
}

// StructType names the wrapper struct that replaces the native map
func (l *Library) StructType() ast.TypeName {
	return &ast.UserDefinedTypeName{Path: l.Name + "." + l.Member(StructName)}
}

// Member returns the name a member seed was given inside the library
func (l *Library) Member(seed string) string {
	if name, ok := l.members[seed]; ok {
		return name
	}
	return seed
}

func (l *Library) allocate(seed string) (string, error) {
	if name, ok := l.members[seed]; ok {
		return name, nil
	}
	name, err := l.scope.Member(seed)
	if err != nil {
		return "", err
	}
	l.members[seed] = name
	return name, nil
}

// HasSet reports whether the library can copy a whole value in
func (l *Library) HasSet() bool {
	return l.Strategy != types.ReferenceOnly
}

// ReturnsValue reports whether get and set hand out copies rather than
// storage pointers
func (l *Library) ReturnsValue() bool {
	return l.Inner == nil && types.IsValueType(l.Value)
}

// Call builds a call to the library function with the given seed
func (l *Library) Call(fn string, args ...ast.Expr) *ast.CallExpr {
	return ast.NewMemberCall(l.Name, l.Member(fn), args...)
}

// storedType spells the value type held by the wrapped native map
func (l *Library) storedType() ast.TypeName {
	if l.Inner != nil {
		return l.Inner.StructType()
	}
	return types.ToTypeName(l.Value)
}

func (l *Library) returnParam() *ast.VariableDecl {
	if l.ReturnsValue() {
		return ast.NewReturnParam(l.storedType(), "")
	}
	return ast.NewReturnParam(l.storedType(), "storage")
}

func (l *Library) declare(ctx *instrument.Context) (*ast.ContractDef, error) {
	for _, seed := range []string{StructName, GetFn, SetFn, ResetFn} {
		if _, err := l.allocate(seed); err != nil {
			return nil, err
		}
	}

	decl := &ast.ContractDef{
		Kind: ast.ContractKindLibrary,
		Name: ast.Ident{Value: l.Name},
	}
	decl.Items = append(decl.Items, &ast.StructDef{
		Name: ast.Ident{Value: l.Member(StructName)},
		Members: []*ast.VariableDecl{{
			Kind: ast.VarKindMember,
			Type: &ast.MappingTypeName{Key: types.ToTypeName(l.Key), Value: l.storedType()},
			Name: ast.Ident{Value: innerField},
		}},
	})

	builders := []func(*instrument.Context) (*ast.FunctionDef, error){l.get}
	if l.HasSet() {
		builders = append(builders, l.set)
	}
	builders = append(builders, l.reset)
	for _, build := range builders {
		fn, err := build(ctx)
		if err != nil {
			return nil, err
		}
		decl.Items = append(decl.Items, fn)
	}
	return decl, nil
}

// frame holds the parameters every accessor starts with: the wrapper
// struct and the key
type frame struct {
	scope  *naming.Scope
	m      string
	key    string
	params []*ast.VariableDecl
}

func (l *Library) newFrame(ctx *instrument.Context) (*frame, error) {
	scope := ctx.Naming.Scope()
	m, err := scope.Name(naming.KindArg, "m")
	if err != nil {
		return nil, err
	}
	key, err := scope.Name(naming.KindArg, "key")
	if err != nil {
		return nil, err
	}
	keyLocation := ""
	if types.IsDynamicBytes(l.Key) {
		keyLocation = "memory"
	}
	return &frame{
		scope: scope,
		m:     m,
		key:   key,
		params: []*ast.VariableDecl{
			ast.NewParam(&ast.UserDefinedTypeName{Path: l.Member(StructName)}, "storage", m),
			ast.NewParam(types.ToTypeName(l.Key), keyLocation, key),
		},
	}, nil
}

// slot is m.innerM[key]
func (f *frame) slot() ast.Expr {
	return ast.NewIndex(ast.NewMember(ast.NewIdentifier(f.m), innerField), ast.NewIdentifier(f.key))
}

// args are the leading arguments passed on to get and set
func (f *frame) args(extra ...ast.Expr) []ast.Expr {
	return append([]ast.Expr{ast.NewIdentifier(f.m), ast.NewIdentifier(f.key)}, extra...)
}

func (l *Library) get(ctx *instrument.Context) (*ast.FunctionDef, error) {
	f, err := l.newFrame(ctx)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{
		Name:       ast.Ident{Value: l.Member(GetFn)},
		Params:     f.params,
		Returns:    []*ast.VariableDecl{l.returnParam()},
		Visibility: "internal",
		Mutability: "view",
		Body:       ast.NewBlock(ast.NewReturn(f.slot())),
	}, nil
}

func (l *Library) set(ctx *instrument.Context) (*ast.FunctionDef, error) {
	f, err := l.newFrame(ctx)
	if err != nil {
		return nil, err
	}
	val, err := f.scope.Name(naming.KindArg, "val")
	if err != nil {
		return nil, err
	}
	location := "memory"
	if l.ReturnsValue() {
		location = ""
	}
	return &ast.FunctionDef{
		Name:       ast.Ident{Value: l.Member(SetFn)},
		Params:     append(f.params, ast.NewParam(l.storedType(), location, val)),
		Returns:    []*ast.VariableDecl{l.returnParam()},
		Visibility: "internal",
		Body: ast.NewBlock(
			ast.NewExprStmt(ast.NewAssign(f.slot(), ast.NewIdentifier(val))),
			ast.NewReturn(f.slot()),
		),
	}, nil
}

// reset reproduces delete on the stored value. Mappings nested in it keep
// their entries, as they do under a native delete.
func (l *Library) reset(ctx *instrument.Context) (*ast.FunctionDef, error) {
	f, err := l.newFrame(ctx)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{
		Name:       ast.Ident{Value: l.Member(ResetFn)},
		Params:     f.params,
		Visibility: "internal",
		Body: ast.NewBlock(
			ast.NewExprStmt(&ast.UnaryExpr{Op: "delete", Value: f.slot()}),
		),
	}, nil
}

func operatorError(l *Library, op string) error {
	return &errors.ConsistencyError{
		Message: "operator " + op + " applied to " + l.Value.String() + " values of " + l.Name,
	}
}
