package ast

import (
	"strings"

	"github.com/turbolent/prettier"
)

const (
	maxLineWidth = 120
	indentString = "    "
)

// Prettier renders a node as Solidity source
func Prettier(node Node) string {
	var b strings.Builder
	prettier.Prettier(&b, node.Doc(), maxLineWidth, indentString)
	return b.String()
}

var (
	semicolonDoc    = prettier.Text(";")
	commaSpaceDoc   = prettier.Text(", ")
	openBraceDoc    = prettier.Text("{")
	closeBraceDoc   = prettier.Text("}")
	emptyBlockDoc   = prettier.Text("{}")
	openParenDoc    = prettier.Text("(")
	closeParenDoc   = prettier.Text(")")
	openBracketDoc  = prettier.Text("[")
	closeBracketDoc = prettier.Text("]")
)

// bracedDoc lays out one doc per line inside braces
func bracedDoc(lines []prettier.Doc) prettier.Doc {
	if len(lines) == 0 {
		return emptyBlockDoc
	}
	var body prettier.Concat
	for _, line := range lines {
		body = append(body, prettier.HardLine{}, line)
	}
	return prettier.Concat{
		openBraceDoc,
		prettier.Indent{Doc: body},
		prettier.HardLine{},
		closeBraceDoc,
	}
}

func parenList(docs []prettier.Doc) prettier.Doc {
	return prettier.Concat{
		openParenDoc,
		prettier.Join(commaSpaceDoc, docs...),
		closeParenDoc,
	}
}

func exprDocs(exprs []Expr) []prettier.Doc {
	docs := make([]prettier.Doc, 0, len(exprs))
	for _, e := range exprs {
		if e == nil {
			docs = append(docs, prettier.Text(""))
			continue
		}
		docs = append(docs, e.Doc())
	}
	return docs
}

func varDocs(vars []*VariableDecl) []prettier.Doc {
	docs := make([]prettier.Doc, 0, len(vars))
	for _, v := range vars {
		if v == nil {
			docs = append(docs, prettier.Text(""))
			continue
		}
		docs = append(docs, v.Doc())
	}
	return docs
}

func (i *Ident) Doc() prettier.Doc {
	return prettier.Text(i.Value)
}

func (u *SourceUnit) Doc() prettier.Doc {
	var doc prettier.Concat
	for i, item := range u.Items {
		if i > 0 {
			doc = append(doc, prettier.HardLine{}, prettier.HardLine{})
		}
		doc = append(doc, item.Doc())
	}
	doc = append(doc, prettier.HardLine{})
	return doc
}

func (p *PragmaDirective) Doc() prettier.Doc {
	return prettier.Text("pragma " + p.Text + ";")
}

func (im *ImportDirective) Doc() prettier.Doc {
	return prettier.Text("import " + im.Text + ";")
}

func (c *ContractDef) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(c.Kind.String()),
		prettier.Space,
		c.Name.Doc(),
	}
	if len(c.Bases) > 0 {
		bases := make([]prettier.Doc, 0, len(c.Bases))
		for _, b := range c.Bases {
			bases = append(bases, b.Doc())
		}
		doc = append(doc, prettier.Text(" is "), prettier.Join(commaSpaceDoc, bases...))
	}
	items := make([]prettier.Doc, 0, len(c.Items))
	for _, item := range c.Items {
		if v, ok := item.(*VariableDecl); ok {
			items = append(items, prettier.Concat{v.Doc(), semicolonDoc})
			continue
		}
		items = append(items, item.Doc())
	}
	return append(doc, prettier.Space, bracedDoc(items))
}

func (is *InheritanceSpecifier) Doc() prettier.Doc {
	if !is.HasArgs {
		return prettier.Text(is.Name)
	}
	return prettier.Concat{prettier.Text(is.Name), parenList(exprDocs(is.Args))}
}

func (s *StructDef) Doc() prettier.Doc {
	members := make([]prettier.Doc, 0, len(s.Members))
	for _, m := range s.Members {
		members = append(members, prettier.Concat{m.Doc(), semicolonDoc})
	}
	return prettier.Concat{
		prettier.Text("struct "),
		s.Name.Doc(),
		prettier.Space,
		bracedDoc(members),
	}
}

func (e *EnumDef) Doc() prettier.Doc {
	values := make([]prettier.Doc, 0, len(e.Values))
	for i := range e.Values {
		values = append(values, e.Values[i].Doc())
	}
	return prettier.Concat{
		prettier.Text("enum "),
		e.Name.Doc(),
		prettier.Text(" { "),
		prettier.Join(commaSpaceDoc, values...),
		prettier.Text(" }"),
	}
}

func (e *EventDef) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text("event "),
		e.Name.Doc(),
		parenList(varDocs(e.Params)),
	}
	if e.Anonymous {
		doc = append(doc, prettier.Text(" anonymous"))
	}
	return append(doc, semicolonDoc)
}

func (e *ErrorDef) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text("error "),
		e.Name.Doc(),
		parenList(varDocs(e.Params)),
		semicolonDoc,
	}
}

func (u *UsingForDirective) Doc() prettier.Doc {
	var target prettier.Doc = prettier.Text("*")
	if u.Type != nil {
		target = u.Type.Doc()
	}
	return prettier.Concat{
		prettier.Text("using " + u.Library + " for "),
		target,
		semicolonDoc,
	}
}

func (m *ModifierDef) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text("modifier "),
		m.Name.Doc(),
		parenList(varDocs(m.Params)),
	}
	if m.Virtual {
		doc = append(doc, prettier.Text(" virtual"))
	}
	if m.Override {
		doc = append(doc, prettier.Text(" override"))
	}
	if m.Body == nil {
		return append(doc, semicolonDoc)
	}
	return append(doc, prettier.Space, m.Body.Doc())
}

func (f *FunctionDef) Doc() prettier.Doc {
	var doc prettier.Concat
	switch f.Kind {
	case FunctionKindConstructor:
		doc = append(doc, prettier.Text("constructor"))
	case FunctionKindFallback:
		doc = append(doc, prettier.Text("fallback"))
	case FunctionKindReceive:
		doc = append(doc, prettier.Text("receive"))
	default:
		doc = append(doc, prettier.Text("function "), f.Name.Doc())
	}
	doc = append(doc, parenList(varDocs(f.Params)))

	for _, attr := range []string{f.Visibility, f.Mutability} {
		if attr != "" {
			doc = append(doc, prettier.Text(" "+attr))
		}
	}
	if f.Virtual {
		doc = append(doc, prettier.Text(" virtual"))
	}
	if f.Override {
		doc = append(doc, prettier.Text(" override"))
	}
	for _, m := range f.Modifiers {
		doc = append(doc, prettier.Space, m.Doc())
	}
	if len(f.Returns) > 0 {
		doc = append(doc, prettier.Text(" returns "), parenList(varDocs(f.Returns)))
	}
	if f.Body == nil {
		return append(doc, semicolonDoc)
	}
	return append(doc, prettier.Space, f.Body.Doc())
}

func (mi *ModifierInvocation) Doc() prettier.Doc {
	if !mi.HasArgs {
		return prettier.Text(mi.Name)
	}
	return prettier.Concat{prettier.Text(mi.Name), parenList(exprDocs(mi.Args))}
}

func (v *VariableDecl) Doc() prettier.Doc {
	doc := prettier.Concat{v.Type.Doc()}
	if v.Indexed {
		doc = append(doc, prettier.Text(" indexed"))
	}
	if v.Visibility != "" {
		doc = append(doc, prettier.Text(" "+v.Visibility))
	}
	if v.Constant {
		doc = append(doc, prettier.Text(" constant"))
	}
	if v.Immutable {
		doc = append(doc, prettier.Text(" immutable"))
	}
	if v.Override {
		doc = append(doc, prettier.Text(" override"))
	}
	if v.Location != "" {
		doc = append(doc, prettier.Text(" "+v.Location))
	}
	if v.Name.Value != "" {
		doc = append(doc, prettier.Space, v.Name.Doc())
	}
	if v.Value != nil {
		doc = append(doc, prettier.Text(" = "), v.Value.Doc())
	}
	return doc
}

// Types

func (t *ElementaryTypeName) Doc() prettier.Doc {
	if t.Payable {
		return prettier.Text(t.Name + " payable")
	}
	return prettier.Text(t.Name)
}

func (t *UserDefinedTypeName) Doc() prettier.Doc {
	return prettier.Text(t.Path)
}

func (t *ArrayTypeName) Doc() prettier.Doc {
	doc := prettier.Concat{t.Base.Doc(), openBracketDoc}
	if t.Length != nil {
		doc = append(doc, t.Length.Doc())
	}
	return append(doc, closeBracketDoc)
}

func (t *MappingTypeName) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text("mapping("),
		t.Key.Doc(),
		prettier.Text(" => "),
		t.Value.Doc(),
		closeParenDoc,
	}
}

// Statements

func (b *Block) Doc() prettier.Doc {
	stmts := make([]prettier.Doc, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		stmts = append(stmts, s.Doc())
	}
	if b.Unchecked {
		return prettier.Concat{prettier.Text("unchecked "), bracedDoc(stmts)}
	}
	return bracedDoc(stmts)
}

func (v *VarDeclStmt) Doc() prettier.Doc {
	var doc prettier.Concat
	if v.Tuple {
		doc = append(doc, parenList(varDocs(v.Decls)))
	} else if len(v.Decls) == 1 && v.Decls[0] != nil {
		doc = append(doc, v.Decls[0].Doc())
	}
	if v.Value != nil {
		doc = append(doc, prettier.Text(" = "), v.Value.Doc())
	}
	return append(doc, semicolonDoc)
}

func (e *ExprStmt) Doc() prettier.Doc {
	return prettier.Concat{e.Expr.Doc(), semicolonDoc}
}

func (s *IfStmt) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text("if ("),
		s.Cond.Doc(),
		prettier.Text(") "),
		s.Then.Doc(),
	}
	if s.Else != nil {
		doc = append(doc, prettier.Text(" else "), s.Else.Doc())
	}
	return doc
}

func (s *ForStmt) Doc() prettier.Doc {
	doc := prettier.Concat{prettier.Text("for (")}
	if s.Init != nil {
		doc = append(doc, s.Init.Doc())
	} else {
		doc = append(doc, semicolonDoc)
	}
	doc = append(doc, prettier.Space)
	if s.Cond != nil {
		doc = append(doc, s.Cond.Doc())
	}
	doc = append(doc, prettier.Text("; "))
	if s.Post != nil {
		doc = append(doc, s.Post.Doc())
	}
	return append(doc, prettier.Text(") "), s.Body.Doc())
}

func (s *WhileStmt) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text("while ("),
		s.Cond.Doc(),
		prettier.Text(") "),
		s.Body.Doc(),
	}
}

func (s *DoWhileStmt) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text("do "),
		s.Body.Doc(),
		prettier.Text(" while ("),
		s.Cond.Doc(),
		prettier.Text(");"),
	}
}

func (r *ReturnStmt) Doc() prettier.Doc {
	if r.Value == nil {
		return prettier.Text("return;")
	}
	return prettier.Concat{prettier.Text("return "), r.Value.Doc(), semicolonDoc}
}

func (e *EmitStmt) Doc() prettier.Doc {
	return prettier.Concat{prettier.Text("emit "), e.Call.Doc(), semicolonDoc}
}

func (r *RevertStmt) Doc() prettier.Doc {
	return prettier.Concat{prettier.Text("revert "), r.Call.Doc(), semicolonDoc}
}

func (*BreakStmt) Doc() prettier.Doc {
	return prettier.Text("break;")
}

func (*ContinueStmt) Doc() prettier.Doc {
	return prettier.Text("continue;")
}

func (*PlaceholderStmt) Doc() prettier.Doc {
	return prettier.Text("_;")
}

// Expressions

func (i *Identifier) Doc() prettier.Doc {
	return prettier.Text(i.Name)
}

func (l *Literal) Doc() prettier.Doc {
	if l.Unit != "" {
		return prettier.Text(l.Value + " " + l.Unit)
	}
	return prettier.Text(l.Value)
}

func (i *IndexExpr) Doc() prettier.Doc {
	doc := prettier.Concat{i.Target.Doc(), openBracketDoc}
	if i.Index != nil {
		doc = append(doc, i.Index.Doc())
	}
	return append(doc, closeBracketDoc)
}

func (m *MemberAccessExpr) Doc() prettier.Doc {
	return prettier.Concat{
		m.Target.Doc(),
		prettier.Text("." + m.Member),
	}
}

func namedArgsDoc(names []string, values []Expr) prettier.Doc {
	docs := make([]prettier.Doc, 0, len(values))
	for i, v := range values {
		docs = append(docs, prettier.Concat{prettier.Text(names[i] + ": "), v.Doc()})
	}
	return prettier.Concat{
		openBraceDoc,
		prettier.Join(commaSpaceDoc, docs...),
		closeBraceDoc,
	}
}

func (c *CallExpr) Doc() prettier.Doc {
	doc := prettier.Concat{c.Callee.Doc()}
	if len(c.Options) > 0 {
		names := make([]string, 0, len(c.Options))
		values := make([]Expr, 0, len(c.Options))
		for _, o := range c.Options {
			names = append(names, o.Name)
			values = append(values, o.Value)
		}
		doc = append(doc, namedArgsDoc(names, values))
	}
	if c.ArgNames != nil {
		return append(doc, openParenDoc, namedArgsDoc(c.ArgNames, c.Args), closeParenDoc)
	}
	return append(doc, parenList(exprDocs(c.Args)))
}

func (b *BinaryExpr) Doc() prettier.Doc {
	return prettier.Concat{
		b.Left.Doc(),
		prettier.Text(" " + b.Op + " "),
		b.Right.Doc(),
	}
}

func (u *UnaryExpr) Doc() prettier.Doc {
	if u.Postfix {
		return prettier.Concat{u.Value.Doc(), prettier.Text(u.Op)}
	}
	if u.Op == "delete" {
		return prettier.Concat{prettier.Text("delete "), u.Value.Doc()}
	}
	return prettier.Concat{prettier.Text(u.Op), u.Value.Doc()}
}

func (a *AssignExpr) Doc() prettier.Doc {
	return prettier.Concat{
		a.Target.Doc(),
		prettier.Text(" " + a.Operator.String() + " "),
		a.Value.Doc(),
	}
}

func (c *ConditionalExpr) Doc() prettier.Doc {
	return prettier.Concat{
		c.Cond.Doc(),
		prettier.Text(" ? "),
		c.Then.Doc(),
		prettier.Text(" : "),
		c.Else.Doc(),
	}
}

func (t *TupleExpr) Doc() prettier.Doc {
	return parenList(exprDocs(t.Elements))
}

func (p *ParenExpr) Doc() prettier.Doc {
	return prettier.Concat{openParenDoc, p.Value.Doc(), closeParenDoc}
}

func (a *ArrayLiteralExpr) Doc() prettier.Doc {
	return prettier.Concat{
		openBracketDoc,
		prettier.Join(commaSpaceDoc, exprDocs(a.Elements)...),
		closeBracketDoc,
	}
}

func (n *NewExpr) Doc() prettier.Doc {
	return prettier.Concat{prettier.Text("new "), n.Type.Doc()}
}

func (e *ElementaryTypeExpr) Doc() prettier.Doc {
	return e.Type.Doc()
}
