package ast

import "github.com/turbolent/prettier"

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
	Doc() prettier.Doc

	// Metadata support for node identity and source tracking
	GetMetadata() *Metadata
	SetMetadata(*Metadata)
}

// SourceUnitItem is anything allowed at file level
type SourceUnitItem interface {
	Node
	sourceUnitItemNode()
}

// ContractItem is anything allowed inside a contract body
type ContractItem interface {
	Node
	contractItemNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type TypeName interface {
	Node
	typeNameNode()
}

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT }

func (u *SourceUnit) NodePos() Position    { return u.Pos }
func (u *SourceUnit) NodeEndPos() Position { return u.EndPos }
func (*SourceUnit) NodeType() NodeType     { return SOURCE_UNIT }

func (p *PragmaDirective) NodePos() Position    { return p.Pos }
func (p *PragmaDirective) NodeEndPos() Position { return p.EndPos }
func (*PragmaDirective) NodeType() NodeType     { return PRAGMA }

func (im *ImportDirective) NodePos() Position    { return im.Pos }
func (im *ImportDirective) NodeEndPos() Position { return im.EndPos }
func (*ImportDirective) NodeType() NodeType      { return IMPORT }

func (c *ContractDef) NodePos() Position    { return c.Pos }
func (c *ContractDef) NodeEndPos() Position { return c.EndPos }
func (*ContractDef) NodeType() NodeType     { return CONTRACT }

func (is *InheritanceSpecifier) NodePos() Position    { return is.Pos }
func (is *InheritanceSpecifier) NodeEndPos() Position { return is.EndPos }
func (*InheritanceSpecifier) NodeType() NodeType      { return INHERITANCE_SPECIFIER }

func (s *StructDef) NodePos() Position    { return s.Pos }
func (s *StructDef) NodeEndPos() Position { return s.EndPos }
func (*StructDef) NodeType() NodeType     { return STRUCT }

func (e *EnumDef) NodePos() Position    { return e.Pos }
func (e *EnumDef) NodeEndPos() Position { return e.EndPos }
func (*EnumDef) NodeType() NodeType     { return ENUM }

func (e *EventDef) NodePos() Position    { return e.Pos }
func (e *EventDef) NodeEndPos() Position { return e.EndPos }
func (*EventDef) NodeType() NodeType     { return EVENT }

func (e *ErrorDef) NodePos() Position    { return e.Pos }
func (e *ErrorDef) NodeEndPos() Position { return e.EndPos }
func (*ErrorDef) NodeType() NodeType     { return ERROR }

func (u *UsingForDirective) NodePos() Position    { return u.Pos }
func (u *UsingForDirective) NodeEndPos() Position { return u.EndPos }
func (*UsingForDirective) NodeType() NodeType     { return USING_FOR }

func (m *ModifierDef) NodePos() Position    { return m.Pos }
func (m *ModifierDef) NodeEndPos() Position { return m.EndPos }
func (*ModifierDef) NodeType() NodeType     { return MODIFIER }

func (f *FunctionDef) NodePos() Position    { return f.Pos }
func (f *FunctionDef) NodeEndPos() Position { return f.EndPos }
func (*FunctionDef) NodeType() NodeType     { return FUNCTION }

func (mi *ModifierInvocation) NodePos() Position    { return mi.Pos }
func (mi *ModifierInvocation) NodeEndPos() Position { return mi.EndPos }
func (*ModifierInvocation) NodeType() NodeType      { return MODIFIER_INVOCATION }

func (v *VariableDecl) NodePos() Position    { return v.Pos }
func (v *VariableDecl) NodeEndPos() Position { return v.EndPos }
func (*VariableDecl) NodeType() NodeType     { return VARIABLE_DECL }

func (t *ElementaryTypeName) NodePos() Position    { return t.Pos }
func (t *ElementaryTypeName) NodeEndPos() Position { return t.EndPos }
func (*ElementaryTypeName) NodeType() NodeType     { return ELEMENTARY_TYPE }

func (t *UserDefinedTypeName) NodePos() Position    { return t.Pos }
func (t *UserDefinedTypeName) NodeEndPos() Position { return t.EndPos }
func (*UserDefinedTypeName) NodeType() NodeType     { return USER_DEFINED_TYPE }

func (t *ArrayTypeName) NodePos() Position    { return t.Pos }
func (t *ArrayTypeName) NodeEndPos() Position { return t.EndPos }
func (*ArrayTypeName) NodeType() NodeType     { return ARRAY_TYPE }

func (t *MappingTypeName) NodePos() Position    { return t.Pos }
func (t *MappingTypeName) NodeEndPos() Position { return t.EndPos }
func (*MappingTypeName) NodeType() NodeType     { return MAPPING_TYPE }

func (b *Block) NodePos() Position    { return b.Pos }
func (b *Block) NodeEndPos() Position { return b.EndPos }
func (*Block) NodeType() NodeType     { return BLOCK }

func (v *VarDeclStmt) NodePos() Position    { return v.Pos }
func (v *VarDeclStmt) NodeEndPos() Position { return v.EndPos }
func (*VarDeclStmt) NodeType() NodeType     { return VAR_DECL_STMT }

func (e *ExprStmt) NodePos() Position    { return e.Pos }
func (e *ExprStmt) NodeEndPos() Position { return e.EndPos }
func (*ExprStmt) NodeType() NodeType     { return EXPR_STMT }

func (s *IfStmt) NodePos() Position    { return s.Pos }
func (s *IfStmt) NodeEndPos() Position { return s.EndPos }
func (*IfStmt) NodeType() NodeType     { return IF_STMT }

func (s *ForStmt) NodePos() Position    { return s.Pos }
func (s *ForStmt) NodeEndPos() Position { return s.EndPos }
func (*ForStmt) NodeType() NodeType     { return FOR_STMT }

func (s *WhileStmt) NodePos() Position    { return s.Pos }
func (s *WhileStmt) NodeEndPos() Position { return s.EndPos }
func (*WhileStmt) NodeType() NodeType     { return WHILE_STMT }

func (s *DoWhileStmt) NodePos() Position    { return s.Pos }
func (s *DoWhileStmt) NodeEndPos() Position { return s.EndPos }
func (*DoWhileStmt) NodeType() NodeType     { return DO_WHILE_STMT }

func (r *ReturnStmt) NodePos() Position    { return r.Pos }
func (r *ReturnStmt) NodeEndPos() Position { return r.EndPos }
func (*ReturnStmt) NodeType() NodeType     { return RETURN_STMT }

func (e *EmitStmt) NodePos() Position    { return e.Pos }
func (e *EmitStmt) NodeEndPos() Position { return e.EndPos }
func (*EmitStmt) NodeType() NodeType     { return EMIT_STMT }

func (r *RevertStmt) NodePos() Position    { return r.Pos }
func (r *RevertStmt) NodeEndPos() Position { return r.EndPos }
func (*RevertStmt) NodeType() NodeType     { return REVERT_STMT }

func (b *BreakStmt) NodePos() Position    { return b.Pos }
func (b *BreakStmt) NodeEndPos() Position { return b.EndPos }
func (*BreakStmt) NodeType() NodeType     { return BREAK_STMT }

func (c *ContinueStmt) NodePos() Position    { return c.Pos }
func (c *ContinueStmt) NodeEndPos() Position { return c.EndPos }
func (*ContinueStmt) NodeType() NodeType     { return CONTINUE_STMT }

func (p *PlaceholderStmt) NodePos() Position    { return p.Pos }
func (p *PlaceholderStmt) NodeEndPos() Position { return p.EndPos }
func (*PlaceholderStmt) NodeType() NodeType     { return PLACEHOLDER_STMT }

func (i *Identifier) NodePos() Position    { return i.Pos }
func (i *Identifier) NodeEndPos() Position { return i.EndPos }
func (*Identifier) NodeType() NodeType     { return IDENTIFIER }

func (l *Literal) NodePos() Position    { return l.Pos }
func (l *Literal) NodeEndPos() Position { return l.EndPos }
func (*Literal) NodeType() NodeType     { return LITERAL }

func (i *IndexExpr) NodePos() Position    { return i.Pos }
func (i *IndexExpr) NodeEndPos() Position { return i.EndPos }
func (*IndexExpr) NodeType() NodeType     { return INDEX_EXPR }

func (m *MemberAccessExpr) NodePos() Position    { return m.Pos }
func (m *MemberAccessExpr) NodeEndPos() Position { return m.EndPos }
func (*MemberAccessExpr) NodeType() NodeType     { return MEMBER_ACCESS_EXPR }

func (c *CallExpr) NodePos() Position    { return c.Pos }
func (c *CallExpr) NodeEndPos() Position { return c.EndPos }
func (*CallExpr) NodeType() NodeType     { return CALL_EXPR }

func (b *BinaryExpr) NodePos() Position    { return b.Pos }
func (b *BinaryExpr) NodeEndPos() Position { return b.EndPos }
func (*BinaryExpr) NodeType() NodeType     { return BINARY_EXPR }

func (u *UnaryExpr) NodePos() Position    { return u.Pos }
func (u *UnaryExpr) NodeEndPos() Position { return u.EndPos }
func (*UnaryExpr) NodeType() NodeType     { return UNARY_EXPR }

func (a *AssignExpr) NodePos() Position    { return a.Pos }
func (a *AssignExpr) NodeEndPos() Position { return a.EndPos }
func (*AssignExpr) NodeType() NodeType     { return ASSIGN_EXPR }

func (c *ConditionalExpr) NodePos() Position    { return c.Pos }
func (c *ConditionalExpr) NodeEndPos() Position { return c.EndPos }
func (*ConditionalExpr) NodeType() NodeType     { return CONDITIONAL_EXPR }

func (t *TupleExpr) NodePos() Position    { return t.Pos }
func (t *TupleExpr) NodeEndPos() Position { return t.EndPos }
func (*TupleExpr) NodeType() NodeType     { return TUPLE_EXPR }

func (p *ParenExpr) NodePos() Position    { return p.Pos }
func (p *ParenExpr) NodeEndPos() Position { return p.EndPos }
func (*ParenExpr) NodeType() NodeType     { return PAREN_EXPR }

func (a *ArrayLiteralExpr) NodePos() Position    { return a.Pos }
func (a *ArrayLiteralExpr) NodeEndPos() Position { return a.EndPos }
func (*ArrayLiteralExpr) NodeType() NodeType     { return ARRAY_LITERAL_EXPR }

func (n *NewExpr) NodePos() Position    { return n.Pos }
func (n *NewExpr) NodeEndPos() Position { return n.EndPos }
func (*NewExpr) NodeType() NodeType     { return NEW_EXPR }

func (e *ElementaryTypeExpr) NodePos() Position    { return e.Pos }
func (e *ElementaryTypeExpr) NodeEndPos() Position { return e.EndPos }
func (*ElementaryTypeExpr) NodeType() NodeType     { return ELEMENTARY_TYPE_EXPR }

// GetMetadata and SetMetadata implementations for all AST nodes

func (i *Ident) GetMetadata() *Metadata  { return i.metadata }
func (i *Ident) SetMetadata(m *Metadata) { i.metadata = m }

func (u *SourceUnit) GetMetadata() *Metadata  { return u.metadata }
func (u *SourceUnit) SetMetadata(m *Metadata) { u.metadata = m }

func (p *PragmaDirective) GetMetadata() *Metadata  { return p.metadata }
func (p *PragmaDirective) SetMetadata(m *Metadata) { p.metadata = m }

func (im *ImportDirective) GetMetadata() *Metadata  { return im.metadata }
func (im *ImportDirective) SetMetadata(m *Metadata) { im.metadata = m }

func (c *ContractDef) GetMetadata() *Metadata  { return c.metadata }
func (c *ContractDef) SetMetadata(m *Metadata) { c.metadata = m }

func (is *InheritanceSpecifier) GetMetadata() *Metadata  { return is.metadata }
func (is *InheritanceSpecifier) SetMetadata(m *Metadata) { is.metadata = m }

func (s *StructDef) GetMetadata() *Metadata  { return s.metadata }
func (s *StructDef) SetMetadata(m *Metadata) { s.metadata = m }

func (e *EnumDef) GetMetadata() *Metadata  { return e.metadata }
func (e *EnumDef) SetMetadata(m *Metadata) { e.metadata = m }

func (e *EventDef) GetMetadata() *Metadata  { return e.metadata }
func (e *EventDef) SetMetadata(m *Metadata) { e.metadata = m }

func (e *ErrorDef) GetMetadata() *Metadata  { return e.metadata }
func (e *ErrorDef) SetMetadata(m *Metadata) { e.metadata = m }

func (u *UsingForDirective) GetMetadata() *Metadata  { return u.metadata }
func (u *UsingForDirective) SetMetadata(m *Metadata) { u.metadata = m }

func (m *ModifierDef) GetMetadata() *Metadata     { return m.metadata }
func (m *ModifierDef) SetMetadata(meta *Metadata) { m.metadata = meta }

func (f *FunctionDef) GetMetadata() *Metadata  { return f.metadata }
func (f *FunctionDef) SetMetadata(m *Metadata) { f.metadata = m }

func (mi *ModifierInvocation) GetMetadata() *Metadata  { return mi.metadata }
func (mi *ModifierInvocation) SetMetadata(m *Metadata) { mi.metadata = m }

func (v *VariableDecl) GetMetadata() *Metadata  { return v.metadata }
func (v *VariableDecl) SetMetadata(m *Metadata) { v.metadata = m }

func (t *ElementaryTypeName) GetMetadata() *Metadata  { return t.metadata }
func (t *ElementaryTypeName) SetMetadata(m *Metadata) { t.metadata = m }

func (t *UserDefinedTypeName) GetMetadata() *Metadata  { return t.metadata }
func (t *UserDefinedTypeName) SetMetadata(m *Metadata) { t.metadata = m }

func (t *ArrayTypeName) GetMetadata() *Metadata  { return t.metadata }
func (t *ArrayTypeName) SetMetadata(m *Metadata) { t.metadata = m }

func (t *MappingTypeName) GetMetadata() *Metadata  { return t.metadata }
func (t *MappingTypeName) SetMetadata(m *Metadata) { t.metadata = m }

func (b *Block) GetMetadata() *Metadata  { return b.metadata }
func (b *Block) SetMetadata(m *Metadata) { b.metadata = m }

func (v *VarDeclStmt) GetMetadata() *Metadata  { return v.metadata }
func (v *VarDeclStmt) SetMetadata(m *Metadata) { v.metadata = m }

func (e *ExprStmt) GetMetadata() *Metadata  { return e.metadata }
func (e *ExprStmt) SetMetadata(m *Metadata) { e.metadata = m }

func (s *IfStmt) GetMetadata() *Metadata  { return s.metadata }
func (s *IfStmt) SetMetadata(m *Metadata) { s.metadata = m }

func (s *ForStmt) GetMetadata() *Metadata  { return s.metadata }
func (s *ForStmt) SetMetadata(m *Metadata) { s.metadata = m }

func (s *WhileStmt) GetMetadata() *Metadata  { return s.metadata }
func (s *WhileStmt) SetMetadata(m *Metadata) { s.metadata = m }

func (s *DoWhileStmt) GetMetadata() *Metadata  { return s.metadata }
func (s *DoWhileStmt) SetMetadata(m *Metadata) { s.metadata = m }

func (r *ReturnStmt) GetMetadata() *Metadata  { return r.metadata }
func (r *ReturnStmt) SetMetadata(m *Metadata) { r.metadata = m }

func (e *EmitStmt) GetMetadata() *Metadata  { return e.metadata }
func (e *EmitStmt) SetMetadata(m *Metadata) { e.metadata = m }

func (r *RevertStmt) GetMetadata() *Metadata  { return r.metadata }
func (r *RevertStmt) SetMetadata(m *Metadata) { r.metadata = m }

func (b *BreakStmt) GetMetadata() *Metadata  { return b.metadata }
func (b *BreakStmt) SetMetadata(m *Metadata) { b.metadata = m }

func (c *ContinueStmt) GetMetadata() *Metadata  { return c.metadata }
func (c *ContinueStmt) SetMetadata(m *Metadata) { c.metadata = m }

func (p *PlaceholderStmt) GetMetadata() *Metadata  { return p.metadata }
func (p *PlaceholderStmt) SetMetadata(m *Metadata) { p.metadata = m }

func (i *Identifier) GetMetadata() *Metadata  { return i.metadata }
func (i *Identifier) SetMetadata(m *Metadata) { i.metadata = m }

func (l *Literal) GetMetadata() *Metadata  { return l.metadata }
func (l *Literal) SetMetadata(m *Metadata) { l.metadata = m }

func (i *IndexExpr) GetMetadata() *Metadata  { return i.metadata }
func (i *IndexExpr) SetMetadata(m *Metadata) { i.metadata = m }

func (m *MemberAccessExpr) GetMetadata() *Metadata     { return m.metadata }
func (m *MemberAccessExpr) SetMetadata(meta *Metadata) { m.metadata = meta }

func (c *CallExpr) GetMetadata() *Metadata  { return c.metadata }
func (c *CallExpr) SetMetadata(m *Metadata) { c.metadata = m }

func (b *BinaryExpr) GetMetadata() *Metadata  { return b.metadata }
func (b *BinaryExpr) SetMetadata(m *Metadata) { b.metadata = m }

func (u *UnaryExpr) GetMetadata() *Metadata  { return u.metadata }
func (u *UnaryExpr) SetMetadata(m *Metadata) { u.metadata = m }

func (a *AssignExpr) GetMetadata() *Metadata  { return a.metadata }
func (a *AssignExpr) SetMetadata(m *Metadata) { a.metadata = m }

func (c *ConditionalExpr) GetMetadata() *Metadata  { return c.metadata }
func (c *ConditionalExpr) SetMetadata(m *Metadata) { c.metadata = m }

func (t *TupleExpr) GetMetadata() *Metadata  { return t.metadata }
func (t *TupleExpr) SetMetadata(m *Metadata) { t.metadata = m }

func (p *ParenExpr) GetMetadata() *Metadata  { return p.metadata }
func (p *ParenExpr) SetMetadata(m *Metadata) { p.metadata = m }

func (a *ArrayLiteralExpr) GetMetadata() *Metadata  { return a.metadata }
func (a *ArrayLiteralExpr) SetMetadata(m *Metadata) { a.metadata = m }

func (n *NewExpr) GetMetadata() *Metadata  { return n.metadata }
func (n *NewExpr) SetMetadata(m *Metadata) { n.metadata = m }

func (e *ElementaryTypeExpr) GetMetadata() *Metadata  { return e.metadata }
func (e *ElementaryTypeExpr) SetMetadata(m *Metadata) { e.metadata = m }

func (*PragmaDirective) sourceUnitItemNode() {}
func (*ImportDirective) sourceUnitItemNode() {}
func (*ContractDef) sourceUnitItemNode()     {}
func (*StructDef) sourceUnitItemNode()       {}
func (*EnumDef) sourceUnitItemNode()         {}
func (*ErrorDef) sourceUnitItemNode()        {}

func (*StructDef) contractItemNode()         {}
func (*EnumDef) contractItemNode()           {}
func (*EventDef) contractItemNode()          {}
func (*ErrorDef) contractItemNode()          {}
func (*UsingForDirective) contractItemNode() {}
func (*ModifierDef) contractItemNode()       {}
func (*FunctionDef) contractItemNode()       {}
func (*VariableDecl) contractItemNode()      {}

func (*Block) stmtNode()           {}
func (*VarDeclStmt) stmtNode()     {}
func (*ExprStmt) stmtNode()        {}
func (*IfStmt) stmtNode()          {}
func (*ForStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()       {}
func (*DoWhileStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()      {}
func (*EmitStmt) stmtNode()        {}
func (*RevertStmt) stmtNode()      {}
func (*BreakStmt) stmtNode()       {}
func (*ContinueStmt) stmtNode()    {}
func (*PlaceholderStmt) stmtNode() {}

func (*Identifier) exprNode()         {}
func (*Literal) exprNode()            {}
func (*IndexExpr) exprNode()          {}
func (*MemberAccessExpr) exprNode()   {}
func (*CallExpr) exprNode()           {}
func (*BinaryExpr) exprNode()         {}
func (*UnaryExpr) exprNode()          {}
func (*AssignExpr) exprNode()         {}
func (*ConditionalExpr) exprNode()    {}
func (*TupleExpr) exprNode()          {}
func (*ParenExpr) exprNode()          {}
func (*ArrayLiteralExpr) exprNode()   {}
func (*NewExpr) exprNode()            {}
func (*ElementaryTypeExpr) exprNode() {}

func (*ElementaryTypeName) typeNameNode()  {}
func (*UserDefinedTypeName) typeNameNode() {}
func (*ArrayTypeName) typeNameNode()       {}
func (*MappingTypeName) typeNameNode()     {}

// String renders every node through its Doc

func (i *Ident) String() string                 { return Prettier(i) }
func (u *SourceUnit) String() string            { return Prettier(u) }
func (p *PragmaDirective) String() string       { return Prettier(p) }
func (im *ImportDirective) String() string      { return Prettier(im) }
func (c *ContractDef) String() string           { return Prettier(c) }
func (is *InheritanceSpecifier) String() string { return Prettier(is) }
func (s *StructDef) String() string             { return Prettier(s) }
func (e *EnumDef) String() string               { return Prettier(e) }
func (e *EventDef) String() string              { return Prettier(e) }
func (e *ErrorDef) String() string              { return Prettier(e) }
func (u *UsingForDirective) String() string     { return Prettier(u) }
func (m *ModifierDef) String() string           { return Prettier(m) }
func (f *FunctionDef) String() string           { return Prettier(f) }
func (mi *ModifierInvocation) String() string   { return Prettier(mi) }
func (v *VariableDecl) String() string          { return Prettier(v) }
func (t *ElementaryTypeName) String() string    { return Prettier(t) }
func (t *UserDefinedTypeName) String() string   { return Prettier(t) }
func (t *ArrayTypeName) String() string         { return Prettier(t) }
func (t *MappingTypeName) String() string       { return Prettier(t) }
func (b *Block) String() string                 { return Prettier(b) }
func (v *VarDeclStmt) String() string           { return Prettier(v) }
func (e *ExprStmt) String() string              { return Prettier(e) }
func (s *IfStmt) String() string                { return Prettier(s) }
func (s *ForStmt) String() string               { return Prettier(s) }
func (s *WhileStmt) String() string             { return Prettier(s) }
func (s *DoWhileStmt) String() string           { return Prettier(s) }
func (r *ReturnStmt) String() string            { return Prettier(r) }
func (e *EmitStmt) String() string              { return Prettier(e) }
func (r *RevertStmt) String() string            { return Prettier(r) }
func (b *BreakStmt) String() string             { return Prettier(b) }
func (c *ContinueStmt) String() string          { return Prettier(c) }
func (p *PlaceholderStmt) String() string       { return Prettier(p) }
func (i *Identifier) String() string            { return Prettier(i) }
func (l *Literal) String() string               { return Prettier(l) }
func (i *IndexExpr) String() string             { return Prettier(i) }
func (m *MemberAccessExpr) String() string      { return Prettier(m) }
func (c *CallExpr) String() string              { return Prettier(c) }
func (b *BinaryExpr) String() string            { return Prettier(b) }
func (u *UnaryExpr) String() string             { return Prettier(u) }
func (a *AssignExpr) String() string            { return Prettier(a) }
func (c *ConditionalExpr) String() string       { return Prettier(c) }
func (t *TupleExpr) String() string             { return Prettier(t) }
func (p *ParenExpr) String() string             { return Prettier(p) }
func (a *ArrayLiteralExpr) String() string      { return Prettier(a) }
func (n *NewExpr) String() string               { return Prettier(n) }
func (e *ElementaryTypeExpr) String() string    { return Prettier(e) }
