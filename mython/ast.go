package mython

// Statement is any executable AST node. Mython draws no syntactic line
// between statements and expressions: everything evaluates to a value handle
// (possibly the empty one), so a single node interface covers both.
type Statement interface {
	Pos() Position
	stmtNode()
}

type NumberLit struct {
	Value    int64
	position Position
}

func (n *NumberLit) stmtNode()     {}
func (n *NumberLit) Pos() Position { return n.position }

type StringLit struct {
	Value    string
	position Position
}

func (n *StringLit) stmtNode()     {}
func (n *StringLit) Pos() Position { return n.position }

type BoolLit struct {
	Value    bool
	position Position
}

func (n *BoolLit) stmtNode()     {}
func (n *BoolLit) Pos() Position { return n.position }

type NoneLit struct {
	position Position
}

func (n *NoneLit) stmtNode()     {}
func (n *NoneLit) Pos() Position { return n.position }

// VarRef resolves a dotted identifier chain: the first name against the
// closure, every following name against the instance field map reached so
// far.
type VarRef struct {
	Ids      []string
	position Position
}

func (n *VarRef) stmtNode()     {}
func (n *VarRef) Pos() Position { return n.position }

type AssignStmt struct {
	Name     string
	Value    Statement
	position Position
}

func (n *AssignStmt) stmtNode()     {}
func (n *AssignStmt) Pos() Position { return n.position }

type FieldAssignStmt struct {
	Object   *VarRef
	Field    string
	Value    Statement
	position Position
}

func (n *FieldAssignStmt) stmtNode()     {}
func (n *FieldAssignStmt) Pos() Position { return n.position }

type PrintStmt struct {
	Args     []Statement
	position Position
}

func (n *PrintStmt) stmtNode()     {}
func (n *PrintStmt) Pos() Position { return n.position }

type MethodCallExpr struct {
	Object   Statement
	Method   string
	Args     []Statement
	position Position
}

func (n *MethodCallExpr) stmtNode()     {}
func (n *MethodCallExpr) Pos() Position { return n.position }

// NewInstanceExpr constructs a fresh instance. Class is resolved statically
// when the parser has already seen the definition; otherwise it is nil and
// ClassName is looked up in the closure at execution time. Arguments are only
// evaluated when the class defines an __init__ of matching arity.
type NewInstanceExpr struct {
	ClassName string
	Class     *ClassDef
	Args      []Statement
	position  Position
}

func (n *NewInstanceExpr) stmtNode()     {}
func (n *NewInstanceExpr) Pos() Position { return n.position }

// StringifyExpr is the str(...) form: the printed form of its argument as an
// owning string.
type StringifyExpr struct {
	Arg      Statement
	position Position
}

func (n *StringifyExpr) stmtNode()     {}
func (n *StringifyExpr) Pos() Position { return n.position }

// BinaryExpr covers the four arithmetic operators; Op is one of
// '+', '-', '*', '/'.
type BinaryExpr struct {
	Op       byte
	Lhs      Statement
	Rhs      Statement
	position Position
}

func (n *BinaryExpr) stmtNode()     {}
func (n *BinaryExpr) Pos() Position { return n.position }

// LogicalExpr covers and/or. Both operands are always evaluated.
type LogicalExpr struct {
	Op       TokenType
	Lhs      Statement
	Rhs      Statement
	position Position
}

func (n *LogicalExpr) stmtNode()     {}
func (n *LogicalExpr) Pos() Position { return n.position }

type NotExpr struct {
	Arg      Statement
	position Position
}

func (n *NotExpr) stmtNode()     {}
func (n *NotExpr) Pos() Position { return n.position }

// ComparisonExpr applies one of ==, !=, <, >, <=, >= and yields a bool.
type ComparisonExpr struct {
	Op       string
	Lhs      Statement
	Rhs      Statement
	position Position
}

func (n *ComparisonExpr) stmtNode()     {}
func (n *ComparisonExpr) Pos() Position { return n.position }

type IfStmt struct {
	Cond     Statement
	Then     *BlockStmt
	Else     *BlockStmt
	position Position
}

func (n *IfStmt) stmtNode()     {}
func (n *IfStmt) Pos() Position { return n.position }

// BlockStmt runs its statements in order and yields the empty handle.
type BlockStmt struct {
	Stmts    []Statement
	position Position
}

func (n *BlockStmt) stmtNode()     {}
func (n *BlockStmt) Pos() Position { return n.position }

type ReturnStmt struct {
	Value    Statement // nil for a bare return
	position Position
}

func (n *ReturnStmt) stmtNode()     {}
func (n *ReturnStmt) Pos() Position { return n.position }

// ClassDefStmt binds a class descriptor, built by the parser, under its name
// in the closure. A parent the parser could not see (the REPL compiles one
// submission at a time) is resolved from the closure on execution.
type ClassDefStmt struct {
	Class      *ClassDef
	ParentName string
	position   Position
}

func (n *ClassDefStmt) stmtNode()     {}
func (n *ClassDefStmt) Pos() Position { return n.position }

// MethodBody wraps a method's implementation and traps the non-local return
// transfer raised anywhere inside it.
type MethodBody struct {
	Body Statement
}

func (n *MethodBody) stmtNode()     {}
func (n *MethodBody) Pos() Position { return n.Body.Pos() }
