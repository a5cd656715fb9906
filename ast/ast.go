package ast

// Node is any syntax tree node produced by the parser. The set of
// implementations is closed: only the types in this package satisfy it.
type Node interface {
	isNode()
}

// Statement is a top-level executable unit. Loop and branch bodies are
// themselves single statements; there is no block node.
type Statement interface {
	Node
	isStatement()
}

type Expr interface {
	Node
	isExpr()
}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpLt
	OpGt
	OpEq
	OpNe
)

var binaryOpNames = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpLt:  "<",
	OpGt:  ">",
	OpEq:  "==",
	OpNe:  "!=",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpNames) {
		return "?"
	}
	return binaryOpNames[op]
}

// IsComparison reports whether op yields a 0/1 truth value.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpLt, OpGt, OpEq, OpNe:
		return true
	default:
		return false
	}
}

type NumberLit struct {
	Value int64
}

func (NumberLit) isNode() {}
func (NumberLit) isExpr() {}

type VarRef struct {
	Name string
}

func (VarRef) isNode() {}
func (VarRef) isExpr() {}

type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (BinaryExpr) isNode() {}
func (BinaryExpr) isExpr() {}

type AssignStmt struct {
	Name string
	Expr Expr
}

func (AssignStmt) isNode()      {}
func (AssignStmt) isStatement() {}

type PrintStmt struct {
	Expr Expr
}

func (PrintStmt) isNode()      {}
func (PrintStmt) isStatement() {}

type InputStmt struct {
	Name string
}

func (InputStmt) isNode()      {}
func (InputStmt) isStatement() {}

// IfStmt selects Then on a nonzero condition. Else is nil when the
// source had no ELSE clause.
type IfStmt struct {
	Cond Expr
	Then Statement
	Else Statement
}

func (IfStmt) isNode()      {}
func (IfStmt) isStatement() {}

type WhileStmt struct {
	Cond Expr
	Body Statement
}

func (WhileStmt) isNode()      {}
func (WhileStmt) isStatement() {}
