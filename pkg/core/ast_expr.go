package core

import "github.com/pipeforge-labs/pipeforge/pkg/token"

// ---------- Expression Types ----------

// ColumnRef represents a column reference (possibly qualified, possibly
// aliased in a select list).
type ColumnRef struct {
	Table string // optional table/alias qualifier
	Name  string
	Alias string // optional AS alias, select lists only
}

func (*ColumnRef) exprNode() {}

// Literal represents a literal value. Value holds the source text of the
// literal: the digits for numbers, the unquoted content for strings, and
// "NULL" for the null literal.
type Literal struct {
	Kind  LiteralKind
	Value string
}

func (*Literal) exprNode() {}

// LiteralKind represents the type of a literal.
type LiteralKind int

// LiteralKind constants for SQL literal value types.
const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralNull
)

// String returns the kind name used in canonical serialization.
func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "number"
	case LiteralString:
		return "string"
	case LiteralNull:
		return "null"
	}
	return "unknown"
}

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	Left  Expr
	Op    token.TokenType
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a unary expression (NOT x, -x).
type UnaryExpr struct {
	Op   token.TokenType
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// FuncCall represents a function call.
type FuncCall struct {
	Name     string
	Distinct bool
	Args     []Expr
	Star     bool // COUNT(*)
}

func (*FuncCall) exprNode() {}

// InExpr represents an IN or NOT IN expression over a literal value list.
type InExpr struct {
	Expr   Expr
	Not    bool
	Values []Expr
}

func (*InExpr) exprNode() {}

// StarExpr represents the * wildcard marker in a select list.
type StarExpr struct {
	Table string // optional table qualifier for t.*
}

func (*StarExpr) exprNode() {}
