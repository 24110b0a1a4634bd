package core

// Statement is a marker interface for statement nodes.
// The variant set is closed: SelectStmt, InsertStmt, UpdateStmt, DeleteStmt.
type Statement interface {
	stmtNode() // Marker method to distinguish statements
}

// Expr is a marker interface for expression nodes.
// The variant set is closed: ColumnRef, Literal, BinaryExpr, UnaryExpr,
// FuncCall, InExpr, StarExpr.
type Expr interface {
	exprNode() // Marker method to distinguish expressions
}
