package core

// ---------- Statement Types ----------

// SelectStmt represents a SELECT statement.
// Columns always holds at least one item; a bare * parses to StarExpr.
type SelectStmt struct {
	Columns []Expr
	From    *TableRef
	Joins   []*Join
	Where   Expr
	GroupBy *GroupBySpec
	Having  Expr
	OrderBy []OrderByItem
	Limit   Expr
	Offset  Expr
}

func (*SelectStmt) stmtNode() {}

// InsertStmt represents an INSERT statement.
// Values holds one inner list per parenthesized row group. When Columns is
// non-empty, callers may rely on every inner list having the same length as
// Columns; the parser records the lists as written and leaves that check to
// higher layers.
type InsertStmt struct {
	Table   *TableRef
	Columns []string
	Values  [][]Expr
}

func (*InsertStmt) stmtNode() {}

// UpdateStmt represents an UPDATE statement.
type UpdateStmt struct {
	Table       *TableRef
	Assignments []Assignment
	Where       Expr
}

func (*UpdateStmt) stmtNode() {}

// DeleteStmt represents a DELETE statement.
type DeleteStmt struct {
	Table *TableRef
	Where Expr
}

func (*DeleteStmt) stmtNode() {}
