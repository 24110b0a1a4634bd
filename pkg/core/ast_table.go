package core

// ---------- Auxiliary Clause Types ----------

// TableRef represents a table reference with optional schema qualification
// and alias.
type TableRef struct {
	Schema string
	Name   string
	Alias  string
}

// Join represents a JOIN clause.
type Join struct {
	Type      JoinType
	Table     *TableRef
	Condition Expr // ON clause, optional
}

// JoinType represents the type of join. The value is the SQL keyword.
type JoinType string

// JoinType constants for the supported join forms.
const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinOuter JoinType = "OUTER"
)

// OrderByItem represents an item in an ORDER BY clause.
type OrderByItem struct {
	Expr Expr
	Desc bool
}

// GroupBySpec represents a GROUP BY clause.
type GroupBySpec struct {
	Exprs []Expr
}

// Assignment represents a column = value pair in an UPDATE SET clause.
type Assignment struct {
	Column string
	Value  Expr
}
