package canonical

import "github.com/pipeforge-labs/pipeforge/pkg/core"

// FromStatement converts an AST statement into its canonical map form.
func FromStatement(stmt core.Statement) map[string]any {
	switch s := stmt.(type) {
	case *core.SelectStmt:
		return fromSelect(s)
	case *core.InsertStmt:
		return fromInsert(s)
	case *core.UpdateStmt:
		return fromUpdate(s)
	case *core.DeleteStmt:
		return fromDelete(s)
	default:
		return unknownNode(stmt)
	}
}

func fromSelect(s *core.SelectStmt) map[string]any {
	// A SELECT with nothing projected means everything: canonical form
	// always carries at least the wildcard marker.
	columns := make([]any, 0, len(s.Columns))
	for _, col := range s.Columns {
		columns = append(columns, FromExpr(col))
	}
	if len(columns) == 0 {
		columns = append(columns, allMarker())
	}

	m := map[string]any{
		"type":    TypeSelect,
		"columns": columns,
	}

	if s.From != nil {
		m["from"] = fromTableRef(s.From)
	}
	if len(s.Joins) > 0 {
		joins := make([]any, 0, len(s.Joins))
		for _, j := range s.Joins {
			joins = append(joins, fromJoin(j))
		}
		m["joins"] = joins
	}
	if s.Where != nil {
		m["where"] = FromExpr(s.Where)
	}
	if s.GroupBy != nil {
		m["group_by"] = fromGroupBy(s.GroupBy)
	}
	if s.Having != nil {
		m["having"] = FromExpr(s.Having)
	}
	if len(s.OrderBy) > 0 {
		items := make([]any, 0, len(s.OrderBy))
		for _, item := range s.OrderBy {
			items = append(items, fromOrderBy(item))
		}
		m["order_by"] = items
	}
	if s.Limit != nil {
		m["limit"] = FromExpr(s.Limit)
	}
	if s.Offset != nil {
		m["offset"] = FromExpr(s.Offset)
	}

	return m
}

func fromInsert(s *core.InsertStmt) map[string]any {
	columns := make([]any, 0, len(s.Columns))
	for _, col := range s.Columns {
		columns = append(columns, col)
	}

	values := make([]any, 0, len(s.Values))
	for _, row := range s.Values {
		vals := make([]any, 0, len(row))
		for _, v := range row {
			vals = append(vals, FromExpr(v))
		}
		values = append(values, vals)
	}

	m := map[string]any{
		"type":    TypeInsert,
		"columns": columns,
		"values":  values,
	}
	if s.Table != nil {
		m["table"] = fromTableRef(s.Table)
	}
	return m
}

func fromUpdate(s *core.UpdateStmt) map[string]any {
	assignments := make([]any, 0, len(s.Assignments))
	for _, a := range s.Assignments {
		assignments = append(assignments, fromAssignment(a))
	}

	m := map[string]any{
		"type":        TypeUpdate,
		"assignments": assignments,
	}
	if s.Table != nil {
		m["table"] = fromTableRef(s.Table)
	}
	if s.Where != nil {
		m["where"] = FromExpr(s.Where)
	}
	return m
}

func fromDelete(s *core.DeleteStmt) map[string]any {
	m := map[string]any{
		"type": TypeDelete,
	}
	if s.Table != nil {
		m["table"] = fromTableRef(s.Table)
	}
	if s.Where != nil {
		m["where"] = FromExpr(s.Where)
	}
	return m
}

// fromTableRef omits absent optional keys instead of emitting nulls.
func fromTableRef(t *core.TableRef) map[string]any {
	m := map[string]any{
		"type":  TypeTable,
		"table": t.Name,
	}
	if t.Schema != "" {
		m["schema"] = t.Schema
	}
	if t.Alias != "" {
		m["alias"] = t.Alias
	}
	return m
}

func fromJoin(j *core.Join) map[string]any {
	m := map[string]any{
		"type": TypeJoin,
		"kind": string(j.Type),
	}
	if j.Table != nil {
		m["table"] = fromTableRef(j.Table)
	}
	if j.Condition != nil {
		m["condition"] = FromExpr(j.Condition)
	}
	return m
}

func fromOrderBy(item core.OrderByItem) map[string]any {
	direction := "ASC"
	if item.Desc {
		direction = "DESC"
	}
	return map[string]any{
		"type":       TypeOrderBy,
		"expression": FromExpr(item.Expr),
		"direction":  direction,
	}
}

func fromGroupBy(g *core.GroupBySpec) map[string]any {
	exprs := make([]any, 0, len(g.Exprs))
	for _, e := range g.Exprs {
		exprs = append(exprs, FromExpr(e))
	}
	return map[string]any{
		"type":        TypeGroupBy,
		"expressions": exprs,
	}
}

func fromAssignment(a core.Assignment) map[string]any {
	return map[string]any{
		"type":   TypeAssignment,
		"column": a.Column,
		"value":  FromExpr(a.Value),
	}
}
