package canonical

import (
	"github.com/pipeforge-labs/pipeforge/pkg/core"
	"github.com/spf13/cast"
)

// FromExpr converts an AST expression into its canonical map form.
func FromExpr(expr core.Expr) map[string]any {
	switch e := expr.(type) {
	case *core.StarExpr:
		return allMarker()
	case *core.ColumnRef:
		return fromColumnRef(e)
	case *core.Literal:
		return fromLiteral(e)
	case *core.BinaryExpr:
		return fromBinaryExpr(e)
	case *core.UnaryExpr:
		return fromUnaryExpr(e)
	case *core.FuncCall:
		return fromFuncCall(e)
	case *core.InExpr:
		return fromInExpr(e)
	default:
		return unknownNode(expr)
	}
}

func fromColumnRef(col *core.ColumnRef) map[string]any {
	// A star parsed as a column is still the wildcard
	if col.Name == "*" {
		return allMarker()
	}

	m := map[string]any{
		"type": TypeColumn,
		"name": col.Name,
	}
	if col.Table != "" {
		m["table"] = col.Table
	}
	if col.Alias != "" {
		m["alias"] = col.Alias
	}
	return m
}

func fromLiteral(lit *core.Literal) map[string]any {
	m := map[string]any{
		"type": TypeLiteral,
		"kind": lit.Kind.String(),
	}

	switch lit.Kind {
	case core.LiteralNumber:
		value, truncated := numericValue(lit.Value)
		m["value"] = value
		if truncated {
			// Truncation discards the fraction; keep the source text so
			// consumers can recover it.
			m["raw"] = lit.Value
		}
	case core.LiteralNull:
		m["value"] = nil
	default:
		m["value"] = lit.Value
	}

	return m
}

// numericValue coerces a numeric literal to its canonical integer value.
// Fractional parts are truncated, not rounded. The second return reports
// whether truncation lost information.
func numericValue(text string) (int64, bool) {
	f := cast.ToFloat64(text)
	n := int64(f)
	return n, f != float64(n)
}

func fromBinaryExpr(expr *core.BinaryExpr) map[string]any {
	return map[string]any{
		"type":     TypeBinaryOp,
		"operator": expr.Op.String(),
		"left":     FromExpr(expr.Left),
		"right":    FromExpr(expr.Right),
	}
}

func fromUnaryExpr(expr *core.UnaryExpr) map[string]any {
	return map[string]any{
		"type":     TypeUnaryOp,
		"operator": expr.Op.String(),
		"operand":  FromExpr(expr.Expr),
	}
}

func fromFuncCall(fn *core.FuncCall) map[string]any {
	var args []any
	if fn.Star {
		args = []any{allMarker()}
	} else {
		args = make([]any, 0, len(fn.Args))
		for _, arg := range fn.Args {
			args = append(args, FromExpr(arg))
		}
	}

	return map[string]any{
		"type":      TypeFunctionCall,
		"name":      fn.Name,
		"distinct":  fn.Distinct,
		"arguments": args,
	}
}

func fromInExpr(in *core.InExpr) map[string]any {
	values := make([]any, 0, len(in.Values))
	for _, v := range in.Values {
		values = append(values, FromExpr(v))
	}

	return map[string]any{
		"type":       TypeInExpression,
		"expression": FromExpr(in.Expr),
		"values":     values,
		"negated":    in.Not,
	}
}
