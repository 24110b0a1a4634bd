// Package canonical converts AST nodes into their canonical map form: a
// structurally normalized, type-tagged, JSON-compatible representation.
// The canonical map is the only contract between the parser and the
// descriptor builder, which means a previously persisted map can be
// handed to the builder in place of re-parsing the SQL text.
//
// Serialization is total and idempotent. Every AST node produces a map;
// node shapes the serializer does not recognize become
// {"type": "unknown", ...} instead of failing. Normalize passes an
// already-canonical map through unchanged.
package canonical

import (
	"fmt"

	"github.com/pipeforge-labs/pipeforge/pkg/core"
)

// Type tags carried by every canonical map.
const (
	TypeSelect       = "select"
	TypeInsert       = "insert"
	TypeUpdate       = "update"
	TypeDelete       = "delete"
	TypeColumn       = "column"
	TypeLiteral      = "literal"
	TypeBinaryOp     = "binary_op"
	TypeUnaryOp      = "unary_op"
	TypeFunctionCall = "function_call"
	TypeInExpression = "in_expression"
	TypeTable        = "table"
	TypeJoin         = "join"
	TypeOrderBy      = "order_by"
	TypeGroupBy      = "group_by"
	TypeAssignment   = "assignment"
	TypeAll          = "all"
	TypeUnknown      = "unknown"
)

// Normalize returns the canonical map form of v. Already-canonical maps
// pass through unchanged; AST nodes are serialized; anything else becomes
// the unknown marker.
func Normalize(v any) any {
	switch n := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return n
	case core.Statement:
		return FromStatement(n)
	case core.Expr:
		return FromExpr(n)
	default:
		return unknownNode(n)
	}
}

// Tag returns the type tag of a canonical map, or "" when v is not a
// canonical map.
func Tag(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	tag, _ := m["type"].(string)
	return tag
}

// allMarker is the canonical form of a wildcard, whatever its origin.
func allMarker() map[string]any {
	return map[string]any{"type": TypeAll}
}

// unknownNode is the canonical fallback for node shapes the serializer
// does not recognize. Serialization never fails on a structurally valid
// tree.
func unknownNode(v any) map[string]any {
	return map[string]any{
		"type":          TypeUnknown,
		"original_kind": fmt.Sprintf("%T", v),
		"value":         fmt.Sprintf("%v", v),
	}
}
