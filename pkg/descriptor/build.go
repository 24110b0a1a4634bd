package descriptor

import (
	"fmt"
	"strings"

	"github.com/pipeforge-labs/pipeforge/pkg/canonical"
	"github.com/pipeforge-labs/pipeforge/pkg/source"
	"github.com/spf13/cast"
)

// timestampHints are matched case-insensitively as substrings of
// condition column names, in tree order, first match wins.
var timestampHints = []string{"time", "date", "created", "updated", "timestamp", "ts"}

// Build derives a pipeline descriptor from a statement and its
// configuration. The node may be a parsed AST statement or a previously
// persisted canonical map; both normalize to the same input.
func Build(node any, cfg Config) (*Descriptor, error) {
	m, ok := canonical.Normalize(node).(map[string]any)
	if !ok {
		return nil, &Error{Message: "input is not a statement"}
	}
	if tag := canonical.Tag(m); tag != canonical.TypeSelect {
		return nil, &Error{Message: fmt.Sprintf("pipelines are described by SELECT statements, got %q", tag)}
	}

	from, ok := m["from"].(map[string]any)
	if !ok {
		return nil, &Error{Field: "from", Message: "missing FROM clause"}
	}
	table := cast.ToString(from["table"])
	if table == "" {
		return nil, &Error{Field: "from", Message: "missing table name"}
	}

	if cfg.SourceType == "" {
		cfg.SourceType = DefaultSourceType
	}
	if cfg.Sink.Type == "" {
		cfg.Sink.Type = DefaultSinkType
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}

	cls := source.Classify(cfg.SourceType, table, cast.ToString(from["schema"]))

	sink := Sink{
		Type:       cfg.Sink.Type,
		Table:      cfg.Sink.Table,
		DefaultURL: cfg.Sink.DefaultURL,
	}
	if sink.Table == "" {
		sink.Table = table
	}
	if sink.DefaultURL == "" {
		sink.DefaultURL = source.DefaultURL(sink.Type)
	}

	conditions, err := extractConditions(m["where"])
	if err != nil {
		return nil, err
	}
	if conditions == nil {
		conditions = []Condition{}
	}

	timestampColumn := cfg.TimestampColumn
	if timestampColumn == "" {
		timestampColumn = detectTimestampColumn(m["where"])
	}
	if timestampColumn == "" {
		timestampColumn = DefaultTimestampColumn
	}

	// No detection heuristic for the id column; configuration or the
	// fixed fallback.
	idColumn := cfg.IDColumn
	if idColumn == "" {
		idColumn = DefaultIDColumn
	}

	return &Descriptor{
		Source:          cls,
		Sink:            sink,
		Columns:         extractColumns(m["columns"], cls.ReservedColumns),
		Conditions:      conditions,
		TimestampColumn: timestampColumn,
		IDColumn:        idColumn,
		Config:          cfg,
	}, nil
}

// ---------- Columns ----------

// extractColumns maps canonical column entries to names, dropping
// reserved bookkeeping columns. Entries that are not plain columns (the
// projection may carry function calls) contribute no column name.
func extractColumns(v any, reserved []string) []string {
	entries, ok := v.([]any)
	if !ok {
		return []string{Wildcard}
	}

	var columns []string
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		switch canonical.Tag(m) {
		case canonical.TypeAll:
			columns = append(columns, Wildcard)
		case canonical.TypeColumn:
			name := cast.ToString(m["name"])
			if name == "" || isReserved(name, reserved) {
				continue
			}
			columns = append(columns, name)
		}
	}

	if len(columns) == 0 {
		return []string{Wildcard}
	}
	return columns
}

func isReserved(name string, reserved []string) bool {
	for _, r := range reserved {
		if strings.EqualFold(name, r) {
			return true
		}
	}
	return false
}

// ---------- Conditions ----------

// extractConditions decomposes a canonical where tree into the flat
// ordered condition list. Conjunctions flatten to one entry per leaf;
// disjunctions stay composite.
func extractConditions(where any) ([]Condition, error) {
	if where == nil {
		return nil, nil
	}
	m, ok := where.(map[string]any)
	if !ok {
		return nil, &Error{Field: "where", Message: "malformed condition shape"}
	}

	if canonical.Tag(m) == canonical.TypeBinaryOp && operatorOf(m) == "AND" {
		left, err := extractConditions(m["left"])
		if err != nil {
			return nil, err
		}
		right, err := extractConditions(m["right"])
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	}

	cond, err := buildCondition(m)
	if err != nil {
		return nil, err
	}
	return []Condition{cond}, nil
}

func operatorOf(m map[string]any) string {
	return cast.ToString(m["operator"])
}

// buildCondition normalizes one canonical condition node.
func buildCondition(m map[string]any) (Condition, error) {
	switch canonical.Tag(m) {
	case canonical.TypeBinaryOp:
		switch operatorOf(m) {
		case "OR":
			return buildDisjunction(m)
		case "AND":
			return buildConjunction(m)
		default:
			return buildComparison(m)
		}
	case canonical.TypeInExpression:
		return buildMembership(m)
	default:
		return Condition{}, &Error{
			Field:   "where",
			Message: fmt.Sprintf("unsupported condition node %q", canonical.Tag(m)),
		}
	}
}

// buildDisjunction keeps OR branches composite for the sink-side query
// builder. Directly nested ORs merge into one entry; AND branches stay
// grouped so the original boolean structure survives.
func buildDisjunction(m map[string]any) (Condition, error) {
	var subs []Condition
	for _, side := range []any{m["left"], m["right"]} {
		sm, ok := side.(map[string]any)
		if !ok {
			return Condition{}, &Error{Field: "where", Message: "malformed condition shape"}
		}
		sub, err := buildCondition(sm)
		if err != nil {
			return Condition{}, err
		}
		if sub.Kind == ConditionDisjunction {
			subs = append(subs, sub.Or...)
			continue
		}
		subs = append(subs, sub)
	}
	return Condition{Kind: ConditionDisjunction, Or: subs}, nil
}

func buildConjunction(m map[string]any) (Condition, error) {
	entries, err := extractConditions(m)
	if err != nil {
		return Condition{}, err
	}
	return Condition{Kind: ConditionConjunction, And: entries}, nil
}

func buildComparison(m map[string]any) (Condition, error) {
	column, err := conditionColumn(m["left"])
	if err != nil {
		return Condition{}, err
	}
	value, err := conditionValue(m["right"])
	if err != nil {
		return Condition{}, err
	}
	return Condition{
		Kind:     ConditionComparison,
		Column:   column,
		Operator: operatorOf(m),
		Value:    value,
	}, nil
}

func buildMembership(m map[string]any) (Condition, error) {
	column, err := conditionColumn(m["expression"])
	if err != nil {
		return Condition{}, err
	}
	raw, ok := m["values"].([]any)
	if !ok {
		return Condition{}, &Error{Field: "where", Message: "malformed IN value list"}
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		formatted, err := conditionValue(v)
		if err != nil {
			return Condition{}, err
		}
		values = append(values, formatted)
	}
	return Condition{
		Kind:    ConditionMembership,
		Column:  column,
		Values:  values,
		Negated: cast.ToBool(m["negated"]),
	}, nil
}

// conditionColumn requires the tested side of a condition to be a plain
// column reference.
func conditionColumn(v any) (string, error) {
	m, ok := v.(map[string]any)
	if !ok || canonical.Tag(m) != canonical.TypeColumn {
		return "", &Error{Field: "where", Message: "condition must test a column"}
	}
	name := cast.ToString(m["name"])
	if name == "" {
		return "", &Error{Field: "where", Message: "condition column has no name"}
	}
	return name, nil
}

// conditionValue renders a literal for direct embedding in generated
// source text. The quoting distinction is load-bearing: the consumer
// splices this string into code, so 25 and "25" mean different things.
func conditionValue(v any) (string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", &Error{Field: "where", Message: "malformed condition value"}
	}

	switch canonical.Tag(m) {
	case canonical.TypeLiteral:
		switch cast.ToString(m["kind"]) {
		case "string":
			return fmt.Sprintf("%q", cast.ToString(m["value"])), nil
		case "number":
			return cast.ToString(m["value"]), nil
		case "null":
			return "NULL", nil
		default:
			return "", &Error{
				Field:   "where",
				Message: fmt.Sprintf("unsupported literal kind %q", cast.ToString(m["kind"])),
			}
		}
	case canonical.TypeUnaryOp:
		if cast.ToString(m["operator"]) == "-" {
			inner, err := conditionValue(m["operand"])
			if err != nil {
				return "", err
			}
			return "-" + inner, nil
		}
		return "", &Error{
			Field:   "where",
			Message: fmt.Sprintf("unsupported condition operator %q", cast.ToString(m["operator"])),
		}
	default:
		return "", &Error{
			Field:   "where",
			Message: fmt.Sprintf("unsupported condition value %q", canonical.Tag(m)),
		}
	}
}

// ---------- Timestamp Detection ----------

// detectTimestampColumn scans the canonical where tree depth-first, left
// to right, for the first condition column whose name contains a
// timestamp hint.
func detectTimestampColumn(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}

	switch canonical.Tag(m) {
	case canonical.TypeBinaryOp:
		switch operatorOf(m) {
		case "AND", "OR":
			if col := detectTimestampColumn(m["left"]); col != "" {
				return col
			}
			return detectTimestampColumn(m["right"])
		default:
			return timestampHintMatch(m["left"])
		}
	case canonical.TypeInExpression:
		return timestampHintMatch(m["expression"])
	case canonical.TypeUnaryOp:
		return detectTimestampColumn(m["operand"])
	}
	return ""
}

func timestampHintMatch(v any) string {
	m, ok := v.(map[string]any)
	if !ok || canonical.Tag(m) != canonical.TypeColumn {
		return ""
	}
	name := cast.ToString(m["name"])
	lower := strings.ToLower(name)
	for _, hint := range timestampHints {
		if strings.Contains(lower, hint) {
			return name
		}
	}
	return ""
}
