package source

import (
	"fmt"
	"sort"
	"strings"
)

// Category assignment is a fixed partition; types not listed here are
// treated as database sources.
var categories = map[string]Category{
	"csv":           CategoryFile,
	"cassandra":     CategoryDatabase,
	"postgres":      CategoryDatabase,
	"postgresql":    CategoryDatabase,
	"mysql":         CategoryDatabase,
	"mongodb":       CategoryDatabase,
	"druid":         CategoryAPI,
	"elasticsearch": CategoryAPI,
}

type hostPort struct {
	Host string
	Port string
}

var databaseDefaults = map[string]hostPort{
	"cassandra": {"127.0.0.1", "9042"},
	"postgres":  {"localhost", "5432"},
	"mysql":     {"localhost", "3306"},
	"mongodb":   {"localhost", "27017"},
}

// unknownDatabase is the fallback endpoint for unrecognized types.
var unknownDatabase = hostPort{"localhost", "8080"}

var apiDefaults = map[string]string{
	"druid":         "http://localhost:8888",
	"elasticsearch": "http://localhost:9200",
}

// aliases folds alternate spellings onto the canonical type name.
var aliases = map[string]string{
	"postgresql": "postgres",
}

// Classify derives the full classification for a source type. The type
// tag is matched case-insensitively; unrecognized tags classify as
// database sources with generic defaults.
func Classify(sourceType, table, schema string) Classification {
	typ := strings.ToLower(sourceType)
	category, known := categories[typ]
	if !known {
		category = CategoryDatabase
	}

	return Classification{
		Type:            typ,
		Table:           table,
		Schema:          schema,
		Category:        category,
		Connection:      connectionFor(typ, category, table, known),
		Watermark:       watermarkFor(category),
		ReservedColumns: []string{RowNumberColumn},
	}
}

// KnownTypes returns all recognized source type tags, sorted.
func KnownTypes() []string {
	types := make([]string, 0, len(categories))
	for t := range categories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// IsKnownType reports whether the tag names a recognized source type.
func IsKnownType(sourceType string) bool {
	_, ok := categories[strings.ToLower(sourceType)]
	return ok
}

// IsKnownSink reports whether the tag names a sink with a dedicated
// default endpoint.
func IsKnownSink(sinkType string) bool {
	_, ok := apiDefaults[normalizeType(sinkType)]
	return ok
}

// DefaultURL returns the default base URL for an API type. Other types
// fall back to the generic localhost endpoint.
func DefaultURL(typeName string) string {
	if url, ok := apiDefaults[normalizeType(typeName)]; ok {
		return url
	}
	return fmt.Sprintf("http://%s:%s", unknownDatabase.Host, unknownDatabase.Port)
}

// normalizeType lowers the tag and folds aliases, so "PostgreSQL" and
// "postgres" share one template set.
func normalizeType(sourceType string) string {
	typ := strings.ToLower(sourceType)
	if canonical, ok := aliases[typ]; ok {
		return canonical
	}
	return typ
}

func connectionFor(typ string, category Category, table string, known bool) Connection {
	switch category {
	case CategoryFile:
		return fileConnection(typ, table)
	case CategoryAPI:
		return apiConnection(typ)
	default:
		return databaseConnection(typ, known)
	}
}

// fileConnection scopes the path variables to the table so projects
// moving several files do not share one path setting.
func fileConnection(typ, table string) Connection {
	prefix := envName(typ) + "_" + envName(table)
	return Connection{
		EnvVars: map[string]string{
			"file_path": prefix + "_PATH",
			"delimiter": prefix + "_DELIMITER",
		},
		Defaults: map[string]string{
			"file_path": fmt.Sprintf("./data/%s.csv", table),
			"delimiter": ",",
		},
		TemplateKind: normalizeType(typ),
	}
}

func databaseConnection(typ string, known bool) Connection {
	prefix := envName(typ)

	envVars := map[string]string{
		"host":     prefix + "_HOST",
		"port":     prefix + "_PORT",
		"username": prefix + "_USERNAME",
		"password": prefix + "_PASSWORD",
	}
	// Cassandra names its namespace a keyspace; everything else calls it
	// a database.
	if normalizeType(typ) == "cassandra" {
		envVars["keyspace"] = prefix + "_KEYSPACE"
	} else {
		envVars["database"] = prefix + "_DATABASE"
	}

	endpoint, ok := databaseDefaults[normalizeType(typ)]
	if !ok {
		endpoint = unknownDatabase
	}

	kind := "generic"
	if known {
		kind = normalizeType(typ)
	}

	return Connection{
		EnvVars: envVars,
		Defaults: map[string]string{
			"host": endpoint.Host,
			"port": endpoint.Port,
		},
		TemplateKind: kind,
	}
}

func apiConnection(typ string) Connection {
	prefix := envName(typ)
	return Connection{
		EnvVars: map[string]string{
			"base_url": prefix + "_BASE_URL",
			"username": prefix + "_USERNAME",
			"password": prefix + "_PASSWORD",
		},
		Defaults: map[string]string{
			"base_url": DefaultURL(typ),
		},
		TemplateKind: normalizeType(typ),
	}
}

// watermarkFor derives the incremental-resume strategy. File sources
// track a row offset; everything else resumes at a timestamp boundary
// with an id-exclusion set.
func watermarkFor(category Category) Watermark {
	if category == CategoryFile {
		return Watermark{Strategy: StrategyRowNumber}
	}
	return Watermark{
		Strategy:       StrategyComposite,
		UsesComposite:  true,
		TimestampBased: true,
	}
}

// envName turns an arbitrary tag into an environment-variable-safe
// name fragment.
func envName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
