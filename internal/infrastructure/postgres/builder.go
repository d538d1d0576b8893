package postgres

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/devcamper-api/internal/domain/query"
)

// sqlBuilder accumulates positional arguments while rendering a
// query.Descriptor into SQL. Column names come from the schema allow-list,
// values are always bound.
type sqlBuilder struct {
	alias string
	args  []any
}

func newBuilder(alias string, args ...any) *sqlBuilder {
	return &sqlBuilder{alias: alias, args: args}
}

func (b *sqlBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *sqlBuilder) col(c string) string {
	if b.alias == "" {
		return c
	}
	return b.alias + "." + c
}

// where renders the filters joined with AND; empty when there are none.
func (b *sqlBuilder) where(filters []query.Filter) string {
	if len(filters) == 0 {
		return ""
	}
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, b.predicate(f))
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

var comparison = map[query.Op]string{
	query.OpEq:  "=",
	query.OpGt:  ">",
	query.OpGte: ">=",
	query.OpLt:  "<",
	query.OpLte: "<=",
}

func (b *sqlBuilder) predicate(f query.Filter) string {
	col := b.col(f.Field.Column)
	if f.Field.Type == query.StringArray {
		if f.Op == query.OpIn {
			return col + " && " + b.bind(toStrings(f.Values)) + "::text[]"
		}
		return b.bind(f.Values[0]) + " = ANY(" + col + ")"
	}
	if f.Op == query.OpIn {
		return col + " = ANY(" + b.bind(typedSlice(f.Field.Type, f.Values)) + cast(f.Field.Type) + "[])"
	}
	return col + " " + comparison[f.Op] + " " + b.bind(f.Values[0]) + cast(f.Field.Type)
}

// cast pins the parameter type so numeric filters compare correctly against
// integer columns.
func cast(t query.FieldType) string {
	switch t {
	case query.Number:
		return "::float8"
	case query.Time:
		return "::timestamptz"
	case query.ID:
		return "::uuid"
	case query.Bool:
		return "::boolean"
	default:
		return "::text"
	}
}

func typedSlice(t query.FieldType, vals []any) any {
	switch t {
	case query.Number:
		out := make([]float64, 0, len(vals))
		for _, v := range vals {
			out = append(out, v.(float64))
		}
		return out
	case query.Bool:
		out := make([]bool, 0, len(vals))
		for _, v := range vals {
			out = append(out, v.(bool))
		}
		return out
	case query.Time:
		out := make([]time.Time, 0, len(vals))
		for _, v := range vals {
			out = append(out, v.(time.Time))
		}
		return out
	default:
		return toStrings(vals)
	}
}

func toStrings(vals []any) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// orderBy renders the sort keys with id as a stable tie-breaker.
func (b *sqlBuilder) orderBy(keys []query.SortKey) string {
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		parts = append(parts, b.col(k.Field.Column)+" "+dir)
	}
	parts = append(parts, b.col("id")+" ASC")
	return " ORDER BY " + strings.Join(parts, ", ")
}

func (b *sqlBuilder) page(d *query.Descriptor) string {
	return " LIMIT " + b.bind(d.Limit) + " OFFSET " + b.bind(d.Offset())
}

// listSQL renders SELECT columns FROM from + filters, sort and page window.
func listSQL(columns, from, alias string, d *query.Descriptor) (string, []any) {
	b := newBuilder(alias)
	sql := "SELECT " + columns + " FROM " + from + b.where(d.Filters) + b.orderBy(d.Sort) + b.page(d)
	return sql, b.args
}

// countSQL uses the same filters as listSQL without sort or window.
func countSQL(table, alias string, d *query.Descriptor) (string, []any) {
	b := newBuilder(alias)
	sql := "SELECT COUNT(*) FROM " + table + " " + alias + b.where(d.Filters)
	return sql, b.args
}
