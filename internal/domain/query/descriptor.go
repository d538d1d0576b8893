package query

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

// Op is a comparison operator accepted in the query string as field[op]=value.
type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

var operators = map[Op]struct{}{OpEq: {}, OpGt: {}, OpGte: {}, OpLt: {}, OpLte: {}, OpIn: {}}

const (
	DefaultPage  = 1
	DefaultLimit = 25
	// MaxLimit caps ?limit so one request cannot ask for an unbounded page.
	MaxLimit = 100
)

var reserved = map[string]struct{}{"select": {}, "sort": {}, "page": {}, "limit": {}}

var keyPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*(?:\.[A-Za-z][A-Za-z0-9_]*)*)(?:\[([A-Za-z]+)\])?$`)

// Filter is one typed predicate. Values holds parsed values: exactly one for
// comparison operators, one or more for OpIn.
type Filter struct {
	Field  Field
	Op     Op
	Values []any
}

type SortKey struct {
	Field Field
	Desc  bool
}

// Descriptor is the request-scoped, not-yet-executed listing query.
type Descriptor struct {
	Collection string
	Filters    []Filter
	Select     []string
	Sort       []SortKey
	Page       int
	Limit      int
	Populate   []string
}

// Offset is the number of rows skipped before the page. It saturates at
// math.MaxInt instead of overflowing for absurd page numbers.
func (d *Descriptor) Offset() int {
	if d.Page <= 1 || d.Limit <= 0 {
		return 0
	}
	if d.Page-1 > math.MaxInt/d.Limit {
		return math.MaxInt
	}
	return (d.Page - 1) * d.Limit
}

// Populates reports whether relation was requested for eager loading.
func (d *Descriptor) Populates(relation string) bool {
	for _, p := range d.Populate {
		if p == relation {
			return true
		}
	}
	return false
}

// Translate turns raw query-string values into a Descriptor for schema.
// Unknown fields, unknown operators and unparsable values are validation errors.
func Translate(schema *Schema, values url.Values, populate ...string) (*Descriptor, error) {
	d := &Descriptor{
		Collection: schema.Collection,
		Page:       positiveInt(values.Get("page"), DefaultPage),
		Limit:      min(positiveInt(values.Get("limit"), DefaultLimit), MaxLimit),
		Populate:   populate,
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if _, skip := reserved[k]; !skip {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		f, err := parseFilter(schema, key, values[key])
		if err != nil {
			return nil, err
		}
		d.Filters = append(d.Filters, f)
	}

	if raw := values.Get("select"); raw != "" {
		for _, name := range splitList(raw) {
			if !schema.Selectable(name) {
				return nil, apperror.Validation("Cannot select unknown field %q", name)
			}
			d.Select = append(d.Select, name)
		}
	}

	if raw := values.Get("sort"); raw != "" {
		for _, name := range splitList(raw) {
			desc := strings.HasPrefix(name, "-")
			name = strings.TrimPrefix(name, "-")
			field, ok := schema.Field(name)
			if !ok || !field.sortable() {
				return nil, apperror.Validation("Cannot sort by field %q", name)
			}
			d.Sort = append(d.Sort, SortKey{Field: field, Desc: desc})
		}
	}
	if len(d.Sort) == 0 {
		if created, ok := schema.Field("createdAt"); ok {
			d.Sort = []SortKey{{Field: created, Desc: true}}
		}
	}
	return d, nil
}

func parseFilter(schema *Schema, key string, raw []string) (Filter, error) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return Filter{}, apperror.Validation("Malformed filter %q", key)
	}
	field, ok := schema.Field(m[1])
	if !ok {
		return Filter{}, apperror.Validation("Cannot filter by field %q", m[1])
	}
	op := OpEq
	if m[2] != "" {
		op = Op(m[2])
		if _, known := operators[op]; !known {
			return Filter{}, apperror.Validation("Unsupported operator %q on field %q", m[2], field.Name)
		}
	}
	if len(raw) > 1 && op == OpEq {
		// repeated key: ?careers=UI/UX&careers=Business
		op = OpIn
	}
	if !field.allows(op) {
		return Filter{}, apperror.Validation("Operator %q is not allowed on field %q", op, field.Name)
	}

	var texts []string
	if op == OpIn {
		for _, r := range raw {
			texts = append(texts, splitList(r)...)
		}
	} else {
		texts = raw[:1]
	}
	if len(texts) == 0 {
		return Filter{}, apperror.Validation("Filter %q has no value", key)
	}

	vals := make([]any, 0, len(texts))
	for _, t := range texts {
		v, err := parseValue(field, t)
		if err != nil {
			return Filter{}, apperror.Validation("Invalid value %q for field %q", t, field.Name)
		}
		vals = append(vals, v)
	}
	return Filter{Field: field, Op: op, Values: vals}, nil
}

func parseValue(f Field, s string) (any, error) {
	s = strings.TrimSpace(s)
	switch f.Type {
	case Number:
		return strconv.ParseFloat(s, 64)
	case Bool:
		return strconv.ParseBool(s)
	case Time:
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", s)
	case ID:
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		return id.String(), nil
	case String, StringArray:
		if s == "" {
			return nil, fmt.Errorf("empty value")
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown field type %d", f.Type)
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Restrict adds an equality filter on name, used by nested routes such as
// /bootcamps/:bootcampId/courses.
func (d *Descriptor) Restrict(schema *Schema, name string, value any) error {
	field, ok := schema.Field(name)
	if !ok {
		return apperror.Validation("Cannot filter by field %q", name)
	}
	d.Filters = append(d.Filters, Filter{Field: field, Op: OpEq, Values: []any{value}})
	return nil
}
