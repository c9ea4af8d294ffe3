package postgres

import (
	"fmt"
	"strings"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"

	"github.com/lib/pq"
)

// queryBuilder accumulates WHERE conditions and their positional arguments
type queryBuilder struct {
	conditions []string
	args       []interface{}
}

// arg registers v and returns its placeholder
func (b *queryBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) where(condition string) {
	b.conditions = append(b.conditions, condition)
}

// whereIn adds "column = ANY(values)" when values is not empty
func (b *queryBuilder) whereIn(column string, values []string) {
	if len(values) == 0 {
		return
	}
	b.where(fmt.Sprintf("%s = ANY(CAST(%s AS text[]))", column, b.arg(pq.Array(values))))
}

// whereSearch matches term case-insensitively against any of columns
func (b *queryBuilder) whereSearch(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	placeholder := b.arg("%" + escapeLike(term) + "%")
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE %s", col, placeholder)
	}
	b.where("(" + strings.Join(parts, " OR ") + ")")
}

// whereRange applies a half-open [From, To) window on column
func (b *queryBuilder) whereRange(column string, r domain.DateRange) {
	if r.From != nil {
		b.where(fmt.Sprintf("%s >= %s", column, b.arg(*r.From)))
	}
	if r.To != nil {
		b.where(fmt.Sprintf("%s < %s", column, b.arg(*r.To)))
	}
}

func (b *queryBuilder) clause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conditions, " AND ")
}

// page appends LIMIT/OFFSET placeholders
func (b *queryBuilder) page(p domain.PageRequest) string {
	return fmt.Sprintf(" LIMIT %s OFFSET %s", b.arg(p.PerPage), b.arg(p.Offset()))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
