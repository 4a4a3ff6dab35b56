package sqlgen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/incidentchat/incidentchat/internal/schema"
)

var (
	fromClause    = regexp.MustCompile(`(?i)\bFROM\s+[A-Za-z_][A-Za-z0-9_.]*`)
	whereClause   = regexp.MustCompile(`(?i)\bWHERE\s+[A-Za-z_][A-Za-z0-9_.]*`)
	limitClause   = regexp.MustCompile(`(?i)\bLIMIT\s+\d+`)
	aggregateCall = regexp.MustCompile(`(?i)\b(?:count|sum|avg|min|max)\s*\(`)
)

type vocabRule struct {
	pattern   *regexp.Regexp
	canonical string
}

// Repairer applies a bounded, ordered set of structural normalizations to a
// statement that already passed safety validation. It fixes the handful of
// drift patterns observed from the generation service and leaves everything
// else untouched; it never introduces a mutating operation. Each stage
// operates on the output of the previous one, and the whole pass is
// idempotent.
type Repairer struct {
	table        string
	statusColumn string
	rowCap       int
	vocab        []vocabRule
}

// NewRepairer builds a repairer around the canonical table, status column and
// status vocabulary. rowCap <= 0 defaults to 50.
func NewRepairer(desc schema.Descriptor, vocab map[string]string, rowCap int) *Repairer {
	if rowCap <= 0 {
		rowCap = 50
	}

	phrases := make([]string, 0, len(vocab))
	for phrase := range vocab {
		phrases = append(phrases, phrase)
	}
	sort.Strings(phrases)

	rules := make([]vocabRule, 0, len(phrases))
	for _, phrase := range phrases {
		rules = append(rules, vocabRule{
			pattern:   regexp.MustCompile(`(?i)['"]` + regexp.QuoteMeta(phrase) + `['"]`),
			canonical: vocab[phrase],
		})
	}

	return &Repairer{
		table:        desc.Table,
		statusColumn: desc.StatusColumn,
		rowCap:       rowCap,
		vocab:        rules,
	}
}

// Repair runs the stages in their fixed order: table name, WHERE column,
// status values, row cap, terminator.
func (r *Repairer) Repair(stmt string) string {
	if strings.TrimSpace(stmt) == "" {
		return stmt
	}
	for _, stage := range []func(string) string{
		r.fixTable,
		r.fixStatusColumn,
		r.fixStatusValues,
		r.ensureRowCap,
		ensureTerminator,
	} {
		stmt = stage(stmt)
	}
	return stmt
}

// fixTable rewrites every FROM clause to the canonical table. Guards against
// the model inventing a plausible-but-wrong table name.
func (r *Repairer) fixTable(stmt string) string {
	return fromClause.ReplaceAllString(stmt, "FROM "+r.table)
}

// fixStatusColumn rewrites only the first WHERE clause's column reference to
// the canonical status column. A narrow single-column fix for the dominant
// filter pattern, not general identifier correction.
func (r *Repairer) fixStatusColumn(stmt string) string {
	loc := whereClause.FindStringIndex(stmt)
	if loc == nil {
		return stmt
	}
	return stmt[:loc[0]] + "WHERE " + r.statusColumn + stmt[loc[1]:]
}

func (r *Repairer) fixStatusValues(stmt string) string {
	for _, rule := range r.vocab {
		stmt = rule.pattern.ReplaceAllString(stmt, "'"+rule.canonical+"'")
	}
	return stmt
}

// ensureRowCap appends the cap when the statement has neither an aggregate
// call nor a LIMIT. GROUP BY without an aggregate still receives the cap.
func (r *Repairer) ensureRowCap(stmt string) string {
	if aggregateCall.MatchString(stmt) || limitClause.MatchString(stmt) {
		return stmt
	}
	return strings.TrimRight(strings.TrimSpace(stmt), ";") + fmt.Sprintf(" LIMIT %d", r.rowCap)
}

func ensureTerminator(stmt string) string {
	return strings.TrimRight(strings.TrimSpace(stmt), "; \t\n") + ";"
}
