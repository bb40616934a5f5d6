// Package filter compiles optional member criteria into a single SQL
// predicate scoped to non-deleted rows.
package filter

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"joiner/internal/core/domain"
)

type Criteria struct {
	FirstName      string
	LastName       string
	Email          string
	Gender         string
	MembershipType string
	Persona        string
}

type textField struct {
	column string
	value  func(Criteria) string
}

type enumField struct {
	name   string
	column string
	value  func(Criteria) string
	parse  func(string) (string, error)
}

var textFields = []textField{
	{column: "first_name", value: func(c Criteria) string { return c.FirstName }},
	{column: "last_name", value: func(c Criteria) string { return c.LastName }},
	{column: "email", value: func(c Criteria) string { return c.Email }},
}

var enumFields = []enumField{
	{name: "gender", column: "gender", value: func(c Criteria) string { return c.Gender }, parse: labelOf(domain.ParseGender)},
	{name: "membershipType", column: "membership_type", value: func(c Criteria) string { return c.MembershipType }, parse: labelOf(domain.ParseMembershipType)},
	{name: "persona", column: "persona", value: func(c Criteria) string { return c.Persona }, parse: labelOf(domain.ParsePersona)},
}

func labelOf[T ~string](parse func(string) (T, error)) func(string) (string, error) {
	return func(label string) (string, error) {
		value, err := parse(label)
		return string(value), err
	}
}

// Compile returns the AND of every present criterion plus deleted = false.
// An unknown enum label fails with domain.ErrInvalidFilterValue.
func Compile(criteria Criteria) (sq.And, error) {
	predicate := sq.And{sq.Eq{"deleted": false}}

	for _, field := range textFields {
		fragment := strings.TrimSpace(field.value(criteria))
		if fragment == "" {
			continue
		}
		predicate = append(predicate, Contains(field.column, fragment))
	}

	for _, field := range enumFields {
		label := strings.TrimSpace(field.value(criteria))
		if label == "" {
			continue
		}
		value, err := field.parse(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidFilterValue, field.name, err)
		}
		predicate = append(predicate, sq.Eq{field.column: value})
	}

	return predicate, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Contains is a case-insensitive substring match on column. LIKE
// wildcards in fragment match literally.
func Contains(column, fragment string) sq.Sqlizer {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(fragment)) + "%"
	return sq.Expr(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column), pattern)
}

// Search matches term against first or last name on non-deleted rows.
func Search(term string) sq.Sqlizer {
	term = strings.TrimSpace(term)
	if term == "" {
		return sq.Eq{"deleted": false}
	}
	return sq.And{
		sq.Eq{"deleted": false},
		sq.Or{Contains("first_name", term), Contains("last_name", term)},
	}
}
