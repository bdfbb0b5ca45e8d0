package models

import (
	"encoding/json"
)

// Fields is a partial update keyed by column name
type Fields map[string]interface{}

// Operator is the comparison applied by a Condition
type Operator string

const (
	OpEq Operator = "$eq"
	OpIn Operator = "$in"
)

// Condition restricts a single field
type Condition struct {
	Field  string
	Op     Operator
	Value  interface{}
	Values []string
}

// Eq matches records whose field equals v
func Eq(field string, v interface{}) Condition {
	return Condition{Field: field, Op: OpEq, Value: v}
}

// In matches records whose field is one of values
func In(field string, values ...string) Condition {
	return Condition{Field: field, Op: OpIn, Values: values}
}

// Query is a conjunction of conditions. An empty query matches everything.
type Query []Condition

// MarshalJSON renders the query in the platform filter format,
// e.g. {"status":"active"} or {"status":{"$in":["a","b"]}}
func (q Query) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(q))
	for _, c := range q {
		switch c.Op {
		case OpIn:
			out[c.Field] = map[string][]string{string(OpIn): c.Values}
		default:
			out[c.Field] = c.Value
		}
	}
	return json.Marshal(out)
}

// Sort orders results by a field; a leading '-' sorts descending
type Sort string

const (
	SortNone             Sort = ""
	SortUpdatedDateDesc  Sort = "-updated_date"
	SortPendingTimestamp Sort = "pending_timestamp"
	SortCreatedDateDesc  Sort = "-created_date"
)

// Field returns the column name and whether the sort is descending
func (s Sort) Field() (string, bool) {
	if len(s) > 0 && s[0] == '-' {
		return string(s[1:]), true
	}
	return string(s), false
}
