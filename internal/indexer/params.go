package indexer

import (
	"net/url"
	"strconv"
	"strings"
)

// Params is an ordered query string. Zero and blank values are dropped so
// an omitted parameter never appears in the request.
type Params []param

type param struct {
	key, value string
}

// Int appends key when v is positive.
func (p Params) Int(key string, v int) Params {
	if v <= 0 {
		return p
	}
	return append(p, param{key, strconv.Itoa(v)})
}

// String appends key when v is not blank.
func (p Params) String(key, v string) Params {
	if strings.TrimSpace(v) == "" {
		return p
	}
	return append(p, param{key, v})
}

// Encode renders the parameters in insertion order, without a leading "?".
func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}

// PageQuery selects a page of a list endpoint.
type PageQuery struct {
	Page  int
	Limit int
}

// Params returns the query parameters.
func (q PageQuery) Params() Params {
	return Params{}.Int("page", q.Page).Int("limit", q.Limit)
}

// TransactionQuery filters /api/transactions.
type TransactionQuery struct {
	Page       int
	Limit      int
	ActionType string
}

// Params returns the query parameters.
func (q TransactionQuery) Params() Params {
	return PageQuery{q.Page, q.Limit}.Params().String("action_type", q.ActionType)
}

// ProjectQuery filters /api/projects.
type ProjectQuery struct {
	Page   int
	Limit  int
	Search string
}

// Params returns the query parameters.
func (q ProjectQuery) Params() Params {
	return PageQuery{q.Page, q.Limit}.Params().String("search", q.Search)
}

// EventQuery filters /api/events.
type EventQuery struct {
	Page      int
	Limit     int
	Type      string
	ProjectID string
}

// Params returns the query parameters.
func (q EventQuery) Params() Params {
	return PageQuery{q.Page, q.Limit}.Params().
		String("type", q.Type).
		String("project_id", q.ProjectID)
}
