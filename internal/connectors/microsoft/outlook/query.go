package outlook

import (
	"encoding/json"
	"fmt"
)

// unsetNumber marks an unset numeric option on the bridge payload channel.
const unsetNumber = -1

// QueryOptions is a snapshot of collection query options.
// A nil field is unset and never reaches the wire query.
type QueryOptions struct {
	Top    *int
	Skip   *int
	Select *string
	Expand *string
	Filter *string
}

// IsEmpty reports whether no option is set.
func (o QueryOptions) IsEmpty() bool {
	return o.Top == nil && o.Skip == nil && o.Select == nil && o.Expand == nil && o.Filter == nil
}

func (o QueryOptions) clone() QueryOptions {
	return QueryOptions{
		Top:    clonePtr(o.Top),
		Skip:   clonePtr(o.Skip),
		Select: clonePtr(o.Select),
		Expand: clonePtr(o.Expand),
		Filter: clonePtr(o.Filter),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// bridgeQuery is the query bag carried as the payload of list operations.
// Unset numbers are -1 and unset strings are null.
type bridgeQuery struct {
	Top        int     `json:"top"`
	Skip       int     `json:"skip"`
	SelectedID *string `json:"selectedId"`
	Select     *string `json:"select"`
	Expand     *string `json:"expand"`
	Filter     *string `json:"filter"`
}

// BridgePayload encodes the options for a list operation.
func (o QueryOptions) BridgePayload() string {
	q := bridgeQuery{
		Top:    unsetNumber,
		Skip:   unsetNumber,
		Select: o.Select,
		Expand: o.Expand,
		Filter: o.Filter,
	}
	if o.Top != nil {
		q.Top = *o.Top
	}
	if o.Skip != nil {
		q.Skip = *o.Skip
	}
	data, _ := json.Marshal(q)
	return string(data)
}

// DecodeQueryPayload reverses BridgePayload.
// Negative numbers are read as unset. An empty payload yields no options.
func DecodeQueryPayload(payload string) (QueryOptions, error) {
	var opts QueryOptions
	if payload == "" {
		return opts, nil
	}

	q := bridgeQuery{Top: unsetNumber, Skip: unsetNumber}
	if err := json.Unmarshal([]byte(payload), &q); err != nil {
		return opts, fmt.Errorf("decode query payload: %w", err)
	}
	if q.Top >= 0 {
		opts.Top = &q.Top
	}
	if q.Skip >= 0 {
		opts.Skip = &q.Skip
	}
	opts.Select = q.Select
	opts.Expand = q.Expand
	opts.Filter = q.Filter
	return opts, nil
}

// QueryBuilder accumulates collection query options.
// Every setter overwrites the previous value and returns the builder.
// A builder is a caller-owned mutable value; use Clone to run differently
// parametrised queries concurrently.
type QueryBuilder struct {
	opts QueryOptions
}

// NewQueryBuilder returns a builder with every option unset.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// Top limits the number of results.
func (b *QueryBuilder) Top(n int) *QueryBuilder {
	b.opts.Top = &n
	return b
}

// Skip skips the first n results.
func (b *QueryBuilder) Skip(n int) *QueryBuilder {
	b.opts.Skip = &n
	return b
}

// Select restricts the returned properties, e.g. "Subject,From".
func (b *QueryBuilder) Select(s string) *QueryBuilder {
	b.opts.Select = &s
	return b
}

// Expand includes navigation properties inline.
func (b *QueryBuilder) Expand(s string) *QueryBuilder {
	b.opts.Expand = &s
	return b
}

// Filter sets an OData filter expression, e.g. "Subject eq 'Hello'".
func (b *QueryBuilder) Filter(s string) *QueryBuilder {
	b.opts.Filter = &s
	return b
}

// Reset clears every option.
func (b *QueryBuilder) Reset() *QueryBuilder {
	b.opts = QueryOptions{}
	return b
}

// Serialize returns a deep copy of the current options.
func (b *QueryBuilder) Serialize() QueryOptions {
	return b.opts.clone()
}

// Clone returns an independent builder with the same options.
func (b *QueryBuilder) Clone() *QueryBuilder {
	return &QueryBuilder{opts: b.opts.clone()}
}
