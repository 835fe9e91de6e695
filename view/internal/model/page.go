package model

import (
	"bytes"
	"encoding/json"
)

// Query is the windowed list request shared by every paged endpoint.
type Query struct {
	Skip   int
	Limit  int
	Search string
}

// Page is a list response. The backend answers either with an
// {"items": [...], "total": n} envelope or with a bare array; both decode here.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func (p *Page[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = Page[T]{Items: []T{}}
		return nil
	}
	if b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		if items == nil {
			items = []T{}
		}
		*p = Page[T]{Items: items, Total: len(items)}
		return nil
	}
	var env struct {
		Items []T `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if env.Items == nil {
		env.Items = []T{}
	}
	*p = Page[T]{Items: env.Items, Total: env.Total}
	return nil
}
