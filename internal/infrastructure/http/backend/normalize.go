package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// The backend variants disagree on list shapes: a wrapped object
// ({"categories":[...]}), a bare array, or an object of arrays keyed by
// group; entries are either plain strings or {name, image} objects. The
// helpers below fold every shape into one canonical form so nothing past
// this package has to care.

type namedEntry struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func normalizeNamedList(raw json.RawMessage, wrapperKey string) ([]namedEntry, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '[':
		return decodeEntryArray(raw)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("decode list object: %w", err)
		}
		if inner, ok := obj[wrapperKey]; ok {
			return normalizeNamedList(inner, wrapperKey)
		}
		// Object-of-arrays variant: every value is a list; flatten in
		// key order so the result is deterministic.
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var out []namedEntry
		for _, k := range keys {
			entries, err := normalizeNamedList(obj[k], wrapperKey)
			if err != nil {
				return nil, err
			}
			out = append(out, entries...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unrecognized list shape")
	}
}

func decodeEntryArray(raw json.RawMessage) ([]namedEntry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode list array: %w", err)
	}

	out := make([]namedEntry, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		if item[0] == '"' {
			var name string
			if err := json.Unmarshal(item, &name); err != nil {
				return nil, fmt.Errorf("decode string entry: %w", err)
			}
			out = append(out, namedEntry{Name: name})
			continue
		}
		var entry namedEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			return nil, fmt.Errorf("decode object entry: %w", err)
		}
		out = append(out, entry)
	}
	return out, nil
}

type wireProduct struct {
	ProductName string      `json:"product_name"`
	Variant     string      `json:"variant"`
	Price       json.Number `json:"price"`
	Image       string      `json:"image"`
	Description string      `json:"description"`
}

func normalizeProductList(raw json.RawMessage) ([]wireProduct, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '{' {
		var wrapped struct {
			Products json.RawMessage `json:"products"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("decode products object: %w", err)
		}
		if wrapped.Products == nil {
			return nil, fmt.Errorf("products key missing")
		}
		raw = wrapped.Products
	}

	var products []wireProduct
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode products array: %w", err)
	}
	return products, nil
}
