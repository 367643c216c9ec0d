package controllers

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/alex-pricope/hackathon-judging-api/api/transport"
	"github.com/alex-pricope/hackathon-judging-api/storage"
)

// fieldSetter decodes one request field and records the attribute changes it implies.
type fieldSetter func(ctx context.Context, raw json.RawMessage, changes storage.Changes) error

// updatableFields is an entity's allow-list: request field name to setter.
type updatableFields map[string]fieldSetter

// changes runs the setters of every allowed field present in body, in field
// name order. Fields outside the allow-list are ignored; if none remain the
// update is rejected.
func (f updatableFields) changes(ctx context.Context, body transport.Body) (storage.Changes, error) {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)

	changes := storage.Changes{}
	for _, name := range names {
		raw, ok := body[name]
		if !ok {
			continue
		}
		if err := f[name](ctx, raw, changes); err != nil {
			return nil, err
		}
	}
	if len(changes) == 0 {
		return nil, errNoValidFields
	}
	return changes, nil
}

// setAs stores the field decoded into T under the same attribute name.
func setAs[T any](attr string) fieldSetter {
	return func(_ context.Context, raw json.RawMessage, changes storage.Changes) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return badRequest("Invalid value for %s", attr)
		}
		changes[attr] = v
		return nil
	}
}

var (
	setString     = setAs[string]
	setStringList = setAs[[]string]
	setInt        = setAs[int]
	setBool       = setAs[bool]
	setMembers    = setAs[[]storage.Member]
	// setDocument accepts any JSON value.
	setDocument = setAs[any]
)

// wholeNumber reads a JSON number, or a string holding one when allowStrings
// is set, and reports whether it is an integer.
func wholeNumber(raw json.RawMessage, allowStrings bool) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if !allowStrings || json.Unmarshal(raw, &s) != nil {
			return 0, false
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0, false
		}
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
