package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"relation-manager/core/utils"
)

// DecodeInput parses text into input elements sorted by position.
//
// The payload must be an array of objects; null counts as an empty array.
// Missing or non-numeric positions count as 0; ties keep payload order.
func DecodeInput(relation, text string) ([]InputElement, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, MalformedInputError{Relation: relation, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, MalformedInputError{Relation: relation, Err: fmt.Errorf("unexpected data after top-level value")}
	}

	var items []any
	switch v := raw.(type) {
	case nil:
		return []InputElement{}, nil
	case []any:
		items = v
	default:
		return nil, MalformedInputError{Relation: relation, Err: fmt.Errorf("expected an array of objects, got %T", raw)}
	}

	elements := make([]InputElement, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, MalformedInputError{Relation: relation, Err: fmt.Errorf("element %d is not an object", i)}
		}
		elements = append(elements, newInputElement(obj))
	}

	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].Position < elements[j].Position
	})

	return elements, nil
}

func newInputElement(obj map[string]any) InputElement {
	el := InputElement{Attributes: obj}
	if id, ok := obj["id"]; ok && id != nil {
		el.Key = utils.ToString(id)
	}
	if pos, ok := obj["position"]; ok && pos != nil {
		el.Position = utils.ToInt(pos)
	}
	return el
}
