package reconcile

import (
	"encoding/json"
	"reflect"
)

// FormOf returns the simple form of an entity: its object key when it has one,
// otherwise its identity.
func FormOf(e Entity) SimpleForm {
	if keyed, ok := e.(Keyed); ok {
		return SimpleForm{ID: keyed.ObjectKey()}
	}
	return SimpleForm{ID: e.Identity()}
}

// FormsOf maps FormOf over entities, preserving order.
// The result is never nil so that it encodes as an empty array.
func FormsOf(entities []Entity) []SimpleForm {
	forms := make([]SimpleForm, 0, len(entities))
	for _, e := range entities {
		forms = append(forms, FormOf(e))
	}
	return forms
}

// EqualForms reports whether two form sequences are structurally equal, in order.
func EqualForms(a, b []SimpleForm) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i].ID, b[i].ID) {
			return false
		}
	}
	return true
}

// EncodeForms renders forms as JSON text.
func EncodeForms(forms []SimpleForm) (string, error) {
	if forms == nil {
		forms = []SimpleForm{}
	}
	data, err := json.Marshal(forms)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
