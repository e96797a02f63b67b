package forms

import "sort"

// Errors maps a field key to its inline validation message.
type Errors map[string]string

// Set records msg for field.
func (e Errors) Set(field, msg string) { e[field] = msg }

// Clear drops the message for field, if any.
func (e Errors) Clear(field string) { delete(e, field) }

// Get returns the message for field or "".
func (e Errors) Get(field string) string { return e[field] }

// Any reports whether at least one field failed.
func (e Errors) Any() bool { return len(e) > 0 }

// Fields returns the failing field keys in stable order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
