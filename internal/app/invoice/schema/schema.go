package schema

import (
	"net/url"
	"strings"
)

// Submission is the raw, untyped input of a single form submission.
// A key that is absent is distinct from a key sent with an empty value.
type Submission url.Values

// Value returns the first value submitted for key and whether key was sent at all.
func (s Submission) Value(key string) (string, bool) {
	vs, ok := s[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// FieldErrors maps a field name to its ordered, human-readable error messages.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Result holds exactly one of Data or Errors.
type Result struct {
	Data   *Fields
	Errors FieldErrors
}

// Success reports whether parsing produced typed fields.
func (r Result) Success() bool {
	return r.Data != nil
}

// rule parses one raw field into out. It returns false when the input is invalid.
type rule struct {
	message string
	apply   func(raw string, present bool, out *Fields) bool
}

// Schema is an ordered set of field rules. Specializations are derived with
// Omit and share the same rule values.
type Schema struct {
	keys  []string
	rules map[string]rule
}

func newSchema() *Schema {
	return &Schema{rules: make(map[string]rule)}
}

func (s *Schema) field(key, message string, apply func(raw string, present bool, out *Fields) bool) *Schema {
	if _, exists := s.rules[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.rules[key] = rule{message: message, apply: apply}
	return s
}

// Keys returns the field names in declaration order.
func (s *Schema) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Omit returns a schema without the named fields.
func (s *Schema) Omit(keys ...string) *Schema {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	out := newSchema()
	for _, k := range s.keys {
		if drop[k] {
			continue
		}
		out.keys = append(out.keys, k)
		out.rules[k] = s.rules[k]
	}
	return out
}

// SafeParse validates sub against every rule. It never panics and never
// returns partial data: either all fields parse or the failing ones are
// reported.
func (s *Schema) SafeParse(sub Submission) Result {
	var fields Fields
	errs := FieldErrors{}

	for _, k := range s.keys {
		r := s.rules[k]
		raw, present := sub.Value(k)
		if !r.apply(raw, present, &fields) {
			errs.add(k, r.message)
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{Data: &fields}
}

func nonBlank(raw string) bool {
	return strings.TrimSpace(raw) != ""
}
