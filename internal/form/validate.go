package form

import (
	"regexp"

	"solidarity-api/internal/domain/entity"
)

// FieldType selects the type check applied to a field value.
// JSON numbers decode as float64, so FieldNumber matches float64.
type FieldType int

const (
	FieldAny FieldType = iota
	FieldString
	FieldEmail
	FieldNumber
	FieldBoolean
	FieldStringArray
)

// ValidateRule is a declarative per-field constraint set. Checks run in
// a fixed order: required presence, type, length/range, pattern, enum
// membership, custom predicate. A missing optional field skips every
// check.
type ValidateRule struct {
	Required bool
	Type     FieldType

	// MinLength and MaxLength bound string length in runes.
	// Zero means unbounded.
	MinLength int
	MaxLength int

	// Min and Max bound numeric values.
	Min *float64
	Max *float64

	Pattern *regexp.Regexp

	// Enum lists the accepted values. For FieldStringArray every
	// element must be a member.
	Enum []string

	// Custom runs last; a non-nil return fails the field with the
	// returned error's message.
	Custom func(interface{}) error
}

// ValidateSchema maps field names to their validation rules.
type ValidateSchema map[string]ValidateRule

// FieldError names a field that failed validation, with a
// client-presentable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating a record. Data is nil whenever
// Errors is non-empty; on success it contains exactly the schema fields
// that were present and passed.
type Result struct {
	Valid  bool
	Errors []FieldError
	Data   map[string]interface{}
}

// Validate checks the record against the schema. Fields in the record
// without a schema rule are dropped from Data: the schema is the
// whitelist of what a handler may see.
func Validate(record map[string]interface{}, schema ValidateSchema) Result {
	var errs []FieldError
	data := make(map[string]interface{}, len(schema))

	for field, rule := range schema {
		value, present := record[field]
		if !present || value == nil {
			if rule.Required {
				errs = append(errs, FieldError{Field: field, Message: "is required"})
			}
			continue
		}
		if msg := checkField(value, rule); msg != "" {
			errs = append(errs, FieldError{Field: field, Message: msg})
			continue
		}
		data[field] = value
	}

	if len(errs) > 0 {
		return Result{Valid: false, Errors: errs}
	}
	return Result{Valid: true, Data: data}
}

// checkField returns an empty string when the value passes, otherwise
// the failure message.
func checkField(value interface{}, rule ValidateRule) string {
	switch rule.Type {
	case FieldString, FieldEmail:
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		if rule.Type == FieldEmail {
			if err := entity.ValidateEmail(s); err != nil {
				return "must be a valid email address"
			}
		}
		if msg := checkStringBounds(s, rule); msg != "" {
			return msg
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(s) {
			return "has an invalid format"
		}
		if len(rule.Enum) > 0 && !contains(rule.Enum, s) {
			return "is not an accepted value"
		}
	case FieldNumber:
		n, ok := value.(float64)
		if !ok {
			return "must be a number"
		}
		if rule.Min != nil && n < *rule.Min {
			return "is too small"
		}
		if rule.Max != nil && n > *rule.Max {
			return "is too large"
		}
	case FieldBoolean:
		if _, ok := value.(bool); !ok {
			return "must be a boolean"
		}
	case FieldStringArray:
		items, ok := toStringSlice(value)
		if !ok {
			return "must be a list of strings"
		}
		if rule.MaxLength > 0 && len(items) > rule.MaxLength {
			return "has too many entries"
		}
		if len(rule.Enum) > 0 {
			for _, item := range items {
				if !contains(rule.Enum, item) {
					return "contains an unrecognized value"
				}
			}
		}
	}

	if rule.Custom != nil {
		if err := rule.Custom(value); err != nil {
			return err.Error()
		}
	}
	return ""
}

func checkStringBounds(s string, rule ValidateRule) string {
	length := len([]rune(s))
	if rule.MinLength > 0 && length < rule.MinLength {
		return "is too short"
	}
	if rule.MaxLength > 0 && length > rule.MaxLength {
		return "is too long"
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// toStringSlice accepts both []string and the []interface{} shape
// produced by encoding/json.
func toStringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
