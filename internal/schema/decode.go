package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
)

// Format is the encoding of raw candidate input.
type Format string

// Supported input formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const messageTimestamp = "must be an RFC 3339 timestamp"

var (
	errInvalidTarget = errors.New("decode target must be a non-nil pointer")
	timeType         = reflect.TypeOf(time.Time{})
)

// Decode reads raw JSON or YAML input into target. Unknown fields are
// dropped. Every value whose type does not fit target is reported with its
// indexed path (e.g. "exercises.0.sets.2.weight_kg: must be numeric") and
// left at its zero value; the rest of the input is still decoded. Malformed
// input is reported as a single violation.
func Decode(data []byte, format Format, target interface{}) error {
	mismatches, err := decode(data, format, target)
	if err != nil {
		return err
	}

	if len(mismatches) > 0 {
		return &hevy.ValidationError{Fields: mismatches}
	}

	return nil
}

// DecodeWorkout decodes raw input into a workout candidate and validates
// it. Type mismatches come first, followed by schema violations, in one
// *hevy.ValidationError. A violation at or below a mismatched path is not
// reported twice.
func (v *Validator) DecodeWorkout(data []byte, format Format) (*hevy.WorkoutCreate, error) {
	var workout hevy.WorkoutCreate

	mismatches, err := decode(data, format, &workout)
	if err != nil {
		return nil, err
	}

	fields := mismatches

	_, err = v.ValidateWorkout(&workout)

	var validationErr *hevy.ValidationError
	if errors.As(err, &validationErr) {
		for _, field := range validationErr.Fields {
			if !coveredBy(field.Path, mismatches) {
				fields = append(fields, field)
			}
		}
	}

	if len(fields) > 0 {
		return nil, &hevy.ValidationError{Fields: fields}
	}

	return &workout, nil
}

func decode(data []byte, format Format, target interface{}) ([]hevy.FieldError, error) {
	typ := reflect.TypeOf(target)
	if typ == nil || typ.Kind() != reflect.Ptr || reflect.ValueOf(target).IsNil() {
		return nil, fmt.Errorf("%w: %T", errInvalidTarget, target)
	}

	document, err := parseDocument(data, format)
	if err != nil {
		return nil, err
	}

	var mismatches []hevy.FieldError

	document, _ = conform(document, typ.Elem(), "", &mismatches)

	cleaned, err := json.Marshal(document)
	if err != nil {
		return nil, malformed("unsupported value", err)
	}

	err = json.Unmarshal(cleaned, target)
	if err != nil {
		return nil, malformed("malformed input", err)
	}

	return mismatches, nil
}

// parseDocument returns the input as a generic JSON tree with numbers kept
// as json.Number.
func parseDocument(data []byte, format Format) (interface{}, error) {
	if format == FormatYAML {
		var document interface{}

		err := yaml.Unmarshal(data, &document)
		if err != nil {
			return nil, malformed("malformed YAML", err)
		}

		data, err = json.Marshal(document)
		if err != nil {
			return nil, malformed("unsupported YAML value", err)
		}
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var document interface{}

	err := decoder.Decode(&document)
	if err != nil {
		return nil, malformed("malformed input", err)
	}

	return document, nil
}

// conform checks value against typ, recording a mismatch for every value
// that does not fit. It returns the value with mismatched and unknown parts
// removed, and false when value itself does not fit.
func conform(value interface{}, typ reflect.Type, path string, mismatches *[]hevy.FieldError) (interface{}, bool) {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	if value == nil {
		return nil, true
	}

	reject := func(message string) (interface{}, bool) {
		*mismatches = append(*mismatches, hevy.FieldError{Path: path, Message: message})

		return nil, false
	}

	if typ == timeType {
		text, ok := value.(string)
		if !ok {
			return reject(messageTimestamp)
		}

		if _, err := time.Parse(time.RFC3339, text); err != nil {
			return reject(messageTimestamp)
		}

		return value, true
	}

	switch typ.Kind() {
	case reflect.Struct:
		object, ok := value.(map[string]interface{})
		if !ok {
			return reject("must be " + kindName(typ))
		}

		return conformObject(object, typ, path, mismatches), true
	case reflect.Slice, reflect.Array:
		items, ok := value.([]interface{})
		if !ok {
			return reject("must be " + kindName(typ))
		}

		for index, item := range items {
			items[index], _ = conform(item, typ.Elem(), joinPath(path, strconv.Itoa(index)), mismatches)
		}

		return items, true
	case reflect.String:
		if _, ok := value.(string); !ok {
			return reject("must be " + kindName(typ))
		}
	case reflect.Bool:
		if _, ok := value.(bool); !ok {
			return reject("must be " + kindName(typ))
		}
	case reflect.Float32, reflect.Float64:
		if _, ok := value.(json.Number); !ok {
			return reject("must be " + kindName(typ))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		number, ok := value.(json.Number)
		if !ok {
			return reject("must be " + kindName(typ))
		}

		if _, err := strconv.ParseInt(number.String(), 10, typ.Bits()); err != nil {
			return reject("must be an integer")
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		number, ok := value.(json.Number)
		if !ok {
			return reject("must be " + kindName(typ))
		}

		if _, err := strconv.ParseUint(number.String(), 10, typ.Bits()); err != nil {
			return reject("must be a non-negative integer")
		}
	}

	return value, true
}

// conformObject keeps the declared fields of typ, in declaration order.
func conformObject(object map[string]interface{}, typ reflect.Type, path string, mismatches *[]hevy.FieldError) map[string]interface{} {
	cleaned := make(map[string]interface{}, len(object))

	for index := range typ.NumField() {
		field := typ.Field(index)
		if !field.IsExported() {
			continue
		}

		name := jsonFieldName(field)
		if name == "" {
			continue
		}

		item, present := object[name]
		if !present {
			continue
		}

		conformed, ok := conform(item, field.Type, joinPath(path, name), mismatches)
		if ok {
			cleaned[name] = conformed
		}
	}

	return cleaned
}

func coveredBy(path string, mismatches []hevy.FieldError) bool {
	for _, mismatch := range mismatches {
		if mismatch.Path == "" || path == mismatch.Path || strings.HasPrefix(path, mismatch.Path+".") {
			return true
		}
	}

	return false
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "." + name
}

func malformed(what string, err error) *hevy.ValidationError {
	return &hevy.ValidationError{
		Fields: []hevy.FieldError{{Message: fmt.Sprintf("%s: %v", what, err)}},
	}
}

func kindName(typ reflect.Type) string {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "numeric"
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return "an object"
	}
}
