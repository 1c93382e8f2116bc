package validator

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// textValue returns the string behind v. Named string types are accepted.
func textValue(field string, v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String(), nil
	}
	return "", &ContractError{Field: field, Want: "a string", Got: typeName(v)}
}

// length counts logical characters: runes of the NFC form, so "é" is one
// character whether it arrives precomposed or as e + U+0301.
func length(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// count returns the element count of a collection value. Slices, arrays and
// non-negative integer counts are accepted.
func count(field string, v any) (int, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return 0, &ContractError{Field: field, Want: "a list or a count", Got: "nil"}
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n := rv.Int(); n >= 0 {
			return int(n), nil
		}
		return 0, &ContractError{Field: field, Want: "a non-negative count", Got: fmt.Sprint(rv.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(min(rv.Uint(), uint64(maxInt))), nil
	}
	return 0, &ContractError{Field: field, Want: "a list or a count", Got: typeName(v)}
}

const maxInt = int(^uint(0) >> 1)

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
