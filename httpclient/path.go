package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// BuildPath appends params to basePath as an encoded query string. Nil
// values are dropped, booleans render as "true"/"false" and keys are sorted.
func BuildPath(basePath string, params map[string]any) string {
	if len(params) == 0 {
		return basePath
	}

	values := url.Values{}

	for key, value := range params {
		for _, str := range queryValues(value) {
			values.Add(key, str)
		}
	}

	if len(values) == 0 {
		return basePath
	}

	separator := "?"
	if strings.Contains(basePath, "?") {
		separator = "&"
	}

	return basePath + separator + values.Encode()
}

func queryValues(value any) []string {
	if value == nil {
		return nil
	}

	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}

	switch typed := value.(type) {
	case string:
		return []string{typed}
	case bool:
		return []string{strconv.FormatBool(typed)}
	case float64:
		return []string{strconv.FormatFloat(typed, 'f', -1, 64)}
	case float32:
		return []string{strconv.FormatFloat(float64(typed), 'f', -1, 32)}
	case json.Number:
		return []string{typed.String()}
	case []string:
		return typed
	case fmt.Stringer:
		return []string{typed.String()}
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}

		return queryValues(rv.Elem().Interface())
	case reflect.Map, reflect.Struct:
		encoded, err := json.Marshal(value)
		if err != nil {
			return []string{fmt.Sprint(value)}
		}

		return []string{string(encoded)}
	case reflect.Slice, reflect.Array:
		out := make([]string, 0, rv.Len())
		for idx := range rv.Len() {
			out = append(out, queryValues(rv.Index(idx).Interface())...)
		}

		return out
	default:
		return []string{fmt.Sprint(value)}
	}
}

// paramsObject flattens an object-shaped params value into a map. It
// reports false when params is not an object.
func paramsObject(params any) (map[string]any, bool, error) {
	switch typed := params.(type) {
	case nil:
		return nil, false, nil
	case map[string]any:
		return typed, true, nil
	case map[string]string:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = value
		}

		return out, true, nil
	}

	encoded, err := json.Marshal(params)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrEncodeBody, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()

	var out map[string]any
	if err := decoder.Decode(&out); err != nil {
		return nil, false, nil //nolint:nilerr
	}

	if out == nil {
		return nil, false, nil
	}

	return out, true, nil
}
