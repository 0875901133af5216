package cmdutil

import (
	"encoding/json"
	"io"
	"reflect"
)

// WriteJSON encodes data as pretty-printed JSON to the given writer.
// A nil slice is written as [] so consumers always receive an array.
func WriteJSON(w io.Writer, data any) error {
	if v := reflect.ValueOf(data); v.Kind() == reflect.Slice && v.IsNil() {
		data = []any{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
