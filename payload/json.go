package payload

import (
	"reflect"

	jsoniter "github.com/json-iterator/go"

	"github.com/kbukum/billplz/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON encodes data as a JSON document. Nil data, including a nil map,
// slice or pointer, encodes as an empty object.
func JSON(data any) (string, error) {
	if isNil(data) {
		return "{}", nil
	}
	var (
		b   []byte
		err error
	)
	if p, ok := data.(Params); ok {
		b, err = p.MarshalJSON()
	} else {
		b, err = json.Marshal(data)
	}
	if err != nil {
		return "", errors.InvalidInput("data", "cannot encode body as JSON").WithCause(err)
	}
	return string(b), nil
}

func isNil(data any) bool {
	if data == nil {
		return true
	}
	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
