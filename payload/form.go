package payload

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/kbukum/billplz/errors"
)

// Form encodes data as an application/x-www-form-urlencoded string.
//
// data may be Params, url.Values, a map, a struct (encoded with
// go-querystring `url` tags), a slice, or nil for an empty body.
func Form(data any) (string, error) {
	if data == nil {
		return "", nil
	}
	var f formEncoder
	if err := f.encodeTop(data); err != nil {
		return "", errors.InvalidInput("data", "cannot encode body as form").WithCause(err)
	}
	return strings.Join(f.pairs, "&"), nil
}

type formEncoder struct {
	pairs []string
}

func (f *formEncoder) emit(key, value string) {
	f.pairs = append(f.pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

func (f *formEncoder) encodeTop(data any) error {
	switch v := data.(type) {
	case Params:
		for _, p := range v {
			if err := f.encode(p.Key, p.Value); err != nil {
				return err
			}
		}
		return nil
	case url.Values:
		f.encodeValues("", v)
		return nil
	}

	rv := reflect.Indirect(reflect.ValueOf(data))
	switch rv.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Map:
		return f.encodeMap("", rv)
	case reflect.Slice, reflect.Array:
		return f.encodeList("", rv)
	case reflect.Struct:
		return f.encodeStruct("", rv.Interface())
	default:
		return fmt.Errorf("payload: form body needs key/value data, got %T", data)
	}
}

func (f *formEncoder) encode(key string, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case Params:
		for _, p := range v {
			if err := f.encode(nested(key, p.Key), p.Value); err != nil {
				return err
			}
		}
		return nil
	case url.Values:
		f.encodeValues(key, v)
		return nil
	case []byte:
		f.emit(key, string(v))
		return nil
	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err != nil {
			return err
		}
		f.emit(key, string(text))
		return nil
	case fmt.Stringer:
		f.emit(key, v.String())
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return f.encode(key, rv.Elem().Interface())
	}

	switch rv.Kind() {
	case reflect.Map:
		return f.encodeMap(key, rv)
	case reflect.Slice, reflect.Array:
		return f.encodeList(key, rv)
	case reflect.Struct:
		return f.encodeStruct(key, value)
	}

	s, err := scalar(rv)
	if err != nil {
		return err
	}
	f.emit(key, s)
	return nil
}

func (f *formEncoder) encodeMap(prefix string, rv reflect.Value) error {
	keys := make([]string, 0, rv.Len())
	values := make(map[string]reflect.Value, rv.Len())
	for _, k := range rv.MapKeys() {
		name := fmt.Sprint(k.Interface())
		keys = append(keys, name)
		values[name] = rv.MapIndex(k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := f.encode(nested(prefix, k), values[k].Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (f *formEncoder) encodeList(prefix string, rv reflect.Value) error {
	for i := 0; i < rv.Len(); i++ {
		if err := f.encode(nested(prefix, strconv.Itoa(i)), rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (f *formEncoder) encodeStruct(prefix string, v any) error {
	values, err := query.Values(v)
	if err != nil {
		return err
	}
	f.encodeValues(prefix, values)
	return nil
}

// encodeValues emits url.Values in sorted key order, repeating keys that
// carry several values.
func (f *formEncoder) encodeValues(prefix string, values url.Values) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range values[k] {
			f.emit(nestedPath(prefix, k), v)
		}
	}
}

// nested appends key to prefix as a bracketed segment.
func nested(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "[" + key + "]"
}

// nestedPath nests an already bracketed key such as "a[b]" under prefix,
// giving "prefix[a][b]".
func nestedPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	head, rest, found := strings.Cut(key, "[")
	if !found {
		return nested(prefix, key)
	}
	return nested(prefix, head) + "[" + rest
}

func scalar(rv reflect.Value) (string, error) {
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		if rv.Bool() {
			return "1", nil
		}
		return "0", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return "", fmt.Errorf("payload: cannot form-encode %s", rv.Type())
	default:
		return fmt.Sprint(rv.Interface()), nil
	}
}
