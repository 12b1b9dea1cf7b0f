package payload

import (
	"bytes"
)

// Param is a single key/value entry.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered set of request parameters.
type Params []Param

// New builds Params from alternating key/value pairs. Pairs whose key is not
// a string are skipped; a repeated key replaces the earlier value in place.
//
//	payload.New("collection_id", "inbmmepb", "amount", 200)
func New(kvs ...any) Params {
	p := make(Params, 0, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			p = p.Set(key, kvs[i+1])
		}
	}
	return p
}

// Set replaces the value of key, or appends it when absent.
func (p Params) Set(key string, value any) Params {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: key, Value: value})
}

// Get returns the value stored under key.
func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order.
func (p Params) Keys() []string {
	keys := make([]string, len(p))
	for i, param := range p {
		keys[i] = param.Key
	}
	return keys
}

// MarshalJSON encodes Params as a JSON object with keys in insertion order.
func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, param := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(param.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(param.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
