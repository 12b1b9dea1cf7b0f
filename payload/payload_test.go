package payload

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/kbukum/billplz/errors"
)

func TestNew_PreservesOrderAndReplaces(t *testing.T) {
	p := New("ref", "x", "amount", 100, 7, "skipped", "ref", "y")
	if got := p.Keys(); !reflect.DeepEqual(got, []string{"ref", "amount"}) {
		t.Fatalf("unexpected keys %v", got)
	}
	if v, ok := p.Get("ref"); !ok || v != "y" {
		t.Errorf("expected ref=y, got %v (ok=%v)", v, ok)
	}
	if _, ok := p.Get("missing"); ok {
		t.Error("expected missing key to be absent")
	}
}

func TestForm(t *testing.T) {
	type bill struct {
		CollectionID string `url:"collection_id"`
		Amount       int    `url:"amount"`
		Deliver      bool   `url:"deliver,int"`
	}

	tests := []struct {
		name string
		data any
		want string
	}{
		{"nil", nil, ""},
		{"empty params", Params{}, ""},
		{"insertion order", New("amount", 100, "ref", "x"), "amount=100&ref=x"},
		{"insertion order reversed", New("ref", "x", "amount", 100), "ref=x&amount=100"},
		{"map sorted", map[string]any{"ref": "x", "amount": 100}, "amount=100&ref=x"},
		{"string map", map[string]string{"b": "2", "a": "1"}, "a=1&b=2"},
		{"escaping", New("name", "Ali & Co", "email", "a+b@x.my"), "name=Ali+%26+Co&email=a%2Bb%40x.my"},
		{"booleans", New("deliver", true, "paid", false), "deliver=1&paid=0"},
		{"floats", New("amount", 10.5, "fee", float32(0.25)), "amount=10.5&fee=0.25"},
		{"nil values skipped", New("a", nil, "b", "1"), "b=1"},
		{"nil pointer skipped", New("a", (*string)(nil), "b", "1"), "b=1"},
		{"pointer", New("a", ptr("v")), "a=v"},
		{"nested params", New("ref", New("label", "Order", "value", 42)), "ref%5Blabel%5D=Order&ref%5Bvalue%5D=42"},
		{"nested map", New("meta", map[string]any{"b": 2, "a": 1}), "meta%5Ba%5D=1&meta%5Bb%5D=2"},
		{"list", New("ids", []string{"x", "y"}), "ids%5B0%5D=x&ids%5B1%5D=y"},
		{"list of params", New("items", []Params{New("n", 1)}), "items%5B0%5D%5Bn%5D=1"},
		{"top-level list", []string{"a", "b"}, "0=a&1=b"},
		{"struct", bill{CollectionID: "inbmmepb", Amount: 200, Deliver: true}, "amount=200&collection_id=inbmmepb&deliver=1"},
		{"struct pointer", &bill{CollectionID: "c", Amount: 1}, "amount=1&collection_id=c&deliver=0"},
		{"nested struct", New("bill", bill{CollectionID: "c", Amount: 1}), "bill%5Bamount%5D=1&bill%5Bcollection_id%5D=c&bill%5Bdeliver%5D=0"},
		{"url values", url.Values{"b": {"2"}, "a": {"1", "3"}}, "a=1&a=3&b=2"},
		{"text marshaler", New("due_at", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)), "due_at=2026-01-02T03%3A04%3A05Z"},
		{"stringer", New("version", stringer("v3")), "version=v3"},
		{"bytes", New("raw", []byte("abc")), "raw=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Form(tt.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Form() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestForm_RejectsScalarsAndFuncs(t *testing.T) {
	for _, data := range []any{42, "amount=100", New("cb", func() {})} {
		_, err := Form(data)
		if err == nil {
			t.Errorf("expected error for %T", data)
			continue
		}
		if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
			t.Errorf("expected INVALID_INPUT, got %v", err)
		}
	}
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"nil", nil, "{}"},
		{"nil params", Params(nil), "{}"},
		{"nil map", map[string]any(nil), "{}"},
		{"nil struct pointer", (*struct{ Amount int })(nil), "{}"},
		{"nil slice", []string(nil), "{}"},
		{"params", New("amount", 100), `{"amount":100}`},
		{"params order", New("ref", "x", "amount", 100), `{"ref":"x","amount":100}`},
		{"nested params", New("bill", New("z", 1, "a", 2)), `{"bill":{"z":1,"a":2}}`},
		{"map", map[string]any{"ref": "x", "amount": 100}, `{"amount":100,"ref":"x"}`},
		{"struct", struct {
			Amount int `json:"amount"`
		}{100}, `{"amount":100}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JSON(tt.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("JSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestJSON_Unsupported(t *testing.T) {
	_, err := JSON(New("ch", make(chan int)))
	if err == nil {
		t.Fatal("expected error for channel value")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

type stringer string

func (s stringer) String() string { return string(s) }

func ptr[T any](v T) *T { return &v }
