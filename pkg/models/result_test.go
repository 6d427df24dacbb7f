package models

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestMetadata_InsertionOrder(t *testing.T) {
	m := NewMetadata()
	m.Set("source", "users")
	m.Set("page", "3")
	m.Set("fetched_at", "2024-01-01T00:00:00Z")

	want := []string{"source", "page", "fetched_at"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	// Overwriting keeps the original position.
	m.Set("page", "4")
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after overwrite = %v, want %v", got, want)
	}
	if v, _ := m.Get("page"); v != "4" {
		t.Errorf("Get(page) = %q, want %q", v, "4")
	}
}

func TestMetadata_JSONRoundTrip(t *testing.T) {
	m := NewMetadata()
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("c", "3")

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"b":"2","a":"1","c":"3"}`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Metadata
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back.Keys(), m.Keys()) {
		t.Errorf("round-trip keys = %v, want %v", back.Keys(), m.Keys())
	}
}

func TestMetadata_MsgpackRoundTrip(t *testing.T) {
	m := NewMetadata()
	m.Set("source", "orders")
	m.Set("page", "1")

	data, err := msgpack.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back Metadata
	if err := msgpack.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back.Keys(), m.Keys()) {
		t.Errorf("round-trip keys = %v, want %v", back.Keys(), m.Keys())
	}
	if v, _ := back.Get("source"); v != "orders" {
		t.Errorf("Get(source) = %q, want %q", v, "orders")
	}
}

func TestMetadata_Clone(t *testing.T) {
	m := NewMetadata()
	m.Set("k", "v")

	c := m.Clone()
	c.Set("k", "changed")
	c.Set("extra", "1")

	if v, _ := m.Get("k"); v != "v" {
		t.Errorf("original mutated through clone: %q", v)
	}
	if m.Len() != 1 {
		t.Errorf("original Len() = %d, want 1", m.Len())
	}
}

func TestNewPaginatedResult_DefaultsMetadata(t *testing.T) {
	info := NewPageInfo(1, 3, 5)
	window := NewNavigationWindow(1, 1, 5)

	r := NewPaginatedResult([]string{"a", "b", "c"}, info, window, nil)
	if r.Metadata == nil {
		t.Fatal("Metadata is nil, want empty map")
	}
	if len(r.Items) != 3 {
		t.Errorf("len(Items) = %d, want 3", len(r.Items))
	}
}
