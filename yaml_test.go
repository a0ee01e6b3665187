package dropfs

import (
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestMappingRoundTrip(t *testing.T) {
	m := Mapping{
		{Key: "zebra", Value: 1},
		{Key: "apple", Value: "two"},
		{Key: "nested", Value: Mapping{
			{Key: "x", Value: true},
			{Key: "w", Value: []interface{}{1, 2, 3}},
		}},
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back Mapping
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	wantKeys := []string{"zebra", "apple", "nested"}
	if !reflect.DeepEqual(back.Keys(), wantKeys) {
		t.Errorf("key order not preserved: got %v, want %v", back.Keys(), wantKeys)
	}

	nested, ok := back.Get("nested")
	if !ok {
		t.Fatal("nested key missing after round trip")
	}
	nm, ok := nested.(Mapping)
	if !ok {
		t.Fatalf("nested value decoded as %T, want Mapping", nested)
	}
	if !reflect.DeepEqual(nm.Keys(), []string{"x", "w"}) {
		t.Errorf("nested key order not preserved: got %v", nm.Keys())
	}
}

func TestMappingBlockStyle(t *testing.T) {
	m := Mapping{
		{Key: "a", Value: Mapping{{Key: "b", Value: 1}}},
		{Key: "list", Value: []interface{}{"x", "y"}},
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out := string(data)

	// Block style only: no inline flow collections.
	if strings.ContainsAny(out, "{}[]") {
		t.Errorf("output contains flow collections:\n%s", out)
	}
}

func TestMappingSetGet(t *testing.T) {
	var m Mapping
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Keys = %v", got)
	}
	if v, ok := m.Get("a"); !ok || v != 3 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) reported present")
	}
}

func TestMappingRejectsNonMapping(t *testing.T) {
	var m Mapping
	if err := yaml.Unmarshal([]byte("- 1\n- 2\n"), &m); err == nil {
		t.Fatal("expected error decoding a sequence into Mapping")
	}
}
