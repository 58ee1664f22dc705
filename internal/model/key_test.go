package model

import (
	"testing"
)

func TestKeyScan(t *testing.T) {
	tests := []struct {
		src  any
		want Key
	}{
		{nil, ""},
		{int64(42), "42"},
		{float64(7), "7"},
		{"abc", "abc"},
		{[]byte("xyz"), "xyz"},
	}

	for _, tt := range tests {
		var k Key
		if err := k.Scan(tt.src); err != nil {
			t.Fatalf("scan %v: %v", tt.src, err)
		}
		if k != tt.want {
			t.Fatalf("scan %v: got %q, want %q", tt.src, k, tt.want)
		}
	}

	var k Key
	if err := k.Scan(true); err == nil {
		t.Fatalf("expected error scanning bool")
	}
}

func TestKeyValue(t *testing.T) {
	v, err := Key("").Value()
	if err != nil || v != nil {
		t.Fatalf("expected NULL for empty key, got %v %v", v, err)
	}

	v, err = IntKey(12).Value()
	if err != nil || v != "12" {
		t.Fatalf("expected decimal text, got %v %v", v, err)
	}

	n, err := Key("12").Int()
	if err != nil || n != 12 {
		t.Fatalf("expected 12, got %d %v", n, err)
	}
	if _, err := Key("abc").Int(); err == nil {
		t.Fatalf("expected error for non-numeric key")
	}
}
