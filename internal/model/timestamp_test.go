package model

import (
	"testing"
	"time"
)

func TestTimestampValueIsUTC(t *testing.T) {
	local := time.Date(2024, 3, 1, 14, 30, 0, 0, time.FixedZone("CET", 3600))

	v, err := At(local).Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != "2024-03-01T13:30:00Z" {
		t.Fatalf("unexpected value %v", v)
	}

	v, err = Timestamp{}.Value()
	if err != nil || v != nil {
		t.Fatalf("expected NULL, got %v %v", v, err)
	}
}

func TestTimestampScan(t *testing.T) {
	want := time.Date(2024, 3, 1, 13, 30, 0, 0, time.UTC)

	for _, src := range []any{
		"2024-03-01T13:30:00Z",
		"2024-03-01 13:30:00",
		[]byte("2024-03-01T14:30:00+01:00"),
		want,
	} {
		var ts Timestamp
		if err := ts.Scan(src); err != nil {
			t.Fatalf("scan %v: %v", src, err)
		}
		if !ts.Valid || !ts.Time.Equal(want) {
			t.Fatalf("scan %v: got %v", src, ts)
		}
	}

	var ts Timestamp
	if err := ts.Scan(nil); err != nil || ts.Valid {
		t.Fatalf("expected invalid timestamp for NULL")
	}
	if err := ts.Scan("yesterday"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTimestampMarshalJSON(t *testing.T) {
	b, _ := Timestamp{}.MarshalJSON()
	if string(b) != "null" {
		t.Fatalf("expected null, got %s", b)
	}

	b, _ = At(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).MarshalJSON()
	if string(b) != `"2024-03-01T00:00:00Z"` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestDateValue(t *testing.T) {
	v, err := DateOf(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)).Value()
	if err != nil || v != "2024-02-29" {
		t.Fatalf("unexpected date %v %v", v, err)
	}
}

func TestStringList(t *testing.T) {
	v, err := StringList{"go", "sqlite"}.Value()
	if err != nil || v != `["go","sqlite"]` {
		t.Fatalf("unexpected value %v %v", v, err)
	}

	v, err = StringList(nil).Value()
	if err != nil || v != nil {
		t.Fatalf("expected NULL, got %v", v)
	}

	var l StringList
	if err := l.Scan(`["a","b"]`); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(l) != 2 || l[1] != "b" {
		t.Fatalf("unexpected list %v", l)
	}
	if err := l.Scan("not json"); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}
