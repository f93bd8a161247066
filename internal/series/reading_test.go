package series_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/kpumuk/nodescope/internal/series"
)

func TestParseTime(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{name: "rfc3339", input: "2024-05-01T10:30:00Z", wantOK: true},
		{name: "iso with offset", input: "2024-05-01T12:30:00+02:00", wantOK: true},
		{name: "iso without zone", input: "2024-05-01T10:30:00", wantOK: true},
		{name: "space separated", input: "2024-05-01 10:30:00", wantOK: true},
		{name: "rfc1123", input: "Wed, 01 May 2024 10:30:00 UTC", wantOK: true},
		{name: "unix seconds", input: "1714559400", wantOK: true},
		{name: "unix milliseconds", input: "1714559400000", wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "garbage", input: "yesterday", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := series.ParseTime(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseTime(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(want) {
				t.Fatalf("ParseTime(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestParseTime_DigitPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  time.Time
	}{
		{input: "2024", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{input: "1970", want: time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)},
		{input: "60", want: time.Unix(60, 0).UTC()},
		{input: "1700000000", want: time.Unix(1700000000, 0).UTC()},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, ok := series.ParseTime(tt.input)
			if !ok || !got.Equal(tt.want) {
				t.Fatalf("ParseTime(%q) = %v, %v, want %v", tt.input, got, ok, tt.want)
			}
		})
	}
}

func TestFromRaw(t *testing.T) {
	t.Parallel()

	raw := []series.RawReading{
		{Timestamp: "2024-05-01T12:00:00Z", Value: "3.5"},
		{Timestamp: "not a time", Value: 1},
		{Timestamp: "2024-05-01T10:00:00Z", Value: 1.0},
		{Timestamp: "2024-05-01T11:00:00Z", Value: nil},
		{Timestamp: "2024-05-01T13:00:00Z", Value: "n/a"},
	}
	got := series.FromRaw(raw)
	if len(got) != 4 {
		t.Fatalf("len(FromRaw) = %d, want 4", len(got))
	}

	wantStamps := []string{
		"2024-05-01T10:00:00Z",
		"2024-05-01T11:00:00Z",
		"2024-05-01T12:00:00Z",
		"2024-05-01T13:00:00Z",
	}
	for i, r := range got {
		if r.Timestamp != wantStamps[i] {
			t.Errorf("reading %d timestamp = %q, want %q", i, r.Timestamp, wantStamps[i])
		}
	}
	if !got[0].Value.Valid || got[0].Value.Float != 1 {
		t.Errorf("reading 0 value = %+v", got[0].Value)
	}
	if got[1].Value.Valid || got[3].Value.Valid {
		t.Errorf("missing values should be gaps: %+v, %+v", got[1].Value, got[3].Value)
	}
	if raw[0].Timestamp != "2024-05-01T12:00:00Z" {
		t.Error("FromRaw modified its input")
	}

	values := series.Values(got)
	if len(values) != 2 || values[0] != 1 || values[1] != 3.5 {
		t.Errorf("Values() = %v, want [1 3.5]", values)
	}
}

func TestValue_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal([]series.Value{series.Some(1.5), {}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[1.5,null]" {
		t.Fatalf("marshal = %s", data)
	}

	var decoded []series.Value
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 || !decoded[0].Valid || decoded[0].Float != 1.5 || decoded[1].Valid {
		t.Fatalf("decoded = %+v", decoded)
	}
	if decoded[1].Ptr() != nil {
		t.Fatal("Ptr() of null value should be nil")
	}
}
