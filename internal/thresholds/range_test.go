package thresholds_test

import (
	"encoding/json"
	"math"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kpumuk/nodescope/internal/thresholds"
)

func boundsEqual(a, b thresholds.Bounds) bool {
	eq := func(x, y *float64) bool {
		if x == nil || y == nil {
			return x == nil && y == nil
		}
		return *x == *y
	}
	return eq(a.Min, b.Min) && eq(a.Max, b.Max)
}

func TestNormalize_ObjectAndArrayAgree(t *testing.T) {
	t.Parallel()

	var obj, arr thresholds.RawRange
	if err := json.Unmarshal([]byte(`{"min":1,"max":9}`), &obj); err != nil {
		t.Fatalf("unmarshal object: %v", err)
	}
	if err := json.Unmarshal([]byte(`[1, 9]`), &arr); err != nil {
		t.Fatalf("unmarshal array: %v", err)
	}
	if obj.Shape != thresholds.RangeObject || arr.Shape != thresholds.RangeArray {
		t.Fatalf("shapes = %v, %v", obj.Shape, arr.Shape)
	}

	fromObj, ok := thresholds.Normalize(obj)
	if !ok {
		t.Fatal("Normalize(object) reported absent")
	}
	fromArr, ok := thresholds.Normalize(arr)
	if !ok {
		t.Fatal("Normalize(array) reported absent")
	}
	if !boundsEqual(fromObj, fromArr) {
		t.Fatalf("object %+v and array %+v normalized differently", fromObj, fromArr)
	}
	r, ok := fromObj.Range()
	if !ok || r.Min != 1 || r.Max != 9 {
		t.Fatalf("Range() = %+v, %v", r, ok)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantOK    bool
		wantRange bool
		wantMin   float64
		wantMax   float64
	}{
		{name: "null", input: `null`},
		{name: "scalar", input: `42`},
		{name: "empty array", input: `[]`},
		{name: "empty object", input: `{}`},
		{name: "non numeric bounds", input: `{"min":"abc","max":null}`},
		{name: "string numbers", input: `["0.5","12"]`, wantOK: true, wantRange: true, wantMin: 0.5, wantMax: 12},
		{name: "reversed pair kept as given", input: `[9, 1]`, wantOK: true, wantRange: true, wantMin: 9, wantMax: 1},
		{name: "single bound array", input: `[3]`, wantOK: true},
		{name: "object missing max", input: `{"min":3}`, wantOK: true},
		{name: "extra elements ignored", input: `[1, 2, 3]`, wantOK: true, wantRange: true, wantMin: 1, wantMax: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var raw thresholds.RawRange
			if err := json.Unmarshal([]byte(tt.input), &raw); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			b, ok := thresholds.Normalize(raw)
			if ok != tt.wantOK {
				t.Fatalf("Normalize(%s) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			r, ok := b.Range()
			if ok != tt.wantRange {
				t.Fatalf("Range() ok = %v, want %v", ok, tt.wantRange)
			}
			if ok && (r.Min != tt.wantMin || r.Max != tt.wantMax) {
				t.Fatalf("Range() = %+v, want [%v, %v]", r, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestRawRange_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	var doc struct {
		Ideal    thresholds.RawRange `yaml:"ideal"`
		Moderate thresholds.RawRange `yaml:"moderate"`
		Extreme  thresholds.RawRange `yaml:"extreme"`
	}
	input := "ideal: [0, 30]\nmoderate: {min: 30, max: 60}\nextreme: nope\n"
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}

	if got := thresholds.NormalizeRange(doc.Ideal); got == nil || *got != (thresholds.Range{Min: 0, Max: 30}) {
		t.Fatalf("ideal = %+v", got)
	}
	if got := thresholds.NormalizeRange(doc.Moderate); got == nil || *got != (thresholds.Range{Min: 30, Max: 60}) {
		t.Fatalf("moderate = %+v", got)
	}
	if !doc.Extreme.IsMissing() {
		t.Fatalf("extreme = %+v, want missing", doc.Extreme)
	}
}

func TestRawRange_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(thresholds.ArrayRange(1, 9))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"max":9,"min":1}` {
		t.Fatalf("marshal = %s", data)
	}

	data, err = json.Marshal(thresholds.RawRange{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Fatalf("marshal missing = %s", data)
	}
}

func TestExtremeTails(t *testing.T) {
	t.Parallel()

	tails := thresholds.ExtremeTails(&thresholds.Range{Min: 0, Max: 100})
	if len(tails) != 2 {
		t.Fatalf("len(tails) = %d, want 2", len(tails))
	}
	if !math.IsInf(tails[0].Min, -1) || tails[0].Max != 0 {
		t.Errorf("lower tail = %+v", tails[0])
	}
	if tails[1].Min != 100 || !math.IsInf(tails[1].Max, 1) {
		t.Errorf("upper tail = %+v", tails[1])
	}

	if got := thresholds.ExtremeTails(nil); len(got) != 0 {
		t.Errorf("ExtremeTails(nil) = %+v, want empty", got)
	}
}

func TestRange_String(t *testing.T) {
	t.Parallel()

	tails := thresholds.ExtremeTails(&thresholds.Range{Min: 0, Max: 100.5})
	if got := tails[0].String(); got != "-∞ - 0" {
		t.Errorf("lower tail String() = %q", got)
	}
	if got := tails[1].String(); got != "100.5 - ∞" {
		t.Errorf("upper tail String() = %q", got)
	}
}

func TestRange_MarshalJSON(t *testing.T) {
	t.Parallel()

	tails := thresholds.ExtremeTails(&thresholds.Range{Min: 0, Max: 100})
	data, err := json.Marshal(tails)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `[{"min":null,"max":0},{"min":100,"max":null}]` {
		t.Fatalf("marshal = %s", data)
	}
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	raw, err := thresholds.ParseRange(" 30 , 60 ")
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	if got := thresholds.NormalizeRange(raw); got == nil || *got != (thresholds.Range{Min: 30, Max: 60}) {
		t.Fatalf("ParseRange normalized = %+v", got)
	}

	raw, err = thresholds.ParseRange("")
	if err != nil || !raw.IsMissing() {
		t.Fatalf("ParseRange(\"\") = %+v, %v", raw, err)
	}

	if _, err := thresholds.ParseRange("30"); err == nil {
		t.Fatal("ParseRange(\"30\") expected error")
	}
}
