package shaft

import (
	"math"
	"testing"
)

func body(id string, start, length, dia float64) Segment {
	return Segment{ID: id, Kind: KindBody, Start: start, Length: length, Diameter: dia}
}

func thread(id string, start, length, dia, pitch float64) Segment {
	return Segment{ID: id, Kind: KindThread, Start: start, Length: length, Diameter: dia, Pitch: pitch}
}

func taper(id string, start, length, aft, fwd float64) Segment {
	return Segment{ID: id, Kind: KindTaper, Start: start, Length: length, AftDiameter: aft, FwdDiameter: fwd}
}

func TestResolveEmpty(t *testing.T) {
	t.Run("fixed length yields single auto body", func(t *testing.T) {
		got, err := Resolve(500, nil)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Resolve() returned %d components, want 1", len(got))
		}
		c := got[0]
		if c.Source != SourceAuto || c.Kind != KindBody {
			t.Errorf("Resolve() component = %v/%v, want auto body", c.Source, c.Kind)
		}
		if c.Start != 0 || c.Length != 500 {
			t.Errorf("Resolve() span = [%v, %v], want [0, 500]", c.Start, c.End())
		}
		if c.Diameter != DefaultAutoDiameter {
			t.Errorf("Resolve() diameter = %v, want %v", c.Diameter, DefaultAutoDiameter)
		}
	})

	t.Run("implicit length yields nothing", func(t *testing.T) {
		got, err := Resolve(0, nil)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Resolve() returned %d components, want 0", len(got))
		}
	})
}

func TestResolveGapFilling(t *testing.T) {
	tests := []struct {
		name          string
		overallLength float64
		segs          []Segment
		wantSpans     [][2]float64
		wantAuto      []bool
	}{
		{
			name:          "leading and trailing gaps with fixed length",
			overallLength: 1000,
			segs:          []Segment{body("mid", 200, 600, 80)},
			wantSpans:     [][2]float64{{0, 200}, {200, 800}, {800, 1000}},
			wantAuto:      []bool{true, false, true},
		},
		{
			name:          "implicit length fills interior gaps only",
			overallLength: 0,
			segs: []Segment{
				body("a", 100, 100, 40),
				body("b", 350, 100, 50),
			},
			wantSpans: [][2]float64{{100, 200}, {200, 350}, {350, 450}},
			wantAuto:  []bool{false, true, false},
		},
		{
			name:          "single interior gap between liners",
			overallLength: 0,
			segs: []Segment{
				{ID: "l1", Kind: KindLiner, Start: 0, Length: 20, Diameter: 95},
				{ID: "l2", Kind: KindLiner, Start: 60, Length: 10, Diameter: 95},
			},
			wantSpans: [][2]float64{{0, 20}, {20, 60}, {60, 70}},
			wantAuto:  []bool{false, true, false},
		},
		{
			name:          "no gaps when segments touch",
			overallLength: 300,
			segs: []Segment{
				body("a", 0, 150, 40),
				body("b", 150, 150, 50),
			},
			wantSpans: [][2]float64{{0, 150}, {150, 300}},
			wantAuto:  []bool{false, false},
		},
		{
			name:          "overlapping segments skip negative gaps",
			overallLength: 400,
			segs: []Segment{
				body("a", 0, 250, 40),
				body("b", 200, 200, 50),
			},
			wantSpans: [][2]float64{{0, 250}, {200, 400}},
			wantAuto:  []bool{false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.overallLength, tt.segs)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if len(got) != len(tt.wantSpans) {
				t.Fatalf("Resolve() returned %d components, want %d", len(got), len(tt.wantSpans))
			}
			for i, c := range got {
				if c.Start != tt.wantSpans[i][0] || c.End() != tt.wantSpans[i][1] {
					t.Errorf("component %d span = [%v, %v], want %v", i, c.Start, c.End(), tt.wantSpans[i])
				}
				if c.IsAuto() != tt.wantAuto[i] {
					t.Errorf("component %d IsAuto() = %v, want %v", i, c.IsAuto(), tt.wantAuto[i])
				}
			}
		})
	}
}

func TestResolveDiameterInheritance(t *testing.T) {
	tests := []struct {
		name          string
		overallLength float64
		segs          []Segment
		gapStart      float64
		wantDiameter  float64
	}{
		{
			name:          "upstream explicit body wins",
			overallLength: 600,
			segs: []Segment{
				body("a", 0, 200, 80),
				thread("t", 200, 100, 60, 4),
				body("b", 500, 100, 90),
			},
			gapStart:     300,
			wantDiameter: 80,
		},
		{
			name:          "upstream taper forward face when no body upstream",
			overallLength: 500,
			segs: []Segment{
				taper("tp", 0, 200, 60, 85),
				body("b", 400, 100, 90),
			},
			gapStart:     200,
			wantDiameter: 85,
		},
		{
			name:          "downstream aft face for leading gap",
			overallLength: 400,
			segs: []Segment{
				taper("tp", 150, 100, 70, 85),
			},
			gapStart:     0,
			wantDiameter: 70,
		},
		{
			name:          "zero-diameter upstream body does not stop the chain",
			overallLength: 500,
			segs: []Segment{
				{ID: "bare", Kind: KindBody, Start: 0, Length: 100},
				taper("tp", 300, 100, 60, 85),
			},
			gapStart:     100,
			wantDiameter: 60,
		},
		{
			name:          "fallback when nothing has a diameter",
			overallLength: 300,
			segs: []Segment{
				{ID: "z", Kind: KindBody, Start: 0, Length: 100},
			},
			gapStart:     100,
			wantDiameter: DefaultAutoDiameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.overallLength, tt.segs)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			var found *Resolved
			for i := range got {
				if got[i].IsAuto() && got[i].Start == tt.gapStart {
					found = &got[i]
					break
				}
			}
			if found == nil {
				t.Fatalf("Resolve() produced no auto body at %v", tt.gapStart)
			}
			if found.Diameter != tt.wantDiameter {
				t.Errorf("auto body diameter = %v, want %v", found.Diameter, tt.wantDiameter)
			}
		})
	}
}

func TestResolveFallbackOverride(t *testing.T) {
	got, err := Resolve(200, nil, WithFallbackDiameter(42))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(got) != 1 || got[0].Diameter != 42 {
		t.Errorf("Resolve() with fallback 42 = %+v, want single body with diameter 42", got)
	}
}

func TestResolveDeterminism(t *testing.T) {
	segs := []Segment{
		thread("aft", 0, 150, 70, 6),
		body("journal", 400, 450, 85),
		taper("tp", 150, 250, 70, 85),
	}
	first, err := Resolve(1000, segs)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	// Same multiset in a different authored order.
	reordered := []Segment{segs[1], segs[2], segs[0]}
	second, err := Resolve(1000, reordered)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Resolve() lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("component %d differs across input orders: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestResolveSameStartOrdering(t *testing.T) {
	// A liner over a body, both starting at 400: the body renders first.
	segs := []Segment{
		{ID: "liner", Kind: KindLiner, Start: 400, Length: 300, Diameter: 95},
		body("journal", 400, 450, 85),
	}
	got, err := Resolve(0, segs)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Resolve() returned %d components, want 2", len(got))
	}
	if got[0].Kind != KindBody || got[1].Kind != KindLiner {
		t.Errorf("same-start order = [%v, %v], want [body, liner]", got[0].Kind, got[1].Kind)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name          string
		overallLength float64
		segs          []Segment
	}{
		{"negative overall length", -1, nil},
		{"NaN overall length", math.NaN(), nil},
		{"infinite start", 100, []Segment{{ID: "a", Kind: KindBody, Start: math.Inf(1), Length: 10}}},
		{"NaN length", 100, []Segment{{ID: "a", Kind: KindBody, Start: 0, Length: math.NaN()}}},
		{"negative length", 100, []Segment{{ID: "a", Kind: KindBody, Start: 0, Length: -5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.overallLength, tt.segs); err == nil {
				t.Error("Resolve() error = nil, want error")
			}
		})
	}
}

func TestAutoID(t *testing.T) {
	a := AutoID(150, 200)
	b := AutoID(150, 200)
	if a != b {
		t.Errorf("AutoID(150, 200) not stable: %q vs %q", a, b)
	}
	if c := AutoID(150, 201); c == a {
		t.Errorf("AutoID(150, 201) = %q, want different from AutoID(150, 200)", c)
	}

	// Sub-micrometer float noise must not change identity.
	if d := AutoID(150.0000004, 200); d != a {
		t.Errorf("AutoID(150.0000004, 200) = %q, want %q", d, a)
	}
}
