package drawing

import (
	"math"
	"testing"

	"github.com/shaftworks/shaftdraw/pkg/dimension"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
)

func testResolved() []shaft.Resolved {
	return []shaft.Resolved{
		{
			Segment: shaft.Segment{ID: "aft", Kind: shaft.KindThread, Start: 0, Length: 150, Diameter: 70, Pitch: 6},
			Source:  shaft.SourceExplicit,
		},
		{
			Segment: shaft.Segment{ID: "journal", Kind: shaft.KindBody, Start: 150, Length: 850, Diameter: 85},
			Source:  shaft.SourceExplicit,
		},
	}
}

func testRails() []dimension.RailSpan {
	return []dimension.RailSpan{
		{Span: dimension.Span{A: 0, B: 150, Top: "150", Class: dimension.ClassLocal}, Rail: 0},
		{Span: dimension.Span{A: 150, B: 1000, Top: "850", Class: dimension.ClassLocal}, Rail: 0},
		{Span: dimension.Span{A: 0, B: 1000, Top: "1000", Bottom: "OAL", Class: dimension.ClassOAL}, Rail: 1},
	}
}

func TestBuild(t *testing.T) {
	l, err := Build(testResolved(), 1000, testRails(), PageA4, "Test Shaft")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(l.Shapes) != 2 {
		t.Fatalf("Build() produced %d shapes, want 2", len(l.Shapes))
	}
	if len(l.Rails) != 3 {
		t.Fatalf("Build() produced %d rail lines, want 3", len(l.Rails))
	}
	if l.Title != "Test Shaft" {
		t.Errorf("Title = %q, want %q", l.Title, "Test Shaft")
	}
	if l.ScaleLabel == "" {
		t.Error("ScaleLabel is empty")
	}

	// Shapes tile the shaft contiguously on the page.
	if math.Abs(l.Shapes[0].Right-l.Shapes[1].Left) > 1e-9 {
		t.Errorf("shape 0 right = %v, shape 1 left = %v, want contiguous", l.Shapes[0].Right, l.Shapes[1].Left)
	}

	// Everything stays inside the margins.
	for i, s := range l.Shapes {
		if s.Left < PageA4.Margin-1e-9 || s.Right > PageA4.Width-PageA4.Margin+1e-9 {
			t.Errorf("shape %d [%v, %v] escapes content area", i, s.Left, s.Right)
		}
	}

	// Rail 1 sits one pitch above rail 0.
	if got := l.Rails[2].Y - l.Rails[0].Y; got != railPitch {
		t.Errorf("rail separation = %v, want %v", got, railPitch)
	}

	// Thread pitch carries through in drawing millimeters.
	if l.Shapes[0].PitchMM <= 0 {
		t.Errorf("thread PitchMM = %v, want > 0", l.Shapes[0].PitchMM)
	}
	if l.Shapes[1].PitchMM != 0 {
		t.Errorf("body PitchMM = %v, want 0", l.Shapes[1].PitchMM)
	}

	// Centerline overhangs the profile on both sides.
	if l.CenterX1 >= l.Shapes[0].Left || l.CenterX2 <= l.Shapes[1].Right {
		t.Errorf("centerline [%v, %v] does not overhang profile [%v, %v]",
			l.CenterX1, l.CenterX2, l.Shapes[0].Left, l.Shapes[1].Right)
	}
}

func TestBuildCentersProfile(t *testing.T) {
	l, err := Build(testResolved(), 1000, nil, PageA4, "")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	leftGap := l.Shapes[0].Left - PageA4.Margin
	rightGap := PageA4.Width - PageA4.Margin - l.Shapes[1].Right
	if math.Abs(leftGap-rightGap) > 1e-9 {
		t.Errorf("profile gaps = %v / %v, want symmetric", leftGap, rightGap)
	}
}

func TestBuildInvalidPage(t *testing.T) {
	if _, err := Build(testResolved(), 1000, nil, Page{}, ""); err == nil {
		t.Error("Build() with zero page error = nil, want error")
	}
}

func TestBuildCrowdedRailsFloorGeometry(t *testing.T) {
	// Enough rails to exhaust the content height: the geometry band floors
	// instead of going negative.
	var rails []dimension.RailSpan
	for i := 0; i < 30; i++ {
		rails = append(rails, dimension.RailSpan{
			Span: dimension.Span{A: float64(i), B: float64(i + 1), Top: "1", Class: dimension.ClassLocal},
			Rail: i,
		})
	}
	l, err := Build(testResolved(), 1000, rails, PageA4, "")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if l.Scale.Factor <= 0 {
		t.Errorf("Scale.Factor = %v, want > 0", l.Scale.Factor)
	}
}

func TestThreadPitchMM(t *testing.T) {
	s := Scale{Factor: 0.25}
	thread := shaft.Resolved{
		Segment: shaft.Segment{ID: "t", Kind: shaft.KindThread, Start: 0, Length: 100, Diameter: 70, Pitch: 6},
		Source:  shaft.SourceExplicit,
	}

	if got := threadPitchMM(thread, s); got != 1.5 {
		t.Errorf("threadPitchMM() = %v, want 1.5", got)
	}

	fine := thread
	fine.Pitch = 1
	if got := threadPitchMM(fine, s); got != 0 {
		t.Errorf("threadPitchMM() for fine pitch = %v, want 0", got)
	}

	body := thread
	body.Kind = shaft.KindBody
	if got := threadPitchMM(body, s); got != 0 {
		t.Errorf("threadPitchMM() for body = %v, want 0", got)
	}
}

func TestScaleLabel(t *testing.T) {
	tests := []struct {
		factor float64
		want   string
	}{
		{0.25, "1:4"},
		{1, "1:1"},
		{2, "2:1"},
		{0, ""},
	}

	for _, tt := range tests {
		if got := scaleLabel(tt.factor); got != tt.want {
			t.Errorf("scaleLabel(%v) = %q, want %q", tt.factor, got, tt.want)
		}
	}
}
