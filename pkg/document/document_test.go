package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shaftworks/shaftdraw/pkg/errors"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
)

const testDoc = `
title = "Propeller Shaft"
units = "mm"
page = "a4"
overall_length = 1000.0

[[thread]]
id = "prop-nut"
start = 0.0
length = 150.0
diameter = 70.0
pitch = 6.0
exclude_from_oal = true

[[body]]
start = 150.0
length = 850.0
diameter = 85.0
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if d.Title != "Propeller Shaft" {
		t.Errorf("Title = %q, want %q", d.Title, "Propeller Shaft")
	}
	if d.OverallLength != 1000 {
		t.Errorf("OverallLength = %v, want 1000", d.OverallLength)
	}
	if len(d.Threads) != 1 || len(d.Bodies) != 1 {
		t.Fatalf("parsed %d threads, %d bodies, want 1 each", len(d.Threads), len(d.Bodies))
	}

	th := d.Threads[0]
	if th.ID != "prop-nut" || th.Kind != shaft.KindThread {
		t.Errorf("thread = %q/%v, want prop-nut/thread", th.ID, th.Kind)
	}
	if !th.ExcludeFromOAL {
		t.Error("ExcludeFromOAL = false, want true")
	}

	// Authored without an ID: positional default.
	b := d.Bodies[0]
	if b.ID != "body-1" {
		t.Errorf("generated body ID = %q, want %q", b.ID, "body-1")
	}
	if b.Kind != shaft.KindBody {
		t.Errorf("body kind = %v, want %v", b.Kind, shaft.KindBody)
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("title = [unclosed"))
	if err == nil {
		t.Fatal("Parse() error = nil, want error")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidDocument {
		t.Errorf("error code = %v, want %v", code, errors.ErrCodeInvalidDocument)
	}
}

func TestParseIDsAreStable(t *testing.T) {
	doc := `
[[body]]
start = 0.0
length = 100.0
diameter = 40.0

[[body]]
start = 100.0
length = 100.0
diameter = 50.0
`
	first, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	second, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	for i := range first.Bodies {
		if first.Bodies[i].ID != second.Bodies[i].ID {
			t.Errorf("body %d ID differs across parses: %q vs %q", i, first.Bodies[i].ID, second.Bodies[i].ID)
		}
	}
	if first.Bodies[1].ID != "body-2" {
		t.Errorf("body 1 ID = %q, want %q", first.Bodies[1].ID, "body-2")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shaft.toml")
	if err := os.WriteFile(path, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if d.Title != "Propeller Shaft" {
		t.Errorf("Title = %q, want %q", d.Title, "Propeller Shaft")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want %v", code, errors.ErrCodeFileNotFound)
	}
}

func TestSegments(t *testing.T) {
	d, err := Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	segs := d.Segments()
	if len(segs) != 2 {
		t.Fatalf("Segments() returned %d, want 2", len(segs))
	}
	// Bodies come first regardless of authored order.
	if segs[0].Kind != shaft.KindBody || segs[1].Kind != shaft.KindThread {
		t.Errorf("Segments() order = [%v, %v], want [body, thread]", segs[0].Kind, segs[1].Kind)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Document)
		wantMsg string
	}{
		{
			name:   "valid document",
			mutate: func(d *Document) {},
		},
		{
			name:    "negative overall length",
			mutate:  func(d *Document) { d.OverallLength = -1 },
			wantMsg: "overall_length",
		},
		{
			name:    "unknown units",
			mutate:  func(d *Document) { d.Units = "furlong" },
			wantMsg: "unknown unit",
		},
		{
			name:    "unknown page",
			mutate:  func(d *Document) { d.Page = "a0" },
			wantMsg: "unknown page",
		},
		{
			name:    "segment starts before the aft end",
			mutate:  func(d *Document) { d.Bodies[0].Start = -10 },
			wantMsg: "starts before",
		},
		{
			name:    "segment overruns the overall length",
			mutate:  func(d *Document) { d.Bodies[0].Length = 900 },
			wantMsg: "past the",
		},
		{
			name:    "body without diameter",
			mutate:  func(d *Document) { d.Bodies[0].Diameter = 0 },
			wantMsg: "needs a diameter",
		},
		{
			name:    "thread without pitch",
			mutate:  func(d *Document) { d.Threads[0].Pitch = 0 },
			wantMsg: "needs a pitch",
		},
		{
			name: "taper without fwd diameter",
			mutate: func(d *Document) {
				d.Tapers = append(d.Tapers, shaft.Segment{
					ID: "tp", Kind: shaft.KindTaper, Start: 150, Length: 100, AftDiameter: 70,
				})
				d.Bodies = nil
			},
			wantMsg: "aft_diameter and fwd_diameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(testDoc))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			tt.mutate(d)

			err = d.Validate()
			if tt.wantMsg == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateOverrunEpsilon(t *testing.T) {
	d, err := Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	// End lands within the tolerance past the overall length.
	d.Bodies[0].Length = 850 + OverrunEpsilon/2
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil for overrun within tolerance", err)
	}
}
