package document

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/shaftworks/shaftdraw/pkg/drawing"
	"github.com/shaftworks/shaftdraw/pkg/errors"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
	"github.com/shaftworks/shaftdraw/pkg/units"
)

// OverrunEpsilon is the tolerance, in millimeters, by which a segment may
// extend past a fixed overall length before the document is rejected.
const OverrunEpsilon = 0.25

// Document is an authored shaft definition as stored on disk.
//
// OverallLength zero (or omitted) means the shaft length is implicit: it
// follows the last authored segment and no leading/trailing auto fill is
// generated.
type Document struct {
	Title string `toml:"title" json:"title" bson:"title"`
	Units string `toml:"units" json:"units" bson:"units"`
	Page  string `toml:"page" json:"page" bson:"page"`

	OverallLength float64 `toml:"overall_length" json:"overall_length" bson:"overall_length"`

	Bodies  []shaft.Segment `toml:"body" json:"body,omitempty" bson:"body,omitempty"`
	Tapers  []shaft.Segment `toml:"taper" json:"taper,omitempty" bson:"taper,omitempty"`
	Threads []shaft.Segment `toml:"thread" json:"thread,omitempty" bson:"thread,omitempty"`
	Liners  []shaft.Segment `toml:"liner" json:"liner,omitempty" bson:"liner,omitempty"`
}

// Load reads and parses a shaft document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "document %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes a TOML shaft document and assigns stable identifiers to
// segments that were authored without one.
func Parse(data []byte) (*Document, error) {
	var d Document
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse shaft document")
	}

	assignIDs(d.Bodies, shaft.KindBody)
	assignIDs(d.Tapers, shaft.KindTaper)
	assignIDs(d.Threads, shaft.KindThread)
	assignIDs(d.Liners, shaft.KindLiner)

	return &d, nil
}

// assignIDs stamps the kind on each segment and defaults missing IDs to
// "kind-N". Generated IDs are positional, so re-parsing the same file
// always yields the same identifiers.
func assignIDs(segs []shaft.Segment, kind shaft.Kind) {
	for i := range segs {
		segs[i].Kind = kind
		if segs[i].ID == "" {
			segs[i].ID = fmt.Sprintf("%s-%d", kind, i+1)
		}
	}
}

// Segments returns all authored segments as one list, bodies first.
func (d *Document) Segments() []shaft.Segment {
	out := make([]shaft.Segment, 0, len(d.Bodies)+len(d.Tapers)+len(d.Threads)+len(d.Liners))
	out = append(out, d.Bodies...)
	out = append(out, d.Tapers...)
	out = append(out, d.Threads...)
	out = append(out, d.Liners...)
	return out
}

// Unit returns the document's display unit.
func (d *Document) Unit() (units.Unit, error) {
	return units.Parse(d.Units)
}

// PageSpec returns the document's output sheet.
func (d *Document) PageSpec() (drawing.Page, error) {
	return drawing.ParsePage(d.Page)
}

// Validate checks the document for authoring mistakes the geometry engine
// deliberately tolerates: out-of-range positions, missing diameters, and
// unknown unit or page names. Overlapping segments are allowed (a shaft
// being edited is routinely inconsistent); only hard contradictions fail.
func (d *Document) Validate() error {
	if err := errors.ValidateLength("overall_length", d.OverallLength); err != nil {
		return err
	}
	if _, err := d.Unit(); err != nil {
		return err
	}
	if _, err := d.PageSpec(); err != nil {
		return err
	}

	for _, s := range d.Segments() {
		if err := validateAuthored(s, d.OverallLength); err != nil {
			return err
		}
	}
	return nil
}

func validateAuthored(s shaft.Segment, oal float64) error {
	if err := errors.ValidateFinite("start", s.Start); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "segment %q", s.ID)
	}
	if err := errors.ValidateLength("length", s.Length); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "segment %q", s.ID)
	}
	if s.Start < 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "segment %q starts before the AFT end (%g)", s.ID, s.Start)
	}
	if oal > 0 && s.End() > oal+OverrunEpsilon {
		return errors.New(errors.ErrCodeInvalidDocument,
			"segment %q ends at %g, past the %g overall length", s.ID, s.End(), oal)
	}

	switch s.Kind {
	case shaft.KindTaper:
		if s.AftDiameter <= 0 || s.FwdDiameter <= 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "taper %q needs aft_diameter and fwd_diameter", s.ID)
		}
	case shaft.KindThread:
		if s.Diameter <= 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "thread %q needs a major diameter", s.ID)
		}
		if s.Pitch <= 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "thread %q needs a pitch", s.ID)
		}
	default:
		if s.Diameter <= 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "%s %q needs a diameter", s.Kind, s.ID)
		}
	}
	return nil
}
