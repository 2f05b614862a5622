package drawing

import (
	"strings"

	"github.com/shaftworks/shaftdraw/pkg/errors"
)

// Page describes the output sheet in millimeters.
type Page struct {
	Width  float64 `json:"width" toml:"width" bson:"width"`
	Height float64 `json:"height" toml:"height" bson:"height"`
	Margin float64 `json:"margin" toml:"margin" bson:"margin"`
}

// Standard landscape sheets. Margin is fixed at 15 mm, which leaves room
// for the title block on every supported size.
var (
	PageA4     = Page{Width: 297, Height: 210, Margin: 15}
	PageA3     = Page{Width: 420, Height: 297, Margin: 15}
	PageLetter = Page{Width: 279.4, Height: 215.9, Margin: 15}
)

// ParsePage maps a page-size name to its preset.
func ParsePage(name string) (Page, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "a4":
		return PageA4, nil
	case "a3":
		return PageA3, nil
	case "letter":
		return PageLetter, nil
	default:
		return Page{}, errors.New(errors.ErrCodeInvalidPage, "unknown page size %q (use a4, a3, or letter)", name)
	}
}

// ContentWidth returns the drawable width inside the margins.
func (p Page) ContentWidth() float64 { return p.Width - 2*p.Margin }

// ContentHeight returns the drawable height inside the margins.
func (p Page) ContentHeight() float64 { return p.Height - 2*p.Margin }

// Validate rejects degenerate sheets.
func (p Page) Validate() error {
	if err := errors.ValidatePositive("page_width", p.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive("page_height", p.Height); err != nil {
		return err
	}
	if err := errors.ValidateLength("page_margin", p.Margin); err != nil {
		return err
	}
	if p.ContentWidth() <= 0 || p.ContentHeight() <= 0 {
		return errors.New(errors.ErrCodeInvalidPage, "margins leave no drawable area on %gx%g page", p.Width, p.Height)
	}
	return nil
}
