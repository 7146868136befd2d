package sink

import (
	"errors"

	apperr "github.com/Roman-/img2pdf/pkg/errors"
	"github.com/Roman-/img2pdf/pkg/layout"
)

// Sink consumes the drawing instructions of a plan.
type Sink interface {
	BeginPage(size layout.PageSize) error
	PlaceImage(img layout.PlacedImage) error
	DrawLine(line layout.SeparatorLine) error
	EndPage() error
	Finalize() ([]byte, error)
}

var (
	errPageOpen    = errors.New("page already open")
	errNoPage      = errors.New("no page open")
	errFinalized   = errors.New("sink already finalized")
	errNoPayload   = errors.New("image has no pixel data")
	errUnfinalized = errors.New("page still open at finalize")
)

// Emit sends every page of plan to s in order and finalizes it.
//
// Within a page all images are placed before any line is drawn. On the first
// error from s the partial output is discarded and an error with code
// SINK_FAILURE is returned naming the page.
func Emit(plan layout.Plan, s Sink) ([]byte, error) {
	for _, pg := range plan.Pages {
		if err := emitPage(plan.PageSize, pg, s); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeSinkFailure, err, "page %d", pg.Index)
		}
	}
	out, err := s.Finalize()
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeSinkFailure, err, "finalize")
	}
	return out, nil
}

func emitPage(size layout.PageSize, pg layout.Page, s Sink) error {
	if err := s.BeginPage(size); err != nil {
		return err
	}
	for _, img := range pg.Images {
		if err := s.PlaceImage(img); err != nil {
			return err
		}
	}
	for _, l := range pg.Lines {
		if err := s.DrawLine(l); err != nil {
			return err
		}
	}
	return s.EndPage()
}

// pageState tracks the begin/end protocol shared by all sinks.
type pageState struct {
	open   bool
	done   bool
	failed bool
	pages  int
}

func (p *pageState) begin() error {
	switch {
	case p.done || p.failed:
		return errFinalized
	case p.open:
		return p.fail(errPageOpen)
	}
	p.open = true
	return nil
}

func (p *pageState) draw() error {
	switch {
	case p.done || p.failed:
		return errFinalized
	case !p.open:
		return p.fail(errNoPage)
	}
	return nil
}

func (p *pageState) end() error {
	if err := p.draw(); err != nil {
		return err
	}
	p.open = false
	p.pages++
	return nil
}

func (p *pageState) finalize() error {
	switch {
	case p.done || p.failed:
		return errFinalized
	case p.open:
		return p.fail(errUnfinalized)
	}
	p.done = true
	return nil
}

func (p *pageState) fail(err error) error {
	p.failed = true
	return err
}
