package sink

import (
	"encoding/json"

	"github.com/Roman-/img2pdf/pkg/layout"
)

// OpKind names a recorded instruction.
type OpKind string

const (
	OpBeginPage  OpKind = "begin_page"
	OpPlaceImage OpKind = "place_image"
	OpDrawLine   OpKind = "draw_line"
	OpEndPage    OpKind = "end_page"
)

// Op is one recorded instruction.
type Op struct {
	Kind  OpKind                `json:"op"`
	Page  int                   `json:"page"`
	Size  *layout.PageSize      `json:"size,omitempty"`
	Image *layout.PlacedImage   `json:"image,omitempty"`
	Line  *layout.SeparatorLine `json:"line,omitempty"`
}

// Recorder records the instruction stream. Finalize returns it as JSON.
type Recorder struct {
	state pageState
	Ops   []Op
}

// BeginPage records the page start with its size.
func (r *Recorder) BeginPage(size layout.PageSize) error {
	if err := r.state.begin(); err != nil {
		return err
	}
	r.Ops = append(r.Ops, Op{Kind: OpBeginPage, Page: r.state.pages, Size: &size})
	return nil
}

// PlaceImage records a placement.
func (r *Recorder) PlaceImage(img layout.PlacedImage) error {
	if err := r.state.draw(); err != nil {
		return err
	}
	r.Ops = append(r.Ops, Op{Kind: OpPlaceImage, Page: r.state.pages, Image: &img})
	return nil
}

// DrawLine records a separator line.
func (r *Recorder) DrawLine(l layout.SeparatorLine) error {
	if err := r.state.draw(); err != nil {
		return err
	}
	r.Ops = append(r.Ops, Op{Kind: OpDrawLine, Page: r.state.pages, Line: &l})
	return nil
}

// EndPage records the page end.
func (r *Recorder) EndPage() error {
	page := r.state.pages
	if err := r.state.end(); err != nil {
		return err
	}
	r.Ops = append(r.Ops, Op{Kind: OpEndPage, Page: page})
	return nil
}

// Finalize returns the recorded operations as indented JSON.
func (r *Recorder) Finalize() ([]byte, error) {
	if err := r.state.finalize(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(r.Ops, "", "  ")
}

// RenderJSON serializes a plan, including skipped images, as indented JSON.
func RenderJSON(plan layout.Plan) ([]byte, error) {
	return json.MarshalIndent(plan, "", "  ")
}
