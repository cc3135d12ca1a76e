package outline

import "math"

// OutlineLayerID is the identifier of the drawing layer every glyph has.
// It cannot be removed.
const OutlineLayerID = "outline"

// Layer is either a DrawingLayer or an ImageLayer.
type Layer interface {
	LayerID() string
	LayerName() string
	isLayer()
}

// DrawingLayer holds contours. The active drawing layer's contours are
// mirrored into the editor's live buffer; inactive ones are read-only
// backdrops.
type DrawingLayer struct {
	ID       string
	Name     string
	Contours []Contour
}

func (l *DrawingLayer) LayerID() string   { return l.ID }
func (l *DrawingLayer) LayerName() string { return l.Name }
func (*DrawingLayer) isLayer()            {}

// ImageLayer is a reference bitmap positioned in font space.
// Width and Height are the bitmap's pixel dimensions; ScaleX and ScaleY map
// pixels to font units. The image is centered at (CenterX, CenterY) and
// rotated counter-clockwise by RotationDeg around its center.
type ImageLayer struct {
	ID            string
	Name          string
	Ref           string // opaque bitmap reference, e.g. a file path
	Width, Height float64
	Opacity       float64
	ScaleX        float64
	ScaleY        float64
	RotationDeg   float64
	CenterX       float64
	CenterY       float64
}

func (l *ImageLayer) LayerID() string   { return l.ID }
func (l *ImageLayer) LayerName() string { return l.Name }
func (*ImageLayer) isLayer()            {}

// HalfExtents returns half the image's width and height in font units.
func (l *ImageLayer) HalfExtents() (hw, hh float64) {
	return math.Abs(l.Width*l.ScaleX) / 2, math.Abs(l.Height*l.ScaleY) / 2
}

// CloneLayer returns a deep copy of l.
func CloneLayer(l Layer) Layer {
	switch l := l.(type) {
	case *DrawingLayer:
		c := *l
		c.Contours = CloneAll(l.Contours)
		return &c
	case *ImageLayer:
		c := *l
		return &c
	}
	return nil
}
