package editstate

import (
	"github.com/npillmayer/glyphedit/outline"
)

// Layers returns deep copies of all layers in order. The active drawing layer
// reports the live contours.
func (s *State) Layers() []outline.Layer {
	out := make([]outline.Layer, len(s.layers))
	for i, l := range s.layers {
		out[i] = s.layerCopy(l)
	}
	return out
}

// Layer returns a deep copy of the layer with identifier id.
func (s *State) Layer(id string) (outline.Layer, bool) {
	i := s.layerIndex(id)
	if i < 0 {
		return nil, false
	}
	return s.layerCopy(s.layers[i]), true
}

// ActiveLayer returns the identifier of the drawing layer being edited.
func (s *State) ActiveLayer() string { return s.active }

// FocusedLayer returns the identifier of the layer receiving image gestures,
// or "".
func (s *State) FocusedLayer() string { return s.focused }

// FocusedImage returns a copy of the focused layer if it is an image layer.
func (s *State) FocusedImage() (*outline.ImageLayer, bool) {
	i := s.layerIndex(s.focused)
	if i < 0 {
		return nil, false
	}
	img, ok := s.layers[i].(*outline.ImageLayer)
	if !ok {
		return nil, false
	}
	c := *img
	return &c, true
}

func (s *State) layerCopy(l outline.Layer) outline.Layer {
	c := outline.CloneLayer(l)
	if d, ok := c.(*outline.DrawingLayer); ok && d.ID == s.active {
		if s.compEditing {
			d.Contours = outline.CloneAll(s.compStash)
		} else {
			d.Contours = s.Contours()
		}
	}
	return c
}

func (s *State) layerIndex(id string) int {
	for i, l := range s.layers {
		if l.LayerID() == id {
			return i
		}
	}
	return -1
}

func (s *State) addLayer(a AddLayer) error {
	if a.Layer == nil || a.Layer.LayerID() == "" {
		return rejected(a, "layer needs an identifier")
	}
	if s.layerIndex(a.Layer.LayerID()) >= 0 {
		return rejected(a, "duplicate layer %q", a.Layer.LayerID())
	}
	s.layers = append(s.layers, outline.CloneLayer(a.Layer))
	s.dirty = true
	return nil
}

func (s *State) removeLayer(a RemoveLayer) error {
	if a.ID == outline.OutlineLayerID {
		return rejected(a, "the outline layer cannot be removed")
	}
	i := s.layerIndex(a.ID)
	if i < 0 {
		return notFound(a, "no layer %q", a.ID)
	}
	if a.ID == s.active {
		s.switchLayer(outline.OutlineLayerID)
	}
	s.layers = append(s.layers[:i:i], s.layers[i+1:]...)
	if s.focused == a.ID {
		s.focused = ""
	}
	s.dirty = true
	return nil
}

func (s *State) setActiveLayer(a SetActiveLayer) error {
	i := s.layerIndex(a.ID)
	if i < 0 {
		return notFound(a, "no layer %q", a.ID)
	}
	if _, ok := s.layers[i].(*outline.DrawingLayer); !ok {
		return rejected(a, "layer %q is not a drawing layer", a.ID)
	}
	if a.ID != s.active {
		s.switchLayer(a.ID)
	}
	return nil
}

// switchLayer stores the live contours in the active drawing layer and loads
// the contours of layer id. History entries refer to one layer's contours, so
// the history is cleared.
func (s *State) switchLayer(id string) {
	s.leaveComponent(true)
	if i := s.layerIndex(s.active); i >= 0 {
		if d, ok := s.layers[i].(*outline.DrawingLayer); ok {
			d.Contours = s.snapshot()
		}
	}
	i := s.layerIndex(id)
	d := s.layers[i].(*outline.DrawingLayer)
	s.contours = outline.CloneAll(d.Contours)
	s.ids.Observe(outline.HighestID(s.contours))
	s.active = id
	s.selection = outline.Selection{}
	s.undo, s.redo = nil, nil
	s.endDrawing()
	tracer().Infof("active layer is now %q", id)
}

func (s *State) setFocusedLayer(a SetFocusedLayer) error {
	if a.ID != "" && s.layerIndex(a.ID) < 0 {
		return notFound(a, "no layer %q", a.ID)
	}
	s.focused = a.ID
	return nil
}

func (s *State) imageLayer(a Action, id string) (*outline.ImageLayer, error) {
	i := s.layerIndex(id)
	if i < 0 {
		return nil, notFound(a, "no layer %q", id)
	}
	img, ok := s.layers[i].(*outline.ImageLayer)
	if !ok {
		return nil, rejected(a, "layer %q is not an image layer", id)
	}
	return img, nil
}

func (s *State) setImageTransform(a SetImageTransform) error {
	img, err := s.imageLayer(a, a.ID)
	if err != nil {
		return err
	}
	p := a.Placement
	img.ScaleX, img.ScaleY = p.ScaleX, p.ScaleY
	img.RotationDeg = p.RotationDeg
	img.CenterX, img.CenterY = p.CenterX, p.CenterY
	s.dirty = true
	return nil
}

func (s *State) setImageOpacity(a SetImageOpacity) error {
	img, err := s.imageLayer(a, a.ID)
	if err != nil {
		return err
	}
	img.Opacity = min(max(a.Opacity, 0), 1)
	s.dirty = true
	return nil
}

// PlacementOf returns the placement of an image layer.
func PlacementOf(img *outline.ImageLayer) ImagePlacement {
	return ImagePlacement{
		ScaleX:      img.ScaleX,
		ScaleY:      img.ScaleY,
		RotationDeg: img.RotationDeg,
		CenterX:     img.CenterX,
		CenterY:     img.CenterY,
	}
}
