package geom

// View maps font space (Y up) to screen space (Y down):
//
//	screenX = OriginX + fontX·Scale
//	screenY = OriginY − fontY·Scale
type View struct {
	Scale            float64
	OriginX, OriginY float64
}

// DefaultView is a 1:1 view with the origin at the screen's top left corner.
func DefaultView() View {
	return View{Scale: 1}
}

// ToFont maps a screen position to font space.
func (v View) ToFont(s Vec) Vec {
	scale := v.scale()
	return Vec{(s.X - v.OriginX) / scale, -(s.Y - v.OriginY) / scale}
}

// ToScreen maps a font-space position to the screen.
func (v View) ToScreen(f Vec) Vec {
	scale := v.scale()
	return Vec{v.OriginX + f.X*scale, v.OriginY - f.Y*scale}
}

// FontDistance converts a screen distance in pixels to font units.
func (v View) FontDistance(px float64) float64 {
	return px / v.scale()
}

// Pan shifts the view by a screen-space delta.
func (v View) Pan(dx, dy float64) View {
	v.OriginX += dx
	v.OriginY += dy
	return v
}

// ZoomAt scales the view by factor, keeping the font position under the
// screen point anchor fixed. Non-positive factors leave the view unchanged.
func (v View) ZoomAt(factor float64, anchor Vec) View {
	if factor <= 0 {
		return v
	}
	f := v.ToFont(anchor)
	v.Scale = v.scale() * factor
	v.OriginX = anchor.X - f.X*v.Scale
	v.OriginY = anchor.Y + f.Y*v.Scale
	return v
}

// scale guards against an uninitialized view.
func (v View) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}
