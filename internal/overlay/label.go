package overlay

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	labelPadding  = 4
	maxLabelScale = 6
)

// labelScale derives an integer glyph scale from the box height, bounded
// below by 1 (the base 13px face) so labels stay legible on small boxes.
func labelScale(boxHeight int) int {
	scale := boxHeight / 100
	if scale < 1 {
		return 1
	}
	if scale > maxLabelScale {
		return maxLabelScale
	}
	return scale
}

// measureLabel returns the pixel width of the label at the base font size.
func measureLabel(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}

// drawLabel paints the label with a filled background anchored just above
// the box's top-left corner. When that would run off the top of the surface
// the label flips just inside the box below the top edge. The left edge is
// clamped so the label never overflows the surface's right edge.
func (r *Renderer) drawLabel(text string, boxX, boxY, boxHeight int) {
	if text == "" {
		return
	}

	face := basicfont.Face7x13
	scale := labelScale(boxHeight)
	pad := labelPadding * scale

	textW := measureLabel(text) * scale
	textH := face.Height * scale
	labelW := textW + 2*pad
	labelH := textH + 2*pad

	surfaceW := r.surface.Bounds().Dx()

	y := boxY - labelH
	if y < 0 {
		// Off the top edge: anchor inside the box instead.
		y = boxY
	}

	x := boxX
	if x+labelW > surfaceW {
		x = surfaceW - labelW
	}
	if x < 0 {
		x = 0
	}

	r.fillRect(image.Rect(x, y, x+labelW, y+labelH), labelBackground)

	// Glyphs render at the base size, then scale up with nearest neighbor
	// so the bitmap face stays crisp.
	base := image.NewRGBA(image.Rect(0, 0, measureLabel(text), face.Height))
	drawer := &font.Drawer{
		Dst:  base,
		Src:  image.NewUniform(labelTextColor),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	drawer.DrawString(text)

	target := image.Rect(x+pad, y+pad, x+pad+textW, y+pad+textH)
	draw.NearestNeighbor.Scale(r.surface, target.Intersect(r.surface.Bounds()), base, base.Bounds(), draw.Over, nil)
}
