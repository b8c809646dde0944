// Package overlay paints recognition results onto a transparent surface
// stacked above the live video frame. Every render is a full repaint from
// the given detection list; the only state carried between calls is the
// surface buffer and its cached dimensions.
package overlay

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/facewatch/facewatch/internal/faceapi"
)

const minStrokeWidth = 2

// Renderer owns the overlay surface. The surface's pixel dimensions always
// match the video frame's native dimensions before any draw call; a frame
// with different dimensions resizes the surface first.
type Renderer struct {
	surface *image.RGBA
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Surface returns the current overlay surface. Nil until the first render.
func (r *Renderer) Surface() *image.RGBA {
	return r.surface
}

// Clear erases the whole surface.
func (r *Renderer) Clear() {
	if r.surface == nil {
		return
	}
	for i := range r.surface.Pix {
		r.surface.Pix[i] = 0
	}
}

// ensureSize resizes the surface to the frame's current native dimensions.
// Handles mid-session camera resolution changes.
func (r *Renderer) ensureSize(width, height int) {
	if r.surface != nil && r.surface.Bounds().Dx() == width && r.surface.Bounds().Dy() == height {
		return
	}
	r.surface = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Render repaints the surface from the detection list. width and height are
// the video frame's native dimensions; sourceSize is the [width, height] the
// bounding boxes are expressed in, as reported by the API, falling back to
// the frame dimensions when absent.
func (r *Renderer) Render(width, height int, detections []faceapi.Detection, sourceSize []int) {
	r.ensureSize(width, height)
	r.Clear()

	ow, oh := width, height
	if len(sourceSize) == 2 && sourceSize[0] > 0 && sourceSize[1] > 0 {
		ow, oh = sourceSize[0], sourceSize[1]
	}
	// Independent per-axis factors: aspect ratios may differ.
	scaleX := float64(width) / float64(ow)
	scaleY := float64(height) / float64(oh)

	stroke := strokeWidth(width, height)

	for _, det := range detections {
		// Malformed bounding box: skip the whole entry, no partial draw.
		if len(det.BBox) != 4 {
			continue
		}

		x1 := mapCoord(det.BBox[0], scaleX)
		y1 := mapCoord(det.BBox[1], scaleY)
		x2 := mapCoord(det.BBox[2], scaleX)
		y2 := mapCoord(det.BBox[3], scaleY)
		w := clampNonNegative(x2 - x1)
		h := clampNonNegative(y2 - y1)

		col := unknownColor
		if det.Recognized {
			col = IdentityColor(det.IdentityKey())
		}

		r.strokeRect(x1, y1, w, h, stroke, col)
		r.drawLabel(det.Label(), x1, y1, h)
	}
}

// mapCoord maps a source-space coordinate to surface space: scaled, floored
// to integer pixels, clamped to non-negative.
func mapCoord(v int, scale float64) int {
	return clampNonNegative(int(math.Floor(float64(v) * scale)))
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// strokeWidth keeps boxes visible at any resolution: proportional to the
// smaller surface dimension, never below 2px.
func strokeWidth(width, height int) int {
	min := width
	if height < min {
		min = height
	}
	if w := min / 240; w > minStrokeWidth {
		return w
	}
	return minStrokeWidth
}

// strokeRect draws the four edges of a rectangle at the given stroke width.
func (r *Renderer) strokeRect(x, y, w, h, stroke int, col color.RGBA) {
	r.fillRect(image.Rect(x, y, x+w, y+stroke), col)          // top
	r.fillRect(image.Rect(x, y+h-stroke, x+w, y+h), col)      // bottom
	r.fillRect(image.Rect(x, y, x+stroke, y+h), col)          // left
	r.fillRect(image.Rect(x+w-stroke, y, x+w, y+h), col)      // right
}

// fillRect fills a rectangle on the surface, clipped to surface bounds.
func (r *Renderer) fillRect(rect image.Rectangle, col color.RGBA) {
	draw.Draw(r.surface, rect.Intersect(r.surface.Bounds()), &image.Uniform{C: col}, image.Point{}, draw.Over)
}

// Composite paints the overlay over a copy of the given video frame,
// producing the annotated frame served by the viewer.
func (r *Renderer) Composite(frame image.Image) *image.RGBA {
	bounds := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), frame, bounds.Min, draw.Src)
	if r.surface != nil {
		draw.Draw(out, out.Bounds(), r.surface, image.Point{}, draw.Over)
	}
	return out
}
