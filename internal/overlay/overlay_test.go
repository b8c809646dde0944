package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/facewatch/facewatch/internal/faceapi"
)

func floatPtr(v float64) *float64 { return &v }

func TestIdentityHash_Deterministic(t *testing.T) {
	tests := []struct {
		key  string
		want uint32
	}{
		{"bob", 97717},
		{"alice", 92903040},
		{"", 0},
	}
	for _, tc := range tests {
		if got := IdentityHash(tc.key); got != tc.want {
			t.Errorf("IdentityHash(%q) = %d, want %d", tc.key, got, tc.want)
		}
		// Stable across repeated calls.
		if IdentityHash(tc.key) != IdentityHash(tc.key) {
			t.Errorf("IdentityHash(%q) not stable", tc.key)
		}
	}
}

func TestIdentityColor_StablePerKey(t *testing.T) {
	first := IdentityColor("alice|E-17")
	second := IdentityColor("alice|E-17")
	if first != second {
		t.Errorf("expected identical colors for same key, got %v and %v", first, second)
	}

	other := IdentityColor("bob")
	if other == first {
		t.Errorf("expected different colors for alice|E-17 and bob, both %v", first)
	}
}

func TestIdentityColor_Opaque(t *testing.T) {
	for _, key := range []string{"alice", "bob", "碑林", "x|y"} {
		c := IdentityColor(key)
		if c.A != 255 {
			t.Errorf("IdentityColor(%q) not opaque: %v", key, c)
		}
	}
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    color.RGBA
	}{
		{"black", 0, 0, 0, color.RGBA{0, 0, 0, 255}},
		{"white", 0, 0, 1, color.RGBA{255, 255, 255, 255}},
		{"red", 0, 1, 0.5, color.RGBA{255, 0, 0, 255}},
		{"green", 120, 1, 0.5, color.RGBA{0, 255, 0, 255}},
		{"blue", 240, 1, 0.5, color.RGBA{0, 0, 255, 255}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := hslToRGB(tc.h, tc.s, tc.l); got != tc.want {
				t.Errorf("hslToRGB(%v, %v, %v) = %v, want %v", tc.h, tc.s, tc.l, got, tc.want)
			}
		})
	}
}

func TestMapCoord(t *testing.T) {
	tests := []struct {
		v     int
		scale float64
		want  int
	}{
		{100, 2, 200},
		{50, 2, 100},
		{300, 2, 600},
		{250, 2, 500},
		{10, 1.5, 15},
		{11, 1.5, 16},  // floor(16.5)
		{-20, 2, 0},    // clamped to non-negative
		{7, 0.333, 2},  // floor(2.331)
	}
	for _, tc := range tests {
		if got := mapCoord(tc.v, tc.scale); got != tc.want {
			t.Errorf("mapCoord(%d, %v) = %d, want %d", tc.v, tc.scale, got, tc.want)
		}
	}
}

func TestStrokeWidth(t *testing.T) {
	if got := strokeWidth(640, 480); got != 2 {
		t.Errorf("expected minimum stroke 2 at 640x480, got %d", got)
	}
	if got := strokeWidth(1920, 1080); got != 4 {
		t.Errorf("expected stroke 4 at 1920x1080, got %d", got)
	}
	if got := strokeWidth(10, 10); got != 2 {
		t.Errorf("expected stroke floor of 2 at tiny sizes, got %d", got)
	}
}

// bbox [100,50,300,250] in a 640x480 source painted on a 1280x960
// surface scales by (2,2) into the rect (200,100)-(600,500).
func TestRender_ScalesBoundingBox(t *testing.T) {
	r := NewRenderer()
	det := faceapi.Detection{
		Name:       "alice",
		Recognized: false,
		BBox:       []int{100, 50, 300, 250},
	}

	r.Render(1280, 960, []faceapi.Detection{det}, []int{640, 480})

	surface := r.Surface()
	if surface.Bounds().Dx() != 1280 || surface.Bounds().Dy() != 960 {
		t.Fatalf("unexpected surface size: %v", surface.Bounds())
	}

	// Top-left stroke pixel of the mapped rect.
	if got := surface.RGBAAt(200, 100); got != unknownColor {
		t.Errorf("expected stroke at (200,100), got %v", got)
	}
	// Bottom-right stroke pixel (inside the stroke band).
	if got := surface.RGBAAt(599, 499); got != unknownColor {
		t.Errorf("expected stroke at (599,499), got %v", got)
	}
	// Box interior stays transparent.
	if got := surface.RGBAAt(400, 300); got.A != 0 {
		t.Errorf("expected transparent interior, got %v", got)
	}
	// Just outside the rect stays transparent.
	if got := surface.RGBAAt(700, 300); got.A != 0 {
		t.Errorf("expected transparent outside box, got %v", got)
	}
}

func TestRender_RecognizedUsesIdentityColor(t *testing.T) {
	r := NewRenderer()
	det := faceapi.Detection{
		Name:       "alice",
		Recognized: true,
		Score:      floatPtr(0.9),
		BBox:       []int{100, 100, 200, 200},
	}

	r.Render(640, 480, []faceapi.Detection{det}, []int{640, 480})

	want := IdentityColor("alice")
	if got := r.Surface().RGBAAt(100, 150); got != want {
		t.Errorf("expected identity color %v on stroke, got %v", want, got)
	}
}

func TestRender_SkipsMalformedBBox(t *testing.T) {
	r := NewRenderer()
	dets := []faceapi.Detection{
		{Name: "threecorners", Recognized: true, BBox: []int{10, 10, 50}},
		{Name: "nobbox", Recognized: true},
	}

	r.Render(320, 240, dets, nil)

	surface := r.Surface()
	for i := range surface.Pix {
		if surface.Pix[i] != 0 {
			t.Fatal("expected fully transparent surface for malformed bboxes")
		}
	}
}

func TestRender_InvertedCornersNeverNegative(t *testing.T) {
	r := NewRenderer()
	// Corners inverted: x2 < x1 and y2 < y1.
	det := faceapi.Detection{Name: "inv", BBox: []int{300, 250, 100, 50}}

	// Must not panic; width/height clamp to zero.
	r.Render(640, 480, []faceapi.Detection{det}, []int{640, 480})
}

func TestRender_ResizesSurfaceOnDimensionChange(t *testing.T) {
	r := NewRenderer()
	r.Render(640, 480, nil, nil)
	if r.Surface().Bounds().Dx() != 640 {
		t.Fatalf("unexpected initial surface: %v", r.Surface().Bounds())
	}

	// Camera switched resolution mid-session.
	r.Render(1280, 720, nil, nil)
	bounds := r.Surface().Bounds()
	if bounds.Dx() != 1280 || bounds.Dy() != 720 {
		t.Errorf("expected surface resized to 1280x720, got %v", bounds)
	}
}

func TestRender_FullRepaintClearsPreviousFrame(t *testing.T) {
	r := NewRenderer()
	det := faceapi.Detection{Name: "alice", BBox: []int{10, 10, 60, 60}}
	r.Render(320, 240, []faceapi.Detection{det}, nil)

	if got := r.Surface().RGBAAt(10, 30); got.A == 0 {
		t.Fatal("expected stroke from first render")
	}

	// Empty result list fully clears the previous drawing.
	r.Render(320, 240, nil, nil)
	surface := r.Surface()
	for i := range surface.Pix {
		if surface.Pix[i] != 0 {
			t.Fatal("expected surface cleared by empty render")
		}
	}
}

func TestRender_FallsBackToFrameDimensions(t *testing.T) {
	r := NewRenderer()
	det := faceapi.Detection{Name: "x", BBox: []int{0, 0, 100, 100}}

	// No image_size from the API: source dims are the frame dims, scale 1:1.
	r.Render(640, 480, []faceapi.Detection{det}, nil)

	if got := r.Surface().RGBAAt(99, 50); got.A == 0 {
		t.Error("expected stroke at unscaled coordinates")
	}
}

func TestLabelScale(t *testing.T) {
	if got := labelScale(40); got != 1 {
		t.Errorf("expected minimum scale 1 for small boxes, got %d", got)
	}
	if got := labelScale(250); got != 2 {
		t.Errorf("expected scale 2 for 250px box, got %d", got)
	}
	if got := labelScale(5000); got != maxLabelScale {
		t.Errorf("expected scale capped at %d, got %d", maxLabelScale, got)
	}
}

func TestDrawLabel_FlipsInsideWhenOffTop(t *testing.T) {
	r := NewRenderer()
	// Box at the very top: the label cannot fit above it.
	det := faceapi.Detection{Name: "topface", Recognized: true, BBox: []int{50, 0, 150, 80}}

	r.Render(320, 240, []faceapi.Detection{det}, nil)

	// Label background must appear inside the box below the top edge.
	found := false
	for y := 1; y < 30 && !found; y++ {
		if got := r.Surface().RGBAAt(60, y); got == labelBackground {
			found = true
		}
	}
	if !found {
		t.Error("expected label background inside box when flipped down")
	}
}

func TestDrawLabel_ClampsToRightEdge(t *testing.T) {
	r := NewRenderer()
	// Box near the right edge with a long label.
	det := faceapi.Detection{
		Name:        "a-very-long-identity-label",
		PersonnelID: "EMP-0042",
		Recognized:  true,
		BBox:        []int{300, 100, 319, 160},
	}

	r.Render(320, 240, []faceapi.Detection{det}, nil)

	// The label background must not be cut off at the right edge: some
	// background pixel exists left of the box, and the rightmost column
	// belongs to the label (clamped flush to the edge).
	surface := r.Surface()
	if got := surface.RGBAAt(319, 95); got != labelBackground {
		t.Errorf("expected label flush to right edge, got %v", got)
	}
}

func TestComposite_PaintsOverlayOverFrame(t *testing.T) {
	r := NewRenderer()
	det := faceapi.Detection{Name: "alice", Recognized: true, BBox: []int{10, 10, 60, 60}}
	r.Render(100, 100, []faceapi.Detection{det}, nil)

	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := range frame.Pix {
		frame.Pix[i] = 255 // white, fully opaque
	}

	out := r.Composite(frame)

	// Stroke pixels come from the overlay (bottom edge, clear of the label).
	if got := out.RGBAAt(30, 59); got != IdentityColor("alice") {
		t.Errorf("expected overlay stroke in composite, got %v", got)
	}
	// Untouched pixels come from the frame.
	if got := out.RGBAAt(90, 90); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("expected frame pixel in composite, got %v", got)
	}
}
