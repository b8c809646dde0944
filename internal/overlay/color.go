package overlay

import "image/color"

// unknownColor is the stroke color for detected but unrecognized faces.
var unknownColor = color.RGBA{R: 156, G: 163, B: 175, A: 255}

// labelTextColor is the light text color drawn over label backgrounds.
var labelTextColor = color.RGBA{R: 226, G: 232, B: 240, A: 255}

// labelBackground is the fill behind label text.
var labelBackground = color.RGBA{R: 15, G: 23, B: 42, A: 210}

// IdentityHash is a polynomial rolling hash over the identity key with
// unsigned 32-bit wraparound. It is a pure function of the key, so the same
// identity hashes identically across frames and restarts.
func IdentityHash(key string) uint32 {
	var h uint32
	for _, r := range key {
		h = h*31 + uint32(r)
	}
	return h
}

// IdentityColor derives a stable display color for an identity key by
// mapping its hash onto a hue at fixed saturation and lightness. Distinct
// identities may collide (360 hue buckets) but the same identity always gets
// the same color.
func IdentityColor(key string) color.RGBA {
	hue := float64(IdentityHash(key) % 360)
	return hslToRGB(hue, 0.70, 0.45)
}

// hslToRGB converts HSL (hue in degrees, saturation and lightness in [0,1])
// to an opaque RGBA color.
func hslToRGB(h, s, l float64) color.RGBA {
	c := (1 - abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - abs(mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	m := l - c/2
	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func mod(v, m float64) float64 {
	for v >= m {
		v -= m
	}
	return v
}
