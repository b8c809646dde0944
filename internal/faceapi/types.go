package faceapi

// Detection is a single detected face in a submitted frame. Bounding box
// coordinates are in the source image's pixel space as [x1, y1, x2, y2].
// BBox may be absent or malformed; consumers skip such entries.
type Detection struct {
	Name         string
	PersonnelID  string
	Recognized   bool
	Score        *float64
	BBox         []int
	FaceImageURL string
	RecognizedAt string
}

// IdentityKey returns the stable key used to derive the display color for
// this detection: the name, joined with the personnel ID by "|" when one is
// present.
func (d Detection) IdentityKey() string {
	if d.PersonnelID != "" {
		return d.Name + "|" + d.PersonnelID
	}
	return d.Name
}

// Label returns the human-readable label for this detection.
func (d Detection) Label() string {
	if d.PersonnelID != "" {
		return d.Name + " (" + d.PersonnelID + ")"
	}
	if d.Name != "" {
		return d.Name
	}
	return "unknown"
}

// RecognizeResult is the normalized outcome of one recognition call. The
// service answers either with a single best match or with a multi-face
// result list; both shapes normalize to a flat detection list here.
type RecognizeResult struct {
	Detections []Detection
	// ImageSize is the [width, height] of the image the service analyzed,
	// in which BBox coordinates are expressed. May be empty on older
	// servers; callers fall back to the submitted frame's dimensions.
	ImageSize []int
}

// FaceSummary is one registered identity as reported by GET /api/faces.
type FaceSummary struct {
	Name        string `json:"name"`
	PersonnelID string `json:"personnel_id,omitempty"`
	Samples     int    `json:"samples"`
}

// recognizeResponse covers both wire shapes of POST /api/recognize.
type recognizeResponse struct {
	OK           bool                  `json:"ok"`
	Recognized   *bool                 `json:"recognized,omitempty"`
	Name         string                `json:"name,omitempty"`
	Score        *float64              `json:"score,omitempty"`
	BBox         []int                 `json:"bbox,omitempty"`
	ImageSize    []int                 `json:"image_size,omitempty"`
	FaceImageURL string                `json:"face_image_url,omitempty"`
	RecognizedAt string                `json:"recognized_at,omitempty"`
	Results      []recognizeResultItem `json:"results,omitempty"`
}

type recognizeResultItem struct {
	Name        string   `json:"name"`
	PersonnelID string   `json:"personnel_id,omitempty"`
	Recognized  bool     `json:"recognized"`
	Score       *float64 `json:"score,omitempty"`
	BBox        []int    `json:"bbox,omitempty"`
}

// normalize converts either wire shape into the flat result list. A single
// best-match response becomes a one-element list; a no-face response becomes
// an empty list.
func (r *recognizeResponse) normalize() *RecognizeResult {
	result := &RecognizeResult{ImageSize: r.ImageSize}

	if r.Results != nil {
		result.Detections = make([]Detection, 0, len(r.Results))
		for _, item := range r.Results {
			result.Detections = append(result.Detections, Detection{
				Name:        item.Name,
				PersonnelID: item.PersonnelID,
				Recognized:  item.Recognized,
				Score:       item.Score,
				BBox:        item.BBox,
			})
		}
		return result
	}

	// Single-match variant. A response without a bounding box and without a
	// positive match means no face was usable; that is an empty list.
	recognized := r.Recognized != nil && *r.Recognized
	if !recognized && len(r.BBox) == 0 {
		return result
	}

	result.Detections = []Detection{{
		Name:         r.Name,
		Recognized:   recognized,
		Score:        r.Score,
		BBox:         r.BBox,
		FaceImageURL: r.FaceImageURL,
		RecognizedAt: r.RecognizedAt,
	}}
	return result
}

// BestMatch returns the highest-scoring recognized detection, or nil when
// nothing in the frame was recognized.
func (r *RecognizeResult) BestMatch() *Detection {
	var best *Detection
	for i := range r.Detections {
		d := &r.Detections[i]
		if !d.Recognized {
			continue
		}
		if best == nil || score(d) > score(best) {
			best = d
		}
	}
	return best
}

func score(d *Detection) float64 {
	if d.Score == nil {
		return 0
	}
	return *d.Score
}
