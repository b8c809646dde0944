package faceapi

import "context"

// RegisterResponse is the success payload of POST /api/register.
type RegisterResponse struct {
	OK                 bool   `json:"ok"`
	Name               string `json:"name"`
	BBox               []int  `json:"bbox,omitempty"`
	RegisteredImageURL string `json:"registered_image_url,omitempty"`
}

// Register enrolls a face sample under the given identity. A failure returns
// an *APIError carrying the server's detail message (e.g. "No face detected").
func (c *Client) Register(ctx context.Context, image []byte, name, personnelID string) (*RegisterResponse, error) {
	fields := map[string]string{"name": name}
	if personnelID != "" {
		fields["personnel_id"] = personnelID
	}
	return doPostMultipart[RegisterResponse](ctx, c, "api/register", image, fields)
}
