package faceapi

import (
	"context"
	"strconv"
)

// Recognize submits an encoded frame for recognition. The threshold is the
// minimum similarity score the service requires for a match.
func (c *Client) Recognize(ctx context.Context, image []byte, threshold float64) (*RecognizeResult, error) {
	fields := map[string]string{
		"threshold": strconv.FormatFloat(threshold, 'f', -1, 64),
	}
	resp, err := doPostMultipart[recognizeResponse](ctx, c, "api/recognize", image, fields)
	if err != nil {
		return nil, err
	}
	return resp.normalize(), nil
}
