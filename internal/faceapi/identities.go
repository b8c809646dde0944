package faceapi

import (
	"context"
	"net/url"
)

type facesResponse struct {
	OK    bool          `json:"ok"`
	Faces []FaceSummary `json:"faces"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// ListFaces returns all registered identities with their sample counts.
func (c *Client) ListFaces(ctx context.Context) ([]FaceSummary, error) {
	resp, err := doGetJSON[facesResponse](ctx, c, "api/faces")
	if err != nil {
		return nil, err
	}
	return resp.Faces, nil
}

// ClearFaces removes every registered identity from the service.
func (c *Client) ClearFaces(ctx context.Context) error {
	_, err := doPostForm[okResponse](ctx, c, "api/clear", url.Values{})
	return err
}

// RenameIdentity changes the name and personnel ID of a registered identity.
// Empty personnel IDs are omitted so the service treats them as absent.
func (c *Client) RenameIdentity(ctx context.Context, oldName, oldPersonnelID, newName, newPersonnelID string) error {
	form := url.Values{}
	form.Set("old_name", oldName)
	if oldPersonnelID != "" {
		form.Set("old_personnel_id", oldPersonnelID)
	}
	form.Set("new_name", newName)
	if newPersonnelID != "" {
		form.Set("new_personnel_id", newPersonnelID)
	}
	_, err := doPostForm[okResponse](ctx, c, "api/identity/rename", form)
	return err
}

// DeleteIdentity removes all samples registered under the given identity.
func (c *Client) DeleteIdentity(ctx context.Context, name, personnelID string) error {
	form := url.Values{}
	form.Set("name", name)
	if personnelID != "" {
		form.Set("personnel_id", personnelID)
	}
	_, err := doPostForm[okResponse](ctx, c, "api/identity/delete", form)
	return err
}
