package api

import (
	"context"
	"fmt"
	"net/url"

	"planner-cli/internal/model"
)

// ListFolders fetches every folder under a team space. A 404 comes back as
// NotFoundError; callers treat it as "no folders yet", not a failure.
func (c *Client) ListFolders(ctx context.Context, workspaceID string) ([]model.Folder, error) {
	var out []model.Folder
	path := fmt.Sprintf("/folder/teamspace/%s/folders", url.PathEscape(workspaceID))
	if err := c.do(ctx, "GET", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type editFolderBody struct {
	FolderName string `json:"folder_name"`
}

// UpdateFolder renames a folder and returns the server's updated record.
func (c *Client) UpdateFolder(ctx context.Context, folderID, name string) (model.Folder, error) {
	var out model.Folder
	path := fmt.Sprintf("/folder/%s/edit-folder", url.PathEscape(folderID))
	if err := c.do(ctx, "PATCH", path, editFolderBody{FolderName: name}, &out); err != nil {
		return model.Folder{}, err
	}
	return out, nil
}

func (c *Client) DeleteFolder(ctx context.Context, folderID string) error {
	path := fmt.Sprintf("/folder/%s/delete-folder", url.PathEscape(folderID))
	return c.do(ctx, "DELETE", path, nil, nil)
}

type shareFolderBody struct {
	Email string `json:"email"`
}

// ShareFolder grants a user access by email. The share relationship is not
// part of the folder record, so success implies no cache change.
func (c *Client) ShareFolder(ctx context.Context, folderID, email string) error {
	path := fmt.Sprintf("/folder/%s/share", url.PathEscape(folderID))
	return c.do(ctx, "POST", path, shareFolderBody{Email: email}, nil)
}

type addUsersBody struct {
	UserIDs []string `json:"user_ids"`
}

func (c *Client) AddFolderUsers(ctx context.Context, folderID string, userIDs []string) error {
	path := fmt.Sprintf("/folder/%s/add-users", url.PathEscape(folderID))
	return c.do(ctx, "POST", path, addUsersBody{UserIDs: userIDs}, nil)
}

// ListWorkspaces fetches the team spaces visible to the signed-in user.
func (c *Client) ListWorkspaces(ctx context.Context) ([]model.Workspace, error) {
	var out []model.Workspace
	if err := c.do(ctx, "GET", "/teamspace/user-teamspaces", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
