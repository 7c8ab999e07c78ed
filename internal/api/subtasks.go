package api

import (
	"context"
	"net/url"

	"planner-cli/internal/model"
)

type updateStatusBody struct {
	Status model.SubtaskStatus `json:"status"`
}

// UpdateSubtaskStatus patches a single subtask's status. The endpoint keys
// off a query parameter rather than a path segment; the response body carries
// nothing useful, so callers refresh the surrounding screen on success.
func (c *Client) UpdateSubtaskStatus(ctx context.Context, subtaskID string, status model.SubtaskStatus) error {
	path := "/subtask/update-subtask-status?sub_task_id=" + url.QueryEscape(subtaskID)
	return c.do(ctx, "PATCH", path, updateStatusBody{Status: status}, nil)
}
