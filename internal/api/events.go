package api

import (
	"context"
	"fmt"
	"net/url"

	"planner-cli/internal/model"
)

// CreateEventReminder sends the accumulated reminder list in one request.
// Nothing is sent while the user is still adding times; the list goes up
// atomically on submit.
func (c *Client) CreateEventReminder(ctx context.Context, eventID string, reminder model.EventReminder) error {
	path := fmt.Sprintf("/event/%s/create-event-reminder", url.PathEscape(eventID))
	return c.do(ctx, "POST", path, reminder, nil)
}
