package api

import (
	"context"

	"github.com/avanderveen/curio/pkg/model"
)

// Tags lists all tags.
func (c *Client) Tags(ctx context.Context) ([]model.Tag, error) {
	var out []model.Tag
	if err := c.get(ctx, "/tags", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTag creates a tag and returns the stored record.
func (c *Client) CreateTag(ctx context.Context, in model.Tag) (model.Tag, error) {
	var out model.Tag
	err := c.post(ctx, "/tags", in, &out)
	return out, err
}

// DeleteTag removes a tag.
func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.delete(ctx, "/tags/"+id)
}

// Activities lists activities, newest first. An empty kind returns all.
func (c *Client) Activities(ctx context.Context, kind model.ActivityKind) ([]model.Activity, error) {
	path := "/activities"
	if kind != "" {
		path += "?kind=" + queryEscape(string(kind))
	}
	var out []model.Activity
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LogActivity records a new activity.
func (c *Client) LogActivity(ctx context.Context, in model.Activity) (model.Activity, error) {
	var out model.Activity
	err := c.post(ctx, "/activities", in, &out)
	return out, err
}

// Notifications lists the user's notifications.
func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var out []model.Notification
	if err := c.get(ctx, "/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead flags one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.patch(ctx, "/notifications/"+id, map[string]bool{"read": true}, nil)
}

// ChatMessages lists recent team chat messages.
func (c *Client) ChatMessages(ctx context.Context) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	if err := c.get(ctx, "/chat/messages", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendChatMessage posts a message to the team chat.
func (c *Client) SendChatMessage(ctx context.Context, text string) (model.ChatMessage, error) {
	var out model.ChatMessage
	err := c.post(ctx, "/chat/messages", map[string]string{"text": text}, &out)
	return out, err
}

// Me fetches the signed-in user, including walkthrough completion
// flags.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.get(ctx, "/users/me", &out)
	return out, err
}

// SetWalkthroughFlag patches a single per-page walkthrough completion
// flag on the user's profile. The backend treats re-marking a completed
// page as a no-op, so retries are harmless.
func (c *Client) SetWalkthroughFlag(ctx context.Context, page string, completed bool) error {
	body := map[string]any{"page": page, "completed": completed}
	return c.patch(ctx, "/users/me/walkthroughs", body, nil)
}
