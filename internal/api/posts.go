package api

import (
	"context"
	"fmt"
	"net/http"

	"classroomclient/internal/domain"
)

func (c *Client) ListClassPosts(ctx context.Context, classID int) ([]domain.Post, error) {
	var raw jsonRaw
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/class/%d", classID), nil, nil, &raw); err != nil {
		return nil, err
	}
	return sniffList[domain.Post](raw, "posts")
}

func (c *Client) CreatePost(ctx context.Context, classID, authorID int, content, filePath string) (*domain.Post, error) {
	body := map[string]any{
		"classId":  classID,
		"authorId": authorID,
		"content":  content,
	}
	if filePath != "" {
		body["filePath"] = filePath
	}
	var post domain.Post
	if err := c.do(ctx, http.MethodPost, "/posts", nil, body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, postID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", postID), nil, nil, nil)
}
