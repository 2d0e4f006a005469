package client

import (
	"context"
	"net/http"

	"github.com/aidar/circles/internal/domain"
)

type circleRequest struct {
	CircleID string `json:"circle_id"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetCircle calls POST /circles/get
func (c *Client) GetCircle(ctx context.Context, circleID string) (*domain.Circle, error) {
	res, err := c.call(ctx, http.MethodPost, "/circles/get", circleRequest{CircleID: circleID})
	if err != nil {
		return nil, err
	}
	return decodeInto[*domain.Circle](res)
}

// GetTags calls POST /circles/tags
func (c *Client) GetTags(ctx context.Context, circleID string) ([]domain.Tag, error) {
	res, err := c.call(ctx, http.MethodPost, "/circles/tags", circleRequest{CircleID: circleID})
	if err != nil {
		return nil, err
	}
	return decodeInto[[]domain.Tag](res)
}

// GetRegistrations calls POST /circles/registrations
func (c *Client) GetRegistrations(ctx context.Context, circleID string) ([]domain.RegisteredUser, error) {
	res, err := c.call(ctx, http.MethodPost, "/circles/registrations", circleRequest{CircleID: circleID})
	if err != nil {
		return nil, err
	}
	return decodeInto[[]domain.RegisteredUser](res)
}

// Register calls PUT /circles/register and returns the confirmation message
func (c *Client) Register(ctx context.Context, circleID string) (string, error) {
	res, err := c.call(ctx, http.MethodPut, "/circles/register", circleRequest{CircleID: circleID})
	if err != nil {
		return "", err
	}
	return res.Message(), nil
}

// Unregister calls DELETE /circles/register and returns the confirmation message
func (c *Client) Unregister(ctx context.Context, circleID string) (string, error) {
	res, err := c.call(ctx, http.MethodDelete, "/circles/register", circleRequest{CircleID: circleID})
	if err != nil {
		return "", err
	}
	return res.Message(), nil
}

// ListCircles calls GET /circles/all
func (c *Client) ListCircles(ctx context.Context) ([]*domain.Circle, error) {
	res, err := c.call(ctx, http.MethodGet, "/circles/all", nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]*domain.Circle](res)
}

// Login calls POST /auth/login and returns the access token
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	res, err := c.call(ctx, http.MethodPost, "/auth/login", credentials{Username: username, Password: password})
	if err != nil {
		return "", err
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := res.Decode(&out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}
