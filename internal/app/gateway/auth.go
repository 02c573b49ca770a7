package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mkim/storefront-client/internal/app/model"
	apperrors "github.com/mkim/storefront-client/internal/errors"
)

type credentialsRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// Login exchanges credentials for an identity record.
func (c *Client) Login(ctx context.Context, username, password string) (*model.User, error) {
	body, status, err := c.do(ctx, http.MethodPost, "/auth/login", nil, credentialsRequest{
		UserName: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	if status >= 400 && status < 500 {
		return nil, apperrors.Auth(apperrors.AuthInvalidCredentials, serverMessage(body, status))
	}
	if status < 200 || status >= 300 {
		return nil, apperrors.Network(apperrors.NetworkBadStatus, serverMessage(body, status), nil)
	}

	var user model.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, apperrors.Network(apperrors.NetworkBadPayload, "decode login response", err)
	}
	return &user, nil
}

// Register creates a new identity. A name conflict surfaces as an auth error
// with the AUTH_USER_EXISTS code.
func (c *Client) Register(ctx context.Context, username, password string) (*model.User, error) {
	body, status, err := c.do(ctx, http.MethodPost, "/auth/register", nil, credentialsRequest{
		UserName: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	if status == http.StatusConflict {
		return nil, apperrors.Auth(apperrors.AuthUserExists, serverMessage(body, status))
	}
	if status >= 400 && status < 500 {
		return nil, apperrors.Auth(apperrors.AuthInvalidCredentials, serverMessage(body, status))
	}
	if status < 200 || status >= 300 {
		return nil, apperrors.Network(apperrors.NetworkBadStatus, serverMessage(body, status), nil)
	}

	var user model.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, apperrors.Network(apperrors.NetworkBadPayload, "decode signup response", err)
	}
	return &user, nil
}
