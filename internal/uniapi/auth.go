package uniapi

import (
	"context"
	"net/url"
)

// Login exchanges credentials for a token pair. It uses the plain client
// since there is no token to attach yet.
func (c *Client) Login(ctx context.Context, in LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	req, err := c.newRequest(ctx, "POST", pathLogin, in)
	if err != nil {
		return out, err
	}
	if err := c.do(c.plain, req, &out); err != nil {
		return out, err
	}
	return out, nil
}

// SendResetEmail asks the server to mail a reset token to the given address.
func (c *Client) SendResetEmail(ctx context.Context, email string) error {
	req, err := c.newRequest(ctx, "POST", pathSendResetEmail+url.PathEscape(email), nil)
	if err != nil {
		return err
	}
	return c.do(c.plain, req, nil)
}

// ResetPassword completes a password reset with an emailed token.
func (c *Client) ResetPassword(ctx context.Context, in ResetPasswordRequest) error {
	req, err := c.newRequest(ctx, "POST", pathResetPassword, in)
	if err != nil {
		return err
	}
	return c.do(c.plain, req, nil)
}
