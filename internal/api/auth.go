package api

import (
	"context"
	"errors"
	"net/url"
)

// Auth endpoints. The client only transports credentials; it never issues,
// refreshes, or validates tokens.

type RegisterRequest struct {
	Fullname     string `json:"fullname"`
	Role         string `json:"role"`
	ReasonForUse string `json:"reason_for_use"`
	Email        string `json:"email"`
	PhoneNo      string `json:"phone_no"`
	IsActive     bool   `json:"is_active"`
	Provider     string `json:"provider"`
	ProviderID   string `json:"provider_id"`
	AvatarURL    string `json:"avatar_url"`
	Password     string `json:"password"`
}

type userRecord struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Register creates an account. The server rejects duplicate emails with a
// non-2xx status; callers should call LookupUserByEmail first for a nicer
// message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if req.Role == "" {
		req.Role = "user"
	}
	return c.do(ctx, "POST", "/user/register", req, nil)
}

// LookupUserByEmail resolves an email to a user id. A NotFoundError means the
// email is unregistered.
func (c *Client) LookupUserByEmail(ctx context.Context, email string) (string, error) {
	var out userRecord
	path := "/user/email?email=" + url.QueryEscape(email)
	if err := c.do(ctx, "GET", path, nil, &out); err != nil {
		return "", err
	}
	if out.UserID == "" {
		return "", ServerError{Message: "user id missing from response"}
	}
	return out.UserID, nil
}

// SendOTP asks the server to deliver a one-time code for the given user.
// Used both post-registration and for returning-user login.
func (c *Client) SendOTP(ctx context.Context, userID, email string) error {
	path := "/user/resend-otp?user_id=" + url.QueryEscape(userID) + "&email=" + url.QueryEscape(email)
	return c.do(ctx, "POST", path, nil, nil)
}

type verifyOTPBody struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	OTP    string `json:"otp"`
}

type verifyOTPResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

// VerifyOTP exchanges a one-time code for a bearer token.
func (c *Client) VerifyOTP(ctx context.Context, userID, email, otp string) (accessToken string, err error) {
	var out verifyOTPResponse
	body := verifyOTPBody{UserID: userID, Email: email, OTP: otp}
	if err := c.do(ctx, "POST", "/user/verify-otp", body, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("no access token in response")
	}
	return out.AccessToken, nil
}
