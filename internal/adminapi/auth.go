package adminapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

var ErrNoToken = errors.New("login response carried no token")

// Admin is the signed-in administrator as reported by the remote API.
type Admin struct {
	ID    int64
	Name  string
	Email string
}

// LoginResult is a successful remote login.
type LoginResult struct {
	Token string
	Admin Admin
}

// Login exchanges credentials for a remote bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	cl, err := jsonCall(http.MethodPost, "/admin/login", map[string]string{
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		return nil, err
	}
	var resp loginResponse
	if err := c.do(ctx, cl, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrNoToken
	}
	return &LoginResult{Token: resp.Token, Admin: decodeAdmin(resp.AdminDetails, email)}, nil
}

// ResendOTP asks the remote API to mail a password reset code.
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/admin/resend-otp", map[string]string{"email": email})
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	return c.postJSON(ctx, "/admin/verify-otp", map[string]string{"email": email, "otp": otp})
}

func (c *Client) ResetPassword(ctx context.Context, email, password, confirmation string) error {
	return c.postJSON(ctx, "/admin/reset-password", map[string]string{
		"email":                 email,
		"password":              password,
		"password_confirmation": confirmation,
	})
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) error {
	cl, err := jsonCall(http.MethodPost, path, payload, false)
	if err != nil {
		return err
	}
	return c.do(ctx, cl, nil)
}

// decodeAdmin accepts admin_details as an object or as a bare name.
func decodeAdmin(raw json.RawMessage, email string) Admin {
	var w wireAdmin
	if err := json.Unmarshal(raw, &w); err == nil {
		if w.Email == "" {
			w.Email = email
		}
		return Admin{ID: w.ID, Name: w.Name, Email: w.Email}
	}
	var name string
	_ = json.Unmarshal(raw, &name)
	return Admin{Name: name, Email: email}
}
