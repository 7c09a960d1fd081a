// ABOUTME: Login and vendor registration endpoints
// ABOUTME: These calls never carry a session token

package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/seefirst/seefirst-cli/internal/session"
)

// Login exchanges credentials for a token at the realm's login endpoint
func (c *Client) Login(ctx context.Context, realm session.Realm, creds Credentials) (*LoginResult, error) {
	var res LoginResult
	req := &Request{
		Method:   http.MethodPost,
		Path:     realm.LoginPath(),
		Body:     creds,
		SkipAuth: true,
	}
	if err := c.Call(ctx, req, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: login response has no token", ErrInvalidResponse)
	}
	return &res, nil
}

// RegisterVendor submits a seller sign-up for admin approval
func (c *Client) RegisterVendor(ctx context.Context, reg VendorRegistration) error {
	req := &Request{
		Method:   http.MethodPost,
		Path:     "/api/vendor/register",
		Body:     reg,
		SkipAuth: true,
	}
	return c.Call(ctx, req, nil)
}

// Profile is the signed-in user's profile. Admin logins return no user, so
// one is derived from the email that signed in.
func (r *LoginResult) Profile(email string) session.Profile {
	if r.User != nil && (r.User.ID != 0 || r.User.Name != "") {
		return *r.User
	}
	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}
	return session.Profile{Name: name, Email: email}
}
