package gateway

import (
	"context"
	"strconv"
)

// LoginRequest is the credential-exchange payload for Login.
type LoginRequest struct {
	Email    string
	Password string
	// RegID is the push-notification registration id for this installation.
	RegID string
}

// DashboardRequest selects the dashboard slice to fetch.
type DashboardRequest struct {
	Category string
	Month    string
	Year     string
	DealerID string
}

// TokenPayload is the data payload of OAuthToken and RenewToken.
type TokenPayload struct {
	Token string `json:"token"`
}

// LoginPayload is the data payload of Login.
type LoginPayload struct {
	SessionID string `json:"session_id"`
	IDRole    string `json:"id_role"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// CheckinStatusPayload is the data payload of CheckinStatus.
type CheckinStatusPayload struct {
	IsCheckedIn bool   `json:"is_checked_in"`
	DealerName  string `json:"dealer_name,omitempty"`
	CheckinTime string `json:"checkin_time,omitempty"`
	CodeVisit   string `json:"code_visit,omitempty"`
}

// ProfilePayload is the data payload of Profile.
type ProfilePayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// OAuthToken exchanges the fixed basic-auth pair for a bearer token. This
// is the only call that does not carry the bearer token.
func (c *Client) OAuthToken(ctx context.Context) (*Response, error) {
	return c.postForm(ctx, "oauth/token", nil, authBasic)
}

// Login submits the user credentials and push-registration id.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Response, error) {
	return c.postForm(ctx, "auth/login", map[string]string{
		"email":    req.Email,
		"password": req.Password,
		"regid":    req.RegID,
	}, authBearer)
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) (*Response, error) {
	return c.postForm(ctx, "auth/logout", nil, authBearer)
}

// ForgotPassword starts the password-recovery flow for email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*Response, error) {
	return c.postForm(ctx, "auth/forgot-password", map[string]string{
		"email": email,
	}, authBearer)
}

// RenewToken exchanges the account password for a fresh bearer token.
func (c *Client) RenewToken(ctx context.Context, password string) (*Response, error) {
	return c.postForm(ctx, "oauth/renew", map[string]string{
		"password": password,
	}, authBearer)
}

// Home fetches the landing-screen data.
func (c *Client) Home(ctx context.Context) (*Response, error) {
	return c.get(ctx, "home", nil)
}

// Dashboard fetches one dashboard slice.
func (c *Client) Dashboard(ctx context.Context, req DashboardRequest) (*Response, error) {
	return c.postForm(ctx, "dashboard/index", map[string]string{
		"category":     req.Category,
		"month":        req.Month,
		"year":         req.Year,
		"ms_dealer_id": req.DealerID,
	}, authBearer)
}

// CheckinStatus reports whether the salesman is currently checked in at a
// dealer.
func (c *Client) CheckinStatus(ctx context.Context) (*Response, error) {
	return c.postForm(ctx, "sales/check-checkin", nil, authBearer)
}

// Checkout closes the dealer visit identified by codeVisit.
func (c *Client) Checkout(ctx context.Context, codeVisit string) (*Response, error) {
	return c.postForm(ctx, "sales/checkin-checkout", map[string]string{
		"code_visit": codeVisit,
	}, authBearer)
}

// Leaderboard fetches the sales leaderboard.
func (c *Client) Leaderboard(ctx context.Context) (*Response, error) {
	return c.get(ctx, "leaderboard", nil)
}

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (*Response, error) {
	return c.postForm(ctx, "profile/profile", nil, authBearer)
}

// ChangePassword sets a new account password.
func (c *Client) ChangePassword(ctx context.Context, password string) (*Response, error) {
	return c.postForm(ctx, "profile/change-password", map[string]string{
		"password": password,
	}, authBearer)
}

// Notifications fetches one page of notices. Pages start at 1.
func (c *Client) Notifications(ctx context.Context, page int) (*Response, error) {
	if page < 1 {
		page = 1
	}
	return c.postForm(ctx, "dashboard/notice", map[string]string{
		"page": strconv.Itoa(page),
	}, authBearer)
}

// Catalogue fetches the part catalogue list.
func (c *Client) Catalogue(ctx context.Context) (*Response, error) {
	return c.get(ctx, "catalog/catalog", nil)
}

// BrosurPromo fetches one page of brochure promos. Pages start at 1.
func (c *Client) BrosurPromo(ctx context.Context, page int) (*Response, error) {
	if page < 1 {
		page = 1
	}
	return c.get(ctx, "promo/brosure-promo", map[string]string{
		"page": strconv.Itoa(page),
	})
}

// PartPromo fetches one page of part promos. Pages start at 1.
func (c *Client) PartPromo(ctx context.Context, page int) (*Response, error) {
	if page < 1 {
		page = 1
	}
	return c.get(ctx, "promo/part-promo", map[string]string{
		"page": strconv.Itoa(page),
	})
}
