package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// GoogleUserInfo is the profile the identity provider returns for a token.
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}

// GoogleVerifier resolves a client-supplied access token to a Google profile.
type GoogleVerifier interface {
	Fetch(ctx context.Context, accessToken string) (*GoogleUserInfo, error)
}

type googleVerifier struct {
	userinfoURL string
}

// NewGoogleVerifier creates a verifier against the given userinfo endpoint.
func NewGoogleVerifier(userinfoURL string) GoogleVerifier {
	return &googleVerifier{userinfoURL: userinfoURL}
}

// Fetch calls the userinfo endpoint with the token the client obtained from
// Google. The endpoint rejecting the token is how tampered or expired
// credentials are detected.
func (g *googleVerifier) Fetch(ctx context.Context, accessToken string) (*GoogleUserInfo, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	client := oauth2.NewClient(ctx, source)

	resp, err := client.Get(g.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read userinfo response: %w", err)
	}

	var info GoogleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("parse userinfo response: %w", err)
	}
	return &info, nil
}
