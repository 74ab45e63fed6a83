package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"dingdong-api/core/config"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProfile is the subset of the userinfo response the login flow needs.
type GoogleProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleProfileFetcher exchanges an authorization code for the user's profile.
type GoogleProfileFetcher interface {
	Fetch(ctx context.Context, code string) (*GoogleProfile, error)
}

type googleFetcher struct{}

func NewGoogleProfileFetcher() GoogleProfileFetcher {
	return &googleFetcher{}
}

func (g *googleFetcher) Fetch(ctx context.Context, code string) (*GoogleProfile, error) {
	cfg := config.Get()
	conf := &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURI,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	resp, err := conf.Client(ctx, token).Get(googleUserinfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	return &profile, nil
}
