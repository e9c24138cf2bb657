package services

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// GoogleUser is the slice of the Google identity this service cares about.
type GoogleUser struct {
	Email string
	Name  string
}

// GoogleAuth runs the authorization-code flow against Google and resolves the
// resulting grant to the account's email and display name.
type GoogleAuth struct {
	cfg *oauth2.Config
}

func NewGoogleAuth(clientID, clientSecret, redirectURL string) *GoogleAuth {
	return &GoogleAuth{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				oauth2api.UserinfoEmailScope,
				oauth2api.UserinfoProfileScope,
			},
			Endpoint: google.Endpoint,
		},
	}
}

// AuthCodeURL returns the consent-screen URL to redirect the browser to.
func (g *GoogleAuth) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

// FetchUser exchanges the callback code for a token and looks up the userinfo
// it grants access to.
func (g *GoogleAuth) FetchUser(ctx context.Context, code string) (*GoogleUser, error) {
	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(g.cfg.TokenSource(ctx, token)))
	if err != nil {
		return nil, err
	}

	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		return nil, err
	}

	return &GoogleUser{Email: info.Email, Name: info.Name}, nil
}
