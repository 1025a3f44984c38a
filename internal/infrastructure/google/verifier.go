// Package google validates Google ID tokens against the tokeninfo endpoint.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

const tokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

// Verifier implements ports.GoogleVerifier by delegating signature and expiry
// validation to Google's tokeninfo endpoint.
type Verifier struct {
	clientID string
	http     *http.Client
}

// NewVerifier creates a Verifier. When clientID is non-empty, the token
// audience must match it.
func NewVerifier(clientID string) *Verifier {
	return &Verifier{
		clientID: clientID,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type tokeninfoResponse struct {
	Sub           string `json:"sub"`
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (v *Verifier) Verify(ctx context.Context, idToken string) (*ports.GoogleClaims, error) {
	endpoint := tokeninfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrInvalidCredentials
	}

	var info tokeninfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode tokeninfo: %w", err)
	}
	if v.clientID != "" && info.Aud != v.clientID {
		return nil, domain.ErrInvalidCredentials
	}
	if info.Sub == "" || info.Email == "" || info.EmailVerified != "true" {
		return nil, domain.ErrInvalidCredentials
	}

	return &ports.GoogleClaims{
		GoogleID: info.Sub,
		Email:    info.Email,
		Name:     info.Name,
		Picture:  info.Picture,
	}, nil
}
