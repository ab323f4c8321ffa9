package doctors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no profile exists for a provider.
var ErrNotFound = errors.New("doctors: profile not found")

// ErrInvalidProfile is returned when a profile write is malformed.
var ErrInvalidProfile = errors.New("doctors: invalid profile")

// Profile is a veterinarian's public profile.
type Profile struct {
	ProviderID      string   `dynamodbav:"providerId" json:"provider_id"`
	Name            string   `dynamodbav:"name" json:"name"`
	Title           string   `dynamodbav:"title,omitempty" json:"title,omitempty"`
	Bio             string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Specialties     []string `dynamodbav:"specialties,omitempty" json:"specialties,omitempty"`
	PhotoURL        string   `dynamodbav:"photoUrl,omitempty" json:"photo_url,omitempty"`
	CertificateURLs []string `dynamodbav:"certificateUrls,omitempty" json:"certificate_urls,omitempty"`
	CreatedAt       string   `dynamodbav:"createdAt" json:"created_at"`
	UpdatedAt       string   `dynamodbav:"updatedAt" json:"updated_at"`
}

// Validate checks the fields a public listing depends on.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	return nil
}
