package doctors

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightpaw/vetcare-platform/internal/media"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// ProfileStore is the persistence port the service talks to.
type ProfileStore interface {
	Get(ctx context.Context, providerID string) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Save(ctx context.Context, p *Profile) error
}

// MediaStore is the blob-storage port for photos and certificates.
type MediaStore interface {
	UploadProfilePhoto(ctx context.Context, providerID string, f media.File) (string, error)
	UploadCertificates(ctx context.Context, providerID string, files []media.File) ([]string, error)
	Delete(ctx context.Context, url string) error
}

// Service coordinates profile documents with their media objects.
type Service struct {
	store  ProfileStore
	media  MediaStore
	logger *logging.Logger
}

// NewService creates a doctors service.
func NewService(store ProfileStore, mediaStore MediaStore, logger *logging.Logger) *Service {
	if store == nil {
		panic("doctors: profile store is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, media: mediaStore, logger: logger}
}

// Get returns one profile.
func (s *Service) Get(ctx context.Context, providerID string) (*Profile, error) {
	return s.store.Get(ctx, providerID)
}

// List returns the public roster.
func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.store.List(ctx)
}

// Update upserts the textual profile fields, preserving media URLs already
// attached to an existing profile.
func (s *Service) Update(ctx context.Context, p *Profile) (*Profile, error) {
	existing, err := s.store.Get(ctx, p.ProviderID)
	switch {
	case err == nil:
		p.PhotoURL = existing.PhotoURL
		p.CertificateURLs = existing.CertificateURLs
		p.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		// first write
	default:
		return nil, err
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetPhoto replaces the profile photo, removing the previous blob after the
// document points at the new one.
func (s *Service) SetPhoto(ctx context.Context, providerID string, f media.File) (*Profile, error) {
	if s.media == nil {
		return nil, fmt.Errorf("doctors: media storage is not configured")
	}
	p, err := s.store.Get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	url, err := s.media.UploadProfilePhoto(ctx, providerID, f)
	if err != nil {
		return nil, err
	}
	old := p.PhotoURL
	p.PhotoURL = url
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}

	if old != "" && old != url {
		if err := s.media.Delete(ctx, old); err != nil {
			s.logger.Warn("failed to remove replaced profile photo", "error", err, "url", old)
		}
	}
	return p, nil
}

// AddCertificates uploads certificate documents and appends their URLs.
func (s *Service) AddCertificates(ctx context.Context, providerID string, files []media.File) (*Profile, error) {
	if s.media == nil {
		return nil, fmt.Errorf("doctors: media storage is not configured")
	}
	p, err := s.store.Get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	urls, err := s.media.UploadCertificates(ctx, providerID, files)
	if err != nil {
		return nil, err
	}
	p.CertificateURLs = append(p.CertificateURLs, urls...)
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteCertificate removes one certificate URL from the profile and deletes
// its blob. The document is updated first so a blob-delete failure cannot
// leave a dangling reference.
func (s *Service) DeleteCertificate(ctx context.Context, providerID, url string) (*Profile, error) {
	p, err := s.store.Get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	kept := p.CertificateURLs[:0:0]
	found := false
	for _, u := range p.CertificateURLs {
		if u == url {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return nil, fmt.Errorf("%w: certificate %s", ErrNotFound, url)
	}
	p.CertificateURLs = kept
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}

	if s.media != nil {
		if err := s.media.Delete(ctx, url); err != nil {
			s.logger.Warn("failed to remove certificate blob", "error", err, "url", url)
		}
	}
	return p, nil
}
