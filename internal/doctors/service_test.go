package doctors

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpaw/vetcare-platform/internal/media"
)

type fakeProfileStore struct {
	profiles map[string]*Profile
	saveErr  error
}

func newFakeProfileStore(profiles ...*Profile) *fakeProfileStore {
	m := make(map[string]*Profile)
	for _, p := range profiles {
		m[p.ProviderID] = p
	}
	return &fakeProfileStore{profiles: m}
}

func (f *fakeProfileStore) Get(_ context.Context, providerID string) (*Profile, error) {
	p, ok := f.profiles[providerID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) List(_ context.Context) ([]Profile, error) {
	var out []Profile
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProfileStore) Save(_ context.Context, p *Profile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := *p
	f.profiles[p.ProviderID] = &cp
	return nil
}

type fakeMedia struct {
	uploaded []string
	deleted  []string
}

func (f *fakeMedia) UploadProfilePhoto(_ context.Context, providerID string, _ media.File) (string, error) {
	url := "https://cdn.example.com/providers/" + providerID + "/profile_new"
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeMedia) UploadCertificates(_ context.Context, providerID string, files []media.File) ([]string, error) {
	var urls []string
	for _, file := range files {
		url := "https://cdn.example.com/providers/" + providerID + "/certificates/" + file.Name
		urls = append(urls, url)
		f.uploaded = append(f.uploaded, url)
	}
	return urls, nil
}

func (f *fakeMedia) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func TestUpdate_PreservesMediaURLs(t *testing.T) {
	store := newFakeProfileStore(&Profile{
		ProviderID:      "prov-1",
		Name:            "Dr. Mercer",
		PhotoURL:        "https://cdn.example.com/old-photo",
		CertificateURLs: []string{"https://cdn.example.com/cert-1"},
		CreatedAt:       "2026-01-01T00:00:00Z",
	})
	svc := NewService(store, nil, nil)

	updated, err := svc.Update(context.Background(), &Profile{
		ProviderID: "prov-1",
		Name:       "Dr. Mercer",
		Bio:        "Exotics and small mammals.",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/old-photo", updated.PhotoURL)
	assert.Equal(t, []string{"https://cdn.example.com/cert-1"}, updated.CertificateURLs)
	assert.Equal(t, "2026-01-01T00:00:00Z", updated.CreatedAt)
	assert.Equal(t, "Exotics and small mammals.", store.profiles["prov-1"].Bio)
}

func TestUpdate_FirstWriteCreatesProfile(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewService(store, nil, nil)

	_, err := svc.Update(context.Background(), &Profile{ProviderID: "prov-1", Name: "Dr. Mercer"})
	require.NoError(t, err)
	assert.Contains(t, store.profiles, "prov-1")
}

func TestSetPhoto_ReplacesAndCleansUpOldBlob(t *testing.T) {
	store := newFakeProfileStore(&Profile{
		ProviderID: "prov-1",
		Name:       "Dr. Mercer",
		PhotoURL:   "https://cdn.example.com/old-photo",
	})
	m := &fakeMedia{}
	svc := NewService(store, m, nil)

	p, err := svc.SetPhoto(context.Background(), "prov-1", media.File{Name: "me.jpg", Body: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Contains(t, p.PhotoURL, "profile_new")
	assert.Equal(t, []string{"https://cdn.example.com/old-photo"}, m.deleted)
}

func TestAddCertificates_Appends(t *testing.T) {
	store := newFakeProfileStore(&Profile{
		ProviderID:      "prov-1",
		Name:            "Dr. Mercer",
		CertificateURLs: []string{"https://cdn.example.com/cert-1"},
	})
	m := &fakeMedia{}
	svc := NewService(store, m, nil)

	p, err := svc.AddCertificates(context.Background(), "prov-1", []media.File{
		{Name: "cert-2.pdf", Body: strings.NewReader("x")},
	})
	require.NoError(t, err)
	require.Len(t, p.CertificateURLs, 2)
	assert.Equal(t, "https://cdn.example.com/cert-1", p.CertificateURLs[0])
}

func TestDeleteCertificate_RemovesDocEntryAndBlob(t *testing.T) {
	store := newFakeProfileStore(&Profile{
		ProviderID:      "prov-1",
		Name:            "Dr. Mercer",
		CertificateURLs: []string{"https://cdn.example.com/cert-1", "https://cdn.example.com/cert-2"},
	})
	m := &fakeMedia{}
	svc := NewService(store, m, nil)

	p, err := svc.DeleteCertificate(context.Background(), "prov-1", "https://cdn.example.com/cert-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/cert-2"}, p.CertificateURLs)
	assert.Equal(t, []string{"https://cdn.example.com/cert-1"}, m.deleted)
}

func TestDeleteCertificate_UnknownURL(t *testing.T) {
	store := newFakeProfileStore(&Profile{ProviderID: "prov-1", Name: "Dr. Mercer"})
	svc := NewService(store, &fakeMedia{}, nil)

	_, err := svc.DeleteCertificate(context.Background(), "prov-1", "https://cdn.example.com/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetPhoto_UnknownProvider(t *testing.T) {
	svc := NewService(newFakeProfileStore(), &fakeMedia{}, nil)

	_, err := svc.SetPhoto(context.Background(), "prov-9", media.File{Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}
