package profile

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainCredential "plantops/internal/domain/credential"
	domainProfile "plantops/internal/domain/profile"
)

// memStore holds the shared state behind the credential and profile
// repository fakes, mirroring the one-table-each layout of the real store.
type memStore struct {
	profiles    map[uuid.UUID]*domainProfile.Profile
	credentials map[uuid.UUID]*domainCredential.Credential
}

func newMemStore() *memStore {
	return &memStore{
		profiles:    make(map[uuid.UUID]*domainProfile.Profile),
		credentials: make(map[uuid.UUID]*domainCredential.Credential),
	}
}

func (m *memStore) emailTaken(email string, except uuid.UUID) bool {
	for id, cred := range m.credentials {
		if cred.Email == email && id != except {
			return true
		}
	}
	return false
}

type fakeCredRepo struct{ store *memStore }

func (f *fakeCredRepo) GetByEmail(_ context.Context, email string) (*domainCredential.Credential, error) {
	for _, cred := range f.store.credentials {
		if cred.Email == email {
			copied := *cred
			return &copied, nil
		}
	}
	return nil, domainCredential.ErrCredentialNotFound
}

func (f *fakeCredRepo) GetByProfileID(_ context.Context, profileID uuid.UUID) (*domainCredential.Credential, error) {
	cred, ok := f.store.credentials[profileID]
	if !ok {
		return nil, domainCredential.ErrCredentialNotFound
	}
	copied := *cred
	return &copied, nil
}

func (f *fakeCredRepo) CreateWithProfile(_ context.Context, cred *domainCredential.Credential, p *domainProfile.Profile) error {
	if f.store.emailTaken(p.Email, uuid.Nil) {
		return domainCredential.ErrDuplicateEmail
	}
	p.ID = uuid.New()
	cred.ID = uuid.New()
	cred.ProfileID = p.ID
	cred.Email = p.Email
	cred.ProfileKind = p.Kind
	profCopy := *p
	credCopy := *cred
	f.store.profiles[p.ID] = &profCopy
	f.store.credentials[p.ID] = &credCopy
	return nil
}

func (f *fakeCredRepo) UpdatePassword(_ context.Context, profileID uuid.UUID, newHash string) error {
	cred, ok := f.store.credentials[profileID]
	if !ok {
		return domainCredential.ErrCredentialNotFound
	}
	cred.PasswordHash = newHash
	return nil
}

func (f *fakeCredRepo) UpdateEmail(_ context.Context, profileID uuid.UUID, newEmail string) error {
	cred, ok := f.store.credentials[profileID]
	if !ok {
		return domainCredential.ErrCredentialNotFound
	}
	if f.store.emailTaken(newEmail, profileID) {
		return domainCredential.ErrDuplicateEmail
	}
	cred.Email = newEmail
	f.store.profiles[profileID].Email = newEmail
	return nil
}

func (f *fakeCredRepo) DeleteWithProfile(_ context.Context, profileID uuid.UUID) error {
	if _, ok := f.store.credentials[profileID]; !ok {
		return domainCredential.ErrCredentialNotFound
	}
	delete(f.store.credentials, profileID)
	delete(f.store.profiles, profileID)
	return nil
}

type fakeProfRepo struct{ store *memStore }

func (f *fakeProfRepo) GetByID(_ context.Context, profileID uuid.UUID) (*domainProfile.Profile, error) {
	p, ok := f.store.profiles[profileID]
	if !ok {
		return nil, domainProfile.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProfRepo) GetByEmail(_ context.Context, email string) (*domainProfile.Profile, error) {
	for _, p := range f.store.profiles {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domainProfile.ErrProfileNotFound
}

func (f *fakeProfRepo) List(_ context.Context, filter *domainProfile.Filter) ([]*domainProfile.Profile, int64, error) {
	out := make([]*domainProfile.Profile, 0, len(f.store.profiles))
	for _, p := range f.store.profiles {
		if filter.Role != nil && p.Role != *filter.Role {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProfRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.store.profiles)), nil
}

func (f *fakeProfRepo) Update(_ context.Context, p *domainProfile.Profile) error {
	if _, ok := f.store.profiles[p.ID]; !ok {
		return domainProfile.ErrProfileNotFound
	}
	copied := *p
	f.store.profiles[p.ID] = &copied
	return nil
}

func (f *fakeProfRepo) UpdateLastLogin(_ context.Context, profileID uuid.UUID, at time.Time) error {
	p, ok := f.store.profiles[profileID]
	if !ok {
		return domainProfile.ErrProfileNotFound
	}
	p.LastLoginAt = &at
	return nil
}

func (f *fakeProfRepo) SetResetToken(_ context.Context, profileID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	p, ok := f.store.profiles[profileID]
	if !ok {
		return domainProfile.ErrProfileNotFound
	}
	p.ResetTokenHash = &tokenHash
	p.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (f *fakeProfRepo) GetByResetTokenHash(_ context.Context, tokenHash string) (*domainProfile.Profile, error) {
	for _, p := range f.store.profiles {
		if p.ResetTokenHash != nil && *p.ResetTokenHash == tokenHash {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domainProfile.ErrProfileNotFound
}

func (f *fakeProfRepo) ClearResetToken(_ context.Context, profileID uuid.UUID) error {
	p, ok := f.store.profiles[profileID]
	if !ok {
		return domainProfile.ErrProfileNotFound
	}
	p.ResetTokenHash = nil
	p.ResetTokenExpiresAt = nil
	return nil
}

func (f *fakeProfRepo) ClearExpiredResetTokens(_ context.Context, before time.Time) (int64, error) {
	var cleared int64
	for _, p := range f.store.profiles {
		if p.ResetTokenHash != nil && p.ResetTokenExpiresAt != nil && p.ResetTokenExpiresAt.Before(before) {
			p.ResetTokenHash = nil
			p.ResetTokenExpiresAt = nil
			cleared++
		}
	}
	return cleared, nil
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	return NewService(&fakeCredRepo{store: store}, &fakeProfRepo{store: store}), store
}

func createProfile(t *testing.T, svc *Service, email, role string) *ProfileResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), &CreateProfileRequest{
		FullName: "Test User",
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateProfile(t *testing.T) {
	svc, store := newTestService()

	resp := createProfile(t, svc, "admin@plant.example", "admin")
	assert.Equal(t, "admin", resp.Role)
	assert.True(t, resp.IsActive)

	cred := store.credentials[resp.ID]
	require.NotNil(t, cred)
	assert.Equal(t, "admin@plant.example", cred.Email)
	assert.NotEqual(t, "password123", cred.PasswordHash)
	assert.Equal(t, domainProfile.KindUser, cred.ProfileKind)
}

func TestCreateProfileSuperadminKind(t *testing.T) {
	svc, store := newTestService()

	resp := createProfile(t, svc, "root@plant.example", "superadmin")
	assert.Equal(t, domainProfile.KindSuperadmin, store.profiles[resp.ID].Kind)
}

func TestCreateProfileDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	createProfile(t, svc, "admin@plant.example", "admin")

	_, err := svc.Create(context.Background(), &CreateProfileRequest{
		FullName: "Another User",
		Email:    "admin@plant.example",
		Password: "password123",
		Role:     "viewer",
	})
	assert.ErrorIs(t, err, domainCredential.ErrDuplicateEmail)
}

func TestCreateProfileInvalidRole(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &CreateProfileRequest{
		FullName: "Test User",
		Email:    "x@plant.example",
		Password: "password123",
		Role:     "plumber",
	})
	assert.Error(t, err)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := newTestService()

	created := createProfile(t, svc, "op@plant.example", "operator")

	newName := "Renamed Operator"
	updated, err := svc.Update(context.Background(), created.ID, &UpdateProfileRequest{
		FullName: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Operator", updated.FullName)
	// Absent fields stay untouched.
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Role, updated.Role)
}

func TestUpdateProfileEmailSyncsCredential(t *testing.T) {
	svc, store := newTestService()

	created := createProfile(t, svc, "old@plant.example", "operator")

	newEmail := "new@plant.example"
	updated, err := svc.Update(context.Background(), created.ID, &UpdateProfileRequest{
		Email: &newEmail,
	})
	require.NoError(t, err)

	assert.Equal(t, newEmail, updated.Email)
	assert.Equal(t, newEmail, store.credentials[created.ID].Email)
}

func TestUpdateProfileRoleChangesKind(t *testing.T) {
	svc, store := newTestService()

	created := createProfile(t, svc, "op@plant.example", "operator")

	newRole := "superadmin"
	_, err := svc.Update(context.Background(), created.ID, &UpdateProfileRequest{
		Role: &newRole,
	})
	require.NoError(t, err)
	assert.Equal(t, domainProfile.KindSuperadmin, store.profiles[created.ID].Kind)
}

func TestDeleteProfileRemovesCredential(t *testing.T) {
	svc, store := newTestService()

	created := createProfile(t, svc, "gone@plant.example", "viewer")

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, ok := store.profiles[created.ID]
	assert.False(t, ok)
	_, ok = store.credentials[created.ID]
	assert.False(t, ok)
}
