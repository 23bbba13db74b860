package machine

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainMachine "plantops/internal/domain/machine"
)

type fakeMachineRepo struct {
	machines map[uuid.UUID]*domainMachine.Machine
}

func newFakeMachineRepo() *fakeMachineRepo {
	return &fakeMachineRepo{machines: make(map[uuid.UUID]*domainMachine.Machine)}
}

func (f *fakeMachineRepo) Create(_ context.Context, m *domainMachine.Machine) error {
	for _, existing := range f.machines {
		if existing.Name == m.Name || existing.Code == m.Code {
			return domainMachine.ErrMachineAlreadyExists
		}
	}
	m.ID = uuid.New()
	copied := *m
	f.machines[m.ID] = &copied
	return nil
}

func (f *fakeMachineRepo) GetByID(_ context.Context, machineID uuid.UUID) (*domainMachine.Machine, error) {
	m, ok := f.machines[machineID]
	if !ok {
		return nil, domainMachine.ErrMachineNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMachineRepo) GetByName(_ context.Context, name string) (*domainMachine.Machine, error) {
	for _, m := range f.machines {
		if m.Name == name {
			copied := *m
			return &copied, nil
		}
	}
	return nil, domainMachine.ErrMachineNotFound
}

func (f *fakeMachineRepo) GetByCode(_ context.Context, code string) (*domainMachine.Machine, error) {
	for _, m := range f.machines {
		if m.Code == code {
			copied := *m
			return &copied, nil
		}
	}
	return nil, domainMachine.ErrMachineNotFound
}

func (f *fakeMachineRepo) List(_ context.Context, filter *domainMachine.Filter) ([]*domainMachine.Machine, int64, error) {
	out := make([]*domainMachine.Machine, 0, len(f.machines))
	for _, m := range f.machines {
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(filter.Search)) {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMachineRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.machines)), nil
}

func (f *fakeMachineRepo) Update(_ context.Context, m *domainMachine.Machine) error {
	if _, ok := f.machines[m.ID]; !ok {
		return domainMachine.ErrMachineNotFound
	}
	copied := *m
	f.machines[m.ID] = &copied
	return nil
}

func (f *fakeMachineRepo) UpdateStatus(_ context.Context, machineID uuid.UUID, status domainMachine.Status) error {
	m, ok := f.machines[machineID]
	if !ok {
		return domainMachine.ErrMachineNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeMachineRepo) Delete(_ context.Context, machineID uuid.UUID) error {
	if _, ok := f.machines[machineID]; !ok {
		return domainMachine.ErrMachineNotFound
	}
	delete(f.machines, machineID)
	return nil
}

type fakeFileStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (f *fakeFileStore) Save(file *multipart.FileHeader, resource string, _ []string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	path := resource + "/" + file.Filename
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeFileStore) Remove(relPath string) error {
	f.removed = append(f.removed, relPath)
	return nil
}

func TestCreateMachine(t *testing.T) {
	repo := newFakeMachineRepo()
	svc := NewService(repo, &fakeFileStore{})

	resp, err := svc.Create(context.Background(), &CreateMachineRequest{
		Name:           "Press 01",
		Code:           "PR-01",
		HandlingMethod: "automatic",
	})
	require.NoError(t, err)
	assert.Equal(t, "operational", resp.Status)
	assert.Equal(t, "automatic", resp.HandlingMethod)
}

func TestCreateMachineDuplicateName(t *testing.T) {
	repo := newFakeMachineRepo()
	svc := NewService(repo, &fakeFileStore{})

	_, err := svc.Create(context.Background(), &CreateMachineRequest{
		Name:           "Press 01",
		Code:           "PR-01",
		HandlingMethod: "manual",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &CreateMachineRequest{
		Name:           "Press 01",
		Code:           "PR-02",
		HandlingMethod: "manual",
	})
	assert.ErrorIs(t, err, domainMachine.ErrMachineAlreadyExists)
}

func TestCreateMachineInvalidHandlingMethod(t *testing.T) {
	svc := NewService(newFakeMachineRepo(), &fakeFileStore{})

	_, err := svc.Create(context.Background(), &CreateMachineRequest{
		Name:           "Press 01",
		Code:           "PR-01",
		HandlingMethod: "telekinetic",
	})
	assert.Error(t, err)
}

func TestUpdateMachinePartial(t *testing.T) {
	repo := newFakeMachineRepo()
	svc := NewService(repo, &fakeFileStore{})

	created, err := svc.Create(context.Background(), &CreateMachineRequest{
		Name:           "Press 01",
		Code:           "PR-01",
		HandlingMethod: "manual",
	})
	require.NoError(t, err)

	status := "maintenance"
	updated, err := svc.Update(context.Background(), created.ID, &UpdateMachineRequest{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, "maintenance", updated.Status)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.HandlingMethod, updated.HandlingMethod)
}

func TestUpdateMachineNotFound(t *testing.T) {
	svc := NewService(newFakeMachineRepo(), &fakeFileStore{})

	name := "Renamed"
	_, err := svc.Update(context.Background(), uuid.New(), &UpdateMachineRequest{Name: &name})
	assert.ErrorIs(t, err, domainMachine.ErrMachineNotFound)
}

func TestDeleteMachineRemovesImage(t *testing.T) {
	repo := newFakeMachineRepo()
	files := &fakeFileStore{}
	svc := NewService(repo, files)

	created, err := svc.Create(context.Background(), &CreateMachineRequest{
		Name:           "Press 01",
		Code:           "PR-01",
		HandlingMethod: "manual",
	})
	require.NoError(t, err)

	imagePath := "machines/press01.png"
	m := repo.machines[created.ID]
	m.ImagePath = &imagePath

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	assert.Empty(t, repo.machines)
	assert.Contains(t, files.removed, imagePath)
}

func TestUploadImageSaveFailure(t *testing.T) {
	repo := newFakeMachineRepo()
	files := &fakeFileStore{saveErr: errors.New("disk full")}
	svc := NewService(repo, files)

	created, err := svc.Create(context.Background(), &CreateMachineRequest{
		Name:           "Press 01",
		Code:           "PR-01",
		HandlingMethod: "manual",
	})
	require.NoError(t, err)

	_, err = svc.UploadImage(context.Background(), created.ID, &multipart.FileHeader{Filename: "a.png"})
	require.Error(t, err)
	assert.Nil(t, repo.machines[created.ID].ImagePath)
}
