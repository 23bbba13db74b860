package performance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainMachine "plantops/internal/domain/machine"
	domainPerformance "plantops/internal/domain/performance"
	domainProfile "plantops/internal/domain/profile"
)

type fakeRecordRepo struct {
	records map[uuid.UUID]*domainPerformance.Record
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[uuid.UUID]*domainPerformance.Record)}
}

func (f *fakeRecordRepo) Create(_ context.Context, r *domainPerformance.Record) error {
	r.ID = uuid.New()
	copied := *r
	f.records[r.ID] = &copied
	return nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, recordID uuid.UUID) (*domainPerformance.Record, error) {
	r, ok := f.records[recordID]
	if !ok {
		return nil, domainPerformance.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRecordRepo) List(_ context.Context, _ *domainPerformance.Filter) ([]*domainPerformance.Record, int64, error) {
	out := make([]*domainPerformance.Record, 0, len(f.records))
	for _, r := range f.records {
		copied := *r
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecordRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeRecordRepo) Update(_ context.Context, r *domainPerformance.Record) error {
	if _, ok := f.records[r.ID]; !ok {
		return domainPerformance.ErrRecordNotFound
	}
	copied := *r
	f.records[r.ID] = &copied
	return nil
}

func (f *fakeRecordRepo) Delete(_ context.Context, recordID uuid.UUID) error {
	if _, ok := f.records[recordID]; !ok {
		return domainPerformance.ErrRecordNotFound
	}
	delete(f.records, recordID)
	return nil
}

type fakeMachineRepo struct {
	machines map[uuid.UUID]*domainMachine.Machine
}

func newFakeMachineRepo() *fakeMachineRepo {
	return &fakeMachineRepo{machines: make(map[uuid.UUID]*domainMachine.Machine)}
}

func (f *fakeMachineRepo) Create(_ context.Context, m *domainMachine.Machine) error {
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

func (f *fakeMachineRepo) GetByName(context.Context, string) (*domainMachine.Machine, error) {
	return nil, domainMachine.ErrMachineNotFound
}

func (f *fakeMachineRepo) GetByCode(context.Context, string) (*domainMachine.Machine, error) {
	return nil, domainMachine.ErrMachineNotFound
}

func (f *fakeMachineRepo) List(context.Context, *domainMachine.Filter) ([]*domainMachine.Machine, int64, error) {
	return nil, 0, nil
}

func (f *fakeMachineRepo) Count(context.Context) (int64, error) { return 0, nil }

func (f *fakeMachineRepo) Update(context.Context, *domainMachine.Machine) error { return nil }

func (f *fakeMachineRepo) UpdateStatus(context.Context, uuid.UUID, domainMachine.Status) error {
	return nil
}

func (f *fakeMachineRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*domainProfile.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*domainProfile.Profile)}
}

func (f *fakeProfileRepo) GetByID(_ context.Context, profileID uuid.UUID) (*domainProfile.Profile, error) {
	p, ok := f.profiles[profileID]
	if !ok {
		return nil, domainProfile.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProfileRepo) GetByEmail(context.Context, string) (*domainProfile.Profile, error) {
	return nil, domainProfile.ErrProfileNotFound
}

func (f *fakeProfileRepo) List(context.Context, *domainProfile.Filter) ([]*domainProfile.Profile, int64, error) {
	return nil, 0, nil
}

func (f *fakeProfileRepo) Count(context.Context) (int64, error) { return 0, nil }

func (f *fakeProfileRepo) Update(context.Context, *domainProfile.Profile) error { return nil }

func (f *fakeProfileRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error { return nil }

func (f *fakeProfileRepo) SetResetToken(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}

func (f *fakeProfileRepo) GetByResetTokenHash(context.Context, string) (*domainProfile.Profile, error) {
	return nil, domainProfile.ErrProfileNotFound
}

func (f *fakeProfileRepo) ClearResetToken(context.Context, uuid.UUID) error { return nil }

func (f *fakeProfileRepo) ClearExpiredResetTokens(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type testEnv struct {
	svc        *Service
	operatorID uuid.UUID
	machineID  uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	machineRepo := newFakeMachineRepo()
	profileRepo := newFakeProfileRepo()

	m := &domainMachine.Machine{Name: "Press 01", Code: "PR-01"}
	require.NoError(t, machineRepo.Create(context.Background(), m))

	operator := &domainProfile.Profile{
		ID:       uuid.New(),
		Email:    "op@plant.example",
		Role:     domainProfile.RoleOperator,
		IsActive: true,
	}
	profileRepo.profiles[operator.ID] = operator

	return &testEnv{
		svc:        NewService(newFakeRecordRepo(), machineRepo, profileRepo),
		operatorID: operator.ID,
		machineID:  m.ID,
	}
}

func TestCreateRecordComputesEfficiency(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Create(context.Background(), &CreateRecordRequest{
		OperatorID:    env.operatorID,
		MachineID:     env.machineID,
		RecordDate:    time.Now(),
		UnitsProduced: 200,
		DefectCount:   10,
		HoursWorked:   8,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Efficiency)
	assert.InDelta(t, 95.0, *resp.Efficiency, 0.001)
}

func TestCreateRecordIdleShiftHasNoEfficiency(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Create(context.Background(), &CreateRecordRequest{
		OperatorID:    env.operatorID,
		MachineID:     env.machineID,
		RecordDate:    time.Now(),
		UnitsProduced: 0,
		DefectCount:   0,
		HoursWorked:   8,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Efficiency)
}

func TestCreateRecordUnknownOperator(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), &CreateRecordRequest{
		OperatorID:    uuid.New(),
		MachineID:     env.machineID,
		RecordDate:    time.Now(),
		UnitsProduced: 100,
		HoursWorked:   8,
	})
	assert.ErrorIs(t, err, domainProfile.ErrProfileNotFound)
}

func TestCreateRecordRejectsBadHours(t *testing.T) {
	env := newTestEnv(t)

	for _, hours := range []float64{0, -1, 25} {
		_, err := env.svc.Create(context.Background(), &CreateRecordRequest{
			OperatorID:    env.operatorID,
			MachineID:     env.machineID,
			RecordDate:    time.Now(),
			UnitsProduced: 100,
			HoursWorked:   hours,
		})
		assert.Error(t, err, "hours=%v", hours)
	}
}

func TestUpdateRecordRecomputesEfficiency(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.svc.Create(context.Background(), &CreateRecordRequest{
		OperatorID:    env.operatorID,
		MachineID:     env.machineID,
		RecordDate:    time.Now(),
		UnitsProduced: 100,
		DefectCount:   0,
		HoursWorked:   8,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Efficiency)
	assert.InDelta(t, 100.0, *created.Efficiency, 0.001)

	defects := 25
	updated, err := env.svc.Update(context.Background(), created.ID, &UpdateRecordRequest{
		DefectCount: &defects,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Efficiency)
	assert.InDelta(t, 75.0, *updated.Efficiency, 0.001)
}

func TestEfficiencyFloorsAtZero(t *testing.T) {
	eff := computeEfficiency(10, 50)
	require.NotNil(t, eff)
	assert.Zero(t, *eff)
}
