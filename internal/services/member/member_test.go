package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage/memory"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) Add(member models.Member) { m.Called(member) }
func (m *RepoMock) GetAll() []models.Member {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Member)
}
func (m *RepoMock) GetByID(id string) (models.Member, bool) {
	args := m.Called(id)
	return args.Get(0).(models.Member), args.Bool(1)
}
func (m *RepoMock) Update(member models.Member) bool { return m.Called(member).Bool(0) }
func (m *RepoMock) Delete(id string) bool            { return m.Called(id).Bool(0) }
func (m *RepoMock) Search(query string) []models.Member {
	args := m.Called(query)
	return args.Get(0).([]models.Member)
}
func (m *RepoMock) Subscribe(sub memory.Subscriber) func() {
	args := m.Called(sub)
	return args.Get(0).(func())
}

type RecorderMock struct{ mock.Mock }

func (m *RecorderMock) ObserveRegistration(success bool) { m.Called(success) }

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("m-%d", n)
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
}

func newTestService(opts ...Option) (*MemberService, *memory.Storage) {
	store := memory.New()
	return NewMemberService(store, newNoopLogger(), opts...), store
}

func validRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Name:        "John Doe",
		Email:       "john@x.com",
		PhoneNumber: "08111",
		Plan:        models.PlanPremium,
		JoinDate:    "01/01/2024",
		ExpiryDate:  "01/02/2024",
	}
}

func TestMemberService_Register(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		wantErr string
	}{
		{name: "success", mutate: func(_ *models.RegisterRequest) {}},
		{
			name:    "blank name",
			mutate:  func(r *models.RegisterRequest) { r.Name = "" },
			wantErr: "name must not be blank",
		},
		{
			name:    "whitespace email",
			mutate:  func(r *models.RegisterRequest) { r.Email = "   \t" },
			wantErr: "email must not be blank",
		},
		{
			name:    "blank phone",
			mutate:  func(r *models.RegisterRequest) { r.PhoneNumber = " " },
			wantErr: "phone number must not be blank",
		},
		{
			name: "all required blank",
			mutate: func(r *models.RegisterRequest) {
				r.Name, r.Email, r.PhoneNumber = "", "", ""
			},
			wantErr: "name, email, phone number must not be blank",
		},
		{
			name:    "missing plan",
			mutate:  func(r *models.RegisterRequest) { r.Plan = models.MembershipPlan{} },
			wantErr: "membership plan is required",
		},
		{
			name: "blank expiry with unparseable join date",
			mutate: func(r *models.RegisterRequest) {
				r.JoinDate = "yesterday"
				r.ExpiryDate = ""
			},
			wantErr: "expiry date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(WithIDGenerator(sequentialIDs()))
			req := validRequest()
			tt.mutate(&req)

			got, err := svc.Register(req)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, 0, store.Len())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, store.Len())
			assert.Equal(t, "m-1", got.ID)
		})
	}
}

func TestMemberService_RegisterFieldsMatchInput(t *testing.T) {
	svc, _ := newTestService()
	photo := "https://cdn.example.com/john.png"
	req := validRequest()
	req.EmergencyContact = "Mary Doe 0899"
	req.Address = "Jl. Sudirman 1"
	req.ProfileImageURL = &photo

	created, err := svc.Register(req)
	require.NoError(t, err)

	got, ok := svc.GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, req.Name, got.Name)
	assert.Equal(t, req.Email, got.Email)
	assert.Equal(t, req.PhoneNumber, got.PhoneNumber)
	assert.Equal(t, req.Plan, got.Plan)
	assert.Equal(t, req.JoinDate, got.JoinDate)
	assert.Equal(t, req.ExpiryDate, got.ExpiryDate)
	assert.Equal(t, req.EmergencyContact, got.EmergencyContact)
	assert.Equal(t, req.Address, got.Address)
	require.NotNil(t, got.ProfileImageURL)
	assert.Equal(t, photo, *got.ProfileImageURL)
	assert.True(t, got.IsActive)
}

func TestMemberService_RegisterDefaultsOptionalFields(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.Register(validRequest())
	require.NoError(t, err)
	assert.Equal(t, "", got.EmergencyContact)
	assert.Equal(t, "", got.Address)
	assert.Nil(t, got.ProfileImageURL)
}

func TestMemberService_RegisterDerivesDates(t *testing.T) {
	svc, _ := newTestService(WithClock(fixedClock))

	req := validRequest()
	req.JoinDate = ""
	req.ExpiryDate = ""
	got, err := svc.Register(req)
	require.NoError(t, err)
	assert.Equal(t, "31/01/2024", got.JoinDate)
	assert.Equal(t, "29/02/2024", got.ExpiryDate)

	req = validRequest()
	req.Plan = models.PlanAnnual
	req.JoinDate = "15/03/2024"
	req.ExpiryDate = ""
	got, err = svc.Register(req)
	require.NoError(t, err)
	assert.Equal(t, "15/03/2025", got.ExpiryDate)
}

func TestMemberService_RegisterTrimsDates(t *testing.T) {
	tests := []struct {
		name       string
		joinDate   string
		expiryDate string
		wantJoin   string
		wantExpiry string
	}{
		{
			name:       "вычисленная дата окончания",
			joinDate:   "  15/03/2024\t",
			wantJoin:   "15/03/2024",
			wantExpiry: "15/04/2024",
		},
		{
			name:       "обе даты заданы",
			joinDate:   " 01/01/2024 ",
			expiryDate: " 01/02/2024 ",
			wantJoin:   "01/01/2024",
			wantExpiry: "01/02/2024",
		},
		{
			name:       "дата вступления из пробелов",
			joinDate:   "   ",
			wantJoin:   "31/01/2024",
			wantExpiry: "29/02/2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(WithClock(fixedClock))
			req := validRequest()
			req.JoinDate = tt.joinDate
			req.ExpiryDate = tt.expiryDate

			created, err := svc.Register(req)
			require.NoError(t, err)

			got, ok := svc.GetByID(created.ID)
			require.True(t, ok)
			assert.Equal(t, tt.wantJoin, got.JoinDate)
			assert.Equal(t, tt.wantExpiry, got.ExpiryDate)
		})
	}
}

func TestMemberService_RegisterCopiesProfileImageURL(t *testing.T) {
	svc, _ := newTestService()
	photo := "https://cdn.example.com/a.png"
	req := validRequest()
	req.ProfileImageURL = &photo

	created, err := svc.Register(req)
	require.NoError(t, err)

	photo = "https://cdn.example.com/changed.png"
	*created.ProfileImageURL = "https://cdn.example.com/returned.png"

	got, ok := svc.GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/a.png", *got.ProfileImageURL)
}

func TestMemberService_RegisterUniqueIDs(t *testing.T) {
	svc, store := newTestService()

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		m, err := svc.Register(validRequest())
		require.NoError(t, err)
		seen[m.ID] = struct{}{}
	}

	assert.Len(t, seen, 1000)
	assert.Equal(t, 1000, store.Len())
}

func TestMemberService_RegisterRecordsOutcome(t *testing.T) {
	rec := new(RecorderMock)
	rec.On("ObserveRegistration", true).Once()
	rec.On("ObserveRegistration", false).Once()

	svc, _ := newTestService(WithRecorder(rec))

	_, err := svc.Register(validRequest())
	require.NoError(t, err)

	bad := validRequest()
	bad.Name = ""
	_, err = svc.Register(bad)
	require.Error(t, err)

	rec.AssertExpectations(t)
}

func TestMemberService_ToggleStatus(t *testing.T) {
	svc, store := newTestService()
	created, err := svc.Register(validRequest())
	require.NoError(t, err)

	assert.True(t, svc.ToggleStatus(created.ID))
	got, _ := svc.GetByID(created.ID)
	assert.False(t, got.IsActive)

	assert.True(t, svc.ToggleStatus(created.ID))
	got, _ = svc.GetByID(created.ID)
	assert.True(t, got.IsActive)

	before := store.GetAll()
	assert.False(t, svc.ToggleStatus("missing"))
	assert.Equal(t, before, store.GetAll())
}

func TestMemberService_Delete(t *testing.T) {
	svc, store := newTestService()
	first, err := svc.Register(validRequest())
	require.NoError(t, err)
	_, err = svc.Register(validRequest())
	require.NoError(t, err)

	assert.True(t, svc.Delete(first.ID))
	assert.Equal(t, 1, store.Len())

	assert.False(t, svc.Delete(first.ID))
	assert.Equal(t, 1, store.Len())
}

func TestMemberService_DeleteRecoversFromPanic(t *testing.T) {
	repo := new(RepoMock)
	repo.On("Delete", "boom").Run(func(_ mock.Arguments) {
		panic(errors.New("storage corrupted"))
	}).Return(true)

	svc := NewMemberService(repo, newNoopLogger())

	assert.NotPanics(t, func() {
		assert.False(t, svc.Delete("boom"))
	})
	repo.AssertExpectations(t)
}

func TestMemberService_Search(t *testing.T) {
	svc, _ := newTestService()
	for _, req := range []models.RegisterRequest{
		{Name: "John Doe", Email: "john@email.com", PhoneNumber: "081234567890", Plan: models.PlanBasic},
		{Name: "Jane Smith", Email: "jane@email.com", PhoneNumber: "081234567891", Plan: models.PlanVIP},
	} {
		_, err := svc.Register(req)
		require.NoError(t, err)
	}

	assert.Len(t, svc.Search(""), 2)
	assert.Len(t, svc.Search("SMITH"), 1)
	assert.Len(t, svc.Search("0812345678"), 2)
	assert.Empty(t, svc.Search("nobody"))
}

func TestMemberService_Statistics(t *testing.T) {
	svc, _ := newTestService()

	empty := svc.Statistics()
	assert.Equal(t, 0, empty[models.StatTotal])
	for _, p := range models.Plans() {
		v, ok := empty[p.Key()]
		assert.True(t, ok, "key %s must be present", p.Key())
		assert.Equal(t, 0, v)
	}

	john, err := svc.Register(validRequest())
	require.NoError(t, err)

	stats := svc.Statistics()
	assert.Equal(t, 1, stats["total"])
	assert.Equal(t, 1, stats["premium"])

	for _, plan := range []models.MembershipPlan{models.PlanVIP, models.PlanBasic, models.PlanAnnual} {
		req := validRequest()
		req.Plan = plan
		_, err := svc.Register(req)
		require.NoError(t, err)
	}
	require.True(t, svc.ToggleStatus(john.ID))

	stats = svc.Statistics()
	assert.Equal(t, 4, stats[models.StatTotal])
	assert.Equal(t, 3, stats[models.StatActive])
	assert.Equal(t, 1, stats[models.StatInactive])
	assert.Equal(t, stats[models.StatTotal], stats[models.StatActive]+stats[models.StatInactive])

	perPlan := 0
	for _, p := range models.Plans() {
		perPlan += stats[p.Key()]
	}
	assert.Equal(t, stats[models.StatTotal], perPlan)
}

func TestMemberService_SubscribeSeesRegistrations(t *testing.T) {
	svc, _ := newTestService()

	var sizes []int
	unsubscribe := svc.Subscribe(memory.SubscriberFunc(func(members []models.Member) {
		sizes = append(sizes, len(members))
	}))
	defer unsubscribe()

	_, err := svc.Register(validRequest())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, sizes)
}

func TestMemberService_Plans(t *testing.T) {
	svc, _ := newTestService()
	assert.Equal(t, models.Plans(), svc.Plans())
}
