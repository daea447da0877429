package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appointmentRepo "furcare/database/repository/appointment"
	"furcare/models"
	"furcare/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryAppointmentRepo applies each write atomically under one mutex, like the
// transactional Mongo repository does.
type memoryAppointmentRepo struct {
	mu       sync.Mutex
	appts    map[string]models.Appointment
	bookable map[string]bool // slotID → active and not booked
	events   []models.OutboxEvent
}

func newMemoryRepo(slotIDs ...string) *memoryAppointmentRepo {
	r := &memoryAppointmentRepo{appts: map[string]models.Appointment{}, bookable: map[string]bool{}}
	for _, id := range slotIDs {
		r.bookable[id] = true
	}
	return r
}

func (r *memoryAppointmentRepo) CreateWithEvents(_ context.Context, appt *models.Appointment, events []models.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.bookable[appt.SlotID] {
		return appointmentRepo.ErrSlotUnavailable
	}
	for _, a := range r.appts {
		if a.BookingNumber == appt.BookingNumber {
			return appointmentRepo.ErrDuplicateBookingNumber
		}
	}
	r.bookable[appt.SlotID] = false
	r.appts[appt.ID] = *appt
	r.events = append(r.events, events...)
	return nil
}

func (r *memoryAppointmentRepo) UpdateStatusWithEvents(_ context.Context, appt *models.Appointment, from models.AppointmentStatus, releaseSlot bool, events []models.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.appts[appt.ID]
	if !ok || cur.AppointmentStatus != from {
		return appointmentRepo.ErrStatusChanged
	}
	r.appts[appt.ID] = *appt
	if releaseSlot {
		r.bookable[appt.SlotID] = true
	}
	r.events = append(r.events, events...)
	return nil
}

func (r *memoryAppointmentRepo) FindByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *memoryAppointmentRepo) FindByBookingNumber(_ context.Context, bn string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appts {
		if a.BookingNumber == bn {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *memoryAppointmentRepo) list(keep func(models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range r.appts {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func (r *memoryAppointmentRepo) FindByShop(_ context.Context, shopID string) ([]models.Appointment, error) {
	return r.list(func(a models.Appointment) bool { return a.ShopID == shopID }), nil
}

func (r *memoryAppointmentRepo) FindByUser(_ context.Context, userID string) ([]models.Appointment, error) {
	return r.list(func(a models.Appointment) bool { return a.UserID == userID }), nil
}

func (r *memoryAppointmentRepo) CountCreatedBetween(_ context.Context, start, end time.Time) (int64, error) {
	return int64(len(r.list(func(a models.Appointment) bool {
		return !a.CreatedAt.Before(start) && !a.CreatedAt.After(end)
	}))), nil
}

func (r *memoryAppointmentRepo) EnsureIndexes(context.Context) error { return nil }

type mockNumbers struct {
	mock.Mock
}

func (m *mockNumbers) Next(ctx context.Context, createdAt time.Time) (string, error) {
	args := m.Called(ctx, createdAt)
	return args.String(0), args.Error(1)
}

const (
	userRef    = "665f1c2ab1e4c0a1d2e3f500"
	petRef     = "665f1c2ab1e4c0a1d2e3f501"
	shopRef    = "665f1c2ab1e4c0a1d2e3f502"
	staffRef   = "665f1c2ab1e4c0a1d2e3f503"
	serviceRef = "665f1c2ab1e4c0a1d2e3f504"
	slotRef    = "665f1c2ab1e4c0a1d2e3f505"
	otherSlot  = "665f1c2ab1e4c0a1d2e3f506"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func createReq(slotID string) models.CreateAppointmentRequest {
	return models.CreateAppointmentRequest{
		UserID:      userRef,
		PetID:       petRef,
		ShopID:      shopRef,
		StaffID:     staffRef,
		ServiceID:   serviceRef,
		SlotID:      slotID,
		SlotDetails: models.SlotDetails{Date: "2024-05-01", StartTime: "09:00", EndTime: "09:30"},
	}
}

func newTestLifecycle(repo *memoryAppointmentRepo, numbers ...string) (*DefaultAppointmentLifecycle, *mockNumbers) {
	gen := &mockNumbers{}
	for _, n := range numbers {
		gen.On("Next", mock.Anything, fixedNow).Return(n, nil).Once()
	}
	svc := NewDefaultAppointmentLifecycle(repo, gen)
	svc.Now = func() time.Time { return fixedNow }
	return svc, gen
}

func TestCreateAppointment_EmitsTwoNotifications(t *testing.T) {
	repo := newMemoryRepo(slotRef)
	svc, gen := newTestLifecycle(repo, "FC01052024-01")

	appt, err := svc.CreateAppointment(context.Background(), createReq(slotRef))
	require.NoError(t, err)

	assert.Equal(t, "FC01052024-01", appt.BookingNumber)
	assert.Equal(t, models.AppointmentPending, appt.AppointmentStatus)
	assert.False(t, repo.bookable[slotRef], "slot must be flagged booked")
	gen.AssertNumberOfCalls(t, "Next", 1)

	require.Len(t, repo.events, 2)
	user, shop := repo.events[0].Notification, repo.events[1].Notification
	assert.Equal(t, models.ReceiverUser, user.ReceiverType)
	assert.Equal(t, "New appointment created with booking number FC01052024-01", user.Message)
	assert.Equal(t, models.ReceiverShop, shop.ReceiverType)
	assert.Equal(t, "New appointment received — FC01052024-01", shop.Message)
	for _, ev := range repo.events {
		assert.Equal(t, models.EventAppointmentCreated, ev.EventType)
		assert.Equal(t, appt.ID, ev.AggregateID)
		assert.Equal(t, models.OutboxPending, ev.Status)
	}
}

func TestCreateAppointment_SlotAlreadyBooked(t *testing.T) {
	repo := newMemoryRepo(slotRef)
	svc, _ := newTestLifecycle(repo, "FC01052024-01", "FC01052024-02", "FC01052024-03")

	_, err := svc.CreateAppointment(context.Background(), createReq(slotRef))
	require.NoError(t, err)

	_, err = svc.CreateAppointment(context.Background(), createReq(slotRef))
	assert.True(t, utils.IsKind(err, utils.KindConflict))
	assert.Len(t, repo.events, 2, "a rejected booking writes no events")

	_, err = svc.CreateAppointment(context.Background(), createReq("665f1c2ab1e4c0a1d2e3f5ff"))
	assert.True(t, utils.IsKind(err, utils.KindConflict))
}

func TestCreateAppointment_DuplicateNumberIsConflict(t *testing.T) {
	repo := newMemoryRepo(slotRef, otherSlot)
	svc, _ := newTestLifecycle(repo, "FC01052024-01", "FC01052024-01")

	_, err := svc.CreateAppointment(context.Background(), createReq(slotRef))
	require.NoError(t, err)
	_, err = svc.CreateAppointment(context.Background(), createReq(otherSlot))
	assert.True(t, utils.IsKind(err, utils.KindConflict))
	assert.True(t, repo.bookable[otherSlot])
}

func TestCreateAppointment_Validation(t *testing.T) {
	repo := newMemoryRepo(slotRef)
	svc, gen := newTestLifecycle(repo)

	req := createReq(slotRef)
	req.PetID = "pet"
	_, err := svc.CreateAppointment(context.Background(), req)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "petId", appErr.Field)

	req = createReq(slotRef)
	req.SlotDetails.EndTime = "08:00"
	_, err = svc.CreateAppointment(context.Background(), req)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "slotDetails.endTime", appErr.Field)

	gen.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
}

func TestCreateAppointment_NumberFailure(t *testing.T) {
	repo := newMemoryRepo(slotRef)
	gen := &mockNumbers{}
	gen.On("Next", mock.Anything, mock.Anything).Return("", errors.New("counter unavailable"))
	svc := NewDefaultAppointmentLifecycle(repo, gen)

	_, err := svc.CreateAppointment(context.Background(), createReq(slotRef))
	assert.ErrorContains(t, err, "counter unavailable")
	assert.Empty(t, repo.appts)
}

func TestUpdateStatus_HappyPath(t *testing.T) {
	repo := newMemoryRepo(slotRef)
	svc, _ := newTestLifecycle(repo, "FC01052024-01")
	ctx := context.Background()

	appt, err := svc.CreateAppointment(ctx, createReq(slotRef))
	require.NoError(t, err)

	confirmed, err := svc.UpdateStatus(ctx, appt.ID, models.AppointmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, confirmed.AppointmentStatus)

	require.Len(t, repo.events, 3)
	last := repo.events[2]
	assert.Equal(t, models.EventAppointmentStatusChanged, last.EventType)
	assert.Equal(t, models.ReceiverUser, last.Notification.ReceiverType)
	assert.Equal(t, "Your appointment FC01052024-01 has been confirmed.", last.Notification.Message)

	completed, err := svc.UpdateStatus(ctx, appt.ID, models.AppointmentCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, completed.AppointmentStatus)
	assert.False(t, repo.bookable[slotRef], "completing keeps the slot booked")
}

func TestUpdateStatus_TerminalStatesRejectEverything(t *testing.T) {
	repo := newMemoryRepo(slotRef)
	svc, _ := newTestLifecycle(repo, "FC01052024-01")
	ctx := context.Background()

	appt, err := svc.CreateAppointment(ctx, createReq(slotRef))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, appt.ID, models.AppointmentCancelled)
	require.NoError(t, err)
	assert.True(t, repo.bookable[slotRef], "cancelling frees the slot")

	for _, next := range []models.AppointmentStatus{
		models.AppointmentPending, models.AppointmentConfirmed,
		models.AppointmentCompleted, models.AppointmentCancelled,
	} {
		_, err := svc.UpdateStatus(ctx, appt.ID, next)
		assert.True(t, utils.IsKind(err, utils.KindInvalidTransition), string(next))
	}

	stored, err := svc.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, stored.AppointmentStatus)
}

func TestUpdateStatus_SkippingConfirmIsInvalid(t *testing.T) {
	repo := newMemoryRepo(slotRef)
	svc, _ := newTestLifecycle(repo, "FC01052024-01")
	ctx := context.Background()

	appt, err := svc.CreateAppointment(ctx, createReq(slotRef))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, appt.ID, models.AppointmentCompleted)
	assert.True(t, utils.IsKind(err, utils.KindInvalidTransition))
	assert.Len(t, repo.events, 2)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _ := newTestLifecycle(newMemoryRepo())

	_, err := svc.UpdateStatus(context.Background(), "665f1c2ab1e4c0a1d2e3f5aa", models.AppointmentConfirmed)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestQueries(t *testing.T) {
	repo := newMemoryRepo(slotRef, otherSlot)
	svc, _ := newTestLifecycle(repo, "FC01052024-01", "FC01052024-02")
	ctx := context.Background()

	first, err := svc.CreateAppointment(ctx, createReq(slotRef))
	require.NoError(t, err)
	_, err = svc.CreateAppointment(ctx, createReq(otherSlot))
	require.NoError(t, err)

	byNumber, err := svc.GetByBookingNumber(ctx, "FC01052024-01")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byNumber.ID)

	_, err = svc.GetByBookingNumber(ctx, "FC01052024-99")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	byShop, err := svc.ListByShop(ctx, shopRef)
	require.NoError(t, err)
	assert.Len(t, byShop, 2)

	byUser, err := svc.ListByUser(ctx, userRef)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	_, err = svc.ListByUser(ctx, "user-1")
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}
