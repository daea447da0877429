package scheduler

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"furcare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// memorySlotRepo mirrors the visibility rules of the Mongo repository.
type memorySlotRepo struct {
	mu    sync.Mutex
	slots map[string]models.Slot

	// beforeWrite, when set, runs once ahead of the next conditional write. Tests use it to
	// interleave another caller between a read and the write that depends on it.
	beforeWrite func()
}

func newMemorySlotRepo() *memorySlotRepo {
	return &memorySlotRepo{slots: map[string]models.Slot{}}
}

func (r *memorySlotRepo) Create(_ context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[slot.ID] = *slot
	return nil
}

func (r *memorySlotRepo) runBeforeWrite() {
	r.mu.Lock()
	hook := r.beforeWrite
	r.beforeWrite = nil
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (r *memorySlotRepo) Update(_ context.Context, slot *models.Slot, expected models.SlotStatus) error {
	r.runBeforeWrite()
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.slots[slot.ID]
	if !ok || cur.Status != expected {
		return mongo.ErrNoDocuments
	}
	cur.ShopID = slot.ShopID
	cur.StaffID = slot.StaffID
	cur.SlotDate = slot.SlotDate
	cur.StartTime = slot.StartTime
	cur.EndTime = slot.EndTime
	cur.DurationInMinutes = slot.DurationInMinutes
	cur.UpdatedAt = slot.UpdatedAt
	r.slots[slot.ID] = cur
	return nil
}

func (r *memorySlotRepo) SetStatus(_ context.Context, id string, to models.SlotStatus, at time.Time, from ...models.SlotStatus) error {
	r.runBeforeWrite()
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.slots[id]
	if !ok || !slices.Contains(from, cur.Status) {
		return mongo.ErrNoDocuments
	}
	cur.Status = to
	cur.UpdatedAt = at
	if to == models.SlotStatusDeleted {
		cur.DeletedAt = &at
	}
	r.slots[id] = cur
	return nil
}

func (r *memorySlotRepo) FindByID(_ context.Context, id string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok || s.IsDeleted() {
		return nil, nil
	}
	return &s, nil
}

func (r *memorySlotRepo) filter(keep func(models.Slot) bool) []models.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Slot{}
	for _, s := range r.slots {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SlotDate != out[j].SlotDate {
			return out[i].SlotDate < out[j].SlotDate
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

func (r *memorySlotRepo) FindByShop(_ context.Context, shopID string) ([]models.Slot, error) {
	return r.filter(func(s models.Slot) bool { return !s.IsDeleted() && s.ShopID == shopID }), nil
}

func (r *memorySlotRepo) FindByShopAndDateRange(_ context.Context, shopID, from, to string) ([]models.Slot, error) {
	return r.filter(func(s models.Slot) bool {
		return !s.IsDeleted() && s.ShopID == shopID && s.SlotDate >= from && s.SlotDate <= to
	}), nil
}

func (r *memorySlotRepo) FindByDate(_ context.Context, date string) ([]models.Slot, error) {
	return r.filter(func(s models.Slot) bool { return !s.IsDeleted() && s.SlotDate == date }), nil
}

func (r *memorySlotRepo) FindBookedByShop(_ context.Context, shopID string) ([]models.Slot, error) {
	return r.filter(func(s models.Slot) bool { return !s.IsDeleted() && s.ShopID == shopID && s.IsBooked }), nil
}

func (r *memorySlotRepo) FindActiveByStaffAndDate(_ context.Context, staffID, date string) ([]models.Slot, error) {
	return r.filter(func(s models.Slot) bool { return s.IsActive() && s.StaffID == staffID && s.SlotDate == date }), nil
}

func (r *memorySlotRepo) FindAvailableByStaffAndDate(_ context.Context, staffID, date string) ([]models.Slot, error) {
	return r.filter(func(s models.Slot) bool {
		return s.IsActive() && !s.IsBooked && s.StaffID == staffID && s.SlotDate == date
	}), nil
}

func (r *memorySlotRepo) EnsureIndexes(context.Context) error { return nil }

func (r *memorySlotRepo) markBooked(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.slots[id]
	s.IsBooked = true
	r.slots[id] = s
}
