package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/studiobelle/salon-scheduler/internal/domain/booking"
	"github.com/studiobelle/salon-scheduler/internal/models"
)

// fakeRepo guarda tudo em memória. Transact apenas executa fn sobre o
// próprio fake; o lock vira uma flag para os testes conferirem que o
// caminho de escrita passou pelo snapshot com lock.
type fakeRepo struct {
	salon          *models.Salon
	services       map[uint]*models.Service
	durations      []int
	schedules      map[int]models.StaffSchedule
	staffBookings  []models.Booking
	clientBookings []models.Booking

	created []*models.Booking
	locked  bool
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.salon, nil
}

func (f *fakeRepo) GetSalonBySlug(ctx context.Context, slug string) (*models.Salon, error) {
	if f.salon == nil || f.salon.Slug != slug {
		return nil, gorm.ErrRecordNotFound
	}
	return f.salon, nil
}

func (f *fakeRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok || svc.SalonID != salonID {
		return nil, gorm.ErrRecordNotFound
	}
	return svc, nil
}

func (f *fakeRepo) ListServiceDurations(ctx context.Context, staffID uint) ([]int, error) {
	return f.durations, nil
}

func (f *fakeRepo) GetOrCreateClient(ctx context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 7, SalonID: salonID, Name: name, Phone: phone, Email: email}, nil
}

func (f *fakeRepo) GetStaffSchedule(ctx context.Context, staffID uint, weekday int) (*models.StaffSchedule, error) {
	row, ok := f.schedules[weekday]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (f *fakeRepo) ListStaffBookingsForDay(ctx context.Context, staffID uint, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	return f.staffBookings, nil
}

func (f *fakeRepo) LockStaffBookingsForDay(ctx context.Context, staffID uint, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	f.locked = true
	return f.staffBookings, nil
}

func (f *fakeRepo) ListClientBookingsForDay(ctx context.Context, clientID uint, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	return f.clientBookings, nil
}

func (f *fakeRepo) ListBookingsForPeriod(ctx context.Context, staffID uint, start, end time.Time) ([]models.Booking, error) {
	return f.staffBookings, nil
}

func (f *fakeRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	b.ID = uint(len(f.created) + 1)
	f.created = append(f.created, b)
	return nil
}

func (f *fakeRepo) GetBookingForStaff(ctx context.Context, bookingID, staffID uint) (*models.Booking, error) {
	for _, b := range f.created {
		if b.ID == bookingID && b.StaffID == staffID {
			return b, nil
		}
	}
	for i := range f.staffBookings {
		if f.staffBookings[i].ID == bookingID && f.staffBookings[i].StaffID == staffID {
			return &f.staffBookings[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetBookingByReference(ctx context.Context, salonID uint, reference string) (*models.Booking, error) {
	for _, b := range f.created {
		if b.SalonID == salonID && b.Reference == reference {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return nil
}

func (f *fakeRepo) Transact(ctx context.Context, fn func(repo domain.Repository) error) error {
	return fn(f)
}

// --------------------------------------------------
// Cache fake
// --------------------------------------------------

type fakeCache struct {
	data        map[string][]domain.TimeSlot
	sets        int
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]domain.TimeSlot{}}
}

func (c *fakeCache) key(staffID, serviceID uint, date string) string {
	return date
}

func (c *fakeCache) Get(ctx context.Context, staffID, serviceID uint, date string) ([]domain.TimeSlot, bool) {
	slots, ok := c.data[c.key(staffID, serviceID, date)]
	return slots, ok
}

func (c *fakeCache) Set(ctx context.Context, staffID, serviceID uint, date string, slots []domain.TimeSlot) {
	c.sets++
	c.data[c.key(staffID, serviceID, date)] = slots
}

func (c *fakeCache) InvalidateStaffDay(ctx context.Context, staffID uint, date string) {
	c.invalidated = append(c.invalidated, date)
	delete(c.data, date)
}

// --------------------------------------------------
// Gateway de sinal fake
// --------------------------------------------------

type fakeDeposits struct {
	url  string
	err  error
	hits int
}

func (d *fakeDeposits) CreateDepositPreference(
	ctx context.Context,
	salon *models.Salon,
	service *models.Service,
	b *models.Booking,
) (string, error) {
	d.hits++
	return d.url, d.err
}
