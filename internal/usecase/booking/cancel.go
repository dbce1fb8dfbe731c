package booking

import (
	"context"

	"github.com/studiobelle/salon-scheduler/internal/audit"
	domain "github.com/studiobelle/salon-scheduler/internal/domain/booking"
	"github.com/studiobelle/salon-scheduler/internal/httperr"
	"github.com/studiobelle/salon-scheduler/internal/models"
	"github.com/studiobelle/salon-scheduler/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache AvailabilityCache
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache AvailabilityCache,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	salonID uint,
	staffID uint,
	bookingID uint,
) (*models.Booking, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForStaff(ctx, bookingID, staffID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(salon.Timezone)
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			SalonID:  salonID,
			UserID:   &staffID,
			Action:   "booking_cancelled",
			Entity:   "booking",
			EntityID: &b.ID,
		})
	}

	// O horário voltou a ficar livre: derruba o cache do dia.
	if uc.cache != nil {
		loc := timezone.Location(salon.Timezone)
		uc.cache.InvalidateStaffDay(ctx, staffID, b.StartTime.In(loc).Format("2006-01-02"))
	}

	return b, nil
}
