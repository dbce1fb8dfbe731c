package booking

import (
	"context"
	"errors"

	domain "github.com/studiobelle/salon-scheduler/internal/domain/booking"
	"github.com/studiobelle/salon-scheduler/internal/httperr"
	"github.com/studiobelle/salon-scheduler/internal/metrics"
	"github.com/studiobelle/salon-scheduler/internal/schedule"
)

type GetAvailability struct {
	repo  domain.Repository
	cache AvailabilityCache
}

func NewGetAvailability(repo domain.Repository, cache AvailabilityCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache}
}

// Execute calcula os horários livres do profissional para o serviço na
// data: expediente → períodos ocupados → intervalos livres → candidatos.
// A lista é consultiva; a validação que vale é a da escrita.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	metrics.AvailabilityRequests.Inc()

	dateKey := in.Date.Format("2006-01-02")

	if uc.cache != nil {
		if slots, ok := uc.cache.Get(ctx, in.StaffID, in.ServiceID, dateKey); ok {
			metrics.AvailabilityCacheHits.Inc()
			return slots, nil
		}
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	ws, err := resolveDaySchedule(ctx, uc.repo, in.StaffID, int(in.Date.Weekday()))
	if err != nil {
		var cfgErr *schedule.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, httperr.ErrBusinessMsg("invalid_schedule_config", cfgErr.Reason)
		}
		return nil, err
	}
	if ws == nil {
		// Profissional não atende neste dia da semana.
		return []domain.TimeSlot{}, nil
	}

	dayStart, dayEnd := dayWindow(in.Date)

	bookings, err := uc.repo.ListStaffBookingsForDay(ctx, in.StaffID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	existing := engineBookings(bookings, in.Date.Location())
	occupied := schedule.BuildOccupied(*ws, existing)
	gaps := schedule.FreeGaps(*ws, occupied)
	candidates := schedule.GenerateSlots(gaps, occupied, service.DurationMin, ws.SlotInterval, *ws)

	slots := make([]domain.TimeSlot, 0, len(candidates))
	for _, c := range candidates {
		slots = append(slots, domain.TimeSlot{
			Start: schedule.FormatClock(c.Start),
			End:   schedule.FormatClock(c.End),
		})
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, in.StaffID, in.ServiceID, dateKey, slots)
	}

	return slots, nil
}
