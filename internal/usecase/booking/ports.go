package booking

import (
	"context"
	"time"

	domain "github.com/studiobelle/salon-scheduler/internal/domain/booking"
	"github.com/studiobelle/salon-scheduler/internal/models"
	"github.com/studiobelle/salon-scheduler/internal/schedule"
)

// AvailabilityCache é o cache consultivo de horários. A implementação
// redis vive em internal/cache; nos testes entra um fake ou nil.
type AvailabilityCache interface {
	Get(ctx context.Context, staffID, serviceID uint, date string) ([]domain.TimeSlot, bool)
	Set(ctx context.Context, staffID, serviceID uint, date string, slots []domain.TimeSlot)
	InvalidateStaffDay(ctx context.Context, staffID uint, date string)
}

// DepositGateway cria a cobrança do sinal quando o salão exige.
type DepositGateway interface {
	CreateDepositPreference(
		ctx context.Context,
		salon *models.Salon,
		service *models.Service,
		b *models.Booking,
	) (string, error)
}

// dayWindow delimita o dia local [00:00, 24:00) da data informada.
func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}

// engineBookings converte agendamentos persistidos para o recorte que o
// motor de disponibilidade entende: minutos do dia no fuso do salão.
func engineBookings(items []models.Booking, loc *time.Location) []schedule.ExistingBooking {
	out := make([]schedule.ExistingBooking, 0, len(items))

	for _, b := range items {
		start := b.StartTime.In(loc)

		out = append(out, schedule.ExistingBooking{
			StaffName:   b.Staff.Name,
			ServiceName: b.Service.Name,
			ClientID:    b.ClientID,
			Start:       start.Hour()*60 + start.Minute(),
			Duration:    int(b.EndTime.Sub(b.StartTime).Minutes()),
			Status:      schedule.BookingStatus(b.Status),
		})
	}

	return out
}

// resolveDaySchedule monta o expediente efetivo do profissional no dia.
// Retorna (nil, nil) quando o profissional não atende no dia: lista de
// horários vazia, não é erro.
func resolveDaySchedule(
	ctx context.Context,
	repo domain.Repository,
	staffID uint,
	weekday int,
) (*schedule.WorkSchedule, error) {

	sched, err := repo.GetStaffSchedule(ctx, staffID, weekday)
	if err != nil {
		return nil, nil
	}

	if !sched.Active || sched.StartTime == "" || sched.EndTime == "" {
		return nil, nil
	}

	durations, err := repo.ListServiceDurations(ctx, staffID)
	if err != nil {
		return nil, err
	}

	ws, err := schedule.Resolve(schedule.DayConfig{
		StartTime:       sched.StartTime,
		EndTime:         sched.EndTime,
		LunchStart:      sched.LunchStart,
		LunchEnd:        sched.LunchEnd,
		SlotIntervalMin: sched.SlotIntervalMin,
	}, durations)
	if err != nil {
		return nil, err
	}

	return &ws, nil
}
