package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/studiobelle/salon-scheduler/internal/audit"
	domain "github.com/studiobelle/salon-scheduler/internal/domain/booking"
	"github.com/studiobelle/salon-scheduler/internal/httperr"
	"github.com/studiobelle/salon-scheduler/internal/metrics"
	"github.com/studiobelle/salon-scheduler/internal/models"
	"github.com/studiobelle/salon-scheduler/internal/schedule"
	"github.com/studiobelle/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	SalonID uint
	StaffID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

type CreateBookingResult struct {
	Booking *models.Booking

	// Link de checkout do sinal, quando o salão exige depósito.
	PaymentURL string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	cache    AvailabilityCache
	deposits DepositGateway
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache AvailabilityCache,
	deposits DepositGateway,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    audit,
		cache:    cache,
		deposits: deposits,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute revalida o candidato contra uma leitura fresca da agenda e o
// insere na mesma transação. A lista de horários mostrada antes ao
// cliente não reserva nada: outro agendamento pode ter entrado no meio
// tempo, então a checagem de conflito acontece aqui, com lock, e vale
// ela.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := salon.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(salon.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if service.StaffID != 0 && service.StaffID != in.StaffID {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	ws, err := resolveDaySchedule(ctx, uc.repo, in.StaffID, int(start.Weekday()))
	if err != nil {
		var cfgErr *schedule.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, httperr.ErrBusinessMsg("invalid_schedule_config", cfgErr.Reason)
		}
		return nil, err
	}
	if ws == nil {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	startMin := start.Hour()*60 + start.Minute()
	end := start.Add(time.Duration(service.DurationMin) * time.Minute)
	dayStart, dayEnd := dayWindow(start)

	var created models.Booking

	err = uc.repo.Transact(ctx, func(txRepo domain.Repository) error {

		// Snapshot fresco e com lock da agenda do profissional.
		live, err := txRepo.LockStaffBookingsForDay(ctx, in.StaffID, dayStart, dayEnd)
		if err != nil {
			return err
		}

		if c := schedule.CheckStaffConflict(*ws, startMin, service.DurationMin, engineBookings(live, loc)); c != nil {
			metrics.BookingConflicts.WithLabelValues("staff_conflict").Inc()

			if c.StaffName == "" {
				return httperr.ErrBusiness("outside_working_hours")
			}

			return httperr.ErrBusinessMsg(
				"time_conflict",
				fmt.Sprintf(
					"%s já possui %s das %s.",
					c.StaffName, c.ServiceName, c.TimeRange(),
				),
			)
		}

		// O mesmo cliente não pode segurar dois serviços sobrepostos no
		// dia, com qualquer profissional.
		clientDay, err := txRepo.ListClientBookingsForDay(ctx, client.ID, dayStart, dayEnd)
		if err != nil {
			return err
		}

		if c := schedule.CheckClientConflict(startMin, service.DurationMin, engineBookings(clientDay, loc)); c != nil {
			metrics.BookingConflicts.WithLabelValues("client_conflict").Inc()

			return httperr.ErrBusinessMsg(
				"client_conflict",
				fmt.Sprintf(
					"Cliente já tem %s com %s das %s.",
					c.ServiceName, c.StaffName, c.TimeRange(),
				),
			)
		}

		b := models.Booking{
			Reference: uuid.NewString(),
			SalonID:   in.SalonID,
			StaffID:   in.StaffID,
			ClientID:  client.ID,
			ServiceID: service.ID,
			StartTime: start,
			EndTime:   end,
			Status:    string(domain.InitialStatus()),
			Notes:     in.Notes,
		}

		if err := txRepo.CreateBooking(ctx, &b); err != nil {
			return err
		}

		created = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	metrics.BookingsCreated.Inc()

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			SalonID:  in.SalonID,
			UserID:   &in.StaffID,
			Action:   "booking_created",
			Entity:   "booking",
			EntityID: &created.ID,
		})
	}

	if uc.cache != nil {
		uc.cache.InvalidateStaffDay(ctx, in.StaffID, in.Date)
	}

	result := &CreateBookingResult{Booking: &created}

	if uc.deposits != nil && salon.DepositPercent > 0 {
		url, err := uc.deposits.CreateDepositPreference(ctx, salon, service, &created)
		if err != nil {
			// Sinal é acessório: o agendamento já existe, só logamos.
			log.Println("deposit preference error:", err)
		} else {
			result.PaymentURL = url
		}
	}

	return result, nil
}
