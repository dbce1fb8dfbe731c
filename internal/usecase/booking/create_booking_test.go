package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobelle/salon-scheduler/internal/httperr"
	"github.com/studiobelle/salon-scheduler/internal/models"
	"github.com/studiobelle/salon-scheduler/internal/timezone"
)

func TestCreateBookingSuccess(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	day := futureDay(loc)

	repo := &fakeRepo{
		salon:     testSalon(),
		services:  testService(60),
		schedules: fullWeek("09:00", "18:00", "12:00", "13:00", 60),
	}
	c := newFakeCache()

	uc := NewCreateBooking(repo, nil, c, nil)

	result, err := uc.Execute(context.Background(), CreateBookingInput{
		SalonID:     testSalonID,
		StaffID:     testStaffID,
		ClientName:  "Beatriz",
		ClientPhone: "11999990000",
		ServiceID:   testServiceID,
		Date:        day.Format("2006-01-02"),
		Time:        "15:00",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Booking)

	b := result.Booking

	assert.Equal(t, "pending", b.Status)
	assert.Equal(t, uint(7), b.ClientID)
	assert.Equal(t, 60*time.Minute, b.EndTime.Sub(b.StartTime))
	assert.Empty(t, result.PaymentURL)

	_, err = uuid.Parse(b.Reference)
	assert.NoError(t, err, "reference deve ser um uuid")

	// A validação de conflito precisa ter passado pelo snapshot com lock
	// e o dia do profissional sai do cache.
	assert.True(t, repo.locked)
	assert.Equal(t, []string{day.Format("2006-01-02")}, c.invalidated)
}

func TestCreateBookingStaffConflict(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	day := futureDay(loc)

	repo := &fakeRepo{
		salon:     testSalon(),
		services:  testService(60),
		schedules: fullWeek("09:00", "18:00", "12:00", "13:00", 60),
		staffBookings: []models.Booking{
			bookingOn(day, 14, 30, 60, "Ana", "Corte Masculino", 3, "confirmed"),
		},
	}

	uc := NewCreateBooking(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		SalonID:     testSalonID,
		StaffID:     testStaffID,
		ClientName:  "Beatriz",
		ClientPhone: "11999990000",
		ServiceID:   testServiceID,
		Date:        day.Format("2006-01-02"),
		Time:        "15:00",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Contains(t, httperr.BusinessMessage(err), "Ana")
	assert.Contains(t, httperr.BusinessMessage(err), "14:30 - 15:30")
	assert.Empty(t, repo.created)
}

func TestCreateBookingCancelledDoesNotBlock(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	day := futureDay(loc)

	repo := &fakeRepo{
		salon:     testSalon(),
		services:  testService(60),
		schedules: fullWeek("09:00", "18:00", "12:00", "13:00", 60),
		staffBookings: []models.Booking{
			bookingOn(day, 15, 0, 60, "Ana", "Corte Masculino", 3, "cancelled"),
		},
	}

	uc := NewCreateBooking(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		SalonID:     testSalonID,
		StaffID:     testStaffID,
		ClientName:  "Beatriz",
		ClientPhone: "11999990000",
		ServiceID:   testServiceID,
		Date:        day.Format("2006-01-02"),
		Time:        "15:00",
	})
	assert.NoError(t, err)
}

// Cliente com horário tomado em outro profissional não pode agendar um
// serviço sobreposto, mesmo que a agenda deste profissional esteja
// livre.
func TestCreateBookingClientConflictAcrossStaff(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	day := futureDay(loc)

	other := bookingOn(day, 10, 0, 60, "Ana", "Coloração", 7, "confirmed")
	other.StaffID = 99 // outra profissional

	repo := &fakeRepo{
		salon:          testSalon(),
		services:       testService(60),
		schedules:      fullWeek("09:00", "18:00", "12:00", "13:00", 60),
		clientBookings: []models.Booking{other},
	}

	uc := NewCreateBooking(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		SalonID:     testSalonID,
		StaffID:     testStaffID,
		ClientName:  "Beatriz",
		ClientPhone: "11999990000",
		ServiceID:   testServiceID,
		Date:        day.Format("2006-01-02"),
		Time:        "10:00",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "client_conflict"))
	assert.Contains(t, httperr.BusinessMessage(err), "Ana")
	assert.Empty(t, repo.created)
}

func TestCreateBookingOutsideWorkingHours(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	day := futureDay(loc)

	repo := &fakeRepo{
		salon:     testSalon(),
		services:  testService(60),
		schedules: fullWeek("09:00", "18:00", "12:00", "13:00", 60),
	}

	uc := NewCreateBooking(repo, nil, nil, nil)

	cases := []string{"08:00", "17:30", "12:00"}
	for _, hhmm := range cases {
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			SalonID:     testSalonID,
			StaffID:     testStaffID,
			ClientName:  "Beatriz",
			ClientPhone: "11999990000",
			ServiceID:   testServiceID,
			Date:        day.Format("2006-01-02"),
			Time:        hhmm,
		})
		require.Error(t, err, hhmm)
		assert.True(t, httperr.IsBusiness(err, "outside_working_hours"), hhmm)
	}
}

func TestCreateBookingNonWorkDay(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	day := futureDay(loc)

	repo := &fakeRepo{
		salon:     testSalon(),
		services:  testService(60),
		schedules: map[int]models.StaffSchedule{},
	}

	uc := NewCreateBooking(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		SalonID:     testSalonID,
		StaffID:     testStaffID,
		ClientName:  "Beatriz",
		ClientPhone: "11999990000",
		ServiceID:   testServiceID,
		Date:        day.Format("2006-01-02"),
		Time:        "10:00",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateBookingTooSoon(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	now := time.Now().In(loc)

	repo := &fakeRepo{
		salon:     testSalon(),
		services:  testService(60),
		schedules: fullWeek("00:00", "23:59", "", "", 30),
	}

	uc := NewCreateBooking(repo, nil, nil, nil)

	// Agora + 30min fica dentro da antecedência mínima de 120min.
	at := now.Add(30 * time.Minute)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		SalonID:     testSalonID,
		StaffID:     testStaffID,
		ClientName:  "Beatriz",
		ClientPhone: "11999990000",
		ServiceID:   testServiceID,
		Date:        at.Format("2006-01-02"),
		Time:        at.Format("15:04"),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateBookingInvalidDate(t *testing.T) {
	repo := &fakeRepo{
		salon:     testSalon(),
		services:  testService(60),
		schedules: fullWeek("09:00", "18:00", "", "", 60),
	}

	uc := NewCreateBooking(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		SalonID:     testSalonID,
		StaffID:     testStaffID,
		ClientName:  "Beatriz",
		ClientPhone: "11999990000",
		ServiceID:   testServiceID,
		Date:        "2026-13-40",
		Time:        "10:00",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateBookingDepositPreference(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	day := futureDay(loc)

	salon := testSalon()
	salon.DepositPercent = 50

	repo := &fakeRepo{
		salon:     salon,
		services:  testService(60),
		schedules: fullWeek("09:00", "18:00", "12:00", "13:00", 60),
	}
	deposits := &fakeDeposits{url: "https://mp.example/checkout/abc"}

	uc := NewCreateBooking(repo, nil, nil, deposits)

	result, err := uc.Execute(context.Background(), CreateBookingInput{
		SalonID:     testSalonID,
		StaffID:     testStaffID,
		ClientName:  "Beatriz",
		ClientPhone: "11999990000",
		ServiceID:   testServiceID,
		Date:        day.Format("2006-01-02"),
		Time:        "15:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, deposits.hits)
	assert.Equal(t, "https://mp.example/checkout/abc", result.PaymentURL)
}
