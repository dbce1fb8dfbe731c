package booking

import (
	"context"
	"time"

	"github.com/studiobelle/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// Durações distintas dos serviços ativos do profissional,
	// usadas pela regra de granularidade automática.
	ListServiceDurations(
		ctx context.Context,
		staffID uint,
	) ([]int, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Schedule --------
	GetStaffSchedule(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.StaffSchedule, error)

	// -------- Booking (read) --------
	ListStaffBookingsForDay(
		ctx context.Context,
		staffID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Booking, error)

	// Igual a ListStaffBookingsForDay, mas com lock de escrita nas
	// linhas lidas. Só faz sentido dentro de Transact.
	LockStaffBookingsForDay(
		ctx context.Context,
		staffID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Booking, error)

	ListClientBookingsForDay(
		ctx context.Context,
		clientID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Booking, error)

	ListBookingsForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Booking (write) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBookingForStaff(
		ctx context.Context,
		bookingID uint,
		staffID uint,
	) (*models.Booking, error)

	GetBookingByReference(
		ctx context.Context,
		salonID uint,
		reference string,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// Transact executa fn em uma transação; o Repository recebido só
	// enxerga a transação. Validação de conflito e insert precisam
	// acontecer como unidade atômica.
	Transact(
		ctx context.Context,
		fn func(repo Repository) error,
	) error
}
