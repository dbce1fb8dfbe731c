package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/studiobelle/salon-scheduler/internal/domain/booking"
	"github.com/studiobelle/salon-scheduler/internal/httperr"
	infraRepo "github.com/studiobelle/salon-scheduler/internal/infra/repository"
	"github.com/studiobelle/salon-scheduler/internal/models"
	ucBooking "github.com/studiobelle/salon-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucBooking.GetAvailability
	createUC       *ucBooking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucBooking.GetAvailability,
	createUC *ucBooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	StaffID     uint   `json:"staff_id"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return nil, false
	}

	return &salon, true
}

// resolveStaff escolhe o profissional do agendamento público. Sem
// staff_id explícito, cai no dono do salão.
func (h *PublicHandler) resolveStaff(salonID uint, staffID uint) (*models.User, error) {
	var staff models.User

	q := h.db.Where("salon_id = ?", salonID)
	if staffID != 0 {
		q = q.Where("id = ?", staffID)
	} else {
		q = q.Where("role = ?", "owner")
	}

	if err := q.First(&staff).Error; err != nil {
		return nil, err
	}

	return &staff, nil
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("salon_id = ? AND active = true", salon.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":    salon,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	var staffID uint
	if s := c.Query("staff_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
			return
		}
		staffID = uint(v)
	}

	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	staff, err := h.resolveStaff(salon.ID, staffID)
	if err != nil {
		httperr.BadRequest(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			SalonID:   salon.ID,
			StaffID:   staff.ID,
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
			return
		}
		if httperr.IsBusiness(err, "invalid_schedule_config") {
			httperr.BadRequest(c, "invalid_schedule_config", httperr.BusinessMessage(err))
			return
		}

		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING (PUBLIC → REUSA PRIVATE)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	staff, err := h.resolveStaff(salon.ID, req.StaffID)
	if err != nil {
		httperr.BadRequest(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	result, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			SalonID:     salon.ID,
			StaffID:     staff.ID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			Time:        req.Time,
			Notes:       req.Notes,
		},
	)

	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	b := result.Booking

	resp := gin.H{
		"reference":  b.Reference,
		"status":     b.Status,
		"start_time": b.StartTime,
		"end_time":   b.EndTime,
	}
	if result.PaymentURL != "" {
		resp["payment_url"] = result.PaymentURL
	}

	c.JSON(http.StatusCreated, resp)
}

////////////////////////////////////////////////////////
// BOOKING LOOKUP (POR REFERÊNCIA)
////////////////////////////////////////////////////////

func (h *PublicHandler) GetBooking(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	reference := c.Param("reference")

	repo := infraRepo.NewBookingGormRepository(h.db)

	b, err := repo.GetBookingByReference(c.Request.Context(), salon.ID, reference)
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference":  b.Reference,
		"status":     b.Status,
		"start_time": b.StartTime,
		"end_time":   b.EndTime,
		"staff":      b.Staff.Name,
		"service":    b.Service.Name,
		"notes":      b.Notes,
	})
}
