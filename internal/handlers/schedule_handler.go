package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiobelle/salon-scheduler/internal/middleware"
	"github.com/studiobelle/salon-scheduler/internal/models"
	"github.com/studiobelle/salon-scheduler/internal/schedule"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type ScheduleDayConfig struct {
	Weekday         int    `json:"weekday" binding:"min=0,max=6"`
	Active          bool   `json:"active"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	LunchStart      string `json:"lunch_start"`
	LunchEnd        string `json:"lunch_end"`
	SlotIntervalMin int    `json:"slot_interval_min"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	staffID := userIDVal.(uint)

	var rows []models.StaffSchedule
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedule"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	staffID := userIDVal.(uint)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// Dias ativos precisam formar um expediente resolvível. Rejeitar
	// aqui evita gravar uma configuração que depois quebraria o
	// cálculo de horários.
	for _, d := range req.Days {
		if !d.Active {
			continue
		}

		_, err := schedule.Resolve(schedule.DayConfig{
			StartTime:       d.StartTime,
			EndTime:         d.EndTime,
			LunchStart:      d.LunchStart,
			LunchEnd:        d.LunchEnd,
			SlotIntervalMin: d.SlotIntervalMin,
		}, nil)
		if err != nil {
			var cfgErr *schedule.ConfigError
			if errors.As(err, &cfgErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "invalid_schedule_config",
					"weekday": d.Weekday,
					"details": cfgErr.Reason,
				})
				return
			}

			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_schedule_config",
				"weekday": d.Weekday,
				"details": err.Error(),
			})
			return
		}
	}

	if err := h.db.Where("staff_id = ?", staffID).Delete(&models.StaffSchedule{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_schedule"})
		return
	}

	var toCreate []models.StaffSchedule
	for _, d := range req.Days {
		row := models.StaffSchedule{
			StaffID:         staffID,
			Weekday:         d.Weekday,
			Active:          d.Active,
			StartTime:       d.StartTime,
			EndTime:         d.EndTime,
			LunchStart:      d.LunchStart,
			LunchEnd:        d.LunchEnd,
			SlotIntervalMin: d.SlotIntervalMin,
		}
		toCreate = append(toCreate, row)
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_schedule"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
