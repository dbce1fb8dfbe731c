package models

import "time"

// StaffSchedule é o expediente de um profissional em um dia da semana.
// Horários em "HH:MM"; SlotIntervalMin zero deixa a granularidade por
// conta da regra de serviço único.
type StaffSchedule struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index:idx_staff_weekday" json:"staff_id"`

	Weekday int `gorm:"index:idx_staff_weekday" json:"weekday"`

	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	LunchStart      string `json:"lunch_start"`
	LunchEnd        string `json:"lunch_end"`
	SlotIntervalMin int    `json:"slot_interval_min"`
	Active          bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
