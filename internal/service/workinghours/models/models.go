package models

import (
	"time"

	"github.com/bobylov03/salon/internal/domain"
)

// Request модели

// SetWorkingHoursRequest запрос на установку рабочих часов на день недели
type SetWorkingHoursRequest struct {
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

// Response модели

// WorkingHoursRuleResponse ответ с правилом графика на день недели
type WorkingHoursRuleResponse struct {
	ID        int64  `json:"id"`
	StaffID   int64  `json:"staffId"`
	DayOfWeek int    `json:"dayOfWeek"` // 0 = понедельник ... 6 = воскресенье
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkingHoursResponse ответ с недельным графиком мастера
type WorkingHoursResponse struct {
	StaffID int64                      `json:"staffId"`
	Rules   []WorkingHoursRuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.WorkingHoursRule) *WorkingHoursRuleResponse {
	if r == nil {
		return nil
	}

	return &WorkingHoursRuleResponse{
		ID:        r.ID,
		StaffID:   r.StaffID,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime.String(),
		EndTime:   r.EndTime.String(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainRules конвертирует список правил в DTO
func FromDomainRules(staffID int64, rules []*domain.WorkingHoursRule) *WorkingHoursResponse {
	resp := &WorkingHoursResponse{
		StaffID: staffID,
		Rules:   make([]WorkingHoursRuleResponse, 0, len(rules)),
	}

	for _, r := range rules {
		resp.Rules = append(resp.Rules, *FromDomainRule(r))
	}

	return resp
}
