package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IncidentSeverity 事件严重程度
type IncidentSeverity string

const (
	SeverityLow      IncidentSeverity = "low"
	SeverityMedium   IncidentSeverity = "medium"
	SeverityHigh     IncidentSeverity = "high"
	SeverityCritical IncidentSeverity = "critical"
)

// IncidentStatus 事件处理状态
type IncidentStatus string

const (
	IncidentReported   IncidentStatus = "reported"
	IncidentInProgress IncidentStatus = "in_progress"
	IncidentResolved   IncidentStatus = "resolved"
	IncidentClosed     IncidentStatus = "closed"
)

// ValidSeverity 判断严重程度是否合法
func ValidSeverity(s string) bool {
	switch IncidentSeverity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ValidIncidentStatus 判断事件状态是否合法
func ValidIncidentStatus(s string) bool {
	switch IncidentStatus(s) {
	case IncidentReported, IncidentInProgress, IncidentResolved, IncidentClosed:
		return true
	}
	return false
}

// Incident 门卫或住户上报的安全事件
type Incident struct {
	ID                string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	IncidentType      string     `gorm:"type:varchar(100);not null;index" json:"incident_type"`
	Description       string     `gorm:"type:text" json:"description"`
	Location          string     `gorm:"type:varchar(255)" json:"location"`
	Severity          string     `gorm:"type:varchar(20);default:'medium'" json:"severity"`
	Status            string     `gorm:"type:varchar(20);default:'reported'" json:"status"`
	ReportedBy        *string    `gorm:"type:varchar(36)" json:"reported_by"`
	ReportedAt        time.Time  `gorm:"index" json:"reported_at"`
	ResolvedAt        *time.Time `json:"resolved_at"`
	ResolutionNotes   *string    `gorm:"type:text" json:"resolution_notes"`
	FraccionamientoID *string    `gorm:"type:varchar(64);index" json:"fraccionamiento_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// BeforeCreate 生成 UUID 主键并补全上报时间
func (i *Incident) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.ReportedAt.IsZero() {
		i.ReportedAt = time.Now()
	}
	return nil
}
