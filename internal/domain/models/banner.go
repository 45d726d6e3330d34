package models

// Banner 首页轮播横幅
type Banner struct {
	BaseModel
	Title             string  `gorm:"type:varchar(255);not null" json:"title"`
	Description       string  `gorm:"type:text" json:"description"`
	CTAText           string  `gorm:"column:cta_text;type:varchar(100)" json:"cta_text"`
	CTAURL            string  `gorm:"column:cta_url;type:varchar(500)" json:"cta_url"`
	Icon              string  `gorm:"type:varchar(100)" json:"icon"`
	IsActive          bool    `gorm:"index" json:"is_active"`
	DisplayOrder      int     `gorm:"default:0" json:"order"`
	FraccionamientoID *string `gorm:"type:varchar(64);index" json:"fraccionamiento_id"`
}
