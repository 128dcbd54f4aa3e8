package ds

// 5. Таблица ценовых порогов (скидки за объем)
type PricingTier struct {
	ID              uint    `gorm:"primaryKey"`
	ProductID       uint    `gorm:"not null;index;uniqueIndex:idx_product_tier"`
	MinPeriods      int     `gorm:"type:int;not null;uniqueIndex:idx_product_tier"` // порог в периодах тарификации
	DiscountPercent float64 `gorm:"type:decimal(5,2);not null"`                     // скидка 0-100

	Product Product `gorm:"foreignKey:ProductID"`
}
