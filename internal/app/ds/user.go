package ds

// 2. Таблица пользователей (учетные записи в рамках магазина)
type User struct {
	ID       uint   `gorm:"primaryKey"`
	StoreID  uint   `gorm:"not null;index"`
	Login    string `gorm:"type:varchar(50);unique;not null"`
	Password string `gorm:"type:varchar(255);not null"`
	Role     int    `gorm:"type:int;default:0;not null"` // 0 customer, 1 staff, 2 owner
	Email    string `gorm:"type:varchar(100)"`
	FullName string `gorm:"type:varchar(100)"`

	Store Store `gorm:"foreignKey:StoreID"`
}
