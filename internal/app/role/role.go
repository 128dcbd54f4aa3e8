package role

// Роли пользователей в рамках магазина
type Role int

const (
	Customer Role = iota // клиент витрины
	Staff                // сотрудник магазина
	Owner                // владелец магазина
)

func (r Role) String() string {
	switch r {
	case Customer:
		return "customer"
	case Staff:
		return "staff"
	case Owner:
		return "owner"
	}
	return "unknown"
}
