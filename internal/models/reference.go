package models

// Reference tables seeded at startup and treated as read-only by the
// application: units of measurement, payment methods, order types and
// order states.

type UnitOfMeasurement struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (UnitOfMeasurement) TableName() string {
	return "units_of_measurement"
}

type PaymentMethod struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

type OrderType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (OrderType) TableName() string {
	return "order_types"
}

type StateType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (StateType) TableName() string {
	return "state_types"
}

// Seeded reference ids. Seeding uses FirstOrCreate so these stay stable
// across restarts.
const (
	PaymentMethodCash  uint = 1
	PaymentMethodCard  uint = 2
	PaymentMethodSinpe uint = 3

	OrderTypeTakeout uint = 1
	OrderTypeDineIn  uint = 2

	StatePending   uint = 1
	StateFinalized uint = 2
)
