package domain

import "time"

type Order struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BuyerID   uint      `json:"buyerId" gorm:"not null;index"`
	OrderDate time.Time `json:"orderDate" gorm:"type:date;not null"`
	Closed    bool      `json:"closed" gorm:"not null;default:false"`
}

// OrderItem carries its own surrogate key so the same flower can
// appear on an order more than once; quantities are never merged.
type OrderItem struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	OrderID  uint `json:"orderId" gorm:"not null;index"`
	FlowerID uint `json:"flowerId" gorm:"not null"`
	Quantity int  `json:"quantity" gorm:"not null"`
}
