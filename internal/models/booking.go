package models

import "time"

// Booking é um pedido de agendamento enviado pelo formulário público.
// Date usa o layout yyyy-MM-dd e TimeSlot o layout H:MM ("9:00", "16:30").
type Booking struct {
	Seq uint `gorm:"primaryKey;autoIncrement" json:"-"`

	ID      string `gorm:"size:36;uniqueIndex;not null" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100;not null" json:"email"`
	Phone   string `gorm:"size:20;not null" json:"phone"`
	Message string `gorm:"type:text" json:"message"`

	Date     string `gorm:"size:10;index;not null" json:"date"`
	TimeSlot string `gorm:"size:5;not null" json:"time_slot"`

	CreatedAt time.Time `json:"created_at"`
}
