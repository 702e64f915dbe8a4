package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketTier is one price class of an event. SoldQuantity never exceeds
// TotalQuantity; the check constraint backs the conditional increment.
type TicketTier struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	EventID       uint            `gorm:"not null;index" json:"event_id"`
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	MaxPerUser    int             `gorm:"not null;default:1" json:"max_per_user"`
	TotalQuantity int             `gorm:"not null" json:"total_quantity"`
	SoldQuantity  int             `gorm:"not null;default:0;check:chk_ticket_tiers_sold,sold_quantity >= 0 AND sold_quantity <= total_quantity" json:"sold_quantity"`
	SalesStart    time.Time       `gorm:"not null" json:"sales_start"`
	SalesEnd      time.Time       `gorm:"not null" json:"sales_end"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (t *TicketTier) Available() int {
	return t.TotalQuantity - t.SoldQuantity
}

// OnSale reports whether now falls inside [SalesStart, SalesEnd].
func (t *TicketTier) OnSale(now time.Time) bool {
	return !now.Before(t.SalesStart) && !now.After(t.SalesEnd)
}
