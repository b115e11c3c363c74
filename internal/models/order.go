package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one (certificate, quantity) entry within an order. An order
// never carries two lines for the same certificate; duplicates are merged
// before persistence.
type OrderLine struct {
	OrderID       int64           `json:"-" gorm:"primaryKey;autoIncrement:false"`
	CertificateID int64           `json:"certificateId" gorm:"primaryKey;autoIncrement:false"`
	Certificate   Certificate     `json:"certificate"`
	Quantity      int             `json:"certificateAmount" gorm:"not null"`
	UnitPrice     decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2);not null"` // price at order time
}

// Order is a set of certificate lines placed by a user. Cost is derived from
// the certificate prices at creation time and never recomputed.
type Order struct {
	ID     int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Cost   decimal.Decimal `json:"cost" gorm:"type:decimal(12,2);not null"`
	Date   time.Time       `json:"date" gorm:"autoCreateTime"`
	UserID int64           `json:"userId" gorm:"not null;index"`
	Lines  []OrderLine     `json:"certificates" gorm:"foreignKey:OrderID"`
}
