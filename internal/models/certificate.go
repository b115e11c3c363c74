package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Certificate represents a gift certificate in the catalog.
// Deleted certificates are kept as rows with IsDeleted set; they never show
// up in listings but stay reachable by id.
type Certificate struct {
	ID             int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string          `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	Description    string          `json:"description" gorm:"type:varchar(1000);not null"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Duration       int             `json:"duration" gorm:"not null"` // validity in days
	CreateDate     time.Time       `json:"createDate" gorm:"autoCreateTime"`
	LastUpdateDate time.Time       `json:"lastUpdateDate" gorm:"autoUpdateTime"`
	IsDeleted      bool            `json:"-" gorm:"not null;default:false;index"`
	Tags           []Tag           `json:"tags" gorm:"many2many:certificate_tags"`
}
