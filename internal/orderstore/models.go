package orderstore

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderRecord is the persisted order row. TotalAmount is always computed
// server-side from the item rows; client-sent totals are ignored.
type OrderRecord struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	ClientName  string          `gorm:"not null"`
	ClientPhone string          `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Items       []ItemRecord    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OrderRecord) TableName() string { return "orders" }

type ItemRecord struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     int64           `gorm:"index;not null"`
	ProductID   string          `gorm:"not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ItemRecord) TableName() string { return "order_items" }

// Migrate creates or updates the order tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrderRecord{}, &ItemRecord{})
}

func (o *OrderRecord) computeTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	o.TotalAmount = total
}
