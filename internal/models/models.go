package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Grouping request statuses. pending is the only non-terminal state.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// OrderCounterName is the counters row backing sequential order ids.
const OrderCounterName = "order_id"

type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"-"`
	UID          uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"uid"`
	Email        string     `gorm:"uniqueIndex;not null"           json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `gorm:"not null"                       json:"-"`
	IsActive     bool       `gorm:"default:true"                   json:"is_active"`
	IsStaff      bool       `gorm:"default:false"                  json:"-"`
	CategoryUID  *uuid.UUID `gorm:"type:uuid"                      json:"category,omitempty"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UID == uuid.Nil {
		u.UID = uuid.New()
	}
	return nil
}

type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uid"`
	Title     string    `gorm:"not null"                       json:"title"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.UID == uuid.Nil {
		c.UID = uuid.New()
	}
	return nil
}

// Shop references its category by public uid on purpose: the original
// schema used a non-cascading reference, deleting a category leaves
// shops pointing at a uid that no longer resolves.
type Shop struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uid"`
	Name        string    `gorm:"not null"                       json:"name"`
	UserID      uint      `gorm:"index;not null"                 json:"-"`
	User        User      `gorm:"constraint:OnDelete:CASCADE"    json:"-"`
	CategoryUID uuid.UUID `gorm:"type:uuid;index"                json:"category"`
	Default     bool      `gorm:"default:false"                  json:"default"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.UID == uuid.Nil {
		s.UID = uuid.New()
	}
	return nil
}

type Product struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"-"`
	UID       uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"uid"`
	Title     string          `gorm:"not null"                       json:"title"`
	Slug      string          `gorm:"uniqueIndex;not null"           json:"slug"`
	ShopID    uint            `gorm:"index;not null"                 json:"-"`
	Shop      Shop            `gorm:"constraint:OnDelete:CASCADE"    json:"-"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"    json:"price"`
	Quantity  int             `gorm:"not null;default:0"             json:"quantity"`
	Image     string          `json:"image,omitempty"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.UID == uuid.Nil {
		p.UID = uuid.New()
	}
	return nil
}

// UserGroup is a directed friendship edge between two shops. The
// undirected "friends" view is derived by querying both directions.
type UserGroup struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uid"`
	SenderID   uint      `gorm:"not null;uniqueIndex:idx_sender_receiver" json:"-"`
	Sender     Shop      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	ReceiverID uint      `gorm:"not null;uniqueIndex:idx_sender_receiver" json:"-"`
	Receiver   Shop      `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	Status     string    `gorm:"not null"                       json:"status"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (g *UserGroup) BeforeCreate(tx *gorm.DB) error {
	if g.UID == uuid.Nil {
		g.UID = uuid.New()
	}
	return nil
}

// OrderItem is a cart line. OrderID stays nil until the item is bound
// into an order; binding does not remove the item from the cart.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uid"`
	ShopID    uint      `gorm:"index;not null"                 json:"-"`
	Shop      Shop      `gorm:"constraint:OnDelete:CASCADE"    json:"-"`
	UserID    uint      `gorm:"index;not null"                 json:"-"`
	ProductID uint      `gorm:"not null"                       json:"-"`
	Product   Product   `gorm:"constraint:OnDelete:CASCADE"    json:"-"`
	OrderID   *uint     `gorm:"index"                          json:"-"`
	Quantity  int       `gorm:"not null;default:1"             json:"quantity"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.UID == uuid.Nil {
		i.UID = uuid.New()
	}
	return nil
}

type Order struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"-"`
	UID       uuid.UUID   `gorm:"type:uuid;uniqueIndex;not null" json:"uid"`
	UserID    uint        `gorm:"index;not null"                 json:"-"`
	ShopID    uint        `gorm:"index;not null"                 json:"-"`
	Shop      Shop        `gorm:"constraint:OnDelete:CASCADE"    json:"-"`
	OrderID   int64       `gorm:"uniqueIndex;not null"           json:"order_id"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time   `json:"-"`
	UpdatedAt time.Time   `json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.UID == uuid.Nil {
		o.UID = uuid.New()
	}
	return nil
}

// Total is never persisted, it is recomputed from the bound items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// Counter is a named sequence row. The order counter is bumped with a
// single UPDATE inside the order transaction, the row lock keeps
// concurrent placements from reading the same value.
type Counter struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"uniqueIndex;not null"`
	Value int64  `gorm:"not null"`
}
