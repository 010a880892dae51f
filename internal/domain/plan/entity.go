package plan

import "time"

// ID identifies a listing tier.
type ID string

const (
	Bronze ID = "bronze"
	Silver ID = "silver"
	Gold   ID = "gold"
)

// Plan is a yearly listing tier. Prices are in pence.
type Plan struct {
	ID           ID        `gorm:"column:id;primaryKey;size:16" json:"id"`
	Name         string    `gorm:"column:name" json:"name"`
	PriceYearly  int64     `gorm:"column:price_yearly" json:"priceYearly"`
	PriceMonthly int64     `gorm:"column:price_monthly" json:"priceMonthly"`
	Features     []string  `gorm:"column:features;serializer:json" json:"features"`
	SortOrder    int       `gorm:"column:sort_order" json:"-"`
	IsActive     bool      `gorm:"column:is_active" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"-"`
}

func (Plan) TableName() string { return "plans" }

// Purchase is a paid plan slot. It is consumed by exactly one property.
type Purchase struct {
	ID              string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	UserID          int64      `gorm:"column:user_id;index" json:"userId"`
	PlanID          ID         `gorm:"column:plan_id;size:16" json:"planId"`
	Amount          int64      `gorm:"column:amount" json:"amount"`
	PaymentIntentID string     `gorm:"column:payment_intent_id" json:"paymentIntentId,omitempty"`
	Used            bool       `gorm:"column:used;index" json:"used"`
	PropertyID      *string    `gorm:"column:property_id;size:36" json:"propertyId,omitempty"`
	UsedAt          *time.Time `gorm:"column:used_at" json:"usedAt,omitempty"`
	PurchasedAt     time.Time  `gorm:"column:purchased_at" json:"purchasedAt"`
	ExpiresAt       time.Time  `gorm:"column:expires_at" json:"expiresAt"`
}

func (Purchase) TableName() string { return "plan_purchases" }

func (p *Purchase) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// Catalog is the seeded tier list.
func Catalog() []*Plan {
	return []*Plan{
		{ID: Bronze, Name: "Bronze Listing", PriceYearly: 9999, PriceMonthly: 999, SortOrder: 1, IsActive: true, Features: []string{
			"Full property listing page", "Unlimited direct enquiries", "iCal calendar sync", "Direct website link",
		}},
		{ID: Silver, Name: "Silver Listing", PriceYearly: 14999, PriceMonthly: 1499, SortOrder: 2, IsActive: true, Features: []string{
			"Everything in Bronze", "Professional page build", "Social media promotion", "Priority support",
		}},
		{ID: Gold, Name: "Gold Listing", PriceYearly: 19999, PriceMonthly: 1999, SortOrder: 3, IsActive: true, Features: []string{
			"Everything in Silver", "Themed blog feature", "Homepage featured placement", "Specialist page",
		}},
	}
}
