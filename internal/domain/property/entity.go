package property

import (
	"time"

	"groupstays/internal/domain/listing"
)

// Status is the moderation state of a listing.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending_approval"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Filter values accepted by the owner and admin list endpoints.
const (
	FilterAll      = "all"
	FilterPending  = "pending"
	FilterApproved = "approved"
	FilterRejected = "rejected"
	FilterDraft    = "draft"
)

// Property is the stored listing. JSON names match listing.Payload so a
// record can be read back as a payload.
type Property struct {
	ID      string `gorm:"column:id;primaryKey;size:36" json:"id"`
	OwnerID int64  `gorm:"column:owner_id;index" json:"ownerId"`

	Title          string   `gorm:"column:title" json:"title"`
	PropertyType   string   `gorm:"column:property_type" json:"propertyType"`
	Slug           string   `gorm:"column:slug;uniqueIndex;size:200" json:"slug"`
	Location       string   `gorm:"column:location" json:"location"`
	Region         string   `gorm:"column:region" json:"region"`
	Address        string   `gorm:"column:address" json:"address"`
	Town           string   `gorm:"column:town" json:"town"`
	County         string   `gorm:"column:county" json:"county"`
	Postcode       string   `gorm:"column:postcode" json:"postcode"`
	Latitude       *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude      *float64 `gorm:"column:longitude" json:"longitude"`
	SleepsMin      int      `gorm:"column:sleeps_min" json:"sleepsMin"`
	SleepsMax      int      `gorm:"column:sleeps_max" json:"sleepsMax"`
	Bedrooms       int      `gorm:"column:bedrooms" json:"bedrooms"`
	Bathrooms      int      `gorm:"column:bathrooms" json:"bathrooms"`
	DiningCapacity int      `gorm:"column:dining_capacity" json:"diningCapacity"`
	BestFor        string   `gorm:"column:best_for" json:"bestFor"`

	PriceFromMidweek float64  `gorm:"column:price_from_midweek" json:"priceFromMidweek"`
	PriceFromWeekend float64  `gorm:"column:price_from_weekend" json:"priceFromWeekend"`
	WeekendPrice     *float64 `gorm:"column:weekend_price" json:"weekendPrice"`
	CleaningFee      *float64 `gorm:"column:cleaning_fee" json:"cleaningFee"`
	SecurityDeposit  *float64 `gorm:"column:security_deposit" json:"securityDeposit"`

	ShortDescription   string `gorm:"column:short_description" json:"shortDescription"`
	Description        string `gorm:"column:description" json:"description"`
	Amenities          string `gorm:"column:amenities" json:"amenities"`
	HensAllowed        int    `gorm:"column:hens_allowed" json:"hensAllowed"`
	CorporateAllowed   int    `gorm:"column:corporate_allowed" json:"corporateAllowed"`
	WeddingsAllowed    int    `gorm:"column:weddings_allowed" json:"weddingsAllowed"`
	HouseRules         string `gorm:"column:house_rules" json:"houseRules"`
	NearbyAttractions  string `gorm:"column:nearby_attractions" json:"nearbyAttractions"`
	CheckInOut         string `gorm:"column:check_in_out" json:"checkInOut"`
	MinimumStay        int    `gorm:"column:minimum_stay" json:"minimumStay"`
	CancellationPolicy string `gorm:"column:cancellation_policy" json:"cancellationPolicy"`

	HeroImage       string `gorm:"column:hero_image" json:"heroImage"`
	Images          string `gorm:"column:images" json:"images"`
	VideoType       string `gorm:"column:video_type" json:"videoType"`
	HeroVideo       string `gorm:"column:hero_video" json:"heroVideo"`
	MetaTitle       string `gorm:"column:meta_title" json:"metaTitle"`
	MetaDescription string `gorm:"column:meta_description" json:"metaDescription"`

	IsPublished     int        `gorm:"column:is_published" json:"isPublished"`
	Status          Status     `gorm:"column:status;index;size:32" json:"status"`
	RejectionReason string     `gorm:"column:rejection_reason" json:"rejectionReason,omitempty"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at" json:"reviewedAt,omitempty"`

	PlanID          string     `gorm:"column:plan_id" json:"planId,omitempty"`
	PaymentStatus   string     `gorm:"column:payment_status" json:"paymentStatus,omitempty"`
	PaymentIntentID string     `gorm:"column:payment_intent_id" json:"paymentIntentId,omitempty"`
	PlanPurchasedAt *time.Time `gorm:"column:plan_purchased_at" json:"planPurchasedAt,omitempty"`
	PlanExpiresAt   *time.Time `gorm:"column:plan_expires_at" json:"planExpiresAt,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Property) TableName() string { return "properties" }

func (p *Property) IsPaid() bool {
	return p.PaymentStatus == listing.PaymentPaid
}

// Payload returns the editable part of the record in wire form.
func (p *Property) Payload() listing.Payload {
	return listing.Payload{
		Title:              p.Title,
		PropertyType:       p.PropertyType,
		Slug:               p.Slug,
		Location:           p.Location,
		Region:             p.Region,
		Address:            p.Address,
		Town:               p.Town,
		County:             p.County,
		Postcode:           p.Postcode,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		SleepsMin:          p.SleepsMin,
		SleepsMax:          p.SleepsMax,
		Bedrooms:           p.Bedrooms,
		Bathrooms:          p.Bathrooms,
		DiningCapacity:     p.DiningCapacity,
		BestFor:            p.BestFor,
		PriceFromMidweek:   p.PriceFromMidweek,
		PriceFromWeekend:   p.PriceFromWeekend,
		WeekendPrice:       p.WeekendPrice,
		CleaningFee:        p.CleaningFee,
		SecurityDeposit:    p.SecurityDeposit,
		ShortDescription:   p.ShortDescription,
		Description:        p.Description,
		Amenities:          p.Amenities,
		HensAllowed:        p.HensAllowed,
		CorporateAllowed:   p.CorporateAllowed,
		WeddingsAllowed:    p.WeddingsAllowed,
		HouseRules:         p.HouseRules,
		NearbyAttractions:  p.NearbyAttractions,
		CheckInOut:         p.CheckInOut,
		MinimumStay:        p.MinimumStay,
		CancellationPolicy: p.CancellationPolicy,
		HeroImage:          p.HeroImage,
		Images:             p.Images,
		VideoType:          p.VideoType,
		HeroVideo:          p.HeroVideo,
		MetaTitle:          p.MetaTitle,
		MetaDescription:    p.MetaDescription,
		IsPublished:        p.IsPublished,
		Status:             string(p.Status),
		PlanID:             p.PlanID,
		PaymentStatus:      p.PaymentStatus,
		PaymentIntentID:    p.PaymentIntentID,
		PlanPurchasedAt:    p.PlanPurchasedAt,
		PlanExpiresAt:      p.PlanExpiresAt,
	}
}

// apply copies the editable fields of in onto p. Identity, owner and
// moderation fields are left alone.
func (p *Property) apply(in listing.Payload) {
	p.Title = in.Title
	p.PropertyType = in.PropertyType
	p.Slug = in.Slug
	p.Location = in.Location
	p.Region = in.Region
	p.Address = in.Address
	p.Town = in.Town
	p.County = in.County
	p.Postcode = in.Postcode
	p.Latitude = in.Latitude
	p.Longitude = in.Longitude
	p.SleepsMin = in.SleepsMin
	p.SleepsMax = in.SleepsMax
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.DiningCapacity = in.DiningCapacity
	p.BestFor = in.BestFor
	p.PriceFromMidweek = in.PriceFromMidweek
	p.PriceFromWeekend = in.PriceFromWeekend
	p.WeekendPrice = in.WeekendPrice
	p.CleaningFee = in.CleaningFee
	p.SecurityDeposit = in.SecurityDeposit
	p.ShortDescription = in.ShortDescription
	p.Description = in.Description
	p.Amenities = in.Amenities
	p.HensAllowed = in.HensAllowed
	p.CorporateAllowed = in.CorporateAllowed
	p.WeddingsAllowed = in.WeddingsAllowed
	p.HouseRules = in.HouseRules
	p.NearbyAttractions = in.NearbyAttractions
	p.CheckInOut = in.CheckInOut
	p.MinimumStay = in.MinimumStay
	p.CancellationPolicy = in.CancellationPolicy
	p.HeroImage = in.HeroImage
	p.Images = in.Images
	p.VideoType = in.VideoType
	p.HeroVideo = in.HeroVideo
	p.MetaTitle = in.MetaTitle
	p.MetaDescription = in.MetaDescription
	p.IsPublished = in.IsPublished
	if in.PaymentStatus != "" {
		p.PlanID = in.PlanID
		p.PaymentStatus = in.PaymentStatus
		p.PaymentIntentID = in.PaymentIntentID
		p.PlanPurchasedAt = in.PlanPurchasedAt
		p.PlanExpiresAt = in.PlanExpiresAt
	}
}

// CalendarEntry is an owner-maintained availability row for one night.
type CalendarEntry struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	PropertyID string    `gorm:"column:property_id;index;size:36" json:"propertyId"`
	Date       time.Time `gorm:"column:date;index" json:"date"`
	Status     string    `gorm:"column:status;size:16" json:"status"`
	Note       string    `gorm:"column:note" json:"note,omitempty"`
}

func (CalendarEntry) TableName() string { return "property_calendar" }

const (
	CalendarBlocked   = "blocked"
	CalendarAvailable = "available"
)

// Stay is a booking as seen on the availability calendar.
type Stay struct {
	ID        int64     `json:"id"`
	GuestName string    `json:"guestName"`
	CheckIn   time.Time `json:"checkIn"`
	CheckOut  time.Time `json:"checkOut"`
	Status    string    `json:"bookingStatus"`
}

// Availability combines calendar rows and bookings over a window.
type Availability struct {
	PropertyID string          `json:"propertyId"`
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	Calendar   []CalendarEntry `json:"calendar"`
	Bookings   []Stay          `json:"bookings"`
}

// StatusChange is the realtime payload sent to an owner after moderation.
type StatusChange struct {
	PropertyID string `json:"propertyId"`
	Title      string `json:"title"`
	Status     Status `json:"status"`
	Reason     string `json:"reason,omitempty"`
}
