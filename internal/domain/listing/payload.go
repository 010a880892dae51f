package listing

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"groupstays/internal/pkg/utils"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"

	PaymentPaid = "paid"
)

// Payload is the Property API wire shape for create and update.
type Payload struct {
	Title              string   `json:"title"`
	PropertyType       string   `json:"propertyType"`
	Slug               string   `json:"slug"`
	Location           string   `json:"location"`
	Region             string   `json:"region"`
	Address            string   `json:"address"`
	Town               string   `json:"town"`
	County             string   `json:"county"`
	Postcode           string   `json:"postcode"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	SleepsMin          int      `json:"sleepsMin"`
	SleepsMax          int      `json:"sleepsMax"`
	Bedrooms           int      `json:"bedrooms"`
	Bathrooms          int      `json:"bathrooms"`
	DiningCapacity     int      `json:"diningCapacity"`
	BestFor            string   `json:"bestFor"`
	PriceFromMidweek   float64  `json:"priceFromMidweek"`
	PriceFromWeekend   float64  `json:"priceFromWeekend"`
	WeekendPrice       *float64 `json:"weekendPrice"`
	CleaningFee        *float64 `json:"cleaningFee"`
	SecurityDeposit    *float64 `json:"securityDeposit"`
	ShortDescription   string   `json:"shortDescription"`
	Description        string   `json:"description"`
	Amenities          string   `json:"amenities"`
	HensAllowed        int      `json:"hensAllowed"`
	CorporateAllowed   int      `json:"corporateAllowed"`
	WeddingsAllowed    int      `json:"weddingsAllowed"`
	HouseRules         string   `json:"houseRules"`
	NearbyAttractions  string   `json:"nearbyAttractions"`
	CheckInOut         string   `json:"checkInOut"`
	MinimumStay        int      `json:"minimumStay"`
	CancellationPolicy string   `json:"cancellationPolicy"`
	HeroImage          string   `json:"heroImage"`
	Images             string   `json:"images"`
	VideoType          string   `json:"videoType"`
	HeroVideo          string   `json:"heroVideo"`
	MetaTitle          string   `json:"metaTitle"`
	MetaDescription    string   `json:"metaDescription"`
	IsPublished        int      `json:"isPublished"`
	Status             string   `json:"status"`

	PlanID          string     `json:"planId,omitempty"`
	PaymentStatus   string     `json:"paymentStatus,omitempty"`
	PaymentIntentID string     `json:"paymentIntentId,omitempty"`
	PlanPurchasedAt *time.Time `json:"planPurchasedAt,omitempty"`
	PlanExpiresAt   *time.Time `json:"planExpiresAt,omitempty"`
}

// Purchase is a plan slot bought before the wizard was opened.
type Purchase struct {
	PurchaseID      string
	PlanID          string
	PaymentIntentID string
}

// BuildPayload serialises the draft. published selects the publish flags;
// the draft itself is not modified.
func BuildPayload(d *Draft, published bool) Payload {
	images := d.Media.Images()
	p := Payload{
		Title:              d.Title,
		PropertyType:       d.PropertyType,
		Slug:               d.Slug,
		Location:           ComposeLocation(d.Address, d.Town, d.County),
		Region:             d.County,
		Address:            d.Address,
		Town:               d.Town,
		County:             d.County,
		Postcode:           d.Postcode,
		Latitude:           d.Latitude,
		Longitude:          d.Longitude,
		SleepsMin:          d.SleepsMin,
		SleepsMax:          d.SleepsMax,
		Bedrooms:           d.Bedrooms,
		Bathrooms:          d.Bathrooms,
		DiningCapacity:     d.DiningCapacity,
		BestFor:            utils.StringsToJSON(d.BestFor),
		PriceFromMidweek:   d.BasePrice,
		PriceFromWeekend:   d.BasePrice,
		WeekendPrice:       d.WeekendPrice,
		CleaningFee:        d.CleaningFee,
		SecurityDeposit:    d.SecurityDeposit,
		ShortDescription:   d.ShortDescription,
		Description:        d.Description,
		Amenities:          utils.StringsToJSON(d.Amenities),
		HensAllowed:        flag(d.HensAllowed),
		CorporateAllowed:   flag(d.CorporateAllowed),
		WeddingsAllowed:    flag(d.WeddingsAllowed),
		HouseRules:         d.HouseRules,
		NearbyAttractions:  d.NearbyAttractions,
		CheckInOut:         ComposeCheckInOut(d.CheckInTime, d.CheckOutTime),
		MinimumStay:        d.MinimumStay,
		CancellationPolicy: d.CancellationPolicy,
		HeroImage:          Hero(images),
		Images:             utils.StringsToJSON(images),
		VideoType:          string(d.VideoType),
		HeroVideo:          d.HeroVideo,
		MetaTitle:          d.MetaTitle,
		MetaDescription:    d.MetaDescription,
		Status:             StatusDraft,
	}
	if p.Slug == "" {
		p.Slug = Slugify(d.Title)
	}
	if d.WeekendPrice != nil && *d.WeekendPrice > 0 {
		p.PriceFromWeekend = *d.WeekendPrice
	}
	if published {
		p.IsPublished = 1
		p.Status = StatusPublished
	}
	return p
}

// AttachPurchase adds pre-paid plan metadata. The plan runs for one year
// from now.
func (p *Payload) AttachPurchase(pur Purchase, now time.Time) {
	purchased := now.UTC()
	expires := purchased.AddDate(1, 0, 0)
	p.PlanID = pur.PlanID
	p.PaymentStatus = PaymentPaid
	p.PaymentIntentID = pur.PaymentIntentID
	p.PlanPurchasedAt = &purchased
	p.PlanExpiresAt = &expires
}

// FromPayload hydrates a fresh draft from a persisted property. A slug equal
// to the one BuildPayload derives from the title is left empty so it keeps
// following title edits. Location only fills the address for rows saved
// before the address parts were stored separately.
func FromPayload(p Payload) *Draft {
	d := NewDraft()
	d.Title = p.Title
	d.PropertyType = p.PropertyType
	if p.Slug != Slugify(p.Title) {
		d.Slug = p.Slug
	}
	d.Address = p.Address
	d.Town = p.Town
	d.County = p.County
	if d.County == "" {
		d.County = p.Region
	}
	if p.Address == "" && p.Town == "" && p.County == "" {
		d.Address = p.Location
	}
	d.Postcode = AreaPostcode(p.Postcode)
	d.Latitude = p.Latitude
	d.Longitude = p.Longitude
	_ = d.UpdateField("sleepsMin", p.SleepsMin)
	_ = d.UpdateField("sleepsMax", p.SleepsMax)
	d.Bedrooms = p.Bedrooms
	d.Bathrooms = p.Bathrooms
	d.DiningCapacity = p.DiningCapacity
	d.BestFor = dedupe(utils.JSONToStrings(p.BestFor))
	d.BasePrice = p.PriceFromMidweek
	d.WeekendPrice = p.WeekendPrice
	d.CleaningFee = p.CleaningFee
	d.SecurityDeposit = p.SecurityDeposit
	d.ShortDescription = p.ShortDescription
	d.Description = p.Description
	d.Amenities = dedupe(utils.JSONToStrings(p.Amenities))
	d.HensAllowed = p.HensAllowed != 0
	d.CorporateAllowed = p.CorporateAllowed != 0
	d.WeddingsAllowed = p.WeddingsAllowed != 0
	d.HouseRules = p.HouseRules
	d.NearbyAttractions = p.NearbyAttractions
	if in, out, ok := ParseCheckInOut(p.CheckInOut); ok {
		d.CheckInTime, d.CheckOutTime = in, out
	}
	if p.MinimumStay > 0 {
		d.MinimumStay = p.MinimumStay
	}
	d.CancellationPolicy = p.CancellationPolicy
	images := utils.JSONToStrings(p.Images)
	if len(images) == 0 && p.HeroImage != "" {
		images = []string{p.HeroImage}
	}
	d.Media = NewMedia(images...)
	d.VideoType = VideoType(p.VideoType)
	d.HeroVideo = p.HeroVideo
	d.MetaTitle = p.MetaTitle
	d.MetaDescription = p.MetaDescription
	d.ClearErrors()
	return d
}

func ComposeLocation(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func ComposeCheckInOut(in, out string) string {
	return fmt.Sprintf("Check-in: %s, Check-out: %s", in, out)
}

var checkInOutRe = regexp.MustCompile(`^Check-in:\s*([^,]*),\s*Check-out:\s*(.*)$`)

func ParseCheckInOut(s string) (in, out string, ok bool) {
	m := checkInOutRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

var (
	nonWordRe = regexp.MustCompile(`[^\w\s-]`)
	spaceRe   = regexp.MustCompile(`\s+`)
	dashRe    = regexp.MustCompile(`-+`)
)

// Slugify lowercases the title, drops punctuation and joins words with dashes.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonWordRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, "-")
	s = dashRe.ReplaceAllString(s, "-")
	return s
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
