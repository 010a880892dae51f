package property

import (
	"fmt"
	"net/http"
	"strings"

	"groupstays/internal/domain/listing"
	"groupstays/internal/pkg/apperr"
)

// publishRequired lists the fields a listing must carry before review.
var publishRequired = []struct {
	name    string
	present func(p *listing.Payload) bool
}{
	{"title", func(p *listing.Payload) bool { return p.Title != "" }},
	{"propertyType", func(p *listing.Payload) bool { return p.PropertyType != "" }},
	{"slug", func(p *listing.Payload) bool { return p.Slug != "" }},
	{"address", func(p *listing.Payload) bool { return p.Address != "" }},
	{"location", func(p *listing.Payload) bool { return p.Location != "" }},
	{"region", func(p *listing.Payload) bool { return p.Region != "" }},
	{"sleepsMin", func(p *listing.Payload) bool { return p.SleepsMin > 0 }},
	{"sleepsMax", func(p *listing.Payload) bool { return p.SleepsMax > 0 }},
	{"priceFromMidweek", func(p *listing.Payload) bool { return p.PriceFromMidweek != 0 }},
	{"priceFromWeekend", func(p *listing.Payload) bool { return p.PriceFromWeekend != 0 }},
	{"heroImage", func(p *listing.Payload) bool { return p.HeroImage != "" }},
}

func wantsPublish(p *listing.Payload) bool {
	return p.IsPublished == 1 || p.Status == listing.StatusPublished || p.Status == string(StatusPending)
}

func normalise(p *listing.Payload) {
	for _, s := range []*string{
		&p.Title, &p.PropertyType, &p.Slug, &p.Location, &p.Region, &p.Address, &p.Town,
		&p.County, &p.Postcode, &p.HeroImage, &p.HeroVideo, &p.VideoType,
	} {
		*s = strings.TrimSpace(*s)
	}
}

// validate checks p. Drafts only get the range checks; publish also
// enforces the required subset.
func validate(p *listing.Payload, publish bool) *apperr.Error {
	if publish {
		for _, f := range publishRequired {
			if !f.present(p) {
				return apperr.BadRequest(CodeMissingRequired, fmt.Sprintf("Required field '%s' is missing", f.name)).
					WithDetails(map[string]any{"field": f.name})
			}
		}
	}

	if p.SleepsMin < 0 || p.SleepsMax < 0 || ((publish || p.SleepsMax > 0) && p.SleepsMax < p.SleepsMin) {
		return apperr.BadRequest(CodeSleepsRange, "sleepsMax must be greater than or equal to sleepsMin")
	}

	if p.PriceFromMidweek < 0 || p.PriceFromWeekend < 0 ||
		(publish && (p.PriceFromMidweek <= 0 || p.PriceFromWeekend <= 0)) {
		return apperr.BadRequest(CodeInvalidPrice, "Prices must be positive values")
	}
	for name, v := range map[string]*float64{
		"weekendPrice":    p.WeekendPrice,
		"cleaningFee":     p.CleaningFee,
		"securityDeposit": p.SecurityDeposit,
	} {
		if v != nil && *v < 0 {
			return apperr.BadRequest(CodeInvalidPrice, fmt.Sprintf("%s must not be negative", name))
		}
	}

	if p.Bedrooms < 0 || p.Bathrooms < 0 || p.DiningCapacity < 0 {
		return apperr.BadRequest(CodeRoomCount, "Bedrooms and bathrooms must be non-negative")
	}
	return nil
}

func duplicateSlug() *apperr.Error {
	return apperr.New(http.StatusConflict, CodeDuplicateSlug, "Slug already exists")
}

// filterStatuses maps a list filter to stored statuses. nil means every status.
func filterStatuses(filter string) ([]Status, *apperr.Error) {
	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "", FilterAll:
		return nil, nil
	case FilterPending, string(StatusPending):
		return []Status{StatusPending}, nil
	case FilterApproved:
		return []Status{StatusApproved}, nil
	case FilterRejected:
		return []Status{StatusRejected}, nil
	case FilterDraft:
		return []Status{StatusDraft}, nil
	}
	return nil, apperr.BadRequest(CodeInvalidStatus, "status must be one of all, pending, approved, rejected, draft")
}
