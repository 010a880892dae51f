package listing

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Step is a 1-based wizard step number.
type Step int

const (
	StepEssentials Step = iota + 1
	StepDescriptions
	StepLocation
	StepAmenities
	StepPolicies
	StepPricing
	StepMedia
	StepSEO
)

const StepCount = int(StepSEO)

const (
	ShortDescriptionLimit = 200
	ShortDescriptionLines = 2
	MetaTitleLimit        = 60
	MetaDescriptionLimit  = 160
)

var stepNames = map[Step]string{
	StepEssentials:   "Essentials",
	StepDescriptions: "Descriptions",
	StepLocation:     "Location",
	StepAmenities:    "Amenities",
	StepPolicies:     "Policies",
	StepPricing:      "Pricing",
	StepMedia:        "Media",
	StepSEO:          "SEO",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

func (s Step) Valid() bool {
	return s >= StepEssentials && s <= StepSEO
}

type StepInfo struct {
	Number Step   `json:"number"`
	Name   string `json:"name"`
}

// ValidateStep reports the failing hard requirements of a single step.
// Steps without requirements always return an empty map.
func ValidateStep(d *Draft, step Step) map[string]string {
	errs := map[string]string{}
	switch step {
	case StepEssentials:
		if strings.TrimSpace(d.Title) == "" {
			errs["title"] = "Property title is required"
		}
		if strings.TrimSpace(d.PropertyType) == "" {
			errs["propertyType"] = "Property type is required"
		}
		if d.SleepsMin < 1 {
			errs["sleepsMin"] = "Minimum guests must be at least 1"
		}
		if d.SleepsMax < 1 {
			errs["sleepsMax"] = "Maximum guests must be at least 1"
		} else if d.SleepsMax < d.SleepsMin {
			errs["sleepsMax"] = "Maximum guests cannot be less than minimum guests"
		}
	case StepLocation:
		if strings.TrimSpace(d.Address) == "" {
			errs["address"] = "Address is required"
		}
		if strings.TrimSpace(d.County) == "" {
			errs["county"] = "County is required"
		}
	case StepPricing:
		if d.BasePrice <= 0 {
			errs["basePrice"] = "Base price must be greater than 0"
		}
	}
	return errs
}

// CanAdvance reports whether every step before target passes. It is
// monotonic in target and always true for the first step.
func CanAdvance(d *Draft, target Step) bool {
	if !target.Valid() {
		return false
	}
	for s := StepEssentials; s < target; s++ {
		if len(ValidateStep(d, s)) > 0 {
			return false
		}
	}
	return true
}

// FurthestReachable is the highest step CanAdvance allows.
func FurthestReachable(d *Draft) Step {
	reach := StepEssentials
	for s := StepEssentials + 1; s <= StepSEO; s++ {
		if !CanAdvance(d, s) {
			break
		}
		reach = s
	}
	return reach
}

// ValidateAll runs every step's requirements plus the publish-only
// checks and returns the first failing step with all errors found.
// first is zero when the draft is valid.
func ValidateAll(d *Draft) (first Step, errs map[string]string) {
	errs = map[string]string{}
	for s := StepEssentials; s <= StepSEO; s++ {
		stepErrs := ValidateStep(d, s)
		if s == StepPricing {
			for k, v := range optionalPriceErrors(d) {
				stepErrs[k] = v
			}
		}
		if len(stepErrs) == 0 {
			continue
		}
		if first == 0 {
			first = s
		}
		for k, v := range stepErrs {
			errs[k] = v
		}
	}
	return first, errs
}

func optionalPriceErrors(d *Draft) map[string]string {
	errs := map[string]string{}
	if d.WeekendPrice != nil && *d.WeekendPrice < 0 {
		errs["weekendPrice"] = "Weekend price cannot be negative"
	}
	if d.CleaningFee != nil && *d.CleaningFee < 0 {
		errs["cleaningFee"] = "Cleaning fee cannot be negative"
	}
	if d.SecurityDeposit != nil && *d.SecurityDeposit < 0 {
		errs["securityDeposit"] = "Security deposit cannot be negative"
	}
	return errs
}

// SoftWarnings reports advisory length limits. They never block a transition.
func SoftWarnings(d *Draft) map[string]string {
	warn := map[string]string{}
	if utf8.RuneCountInString(d.ShortDescription) > ShortDescriptionLimit {
		warn["shortDescription"] = fmt.Sprintf("Keep the short description under %d characters", ShortDescriptionLimit)
	} else if strings.Count(d.ShortDescription, "\n")+1 > ShortDescriptionLines {
		warn["shortDescription"] = fmt.Sprintf("Keep the short description to %d lines", ShortDescriptionLines)
	}
	if utf8.RuneCountInString(d.MetaTitle) > MetaTitleLimit {
		warn["metaTitle"] = fmt.Sprintf("Meta titles over %d characters are truncated by search engines", MetaTitleLimit)
	}
	if utf8.RuneCountInString(d.MetaDescription) > MetaDescriptionLimit {
		warn["metaDescription"] = fmt.Sprintf("Meta descriptions over %d characters are truncated by search engines", MetaDescriptionLimit)
	}
	return warn
}
