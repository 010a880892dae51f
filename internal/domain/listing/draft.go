package listing

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultCheckIn     = "15:00"
	DefaultCheckOut    = "10:00"
	DefaultMinimumStay = 2
)

// Draft is the listing aggregate edited by the wizard. Media is only
// reachable through its own methods so the hero convention cannot be broken.
type Draft struct {
	Title          string   `json:"title"`
	PropertyType   string   `json:"propertyType"`
	SleepsMin      int      `json:"sleepsMin"`
	SleepsMax      int      `json:"sleepsMax"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      int      `json:"bathrooms"`
	DiningCapacity int      `json:"diningCapacity"`
	BestFor        []string `json:"bestFor"`

	ShortDescription string `json:"shortDescription"`
	Description      string `json:"description"`

	Address           string   `json:"address"`
	Town              string   `json:"town"`
	County            string   `json:"county"`
	Postcode          string   `json:"postcode"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	NearbyAttractions string   `json:"nearbyAttractions"`

	Amenities        []string `json:"amenities"`
	HensAllowed      bool     `json:"hensAllowed"`
	CorporateAllowed bool     `json:"corporateAllowed"`
	WeddingsAllowed  bool     `json:"weddingsAllowed"`
	HouseRules       string   `json:"houseRules"`

	CheckInTime        string `json:"checkInTime"`
	CheckOutTime       string `json:"checkOutTime"`
	MinimumStay        int    `json:"minimumStay"`
	CancellationPolicy string `json:"cancellationPolicy"`

	BasePrice       float64  `json:"basePrice"`
	WeekendPrice    *float64 `json:"weekendPrice,omitempty"`
	CleaningFee     *float64 `json:"cleaningFee,omitempty"`
	SecurityDeposit *float64 `json:"securityDeposit,omitempty"`

	Media     Media     `json:"images"`
	VideoType VideoType `json:"videoType"`
	HeroVideo string    `json:"heroVideo"`

	Slug            string `json:"slug"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`

	errors map[string]string
}

func NewDraft() *Draft {
	return &Draft{
		BestFor:      []string{},
		Amenities:    []string{},
		CheckInTime:  DefaultCheckIn,
		CheckOutTime: DefaultCheckOut,
		MinimumStay:  DefaultMinimumStay,
		errors:       map[string]string{},
	}
}

type setter func(d *Draft, v any) error

var fields = map[string]setter{
	"title":          stringField(func(d *Draft) *string { return &d.Title }),
	"propertyType":   stringField(func(d *Draft) *string { return &d.PropertyType }),
	"sleepsMin":      setSleepsMin,
	"sleepsMax":      setSleepsMax,
	"bedrooms":       intField(func(d *Draft) *int { return &d.Bedrooms }),
	"bathrooms":      intField(func(d *Draft) *int { return &d.Bathrooms }),
	"diningCapacity": intField(func(d *Draft) *int { return &d.DiningCapacity }),
	"bestFor":        tagsField(func(d *Draft) *[]string { return &d.BestFor }),

	"shortDescription": stringField(func(d *Draft) *string { return &d.ShortDescription }),
	"description":      stringField(func(d *Draft) *string { return &d.Description }),

	"address":           stringField(func(d *Draft) *string { return &d.Address }),
	"town":              stringField(func(d *Draft) *string { return &d.Town }),
	"county":            stringField(func(d *Draft) *string { return &d.County }),
	"postcode":          setPostcode,
	"latitude":          optFloatField(func(d *Draft) **float64 { return &d.Latitude }),
	"longitude":         optFloatField(func(d *Draft) **float64 { return &d.Longitude }),
	"nearbyAttractions": stringField(func(d *Draft) *string { return &d.NearbyAttractions }),

	"amenities":        tagsField(func(d *Draft) *[]string { return &d.Amenities }),
	"hensAllowed":      boolField(func(d *Draft) *bool { return &d.HensAllowed }),
	"corporateAllowed": boolField(func(d *Draft) *bool { return &d.CorporateAllowed }),
	"weddingsAllowed":  boolField(func(d *Draft) *bool { return &d.WeddingsAllowed }),
	"houseRules":       stringField(func(d *Draft) *string { return &d.HouseRules }),

	"checkInTime":        stringField(func(d *Draft) *string { return &d.CheckInTime }),
	"checkOutTime":       stringField(func(d *Draft) *string { return &d.CheckOutTime }),
	"minimumStay":        intField(func(d *Draft) *int { return &d.MinimumStay }),
	"cancellationPolicy": stringField(func(d *Draft) *string { return &d.CancellationPolicy }),

	"basePrice":       floatField(func(d *Draft) *float64 { return &d.BasePrice }),
	"weekendPrice":    optFloatField(func(d *Draft) **float64 { return &d.WeekendPrice }),
	"cleaningFee":     optFloatField(func(d *Draft) **float64 { return &d.CleaningFee }),
	"securityDeposit": optFloatField(func(d *Draft) **float64 { return &d.SecurityDeposit }),

	"videoType": setVideoType,
	"heroVideo": stringField(func(d *Draft) *string { return &d.HeroVideo }),

	"slug":            stringField(func(d *Draft) *string { return &d.Slug }),
	"metaTitle":       stringField(func(d *Draft) *string { return &d.MetaTitle }),
	"metaDescription": stringField(func(d *Draft) *string { return &d.MetaDescription }),
}

// Fields lists every name UpdateField accepts, sorted.
func Fields() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UpdateField writes value into the named field and clears that field's
// validation error. It never validates; only coercion failures are returned.
func (d *Draft) UpdateField(name string, value any) error {
	set, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if err := set(d, value); err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	d.ClearError(name)
	return nil
}

// Errors returns a copy of the field error map.
func (d *Draft) Errors() map[string]string {
	out := make(map[string]string, len(d.errors))
	for k, v := range d.errors {
		out[k] = v
	}
	return out
}

func (d *Draft) SetErrors(errs map[string]string) {
	if d.errors == nil {
		d.errors = map[string]string{}
	}
	for k, v := range errs {
		d.errors[k] = v
	}
}

func (d *Draft) ClearError(name string) {
	delete(d.errors, name)
}

func (d *Draft) ClearErrors() {
	d.errors = map[string]string{}
}

func setSleepsMin(d *Draft, v any) error {
	n, err := asInt(v)
	if err != nil {
		return err
	}
	d.SleepsMin = n
	if d.SleepsMax < n {
		d.SleepsMax = n
		d.ClearError("sleepsMax")
	}
	return nil
}

func setSleepsMax(d *Draft, v any) error {
	n, err := asInt(v)
	if err != nil {
		return err
	}
	if n < d.SleepsMin {
		n = d.SleepsMin
	}
	d.SleepsMax = n
	return nil
}

func setPostcode(d *Draft, v any) error {
	s, err := asString(v)
	if err != nil {
		return err
	}
	d.Postcode = AreaPostcode(s)
	return nil
}

func setVideoType(d *Draft, v any) error {
	s, err := asString(v)
	if err != nil {
		return err
	}
	d.VideoType = VideoType(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

// AreaPostcode reduces a UK postcode to its outward (area-level) code.
func AreaPostcode(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if i := strings.IndexAny(s, " \t"); i > 0 {
		return s[:i]
	}
	if len(s) > 4 {
		return s[:len(s)-3]
	}
	return s
}

func stringField(ref func(*Draft) *string) setter {
	return func(d *Draft, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		*ref(d) = s
		return nil
	}
}

func intField(ref func(*Draft) *int) setter {
	return func(d *Draft, v any) error {
		n, err := asInt(v)
		if err != nil {
			return err
		}
		*ref(d) = n
		return nil
	}
}

func floatField(ref func(*Draft) *float64) setter {
	return func(d *Draft, v any) error {
		f, err := asFloat(v)
		if err != nil {
			return err
		}
		*ref(d) = f
		return nil
	}
}

func optFloatField(ref func(*Draft) **float64) setter {
	return func(d *Draft, v any) error {
		if v == nil {
			*ref(d) = nil
			return nil
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			*ref(d) = nil
			return nil
		}
		f, err := asFloat(v)
		if err != nil {
			return err
		}
		*ref(d) = &f
		return nil
	}
}

func boolField(ref func(*Draft) *bool) setter {
	return func(d *Draft, v any) error {
		b, err := asBool(v)
		if err != nil {
			return err
		}
		*ref(d) = b
		return nil
	}
}

func tagsField(ref func(*Draft) *[]string) setter {
	return func(d *Draft, v any) error {
		tags, err := asStrings(v)
		if err != nil {
			return err
		}
		*ref(d) = dedupe(tags)
		return nil
	}
}

func asString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	case int, int64, float64, bool:
		return fmt.Sprint(t), nil
	}
	return "", ErrFieldType
}

// maxExactInt is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactInt = 1 << 53

func asInt(v any) (int, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case int:
		return t, nil
	case int32:
		return int(t), nil
	case int64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) || math.Abs(t) > maxExactInt {
			return 0, ErrFieldType
		}
		return int(t), nil
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, ErrFieldType
		}
		return int(n), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, ErrFieldType
		}
		return n, nil
	}
	return 0, ErrFieldType
}

func asFloat(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, ErrFieldType
		}
		return f, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, ErrFieldType
		}
		return f, nil
	}
	return 0, ErrFieldType
}

func asBool(v any) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, nil
	case bool:
		return t, nil
	case int:
		return t != 0, nil
	case float64:
		return t != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "yes", "on":
			return true, nil
		case "", "0", "false", "no", "off":
			return false, nil
		}
	}
	return false, ErrFieldType
}

func asStrings(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string(nil), t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, ErrFieldType
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return []string{}, nil
		}
		return strings.Split(t, ","), nil
	}
	return nil, ErrFieldType
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
