package listing

// PropertyTypes is the catalog offered by the essentials step.
var PropertyTypes = []string{
	"Manor House",
	"Country House",
	"Cottage",
	"Castle",
	"Luxury House",
	"Party House",
	"Stately House",
	"Quirky Property",
}

var Amenities = []string{
	"Hot Tub",
	"Swimming Pool",
	"Games Room",
	"Cinema Room",
	"BBQ",
	"Garden",
	"Parking",
	"WiFi",
	"Pet Friendly",
	"Accessible",
	"EV Charging",
	"Tennis Court",
	"Beach Access",
	"Fishing Lake",
}

var BestFor = []string{
	"Hen Parties",
	"Birthdays",
	"Family Gatherings",
	"Corporate Retreats",
	"Weddings",
	"Special Celebrations",
}

// VideoType tags the hero video source.
type VideoType string

const (
	VideoNone    VideoType = ""
	VideoUpload  VideoType = "upload"
	VideoYouTube VideoType = "youtube"
	VideoVimeo   VideoType = "vimeo"
)

// Catalog is what the portal hands to the UI for pickers.
type Catalog struct {
	PropertyTypes []string    `json:"propertyTypes"`
	Amenities     []string    `json:"amenities"`
	BestFor       []string    `json:"bestFor"`
	VideoTypes    []VideoType `json:"videoTypes"`
	Steps         []StepInfo  `json:"steps"`
	MaxImages     int         `json:"maxImages"`
	MaxImageBytes int64       `json:"maxImageBytes"`
}

func DefaultCatalog() Catalog {
	steps := make([]StepInfo, 0, StepCount)
	for s := StepEssentials; s <= StepSEO; s++ {
		steps = append(steps, StepInfo{Number: s, Name: s.String()})
	}
	return Catalog{
		PropertyTypes: append([]string(nil), PropertyTypes...),
		Amenities:     append([]string(nil), Amenities...),
		BestFor:       append([]string(nil), BestFor...),
		VideoTypes:    []VideoType{VideoUpload, VideoYouTube, VideoVimeo},
		Steps:         steps,
		MaxImages:     MaxImages,
		MaxImageBytes: MaxImageBytes,
	}
}
