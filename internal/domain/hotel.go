package domain

// Property types mirror the listing categories offered in search filters.
const (
	PropertyVilla      = "villa"
	PropertyHomestay   = "homestay"
	PropertyHotel      = "hotel"
	PropertyApartment  = "apartment"
	PropertyGuesthouse = "guesthouse"
)

func ValidPropertyType(t string) bool {
	switch t {
	case PropertyVilla, PropertyHomestay, PropertyHotel, PropertyApartment, PropertyGuesthouse:
		return true
	}
	return false
}

type Hotel struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Ward         string   `json:"ward"`
	PropertyType string   `json:"property_type"`
	Description  *string  `json:"description,omitempty"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	Rating       *float64 `json:"rating,omitempty"`
	ReviewCount  int      `json:"review_count"`
	Featured     bool     `json:"featured"`
}

type Room struct {
	ID          string   `json:"id"`
	HotelID     string   `json:"hotel_id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Price       int64    `json:"price"` // nightly rate in VND
	Capacity    int      `json:"capacity"`
	Size        *int     `json:"size_sqm,omitempty"` // square meters
	Description *string  `json:"description,omitempty"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	Available   bool     `json:"available"`
}

type HotelsQuery struct {
	Ward         *string
	PropertyType *string
	Q            *string
	FeaturedOnly bool
	Limit        int
}
