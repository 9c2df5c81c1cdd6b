package models

// District is immutable reference data seeded at ingestion.
type District struct {
	ID   int64  `json:"district_id"`
	Name string `json:"district_name"`
}

// Listing is one property joined with its building, transaction, district
// and optional parking rows - the unit of display.
type Listing struct {
	PropertyID        int64    `json:"property_id"`
	Address           string   `json:"address"`
	CompletionDate    string   `json:"completion_date"`
	DistrictName      string   `json:"district_name"`
	BuildingType      string   `json:"building_type"`
	BuildingMaterials string   `json:"building_materials"`
	FloorCount        int      `json:"floor_count"`
	RoomCount         int      `json:"room_count"`
	HallCount         int      `json:"hall_count"`
	BathroomCount     int      `json:"bathroom_count"`
	Balcony           bool     `json:"balcony"`
	Price             float64  `json:"price"`
	PricePerSqm       float64  `json:"price_per_sqm"`
	TransactionDate   string   `json:"transaction_date"`
	School500m        bool     `json:"school_500m"`
	Park500m          bool     `json:"park_500m"`
	BusStation500m    bool     `json:"bus_station_500m"`
	MRTStation500m    bool     `json:"mrt_station_500m"`
	Undesirable500m   bool     `json:"undesirable_500m"`
	ParkingType       *string  `json:"parking_type"`
	ParkingPrice      *float64 `json:"parking_price"`
}

// ListingInput carries the submitted fields for a create or update.
type ListingInput struct {
	DistrictID        int64   `json:"district_id" binding:"required"`
	Address           string  `json:"address" binding:"required"`
	BuildingType      string  `json:"building_type" binding:"required"`
	BuildingMaterials string  `json:"building_materials"`
	FloorCount        int     `json:"floor_count"`
	RoomCount         int     `json:"room_count"`
	HallCount         int     `json:"hall_count"`
	BathroomCount     int     `json:"bathroom_count"`
	Balcony           bool    `json:"balcony"`
	ParkingType       string  `json:"parking_type"`
	ParkingPrice      float64 `json:"parking_price"`
	PricePerSqm       float64 `json:"price_per_sqm"`
	TransactionDate   string  `json:"transaction_date"`
}

// SuggestionCandidate is a raw affordability match returned by the store.
type SuggestionCandidate struct {
	PropertyID          int64   `json:"property_id"`
	Address             string  `json:"address"`
	DistrictName        string  `json:"district_name"`
	BuildingType        string  `json:"building_type"`
	PricePerSqm         float64 `json:"price_per_sqm"`
	TotalEstimatedPrice float64 `json:"total_estimated_price"`
}

// Suggestion is a candidate enriched with amortization metrics.
type Suggestion struct {
	PropertyID     int64   `json:"property_id"`
	DistrictName   string  `json:"district_name"`
	BuildingType   string  `json:"building_type"`
	Address        string  `json:"address"`
	PricePerSqm    float64 `json:"price_per_sqm"`
	TotalPrice     float64 `json:"total_price"`
	MonthlyPayment float64 `json:"monthly_payment"`
	DTIRatio       float64 `json:"dti_ratio"`
	YearsToPayOff  float64 `json:"years_to_pay_off"`
}

// DistrictStats feeds the average-price-per-district chart.
type DistrictStats struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// FacetSet holds the distinct values available for each filterable attribute.
type FacetSet struct {
	Districts     []District `json:"districts"`
	BuildingTypes []string   `json:"building_types"`
	Materials     []string   `json:"materials"`
	ParkingTypes  []string   `json:"parking_types"`
}
