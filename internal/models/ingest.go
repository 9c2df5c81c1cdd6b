package models

// SourceRow is one parsed line of the historical transactions CSV. Each row
// carries the full denormalized record that ingestion splits across the
// District, Economic, Building, Properties, Transaction and Parking tables.
type SourceRow struct {
	District string

	BuildingType      string
	RoomCount         int
	HallCount         int
	BathroomCount     int
	FloorCount        int
	BuildingMaterials string
	Balcony           bool

	Address         string
	Street          string
	Number          string
	CompletionDate  string
	School500m      bool
	Park500m        bool
	BusStation500m  bool
	MRTStation500m  bool
	Undesirable500m bool

	TransactionDate       string
	Price                 float64
	PricePerSqm           float64
	ResidentialPriceIndex float64
	HousePriceToIncome    float64
	Year                  int
	Quarter               int

	MortgageRate       float64
	UnemploymentRate   float64
	EconomicGrowthRate float64
	GDP                float64

	ParkingType  string
	ParkingArea  float64
	ParkingPrice float64
}

// HasParking reports whether the row carries a usable parking record. The
// source data uses the literal "nan" for transactions without a space.
func (r *SourceRow) HasParking() bool {
	return r.ParkingType != "" && r.ParkingType != "nan" && r.ParkingPrice > 0
}
