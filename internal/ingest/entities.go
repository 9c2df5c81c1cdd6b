package ingest

// gorm entities matching the catalog schema. Ingestion assigns the ids
// itself so one CSV line lands as building n, property n and transaction n.

type DistrictRow struct {
	DistrictID   int64  `gorm:"column:district_id;primaryKey"`
	DistrictName string `gorm:"column:district_name"`
}

func (DistrictRow) TableName() string { return "District" }

type EconomicRow struct {
	Year               int     `gorm:"column:year;primaryKey"`
	Quarter            int     `gorm:"column:quarter;primaryKey"`
	MortgageRate       float64 `gorm:"column:mortgage_rate"`
	UnemploymentRate   float64 `gorm:"column:unemployment_rate"`
	EconomicGrowthRate float64 `gorm:"column:economic_growth_rate"`
	GDP                float64 `gorm:"column:gdp"`
}

func (EconomicRow) TableName() string { return "Economic" }

type BuildingRow struct {
	BuildingID        int64  `gorm:"column:building_id;primaryKey"`
	BuildingType      string `gorm:"column:building_type"`
	RoomCount         int    `gorm:"column:room_count"`
	HallCount         int    `gorm:"column:hall_count"`
	BathroomCount     int    `gorm:"column:bathroom_count"`
	FloorCount        int    `gorm:"column:floor_count"`
	BuildingMaterials string `gorm:"column:building_materials"`
	Balcony           bool   `gorm:"column:balcony"`
}

func (BuildingRow) TableName() string { return "Building" }

type PropertyRow struct {
	PropertyID      int64  `gorm:"column:property_id;primaryKey"`
	DistrictID      int64  `gorm:"column:district_id"`
	BuildingID      int64  `gorm:"column:building_id"`
	Address         string `gorm:"column:address"`
	Street          string `gorm:"column:street"`
	Number          string `gorm:"column:number"`
	CompletionDate  string `gorm:"column:completion_date"`
	School500m      bool   `gorm:"column:school_500m"`
	Park500m        bool   `gorm:"column:park_500m"`
	BusStation500m  bool   `gorm:"column:bus_station_500m"`
	MRTStation500m  bool   `gorm:"column:mrt_station_500m"`
	Undesirable500m bool   `gorm:"column:undesirable_500m"`
}

func (PropertyRow) TableName() string { return "Properties" }

type TransactionRow struct {
	TransactionID         int64   `gorm:"column:transaction_id;primaryKey"`
	PropertyID            int64   `gorm:"column:property_id"`
	TransactionDate       string  `gorm:"column:transaction_date"`
	Price                 float64 `gorm:"column:price"`
	PricePerSqm           float64 `gorm:"column:price_per_sqm"`
	ResidentialPriceIndex float64 `gorm:"column:residential_price_index"`
	HousePriceToIncome    float64 `gorm:"column:house_price_to_income"`
	Year                  int     `gorm:"column:year"`
	Quarter               int     `gorm:"column:quarter"`
}

func (TransactionRow) TableName() string { return "Transaction" }

type ParkingRow struct {
	ParkingID      int64   `gorm:"column:parking_id;primaryKey"`
	PropertyID     int64   `gorm:"column:property_id"`
	ParkingType    string  `gorm:"column:parking_type"`
	ParkingAreaSqm float64 `gorm:"column:parking_area_sqm"`
	ParkingPrice   float64 `gorm:"column:parking_price"`
}

func (ParkingRow) TableName() string { return "Parking" }
