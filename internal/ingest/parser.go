package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"taipeihouse/server/internal/models"
)

// Column headers of the historical transactions CSV.
const (
	colDistrict         = "District"
	colBuildingType     = "Building type"
	colRoomCount        = "Current Building Layout - Room"
	colHallCount        = "Current Building Layout - Living Room"
	colBathroomCount    = "Current Building Layout - Bathroom"
	colFloorCount       = "Total number of floors"
	colMaterials        = "Main building materials"
	colBalconyArea      = "Balcony area"
	colAddress          = "Detail Address"
	colCompletionDate   = "Construction completion date"
	colSchool500m       = "School_within 500"
	colPark500m         = "Park_within 500"
	colBusStation500m   = "Bus stop_within 500"
	colMRTStation500m   = "MRT station_within 500"
	colUndesirable500m  = "Disgusting facilities_within 500"
	colTransactionDate  = "Transaction date"
	colPrice            = "Total price: yuan"
	colPricePerSqm      = "Unit price: yuan per square meter"
	colPriceIndex       = "Residential Price Index"
	colPriceToIncome    = "House price to income ratio"
	colYear             = "Year _ Western"
	colQuarter          = "season"
	colMortgageRate     = "Average mortgage rate of the five major banks (%)"
	colUnemploymentRate = "unemployment rate(%)"
	colGrowthRate       = "Economic growth rate (%)"
	colGDP              = "Gross Domestic Product (GDP) (nominal value, in millions of yuan)"
	colParkingType      = "Parking space categories"
	colParkingArea      = "Total area of vehicle displacement in square meters"
	colParkingPrice     = "Total price of parking space: yuan"
)

var (
	digitsPattern  = regexp.MustCompile(`\d+`)
	addressPattern = regexp.MustCompile(`No\.\s*(\d+),\s*([^,]+)`)

	floorWords = map[string]int{
		"twentieth": 20, "twenty": 20,
		"nineteenth": 19, "nineteen": 19,
		"eighteenth": 18, "eighteen": 18,
		"seventeenth": 17, "seventeen": 17,
		"sixteenth": 16, "sixteen": 16,
		"fifteenth": 15, "fifteen": 15,
		"fourteenth": 14, "fourteen": 14,
		"thirteenth": 13, "thirteen": 13,
		"twelfth": 12, "twelve": 12,
		"eleventh": 11, "eleven": 11,
		"tenth": 10, "ten": 10,
		"ninth": 9, "nine": 9,
		"eighth": 8, "eight": 8,
		"seventh": 7, "seven": 7,
		"sixth": 6, "six": 6,
		"fifth": 5, "five": 5,
		"fourth": 4, "four": 4,
		"third": 3, "three": 3,
		"second": 2, "two": 2,
		"first": 1, "one": 1,
	}

	// Longest words first, so "eighteen" is not matched as "eight".
	floorWordOrder = sortedFloorWords()
)

func sortedFloorWords() []string {
	words := make([]string, 0, len(floorWords))
	for word := range floorWords {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return words
}

// ParseFloorCount converts a spelled-out floor count ("twelve floors") to an
// integer. Digits win over words; unrecognized text maps to zero.
func ParseFloorCount(text string) int {
	text = strings.ToLower(text)
	if digits := digitsPattern.FindString(text); digits != "" {
		n, _ := strconv.Atoi(digits)
		return n
	}
	for _, word := range floorWordOrder {
		if strings.Contains(text, word) {
			return floorWords[word]
		}
	}
	return 0
}

// SplitAddress extracts the street name and house number from a full
// address like "No. 7, Zhongshan Road, ...". Addresses in another shape
// come back whole as the street with an empty number.
func SplitAddress(fullAddress string) (street, number string) {
	if m := addressPattern.FindStringSubmatch(fullAddress); m != nil {
		return strings.TrimSpace(m[2]), m[1]
	}
	return fullAddress, ""
}

// ReadSourceRows parses the transactions CSV into source rows. Unparseable
// numeric cells become zero values rather than aborting the import.
func ReadSourceRows(r io.Reader) ([]*models.SourceRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	asFloat := func(record []string, name string) float64 {
		v, _ := strconv.ParseFloat(field(record, name), 64)
		return v
	}
	asInt := func(record []string, name string) int {
		return int(asFloat(record, name))
	}
	asBool := func(record []string, name string) bool {
		return asFloat(record, name) > 0
	}

	var rows []*models.SourceRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		street, number := SplitAddress(field(record, colAddress))
		rows = append(rows, &models.SourceRow{
			District: field(record, colDistrict),

			BuildingType:      field(record, colBuildingType),
			RoomCount:         asInt(record, colRoomCount),
			HallCount:         asInt(record, colHallCount),
			BathroomCount:     asInt(record, colBathroomCount),
			FloorCount:        ParseFloorCount(field(record, colFloorCount)),
			BuildingMaterials: field(record, colMaterials),
			Balcony:           asBool(record, colBalconyArea),

			Address:         field(record, colAddress),
			Street:          street,
			Number:          number,
			CompletionDate:  field(record, colCompletionDate),
			School500m:      asBool(record, colSchool500m),
			Park500m:        asBool(record, colPark500m),
			BusStation500m:  asBool(record, colBusStation500m),
			MRTStation500m:  asBool(record, colMRTStation500m),
			Undesirable500m: asBool(record, colUndesirable500m),

			TransactionDate:       field(record, colTransactionDate),
			Price:                 asFloat(record, colPrice),
			PricePerSqm:           asFloat(record, colPricePerSqm),
			ResidentialPriceIndex: asFloat(record, colPriceIndex),
			HousePriceToIncome:    asFloat(record, colPriceToIncome),
			Year:                  asInt(record, colYear),
			Quarter:               asInt(record, colQuarter),

			MortgageRate:       asFloat(record, colMortgageRate),
			UnemploymentRate:   asFloat(record, colUnemploymentRate),
			EconomicGrowthRate: asFloat(record, colGrowthRate),
			GDP:                asFloat(record, colGDP),

			ParkingType:  field(record, colParkingType),
			ParkingArea:  asFloat(record, colParkingArea),
			ParkingPrice: asFloat(record, colParkingPrice),
		})
	}
	return rows, nil
}
