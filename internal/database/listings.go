package database

import (
	"database/sql"
	"fmt"

	"taipeihouse/server/internal/models"
)

// listingJoin is the full listing view: every property with its
// transaction, district and building rows, plus the optional parking row.
// The count and data queries must run over the same join so the returned
// page and total stay consistent.
const listingJoin = `
	FROM Properties p
	JOIN "Transaction" t ON p.property_id = t.property_id
	JOIN District d ON p.district_id = d.district_id
	JOIN Building b ON p.building_id = b.building_id
	LEFT JOIN Parking pk ON p.property_id = pk.property_id
`

const listingColumns = `
	SELECT p.property_id, p.address, COALESCE(p.completion_date, '') as completion_date,
	       d.district_name,
	       b.building_type, b.floor_count, b.balcony,
	       b.building_materials, b.room_count, b.hall_count, b.bathroom_count,
	       t.price, t.price_per_sqm, COALESCE(t.transaction_date, '') as transaction_date,
	       p.school_500m, p.mrt_station_500m, p.park_500m, p.bus_station_500m, p.undesirable_500m,
	       pk.parking_type, pk.parking_price
`

// CountListings returns how many listings match the predicate. The
// predicate and args must come from catalog.BuildPredicate so they line up
// with the data query.
func (d *Database) CountListings(predicate string, args []interface{}) (int, error) {
	query := "SELECT COUNT(*) " + listingJoin + predicate

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count listings: %v", err)
	}
	return count, nil
}

// GetListings returns one page of fully joined listing rows. sortColumn and
// sortDirection must come from catalog.ResolveSort; they are the only
// strings spliced into the query text and are drawn from closed allow-lists.
func (d *Database) GetListings(predicate string, args []interface{}, sortColumn, sortDirection string, limit, offset int) ([]models.Listing, error) {
	query := listingColumns + listingJoin + predicate +
		fmt.Sprintf(" ORDER BY %s %s LIMIT ? OFFSET ?", sortColumn, sortDirection)

	queryArgs := append(append([]interface{}{}, args...), limit, offset)
	rows, err := d.db.Query(query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %v", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}
	return listings, rows.Err()
}

// GetListingByID returns one listing or nil when the id does not exist.
func (d *Database) GetListingByID(propertyID int64) (*models.Listing, error) {
	query := listingColumns + listingJoin + "WHERE p.property_id = ?"

	rows, err := d.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query listing: %v", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanListing(rows)
}

func scanListing(rows *sql.Rows) (*models.Listing, error) {
	var l models.Listing
	var address, districtName, buildingType, materials sql.NullString
	var completionDate, transactionDate sql.NullString
	var floorCount, roomCount, hallCount, bathroomCount sql.NullInt64
	var balcony, school, mrt, park, bus, undesirable sql.NullBool
	var price, pricePerSqm sql.NullFloat64
	var parkingType sql.NullString
	var parkingPrice sql.NullFloat64

	err := rows.Scan(
		&l.PropertyID,
		&address,
		&completionDate,
		&districtName,
		&buildingType,
		&floorCount,
		&balcony,
		&materials,
		&roomCount,
		&hallCount,
		&bathroomCount,
		&price,
		&pricePerSqm,
		&transactionDate,
		&school,
		&mrt,
		&park,
		&bus,
		&undesirable,
		&parkingType,
		&parkingPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan listing: %v", err)
	}

	l.Address = address.String
	l.CompletionDate = completionDate.String
	l.DistrictName = districtName.String
	l.BuildingType = buildingType.String
	l.BuildingMaterials = materials.String
	l.FloorCount = int(floorCount.Int64)
	l.RoomCount = int(roomCount.Int64)
	l.HallCount = int(hallCount.Int64)
	l.BathroomCount = int(bathroomCount.Int64)
	l.Balcony = balcony.Valid && balcony.Bool
	l.Price = price.Float64
	l.PricePerSqm = pricePerSqm.Float64
	l.TransactionDate = transactionDate.String
	l.School500m = school.Valid && school.Bool
	l.MRTStation500m = mrt.Valid && mrt.Bool
	l.Park500m = park.Valid && park.Bool
	l.BusStation500m = bus.Valid && bus.Bool
	l.Undesirable500m = undesirable.Valid && undesirable.Bool

	if parkingType.Valid {
		pt := parkingType.String
		l.ParkingType = &pt
	}
	if parkingPrice.Valid {
		pp := parkingPrice.Float64
		l.ParkingPrice = &pp
	}

	return &l, nil
}

// GetDistrictStats returns the average price per square meter for each
// district, most expensive first, for the overview chart.
func (d *Database) GetDistrictStats() (*models.DistrictStats, error) {
	rows, err := d.db.Query(`
		SELECT d.district_name, AVG(t.price_per_sqm) as avg_price
		FROM "Transaction" t
		JOIN Properties p ON t.property_id = p.property_id
		JOIN District d ON p.district_id = d.district_id
		WHERE t.price_per_sqm > 0
		GROUP BY d.district_name
		ORDER BY avg_price DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query district stats: %v", err)
	}
	defer rows.Close()

	stats := &models.DistrictStats{Labels: []string{}, Data: []int{}}
	for rows.Next() {
		var name string
		var avgPrice float64
		if err := rows.Scan(&name, &avgPrice); err != nil {
			return nil, fmt.Errorf("failed to scan district stats: %v", err)
		}
		stats.Labels = append(stats.Labels, name)
		stats.Data = append(stats.Data, int(avgPrice))
	}
	return stats, rows.Err()
}

// FindSuggestionCandidates returns listings whose estimated total price at
// the desired size fits within the budget, most expensive per square meter
// first, capped at limit.
func (d *Database) FindSuggestionCandidates(desiredSize, maxBudget float64, limit int) ([]models.SuggestionCandidate, error) {
	rows, err := d.db.Query(`
		SELECT p.property_id, p.address, t.price_per_sqm,
		       d.district_name, b.building_type,
		       (t.price_per_sqm * ?) AS total_estimated_price
		FROM Properties p
		JOIN "Transaction" t ON p.property_id = t.property_id
		JOIN District d ON p.district_id = d.district_id
		JOIN Building b ON p.building_id = b.building_id
		WHERE (t.price_per_sqm * ?) <= ?
		ORDER BY t.price_per_sqm DESC
		LIMIT ?
	`, desiredSize, desiredSize, maxBudget, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestion candidates: %v", err)
	}
	defer rows.Close()

	var candidates []models.SuggestionCandidate
	for rows.Next() {
		var c models.SuggestionCandidate
		var address, districtName, buildingType sql.NullString
		err := rows.Scan(&c.PropertyID, &address, &c.PricePerSqm, &districtName, &buildingType, &c.TotalEstimatedPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion candidate: %v", err)
		}
		c.Address = address.String
		c.DistrictName = districtName.String
		c.BuildingType = buildingType.String
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
