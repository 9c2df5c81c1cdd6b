package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"taipeihouse/server/internal/models"
)

var (
	// ErrNotFound is returned when a mutation targets a listing id that
	// does not exist.
	ErrNotFound = errors.New("listing not found")

	// ErrDistrictNotFound is returned when the submitted district id has
	// no District row.
	ErrDistrictNotFound = errors.New("district not found")
)

// AssumedFloorArea is the fixed floor area in square meters used to derive
// a total price from the submitted price per square meter. Placeholder
// inherited from the original data model; the form does not ask for a real
// floor area.
const AssumedFloorArea = 30

// isForeignKeyErr detects sqlite foreign key violations, which surface as a
// plain error string from the driver.
func isForeignKeyErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// CreateListing inserts the building, property, transaction and optional
// parking rows for a new listing in one transaction and returns the new
// property id.
func (d *Database) CreateListing(input models.ListingInput) (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO Building (building_type, building_materials, floor_count, room_count, hall_count, bathroom_count, balcony)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, input.BuildingType, input.BuildingMaterials, input.FloorCount,
		input.RoomCount, input.HallCount, input.BathroomCount, input.Balcony)
	if err != nil {
		return 0, fmt.Errorf("failed to insert building: %w", err)
	}
	buildingID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get building id: %w", err)
	}

	result, err = tx.Exec(`
		INSERT INTO Properties (district_id, building_id, address)
		VALUES (?, ?, ?)
	`, input.DistrictID, buildingID, input.Address)
	if isForeignKeyErr(err) {
		return 0, ErrDistrictNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert property: %w", err)
	}
	propertyID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get property id: %w", err)
	}

	totalPrice := input.PricePerSqm * AssumedFloorArea
	_, err = tx.Exec(`
		INSERT INTO "Transaction" (property_id, transaction_date, price, price_per_sqm)
		VALUES (?, ?, ?, ?)
	`, propertyID, input.TransactionDate, totalPrice, input.PricePerSqm)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if input.ParkingType != "" {
		_, err = tx.Exec(`
			INSERT INTO Parking (property_id, parking_type, parking_price)
			VALUES (?, ?, ?)
		`, propertyID, input.ParkingType, input.ParkingPrice)
		if err != nil {
			return 0, fmt.Errorf("failed to insert parking: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return propertyID, nil
}

// UpdateListing mutates the four rows of a listing in place. The parking
// row is added or removed as the submitted parking type toggles.
func (d *Database) UpdateListing(propertyID int64, input models.ListingInput) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var buildingID int64
	err = tx.QueryRow("SELECT building_id FROM Properties WHERE property_id = ?", propertyID).Scan(&buildingID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up property: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE Properties SET address = ?, district_id = ? WHERE property_id = ?
	`, input.Address, input.DistrictID, propertyID)
	if isForeignKeyErr(err) {
		return ErrDistrictNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE Building
		SET building_type = ?, building_materials = ?, floor_count = ?, room_count = ?, hall_count = ?, bathroom_count = ?, balcony = ?
		WHERE building_id = ?
	`, input.BuildingType, input.BuildingMaterials, input.FloorCount,
		input.RoomCount, input.HallCount, input.BathroomCount, input.Balcony, buildingID)
	if err != nil {
		return fmt.Errorf("failed to update building: %w", err)
	}

	totalPrice := input.PricePerSqm * AssumedFloorArea
	_, err = tx.Exec(`
		UPDATE "Transaction"
		SET price_per_sqm = ?, price = ?, transaction_date = ?
		WHERE property_id = ?
	`, input.PricePerSqm, totalPrice, input.TransactionDate, propertyID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	var hasParking bool
	err = tx.QueryRow("SELECT EXISTS(SELECT 1 FROM Parking WHERE property_id = ?)", propertyID).Scan(&hasParking)
	if err != nil {
		return fmt.Errorf("failed to check parking: %w", err)
	}

	switch {
	case input.ParkingType != "" && hasParking:
		_, err = tx.Exec(`
			UPDATE Parking SET parking_type = ?, parking_price = ? WHERE property_id = ?
		`, input.ParkingType, input.ParkingPrice, propertyID)
	case input.ParkingType != "":
		_, err = tx.Exec(`
			INSERT INTO Parking (property_id, parking_type, parking_price) VALUES (?, ?, ?)
		`, propertyID, input.ParkingType, input.ParkingPrice)
	case hasParking:
		_, err = tx.Exec("DELETE FROM Parking WHERE property_id = ?", propertyID)
	}
	if err != nil {
		return fmt.Errorf("failed to update parking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteListing removes the four rows of a listing and closes the gap in
// the id sequence: every larger id is decremented by one across all four
// tables and the auto-increment counters are reset to the new maximum.
// Deleted ids are therefore reused, and any externally held id may point at
// a different listing afterwards.
//
// The renumbering pass rewrites primary keys with dependent rows still in
// place, so foreign key enforcement is switched off for the duration. The
// database handle is limited to a single connection, which keeps the PRAGMA
// on the same session as the transaction and serializes concurrent deletes.
func (d *Database) DeleteListing(propertyID int64) error {
	var exists bool
	err := d.db.QueryRow("SELECT EXISTS(SELECT 1 FROM Properties WHERE property_id = ?)", propertyID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check property: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	if _, err := d.db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("failed to disable foreign keys: %w", err)
	}
	defer d.db.Exec("PRAGMA foreign_keys = ON")

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var buildingID int64
	err = tx.QueryRow("SELECT building_id FROM Properties WHERE property_id = ?", propertyID).Scan(&buildingID)
	if err != nil {
		return fmt.Errorf("failed to look up building: %w", err)
	}

	deletes := []struct {
		query string
		arg   int64
	}{
		{"DELETE FROM Parking WHERE property_id = ?", propertyID},
		{`DELETE FROM "Transaction" WHERE property_id = ?`, propertyID},
		{"DELETE FROM Properties WHERE property_id = ?", propertyID},
		{"DELETE FROM Building WHERE building_id = ?", buildingID},
	}
	for _, del := range deletes {
		if _, err := tx.Exec(del.query, del.arg); err != nil {
			return fmt.Errorf("failed to delete listing rows: %w", err)
		}
	}

	renumbers := []string{
		"UPDATE Building SET building_id = building_id - 1 WHERE building_id > ?",
		"UPDATE Properties SET property_id = property_id - 1, building_id = building_id - 1 WHERE property_id > ?",
		`UPDATE "Transaction" SET property_id = property_id - 1 WHERE property_id > ?`,
		"UPDATE Parking SET property_id = property_id - 1 WHERE property_id > ?",
	}
	for _, stmt := range renumbers {
		if _, err := tx.Exec(stmt, propertyID); err != nil {
			return fmt.Errorf("failed to renumber ids: %w", err)
		}
	}

	var maxID sql.NullInt64
	if err := tx.QueryRow("SELECT MAX(property_id) FROM Properties").Scan(&maxID); err != nil {
		return fmt.Errorf("failed to read max id: %w", err)
	}
	for _, table := range []string{"Properties", "Building", "Transaction", "Parking"} {
		if _, err := tx.Exec("UPDATE sqlite_sequence SET seq = ? WHERE name = ?", maxID.Int64, table); err != nil {
			return fmt.Errorf("failed to reset id counter: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
