package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taipeihouse/server/internal/models"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())
	return db
}

func seedDistricts(t *testing.T, db *Database, names ...string) {
	t.Helper()
	for i, name := range names {
		_, err := db.db.Exec(
			"INSERT INTO District (district_id, district_name) VALUES (?, ?)",
			i+1, name,
		)
		require.NoError(t, err)
	}
}

func testInput(districtID int64, address string, pricePerSqm float64) models.ListingInput {
	return models.ListingInput{
		DistrictID:        districtID,
		Address:           address,
		BuildingType:      "Apartment",
		BuildingMaterials: "Reinforced concrete",
		FloorCount:        12,
		RoomCount:         3,
		HallCount:         2,
		BathroomCount:     2,
		Balcony:           true,
		PricePerSqm:       pricePerSqm,
		TransactionDate:   "2013/5/14",
	}
}

func createListing(t *testing.T, db *Database, input models.ListingInput) int64 {
	t.Helper()
	id, err := db.CreateListing(input)
	require.NoError(t, err)
	return id
}
