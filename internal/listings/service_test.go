package listings

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taipeihouse/server/internal/catalog"
	"taipeihouse/server/internal/database"
	"taipeihouse/server/internal/models"
)

func newTestService(t *testing.T) (*Service, *database.Database) {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(db, logger), db
}

func seedListings(t *testing.T, db *database.Database, count int) {
	t.Helper()

	_, err := db.GetDB().Exec("INSERT INTO District (district_id, district_name) VALUES (1, 'Daan')")
	require.NoError(t, err)

	for i := 1; i <= count; i++ {
		_, err := db.CreateListing(models.ListingInput{
			DistrictID:        1,
			Address:           fmt.Sprintf("No. %d, Xinyi Road", i),
			BuildingType:      "Apartment",
			BuildingMaterials: "Reinforced concrete",
			FloorCount:        10,
			RoomCount:         3,
			HallCount:         2,
			BathroomCount:     2,
			Balcony:           true,
			PricePerSqm:       float64(100000 + i*1000),
			TransactionDate:   "2013/5/14",
		})
		require.NoError(t, err)
	}
}

func TestGetListings_PageMetadataIsConsistent(t *testing.T) {
	service, db := newTestService(t)
	seedListings(t, db, 45)

	page, err := service.GetListings(Query{Page: 2, PageSize: 20})
	require.NoError(t, err)

	assert.Len(t, page.Records, 20)
	assert.Equal(t, 45, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []interface{}{1, 2, 3}, page.PageRange)
	// Second page starts after the first twenty rows.
	assert.Equal(t, int64(21), page.Records[0].PropertyID)
}

func TestGetListings_ClampsPageAndSizeDefaults(t *testing.T) {
	service, db := newTestService(t)
	seedListings(t, db, 5)

	page, err := service.GetListings(Query{Page: 0, PageSize: 0})
	require.NoError(t, err)

	assert.Len(t, page.Records, 5)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, int64(1), page.Records[0].PropertyID)
}

func TestGetListings_SortAppliesAcrossPages(t *testing.T) {
	service, db := newTestService(t)
	seedListings(t, db, 30)

	page, err := service.GetListings(Query{SortBy: "price", Order: "desc", Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Records, 10)
	// Most expensive row on page two follows the cheapest of page one.
	assert.Equal(t, 120000.0, page.Records[0].PricePerSqm)
	assert.Equal(t, 111000.0, page.Records[9].PricePerSqm)
}

func TestGetListings_EmptyResultStillPages(t *testing.T) {
	service, db := newTestService(t)
	seedListings(t, db, 3)

	page, err := service.GetListings(Query{
		Filters: catalog.Filters{BuildingType: "Warehouse"},
	})
	require.NoError(t, err)

	assert.NotNil(t, page.Records)
	assert.Empty(t, page.Records)
	assert.Zero(t, page.TotalCount)
	assert.Zero(t, page.TotalPages)
	assert.Empty(t, page.PageRange)
}

func TestGetListing(t *testing.T) {
	service, db := newTestService(t)
	seedListings(t, db, 2)

	listing, err := service.GetListing(2)
	require.NoError(t, err)
	assert.Equal(t, "No. 2, Xinyi Road", listing.Address)

	_, err = service.GetListing(42)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
