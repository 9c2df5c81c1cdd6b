package ingest

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taipeihouse/server/config"
	"taipeihouse/server/internal/database"
	"taipeihouse/server/internal/models"
	"taipeihouse/server/internal/queue"
)

func newTestWriter(t *testing.T) (*BatchWriter, *database.Database) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDatabase(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{}
	cfg.Ingest.BatchSize = 500
	cfg.Ingest.QueueSize = 16
	cfg.Ingest.MaxRetries = 0
	cfg.Ingest.RetryDelay = 0

	q := queue.NewRowQueue(cfg.Ingest.QueueSize, logger)
	t.Cleanup(func() { q.Close() })

	return NewBatchWriter(gdb, q, cfg, logger), db
}

func sourceRow(district, address string, pricePerSqm float64) *models.SourceRow {
	return &models.SourceRow{
		District:          district,
		BuildingType:      "Apartment",
		RoomCount:         3,
		HallCount:         2,
		BathroomCount:     2,
		FloorCount:        12,
		BuildingMaterials: "Reinforced concrete",
		Balcony:           true,
		Address:           address,
		Street:            "Xinyi Road",
		Number:            "1",
		TransactionDate:   "2013/5/14",
		Price:             pricePerSqm * 30,
		PricePerSqm:       pricePerSqm,
		Year:              2013,
		Quarter:           2,
		MortgageRate:      1.95,
	}
}

func countTable(t *testing.T, db *database.Database, table string) int {
	t.Helper()
	var count int
	require.NoError(t, db.GetDB().QueryRow(`SELECT COUNT(*) FROM "`+table+`"`).Scan(&count))
	return count
}

func TestProcessBatch_WritesDenseIDSequence(t *testing.T) {
	writer, db := newTestWriter(t)

	withParking := sourceRow("Daan", "No. 2, Renai Road", 250000)
	withParking.ParkingType = "Ramp"
	withParking.ParkingPrice = 1500000

	batch := []*models.SourceRow{
		sourceRow("Daan", "No. 1, Xinyi Road", 200000),
		withParking,
		sourceRow("Shilin", "No. 3, Tianmu Road", 180000),
	}
	require.NoError(t, writer.ProcessBatch(batch))
	assert.Equal(t, int64(3), writer.Imported())

	assert.Equal(t, 3, countTable(t, db, "Properties"))
	assert.Equal(t, 3, countTable(t, db, "Building"))
	assert.Equal(t, 3, countTable(t, db, "Transaction"))
	assert.Equal(t, 1, countTable(t, db, "Parking"))
	// Two distinct districts, one economic quarter.
	assert.Equal(t, 2, countTable(t, db, "District"))
	assert.Equal(t, 1, countTable(t, db, "Economic"))

	// Row n lands as building n, property n and transaction n.
	listing, err := db.GetListingByID(2)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, "No. 2, Renai Road", listing.Address)
	assert.Equal(t, "Daan", listing.DistrictName)
	require.NotNil(t, listing.ParkingType)
	assert.Equal(t, "Ramp", *listing.ParkingType)
}

func TestProcessBatch_SecondBatchContinuesSequence(t *testing.T) {
	writer, db := newTestWriter(t)

	require.NoError(t, writer.ProcessBatch([]*models.SourceRow{
		sourceRow("Daan", "No. 1, Xinyi Road", 200000),
	}))
	require.NoError(t, writer.ProcessBatch([]*models.SourceRow{
		sourceRow("Daan", "No. 2, Xinyi Road", 210000),
	}))

	assert.Equal(t, int64(2), writer.Imported())
	// The known district and quarter are not duplicated.
	assert.Equal(t, 1, countTable(t, db, "District"))
	assert.Equal(t, 1, countTable(t, db, "Economic"))

	listing, err := db.GetListingByID(2)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, "No. 2, Xinyi Road", listing.Address)
}

func TestProcessBatch_EmptyBatchIsNoOp(t *testing.T) {
	writer, db := newTestWriter(t)

	require.NoError(t, writer.ProcessBatch(nil))
	require.NoError(t, writer.ProcessBatch([]*models.SourceRow{}))

	assert.NoError(t, writer.Err())
	assert.Zero(t, writer.Imported())
	assert.Equal(t, 0, countTable(t, db, "Properties"))
}

func TestProcessBatch_FailureRollsBackDistrictMap(t *testing.T) {
	writer, db := newTestWriter(t)

	// Occupy building id 1 so the first batch's insert conflicts.
	_, err := db.GetDB().Exec("INSERT INTO Building (building_id, building_type) VALUES (1, 'Blocker')")
	require.NoError(t, err)

	err = writer.ProcessBatch([]*models.SourceRow{
		sourceRow("Daan", "No. 1, Xinyi Road", 200000),
	})
	require.Error(t, err)
	assert.Error(t, writer.Err())
	assert.Zero(t, writer.Imported())
	assert.Equal(t, 0, countTable(t, db, "District"))
	assert.Equal(t, 0, countTable(t, db, "Properties"))

	// Clearing the blocker lets the same batch go through, district included.
	_, err = db.GetDB().Exec("DELETE FROM Building")
	require.NoError(t, err)

	require.NoError(t, writer.ProcessBatch([]*models.SourceRow{
		sourceRow("Daan", "No. 1, Xinyi Road", 200000),
	}))
	assert.Equal(t, 1, countTable(t, db, "District"))
	assert.Equal(t, int64(1), writer.Imported())
}

func TestFinalize_AlignsAutoIncrementCounters(t *testing.T) {
	writer, db := newTestWriter(t)

	require.NoError(t, writer.ProcessBatch([]*models.SourceRow{
		sourceRow("Daan", "No. 1, Xinyi Road", 200000),
		sourceRow("Daan", "No. 2, Xinyi Road", 210000),
	}))
	require.NoError(t, writer.Finalize())

	// A listing created through the gateway continues the sequence.
	id, err := db.CreateListing(models.ListingInput{
		DistrictID:      1,
		Address:         "No. 3, Xinyi Road",
		BuildingType:    "Apartment",
		PricePerSqm:     220000,
		TransactionDate: "2013/6/1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}
