package ingest

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taipeihouse/server/config"
	"taipeihouse/server/internal/models"
	"taipeihouse/server/internal/queue"
)

// BatchWriter drains the row queue and writes each batch to the store in
// one transaction, retrying transient failures. It assigns the listing ids
// itself: the nth imported row becomes building n, property n and
// transaction n, so a fresh import always yields a dense 1..N sequence.
type BatchWriter struct {
	db     *gorm.DB
	logger *logrus.Logger
	config *config.Config
	queue  *queue.RowQueue

	mu        sync.Mutex
	nextID    int64
	districts map[string]int64
	failure   error
}

// NewBatchWriter creates a writer that starts numbering listings at 1.
func NewBatchWriter(db *gorm.DB, q *queue.RowQueue, cfg *config.Config, logger *logrus.Logger) *BatchWriter {
	return &BatchWriter{
		db:        db,
		logger:    logger,
		config:    cfg,
		queue:     q,
		nextID:    1,
		districts: make(map[string]int64),
	}
}

// Start subscribes the writer to the queue.
func (w *BatchWriter) Start() {
	w.queue.Subscribe(func(batch []*models.SourceRow) error {
		return w.ProcessBatch(batch)
	})
}

// ProcessBatch writes one batch with transaction and retry logic. An empty
// batch is a no-op, not a failure.
func (w *BatchWriter) ProcessBatch(batch []*models.SourceRow) error {
	if len(batch) == 0 {
		return nil
	}

	var err error
	for attempt := 0; attempt <= w.config.Ingest.MaxRetries; attempt++ {
		if attempt > 0 {
			w.logger.Infof("Retrying batch write, attempt %d of %d", attempt, w.config.Ingest.MaxRetries)
			time.Sleep(time.Duration(w.config.Ingest.RetryDelay) * time.Second)
		}

		err = w.db.Transaction(func(tx *gorm.DB) error {
			return w.writeBatch(tx, batch)
		})

		if err == nil {
			w.logger.Infof("Successfully wrote batch of %d rows", len(batch))
			return nil
		}

		w.logger.Errorf("Batch write failed: %v", err)
	}

	err = fmt.Errorf("failed to write batch after %d attempts: %w", w.config.Ingest.MaxRetries, err)
	w.mu.Lock()
	w.failure = err
	w.mu.Unlock()
	return err
}

// Err reports the first batch that exhausted its retries, if any.
func (w *BatchWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failure
}

func (w *BatchWriter) writeBatch(tx *gorm.DB, batch []*models.SourceRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	// District assignments must not survive a rolled-back transaction, or
	// a retry would skip re-inserting them.
	var addedDistricts []string
	committed := false
	defer func() {
		if !committed {
			for _, name := range addedDistricts {
				delete(w.districts, name)
			}
		}
	}()

	var newDistricts []DistrictRow
	economic := make(map[[2]int]EconomicRow)
	buildings := make([]BuildingRow, 0, len(batch))
	properties := make([]PropertyRow, 0, len(batch))
	transactions := make([]TransactionRow, 0, len(batch))
	var parkings []ParkingRow

	id := w.nextID
	for _, row := range batch {
		districtID, known := w.districts[row.District]
		if !known {
			districtID = int64(len(w.districts) + 1)
			w.districts[row.District] = districtID
			addedDistricts = append(addedDistricts, row.District)
			newDistricts = append(newDistricts, DistrictRow{
				DistrictID:   districtID,
				DistrictName: row.District,
			})
		}

		key := [2]int{row.Year, row.Quarter}
		if _, seen := economic[key]; !seen {
			economic[key] = EconomicRow{
				Year:               row.Year,
				Quarter:            row.Quarter,
				MortgageRate:       row.MortgageRate,
				UnemploymentRate:   row.UnemploymentRate,
				EconomicGrowthRate: row.EconomicGrowthRate,
				GDP:                row.GDP,
			}
		}

		buildings = append(buildings, BuildingRow{
			BuildingID:        id,
			BuildingType:      row.BuildingType,
			RoomCount:         row.RoomCount,
			HallCount:         row.HallCount,
			BathroomCount:     row.BathroomCount,
			FloorCount:        row.FloorCount,
			BuildingMaterials: row.BuildingMaterials,
			Balcony:           row.Balcony,
		})
		properties = append(properties, PropertyRow{
			PropertyID:      id,
			DistrictID:      districtID,
			BuildingID:      id,
			Address:         row.Address,
			Street:          row.Street,
			Number:          row.Number,
			CompletionDate:  row.CompletionDate,
			School500m:      row.School500m,
			Park500m:        row.Park500m,
			BusStation500m:  row.BusStation500m,
			MRTStation500m:  row.MRTStation500m,
			Undesirable500m: row.Undesirable500m,
		})
		transactions = append(transactions, TransactionRow{
			TransactionID:         id,
			PropertyID:            id,
			TransactionDate:       row.TransactionDate,
			Price:                 row.Price,
			PricePerSqm:           row.PricePerSqm,
			ResidentialPriceIndex: row.ResidentialPriceIndex,
			HousePriceToIncome:    row.HousePriceToIncome,
			Year:                  row.Year,
			Quarter:               row.Quarter,
		})
		if row.HasParking() {
			parkings = append(parkings, ParkingRow{
				PropertyID:     id,
				ParkingType:    row.ParkingType,
				ParkingAreaSqm: row.ParkingArea,
				ParkingPrice:   row.ParkingPrice,
			})
		}
		id++
	}

	if len(newDistricts) > 0 {
		if err := tx.Create(&newDistricts).Error; err != nil {
			return fmt.Errorf("failed to insert districts: %w", err)
		}
	}
	if len(economic) > 0 {
		economicRows := make([]EconomicRow, 0, len(economic))
		for _, row := range economic {
			economicRows = append(economicRows, row)
		}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&economicRows).Error
		if err != nil {
			return fmt.Errorf("failed to insert economic rows: %w", err)
		}
	}
	if err := tx.Create(&buildings).Error; err != nil {
		return fmt.Errorf("failed to insert buildings: %w", err)
	}
	if err := tx.Create(&properties).Error; err != nil {
		return fmt.Errorf("failed to insert properties: %w", err)
	}
	if err := tx.Create(&transactions).Error; err != nil {
		return fmt.Errorf("failed to insert transactions: %w", err)
	}
	if len(parkings) > 0 {
		if err := tx.Create(&parkings).Error; err != nil {
			return fmt.Errorf("failed to insert parkings: %w", err)
		}
	}

	committed = true
	w.nextID = id
	return nil
}

// Finalize aligns the auto-increment counters with the imported ids so the
// next created listing continues the dense sequence.
func (w *BatchWriter) Finalize() error {
	w.mu.Lock()
	maxID := w.nextID - 1
	w.mu.Unlock()

	for _, table := range []string{"Properties", "Building", "Transaction", "Parking"} {
		err := w.db.Exec("UPDATE sqlite_sequence SET seq = ? WHERE name = ?", maxID, table).Error
		if err != nil {
			return fmt.Errorf("failed to reset id counter for %s: %w", table, err)
		}
	}
	return nil
}

// Imported returns how many listings have been written so far.
func (w *BatchWriter) Imported() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nextID - 1
}
