package database

import "fmt"

// RunMigrations creates the catalog schema if it does not exist yet.
// District and Economic are reference data filled once by ingestion; the
// other four tables hold one row group per listing.
func (d *Database) RunMigrations() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS District (
			district_id INTEGER PRIMARY KEY,
			district_name TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS Building (
			building_id INTEGER PRIMARY KEY AUTOINCREMENT,
			building_type TEXT,
			room_count INTEGER,
			hall_count INTEGER,
			bathroom_count INTEGER,
			floor_count INTEGER,
			building_materials TEXT,
			balcony BOOLEAN
		);`,
		`CREATE TABLE IF NOT EXISTS Properties (
			property_id INTEGER PRIMARY KEY AUTOINCREMENT,
			district_id INTEGER,
			building_id INTEGER,
			address TEXT,
			street TEXT,
			number TEXT,
			completion_date DATE,
			school_500m BOOLEAN,
			park_500m BOOLEAN,
			bus_station_500m BOOLEAN,
			mrt_station_500m BOOLEAN,
			undesirable_500m BOOLEAN,
			FOREIGN KEY (district_id) REFERENCES District(district_id),
			FOREIGN KEY (building_id) REFERENCES Building(building_id)
		);`,
		`CREATE TABLE IF NOT EXISTS Economic (
			year INTEGER,
			quarter INTEGER,
			mortgage_rate REAL,
			unemployment_rate REAL,
			economic_growth_rate REAL,
			gdp REAL,
			PRIMARY KEY (year, quarter)
		);`,
		`CREATE TABLE IF NOT EXISTS "Transaction" (
			transaction_id INTEGER PRIMARY KEY AUTOINCREMENT,
			property_id INTEGER,
			transaction_date DATE,
			price REAL,
			price_per_sqm REAL,
			residential_price_index REAL,
			house_price_to_income REAL,
			year INTEGER,
			quarter INTEGER,
			FOREIGN KEY (property_id) REFERENCES Properties(property_id)
		);`,
		`CREATE TABLE IF NOT EXISTS Parking (
			parking_id INTEGER PRIMARY KEY AUTOINCREMENT,
			property_id INTEGER,
			parking_type TEXT,
			parking_area_sqm REAL,
			parking_price REAL,
			FOREIGN KEY (property_id) REFERENCES Properties(property_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_properties_district
			ON Properties(district_id);`,
		`CREATE INDEX IF NOT EXISTS idx_transaction_property
			ON "Transaction"(property_id);`,
		`CREATE INDEX IF NOT EXISTS idx_parking_property
			ON Parking(property_id);`,
	}

	for _, stmt := range statements {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %v", err)
		}
	}
	return nil
}
