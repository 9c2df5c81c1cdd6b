package database

import (
	"fmt"

	"taipeihouse/server/internal/models"
)

// GetDistricts returns the seeded districts in id order.
func (d *Database) GetDistricts() ([]models.District, error) {
	rows, err := d.db.Query(`
		SELECT district_id, district_name
		FROM District
		ORDER BY district_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query districts: %v", err)
	}
	defer rows.Close()

	var districts []models.District
	for rows.Next() {
		var district models.District
		if err := rows.Scan(&district.ID, &district.Name); err != nil {
			return nil, fmt.Errorf("failed to scan district: %v", err)
		}
		districts = append(districts, district)
	}
	return districts, rows.Err()
}

// GetBuildingTypes returns the distinct building types with the catch-all
// values pushed to the end of the list.
func (d *Database) GetBuildingTypes() ([]string, error) {
	return d.distinctValues(`
		SELECT DISTINCT building_type
		FROM Building
		WHERE building_type IS NOT NULL
		ORDER BY
			CASE WHEN building_type IN ('Other', 'Others', 'Warehouse', 'Factory') THEN 2 ELSE 1 END,
			building_type ASC
	`)
}

// GetMaterials returns the distinct building materials, catch-all values last.
func (d *Database) GetMaterials() ([]string, error) {
	return d.distinctValues(`
		SELECT DISTINCT building_materials
		FROM Building
		WHERE building_materials IS NOT NULL
		ORDER BY
			CASE WHEN building_materials IN ('Other', 'See other registration items') THEN 2 ELSE 1 END,
			building_materials ASC
	`)
}

// GetParkingTypes returns the distinct parking types. The not-applicable
// sentinel is excluded; it means "no parking", not a type of its own.
func (d *Database) GetParkingTypes() ([]string, error) {
	return d.distinctValues(`
		SELECT DISTINCT parking_type
		FROM Parking
		WHERE parking_type IS NOT NULL AND parking_type != 'nan'
		ORDER BY
			CASE WHEN parking_type IN ('Other', 'Others') THEN 2 ELSE 1 END,
			parking_type ASC
	`)
}

// GetFacets collects every facet list in one call for the filter controls.
func (d *Database) GetFacets() (*models.FacetSet, error) {
	districts, err := d.GetDistricts()
	if err != nil {
		return nil, err
	}
	buildingTypes, err := d.GetBuildingTypes()
	if err != nil {
		return nil, err
	}
	materials, err := d.GetMaterials()
	if err != nil {
		return nil, err
	}
	parkingTypes, err := d.GetParkingTypes()
	if err != nil {
		return nil, err
	}

	return &models.FacetSet{
		Districts:     districts,
		BuildingTypes: buildingTypes,
		Materials:     materials,
		ParkingTypes:  parkingTypes,
	}, nil
}

func (d *Database) distinctValues(query string) ([]string, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query facet values: %v", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan facet value: %v", err)
		}
		values = append(values, value)
	}
	return values, rows.Err()
}
