package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDistricts_OrderedByID(t *testing.T) {
	db := newTestDatabase(t)
	seedDistricts(t, db, "Zhongzheng", "Datong", "Wanhua")

	districts, err := db.GetDistricts()
	require.NoError(t, err)
	require.Len(t, districts, 3)
	assert.Equal(t, int64(1), districts[0].ID)
	assert.Equal(t, "Zhongzheng", districts[0].Name)
	assert.Equal(t, "Wanhua", districts[2].Name)
}

func TestGetBuildingTypes_CatchAllValuesLast(t *testing.T) {
	db := newTestDatabase(t)

	for _, bt := range []string{"Warehouse", "Apartment", "Other", "Building", "Factory", "Suite"} {
		_, err := db.db.Exec("INSERT INTO Building (building_type) VALUES (?)", bt)
		require.NoError(t, err)
	}
	// Duplicates collapse.
	_, err := db.db.Exec("INSERT INTO Building (building_type) VALUES ('Apartment')")
	require.NoError(t, err)

	types, err := db.GetBuildingTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"Apartment", "Building", "Suite", "Factory", "Other", "Warehouse"}, types)
}

func TestGetMaterials_CatchAllValuesLast(t *testing.T) {
	db := newTestDatabase(t)

	for _, m := range []string{"See other registration items", "Brick", "Other", "Reinforced concrete"} {
		_, err := db.db.Exec("INSERT INTO Building (building_materials) VALUES (?)", m)
		require.NoError(t, err)
	}

	materials, err := db.GetMaterials()
	require.NoError(t, err)
	assert.Equal(t, []string{"Brick", "Reinforced concrete", "Other", "See other registration items"}, materials)
}

func TestGetParkingTypes_ExcludesSentinel(t *testing.T) {
	db := newTestDatabase(t)
	seedDistricts(t, db, "Daan")
	propertyID := createListing(t, db, testInput(1, "No. 1, Xinyi Road", 250000))

	for _, pt := range []string{"Ramp", "nan", "Other", "Tower", "nan"} {
		_, err := db.db.Exec("INSERT INTO Parking (property_id, parking_type) VALUES (?, ?)", propertyID, pt)
		require.NoError(t, err)
	}

	types, err := db.GetParkingTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"Ramp", "Tower", "Other"}, types)
	assert.NotContains(t, types, "nan")
}

func TestGetFacets_CollectsAllLists(t *testing.T) {
	db := newTestDatabase(t)
	seedDistricts(t, db, "Daan")
	createListing(t, db, testInput(1, "No. 1, Xinyi Road", 250000))

	facets, err := db.GetFacets()
	require.NoError(t, err)
	assert.Len(t, facets.Districts, 1)
	assert.Equal(t, []string{"Apartment"}, facets.BuildingTypes)
	assert.Equal(t, []string{"Reinforced concrete"}, facets.Materials)
	assert.Empty(t, facets.ParkingTypes)
}
