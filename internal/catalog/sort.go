package catalog

// sortColumns is the closed allow-list mapping sort keys to qualified
// column references. Arbitrary user text must never reach the ORDER BY
// clause; anything outside this map resolves to the default.
var sortColumns = map[string]string{
	"id":       "p.property_id",
	"district": "d.district_name",
	"type":     "b.building_type",
	"price":    "t.price_per_sqm",
	"total":    "t.price",
	"date":     "t.transaction_date",
	"floor":    "b.floor_count",
	"material": "b.building_materials",
	"parking":  "pk.parking_type",
}

// ResolveSort maps a sort key and direction to an ordering instruction.
// Unknown keys fall back to the property id; only exactly "desc" sorts
// descending.
func ResolveSort(sortBy, order string) (column, direction string) {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = sortColumns["id"]
	}
	direction = "ASC"
	if order == "desc" {
		direction = "DESC"
	}
	return column, direction
}
