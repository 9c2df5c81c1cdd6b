package catalog

import "strings"

// NoParking is the filter value meaning "listings without a parking space".
const NoParking = "None"

// parkingNotApplicable is the textual sentinel the source data uses for
// transactions without a parking space. It must be treated like an absent
// parking row everywhere.
const parkingNotApplicable = "nan"

// Filters holds the optional facet values for a listing search. Empty
// fields contribute no clause.
type Filters struct {
	District     string `form:"district"`
	BuildingType string `form:"building_type"`
	Material     string `form:"material"`
	Parking      string `form:"parking"`
	Balcony      string `form:"balcony"`
	MinPrice     string `form:"min_price"`
	MaxPrice     string `form:"max_price"`
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return f != Filters{}
}

// BuildPredicate translates the filters into a conjunctive WHERE clause over
// the joined listing view plus the bound arguments in placeholder order.
// Filter values are only ever bound as parameters, never written into the
// clause text.
func BuildPredicate(f Filters) (string, []interface{}) {
	var clause strings.Builder
	clause.WriteString("WHERE 1=1")
	var args []interface{}

	if f.District != "" {
		clause.WriteString(" AND p.district_id = ?")
		args = append(args, f.District)
	}
	if f.BuildingType != "" {
		clause.WriteString(" AND b.building_type = ?")
		args = append(args, f.BuildingType)
	}
	if f.MinPrice != "" {
		clause.WriteString(" AND t.price_per_sqm >= ?")
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice != "" {
		clause.WriteString(" AND t.price_per_sqm <= ?")
		args = append(args, f.MaxPrice)
	}
	if f.Material != "" {
		clause.WriteString(" AND b.building_materials = ?")
		args = append(args, f.Material)
	}
	if f.Parking != "" {
		if f.Parking == NoParking {
			// No parking row, or the not-applicable sentinel.
			clause.WriteString(" AND (pk.parking_type IS NULL OR pk.parking_type = ?)")
			args = append(args, parkingNotApplicable)
		} else {
			clause.WriteString(" AND pk.parking_type = ?")
			args = append(args, f.Parking)
		}
	}
	switch f.Balcony {
	case "yes":
		clause.WriteString(" AND b.balcony = 1")
	case "no":
		// Missing balcony data counts as "no".
		clause.WriteString(" AND (b.balcony = 0 OR b.balcony IS NULL)")
	}

	return clause.String(), args
}
