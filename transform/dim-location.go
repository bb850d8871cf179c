package transform

import "github.com/alixiazul/data-engineering-project/entity"

// ShapeLocation builds dim_location rows from address rows: address_id is
// renamed location_id and every other column passes through unchanged, nulls
// included. It fails with EmptyInputError when given no rows.
func ShapeLocation(rows []entity.AddressRow) ([]entity.DimLocation, error) {
	if len(rows) == 0 {
		return nil, &EmptyInputError{Entity: "dim_location"}
	}
	out := make([]entity.DimLocation, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.DimLocation{
			LocationID:   r.AddressID,
			AddressLine1: r.AddressLine1,
			AddressLine2: r.AddressLine2,
			District:     r.District,
			City:         r.City,
			PostalCode:   r.PostalCode,
			Country:      r.Country,
			Phone:        r.Phone,
		})
	}
	return out, nil
}
