package transform

import "github.com/alixiazul/data-engineering-project/entity"

// ShapeDesign builds dim_design rows: duplicates are removed on the non
// primary-key columns, then any row with a null in a target column is
// dropped.
func ShapeDesign(rows []entity.DesignRow) ([]entity.DimDesign, error) {
	rows = dedupBy(rows, func(r entity.DesignRow) string {
		return dedupKey(r.CreatedAt, r.DesignName, r.FileLocation, r.FileName, r.LastUpdated)
	})
	out := make([]entity.DimDesign, 0, len(rows))
	for _, r := range rows {
		if r.DesignID == nil || r.DesignName == nil || r.FileLocation == nil || r.FileName == nil {
			continue
		}
		out = append(out, entity.DimDesign{
			DesignID:     *r.DesignID,
			DesignName:   *r.DesignName,
			FileLocation: *r.FileLocation,
			FileName:     *r.FileName,
		})
	}
	return out, nil
}
