package transform

import (
	"regexp"

	"github.com/alixiazul/data-engineering-project/entity"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// ShapeStaff joins staff rows to department rows on department_id, dropping
// the manager column. Both sides are deduplicated on their non-primary-key
// columns first; rows with a malformed email address or a null in any target
// column are dropped.
func ShapeStaff(staff []entity.StaffRow, departments []entity.DepartmentRow) ([]entity.DimStaff, error) {
	staff = dedupBy(staff, func(r entity.StaffRow) string {
		return dedupKey(r.FirstName, r.LastName, r.DepartmentID, r.EmailAddress, r.CreatedAt, r.LastUpdated)
	})
	departments = dedupBy(departments, func(r entity.DepartmentRow) string {
		return dedupKey(r.DepartmentName, r.Location, r.Manager, r.CreatedAt, r.LastUpdated)
	})

	byDepartmentID := make(map[int64]entity.DepartmentRow, len(departments))
	for _, d := range departments {
		byDepartmentID[d.DepartmentID] = d
	}

	out := make([]entity.DimStaff, 0, len(staff))
	for _, s := range staff {
		if s.StaffID == nil || s.FirstName == nil || s.LastName == nil || s.EmailAddress == nil {
			continue
		}
		if !emailPattern.MatchString(*s.EmailAddress) {
			continue
		}
		d, ok := byDepartmentID[s.DepartmentID]
		if !ok {
			continue
		}
		if d.DepartmentName == nil || d.Location == nil {
			continue
		}
		out = append(out, entity.DimStaff{
			StaffID:        *s.StaffID,
			FirstName:      *s.FirstName,
			LastName:       *s.LastName,
			EmailAddress:   *s.EmailAddress,
			DepartmentName: *d.DepartmentName,
			Location:       *d.Location,
		})
	}
	return out, nil
}
