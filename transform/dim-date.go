package transform

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/alixiazul/data-engineering-project/constants"
	"github.com/alixiazul/data-engineering-project/entity"
)

// GenerateDateDimension materialises one dim_date row per calendar day
// starting from the first day the sales system went live. The span is days
// rows, or up to and including endDate when endDate is set. It returns the
// rows and the timestamp label of the last generated day.
func GenerateDateDimension(days int, endDate string) ([]entity.DimDate, time.Time, error) {
	start, err := time.Parse("2006-01-02", constants.DateDimensionStart)
	if err != nil {
		return nil, time.Time{}, errors.Wrap(err, "parsing date dimension start")
	}
	if endDate != "" {
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, time.Time{}, errors.Wrapf(err, "parsing date dimension end %q", endDate)
		}
		if end.Before(start) {
			return nil, time.Time{}, errors.Errorf("date dimension end %v is before start %v", endDate, constants.DateDimensionStart)
		}
		days = int(end.Sub(start).Hours()/24) + 1
	} else if days <= 0 {
		days = constants.DateDimensionDaysDefault
	}

	out := make([]entity.DimDate, 0, days)
	var d time.Time
	for i := 0; i < days; i++ {
		d = start.AddDate(0, 0, i)
		out = append(out, entity.DimDate{
			DateID:    d.Format("2006-01-02"),
			Year:      strconv.Itoa(d.Year()),
			Month:     strconv.Itoa(int(d.Month())),
			Day:       strconv.Itoa(d.Day()),
			DayOfWeek: int32(d.Weekday()) + 1,
			DayName:   d.Weekday().String(),
			MonthName: d.Month().String(),
			Quarter:   int32((int(d.Month())-1)/3) + 1,
		})
	}
	return out, d, nil
}
