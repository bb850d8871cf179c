package transform

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/alixiazul/data-engineering-project/constants"
	"github.com/alixiazul/data-engineering-project/entity"
)

// ShapeSalesOrder builds facts_sales_order rows: the created_at and
// last_updated stamps are each split into a date and a time column, and
// staff_id is renamed sales_staff_id. It fails with EmptyInputError when
// given no rows.
func ShapeSalesOrder(rows []entity.SalesOrderRow) ([]entity.FactSalesOrder, error) {
	if len(rows) == 0 {
		return nil, &EmptyInputError{Entity: "facts_sales_order"}
	}
	out := make([]entity.FactSalesOrder, 0, len(rows))
	for _, r := range rows {
		createdDate, createdTime, err := splitTimestamp(r.CreatedAt)
		if err != nil {
			return nil, errors.Wrapf(err, "sales order %v created_at", r.SalesOrderID)
		}
		lastDate, lastTime, err := splitTimestamp(r.LastUpdated)
		if err != nil {
			return nil, errors.Wrapf(err, "sales order %v last_updated", r.SalesOrderID)
		}
		out = append(out, entity.FactSalesOrder{
			SalesOrderID:             r.SalesOrderID,
			DesignID:                 r.DesignID,
			SalesStaffID:             r.StaffID,
			CounterpartyID:           r.CounterpartyID,
			UnitsSold:                r.UnitsSold,
			UnitPrice:                r.UnitPrice,
			CurrencyID:               r.CurrencyID,
			AgreedDeliveryDate:       r.AgreedDeliveryDate,
			AgreedPaymentDate:        r.AgreedPaymentDate,
			AgreedDeliveryLocationID: r.AgreedDeliveryLocationID,
			CreatedDate:              createdDate,
			CreatedTime:              createdTime,
			LastDate:                 lastDate,
			LastTime:                 lastTime,
		})
	}
	return out, nil
}

// splitTimestamp parses a source audit stamp into its date and time parts.
// Stamps that land on a whole second come back from the source without a
// fractional part, so one is appended before parsing.
func splitTimestamp(stamp string) (string, string, error) {
	s := standardizeTimestamp(stamp)
	t, err := time.Parse(constants.TimeFormatSourceStamp, s)
	if err != nil {
		return "", "", errors.Wrapf(err, "parsing timestamp %q", stamp)
	}
	return t.Format("2006-01-02"), t.Format("15:04:05.000"), nil
}

func standardizeTimestamp(stamp string) string {
	if !strings.Contains(stamp, ".") {
		return stamp + ".000"
	}
	return stamp
}
