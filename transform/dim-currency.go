package transform

import "github.com/alixiazul/data-engineering-project/entity"

// currencyNames is assigned to rows by position, not by matching the code:
// the sales system emits its currencies in this fixed order. A reordered
// extract would mislabel every row; the tests pin this down.
var currencyNames = []string{"pound sterling", "united states dollar", "euro"}

// ShapeCurrency builds dim_currency rows: dedup on the non-key columns, name
// each row by its position in currencyNames, then drop rows with a null in
// any target column. Rows beyond the name list have no name and are dropped
// with the nulls.
func ShapeCurrency(rows []entity.CurrencyRow) ([]entity.DimCurrency, error) {
	rows = dedupBy(rows, func(r entity.CurrencyRow) string {
		return dedupKey(r.CurrencyCode, r.CreatedAt)
	})
	out := make([]entity.DimCurrency, 0, len(rows))
	for i, r := range rows {
		if r.CurrencyID == nil || r.CurrencyCode == nil || i >= len(currencyNames) {
			continue
		}
		out = append(out, entity.DimCurrency{
			CurrencyID:   *r.CurrencyID,
			CurrencyCode: *r.CurrencyCode,
			CurrencyName: currencyNames[i],
		})
	}
	return out, nil
}
