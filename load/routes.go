package load

import (
	"strings"

	"github.com/alixiazul/data-engineering-project/entity"
	"github.com/alixiazul/data-engineering-project/transform"
)

// route binds a blob prefix to its warehouse table, INSERT column list and
// parquet decoder. Columns are positionally aligned with the entity's
// Values() order.
type route struct {
	table   string
	columns []string
	decode  func(data []byte) ([]entity.WarehouseRow, error)
}

// routes keys the warehouse routing table by target prefix. Dimension table
// names match their blob prefix; the fact blobs carry a plural "facts_"
// prefix but insert into the singular fact_sales_order table.
var routes = map[string]route{
	"dim_design":        {"dim_design", entity.DimDesignColumns, decodeBlob[entity.DimDesign]},
	"dim_currency":      {"dim_currency", entity.DimCurrencyColumns, decodeBlob[entity.DimCurrency]},
	"dim_counterparty":  {"dim_counterparty", entity.DimCounterpartyColumns, decodeBlob[entity.DimCounterparty]},
	"dim_staff":         {"dim_staff", entity.DimStaffColumns, decodeBlob[entity.DimStaff]},
	"dim_location":      {"dim_location", entity.DimLocationColumns, decodeBlob[entity.DimLocation]},
	"dim_transaction":   {"dim_transaction", entity.DimTransactionColumns, decodeBlob[entity.DimTransaction]},
	"dim_date":          {"dim_date", entity.DimDateColumns, decodeBlob[entity.DimDate]},
	"facts_sales_order": {"fact_sales_order", entity.FactSalesOrderColumns, decodeBlob[entity.FactSalesOrder]},
}

// routeFor resolves a blob key like
// "dim_staff/2022-November/dim_staff-<label>.parquet" to its route by the
// leading path element.
func routeFor(key string) (route, bool) {
	prefix := key
	if i := strings.IndexByte(key, '/'); i >= 0 {
		prefix = key[:i]
	}
	r, ok := routes[prefix]
	return r, ok
}

func decodeBlob[T entity.WarehouseRow](data []byte) ([]entity.WarehouseRow, error) {
	rows, err := transform.ReadPartition[T](data)
	if err != nil {
		return nil, err
	}
	out := make([]entity.WarehouseRow, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out, nil
}
