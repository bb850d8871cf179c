package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The loader binds Values() positionally against the column lists, so the two
// must stay the same length for every warehouse row type.
func TestValuesAlignWithInsertColumns(t *testing.T) {
	cases := []struct {
		name    string
		row     WarehouseRow
		columns []string
	}{
		{"dim_design", DimDesign{}, DimDesignColumns},
		{"dim_currency", DimCurrency{}, DimCurrencyColumns},
		{"dim_counterparty", DimCounterparty{}, DimCounterpartyColumns},
		{"dim_staff", DimStaff{}, DimStaffColumns},
		{"dim_location", DimLocation{}, DimLocationColumns},
		{"dim_transaction", DimTransaction{}, DimTransactionColumns},
		{"dim_date", DimDate{}, DimDateColumns},
		{"facts_sales_order", FactSalesOrder{}, FactSalesOrderColumns},
	}
	for _, c := range cases {
		require.Len(t, c.row.Values(), len(c.columns), "%v values out of step with its column list", c.name)
	}
}

func TestDimTransactionValuesCoalesceNilIds(t *testing.T) {
	orderId := int64(7)
	r := DimTransaction{TransactionID: 1, TransactionType: "SALE", SalesOrderID: &orderId, PurchaseOrderID: nil}
	vals := r.Values()
	require.Equal(t, int64(7), vals[2])
	require.Equal(t, int64(0), vals[3], "a nil order id must insert as 0")
}
