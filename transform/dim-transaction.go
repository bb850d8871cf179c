package transform

import "github.com/alixiazul/data-engineering-project/entity"

// ShapeTransaction builds dim_transaction rows. The absent order id on each
// row stays a nil pointer here; the loader coalesces it to zero at insert
// time. It fails with EmptyInputError when given no rows.
func ShapeTransaction(rows []entity.TransactionRow) ([]entity.DimTransaction, error) {
	if len(rows) == 0 {
		return nil, &EmptyInputError{Entity: "dim_transaction"}
	}
	out := make([]entity.DimTransaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.DimTransaction{
			TransactionID:   r.TransactionID,
			TransactionType: r.TransactionType,
			SalesOrderID:    r.SalesOrderID,
			PurchaseOrderID: r.PurchaseOrderID,
		})
	}
	return out, nil
}
