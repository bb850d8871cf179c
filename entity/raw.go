// Package entity defines the named-field records flowing through the
// pipeline: raw source table rows decoded from extraction blob JSON, and the
// dimension/fact rows written to columnar transformation blobs.
//
// Raw rows are constructed at the query/blob boundary so nothing downstream
// addresses columns by position. Columns a shaping rule checks for null are
// pointers; audit timestamps stay as the strings produced by the source
// database's JSON aggregation.
package entity

// AddressRow is one row of the source "address" table.
type AddressRow struct {
	AddressID    int64   `json:"address_id"`
	AddressLine1 *string `json:"address_line_1"`
	AddressLine2 *string `json:"address_line_2"`
	District     *string `json:"district"`
	City         *string `json:"city"`
	PostalCode   *string `json:"postal_code"`
	Country      *string `json:"country"`
	Phone        *string `json:"phone"`
	CreatedAt    string  `json:"created_at"`
	LastUpdated  string  `json:"last_updated"`
}

// CounterpartyRow is one row of the source "counterparty" table.
type CounterpartyRow struct {
	CounterpartyID        *int64  `json:"counterparty_id"`
	CounterpartyLegalName *string `json:"counterparty_legal_name"`
	LegalAddressID        *int64  `json:"legal_address_id"`
	CommercialContact     *string `json:"commercial_contact"`
	DeliveryContact       *string `json:"delivery_contact"`
	CreatedAt             string  `json:"created_at"`
	LastUpdated           string  `json:"last_updated"`
}

// CurrencyRow is one row of the source "currency" table.
type CurrencyRow struct {
	CurrencyID   *int64  `json:"currency_id"`
	CurrencyCode *string `json:"currency_code"`
	CreatedAt    string  `json:"created_at"`
	LastUpdated  string  `json:"last_updated"`
}

// DepartmentRow is one row of the source "department" table.
type DepartmentRow struct {
	DepartmentID   int64   `json:"department_id"`
	DepartmentName *string `json:"department_name"`
	Location       *string `json:"location"`
	Manager        *string `json:"manager"`
	CreatedAt      string  `json:"created_at"`
	LastUpdated    string  `json:"last_updated"`
}

// DesignRow is one row of the source "design" table.
type DesignRow struct {
	DesignID     *int64  `json:"design_id"`
	CreatedAt    string  `json:"created_at"`
	DesignName   *string `json:"design_name"`
	FileLocation *string `json:"file_location"`
	FileName     *string `json:"file_name"`
	LastUpdated  string  `json:"last_updated"`
}

// StaffRow is one row of the source "staff" table.
type StaffRow struct {
	StaffID      *int64  `json:"staff_id"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	DepartmentID int64   `json:"department_id"`
	EmailAddress *string `json:"email_address"`
	CreatedAt    string  `json:"created_at"`
	LastUpdated  string  `json:"last_updated"`
}

// TransactionRow is one row of the source "transaction" table. A transaction
// references either a sales order or a purchase order, so one of the two ids
// is always null.
type TransactionRow struct {
	TransactionID   int64   `json:"transaction_id"`
	TransactionType string  `json:"transaction_type"`
	SalesOrderID    *int64  `json:"sales_order_id"`
	PurchaseOrderID *int64  `json:"purchase_order_id"`
	CreatedAt       string  `json:"created_at"`
	LastUpdated     string  `json:"last_updated"`
}

// SalesOrderRow is one row of the source "sales_order" table.
type SalesOrderRow struct {
	SalesOrderID             int64   `json:"sales_order_id"`
	CreatedAt                string  `json:"created_at"`
	LastUpdated              string  `json:"last_updated"`
	DesignID                 int64   `json:"design_id"`
	StaffID                  int64   `json:"staff_id"`
	CounterpartyID           int64   `json:"counterparty_id"`
	UnitsSold                int64   `json:"units_sold"`
	UnitPrice                float64 `json:"unit_price"`
	CurrencyID               int64   `json:"currency_id"`
	AgreedDeliveryDate       string  `json:"agreed_delivery_date"`
	AgreedPaymentDate        string  `json:"agreed_payment_date"`
	AgreedDeliveryLocationID int64   `json:"agreed_delivery_location_id"`
}

// StrVal dereferences s, returning empty string for null.
func StrVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Int64Val dereferences i, returning zero for null.
func Int64Val(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}
