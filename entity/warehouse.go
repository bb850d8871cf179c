package entity

// Warehouse rows are the shaped dimension/fact records written to columnar
// transformation blobs and batch-inserted into the warehouse. Struct field
// order, parquet column order and the INSERT column lists below must all
// agree because the loader binds values positionally.

// WarehouseRow yields the row's values in INSERT column order.
type WarehouseRow interface {
	Values() []interface{}
}

type DimDesign struct {
	DesignID     int64  `parquet:"design_id"`
	DesignName   string `parquet:"design_name"`
	FileLocation string `parquet:"file_location"`
	FileName     string `parquet:"file_name"`
}

func (r DimDesign) Values() []interface{} {
	return []interface{}{r.DesignID, r.DesignName, r.FileLocation, r.FileName}
}

type DimCurrency struct {
	CurrencyID   int64  `parquet:"currency_id"`
	CurrencyCode string `parquet:"currency_code"`
	CurrencyName string `parquet:"currency_name"`
}

func (r DimCurrency) Values() []interface{} {
	return []interface{}{r.CurrencyID, r.CurrencyCode, r.CurrencyName}
}

type DimCounterparty struct {
	CounterpartyID                int64   `parquet:"counterparty_id"`
	CounterpartyLegalName         string  `parquet:"counterparty_legal_name"`
	CounterpartyLegalAddressLine1 string  `parquet:"counterparty_legal_address_line_1"`
	CounterpartyLegalAddressLine2 *string `parquet:"counterparty_legal_address_line_2,optional"`
	CounterpartyLegalDistrict     *string `parquet:"counterparty_legal_district,optional"`
	CounterpartyLegalCity         string  `parquet:"counterparty_legal_city"`
	CounterpartyLegalPostalCode   string  `parquet:"counterparty_legal_postal_code"`
	CounterpartyLegalCountry      string  `parquet:"counterparty_legal_country"`
	CounterpartyLegalPhoneNumber  string  `parquet:"counterparty_legal_phone_number"`
}

func (r DimCounterparty) Values() []interface{} {
	return []interface{}{
		r.CounterpartyID, r.CounterpartyLegalName, r.CounterpartyLegalAddressLine1,
		r.CounterpartyLegalAddressLine2, r.CounterpartyLegalDistrict, r.CounterpartyLegalCity,
		r.CounterpartyLegalPostalCode, r.CounterpartyLegalCountry, r.CounterpartyLegalPhoneNumber,
	}
}

type DimStaff struct {
	StaffID        int64  `parquet:"staff_id"`
	FirstName      string `parquet:"first_name"`
	LastName       string `parquet:"last_name"`
	EmailAddress   string `parquet:"email_address"`
	DepartmentName string `parquet:"department_name"`
	Location       string `parquet:"location"`
}

func (r DimStaff) Values() []interface{} {
	return []interface{}{r.StaffID, r.FirstName, r.LastName, r.EmailAddress, r.DepartmentName, r.Location}
}

// DimLocation carries no null constraints: the location dimension keeps
// whatever nulls the source address rows had, including address_line_2
// (nulls stay null; there is no fill step).
type DimLocation struct {
	LocationID   int64   `parquet:"location_id"`
	AddressLine1 *string `parquet:"address_line_1,optional"`
	AddressLine2 *string `parquet:"address_line_2,optional"`
	District     *string `parquet:"district,optional"`
	City         *string `parquet:"city,optional"`
	PostalCode   *string `parquet:"postal_code,optional"`
	Country      *string `parquet:"country,optional"`
	Phone        *string `parquet:"phone,optional"`
}

func (r DimLocation) Values() []interface{} {
	return []interface{}{
		r.LocationID, r.AddressLine1, r.AddressLine2, r.District,
		r.City, r.PostalCode, r.Country, r.Phone,
	}
}

type DimTransaction struct {
	TransactionID   int64   `parquet:"transaction_id"`
	TransactionType string  `parquet:"transaction_type"`
	SalesOrderID    *int64  `parquet:"sales_order_id,optional"`
	PurchaseOrderID *int64  `parquet:"purchase_order_id,optional"`
}

// Values coalesces absent order ids to zero, matching how the warehouse
// loader has always inserted them.
func (r DimTransaction) Values() []interface{} {
	return []interface{}{r.TransactionID, r.TransactionType, Int64Val(r.SalesOrderID), Int64Val(r.PurchaseOrderID)}
}

type DimDate struct {
	DateID    string `parquet:"date_id"`
	Year      string `parquet:"year"`
	Month     string `parquet:"month"`
	Day       string `parquet:"day"`
	DayOfWeek int32  `parquet:"day_of_week"`
	DayName   string `parquet:"day_name"`
	MonthName string `parquet:"month_name"`
	Quarter   int32  `parquet:"quarter"`
}

func (r DimDate) Values() []interface{} {
	return []interface{}{r.DateID, r.Year, r.Month, r.Day, r.DayOfWeek, r.DayName, r.MonthName, r.Quarter}
}

type FactSalesOrder struct {
	SalesOrderID             int64   `parquet:"sales_order_id"`
	DesignID                 int64   `parquet:"design_id"`
	SalesStaffID             int64   `parquet:"sales_staff_id"`
	CounterpartyID           int64   `parquet:"counterparty_id"`
	UnitsSold                int64   `parquet:"units_sold"`
	UnitPrice                float64 `parquet:"unit_price"`
	CurrencyID               int64   `parquet:"currency_id"`
	AgreedDeliveryDate       string  `parquet:"agreed_delivery_date"`
	AgreedPaymentDate        string  `parquet:"agreed_payment_date"`
	AgreedDeliveryLocationID int64   `parquet:"agreed_delivery_location_id"`
	CreatedDate              string  `parquet:"created_date"`
	CreatedTime              string  `parquet:"created_time"`
	LastDate                 string  `parquet:"last_date"`
	LastTime                 string  `parquet:"last_time"`
}

func (r FactSalesOrder) Values() []interface{} {
	return []interface{}{
		r.SalesOrderID, r.DesignID, r.SalesStaffID, r.CounterpartyID, r.UnitsSold,
		r.UnitPrice, r.CurrencyID, r.AgreedDeliveryDate, r.AgreedPaymentDate,
		r.AgreedDeliveryLocationID, r.CreatedDate, r.CreatedTime, r.LastDate, r.LastTime,
	}
}

// Warehouse INSERT column lists, positionally aligned with Values() above.

var (
	DimDesignColumns       = []string{"design_id", "design_name", "file_location", "file_name"}
	DimCurrencyColumns     = []string{"currency_id", "currency_code", "currency_name"}
	DimCounterpartyColumns = []string{
		"counterparty_id", "counterparty_legal_name", "counterparty_legal_address_line_1",
		"counterparty_legal_address_line_2", "counterparty_legal_district", "counterparty_legal_city",
		"counterparty_legal_postal_code", "counterparty_legal_country", "counterparty_legal_phone_number",
	}
	DimStaffColumns       = []string{"staff_id", "first_name", "last_name", "email_address", "department_name", "location"}
	DimLocationColumns    = []string{"location_id", "address_line_1", "address_line_2", "district", "city", "postal_code", "country", "phone"}
	DimTransactionColumns = []string{"transaction_id", "transaction_type", "sales_order_id", "purchase_order_id"}
	DimDateColumns        = []string{"date_id", "year", "month", "day", "day_of_week", "day_name", "month_name", "quarter"}
	FactSalesOrderColumns = []string{
		"sales_order_id", "design_id", "sales_staff_id", "counterparty_id", "units_sold",
		"unit_price", "currency_id", "agreed_delivery_date", "agreed_payment_date",
		"agreed_delivery_location_id", "created_date", "created_time", "last_updated_date", "last_updated_time",
	}
)
