package transform

import "github.com/alixiazul/data-engineering-project/entity"

// ShapeCounterparty joins counterparty rows to address rows on
// legal_address_id and renames the address columns with the
// counterparty_legal_ prefix. Both sides are deduplicated on their
// non-primary-key columns first; joined rows missing any required column are
// dropped.
func ShapeCounterparty(counterparties []entity.CounterpartyRow, addresses []entity.AddressRow) ([]entity.DimCounterparty, error) {
	counterparties = dedupBy(counterparties, func(r entity.CounterpartyRow) string {
		return dedupKey(r.CounterpartyLegalName, r.LegalAddressID, r.CommercialContact, r.DeliveryContact, r.CreatedAt, r.LastUpdated)
	})
	addresses = dedupBy(addresses, func(r entity.AddressRow) string {
		return dedupKey(r.AddressLine1, r.AddressLine2, r.District, r.City, r.PostalCode, r.Country, r.Phone, r.CreatedAt, r.LastUpdated)
	})

	byAddressID := make(map[int64]entity.AddressRow, len(addresses))
	for _, a := range addresses {
		byAddressID[a.AddressID] = a
	}

	out := make([]entity.DimCounterparty, 0, len(counterparties))
	for _, c := range counterparties {
		if c.CounterpartyID == nil || c.CounterpartyLegalName == nil || c.LegalAddressID == nil {
			continue
		}
		a, ok := byAddressID[*c.LegalAddressID]
		if !ok {
			continue
		}
		if a.AddressLine1 == nil || a.City == nil || a.PostalCode == nil || a.Country == nil || a.Phone == nil {
			continue
		}
		out = append(out, entity.DimCounterparty{
			CounterpartyID:                *c.CounterpartyID,
			CounterpartyLegalName:         *c.CounterpartyLegalName,
			CounterpartyLegalAddressLine1: *a.AddressLine1,
			CounterpartyLegalAddressLine2: a.AddressLine2,
			CounterpartyLegalDistrict:     a.District,
			CounterpartyLegalCity:         *a.City,
			CounterpartyLegalPostalCode:   *a.PostalCode,
			CounterpartyLegalCountry:      *a.Country,
			CounterpartyLegalPhoneNumber:  *a.Phone,
		})
	}
	return out, nil
}
