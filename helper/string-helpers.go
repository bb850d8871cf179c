package helper

import (
	om "github.com/cevaris/ordered_map"

	"github.com/alixiazul/data-engineering-project/logger"
)

// OrderedMapValuesToStringSlice copies the values of ordered map m into the
// pre-allocated slice s starting at *idx, advancing *idx for the caller.
func OrderedMapValuesToStringSlice(log logger.Logger, m *om.OrderedMap, s *[]string, idx *int) {
	iter := m.IterFunc()
	if iter == nil {
		log.Panic("OrderedMapValuesToStringSlice() failed to get iterFunc.")
	}
	for kv, ok := iter(); ok; kv, ok = iter() {
		(*s)[*idx] = kv.Value.(string)
		*idx++
	}
}

// StringSliceToOrderedMap builds an ordered map whose keys and values are both
// the supplied column names, preserving order.
func StringSliceToOrderedMap(cols []string) *om.OrderedMap {
	m := om.NewOrderedMap()
	for _, c := range cols {
		m.Set(c, c)
	}
	return m
}
