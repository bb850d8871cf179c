package lake

import (
	"fmt"
	"strings"
	"time"

	"github.com/alixiazul/data-engineering-project/constants"
)

// targetPrefixes maps a source table to the transformation bucket prefix its
// shaped output lands under. Tables with no value have no direct mapping and
// never reach the transformation bucket under their own name.
var targetPrefixes = map[string]string{
	"address":        "dim_location",
	"counterparty":   "dim_counterparty",
	"currency":       "dim_currency",
	"department":     "dim_staff",
	"design":         "dim_design",
	"payment_type":   "",
	"payment":        "",
	"purchase_order": "",
	"sales_order":    "facts_sales_order",
	"staff":          "dim_staff",
	"transaction":    "dim_transaction",
}

// TargetPrefixFor returns the transformation bucket prefix for a source table
// and whether the table has a mapping at all.
func TargetPrefixFor(table string) (string, bool) {
	p, ok := targetPrefixes[table]
	if !ok || p == "" {
		return "", false
	}
	return p, true
}

// PartitionFolder renders the year-MonthName folder for t, e.g. "2022-November".
func PartitionFolder(t time.Time) string {
	return fmt.Sprintf("%d-%s", t.Year(), t.Month().String())
}

// ExtractionKey builds the bucket key of a raw extraction blob,
// e.g. "transaction/2022-November/transaction-2022-11-03 14:20:52.187000.json".
func ExtractionKey(table string, latest time.Time) string {
	return fmt.Sprintf("%s/%s/%s-%s.%s",
		table, PartitionFolder(latest), table, FormatTimestamp(latest), constants.ExtractionBlobExtension)
}

// TransformationKey builds the bucket key of a shaped columnar blob from the
// timestamp label recovered from its extraction counterpart.
func TransformationKey(targetPrefix, label string) (string, error) {
	t, err := ParseTimestamp(label)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s-%s.%s",
		targetPrefix, PartitionFolder(t), targetPrefix, label, constants.TransformationBlobExtension), nil
}

// TargetKeyFor computes the transformation bucket key an extraction blob key
// maps to, by substituting the table name for its target prefix and swapping
// the extension.
func TargetKeyFor(extractionKey, table, targetPrefix string) string {
	k := strings.ReplaceAll(extractionKey, table, targetPrefix)
	return strings.TrimSuffix(k, "."+constants.ExtractionBlobExtension) + "." + constants.TransformationBlobExtension
}

// LabelFromKey recovers the timestamp label embedded in a blob key: the fixed
// width watermark format segment just before the extension.
func LabelFromKey(key string) string {
	dot := strings.LastIndex(key, ".")
	if dot < 0 {
		dot = len(key)
	}
	stem := key[:dot]
	if len(stem) < constants.WatermarkLabelLength {
		return stem
	}
	return stem[len(stem)-constants.WatermarkLabelLength:]
}

// DiffNewKeys returns the extraction keys whose computed target key is absent
// from the transformation bucket listing. When table is "payment", keys
// matching "payment_type" are excluded from both sides first so the two
// prefixes don't collide.
func DiffNewKeys(table, targetPrefix string, extractionKeys, transformationKeys []string) []string {
	if table == "payment" {
		extractionKeys = excludeContaining(extractionKeys, "payment_type")
		transformationKeys = excludeContaining(transformationKeys, "payment_type")
	}
	existing := make(map[string]struct{}, len(transformationKeys))
	for _, k := range transformationKeys {
		existing[k] = struct{}{}
	}
	newKeys := make([]string, 0, len(extractionKeys))
	for _, k := range extractionKeys {
		if _, ok := existing[TargetKeyFor(k, table, targetPrefix)]; !ok {
			newKeys = append(newKeys, k)
		}
	}
	return newKeys
}

func excludeContaining(keys []string, substr string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !strings.Contains(k, substr) {
			out = append(out, k)
		}
	}
	return out
}
