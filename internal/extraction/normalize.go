package extraction

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/orderlens/orderlens/pkg/formatting"
)

const fallbackNote = "Automatic extraction failed; manual review required."

var (
	digitsPattern  = regexp.MustCompile(`\d+`)
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Normalize maps a raw model completion into canonical line items. It never
// fails: an unparseable completion degrades into a single fallback record
// flagged for review, and a malformed individual element degrades that one
// record through defaulting. Every returned item is fully defaulted.
func Normalize(raw string, rc RequestContext) []OrderLineItem {
	arrText, found := formatting.FirstArray(raw)
	if !found {
		return []OrderLineItem{fallbackItem(rc)}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(arrText), &elements); err != nil {
		return []OrderLineItem{fallbackItem(rc)}
	}

	items := make([]OrderLineItem, 0, len(elements))
	for i, element := range elements {
		var fields map[string]any
		if err := json.Unmarshal(element, &fields); err != nil {
			// non-object element: degrade to a defaulted record
			fields = map[string]any{}
		}
		items = append(items, mapItem(fields, i, rc))
	}

	return items
}

func fallbackItem(rc RequestContext) OrderLineItem {
	item := mapItem(map[string]any{}, 0, rc)
	item.Notes = fallbackNote
	item.NeedsReview = true
	return item
}

// mapItem applies the tolerant field-by-field mapping: hints fill missing
// vendor/customer values, malformed values collapse to their defaults, and
// the review flag ORs the model's claim with the missing-field check.
func mapItem(fields map[string]any, index int, rc RequestContext) OrderLineItem {
	vendor := stringField(fields, "vendor_name", rc.VendorHint)
	customer := stringField(fields, "customer_name", rc.CustomerHint)
	style := stringField(fields, "style_number", "")

	needsReview := boolField(fields, "needs_review") ||
		vendor == "" || customer == "" || style == ""

	return OrderLineItem{
		ID:              fmt.Sprintf("%d-%d", rc.ProcessedAt.UnixMilli(), index),
		SourceInvoiceID: rc.SourceInvoiceID,
		VendorName:      vendor,
		CustomerName:    customer,
		StyleNumber:     style,
		Quantity:        quantityField(fields["quantity"]),
		ETADate:         dateField(fields["eta_date"]),
		CreatedAt:       rc.ProcessedAt,
		SourceFileURL:   rc.SourceFileURL,
		Notes:           stringField(fields, "notes", ""),
		NeedsReview:     needsReview,
	}
}

func stringField(fields map[string]any, key, fallback string) string {
	if v, ok := fields[key].(string); ok {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return fallback
}

func boolField(fields map[string]any, key string) bool {
	v, _ := fields[key].(bool)
	return v
}

// quantityField coerces a quantity value of any type into a non-negative
// integer. Strings keep their first digit run ("12 pcs" -> 12); anything
// non-parseable defaults to 0. Numbers past the int32 range are treated as
// garbage rather than converted, since the conversion would wrap negative.
func quantityField(v any) int {
	switch t := v.(type) {
	case float64:
		if t > 0 && t <= math.MaxInt32 {
			return int(t)
		}
	case string:
		if match := digitsPattern.FindString(t); match != "" {
			var n int
			fmt.Sscanf(match, "%d", &n)
			return n
		}
	}
	return 0
}

// dateField passes through well-formed ISO dates and drops everything
// else. Dates are never guessed or coerced.
func dateField(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if !isoDatePattern.MatchString(s) {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}
