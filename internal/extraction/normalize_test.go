package extraction

import (
	"testing"
	"time"
)

var testContext = RequestContext{
	VendorHint:      "Acme Apparel",
	CustomerHint:    "Retail Co",
	SourceInvoiceID: "INV-4512",
	SourceFileURL:   "https://storage.example.com/files/abc/INV-4512.pdf",
	ProcessedAt:     time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
}

func TestNormalizeWellFormedOutput(t *testing.T) {
	raw := `Here are the extracted items:
[
  {"vendor_name":"Acme Apparel","customer_name":"Retail Co","style_number":"ST-100","quantity":24,"eta_date":"2026-04-01","notes":"","needs_review":false},
  {"vendor_name":"Acme Apparel","customer_name":"Retail Co","style_number":"ST-200","quantity":12,"eta_date":"","notes":"rush order","needs_review":false}
]`

	items := Normalize(raw, testContext)

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	first := items[0]
	if first.StyleNumber != "ST-100" {
		t.Errorf("StyleNumber = %q, want ST-100", first.StyleNumber)
	}
	if first.Quantity != 24 {
		t.Errorf("Quantity = %d, want 24", first.Quantity)
	}
	if first.ETADate != "2026-04-01" {
		t.Errorf("ETADate = %q, want 2026-04-01", first.ETADate)
	}
	if first.NeedsReview {
		t.Error("NeedsReview = true, want false")
	}
	if first.SourceInvoiceID != "INV-4512" {
		t.Errorf("SourceInvoiceID = %q", first.SourceInvoiceID)
	}
	if first.SourceFileURL != testContext.SourceFileURL {
		t.Errorf("SourceFileURL = %q", first.SourceFileURL)
	}
	if first.CreatedAt != testContext.ProcessedAt {
		t.Errorf("CreatedAt = %v", first.CreatedAt)
	}
	if first.ID == "" || first.ID == items[1].ID {
		t.Errorf("item IDs not distinct: %q vs %q", first.ID, items[1].ID)
	}

	second := items[1]
	if second.ETADate != "" {
		t.Errorf("empty eta_date mapped to %q, want empty", second.ETADate)
	}
	if second.Notes != "rush order" {
		t.Errorf("Notes = %q", second.Notes)
	}
}

func TestNormalizeMissingFieldsForcesReview(t *testing.T) {
	// the model claims needs_review is false but style_number is missing
	raw := `[{"vendor_name":"Acme Apparel","customer_name":"Retail Co","quantity":6,"needs_review":false}]`

	ctx := testContext
	items := Normalize(raw, ctx)

	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if !items[0].NeedsReview {
		t.Error("NeedsReview = false, want true for missing style number")
	}
}

func TestNormalizeHintsFillMissingValues(t *testing.T) {
	raw := `[{"style_number":"ST-300","quantity":10,"needs_review":false}]`

	items := Normalize(raw, testContext)

	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	item := items[0]
	if item.VendorName != "Acme Apparel" {
		t.Errorf("VendorName = %q, want hint applied", item.VendorName)
	}
	if item.CustomerName != "Retail Co" {
		t.Errorf("CustomerName = %q, want hint applied", item.CustomerName)
	}
	if item.NeedsReview {
		t.Error("NeedsReview = true, want false once hints fill the gaps")
	}
}

func TestNormalizeProseWithoutArray(t *testing.T) {
	raw := "I am unable to identify any line items in this document."

	items := Normalize(raw, RequestContext{
		SourceInvoiceID: "INV-9",
		SourceFileURL:   "https://storage.example.com/files/x/INV-9.pdf",
		ProcessedAt:     testContext.ProcessedAt,
	})

	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1 fallback record", len(items))
	}
	item := items[0]
	if !item.NeedsReview {
		t.Error("fallback record must need review")
	}
	if item.Notes != fallbackNote {
		t.Errorf("Notes = %q, want fallback note", item.Notes)
	}
	if item.SourceInvoiceID != "INV-9" {
		t.Errorf("SourceInvoiceID = %q", item.SourceInvoiceID)
	}
	if item.Quantity != 0 {
		t.Errorf("Quantity = %d, want 0", item.Quantity)
	}
}

func TestNormalizeEmptyArray(t *testing.T) {
	items := Normalize("[]", testContext)
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0 for an explicit empty array", len(items))
	}
}

func TestNormalizeNonObjectElement(t *testing.T) {
	raw := `[{"style_number":"ST-1","vendor_name":"V","customer_name":"C"}, "not an object"]`

	items := Normalize(raw, RequestContext{ProcessedAt: testContext.ProcessedAt})

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].StyleNumber != "ST-1" {
		t.Errorf("first item lost: %+v", items[0])
	}
	if !items[1].NeedsReview {
		t.Error("degraded element must need review")
	}
	if items[1].StyleNumber != "" || items[1].Quantity != 0 {
		t.Errorf("degraded element not defaulted: %+v", items[1])
	}
}

func TestQuantityField(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want int
	}{
		{"integer", float64(24), 24},
		{"zero", float64(0), 0},
		{"negative clamps", float64(-5), 0},
		{"fractional truncates", float64(12.7), 12},
		{"past int32 range", float64(1e19), 0},
		{"max int32", float64(2147483647), 2147483647},
		{"string with unit", "12 pcs", 12},
		{"bare numeric string", "36", 36},
		{"string without digits", "dozen", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantityField(tt.v); got != tt.want {
				t.Errorf("quantityField(%v) = %d, want %d", tt.v, got, tt.want)
			}
		})
	}
}

func TestNormalizeQuantityNeverNegative(t *testing.T) {
	// a quantity past the int range decodes as float64 1e19; a raw int
	// conversion would wrap negative
	raw := `[{"vendor_name":"Acme Apparel","customer_name":"Retail Co","style_number":"ST-1","quantity":10000000000000000000}]`

	items := Normalize(raw, testContext)

	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Quantity != 0 {
		t.Errorf("Quantity = %d, want 0 for an out-of-range value", items[0].Quantity)
	}
}

func TestDateField(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"valid iso date", "2026-04-01", "2026-04-01"},
		{"padded", "  2026-04-01 ", "2026-04-01"},
		{"impossible date", "2026-13-45", ""},
		{"wrong format", "04/01/2026", ""},
		{"prose", "early April", ""},
		{"empty", "", ""},
		{"non-string", float64(20260401), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dateField(tt.v); got != tt.want {
				t.Errorf("dateField(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
