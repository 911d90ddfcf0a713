// Package extraction implements the order extraction domain: content
// preparation, prompt construction, model invocation, and normalization of
// model output into order line items.
package extraction

import "time"

// OrderLineItem is one extracted row representing a single
// style/quantity/ETA combination from an order document. Every field is
// defaulted during normalization; no field is ever absent except ETADate,
// which is omitted when the source date is missing or ambiguous.
type OrderLineItem struct {
	ID              string    `json:"id"`
	SourceInvoiceID string    `json:"sourceInvoiceId"`
	VendorName      string    `json:"vendorName"`
	CustomerName    string    `json:"customerName"`
	StyleNumber     string    `json:"styleNumber"`
	Quantity        int       `json:"quantity"`
	ETADate         string    `json:"etaDate,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	SourceFileURL   string    `json:"sourceFileUrl"`
	Notes           string    `json:"notes"`
	NeedsReview     bool      `json:"needsReview"`
}

// RequestContext carries the request-scoped values stamped onto every
// normalized line item.
type RequestContext struct {
	VendorHint      string
	CustomerHint    string
	SourceInvoiceID string
	SourceFileURL   string
	ProcessedAt     time.Time
}
