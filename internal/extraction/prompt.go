package extraction

import "strings"

const extractionInstructions = `You are a wholesale apparel order analyst. Extract every order line item from the document below.

Return a JSON array of objects. Each object has exactly these fields:
- "vendor_name": the supplier or brand issuing the order. Look for labels such as "Vendor", "Supplier", "From", "Brand", or a letterhead name.
- "customer_name": the buyer or retailer receiving the order. Look for labels such as "Customer", "Bill To", "Ship To", "Sold To", or "Buyer".
- "style_number": the style, SKU, or article identifier for the item. Look for labels such as "Style", "Style #", "SKU", "Item", or "Article".
- "quantity": the ordered unit count as an integer. Strip units such as "pcs", "units", or "dz" and keep the number. Use 0 if no quantity is legible.
- "eta_date": the expected arrival or delivery date in YYYY-MM-DD format. Look for labels such as "ETA", "Delivery", "Ship Date", or "Cancel Date". Omit the field if no date is present or it cannot be normalized confidently.
- "notes": any free-text remarks attached to the line (color, size run, special handling). Use an empty string when there are none.
- "needs_review": boolean. Set true whenever vendor_name, customer_name, or style_number is unclear, ambiguous, or missing.

One object per style/quantity/ETA combination. If the document contains no order line items, return an empty array [].
Respond with the JSON array only. No surrounding prose, no code fences.`

// Prompt is the composed model input: a single user-role message with
// instruction text and, for image-bearing documents, an inline image.
type Prompt struct {
	Text        string
	ImageMIME   string
	ImageBase64 string
}

// BuildPrompt prepends the fixed extraction instructions, appends the
// advisory vendor/customer hints, and attaches the prepared content:
// inline for text, as a separate multimodal block for images.
func BuildPrompt(content PreparedContent, vendorHint, customerHint string) Prompt {
	var b strings.Builder
	b.WriteString(extractionInstructions)

	if vendorHint != "" || customerHint != "" {
		b.WriteString("\n\nContext from the uploader, to use only when the document itself does not state the value:")
		if vendorHint != "" {
			b.WriteString("\n- Vendor: ")
			b.WriteString(vendorHint)
		}
		if customerHint != "" {
			b.WriteString("\n- Customer: ")
			b.WriteString(customerHint)
		}
	}

	if content.Kind == ContentText {
		b.WriteString("\n\nDocument text:\n")
		b.WriteString(content.Text)
		return Prompt{Text: b.String()}
	}

	b.WriteString("\n\nThe order document is attached as an image.")
	return Prompt{
		Text:        b.String(),
		ImageMIME:   content.MIMEType,
		ImageBase64: content.Base64,
	}
}
