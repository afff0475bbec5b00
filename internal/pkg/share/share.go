// internal/pkg/share/share.go
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/your-org/storefront-backend/internal/domain/order"
)

// StorefrontURL builds the public link for a store slug.
func StorefrontURL(baseURL, slug string) string {
	return fmt.Sprintf("%s/s/%s", strings.TrimRight(baseURL, "/"), slug)
}

// OrderSummary composes the plain-text order summary used for sharing. The
// format is stable and human-readable; it goes straight into a messaging
// app, not into a parser.
func OrderSummary(storeName string, o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d", o.ID)
	if storeName != "" {
		fmt.Fprintf(&b, " at %s", storeName)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Customer: %s\n", o.CustomerName)
	if o.CustomerPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", o.CustomerPhone)
	}
	if o.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", o.Address)
	}
	b.WriteString("\n")

	for i := range o.Items {
		item := &o.Items[i]
		fmt.Fprintf(&b, "%dx %s", item.Quantity, item.Name)
		if len(item.SelectedOptions) > 0 {
			var opts []string
			for _, opt := range item.SelectedOptions {
				label := opt.SubProductName
				if opt.Quantity > 1 {
					label = fmt.Sprintf("%s x%d", label, opt.Quantity)
				}
				opts = append(opts, label)
			}
			fmt.Fprintf(&b, " (%s)", strings.Join(opts, ", "))
		}
		fmt.Fprintf(&b, " = %s\n", item.LineTotal.StringFixed(2))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Total: %s", o.Total.StringFixed(2))
	if o.Note != "" {
		fmt.Fprintf(&b, "\nNote: %s", o.Note)
	}
	return b.String()
}

// MessageLink builds a message-compose deep link carrying the text. No
// recipient number is embedded; the sender picks the contact in the app.
func MessageLink(text string) string {
	return "https://wa.me/?text=" + url.QueryEscape(text)
}
