// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Service renders order receipts as PDF
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt renders a PDF receipt for an order.
func (s *Service) GenerateReceipt(storeName string, o *order.Order) (*bytes.Buffer, error) {
	data := buildReceiptData(storeName, s.config.Store.Currency, o)

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	StoreName     string
	ReceiptNumber string
	Date          string
	Status        string
	Currency      string
	CustomerName  string
	CustomerPhone string
	Address       string
	Note          string
	Items         []ReceiptItem
	Total         string
}

// ReceiptItem is one formatted line of the receipt
type ReceiptItem struct {
	Name      string
	Options   []string
	Quantity  int
	UnitPrice string
	LineTotal string
}

func buildReceiptData(storeName, currency string, o *order.Order) ReceiptData {
	data := ReceiptData{
		StoreName:     storeName,
		ReceiptNumber: fmt.Sprintf("R-%06d", o.ID),
		Date:          o.CreatedAt.Format("January 2, 2006 15:04"),
		Status:        string(o.Status),
		Currency:      currency,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Address:       o.Address,
		Note:          o.Note,
		Total:         o.Total.StringFixed(2),
	}

	for i := range o.Items {
		item := &o.Items[i]
		row := ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.BasePrice.StringFixed(2),
			LineTotal: item.LineTotal.StringFixed(2),
		}
		for _, opt := range item.SelectedOptions {
			label := fmt.Sprintf("%s: %s", opt.OptionTitle, opt.SubProductName)
			if opt.Quantity > 1 {
				label = fmt.Sprintf("%s x%d", label, opt.Quantity)
			}
			if !opt.UnitPrice.IsZero() {
				label = fmt.Sprintf("%s (+%s)", label, opt.UnitPrice.StringFixed(2))
			}
			row.Options = append(row.Options, label)
		}
		data.Items = append(data.Items, row)
	}
	return data
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 10px;
        }
        .customer-info {
            margin-bottom: 30px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin-bottom: 10px;
            color: #374151;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .price-col,
        .items-table .total-col {
            text-align: right;
            width: 80px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .total-row {
            font-size: 18px;
            font-weight: bold;
            border-top: 2px solid #333 !important;
        }
        .status-badge {
            display: inline-block;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
            font-weight: bold;
            text-transform: uppercase;
            background-color: #fef3c7;
            color: #92400e;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.StoreName}}</h1>
        </div>
        <div style="text-align: right;">
            <div class="receipt-title">RECEIPT</div>
            <p><strong>Receipt #:</strong> {{.ReceiptNumber}}</p>
            <p><strong>Date:</strong> {{.Date}}</p>
            <p><span class="status-badge">{{.Status}}</span></p>
        </div>
    </div>

    <div class="customer-info">
        <div class="section-title">Customer</div>
        <p><strong>{{.CustomerName}}</strong></p>
        {{if .CustomerPhone}}<p>Phone: {{.CustomerPhone}}</p>{{end}}
        {{if .Address}}<p>{{.Address}}</p>{{end}}
        {{if .Note}}<p>Note: {{.Note}}</p>{{end}}
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="qty-col">Qty</th>
                <th class="price-col">Price</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr>
                <td>
                    <strong>{{.Name}}</strong>
                    {{range .Options}}<br><small>{{.}}</small>{{end}}
                </td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">{{.UnitPrice}}</td>
                <td class="total-col">{{.LineTotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr class="total-row">
                <td>Total ({{.Currency}}):</td>
                <td style="text-align: right;">{{.Total}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for your order!</p>
    </div>
</body>
</html>
`
