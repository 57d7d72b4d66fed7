package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"traveladdicts/internal/domain"
)

// Issuer is the agency printed on confirmations.
type Issuer struct {
	Name  string
	Email string
	Phone string
}

type IssuerFunc func(ctx context.Context) Issuer

func (s *Service) SetIssuer(fn IssuerFunc) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.issuer = fn
}

// Invoice renders the booking confirmation PDF for id.
func (s *Service) Invoice(ctx context.Context, id string) ([]byte, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	issuer := Issuer{Name: "Travel Addicts", Email: "info@traveladdicts.com"}
	s.hookMu.RLock()
	fn := s.issuer
	s.hookMu.RUnlock()
	if fn != nil {
		if got := fn(ctx); got.Name != "" {
			issuer = got
		}
	}

	return renderInvoice(b, issuer)
}

func renderInvoice(b domain.Booking, issuer Issuer) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	darkGray := color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray := color.Color{Red: 121, Green: 119, Blue: 109}

	heading := func(text string, size float64) {
		m.Row(size*0.6, func() {
			m.Col(12, func() {
				m.Text(text, props.Text{Size: size, Style: consts.Bold, Color: darkGray})
			})
		})
	}
	pair := func(label, value string) {
		m.Row(6, func() {
			m.Col(4, func() {
				m.Text(label, props.Text{Size: 9, Color: mediumGray})
			})
			m.Col(8, func() {
				m.Text(value, props.Text{Size: 10, Color: darkGray})
			})
		})
	}
	spacer := func(h float64) { m.Row(h, func() {}) }

	heading("BOOKING CONFIRMATION", 24)
	heading(strings.ToUpper(issuer.Name), 16)
	contact := issuer.Email
	if issuer.Phone != "" {
		contact += "  |  " + issuer.Phone
	}
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text(contact, props.Text{Size: 9, Color: mediumGray})
		})
	})
	spacer(8)

	pair("Reference", b.BookingReference)
	pair("Status", string(b.Status))
	pair("Payment", string(b.PaymentStatus))
	spacer(4)

	pair("Guest", b.Customer.Name)
	pair("Email", b.Customer.Email)
	if b.Customer.Phone != "" {
		pair("Phone", b.Customer.Phone)
	}
	spacer(4)

	pair("Tour", b.Tour.Title)
	dates := b.StartDate
	if b.EndDate != "" {
		dates += " to " + b.EndDate
	}
	pair("Travel dates", dates)
	pair("Travelers", fmt.Sprintf("%d adults, %d children", b.Adults, b.Children))
	if b.SpecialRequests != "" {
		pair("Requests", b.SpecialRequests)
	}
	spacer(8)

	currency := b.Currency
	if currency == "" {
		currency = "USD"
	}
	total := func(label string, cents int64, bold bool) {
		style := consts.Normal
		if bold {
			style = consts.Bold
		}
		m.Row(6, func() {
			m.Col(8, func() {})
			m.Col(2, func() {
				m.Text(label, props.Text{Size: 9, Color: mediumGray, Align: consts.Right})
			})
			m.Col(2, func() {
				m.Text(formatMoney(cents, currency), props.Text{Size: 10, Style: style, Color: darkGray, Align: consts.Right})
			})
		})
	}
	total("Total", b.TotalPrice, true)
	total("Paid", b.PaidAmount, false)
	total("Balance", b.TotalPrice-b.PaidAmount, true)

	if b.CancellationReason != "" {
		spacer(6)
		pair("Cancelled", b.CancellationReason)
	}

	spacer(12)
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Thank you for travelling with us!", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render booking %s confirmation: %w", b.ID, err)
	}
	return buf.Bytes(), nil
}

// formatMoney prints cents as a decimal amount, e.g. 129900 USD -> "USD 1,299.00".
func formatMoney(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := fmt.Sprintf("%d", cents/100)
	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	return fmt.Sprintf("%s%s %s.%02d", sign, currency, grouped.String(), cents%100)
}
