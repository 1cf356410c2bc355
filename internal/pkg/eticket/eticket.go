// Package eticket renders a booking as a printable PDF ticket.
package eticket

import (
	"bytes"
	"fmt"
	"strings"

	"ticketgo/internal/usecase/queries"

	"github.com/phpdave11/gofpdf"
)

// Build renders the e-ticket for one booking. The filename is derived
// from the reference so downloads stay unique per booking.
func Build(view *queries.BookingView) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reference      : %s", view.Reference),
		fmt.Sprintf("Passenger      : %s", view.PassengerFullName),
		fmt.Sprintf("Phone          : %s", view.PassengerPhone),
		fmt.Sprintf("Trip           : %s (%s)", view.TripName, view.TripCode),
		fmt.Sprintf("Route          : %s -> %s", view.FromCity, view.ToCity),
		fmt.Sprintf("Departure      : %s", view.DepartureAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Seat           : %s", view.SeatNumber),
		fmt.Sprintf("Amount         : %s", formatAmount(view.AmountCents)),
		fmt.Sprintf("Payment        : %s (%s)", view.PaymentMethod, view.PaymentStatus),
		fmt.Sprintf("Status         : %s", strings.ToUpper(view.Status)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket admits one passenger for the seat shown above. Please present it at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", view.Reference)
	return buf.Bytes(), filename, nil
}

func formatAmount(cents int64) string {
	return fmt.Sprintf("USD %d.%02d", cents/100, cents%100)
}
