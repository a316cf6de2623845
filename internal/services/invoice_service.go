package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
)

// InvoiceService renders booking invoices as PDFs
type InvoiceService struct {
	bookings  *database.BookingRepository
	schedules *database.ScheduleRepository
	routes    *database.RouteRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	bookings *database.BookingRepository,
	schedules *database.ScheduleRepository,
	routes *database.RouteRepository,
) *InvoiceService {
	return &InvoiceService{
		bookings:  bookings,
		schedules: schedules,
		routes:    routes,
	}
}

// GenerateInvoice renders the invoice PDF for a paid booking and returns
// the document bytes with a download filename
func (s *InvoiceService) GenerateInvoice(bookingID string) ([]byte, string, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	if booking.PaymentStatus != models.PaymentStatusPaid {
		return nil, "", fmt.Errorf("booking %s has no completed payment", bookingID)
	}

	routeFrom, routeTo, travelDate := "-", "-", "-"
	if schedule, _, err := s.schedules.GetByID(booking.ScheduleID); err == nil {
		travelDate = schedule.Date
		if route, err := s.routes.GetByID(schedule.RouteID); err == nil {
			routeFrom = route.From
			routeTo = route.To
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : INV-"+booking.ID)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Route      : %s -> %s", routeFrom, routeTo))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+travelDate)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range booking.Passengers {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s  Seat %s", i+1, p.Name, p.SeatNumber))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f %s", booking.TotalAmount, booking.Currency))
	pdf.Ln(10)

	if booking.PaymentRef != nil {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Payment reference: "+*booking.PaymentRef, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render invoice: %w", err)
	}

	filename := fmt.Sprintf("INVOICE_%s.pdf", safeFilenamePart(booking.ID))
	return buf.Bytes(), filename, nil
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
