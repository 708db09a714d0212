// Package ticket renders the printable e-ticket of a confirmed booking.
package ticket

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/internal/utils"
	"github.com/railyatra/booking-backend/pkg/validator"
	qrcode "github.com/skip2/go-qrcode"
)

// ErrIncompleteRecord is returned for a confirmation without a train
var ErrIncompleteRecord = errors.New("confirmation record has no train")

const qrImageName = "verify-qr"

// Renderer renders e-tickets as single page A4 PDFs
type Renderer struct {
	verifyBaseURL string
	phones        *validator.PhoneFormatter
}

// NewRenderer creates a renderer. The QR code links to verifyBaseURL/<id>;
// without a base URL it carries the bare booking reference.
func NewRenderer(verifyBaseURL string) *Renderer {
	return &Renderer{
		verifyBaseURL: strings.TrimRight(verifyBaseURL, "/"),
		phones:        validator.NewPhoneFormatter(),
	}
}

// Filename returns the download name of a ticket
func Filename(record *models.ConfirmationRecord) string {
	return fmt.Sprintf("eticket-%s.pdf", record.ConfirmationID)
}

// VerifyContent returns what the QR code encodes
func (r *Renderer) VerifyContent(confirmationID string) string {
	if r.verifyBaseURL == "" {
		return "RAILYATRA:" + confirmationID
	}
	return r.verifyBaseURL + "/" + confirmationID
}

// Render builds the e-ticket PDF
func (r *Renderer) Render(record *models.ConfirmationRecord) ([]byte, error) {
	train := record.Booking.Train
	if train == nil {
		return nil, ErrIncompleteRecord
	}

	qrBytes, err := qrcode.Encode(r.VerifyContent(record.ConfirmationID), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+record.ConfirmationID, false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	// Core fonts are cp1252; user text arrives as UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "RAILYATRA E-TICKET")
	pdf.Ln(14)
	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)

	// Booking summary + QR
	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 50, "F")

	pdf.SetXY(20, yStart+5)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "BOOKING SUMMARY")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	summary := []string{
		"Booking ID: " + record.ConfirmationID,
		"Booked on: " + record.BookingDate.Format("02 Jan 2006, 15:04"),
		"Class: " + record.Booking.Class.Label(),
		fmt.Sprintf("Passengers: %d", record.Booking.Passengers),
	}
	for _, line := range summary {
		pdf.SetX(20)
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}

	pdf.RegisterImageOptionsReader(qrImageName, gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qrBytes))
	pdf.ImageOptions(qrImageName, 145, yStart, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 52)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, "Scan to verify", "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Journey
	drawSectionTitle(pdf, "JOURNEY")
	pdf.SetFont("Helvetica", "", 11)
	travelDate := "Any day"
	if record.Booking.Date != nil {
		travelDate = record.Booking.Date.Format("Mon, 02 Jan 2006")
	}
	journey := []string{
		fmt.Sprintf("Train: %s (%s)", train.Name, train.Number),
		fmt.Sprintf("From: %s (%s)  Departs %s", train.From.Name, train.From.Code, train.DepartureTime),
		fmt.Sprintf("To: %s (%s)  Arrives %s", train.To.Name, train.To.Code, train.ArrivalTime),
		fmt.Sprintf("Date: %s  Duration: %s", travelDate, train.Duration),
	}
	for _, line := range journey {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}
	pdf.Ln(3)

	// Passengers
	drawSectionTitle(pdf, "PASSENGERS")
	drawPassengerTable(pdf, record, tr)
	pdf.Ln(4)

	// Payment
	drawSectionTitle(pdf, "PAYMENT")
	pdf.SetFont("Helvetica", "", 11)
	pricing := record.Booking.Pricing
	payment := []string{
		"Payment ID: " + record.PaymentInfo.ID,
		"Method: " + record.PaymentInfo.Describe(),
		"Base fare: " + utils.FormatRupees(pricing.BaseFare),
		"Service fee: " + utils.FormatRupees(pricing.ServiceFee),
		"Taxes: " + utils.FormatRupees(pricing.Taxes),
	}
	for _, line := range payment {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Amount paid: "+utils.FormatRupees(record.Booking.TotalPrice))
	pdf.Ln(10)

	// Contact
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Contact: %s | %s", record.ContactEmail, r.phones.Format(record.ContactPhone))))

	// Footer
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, 280, 195, 280)
	pdf.SetY(283)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Carry a valid photo ID while travelling. This ticket is not transferable.", "", 0, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render e-ticket: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write e-ticket: %w", err)
	}
	return buf.Bytes(), nil
}

func drawPassengerTable(pdf *gofpdf.Fpdf, record *models.ConfirmationRecord, tr func(string) string) {
	widths := []float64{30, 20, 80, 20, 30}
	headers := []string{"Coach", "Seat", "Name", "Age", "Gender"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, seat := range record.Booking.Seats {
		passenger, _ := record.PassengerForSeat(seat.ID)
		age := ""
		if passenger.Age > 0 {
			age = fmt.Sprintf("%d", passenger.Age)
		}
		row := []string{seat.Coach, seat.Number, passenger.Name, age, genderLabel(passenger.Gender)}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func genderLabel(g models.Gender) string {
	switch g {
	case models.GenderMale:
		return "Male"
	case models.GenderFemale:
		return "Female"
	case models.GenderOther:
		return "Other"
	default:
		return ""
	}
}

// drawSectionTitle adds consistent section headers
func drawSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.Ln(2)
}
