package ticket

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"
	"time"

	"github.com/railyatra/booking-backend/internal/catalog"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(t *testing.T) *models.ConfirmationRecord {
	train, ok := catalog.Default().TrainByID("1")
	require.True(t, ok)

	seats := catalog.GenerateSeats(models.ClassEconomy, train)[:2]
	travel := time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)

	return &models.ConfirmationRecord{
		Booking: models.BookingDraft{
			Train:      train,
			Date:       &travel,
			Passengers: 2,
			Class:      models.ClassEconomy,
			Seats:      seats,
			TotalPrice: 2915.40,
			Pricing:    models.PriceBreakdown{BaseFare: 2580, ServiceFee: 129, Taxes: 206.40, Total: 2915.40, Currency: "INR"},
		},
		Passengers: []models.Passenger{
			{Name: "Asha Rao", Age: 34, Gender: models.GenderFemale, SeatID: seats[0].ID},
			{Name: "Vikram Rao", Age: 36, Gender: models.GenderMale, SeatID: seats[1].ID},
		},
		ContactEmail:   "asha@example.com",
		ContactPhone:   "9876543210",
		ConfirmationID: "K3J9Q0ZD",
		BookingDate:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		PaymentInfo: models.PaymentReceipt{
			ID:        "PAY-ABCD1234",
			Method:    models.PaymentCreditCard,
			Last4:     "1111",
			Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestRender(t *testing.T) {
	renderer := NewRenderer("https://railyatra.example/verify/")

	pdf, err := renderer.Render(sampleRecord(t))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Greater(t, len(pdf), 1000)
}

func TestRender_WithoutTravelDate(t *testing.T) {
	record := sampleRecord(t)
	record.Booking.Date = nil
	record.PaymentInfo.Method = models.PaymentNetBanking

	pdf, err := NewRenderer("").Render(record)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRender_IncompleteRecord(t *testing.T) {
	record := sampleRecord(t)
	record.Booking.Train = nil

	_, err := NewRenderer("").Render(record)
	assert.ErrorIs(t, err, ErrIncompleteRecord)
}

func TestVerifyContent(t *testing.T) {
	assert.Equal(t, "https://railyatra.example/verify/K3J9Q0ZD", NewRenderer("https://railyatra.example/verify/").VerifyContent("K3J9Q0ZD"))
	assert.Equal(t, "RAILYATRA:K3J9Q0ZD", NewRenderer("").VerifyContent("K3J9Q0ZD"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "eticket-K3J9Q0ZD.pdf", Filename(&models.ConfirmationRecord{ConfirmationID: "K3J9Q0ZD"}))
}

func TestRender_AccentedNamesUseWinAnsi(t *testing.T) {
	record := sampleRecord(t)
	record.Passengers[0].Name = "José Müller"
	record.ContactEmail = "josé@example.com"

	pdf, err := NewRenderer("").Render(record)
	require.NoError(t, err)

	content := decodedStreams(pdf)
	assert.Contains(t, string(content), "Jos\xe9 M\xfcller")
	assert.Contains(t, string(content), "jos\xe9@example.com")
	assert.NotContains(t, string(content), "José")
}

// decodedStreams inflates every Flate stream of a PDF and concatenates them
func decodedStreams(pdf []byte) []byte {
	var out bytes.Buffer
	rest := pdf
	for {
		start := bytes.Index(rest, []byte("stream\n"))
		if start < 0 {
			break
		}
		rest = rest[start+len("stream\n"):]
		end := bytes.Index(rest, []byte("\nendstream"))
		if end < 0 {
			break
		}
		if r, err := zlib.NewReader(bytes.NewReader(rest[:end])); err == nil {
			data, _ := io.ReadAll(r)
			out.Write(data)
		}
		rest = rest[end+len("\nendstream"):]
	}
	return out.Bytes()
}
