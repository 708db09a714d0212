package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/railyatra/booking-backend/internal/catalog"
	"github.com/railyatra/booking-backend/internal/events"
	"github.com/railyatra/booking-backend/internal/middleware"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/internal/services"
	"github.com/railyatra/booking-backend/internal/session"
	"github.com/railyatra/booking-backend/internal/ticket"
	"github.com/railyatra/booking-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router     *gin.Engine
	jwtService *jwt.Service
	store      *session.MemoryStore
}

func setupTestServer(t *testing.T, opts ...services.CheckoutOption) *testServer {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cat := catalog.Default()
	store := session.NewMemoryStore(time.Hour)
	jwtService := jwt.NewService("test-secret-key-for-handler-tests", time.Hour)

	searchService := services.NewSearchService(cat, nil, logger)
	locks := services.NewSessionLocks()
	bookingService := services.NewBookingService(cat, store, locks, logger)
	payments := services.NewPaymentSimulator(newSequenceIDs("PAY00001"), 0, logger)
	opts = append([]services.CheckoutOption{services.WithIDGenerator(newSequenceIDs("BK123456"))}, opts...)
	checkoutService := services.NewCheckoutService(store, locks, payments, events.NewNoopPublisher(logger), logger, opts...)

	limiter := services.NewRateLimitService(services.RateLimitConfig{
		MaxSessionsPerIP: 5,
		SessionWindow:    time.Hour,
		MaxPayments:      3,
		PaymentWindow:    10 * time.Minute,
	})

	sessionHandler := NewSessionHandler(jwtService, store, limiter, logger)
	catalogHandler := NewCatalogHandler(cat, searchService, bookingService, logger)
	searchHandler := NewSearchHandler(searchService, jwtService, logger)
	bookingHandler := NewBookingHandler(bookingService, logger)
	checkoutHandler := NewCheckoutHandler(checkoutService, limiter, ticket.NewRenderer(""), 1500*time.Millisecond, logger)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/sessions", sessionHandler.CreateSession)
	v1.GET("/stations", catalogHandler.GetStations)
	v1.GET("/destinations", catalogHandler.GetDestinations)
	v1.GET("/classes", catalogHandler.GetClasses)
	v1.GET("/trains/:id", catalogHandler.GetTrain)
	v1.GET("/trains/:id/seats", catalogHandler.GetSeatMap)
	v1.POST("/search", searchHandler.SearchTrains)
	v1.GET("/search/popular", searchHandler.GetPopularRoutes)

	protected := v1.Group("")
	protected.Use(middleware.SessionMiddleware(jwtService, logger))
	protected.DELETE("/sessions", sessionHandler.EndSession)
	protected.POST("/booking", bookingHandler.StartBooking)
	protected.GET("/booking", bookingHandler.GetBooking)
	protected.GET("/booking/seats", bookingHandler.GetSeats)
	protected.PUT("/booking/class", bookingHandler.ChangeClass)
	protected.PUT("/booking/passengers", bookingHandler.ChangePassengers)
	protected.POST("/booking/seats/:seat_id/toggle", bookingHandler.ToggleSeat)
	protected.POST("/booking/continue", bookingHandler.Continue)
	protected.POST("/checkout", checkoutHandler.BeginCheckout)
	protected.GET("/checkout", checkoutHandler.GetCheckout)
	protected.PUT("/checkout/passengers", checkoutHandler.SubmitPassengers)
	protected.POST("/checkout/back", checkoutHandler.Back)
	protected.POST("/checkout/payment", checkoutHandler.Pay)
	protected.GET("/checkout/payments", checkoutHandler.GetPaymentHistory)
	protected.GET("/confirmation", checkoutHandler.GetConfirmation)
	protected.GET("/confirmation/eticket.pdf", checkoutHandler.DownloadETicket)

	return &testServer{router: router, jwtService: jwtService, store: store}
}

// do sends a request with an optional JSON body and bearer token
func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// newSession starts a session through the API and returns its token
func (s *testServer) newSession(t *testing.T) string {
	w := s.do(t, http.MethodPost, "/api/v1/sessions", nil, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// sequenceIDs hands out the given codes in order, then repeats the last one
type sequenceIDs struct {
	mu    sync.Mutex
	codes []string
	next  int
}

func newSequenceIDs(codes ...string) *sequenceIDs {
	return &sequenceIDs{codes: codes}
}

func (g *sequenceIDs) NewCode() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.codes) == 0 {
		return "00000000"
	}
	if g.next >= len(g.codes) {
		return g.codes[len(g.codes)-1]
	}
	code := g.codes[g.next]
	g.next++
	return code
}

// memoryAuditor keeps payment audits in memory
type memoryAuditor struct {
	mu     sync.Mutex
	audits []models.PaymentAudit
}

func (a *memoryAuditor) Log(ctx context.Context, audit *models.PaymentAudit) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.audits = append(a.audits, *audit)
	return nil
}

func (a *memoryAuditor) GetBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.PaymentAudit, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []*models.PaymentAudit
	for i := range a.audits {
		if a.audits[i].SessionID == sessionID {
			audit := a.audits[i]
			out = append(out, &audit)
		}
	}
	return out, nil
}
