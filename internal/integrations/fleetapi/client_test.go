package fleetapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/pkg/logger"
	"github.com/m04kA/SMC-FleetDesk/pkg/types"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

type recordedCall struct {
	method   string
	endpoint string
	status   int
}

type recordingObserver struct {
	calls []recordedCall
}

func (o *recordingObserver) ObserveUpstream(method, endpoint string, status int, _ time.Duration) {
	o.calls = append(o.calls, recordedCall{method: method, endpoint: endpoint, status: status})
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, logger.Nop(), opts...)
}

func TestClient_SendsBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(headerRequestID)
		assert.Equal(t, "/api/jobs", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"j1","name":"Oil change","duration":30,"pricePerHour":60}]`))
	}, WithTokenSource(staticToken("secret")))

	jobs, err := client.Jobs.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, []domain.Job{{ID: "j1", Name: "Oil change", Duration: 30, PricePerHour: 60}}, jobs)
}

func TestClient_NoTokenNoAuthorizationHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}, WithTokenSource(staticToken("")))

	jobs, err := client.Jobs.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestClient_UnauthorizedFiresHook(t *testing.T) {
	var fired int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Token expired"}`))
	}, WithUnauthorizedHandler(func() { atomic.AddInt32(&fired, 1) }))

	_, err := client.Cars.List(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))

	msg, ok := UserMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Token expired", msg)
}

func TestClient_ForbiddenDoesNotFireHook(t *testing.T) {
	var fired int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, WithUnauthorizedHandler(func() { atomic.AddInt32(&fired, 1) }))

	_, err := client.Bookings.ListAll(context.Background())

	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr error
	}{
		{
			name:    "message field",
			status:  http.StatusBadRequest,
			body:    `{"message":"Registration number is required"}`,
			want:    "Registration number is required",
			wantErr: ErrValidation,
		},
		{
			name:    "error field",
			status:  http.StatusNotFound,
			body:    `{"error":"Car not found"}`,
			want:    "Car not found",
			wantErr: ErrNotFound,
		},
		{
			name:    "errors array of strings",
			status:  http.StatusUnprocessableEntity,
			body:    `{"errors":["year is invalid","make is required"]}`,
			want:    "year is invalid; make is required",
			wantErr: ErrValidation,
		},
		{
			name:    "errors array of objects",
			status:  http.StatusBadRequest,
			body:    `{"errors":[{"msg":"Invalid email"},{"message":"Weak password"}]}`,
			want:    "Invalid email; Weak password",
			wantErr: ErrValidation,
		},
		{
			name:    "plain text",
			status:  http.StatusInternalServerError,
			body:    "upstream exploded",
			want:    "upstream exploded",
			wantErr: ErrServer,
		},
		{
			name:    "long cyrillic plain text is cut by characters",
			status:  http.StatusBadGateway,
			body:    strings.Repeat("ошибка ", 40),
			want:    string([]rune(strings.Repeat("ошибка ", 40))[:maxPlainMessageLen]),
			wantErr: ErrServer,
		},
		{
			name:    "empty body",
			status:  http.StatusConflict,
			body:    "",
			want:    "Conflict",
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Cars.Get(context.Background(), "c1")

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.True(t, utf8.ValidString(apiErr.Message))
		})
	}
}

func TestClient_NetworkErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	observer := &recordingObserver{}
	client := NewClient(url, time.Second, logger.Nop(), WithObserver(observer))

	_, err := client.Jobs.List(context.Background())

	assert.True(t, errors.Is(err, ErrUnavailable))
	require.Len(t, observer.calls, 1)
	assert.Equal(t, 0, observer.calls[0].status)
}

func TestClient_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Jobs.List(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_InvalidJSONResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := client.Jobs.List(context.Background())

	assert.True(t, errors.Is(err, ErrInvalidResponse))
}

func TestClient_NoContentResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/bookings/b%2F1", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Bookings.Delete(context.Background(), "b/1")

	assert.NoError(t, err)
}

func TestClient_ObserverUsesRouteTemplate(t *testing.T) {
	observer := &recordingObserver{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"c42","registrationNumber":"AB12CDE"}`))
	}, WithObserver(observer))

	car, err := client.Cars.Get(context.Background(), "c42")

	require.NoError(t, err)
	assert.Equal(t, "c42", car.ID)
	assert.Equal(t, domain.ImportIdle, car.Import.State)
	require.Len(t, observer.calls, 1)
	assert.Equal(t, recordedCall{method: http.MethodGet, endpoint: "/api/cars/:id", status: http.StatusOK}, observer.calls[0])
}

func TestBookings_CreateSendsSnapshot(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bookings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, &body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id":"b1","carId":"c1","status":"pending","postalCode":"SW1A1AA","totalPrice":50,
			"jobs":[{"jobId":"j1","name":"Oil change","price":30,"duration":30}],
			"parts":[{"partItemId":"p1","title":"Oil filter","price":20}],
			"schedule":[{"date":"2025-12-12","time":"12:00"}]
		}`))
	})

	req := &CreateBookingRequest{
		CarID:      "c1",
		Jobs:       []domain.BookedJob{{JobID: "j1", Name: "Oil change", Price: 30, Duration: 30}},
		Parts:      []domain.BookedPart{{PartItemID: "p1", Title: "Oil filter", Price: 20}},
		Schedule:   []domain.TimeSlot{{Date: types.DateString("2025-12-12"), Time: types.TimeString("12:00")}},
		PostalCode: "SW1A1AA",
		TotalPrice: 50,
	}

	booking, err := client.Bookings.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "c1", body["carId"])
	assert.Equal(t, 50.0, body["totalPrice"])
	assert.Equal(t, "SW1A1AA", body["postalCode"])

	jobs, ok := body["jobs"].([]interface{})
	require.True(t, ok)
	require.Len(t, jobs, 1)
	assert.Equal(t, map[string]interface{}{"jobId": "j1", "name": "Oil change", "price": 30.0, "duration": 30.0}, jobs[0])

	schedule, ok := body["schedule"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"date": "2025-12-12", "time": "12:00"}, schedule[0])

	assert.Equal(t, "b1", booking.ID)
	assert.Equal(t, domain.StatusPending, booking.Status)
	require.Len(t, booking.Schedule, 1)
	assert.Equal(t, "2025-12-12", booking.Schedule[0].Date.String())
}

func TestAuth_LoginRequiresToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":"u1"}}`))
	})

	_, err := client.Auth.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x"})

	assert.True(t, errors.Is(err, ErrInvalidResponse))
}

func TestAuth_Login(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.c", req.Email)
		_, _ = w.Write([]byte(`{"token":"t1","user":{"id":"u1","email":"a@b.c","role":"admin","postalCode":"E1 6AN"}}`))
	})

	res, err := client.Auth.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x"})

	require.NoError(t, err)
	assert.Equal(t, "t1", res.Token)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)
	require.NotNil(t, res.User.PostalCode)
	assert.Equal(t, "E1 6AN", *res.User.PostalCode)
}

func TestPartItems_ImportGSFEscapesCarNumber(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/part-items/import/gsf/AB12%20CDE", r.URL.EscapedPath())
		w.WriteHeader(http.StatusAccepted)
	})

	err := client.PartItems.ImportGSF(context.Background(), "AB12 CDE")

	assert.NoError(t, err)
}
