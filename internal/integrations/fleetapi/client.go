package fleetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"

	maxErrorBodySize   = 64 << 10
	maxPlainMessageLen = 200
)

// Client клиент для работы с fleet REST API.
// Ресурсные обертки (Auth, Cars, ...) разделяют общий транспорт.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	observer       Observer
	log            Logger

	Auth      *AuthService
	Cars      *CarsService
	Jobs      *JobsService
	PartItems *PartItemsService
	Bookings  *BookingsService
	Users     *UsersService
}

// Option настройка клиента
type Option func(*Client)

// WithTokenSource задает источник bearer токена
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithUnauthorizedHandler задает обработчик 401 (глобальный logout)
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithObserver задает сборщик метрик запросов
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// WithHTTPClient подменяет http.Client (используется в тестах)
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient создает новый экземпляр клиента fleet API
func NewClient(baseURL string, timeout time.Duration, log Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c}
	c.Cars = &CarsService{client: c}
	c.Jobs = &JobsService{client: c}
	c.PartItems = &PartItemsService{client: c}
	c.Bookings = &BookingsService{client: c}
	c.Users = &UsersService{client: c}

	return c
}

// request описание одного вызова API.
// route - шаблон пути для логов и метрик, path - фактический путь.
type request struct {
	method string
	route  string
	path   string
	body   interface{}
	out    interface{}
}

// do выполняет запрос, нормализует ошибки и декодирует ответ в req.out
func (c *Client) do(ctx context.Context, req request) error {
	var bodyReader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, bodyReader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(headerRequestID, uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observe(req, 0, start)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("fleetapi: %s %s aborted: %w", req.method, req.route, ctxErr)
		}
		c.log.Warn("fleetapi: %s %s failed: %v", req.method, req.route, err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, req.method, req.route, err)
	}
	defer resp.Body.Close()
	c.observe(req, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(resp),
			Method:     req.method,
			Path:       req.path,
		}

		if resp.StatusCode == http.StatusUnauthorized {
			c.log.Warn("fleetapi: %s %s unauthorized, forcing logout", req.method, req.route)
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		} else {
			c.log.Warn("fleetapi: %s %s returned %d: %s", req.method, req.route, resp.StatusCode, apiErr.Message)
		}

		return apiErr
	}

	if req.out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(req.out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) observe(req request, status int, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstream(req.method, req.route, status, time.Since(start))
}

// errorBody известные формы тела ошибки API
type errorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  []json.RawMessage `json:"errors"`
}

// extractMessage пытается достать сообщение ошибки из тела ответа:
// message, error, errors[] (строки или объекты с msg/message), затем plain text
func extractMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return http.StatusText(resp.StatusCode)
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.Error != "":
			return body.Error
		case len(body.Errors) > 0:
			if msg := joinErrors(body.Errors); msg != "" {
				return msg
			}
		}
		return http.StatusText(resp.StatusCode)
	}

	// обрезаем по символам, а не байтам, чтобы не разрезать UTF-8
	text := []rune(strings.TrimSpace(string(raw)))
	if len(text) > maxPlainMessageLen {
		text = text[:maxPlainMessageLen]
	}
	return string(text)
}

func joinErrors(items []json.RawMessage) string {
	messages := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil && s != "" {
			messages = append(messages, s)
			continue
		}
		var obj struct {
			Msg     string `json:"msg"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(item, &obj); err == nil {
			switch {
			case obj.Msg != "":
				messages = append(messages, obj.Msg)
			case obj.Message != "":
				messages = append(messages, obj.Message)
			}
		}
	}
	return strings.Join(messages, "; ")
}
