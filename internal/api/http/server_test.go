package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/poseidon-api/internal/api/dto"
	httptransport "github.com/spec-kit/poseidon-api/internal/api/http"
	"github.com/spec-kit/poseidon-api/internal/api/http/handlers"
	"github.com/spec-kit/poseidon-api/internal/auth"
	"github.com/spec-kit/poseidon-api/internal/domain"
	"github.com/spec-kit/poseidon-api/internal/events"
	"github.com/spec-kit/poseidon-api/internal/observability"
	"github.com/spec-kit/poseidon-api/internal/repository"
	"github.com/spec-kit/poseidon-api/internal/service"
)

const (
	adminEmail    = "admin@poseidon.test"
	adminPassword = "Sup3rSecret!"
)

// memRepository is an in-memory repository.Repository keyed by the table's key field.
type memRepository[T any] struct {
	mu    sync.Mutex
	table repository.Table[T, int64]
	rows  map[int64]T
	next  int64
}

func newMemRepository[T any](table repository.Table[T, int64]) *memRepository[T] {
	return &memRepository[T]{table: table, rows: map[int64]T{}}
}

func (m *memRepository[T]) GetAll(context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]int64, 0, len(m.rows))
	for k := range m.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.rows[k])
	}
	return out, nil
}

func (m *memRepository[T]) GetByID(_ context.Context, id int64) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", m.table.Name, id, domain.ErrNotFound)
	}
	return &e, nil
}

func (m *memRepository[T]) Add(_ context.Context, e T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	*m.table.KeyRef(&e) = m.next
	m.rows[m.next] = e
	return &e, nil
}

func (m *memRepository[T]) Update(_ context.Context, e *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[*m.table.KeyRef(e)] = *e
	return nil
}

func (m *memRepository[T]) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

type memIdentities struct {
	mu   sync.Mutex
	rows map[string]domain.Identity
}

func (m *memIdentities) Create(_ context.Context, identity *domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", len(m.rows)+1)
	identity.CreatedAt = time.Now()
	m.rows[strings.ToLower(identity.Email)] = *identity
	return nil
}

func (m *memIdentities) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.rows[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("identity: %w", domain.ErrNotFound)
	}
	return &identity, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type auditLog struct {
	mu     sync.Mutex
	events []events.Event
}

func (a *auditLog) record(_ context.Context, e events.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
	return nil
}

func (a *auditLog) types() []events.EventType {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]events.EventType, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Type)
	}
	return out
}

type testServer struct {
	app     *fiber.App
	audit   *auditLog
	ratings *memRepository[domain.Rating]
	redis   *stubPinger
	metrics *observability.Metrics
}

func newTestServer(t testing.TB) *testServer {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	dispatcher := events.NewInMemoryDispatcher()
	audit := &auditLog{}
	for _, et := range []events.EventType{
		events.EventLoginSucceeded, events.EventLoginRejected,
		events.EventEntityCreated, events.EventEntityUpdated, events.EventEntityDeleted,
	} {
		dispatcher.Subscribe(et, audit.record)
	}

	tokens := auth.NewTokenManager("http-test-secret", time.Hour)
	authService := service.NewAuthService(tokens, &memIdentities{rows: map[string]domain.Identity{}}, dispatcher, 4, logger)
	_, err := authService.EnsureIdentity(context.Background(), "admin", adminEmail, adminPassword)
	require.NoError(t, err)

	ratings := newMemRepository(repository.RatingTable)
	redis := &stubPinger{}

	app := fiber.New(fiber.Config{ErrorHandler: httptransport.ErrorHandler})
	httptransport.RegisterMiddlewares(app, logger, metrics, time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler("poseidon-api", "test", stubPinger{}, redis, metrics),
		Login:  handlers.NewLoginHandler(authService),
		Entities: []httptransport.EntityRoutes{
			handlers.NewCRUDHandler[domain.BidList, dto.BidListDTO]("bidlists", newMemRepository(repository.BidListTable), dto.ToBidListDTO, dispatcher, logger),
			handlers.NewCRUDHandler[domain.Trade, dto.TradeDTO]("trades", newMemRepository(repository.TradeTable), dto.ToTradeDTO, dispatcher, logger),
			handlers.NewCRUDHandler[domain.CurvePoint, dto.CurvePointDTO]("curvepoints", newMemRepository(repository.CurvePointTable), dto.ToCurvePointDTO, dispatcher, logger),
			handlers.NewCRUDHandler[domain.Rating, dto.RatingDTO]("ratings", ratings, dto.ToRatingDTO, dispatcher, logger),
			handlers.NewCRUDHandler[domain.RuleName, dto.RuleNameDTO]("rulenames", newMemRepository(repository.RuleNameTable), dto.ToRuleNameDTO, dispatcher, logger),
		},
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})
	app.Get("/boom", func(*fiber.Ctx) error { panic("boom") })

	return &testServer{app: app, audit: audit, ratings: ratings, redis: redis, metrics: metrics}
}

func (s *testServer) do(t testing.TB, method, path, token, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, string(raw)
}

func (s *testServer) login(t testing.TB) string {
	t.Helper()
	token, err := s.tryLogin(adminEmail, adminPassword)
	require.NoError(t, err)
	return token
}

func (s *testServer) tryLogin(email, password string) (string, error) {
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, -1)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.New(resp.Status)
	}
	var out dto.AuthResponse
	if err := decodeJSON(resp.Body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
