package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handlers "github.com/cardboard/core/internal/adapters/http"
	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/infrastructure/logger"
	"github.com/cardboard/core/internal/ports"
)

// fakeCardService records the calls it receives and answers from its fields.
type fakeCardService struct {
	calls []string

	cards    []*entities.Card
	total    int64
	card     *entities.Card
	err      error
	listReq  ports.ListCardsRequest
	create   ports.CreateCardRequest
	update   ports.UpdateCardRequest
	ids      []string
	override entities.Config
}

func (f *fakeCardService) ListCards(_ context.Context, req ports.ListCardsRequest) ([]*entities.Card, int64, error) {
	f.calls = append(f.calls, "ListCards")
	f.listReq = req
	return f.cards, f.total, f.err
}

func (f *fakeCardService) ListActiveCards(context.Context) ([]*entities.Card, error) {
	f.calls = append(f.calls, "ListActiveCards")
	return f.cards, f.err
}

func (f *fakeCardService) GetCard(_ context.Context, id string) (*entities.Card, error) {
	f.calls = append(f.calls, "GetCard:"+id)
	return f.card, f.err
}

func (f *fakeCardService) CreateCard(_ context.Context, req ports.CreateCardRequest) (*entities.Card, error) {
	f.calls = append(f.calls, "CreateCard")
	f.create = req
	return f.card, f.err
}

func (f *fakeCardService) UpdateCard(_ context.Context, id string, req ports.UpdateCardRequest) (*entities.Card, error) {
	f.calls = append(f.calls, "UpdateCard:"+id)
	f.update = req
	return f.card, f.err
}

func (f *fakeCardService) DeleteCard(_ context.Context, id string) error {
	f.calls = append(f.calls, "DeleteCard:"+id)
	return f.err
}

func (f *fakeCardService) ReorderCards(_ context.Context, ids []string) error {
	f.calls = append(f.calls, "ReorderCards")
	f.ids = ids
	return f.err
}

func (f *fakeCardService) ListTemplates(context.Context) ([]*entities.CardTemplate, error) {
	f.calls = append(f.calls, "ListTemplates")
	return []*entities.CardTemplate{}, f.err
}

func (f *fakeCardService) CreateCardFromTemplate(_ context.Context, templateID string, override entities.Config) (*entities.Card, error) {
	f.calls = append(f.calls, "CreateCardFromTemplate:"+templateID)
	f.override = override
	return f.card, f.err
}

func (f *fakeCardService) DefaultConfigFor(_ context.Context, cardType string) entities.Config {
	f.calls = append(f.calls, "DefaultConfigFor:"+cardType)
	if cardType == "TEXT" {
		return entities.Config{"text": map[string]any{"content": ""}}
	}
	return entities.Config{}
}

func newTestEcho(svc ports.CardService, ops *prometheus.CounterVec) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = handlers.ErrorHandler(logger.NewNop())
	handlers.NewCardHandler(svc, logger.NewNop(), ops).Register(e.Group("/api/v1/cards"))
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ports.ErrorResponse {
	t.Helper()
	var resp ports.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestListCards_NoQueryReturnsActiveCards(t *testing.T) {
	svc := &fakeCardService{cards: []*entities.Card{{ID: "a", Title: "A", Type: entities.CardTypeText}}}
	e := newTestEcho(svc, nil)

	rec := do(e, http.MethodGet, "/api/v1/cards", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"ListActiveCards"}, svc.calls)
	assert.Empty(t, rec.Header().Get(handlers.HeaderTotalCount))

	var cards []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "a", cards[0]["id"])
}

func TestListCards_FilteredSetsTotal(t *testing.T) {
	svc := &fakeCardService{cards: []*entities.Card{}, total: 37}
	e := newTestEcho(svc, nil)

	rec := do(e, http.MethodGet, "/api/v1/cards?type=CHART&isActive=false&search=q&page=2&limit=5&userId=9", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"ListCards"}, svc.calls)
	assert.Equal(t, "37", rec.Header().Get(handlers.HeaderTotalCount))

	req := svc.listReq
	require.NotNil(t, req.Type)
	assert.Equal(t, "CHART", *req.Type)
	require.NotNil(t, req.IsActive)
	assert.False(t, *req.IsActive)
	require.NotNil(t, req.Search)
	assert.Equal(t, "q", *req.Search)
	require.NotNil(t, req.UserID)
	assert.Equal(t, int64(9), *req.UserID)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 5, req.Limit)
}

func TestListCards_BadQuery(t *testing.T) {
	for _, q := range []string{"isActive=maybe", "page=two", "limit=x", "userId=me"} {
		t.Run(q, func(t *testing.T) {
			svc := &fakeCardService{}
			rec := do(newTestEcho(svc, nil), http.MethodGet, "/api/v1/cards?"+q, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, entities.KindInvalidInput, decodeError(t, rec).Code)
			assert.Empty(t, svc.calls)
		})
	}
}

func TestCreateCard(t *testing.T) {
	svc := &fakeCardService{card: &entities.Card{ID: "new", Title: "Hello", Type: entities.CardTypeText}}
	e := newTestEcho(svc, nil)

	rec := do(e, http.MethodPost, "/api/v1/cards", `{"title":"Hello","type":"TEXT","config":{"text":{"content":"hi"}}}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Hello", svc.create.Title)
	assert.Equal(t, "TEXT", svc.create.Type)
	assert.Contains(t, rec.Body.String(), `"id":"new"`)
}

func TestCreateCard_MalformedBody(t *testing.T) {
	svc := &fakeCardService{}
	rec := do(newTestEcho(svc, nil), http.MethodPost, "/api/v1/cards", `{"title":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.calls)
}

func TestCreateCard_ValidationError(t *testing.T) {
	svc := &fakeCardService{err: entities.InvalidInput("title", "is required")}
	rec := do(newTestEcho(svc, nil), http.MethodPost, "/api/v1/cards", `{"type":"TEXT","config":{}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, entities.KindInvalidInput, resp.Code)
	assert.Equal(t, "title", resp.Field)
	assert.Equal(t, "is required", resp.Message)
}

func TestGetCard_NotFound(t *testing.T) {
	svc := &fakeCardService{err: entities.NotFound("card", "missing")}
	rec := do(newTestEcho(svc, nil), http.MethodGet, "/api/v1/cards/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, entities.KindNotFound, decodeError(t, rec).Code)
	assert.Equal(t, []string{"GetCard:missing"}, svc.calls)
}

func TestUpdateCard_PartialBody(t *testing.T) {
	svc := &fakeCardService{card: &entities.Card{ID: "c1"}}
	rec := do(newTestEcho(svc, nil), http.MethodPatch, "/api/v1/cards/c1", `{"isActive":false}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.update.Title)
	require.NotNil(t, svc.update.IsActive)
	assert.False(t, *svc.update.IsActive)
}

func TestDeleteCard(t *testing.T) {
	svc := &fakeCardService{}
	rec := do(newTestEcho(svc, nil), http.MethodDelete, "/api/v1/cards/c1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []string{"DeleteCard:c1"}, svc.calls)
}

func TestUpdatePositions(t *testing.T) {
	svc := &fakeCardService{}
	rec := do(newTestEcho(svc, nil), http.MethodPatch, "/api/v1/cards/positions/update", `["c3","c1","c2"]`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"c3", "c1", "c2"}, svc.ids)
}

func TestUpdatePositions_NotAnArray(t *testing.T) {
	svc := &fakeCardService{}
	rec := do(newTestEcho(svc, nil), http.MethodPatch, "/api/v1/cards/positions/update", `{"ids":["a"]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.calls)
}

func TestCreateCardFromTemplate(t *testing.T) {
	t.Run("Empty body keeps template config", func(t *testing.T) {
		svc := &fakeCardService{card: &entities.Card{ID: "c"}}
		rec := do(newTestEcho(svc, nil), http.MethodPost, "/api/v1/cards/from-template/t1", "")

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, []string{"CreateCardFromTemplate:t1"}, svc.calls)
		assert.Nil(t, svc.override)
	})

	t.Run("Body overrides config", func(t *testing.T) {
		svc := &fakeCardService{card: &entities.Card{ID: "c"}}
		rec := do(newTestEcho(svc, nil), http.MethodPost, "/api/v1/cards/from-template/t1", `{"link":{"url":"https://x"}}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "https://x", svc.override["link"].(map[string]any)["url"])
	})

	t.Run("Non-object body", func(t *testing.T) {
		svc := &fakeCardService{}
		rec := do(newTestEcho(svc, nil), http.MethodPost, "/api/v1/cards/from-template/t1", `[1,2]`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.calls)
	})
}

func TestGetDefaultConfig(t *testing.T) {
	svc := &fakeCardService{}
	e := newTestEcho(svc, nil)

	rec := do(e, http.MethodGet, "/api/v1/cards/default/TEXT", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":{"content":""}}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/v1/cards/default/VIDEO", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestListTemplates(t *testing.T) {
	svc := &fakeCardService{}
	rec := do(newTestEcho(svc, nil), http.MethodGet, "/api/v1/cards/templates", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"ListTemplates"}, svc.calls, "templates route wins over /:id")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	svc := &fakeCardService{err: entities.Internal("failed to list cards", errors.New("pq: password authentication failed"))}
	rec := do(newTestEcho(svc, nil), http.MethodGet, "/api/v1/cards", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, entities.KindInternal, resp.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestPlainErrorsAreInternal(t *testing.T) {
	svc := &fakeCardService{err: errors.New("boom")}
	rec := do(newTestEcho(svc, nil), http.MethodGet, "/api/v1/cards/x", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, entities.KindInternal, decodeError(t, rec).Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestOperationsCounter(t *testing.T) {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_card_operations_total"}, []string{"operation", "result"})
	svc := &fakeCardService{card: &entities.Card{ID: "c"}}
	e := newTestEcho(svc, ops)

	do(e, http.MethodPost, "/api/v1/cards", `{"title":"a","type":"TEXT","config":{}}`)
	svc.err = entities.NotFound("card", "c")
	do(e, http.MethodDelete, "/api/v1/cards/c", "")

	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("delete", string(entities.KindNotFound))))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, handlers.StatusFor(entities.KindInvalidInput))
	assert.Equal(t, http.StatusNotFound, handlers.StatusFor(entities.KindNotFound))
	assert.Equal(t, http.StatusConflict, handlers.StatusFor(entities.KindConflict))
	assert.Equal(t, http.StatusInternalServerError, handlers.StatusFor(entities.KindInternal))
}
