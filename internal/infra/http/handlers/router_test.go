package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/integration/lintra"
	"github.com/xavierca1/lintra-console/internal/usecase"
)

// fakeLintra simula a API remota com um funil e duas oportunidades.
type fakeLintra struct {
	mu       sync.Mutex
	failMove bool
	moves    []string
}

func (f *fakeLintra) handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/pipelines", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"p1","name":"Sales","stages":[
			{"id":"s1","name":"Lead","color":"#F59E0B"},
			{"id":"s2","name":"Fechado","color":"#10B981"}]}]`)
	})
	r.Post("/pipelines", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name   string         `json:"name"`
			Stages []entity.Stage `json:"stages"`
		}
		json.NewDecoder(r.Body).Decode(&in)
		for i := range in.Stages {
			in.Stages[i].ID = "n" + string(rune('1'+i))
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entity.Funnel{ID: "p2", Name: in.Name, Stages: in.Stages})
	})
	r.Get("/opportunities/pipeline/{id}", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id":"d1","title":"Site","amount":1000,"stageId":"s1","pipelineId":"p1","ownerId":"u1"},
			{"id":"d2","title":"App","amount":2500,"stageId":"s2","pipelineId":"p1"}]`)
	})
	r.Put("/opportunities/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failMove {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"error":"banco indisponível"}`)
			return
		}
		f.moves = append(f.moves, chi.URLParam(r, "id"))
		io.WriteString(w, `{}`)
	})
	r.Delete("/opportunities/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"u1","name":"Ana","email":"ana@lintra.com.br"}]`)
	})
	r.Get("/contacts", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})
	return r
}

func newTestRouter(t *testing.T, fake *fakeLintra) http.Handler {
	t.Helper()
	api := httptest.NewServer(fake.handler())
	t.Cleanup(api.Close)

	client := lintra.NewClient(api.URL, "", time.Second)
	store := usecase.NewStore()
	board := usecase.NewBoard(store, client, usecase.WithDirectory(client))
	funnels := usecase.NewFunnelService(store, client, nil, nil)
	deals := usecase.NewDealForm(store, client, nil, nil)

	return NewRouter(RouterDeps{
		Board:  NewBoardHandler(funnels, board, deals, nil, nil),
		Health: NewHealthHandler(nil, nil, nil),
	})
}

func call(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r).WithContext(context.Background())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type boardView struct {
	Funnel  entity.Funnel `json:"funnel"`
	Columns []struct {
		Stage entity.Stage  `json:"stage"`
		Deals []entity.Deal `json:"deals"`
	} `json:"columns"`
}

func decodeBoard(t *testing.T, rec *httptest.ResponseRecorder) boardView {
	t.Helper()
	var v boardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func stageOf(v boardView, dealID string) string {
	for _, c := range v.Columns {
		for _, d := range c.Deals {
			if d.ID == dealID {
				return c.Stage.ID
			}
		}
	}
	return ""
}

func loadedRouter(t *testing.T, fake *fakeLintra) http.Handler {
	t.Helper()
	h := newTestRouter(t, fake)
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/funnels", "").Code)
	require.Equal(t, http.StatusOK, call(t, h, http.MethodPost, "/api/board/load", "").Code)
	return h
}

func TestRouter_BoardLoadAndMove(t *testing.T) {
	fake := &fakeLintra{}
	h := loadedRouter(t, fake)

	v := decodeBoard(t, call(t, h, http.MethodGet, "/api/board", ""))
	assert.Equal(t, "p1", v.Funnel.ID)
	require.Len(t, v.Columns, 2)
	assert.Equal(t, "s1", stageOf(v, "d1"))

	rec := call(t, h, http.MethodPost, "/api/board/moves", `{"dealId":"d1","fromStageId":"s1","toStageId":"s2"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "s2", stageOf(decodeBoard(t, rec), "d1"))
	assert.Equal(t, []string{"d1"}, fake.moves)
}

func TestRouter_MoveFailureRollsBack(t *testing.T) {
	fake := &fakeLintra{failMove: true}
	h := loadedRouter(t, fake)

	rec := call(t, h, http.MethodPost, "/api/board/moves", `{"dealId":"d1","fromStageId":"s1","toStageId":"s2"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Erro ao sincronizar movimento: banco indisponível", body.Error)

	v := decodeBoard(t, call(t, h, http.MethodGet, "/api/board", ""))
	assert.Equal(t, "s1", stageOf(v, "d1"))
}

func TestRouter_MoveUnknownDeal(t *testing.T) {
	h := loadedRouter(t, &fakeLintra{})

	rec := call(t, h, http.MethodPost, "/api/board/moves", `{"dealId":"nope","fromStageId":"s1","toStageId":"s2"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Analytics(t *testing.T) {
	h := loadedRouter(t, &fakeLintra{})

	rec := call(t, h, http.MethodGet, "/api/analytics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sum usecase.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 2, sum.TotalDeals)
	assert.Equal(t, 3500.0, sum.TotalValue)
	assert.Equal(t, 1, sum.ClosedDeals)
}

func TestRouter_CreateDealValidation(t *testing.T) {
	h := loadedRouter(t, &fakeLintra{})

	rec := call(t, h, http.MethodPost, "/api/deals", `{"title":"  ","value":"100"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, h, http.MethodPost, "/api/deals", `{bad json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_DeleteDealNeedsConfirmation(t *testing.T) {
	h := loadedRouter(t, &fakeLintra{})

	rec := call(t, h, http.MethodDelete, "/api/deals/d2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":false}`, rec.Body.String())

	rec = call(t, h, http.MethodDelete, "/api/deals/d2?confirm=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":true}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, call(t, h, http.MethodGet, "/api/deals/d2", "").Code)
}

func TestRouter_DraftLifecycle(t *testing.T) {
	h := loadedRouter(t, &fakeLintra{})

	rec := call(t, h, http.MethodPost, "/api/drafts", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var draft draftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
	require.Len(t, draft.Stages, 3)

	rec = call(t, h, http.MethodPost, "/api/drafts/"+draft.Key+"/stages", `{"name":"Perdido","color":"#EF4444"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, h, http.MethodPost, "/api/drafts/"+draft.Key+"/stages", `{"name":" ","color":"#EF4444"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, h, http.MethodPost, "/api/drafts/"+draft.Key+"/commit", `{"name":"Parcerias"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var f entity.Funnel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "p2", f.ID)
	assert.Len(t, f.Stages, 4)

	assert.Equal(t, http.StatusNotFound, call(t, h, http.MethodGet, "/api/drafts/"+draft.Key, "").Code)

	v := decodeBoard(t, call(t, h, http.MethodGet, "/api/board", ""))
	assert.Equal(t, "p2", v.Funnel.ID)
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t, &fakeLintra{})

	rec := call(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "not configured", body.Dependencies["database"])
}

func TestStatusFor(t *testing.T) {
	status, _ := statusFor(&usecase.DomainError{Code: usecase.CodeDragConflict})
	assert.Equal(t, http.StatusConflict, status)
	status, _ = statusFor(&usecase.DomainError{Code: usecase.CodeNoDrag})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	status, _ = statusFor(io.ErrUnexpectedEOF)
	assert.Equal(t, http.StatusInternalServerError, status)
}
