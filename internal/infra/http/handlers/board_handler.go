package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/usecase"
)

// BoardHandler expõe o quadro Kanban, o editor de etapas e o formulário de oportunidades.
type BoardHandler struct {
	Funnels *usecase.FunnelService
	Board   *usecase.Board
	Deals   *usecase.DealForm
	History *usecase.HistoryRecorder
	logger  *zap.Logger

	mu     sync.Mutex
	drafts map[string]*draftEntry
	now    func() time.Time
}

// Rascunhos abandonados expiram após draftTTL sem uso; acima de maxDrafts o mais antigo sai.
const (
	draftTTL  = 30 * time.Minute
	maxDrafts = 64
)

type draftEntry struct {
	editor  *usecase.StageEditor
	touched time.Time
}

func NewBoardHandler(funnels *usecase.FunnelService, board *usecase.Board, deals *usecase.DealForm, history *usecase.HistoryRecorder, logger *zap.Logger) *BoardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardHandler{
		Funnels: funnels,
		Board:   board,
		Deals:   deals,
		History: history,
		logger:  logger,
		drafts:  make(map[string]*draftEntry),
		now:     time.Now,
	}
}

// sweepDrafts descarta rascunhos expirados e, se ainda estiver cheio, o menos usado.
// Chamado com h.mu travado.
func (h *BoardHandler) sweepDrafts(now time.Time) {
	var oldest string
	for key, d := range h.drafts {
		if now.Sub(d.touched) > draftTTL {
			delete(h.drafts, key)
			continue
		}
		if oldest == "" || d.touched.Before(h.drafts[oldest].touched) {
			oldest = key
		}
	}
	if len(h.drafts) >= maxDrafts && oldest != "" {
		delete(h.drafts, oldest)
		h.logger.Warn("draft evicted", zap.String("key", oldest))
	}
}

func (h *BoardHandler) Routes(r chi.Router) {
	r.Get("/funnels", h.ListFunnels)
	r.Put("/funnels/active", h.SelectFunnel)
	r.Delete("/funnels/{id}", h.DeleteFunnel)

	r.Post("/drafts", h.OpenDraft)
	r.Get("/drafts/{key}", h.GetDraft)
	r.Post("/drafts/{key}/stages", h.AddDraftStage)
	r.Delete("/drafts/{key}/stages/{index}", h.RemoveDraftStage)
	r.Post("/drafts/{key}/reorder", h.ReorderDraft)
	r.Post("/drafts/{key}/commit", h.CommitDraft)
	r.Delete("/drafts/{key}", h.DiscardDraft)

	r.Get("/board", h.GetBoard)
	r.Post("/board/load", h.LoadBoard)
	r.Post("/board/moves", h.MoveDeal)
	r.Get("/analytics", h.Analytics)

	r.Post("/deals", h.CreateDeal)
	r.Get("/deals/{id}", h.GetDeal)
	r.Put("/deals/{id}", h.UpdateDeal)
	r.Delete("/deals/{id}", h.DeleteDeal)
	r.Get("/deals/{id}/history", h.DealHistory)
}

func (h *BoardHandler) ListFunnels(w http.ResponseWriter, r *http.Request) {
	funnels, err := h.Funnels.Refresh(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, funnels)
}

func (h *BoardHandler) SelectFunnel(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID string `json:"id"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.Funnels.Select(in.ID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetBoard(w, r)
}

func (h *BoardHandler) DeleteFunnel(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Funnels.Delete(r.Context(), chi.URLParam(r, "id"), confirmFromQuery(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

type draftResponse struct {
	Key      string               `json:"key"`
	FunnelID string               `json:"funnelId,omitempty"`
	Name     string               `json:"name"`
	Stages   []usecase.DraftStage `json:"stages"`
}

func (h *BoardHandler) draftView(key string, e *usecase.StageEditor) draftResponse {
	return draftResponse{Key: key, FunnelID: e.FunnelID(), Name: e.Name(), Stages: e.Stages()}
}

func (h *BoardHandler) draft(w http.ResponseWriter, r *http.Request) (string, *usecase.StageEditor, bool) {
	key := chi.URLParam(r, "key")
	now := h.now()
	h.mu.Lock()
	d, ok := h.drafts[key]
	if ok && now.Sub(d.touched) > draftTTL {
		delete(h.drafts, key)
		ok = false
	}
	var e *usecase.StageEditor
	if ok {
		d.touched = now
		e = d.editor
	}
	h.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "rascunho não encontrado", Code: usecase.CodeNotFound})
		return "", nil, false
	}
	return key, e, true
}

// OpenDraft abre o editor: sem funnelId é um funil novo com as etapas padrão.
func (h *BoardHandler) OpenDraft(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FunnelID string `json:"funnelId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "JSON inválido: " + err.Error(), Code: usecase.CodeValidation})
		return
	}
	var editor *usecase.StageEditor
	if in.FunnelID == "" {
		editor = usecase.NewStageEditor(nil)
	} else {
		f, ok := h.Board.Store().Funnel(in.FunnelID)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: entity.ErrFunnelNotFound.Error(), Code: usecase.CodeNotFound})
			return
		}
		editor = usecase.NewStageEditor(&f)
	}

	key := uuid.NewString()
	now := h.now()
	h.mu.Lock()
	h.sweepDrafts(now)
	h.drafts[key] = &draftEntry{editor: editor, touched: now}
	h.mu.Unlock()
	writeJSON(w, http.StatusCreated, h.draftView(key, editor))
}

func (h *BoardHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	if key, e, ok := h.draft(w, r); ok {
		writeJSON(w, http.StatusOK, h.draftView(key, e))
	}
}

func (h *BoardHandler) AddDraftStage(w http.ResponseWriter, r *http.Request) {
	key, e, ok := h.draft(w, r)
	if !ok {
		return
	}
	var in struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if _, err := e.AddStage(in.Name, in.Color); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.draftView(key, e))
}

func (h *BoardHandler) RemoveDraftStage(w http.ResponseWriter, r *http.Request) {
	key, e, ok := h.draft(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "índice inválido", Code: usecase.CodeValidation})
		return
	}
	if err := e.RemoveStage(index); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.draftView(key, e))
}

func (h *BoardHandler) ReorderDraft(w http.ResponseWriter, r *http.Request) {
	key, e, ok := h.draft(w, r)
	if !ok {
		return
	}
	var in struct {
		From     *int   `json:"from"`
		StageKey string `json:"stageKey"`
		To       int    `json:"to"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	var err error
	switch {
	case in.StageKey != "":
		err = e.ReorderByKey(in.StageKey, in.To)
	case in.From != nil:
		err = e.ReorderStage(*in.From, in.To)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "informe from ou stageKey", Code: usecase.CodeValidation})
		return
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.draftView(key, e))
}

func (h *BoardHandler) CommitDraft(w http.ResponseWriter, r *http.Request) {
	key, e, ok := h.draft(w, r)
	if !ok {
		return
	}
	var in struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	status := http.StatusOK
	if !e.Editing() {
		status = http.StatusCreated
	}
	f, err := e.Commit(r.Context(), in.Name, h.Funnels)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.mu.Lock()
	delete(h.drafts, key)
	h.mu.Unlock()
	writeJSON(w, status, f)
}

func (h *BoardHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	delete(h.drafts, chi.URLParam(r, "key"))
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

type boardResponse struct {
	Funnel  entity.Funnel    `json:"funnel"`
	Columns []usecase.Column `json:"columns"`
}

func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	f, ok := h.Board.Store().ActiveFunnel()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: entity.ErrFunnelNotFound.Error(), Code: usecase.CodeNotFound})
		return
	}
	writeJSON(w, http.StatusOK, boardResponse{Funnel: f, Columns: h.Board.Columns()})
}

func (h *BoardHandler) LoadBoard(w http.ResponseWriter, r *http.Request) {
	f, ok := h.Board.Store().ActiveFunnel()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: entity.ErrFunnelNotFound.Error(), Code: usecase.CodeNotFound})
		return
	}
	if err := h.Board.Load(r.Context(), f.ID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.Board.LoadDirectory(r.Context()); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetBoard(w, r)
}

type moveRequest struct {
	DealID      string `json:"dealId"`
	FromStageID string `json:"fromStageId"`
	ToStageID   string `json:"toStageId"`
}

// MoveDeal executa o arraste completo: pega, solta e sincroniza.
func (h *BoardHandler) MoveDeal(w http.ResponseWriter, r *http.Request) {
	var in moveRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.Board.BeginDrag(in.DealID, in.FromStageID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.Board.CompleteDrag(r.Context(), in.ToStageID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.GetBoard(w, r)
}

func (h *BoardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	f, ok := h.Board.Store().ActiveFunnel()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: entity.ErrFunnelNotFound.Error(), Code: usecase.CodeNotFound})
		return
	}
	writeJSON(w, http.StatusOK, usecase.Summarize(f, h.Board.Store().Deals(f.ID)))
}

func (h *BoardHandler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	var in usecase.DealInput
	if !decodeJSON(w, r, &in) {
		return
	}
	d, err := h.Deals.SubmitCreate(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *BoardHandler) GetDeal(w http.ResponseWriter, r *http.Request) {
	d, err := h.Deals.Detail(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *BoardHandler) UpdateDeal(w http.ResponseWriter, r *http.Request) {
	var in usecase.DealInput
	if !decodeJSON(w, r, &in) {
		return
	}
	d, err := h.Deals.SubmitUpdate(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *BoardHandler) DeleteDeal(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Deals.Delete(r.Context(), chi.URLParam(r, "id"), confirmFromQuery(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (h *BoardHandler) DealHistory(w http.ResponseWriter, r *http.Request) {
	if h.History == nil {
		writeJSON(w, http.StatusOK, []entity.StageTransition{})
		return
	}
	list, err := h.History.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []entity.StageTransition{}
	}
	writeJSON(w, http.StatusOK, list)
}
