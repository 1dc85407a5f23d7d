package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "JSON inválido: " + err.Error(), Code: usecase.CodeValidation})
		return false
	}
	return true
}

// statusFor traduz os erros dos casos de uso em status HTTP.
func statusFor(err error) (int, string) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case usecase.CodeValidation:
			return http.StatusBadRequest, de.Code
		case usecase.CodeNotFound:
			return http.StatusNotFound, de.Code
		case usecase.CodeDragConflict:
			return http.StatusConflict, de.Code
		}
		return http.StatusUnprocessableEntity, de.Code
	}
	if usecase.IsNotFound(err) {
		return http.StatusNotFound, usecase.CodeNotFound
	}
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		if te.Code == usecase.CodeRemote {
			return http.StatusBadGateway, te.Code
		}
		return http.StatusInternalServerError, te.Code
	}
	return http.StatusInternalServerError, ""
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

// confirmFromQuery: a confirmação do usuário chega como ?confirm=true.
func confirmFromQuery(r *http.Request) usecase.Confirmer {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return usecase.ConfirmFunc(func(string) bool { return ok })
}
