package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/service"
)

// ============================================================
// Bank linking
// ============================================================

func createLinkTokenHandler(linkSvc *service.LinkService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/link/token")
		defer span.End()

		var req domain.LinkTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !authorizeUser(w, r, req.UserID) {
			return
		}

		resp, err := linkSvc.CreateLinkToken(ctx, req.UserID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func exchangeTokenHandler(linkSvc *service.LinkService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/link/exchange")
		defer span.End()

		var req domain.ExchangeTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !authorizeUser(w, r, req.UserID) {
			return
		}

		resp, err := linkSvc.ExchangePublicToken(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
