/**
 * @description
 * Administrative handlers: application rejection, certificate download and
 * the certificate dispatch job trigger. Rejection and download sit behind
 * the admin JWT middleware and consult the domain authorization policy; the
 * job trigger authenticates with a dedicated bearer secret so schedulers can
 * call it without a user token.
 */
package api

import (
	"encoding/json"
	"net/http"

	"github.com/amang06/aim-backend/internal/app"
	"github.com/amang06/aim-backend/internal/domain"
)

// AdminHandler holds the collaborators for the admin surface.
type AdminHandler struct {
	service      app.Service
	dispatcher   *app.CertificateDispatcher
	triggerToken string
	batchSize    int
	production   bool
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service app.Service, dispatcher *app.CertificateDispatcher, triggerToken string, batchSize int, production bool) *AdminHandler {
	return &AdminHandler{
		service:      service,
		dispatcher:   dispatcher,
		triggerToken: triggerToken,
		batchSize:    batchSize,
		production:   production,
	}
}

// authorize checks the caller identity against the domain policy.
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request, c domain.Capability) bool {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	if !domain.Authorize(identity, c) {
		respondWithError(w, http.StatusForbidden, "Insufficient permissions")
		return false
	}
	return true
}

// handleRejectApplication rejects an application that has not progressed
// past payment_submitted. The current status is echoed back when the guard
// fails.
func (h *AdminHandler) handleRejectApplication(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, domain.CapRejectApplication) {
		return
	}
	id, ok := memberIDParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	member, err := h.service.RejectApplication(r.Context(), id, req.Reason)
	if err != nil {
		respondWithMemberError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, member.Public())
}

// handleDownloadCertificate streams the membership certificate for an
// active member.
func (h *AdminHandler) handleDownloadCertificate(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, domain.CapDownloadCertificate) {
		return
	}
	id, ok := memberIDParam(w, r)
	if !ok {
		return
	}
	filename, data, err := h.service.BuildCertificate(r.Context(), id)
	if err != nil {
		respondWithMemberError(w, err)
		return
	}
	servePDF(w, filename, data)
}

// jobResult is the wire shape of a dispatch run summary.
type jobResult struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Processed  int      `json:"processed"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// handleTriggerDispatch runs the certificate dispatch job. The caller must
// present the configured job trigger secret; the GET alias exists for manual
// testing and is rejected outright in production.
func (h *AdminHandler) handleTriggerDispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && h.production {
		respondWithError(w, http.StatusMethodNotAllowed, "GET trigger is disabled in production")
		return
	}

	token, ok := bearerToken(r)
	if !ok || h.triggerToken == "" || token != h.triggerToken {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.dispatcher.Run(r.Context(), h.batchSize)
	if err != nil {
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
			"message": "certificate dispatch failed",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, jobResult{
		Success:    true,
		Message:    "certificate dispatch completed",
		Processed:  result.Processed,
		Successful: result.Successful,
		Failed:     result.Failed,
		Errors:     result.Errors,
	})
}
