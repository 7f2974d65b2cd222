/**
 * @description
 * This file contains the HTTP handler functions for the public membership
 * surface: tier listing, application submission, payment initiation, the
 * gateway callback and invoice download. Handlers parse requests, call the
 * service layer and map domain errors onto HTTP statuses.
 */
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/amang06/aim-backend/internal/app"
	"github.com/amang06/aim-backend/internal/domain"
	"github.com/amang06/aim-backend/internal/store"
	"github.com/amang06/aim-backend/pkg/gatewayclient"
)

// Handler holds the application service that handlers will interact with.
type Handler struct {
	service   app.Service
	gateway   *gatewayclient.Client
	publisher PaymentEventPublisher
}

// PaymentEventPublisher publishes validated gateway callbacks for the
// consumer to apply.
type PaymentEventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}

// NewHandler creates a new Handler with the given collaborators.
func NewHandler(service app.Service, gateway *gatewayclient.Client, publisher PaymentEventPublisher) *Handler {
	return &Handler{service: service, gateway: gateway, publisher: publisher}
}

// handleListTiers returns the membership catalog.
func (h *Handler) handleListTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.service.ListTiers(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load membership tiers")
		return
	}
	respondWithJSON(w, http.StatusOK, tiers)
}

// handleSubmitApplication creates a member record from a wizard draft.
func (h *Handler) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	var draft domain.ApplicationDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.service.SubmitApplication(r.Context(), draft)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to submit application")
		return
	}
	respondWithJSON(w, http.StatusCreated, member.Public())
}

// handleGetApplication returns the public view of one application.
func (h *Handler) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDParam(w, r)
	if !ok {
		return
	}
	member, err := h.service.GetApplication(r.Context(), id)
	if err != nil {
		respondWithMemberError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, member.Public())
}

// handleInitiatePayment returns the gateway redirect and signed form fields.
func (h *Handler) handleInitiatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDParam(w, r)
	if !ok {
		return
	}
	order, err := h.service.InitiatePayment(r.Context(), id)
	if err != nil {
		respondWithMemberError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, order)
}

// gatewayCallback is the payload the gateway posts back after checkout.
type gatewayCallback struct {
	OrderID     string `json:"order_id"`
	MemberID    int64  `json:"member_id"`
	ReferenceID string `json:"reference_id"`
	Amount      string `json:"amount"`
	Status      string `json:"status"` // 'success', 'submitted' or 'failed'
}

// handlePaymentCallback validates the gateway signature and publishes the
// payment event; the status transition is applied by the consumer so the
// gateway gets its acknowledgement without waiting on the database.
func (h *Handler) handlePaymentCallback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Cannot read request body")
		return
	}

	if !h.gateway.VerifyCallback(r.Header.Get("X-Gateway-Signature"), body) {
		respondWithError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var callback gatewayCallback
	if err := json.Unmarshal(body, &callback); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	outcome := map[string]string{
		"success":   "succeeded",
		"submitted": "submitted",
		"failed":    "failed",
	}[callback.Status]
	if outcome == "" {
		respondWithError(w, http.StatusBadRequest, "Unknown payment status")
		return
	}

	event := domain.PaymentEvent{
		EventID:     uuid.NewString(),
		MemberID:    callback.MemberID,
		ReferenceID: callback.ReferenceID,
		Amount:      callback.Amount,
		Outcome:     outcome,
		ReceivedAt:  time.Now().UTC(),
	}
	routingKey := domain.PaymentSubmittedKey
	switch outcome {
	case "succeeded":
		routingKey = domain.PaymentSucceededKey
	case "failed":
		routingKey = domain.PaymentFailedKey
	}

	if err := h.publisher.Publish(r.Context(), domain.PaymentEventsExchange, routingKey, event); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to queue payment event")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

// handleDownloadInvoice streams the generated GST invoice.
func (h *Handler) handleDownloadInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDParam(w, r)
	if !ok {
		return
	}
	filename, data, err := h.service.BuildInvoice(r.Context(), id)
	if err != nil {
		respondWithMemberError(w, err)
		return
	}
	servePDF(w, filename, data)
}

// memberIDParam parses the memberID path parameter.
func memberIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "memberID"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid member id")
		return 0, false
	}
	return id, true
}

// servePDF writes a PDF attachment response.
func servePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// respondWithMemberError maps domain errors onto HTTP statuses.
func respondWithMemberError(w http.ResponseWriter, err error) {
	var transition *domain.InvalidStateTransitionError
	var precondition *domain.PreconditionError
	var external *domain.ExternalServiceError
	switch {
	case errors.Is(err, store.ErrMemberNotFound):
		respondWithError(w, http.StatusNotFound, "Member not found")
	case errors.Is(err, store.ErrTierNotFound):
		respondWithError(w, http.StatusNotFound, "Membership tier not found")
	case errors.As(err, &transition):
		respondWithJSON(w, http.StatusBadRequest, map[string]string{
			"error":          transition.Error(),
			"current_status": string(transition.Current),
		})
	case errors.As(err, &precondition):
		respondWithError(w, http.StatusConflict, precondition.Error())
	case errors.As(err, &external):
		respondWithError(w, http.StatusBadGateway, external.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondWithError writes a JSON error response.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON is a helper function to write JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
