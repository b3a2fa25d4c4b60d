package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"fundboard/internal/draft"
	apperrors "fundboard/internal/errors"
)

// draft resources accepted by the auto-save endpoints
const (
	draftResourceBudget  = "budget"
	draftResourceExpense = "expense"
)

// DraftHandler handles form auto-save requests. Drafts are per-user and
// per-entity, held in memory, and discarded on a successful form submission.
type DraftHandler struct {
	store *draft.Store
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(store *draft.Store) *DraftHandler {
	return &DraftHandler{store: store}
}

// SaveDraftRequest represents an auto-save payload. The payload is opaque
// form state; it is stored and returned verbatim.
type SaveDraftRequest struct {
	Payload json.RawMessage `json:"payload" binding:"required"`
}

func parseDraftKey(c *gin.Context) (string, uint, error) {
	resource := c.Param("resource")
	if resource != draftResourceBudget && resource != draftResourceExpense {
		return "", 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid resource, must be budget or expense")
	}
	entityID, err := parsePathID(c, "id")
	if err != nil {
		return "", 0, err
	}
	return resource, entityID, nil
}

// SaveDraft handles a debounced form auto-save
// @Summary     Save a form draft
// @Description Auto-save in-progress form state. Saves are debounced; rapid
// @Description successive saves for the same form collapse into the last one.
// @Tags        drafts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       resource path string true "Form kind (budget or expense)"
// @Param       id       path int    true "Entity ID (0 for a new form)"
// @Param       request  body SaveDraftRequest true "Opaque form state"
// @Success     202 {object} MessageResponse "Draft accepted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /drafts/{resource}/{id} [put]
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resource, entityID, err := parseDraftKey(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	h.store.Save(userID, resource, entityID, req.Payload)
	c.JSON(http.StatusAccepted, gin.H{"message": "Draft saved"})
}

// GetDraft handles the recovery of a saved draft
// @Summary     Get a form draft
// @Description Recover the last committed auto-save for a form
// @Tags        drafts
// @Produce     json
// @Security    BearerAuth
// @Param       resource path string true "Form kind (budget or expense)"
// @Param       id       path int    true "Entity ID (0 for a new form)"
// @Success     200 {object} draft.Draft "Saved draft"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No draft saved"
// @Router      /drafts/{resource}/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resource, entityID, err := parseDraftKey(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	saved, ok := h.store.Get(userID, resource, entityID)
	if !ok {
		respondWithError(c, apperrors.ErrDraftNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": saved})
}

// DeleteDraft handles the explicit discard of a saved draft
// @Summary     Discard a form draft
// @Description Drop any saved auto-save state for a form
// @Tags        drafts
// @Produce     json
// @Security    BearerAuth
// @Param       resource path string true "Form kind (budget or expense)"
// @Param       id       path int    true "Entity ID (0 for a new form)"
// @Success     200 {object} MessageResponse "Draft discarded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /drafts/{resource}/{id} [delete]
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resource, entityID, err := parseDraftKey(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.store.Clear(userID, resource, entityID)
	c.JSON(http.StatusOK, gin.H{"message": "Draft discarded"})
}
