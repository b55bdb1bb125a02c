package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"keygate.backend/internal/domain/entities"
	domainerrors "keygate.backend/internal/domain/errors"
	"keygate.backend/internal/interfaces/http/response"
	"keygate.backend/internal/usecases"
)

// PersonalKeyHandler handles the personal key admin endpoints
type PersonalKeyHandler struct {
	keyUsecase *usecases.PersonalKeyUsecase
}

// NewPersonalKeyHandler creates a new personal key handler
func NewPersonalKeyHandler(keyUsecase *usecases.PersonalKeyUsecase) *PersonalKeyHandler {
	return &PersonalKeyHandler{keyUsecase: keyUsecase}
}

// Create issues a new personal key for a user
// POST /api/v1/admin
func (h *PersonalKeyHandler) Create(c *gin.Context) {
	var input entities.CreatePersonalKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	view, err := h.keyUsecase.Issue(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, view)
}

// List lists every key of a user
// GET /api/v1/admin/:userID
func (h *PersonalKeyHandler) List(c *gin.Context) {
	userID, err := pathUUID(c, "userID")
	if err != nil {
		response.Error(c, err)
		return
	}

	views, err := h.keyUsecase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, views)
}

// Get returns a single key of a user
// GET /api/v1/admin/:userID/:keyID
func (h *PersonalKeyHandler) Get(c *gin.Context) {
	userID, keyID, err := pathScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.keyUsecase.Get(c.Request.Context(), userID, keyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Update applies a partial update to a key
// PUT /api/v1/admin/:userID/:keyID
func (h *PersonalKeyHandler) Update(c *gin.Context) {
	userID, keyID, err := pathScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdatePersonalKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	view, err := h.keyUsecase.Update(c.Request.Context(), userID, keyID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Reset replaces a key's credential pair
// POST /api/v1/admin/:userID/:keyID/reset
func (h *PersonalKeyHandler) Reset(c *gin.Context) {
	userID, keyID, err := pathScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.keyUsecase.Reset(c.Request.Context(), userID, keyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Delete removes a key and its logs
// DELETE /api/v1/admin/:userID/:keyID
func (h *PersonalKeyHandler) Delete(c *gin.Context) {
	userID, keyID, err := pathScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.keyUsecase.Delete(c.Request.Context(), userID, keyID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": "true"})
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.Validation(name + " must be a valid UUID")
	}
	return id, nil
}

func pathScope(c *gin.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := pathUUID(c, "userID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	keyID, err := pathUUID(c, "keyID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, keyID, nil
}
