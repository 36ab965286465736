package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"LoveAI/backend/go/internal/auth"
	"LoveAI/backend/go/internal/journal_service/service"
	"LoveAI/backend/go/internal/models"
	"LoveAI/backend/go/pkg/logger"

	"github.com/gin-gonic/gin"
)

// maxPhotoSize caps prospect photo uploads at 10 MiB.
const maxPhotoSize = 10 << 20

// API provides handlers for the journal service.
type API struct {
	service *service.Service
	logger  *logger.Logger
}

// NewAPI creates a new API handler.
func NewAPI(service *service.Service, logger *logger.Logger) *API {
	return &API{service: service, logger: logger}
}

// --- Profile Handlers ---

// GetProfileHandler returns the user's dating profile. A user who has never
// saved one gets an empty object, not a 404: the mobile client treats the
// two states the same.
func (a *API) GetProfileHandler(c *gin.Context) {
	userID := auth.UserID(c)

	profile, err := a.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfileHandler creates or updates the user's dating profile.
func (a *API) SaveProfileHandler(c *gin.Context) {
	userID := auth.UserID(c)

	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		a.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Invalid profile payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := a.service.SaveProfile(c.Request.Context(), userID, &profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// --- Prospect Handlers ---

// CreateProspectHandler creates a new prospect.
func (a *API) CreateProspectHandler(c *gin.Context) {
	userID := auth.UserID(c)

	var prospect models.Prospect
	if err := c.ShouldBindJSON(&prospect); err != nil {
		a.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Invalid prospect payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	created, err := a.service.CreateProspect(c.Request.Context(), userID, &prospect)
	if err != nil {
		if errors.Is(err, service.ErrProspectNameExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListProspectsHandler lists the user's prospects. Pass ?active=true to
// exclude the graveyard.
func (a *API) ListProspectsHandler(c *gin.Context) {
	userID := auth.UserID(c)
	activeOnly := c.Query("active") == "true"

	prospects, err := a.service.ListProspects(c.Request.Context(), userID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prospects"})
		return
	}
	if prospects == nil {
		prospects = []*models.Prospect{}
	}
	c.JSON(http.StatusOK, prospects)
}

// GetProspectHandler returns a single prospect by ID.
func (a *API) GetProspectHandler(c *gin.Context) {
	userID := auth.UserID(c)

	prospect, err := a.service.GetProspect(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prospect not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prospect"})
		return
	}
	c.JSON(http.StatusOK, prospect)
}

// UpdateProspectHandler updates an existing prospect.
func (a *API) UpdateProspectHandler(c *gin.Context) {
	userID := auth.UserID(c)

	var prospect models.Prospect
	if err := c.ShouldBindJSON(&prospect); err != nil {
		a.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Invalid prospect payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	prospect.ID = c.Param("id")

	updated, err := a.service.UpdateProspect(c.Request.Context(), userID, &prospect)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Prospect not found"})
		case errors.Is(err, service.ErrProspectNameExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ArchiveProspectHandler moves a prospect to the graveyard.
func (a *API) ArchiveProspectHandler(c *gin.Context) {
	a.graveyardAction(c, a.service.ArchiveProspect)
}

// RestoreProspectHandler moves a prospect back out of the graveyard.
func (a *API) RestoreProspectHandler(c *gin.Context) {
	userID := auth.UserID(c)

	err := a.service.RestoreProspect(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Prospect not found"})
		case errors.Is(err, service.ErrProspectNameExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore prospect"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteProspectHandler permanently removes a prospect.
func (a *API) DeleteProspectHandler(c *gin.Context) {
	a.graveyardAction(c, a.service.DeleteProspect)
}

// graveyardAction runs a prospect mutation that only needs the ID.
func (a *API) graveyardAction(c *gin.Context, fn func(ctx context.Context, userID, id string) error) {
	userID := auth.UserID(c)

	if err := fn(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prospect not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Photo Handlers ---

// UploadPhotoHandler stores a photo for a prospect. The photo is sent as a
// multipart form file under the "photo" field.
func (a *API) UploadPhotoHandler(c *gin.Context) {
	userID := auth.UserID(c)
	prospectID := c.Param("id")

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo file"})
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Photo exceeds the 10 MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read photo file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	objectName, err := a.service.SetProspectPhoto(c.Request.Context(), userID, prospectID, file, fileHeader.Size, contentType)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prospect not found"})
			return
		}
		a.logger.WithError(models.ErrorInfo{Message: err.Error()}).Error("Failed to store prospect photo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photoUrl": objectName})
}

// GetPhotoHandler streams the current photo of a prospect.
func (a *API) GetPhotoHandler(c *gin.Context) {
	userID := auth.UserID(c)

	rc, err := a.service.GetProspectPhoto(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve photo"})
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		a.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Photo stream interrupted")
	}
}

// DeletePhotoHandler removes the photo from a prospect.
func (a *API) DeletePhotoHandler(c *gin.Context) {
	userID := auth.UserID(c)

	if err := a.service.DeleteProspectPhoto(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prospect not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove photo"})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Note Handlers ---

// CreateNoteHandler adds a timeline note to a prospect.
func (a *API) CreateNoteHandler(c *gin.Context) {
	userID := auth.UserID(c)

	var payload struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	note, err := a.service.CreateNote(c.Request.Context(), userID, c.Param("id"), payload.Content)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prospect not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, note)
}

// ListNotesHandler lists a prospect's timeline notes, newest first.
func (a *API) ListNotesHandler(c *gin.Context) {
	userID := auth.UserID(c)

	notes, err := a.service.ListNotes(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notes"})
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	c.JSON(http.StatusOK, notes)
}

// UpdateNoteHandler changes the text of an existing note.
func (a *API) UpdateNoteHandler(c *gin.Context) {
	userID := auth.UserID(c)

	var payload struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := a.service.UpdateNote(c.Request.Context(), userID, c.Param("noteId"), payload.Content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteNoteHandler removes a note from a prospect's timeline.
func (a *API) DeleteNoteHandler(c *gin.Context) {
	userID := auth.UserID(c)

	if err := a.service.DeleteNote(c.Request.Context(), userID, c.Param("noteId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Date Handlers ---

// CreateDateHandler records a scheduled or past date.
func (a *API) CreateDateHandler(c *gin.Context) {
	userID := auth.UserID(c)

	var record models.DateRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	created, err := a.service.CreateDate(c.Request.Context(), userID, &record)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListDatesHandler lists all of the user's date records chronologically.
func (a *API) ListDatesHandler(c *gin.Context) {
	userID := auth.UserID(c)

	records, err := a.service.ListDates(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dates"})
		return
	}
	if records == nil {
		records = []*models.DateRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// UpdateDateHandler applies changes to an existing date record.
func (a *API) UpdateDateHandler(c *gin.Context) {
	userID := auth.UserID(c)

	var record models.DateRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	record.ID = c.Param("id")

	updated, err := a.service.UpdateDate(c.Request.Context(), userID, &record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update date"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteDateHandler removes a date record.
func (a *API) DeleteDateHandler(c *gin.Context) {
	userID := auth.UserID(c)

	if err := a.service.DeleteDate(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete date"})
		return
	}
	c.Status(http.StatusNoContent)
}
