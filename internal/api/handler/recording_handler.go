package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/voicedeck/recorder-api/internal/api/middleware"
	"github.com/voicedeck/recorder-api/internal/core/domain"
	"github.com/voicedeck/recorder-api/internal/core/ports"
)

// uploadField is the multipart form field carrying the audio blob.
const uploadField = "recording"

// RecordingHandler handles HTTP requests for recording operations. All routes
// sit behind the Session middleware, so a user id is always present.
type RecordingHandler struct {
	service ports.RecordingService
}

func NewRecordingHandler(service ports.RecordingService) *RecordingHandler {
	return &RecordingHandler{service: service}
}

// Create handles POST /api/recordings — multipart audio upload.
//
// @Summary      Upload a recording
// @Tags         recordings
// @Accept       multipart/form-data
// @Produce      json
// @Param        recording  formData  file    true   "Audio file"
// @Param        duration   formData  number  false  "Duration in seconds"
// @Success      200  {object}  ports.RecordingView
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      413  {object}  errorResponse
// @Router       /api/recordings [post]
func (h *RecordingHandler) Create(c echo.Context) error {
	userID, ok := apimiddleware.UserID(c)
	if !ok {
		return domain.ErrNotLoggedIn
	}

	fileHeader, err := c.FormFile(uploadField)
	if err != nil {
		return fmt.Errorf("%w: no file uploaded", domain.ErrValidation)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	var duration *float64
	if raw := c.FormValue("duration"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: duration must be a non-negative number", domain.ErrValidation)
		}
		duration = &d
	}

	view, err := h.service.Create(c.Request().Context(), ports.UploadInput{
		UserID:       userID,
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get(echo.HeaderContentType),
		Size:         fileHeader.Size,
		Duration:     duration,
		Body:         file,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}

// List handles GET /api/recordings — the caller's recordings, newest first.
//
// @Summary      List recordings
// @Tags         recordings
// @Produce      json
// @Success      200  {object}  listRecordingsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/recordings [get]
func (h *RecordingHandler) List(c echo.Context) error {
	userID, ok := apimiddleware.UserID(c)
	if !ok {
		return domain.ErrNotLoggedIn
	}

	views, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if views == nil {
		views = []*ports.RecordingView{}
	}

	return c.JSON(http.StatusOK, listRecordingsResponse{Recordings: views})
}

// Rename handles PATCH /api/recordings/:id.
//
// @Summary      Rename a recording
// @Tags         recordings
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Recording id"
// @Param        body  body      renameRecordingRequest  true  "New display name"
// @Success      200  {object}  ports.RecordingView
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recordings/{id} [patch]
func (h *RecordingHandler) Rename(c echo.Context) error {
	userID, ok := apimiddleware.UserID(c)
	if !ok {
		return domain.ErrNotLoggedIn
	}

	id, err := recordingID(c)
	if err != nil {
		return err
	}

	var req renameRecordingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Rename(c.Request().Context(), userID, id, req.OriginalName)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /api/recordings/:id.
//
// @Summary      Delete a recording
// @Tags         recordings
// @Produce      json
// @Param        id  path  int  true  "Recording id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recordings/{id} [delete]
func (h *RecordingHandler) Delete(c echo.Context) error {
	userID, ok := apimiddleware.UserID(c)
	if !ok {
		return domain.ErrNotLoggedIn
	}

	id, err := recordingID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "recording deleted"})
}

// recordingID parses the :id path segment. A non-numeric id can never match a
// row, so it reports not-found rather than a validation failure.
func recordingID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrRecordingNotFound
	}
	return id, nil
}
