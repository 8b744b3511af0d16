package v1

import (
	"io"
	"net/http"

	"hushh-site-backend/internal/delivery/http/response"
	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RecordingHandler struct {
	draftUC domain.DraftUsecase
}

// NewRecordingHandler registers the voice/video recording routes under the
// upload rate limit group (chunk traffic is the heaviest on this surface).
func NewRecordingHandler(uploads *gin.RouterGroup, draftUC domain.DraftUsecase) {
	handler := &RecordingHandler{draftUC: draftUC}

	uploads.POST("/contact/drafts/:id/recordings/:kind", handler.StartRecording)
	uploads.PATCH("/contact/drafts/:id/recordings/:kind", handler.AppendChunk)
	uploads.POST("/contact/drafts/:id/recordings/:kind/stop", handler.StopRecording)
}

func recordingKind(c *gin.Context) (domain.RecordingKind, error) {
	if !domain.ValidRecordingKind(c.Param("kind")) {
		return "", apperror.BadRequest("recording kind must be 'voice' or 'video'")
	}
	return domain.RecordingKind(c.Param("kind")), nil
}

// StartRecording godoc
// @Summary      Start Recording
// @Description  Open a voice or video recording session on the draft. Only one session per medium may be active.
// @Tags         recording
// @Produce      json
// @Param        id    path      string  true  "Draft ID"
// @Param        kind  path      string  true  "Recording kind"  Enums(voice, video)
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /contact/drafts/{id}/recordings/{kind} [post]
func (h *RecordingHandler) StartRecording(c *gin.Context) {
	kind, err := recordingKind(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.draftUC.StartRecording(c.Request.Context(), c.Param("id"), kind); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recording started", nil)
}

// AppendChunk godoc
// @Summary      Append Recording Chunk
// @Description  Append raw media bytes to an active recording session. The request body is the chunk.
// @Tags         recording
// @Accept       octet-stream
// @Produce      json
// @Param        id    path      string  true  "Draft ID"
// @Param        kind  path      string  true  "Recording kind"  Enums(voice, video)
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /contact/drafts/{id}/recordings/{kind} [patch]
func (h *RecordingHandler) AppendChunk(c *gin.Context) {
	kind, err := recordingKind(c)
	if err != nil {
		c.Error(err)
		return
	}

	chunk, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperror.BadRequest("failed to read request body"))
		return
	}

	if err := h.draftUC.AppendChunk(c.Request.Context(), c.Param("id"), kind, chunk); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Chunk appended", nil)
}

// StopRecording godoc
// @Summary      Stop Recording
// @Description  Finalize the recording session and stage the captured media as a draft attachment.
// @Tags         recording
// @Produce      json
// @Param        id    path      string  true  "Draft ID"
// @Param        kind  path      string  true  "Recording kind"  Enums(voice, video)
// @Success      200   {object}  response.Response{data=domain.Attachment}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /contact/drafts/{id}/recordings/{kind}/stop [post]
func (h *RecordingHandler) StopRecording(c *gin.Context) {
	kind, err := recordingKind(c)
	if err != nil {
		c.Error(err)
		return
	}

	att, err := h.draftUC.StopRecording(c.Request.Context(), c.Param("id"), kind)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recording attached", att)
}
