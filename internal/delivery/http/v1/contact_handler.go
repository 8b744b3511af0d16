package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"hushh-site-backend/internal/delivery/http/response"
	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
	draftUC   domain.DraftUsecase
}

// NewContactHandler registers the public contact routes. The upload group
// carries the stricter rate limit for attachment traffic.
func NewContactHandler(public *gin.RouterGroup, uploads *gin.RouterGroup, contactUC domain.ContactUsecase, draftUC domain.DraftUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
		draftUC:   draftUC,
	}

	public.POST("/contact", handler.SubmitContact)
	public.POST("/contact/drafts", handler.CreateDraft)
	public.GET("/contact/drafts/:id", handler.GetDraft)
	public.PATCH("/contact/drafts/:id/fields", handler.UpdateField)
	public.DELETE("/contact/drafts/:id/attachments/:index", handler.RemoveAttachment)
	public.POST("/contact/drafts/:id/submit", handler.SubmitDraft)

	uploads.POST("/contact/drafts/:id/attachments", handler.AddAttachments)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send a message through the contact form without draft staging. Public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[strings.ToLower(fe.Field())] = bindingMessage(fe)
			}
			response.Error(c, http.StatusBadRequest, "Please fix the highlighted fields and try again", fields)
			return
		}
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Your message has been sent successfully!", nil)
}

// CreateDraft godoc
// @Summary      Create Contact Draft
// @Description  Start a new contact draft with default field values.
// @Tags         contact
// @Produce      json
// @Success      201  {object}  response.Response{data=domain.DraftSnapshot}
// @Router       /contact/drafts [post]
func (h *ContactHandler) CreateDraft(c *gin.Context) {
	snap, err := h.draftUC.Create(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Draft created", snap)
}

// GetDraft godoc
// @Summary      Get Contact Draft
// @Tags         contact
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  response.Response{data=domain.DraftSnapshot}
// @Failure      404  {object}  response.Response
// @Router       /contact/drafts/{id} [get]
func (h *ContactHandler) GetDraft(c *gin.Context) {
	snap, err := h.draftUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Draft", snap)
}

// bindingMessage maps a validator tag to a user-facing message
func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "oneof":
		return "Invalid value, must be one of: " + fe.Param()
	default:
		return "Invalid value"
	}
}

type updateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// UpdateField godoc
// @Summary      Update Draft Field
// @Description  Set one form field. A pending validation error on that field is cleared.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        id     path      string              true  "Draft ID"
// @Param        field  body      updateFieldRequest  true  "Field update"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /contact/drafts/{id}/fields [patch]
func (h *ContactHandler) UpdateField(c *gin.Context) {
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.draftUC.SetField(c.Request.Context(), c.Param("id"), req.Field, req.Value); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Field updated", nil)
}

// AddAttachments godoc
// @Summary      Attach Files
// @Description  Stage files on a draft. Files failing the type/size policy are dropped; the response signals the aggregate.
// @Tags         contact
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "Draft ID"
// @Param        files  formData  file    true  "Files to attach"
// @Success      200    {object}  response.Response{data=domain.AddFilesResult}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /contact/drafts/{id}/attachments [post]
func (h *ContactHandler) AddAttachments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.Error(apperror.BadRequest("invalid multipart form"))
		return
	}

	headers := form.File["files"]
	files := make([]domain.IncomingFile, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			c.Error(apperror.BadRequest("failed to open uploaded file"))
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			c.Error(apperror.BadRequest("failed to read uploaded file"))
			return
		}

		// Detect content type from the bytes; the client-declared header is
		// only a fallback for types DetectContentType cannot name
		mime := http.DetectContentType(data)
		if mime == "application/octet-stream" && fh.Header.Get("Content-Type") != "" {
			mime = fh.Header.Get("Content-Type")
		}

		files = append(files, domain.IncomingFile{
			Filename: fh.Filename,
			MIME:     mime,
			Data:     data,
			Origin:   domain.OriginUserPicked,
		})
	}

	result, err := h.draftUC.AddFiles(c.Request.Context(), c.Param("id"), files)
	if err != nil {
		c.Error(err)
		return
	}

	msg := "Files attached"
	if result.Rejected > 0 {
		msg = "Some files were invalid and were not attached"
	}
	response.Success(c, http.StatusOK, msg, result)
}

// RemoveAttachment godoc
// @Summary      Remove Attachment
// @Tags         contact
// @Produce      json
// @Param        id     path      string  true  "Draft ID"
// @Param        index  path      int     true  "Attachment position"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /contact/drafts/{id}/attachments/{index} [delete]
func (h *ContactHandler) RemoveAttachment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(apperror.BadRequest("attachment index must be a number"))
		return
	}

	if err := h.draftUC.RemoveAttachment(c.Request.Context(), c.Param("id"), index); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Attachment removed", nil)
}

// SubmitDraft godoc
// @Summary      Submit Contact Draft
// @Description  Validate and dispatch the draft. On success the draft resets to defaults; on failure it is preserved for retry.
// @Tags         contact
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /contact/drafts/{id}/submit [post]
func (h *ContactHandler) SubmitDraft(c *gin.Context) {
	fieldErrs, err := h.draftUC.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		if len(fieldErrs) > 0 {
			// Validation failures carry the per-field map for inline display
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, fieldErrs)
				return
			}
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Your message has been sent successfully!", nil)
}
