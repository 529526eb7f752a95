package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"towerup-backend/internal/middleware"
	"towerup-backend/internal/models"
	"towerup-backend/internal/services"
)

const submissionAccepted = "Спасибо! Ваша заявка принята, мы свяжемся с вами в ближайшее время."

type SubmissionsHandler struct {
	submissions *services.SubmissionService
}

func NewSubmissionsHandler(submissions *services.SubmissionService) *SubmissionsHandler {
	return &SubmissionsHandler{submissions: submissions}
}

func limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body,
		services.MaxAttachments*services.MaxAttachmentBytes+1<<20)
}

// formAttachments reads the files under field from a multipart request. Other
// content types carry no files.
func formAttachments(c *gin.Context, field string) ([]services.Attachment, error) {
	form, err := c.MultipartForm()
	if errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	headers := form.File[field]
	if len(headers) > services.MaxAttachments {
		return nil, services.ErrTooManyAttachments
	}
	files := make([]services.Attachment, 0, len(headers))
	for _, h := range headers {
		f, err := readAttachment(h)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func accepted(c *gin.Context, id string) {
	c.JSON(http.StatusCreated, models.SubmissionResponse{
		ID:      id,
		Status:  string(models.StatusNew),
		Message: submissionAccepted,
	})
}

// Contact godoc
// @Summary     Send a contact message
// @Tags        submissions
// @Accept      json
// @Produce     json
// @Param       request body     models.ContactRequest true "Message"
// @Success     201     {object} models.SubmissionResponse
// @Failure     400     {object} models.ErrorResponse
// @Failure     429     {object} models.ErrorResponse
// @Router      /api/v1/contact [post]
func (h *SubmissionsHandler) Contact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	msg, err := h.submissions.SubmitContact(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "store", "contact message")
		return
	}
	accepted(c, msg.ID.String())
}

// ApplyForVacancy godoc
// @Summary     Apply for a vacancy
// @Description Accepts multipart form data with optional resume files, or JSON without files
// @Tags        submissions
// @Accept      multipart/form-data
// @Produce     json
// @Param       id           path     string true  "Vacancy ID"
// @Param       full_name    formData string true  "Full name"
// @Param       email        formData string true  "Email"
// @Param       phone        formData string true  "Phone"
// @Param       cover_letter formData string false "Cover letter"
// @Param       resume       formData file   false "Resume (up to 5 files, 10 MB each)"
// @Success     201 {object} models.SubmissionResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Router      /api/v1/vacancies/{id}/apply [post]
func (h *SubmissionsHandler) ApplyForVacancy(c *gin.Context) {
	vacancyID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	limitBody(c)

	var req models.VacancyApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	files, err := formAttachments(c, "resume")
	if err != nil {
		respondError(c, err, "read", "attachments")
		return
	}

	app, err := h.submissions.ApplyForVacancy(c.Request.Context(), vacancyID, req, files)
	if err != nil {
		respondError(c, err, "store", "vacancy")
		return
	}
	accepted(c, app.ID.String())
}

// ApplyForTender godoc
// @Summary     Submit a tender application
// @Description tender_id is optional; without it the request is a general partnership application
// @Tags        submissions
// @Accept      multipart/form-data
// @Produce     json
// @Param       tender_id    formData string false "Tender ID"
// @Param       company_name formData string true  "Company"
// @Param       contact_name formData string true  "Contact person"
// @Param       email        formData string true  "Email"
// @Param       phone        formData string true  "Phone"
// @Param       message      formData string false "Message"
// @Param       attachments  formData file   false "Documents (up to 5 files, 10 MB each)"
// @Success     201 {object} models.SubmissionResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/v1/tenders/apply [post]
func (h *SubmissionsHandler) ApplyForTender(c *gin.Context) {
	limitBody(c)

	var req models.TenderApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	files, err := formAttachments(c, "attachments")
	if err != nil {
		respondError(c, err, "read", "attachments")
		return
	}

	app, err := h.submissions.SubmitTender(c.Request.Context(), req, files)
	if err != nil {
		respondError(c, err, "store", "tender")
		return
	}
	accepted(c, app.ID.String())
}

// CommercialOffer godoc
// @Summary     Send a commercial offer
// @Tags        submissions
// @Accept      multipart/form-data
// @Produce     json
// @Param       company_name formData string true  "Company"
// @Param       contact_name formData string true  "Contact person"
// @Param       email        formData string true  "Email"
// @Param       phone        formData string true  "Phone"
// @Param       message      formData string true  "Offer"
// @Param       attachments  formData file   false "Documents (up to 5 files, 10 MB each)"
// @Success     201 {object} models.SubmissionResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/v1/commercial-offers [post]
func (h *SubmissionsHandler) CommercialOffer(c *gin.Context) {
	limitBody(c)

	var req models.CommercialOfferRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	files, err := formAttachments(c, "attachments")
	if err != nil {
		respondError(c, err, "read", "attachments")
		return
	}

	offer, err := h.submissions.SubmitOffer(c.Request.Context(), req, files)
	if err != nil {
		respondError(c, err, "store", "commercial offer")
		return
	}
	accepted(c, offer.ID.String())
}
