package handler

import (
	"log/slog"
	"net/http"

	"github.com/Amsaho/jobhunt/internal/core/application"
	"github.com/gin-gonic/gin"
)

// ApplicationHandler は応募関連のエンドポイントです。
type ApplicationHandler struct {
	svc    application.UseCase
	logger *slog.Logger
}

// NewApplicationHandler は ApplicationHandler を生成します。
func NewApplicationHandler(svc application.UseCase, logger *slog.Logger) *ApplicationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationHandler{svc: svc, logger: logger}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// Apply は認証済みユーザーとして求人 :id へ応募します。
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		fail(c, http.StatusBadRequest, "Job id is required.")
		return
	}

	app, err := h.svc.Submit(c.Request.Context(), application.SubmitInput{
		JobID:       jobID,
		ApplicantID: currentUserID(c),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Job applied successfully.", gin.H{"application": toApplicationView(app)})
}

// AppliedJobs は認証済みユーザーの応募一覧を返します。
func (h *ApplicationHandler) AppliedJobs(c *gin.Context) {
	apps, err := h.svc.ListForApplicant(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"application": toApplicationViews(apps)})
}

// Applicants は求人 :id の応募者一覧を返します。
func (h *ApplicationHandler) Applicants(c *gin.Context) {
	result, err := h.svc.ListApplicants(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"job": toJobApplicantsView(result)})
}

// UpdateStatus は応募 :id のステータスを更新します。
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		fail(c, http.StatusBadRequest, "Status is required.")
		return
	}

	if _, err := h.svc.UpdateStatus(c.Request.Context(), application.UpdateStatusInput{
		ApplicationID: c.Param("id"),
		Status:        req.Status,
	}); err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Status updated successfully.", nil)
}
