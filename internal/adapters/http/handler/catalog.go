package handler

import (
	"log/slog"
	"net/http"

	"github.com/Amsaho/jobhunt/internal/core/company"
	"github.com/Amsaho/jobhunt/internal/core/job"
	"github.com/gin-gonic/gin"
)

// CatalogHandler は会社・求人の参照エンドポイントです。
type CatalogHandler struct {
	companies company.UseCase
	jobs      job.UseCase
	logger    *slog.Logger
}

// NewCatalogHandler は CatalogHandler を生成します。
func NewCatalogHandler(companies company.UseCase, jobs job.UseCase, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{companies: companies, jobs: jobs, logger: logger}
}

func (h *CatalogHandler) GetCompany(c *gin.Context) {
	found, err := h.companies.GetCompany(c.Request.Context(), company.GetCompanyInput{ID: c.Param("id")})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"company": toCompanyView(found)})
}

func (h *CatalogHandler) GetJob(c *gin.Context) {
	found, err := h.jobs.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"job": toJobView(found)})
}
