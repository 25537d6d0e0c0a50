package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/venturecanvas/assessment-backend/internal/apierr"
  "github.com/venturecanvas/assessment-backend/internal/services"
)

type ReportHandler struct {
  reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
  return &ReportHandler{reportService: reportService}
}

func (rh *ReportHandler) Generate(c *gin.Context) {
  assessmentID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid assessment id"))
    return
  }
  report, err := rh.reportService.Generate(c.Request.Context(), assessmentID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, report)
}

func (rh *ReportHandler) List(c *gin.Context) {
  reports, err := rh.reportService.GetUserReports(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"reports": reports})
}

func (rh *ReportHandler) Get(c *gin.Context) {
  reportID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid report id"))
    return
  }
  report, sections, err := rh.reportService.GetReport(c.Request.Context(), reportID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"report": report, "sections": sections})
}
