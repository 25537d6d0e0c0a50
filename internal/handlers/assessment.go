package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/venturecanvas/assessment-backend/internal/apierr"
  "github.com/venturecanvas/assessment-backend/internal/services"
  "github.com/venturecanvas/assessment-backend/internal/session"
)

type AssessmentHandler struct {
  assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
  return &AssessmentHandler{assessmentService: assessmentService}
}

func (ah *AssessmentHandler) Create(c *gin.Context) {
  assessment, err := ah.assessmentService.CreateAssessment(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, assessment)
}

func (ah *AssessmentHandler) List(c *gin.Context) {
  assessments, err := ah.assessmentService.GetUserAssessments(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"assessments": assessments})
}

func (ah *AssessmentHandler) GetWorkspace(c *gin.Context) {
  assessmentID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid assessment id"))
    return
  }
  workspace, err := ah.assessmentService.GetWorkspace(c.Request.Context(), assessmentID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, workspace)
}

func (ah *AssessmentHandler) SaveResponses(c *gin.Context) {
  assessmentID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid assessment id"))
    return
  }
  var req struct {
    Responses []struct {
      QuestionID uuid.UUID `json:"question_id"`
      Answer     string    `json:"answer"`
      Confidence int       `json:"confidence"`
    } `json:"responses"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid request body"))
    return
  }
  entries := make([]session.Entry, 0, len(req.Responses))
  for _, r := range req.Responses {
    entries = append(entries, session.Entry{
      QuestionID: r.QuestionID,
      Answer:     r.Answer,
      Confidence: r.Confidence,
    })
  }
  if err := ah.assessmentService.SaveResponses(c.Request.Context(), assessmentID, entries); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"saved": len(entries)})
}
