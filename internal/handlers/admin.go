package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/venturecanvas/assessment-backend/internal/apierr"
  "github.com/venturecanvas/assessment-backend/internal/services"
)

// AdminHandler exposes the reference-data console: categories, questions
// and preambles, plus the dashboard overview.
type AdminHandler struct {
  referenceService services.ReferenceService
}

func NewAdminHandler(referenceService services.ReferenceService) *AdminHandler {
  return &AdminHandler{referenceService: referenceService}
}

func (ah *AdminHandler) Overview(c *gin.Context) {
  overview, err := ah.referenceService.GetOverview(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, overview)
}

func (ah *AdminHandler) CreateCategory(c *gin.Context) {
  var req struct {
    Name  string `json:"name"`
    Order int    `json:"order"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid request body"))
    return
  }
  category, err := ah.referenceService.CreateCategory(c.Request.Context(), req.Name, req.Order)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, category)
}

func (ah *AdminHandler) ListCategories(c *gin.Context) {
  categories, err := ah.referenceService.ListCategories(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"categories": categories})
}

func (ah *AdminHandler) UpdateCategory(c *gin.Context) {
  categoryID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid category id"))
    return
  }
  var req struct {
    Name  *string `json:"name"`
    Order *int    `json:"order"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid request body"))
    return
  }
  updates := map[string]interface{}{}
  if req.Name != nil {
    updates["name"] = *req.Name
  }
  if req.Order != nil {
    updates["display_order"] = *req.Order
  }
  if err := ah.referenceService.UpdateCategory(c.Request.Context(), categoryID, updates); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"updated": true})
}

func (ah *AdminHandler) DeleteCategory(c *gin.Context) {
  categoryID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid category id"))
    return
  }
  if err := ah.referenceService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}

func (ah *AdminHandler) CreateQuestion(c *gin.Context) {
  var req struct {
    CategoryID uuid.UUID `json:"category_id"`
    Content    string    `json:"content"`
    Order      int       `json:"order"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid request body"))
    return
  }
  question, err := ah.referenceService.CreateQuestion(c.Request.Context(), req.CategoryID, req.Content, req.Order)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, question)
}

func (ah *AdminHandler) ListQuestions(c *gin.Context) {
  questions, err := ah.referenceService.ListQuestions(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"questions": questions})
}

func (ah *AdminHandler) UpdateQuestion(c *gin.Context) {
  questionID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid question id"))
    return
  }
  var req struct {
    Content *string `json:"content"`
    Order   *int    `json:"order"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid request body"))
    return
  }
  updates := map[string]interface{}{}
  if req.Content != nil {
    updates["content"] = *req.Content
  }
  if req.Order != nil {
    updates["display_order"] = *req.Order
  }
  if err := ah.referenceService.UpdateQuestion(c.Request.Context(), questionID, updates); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"updated": true})
}

func (ah *AdminHandler) DeleteQuestion(c *gin.Context) {
  questionID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid question id"))
    return
  }
  if err := ah.referenceService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}

func (ah *AdminHandler) CreatePreamble(c *gin.Context) {
  var req struct {
    CategoryID uuid.UUID `json:"category_id"`
    Content    string    `json:"content"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid request body"))
    return
  }
  preamble, err := ah.referenceService.CreatePreamble(c.Request.Context(), req.CategoryID, req.Content)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, preamble)
}

func (ah *AdminHandler) ListPreambles(c *gin.Context) {
  preambles, err := ah.referenceService.ListPreambles(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"preambles": preambles})
}

func (ah *AdminHandler) UpdatePreamble(c *gin.Context) {
  preambleID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid preamble id"))
    return
  }
  var req struct {
    Content *string `json:"content"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid request body"))
    return
  }
  updates := map[string]interface{}{}
  if req.Content != nil {
    updates["content"] = *req.Content
  }
  if err := ah.referenceService.UpdatePreamble(c.Request.Context(), preambleID, updates); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"updated": true})
}

func (ah *AdminHandler) DeletePreamble(c *gin.Context) {
  preambleID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid preamble id"))
    return
  }
  if err := ah.referenceService.DeletePreamble(c.Request.Context(), preambleID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
