package controllers

import (
	"errors"

	"github.com/evalle012006/sg-sub011/dto"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/response"
	"github.com/evalle012006/sg-sub011/services"
	"github.com/evalle012006/sg-sub011/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TriggerController struct {
	db       *gorm.DB
	triggers *services.TriggerService
}

func NewTriggerController(db *gorm.DB, triggers *services.TriggerService) *TriggerController {
	return &TriggerController{
		db:       db,
		triggers: triggers,
	}
}

func convertToTriggerResponse(trigger *models.EmailTrigger) dto.TriggerResponse {
	return dto.TriggerResponse{
		ID:               trigger.ID,
		Name:             trigger.Name,
		TriggerQuestions: trigger.TriggerQuestions,
		Type:             trigger.Type,
		Recipient:        trigger.Recipient,
		Template:         trigger.Template,
		Enabled:          trigger.Enabled,
		CreatedAt:        trigger.CreatedAt,
		UpdatedAt:        trigger.UpdatedAt,
	}
}

// GetTriggers lists email trigger rules
func (tc *TriggerController) GetTriggers(c *gin.Context) {
	page, limit := parsePagination(c)

	tx := tc.db.Model(&models.EmailTrigger{})
	if typeFilter := c.Query("type"); typeFilter != "" {
		tx = tx.Where("type = ?", typeFilter)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var triggers []models.EmailTrigger
	if err := tx.Order("id asc").Offset(page * limit).Limit(limit).Find(&triggers).Error; err != nil {
		response.ServerError(c)
		return
	}

	triggerResponses := make([]dto.TriggerResponse, 0, len(triggers))
	for i := range triggers {
		triggerResponses = append(triggerResponses, convertToTriggerResponse(&triggers[i]))
	}
	response.SuccessWithPagination(c, triggerResponses, page, limit, int(total))
}

// CreateTrigger creates an email trigger rule
func (tc *TriggerController) CreateTrigger(c *gin.Context) {
	var req dto.CreateTriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid trigger payload")
		return
	}

	trigger := models.EmailTrigger{
		Name:             req.Name,
		TriggerQuestions: req.TriggerQuestions,
		Type:             req.Type,
		Recipient:        req.Recipient,
		Template:         req.Template,
		Enabled:          true,
	}
	if req.Enabled != nil {
		trigger.Enabled = *req.Enabled
	}

	if err := validator.ValidateEmailTrigger(&trigger); err != nil {
		respondError(c, err)
		return
	}

	if err := tc.db.Create(&trigger).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, convertToTriggerResponse(&trigger))
}

// UpdateTrigger updates an email trigger rule
func (tc *TriggerController) UpdateTrigger(c *gin.Context) {
	var req dto.UpdateTriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid trigger payload")
		return
	}

	var trigger models.EmailTrigger
	if err := tc.db.First(&trigger, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if req.Name != "" {
		trigger.Name = req.Name
	}
	if len(req.TriggerQuestions) > 0 {
		trigger.TriggerQuestions = req.TriggerQuestions
	}
	if req.Type != "" {
		trigger.Type = req.Type
	}
	if req.Recipient != "" {
		trigger.Recipient = req.Recipient
	}
	if req.Template != "" {
		trigger.Template = req.Template
	}
	if req.Enabled != nil {
		trigger.Enabled = *req.Enabled
	}

	if err := validator.ValidateEmailTrigger(&trigger); err != nil {
		respondError(c, err)
		return
	}

	if err := tc.db.Save(&trigger).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, convertToTriggerResponse(&trigger))
}

// DeleteTriggers removes trigger rules by id
func (tc *TriggerController) DeleteTriggers(c *gin.Context) {
	var req dto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid delete payload")
		return
	}

	if err := tc.db.Delete(&models.EmailTrigger{}, req.IDs).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, nil)
}

// EvaluateGuestTriggers dry-runs the rule set against a guest's recorded
// answers without sending anything
func (tc *TriggerController) EvaluateGuestTriggers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid guest id")
		return
	}

	fired, err := tc.triggers.EvaluateForGuest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	firedResponses := make([]dto.FiredTriggerResponse, 0, len(fired))
	for _, f := range fired {
		firedResponses = append(firedResponses, dto.FiredTriggerResponse{
			TriggerID: f.Trigger.ID,
			Name:      f.Trigger.Name,
			Recipient: f.Recipient,
			Template:  f.Template,
		})
	}
	response.SuccessWithTotal(c, firedResponses, len(firedResponses))
}
