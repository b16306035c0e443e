package controllers

import (
	"errors"
	"time"

	"github.com/evalle012006/sg-sub011/dto"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/response"
	"github.com/evalle012006/sg-sub011/services"
	"github.com/evalle012006/sg-sub011/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	db       *gorm.DB
	triggers *services.TriggerService
}

func NewNotificationController(db *gorm.DB, triggers *services.TriggerService) *NotificationController {
	return &NotificationController{
		db:       db,
		triggers: triggers,
	}
}

// GetNotificationRules lists the notification library
func (nc *NotificationController) GetNotificationRules(c *gin.Context) {
	page, limit := parsePagination(c)

	tx := nc.db.Model(&models.NotificationLibrary{})
	if alertType := c.Query("alertType"); alertType != "" {
		tx = tx.Where("alert_type = ?", alertType)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var rules []models.NotificationLibrary
	if err := tx.Order("id asc").Offset(page * limit).Limit(limit).Find(&rules).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.SuccessWithPagination(c, rules, page, limit, int(total))
}

// CreateNotificationRule adds a notification library rule
func (nc *NotificationController) CreateNotificationRule(c *gin.Context) {
	var req dto.CreateNotificationRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid rule payload")
		return
	}

	rule := models.NotificationLibrary{
		Name:       req.Name,
		Message:    req.Message,
		DateFactor: req.DateFactor,
		AlertType:  req.AlertType,
		Enabled:    true,
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}

	if err := nc.db.Create(&rule).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, rule)
}

// DeleteNotificationRules removes rules by id
func (nc *NotificationController) DeleteNotificationRules(c *gin.Context) {
	var req dto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid delete payload")
		return
	}

	if err := nc.db.Delete(&models.NotificationLibrary{}, req.IDs).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, nil)
}

// GetGuestNotifications lists materialized alerts for a guest
func (nc *NotificationController) GetGuestNotifications(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid guest id")
		return
	}

	var notifications []models.Notification
	if err := nc.db.Where("guest_id = ?", id).
		Order("created_at desc").Find(&notifications).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.SuccessWithTotal(c, notifications, len(notifications))
}

// MarkNotificationRead flags one alert as read
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid notification id")
		return
	}

	var notif models.Notification
	if err := nc.db.First(&notif, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if err := nc.db.Model(&notif).Update("read", true).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, nil)
}

// RunNotificationSweep triggers the daily sweep on demand
func (nc *NotificationController) RunNotificationSweep(c *gin.Context) {
	created, err := nc.triggers.RunDailySweep(c.Request.Context(), time.Now())
	if err != nil {
		utils.LogError("Manual notification sweep failed: %v", err)
		respondError(c, err)
		return
	}
	utils.LogInfo("Manual notification sweep raised %d alerts", created)
	response.Success(c, gin.H{"created": created})
}
