package controllers

import (
	"errors"

	"github.com/evalle012006/sg-sub011/dto"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/response"
	"github.com/evalle012006/sg-sub011/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SettingController struct {
	db       *gorm.DB
	settings *services.SettingsService
}

func NewSettingController(db *gorm.DB, settings *services.SettingsService) *SettingController {
	return &SettingController{
		db:       db,
		settings: settings,
	}
}

// GetSettings lists all settings rows
func (sc *SettingController) GetSettings(c *gin.Context) {
	var settings []models.Setting
	if err := sc.db.Order("key asc").Find(&settings).Error; err != nil {
		response.ServerError(c)
		return
	}

	settingResponses := make([]dto.SettingResponse, 0, len(settings))
	for _, s := range settings {
		settingResponses = append(settingResponses, dto.SettingResponse{
			ID:        s.ID,
			Key:       s.Key,
			Value:     s.Value,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	response.SuccessWithTotal(c, settingResponses, len(settingResponses))
}

// GetStatusCatalog returns the loaded status/eligibility catalog the
// console renders pickers from
func (sc *SettingController) GetStatusCatalog(c *gin.Context) {
	catalog := sc.settings.Catalog()
	response.Success(c, gin.H{
		"statuses":      catalog.Statuses,
		"eligibilities": catalog.Eligibilities,
		"guestFlags":    sc.settings.GuestFlags(),
	})
}

// UpsertSetting creates or replaces a settings row and reloads the
// catalog so the change takes effect immediately
func (sc *SettingController) UpsertSetting(c *gin.Context) {
	var req dto.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid setting payload")
		return
	}

	var setting models.Setting
	err := sc.db.Where("key = ?", req.Key).First(&setting).Error
	switch {
	case err == nil:
		setting.Value = req.Value
		if err := sc.db.Save(&setting).Error; err != nil {
			response.ServerError(c)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.Setting{Key: req.Key, Value: req.Value}
		if err := sc.db.Create(&setting).Error; err != nil {
			response.ServerError(c)
			return
		}
	default:
		response.ServerError(c)
		return
	}

	if err := sc.settings.Reload(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, setting)
}

// ReloadSettings re-reads the settings table on demand
func (sc *SettingController) ReloadSettings(c *gin.Context) {
	if err := sc.settings.Reload(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}
