package controllers

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/evalle012006/sg-sub011/config"
	"github.com/evalle012006/sg-sub011/dto"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetEquipment lists assets with name/category/availability filters
func GetEquipment(c *gin.Context) {
	page, limit := parsePagination(c)

	tx := config.DB.Model(&models.Equipment{})
	if nameFilter := c.Query("name"); nameFilter != "" {
		decoded, err := url.QueryUnescape(nameFilter)
		if err != nil {
			response.ServerError(c)
			return
		}
		tx = tx.Where("name ILIKE ?", "%"+decoded+"%")
	}
	if category := c.Query("category"); category != "" {
		tx = tx.Where("category = ?", category)
	}
	if availableStr := c.Query("available"); availableStr != "" {
		if available, err := strconv.ParseBool(availableStr); err == nil {
			tx = tx.Where("available = ?", available)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var equipment []models.Equipment
	if err := tx.Order("updated_at desc").Offset(page * limit).Limit(limit).Find(&equipment).Error; err != nil {
		response.ServerError(c)
		return
	}

	equipmentResponses := make([]dto.EquipmentResponse, 0, len(equipment))
	for _, e := range equipment {
		equipmentResponses = append(equipmentResponses, dto.EquipmentResponse{
			ID:           e.ID,
			Name:         e.Name,
			Category:     e.Category,
			SerialNumber: e.SerialNumber,
			Available:    e.Available,
			CreatedAt:    e.CreatedAt,
			UpdatedAt:    e.UpdatedAt,
		})
	}
	response.SuccessWithPagination(c, equipmentResponses, page, limit, int(total))
}

// CreateEquipment registers a new asset
func CreateEquipment(c *gin.Context) {
	var req dto.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid equipment payload")
		return
	}

	equipment := models.Equipment{
		Name:         req.Name,
		Category:     req.Category,
		SerialNumber: req.SerialNumber,
		Available:    true,
	}
	if err := config.DB.Create(&equipment).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, equipment)
}

// UpdateEquipment updates an asset
func UpdateEquipment(c *gin.Context) {
	var req dto.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid equipment payload")
		return
	}

	var equipment models.Equipment
	if err := config.DB.First(&equipment, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if req.Name != "" {
		equipment.Name = req.Name
	}
	if req.Category != "" {
		equipment.Category = req.Category
	}
	if req.SerialNumber != "" {
		equipment.SerialNumber = req.SerialNumber
	}
	if req.Available != nil {
		equipment.Available = *req.Available
	}

	if err := config.DB.Save(&equipment).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, equipment)
}

// DeleteEquipment removes assets by id
func DeleteEquipment(c *gin.Context) {
	var req dto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid delete payload")
		return
	}

	if err := config.DB.Delete(&models.Equipment{}, req.IDs).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, nil)
}
