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

type FundingController struct {
	db      *gorm.DB
	funding *services.FundingService
}

func NewFundingController(db *gorm.DB, funding *services.FundingService) *FundingController {
	return &FundingController{
		db:      db,
		funding: funding,
	}
}

func convertToAllocationResponse(allocation *models.GuestApprovalFundingApproval) dto.AllocationResponse {
	return dto.AllocationResponse{
		ID:                            allocation.ID,
		FundingApprovalID:             allocation.FundingApprovalID,
		GuestApprovalID:               allocation.GuestApprovalID,
		NightsAllocated:               allocation.NightsAllocated,
		NightsUsed:                    allocation.NightsUsed,
		AdditionalRoomNightsAllocated: allocation.AdditionalRoomNightsAllocated,
		AdditionalRoomNightsUsed:      allocation.AdditionalRoomNightsUsed,
	}
}

func convertToApprovalResponse(approval *models.FundingApproval) dto.FundingApprovalResponse {
	resp := dto.FundingApprovalResponse{
		ID:                           approval.ID,
		GuestID:                      approval.GuestID,
		FundingSource:                approval.FundingSource,
		ApprovalFrom:                 approval.ApprovalFrom,
		ApprovalTo:                   approval.ApprovalTo,
		NightsApproved:               approval.NightsApproved,
		NightsUsed:                   approval.NightsUsed,
		AdditionalRoomNightsApproved: approval.AdditionalRoomNightsApproved,
		AdditionalRoomNightsUsed:     approval.AdditionalRoomNightsUsed,
		CreatedAt:                    approval.CreatedAt,
		UpdatedAt:                    approval.UpdatedAt,
	}
	for i := range approval.Allocations {
		resp.Allocations = append(resp.Allocations, convertToAllocationResponse(&approval.Allocations[i]))
	}
	return resp
}

// GetApprovals lists funding approvals, filterable by guest
func (fc *FundingController) GetApprovals(c *gin.Context) {
	page, limit := parsePagination(c)

	tx := fc.db.Model(&models.FundingApproval{})
	if guestIDStr := c.Query("guestId"); guestIDStr != "" {
		tx = tx.Where("guest_id = ?", guestIDStr)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var approvals []models.FundingApproval
	if err := tx.Preload("Allocations").Order("updated_at desc").
		Offset(page * limit).Limit(limit).Find(&approvals).Error; err != nil {
		response.ServerError(c)
		return
	}

	approvalResponses := make([]dto.FundingApprovalResponse, 0, len(approvals))
	for i := range approvals {
		approvalResponses = append(approvalResponses, convertToApprovalResponse(&approvals[i]))
	}
	response.SuccessWithPagination(c, approvalResponses, page, limit, int(total))
}

// GetApprovalDetail returns one approval with its allocations
func (fc *FundingController) GetApprovalDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid approval id")
		return
	}

	var approval models.FundingApproval
	if err := fc.db.Preload("Allocations").Preload("Guest").First(&approval, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, convertToApprovalResponse(&approval))
}

// CreateApproval records a new funding approval
func (fc *FundingController) CreateApproval(c *gin.Context) {
	var req dto.CreateFundingApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid approval payload")
		return
	}

	approval := models.FundingApproval{
		GuestID:                      req.GuestID,
		FundingSource:                req.FundingSource,
		ApprovalFrom:                 req.ApprovalFrom,
		ApprovalTo:                   req.ApprovalTo,
		NightsApproved:               req.NightsApproved,
		AdditionalRoomNightsApproved: req.AdditionalRoomNightsApproved,
	}
	if err := validator.ValidateFundingApproval(&approval); err != nil {
		respondError(c, err)
		return
	}

	var guest models.Guest
	if err := fc.db.First(&guest, req.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.BadRequest(c, "Guest not found")
			return
		}
		response.ServerError(c)
		return
	}

	if err := fc.db.Create(&approval).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, convertToApprovalResponse(&approval))
}

// CreateGuestApproval records a guest-approval context allocations are
// scoped to
func (fc *FundingController) CreateGuestApproval(c *gin.Context) {
	var req struct {
		GuestID uint   `json:"guestId" binding:"required"`
		Name    string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid guest approval payload")
		return
	}

	var guest models.Guest
	if err := fc.db.First(&guest, req.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.BadRequest(c, "Guest not found")
			return
		}
		response.ServerError(c)
		return
	}

	guestApproval := models.GuestApproval{
		GuestID: req.GuestID,
		Name:    req.Name,
	}
	if err := fc.db.Create(&guestApproval).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, guestApproval)
}

// Allocate reserves nights from an approval for a guest approval
func (fc *FundingController) Allocate(c *gin.Context) {
	var req dto.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid allocation payload")
		return
	}

	allocation, err := fc.funding.Allocate(c.Request.Context(),
		req.FundingApprovalID, req.GuestApprovalID, req.Nights, req.AdditionalRoomNights)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, convertToAllocationResponse(allocation))
}

// Consume records nights used against an allocation
func (fc *FundingController) Consume(c *gin.Context) {
	var req dto.ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid consume payload")
		return
	}

	allocation, err := fc.funding.Consume(c.Request.Context(),
		req.AllocationID, req.Nights, req.AdditionalRoomNights)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, convertToAllocationResponse(allocation))
}

// Release returns consumed nights to an allocation
func (fc *FundingController) Release(c *gin.Context) {
	var req dto.ReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid release payload")
		return
	}

	allocation, err := fc.funding.Release(c.Request.Context(),
		req.AllocationID, req.Nights, req.AdditionalRoomNights)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, convertToAllocationResponse(allocation))
}
