package controllers

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/evalle012006/sg-sub011/dto"
	apperrors "github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/response"
	"github.com/evalle012006/sg-sub011/services"
	"github.com/evalle012006/sg-sub011/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GuestController struct {
	db       *gorm.DB
	settings *services.SettingsService
	search   *services.GuestSearchService
	triggers *services.TriggerService
}

func NewGuestController(db *gorm.DB, settings *services.SettingsService, triggers *services.TriggerService) *GuestController {
	return &GuestController{
		db:       db,
		settings: settings,
		search:   services.NewGuestSearchService(db),
		triggers: triggers,
	}
}

func convertToGuestResponse(guest *models.Guest) dto.GuestResponse {
	return dto.GuestResponse{
		ID:          guest.ID,
		FirstName:   guest.FirstName,
		LastName:    guest.LastName,
		Email:       guest.Email,
		PhoneNumber: guest.PhoneNumber,
		Address:     guest.Address,
		DateOfBirth: guest.DateOfBirth,
		Flags:       guest.Flags,
		Active:      guest.Active,
		CreatedAt:   guest.CreatedAt,
		UpdatedAt:   guest.UpdatedAt,
	}
}

// GetGuests lists guests with name/flag/active filters
func (gc *GuestController) GetGuests(c *gin.Context) {
	page, limit := parsePagination(c)

	tx := gc.db.Model(&models.Guest{})

	if nameFilter := c.Query("name"); nameFilter != "" {
		decoded, err := url.QueryUnescape(nameFilter)
		if err != nil {
			response.ServerError(c)
			return
		}
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ?", "%"+decoded+"%", "%"+decoded+"%")
	}
	if flag := c.Query("flag"); flag != "" {
		tx = tx.Where("? = ANY(flags)", flag)
	}
	if activeStr := c.Query("active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			tx = tx.Where("active = ?", active)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var guests []models.Guest
	if err := tx.Order("updated_at desc").Offset(page * limit).Limit(limit).Find(&guests).Error; err != nil {
		response.ServerError(c)
		return
	}

	guestResponses := make([]dto.GuestResponse, 0, len(guests))
	for i := range guests {
		guestResponses = append(guestResponses, convertToGuestResponse(&guests[i]))
	}

	response.SuccessWithPagination(c, guestResponses, page, limit, int(total))
}

// SearchGuests ranks guests against a fuzzy free-text query
func (gc *GuestController) SearchGuests(c *gin.Context) {
	query := c.Query("q")
	_, limit := parsePagination(c)

	guests, err := gc.search.Search(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	guestResponses := make([]dto.GuestResponse, 0, len(guests))
	for i := range guests {
		guestResponses = append(guestResponses, convertToGuestResponse(&guests[i]))
	}
	response.SuccessWithTotal(c, guestResponses, len(guestResponses))
}

// GetGuestByID returns one guest with bookings and answers
func (gc *GuestController) GetGuestByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid guest id")
		return
	}

	var guest models.Guest
	if err := gc.db.Preload("Bookings").Preload("Answers").First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, guest)
}

// CreateGuest creates a guest, validating flags against the allow-list
func (gc *GuestController) CreateGuest(c *gin.Context) {
	var req dto.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid guest payload")
		return
	}

	guest := models.Guest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		DateOfBirth: req.DateOfBirth,
		Flags:       req.Flags,
		Active:      true,
	}

	if err := validator.ValidateGuest(&guest, gc.settings.GuestFlags()); err != nil {
		respondError(c, err)
		return
	}

	if err := gc.db.Create(&guest).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, convertToGuestResponse(&guest))
}

// UpdateGuest updates a guest record
func (gc *GuestController) UpdateGuest(c *gin.Context) {
	var req dto.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid guest payload")
		return
	}

	var guest models.Guest
	if err := gc.db.First(&guest, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if req.FirstName != "" {
		guest.FirstName = req.FirstName
	}
	if req.LastName != "" {
		guest.LastName = req.LastName
	}
	if req.Email != "" {
		guest.Email = req.Email
	}
	if req.PhoneNumber != "" {
		guest.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		guest.Address = req.Address
	}
	if req.DateOfBirth != "" {
		guest.DateOfBirth = req.DateOfBirth
	}
	if req.Flags != nil {
		guest.Flags = req.Flags
	}
	if req.Active != nil {
		guest.Active = *req.Active
	}

	if err := validator.ValidateGuest(&guest, gc.settings.GuestFlags()); err != nil {
		respondError(c, err)
		return
	}

	if err := gc.db.Save(&guest).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, convertToGuestResponse(&guest))
}

// DeleteGuest removes a guest. Guests are hard-deleted; their bookings
// keep their audit trail through the booking tombstones.
func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid guest id")
		return
	}

	var bookingCount int64
	if err := gc.db.Model(&models.Booking{}).Where("guest_id = ?", id).Count(&bookingCount).Error; err != nil {
		response.ServerError(c)
		return
	}
	if bookingCount > 0 {
		respondError(c, apperrors.NewAppError(apperrors.ErrCodeReferentialIntegrity,
			"Guest still has active bookings", nil))
		return
	}

	result := gc.db.Delete(&models.Guest{}, id)
	if result.Error != nil {
		response.ServerError(c)
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(c)
		return
	}
	response.Success(c, nil)
}

// RecordAnswers stores a guest's submitted Q&A set and dispatches any
// email triggers that now fire
func (gc *GuestController) RecordAnswers(c *gin.Context) {
	var req dto.RecordAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid answers payload")
		return
	}

	var guest models.Guest
	if err := gc.db.First(&guest, req.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	answers := make([]models.GuestAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, models.GuestAnswer{
			GuestID:   req.GuestID,
			BookingID: req.BookingID,
			Question:  a.Question,
			Answer:    a.Answer,
		})
	}
	if len(answers) > 0 {
		if err := gc.db.Create(&answers).Error; err != nil {
			response.ServerError(c)
			return
		}
	}

	fired, err := gc.triggers.DispatchForGuest(c.Request.Context(), req.GuestID)
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
	response.Success(c, gin.H{"recorded": len(answers), "fired": firedResponses})
}
