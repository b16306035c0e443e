package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/evalle012006/sg-sub011/config"
	"github.com/evalle012006/sg-sub011/dto"
	"github.com/evalle012006/sg-sub011/middleware"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/response"
	"github.com/evalle012006/sg-sub011/services"
	"github.com/evalle012006/sg-sub011/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	gojson "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type BookingController struct {
	db       *gorm.DB
	rdb      *redis.Client
	bookings *services.BookingService
}

func NewBookingController(db *gorm.DB, rdb *redis.Client, bookings *services.BookingService) *BookingController {
	return &BookingController{
		db:       db,
		rdb:      rdb,
		bookings: bookings,
	}
}

func convertToBookingResponse(booking *models.Booking) dto.BookingResponse {
	resp := dto.BookingResponse{
		ID:               booking.ID,
		Reference:        booking.Reference,
		GuestID:          booking.GuestID,
		ArrivalDate:      booking.ArrivalDate,
		DepartureDate:    booking.DepartureDate,
		Status:           booking.Status,
		Eligibility:      booking.Eligibility,
		CancellationType: booking.CancellationType,
		NightsConsumed:   booking.NightsConsumed,
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
		Deleted:          booking.DeletedAt.Valid,
	}
	if booking.Guest != nil {
		resp.GuestName = booking.Guest.FirstName + " " + booking.Guest.LastName
	}
	return resp
}

// GetBookings lists active bookings with filters. The unfiltered list is
// served from redis for ten minutes; every transition invalidates it.
func (bc *BookingController) GetBookings(c *gin.Context) {
	page, limit := parsePagination(c)
	statusFilter := c.Query("status")
	guestIDStr := c.Query("guestId")

	var allBookings []models.Booking
	cacheable := statusFilter == "" && guestIDStr == ""

	if cacheable && bc.rdb != nil {
		if err := services.GetFromRedis(config.Ctx, bc.rdb, "bookings:all", &allBookings); err != nil {
			log.Printf("Failed to read booking cache: %v", err)
		}
	}

	if len(allBookings) == 0 {
		tx := bc.db.Model(&models.Booking{}).Preload("Guest")
		if statusFilter != "" {
			tx = tx.Where("status ->> 'name' = ?", statusFilter)
		}
		if guestIDStr != "" {
			tx = tx.Where("guest_id = ?", guestIDStr)
		}
		if err := tx.Order("updated_at desc").Find(&allBookings).Error; err != nil {
			response.ServerError(c)
			return
		}

		if cacheable && bc.rdb != nil {
			if err := services.SetToRedis(config.Ctx, bc.rdb, "bookings:all", allBookings, 10*time.Minute); err != nil {
				log.Printf("Failed to cache bookings: %v", err)
			}
		}
	}

	total := len(allBookings)
	start := page * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	bookingResponses := make([]dto.BookingResponse, 0, end-start)
	for i := start; i < end; i++ {
		bookingResponses = append(bookingResponses, convertToBookingResponse(&allBookings[i]))
	}
	response.SuccessWithPagination(c, bookingResponses, page, limit, total)
}

// GetBookingDetail returns one active booking
func (bc *BookingController) GetBookingDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	var booking models.Booking
	if err := bc.db.Preload("Guest").Preload("Equipment").Preload("Courses").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, booking)
}

// CreateBooking opens a new enquiry
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid booking payload")
		return
	}

	booking, err := bc.bookings.Create(c.Request.Context(), &models.BookingRequest{
		GuestID:       req.GuestID,
		ArrivalDate:   req.ArrivalDate,
		DepartureDate: req.DepartureDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, convertToBookingResponse(booking))
}

// TransitionBooking applies a status/eligibility change
func (bc *BookingController) TransitionBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	var req dto.TransitionBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid transition payload")
		return
	}

	actorID, actorRole := middleware.ActorFromContext(c)
	var actor *uint
	if actorID != 0 {
		actor = &actorID
	}

	booking, err := bc.bookings.Transition(c.Request.Context(), id, models.TransitionRequest{
		Status:           req.Status,
		Eligibility:      req.Eligibility,
		CancellationType: req.CancellationType,
		ActorRole:        actorRole,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.LogInfo("Booking %d moved to %s by user %d", booking.ID, booking.Status.Name, actorID)
	response.Success(c, convertToBookingResponse(booking))
}

// AttachAllocation links a booking to a funding allocation
func (bc *BookingController) AttachAllocation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	var req dto.AttachAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid allocation payload")
		return
	}

	booking, err := bc.bookings.AttachAllocation(c.Request.Context(), id, req.AllocationID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, convertToBookingResponse(booking))
}

// RecordConsent stores signature or verbal consent evidence
func (bc *BookingController) RecordConsent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	var req dto.ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid consent payload")
		return
	}
	if len(req.Signature) == 0 && len(req.VerbalConsent) == 0 {
		response.BadRequest(c, "Consent evidence is required")
		return
	}

	var booking models.Booking
	if err := bc.db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	updates := map[string]interface{}{}
	if len(req.Signature) > 0 {
		updates["signature"] = req.Signature
	}
	if len(req.VerbalConsent) > 0 {
		updates["verbal_consent"] = req.VerbalConsent
	}
	if err := bc.db.Model(&booking).Updates(updates).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, nil)
}

// UploadSignature uploads a signature image and stores the evidence
// reference on the booking
func (bc *BookingController) UploadSignature(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	var booking models.Booking
	if err := bc.db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	file, err := c.FormFile("signature")
	if err != nil {
		response.BadRequest(c, "Signature file is required")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.ServerError(c)
		return
	}
	defer src.Close()

	uploadResult, err := config.Cloudinary.Upload.Upload(c.Request.Context(), src, uploader.UploadParams{
		Folder: "signatures",
	})
	if err != nil {
		log.Printf("Failed to upload signature for booking %d: %v", id, err)
		response.ServerError(c)
		return
	}

	actorID, _ := middleware.ActorFromContext(c)
	evidence, err := gojson.Marshal(gin.H{
		"url":        uploadResult.SecureURL,
		"capturedAt": time.Now().Format(time.RFC3339),
		"capturedBy": actorID,
	})
	if err != nil {
		response.ServerError(c)
		return
	}

	if err := bc.db.Model(&booking).Update("signature", evidence).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, gin.H{"url": uploadResult.SecureURL})
}

// AssignEquipment attaches equipment to a booking, optionally for a
// sub-window of the stay
func (bc *BookingController) AssignEquipment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	var req dto.AssignEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid equipment payload")
		return
	}

	var booking models.Booking
	if err := bc.db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var equipment models.Equipment
	if err := bc.db.First(&equipment, req.EquipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.BadRequest(c, "Equipment not found")
			return
		}
		response.ServerError(c)
		return
	}

	link := models.BookingEquipment{
		BookingID:   booking.ID,
		EquipmentID: equipment.ID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		MetaData:    req.MetaData,
	}
	if err := bc.db.Create(&link).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, link)
}

// DeleteBooking soft-deletes a booking
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	if err := bc.bookings.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// RestoreBooking clears a booking's tombstone
func (bc *BookingController) RestoreBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	if err := bc.bookings.Restore(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetBookingHistory returns a booking with its audit trail, including
// soft-deleted bookings
func (bc *BookingController) GetBookingHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	booking, logs, err := bc.bookings.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	logResponses := make([]dto.AuditLogResponse, 0, len(logs))
	for _, entry := range logs {
		logResponses = append(logResponses, dto.AuditLogResponse{
			ID:             entry.ID,
			BookingID:      entry.BookingID,
			GuestID:        entry.GuestID,
			UserID:         entry.UserID,
			Action:         entry.Action,
			OldStatus:      entry.OldStatus,
			NewStatus:      entry.NewStatus,
			OldEligibility: entry.OldEligibility,
			NewEligibility: entry.NewEligibility,
			CreatedAt:      entry.CreatedAt,
		})
	}

	response.Success(c, gin.H{
		"booking": convertToBookingResponse(booking),
		"audit":   logResponses,
	})
}
