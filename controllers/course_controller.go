package controllers

import (
	"errors"
	"net/url"
	"time"

	"github.com/evalle012006/sg-sub011/config"
	"github.com/evalle012006/sg-sub011/dto"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCourses lists courses with title filtering
func GetCourses(c *gin.Context) {
	page, limit := parsePagination(c)

	tx := config.DB.Model(&models.Course{})
	if titleFilter := c.Query("title"); titleFilter != "" {
		decoded, err := url.QueryUnescape(titleFilter)
		if err != nil {
			response.ServerError(c)
			return
		}
		tx = tx.Where("title ILIKE ?", "%"+decoded+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var courses []models.Course
	if err := tx.Order("start_date asc").Offset(page * limit).Limit(limit).Find(&courses).Error; err != nil {
		response.ServerError(c)
		return
	}

	courseResponses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		courseResponses = append(courseResponses, dto.CourseResponse{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			StartDate:   course.StartDate,
			EndDate:     course.EndDate,
			Capacity:    course.Capacity,
			CreatedAt:   course.CreatedAt,
			UpdatedAt:   course.UpdatedAt,
		})
	}
	response.SuccessWithPagination(c, courseResponses, page, limit, int(total))
}

// CreateCourse publishes a new course
func CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid course payload")
		return
	}

	if req.StartDate != "" && req.EndDate != "" {
		startDate, err := time.Parse("02/01/2006", req.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid start date")
			return
		}
		endDate, err := time.Parse("02/01/2006", req.EndDate)
		if err != nil {
			response.BadRequest(c, "Invalid end date")
			return
		}
		if endDate.Before(startDate) {
			response.BadRequest(c, "End date must be after start date")
			return
		}
	}

	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Capacity:    req.Capacity,
	}
	if err := config.DB.Create(&course).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, course)
}

// UpdateCourse updates a course
func UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid course payload")
		return
	}

	var course models.Course
	if err := config.DB.First(&course, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if req.Title != "" {
		course.Title = req.Title
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.StartDate != "" {
		course.StartDate = req.StartDate
	}
	if req.EndDate != "" {
		course.EndDate = req.EndDate
	}
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	}

	if err := config.DB.Save(&course).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, course)
}

// DeleteCourses removes courses by id
func DeleteCourses(c *gin.Context) {
	var req dto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid delete payload")
		return
	}

	if err := config.DB.Delete(&models.Course{}, req.IDs).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, nil)
}
