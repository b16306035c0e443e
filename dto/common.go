package dto

// ListQuery carries the common listing parameters
type ListQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// DeleteRequest identifies records to delete
type DeleteRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}
