package dto

import "time"

// CreateFundingApprovalRequest records a new funding approval
type CreateFundingApprovalRequest struct {
	GuestID                      uint   `json:"guestId" binding:"required"`
	FundingSource                string `json:"fundingSource"`
	ApprovalFrom                 string `json:"approvalFrom"`
	ApprovalTo                   string `json:"approvalTo"`
	NightsApproved               int    `json:"nightsApproved"`
	AdditionalRoomNightsApproved int    `json:"additionalRoomNightsApproved"`
}

// AllocateRequest reserves nights from an approval
type AllocateRequest struct {
	FundingApprovalID    uint `json:"fundingApprovalId" binding:"required"`
	GuestApprovalID      uint `json:"guestApprovalId" binding:"required"`
	Nights               int  `json:"nights"`
	AdditionalRoomNights int  `json:"additionalRoomNights"`
}

// ConsumeRequest records nights used against an allocation
type ConsumeRequest struct {
	AllocationID         uint `json:"allocationId" binding:"required"`
	Nights               int  `json:"nights"`
	AdditionalRoomNights int  `json:"additionalRoomNights"`
}

// ReleaseRequest returns consumed nights to an allocation
type ReleaseRequest struct {
	AllocationID         uint `json:"allocationId" binding:"required"`
	Nights               int  `json:"nights"`
	AdditionalRoomNights int  `json:"additionalRoomNights"`
}

// FundingApprovalResponse is the approval payload with its ledger totals
type FundingApprovalResponse struct {
	ID                           uint                 `json:"id"`
	GuestID                      uint                 `json:"guestId"`
	FundingSource                string               `json:"fundingSource"`
	ApprovalFrom                 string               `json:"approvalFrom"`
	ApprovalTo                   string               `json:"approvalTo"`
	NightsApproved               int                  `json:"nightsApproved"`
	NightsUsed                   int                  `json:"nightsUsed"`
	AdditionalRoomNightsApproved int                  `json:"additionalRoomNightsApproved"`
	AdditionalRoomNightsUsed     int                  `json:"additionalRoomNightsUsed"`
	Allocations                  []AllocationResponse `json:"allocations,omitempty"`
	CreatedAt                    time.Time            `json:"createdAt"`
	UpdatedAt                    time.Time            `json:"updatedAt"`
}

// AllocationResponse is one allocation row
type AllocationResponse struct {
	ID                            uint `json:"id"`
	FundingApprovalID             uint `json:"fundingApprovalId"`
	GuestApprovalID               uint `json:"guestApprovalId"`
	NightsAllocated               int  `json:"nightsAllocated"`
	NightsUsed                    int  `json:"nightsUsed"`
	AdditionalRoomNightsAllocated int  `json:"additionalRoomNightsAllocated"`
	AdditionalRoomNightsUsed      int  `json:"additionalRoomNightsUsed"`
}
