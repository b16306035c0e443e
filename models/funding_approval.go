package models

import "time"

type FundingApproval struct {
	ID                            uint                           `gorm:"primaryKey" json:"id"`
	GuestID                       uint                           `gorm:"index;not null" json:"guestId"`
	Guest                         *Guest                         `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	FundingSource                 string                         `json:"fundingSource"`
	ApprovalFrom                  string                         `json:"approvalFrom"`
	ApprovalTo                    string                         `json:"approvalTo"`
	NightsApproved                int                            `gorm:"default:0" json:"nightsApproved"`
	NightsUsed                    int                            `gorm:"default:0" json:"nightsUsed"`
	AdditionalRoomNightsApproved  int                            `gorm:"default:0" json:"additionalRoomNightsApproved"`
	AdditionalRoomNightsUsed      int                            `gorm:"default:0" json:"additionalRoomNightsUsed"`
	Allocations                   []GuestApprovalFundingApproval `json:"allocations,omitempty" gorm:"foreignKey:FundingApprovalID"`
	CreatedAt                     time.Time                      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt                     time.Time                      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// GuestApprovalFundingApproval allocates a slice of a funding approval's
// night budget to one guest-approval context. The sum of allocations for an
// approval must never exceed its approved totals; the schema does not
// enforce this, FundingService does.
type GuestApprovalFundingApproval struct {
	ID                            uint      `gorm:"primaryKey" json:"id"`
	FundingApprovalID             uint      `gorm:"index;not null" json:"fundingApprovalId"`
	GuestApprovalID               uint      `gorm:"index;not null" json:"guestApprovalId"`
	NightsAllocated               int       `gorm:"default:0" json:"nightsAllocated"`
	NightsUsed                    int       `gorm:"default:0" json:"nightsUsed"`
	AdditionalRoomNightsAllocated int       `gorm:"default:0" json:"additionalRoomNightsAllocated"`
	AdditionalRoomNightsUsed      int       `gorm:"default:0" json:"additionalRoomNightsUsed"`
	CreatedAt                     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt                     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (GuestApprovalFundingApproval) TableName() string {
	return "guest_approval_funding_approvals"
}

// GuestApproval is the guest-side approval context an allocation is scoped
// to (one guest can hold approvals across funding bodies).
type GuestApproval struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"index;not null" json:"guestId"`
	Guest     *Guest    `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
