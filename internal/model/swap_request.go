package model

import "time"

type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapRejected  SwapStatus = "rejected"
	SwapCompleted SwapStatus = "completed"
	SwapCancelled SwapStatus = "cancelled"
)

func (s SwapStatus) IsValid() bool {
	switch s {
	case SwapPending, SwapAccepted, SwapRejected, SwapCompleted, SwapCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s SwapStatus) IsTerminal() bool {
	return s == SwapCompleted || s == SwapRejected || s == SwapCancelled
}

// IsOpen reports whether a request in s still blocks a duplicate request
// between the same directed pair.
func (s SwapStatus) IsOpen() bool {
	return s == SwapPending || s == SwapAccepted
}

// SwapParty identifies which side of a swap an actor is on.
type SwapParty string

const (
	PartyNone      SwapParty = ""
	PartyRequester SwapParty = "requester"
	PartyResponder SwapParty = "responder"
)

// swagger:model SwapRequest
type SwapRequest struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	RequesterID        uint       `gorm:"index:idx_swap_pair;not null" json:"requesterId"`
	Requester          User       `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"requester"`
	ResponderID        uint       `gorm:"index:idx_swap_pair;index;not null" json:"responderId"`
	Responder          User       `gorm:"foreignKey:ResponderID;constraint:OnDelete:CASCADE" json:"responder"`
	Status             SwapStatus `gorm:"type:varchar(20);index;not null" json:"status"`
	RequesterReviewed  bool       `gorm:"not null" json:"requesterReviewed"`
	ResponderReviewed  bool       `gorm:"not null" json:"responderReviewed"`
	RequesterConfirmed bool       `gorm:"not null" json:"requesterConfirmed"`
	ResponderConfirmed bool       `gorm:"not null" json:"responderConfirmed"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (SwapRequest) TableName() string {
	return "swap_requests"
}

// PartyOf returns the side userID is on, or PartyNone for outsiders.
func (r *SwapRequest) PartyOf(userID uint) SwapParty {
	switch userID {
	case r.RequesterID:
		return PartyRequester
	case r.ResponderID:
		return PartyResponder
	}
	return PartyNone
}

func (r *SwapRequest) IsParticipant(userID uint) bool {
	return r.PartyOf(userID) != PartyNone
}

// Counterpart returns the other participant's id.
func (r *SwapRequest) Counterpart(userID uint) uint {
	if userID == r.RequesterID {
		return r.ResponderID
	}
	return r.RequesterID
}

// HasReviewed reports whether party already left its review.
func (r *SwapRequest) HasReviewed(party SwapParty) bool {
	switch party {
	case PartyRequester:
		return r.RequesterReviewed
	case PartyResponder:
		return r.ResponderReviewed
	}
	return false
}

type swapTransition struct {
	From SwapStatus
	To   SwapStatus
	By   SwapParty
}

// swapTransitions lists every move a participant may trigger. Completion
// (accepted to completed) is governed by the configured completion mode.
var swapTransitions = []swapTransition{
	{From: SwapPending, To: SwapAccepted, By: PartyResponder},
	{From: SwapPending, To: SwapRejected, By: PartyResponder},
	{From: SwapPending, To: SwapCancelled, By: PartyRequester},
}

// CanTransition reports whether party may move a request from one status to another.
func CanTransition(party SwapParty, from, to SwapStatus) bool {
	if party == PartyNone {
		return false
	}
	for _, t := range swapTransitions {
		if t.From == from && t.To == to && t.By == party {
			return true
		}
	}
	return false
}
