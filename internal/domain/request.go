package domain

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// ConnectionRequest is a directional request from sender to receiver.
type ConnectionRequest struct {
	ID         int           `json:"id" db:"id"`
	SenderID   int           `json:"sender_id" db:"sender_id"`
	ReceiverID int           `json:"receiver_id" db:"receiver_id"`
	Status     RequestStatus `json:"status" db:"status"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

func (r *ConnectionRequest) HasUser(userID int) bool {
	return r.SenderID == userID || r.ReceiverID == userID
}

func (r *ConnectionRequest) GetOtherUserID(userID int) (int, bool) {
	if r.SenderID == userID {
		return r.ReceiverID, true
	}
	if r.ReceiverID == userID {
		return r.SenderID, true
	}
	return 0, false
}
