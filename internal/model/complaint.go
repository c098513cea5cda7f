package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ComplaintStatus is the review state of a lost-item report. Transitions
// happen only through the explicit status-update operation.
type ComplaintStatus string

const (
	StatusPending  ComplaintStatus = "pending"
	StatusReviewed ComplaintStatus = "reviewed"
	StatusResolved ComplaintStatus = "resolved"
)

// IsValid reports whether s is one of the known statuses.
func (s ComplaintStatus) IsValid() bool {
	return s == StatusPending || s == StatusReviewed || s == StatusResolved
}

// Complaint is a student-submitted lost-item report. PhotoURL is set only
// when an attachment was uploaded, and once set it is never rewritten.
type Complaint struct {
	ID            bson.ObjectID   `bson:"_id,omitempty"      json:"id"`
	ProductType   string          `bson:"product_type"       json:"productType"`
	DateLost      time.Time       `bson:"date_lost"          json:"dateLost"`
	LastKnownSpot string          `bson:"last_known_spot"    json:"lastKnownSpot"`
	Description   string          `bson:"description"        json:"description"`
	PhotoURL      string          `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	Student       bson.ObjectID   `bson:"student"            json:"student"`
	Status        ComplaintStatus `bson:"status"             json:"status"`
	CreatedAt     time.Time       `bson:"created_at"         json:"createdAt"`
	UpdatedAt     time.Time       `bson:"updated_at"         json:"updatedAt"`
}
