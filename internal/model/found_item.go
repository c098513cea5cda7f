package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FoundItem is an item recovered on campus and logged by an admin. Every
// found item has a photo; ImageURL is required at creation time.
type FoundItem struct {
	ID            bson.ObjectID `bson:"_id,omitempty"   json:"id"`
	ItemType      string        `bson:"item_type"       json:"itemType"`
	ImageURL      string        `bson:"image_url"       json:"imageUrl"`
	Description   string        `bson:"description"     json:"description"`
	DateFound     time.Time     `bson:"date_found"      json:"dateFound"`
	LocationFound string        `bson:"location_found"  json:"locationFound"`
	Admin         bson.ObjectID `bson:"admin"           json:"admin"`
	IsReturned    bool          `bson:"is_returned"     json:"isReturned"`
	CreatedAt     time.Time     `bson:"created_at"      json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updated_at"      json:"updatedAt"`
}
