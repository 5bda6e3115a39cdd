package notification

import "time"

// Notification type ids. The type drives the default icon when the caller
// supplies none.
const (
	TypeUser    = 1
	TypeProject = 2
)

// Event names published on the realtime feed.
const (
	EventNewNotification = "new-notification"
	EventDismissed       = "dismissed"
)

// AnonymousUserID is the sentinel actor for system-initiated operations with
// no authenticated session.
const AnonymousUserID = "anonymous"

// DefaultTargetGroupID is the "all users" audience. Target groups are not
// used for filtering yet; the column is reserved.
const DefaultTargetGroupID = 1

// DefaultListLimit caps a visible-list query when the caller gives no limit.
const DefaultListLimit = 10

// Notification is a shared broadcast entity: one row is shown to every user
// until that user dismisses it. It is never mutated after creation.
type Notification struct {
	ID            string    `bson:"_id" json:"id"`
	TargetGroupID int       `bson:"target_group_id" json:"target_group_id"`
	TypeID        int       `bson:"type_id" json:"type_id"`
	Image         string    `bson:"image,omitempty" json:"image,omitempty"`
	Message       string    `bson:"message" json:"message"`
	Created       time.Time `bson:"created" json:"created"`
}

// Dismissal marks that one user no longer wants to see one notification.
// Created at most once per pair; never mutated or deleted.
type Dismissal struct {
	NotificationID string `bson:"notification_id" json:"notification_id"`
	UserID         string `bson:"user_id" json:"user_id"`
}

// typeImages is the fixed type -> default icon table. Types beyond the known
// set leave the image empty, which is not an error.
var typeImages = map[int]string{
	TypeUser:    "/Images/templates/user-template.svg",
	TypeProject: "/Images/templates/project-template.svg",
}

// DefaultImageForType returns the default icon for a notification type, or
// an empty string for unknown types.
func DefaultImageForType(typeID int) string {
	return typeImages[typeID]
}
