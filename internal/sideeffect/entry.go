package sideeffect

import (
	"tailorshop/internal/domain"

	"gorm.io/datatypes"
)

// AuditOf builds an audit row for actor acting on one resource row.
func AuditOf(actorID int64, action, resource string, resourceID int64, details map[string]any) domain.AuditLog {
	entry := domain.AuditLog{
		Action:       action,
		ResourceType: resource,
	}
	if actorID != 0 {
		entry.UserID = &actorID
	}
	if resourceID != 0 {
		entry.ResourceID = &resourceID
	}
	if len(details) > 0 {
		entry.Details = datatypes.JSONMap(details)
	}
	return entry
}

// NotificationFor builds an in-app notification about one resource row.
func NotificationFor(userID int64, kind, title, body, resource string, resourceID int64) domain.Notification {
	n := domain.Notification{
		UserID:       userID,
		Type:         kind,
		Title:        title,
		Body:         body,
		ResourceType: resource,
	}
	if resourceID != 0 {
		n.ResourceID = &resourceID
	}
	return n
}
