package persistent

import (
	"go.mongodb.org/mongo-driver/bson"

	"learnhub/services/notification/internal/entity"
	"learnhub/services/notification/internal/model"
	"learnhub/services/notification/internal/store"
)

// fieldKeys translates the typed store fields into document keys. The store
// vocabulary stays free of bson specifics; this is the only place the two
// meet.
var fieldKeys = map[store.Field]string{
	store.FieldRecipient:         "recipient",
	store.FieldSender:            "sender",
	store.FieldTitle:             "title",
	store.FieldMessage:           "message",
	store.FieldType:              "type",
	store.FieldRelatedEntity:     "related_entity",
	store.FieldRelatedEntityType: "related_entity_type",
	store.FieldIsRead:            "is_read",
	store.FieldReadAt:            "read_at",
	store.FieldCreatedAt:         "created_at",
}

func filterToBSON(filter store.Filter) bson.M {
	query := bson.M{}
	for _, cond := range filter {
		// Equality is the only operator the contract defines.
		query[fieldKeys[cond.Field]] = cond.Value
	}
	return query
}

func patchToBSON(patch store.Patch) bson.M {
	set := bson.M{}
	for _, change := range patch {
		set[fieldKeys[change.Field]] = change.Value
	}
	return bson.M{"$set": set}
}

func sortToBSON(sort store.Sort) bson.D {
	order := 1
	if sort.Descending {
		order = -1
	}
	return bson.D{{Key: fieldKeys[sort.Field], Value: order}}
}

func toNotificationEntity(m *model.NotificationModel) entity.Notification {
	return entity.Notification{
		ID:                m.ID.Hex(),
		Sender:            m.Sender,
		Recipient:         m.Recipient,
		Title:             m.Title,
		Message:           m.Message,
		Type:              entity.NotificationType(m.Type),
		RelatedEntity:     m.RelatedEntity,
		RelatedEntityType: m.RelatedEntityType,
		IsRead:            m.IsRead,
		ReadAt:            m.ReadAt,
		CreatedAt:         m.CreatedAt,
	}
}

func toNotificationModel(n entity.Notification) model.NotificationModel {
	return model.NotificationModel{
		Sender:            n.Sender,
		Recipient:         n.Recipient,
		Title:             n.Title,
		Message:           n.Message,
		Type:              string(n.Type),
		RelatedEntity:     n.RelatedEntity,
		RelatedEntityType: n.RelatedEntityType,
		IsRead:            n.IsRead,
		ReadAt:            n.ReadAt,
		CreatedAt:         n.CreatedAt,
	}
}

func toUserSummary(m *model.UserModel) entity.UserSummary {
	return entity.UserSummary{
		ID:   m.ID.Hex(),
		Name: m.Name,
		Role: entity.Role(m.Role),
	}
}
