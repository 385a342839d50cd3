package usecase

import (
	"context"
	"time"

	"learnhub/pkg/logger"
	"learnhub/services/notification/internal/entity"
	"learnhub/services/notification/internal/rules"
	"learnhub/services/notification/internal/store"
)

// NotificationView is a notification enriched with its sender's summary for
// presentation. Sender is nil for system-generated entries and for senders
// that no longer resolve.
type NotificationView struct {
	Notification entity.Notification
	Sender       *entity.UserSummary
}

type NotificationUseCase interface {
	Create(ctx context.Context, actor entity.Actor, in rules.CreateInput) (entity.Notification, error)
	List(ctx context.Context, actor entity.Actor) ([]NotificationView, error)
	Update(ctx context.Context, actor entity.Actor, id string, in rules.UpdateInput) (entity.Notification, error)
	MarkAsRead(ctx context.Context, actor entity.Actor, id string) (entity.Notification, error)
	MarkAllAsRead(ctx context.Context, actor entity.Actor) (int64, error)
	Delete(ctx context.Context, actor entity.Actor, id string) error
	ClearAll(ctx context.Context, actor entity.Actor) (int64, error)
}

type notificationUseCase struct {
	notifications store.NotificationStore
	users         store.UserStore
	logger        *logger.Logger
	now           func() time.Time
}

func NewNotificationUseCase(notifications store.NotificationStore, users store.UserStore, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		notifications: notifications,
		users:         users,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (uc *notificationUseCase) Create(ctx context.Context, actor entity.Actor, in rules.CreateInput) (entity.Notification, error) {
	prepared, err := rules.PrepareCreate(actor, in, uc.now())
	if err != nil {
		return entity.Notification{}, err
	}

	created, err := uc.notifications.Insert(ctx, prepared)
	if err != nil {
		return entity.Notification{}, err
	}

	uc.logger.Info("Notification %s created for %s by %s", created.ID, created.Recipient, actor.ID)
	return created, nil
}

func (uc *notificationUseCase) List(ctx context.Context, actor entity.Actor) ([]NotificationView, error) {
	filter := store.Filter{store.Eq(store.FieldRecipient, actor.ID)}
	sort := store.Sort{Field: store.FieldCreatedAt, Descending: true}

	notifications, err := uc.notifications.Find(ctx, filter, sort)
	if err != nil {
		return nil, err
	}

	// Resolve each distinct sender once per listing.
	summaries := make(map[string]*entity.UserSummary)
	views := make([]NotificationView, len(notifications))
	for i, n := range notifications {
		views[i] = NotificationView{Notification: n, Sender: uc.senderSummary(ctx, n.Sender, summaries)}
	}
	return views, nil
}

func (uc *notificationUseCase) senderSummary(ctx context.Context, senderID string, cache map[string]*entity.UserSummary) *entity.UserSummary {
	if senderID == "" {
		return nil
	}
	if summary, ok := cache[senderID]; ok {
		return summary
	}

	summary, err := uc.users.FindSummary(ctx, senderID)
	if err != nil {
		uc.logger.Warn("Failed to resolve sender %s: %v", senderID, err)
		summary = nil
	}
	cache[senderID] = summary
	return summary
}

func (uc *notificationUseCase) Update(ctx context.Context, actor entity.Actor, id string, in rules.UpdateInput) (entity.Notification, error) {
	existing, err := uc.notifications.FindByID(ctx, id)
	if err != nil {
		return entity.Notification{}, err
	}

	updated, err := rules.ApplyUpdate(actor, *existing, in)
	if err != nil {
		return entity.Notification{}, err
	}

	patch := store.Patch{
		store.Set(store.FieldTitle, updated.Title),
		store.Set(store.FieldMessage, updated.Message),
		store.Set(store.FieldType, string(updated.Type)),
		store.Set(store.FieldRelatedEntity, updated.RelatedEntity),
		store.Set(store.FieldRelatedEntityType, updated.RelatedEntityType),
	}

	persisted, err := uc.notifications.UpdateByID(ctx, id, patch)
	if err != nil {
		return entity.Notification{}, err
	}

	uc.logger.Info("Notification %s updated by %s", id, actor.ID)
	return *persisted, nil
}

func (uc *notificationUseCase) MarkAsRead(ctx context.Context, actor entity.Actor, id string) (entity.Notification, error) {
	existing, err := uc.notifications.FindByID(ctx, id)
	if err != nil {
		return entity.Notification{}, err
	}

	read, err := rules.MarkRead(actor, *existing, uc.now())
	if err != nil {
		return entity.Notification{}, err
	}

	patch := store.Patch{
		store.Set(store.FieldIsRead, true),
		store.Set(store.FieldReadAt, *read.ReadAt),
	}

	persisted, err := uc.notifications.UpdateByID(ctx, id, patch)
	if err != nil {
		return entity.Notification{}, err
	}

	uc.logger.Info("Notification %s marked read by %s", id, actor.ID)
	return *persisted, nil
}

func (uc *notificationUseCase) MarkAllAsRead(ctx context.Context, actor entity.Actor) (int64, error) {
	filter := store.Filter{
		store.Eq(store.FieldRecipient, actor.ID),
		store.Eq(store.FieldIsRead, false),
	}
	patch := store.Patch{
		store.Set(store.FieldIsRead, true),
		store.Set(store.FieldReadAt, uc.now()),
	}

	count, err := uc.notifications.UpdateMany(ctx, filter, patch)
	if err != nil {
		return 0, err
	}

	uc.logger.Info("%d notifications marked read for %s", count, actor.ID)
	return count, nil
}

func (uc *notificationUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	existing, err := uc.notifications.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := rules.CanDelete(actor, *existing); err != nil {
		return err
	}

	if err := uc.notifications.DeleteByID(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Notification %s deleted by %s", id, actor.ID)
	return nil
}

func (uc *notificationUseCase) ClearAll(ctx context.Context, actor entity.Actor) (int64, error) {
	filter := store.Filter{store.Eq(store.FieldRecipient, actor.ID)}

	count, err := uc.notifications.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}

	uc.logger.Info("%d notifications cleared for %s", count, actor.ID)
	return count, nil
}
