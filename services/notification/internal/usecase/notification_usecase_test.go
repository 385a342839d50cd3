package usecase

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"learnhub/pkg/logger"
	"learnhub/services/notification/internal/entity"
	"learnhub/services/notification/internal/rules"
	"learnhub/services/notification/internal/store"

	"github.com/stretchr/testify/assert"
)

// fakeNotificationStore is an in-memory store.NotificationStore used to
// exercise the use cases without MongoDB.
type fakeNotificationStore struct {
	seq   int
	items map[string]entity.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{items: make(map[string]entity.Notification)}
}

func matches(n entity.Notification, filter store.Filter) bool {
	for _, cond := range filter {
		switch cond.Field {
		case store.FieldRecipient:
			if n.Recipient != cond.Value.(string) {
				return false
			}
		case store.FieldSender:
			if n.Sender != cond.Value.(string) {
				return false
			}
		case store.FieldIsRead:
			if n.IsRead != cond.Value.(bool) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func applyPatch(n *entity.Notification, patch store.Patch) {
	for _, change := range patch {
		switch change.Field {
		case store.FieldTitle:
			n.Title = change.Value.(string)
		case store.FieldMessage:
			n.Message = change.Value.(string)
		case store.FieldType:
			n.Type = entity.NotificationType(change.Value.(string))
		case store.FieldRelatedEntity:
			n.RelatedEntity = change.Value.(string)
		case store.FieldRelatedEntityType:
			n.RelatedEntityType = change.Value.(string)
		case store.FieldIsRead:
			n.IsRead = change.Value.(bool)
		case store.FieldReadAt:
			readAt := change.Value.(time.Time)
			n.ReadAt = &readAt
		}
	}
}

func (s *fakeNotificationStore) Find(_ context.Context, filter store.Filter, srt store.Sort) ([]entity.Notification, error) {
	var result []entity.Notification
	for _, n := range s.items {
		if matches(n, filter) {
			result = append(result, n)
		}
	}
	if srt.Field == store.FieldCreatedAt {
		sort.Slice(result, func(i, j int) bool {
			if srt.Descending {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			}
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	}
	return result, nil
}

func (s *fakeNotificationStore) FindByID(_ context.Context, id string) (*entity.Notification, error) {
	n, ok := s.items[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &n, nil
}

func (s *fakeNotificationStore) Insert(_ context.Context, n entity.Notification) (entity.Notification, error) {
	s.seq++
	n.ID = fmt.Sprintf("n-%d", s.seq)
	s.items[n.ID] = n
	return n, nil
}

func (s *fakeNotificationStore) UpdateByID(_ context.Context, id string, patch store.Patch) (*entity.Notification, error) {
	n, ok := s.items[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	applyPatch(&n, patch)
	s.items[id] = n
	return &n, nil
}

func (s *fakeNotificationStore) UpdateMany(_ context.Context, filter store.Filter, patch store.Patch) (int64, error) {
	var count int64
	for id, n := range s.items {
		if matches(n, filter) {
			applyPatch(&n, patch)
			s.items[id] = n
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) DeleteByID(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *fakeNotificationStore) DeleteMany(_ context.Context, filter store.Filter) (int64, error) {
	var count int64
	for id, n := range s.items {
		if matches(n, filter) {
			delete(s.items, id)
			count++
		}
	}
	return count, nil
}

type fakeUserStore struct {
	users map[string]entity.UserSummary
}

func (s *fakeUserStore) FindSummary(_ context.Context, id string) (*entity.UserSummary, error) {
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

type fixture struct {
	uc    *notificationUseCase
	store *fakeNotificationStore
	users *fakeUserStore
	clock time.Time
}

func newFixture() *fixture {
	f := &fixture{
		store: newFakeNotificationStore(),
		users: &fakeUserStore{users: make(map[string]entity.UserSummary)},
		clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.uc = &notificationUseCase{
		notifications: f.store,
		users:         f.users,
		logger:        logger.New(),
		now:           func() time.Time { return f.clock },
	}
	return f
}

func (f *fixture) tick() {
	f.clock = f.clock.Add(time.Minute)
}

var (
	student1 = entity.Actor{ID: "user-1", Role: entity.RoleStudent}
	student2 = entity.Actor{ID: "user-2", Role: entity.RoleStudent}
	teacher  = entity.Actor{ID: "teacher-1", Role: entity.RoleTeacher}
)

func TestCreate_SelfNotify(t *testing.T) {
	f := newFixture()

	created, err := f.uc.Create(context.Background(), student1, rules.CreateInput{
		Title:   "Reminder",
		Message: "Finish the quiz",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, student1.ID, created.Recipient)
	assert.Equal(t, student1.ID, created.Sender)
	assert.False(t, created.IsRead)
	assert.Nil(t, created.ReadAt)

	stored, err := f.store.FindByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created, *stored)
}

func TestCreate_CrossUserForbiddenNothingStored(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), student1, rules.CreateInput{
		Recipient: student2.ID,
		Title:     "Hi",
		Message:   "there",
	})

	assert.True(t, entity.IsForbidden(err))
	assert.Empty(t, f.store.items)
}

func TestList_ReverseChronological(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := f.uc.Create(ctx, student1, rules.CreateInput{
			Title:   fmt.Sprintf("note %d", i),
			Message: "body",
		})
		assert.NoError(t, err)
		f.tick()
	}
	// Someone else's notification must not show up
	_, err := f.uc.Create(ctx, student2, rules.CreateInput{Title: "other", Message: "body"})
	assert.NoError(t, err)

	views, err := f.uc.List(ctx, student1)
	assert.NoError(t, err)
	assert.Len(t, views, 3)
	assert.Equal(t, "note 3", views[0].Notification.Title)
	assert.Equal(t, "note 2", views[1].Notification.Title)
	assert.Equal(t, "note 1", views[2].Notification.Title)
}

func TestList_PopulatesSenderSummary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.users[teacher.ID] = entity.UserSummary{ID: teacher.ID, Name: "Ms. Harris", Role: entity.RoleTeacher}

	_, err := f.uc.Create(ctx, teacher, rules.CreateInput{
		Recipient: student1.ID,
		Title:     "Grade posted",
		Message:   "Check your assignment",
	})
	assert.NoError(t, err)

	views, err := f.uc.List(ctx, student1)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.NotNil(t, views[0].Sender)
	assert.Equal(t, "Ms. Harris", views[0].Sender.Name)
}

func TestList_UnknownSenderLeftNil(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, teacher, rules.CreateInput{
		Recipient: student1.ID,
		Title:     "t",
		Message:   "m",
	})
	assert.NoError(t, err)

	views, err := f.uc.List(ctx, student1)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Nil(t, views[0].Sender)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture()

	title := "new"
	_, err := f.uc.Update(context.Background(), teacher, "missing", rules.UpdateInput{Title: &title})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUpdate_PersistsContentFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.uc.Create(ctx, teacher, rules.CreateInput{
		Recipient: student1.ID,
		Title:     "Grade posted",
		Message:   "old body",
	})
	assert.NoError(t, err)

	title := "Grade corrected"
	updated, err := f.uc.Update(ctx, teacher, created.ID, rules.UpdateInput{Title: &title})
	assert.NoError(t, err)
	assert.Equal(t, "Grade corrected", updated.Title)
	assert.Equal(t, "old body", updated.Message)
	assert.Equal(t, student1.ID, updated.Recipient)
	assert.Equal(t, teacher.ID, updated.Sender)
}

func TestMarkAsRead_Persisted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.uc.Create(ctx, teacher, rules.CreateInput{
		Recipient: student1.ID,
		Title:     "t",
		Message:   "m",
	})
	assert.NoError(t, err)
	f.tick()

	read, err := f.uc.MarkAsRead(ctx, student1, created.ID)
	assert.NoError(t, err)
	assert.True(t, read.IsRead)
	assert.NotNil(t, read.ReadAt)
	assert.True(t, !read.ReadAt.Before(read.CreatedAt))

	stored, _ := f.store.FindByID(ctx, created.ID)
	assert.True(t, stored.IsRead)
}

func TestMarkAsRead_NotRecipient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.uc.Create(ctx, teacher, rules.CreateInput{
		Recipient: student1.ID,
		Title:     "t",
		Message:   "m",
	})
	assert.NoError(t, err)

	_, err = f.uc.MarkAsRead(ctx, teacher, created.ID)
	assert.True(t, entity.IsForbidden(err))

	stored, _ := f.store.FindByID(ctx, created.ID)
	assert.False(t, stored.IsRead)
}

func TestMarkAllAsRead_ScopedToRecipientUnread(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Two unread for student1, one already read, one where student1 is
	// merely the sender.
	a, _ := f.uc.Create(ctx, student1, rules.CreateInput{Title: "a", Message: "m"})
	f.tick()
	f.uc.Create(ctx, student1, rules.CreateInput{Title: "b", Message: "m"})
	f.tick()
	f.uc.MarkAsRead(ctx, student1, a.ID)
	f.tick()
	sent, _ := f.uc.Create(ctx, teacher, rules.CreateInput{
		Recipient: student2.ID,
		Sender:    student1.ID,
		Title:     "c",
		Message:   "m",
	})

	count, err := f.uc.MarkAllAsRead(ctx, student1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The notification student1 only sent stays unread
	stored, _ := f.store.FindByID(ctx, sent.ID)
	assert.False(t, stored.IsRead)
	assert.Nil(t, stored.ReadAt)
}

func TestDelete_Forbidden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, _ := f.uc.Create(ctx, teacher, rules.CreateInput{
		Recipient: student1.ID,
		Title:     "t",
		Message:   "m",
	})

	err := f.uc.Delete(ctx, student2, created.ID)
	assert.True(t, entity.IsForbidden(err))
	assert.Len(t, f.store.items, 1)
}

func TestDelete_ByRecipient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, _ := f.uc.Create(ctx, teacher, rules.CreateInput{
		Recipient: student1.ID,
		Title:     "t",
		Message:   "m",
	})

	assert.NoError(t, f.uc.Delete(ctx, student1, created.ID))
	assert.Empty(t, f.store.items)
}

func TestClearAll_OnlyOwnNotifications(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.uc.Create(ctx, student1, rules.CreateInput{Title: "a", Message: "m"})
	f.uc.Create(ctx, student1, rules.CreateInput{Title: "b", Message: "m"})
	f.uc.Create(ctx, student2, rules.CreateInput{Title: "c", Message: "m"})

	count, err := f.uc.ClearAll(ctx, student1)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	views, err := f.uc.List(ctx, student2)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
}
