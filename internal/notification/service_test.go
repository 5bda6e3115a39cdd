package notification

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	notifications []*Notification
	dismissals    []*Dismissal
	insertErr     error
	listErr       error
}

func (f *fakeStore) InsertNotification(_ context.Context, n *Notification) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	copied := *n
	f.notifications = append(f.notifications, &copied)
	return nil
}

func (f *fakeStore) NotificationExists(_ context.Context, id string) (bool, error) {
	for _, n := range f.notifications {
		if n.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) InsertDismissal(_ context.Context, d *Dismissal) error {
	for _, existing := range f.dismissals {
		if existing.NotificationID == d.NotificationID && existing.UserID == d.UserID {
			return nil
		}
	}
	copied := *d
	f.dismissals = append(f.dismissals, &copied)
	return nil
}

func (f *fakeStore) HasDismissal(_ context.Context, notificationID, userID string) (bool, error) {
	for _, d := range f.dismissals {
		if d.NotificationID == notificationID && d.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListVisible(_ context.Context, userID string, limit int) ([]*Notification, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	dismissed := make(map[string]bool)
	for _, d := range f.dismissals {
		if d.UserID == userID {
			dismissed[d.NotificationID] = true
		}
	}
	var visible []*Notification
	for _, n := range f.notifications {
		if !dismissed[n.ID] {
			visible = append(visible, n)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Created.After(visible[j].Created)
	})
	if len(visible) > limit {
		visible = visible[:limit]
	}
	return visible, nil
}

type publishCall struct {
	userID  string // empty for broadcasts
	event   string
	payload interface{}
}

type fakeBroadcaster struct {
	calls []publishCall
}

func (f *fakeBroadcaster) PublishToAll(event string, payload interface{}) {
	f.calls = append(f.calls, publishCall{event: event, payload: payload})
}

func (f *fakeBroadcaster) PublishToUser(userID, event string, payload interface{}) {
	f.calls = append(f.calls, publishCall{userID: userID, event: event, payload: payload})
}

func newTestService() (*Service, *fakeStore, *fakeBroadcaster) {
	store := &fakeStore{}
	broadcaster := &fakeBroadcaster{}
	return NewService(store, broadcaster, zap.NewNop()), store, broadcaster
}

func TestCreateFillsDefaultImageFromType(t *testing.T) {
	tests := []struct {
		name      string
		typeID    int
		image     string
		wantImage string
	}{
		{name: "user type", typeID: TypeUser, wantImage: "/Images/templates/user-template.svg"},
		{name: "project type", typeID: TypeProject, wantImage: "/Images/templates/project-template.svg"},
		{name: "unknown type stays empty", typeID: 99, wantImage: ""},
		{name: "explicit image wins", typeID: TypeUser, image: "/uploads/avatar.png", wantImage: "/uploads/avatar.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestService()

			_, err := svc.Create(context.Background(), CreateInput{TypeID: tt.typeID, Image: tt.image, Message: "hello"}, "u1")
			require.NoError(t, err)

			require.Len(t, store.notifications, 1)
			assert.Equal(t, tt.wantImage, store.notifications[0].Image)
		})
	}
}

func TestCreateAssignsIdentityAndDefaults(t *testing.T) {
	svc, store, _ := newTestService()

	n, err := svc.Create(context.Background(), CreateInput{TypeID: TypeUser, Message: "hello"}, "u1")
	require.NoError(t, err)

	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Created.IsZero())
	assert.Equal(t, DefaultTargetGroupID, n.TargetGroupID)
	require.Len(t, store.notifications, 1)
	assert.Equal(t, n.ID, store.notifications[0].ID)
}

func TestCreateRejectsEmptyMessage(t *testing.T) {
	svc, store, broadcaster := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{TypeID: TypeUser, Message: "   "}, "u1")

	require.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, store.notifications, "nothing may be persisted on validation failure")
	assert.Empty(t, broadcaster.calls, "nothing may be broadcast on validation failure")
}

func TestCreateDoesNotPublishWhenPersistenceFails(t *testing.T) {
	svc, store, broadcaster := newTestService()
	store.insertErr = errors.New("store unavailable")

	_, err := svc.Create(context.Background(), CreateInput{TypeID: TypeUser, Message: "hello"}, "u1")

	require.Error(t, err)
	assert.Empty(t, broadcaster.calls, "publish must not run when the insert fails")
}

func TestCreateBroadcastsNewestVisibleToAll(t *testing.T) {
	svc, _, broadcaster := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{TypeID: TypeUser, Message: "first"}, "u1")
	require.NoError(t, err)

	require.Len(t, broadcaster.calls, 1)
	call := broadcaster.calls[0]
	assert.Empty(t, call.userID, "creation is a global broadcast")
	assert.Equal(t, EventNewNotification, call.event)

	pushed, ok := call.payload.(*Notification)
	require.True(t, ok)
	assert.Equal(t, "first", pushed.Message)
}

func TestCreateDefaultsToAnonymousActor(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{TypeID: TypeProject, Message: "system event"}, "")
	require.NoError(t, err)

	visible, err := svc.ListVisible(context.Background(), AnonymousUserID, 0)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "system event", visible[0].Message)
}

func TestCreateSurvivesVisibleListReloadFailure(t *testing.T) {
	svc, store, broadcaster := newTestService()
	store.listErr = errors.New("query failed")

	n, err := svc.Create(context.Background(), CreateInput{TypeID: TypeUser, Message: "hello"}, "u1")

	require.NoError(t, err, "the notification is persisted; only the push is skipped")
	assert.NotNil(t, n)
	assert.Empty(t, broadcaster.calls)
}

func TestListVisibleExcludesDismissed(t *testing.T) {
	svc, _, _ := newTestService()

	n1, err := svc.Create(context.Background(), CreateInput{TypeID: TypeUser, Message: "one"}, "u1")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInput{TypeID: TypeUser, Message: "two"}, "u1")
	require.NoError(t, err)

	require.NoError(t, svc.Dismiss(context.Background(), n1.ID, "u1"))

	visible, err := svc.ListVisible(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "two", visible[0].Message)

	// Dismissal is per user: u2 still sees both.
	visible, err = svc.ListVisible(context.Background(), "u2", 0)
	require.NoError(t, err)
	assert.Len(t, visible, 2)
}

func TestListVisibleOrdersNewestFirst(t *testing.T) {
	svc, store, _ := newTestService()

	base := time.Now()
	store.notifications = []*Notification{
		{ID: "n1", Message: "oldest", Created: base.Add(-2 * time.Hour)},
		{ID: "n2", Message: "newest", Created: base},
		{ID: "n3", Message: "middle", Created: base.Add(-1 * time.Hour)},
	}

	visible, err := svc.ListVisible(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, visible, 3)
	assert.Equal(t, "newest", visible[0].Message)
	assert.Equal(t, "middle", visible[1].Message)
	assert.Equal(t, "oldest", visible[2].Message)
}

func TestListVisibleHonorsLimit(t *testing.T) {
	svc, store, _ := newTestService()

	base := time.Now()
	for i := 0; i < 15; i++ {
		store.notifications = append(store.notifications, &Notification{
			ID:      string(rune('a' + i)),
			Message: "m",
			Created: base.Add(time.Duration(i) * time.Minute),
		})
	}

	visible, err := svc.ListVisible(context.Background(), "u1", 3)
	require.NoError(t, err)
	assert.Len(t, visible, 3)

	// Zero limit falls back to the default.
	visible, err = svc.ListVisible(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Len(t, visible, DefaultListLimit)
}

func TestDismissIsIdempotent(t *testing.T) {
	svc, store, broadcaster := newTestService()

	n, err := svc.Create(context.Background(), CreateInput{TypeID: TypeUser, Message: "hello"}, "u1")
	require.NoError(t, err)
	broadcaster.calls = nil

	require.NoError(t, svc.Dismiss(context.Background(), n.ID, "u1"))
	require.NoError(t, svc.Dismiss(context.Background(), n.ID, "u1"))

	assert.Len(t, store.dismissals, 1, "exactly one marker per (notification, user) pair")
	assert.Len(t, broadcaster.calls, 1, "the repeat dismiss publishes nothing")
}

func TestDismissUnknownNotificationIsNoOp(t *testing.T) {
	svc, store, broadcaster := newTestService()

	require.NoError(t, svc.Dismiss(context.Background(), "no-such-id", "u1"))

	assert.Empty(t, store.dismissals)
	assert.Empty(t, broadcaster.calls)
}

func TestDismissPublishesOnlyToDismissingUser(t *testing.T) {
	svc, _, broadcaster := newTestService()

	n, err := svc.Create(context.Background(), CreateInput{TypeID: TypeUser, Message: "hello"}, "u1")
	require.NoError(t, err)
	broadcaster.calls = nil

	require.NoError(t, svc.Dismiss(context.Background(), n.ID, "u1"))

	require.Len(t, broadcaster.calls, 1)
	call := broadcaster.calls[0]
	assert.Equal(t, "u1", call.userID, "dismissal is a targeted push, not a broadcast")
	assert.Equal(t, EventDismissed, call.event)
	assert.Equal(t, n.ID, call.payload)
}
