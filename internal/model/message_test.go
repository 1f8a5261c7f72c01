package model_test

import (
	"testing"
	"time"

	"phone-book/internal/model"
	"phone-book/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newHooks(t *testing.T) (model.Hooks, *mocks.MockNotifier, *observer.ObservedLogs) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	core, logs := observer.New(zapcore.InfoLevel)
	return model.Hooks{
		Notifier: notifier,
		Logger:   zap.New(core),
		Now:      func() time.Time { return fixedNow },
	}, notifier, logs
}

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }

func TestMessage_SetType(t *testing.T) {
	cases := map[string]string{
		"email": model.TypeEmail,
		"EMAIL": model.TypeEmail,
		"eMaIl": model.TypeEmail,
		"text":  model.TypeText,
		"Text":  model.TypeText,
		"bogus": model.TypeText,
		"sms":   model.TypeText,
		"":      model.TypeText,
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			m := &model.Message{}
			m.SetType(input)
			require.Equal(t, want, m.Type)
		})
	}
}

func TestMessage_SetUserID(t *testing.T) {
	req := require.New(t)

	m := &model.Message{}
	m.SetUserID(uintPtr(3), uintPtr(9))
	req.Equal(uint(3), *m.UserID, "authenticated actor wins over supplied value")

	m.SetUserID(uintPtr(3), nil)
	req.Equal(uint(3), *m.UserID)

	m.SetUserID(nil, uintPtr(9))
	req.Equal(uint(9), *m.UserID, "supplied value is the fallback")

	m.SetUserID(nil, nil)
	req.Nil(m.UserID)
}

func TestMessage_SetUserID_CopiesValue(t *testing.T) {
	actor := uint(4)
	m := &model.Message{}
	m.SetUserID(&actor, nil)
	actor = 5
	require.Equal(t, uint(4), *m.UserID)
}

func TestMessage_SetStatus_Sent(t *testing.T) {
	req := require.New(t)
	hooks, notifier, logs := newHooks(t)
	m := &model.Message{ID: 42, Status: model.StatusQueued}

	notifier.EXPECT().MessageSent(m).Times(1)

	m.SetStatus("sent", hooks)

	req.Equal(model.StatusSent, m.Status)
	req.NotNil(m.SentAt)
	req.Equal(fixedNow, *m.SentAt)
	req.Nil(m.DeliveredAt)
	req.Nil(m.ReadAt)
	req.Equal(1, logs.Len())
}

func TestMessage_SetStatus_SentTwiceNotifiesTwice(t *testing.T) {
	req := require.New(t)
	hooks, notifier, logs := newHooks(t)
	m := &model.Message{ID: 1}

	notifier.EXPECT().MessageSent(m).Times(2)

	m.SetStatus("SENT", hooks)
	later := fixedNow.Add(time.Minute)
	hooks.Now = func() time.Time { return later }
	m.SetStatus("Sent", hooks)

	req.Equal(later, *m.SentAt)
	req.Equal(2, logs.Len())
}

func TestMessage_SetStatus_DeliveredAndRead(t *testing.T) {
	req := require.New(t)
	hooks, notifier, _ := newHooks(t)
	m := &model.Message{ID: 7}

	notifier.EXPECT().MessageSent(gomock.Any()).Times(0)

	m.SetStatus("delivered", hooks)
	req.Equal(model.StatusDelivered, m.Status)
	req.Equal(fixedNow, *m.DeliveredAt)
	req.Nil(m.ReadAt)
	req.Nil(m.SentAt)

	m.SetStatus("read", hooks)
	req.Equal(model.StatusRead, m.Status)
	req.Equal(fixedNow, *m.ReadAt)
	req.Nil(m.SentAt)
}

func TestMessage_SetStatus_InertValues(t *testing.T) {
	for _, status := range []string{"queued", "FAILED", "bogus", "in flight"} {
		t.Run(status, func(t *testing.T) {
			req := require.New(t)
			hooks, notifier, logs := newHooks(t)
			m := &model.Message{ID: 11}

			notifier.EXPECT().MessageSent(gomock.Any()).Times(0)

			m.SetStatus(status, hooks)

			req.Nil(m.SentAt)
			req.Nil(m.DeliveredAt)
			req.Nil(m.ReadAt)
			req.Equal(1, logs.Len())
		})
	}
}

func TestMessage_SetStatus_StoresUnknownUppercased(t *testing.T) {
	hooks, _, _ := newHooks(t)
	m := &model.Message{}
	m.SetStatus("bounced", hooks)
	require.Equal(t, "BOUNCED", m.Status)
}

func TestMessage_SetStatus_LogEntry(t *testing.T) {
	req := require.New(t)
	hooks, _, logs := newHooks(t)
	m := &model.Message{ID: 99}

	m.SetStatus("failed", hooks)

	entries := logs.All()
	req.Len(entries, 1)
	req.Equal(zapcore.InfoLevel, entries[0].Level)
	req.Equal("Message status updated to: FAILED", entries[0].Message)
	req.Equal(uint64(99), entries[0].ContextMap()["message_id"])
}

func TestMessage_SetStatus_WithoutCollaborators(t *testing.T) {
	m := &model.Message{}
	require.NotPanics(t, func() { m.SetStatus("sent", model.Hooks{}) })
	require.NotNil(t, m.SentAt)
}

func TestMessage_Fill_NewRecordWithoutActor(t *testing.T) {
	req := require.New(t)
	hooks, notifier, _ := newHooks(t)
	notifier.EXPECT().MessageSent(gomock.Any()).Times(0)

	m := &model.Message{}
	m.Fill(model.Attributes{
		Type:   strPtr("email"),
		Status: strPtr("queued"),
		UserID: uintPtr(7),
	}, nil, hooks)

	req.Equal(model.TypeEmail, m.Type)
	req.Equal(model.StatusQueued, m.Status)
	req.Equal(uint(7), *m.UserID)
	req.Nil(m.SentAt)
}

func TestMessage_Fill_BogusTypeAndMissingType(t *testing.T) {
	req := require.New(t)
	hooks, _, _ := newHooks(t)

	m := &model.Message{}
	m.Fill(model.Attributes{Type: strPtr("bogus")}, nil, hooks)
	req.Equal(model.TypeText, m.Type)

	m = &model.Message{}
	m.Fill(model.Attributes{Body: strPtr("hi")}, nil, hooks)
	req.Equal(model.TypeText, m.Type)
	req.Equal("hi", m.Body)
}

func TestMessage_Fill_ActorOverridesSuppliedUser(t *testing.T) {
	hooks, _, _ := newHooks(t)
	m := &model.Message{}
	m.Fill(model.Attributes{UserID: uintPtr(7)}, uintPtr(2), hooks)
	require.Equal(t, uint(2), *m.UserID)
}

func TestMessage_Fill_NewRecordDefaultsUserFromActor(t *testing.T) {
	hooks, _, _ := newHooks(t)
	m := &model.Message{}
	m.Fill(model.Attributes{ContactID: uintPtr(3)}, uintPtr(2), hooks)
	require.Equal(t, uint(2), *m.UserID)
	require.Equal(t, uint(3), m.ContactID)
}

func TestMessage_Fill_UpdateStatusOnExisting(t *testing.T) {
	req := require.New(t)
	hooks, notifier, logs := newHooks(t)
	m := &model.Message{ID: 5, Type: model.TypeEmail, Status: model.StatusQueued, UserID: uintPtr(7)}

	notifier.EXPECT().MessageSent(m).Times(1)

	m.Fill(model.Attributes{Status: strPtr("sent")}, uintPtr(8), hooks)

	req.Equal(model.StatusSent, m.Status)
	req.Equal(fixedNow, *m.SentAt)
	req.Equal(model.TypeEmail, m.Type, "type untouched on update")
	req.Equal(uint(7), *m.UserID, "user untouched when not assigned")
	req.Equal(1, logs.Len())
}

func TestMessage_Fill_StatusStampWinsOverExplicitTimestamp(t *testing.T) {
	hooks, notifier, _ := newHooks(t)
	notifier.EXPECT().MessageSent(gomock.Any()).Times(1)

	explicit := fixedNow.Add(-time.Hour)
	m := &model.Message{}
	m.Fill(model.Attributes{SentAt: &explicit, Status: strPtr("sent")}, nil, hooks)

	require.Equal(t, fixedNow, *m.SentAt)
}

func TestMessage_Fill_KeepsExplicitTimestamps(t *testing.T) {
	req := require.New(t)
	hooks, _, _ := newHooks(t)
	delivered := fixedNow.Add(-2 * time.Hour)
	read := fixedNow.Add(-time.Hour)

	m := &model.Message{}
	m.Fill(model.Attributes{DeliveredAt: &delivered, ReadAt: &read}, nil, hooks)

	req.Equal(delivered, *m.DeliveredAt)
	req.Equal(read, *m.ReadAt)
	req.Empty(m.Status)
}
