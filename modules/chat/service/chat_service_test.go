package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dingdong-api/modules/chat/dto"
)

// fakeBroker delivers published payloads straight to the room's subscribers.
type fakeBroker struct {
	mu   sync.Mutex
	subs map[string][]*fakeSubscription
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{subs: make(map[string][]*fakeSubscription)}
}

type fakeSubscription struct {
	out    chan []byte
	once   sync.Once
	closed atomic.Bool
}

func (s *fakeSubscription) Messages() <-chan []byte { return s.out }

func (s *fakeSubscription) Close() error {
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.out)
	})
	return nil
}

func (b *fakeBroker) Publish(_ context.Context, room string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs[room] {
		if sub.closed.Load() {
			continue
		}
		sub.out <- payload
	}
	return nil
}

func (b *fakeBroker) Subscribe(_ context.Context, room string) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := &fakeSubscription{out: make(chan []byte, 16)}
	b.subs[room] = append(b.subs[room], sub)
	return sub
}

func receive(t *testing.T, client *Client) dto.ChatMessage {
	t.Helper()
	select {
	case payload := <-client.Send:
		var msg dto.ChatMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return dto.ChatMessage{}
	}
}

func TestBroadcastReachesAllRoomMembers(t *testing.T) {
	svc := NewChatService(newFakeBroker())
	ctx := context.Background()

	first, appErr := svc.JoinRoom(ctx, "42")
	require.Nil(t, appErr)
	second, appErr := svc.JoinRoom(ctx, "42")
	require.Nil(t, appErr)

	require.Nil(t, svc.Broadcast(ctx, &dto.ChatMessage{UserID: 7, RoomID: "42", Message: "hello"}))

	for _, client := range []*Client{first, second} {
		msg := receive(t, client)
		assert.Equal(t, int64(7), msg.UserID)
		assert.Equal(t, "42", msg.RoomID)
		assert.Equal(t, "hello", msg.Message)
	}
}

func TestRoomsAreIsolated(t *testing.T) {
	svc := NewChatService(newFakeBroker())
	ctx := context.Background()

	inRoom, appErr := svc.JoinRoom(ctx, "a")
	require.Nil(t, appErr)
	otherRoom, appErr := svc.JoinRoom(ctx, "b")
	require.Nil(t, appErr)

	require.Nil(t, svc.Broadcast(ctx, &dto.ChatMessage{UserID: 1, RoomID: "a", Message: "only a"}))

	msg := receive(t, inRoom)
	assert.Equal(t, "only a", msg.Message)

	select {
	case payload := <-otherRoom.Send:
		t.Fatalf("room b received %q", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLeaveRoomClosesClient(t *testing.T) {
	broker := newFakeBroker()
	svc := NewChatService(broker)
	ctx := context.Background()

	client, appErr := svc.JoinRoom(ctx, "42")
	require.Nil(t, appErr)

	svc.LeaveRoom("42", client)

	_, open := <-client.Send
	assert.False(t, open, "send channel must be closed after leaving")

	// the room is gone, so a new join opens a fresh subscription
	again, appErr := svc.JoinRoom(ctx, "42")
	require.Nil(t, appErr)
	require.Nil(t, svc.Broadcast(ctx, &dto.ChatMessage{UserID: 2, RoomID: "42", Message: "back"}))
	assert.Equal(t, "back", receive(t, again).Message)
}
