package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"dingdong-api/core/errors"
	"dingdong-api/core/logger"
	"dingdong-api/modules/chat/dto"
)

const clientBufferSize = 16

// Broker fans messages out across instances. Every room maps to one channel,
// so a message published on any instance reaches the room members of all of
// them. Channel namespacing is the broker's concern.
type Broker interface {
	Publish(ctx context.Context, room string, payload []byte) error
	Subscribe(ctx context.Context, room string) Subscription
}

// Subscription is a live feed of one channel's messages.
type Subscription interface {
	Messages() <-chan []byte
	Close() error
}

// Client is one websocket connection's membership in a room. Messages for the
// connection arrive on Send; slow consumers get dropped messages rather than
// blocking the room.
type Client struct {
	ID   string
	Send chan []byte
}

type room struct {
	clients map[string]*Client
	sub     Subscription
}

// ChatService relays room messages between local connections and the broker.
type ChatService struct {
	broker Broker

	mu    sync.Mutex
	rooms map[string]*room
}

type ChatServiceInterface interface {
	JoinRoom(ctx context.Context, roomID string) (*Client, *errors.AppError)
	LeaveRoom(roomID string, client *Client)
	Broadcast(ctx context.Context, message *dto.ChatMessage) *errors.AppError
}

// NewChatService creates a new chat service
func NewChatService(broker Broker) ChatServiceInterface {
	return &ChatService{
		broker: broker,
		rooms:  make(map[string]*room),
	}
}

// JoinRoom registers a new client in the room. The first client of a room
// opens the broker subscription and starts the fan-out loop; later clients
// share it.
func (s *ChatService) JoinRoom(ctx context.Context, roomID string) (*Client, *errors.AppError) {
	client := &Client{
		ID:   uuid.NewString(),
		Send: make(chan []byte, clientBufferSize),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		r = &room{
			clients: make(map[string]*Client),
			sub:     s.broker.Subscribe(ctx, roomID),
		}
		s.rooms[roomID] = r
		go s.fanOut(roomID, r.sub)
	}
	r.clients[client.ID] = client
	return client, nil
}

// LeaveRoom drops the client from the room. The last client to leave closes
// the broker subscription, which ends the fan-out loop.
func (s *ChatService) LeaveRoom(roomID string, client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return
	}
	delete(r.clients, client.ID)
	close(client.Send)

	if len(r.clients) == 0 {
		if err := r.sub.Close(); err != nil {
			logger.Error("ChatService:LeaveRoom", err)
		}
		delete(s.rooms, roomID)
	}
}

// Broadcast publishes the message on the room's channel. Delivery to local
// clients happens through the fan-out loop like any other instance's messages.
func (s *ChatService) Broadcast(ctx context.Context, message *dto.ChatMessage) *errors.AppError {
	payload, err := json.Marshal(message)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to encode chat message", err)
	}
	if err := s.broker.Publish(ctx, message.RoomID, payload); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to publish chat message", err)
	}
	return nil
}

func (s *ChatService) fanOut(roomID string, sub Subscription) {
	for payload := range sub.Messages() {
		s.mu.Lock()
		r, ok := s.rooms[roomID]
		if !ok {
			s.mu.Unlock()
			return
		}
		for _, client := range r.clients {
			select {
			case client.Send <- payload:
			default:
			}
		}
		s.mu.Unlock()
	}
}
