package service_test

import (
	"context"
	"sync"
	"testing"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"
	"perfume-boutique-ws/internal/repository/memory"
	"perfume-boutique-ws/internal/seed"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	laVieEstBelle = seed.ID("prod1")
	sauvage       = seed.ID("prod2")
	tunisCentre   = seed.ID("boutique1")
	sousse        = seed.ID("boutique2")
	sfax          = seed.ID("boutique3")
	fatima        = seed.ID("vendor1")
	karim         = seed.ID("vendor2")
	amina         = seed.ID("client1")
	sarah         = seed.ID("client2")
	manager       = seed.ID("manager1")
)

type event struct {
	Type    string
	Payload map[string]interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event
}

func (p *recordingPublisher) Publish(eventType string, payload map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func newSeededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	seeded, err := seed.Run(context.Background(), store, zap.NewNop())
	require.NoError(t, err)
	require.True(t, seeded)
	return store
}

func stockOf(t *testing.T, store repository.Store, productID uuid.UUID, size string) int {
	t.Helper()
	products, err := store.Repos().Products.FindAll(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	for _, p := range products {
		if p.ID == productID {
			v := p.Size(size)
			require.NotNil(t, v, "size %s", size)
			return v.Stock
		}
	}
	t.Fatalf("product %s not found", productID)
	return 0
}

func userOf(t *testing.T, store repository.Store, id uuid.UUID) *model.User {
	t.Helper()
	users, err := store.Repos().Users.FindAll(context.Background(), repository.UserFilter{})
	require.NoError(t, err)
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	t.Fatalf("user %s not found", id)
	return nil
}
