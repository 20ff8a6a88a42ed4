package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prostock/internal/domain/models"
	"prostock/internal/service/cache"
	"prostock/pkg/clients/anthropic"
)

type fakeAI struct {
	lastContext string
	lastHistory []anthropic.Message
	reply       string
	err         error
}

func (f *fakeAI) Advise(ctx context.Context, inventoryContext string, history []anthropic.Message, input string) (string, error) {
	f.lastContext = inventoryContext
	f.lastHistory = append([]anthropic.Message(nil), history...)
	return f.reply, f.err
}

type fakeFetcher struct{}

func (fakeFetcher) GetInventory(ctx context.Context) ([]models.InventoryItem, error) {
	return []models.InventoryItem{{ID: "ITM-001", Name: "Kabel NYM", Stock: 42}}, nil
}

func (fakeFetcher) GetSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return nil, nil
}

func (fakeFetcher) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	return &models.DashboardStats{}, nil
}

func seededCache(t *testing.T) *cache.Cache {
	t.Helper()
	c := cache.New(fakeFetcher{}, nil, nil)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	return c
}

func TestChatGroundsInInventory(t *testing.T) {
	ai := &fakeAI{reply: "Restock Kabel NYM."}
	svc := NewService(ai, seededCache(t), nil)

	reply, err := svc.Chat(context.Background(), "andi", "what should I restock?")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "Restock Kabel NYM." {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(ai.lastContext, "Kabel NYM") {
		t.Error("inventory snapshot must be embedded in the prompt context")
	}
}

func TestChatKeepsPerUserHistory(t *testing.T) {
	ai := &fakeAI{reply: "ok"}
	svc := NewService(ai, seededCache(t), nil)

	if _, err := svc.Chat(context.Background(), "andi", "first"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if _, err := svc.Chat(context.Background(), "andi", "second"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(ai.lastHistory) != 2 {
		t.Errorf("history = %d turns, want the first exchange carried over", len(ai.lastHistory))
	}

	if _, err := svc.Chat(context.Background(), "budi", "hello"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(ai.lastHistory) != 0 {
		t.Error("operators must not share conversation history")
	}
}

func TestChatFailureLeavesHistoryUntouched(t *testing.T) {
	ai := &fakeAI{err: errors.New("rate limited")}
	svc := NewService(ai, seededCache(t), nil)

	if _, err := svc.Chat(context.Background(), "andi", "hi"); err == nil {
		t.Fatal("expected chat error")
	}

	ai.err = nil
	ai.reply = "ok"
	if _, err := svc.Chat(context.Background(), "andi", "retry"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(ai.lastHistory) != 0 {
		t.Error("failed exchanges must not enter the history")
	}
}

func TestChatUnavailableWithoutProvider(t *testing.T) {
	svc := NewService(nil, seededCache(t), nil)

	if _, err := svc.Chat(context.Background(), "andi", "hi"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Chat without provider = %v, want ErrUnavailable", err)
	}
}

func TestResetClearsHistory(t *testing.T) {
	ai := &fakeAI{reply: "ok"}
	svc := NewService(ai, seededCache(t), nil)

	if _, err := svc.Chat(context.Background(), "andi", "first"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	svc.Reset("andi")

	if _, err := svc.Chat(context.Background(), "andi", "fresh"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(ai.lastHistory) != 0 {
		t.Error("Reset must discard the conversation")
	}
}
