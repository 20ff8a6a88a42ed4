package auth

import (
	"context"
	"errors"
	"testing"

	"prostock/internal/domain/models"
	"prostock/internal/repository/mongodb"
	"prostock/internal/service/cache"
	"prostock/internal/service/cart"
)

type fakeBackend struct {
	user *models.User
	err  error
}

func (f *fakeBackend) Login(ctx context.Context, username, password string) (*models.User, error) {
	return f.user, f.err
}

type fakeSessions struct {
	saved   map[string]models.Session
	saveErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{saved: make(map[string]models.Session)}
}

func (f *fakeSessions) SaveSession(ctx context.Context, session models.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[session.Username] = session
	return nil
}

func (f *fakeSessions) FindSession(ctx context.Context, username string) (*models.Session, error) {
	session, ok := f.saved[username]
	if !ok {
		return nil, mongodb.ErrSessionNotFound
	}
	return &session, nil
}

func (f *fakeSessions) DeleteSession(ctx context.Context, username string) error {
	delete(f.saved, username)
	return nil
}

type fakeFetcher struct {
	refreshes int
}

func (f *fakeFetcher) GetInventory(ctx context.Context) ([]models.InventoryItem, error) {
	f.refreshes++
	return nil, nil
}

func (f *fakeFetcher) GetSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return nil, nil
}

func (f *fakeFetcher) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	return &models.DashboardStats{}, nil
}

func newService(backend *fakeBackend) (*Service, *fakeSessions, *fakeFetcher, *cart.Manager) {
	fetcher := &fakeFetcher{}
	sessions := newFakeSessions()
	carts := cart.NewManager(nil)
	svc := NewService(backend, sessions, cache.New(fetcher, nil, nil), carts, nil, nil)
	return svc, sessions, fetcher, carts
}

func TestLoginPersistsSessionAndRefreshes(t *testing.T) {
	backend := &fakeBackend{user: &models.User{
		ID: "USR-1", Username: "andi", Name: "Andi", Password: "should-be-dropped",
	}}
	svc, sessions, fetcher, _ := newService(backend)

	user, err := svc.Login(context.Background(), "andi", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Password != "" {
		t.Error("password must never leave the auth service")
	}
	if _, ok := sessions.saved["andi"]; !ok {
		t.Error("session must be persisted for resume")
	}
	if fetcher.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", fetcher.refreshes)
	}
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	svc, sessions, _, _ := newService(&fakeBackend{user: &models.User{}})

	_, err := svc.Login(context.Background(), "ghost", "nope")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login(unknown) = %v, want ErrInvalidCredentials", err)
	}
	if len(sessions.saved) != 0 {
		t.Error("no session may be persisted for a failed login")
	}
}

func TestLoginSurvivesSessionStoreFailure(t *testing.T) {
	backend := &fakeBackend{user: &models.User{ID: "USR-1", Username: "andi", Name: "Andi"}}
	svc, sessions, _, _ := newService(backend)
	sessions.saveErr = errors.New("mongo down")

	if _, err := svc.Login(context.Background(), "andi", "secret"); err != nil {
		t.Errorf("Login must succeed when only the session store fails, got %v", err)
	}
}

func TestResume(t *testing.T) {
	backend := &fakeBackend{user: &models.User{ID: "USR-1", Username: "andi", Name: "Andi"}}
	svc, _, fetcher, _ := newService(backend)

	if _, err := svc.Login(context.Background(), "andi", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	user, err := svc.Resume(context.Background(), "andi")
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if user.Username != "andi" {
		t.Errorf("resumed user = %+v", user)
	}
	if fetcher.refreshes != 2 {
		t.Errorf("refreshes = %d, want one per login and resume", fetcher.refreshes)
	}

	if _, err := svc.Resume(context.Background(), "ghost"); !errors.Is(err, mongodb.ErrSessionNotFound) {
		t.Errorf("Resume(ghost) = %v, want ErrSessionNotFound", err)
	}
}

func TestLogoutDropsSessionAndCarts(t *testing.T) {
	backend := &fakeBackend{user: &models.User{ID: "USR-1", Username: "andi", Name: "Andi"}}
	svc, sessions, _, carts := newService(backend)

	if _, err := svc.Login(context.Background(), "andi", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	builder := carts.Builder("andi", cart.FlowOutbound)

	if err := svc.Logout(context.Background(), "andi"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.saved) != 0 {
		t.Error("logout must drop the persisted session")
	}
	if carts.Builder("andi", cart.FlowOutbound) == builder {
		t.Error("logout must discard in-progress carts")
	}
}
