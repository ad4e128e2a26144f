package goAccounts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type mockAccountStore struct {
	mu     sync.Mutex
	byID   map[string]AccountRecord
	nextID int

	createErr error
	updateErr error
	getErr    error
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{byID: map[string]AccountRecord{}}
}

func (m *mockAccountStore) GetByID(_ context.Context, id string) (AccountRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return AccountRecord{}, m.getErr
	}
	rec, ok := m.byID[id]
	if !ok {
		return AccountRecord{}, ErrAccountNotFound
	}
	return rec, nil
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (AccountRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return AccountRecord{}, m.getErr
	}
	for _, rec := range m.byID {
		if rec.Email == email {
			return rec, nil
		}
	}
	return AccountRecord{}, ErrAccountNotFound
}

func (m *mockAccountStore) Create(_ context.Context, in CreateAccountInput) (AccountRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return AccountRecord{}, m.createErr
	}
	for _, rec := range m.byID {
		if rec.Email == in.Email {
			return AccountRecord{}, ErrStoreDuplicateEmail
		}
	}
	m.nextID++
	rec := AccountRecord{
		ID:           fmt.Sprintf("acc-%d", m.nextID),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
	}
	m.byID[rec.ID] = rec
	return rec, nil
}

func (m *mockAccountStore) Update(_ context.Context, rec AccountRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.byID[rec.ID]; !ok {
		return ErrAccountNotFound
	}
	m.byID[rec.ID] = rec
	return nil
}

func (m *mockAccountStore) record(t *testing.T, id string) AccountRecord {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byID[id]
	if !ok {
		t.Fatalf("no record with id %q", id)
	}
	return rec
}

type mockNotifier struct {
	mu    sync.Mutex
	sent  []sentMail
	fail  bool
	errTo string
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (n *mockNotifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail || (n.errTo != "" && n.errTo == to) {
		return errors.New("smtp unreachable")
	}
	n.sent = append(n.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (n *mockNotifier) last(t *testing.T) sentMail {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		t.Fatalf("no mail sent")
	}
	return n.sent[len(n.sent)-1]
}

func (n *mockNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Token.PrivateKey = []byte("service-test-secret-0123456789ab")
	cfg.Mail.Sender = "noreply@example.com"
	// Light parameters so the suite stays fast.
	cfg.Password.Memory = 8 * 1024
	cfg.Password.Time = 1
	return cfg
}

func newTestService(t *testing.T, store *mockAccountStore, notifier *mockNotifier) *Service {
	t.Helper()

	svc, err := New().
		WithConfig(testConfig()).
		WithStore(store).
		WithNotifier(notifier).
		Build()
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	svc := newTestService(t, newMockAccountStore(), &mockNotifier{})

	for i := 0; i < 3; i++ {
		if err := svc.Logout(context.Background()); err != nil {
			t.Fatalf("logout #%d: %v", i+1, err)
		}
	}
	if got := svc.metrics.Value(MetricLogout); got != 3 {
		t.Fatalf("logout counter = %d, want 3", got)
	}
}

func TestValidateSessionRoundTrip(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})

	token, err := svc.Register(context.Background(), "Ann", "ann@example.com", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	accountID, err := svc.ValidateSession(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if accountID == "" {
		t.Fatalf("expected non-empty account id")
	}
	if _, err := store.GetByID(context.Background(), accountID); err != nil {
		t.Fatalf("validated id does not resolve to a record: %v", err)
	}
}

func TestValidateSessionRejectsGarbage(t *testing.T) {
	svc := newTestService(t, newMockAccountStore(), &mockNotifier{})

	for _, tok := range []string{"", "x", "a.b.c", "ey.ey.ey"} {
		if _, err := svc.ValidateSession(tok); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("token %q: err = %v, want ErrUnauthorized", tok, err)
		}
	}
	if got := svc.metrics.Value(MetricTokenRejected); got != 4 {
		t.Fatalf("rejected counter = %d, want 4", got)
	}
}

func TestValidateSessionIsPure(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})

	token, err := svc.Register(context.Background(), "Ann", "ann@example.com", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Break the store after issuing; validation must not notice.
	store.getErr = ErrStoreUnavailable
	if _, err := svc.ValidateSession(token); err != nil {
		t.Fatalf("validate with broken store: %v", err)
	}
}

func TestBuilderValidatesDependencies(t *testing.T) {
	if _, err := New().WithConfig(testConfig()).WithNotifier(&mockNotifier{}).Build(); err == nil {
		t.Fatalf("expected error without store")
	}
	if _, err := New().WithConfig(testConfig()).WithStore(newMockAccountStore()).Build(); err == nil {
		t.Fatalf("expected error without notifier")
	}

	cfg := testConfig()
	cfg.Token.PrivateKey = nil
	if _, err := New().WithConfig(cfg).WithStore(newMockAccountStore()).WithNotifier(&mockNotifier{}).Build(); err == nil {
		t.Fatalf("expected error without signing key")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithConfig(testConfig()).WithStore(newMockAccountStore()).WithNotifier(&mockNotifier{})
	if _, err := b.Build(); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatalf("expected error on second build")
	}
}

func TestValidateSessionRecordsLatencySamples(t *testing.T) {
	svc := newTestService(t, newMockAccountStore(), &mockNotifier{})

	token, err := svc.Register(context.Background(), "Ann", "ann@example.com", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.ValidateSession(token); err != nil {
		t.Fatalf("validate: %v", err)
	}
	_, _ = svc.ValidateSession("garbage")

	buckets := svc.MetricsSnapshot().Histograms[MetricValidateLatency]
	var total uint64
	for _, b := range buckets {
		total += b
	}
	// Both the accepted and the rejected call record one elapsed-time sample.
	if total != 2 {
		t.Fatalf("latency samples = %d, want 2", total)
	}
}

func withFrozenClock(svc *Service, at time.Time) *time.Time {
	now := at
	svc.now = func() time.Time { return now }
	return &now
}
