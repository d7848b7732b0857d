package tithe

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
	"github.com/spacecadet3008/Kristo-mfalme/internal/phone"
	"github.com/spacecadet3008/Kristo-mfalme/internal/sms"
	"github.com/spacecadet3008/Kristo-mfalme/internal/store"
)

// mockTitheStore implements store.TitheStore for testing
type mockTitheStore struct {
	payments map[string]*domain.TithePayment
	mu       sync.Mutex
}

func newMockTitheStore() *mockTitheStore {
	return &mockTitheStore{payments: make(map[string]*domain.TithePayment)}
}

func (s *mockTitheStore) CreatePayment(ctx context.Context, p *domain.TithePayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *p
	s.payments[p.ID] = &copied
	return nil
}

func (s *mockTitheStore) GetPayment(ctx context.Context, id string) (*domain.TithePayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *mockTitheStore) LastReceiptNumber(ctx context.Context, from, to time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var last string
	for _, p := range s.payments {
		if !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) && p.ReceiptNumber > last {
			last = p.ReceiptNumber
		}
	}
	return last, nil
}

func (s *mockTitheStore) SetSMSResult(ctx context.Context, id string, sent bool, messageID, smsError string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return store.ErrNotFound
	}
	p.SMSSent = sent
	p.SMSSentAt = &at
	p.SMSMessageID = messageID
	p.LastSMSError = smsError
	return nil
}

// singleMemberStore implements store.MemberStore with one member
type singleMemberStore struct {
	member domain.Member
}

func (s *singleMemberStore) Create(ctx context.Context, m *domain.Member) error { return nil }

func (s *singleMemberStore) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	if id != s.member.ID {
		return nil, store.ErrNotFound
	}
	copied := s.member
	return &copied, nil
}

func (s *singleMemberStore) List(ctx context.Context) ([]domain.Member, error) { return nil, nil }
func (s *singleMemberStore) AllActive(ctx context.Context) ([]domain.Member, error) {
	return nil, nil
}
func (s *singleMemberStore) ActiveByMinistry(ctx context.Context, id string) ([]domain.Member, error) {
	return nil, nil
}
func (s *singleMemberStore) ActiveByCommunity(ctx context.Context, id string) ([]domain.Member, error) {
	return nil, nil
}

// recordingProvider captures the last send
type recordingProvider struct {
	lastPhone   string
	lastMessage string
	fail        bool
	calls       int
}

func (p *recordingProvider) Name() string { return "recording" }

func (p *recordingProvider) Send(ctx context.Context, phoneNumber, message string) sms.SendResult {
	p.calls++
	p.lastPhone = phoneNumber
	p.lastMessage = message
	if p.fail {
		return sms.SendResult{Success: false, Err: "gateway down", Provider: p.Name()}
	}
	return sms.SendResult{Success: true, MessageID: "tithe-msg-1", Provider: p.Name()}
}

func (p *recordingProvider) SendBulk(ctx context.Context, phones []string, message string) ([]sms.SendResult, error) {
	return nil, sms.ErrNotSupported
}

func (p *recordingProvider) Balance(ctx context.Context) (string, error) {
	return "", sms.ErrNotSupported
}

func newTestService(member domain.Member, provider sms.Provider, sendSMS bool) (*Service, *mockTitheStore) {
	tithes := newMockTitheStore()
	s := NewService(tithes, &singleMemberStore{member: member}, provider, phone.New("255", nil), sendSMS)
	return s, tithes
}

func TestRecordPaymentSendsConfirmation(t *testing.T) {
	member := domain.Member{ID: "m1", Name: "Amani", Telephone: "0712345678", Active: true}
	provider := &recordingProvider{}
	s, tithes := newTestService(member, provider, true)

	payment, err := s.RecordPayment(context.Background(), PaymentRequest{
		MemberID: "m1",
		Amount:   "50000.00",
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	if provider.calls != 1 {
		t.Fatalf("expected 1 SMS, got %d", provider.calls)
	}
	if provider.lastPhone != "+255712345678" {
		t.Errorf("expected canonical phone, got %q", provider.lastPhone)
	}
	if !strings.Contains(provider.lastMessage, "Amani") || !strings.Contains(provider.lastMessage, "50000.00") {
		t.Errorf("unexpected message %q", provider.lastMessage)
	}
	if !strings.Contains(provider.lastMessage, payment.ReceiptNumber) {
		t.Errorf("expected receipt number in message %q", provider.lastMessage)
	}

	stored, _ := tithes.GetPayment(context.Background(), payment.ID)
	if !stored.SMSSent || stored.SMSMessageID != "tithe-msg-1" {
		t.Errorf("sms result not recorded: %+v", stored)
	}
}

func TestRecordPaymentSMSFailureDoesNotFailRecording(t *testing.T) {
	member := domain.Member{ID: "m1", Name: "Amani", Telephone: "0712345678", Active: true}
	provider := &recordingProvider{fail: true}
	s, tithes := newTestService(member, provider, true)

	payment, err := s.RecordPayment(context.Background(), PaymentRequest{MemberID: "m1", Amount: "1000"})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	stored, _ := tithes.GetPayment(context.Background(), payment.ID)
	if stored.SMSSent {
		t.Error("expected sms_sent=false")
	}
	if stored.LastSMSError != "gateway down" {
		t.Errorf("expected sms error recorded, got %q", stored.LastSMSError)
	}
}

func TestRecordPaymentSMSDisabled(t *testing.T) {
	member := domain.Member{ID: "m1", Name: "Amani", Telephone: "0712345678", Active: true}
	provider := &recordingProvider{}
	s, _ := newTestService(member, provider, false)

	if _, err := s.RecordPayment(context.Background(), PaymentRequest{MemberID: "m1", Amount: "1000"}); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	if provider.calls != 0 {
		t.Errorf("expected no SMS when sending disabled, got %d", provider.calls)
	}
}

func TestRecordPaymentNoContactNumber(t *testing.T) {
	member := domain.Member{ID: "m1", Name: "Amani", Active: true} // no phone
	provider := &recordingProvider{}
	s, _ := newTestService(member, provider, true)

	if _, err := s.RecordPayment(context.Background(), PaymentRequest{MemberID: "m1", Amount: "1000"}); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	if provider.calls != 0 {
		t.Errorf("expected no SMS without a contact number, got %d", provider.calls)
	}
}

func TestReceiptNumbersIncrementWithinDay(t *testing.T) {
	member := domain.Member{ID: "m1", Name: "Amani", Active: true}
	s, _ := newTestService(member, &recordingProvider{}, false)

	day := time.Now().Format("20060102")

	first, err := s.RecordPayment(context.Background(), PaymentRequest{MemberID: "m1", Amount: "1000"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.RecordPayment(context.Background(), PaymentRequest{MemberID: "m1", Amount: "2000"})
	if err != nil {
		t.Fatal(err)
	}

	wantFirst := fmt.Sprintf("TITH-%s-0001", day)
	wantSecond := fmt.Sprintf("TITH-%s-0002", day)
	if first.ReceiptNumber != wantFirst {
		t.Errorf("expected %s, got %s", wantFirst, first.ReceiptNumber)
	}
	if second.ReceiptNumber != wantSecond {
		t.Errorf("expected %s, got %s", wantSecond, second.ReceiptNumber)
	}
}

func TestRecordPaymentUnknownMember(t *testing.T) {
	member := domain.Member{ID: "m1", Name: "Amani", Active: true}
	s, _ := newTestService(member, &recordingProvider{}, false)

	if _, err := s.RecordPayment(context.Background(), PaymentRequest{MemberID: "ghost", Amount: "1000"}); err == nil {
		t.Fatal("expected error for unknown member")
	}
}
