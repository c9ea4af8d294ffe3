package usecase_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) UpdateSettings(ctx context.Context, id int64, settings domain.UserSettings) error {
	return m.Called(ctx, id, settings).Error(0)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) ListByUserID(ctx context.Context, userID int64) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) CreateWithLimit(ctx context.Context, company *domain.Company, limit int) error {
	return m.Called(ctx, company, limit).Error(0)
}

func (m *MockCompanyRepo) Update(ctx context.Context, company *domain.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockCompanyRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockJobOfferRepo struct {
	mock.Mock
}

func (m *MockJobOfferRepo) Create(ctx context.Context, offer *domain.JobOffer) error {
	return m.Called(ctx, offer).Error(0)
}

func (m *MockJobOfferRepo) GetByID(ctx context.Context, id int64) (*domain.JobOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobOffer), args.Error(1)
}

func (m *MockJobOfferRepo) GetByIDWithCompany(ctx context.Context, id int64) (*domain.JobOfferWithCompany, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobOfferWithCompany), args.Error(1)
}

func (m *MockJobOfferRepo) Search(ctx context.Context, filter domain.JobOfferFilter) ([]domain.JobOfferWithCompany, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.JobOfferWithCompany), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobOfferRepo) Recent(ctx context.Context, limit int) ([]domain.JobOfferWithCompany, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.JobOfferWithCompany), args.Error(1)
}

func (m *MockJobOfferRepo) Update(ctx context.Context, offer *domain.JobOffer) error {
	return m.Called(ctx, offer).Error(0)
}

func (m *MockJobOfferRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	return m.Called(ctx, resume).Error(0)
}

func (m *MockResumeRepo) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeRepo) Exists(ctx context.Context, jobOfferID, userID int64) (bool, error) {
	args := m.Called(ctx, jobOfferID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockResumeRepo) UpdateStatus(ctx context.Context, id int64, status domain.ResumeStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockResumeRepo) ListByJobOffer(ctx context.Context, jobOfferID int64) ([]domain.ResumeView, error) {
	args := m.Called(ctx, jobOfferID)
	return args.Get(0).([]domain.ResumeView), args.Error(1)
}

func (m *MockResumeRepo) SearchByApplicant(ctx context.Context, filter domain.ApplicationFilter) ([]domain.ResumeView, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ResumeView), args.Get(1).(int64), args.Error(2)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) GetByResumeID(ctx context.Context, resumeID int64) (*domain.Interview, error) {
	args := m.Called(ctx, resumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) DeleteByResumeID(ctx context.Context, resumeID int64) error {
	return m.Called(ctx, resumeID).Error(0)
}

func (m *MockInterviewRepo) Update(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}

func (m *MockInterviewRepo) Search(ctx context.Context, filter domain.InterviewFilter) ([]domain.InterviewView, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.InterviewView), args.Get(1).(int64), args.Error(2)
}

// fakeTx runs fn directly; err simulates a failed commit
type fakeTx struct {
	err error
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

// memNotifications is an in-memory notification store
type memNotifications struct {
	mu        sync.Mutex
	items     []domain.Notification
	createErr error
}

func (r *memNotifications) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	r.items = append(r.items, *n)
	return nil
}

func (r *memNotifications) ListByRecipient(_ context.Context, recipientID int64) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].RecipientID == recipientID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *memNotifications) CountUnread(_ context.Context, recipientID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if item.RecipientID == recipientID && item.ReadAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *memNotifications) MarkRead(_ context.Context, id uuid.UUID, recipientID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].RecipientID == recipientID {
			if r.items[i].ReadAt == nil {
				r.items[i].ReadAt = &at
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memNotifications) MarkAllRead(_ context.Context, recipientID int64, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.items {
		if r.items[i].RecipientID == recipientID && r.items[i].ReadAt == nil {
			r.items[i].ReadAt = &at
			n++
		}
	}
	return n, nil
}

func (r *memNotifications) forRecipient(id int64) []domain.Notification {
	list, _ := r.ListByRecipient(context.Background(), id)
	return list
}

// capturingBroadcaster records every pushed payload per recipient
type capturingBroadcaster struct {
	mu     sync.Mutex
	pushed map[int64][][]byte
	err    error
}

func (b *capturingBroadcaster) Publish(_ context.Context, recipientID int64, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	if b.pushed == nil {
		b.pushed = make(map[int64][][]byte)
	}
	b.pushed[recipientID] = append(b.pushed[recipientID], payload)
	return nil
}

func (b *capturingBroadcaster) count(recipientID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pushed[recipientID])
}

type sentMail struct {
	to, subject, message string
}

type fakeMailer struct {
	mu         sync.Mutex
	configured bool
	sent       []sentMail
	err        error
}

func (f *fakeMailer) IsConfigured() bool { return f.configured }

func (f *fakeMailer) SendNotificationEmail(to, _, subject, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, message: message})
	return nil
}

// memStorage keeps uploaded files in memory
type memStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (s *memStorage) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return nil
}

func (s *memStorage) PresignGet(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[key]; !ok {
		return "", errors.New("no such key")
	}
	return "https://files.example.test/" + key + "?signed=1", nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	s.deleted = append(s.deleted, key)
	return nil
}
