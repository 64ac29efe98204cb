package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/models"
)

type fakeAccountRepo struct {
	mu        sync.Mutex
	accounts  map[models.AccountKind]map[string]*models.Account
	findErr   error
	updateErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[models.AccountKind]map[string]*models.Account{
		models.KindUser:  {},
		models.KindAdmin: {},
	}}
}

func (f *fakeAccountRepo) Create(_ context.Context, kind models.AccountKind, account *models.Account) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[kind][account.Email]; ok {
		return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}}}
	}
	account.ID = primitive.NewObjectID()
	account.Role = kind
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	stored := *account
	f.accounts[kind][account.Email] = &stored
	return account, nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, kind models.AccountKind, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	account, ok := f.accounts[kind][email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, kind models.AccountKind, id primitive.ObjectID) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts[kind] {
		if account.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeAccountRepo) UpdatePassword(_ context.Context, kind models.AccountKind, id primitive.ObjectID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, account := range f.accounts[kind] {
		if account.ID == id {
			account.Password = passwordHash
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeAccountRepo) CountAll(_ context.Context, kind models.AccountKind) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.accounts[kind])), nil
}

func (f *fakeAccountRepo) CountCreatedBetween(_ context.Context, kind models.AccountKind, start, end time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, account := range f.accounts[kind] {
		if !account.CreatedAt.Before(start) && !account.CreatedAt.After(end) {
			n++
		}
	}
	return n, nil
}

func (f *fakeAccountRepo) password(kind models.AccountKind, email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[kind][email].Password
}

type otpKey struct {
	email string
	kind  models.AccountKind
}

// fakeOTPRepo mirrors the conditional updates of the Mongo repository.
type fakeOTPRepo struct {
	mu      sync.Mutex
	records map[otpKey]*models.OTP
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{records: map[otpKey]*models.OTP{}}
}

func (f *fakeOTPRepo) Upsert(_ context.Context, email string, kind models.AccountKind, codeHash string, expiresAt time.Time) (*models.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := otpKey{email, kind}
	otp, ok := f.records[key]
	if !ok {
		otp = &models.OTP{ID: primitive.NewObjectID(), Email: email, OwnerKind: kind, CreatedAt: time.Now()}
		f.records[key] = otp
	}
	otp.CodeHash = codeHash
	otp.ExpiresAt = expiresAt
	otp.IsUsed = false
	otp.Attempts = 0
	otp.TicketID = ""
	otp.Claimed = false
	copied := *otp
	return &copied, nil
}

func (f *fakeOTPRepo) FindActive(_ context.Context, email string, kind models.AccountKind, now time.Time) (*models.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp, ok := f.records[otpKey{email, kind}]
	if !ok || otp.IsUsed || !otp.ExpiresAt.After(now) {
		return nil, mongo.ErrNoDocuments
	}
	copied := *otp
	return &copied, nil
}

func (f *fakeOTPRepo) byID(id primitive.ObjectID) *models.OTP {
	for _, otp := range f.records {
		if otp.ID == id {
			return otp
		}
	}
	return nil
}

func (f *fakeOTPRepo) Consume(_ context.Context, id primitive.ObjectID, ticketID string, now, holdUntil time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp := f.byID(id)
	if otp == nil || otp.IsUsed || !otp.ExpiresAt.After(now) {
		return false, nil
	}
	otp.IsUsed = true
	otp.TicketID = ticketID
	otp.ExpiresAt = holdUntil
	return true, nil
}

func (f *fakeOTPRepo) RecordFailedAttempt(_ context.Context, id primitive.ObjectID, maxAttempts int) (*models.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp := f.byID(id)
	if otp == nil || otp.IsUsed {
		return nil, mongo.ErrNoDocuments
	}
	otp.Attempts++
	if otp.Attempts >= maxAttempts {
		otp.IsUsed = true
	}
	copied := *otp
	return &copied, nil
}

func (f *fakeOTPRepo) ClaimConsumed(_ context.Context, email string, kind models.AccountKind, ticketID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp, ok := f.records[otpKey{email, kind}]
	if !ok || !otp.IsUsed || otp.TicketID != ticketID || otp.Claimed {
		return false, nil
	}
	otp.Claimed = true
	return true, nil
}

func (f *fakeOTPRepo) ReleaseClaim(_ context.Context, email string, kind models.AccountKind, ticketID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if otp, ok := f.records[otpKey{email, kind}]; ok && otp.TicketID == ticketID {
		otp.Claimed = false
	}
	return nil
}

func (f *fakeOTPRepo) DeleteAllFor(_ context.Context, email string, kind models.AccountKind) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := otpKey{email, kind}
	if _, ok := f.records[key]; !ok {
		return 0, nil
	}
	delete(f.records, key)
	return 1, nil
}

func (f *fakeOTPRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for key, otp := range f.records {
		if !otp.ExpiresAt.After(now) {
			delete(f.records, key)
			n++
		}
	}
	return n, nil
}

func (f *fakeOTPRepo) record(email string, kind models.AccountKind) *models.OTP {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp, ok := f.records[otpKey{email, kind}]
	if !ok {
		return nil
	}
	copied := *otp
	return &copied
}

type sentEmail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (m *fakeMailer) SendEmail(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to, subject, body})
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

var errFakeStore = errors.New("store unavailable")
