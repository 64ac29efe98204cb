package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/models"
	"skilltwin/internal/utils"
)

const recoverySecret = "recovery-secret"

var codePattern = regexp.MustCompile(`>(\d{6})<`)

type recoveryFixture struct {
	svc      *recoveryService
	accounts *fakeAccountRepo
	otps     *fakeOTPRepo
	mailer   *fakeMailer
	clock    time.Time
}

func newRecoveryFixture(t *testing.T) *recoveryFixture {
	t.Helper()
	f := &recoveryFixture{
		accounts: newFakeAccountRepo(),
		otps:     newFakeOTPRepo(),
		mailer:   &fakeMailer{},
		clock:    time.Now(),
	}
	svc := NewRecoveryService(f.accounts, f.otps, f.mailer, newMemoryCooldown(time.Minute), RecoveryConfig{
		OTPLength:   6,
		OTPTTL:      10 * time.Minute,
		MaxAttempts: 5,
		TicketTTL:   10 * time.Minute,
		JWTSecret:   recoverySecret,
	}).(*recoveryService)
	svc.now = func() time.Time { return f.clock }
	f.svc = svc

	for _, kind := range []models.AccountKind{models.KindUser, models.KindAdmin} {
		_, err := f.accounts.Create(context.Background(), kind, &models.Account{Name: "Ada", Email: "ada@example.com", Password: "old"})
		require.NoError(t, err)
	}
	return f
}

func (f *recoveryFixture) lastCode(t *testing.T) string {
	t.Helper()
	f.mailer.mu.Lock()
	defer f.mailer.mu.Unlock()
	require.NotEmpty(t, f.mailer.sent)
	match := codePattern.FindStringSubmatch(f.mailer.sent[len(f.mailer.sent)-1].body)
	require.Len(t, match, 2)
	return match[1]
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func TestRecoveryService_FullFlow(t *testing.T) {
	f := newRecoveryFixture(t)
	ctx := context.Background()

	ack, err := f.svc.Initiate(ctx, models.KindUser, "  Ada@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", ack.Email)
	assert.Equal(t, 1, f.mailer.count())

	code := f.lastCode(t)
	record := f.otps.record("ada@example.com", models.KindUser)
	require.NotNil(t, record)
	assert.NotEqual(t, code, record.CodeHash)
	assert.Equal(t, utils.HashOTP(code), record.CodeHash)

	result, err := f.svc.Verify(ctx, models.KindUser, "ada@example.com", code)
	require.NoError(t, err)
	assert.Equal(t, "OTP verified successfully", result.Message)
	require.NotEmpty(t, result.ResetToken)

	_, err = f.svc.Verify(ctx, models.KindUser, "ada@example.com", code)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired, "a consumed code cannot be verified twice")

	require.NoError(t, f.svc.Reset(ctx, models.KindUser, "ada@example.com", result.ResetToken, "new-secret"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(f.accounts.password(models.KindUser, "ada@example.com")), []byte("new-secret")))
	assert.Nil(t, f.otps.record("ada@example.com", models.KindUser))

	err = f.svc.Reset(ctx, models.KindUser, "ada@example.com", result.ResetToken, "another")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired, "a ticket is single-use")

	assert.Equal(t, "old", f.accounts.password(models.KindAdmin, "ada@example.com"), "admin account is untouched")
}

func TestRecoveryService_Initiate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown account", func(t *testing.T) {
		f := newRecoveryFixture(t)
		_, err := f.svc.Initiate(ctx, models.KindAdmin, "ghost@example.com")
		require.ErrorIs(t, err, apperrors.ErrNotFound)
		appErr, _ := apperrors.As(err)
		assert.Equal(t, "Admin not found with this email", appErr.Message)
		assert.Zero(t, f.mailer.count())
	})

	t.Run("cooldown", func(t *testing.T) {
		f := newRecoveryFixture(t)
		_, err := f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		require.NoError(t, err)

		_, err = f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		assert.ErrorIs(t, err, apperrors.ErrTooManyRequests)
		assert.Equal(t, 1, f.mailer.count())

		_, err = f.svc.Initiate(ctx, models.KindAdmin, "ada@example.com")
		assert.NoError(t, err, "cooldown is per account kind")
	})

	t.Run("delivery failure releases cooldown", func(t *testing.T) {
		f := newRecoveryFixture(t)
		f.mailer.err = errors.New("smtp down")

		_, err := f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		require.ErrorIs(t, err, apperrors.ErrDeliveryFailed)
		assert.Equal(t, 502, apperrors.StatusCode(err))
		assert.NotNil(t, f.otps.record("ada@example.com", models.KindUser))

		f.mailer.err = nil
		_, err = f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		assert.NoError(t, err)
	})

	t.Run("re-initiating replaces the code", func(t *testing.T) {
		f := newRecoveryFixture(t)
		f.svc.cooldown = newMemoryCooldown(0)

		_, err := f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		require.NoError(t, err)
		first := f.lastCode(t)

		_, err = f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		require.NoError(t, err)
		second := f.lastCode(t)

		if first != second {
			_, err = f.svc.Verify(ctx, models.KindUser, "ada@example.com", first)
			assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
		}
		_, err = f.svc.Verify(ctx, models.KindUser, "ada@example.com", second)
		assert.NoError(t, err)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newRecoveryFixture(t)
		f.accounts.findErr = errFakeStore
		_, err := f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		assert.ErrorIs(t, err, errFakeStore)
		assert.Equal(t, 500, apperrors.StatusCode(err))
	})
}

func TestRecoveryService_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("no record", func(t *testing.T) {
		f := newRecoveryFixture(t)
		_, err := f.svc.Verify(ctx, models.KindUser, "ada@example.com", "123456")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
	})

	t.Run("expired", func(t *testing.T) {
		f := newRecoveryFixture(t)
		_, err := f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		require.NoError(t, err)
		code := f.lastCode(t)

		f.clock = f.clock.Add(10 * time.Minute)
		_, err = f.svc.Verify(ctx, models.KindUser, "ada@example.com", code)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
	})

	t.Run("wrong kind", func(t *testing.T) {
		f := newRecoveryFixture(t)
		_, err := f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		require.NoError(t, err)

		_, err = f.svc.Verify(ctx, models.KindAdmin, "ada@example.com", f.lastCode(t))
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
	})

	t.Run("attempts burn the code", func(t *testing.T) {
		f := newRecoveryFixture(t)
		_, err := f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		require.NoError(t, err)
		code := f.lastCode(t)

		for i := 0; i < 5; i++ {
			_, err = f.svc.Verify(ctx, models.KindUser, "ada@example.com", wrongCode(code))
			assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
		}
		assert.True(t, f.otps.record("ada@example.com", models.KindUser).IsUsed)

		_, err = f.svc.Verify(ctx, models.KindUser, "ada@example.com", code)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
	})

	t.Run("wrong length is rejected without spending an attempt", func(t *testing.T) {
		f := newRecoveryFixture(t)
		_, err := f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		require.NoError(t, err)
		code := f.lastCode(t)

		for _, bad := range []string{"1234", "1234567", ""} {
			_, err = f.svc.Verify(ctx, models.KindUser, "ada@example.com", bad)
			assert.ErrorIs(t, err, apperrors.ErrValidation, "code %q", bad)
		}
		assert.Zero(t, f.otps.record("ada@example.com", models.KindUser).Attempts)

		_, err = f.svc.Verify(ctx, models.KindUser, "ada@example.com", code)
		assert.NoError(t, err)
	})

	t.Run("concurrent verification consumes once", func(t *testing.T) {
		f := newRecoveryFixture(t)
		_, err := f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		require.NoError(t, err)
		code := f.lastCode(t)

		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := f.svc.Verify(ctx, models.KindUser, "ada@example.com", code); err == nil {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})
}

func TestRecoveryService_Reset(t *testing.T) {
	ctx := context.Background()

	verified := func(t *testing.T, f *recoveryFixture, kind models.AccountKind) string {
		t.Helper()
		_, err := f.svc.Initiate(ctx, kind, "ada@example.com")
		require.NoError(t, err)
		result, err := f.svc.Verify(ctx, kind, "ada@example.com", f.lastCode(t))
		require.NoError(t, err)
		return result.ResetToken
	}

	t.Run("without verification", func(t *testing.T) {
		f := newRecoveryFixture(t)
		ticket, err := utils.GenerateResetTicket(recoverySecret, "ada@example.com", "user", "made-up", time.Minute)
		require.NoError(t, err)

		err = f.svc.Reset(ctx, models.KindUser, "ada@example.com", ticket, "new-secret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
		assert.Equal(t, "old", f.accounts.password(models.KindUser, "ada@example.com"))
	})

	t.Run("unknown account is checked first", func(t *testing.T) {
		f := newRecoveryFixture(t)
		err := f.svc.Reset(ctx, models.KindUser, "ghost@example.com", "garbage", "new-secret")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("ticket for another account", func(t *testing.T) {
		f := newRecoveryFixture(t)
		_, err := f.accounts.Create(ctx, models.KindUser, &models.Account{Name: "Bob", Email: "bob@example.com", Password: "old"})
		require.NoError(t, err)
		ticket := verified(t, f, models.KindUser)

		err = f.svc.Reset(ctx, models.KindUser, "bob@example.com", ticket, "new-secret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
	})

	t.Run("ticket for another kind", func(t *testing.T) {
		f := newRecoveryFixture(t)
		ticket := verified(t, f, models.KindUser)

		err := f.svc.Reset(ctx, models.KindAdmin, "ada@example.com", ticket, "new-secret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
	})

	t.Run("re-initiating invalidates outstanding tickets", func(t *testing.T) {
		f := newRecoveryFixture(t)
		f.svc.cooldown = newMemoryCooldown(0)
		ticket := verified(t, f, models.KindUser)

		_, err := f.svc.Initiate(ctx, models.KindUser, "ada@example.com")
		require.NoError(t, err)

		err = f.svc.Reset(ctx, models.KindUser, "ada@example.com", ticket, "new-secret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
	})

	t.Run("failed password write keeps the ticket", func(t *testing.T) {
		f := newRecoveryFixture(t)
		ticket := verified(t, f, models.KindUser)

		f.accounts.updateErr = errors.New("write timeout")
		err := f.svc.Reset(ctx, models.KindUser, "ada@example.com", ticket, "new-secret")
		require.EqualError(t, err, "write timeout")
		assert.Equal(t, "old", f.accounts.password(models.KindUser, "ada@example.com"))

		f.accounts.updateErr = nil
		require.NoError(t, f.svc.Reset(ctx, models.KindUser, "ada@example.com", ticket, "new-secret"))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(f.accounts.password(models.KindUser, "ada@example.com")), []byte("new-secret")))

		err = f.svc.Reset(ctx, models.KindUser, "ada@example.com", ticket, "other-secret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
	})

	t.Run("concurrent resets redeem the ticket once", func(t *testing.T) {
		f := newRecoveryFixture(t)
		ticket := verified(t, f, models.KindUser)

		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := f.svc.Reset(ctx, models.KindUser, "ada@example.com", ticket, "new-secret"); err == nil {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})

	t.Run("access token is not a ticket", func(t *testing.T) {
		f := newRecoveryFixture(t)
		account, err := f.accounts.FindByEmail(ctx, models.KindUser, "ada@example.com")
		require.NoError(t, err)
		token, err := utils.GenerateJWT(recoverySecret, account.ID, "user", time.Hour)
		require.NoError(t, err)

		err = f.svc.Reset(ctx, models.KindUser, "ada@example.com", token, "new-secret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpired)
	})
}
