package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"benches/internal/apperr"
	"benches/internal/models"
)

type sentToken struct {
	kind  string
	email string
	token string
}

type recordingNotifier struct {
	sent []sentToken
}

func (n *recordingNotifier) VerificationRequested(_ context.Context, u models.User, token string) error {
	n.sent = append(n.sent, sentToken{kind: "verify", email: u.Email, token: token})
	return nil
}

func (n *recordingNotifier) PasswordResetRequested(_ context.Context, u models.User, token string) error {
	n.sent = append(n.sent, sentToken{kind: "reset", email: u.Email, token: token})
	return nil
}

func (n *recordingNotifier) last(kind string) string {
	for i := len(n.sent) - 1; i >= 0; i-- {
		if n.sent[i].kind == kind {
			return n.sent[i].token
		}
	}
	return ""
}

func setupManager(t *testing.T) (*Manager, *recordingNotifier, *gorm.DB) {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Bench{}))

	n := &recordingNotifier{}
	m := NewManager(db, Options{Secret: "secret", Lifetime: time.Hour}, n)
	return m, n, db
}

func codeOf(err error) apperr.Code {
	var e *apperr.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

func TestCreateAndAuthenticate(t *testing.T) {
	m, n, _ := setupManager(t)
	ctx := context.Background()

	u, err := m.Create(ctx, UserCreate{Email: "test@te.st", Password: "test0123", Username: "tester"})
	require.NoError(t, err)
	require.True(t, u.IsActive)
	require.False(t, u.IsVerified)
	require.NotEqual(t, "test0123", u.HashedPassword)
	require.NotEmpty(t, n.last("verify"))

	_, err = m.Create(ctx, UserCreate{Email: "test@te.st", Password: "x12", Username: "other"})
	require.Equal(t, apperr.UserAlreadyExists, codeOf(err))

	byEmail, err := m.Authenticate(ctx, "test@te.st", "test0123")
	require.NoError(t, err)
	byName, err := m.Authenticate(ctx, "tester", "test0123")
	require.NoError(t, err)
	require.Equal(t, byEmail.ID, byName.ID)

	_, err = m.Authenticate(ctx, "tester", "wrong")
	require.Equal(t, apperr.BadCredentials, codeOf(err))
	_, err = m.Authenticate(ctx, "nobody", "test0123")
	require.Equal(t, apperr.BadCredentials, codeOf(err))
}

func TestCreateRejectsInvalidTelegram(t *testing.T) {
	m, _, _ := setupManager(t)
	bad := "a-b"
	_, err := m.Create(context.Background(), UserCreate{Email: "a@b.cd", Password: "pass", Username: "ab", TelegramUsername: &bad})
	require.Equal(t, apperr.InvalidTG, codeOf(err))
}

func TestInactiveUserCannotLogin(t *testing.T) {
	m, _, db := setupManager(t)
	ctx := context.Background()
	u, err := m.Create(ctx, UserCreate{Email: "in@active.io", Password: "pass", Username: "inactive"})
	require.NoError(t, err)
	require.NoError(t, db.Model(u).Update("is_active", false).Error)

	_, err = m.Authenticate(ctx, "inactive", "pass")
	require.Equal(t, apperr.BadCredentials, codeOf(err))
}

func TestTokenRoundTrip(t *testing.T) {
	m, _, _ := setupManager(t)
	ctx := context.Background()
	u, err := m.Create(ctx, UserCreate{Email: "tok@en.io", Password: "pass", Username: "token"})
	require.NoError(t, err)

	token, err := m.IssueToken(u)
	require.NoError(t, err)
	got, err := m.UserFromToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = m.UserFromToken(ctx, "garbage")
	require.Error(t, err)
}

func TestVerifyFlow(t *testing.T) {
	m, n, _ := setupManager(t)
	ctx := context.Background()
	_, err := m.Create(ctx, UserCreate{Email: "ver@ify.io", Password: "pass", Username: "verify"})
	require.NoError(t, err)

	require.NoError(t, m.RequestVerify(ctx, "ver@ify.io"))
	token := n.last("verify")

	u, err := m.Verify(ctx, token)
	require.NoError(t, err)
	require.True(t, u.IsVerified)

	_, err = m.Verify(ctx, token)
	require.Equal(t, apperr.AlreadyVerified, codeOf(err))

	_, err = m.Verify(ctx, "bad-token")
	require.Equal(t, apperr.BadToken, codeOf(err))

	// для неизвестного email письмо не отправляется
	before := len(n.sent)
	require.NoError(t, m.RequestVerify(ctx, "missing@ify.io"))
	require.Len(t, n.sent, before)
}

func TestResetPasswordIsSingleUse(t *testing.T) {
	m, n, _ := setupManager(t)
	ctx := context.Background()
	_, err := m.Create(ctx, UserCreate{Email: "re@set.io", Password: "old-pass", Username: "reset"})
	require.NoError(t, err)

	require.NoError(t, m.ForgotPassword(ctx, "re@set.io"))
	token := n.last("reset")
	require.NotEmpty(t, token)

	require.NoError(t, m.ResetPassword(ctx, token, "new-pass"))
	_, err = m.Authenticate(ctx, "reset", "new-pass")
	require.NoError(t, err)

	err = m.ResetPassword(ctx, token, "third-pass")
	require.Equal(t, apperr.BadToken, codeOf(err))
}

func TestUpdateSafeIgnoresFlags(t *testing.T) {
	m, _, _ := setupManager(t)
	ctx := context.Background()
	u, err := m.Create(ctx, UserCreate{Email: "up@date.io", Password: "pass", Username: "update"})
	require.NoError(t, err)

	yes := true
	name := "renamed"
	got, err := m.Update(ctx, u, UserUpdate{Username: &name, IsSuperuser: &yes}, true)
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Username)
	require.False(t, got.IsSuperuser)

	got, err = m.Update(ctx, got, UserUpdate{IsSuperuser: &yes}, false)
	require.NoError(t, err)
	require.True(t, got.IsSuperuser)
}

func TestUpdateConflictMessage(t *testing.T) {
	m, _, _ := setupManager(t)
	ctx := context.Background()
	_, err := m.Create(ctx, UserCreate{Email: "one@conf.io", Password: "pass", Username: "one"})
	require.NoError(t, err)
	two, err := m.Create(ctx, UserCreate{Email: "two@conf.io", Password: "pass", Username: "two"})
	require.NoError(t, err)

	_, err = m.Create(ctx, UserCreate{Email: "one@conf.io", Password: "pass", Username: "three"})
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "REGISTER_USER_ALREADY_EXISTS", e.Message)

	taken := "one"
	_, err = m.Update(ctx, two, UserUpdate{Username: &taken}, true)
	require.ErrorAs(t, err, &e)
	require.Equal(t, apperr.UserAlreadyExists, e.Code)
	require.Equal(t, "UPDATE_USER_ALREADY_EXISTS", e.Message)
}

func TestDeleteCascadesBenches(t *testing.T) {
	m, _, db := setupManager(t)
	ctx := context.Background()
	u, err := m.Create(ctx, UserCreate{Email: "del@ete.io", Password: "pass", Username: "delete"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Bench{Name: "b", Count: 1, Latitude: 1, Longitude: 1, CreatorID: u.ID}).Error)

	deleted, err := m.Delete(ctx, u)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	require.Equal(t, "b", deleted[0].Name)
	var count int64
	db.Model(&models.Bench{}).Where("creator_id = ?", u.ID).Count(&count)
	require.Zero(t, count)
}

func TestLinkTelegram(t *testing.T) {
	m, _, _ := setupManager(t)
	ctx := context.Background()
	a, err := m.Create(ctx, UserCreate{Email: "a@link.io", Password: "pass", Username: "linka"})
	require.NoError(t, err)
	b, err := m.Create(ctx, UserCreate{Email: "b@link.io", Password: "pass", Username: "linkb"})
	require.NoError(t, err)

	require.Equal(t, apperr.InvalidTG, codeOf(m.LinkTelegram(ctx, a, "abc")))

	require.NoError(t, m.LinkTelegram(ctx, a, "bench_lover"))
	require.Equal(t, "bench_lover", *a.TelegramUsername)
	// повторная привязка того же имени к себе допустима
	require.NoError(t, m.LinkTelegram(ctx, a, "bench_lover"))

	require.Equal(t, apperr.ValidationError, codeOf(m.LinkTelegram(ctx, b, "bench_lover")))

	got, err := m.GetByTelegram(ctx, "@bench_lover")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
}
