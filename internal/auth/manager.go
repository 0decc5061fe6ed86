package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"benches/internal/apperr"
	"benches/internal/models"
)

var tgUsernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{5,32}$`)

// ValidTelegramUsername проверяет формат Telegram username (без "@")
func ValidTelegramUsername(s string) bool {
	return tgUsernameRe.MatchString(s)
}

// Notifier получает события, на которые нужно отправить письмо пользователю
type Notifier interface {
	VerificationRequested(ctx context.Context, u models.User, token string) error
	PasswordResetRequested(ctx context.Context, u models.User, token string) error
}

// Options — секреты и время жизни токенов
type Options struct {
	Secret       string
	ResetSecret  string
	VerifySecret string
	Lifetime     time.Duration
	ResetTTL     time.Duration
	VerifyTTL    time.Duration
}

// UserCreate — данные регистрации
type UserCreate struct {
	Email            string  `json:"email" binding:"required,email,max=128"`
	Password         string  `json:"password" binding:"required,min=3"`
	Username         string  `json:"username" binding:"required,max=32"`
	TelegramUsername *string `json:"telegram_username" binding:"omitempty,max=64"`
}

// UserUpdate — частичное обновление; флаги применяются только при unsafe-обновлении
type UserUpdate struct {
	Email            *string `json:"email" binding:"omitempty,email,max=128"`
	Password         *string `json:"password" binding:"omitempty,min=3"`
	Username         *string `json:"username" binding:"omitempty,min=1,max=32"`
	TelegramUsername *string `json:"telegram_username" binding:"omitempty,max=64"`
	IsActive         *bool   `json:"is_active"`
	IsSuperuser      *bool   `json:"is_superuser"`
	IsVerified       *bool   `json:"is_verified"`
}

// Manager управляет пользователями: регистрация, вход, верификация, сброс пароля
type Manager struct {
	db       *gorm.DB
	access   *JWTStrategy
	reset    *JWTStrategy
	verify   *JWTStrategy
	notifier Notifier
}

func NewManager(db *gorm.DB, opts Options, notifier Notifier) *Manager {
	if opts.Lifetime <= 0 {
		opts.Lifetime = 24 * time.Hour
	}
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = time.Hour
	}
	if opts.VerifyTTL <= 0 {
		opts.VerifyTTL = time.Hour
	}
	if opts.ResetSecret == "" {
		opts.ResetSecret = opts.Secret
	}
	if opts.VerifySecret == "" {
		opts.VerifySecret = opts.Secret
	}
	return &Manager{
		db:       db,
		access:   NewJWTStrategy(opts.Secret, AudienceAuth, opts.Lifetime),
		reset:    NewJWTStrategy(opts.ResetSecret, AudienceReset, opts.ResetTTL),
		verify:   NewJWTStrategy(opts.VerifySecret, AudienceVerify, opts.VerifyTTL),
		notifier: notifier,
	}
}

// TokenLifetime — время жизни токена доступа (и cookie)
func (m *Manager) TokenLifetime() time.Duration { return m.access.Lifetime() }

// Create регистрирует пользователя. Флаги is_* из запроса не принимаются.
func (m *Manager) Create(ctx context.Context, in UserCreate) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if in.TelegramUsername != nil && *in.TelegramUsername == "" {
		in.TelegramUsername = nil
	}
	if in.TelegramUsername != nil && !ValidTelegramUsername(*in.TelegramUsername) {
		return nil, invalidTG()
	}
	if err := m.ensureUnique(ctx, 0, "REGISTER_USER_ALREADY_EXISTS", &in.Email, &in.Username, in.TelegramUsername); err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	user := models.User{
		Email:            in.Email,
		Username:         in.Username,
		TelegramUsername: in.TelegramUsername,
		HashedPassword:   hash,
		IsActive:         true,
	}
	if err := m.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, apperr.Wrap(http.StatusBadRequest, apperr.UserAlreadyExists, "REGISTER_USER_ALREADY_EXISTS", err)
	}
	m.requestVerify(ctx, user)
	return &user, nil
}

// Authenticate проверяет пару логин/пароль; логином может быть email или username
func (m *Manager) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	var user models.User
	err := m.db.WithContext(ctx).Where("email = ? OR username = ?", login, login).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal(err)
		}
		VerifyPassword(string(dummyHash), password)
		return nil, badCredentials()
	}
	if !VerifyPassword(user.HashedPassword, password) || !user.IsActive {
		return nil, badCredentials()
	}
	return &user, nil
}

// IssueToken выпускает токен доступа
func (m *Manager) IssueToken(u *models.User) (string, error) {
	return m.access.Issue(u.ID, Claims{})
}

// UserFromToken возвращает пользователя по токену доступа
func (m *Manager) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := m.access.Parse(token)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, id)
}

// Get ищет пользователя по id
func (m *Manager) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := m.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("User not found")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// GetByTelegram ищет пользователя по привязанному Telegram username
func (m *Manager) GetByTelegram(ctx context.Context, tgUsername string) (*models.User, error) {
	tgUsername = strings.TrimPrefix(strings.TrimSpace(tgUsername), "@")
	if tgUsername == "" {
		return nil, apperr.NotFoundf("User not found")
	}
	var user models.User
	if err := m.db.WithContext(ctx).Where("telegram_username = ?", tgUsername).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("User not found")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// RequestVerify отправляет письмо с токеном верификации. Ответ не раскрывает,
// существует ли пользователь.
func (m *Manager) RequestVerify(ctx context.Context, email string) error {
	var user models.User
	if err := m.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperr.Internal(err)
	}
	if !user.IsActive || user.IsVerified {
		return nil
	}
	m.requestVerify(ctx, user)
	return nil
}

func (m *Manager) requestVerify(ctx context.Context, user models.User) {
	if m.notifier == nil {
		return
	}
	token, err := m.verify.Issue(user.ID, Claims{Email: user.Email})
	if err != nil {
		log.Printf("[AUTH] verify token for user %d: %v", user.ID, err)
		return
	}
	if err := m.notifier.VerificationRequested(ctx, user, token); err != nil {
		log.Printf("[AUTH] enqueue verification email for user %d: %v", user.ID, err)
	}
}

// Verify подтверждает email по токену из письма
func (m *Manager) Verify(ctx context.Context, token string) (*models.User, error) {
	claims, err := m.verify.Parse(token)
	if err != nil {
		return nil, badToken("VERIFY_USER_BAD_TOKEN")
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, badToken("VERIFY_USER_BAD_TOKEN")
	}
	var user models.User
	if err := m.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, badToken("VERIFY_USER_BAD_TOKEN")
	}
	if user.Email != claims.Email {
		return nil, badToken("VERIFY_USER_BAD_TOKEN")
	}
	if user.IsVerified {
		return nil, apperr.New(http.StatusBadRequest, apperr.AlreadyVerified, "VERIFY_USER_ALREADY_VERIFIED")
	}
	if err := m.db.WithContext(ctx).Model(&user).Update("is_verified", true).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	user.IsVerified = true
	return &user, nil
}

// ForgotPassword отправляет письмо со ссылкой на сброс пароля
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	if err := m.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperr.Internal(err)
	}
	if !user.IsActive || m.notifier == nil {
		return nil
	}
	token, err := m.reset.Issue(user.ID, Claims{PasswordFingerprint: passwordFingerprint(user.HashedPassword)})
	if err != nil {
		return apperr.Internal(err)
	}
	if err := m.notifier.PasswordResetRequested(ctx, user, token); err != nil {
		log.Printf("[AUTH] enqueue reset email for user %d: %v", user.ID, err)
	}
	return nil
}

// ResetPassword меняет пароль по токену сброса. Токен одноразовый: после смены
// пароля отпечаток перестаёт совпадать.
func (m *Manager) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := m.reset.Parse(token)
	if err != nil {
		return badToken("RESET_PASSWORD_BAD_TOKEN")
	}
	id, err := claims.UserID()
	if err != nil {
		return badToken("RESET_PASSWORD_BAD_TOKEN")
	}
	var user models.User
	if err := m.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return badToken("RESET_PASSWORD_BAD_TOKEN")
	}
	if !user.IsActive || claims.PasswordFingerprint != passwordFingerprint(user.HashedPassword) {
		return badToken("RESET_PASSWORD_BAD_TOKEN")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := m.db.WithContext(ctx).Model(&user).Update("hashed_password", hash).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Update применяет изменения к пользователю. При safe=true флаги игнорируются.
func (m *Manager) Update(ctx context.Context, user *models.User, in UserUpdate, safe bool) (*models.User, error) {
	if in.TelegramUsername != nil && *in.TelegramUsername != "" && !ValidTelegramUsername(*in.TelegramUsername) {
		return nil, invalidTG()
	}
	if err := m.ensureUnique(ctx, user.ID, "UPDATE_USER_ALREADY_EXISTS", in.Email, in.Username, in.TelegramUsername); err != nil {
		return nil, err
	}
	upd := map[string]any{}
	if in.Email != nil && *in.Email != user.Email {
		upd["email"] = *in.Email
		upd["is_verified"] = false
	}
	if in.Username != nil {
		upd["username"] = *in.Username
	}
	if in.TelegramUsername != nil {
		if *in.TelegramUsername == "" {
			upd["telegram_username"] = nil
		} else {
			upd["telegram_username"] = *in.TelegramUsername
		}
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		upd["hashed_password"] = hash
	}
	if !safe {
		if in.IsActive != nil {
			upd["is_active"] = *in.IsActive
		}
		if in.IsSuperuser != nil {
			upd["is_superuser"] = *in.IsSuperuser
		}
		if in.IsVerified != nil {
			upd["is_verified"] = *in.IsVerified
		}
	}
	if len(upd) > 0 {
		if err := m.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(upd).Error; err != nil {
			return nil, apperr.Wrap(http.StatusBadRequest, apperr.UserAlreadyExists, "UPDATE_USER_ALREADY_EXISTS", err)
		}
	}
	return m.Get(ctx, user.ID)
}

// LinkTelegram привязывает Telegram username к пользователю
func (m *Manager) LinkTelegram(ctx context.Context, user *models.User, tgUsername string) error {
	if !ValidTelegramUsername(tgUsername) {
		return invalidTG()
	}
	var count int64
	if err := m.db.WithContext(ctx).Model(&models.User{}).
		Where("telegram_username = ? AND id <> ?", tgUsername, user.ID).
		Count(&count).Error; err != nil {
		return apperr.Internal(err)
	}
	if count > 0 {
		return apperr.Validation("Telegram username already taken")
	}
	if err := m.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).
		Update("telegram_username", tgUsername).Error; err != nil {
		return apperr.Internal(err)
	}
	user.TelegramUsername = &tgUsername
	return nil
}

// Delete удаляет пользователя вместе с его лавочками и возвращает удалённые лавочки
func (m *Manager) Delete(ctx context.Context, user *models.User) ([]models.Bench, error) {
	var benches []models.Bench
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("creator_id = ?", user.ID).Order("id asc").Find(&benches).Error; err != nil {
			return err
		}
		if err := tx.Where("creator_id = ?", user.ID).Delete(&models.Bench{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, user.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return benches, nil
}

// ensureUnique проверяет, что email, username и Telegram username не заняты другими
func (m *Manager) ensureUnique(ctx context.Context, selfID uint, conflict string, email, username, tg *string) error {
	check := func(column string, value *string) error {
		if value == nil || *value == "" {
			return nil
		}
		var count int64
		q := m.db.WithContext(ctx).Model(&models.User{}).Where(column+" = ?", *value)
		if selfID != 0 {
			q = q.Where("id <> ?", selfID)
		}
		if err := q.Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count > 0 {
			return apperr.New(http.StatusBadRequest, apperr.UserAlreadyExists, conflict)
		}
		return nil
	}
	if err := check("email", email); err != nil {
		return err
	}
	if err := check("username", username); err != nil {
		return err
	}
	return check("telegram_username", tg)
}

func badCredentials() error {
	return apperr.New(http.StatusBadRequest, apperr.BadCredentials, "LOGIN_BAD_CREDENTIALS")
}

func badToken(msg string) error {
	return apperr.New(http.StatusBadRequest, apperr.BadToken, msg)
}

func invalidTG() error {
	return apperr.New(http.StatusBadRequest, apperr.InvalidTG, "Invalid telegram username")
}
