package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskpad/internal/limiter"
	"taskpad/internal/repositories"
	"taskpad/internal/utils"
)

var (
	ErrRateLimited    = errors.New("too many attempts")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrBadFormat      = errors.New("invalid code format")
	ErrCodeInvalid    = errors.New("invalid or expired code")
	ErrDeliveryFailed = errors.New("email delivery failed")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// OTPService выдаёт и проверяет одноразовые коды входа и magic-ссылки.
type OTPService interface {
	// Issue генерирует код, сохраняет запись и отправляет письмо.
	// Возвращает срок годности кода; сам код наружу не отдаётся.
	Issue(ctx context.Context, email string) (time.Time, error)
	// Verify проверяет код и одноразово его потребляет.
	Verify(ctx context.Context, email, code string) error
	// VerifyMagicLink проверяет токен из письма (одноразовый, свой TTL).
	VerifyMagicLink(ctx context.Context, email, token string) error
}

type otpService struct {
	codes    repositories.LoginCodeRepository
	links    repositories.MagicLinkRepository
	emails   EmailService
	attempts limiter.AttemptLimiter
	alerts   *AlertService

	codeLength  int
	codeTTL     time.Duration
	linkTTL     time.Duration
	frontendURL string

	codeRe *regexp.Regexp
	now    func() time.Time
}

func NewOTPService(
	codes repositories.LoginCodeRepository,
	links repositories.MagicLinkRepository,
	emails EmailService,
	attempts limiter.AttemptLimiter,
	alerts *AlertService,
	codeLength int,
	codeTTL, linkTTL time.Duration,
	frontendURL string,
) OTPService {
	return &otpService{
		codes:       codes,
		links:       links,
		emails:      emails,
		attempts:    attempts,
		alerts:      alerts,
		codeLength:  codeLength,
		codeTTL:     codeTTL,
		linkTTL:     linkTTL,
		frontendURL: frontendURL,
		codeRe:      regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, codeLength)),
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *otpService) Issue(ctx context.Context, email string) (time.Time, error) {
	email = normalizeEmail(email)
	if !emailRe.MatchString(email) {
		return time.Time{}, ErrInvalidEmail
	}

	ok, err := s.attempts.CheckAndIncrement(ctx, email)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, ErrRateLimited
	}

	code, err := utils.NewDigitCode(s.codeLength)
	if err != nil {
		return time.Time{}, err
	}

	now := s.now()
	expiresAt := now.Add(s.codeTTL)
	if _, err := s.codes.Create(ctx, email, code, now, expiresAt); err != nil {
		return time.Time{}, err
	}

	magicLink, err := s.issueMagicLink(ctx, email, now)
	if err != nil {
		return time.Time{}, err
	}

	// Сбой доставки не откатывает запись: код просто протухнет
	// неиспользованным, повторный запрос выдаст новый.
	if err := s.emails.SendLoginCode(email, code, expiresAt, magicLink); err != nil {
		log.Printf("[otp][issue] delivery failed for %s: %v", email, err)
		s.alerts.DeliveryFailure(email, err)
		return time.Time{}, ErrDeliveryFailed
	}

	log.Printf("[otp][issue] code sent to %s, expires at %s", email, expiresAt.Format(time.RFC3339))
	return expiresAt, nil
}

func (s *otpService) issueMagicLink(ctx context.Context, email string, now time.Time) (string, error) {
	token, err := utils.NewLinkToken(32)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt generate: %w", err)
	}
	if _, err := s.links.Create(ctx, email, string(hash), now.Add(s.linkTTL)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/auth/callback?email=%s&token=%s",
		s.frontendURL, url.QueryEscape(email), token), nil
}

func (s *otpService) Verify(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	if !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}
	// формат проверяем до лимитера и до похода в базу
	if !s.codeRe.MatchString(code) {
		return ErrBadFormat
	}

	ok, err := s.attempts.CheckAndIncrement(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRateLimited
	}

	rec, err := s.codes.FindLatestActive(ctx, email, code, s.now())
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrCodeInvalid
	}

	consumed, err := s.codes.Consume(ctx, rec.ID)
	if err != nil {
		return err
	}
	if !consumed {
		// запись успел забрать параллельный вызов — для нас код уже невалиден
		log.Printf("[otp][verify] lost consume race for %s (record %d)", email, rec.ID)
		return ErrCodeInvalid
	}

	if err := s.attempts.Reset(ctx, email); err != nil {
		log.Printf("[otp][verify] limiter reset failed for %s: %v", email, err)
	}
	log.Printf("[otp][verify] OK %s", email)
	return nil
}

func (s *otpService) VerifyMagicLink(ctx context.Context, email, token string) error {
	email = normalizeEmail(email)
	if !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(token) == "" {
		return ErrBadFormat
	}

	ok, err := s.attempts.CheckAndIncrement(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRateLimited
	}

	ml, err := s.links.GetLatestByEmail(ctx, email)
	if err != nil {
		return err
	}
	if ml == nil || ml.UsedAt != nil || s.now().After(ml.ExpiresAt) {
		return ErrCodeInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ml.TokenHash), []byte(token)); err != nil {
		return ErrCodeInvalid
	}

	used, err := s.links.MarkUsed(ctx, ml.ID)
	if err != nil {
		return err
	}
	if !used {
		return ErrCodeInvalid
	}

	if err := s.attempts.Reset(ctx, email); err != nil {
		log.Printf("[otp][magic] limiter reset failed for %s: %v", email, err)
	}
	log.Printf("[otp][magic] OK %s", email)
	return nil
}
