package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ViewerTokenService emite y valida la cookie que identifica a cada visitante.
// Solo asocia un navegador con su estado de vista; no autentica a nadie.
type ViewerTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	store  ViewerTokenStore
	now    func() time.Time
}

type ViewerClaims struct {
	ViewerID string `json:"vid"`
	jwt.RegisteredClaims
}

var (
	ErrViewerTokenInvalid = errors.New("viewer token invalid")
	ErrViewerTokenExpired = errors.New("viewer token expired")
)

func NewViewerTokenService(secret string, ttl time.Duration, store ViewerTokenStore) *ViewerTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if store == nil {
		store = NewMemoryViewerTokenStore()
	}
	return &ViewerTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "csv-chat",
		store:  store,
		now:    time.Now,
	}
}

func (s *ViewerTokenService) TTL() time.Duration {
	return s.ttl
}

// Issue genera un visitante nuevo y su token firmado.
func (s *ViewerTokenService) Issue(ctx context.Context) (token string, viewerID string, err error) {
	if len(s.secret) == 0 {
		return "", "", ErrViewerTokenInvalid
	}
	now := s.now().UTC()
	viewerID = uuid.NewString()
	jti := uuid.NewString()
	claims := ViewerClaims{
		ViewerID: viewerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   viewerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	if err := s.store.Store(ctx, jti, viewerID, s.ttl); err != nil {
		return "", "", err
	}
	return signed, viewerID, nil
}

// Parse valida firma, emisor, vencimiento y que el jti siga registrado.
func (s *ViewerTokenService) Parse(ctx context.Context, token string) (ViewerClaims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(token) == "" {
		return ViewerClaims{}, ErrViewerTokenInvalid
	}

	var claims ViewerClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ViewerClaims{}, ErrViewerTokenExpired
		}
		return ViewerClaims{}, ErrViewerTokenInvalid
	}
	if strings.TrimSpace(claims.ViewerID) == "" || claims.Subject != claims.ViewerID || claims.ID == "" {
		return ViewerClaims{}, ErrViewerTokenInvalid
	}

	ok, err := s.store.Exists(ctx, claims.ID)
	if err != nil || !ok {
		return ViewerClaims{}, ErrViewerTokenInvalid
	}
	return claims, nil
}

// Revoke invalida el token; se usa al "olvidar" a un visitante.
func (s *ViewerTokenService) Revoke(ctx context.Context, token string) error {
	claims, err := s.Parse(ctx, token)
	if err != nil {
		return err
	}
	return s.store.Revoke(ctx, claims.ID)
}
