package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	// 署名不一致・形式不正
	ErrInvalid = errors.New("invalid token")
	// expクレームが過去
	ErrExpired = errors.New("token expired")
)

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

// refreshtokenの有効期限
const refreshTokenTTL = time.Hour

// Claimsは署名トークンに載せる固定スキーマ。
// jti（RegisteredClaims.ID）はUUIDで、同一ユーザーが同時刻に
// ログインしてもtoken文字列が衝突しないようにする。
type Claims struct {
	UserID      int64 `json:"user_id"`
	IsSuperuser bool  `json:"is_superuser"`
	jwt.RegisteredClaims
}

// IssuerはHS256でaccess/refresh tokenを発行・検証する。
// secretは用途ごとに別々。
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
}

// DI
func NewIssuer(accessSecret string, refreshSecret string) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// access token発行（15分）
func (i *Issuer) IssueAccess(userID int64, isSuperuser bool, now time.Time) (string, time.Time, error) {
	return sign(userID, isSuperuser, now, now.Add(accessTokenTTL), i.accessSecret)
}

// refresh token発行（1時間）
func (i *Issuer) IssueRefresh(userID int64, isSuperuser bool, now time.Time) (string, time.Time, error) {
	return sign(userID, isSuperuser, now, now.Add(refreshTokenTTL), i.refreshSecret)
}

// access tokenを検証してclaimsを返す
func (i *Issuer) VerifyAccess(raw string) (*Claims, error) {
	return verify(raw, i.accessSecret)
}

// refresh tokenを検証してclaimsを返す
func (i *Issuer) VerifyRefresh(raw string) (*Claims, error) {
	return verify(raw, i.refreshSecret)
}

func sign(userID int64, isSuperuser bool, now time.Time, expiresAt time.Time, secret []byte) (string, time.Time, error) {
	claims := Claims{
		UserID:      userID,
		IsSuperuser: isSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func verify(raw string, secret []byte) (*Claims, error) {
	var claims Claims

	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if tok == nil || !tok.Valid {
		return nil, ErrInvalid
	}
	if claims.UserID <= 0 {
		return nil, ErrInvalid
	}

	return &claims, nil
}
