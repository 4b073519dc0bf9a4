package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/token"
)

var (
	//401 メール不在とパスワード不一致は区別しない
	ErrInvalidCredentials = errors.New("incorrect email or password")
	//401 refresh token未指定
	ErrMissingToken = errors.New("refresh token required")
	//403 DBにtokenが無い（logout済み・cascade済みを含む）
	ErrTokenNotFound = errors.New("refresh token not found")
	//403 保存されたexpires_atまたは署名のexpが過去
	ErrTokenExpired = errors.New("refresh token expired")
	//403 署名不一致
	ErrInvalidToken = errors.New("invalid refresh token")
	//404 tokenの持ち主が削除済み
	ErrUserNotFound = errors.New("user not found")
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// 不在ユーザーでもbcrypt照合1回分のコストを揃えるためのダミー
// （"password" のcost10ハッシュ。照合は常に失敗する前提）
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthUsecaseはログイン・token再発行・ログアウトを担当する。
// refresh tokenはDBの行が正で、署名検証は追加の二重チェック。
type AuthUsecase struct {
	users    repository.UserRepository
	tokens   repository.RefreshTokenRepository
	verifier PasswordVerifier
	issuer   *token.Issuer
	clock    Clock
}

// DI
func NewAuthUsecase(
	users repository.UserRepository,
	tokens repository.RefreshTokenRepository,
	verifier PasswordVerifier,
	issuer *token.Issuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン処理を実行する
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (*TokenPair, error) {
	//emailでユーザー取得
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		//不在でも照合コストを揃えてから同じエラーを返す
		u.verifier.Verify(password, dummyPasswordHash)
		return nil, ErrInvalidCredentials
	}

	//パスワード照合
	if ok := u.verifier.Verify(password, user.Password); !ok {
		return nil, ErrInvalidCredentials
	}

	now := u.clock.Now()

	//access token発行
	accessToken, _, err := u.issuer.IssueAccess(user.ID, user.IsSuperuser, now)
	if err != nil {
		return nil, err
	}

	//refresh token発行（署名のexpと同じexpires_atでDBに保存）
	refreshToken, refreshExp, err := u.issuer.IssueRefresh(user.ID, user.IsSuperuser, now)
	if err != nil {
		return nil, err
	}

	rt := &model.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: refreshExp,
	}

	if err := u.tokens.Create(ctx, rt); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refreshはaccess tokenを再発行する。
// refresh token自体はローテーションしないし、期限も延ばさない。
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", ErrMissingToken
	}

	//DB照合（署名が正しくても行が無ければ失効扱い）
	rt, err := u.tokens.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return "", ErrTokenNotFound
		}
		return "", err
	}

	now := u.clock.Now()

	//保存されたexpires_atを署名より先にチェック
	if now.After(rt.ExpiresAt) {
		return "", ErrTokenExpired
	}

	//署名・claims検証
	claims, err := u.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	//is_superuserは発行時の値を信用せずDBから取り直す
	user, err := u.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	accessToken, _, err := u.issuer.IssueAccess(user.ID, user.IsSuperuser, now)
	if err != nil {
		return "", err
	}

	return accessToken, nil
}

// Logoutはtoken値で削除する。0件削除でも成功（冪等）。
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	_, err := u.tokens.DeleteByToken(ctx, refreshToken)
	return err
}
