package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// リフレッシュトークンの保存・取得・削除
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	//token値で1件検索。見つからなければErrRefreshTokenNotFound
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	//token値で削除。削除件数を返す（0件はエラーにしない）
	DeleteByToken(ctx context.Context, token string) (int64, error)
}
