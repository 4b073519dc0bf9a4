package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// emailのunique制約違反を統一
var ErrDuplicateEmail = errors.New("email already exists")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email重複はErrDuplicateEmail）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。見つからなければnil, nil
	FindByID(ctx context.Context, id int64) (*model.User, error)
	//メールからユーザーを1件取得する。見つからなければnil, nil
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//指定フィールドのみ部分更新。更新件数を返す
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) (int64, error)
	//ユーザー削除。削除件数を返す（refresh_tokensはDBのcascadeで消える）
	Delete(ctx context.Context, id int64) (int64, error)
	//id昇順で1ページ分取得
	List(ctx context.Context, offset int, limit int) ([]model.User, error)
	//総件数
	Count(ctx context.Context) (int64, error)
}
