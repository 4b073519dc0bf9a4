package usecase

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	"app/internal/repository"
)

var (
	//404 対象ユーザーが存在しない（0件更新・0件削除）
	ErrNotFound = errors.New("user not found")
	//409 email重複
	ErrDuplicateEmail = errors.New("email already exists")
)

// 項目ごとの検証エラー
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// 400で {errors: [...]} として返す
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation error: " + strings.Join(msgs, ", ")
}

// usecaseがvalidatorに依存する約束。
// 検証と同時にemail小文字化・name trim/escapeなどの正規化も行う。
type UserValidator interface {
	ValidateCreate(in *CreateUserInput) error
	ValidateUpdate(in *UpdateUserInput) error
}

type CreateUserInput struct {
	Name        string
	Email       string
	Password    string
	IsSuperuser bool
}

type UpdateUserInput struct {
	Name  *string
	Email *string
}

type UserDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	IsSuperuser bool   `json:"is_superuser"`
}

type UserListOutput struct {
	Data        []UserDTO `json:"data"`
	Total       int64     `json:"total"`
	TotalPages  int64     `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	Limit       int       `json:"limit"`
}

// UserUsecaseはユーザーのCRUDを担当する。
// 認可（認証必須・superuser限定）はmiddleware側で済んでいる前提。
type UserUsecase struct {
	users     repository.UserRepository
	hasher    PasswordHasher
	validator UserValidator
}

// DI
func NewUserUsecase(
	users repository.UserRepository,
	hasher PasswordHasher,
	validator UserValidator,
) *UserUsecase {
	return &UserUsecase{
		users:     users,
		hasher:    hasher,
		validator: validator,
	}
}

// ユーザー作成。返すDTOにパスワードは含めない
func (u *UserUsecase) Create(ctx context.Context, in CreateUserInput) (*UserDTO, error) {
	//入力検証＋正規化
	if err := u.validator.ValidateCreate(&in); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:        in.Name,
		Email:       in.Email,
		Password:    pwHash,
		IsSuperuser: in.IsSuperuser,
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// 一覧取得。pageとlimitが不正なら黙ってデフォルトに丸める
func (u *UserUsecase) List(ctx context.Context, page int, limit int) (*UserListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit

	users, err := u.users.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	total, err := u.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	//ceil(total/limit)
	totalPages := (total + int64(limit) - 1) / int64(limit)

	data := make([]UserDTO, 0, len(users))
	for i := range users {
		data = append(data, toUserDTO(&users[i]))
	}

	return &UserListOutput{
		Data:        data,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
	}, nil
}

// 部分更新。渡されたフィールドだけ書き換える
func (u *UserUsecase) Update(ctx context.Context, id int64, in UpdateUserInput) error {
	if err := u.validator.ValidateUpdate(&in); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}

	if len(fields) == 0 {
		return ValidationErrors{{Field: "body", Message: "name or email is required"}}
	}

	rows, err := u.users.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrDuplicateEmail
		}
		return err
	}

	// 0件更新は「対象がない」
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// 削除。refresh_tokensはDBのcascadeで一緒に消える
func (u *UserUsecase) Delete(ctx context.Context, id int64) error {
	rows, err := u.users.Delete(ctx, id)
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
	}
}
