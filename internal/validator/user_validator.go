package validator

import (
	"html"
	"net/mail"
	"strings"

	"app/internal/usecase"
)

type userValidator struct{}

// Usecaseはinterfaceを依存注入
func NewUserValidator() usecase.UserValidator {
	return &userValidator{}
}

// ユーザー作成の入力を検証して正規化する
func (v *userValidator) ValidateCreate(in *usecase.CreateUserInput) error {
	var errs usecase.ValidationErrors

	//name: trim + HTMLエスケープ
	in.Name = sanitizeText(in.Name)
	if in.Name == "" {
		errs = append(errs, usecase.FieldError{Field: "name", Message: "name is required"})
	}

	//email: 形式チェック + 小文字化
	email, ok := normalizeEmail(in.Email)
	if !ok {
		errs = append(errs, usecase.FieldError{Field: "email", Message: "invalid email format"})
	} else {
		in.Email = email
	}

	//password: trimのみ（ハッシュ前の平文なのでエスケープしない）
	in.Password = strings.TrimSpace(in.Password)
	if in.Password == "" {
		errs = append(errs, usecase.FieldError{Field: "password", Message: "password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ユーザー更新の入力を検証して正規化する。nilのフィールドは対象外
func (v *userValidator) ValidateUpdate(in *usecase.UpdateUserInput) error {
	var errs usecase.ValidationErrors

	if in.Name != nil {
		name := sanitizeText(*in.Name)
		if name == "" {
			errs = append(errs, usecase.FieldError{Field: "name", Message: "name must not be empty"})
		} else {
			in.Name = &name
		}
	}

	if in.Email != nil {
		email, ok := normalizeEmail(*in.Email)
		if !ok {
			errs = append(errs, usecase.FieldError{Field: "email", Message: "invalid email format"})
		} else {
			in.Email = &email
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// 自由入力テキストをtrimしてHTMLエスケープする
func sanitizeText(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// メール形式をチェックして小文字に正規化。表示名付き（"A <a@x.com>"）は拒否
func normalizeEmail(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", false
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", false
	}

	return strings.ToLower(addr.Address), true
}
