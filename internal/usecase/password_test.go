package usecase_test

import (
	"testing"

	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestBcryptPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := usecase.NewBcryptPasswordHasher(4) // テストは最小コスト
	verifier := usecase.NewBcryptPasswordVerifier()

	hashed, err := hasher.Hash("secret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret-password", hashed)

	assert.True(t, verifier.Verify("secret-password", hashed))
	assert.False(t, verifier.Verify("wrong-password", hashed))
}

func TestBcryptPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := usecase.NewBcryptPasswordHasher(4)

	a, err := hasher.Hash("same-input")
	assert.NoError(t, err)
	b, err := hasher.Hash("same-input")
	assert.NoError(t, err)

	//saltが入るので同じ入力でもハッシュは毎回変わる
	assert.NotEqual(t, a, b)
}

func TestBcryptPasswordVerifier_MalformedHashIsNoMatch(t *testing.T) {
	verifier := usecase.NewBcryptPasswordVerifier()

	//壊れたハッシュでもpanicせず不一致を返す
	assert.False(t, verifier.Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, verifier.Verify("anything", ""))
}
