package main

import (
	"log"
	"time"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/token"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続とスキーマ作成
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}

	//bcrypt（作成：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(10)
	verifier := usecase.NewBcryptPasswordVerifier()

	//JWT issuer（access/refreshで別シークレット）
	issuer := token.NewIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, rtRepo, verifier, issuer, clock)
	userUC := usecase.NewUserUsecase(userRepo, hasher, validator.NewUserValidator())

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	userH := handler.NewUserHandler(userUC)

	//Server起動
	e := server.New(issuer, authH, userH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := e.Start(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
