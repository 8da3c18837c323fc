package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"pos/internal/domain/model"
	"pos/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 担当者登録の入力
type RegisterOperatorInput struct {
	Code string
	Name string
	PIN  string
}

// 担当者登録の出力
type RegisterOperatorOutput struct {
	Operator model.Operator
}

// bcryptハッシュ化
type BcryptPINHasher struct {
	cost int
}

var (
	// 入力が不正
	ErrInvalidOperatorCode = errors.New("invalid operator code")
	ErrInvalidPIN          = errors.New("pin must be 4 to 8 digits")

	// 競合
	ErrOperatorCodeExists = errors.New("operator code already exists")
)

// 平文PINからハッシュへ。
type PINHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterOperatorUsecaseは担当者登録の処理。
type RegisterOperatorUsecase struct {
	operators repository.OperatorRepository
	hasher    PINHasher
	clock     Clock
}

// DI
func NewRegisterOperatorUsecase(
	operators repository.OperatorRepository,
	hasher PINHasher,
	clock Clock,
) *RegisterOperatorUsecase {
	return &RegisterOperatorUsecase{
		operators: operators,
		hasher:    hasher,
		clock:     clock,
	}
}

// 担当者登録実行
func (u *RegisterOperatorUsecase) Execute(ctx context.Context, in RegisterOperatorInput) (RegisterOperatorOutput, error) {
	var out RegisterOperatorOutput

	code := strings.TrimSpace(in.Code)
	if code == "" || len(code) > 32 {
		return out, ErrInvalidOperatorCode
	}
	if !isValidPIN(in.PIN) {
		return out, ErrInvalidPIN
	}

	// コード重複チェック
	existing, err := u.operators.FindByCode(ctx, code)
	if err == nil && existing != nil {
		return out, ErrOperatorCodeExists
	}
	if err != nil && !errors.Is(err, repository.ErrOperatorNotFound) {
		return out, err
	}

	hashed, err := u.hasher.Hash(in.PIN)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = code
	}

	op := &model.Operator{
		Code:      code,
		Name:      name,
		PINHash:   hashed,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.operators.Create(ctx, op); err != nil {
		return out, err
	}

	safe := *op
	safe.PINHash = ""

	out.Operator = safe
	return out, nil
}

// PINは4〜8桁の数字
func isValidPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 8 {
		return false
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// DI
func NewBcryptPINHasher(cost int) *BcryptPINHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPINHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPINHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPINVerifier struct{}

// DI
func NewBcryptPINVerifier() *BcryptPINVerifier {
	return &BcryptPINVerifier{}
}

func (v *BcryptPINVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
