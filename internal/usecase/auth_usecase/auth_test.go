package auth_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"pos/internal/domain/model"
	"pos/internal/repository"
	auth "pos/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mock: OperatorRepository
// =====================

type OperatorRepoMock struct{ mock.Mock }

func (m *OperatorRepoMock) Create(ctx context.Context, op *model.Operator) error {
	args := m.Called(ctx, op)
	if args.Error(0) == nil {
		op.ID = 1
	}
	return args.Error(0)
}

func (m *OperatorRepoMock) FindByID(ctx context.Context, id int64) (*model.Operator, error) {
	args := m.Called(ctx, id)
	op, _ := args.Get(0).(*model.Operator)
	return op, args.Error(1)
}

func (m *OperatorRepoMock) FindByCode(ctx context.Context, code string) (*model.Operator, error) {
	args := m.Called(ctx, code)
	op, _ := args.Get(0).(*model.Operator)
	return op, args.Error(1)
}

func (m *OperatorRepoMock) Update(ctx context.Context, op *model.Operator) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

var _ repository.OperatorRepository = (*OperatorRepoMock)(nil)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var now = time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

func mustHash(t *testing.T, pin string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// =====================
// RegisterOperator
// =====================

func TestRegisterOperator_Success(t *testing.T) {
	ops := new(OperatorRepoMock)
	uc := auth.NewRegisterOperatorUsecase(ops, auth.NewBcryptPINHasher(bcrypt.MinCost), fixedClock{now})

	ops.On("FindByCode", mock.Anything, "A01").Return(nil, repository.ErrOperatorNotFound)
	ops.On("Create", mock.Anything, mock.MatchedBy(func(op *model.Operator) bool {
		return op.Code == "A01" && op.Name == "Sato" && op.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(op.PINHash), []byte("1234")) == nil
	})).Return(nil)

	out, err := uc.Execute(context.Background(), auth.RegisterOperatorInput{Code: " A01 ", Name: "Sato", PIN: "1234"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Operator.ID)
	assert.Empty(t, out.Operator.PINHash)
	assert.Equal(t, now, out.Operator.CreatedAt)
	ops.AssertExpectations(t)
}

func TestRegisterOperator_NameDefaultsToCode(t *testing.T) {
	ops := new(OperatorRepoMock)
	uc := auth.NewRegisterOperatorUsecase(ops, auth.NewBcryptPINHasher(bcrypt.MinCost), fixedClock{now})

	ops.On("FindByCode", mock.Anything, "A02").Return(nil, repository.ErrOperatorNotFound)
	ops.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Execute(context.Background(), auth.RegisterOperatorInput{Code: "A02", PIN: "0000"})
	require.NoError(t, err)
	assert.Equal(t, "A02", out.Operator.Name)
}

func TestRegisterOperator_Validation(t *testing.T) {
	uc := auth.NewRegisterOperatorUsecase(new(OperatorRepoMock), auth.NewBcryptPINHasher(bcrypt.MinCost), fixedClock{now})

	cases := []struct {
		name string
		in   auth.RegisterOperatorInput
		want error
	}{
		{"empty code", auth.RegisterOperatorInput{Code: " ", PIN: "1234"}, auth.ErrInvalidOperatorCode},
		{"short pin", auth.RegisterOperatorInput{Code: "A01", PIN: "123"}, auth.ErrInvalidPIN},
		{"long pin", auth.RegisterOperatorInput{Code: "A01", PIN: "123456789"}, auth.ErrInvalidPIN},
		{"non digit", auth.RegisterOperatorInput{Code: "A01", PIN: "12a4"}, auth.ErrInvalidPIN},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterOperator_Conflict(t *testing.T) {
	ops := new(OperatorRepoMock)
	uc := auth.NewRegisterOperatorUsecase(ops, auth.NewBcryptPINHasher(bcrypt.MinCost), fixedClock{now})

	ops.On("FindByCode", mock.Anything, "A01").Return(&model.Operator{ID: 3, Code: "A01"}, nil)

	_, err := uc.Execute(context.Background(), auth.RegisterOperatorInput{Code: "A01", PIN: "1234"})
	assert.ErrorIs(t, err, auth.ErrOperatorCodeExists)
	ops.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// Login
// =====================

func newLogin(ops *OperatorRepoMock) *auth.LoginUsecase {
	return auth.NewLoginUsecase(ops, auth.NewBcryptPINVerifier(), auth.NewHS256Issuer("test-secret", time.Hour), fixedClock{now})
}

func TestLogin_Success(t *testing.T) {
	ops := new(OperatorRepoMock)
	op := &model.Operator{ID: 9, Code: "A01", Name: "Sato", PINHash: mustHash(t, "1234"), IsActive: true}
	ops.On("FindByCode", mock.Anything, "A01").Return(op, nil)
	ops.On("Update", mock.Anything, mock.MatchedBy(func(o *model.Operator) bool {
		return o.LastLoginAt != nil && o.LastLoginAt.Equal(now)
	})).Return(nil)

	out, err := newLogin(ops).Execute(context.Background(), auth.LoginInput{OperatorCode: "A01", PIN: "1234"})
	require.NoError(t, err)
	assert.Empty(t, out.Operator.PINHash)
	assert.Equal(t, 3600, out.Token.ExpiresIn)

	//トークンの中身
	parsed, err := jwt.Parse(out.Token.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, strconv.FormatInt(9, 10), claims["sub"])
	assert.Equal(t, "A01", claims["code"])
	assert.Equal(t, float64(now.Add(time.Hour).Unix()), claims["exp"])
	ops.AssertExpectations(t)
}

func TestLogin_WrongPIN(t *testing.T) {
	ops := new(OperatorRepoMock)
	op := &model.Operator{ID: 9, Code: "A01", PINHash: mustHash(t, "1234"), IsActive: true}
	ops.On("FindByCode", mock.Anything, "A01").Return(op, nil)

	_, err := newLogin(ops).Execute(context.Background(), auth.LoginInput{OperatorCode: "A01", PIN: "9999"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	ops.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLogin_UnknownOperator(t *testing.T) {
	ops := new(OperatorRepoMock)
	ops.On("FindByCode", mock.Anything, "ZZ").Return(nil, repository.ErrOperatorNotFound)

	_, err := newLogin(ops).Execute(context.Background(), auth.LoginInput{OperatorCode: "ZZ", PIN: "1234"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_Inactive(t *testing.T) {
	ops := new(OperatorRepoMock)
	op := &model.Operator{ID: 9, Code: "A01", PINHash: mustHash(t, "1234"), IsActive: false}
	ops.On("FindByCode", mock.Anything, "A01").Return(op, nil)

	_, err := newLogin(ops).Execute(context.Background(), auth.LoginInput{OperatorCode: "A01", PIN: "1234"})
	assert.ErrorIs(t, err, auth.ErrOperatorInactive)
}

func TestLogin_RepoError(t *testing.T) {
	ops := new(OperatorRepoMock)
	boom := errors.New("boom")
	ops.On("FindByCode", mock.Anything, "A01").Return(nil, boom)

	_, err := newLogin(ops).Execute(context.Background(), auth.LoginInput{OperatorCode: "A01", PIN: "1234"})
	assert.ErrorIs(t, err, boom)
}

func TestLogin_EmptyInput(t *testing.T) {
	_, err := newLogin(new(OperatorRepoMock)).Execute(context.Background(), auth.LoginInput{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestHS256Issuer_EmptySecret(t *testing.T) {
	_, _, err := auth.NewHS256Issuer("", time.Hour).Issue(1, "A01", now)
	assert.Error(t, err)
}
