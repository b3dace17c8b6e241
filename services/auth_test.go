package services

import (
	"testing"
	"time"

	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTService() *JWTService {
	return &JWTService{
		AccessTokenDuration:  24 * time.Hour,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		jwtSecretKey:         "test-secret",
	}
}

func newAuthService(store *SqliteService) *AuthService {
	return &AuthService{
		db:       store,
		jwtSvc:   newJWTService(),
		userRepo: repositories.NewUserRepository(store.Db()),
	}
}

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	svc := newJWTService()

	pair, err := svc.GenerateTokenPair("user-1", shared.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64((24 * time.Hour).Seconds()), pair.ExpiresIn)

	userID, role, err := svc.VerifyJWTToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, shared.RoleAdmin, role)
}

func TestVerifyJWTToken_RejectsWrongSecret(t *testing.T) {
	svc := newJWTService()
	pair, err := svc.GenerateTokenPair("user-1", shared.RoleUser)
	require.NoError(t, err)

	other := &JWTService{jwtSecretKey: "different-secret"}
	_, _, err = other.VerifyJWTToken(pair.AccessToken)
	assert.Error(t, err)

	_, _, err = svc.VerifyJWTToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := newJWTService()

	token, err := svc.ExtractTokenFromHeader("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = svc.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = svc.ExtractTokenFromHeader("Basic abc123")
	assert.Error(t, err)
}

func TestRegister_CreatesUserAndStats(t *testing.T) {
	store := newTestStore(t)
	svc := newAuthService(store)

	resp, err := svc.Register(dto.RegisterRequest{
		Email:    "seller@example.com",
		Name:     "Seller",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "seller@example.com", resp.User.Email)
	assert.Equal(t, shared.RoleUser, resp.User.Role)

	user, err := svc.userRepo.GetUserByEmail("seller@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)

	stats, err := svc.userRepo.GetOrCreateStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	svc := newAuthService(store)

	_, err := svc.Register(dto.RegisterRequest{Email: "seller@example.com", Name: "A", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(dto.RegisterRequest{Email: "seller@example.com", Name: "B", Password: "password456"})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, "Email already registered", appErr.Message)
}

func TestLogin(t *testing.T) {
	store := newTestStore(t)
	svc := newAuthService(store)

	_, err := svc.Register(dto.RegisterRequest{Email: "seller@example.com", Name: "Seller", Password: "password123"})
	require.NoError(t, err)

	resp, err := svc.Login(dto.LoginRequest{Email: "seller@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(dto.LoginRequest{Email: "seller@example.com", Password: "wrong"})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.StatusCode)
	assert.Equal(t, "Invalid credentials", appErr.Message)

	_, err = svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	require.Error(t, err)
	appErr, ok = shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.StatusCode)
}

func TestRefresh(t *testing.T) {
	store := newTestStore(t)
	svc := newAuthService(store)

	reg, err := svc.Register(dto.RegisterRequest{Email: "seller@example.com", Name: "Seller", Password: "password123"})
	require.NoError(t, err)

	pair, err := svc.Refresh(reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = svc.Refresh("garbage")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.StatusCode)
}
