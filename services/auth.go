package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	context.DefaultService

	jwtSvc *JWTService
	db     DbService

	userRepo *repositories.UserRepository
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)

	if s, ok := svc.Service(SQLITE_SVC).(*SqliteService); ok && s != nil {
		svc.db = s
	} else {
		svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	}
	svc.userRepo = repositories.NewUserRepository(svc.db.Db())
	return nil
}

// ==================== REGISTRATION / LOGIN ====================

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := svc.userRepo.GetUserByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.db.HandleError(err)
	}
	if existing != nil {
		return nil, shared.NewBadRequestError(nil, "Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	user, err := svc.userRepo.CreateUser(&model.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashed),
		Role:     shared.RoleUser,
	})
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	if _, err := svc.userRepo.GetOrCreateStats(user.ID); err != nil {
		return nil, svc.db.HandleError(err)
	}

	log.WithField("user_id", user.ID).Info("User registered")
	return svc.tokenResponse(user)
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := svc.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
		}
		return nil, svc.db.HandleError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
	}

	if err := svc.userRepo.UpdateLastLogin(user.ID); err != nil {
		log.WithError(err).Warn("Failed to record last login")
	}

	return svc.tokenResponse(user)
}

func (svc *AuthService) Refresh(refreshToken string) (*dto.TokenPair, error) {
	userID, role, err := svc.jwtSvc.VerifyJWTToken(refreshToken)
	if err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid refresh token")
	}
	return svc.jwtSvc.GenerateTokenPair(userID, role)
}

func (svc *AuthService) GetProfile(userID string) (*dto.UserInfo, error) {
	user, err := svc.userRepo.GetUser(userID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	info := userInfo(user)
	return &info, nil
}

func (svc *AuthService) tokenResponse(user *model.User) (*dto.AuthResponse, error) {
	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue tokens")
	}

	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         userInfo(user),
	}, nil
}

func userInfo(user *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// ==================== MIDDLEWARE ====================

// RequiredAuth validates the bearer token and stores the caller's identity
// in request locals.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get("Authorization"))
		if err != nil {
			return shared.NewUnauthorizedError(err, "Not authorized")
		}

		userID, role, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.NewUnauthorizedError(err, "Not authorized")
		}

		c.Locals(shared.UserID, userID)
		c.Locals(shared.UserRole, role)
		return c.Next()
	}
}

// RequireRole guards a route group behind a role claim. Use after RequiredAuth.
func (svc *AuthService) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, _ := c.Locals(shared.UserRole).(string)
		if current != role {
			return shared.NewForbiddenError(nil, "Insufficient permissions")
		}
		return c.Next()
	}
}
