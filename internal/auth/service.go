package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"ProjectPortal/internal/config"
	"ProjectPortal/internal/notification"
)

type AuthService struct {
	EmailService *config.EmailService
}

func NewAuthService(emailService *config.EmailService) *AuthService {
	return &AuthService{EmailService: emailService}
}

// UserService owns registration, sign-in and member management. Successful
// writes create notifications as a side effect; a failed notification is
// logged and never fails the primary operation.
type UserService struct {
	repo          *UserRepository
	authService   *AuthService
	notifications *notification.Service
	logger        *zap.Logger
}

func NewUserService(repo *UserRepository, authService *AuthService, notifications *notification.Service, logger *zap.Logger) *UserService {
	return &UserService{
		repo:          repo,
		authService:   authService,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *UserService) RegisterUser(ctx context.Context, req RegisterRequest) error {
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return errors.New("first name, last name, email and password are required")
	}

	existingUser, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if existingUser != nil {
		return errors.New("email already registered")
	}

	hashPassword, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &User{
		ID:           primitive.NewObjectID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hashPassword,
		JobTitle:     req.JobTitle,
		Phone:        req.Phone,
		Role:         RoleUser,
		Verified:     false,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}

	token, _ := GenerateJWT(user, time.Hour*24)
	if err := s.authService.SendVerificationEmail(user.Email, token); err != nil {
		return err
	}

	s.notify(ctx, notification.CreateInput{
		TypeID:  notification.TypeUser,
		Message: fmt.Sprintf("%s joined the team.", user.FullName()),
		Image:   user.Image,
	}, user.ID.Hex())

	return nil
}

func (s *UserService) AuthenticateUser(ctx context.Context, cred Credential) (string, error) {
	user, err := s.repo.FindByEmail(ctx, cred.Email)
	if err != nil || user == nil || !CheckPasswordHash(cred.Password, user.PasswordHash) {
		return "", errors.New("invalid credentials")
	}

	if !user.Verified {
		return "", errors.New("email not verified")
	}

	token, err := GenerateJWT(user, time.Hour)
	if err != nil {
		return "", errors.New("token not generated")
	}

	s.notify(ctx, notification.CreateInput{
		TypeID:  notification.TypeUser,
		Message: fmt.Sprintf("%s signed in.", user.FullName()),
		Image:   user.Image,
	}, user.ID.Hex())

	return token, nil
}

func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := ValidateJWT(token)
	if err != nil {
		return errors.New("invalid token")
	}
	user, err := s.repo.FindByEmail(ctx, claims.Email)
	if err != nil || user == nil {
		return errors.New("user not found")
	}
	user.Verified = true
	return s.repo.UpdateUser(ctx, user)
}

func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return errors.New("user not found")
	}
	resetToken, _ := GenerateJWT(user, time.Minute*15)
	user.ResetToken = resetToken
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}

	if err := s.authService.SendResetPasswordEmail(email, resetToken); err != nil {
		s.logger.Error("Reset password email failed", zap.Error(err))
		return errors.New("failed to send reset password email")
	}
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := ValidateJWT(token)
	if err != nil {
		return errors.New("invalid token")
	}

	user, err := s.repo.FindByEmail(ctx, claims.Email)
	if err != nil || user == nil {
		return errors.New("user not found")
	}
	hashPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashPassword
	user.ResetToken = ""
	return s.repo.UpdateUser(ctx, user)
}

// FindUser loads a user profile by id.
func (s *UserService) FindUser(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// ListMembers returns every registered user for the members page.
func (s *UserService) ListMembers(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateMember updates a member's profile fields and notifies the feed.
func (s *UserService) UpdateMember(ctx context.Context, req UpdateMemberRequest, actorID string) error {
	user, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.JobTitle = req.JobTitle
	user.Phone = req.Phone
	if req.Image != "" {
		user.Image = req.Image
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.notify(ctx, notification.CreateInput{
		TypeID:  notification.TypeUser,
		Message: fmt.Sprintf("%s's profile was updated.", user.FullName()),
		Image:   user.Image,
	}, actorID)

	return nil
}

func (s *UserService) DeleteMember(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *UserService) notify(ctx context.Context, in notification.CreateInput, actorID string) {
	if _, err := s.notifications.Create(ctx, in, actorID); err != nil {
		s.logger.Warn("Notification create failed", zap.String("message", in.Message), zap.Error(err))
	}
}

func (a *AuthService) SendVerificationEmail(email, token string) error {
	subject := "Email Verification"
	body := fmt.Sprintf("Click the link to verify your email: https://yourdomain.com/verify-email?token=%s", token)

	return a.EmailService.SendEmail(email, subject, body)
}

func (a *AuthService) SendResetPasswordEmail(email, token string) error {
	subject := "Password Reset"
	body := fmt.Sprintf("Click the link to reset your password: https://yourdomain.com/reset-password?token=%s", token)

	return a.EmailService.SendEmail(email, subject, body)
}
