package auth

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles used by the Casbin RBAC policy.
const (
	RoleAdministrator = "Administrator"
	RoleUser          = "User"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"first_name" json:"first_name"`
	LastName     string             `bson:"last_name" json:"last_name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	JobTitle     string             `bson:"job_title,omitempty" json:"job_title,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Role         string             `bson:"role" json:"role"`
	Verified     bool               `bson:"verified" json:"verified"`
	ResetToken   string             `bson:"reset_token,omitempty" json:"-"`
}

// FullName is used in notification messages ("<name> signed in.").
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	JobTitle  string `json:"job_title"`
	Phone     string `json:"phone"`
}

type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type UpdateMemberRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	JobTitle  string `json:"job_title"`
	Phone     string `json:"phone"`
	Image     string `json:"image"`
	Role      string `json:"role"`
}
