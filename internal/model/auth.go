package model

import "github.com/golang-jwt/jwt/v5"

// User is a registered player account. The username doubles as the
// Mongo document id, which gives uniqueness for free.
type User struct {
	Username     string `json:"username" bson:"_id"`
	PasswordHash []byte `json:"-" bson:"passwordHash"`
}

// UserClaims are JWT claims for player authentication
type UserClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for account registration
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}
