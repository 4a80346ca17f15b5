package models

import "time"

// User represents a registered account
type User struct {
	UserID       string    `json:"user_id" dynamodbav:"user_id"`   // Primary Key
	Username     string    `json:"username" dynamodbav:"username"` // Unique username
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`   // bcrypt hash (never in JSON)
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}

// LoginRequest represents login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents registration request payload
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginData is the payload returned on successful login
type LoginData struct {
	Token     string `json:"token"`
	User      string `json:"user"`
	ExpiresIn int    `json:"expires_in"` // seconds
}
