package domain

import "github.com/golang-jwt/jwt/v5"

type Claims struct {
	AdminEmail string `json:"admin_email"`
	jwt.RegisteredClaims
}
