package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// AccessTokenValidity is how long an access token stays usable.
	AccessTokenValidity  = time.Hour * 24
	RefreshTokenValidity = time.Hour * 24 * 7

	resetTokenValidity        = time.Minute * 30
	verificationTokenValidity = time.Hour * 48
)

// GenerateTokenPair returns a signed access and refresh token for the user.
func GenerateTokenPair(email string, secret string, isAdmin bool, userID uint, role string) (string, string, error) {
	accessClaims := jwt.MapClaims{
		"email":    email,
		"id":       userID,
		"is_admin": isAdmin,
		"role":     role,
		"type":     "access",
		"exp":      time.Now().Add(AccessTokenValidity).Unix(),
	}
	accessToken, err := signClaims(accessClaims, secret)
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"email": email,
		"id":    userID,
		"type":  "refresh",
		"exp":   time.Now().Add(RefreshTokenValidity).Unix(),
	}
	refreshToken, err := signClaims(refreshClaims, secret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAndGetClaims parses tokenString and returns its claims if the
// signature and expiry are valid.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GeneratePasswordResetToken returns a short-lived token embedded in the
// reset link mailed to the user.
func GeneratePasswordResetToken(userID uint, secret string) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"type": "password_reset",
		"exp":  time.Now().Add(resetTokenValidity).Unix(),
	}
	return signClaims(claims, secret)
}

// ValidatePasswordResetToken returns the user ID carried by a reset token.
func ValidatePasswordResetToken(tokenString string, secret string) (uint, error) {
	claims, err := ValidateAndGetClaims(tokenString, secret)
	if err != nil {
		return 0, err
	}
	if claims["type"] != "password_reset" {
		return 0, fmt.Errorf("not a password reset token")
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid user id in token")
	}
	return uint(id), nil
}

// GenerateVerificationToken returns the token embedded in the email
// verification link.
func GenerateVerificationToken(email string, secret string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"type":  "email_verification",
		"exp":   time.Now().Add(verificationTokenValidity).Unix(),
	}
	return signClaims(claims, secret)
}

// ValidateVerificationToken returns the email a verification token was
// issued for.
func ValidateVerificationToken(tokenString string, secret string) (string, error) {
	claims, err := ValidateAndGetClaims(tokenString, secret)
	if err != nil {
		return "", err
	}
	if claims["type"] != "email_verification" {
		return "", fmt.Errorf("not a verification token")
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", fmt.Errorf("invalid email in token")
	}
	return email, nil
}

func signClaims(claims jwt.MapClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
