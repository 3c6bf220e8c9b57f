package jwt

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"receipt-insights-backend/internal/utils"
)

type (
	JWTService interface {
		GenerateToken(subject string) string
		ValidateToken(token string) (*jwt.Token, error)
		GetSubjectByToken(token string) (string, error)
	}

	jwtClaim struct {
		Subject string `json:"subject"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func getSecretKey() string {
	return utils.GetConfig("JWT_SECRET")
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "RECEIPT-INSIGHTS",
	}
}

// GenerateToken mints a bearer token for the receipts read API. Tokens are
// issued out-of-band against the shared secret; there is no user store.
func (j *jwtService) GenerateToken(subject string) string {
	claims := jwtClaim{
		subject,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute * 120)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtClaim{}, j.parseToken)
}

func (j *jwtService) GetSubjectByToken(token string) (string, error) {
	t_Token, err := j.ValidateToken(token)
	if err != nil {
		return "", err
	}

	claims, ok := t_Token.Claims.(*jwtClaim)
	if !ok || !t_Token.Valid {
		return "", errors.New("token invalid")
	}
	return claims.Subject, nil
}
