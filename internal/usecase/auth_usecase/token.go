package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// HS256で担当者トークンを作る
type HS256Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewHS256Issuer(secret string, ttl time.Duration) *HS256Issuer {
	return &HS256Issuer{secret: []byte(secret), ttl: ttl}
}

func (i *HS256Issuer) Issue(operatorID int64, code string, now time.Time) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}

	exp := now.Add(i.ttl)
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(operatorID, 10),
		"code": code,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
