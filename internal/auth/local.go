package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
)

type LocalAuthProvider struct {
	Token  string
	logger internal.Logger
}

func NewLocalAuthProvider(token string, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{Token: token, logger: logger}
}

func (a *LocalAuthProvider) ValidateTokenLocal(token string) error {
	if subtle.ConstantTimeCompare([]byte(token), []byte(a.Token)) == 1 {
		return nil
	}
	a.logger.Warnf("invalid token")
	return errors.New("invalid token")
}

func (a *LocalAuthProvider) ValidateTokenRemote(ctx context.Context, token string) error {
	a.logger.Warnf("ValidateTokenRemote not implemented in LocalAuthProvider")
	return errors.New("not implemented in LocalAuthProvider")
}

var _ Provider = (*LocalAuthProvider)(nil)
