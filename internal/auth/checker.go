package auth

import "context"

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

type Checker interface {
	UserID(ctx context.Context, token string) (int, bool, error)
}

// LoginTestChecker is an in-memory Checker for handler and middleware tests.
type LoginTestChecker struct {
	Sessions map[string]int
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		Sessions: map[string]int{},
	}
}

func (c *LoginTestChecker) UserID(_ context.Context, token string) (int, bool, error) {
	userID, ok := c.Sessions[token]
	return userID, ok, nil
}
