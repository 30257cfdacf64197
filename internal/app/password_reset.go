package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type ResetPasswordInput struct {
	Token           string
	Password        string
	ConfirmPassword string
}

// ForgotPassword issues a reset token for the account behind email, keeps it
// on the user row and hands it to the notifier.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return ErrInvalidEmail
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, "forgot:"+strings.ToLower(email))
		if err != nil {
			return fmt.Errorf("check reset throttle failed: %w", err)
		}
		if !allowed {
			return ErrTooManyRequests
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotFound
	}

	token, err := s.tokens.Issue(strconv.FormatUint(uint64(user.ID), 10))
	if err != nil {
		return fmt.Errorf("issue reset token failed: %w", err)
	}

	stored, err := s.users.SetResetToken(ctx, user.ID, token)
	if err != nil {
		return err
	}
	if !stored {
		return ErrEmailNotFound
	}

	if err := s.notifier.SendResetLink(ctx, user.Email, token); err != nil {
		return fmt.Errorf("send reset link failed: %w", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if !validPassword(input.Password, input.ConfirmPassword) {
		return ErrBadPasswordFormat
	}

	subject, err := s.tokens.Verify(input.Token)
	if err != nil {
		return ErrInvalidResetToken
	}
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil || id == 0 {
		return ErrInvalidResetToken
	}

	user, err := s.users.GetByID(ctx, uint(id))
	if err != nil {
		return err
	}
	if user == nil || user.ResetToken == nil || *user.ResetToken != input.Token {
		return ErrInvalidResetToken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return err
	}

	consumed, err := s.users.ConsumeResetToken(ctx, user.ID, input.Token, hash)
	if err != nil {
		return err
	}
	if !consumed {
		// Redeemed concurrently between the read above and this write.
		return ErrInvalidResetToken
	}
	return nil
}
