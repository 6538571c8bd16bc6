package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/dnnywang/shareable-split-saga/internal/auth"
	"github.com/dnnywang/shareable-split-saga/internal/calculator"
	"github.com/dnnywang/shareable-split-saga/internal/storage"
)

var (
	errAuthRequired = errors.New("authentication required")
	errMissingID    = errors.New("id is required")
	errMissingName  = errors.New("name is required")
	errMissingCode  = errors.New("join code is required")
)

var invalidArgument = []error{
	errMissingID,
	errMissingName,
	errMissingCode,
	calculator.ErrMissingTitle,
	calculator.ErrInvalidAmount,
	calculator.ErrNoPayerSelected,
	calculator.ErrNoDebtorSelected,
	calculator.ErrPayerSumMismatch,
	calculator.ErrSplitSumMismatch,
	calculator.ErrReferentialIntegrity,
	calculator.ErrPercentSumMismatch,
	calculator.ErrNoParticipants,
	auth.ErrWeakPassword,
	auth.ErrInvalidEmail,
	auth.ErrMissingUsername,
}

var unauthenticated = []error{
	errAuthRequired,
	auth.ErrInvalidCredentials,
	auth.ErrMissingToken,
	auth.ErrInvalidToken,
	auth.ErrExpiredToken,
}

// connectError maps domain and storage errors onto Connect status codes.
func connectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case isAny(err, invalidArgument):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case isAny(err, unauthenticated):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrEmailExists), errors.Is(err, storage.ErrAlreadyExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
