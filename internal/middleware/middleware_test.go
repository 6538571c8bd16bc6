package middleware

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"

	"github.com/dnnywang/shareable-split-saga/internal/auth"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"bearer  abc", "abc", nil},
		{"", "", auth.ErrMissingToken},
		{"Basic dXNlcjpwYXNz", "", auth.ErrInvalidToken},
		{"Bearer", "", auth.ErrInvalidToken},
		{"Bearer ", "", auth.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := bearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithClaims(t *testing.T) {
	ctx := WithClaims(context.Background(), &auth.Claims{
		UserID:   "user-1",
		Email:    "alice@example.com",
		Username: "alice",
	})

	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.Equal(t, "alice@example.com", GetEmail(ctx))
	assert.Equal(t, "alice", GetUsername(ctx))
	assert.Empty(t, GetUserID(context.Background()))
}

func TestIsServerFault(t *testing.T) {
	assert.True(t, isServerFault(connect.CodeInternal))
	assert.True(t, isServerFault(connect.CodeUnavailable))
	assert.False(t, isServerFault(connect.CodeInvalidArgument))
	assert.False(t, isServerFault(connect.CodeNotFound))
}
