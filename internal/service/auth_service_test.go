package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cardplanner/pkg/api"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	reg, err := env.anon.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "Alice@Example.com",
		DisplayName: "Alice",
		Password:    "password123",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Msg.Token)
	assert.Equal(t, "alice@example.com", reg.Msg.User.Email)

	login, err := env.anon.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}))
	require.NoError(t, err)
	assert.Equal(t, reg.Msg.User.ID, login.Msg.User.ID)

	me, err := env.clients(login.Msg.Token).auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "Alice", me.Msg.User.DisplayName)
}

func TestAuthService_Errors(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	env.register(t, "taken@example.com")

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{
			name: "duplicate email",
			call: func() error {
				_, err := env.anon.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "TAKEN@example.com", DisplayName: "x", Password: "password123",
				}))
				return err
			},
			want: connect.CodeAlreadyExists,
		},
		{
			name: "weak password",
			call: func() error {
				_, err := env.anon.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "new@example.com", DisplayName: "x", Password: "short",
				}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "invalid email",
			call: func() error {
				_, err := env.anon.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "not-an-email", DisplayName: "x", Password: "password123",
				}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "wrong password",
			call: func() error {
				_, err := env.anon.Login(ctx, connect.NewRequest(&api.LoginRequest{
					Email: "taken@example.com", Password: "wrong-password",
				}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "unknown email",
			call: func() error {
				_, err := env.anon.Login(ctx, connect.NewRequest(&api.LoginRequest{
					Email: "nobody@example.com", Password: "password123",
				}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "current user without token",
			call: func() error {
				_, err := env.anon.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "garbage token",
			call: func() error {
				_, err := env.clients("garbage").stores.ListStores(ctx, connect.NewRequest(&api.ListStoresRequest{}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, tt.want, tt.call())
		})
	}
}
