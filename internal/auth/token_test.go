package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphwell-io/hubsync/internal/auth"
)

func TestStaticTokenManager_GetToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr error
	}{
		{
			name:  "configured token",
			token: "pat-na1-test-token",
			want:  "pat-na1-test-token",
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: auth.ErrNoTokenAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			manager := auth.NewStaticTokenManager(tt.token)

			token, err := manager.GetToken(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestStaticTokenManager_RefreshToken(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("pat-na1-test-token")

	err := manager.RefreshToken(context.Background())
	require.ErrorIs(t, err, auth.ErrStaticTokenCannotRefresh)

	// The stored token survives the failed refresh.
	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pat-na1-test-token", token)
}

func TestStaticTokenManager_SetToken(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("old-token")

	manager.SetToken("new-token", time.Now().Add(time.Hour))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
}

func TestStaticTokenManager_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("initial-token")

	var waitGroup sync.WaitGroup

	for range 10 {
		waitGroup.Add(2)

		go func() {
			defer waitGroup.Done()

			manager.SetToken("rotated-token", time.Time{})
		}()

		go func() {
			defer waitGroup.Done()

			_, _ = manager.GetToken(context.Background())
		}()
	}

	waitGroup.Wait()

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rotated-token", token)
}
