package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tennis-rally-api/internal/metrics"
	"tennis-rally-api/internal/repository"
	"tennis-rally-api/internal/response"
)

func TestRallyService_StartRallyWithSelfIsNoOp(t *testing.T) {
	rallies := &MockRallyRepository{
		StartFunc: func(ctx context.Context, followerID, followedID uint) (bool, error) {
			t.Fatal("Start must not be called for self rally")
			return false, nil
		},
	}
	svc := NewRallyService(rallies, &MockUserRepository{}, nil, zap.NewNop())

	got, err := svc.StartRally(context.Background(), 5, 5)
	require.NoError(t, err)
	assert.False(t, got.Changed)
	assert.False(t, got.IsRallying)
}

func TestRallyService_StartRally(t *testing.T) {
	tests := []struct {
		name        string
		created     bool
		startErr    error
		wantChanged bool
		wantErrCode string
		wantMetric  float64
	}{
		{name: "new rally", created: true, wantChanged: true, wantMetric: 1},
		{name: "already rallying", created: false, wantChanged: false},
		{name: "unknown player", startErr: gorm.ErrRecordNotFound, wantErrCode: response.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rallies := &MockRallyRepository{
				StartFunc: func(ctx context.Context, followerID, followedID uint) (bool, error) {
					return tt.created, tt.startErr
				},
			}
			m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
			svc := NewRallyService(rallies, &MockUserRepository{}, m, zap.NewNop())

			got, err := svc.StartRally(context.Background(), 1, 2)
			if tt.wantErrCode != "" {
				assert.Equal(t, tt.wantErrCode, errorCode(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, got.IsRallying)
			assert.Equal(t, tt.wantChanged, got.Changed)
			assert.Equal(t, uint(2), got.UserID)
			assert.Equal(t, tt.wantMetric, testutil.ToFloat64(m.RallyStartedTotal))
		})
	}
}

func TestRallyService_AgainstDatabase(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRallyService(repository.NewRallyRepository(db), repository.NewUserRepository(db), nil, zap.NewNop())
	ctx := context.Background()

	anna := seedUser(t, db, "Anna", "anna@example.com")
	bruno := seedUser(t, db, "Bruno", "bruno@example.com")
	carla := seedUser(t, db, "Carla", "carla@example.com")

	first, err := svc.StartRally(ctx, anna.ID, bruno.ID)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	again, err := svc.StartRally(ctx, anna.ID, bruno.ID)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.True(t, again.IsRallying)

	_, err = svc.StartRally(ctx, carla.ID, bruno.ID)
	require.NoError(t, err)

	_, err = svc.StartRally(ctx, anna.ID, 9999)
	assert.Equal(t, response.ErrCodeNotFound, errorCode(err))

	followers, err := svc.Followers(ctx, bruno.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, anna.ID, followers[0].ID)
	assert.Equal(t, carla.ID, followers[1].ID)

	following, err := svc.Following(ctx, anna.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "Bruno", following[0].Name)

	// Rallying is one-directional
	reverse, err := svc.IsRallying(ctx, bruno.ID, anna.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	stopped, err := svc.StopRally(ctx, anna.ID, bruno.ID)
	require.NoError(t, err)
	assert.True(t, stopped.Changed)
	assert.False(t, stopped.IsRallying)

	stoppedAgain, err := svc.StopRally(ctx, anna.ID, bruno.ID)
	require.NoError(t, err)
	assert.False(t, stoppedAgain.Changed)

	_, err = svc.Followers(ctx, 9999)
	assert.Equal(t, response.ErrCodeNotFound, errorCode(err))
	_, err = svc.Following(ctx, 9999)
	assert.Equal(t, response.ErrCodeNotFound, errorCode(err))
}
