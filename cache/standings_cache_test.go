package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*StandingsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStandingsCache(client, ttl), mr
}

func sampleTable() []models.Standing {
	leader := uuid.New()
	return []models.Standing{
		{Rank: 1, TeamID: leader, Team: &models.Team{ID: leader, Name: "Lions"}, MatchesPlayed: 1, Wins: 1, GoalsFor: 3, GoalDifference: 3, Points: 3},
		{Rank: 2, TeamID: uuid.New(), MatchesPlayed: 1, Losses: 1, GoalsAgainst: 3, GoalDifference: -3},
	}
}

func TestStandingsCache_Miss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	table, ok, err := c.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, table)
}

func TestStandingsCache_HitKeepsTeam(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	id := uuid.New()
	want := sampleTable()

	stored, err := c.SetIfVersion(ctx, id, 0, want)
	require.NoError(t, err)
	require.True(t, stored)
	assert.True(t, mr.Exists(standingsKey(id)))
	assert.Equal(t, time.Minute, mr.TTL(standingsKey(id)))

	got, ok, err := c.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
	require.NotNil(t, got[0].Team)
	assert.Equal(t, "Lions", got[0].Team.Name)
	assert.Nil(t, got[1].Team)
}

func TestStandingsCache_Expires(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()
	id := uuid.New()

	_, err := c.SetIfVersion(ctx, id, 0, sampleTable())
	require.NoError(t, err)

	mr.FastForward(31 * time.Second)

	_, ok, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStandingsCache_InvalidateBumpsVersion(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	id := uuid.New()

	v, err := c.Version(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = c.SetIfVersion(ctx, id, v, sampleTable())
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx, id))
	assert.False(t, mr.Exists(standingsKey(id)))

	v, err = c.Version(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, ok, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStandingsCache_StaleVersionIsRejected(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	id := uuid.New()

	before, err := c.Version(ctx, id)
	require.NoError(t, err)

	// мутация завершилась, пока читатель сворачивал матчи
	require.NoError(t, c.Invalidate(ctx, id))

	stored, err := c.SetIfVersion(ctx, id, before, sampleTable())
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists(standingsKey(id)))

	current, err := c.Version(ctx, id)
	require.NoError(t, err)
	stored, err = c.SetIfVersion(ctx, id, current, sampleTable())
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestStandingsCache_DefaultTTL(t *testing.T) {
	c, _ := newTestCache(t, 0)
	assert.Equal(t, DefaultStandingsTTL, c.ttl)
}

func TestStandingsCache_CorruptEntryIsAnError(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	id := uuid.New()
	require.NoError(t, mr.Set(standingsKey(id), "{not json"))

	_, _, err := c.Get(context.Background(), id)
	assert.Error(t, err)
}
