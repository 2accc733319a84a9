package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolSettingsWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   PoolSettings
		want PoolSettings
	}{
		{
			name: "all defaults",
			in:   PoolSettings{},
			want: PoolSettings{MaxOpenConns: 25, MaxIdleConns: 25, ConnMaxLifetime: 5 * time.Minute, PingTimeout: 5 * time.Second},
		},
		{
			name: "explicit values kept",
			in:   PoolSettings{MaxOpenConns: 50, MaxIdleConns: 10, ConnMaxLifetime: time.Hour, PingTimeout: time.Second},
			want: PoolSettings{MaxOpenConns: 50, MaxIdleConns: 10, ConnMaxLifetime: time.Hour, PingTimeout: time.Second},
		},
		{
			name: "idle capped by open",
			in:   PoolSettings{MaxOpenConns: 4, MaxIdleConns: 16},
			want: PoolSettings{MaxOpenConns: 4, MaxIdleConns: 4, ConnMaxLifetime: 5 * time.Minute, PingTimeout: 5 * time.Second},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.withDefaults())
		})
	}
}
