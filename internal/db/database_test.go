package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), "", DefaultPool())
	require.Error(t, err)
}

func TestPingAndClose(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Ping(context.Background(), gdb))
	require.NoError(t, Close(gdb))
	require.Error(t, Ping(context.Background(), gdb))
}
