package screens

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/backend"
	"app/logger"
)

func TestUploadRejectsNonCSVLocally(t *testing.T) {
	fake := &fakeBackend{}
	screen := NewUploadScreen(fake, logger.NewNop())

	err := screen.Upload(context.Background(), "sales.xlsx", 4, strings.NewReader("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".csv")

	// Malformed input never reaches the transport.
	assert.Empty(t, fake.callList())
	assert.Equal(t, PhaseIdle, screen.Snapshot().Phase)
}

func TestUploadRejectsEmptyFileLocally(t *testing.T) {
	fake := &fakeBackend{}
	screen := NewUploadScreen(fake, logger.NewNop())

	err := screen.Upload(context.Background(), "sales.csv", 0, strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")

	assert.Empty(t, fake.callList())
	assert.Equal(t, PhaseIdle, screen.Snapshot().Phase)
}

func TestUploadInitFailureSkipsUpload(t *testing.T) {
	fake := &fakeBackend{
		initDBFn: func(ctx context.Context) error {
			return errors.New("init-db exploded")
		},
	}
	screen := NewUploadScreen(fake, logger.NewNop())

	err := screen.Upload(context.Background(), "sales.csv", 9, strings.NewReader("store,sku"))
	require.NoError(t, err)

	assert.Equal(t, 1, fake.callCount("InitDB"))
	assert.Equal(t, 0, fake.callCount("UploadSales"))

	snap := screen.Snapshot()
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Equal(t, "init-db exploded", snap.Error)
}

func TestUploadRunsInitThenUpload(t *testing.T) {
	storeID := "S1"
	fake := &fakeBackend{
		uploadFn: func(ctx context.Context, filename string, _ io.Reader) (backend.UploadResult, error) {
			return backend.UploadResult{Success: true, RowsProcessed: 42, StoreID: &storeID}, nil
		},
	}
	screen := NewUploadScreen(fake, logger.NewNop())

	err := screen.Upload(context.Background(), "Sales.CSV", 9, strings.NewReader("store,sku"))
	require.NoError(t, err)

	require.Equal(t, []string{"InitDB", "UploadSales"}, fake.callList())

	snap := screen.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 42, snap.Result.RowsProcessed)
	assert.Equal(t, "Sales.CSV", snap.Filename)
}
