package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laprovidence/livestock/internal/domain/models"
	"github.com/laprovidence/livestock/internal/repository/memory"
	"github.com/laprovidence/livestock/internal/service/ledger"
)

func TestAppend_AssignsIDAndTimestamps(t *testing.T) {
	store := memory.NewStore()
	ldg := ledger.New(store, nil)

	event, err := ldg.Append(context.Background(), models.HistoryEvent{
		EventType:   models.EventFeeding,
		Title:       "Feed delivered",
		Description: "two bags",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Date.IsZero())
	assert.False(t, event.CreatedAt.IsZero())
}

func TestList_OrdersByDateDescendingWithInsertionTiebreak(t *testing.T) {
	store := memory.NewStore()
	ldg := ledger.New(store, nil)
	ctx := context.Background()

	day1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	_, err := ldg.Append(ctx, models.HistoryEvent{EventType: models.EventOther, Title: "first on day2", Date: day2})
	require.NoError(t, err)
	_, err = ldg.Append(ctx, models.HistoryEvent{EventType: models.EventOther, Title: "on day1", Date: day1})
	require.NoError(t, err)
	_, err = ldg.Append(ctx, models.HistoryEvent{EventType: models.EventOther, Title: "second on day2", Date: day2})
	require.NoError(t, err)

	events, err := ldg.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "first on day2", events[0].Title)
	assert.Equal(t, "second on day2", events[1].Title)
	assert.Equal(t, "on day1", events[2].Title)
}

func TestList_UnknownAnimalFails(t *testing.T) {
	ldg := ledger.New(memory.NewStore(), nil)

	_, err := ldg.List(context.Background(), "nope")

	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestList_EmptyHerdFeed(t *testing.T) {
	ldg := ledger.New(memory.NewStore(), nil)

	events, err := ldg.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, events)
}
