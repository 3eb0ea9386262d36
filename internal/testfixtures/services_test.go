package testfixtures

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/trainee-timetable/internal/persistence/memory"
	"github.com/example/trainee-timetable/internal/scheduler"
)

func TestServiceFactoryNewServices(t *testing.T) {
	factory := NewServiceFactory()
	store := memory.New()
	services := factory.NewServices(store)
	ctx := context.Background()

	trainee, err := services.Trainees.CreateTrainee(ctx, scheduler.TraineeInput{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", trainee.ID)
	assert.Equal(t, 1, store.Saves())

	booking, err := services.Bookings.CreateBooking(ctx, scheduler.BookingInput{
		TraineeID: trainee.ID, Date: factory.Clock.Today(), Hours: 4, Status: scheduler.StatusPresent,
	})
	require.NoError(t, err)
	assert.Equal(t, scheduler.StatusPresent, booking.Status)
}

func TestServiceFactoryLoadsSnapshot(t *testing.T) {
	trainee := NewTrainee()
	past := NewBooking(trainee.ID, "2026-03-10", 8)
	store := memory.NewWithSnapshot(NewSnapshot().Trainees(trainee).Bookings(past).Build())

	services := NewServiceFactory(WithMaxWeeklyHours(10)).NewServices(store)
	promoted, err := services.Workspace.Load(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)

	week, err := services.Trainees.WeeklyStats(context.Background(), trainee.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, 8, week.Present)
	assert.Equal(t, 2, week.Remaining)
}
