package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecodrive/internal/domain"
	"github.com/pkordes/ecodrive/internal/service"
)

func newDriverService(st *fakeStore) (*service.DriverService, *service.Session) {
	s := service.OpenSession(context.Background(), st)
	return service.NewDriverService(s), s
}

// ---- Add -------------------------------------------------------------------

func TestDriverService_Add(t *testing.T) {
	st := newFakeStore()
	svc, _ := newDriverService(st)

	got, err := svc.Add(context.Background(), "  Filho  ", 14)

	require.NoError(t, err)
	assert.Equal(t, "Filho", got.Name)
	assert.NotEmpty(t, got.ID)
	assert.Len(t, st.drivers, 3)
	assert.Equal(t, got, st.drivers[2])
	assert.Equal(t, got, svc.List(context.Background())[2])
}

func TestDriverService_Add_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		driverName  string
		consumption float64
	}{
		{"blank name", "   ", 10},
		{"zero consumption", "Filho", 0},
		{"negative consumption", "Filho", -1},
		{"NaN consumption", "Filho", math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newFakeStore()
			svc, _ := newDriverService(st)

			_, err := svc.Add(context.Background(), tt.driverName, tt.consumption)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, st.writes)
		})
	}
}

func TestDriverService_Add_WriteFailure(t *testing.T) {
	st := newFakeStore()
	svc, _ := newDriverService(st)
	st.failWrites = true

	_, err := svc.Add(context.Background(), "Filho", 14)

	assert.ErrorIs(t, err, domain.ErrStorageWrite)
	assert.Len(t, svc.List(context.Background()), 2)
}

// ---- Remove ----------------------------------------------------------------

func TestDriverService_Remove(t *testing.T) {
	st := newFakeStore()
	svc, _ := newDriverService(st)

	require.NoError(t, svc.Remove(context.Background(), "1"))

	got := svc.List(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, got, st.drivers)
}

func TestDriverService_Remove_UnknownIDIsNoOp(t *testing.T) {
	st := newFakeStore()
	svc, _ := newDriverService(st)

	require.NoError(t, svc.Remove(context.Background(), "nope"))

	assert.Len(t, svc.List(context.Background()), 2)
	assert.Zero(t, st.writes)
}

// Trips keep their driver snapshot after the driver is removed.
func TestDriverService_Remove_LeavesTripsAlone(t *testing.T) {
	st := newFakeStore()
	st.trips = []domain.Trip{tripAt("t1", day(2025, 6, 1), "Casa", "Escola")}
	svc, session := newDriverService(st)

	require.NoError(t, svc.Remove(context.Background(), "1"))

	trips := session.Trips()
	require.Len(t, trips, 1)
	assert.Equal(t, "1", trips[0].DriverID)
	assert.Equal(t, "Pai", trips[0].DriverName)
}

// ---- Replace ---------------------------------------------------------------

func TestDriverService_Replace(t *testing.T) {
	st := newFakeStore()
	svc, _ := newDriverService(st)

	got, err := svc.Replace(context.Background(), []domain.Driver{
		{ID: "2", Name: "Mãe", AvgConsumption: 11},
		{Name: " Avó ", AvgConsumption: 9},
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 11.0, got[0].AvgConsumption)
	assert.Equal(t, "Avó", got[1].Name)
	assert.NotEmpty(t, got[1].ID)
	assert.Equal(t, got, st.drivers)
}

func TestDriverService_Replace_Empty(t *testing.T) {
	st := newFakeStore()
	svc, _ := newDriverService(st)

	got, err := svc.Replace(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, st.writes)
}

func TestDriverService_Replace_Invalid(t *testing.T) {
	st := newFakeStore()
	svc, _ := newDriverService(st)

	_, err := svc.Replace(context.Background(), []domain.Driver{
		{ID: "1", Name: "Pai", AvgConsumption: 12},
		{ID: "1", Name: "Pai de novo", AvgConsumption: 12},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Replace(context.Background(), []domain.Driver{{ID: "1", Name: "Pai"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Zero(t, st.writes)
	assert.Len(t, svc.List(context.Background()), 2)
}
