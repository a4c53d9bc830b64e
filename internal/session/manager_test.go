package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	v1 "github.com/aevon-lab/salary-crossfilter/internal/api/v1"
	"github.com/aevon-lab/salary-crossfilter/internal/core/panel"
	"github.com/aevon-lab/salary-crossfilter/internal/dashboard"
	storagemocks "github.com/aevon-lab/salary-crossfilter/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testRecords() []*v1.Record {
	return []*v1.Record{
		{Rank: "Prof", Discipline: "A", YrsSincePhD: 20, YrsService: 18, Sex: "Female", Salary: 120000},
		{Rank: "AsstProf", Discipline: "B", YrsSincePhD: 3, YrsService: 2, Sex: "Male", Salary: 78000},
		{Rank: "Prof", Discipline: "B", YrsSincePhD: 30, YrsService: 25, Sex: "Male", Salary: 150000},
	}
}

func testRepository(t *testing.T) *panel.FileSystemRepository {
	t.Helper()
	repo, err := panel.NewDefaultRepository()
	require.NoError(t, err)
	return repo
}

func testPanels(t *testing.T) []panel.Panel {
	t.Helper()
	return testRepository(t).Panels()
}

type failingPanels struct{}

func (failingPanels) List(context.Context) ([]panel.Panel, error) {
	return nil, errors.New("panel dir gone")
}

func filteredCount(t *testing.T, m *Manager, id string) int {
	t.Helper()
	var n int
	require.NoError(t, m.With(id, func(d *dashboard.Dashboard) error {
		n = d.Snapshot().Filtered
		return nil
	}))
	return n
}

func TestLoad(t *testing.T) {
	t.Run("loads records from store", func(t *testing.T) {
		store := storagemocks.NewRecordStore(t)
		store.EXPECT().LoadRecords(mock.Anything).Return(testRecords(), nil).Once()

		m, err := Load(context.Background(), store, testRepository(t), 4)
		require.NoError(t, err)
		require.Equal(t, 3, m.Records())
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		store := storagemocks.NewRecordStore(t)
		store.EXPECT().LoadRecords(mock.Anything).Return(nil, errors.New("db down")).Once()

		_, err := Load(context.Background(), store, testRepository(t), 4)
		require.ErrorContains(t, err, "loading records: db down")
	})

	t.Run("panel listing error is wrapped", func(t *testing.T) {
		store := storagemocks.NewRecordStore(t)

		_, err := Load(context.Background(), store, failingPanels{}, 4)
		require.ErrorContains(t, err, "listing panels: panel dir gone")
	})

	t.Run("empty dataset still serves zeros", func(t *testing.T) {
		store := storagemocks.NewRecordStore(t)
		store.EXPECT().LoadRecords(mock.Anything).Return([]*v1.Record{}, nil).Once()

		m, err := Load(context.Background(), store, testRepository(t), 4)
		require.NoError(t, err)

		id, err := m.Create(context.Background())
		require.NoError(t, err)
		require.NoError(t, m.With(id, func(d *dashboard.Dashboard) error {
			pv, err := d.Panel("percent_women_professors")
			require.NoError(t, err)
			require.Equal(t, "0.00%", pv.Data.(dashboard.RatioView).Percent)
			return nil
		}))
	})
}

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager(testRecords(), testPanels(t), 0)
	require.ErrorContains(t, err, "capacity must be positive")

	_, err = NewManager(testRecords(), []panel.Panel{{Name: "x", Kind: "median"}}, 1)
	require.ErrorContains(t, err, "building dashboard")
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m, err := NewManager(testRecords(), testPanels(t), 4)
	require.NoError(t, err)

	a, err := m.Create(context.Background())
	require.NoError(t, err)
	b, err := m.Create(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	require.NoError(t, m.With(a, func(d *dashboard.Dashboard) error {
		return d.Select(v1.FieldSex, "Female")
	}))

	require.Equal(t, 1, filteredCount(t, m, a))
	require.Equal(t, 3, filteredCount(t, m, b))
}

func TestManager_DeleteAndEviction(t *testing.T) {
	m, err := NewManager(testRecords(), testPanels(t), 2)
	require.NoError(t, err)

	first, err := m.Create(context.Background())
	require.NoError(t, err)
	second, err := m.Create(context.Background())
	require.NoError(t, err)
	_, err = m.Create(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, m.Len())
	require.ErrorIs(t, m.With(first, func(*dashboard.Dashboard) error { return nil }), ErrNotFound)

	require.NoError(t, m.Delete(second))
	require.ErrorIs(t, m.Delete(second), ErrNotFound)
	require.ErrorIs(t, m.With(second, func(*dashboard.Dashboard) error { return nil }), ErrNotFound)

	m.Close()
	require.Equal(t, 0, m.Len())
}

func TestManager_WithPropagatesCallbackError(t *testing.T) {
	m, err := NewManager(testRecords(), testPanels(t), 1)
	require.NoError(t, err)

	id, err := m.Create(context.Background())
	require.NoError(t, err)

	err = m.With(id, func(d *dashboard.Dashboard) error {
		return d.Select("age", "40")
	})
	require.ErrorIs(t, err, dashboard.ErrUnknownDimension)
}

func TestManager_CreateHonorsCancelledContext(t *testing.T) {
	m, err := NewManager(testRecords(), testPanels(t), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = m.Create(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestManager_ConcurrentFilters(t *testing.T) {
	m, err := NewManager(testRecords(), testPanels(t), 1)
	require.NoError(t, err)

	id, err := m.Create(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sex := v1.SexMale
			if i%2 == 0 {
				sex = v1.SexFemale
			}
			_ = m.With(id, func(d *dashboard.Dashboard) error {
				if err := d.Select(v1.FieldSex, sex); err != nil {
					return err
				}
				_ = d.Snapshot()
				d.ClearAll()
				return nil
			})
		}(i)
	}
	wg.Wait()

	require.Equal(t, 3, filteredCount(t, m, id))
}
