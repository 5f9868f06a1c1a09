package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockKV struct {
	mock.Mock
}

func (m *MockKV) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKV) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type rate struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

func (r rate) EntityID() string { return r.Code }

func TestLoad_FallbackWhenMissing(t *testing.T) {
	a := NewAdapter(NewMemoryKV(), zap.NewNop())
	got := Load(context.Background(), a, KeyCurrencyRates, []rate{{Code: "USD", Rate: 1}})
	assert.Equal(t, []rate{{Code: "USD", Rate: 1}}, got)
}

func TestLoad_FallbackWhenMalformed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyRooms, []byte("{not json")))

	a := NewAdapter(kv, zap.NewNop())
	got := Load(ctx, a, KeyRooms, []rate{{Code: "EUR"}})
	assert.Equal(t, []rate{{Code: "EUR"}}, got)
}

func TestLoad_StoredValueWins(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryKV(), zap.NewNop())
	a.Save(ctx, KeyCurrencyRates, []rate{{Code: "THB", Rate: 0.028}})

	got := Load(ctx, a, KeyCurrencyRates, []rate{{Code: "USD", Rate: 1}})
	assert.Equal(t, []rate{{Code: "THB", Rate: 0.028}}, got)
}

func TestLoad_BackendErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := &MockKV{}
	kv.On("Get", ctx, KeyRooms).Return(nil, errors.New("connection refused")).Once()

	a := NewAdapter(kv, zap.NewNop())
	got := Load(ctx, a, KeyRooms, 7)
	assert.Equal(t, 7, got)
	kv.AssertExpectations(t)
}

func TestSave_SwallowsBackendErrors(t *testing.T) {
	ctx := context.Background()
	kv := &MockKV{}
	kv.On("Set", ctx, KeyRooms, mock.Anything).Return(errors.New("quota exceeded")).Once()

	a := NewAdapter(kv, zap.NewNop())
	assert.NotPanics(t, func() { a.Save(ctx, KeyRooms, []rate{{Code: "USD"}}) })
	kv.AssertExpectations(t)
}

func TestSave_UnencodableValueIsDropped(t *testing.T) {
	kv := NewMemoryKV()
	a := NewAdapter(kv, zap.NewNop())
	a.Save(context.Background(), KeyRooms, make(chan int))
	assert.Empty(t, kv.Keys())
}

func TestMergeMissing(t *testing.T) {
	stored := []rate{{Code: "USD", Rate: 1.1}}
	seed := []rate{{Code: "USD", Rate: 1}, {Code: "EUR", Rate: 0.9}}

	merged, added := MergeMissing(stored, seed)
	assert.Equal(t, 1, added)
	assert.Equal(t, []rate{{Code: "USD", Rate: 1.1}, {Code: "EUR", Rate: 0.9}}, merged)
	assert.Len(t, stored, 1)
}

func TestMigrate_RunsPendingInOrderAndRecordsVersion(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryKV(), zap.NewNop())

	var ran []int
	step := func(v int) Migration {
		return Migration{Version: v, Name: "step", Apply: func(context.Context, *Adapter) error {
			ran = append(ran, v)
			return nil
		}}
	}

	version, err := a.Migrate(ctx, []Migration{step(2), step(1)})
	require.NoError(t, err)
	assert.Equal(t, 2, version)
	assert.Equal(t, []int{1, 2}, ran)
	assert.Equal(t, 2, a.SchemaVersion(ctx))

	version, err = a.Migrate(ctx, []Migration{step(1), step(2), step(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, version)
	assert.Equal(t, []int{1, 2, 3}, ran)
}

func TestMigrate_StopsOnError(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryKV(), zap.NewNop())

	version, err := a.Migrate(ctx, []Migration{
		{Version: 1, Name: "ok", Apply: func(context.Context, *Adapter) error { return nil }},
		{Version: 2, Name: "broken", Apply: func(context.Context, *Adapter) error { return errors.New("boom") }},
	})
	assert.Error(t, err)
	assert.Equal(t, 1, version)
	assert.Equal(t, 1, a.SchemaVersion(ctx))
}

func TestMergeSeed(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryKV(), zap.NewNop())
	seed := []rate{{Code: "USD", Rate: 1}, {Code: "EUR", Rate: 0.9}, {Code: "JPY", Rate: 150}}

	require.NoError(t, MergeSeed(KeyCurrencyRates, seed)(ctx, a))
	assert.Equal(t, seed, Load[[]rate](ctx, a, KeyCurrencyRates, nil))

	a.Save(ctx, KeyCurrencyRates, []rate{{Code: "EUR", Rate: 0.95}})
	require.NoError(t, MergeSeed(KeyCurrencyRates, seed)(ctx, a))
	assert.Equal(t, []rate{{Code: "EUR", Rate: 0.95}, {Code: "USD", Rate: 1}, {Code: "JPY", Rate: 150}},
		Load[[]rate](ctx, a, KeyCurrencyRates, nil))
}
