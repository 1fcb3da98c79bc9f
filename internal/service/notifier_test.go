package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"crypto-pulse/config"
	"crypto-pulse/internal/dto"
	"crypto-pulse/internal/model"
	"crypto-pulse/pkg/logger"
	"crypto-pulse/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func testNotifierConfig() *config.Config {
	return &config.Config{
		Notifier: config.Notifier{
			CheckInterval:  time.Second,
			ChangeWindow:   5 * time.Minute,
			Cooldown:       5 * time.Minute,
			MaxConcurrency: 2,
		},
	}
}

type fakeSubscriptionRepo struct {
	mu       sync.Mutex
	checks   []model.SubscriptionCheck
	notified map[uint]time.Time
	listErr  error
}

func newFakeSubscriptionRepo(checks ...model.SubscriptionCheck) *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		checks:   checks,
		notified: make(map[uint]time.Time),
	}
}

func (f *fakeSubscriptionRepo) Upsert(ctx context.Context, sub *model.Subscription, opts ...utils.DBOption) error {
	return nil
}

func (f *fakeSubscriptionRepo) Delete(ctx context.Context, userID uint, asset string, direction model.Direction, opts ...utils.DBOption) (int64, error) {
	return 0, nil
}

func (f *fakeSubscriptionRepo) ListChecks(ctx context.Context, opts ...utils.DBOption) ([]model.SubscriptionCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.SubscriptionCheck, len(f.checks))
	copy(out, f.checks)
	return out, nil
}

func (f *fakeSubscriptionRepo) ListForUser(ctx context.Context, userID uint, opts ...utils.DBOption) ([]model.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionRepo) UpdateLastNotified(ctx context.Context, subscriptionID uint, notifiedAt time.Time, opts ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified[subscriptionID] = notifiedAt
	for i := range f.checks {
		if f.checks[i].SubscriptionID == subscriptionID {
			t := notifiedAt
			f.checks[i].LastNotified = &t
		}
	}
	return nil
}

type fakeMarketDataRepo struct {
	samples map[string][]dto.PriceSample
}

func (f *fakeMarketDataRepo) History(ctx context.Context, param dto.GetHistoryParam) []dto.PriceSample {
	return f.samples[param.Asset]
}

type fakeSender struct {
	mu       sync.Mutex
	messages []string
	chatIDs  []int64
	sendErr  error
}

func (f *fakeSender) SendMessageUser(ctx context.Context, message string, chatID int64, opts ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.messages = append(f.messages, message)
	f.chatIDs = append(f.chatIDs, chatID)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

// priceSeries builds a two-point series inside the change window whose percent
// change is exactly changePct.
func priceSeries(changePct float64) []dto.PriceSample {
	now := time.Now()
	return []dto.PriceSample{
		{Timestamp: now.Add(-2 * time.Minute), Price: 100},
		{Timestamp: now, Price: 100 * (1 + changePct/100)},
	}
}

func TestNotifierRunCycle_BreachDirections(t *testing.T) {
	tests := []struct {
		name       string
		direction  model.Direction
		threshold  float64
		changePct  float64
		wantNotify bool
	}{
		{
			name:       "increase breach at threshold",
			direction:  model.DirectionIncrease,
			threshold:  5,
			changePct:  5,
			wantNotify: true,
		},
		{
			name:       "increase below threshold",
			direction:  model.DirectionIncrease,
			threshold:  5,
			changePct:  4.9,
			wantNotify: false,
		},
		{
			name:       "decrease breach",
			direction:  model.DirectionDecrease,
			threshold:  3,
			changePct:  -3.5,
			wantNotify: true,
		},
		{
			name:       "decrease direction ignores rally",
			direction:  model.DirectionDecrease,
			threshold:  3,
			changePct:  10,
			wantNotify: false,
		},
		{
			name:       "increase direction ignores drop",
			direction:  model.DirectionIncrease,
			threshold:  3,
			changePct:  -10,
			wantNotify: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subRepo := newFakeSubscriptionRepo(model.SubscriptionCheck{
				SubscriptionID: 1,
				UserID:         1,
				TelegramID:     42,
				Asset:          dto.AssetBitcoin,
				Threshold:      tt.threshold,
				Direction:      tt.direction,
			})
			marketData := &fakeMarketDataRepo{samples: map[string][]dto.PriceSample{
				dto.AssetBitcoin: priceSeries(tt.changePct),
			}}
			sender := &fakeSender{}

			svc := NewNotifierService(testNotifierConfig(), newTestLogger(t), subRepo, marketData, sender)
			require.NoError(t, svc.RunCycle(context.Background()))

			if tt.wantNotify {
				assert.Equal(t, 1, sender.count())
				assert.Equal(t, int64(42), sender.chatIDs[0])
				assert.Contains(t, sender.messages[0], "Bitcoin")
				_, updated := subRepo.notified[1]
				assert.True(t, updated, "last_notified should be stamped after a send")
			} else {
				assert.Equal(t, 0, sender.count())
				assert.Empty(t, subRepo.notified)
			}
		})
	}
}

func TestNotifierRunCycle_CooldownSuppressesRepeat(t *testing.T) {
	subRepo := newFakeSubscriptionRepo(model.SubscriptionCheck{
		SubscriptionID: 7,
		TelegramID:     99,
		Asset:          dto.AssetEthereum,
		Threshold:      2,
		Direction:      model.DirectionIncrease,
	})
	marketData := &fakeMarketDataRepo{samples: map[string][]dto.PriceSample{
		dto.AssetEthereum: priceSeries(8),
	}}
	sender := &fakeSender{}

	cfg := testNotifierConfig()
	svc := NewNotifierService(cfg, newTestLogger(t), subRepo, marketData, sender).(*notifierService)

	current := time.Now()
	svc.now = func() time.Time { return current }

	require.NoError(t, svc.RunCycle(context.Background()))
	require.NoError(t, svc.RunCycle(context.Background()))
	assert.Equal(t, 1, sender.count(), "second cycle inside the cooldown must not re-notify")

	current = current.Add(cfg.Notifier.Cooldown + time.Minute)
	require.NoError(t, svc.RunCycle(context.Background()))
	assert.Equal(t, 2, sender.count(), "elapsed cooldown re-arms the alert")
}

func TestNotifierRunCycle_EmptyHistorySkipsAsset(t *testing.T) {
	subRepo := newFakeSubscriptionRepo(
		model.SubscriptionCheck{
			SubscriptionID: 1,
			TelegramID:     1,
			Asset:          dto.AssetBitcoin,
			Threshold:      1,
			Direction:      model.DirectionIncrease,
		},
		model.SubscriptionCheck{
			SubscriptionID: 2,
			TelegramID:     2,
			Asset:          dto.AssetSolana,
			Threshold:      1,
			Direction:      model.DirectionIncrease,
		},
	)
	// bitcoin history is unavailable, solana's breaches.
	marketData := &fakeMarketDataRepo{samples: map[string][]dto.PriceSample{
		dto.AssetSolana: priceSeries(5),
	}}
	sender := &fakeSender{}

	svc := NewNotifierService(testNotifierConfig(), newTestLogger(t), subRepo, marketData, sender)
	require.NoError(t, svc.RunCycle(context.Background()))

	assert.Equal(t, 1, sender.count())
	assert.Equal(t, int64(2), sender.chatIDs[0])
}

func TestNotifierRunCycle_SendFailureLeavesCooldownUnset(t *testing.T) {
	subRepo := newFakeSubscriptionRepo(model.SubscriptionCheck{
		SubscriptionID: 3,
		TelegramID:     5,
		Asset:          dto.AssetBitcoin,
		Threshold:      1,
		Direction:      model.DirectionIncrease,
	})
	marketData := &fakeMarketDataRepo{samples: map[string][]dto.PriceSample{
		dto.AssetBitcoin: priceSeries(5),
	}}
	sender := &fakeSender{sendErr: context.DeadlineExceeded}

	svc := NewNotifierService(testNotifierConfig(), newTestLogger(t), subRepo, marketData, sender)
	require.NoError(t, svc.RunCycle(context.Background()))

	assert.Empty(t, subRepo.notified, "a failed send must not consume the cooldown")
}

func TestNotifierRun_StopsOnCancel(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	marketData := &fakeMarketDataRepo{}
	sender := &fakeSender{}

	cfg := testNotifierConfig()
	cfg.Notifier.CheckInterval = 10 * time.Millisecond

	svc := NewNotifierService(cfg, newTestLogger(t), subRepo, marketData, sender)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notifier loop did not stop after cancel")
	}
	assert.Equal(t, 0, sender.count())
}
