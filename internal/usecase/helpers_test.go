package usecase

import (
	"time"

	"github.com/runoshun/tally/internal/domain"
	"github.com/runoshun/tally/internal/testutil"
	"github.com/runoshun/tally/internal/timer"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newClock() *testutil.MockClock {
	return &testutil.MockClock{NowTime: testNow}
}

func seedTasks() []*domain.Task {
	return []*domain.Task{
		{ID: "11111111-aaaa-4000-8000-000000000001", Name: "Write report", Date: "2024-03-01", Category: "work", TimeSpent: 125, Done: true},
		{ID: "22222222-bbbb-4000-8000-000000000002", Name: "Buy milk", Date: "2024-03-01", Category: "home", TimeSpent: 30},
		{ID: "33333333-cccc-4000-8000-000000000003", Name: "Plan trip", Date: "2024-04-02", Category: "home", TimeSpent: 600, Done: true},
	}
}

type timerFixture struct {
	repo   *testutil.MockTaskRepository
	ticker *testutil.ManualTicker
	timers *timer.Registry
}

func newTimerFixture(tasks ...*domain.Task) *timerFixture {
	repo := testutil.NewMockTaskRepository(tasks...)
	ticker := testutil.NewManualTicker()
	reg := timer.NewRegistry(ticker, NewSetTimeSpent(repo), domain.NopLogger{}, domain.FlushEveryTick)
	return &timerFixture{repo: repo, ticker: ticker, timers: reg}
}
