package aggregator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fujical/internal/models"
)

type fakeClient struct {
	mu    sync.Mutex
	calls []string

	monthFn   func(year, month int) (*models.CalendarResponse, error)
	dayFn     func(date string) ([]models.FujiEvent, error)
	weatherFn func(date string) (*models.WeatherInfo, error)
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeClient) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) GetMonthlyCalendar(ctx context.Context, year, month int) (*models.CalendarResponse, error) {
	f.record("month")
	if f.monthFn != nil {
		return f.monthFn(year, month)
	}
	return &models.CalendarResponse{Year: year, Month: month}, nil
}

func (f *fakeClient) GetDayEvents(ctx context.Context, date string) ([]models.FujiEvent, error) {
	f.record("day")
	if f.dayFn != nil {
		return f.dayFn(date)
	}
	return nil, nil
}

func (f *fakeClient) GetWeather(ctx context.Context, date string) (*models.WeatherInfo, error) {
	f.record("weather")
	if f.weatherFn != nil {
		return f.weatherFn(date)
	}
	return &models.WeatherInfo{Condition: "clear"}, nil
}

// fixedNow pins "today" to noon JST on 2025-06-15.
func fixedNow() time.Time {
	jst := time.FixedZone("JST", 9*60*60)
	return time.Date(2025, 6, 15, 12, 0, 0, 0, jst)
}

func dateAt(daysFromNow int) time.Time {
	return fixedNow().AddDate(0, 0, daysFromNow)
}

func TestLoadMonth_Success(t *testing.T) {
	fc := &fakeClient{
		monthFn: func(year, month int) (*models.CalendarResponse, error) {
			return &models.CalendarResponse{
				Year: year, Month: month,
				Events: []models.FujiEvent{{ID: "a"}, {ID: "b"}, {ID: "c"}},
			}, nil
		},
	}
	a := New(fc, nil, WithClock(fixedNow))

	a.LoadMonth(context.Background(), 2025, 6)

	st := a.Snapshot()
	if st.Loading {
		t.Fatal("loading should be false after settle")
	}
	if st.Error != "" {
		t.Fatalf("unexpected error: %q", st.Error)
	}
	if st.CalendarData == nil || len(st.CalendarData.Events) != 3 {
		t.Fatalf("unexpected calendar: %+v", st.CalendarData)
	}
}

func TestLoadMonth_FailureKeepsPriorCalendar(t *testing.T) {
	calls := 0
	fc := &fakeClient{
		monthFn: func(year, month int) (*models.CalendarResponse, error) {
			calls++
			if calls == 1 {
				return &models.CalendarResponse{Year: year, Month: month,
					Events: []models.FujiEvent{{ID: "a"}}}, nil
			}
			return nil, errors.New("timeout")
		},
	}
	a := New(fc, nil, WithClock(fixedNow))

	a.LoadMonth(context.Background(), 2025, 5)
	a.LoadMonth(context.Background(), 2025, 6)

	st := a.Snapshot()
	if st.Loading {
		t.Fatal("loading should be false after failure")
	}
	want := "カレンダーデータの取得に失敗しました: timeout"
	if st.Error != want {
		t.Fatalf("error: got %q, want %q", st.Error, want)
	}
	if st.CalendarData == nil || len(st.CalendarData.Events) != 1 {
		t.Fatalf("prior calendar should be retained: %+v", st.CalendarData)
	}
}

func TestSelectDate_InWindowFetchesWeather(t *testing.T) {
	fc := &fakeClient{
		dayFn: func(date string) ([]models.FujiEvent, error) {
			return []models.FujiEvent{{ID: "d1", Date: date}}, nil
		},
		weatherFn: func(date string) (*models.WeatherInfo, error) {
			return &models.WeatherInfo{Condition: "cloudy"}, nil
		},
	}
	a := New(fc, nil, WithClock(fixedNow))

	d := dateAt(3)
	a.SelectDate(context.Background(), &d)

	st := a.Snapshot()
	if len(st.DayEvents) != 1 {
		t.Fatalf("unexpected day events: %+v", st.DayEvents)
	}
	if st.Weather == nil || st.Weather.Condition != "cloudy" {
		t.Fatalf("expected weather to be set: %+v", st.Weather)
	}
}

func TestSelectDate_WeatherWindowBoundaries(t *testing.T) {
	cases := []struct {
		name        string
		daysFromNow int
		wantFetch   bool
	}{
		{"today", 0, true},
		{"window edge", 7, true},
		{"yesterday", -1, false},
		{"past window", 8, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fc := &fakeClient{}
			a := New(fc, nil, WithClock(fixedNow))

			d := dateAt(tc.daysFromNow)
			a.SelectDate(context.Background(), &d)

			fetched := false
			for _, call := range fc.callLog() {
				if call == "weather" {
					fetched = true
				}
			}
			if fetched != tc.wantFetch {
				t.Fatalf("weather fetch=%v, want %v (calls=%v)", fetched, tc.wantFetch, fc.callLog())
			}
			if !tc.wantFetch {
				if st := a.Snapshot(); st.Weather != nil {
					t.Fatalf("weather should be absent out of window: %+v", st.Weather)
				}
			}
		})
	}
}

func TestSelectDate_DayFailureClearsDayState(t *testing.T) {
	fc := &fakeClient{
		dayFn: func(date string) ([]models.FujiEvent, error) {
			return []models.FujiEvent{{ID: "d1"}}, nil
		},
	}
	a := New(fc, nil, WithClock(fixedNow))

	// First a successful day load so there is state to clear.
	d := dateAt(1)
	a.SelectDate(context.Background(), &d)
	if st := a.Snapshot(); len(st.DayEvents) != 1 || st.Weather == nil {
		t.Fatalf("precondition failed: %+v", st)
	}

	fc.dayFn = func(date string) ([]models.FujiEvent, error) {
		return nil, errors.New("boom")
	}
	d2 := dateAt(2)
	a.SelectDate(context.Background(), &d2)

	st := a.Snapshot()
	if len(st.DayEvents) != 0 || st.Weather != nil {
		t.Fatalf("day state should be cleared: %+v", st)
	}
	if st.Error != "" {
		t.Fatalf("day failure must not surface in error: %q", st.Error)
	}
}

func TestSelectDate_WeatherFailureClearsOnlyWeather(t *testing.T) {
	fc := &fakeClient{
		dayFn: func(date string) ([]models.FujiEvent, error) {
			return []models.FujiEvent{{ID: "d1"}}, nil
		},
		weatherFn: func(date string) (*models.WeatherInfo, error) {
			return nil, errors.New("upstream down")
		},
	}
	a := New(fc, nil, WithClock(fixedNow))

	d := dateAt(1)
	a.SelectDate(context.Background(), &d)

	st := a.Snapshot()
	if len(st.DayEvents) != 1 {
		t.Fatalf("day events should survive weather failure: %+v", st.DayEvents)
	}
	if st.Weather != nil {
		t.Fatalf("weather should be absent: %+v", st.Weather)
	}
	if st.Error != "" {
		t.Fatalf("weather failure must not surface in error: %q", st.Error)
	}
}

func TestSelectDate_NilClearsWithoutNetwork(t *testing.T) {
	fc := &fakeClient{
		dayFn: func(date string) ([]models.FujiEvent, error) {
			return []models.FujiEvent{{ID: "d1"}}, nil
		},
	}
	a := New(fc, nil, WithClock(fixedNow))

	d := dateAt(1)
	a.SelectDate(context.Background(), &d)
	before := len(fc.callLog())

	a.SelectDate(context.Background(), nil)

	if got := len(fc.callLog()); got != before {
		t.Fatalf("no network call expected on nil date: %d calls before, %d after", before, got)
	}
	st := a.Snapshot()
	if len(st.DayEvents) != 0 || st.Weather != nil {
		t.Fatalf("day state should be cleared: %+v", st)
	}
}

func TestRefresh_MonthThenDay(t *testing.T) {
	fc := &fakeClient{}
	a := New(fc, nil, WithClock(fixedNow))

	a.LoadMonth(context.Background(), 2025, 6)
	d := dateAt(1)
	a.SelectDate(context.Background(), &d)

	fc.mu.Lock()
	fc.calls = nil
	fc.mu.Unlock()

	a.Refresh(context.Background())

	calls := fc.callLog()
	if len(calls) < 2 || calls[0] != "month" || calls[1] != "day" {
		t.Fatalf("expected month before day, got %v", calls)
	}
}

func TestRefresh_NoSelectedDateSkipsDay(t *testing.T) {
	fc := &fakeClient{}
	a := New(fc, nil, WithClock(fixedNow))

	a.LoadMonth(context.Background(), 2025, 6)
	fc.mu.Lock()
	fc.calls = nil
	fc.mu.Unlock()

	a.Refresh(context.Background())

	for _, call := range fc.callLog() {
		if call == "day" {
			t.Fatalf("day fetch not expected: %v", fc.callLog())
		}
	}
}

func TestLoadMonth_StaleCompletionDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fc := &fakeClient{
		monthFn: func(year, month int) (*models.CalendarResponse, error) {
			if month == 5 {
				close(started)
				<-release
				return &models.CalendarResponse{Year: year, Month: month,
					Events: []models.FujiEvent{{ID: "stale"}}}, nil
			}
			return &models.CalendarResponse{Year: year, Month: month,
				Events: []models.FujiEvent{{ID: "fresh"}}}, nil
		},
	}
	a := New(fc, nil, WithClock(fixedNow))

	done := make(chan struct{})
	go func() {
		a.LoadMonth(context.Background(), 2025, 5)
		close(done)
	}()
	<-started

	// Supersede the in-flight fetch.
	a.LoadMonth(context.Background(), 2025, 6)
	close(release)
	<-done

	st := a.Snapshot()
	if st.CalendarData == nil || st.CalendarData.Month != 6 {
		t.Fatalf("stale month overwrote fresh one: %+v", st.CalendarData)
	}
	if st.CalendarData.Events[0].ID != "fresh" {
		t.Fatalf("stale events visible: %+v", st.CalendarData.Events)
	}
	if st.Loading {
		t.Fatal("loading should be false")
	}
}

func TestSelectDate_StaleDayDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fc := &fakeClient{
		dayFn: func(date string) ([]models.FujiEvent, error) {
			if date == "2025-06-16" {
				close(started)
				<-release
				return []models.FujiEvent{{ID: "stale"}}, nil
			}
			return []models.FujiEvent{{ID: "fresh"}}, nil
		},
		weatherFn: func(date string) (*models.WeatherInfo, error) {
			return nil, errors.New("skip")
		},
	}
	a := New(fc, nil, WithClock(fixedNow))

	d1 := dateAt(1)
	done := make(chan struct{})
	go func() {
		a.SelectDate(context.Background(), &d1)
		close(done)
	}()
	<-started

	d2 := dateAt(2)
	a.SelectDate(context.Background(), &d2)
	close(release)
	<-done

	st := a.Snapshot()
	if len(st.DayEvents) != 1 || st.DayEvents[0].ID != "fresh" {
		t.Fatalf("stale day events visible: %+v", st.DayEvents)
	}
}

func TestDaysBetween(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, jst)

	cases := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same day late evening", time.Date(2025, 6, 15, 0, 5, 0, 0, jst), 0},
		{"next morning", time.Date(2025, 6, 16, 0, 5, 0, 0, jst), 1},
		{"a week out", time.Date(2025, 6, 22, 12, 0, 0, 0, jst), 7},
		{"previous day", time.Date(2025, 6, 14, 23, 59, 0, 0, jst), -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := daysBetween(now, tc.to); got != tc.want {
				t.Fatalf("daysBetween=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestDaysBetween_DSTTransition(t *testing.T) {
	// A spring-forward (2026-03-08 in America/New_York) makes the span eight
	// midnights but only 191 wall-clock hours; the count must still be 8.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			"eight days across spring forward",
			time.Date(2026, 3, 7, 12, 0, 0, 0, ny),
			time.Date(2026, 3, 15, 12, 0, 0, 0, ny),
			8,
		},
		{
			"seven days across spring forward",
			time.Date(2026, 3, 7, 12, 0, 0, 0, ny),
			time.Date(2026, 3, 14, 12, 0, 0, 0, ny),
			7,
		},
		{
			"eight days back across spring forward",
			time.Date(2026, 3, 15, 12, 0, 0, 0, ny),
			time.Date(2026, 3, 7, 12, 0, 0, 0, ny),
			-8,
		},
		{
			"eight days across fall back",
			time.Date(2026, 10, 28, 12, 0, 0, 0, ny),
			time.Date(2026, 11, 5, 12, 0, 0, 0, ny),
			8,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := daysBetween(tc.from, tc.to); got != tc.want {
				t.Fatalf("daysBetween=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestSelectDate_WindowExcludesEighthDayAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := func() time.Time {
		return time.Date(2026, 3, 7, 12, 0, 0, 0, ny)
	}

	fc := &fakeClient{}
	a := New(fc, nil, WithClock(now))

	// 2026-03-15 is eight calendar days out; the 03-08 spring forward makes
	// the wall-clock gap fall just short of 8x24h.
	d := time.Date(2026, 3, 15, 12, 0, 0, 0, ny)
	a.SelectDate(context.Background(), &d)

	for _, call := range fc.callLog() {
		if call == "weather" {
			t.Fatalf("weather fetched for a date 8 calendar days out: calls=%v", fc.callLog())
		}
	}
	if st := a.Snapshot(); st.Weather != nil {
		t.Fatalf("weather should be absent out of window: %+v", st.Weather)
	}
}
