// Package aggregator keeps a month/day calendar view consistent with the
// latest successful fetches from the calendar server. It owns the composite
// view-state; presentation layers only read snapshots of it.
package aggregator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fujical/internal/logger"
	"fujical/internal/models"
)

// APIClient is the server surface the aggregator consumes. *apiclient.Client
// satisfies it.
type APIClient interface {
	GetMonthlyCalendar(ctx context.Context, year, month int) (*models.CalendarResponse, error)
	GetDayEvents(ctx context.Context, date string) ([]models.FujiEvent, error)
	GetWeather(ctx context.Context, date string) (*models.WeatherInfo, error)
}

// ViewState is the renderable composite the aggregator maintains. Error holds
// a user-facing message and is set only by month-fetch failures; day and
// weather failures degrade their own fields silently.
type ViewState struct {
	CalendarData *models.CalendarResponse
	DayEvents    []models.FujiEvent
	Weather      *models.WeatherInfo
	Loading      bool
	Error        string
}

// monthErrorFormat embeds the underlying failure text in the message shown
// to the viewer.
const monthErrorFormat = "カレンダーデータの取得に失敗しました: %s"

// weatherWindowDays is the forecast horizon: weather is fetched only for
// dates 0 to 7 whole calendar days ahead of the current day, inclusive.
const weatherWindowDays = 7

const dateLayout = "2006-01-02"

// Aggregator sequences month, day and weather fetches for one calendar view.
// Safe for concurrent use; fetches run outside the lock, and per-kind
// sequence numbers make superseded completions no-ops so rapid input changes
// cannot write stale data.
type Aggregator struct {
	client APIClient
	log    *logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	state    ViewState
	year     int
	month    int
	selected *time.Time
	monthSeq uint64
	daySeq   uint64
}

// Option configures an Aggregator at construction time.
type Option func(*Aggregator)

// WithClock substitutes the time source, pinning "today" in tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// New builds an Aggregator over the given client. A nil log disables
// diagnostics.
func New(client APIClient, log *logger.Logger, opts ...Option) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	a := &Aggregator{
		client: client,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Snapshot returns a copy of the current view-state. The events slice is
// copied so callers cannot observe later mutations.
func (a *Aggregator) Snapshot() ViewState {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := a.state
	if st.DayEvents != nil {
		st.DayEvents = append([]models.FujiEvent(nil), st.DayEvents...)
	}
	return st
}

// LoadMonth fetches the full month of events. It always leaves Loading false
// on exit for the newest invocation; an invocation superseded by a later
// LoadMonth discards its result entirely. On failure the previous calendar
// is retained and Error carries the cause.
func (a *Aggregator) LoadMonth(ctx context.Context, year, month int) {
	a.mu.Lock()
	a.year = year
	a.month = month
	a.monthSeq++
	seq := a.monthSeq
	a.state.Loading = true
	a.state.Error = ""
	a.mu.Unlock()

	resp, err := a.client.GetMonthlyCalendar(ctx, year, month)

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.monthSeq {
		// A newer LoadMonth owns the state now.
		return
	}
	a.state.Loading = false
	if err != nil {
		a.state.Error = fmt.Sprintf(monthErrorFormat, err)
		a.log.Infow("month_fetch_failed", "year", year, "month", month, "err", err)
		return
	}
	a.state.CalendarData = resp
}

// SelectDate changes the selected day. A nil date clears day-scoped state
// without a network call; otherwise the day's events (and, when the date is
// within the forecast window, its weather) are fetched.
func (a *Aggregator) SelectDate(ctx context.Context, date *time.Time) {
	if date == nil {
		a.mu.Lock()
		a.selected = nil
		a.daySeq++
		a.state.DayEvents = nil
		a.state.Weather = nil
		a.mu.Unlock()
		return
	}
	d := *date
	a.mu.Lock()
	a.selected = &d
	a.mu.Unlock()
	a.loadDay(ctx, d)
}

// Refresh re-runs the month fetch for the current (year, month), then the day
// fetch for the selected date if one is set. The month reload completes
// before the day reload begins.
func (a *Aggregator) Refresh(ctx context.Context) {
	a.mu.Lock()
	year, month := a.year, a.month
	selected := a.selected
	a.mu.Unlock()

	a.LoadMonth(ctx, year, month)
	if selected != nil {
		a.loadDay(ctx, *selected)
	}
}

func (a *Aggregator) loadDay(ctx context.Context, date time.Time) {
	a.mu.Lock()
	a.daySeq++
	seq := a.daySeq
	now := a.now()
	a.mu.Unlock()

	dateStr := date.Format(dateLayout)
	events, err := a.client.GetDayEvents(ctx, dateStr)

	a.mu.Lock()
	if seq != a.daySeq {
		a.mu.Unlock()
		return
	}
	if err != nil {
		// Day failures never reach the shared error field.
		a.state.DayEvents = nil
		a.state.Weather = nil
		a.mu.Unlock()
		a.log.Infow("day_fetch_failed", "date", dateStr, "err", err)
		return
	}
	a.state.DayEvents = events

	diff := daysBetween(now, date)
	if diff < 0 || diff > weatherWindowDays {
		a.state.Weather = nil
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	info, werr := a.client.GetWeather(ctx, dateStr)

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.daySeq {
		return
	}
	if werr != nil {
		a.state.Weather = nil
		a.log.Infow("weather_fetch_failed", "date", dateStr, "err", werr)
		return
	}
	a.state.Weather = info
}

// daysBetween counts whole calendar days from `from` to `to`. Both are read
// as calendar dates in from's location so the forecast window tracks the
// viewer's local day boundary, then re-anchored at UTC before subtracting so
// DST transitions cannot shrink or stretch the count.
func daysBetween(from, to time.Time) int {
	a := utcDate(from)
	b := utcDate(to.In(from.Location()))
	return int(b.Sub(a).Hours() / 24)
}

func utcDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
