package services

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"flight-insights/internal/clients"
	"flight-insights/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedule(date, flight, origin, destination string, price float64) clients.ScheduleEntry {
	return clients.ScheduleEntry{
		FlightDate: date,
		Flight:     &clients.FlightRef{IATA: flight},
		Airline:    &clients.AirlineRef{Name: "Qantas"},
		Departure:  &clients.Endpoint{IATA: origin, Scheduled: date + "T08:15:00+00:00"},
		Arrival:    &clients.Endpoint{IATA: destination},
		Price:      &price,
	}
}

type stubFetcher struct {
	byDate map[string]FetchResult
	calls  []string
}

func (f *stubFetcher) Fetch(ctx context.Context, origin, destination, date string, useMock bool) FetchResult {
	f.calls = append(f.calls, date)
	if res, ok := f.byDate[date]; ok {
		return res
	}
	return FetchResult{Status: FetchEmpty}
}

func ok(entries ...clients.ScheduleEntry) FetchResult {
	return FetchResult{Status: FetchOK, Origin: OriginUpstream, Entries: entries}
}

func newTestInsights(f FlightFetcher) *InsightService {
	return NewInsightService(f, WithClock(fixedClock(wednesday)), WithRandSource(rand.NewPCG(5, 6)))
}

// ─── DateRange ────────────────────────────────────────────────────────────────

func TestDateRange(t *testing.T) {
	dates := DateRange("2024-03-15", wednesday)

	require.Len(t, dates, 11)
	assert.Equal(t, "2024-03-10", dates[0])
	assert.Equal(t, "2024-03-15", dates[5])
	assert.Equal(t, "2024-03-20", dates[10])
	assert.True(t, slices.IsSorted(dates))
}

func TestDateRange_CrossesMonthAndLeapDay(t *testing.T) {
	dates := DateRange("2024-03-02", wednesday)
	assert.Equal(t, []string{
		"2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01",
		"2024-03-02",
		"2024-03-03", "2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07",
	}, dates)
}

func TestDateRange_AcceptsUnpaddedDate(t *testing.T) {
	assert.Equal(t, DateRange("2024-03-05", wednesday), DateRange("2024-3-5", wednesday))
}

func TestDateRange_InvalidDateCentersOnToday(t *testing.T) {
	for _, in := range []string{"not-a-date", "", "2024-13-01", "15/03/2024"} {
		dates := DateRange(in, wednesday)

		require.Len(t, dates, 11, in)
		assert.Equal(t, "2024-03-13", dates[5], in)
		for _, d := range dates {
			_, err := time.Parse(dateLayout, d)
			assert.NoError(t, err)
		}
	}
}

// ─── Analyze ──────────────────────────────────────────────────────────────────

func TestAnalyze_FlatPriceRoundTrip(t *testing.T) {
	f := &stubFetcher{byDate: map[string]FetchResult{}}
	for _, d := range DateRange("2024-03-15", wednesday) {
		f.byDate[d] = ok(schedule(d, "QF"+d[8:], "SYD", "MEL", 100))
	}

	res, err := newTestInsights(f).Analyze(context.Background(), "SYD", "MEL", "2024-03-15", false)
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.AvgPrice)
	require.Len(t, res.PriceTrends, 11)
	for i, p := range res.PriceTrends {
		assert.Equal(t, 100.0, p.MeanPrice)
		assert.Equal(t, res.DateRange[i], p.DepartDate)
	}
	assert.Equal(t, []domain.RouteCount{{Origin: "SYD", Destination: "MEL", Count: 11}}, res.PopularRoutes)
	require.Len(t, res.Flights, 1)
	assert.Equal(t, "2024-03-15", res.Flights[0].DepartDate)
	assert.Equal(t, "08:15", res.Flights[0].DepartTime)
	assert.Equal(t, "2024-03-15", res.SelectedDate)
}

func TestAnalyze_FetchesWindowInOrder(t *testing.T) {
	f := &stubFetcher{byDate: map[string]FetchResult{
		"2024-03-15": ok(schedule("2024-03-15", "QF1", "SYD", "MEL", 100)),
	}}

	_, err := newTestInsights(f).Analyze(context.Background(), "SYD", "MEL", "2024-03-15", true)
	require.NoError(t, err)
	assert.Equal(t, DateRange("2024-03-15", wednesday), f.calls)
}

func TestAnalyze_SkipsFailedAndEmptyDates(t *testing.T) {
	f := &stubFetcher{byDate: map[string]FetchResult{
		"2024-03-11": {Status: FetchFailed, Err: errors.New("bad date")},
		"2024-03-12": ok(schedule("2024-03-12", "QF1", "SYD", "MEL", 100), schedule("2024-03-12", "QF2", "SYD", "MEL", 201)),
		"2024-03-13": {Status: FetchEmpty},
		"2024-03-17": ok(schedule("2024-03-17", "QF3", "SYD", "MEL", 300)),
	}}

	res, err := newTestInsights(f).Analyze(context.Background(), "SYD", "MEL", "2024-03-15", false)
	require.NoError(t, err)

	assert.Equal(t, []domain.PriceTrendPoint{
		{DepartDate: "2024-03-12", MeanPrice: 150.5},
		{DepartDate: "2024-03-17", MeanPrice: 300},
	}, res.PriceTrends)
	assert.Equal(t, 200.33, res.AvgPrice)

	// nothing departs on the selected date: first flights of the window instead
	require.Len(t, res.Flights, 3)
	assert.Equal(t, []string{"QF1", "QF2", "QF3"}, []string{
		res.Flights[0].FlightNumber, res.Flights[1].FlightNumber, res.Flights[2].FlightNumber,
	})
}

func TestAnalyze_NoData(t *testing.T) {
	f := &stubFetcher{byDate: map[string]FetchResult{
		"2024-03-15": ok(clients.ScheduleEntry{FlightDate: "2024-03-15"}),
	}}

	res, err := newTestInsights(f).Analyze(context.Background(), "SYD", "MEL", "2024-03-15", false)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNoFlightData)
}

func TestAnalyze_EntriesWithoutFlightAreDropped(t *testing.T) {
	f := &stubFetcher{byDate: map[string]FetchResult{
		"2024-03-14": ok(clients.ScheduleEntry{FlightDate: "2024-03-14"}),
		"2024-03-15": ok(
			clients.ScheduleEntry{FlightDate: "2024-03-15"},
			schedule("2024-03-15", "QF1", "SYD", "MEL", 250),
		),
	}}

	res, err := newTestInsights(f).Analyze(context.Background(), "SYD", "MEL", "2024-03-15", false)
	require.NoError(t, err)
	assert.Len(t, res.Flights, 1)
	assert.Equal(t, []domain.PriceTrendPoint{{DepartDate: "2024-03-15", MeanPrice: 250}}, res.PriceTrends)
}

func TestAnalyze_NormalizesSparseEntries(t *testing.T) {
	f := &stubFetcher{byDate: map[string]FetchResult{
		"2024-03-15": ok(
			clients.ScheduleEntry{FlightDate: "2024-03-15", Flight: &clients.FlightRef{IATA: "XX1"}},
			clients.ScheduleEntry{
				FlightDate: "2024-03-15",
				Flight:     &clients.FlightRef{IATA: "XX2"},
				Departure:  &clients.Endpoint{IATA: "SYD", Scheduled: "2024-03-15 09:00"},
			},
			clients.ScheduleEntry{
				FlightDate: "2024-03-15",
				Flight:     &clients.FlightRef{IATA: "XX3"},
				Departure:  &clients.Endpoint{IATA: "SYD", Scheduled: "2024-03-15T9:5"},
			},
		),
	}}

	res, err := newTestInsights(f).Analyze(context.Background(), "SYD", "MEL", "2024-03-15", false)
	require.NoError(t, err)
	require.Len(t, res.Flights, 3)

	assert.Equal(t, "N/A", res.Flights[0].DepartTime)
	assert.Equal(t, "N/A", res.Flights[1].DepartTime)
	assert.Equal(t, "9:5", res.Flights[2].DepartTime)
	for _, fl := range res.Flights {
		assert.GreaterOrEqual(t, fl.Price, 150)
		assert.LessOrEqual(t, fl.Price, 500)
	}
}

func TestAnalyze_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &stubFetcher{}
	_, err := newTestInsights(f).Analyze(ctx, "SYD", "MEL", "2024-03-15", true)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.calls)
}

func TestAnalyze_MockPipeline(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		gen := NewMockGenerator(WithClock(fixedClock(wednesday)), WithRandSource(rand.NewPCG(seed, 99)))
		svc := NewInsightService(NewFlightSource(nil, gen), WithClock(fixedClock(wednesday)))

		res, err := svc.Analyze(context.Background(), "SYD", "MEL", "2024-01-01", true)
		require.NoError(t, err)

		assert.Equal(t, "2024-01-01", res.SelectedDate)
		assert.Len(t, res.DateRange, 11)
		assert.NotEmpty(t, res.Flights)
		assert.LessOrEqual(t, len(res.Flights), 10)
		assert.Greater(t, res.AvgPrice, 0.0)
		assert.Len(t, res.PriceTrends, 11)
		for _, fl := range res.Flights {
			assert.Equal(t, "2024-01-01", fl.DepartDate)
			assert.Greater(t, fl.Price, 0)
			assert.LessOrEqual(t, fl.Price, 1248)
		}
		assert.LessOrEqual(t, len(res.PopularRoutes), 5)
	}
}

func TestAnalyze_InvalidDateEchoesInput(t *testing.T) {
	gen := NewMockGenerator(WithClock(fixedClock(wednesday)))
	svc := NewInsightService(NewFlightSource(nil, gen), WithClock(fixedClock(wednesday)))

	res, err := svc.Analyze(context.Background(), "SYD", "MEL", "garbage", true)
	require.NoError(t, err)
	assert.Equal(t, "garbage", res.SelectedDate)
	assert.Equal(t, "2024-03-13", res.DateRange[5])
	// no flight departs on "garbage": the sample is the start of the window
	assert.Equal(t, "2024-03-08", res.Flights[0].DepartDate)
}

func TestAnalyze_OutOfRangePricesAreReplaced(t *testing.T) {
	entry := func(flight string, price float64) clients.ScheduleEntry {
		return schedule("2024-03-15", flight, "SYD", "MEL", price)
	}
	f := &stubFetcher{byDate: map[string]FetchResult{
		"2024-03-15": ok(
			entry("XX1", 1e20),
			entry("XX2", math.Inf(1)),
			entry("XX3", math.NaN()),
			entry("XX4", math.MaxInt32),
			entry("XX5", -1),
		),
	}}

	res, err := newTestInsights(f).Analyze(context.Background(), "SYD", "MEL", "2024-03-15", false)
	require.NoError(t, err)
	require.Len(t, res.Flights, 5)

	for _, fl := range res.Flights {
		assert.GreaterOrEqual(t, fl.Price, 150, fl.FlightNumber)
		assert.LessOrEqual(t, fl.Price, 500, fl.FlightNumber)
	}
	assert.GreaterOrEqual(t, res.AvgPrice, 150.0)
	assert.LessOrEqual(t, res.AvgPrice, 500.0)
	require.Len(t, res.PriceTrends, 1)
	assert.GreaterOrEqual(t, res.PriceTrends[0].MeanPrice, 150.0)
}

func TestAnalyze_LargestAcceptedPriceIsKept(t *testing.T) {
	f := &stubFetcher{byDate: map[string]FetchResult{
		"2024-03-15": ok(schedule("2024-03-15", "QF1", "SYD", "MEL", math.MaxInt32-1)),
	}}

	res, err := newTestInsights(f).Analyze(context.Background(), "SYD", "MEL", "2024-03-15", false)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32-1, res.Flights[0].Price)
}

func TestAnalyze_UnpaddedDateMatchesSample(t *testing.T) {
	f := &stubFetcher{byDate: map[string]FetchResult{
		"2024-03-04": ok(schedule("2024-03-04", "QF1", "SYD", "MEL", 100)),
		"2024-03-05": ok(schedule("2024-03-05", "QF2", "SYD", "MEL", 200)),
	}}

	res, err := newTestInsights(f).Analyze(context.Background(), "SYD", "MEL", "2024-3-5", false)
	require.NoError(t, err)

	assert.Equal(t, "2024-3-5", res.SelectedDate)
	assert.Equal(t, "2024-03-05", res.DateRange[5])
	require.Len(t, res.Flights, 1)
	assert.Equal(t, "QF2", res.Flights[0].FlightNumber)
}
