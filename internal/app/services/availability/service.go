package availability

import (
	"context"
	"log/slog"
	"time"

	"villetta/internal/app/dto"
	"villetta/internal/app/policies"
	"villetta/internal/domain/calendar"
	"villetta/internal/domain/property"
)

// TopicCalendarRefreshed receives an event every time a calendar is rebuilt
// from the upstream feed (or its fallback substitute).
const TopicCalendarRefreshed = "villetta.calendar.refreshed"

// Fetcher retrieves the raw availability maps for an upstream calendar id.
type Fetcher interface {
	FetchCalendar(ctx context.Context, calendarID string) (calendar.RawMaps, error)
}

// Cache stores normalized calendars per property for a bounded time.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}

type Service struct {
	properties property.Repository
	feed       Fetcher
	cache      Cache
	cacheTTL   time.Duration
	events     policies.EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(
	properties property.Repository,
	feed Fetcher,
	cache Cache,
	cacheTTL time.Duration,
	events policies.EventPublisher,
	logger *slog.Logger,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		properties: properties,
		feed:       feed,
		cache:      cache,
		cacheTTL:   cacheTTL,
		events:     events,
		logger:     logger,
		now:        now,
	}
}

type calendarRefreshedEvent struct {
	PropertyID  string `json:"property_id"`
	Days        int    `json:"days"`
	FirstDate   string `json:"first_date"`
	LastDate    string `json:"last_date"`
	Fallback    bool   `json:"fallback"`
	RefreshedAt string `json:"refreshed_at"`
}

// PropertyCalendar returns the normalized forward calendar for one property.
// An unreachable upstream degrades to a deterministic fallback pattern
// instead of failing; only an unknown property id is an error.
func (s *Service) PropertyCalendar(ctx context.Context, propertyID string) (dto.PropertyCalendar, error) {
	p, err := s.properties.ByID(ctx, propertyID)
	if err != nil {
		return dto.PropertyCalendar{}, err
	}

	cacheKey := "calendar:" + p.ID
	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			if out, ok := cached.(dto.PropertyCalendar); ok {
				return out, nil
			}
		}
	}

	today := calendar.CivilToday(s.now(), p.Location())

	var days []calendar.Day
	fallback := false
	raw, err := s.feed.FetchCalendar(ctx, p.UpstreamCalendarID)
	if err != nil {
		fallback = true
		days = calendar.Fallback(p.ID, today)
		s.logger.Warn("calendar feed unavailable, serving fallback",
			"property_id", p.ID, "error", err)
	} else {
		days = calendar.Normalize(raw.Availability, raw.MinimumStay, today)
	}

	out := dto.MapCalendar(p.ID, days)
	if s.cache != nil {
		s.cache.Set(cacheKey, out, s.cacheTTL)
	}
	s.publishRefreshed(ctx, p.ID, days, fallback)
	return out, nil
}

func (s *Service) publishRefreshed(ctx context.Context, propertyID string, days []calendar.Day, fallback bool) {
	if s.events == nil || len(days) == 0 {
		return
	}
	event := calendarRefreshedEvent{
		PropertyID:  propertyID,
		Days:        len(days),
		FirstDate:   days[0].Date,
		LastDate:    days[len(days)-1].Date,
		Fallback:    fallback,
		RefreshedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.events.Publish(ctx, TopicCalendarRefreshed, propertyID, event); err != nil {
		s.logger.Warn("calendar refresh event not published",
			"property_id", propertyID, "error", err)
	}
}
