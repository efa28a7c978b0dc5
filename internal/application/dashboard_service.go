package application

import (
	"context"
	"fmt"
	"math"

	bookingDomain "github.com/roomfinder/service-rooms/internal/domain/booking"
	roomDomain "github.com/roomfinder/service-rooms/internal/domain/room"
)

// CategoryCountDTO is the number of rooms in one category and its share of all rooms.
type CategoryCountDTO struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

// DashboardDTO is the admin summary of listings and bookings.
type DashboardDTO struct {
	TotalRooms          int64              `json:"total_rooms"`
	MostPopularType     *CategoryCountDTO  `json:"most_popular_type"`
	MostPopularLocation *CategoryCountDTO  `json:"most_popular_location"`
	ByType              []CategoryCountDTO `json:"by_type"`
	ByLocation          []CategoryCountDTO `json:"by_location"`
	Bookings            BookingStatsDTO    `json:"bookings"`
}

// DashboardService aggregates listing and booking statistics.
type DashboardService struct {
	rooms    roomDomain.RoomRepository
	bookings bookingDomain.BookingRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(rooms roomDomain.RoomRepository, bookings bookingDomain.BookingRepository) *DashboardService {
	return &DashboardService{rooms: rooms, bookings: bookings}
}

// Summary computes the dashboard. Categories are reported for every room type and
// location in display order, including empty ones.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardDTO, error) {
	typeCounts, err := s.rooms.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	locationCounts, err := s.rooms.CountByLocation(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	countsByType := make(map[string]int64, len(typeCounts))
	var total int64
	for _, tc := range typeCounts {
		countsByType[string(tc.RoomType)] = tc.Count
		total += tc.Count
	}
	countsByLocation := make(map[string]int64, len(locationCounts))
	for _, lc := range locationCounts {
		countsByLocation[string(lc.Location)] = lc.Count
	}

	typeNames := make([]string, len(roomDomain.RoomTypes))
	for i, t := range roomDomain.RoomTypes {
		typeNames[i] = string(t)
	}
	locationNames := make([]string, len(roomDomain.Locations))
	for i, l := range roomDomain.Locations {
		locationNames[i] = string(l)
	}

	byType := categoryBreakdown(typeNames, countsByType, total)
	byLocation := categoryBreakdown(locationNames, countsByLocation, total)

	stats := BookingStatsDTO{ByStatus: make(map[string]int64, len(statusCounts))}
	for status, c := range statusCounts {
		stats.ByStatus[status.String()] = c
		stats.TotalBookings += c
	}

	return &DashboardDTO{
		TotalRooms:          total,
		MostPopularType:     mostPopular(byType),
		MostPopularLocation: mostPopular(byLocation),
		ByType:              byType,
		ByLocation:          byLocation,
		Bookings:            stats,
	}, nil
}

func categoryBreakdown(names []string, counts map[string]int64, total int64) []CategoryCountDTO {
	out := make([]CategoryCountDTO, len(names))
	for i, name := range names {
		out[i] = CategoryCountDTO{
			Name:    name,
			Count:   counts[name],
			Percent: percentOf(counts[name], total),
		}
	}
	return out
}

func percentOf(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// mostPopular returns the largest category, the earliest one on ties, or nil when
// every count is zero.
func mostPopular(categories []CategoryCountDTO) *CategoryCountDTO {
	var best *CategoryCountDTO
	for i := range categories {
		if categories[i].Count == 0 {
			continue
		}
		if best == nil || categories[i].Count > best.Count {
			c := categories[i]
			best = &c
		}
	}
	return best
}
