package service

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"agriplan/internal/aggregate"
	"agriplan/internal/model"
	"agriplan/pkg/metrics"
)

type GroupStore interface {
	ListGroups(ctx context.Context) ([]model.IndicatorGroup, error)
	PerformanceRows(ctx context.Context, year int) ([]aggregate.IndicatorPerf, error)
}

type SectorStore interface {
	ListSectors(ctx context.Context) ([]model.Sector, error)
}

const dashboardCacheTTL = 10 * time.Minute

// DashboardService computes the indicator-performance tree for a year and
// keeps the result in redis under dashboard:<year>. The cache is the single
// canonical copy: every workflow mutation drops the year's entry, so readers
// never see aggregates older than the last write.
type DashboardService struct {
	groups  GroupStore
	sectors SectorStore
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewDashboardService(groups GroupStore, sectors SectorStore, rdb *redis.Client, logger *zap.Logger) *DashboardService {
	return &DashboardService{groups: groups, sectors: sectors, rdb: rdb, logger: logger}
}

// SectorDashboard is one sector's slice of the tree: its root groups rolled
// up plus indicators attached to no group.
type SectorDashboard struct {
	SectorID   int                         `json:"sector_id"`
	SectorName string                      `json:"sector_name"`
	Groups     []*aggregate.GroupResult    `json:"groups"`
	Indicators []aggregate.IndicatorResult `json:"indicators,omitempty"`
}

// Dashboard is the full indicator-performance response for a year.
type Dashboard struct {
	Year           int                    `json:"year"`
	Sectors        []SectorDashboard      `json:"sectors"`
	BandStatistics map[aggregate.Band]int `json:"band_statistics"`
}

// IndicatorPerformance serves the dashboard for a year, from cache when warm.
func (s *DashboardService) IndicatorPerformance(ctx context.Context, year int) (*Dashboard, error) {
	if cached := s.fromCache(ctx, year); cached != nil {
		return cached, nil
	}

	start := time.Now()
	dash, err := s.compute(ctx, year)
	if err != nil {
		return nil, err
	}
	metrics.RecordAggregationDuration("live", time.Since(start))
	s.toCache(ctx, year, dash)
	return dash, nil
}

func (s *DashboardService) compute(ctx context.Context, year int) (*Dashboard, error) {
	groups, err := s.groups.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	perfRows, err := s.groups.PerformanceRows(ctx, year)
	if err != nil {
		return nil, err
	}
	forest, err := aggregate.BuildForest(groups, perfRows)
	if err != nil {
		return nil, ValidationError(err.Error())
	}
	roots, loose := forest.Rollup()

	sectorOf := make(map[int]int, len(groups))
	for _, g := range groups {
		if g.SectorID != nil {
			sectorOf[g.ID] = *g.SectorID
		}
	}
	looseSector := make(map[int]int, len(perfRows))
	for _, row := range perfRows {
		looseSector[row.ID] = row.SectorID
	}

	buckets := make(map[int]*SectorDashboard)
	bucket := func(sectorID int) *SectorDashboard {
		b, ok := buckets[sectorID]
		if !ok {
			b = &SectorDashboard{SectorID: sectorID}
			buckets[sectorID] = b
		}
		return b
	}
	for _, root := range roots {
		b := bucket(sectorOf[root.GroupID])
		b.Groups = append(b.Groups, root)
	}
	for _, ind := range loose {
		b := bucket(looseSector[ind.ID])
		b.Indicators = append(b.Indicators, ind)
	}

	sectors, err := s.sectors.ListSectors(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(sectors))
	for _, sec := range sectors {
		names[sec.ID] = sec.Name
	}

	out := make([]SectorDashboard, 0, len(buckets))
	for id, b := range buckets {
		b.SectorName = names[id]
		if b.SectorName == "" {
			b.SectorName = "Unassigned"
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SectorID < out[j].SectorID })

	return &Dashboard{
		Year:           year,
		Sectors:        out,
		BandStatistics: aggregate.BandCounts(roots, loose),
	}, nil
}

// InvalidateYear drops the cached tree after a workflow mutation.
func (s *DashboardService) InvalidateYear(ctx context.Context, year int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, dashboardKey(year)).Err(); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err), zap.Int("year", year))
	}
}

// fromCache is best-effort: any redis or decode failure falls through to a
// live computation.
func (s *DashboardService) fromCache(ctx context.Context, year int) *Dashboard {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, dashboardKey(year)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Failed to read dashboard cache", zap.Error(err), zap.Int("year", year))
		}
		return nil
	}
	var dash Dashboard
	if err := json.Unmarshal(raw, &dash); err != nil {
		s.logger.Warn("Corrupt dashboard cache entry", zap.Error(err), zap.Int("year", year))
		return nil
	}
	return &dash
}

func (s *DashboardService) toCache(ctx context.Context, year int, dash *Dashboard) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(dash)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, dashboardKey(year), raw, dashboardCacheTTL).Err(); err != nil {
		s.logger.Warn("Failed to write dashboard cache", zap.Error(err), zap.Int("year", year))
	}
}

func dashboardKey(year int) string {
	return "dashboard:" + strconv.Itoa(year)
}
