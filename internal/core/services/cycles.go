package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// Ensure CycleService implements the interface.
var _ driving.CycleResolver = (*CycleResolverService)(nil)

// cycleLockTTL bounds how long a crashed resolver can hold the lock.
const cycleLockTTL = 5 * time.Minute

// cycleDateLayout is how cycle dates are stored in the cache.
const cycleDateLayout = "2006-01-02"

// CycleResolverService reconciles the six-week cycle and cooling-period
// dates held in the cache and materialises the cycle notes in the vault.
// The read-resolve-write runs under a cache lock so overlapping cron fires
// cannot interleave.
type CycleResolverService struct {
	vault     driven.VaultStore
	cache     driven.Cache
	vaultPath string
	loc       *time.Location
}

// NewCycleResolverService creates a cycle resolver.
func NewCycleResolverService(vault driven.VaultStore, cache driven.Cache, vaultPath string, loc *time.Location) *CycleResolverService {
	return &CycleResolverService{vault: vault, cache: cache, vaultPath: vaultPath, loc: loc}
}

// Resolve reconciles the stored cycle dates for today and ensures the four
// cycle notes (current and next, for both periods) exist in the vault.
func (s *CycleResolverService) Resolve(ctx context.Context, today time.Time) (*driving.CycleResult, error) {
	token, err := s.cache.AcquireLock(ctx, domain.KeyCycleResolveLock, cycleLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquiring cycle lock: %w", err)
	}
	defer func() {
		if err := s.cache.ReleaseLock(ctx, domain.KeyCycleResolveLock, token); err != nil {
			logger.Warn("releasing cycle lock: %v", err)
		}
	}()

	cooling, err := s.loadWindow(ctx, domain.KeyCoolingStart, domain.KeyCoolingEnd)
	if err != nil {
		return nil, err
	}
	cycle, err := s.loadWindow(ctx, domain.KeyCycleStart, domain.KeyCycleEnd)
	if err != nil {
		return nil, err
	}

	day := domain.DateOnly(today.In(s.loc))
	res := domain.ResolvePlan(day, cooling, cycle)
	logger.Info("cycle resolution: %s", res.Reason)

	switch res.Reschedule {
	case domain.PeriodSixWeek:
		sched := domain.NewSixWeekSchedule(res.NewStart)
		if err := s.storeSchedule(ctx, sched,
			domain.KeyCycleStart, domain.KeyCycleEnd,
			domain.KeyNextCycleStart, domain.KeyNextCycleEnd); err != nil {
			return nil, err
		}
		cycle = sched.Current
		logger.Info("rescheduled 6-week cycle to start %s", sched.Current.Start.Format(cycleDateLayout))

	case domain.PeriodCooling:
		sched := domain.NewCoolingSchedule(res.NewStart)
		if err := s.storeSchedule(ctx, sched,
			domain.KeyCoolingStart, domain.KeyCoolingEnd,
			domain.KeyNextCoolingStart, domain.KeyNextCoolingEnd); err != nil {
			return nil, err
		}
		cooling = sched.Current
		logger.Info("rescheduled cooling period to start %s", sched.Current.Start.Format(cycleDateLayout))
	}

	nextCycle, err := s.nextWindow(ctx, cycle, false)
	if err != nil {
		return nil, err
	}
	nextCooling, err := s.nextWindow(ctx, cooling, true)
	if err != nil {
		return nil, err
	}

	created, err := s.ensureCycleNotes(ctx, cycle, nextCycle, cooling, nextCooling)
	if err != nil {
		return nil, err
	}
	return &driving.CycleResult{Resolution: res, CreatedFiles: created}, nil
}

// loadWindow reads a stored date pair. Unset keys mean the one-time seeding
// never happened, which no automation can recover from.
func (s *CycleResolverService) loadWindow(ctx context.Context, startKey, endKey string) (domain.Window, error) {
	start, err := s.loadDate(ctx, startKey)
	if err != nil {
		return domain.Window{}, err
	}
	end, err := s.loadDate(ctx, endKey)
	if err != nil {
		return domain.Window{}, err
	}
	return domain.Window{Start: start, End: end}, nil
}

func (s *CycleResolverService) loadDate(ctx context.Context, key string) (time.Time, error) {
	value, err := s.cache.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return time.Time{}, fmt.Errorf("%w: %s", domain.ErrCycleDatesUnset, key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading %s: %w", key, err)
	}
	t, err := time.ParseInLocation(cycleDateLayout, value, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s=%q: %w", key, value, err)
	}
	return t, nil
}

// nextWindow returns the stored next occurrence of a period, deriving and
// backfilling it from the current window when the keys were never written.
func (s *CycleResolverService) nextWindow(ctx context.Context, current domain.Window, cooling bool) (domain.Window, error) {
	startKey, endKey := domain.KeyNextCycleStart, domain.KeyNextCycleEnd
	if cooling {
		startKey, endKey = domain.KeyNextCoolingStart, domain.KeyNextCoolingEnd
	}

	next, err := s.loadWindow(ctx, startKey, endKey)
	if err == nil {
		return next, nil
	}
	if !errors.Is(err, domain.ErrCycleDatesUnset) {
		return domain.Window{}, err
	}

	sched := domain.NewSixWeekSchedule(current.Start)
	if cooling {
		sched = domain.NewCoolingSchedule(current.Start)
	}
	if err := s.storeWindow(ctx, sched.Next, startKey, endKey); err != nil {
		return domain.Window{}, err
	}
	logger.Info("backfilled %s from the current window", startKey)
	return sched.Next, nil
}

func (s *CycleResolverService) storeSchedule(ctx context.Context, sched domain.Schedule, startKey, endKey, nextStartKey, nextEndKey string) error {
	if err := s.storeWindow(ctx, sched.Current, startKey, endKey); err != nil {
		return err
	}
	return s.storeWindow(ctx, sched.Next, nextStartKey, nextEndKey)
}

func (s *CycleResolverService) storeWindow(ctx context.Context, w domain.Window, startKey, endKey string) error {
	if err := s.cache.Set(ctx, startKey, w.Start.Format(cycleDateLayout)); err != nil {
		return fmt.Errorf("storing %s: %w", startKey, err)
	}
	if err := s.cache.Set(ctx, endKey, w.End.Format(cycleDateLayout)); err != nil {
		return fmt.Errorf("storing %s: %w", endKey, err)
	}
	return nil
}

// ensureCycleNotes creates the four cycle notes under
// _Cycles/_6-Week-Cycles, skipping any that already exist.
func (s *CycleResolverService) ensureCycleNotes(ctx context.Context, cycle, nextCycle, cooling, nextCooling domain.Window) ([]string, error) {
	cycles, err := findVaultFolder(ctx, s.vault, s.vaultPath, domain.FolderCycles)
	if err != nil {
		return nil, err
	}
	folder := cycles.Path + "/" + domain.FolderSixWeek
	if err := s.vault.CreateFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("ensuring %s: %w", folder, err)
	}

	names := []string{
		domain.SixWeekCycleFilename(cycle),
		domain.SixWeekCycleFilename(nextCycle),
		domain.CoolingPeriodFilename(cooling),
		domain.CoolingPeriodFilename(nextCooling),
	}

	var created []string
	for _, name := range names {
		path := folder + "/" + name
		exists, err := s.vault.Exists(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("probing %s: %w", path, err)
		}
		if exists {
			continue
		}
		if err := s.vault.Upload(ctx, path, nil, false); err != nil {
			return nil, fmt.Errorf("creating %s: %w", path, err)
		}
		logger.Info("created cycle note %s", path)
		created = append(created, path)
	}
	return created, nil
}
