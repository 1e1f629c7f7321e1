package airquality

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service loads the station dataset and computes dashboard charts from it.
type Service struct {
	store  Store
	source Source
}

// NewService creates a new Service.
func NewService(store Store, source Source) *Service {
	return &Service{
		store:  store,
		source: source,
	}
}

// SourceName returns the name of the configured dataset source.
func (s *Service) SourceName() string {
	if s.source == nil {
		return ""
	}
	return s.source.Name()
}

// Load reads the dataset from the source and installs it as the current
// snapshot. When the read fails, the last good snapshot is kept; if there is
// none, an empty dataset is installed so charts still render (empty).
// The returned error is informational: the service stays usable either way.
func (s *Service) Load(ctx context.Context) error {
	name := s.SourceName()
	if s.source == nil {
		err := fmt.Errorf("no dataset source configured: %w", ErrDatasetNotFound)
		s.installEmpty(name, err)
		return err
	}

	start := time.Now()
	table, err := s.source.Load(ctx)
	if err != nil {
		if current, curErr := s.store.Current(); curErr == nil && current.Len() > 0 {
			slog.Warn("dataset reload failed; keeping last good snapshot",
				"source", name, "dataset_id", current.ID, "error", err)
			// The record describes the snapshot still being served.
			info := current.Info(err)
			info.LoadedAt = time.Now().UTC()
			s.store.RecordLoad(info)
			return err
		}
		if errors.Is(err, ErrDatasetNotFound) {
			slog.Error("data file not found; serving empty dataset", "source", name, "error", err)
		} else {
			slog.Error("dataset load failed; serving empty dataset", "source", name, "error", err)
		}
		s.installEmpty(name, err)
		return err
	}

	obs := table.Observations
	if obs == nil {
		obs = []Observation{}
	}
	ds := Dataset{
		ID:           uuid.New(),
		Source:       name,
		Station:      table.Station,
		LoadedAt:     time.Now().UTC(),
		Observations: obs,
	}
	s.store.SaveDataset(ds)
	s.store.RecordLoad(ds.Info(nil))

	slog.Info("dataset loaded",
		"source", name,
		"dataset_id", ds.ID,
		"station", ds.Station,
		"rows", ds.Len(),
		"took", time.Since(start))
	return nil
}

func (s *Service) installEmpty(name string, err error) {
	ds := EmptyDataset(name)
	s.store.SaveDataset(ds)
	s.store.RecordLoad(ds.Info(err))
}

// Dataset returns the current snapshot, or an empty one before the first load.
func (s *Service) Dataset() Dataset {
	ds, err := s.store.Current()
	if err != nil {
		return EmptyDataset(s.SourceName())
	}
	return ds
}

// Info describes the most recent load attempt.
func (s *Service) Info() DatasetInfo {
	history := s.store.History()
	if len(history) > 0 {
		return history[len(history)-1]
	}
	return s.Dataset().Info(nil)
}

// History returns the recorded load attempts, oldest first.
func (s *Service) History() []DatasetInfo {
	return s.store.History()
}

// Domain returns the default filter bounds for the current dataset.
func (s *Service) Domain() FilterBounds {
	return DomainOf(s.Dataset().Observations)
}

// Charts computes every dashboard chart for bounds.
func (s *Service) Charts(bounds FilterBounds) ChartSet {
	return BuildCharts(s.Dataset().Observations, bounds)
}

// Chart computes the single chart id for bounds.
func (s *Service) Chart(id string, bounds FilterBounds) (Chart, error) {
	spec, err := LookupChart(id)
	if err != nil {
		return Chart{}, err
	}
	return BuildChart(s.Dataset().Observations, bounds, spec), nil
}
