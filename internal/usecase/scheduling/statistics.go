package scheduling

import (
	"context"
	"sort"
	"time"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
)

type StaffUtilization struct {
	StaffID        uint    `json:"staff_id"`
	BookedHours    float64 `json:"booked_hours"`
	AvailableHours float64 `json:"available_hours"`
	Utilization    float64 `json:"utilization"`
}

type Statistics struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`

	CompletionRate   float64 `json:"completion_rate"`
	CancellationRate float64 `json:"cancellation_rate"`
	NoShowRate       float64 `json:"no_show_rate"`

	Revenue float64 `json:"revenue"`

	Utilization []StaffUtilization `json:"utilization"`
}

// GetStatistics recomputes every figure from the authoritative
// appointment set on each call; nothing is counted incrementally, so
// the numbers cannot drift from missed transitions.
type GetStatistics struct {
	repo domain.Repository
}

func NewGetStatistics(repo domain.Repository) *GetStatistics {
	return &GetStatistics{repo: repo}
}

func (uc *GetStatistics) Execute(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (*Statistics, error) {

	if !to.After(from) {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	appointments, err := uc.repo.ListBetween(ctx, 0, from, to)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		From:     from,
		To:       to,
		Total:    len(appointments),
		ByStatus: map[string]int{},
	}

	booked := map[uint]float64{}
	for _, ap := range appointments {
		stats.ByStatus[ap.Status]++

		switch domain.Status(ap.Status) {
		case domain.StatusCompleted:
			stats.Revenue += ap.ActualCost
		}

		if domain.Status(ap.Status) != domain.StatusCancelled {
			booked[ap.StaffID] += ap.EndTime.Sub(ap.StartTime).Hours()
		}
	}

	if stats.Total > 0 {
		total := float64(stats.Total)
		stats.CompletionRate = float64(stats.ByStatus[string(domain.StatusCompleted)]) / total
		stats.CancellationRate = float64(stats.ByStatus[string(domain.StatusCancelled)]) / total
		stats.NoShowRate = float64(stats.ByStatus[string(domain.StatusNoShow)]) / total
	}

	utilization, err := uc.staffUtilization(ctx, from, to, booked)
	if err != nil {
		return nil, err
	}
	stats.Utilization = utilization

	return stats, nil
}

func (uc *GetStatistics) staffUtilization(
	ctx context.Context,
	from time.Time,
	to time.Time,
	booked map[uint]float64,
) ([]StaffUtilization, error) {

	rows, err := uc.repo.ListAllWorkingHours(ctx)
	if err != nil {
		return nil, err
	}

	byStaff := map[uint][]int{} // staff id -> indexes into rows
	for i, wh := range rows {
		byStaff[wh.StaffID] = append(byStaff[wh.StaffID], i)
	}

	ids := map[uint]struct{}{}
	for id := range byStaff {
		ids[id] = struct{}{}
	}
	for id := range booked {
		ids[id] = struct{}{}
	}

	out := make([]StaffUtilization, 0, len(ids))
	for id := range ids {
		var staffRows []int
		if idx, ok := byStaff[id]; ok {
			staffRows = idx
		}

		available := 0.0
		for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
			for _, i := range staffRows {
				if w, ok := domain.DayWindow(rows[i:i+1], day); ok {
					available += w.Duration().Hours()
				}
			}
		}

		u := StaffUtilization{
			StaffID:        id,
			BookedHours:    booked[id],
			AvailableHours: available,
		}
		if available > 0 {
			u.Utilization = u.BookedHours / available
		}
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StaffID < out[j].StaffID })
	return out, nil
}
