package scheduling

import (
	"context"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
)

type BulkFailure struct {
	ID     uint   `json:"id"`
	Reason string `json:"reason"`
}

type BulkResult struct {
	Succeeded []uint        `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// Ok is true when at least one id transitioned; failed ids are skipped,
// not rolled back.
func (r BulkResult) Ok() bool {
	return len(r.Succeeded) > 0
}

type BulkTransition struct {
	single *Transition
}

func NewBulkTransition(single *Transition) *BulkTransition {
	return &BulkTransition{single: single}
}

// Execute applies the same single-item transition rules independently
// per id.
func (uc *BulkTransition) Execute(
	ctx context.Context,
	ids []uint,
	target domain.Status,
	payload TransitionPayload,
) (*BulkResult, error) {

	ev, err := domain.EventForTarget(target)
	if err != nil {
		return nil, err
	}

	res := &BulkResult{}
	for _, id := range ids {
		if _, err := uc.single.Execute(ctx, id, ev, payload); err != nil {
			reason := "internal_error"
			if code, ok := httperr.IsAnyBusiness(err); ok {
				reason = code
			}
			res.Failed = append(res.Failed, BulkFailure{ID: id, Reason: reason})
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}

	return res, nil
}
