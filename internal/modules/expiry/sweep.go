package expiry

import (
	"context"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/lock"
	"tailorshop/internal/logger"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"

	"github.com/sirupsen/logrus"
)

const (
	sweepLockKey      = "expiry-sweep"
	defaultExpiryDays = 365
	reminderChannel   = "in_app"
)

// Sweeper applies the active expiry rules to stored measurements.
type Sweeper struct {
	rules        RuleRepository
	measurements MeasurementRepository
	reminders    ReminderRepository
	tx           Transactor
	locker       lock.Locker
	sink         sideeffect.Sink
	now          func() time.Time
}

func NewSweeper(
	rules RuleRepository,
	measurements MeasurementRepository,
	reminders ReminderRepository,
	tx Transactor,
	locker lock.Locker,
	sink sideeffect.Sink,
) *Sweeper {
	if locker == nil {
		locker = lock.NewLocal()
	}
	return &Sweeper{
		rules:        rules,
		measurements: measurements,
		reminders:    reminders,
		tx:           tx,
		locker:       locker,
		sink:         sink,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Criteria translates a rule into the measurements it matches at now.
func Criteria(rule domain.ExpiryRule, now time.Time) repository.ExpiryCriteria {
	column, days := "created_at", defaultExpiryDays
	switch {
	case rule.DaysSinceUpdated != nil:
		column, days = "updated_at", *rule.DaysSinceUpdated
	case rule.DaysSinceCreated != nil:
		days = *rule.DaysSinceCreated
	}
	return repository.ExpiryCriteria{
		Column: column,
		Cutoff: now.AddDate(0, 0, -days),
		Branch: rule.Branch,
	}
}

// Run executes one sweep. Rows already expired never match again, so repeated runs
// only count new work. A concurrent run fails with a conflict.
func (s *Sweeper) Run(ctx context.Context, actor access.Principal) (*SweepResult, error) {
	release, err := s.locker.Acquire(ctx, sweepLockKey)
	if err != nil {
		return nil, err
	}
	defer release()

	rules, err := s.rules.Active(ctx)
	if err != nil {
		if apperr.Is(err, apperr.KindSchemaNotReady) {
			return &SweepResult{}, nil
		}
		return nil, err
	}

	log := logger.FromContext(ctx)
	now := s.now()
	res := &SweepResult{Rules: len(rules)}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, rule := range rules {
			crit := Criteria(rule, now)
			switch rule.Action {
			case domain.ExpiryMark:
				n, err := s.measurements.MarkExpired(ctx, crit)
				if err != nil {
					return err
				}
				res.Marked += n
			case domain.ExpiryRemindOnly:
				n, err := s.remind(ctx, actor, crit, now)
				if apperr.Is(err, apperr.KindSchemaNotReady) {
					log.WithField("rule_id", rule.ID).Warn("reminders table missing; skipping remind_only rule")
					res.Skipped++
					continue
				}
				if err != nil {
					return err
				}
				res.Reminded += n
			default:
				res.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"rules":    res.Rules,
		"marked":   res.Marked,
		"reminded": res.Reminded,
	}).Info("expiry sweep finished")
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "sweep", string(access.Expiry), 0, map[string]any{
		"marked":   res.Marked,
		"reminded": res.Reminded,
	}))
	return res, nil
}

// remind creates one pending refresh reminder per stale measurement that has none.
func (s *Sweeper) remind(ctx context.Context, actor access.Principal, crit repository.ExpiryCriteria, now time.Time) (int64, error) {
	stale, err := s.measurements.Stale(ctx, crit)
	if err != nil || len(stale) == 0 {
		return 0, err
	}
	ids := make([]int64, len(stale))
	for i, m := range stale {
		ids[i] = m.ID
	}
	pending, err := s.reminders.PendingFor(ctx, domain.ReminderMeasurementRefresh, ids)
	if err != nil {
		return 0, err
	}

	var createdBy *int64
	if actor.ID != 0 {
		createdBy = &actor.ID
	}
	var n int64
	for _, m := range stale {
		if pending[m.ID] {
			continue
		}
		id := m.ID
		r := &domain.Reminder{
			CustomerID:    m.CustomerID,
			MeasurementID: &id,
			ReminderType:  domain.ReminderMeasurementRefresh,
			DueAt:         now,
			Status:        domain.ReminderPending,
			Channel:       reminderChannel,
			CreatedBy:     createdBy,
		}
		if err := s.reminders.Create(ctx, r); err != nil {
			return n, err
		}
		pending[m.ID] = true
		n++
	}
	return n, nil
}
