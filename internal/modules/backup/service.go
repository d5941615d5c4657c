package backup

import (
	"context"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/logger"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/pkg/response"
	"tailorshop/internal/sideeffect"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const maxErrorLen = 500

type Service struct {
	src  Sources
	logs LogRepository
	tx   Transactor
	sink sideeffect.Sink
	now  func() time.Time
}

func NewService(src Sources, logs LogRepository, tx Transactor, sink sideeffect.Sink) *Service {
	return &Service{src: src, logs: logs, tx: tx, sink: sink, now: time.Now}
}

func (s *Service) Logs(ctx context.Context, p pagination.Params) ([]domain.BackupLog, int64, error) {
	return s.logs.List(ctx, p)
}

// Export reads every exported table in one transaction so the document is a
// consistent snapshot. The backup log moves running -> completed or failed;
// without a backup_logs table the export still runs, unlogged.
func (s *Service) Export(ctx context.Context, actor access.Principal) (*Document, error) {
	log := logger.FromContext(ctx).WithField("actor_id", actor.ID)
	started := s.now().UTC()

	entry := &domain.BackupLog{Status: domain.BackupRunning, StartedAt: started}
	if actor.ID != 0 {
		entry.StartedBy = &actor.ID
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		if !apperr.Is(err, apperr.KindSchemaNotReady) {
			return nil, err
		}
		log.WithError(err).Warn("backup: running without a backup log")
		entry = nil
	}

	doc := &Document{ExportedAt: started, ExportedBy: actor.ID}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error { return s.collect(ctx, doc) })
	if err != nil {
		s.finish(ctx, log, entry, nil, err)
		return nil, apperr.Wrap(err, "backup export failed")
	}

	if entry != nil {
		doc.BackupID = entry.ID
	}
	s.finish(ctx, log, entry, doc.counts(), nil)
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "export", string(access.Backup), doc.BackupID, doc.counts()))
	log.WithFields(logrus.Fields(doc.counts())).Info("backup: export completed")
	return doc, nil
}

func (s *Service) collect(ctx context.Context, doc *Document) error {
	var err error
	if doc.Customers, err = s.src.Customers.All(ctx); err != nil {
		return err
	}
	if doc.Measurements, err = s.src.Measurements.All(ctx); err != nil {
		return err
	}
	users, err := s.src.Users.All(ctx)
	if err != nil {
		return err
	}
	doc.Users = make([]domain.PublicUser, 0, len(users))
	for i := range users {
		doc.Users = append(doc.Users, users[i].Public())
	}
	if doc.Orders, err = s.src.Orders.All(ctx); err != nil {
		return err
	}
	doc.Fittings, err = s.src.Fittings.All(ctx)
	return err
}

// finish closes the backup log. A failure to record the outcome is logged and
// never replaces the export's own result.
func (s *Service) finish(ctx context.Context, log *logrus.Entry, entry *domain.BackupLog, counts map[string]any, cause error) {
	if entry == nil {
		return
	}
	done := s.now().UTC()
	entry.CompletedAt = &done
	if cause != nil {
		entry.Status = domain.BackupFailed
		entry.ErrorMessage = response.Truncate(cause.Error(), maxErrorLen)
	} else {
		entry.Status = domain.BackupCompleted
		entry.Counts = datatypes.JSONMap(counts)
	}
	if err := s.logs.Update(ctx, entry); err != nil {
		log.WithError(err).WithField("backup_id", entry.ID).Error("backup: could not record outcome")
	}
}
