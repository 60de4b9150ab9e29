package audit

import (
	"go.uber.org/zap"
)

// LoggerAudit writes one AUDIT line per query, tagged with the search
// backend the query is relayed to.
type LoggerAudit struct {
	Logger  *zap.SugaredLogger
	Backend string
}

var _ Audit = (*LoggerAudit)(nil)

func NewLoggerAudit(logger *zap.SugaredLogger, backend string) *LoggerAudit {
	return &LoggerAudit{Logger: logger, Backend: backend}
}

func (d *LoggerAudit) Write(q *QueryData) error {
	d.Logger.Infow("AUDIT",
		"Query", q.Query,
		"User", q.User,
		"RequestID", q.RequestID,
		"Backend", d.Backend,
		"Timestamp", q.Timestamp,
	)
	return nil
}
