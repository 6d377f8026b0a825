package serving

import (
	"context"
	"time"

	"github.com/dizzycheck/platform/pkg/common/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ScreeningLog is the persisted, de-identified record of one screening.
type ScreeningLog struct {
	ID             uuid.UUID         `gorm:"primaryKey;column:id" json:"id"`
	SchemaVersion  string            `gorm:"column:schema_version" json:"schema_version"`
	ModelVersion   string            `gorm:"column:model_version;index" json:"model_version"`
	Probabilities  datatypes.JSONMap `gorm:"column:probabilities" json:"probabilities"`
	LikelyVertigo  bool              `gorm:"column:likely_vertigo" json:"likely_vertigo"`
	LikelyMigraine bool              `gorm:"column:likely_migraine" json:"likely_migraine"`
	LikelyPPPD     bool              `gorm:"column:likely_pppd" json:"likely_pppd"`
	Scaled         bool              `gorm:"column:scaled" json:"scaled"`
	Failed         bool              `gorm:"column:failed" json:"failed"`
	Error          string            `gorm:"column:error" json:"error,omitempty"`
	LatencyMs      float64           `gorm:"column:latency_ms" json:"latency_ms"`
	CompletedAt    time.Time         `gorm:"column:completed_at;index" json:"completed_at"`
	CreatedAt      time.Time         `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides gorm naming.
func (ScreeningLog) TableName() string {
	return "screening_logs"
}

// Summary aggregates stored screenings.
type Summary struct {
	Total    int64            `json:"total"`
	Failed   int64            `json:"failed"`
	Degraded int64            `json:"degraded"`
	Likely   map[string]int64 `json:"likely"`
}

// NewScreeningLog maps an outcome event to a row. Outcomes without a parseable ID get
// a fresh one.
func NewScreeningLog(o models.ScreeningOutcome) ScreeningLog {
	id, err := uuid.Parse(o.ScreeningID)
	if err != nil {
		id = uuid.New()
	}
	probabilities := make(map[string]interface{}, len(o.Probabilities))
	for k, v := range o.Probabilities {
		probabilities[k] = v
	}
	log := ScreeningLog{
		ID:            id,
		SchemaVersion: o.SchemaVersion,
		ModelVersion:  o.ModelVersion,
		Probabilities: datatypes.JSONMap(probabilities),
		Scaled:        o.Scaled,
		Failed:        o.Failed,
		Error:         o.Error,
		LatencyMs:     o.LatencyMs,
		CompletedAt:   o.CompletedAt.UTC(),
		CreatedAt:     time.Now().UTC(),
	}
	for _, name := range o.Likely {
		switch name {
		case "Vertigo":
			log.LikelyVertigo = true
		case "Migraine":
			log.LikelyMigraine = true
		case "PPPD":
			log.LikelyPPPD = true
		}
	}
	return log
}

// Repository handles screening log queries.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&ScreeningLog{})
}

// Record stores an outcome. Redelivered events with a known ID are ignored.
func (r *Repository) Record(ctx context.Context, o models.ScreeningOutcome) error {
	log := NewScreeningLog(o)
	return r.db.WithContext(ctx).
		Where(ScreeningLog{ID: log.ID}).
		FirstOrCreate(&log).Error
}

// Recent returns the most recent screening logs up to limit.
func (r *Repository) Recent(ctx context.Context, limit int) ([]ScreeningLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var logs []ScreeningLog
	err := r.db.WithContext(ctx).
		Order("completed_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *Repository) Summary(ctx context.Context) (Summary, error) {
	summary := Summary{Likely: map[string]int64{}}
	db := r.db.WithContext(ctx).Model(&ScreeningLog{})

	counts := []struct {
		dest  *int64
		query string
		args  []interface{}
	}{
		{&summary.Total, "", nil},
		{&summary.Failed, "failed = ?", []interface{}{true}},
		{&summary.Degraded, "failed = ? AND scaled = ?", []interface{}{false, false}},
	}
	for _, c := range counts {
		q := db.Session(&gorm.Session{})
		if c.query != "" {
			q = q.Where(c.query, c.args...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return Summary{}, err
		}
	}

	for name, column := range map[string]string{
		"Vertigo":  "likely_vertigo",
		"Migraine": "likely_migraine",
		"PPPD":     "likely_pppd",
	} {
		var n int64
		if err := db.Session(&gorm.Session{}).Where(column+" = ?", true).Count(&n).Error; err != nil {
			return Summary{}, err
		}
		summary.Likely[name] = n
	}
	return summary, nil
}
