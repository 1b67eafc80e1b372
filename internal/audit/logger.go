package audit

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/exactfit/customer-web/internal/models"
)

// Sink persists events and serves a customer's activity feed.
type Sink interface {
	Log(ctx context.Context, ev Event) error
	List(ctx context.Context, phone string, page, limit int) ([]models.ActivityLog, int64, error)
}

func toRow(ev Event, now time.Time) models.ActivityLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return models.ActivityLog{
		Phone:     ev.Phone,
		SessionID: ev.SessionID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityRef: ev.EntityRef,
		Metadata:  metaJSON,
		CreatedAt: now,
	}
}

// --------------------------------------------------
// gorm
// --------------------------------------------------

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	row := toRow(ev, time.Now())
	return l.db.WithContext(ctx).Create(&row).Error
}

func (l *Logger) List(ctx context.Context, phone string, page, limit int) ([]models.ActivityLog, int64, error) {
	q := l.db.WithContext(ctx).
		Model(&models.ActivityLog{}).
		Where("phone = ?", phone)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.ActivityLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// --------------------------------------------------
// memory (no DATABASE_URL)
// --------------------------------------------------

// MemorySink keeps the newest perPhone events of each phone in process.
type MemorySink struct {
	mu       sync.Mutex
	perPhone int
	nextID   uint
	rows     map[string][]models.ActivityLog
	now      func() time.Time
}

func NewMemorySink(perPhone int) *MemorySink {
	if perPhone <= 0 {
		perPhone = 200
	}
	return &MemorySink{perPhone: perPhone, rows: make(map[string][]models.ActivityLog), now: time.Now}
}

func (m *MemorySink) Log(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	row := toRow(ev, m.now())
	row.ID = m.nextID

	rows := append(m.rows[ev.Phone], row)
	if len(rows) > m.perPhone {
		rows = rows[len(rows)-m.perPhone:]
	}
	m.rows[ev.Phone] = rows
	return nil
}

func (m *MemorySink) List(_ context.Context, phone string, page, limit int) ([]models.ActivityLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := append([]models.ActivityLog(nil), m.rows[phone]...)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})

	total := int64(len(rows))
	start := (page - 1) * limit
	if start >= len(rows) {
		return []models.ActivityLog{}, total, nil
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total, nil
}
