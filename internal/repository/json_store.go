package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// JSONTaskStore keeps the whole collection as a single JSON array at an afs URL
// (a local path, file://, mem://, or any scheme afs has registered). The record
// layout matches task lists exported from the browser planner.
type JSONTaskStore struct {
	fs  afs.Service
	url string
	mu  sync.Mutex
}

// NewJSONTaskStore creates a store for the document at url.
func NewJSONTaskStore(fs afs.Service, url string) *JSONTaskStore {
	if fs == nil {
		fs = afs.New()
	}
	return &JSONTaskStore{fs: fs, url: url}
}

var (
	_ TaskStore = (*JSONTaskStore)(nil)
	_ StoreTx   = (*JSONTaskStore)(nil)
)

// URL returns the document location.
func (s *JSONTaskStore) URL() string {
	return s.url
}

func (s *JSONTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	tasks, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return findTask(tasks, id)
}

func (s *JSONTaskStore) Load(ctx context.Context) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *JSONTaskStore) Save(ctx context.Context, tasks []*domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, tasks)
}

// WithinStore serializes fn against other callers. Saves made by fn are
// buffered and written once fn succeeds.
func (s *JSONTaskStore) WithinStore(ctx context.Context, fn func(ctx context.Context, store TaskStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := &jsonTxView{store: s}
	if err := fn(ctx, view); err != nil {
		return err
	}
	if !view.dirty {
		return nil
	}
	return s.save(ctx, view.pending)
}

func findTask(tasks []*domain.Task, id string) (*domain.Task, error) {
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

func (s *JSONTaskStore) load(ctx context.Context) ([]*domain.Task, error) {
	exists, err := s.fs.Exists(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("checking task document %s: %w", s.url, err)
	}
	if !exists {
		return []*domain.Task{}, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("reading task document %s: %w", s.url, err)
	}
	return decodeTasks(data), nil
}

func (s *JSONTaskStore) save(ctx context.Context, tasks []*domain.Task) error {
	records := make([]taskRecord, len(tasks))
	for i, t := range tasks {
		records[i] = toRecord(t)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := s.fs.Upload(ctx, s.url, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing task document %s: %w", s.url, err)
	}
	return nil
}

// jsonTxView reads through to the document until the first Save, then serves
// the buffered collection.
type jsonTxView struct {
	store   *JSONTaskStore
	pending []*domain.Task
	dirty   bool
}

func (v *jsonTxView) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	tasks, err := v.Load(ctx)
	if err != nil {
		return nil, err
	}
	return findTask(tasks, id)
}

func (v *jsonTxView) Load(ctx context.Context) ([]*domain.Task, error) {
	if v.dirty {
		out := make([]*domain.Task, len(v.pending))
		copy(out, v.pending)
		return out, nil
	}
	return v.store.load(ctx)
}

func (v *jsonTxView) Save(_ context.Context, tasks []*domain.Task) error {
	v.pending = append([]*domain.Task(nil), tasks...)
	v.dirty = true
	return nil
}

// taskRecord is the on-disk shape of one task.
type taskRecord struct {
	ID            recordID `json:"id"`
	Title         string   `json:"title"`
	Subject       string   `json:"subject"`
	Duration      int      `json:"duration"`
	DueDate       string   `json:"dueDate"`
	Priority      string   `json:"priority"`
	Completed     bool     `json:"completed"`
	ScheduledDate *string  `json:"scheduledDate"`
	ScheduledSlot *string  `json:"scheduledSlot"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}

// recordID accepts both string ids and the numeric ids the browser planner wrote.
type recordID string

func (id *recordID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = recordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = recordID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = recordID(n.String())
	return nil
}

// decodeTasks turns a document into tasks. A document that is not a JSON
// array yields no tasks; records that cannot become a valid task are dropped.
func decodeTasks(data []byte) []*domain.Task {
	tasks := []*domain.Task{}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return tasks
	}
	seen := make(map[string]bool, len(raw))
	for _, msg := range raw {
		var rec taskRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			continue
		}
		t, ok := fromRecord(rec)
		if !ok || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks
}

func fromRecord(rec taskRecord) (*domain.Task, bool) {
	id := strings.TrimSpace(string(rec.ID))
	due, err := domain.ParseDate(rec.DueDate)
	if id == "" || err != nil || strings.TrimSpace(rec.Title) == "" || rec.Duration <= 0 {
		return nil, false
	}
	t := &domain.Task{
		ID:          id,
		Title:       rec.Title,
		Subject:     rec.Subject,
		DurationMin: rec.Duration,
		DueDate:     due,
		Priority:    domain.ParsePriority(rec.Priority),
		Completed:   rec.Completed,
		CreatedAt:   parseTimestamp(rec.CreatedAt),
		UpdatedAt:   parseTimestamp(rec.UpdatedAt),
	}
	if rec.ScheduledDate != nil && rec.ScheduledSlot != nil {
		if date, err := domain.ParseDate(*rec.ScheduledDate); err == nil && *rec.ScheduledSlot != "" {
			t.Place(date, domain.SlotKey(*rec.ScheduledSlot))
		}
	}
	return t, true
}

func toRecord(t *domain.Task) taskRecord {
	rec := taskRecord{
		ID:        recordID(t.ID),
		Title:     t.Title,
		Subject:   t.Subject,
		Duration:  t.DurationMin,
		DueDate:   domain.DateKey(t.DueDate),
		Priority:  string(t.Priority),
		Completed: t.Completed,
	}
	if t.IsScheduled() {
		date := domain.DateKey(*t.ScheduledDate)
		slot := string(t.ScheduledSlot)
		rec.ScheduledDate = &date
		rec.ScheduledSlot = &slot
	}
	if !t.CreatedAt.IsZero() {
		rec.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !t.UpdatedAt.IsZero() {
		rec.UpdatedAt = t.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return rec
}
