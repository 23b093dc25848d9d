package moderation

import (
	"context"
	"errors"
	"sync"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
)

type memReports struct {
	mu   sync.Mutex
	data map[uuid.UUID]models.Report
}

func newMemReports(reports ...models.Report) *memReports {
	s := &memReports{data: make(map[uuid.UUID]models.Report)}
	for _, r := range reports {
		s.data[r.ID] = r
	}
	return s
}

func (s *memReports) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return &r, nil
}

func (s *memReports) CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next models.ReportStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data[id]
	if !ok || r.Status != expected {
		return false, nil
	}
	r.Status = next
	s.data[id] = r
	return true, nil
}

func (s *memReports) status(id uuid.UUID) models.ReportStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[id].Status
}

type memLedger struct {
	mu      sync.Mutex
	entries []models.ModerationAction
	err     error
}

func (l *memLedger) Append(ctx context.Context, a *models.ModerationAction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.entries = append(l.entries, *a)
	return nil
}

func (l *memLedger) all() []models.ModerationAction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.ModerationAction(nil), l.entries...)
}

type memUsers struct {
	mu     sync.Mutex
	status map[uuid.UUID]models.UserStatus
	calls  int
	err    error
	// barrier, when set, is waited on inside SetStatus.
	barrier *sync.WaitGroup
}

func newMemUsers(ids ...uuid.UUID) *memUsers {
	u := &memUsers{status: make(map[uuid.UUID]models.UserStatus)}
	for _, id := range ids {
		u.status[id] = models.UserActive
	}
	return u
}

func (u *memUsers) SetStatus(ctx context.Context, userID uuid.UUID, status models.UserStatus, reason string, actorID uuid.UUID) error {
	if u.barrier != nil {
		u.barrier.Done()
		u.barrier.Wait()
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.err != nil {
		return u.err
	}
	if _, ok := u.status[userID]; !ok {
		return errors.New("user not found")
	}
	u.status[userID] = status
	return nil
}

func (u *memUsers) get(id uuid.UUID) models.UserStatus {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.status[id]
}

type memContent struct {
	mu      sync.Mutex
	removed map[uuid.UUID]models.ContentType
	locked  map[uuid.UUID]bool
	err     error
}

func newMemContent() *memContent {
	return &memContent{removed: make(map[uuid.UUID]models.ContentType), locked: make(map[uuid.UUID]bool)}
}

func (c *memContent) Remove(ctx context.Context, id uuid.UUID, t models.ContentType) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.removed[id] = t
	return nil
}

func (c *memContent) ToggleLock(ctx context.Context, topicID uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	c.locked[topicID] = !c.locked[topicID]
	return c.locked[topicID], nil
}

type sentMessage struct {
	to            uuid.UUID
	subject, body string
}

type memMessages struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (m *memMessages) Send(ctx context.Context, userID uuid.UUID, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMessage{userID, subject, body})
	return nil
}

// probe reports a topic as existing for the first visibleAfter calls.
type probe struct {
	mu           sync.Mutex
	calls        int
	visibleAfter int
	err          error
}

func (p *probe) TopicExists(ctx context.Context, id uuid.UUID) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return false, p.err
	}
	return p.calls <= p.visibleAfter, nil
}

func (p *probe) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
