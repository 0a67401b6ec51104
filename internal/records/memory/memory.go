package memory

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"outreach/internal/core"
	"outreach/internal/records"
)

// Store keeps every record in process memory. It backs DATA_BACKEND=memory
// and the handler tests.
type Store struct {
	mu        sync.Mutex
	nextID    int64
	prospects map[int64]core.Prospect
	logs      []core.CallLog
	scripts   []core.Script
	now       func() time.Time
}

var _ records.Store = (*Store)(nil)

func New(scripts []core.Script) *Store {
	s := &Store{
		prospects: map[int64]core.Prospect{},
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, sc := range scripts {
		if sc.Validate() != nil {
			continue
		}
		sc.ID = s.id()
		sc.CreatedAt = s.now()
		s.scripts = append(s.scripts, sc)
	}
	return s
}

// NewFromFiles seeds scripts from base/seed_scripts.txt, one "Name | Content"
// per line. Blank lines and lines starting with # are skipped.
func NewFromFiles(base string) *Store {
	scripts := readScripts(filepath.Join(base, "seed_scripts.txt"))
	if len(scripts) == 0 {
		scripts = DefaultScripts()
	}
	return New(scripts)
}

// DefaultScripts is the hook library used when no seed file exists.
func DefaultScripts() []core.Script {
	return []core.Script{
		{Name: "Hook A: Competition Report", Content: "I've just completed a competition report on your area and I see that Google is promoting your competitor over you."},
		{Name: "Hook B: Gatekeeper (10/10)", Content: "I'm calling to share this data with the owner. Are they available?"},
		{Name: "Hook C: Trust Leak", Content: "Your website is losing customers to a competitor with more reviews. My job is to fix that."},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) ListProspects(_ context.Context) ([]core.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Prospect, 0, len(s.prospects))
	for _, p := range s.prospects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) GetProspect(_ context.Context, id int64) (core.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.prospects[id]
	if !ok {
		return core.Prospect{}, records.ErrNotFound
	}
	return p, nil
}

func (s *Store) CreateProspect(_ context.Context, p core.Prospect) (core.Prospect, error) {
	if err := p.Validate(); err != nil {
		return core.Prospect{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	p.CreatedAt = s.now()
	if p.Status == "" {
		p.Status = core.StatusPending
	}
	s.prospects[p.ID] = p
	return p, nil
}

func (s *Store) UpdateProspect(_ context.Context, p core.Prospect) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.prospects[p.ID]
	if !ok {
		return records.ErrNotFound
	}
	p.CreatedAt = cur.CreatedAt
	if p.Status == "" {
		p.Status = cur.Status
	}
	s.prospects[p.ID] = p
	return nil
}

func (s *Store) UpdateProspectStatus(_ context.Context, id int64, status core.ProspectStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.prospects[id]
	if !ok {
		return records.ErrNotFound
	}
	p.Status = status
	s.prospects[id] = p
	return nil
}

func (s *Store) DeleteProspect(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prospects[id]; !ok {
		return records.ErrNotFound
	}
	kept := s.logs[:0]
	for _, l := range s.logs {
		if l.ProspectID != id {
			kept = append(kept, l)
		}
	}
	s.logs = kept
	delete(s.prospects, id)
	return nil
}

func (s *Store) CreateCallLog(_ context.Context, l core.CallLog) (core.CallLog, error) {
	if err := l.Validate(); err != nil {
		return core.CallLog{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prospects[l.ProspectID]; !ok {
		return core.CallLog{}, records.ErrNotFound
	}
	l.ID = s.id()
	l.CreatedAt = s.now()
	l.Objections = append([]string(nil), l.Objections...)
	s.logs = append(s.logs, l)
	return l, nil
}

func (s *Store) GetCallLog(_ context.Context, id int64) (core.CallLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return core.CallLog{}, records.ErrNotFound
}

func (s *Store) ListCallLogs(_ context.Context) ([]core.CallLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.CallLog(nil), s.logs...), nil
}

func (s *Store) ListCallLogsByProspect(_ context.Context, prospectID int64) ([]core.CallLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.CallLog
	for _, l := range s.logs {
		if l.ProspectID == prospectID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) ListScripts(_ context.Context) ([]core.Script, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Script(nil), s.scripts...), nil
}

func (s *Store) CreateScript(_ context.Context, sc core.Script) (core.Script, error) {
	if err := sc.Validate(); err != nil {
		return core.Script{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sc.ID = s.id()
	sc.CreatedAt = s.now()
	s.scripts = append(s.scripts, sc)
	return sc, nil
}

func (s *Store) DeleteScript(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sc := range s.scripts {
		if sc.ID == id {
			s.scripts = append(s.scripts[:i], s.scripts[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

func (s *Store) Close() error { return nil }

func readScripts(path string) []core.Script {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []core.Script
	seen := map[string]struct{}{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, content, ok := strings.Cut(line, "|")
		if !ok {
			continue
		}
		name, content = strings.TrimSpace(name), strings.TrimSpace(content)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, core.Script{Name: name, Content: content})
	}
	return out
}
