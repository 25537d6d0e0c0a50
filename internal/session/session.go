package session

import (
  "context"
  "fmt"
  "sort"
  "sync"

  "github.com/google/uuid"

  "github.com/venturecanvas/assessment-backend/internal/apierr"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

// ErrSaveInFlight is returned when Advance is called while a previous save
// is still running. Callers should disable navigation until the save
// settles rather than queueing overlapping upserts.
var ErrSaveInFlight = fmt.Errorf("a save is already in flight")

// Answer is the in-memory draft for a single question. Nothing is persisted
// until Advance runs.
type Answer struct {
  Answer     string `json:"answer"`
  Confidence int    `json:"confidence"`
}

// Entry is one row of the upsert batch handed to the Saver.
type Entry struct {
  QuestionID uuid.UUID
  Answer     string
  Confidence int
}

// Saver persists a batch of drafted answers keyed by
// (assessment_id, question_id).
type Saver interface {
  SaveResponses(ctx context.Context, assessmentID uuid.UUID, entries []Entry) error
}

// Session walks a user through the ordered question list one question at a
// time. The question order is snapshotted at construction: reference-data
// reordering mid-session does not move questions under the user.
type Session struct {
  mu           sync.Mutex
  assessmentID uuid.UUID
  questions    []*types.Question
  answers      map[uuid.UUID]Answer
  index        int
  saving       bool
}

// New builds a session over the given questions, sorted by the explicit
// composite key (category order, question order). Prior responses seed the
// answer map and the session resumes at the first unanswered question,
// clamped to the last question when everything is answered.
func New(assessmentID uuid.UUID, questions []*types.Question, responses []*types.Response) *Session {
  ordered := make([]*types.Question, len(questions))
  copy(ordered, questions)
  sort.SliceStable(ordered, func(i, j int) bool {
    oi, oj := categoryOrder(ordered[i]), categoryOrder(ordered[j])
    if oi != oj {
      return oi < oj
    }
    return ordered[i].Order < ordered[j].Order
  })

  answers := make(map[uuid.UUID]Answer, len(responses))
  for _, resp := range responses {
    if resp == nil {
      continue
    }
    answers[resp.QuestionID] = Answer{
      Answer:     resp.Answer,
      Confidence: resp.ConfidenceLevel,
    }
  }

  index := 0
  for i, q := range ordered {
    index = i
    if _, ok := answers[q.ID]; !ok {
      break
    }
  }

  return &Session{
    assessmentID: assessmentID,
    questions:    ordered,
    answers:      answers,
    index:        index,
  }
}

func categoryOrder(q *types.Question) int {
  if q.Category == nil {
    return 0
  }
  return q.Category.Order
}

// Current returns the question at the cursor and its draft answer.
func (s *Session) Current() (*types.Question, Answer, bool) {
  s.mu.Lock()
  defer s.mu.Unlock()
  if len(s.questions) == 0 {
    return nil, Answer{}, false
  }
  q := s.questions[s.index]
  return q, s.answers[q.ID], true
}

// SetAnswer mutates the draft answer for the current question in memory
// only.
func (s *Session) SetAnswer(text string) error {
  s.mu.Lock()
  defer s.mu.Unlock()
  if len(s.questions) == 0 {
    return apierr.NotFound(fmt.Errorf("no questions in session"))
  }
  q := s.questions[s.index]
  draft := s.answers[q.ID]
  draft.Answer = text
  s.answers[q.ID] = draft
  return nil
}

// SetConfidence mutates the draft confidence for the current question.
// Values outside [1,5] are rejected, never clamped silently.
func (s *Session) SetConfidence(level int) error {
  s.mu.Lock()
  defer s.mu.Unlock()
  if len(s.questions) == 0 {
    return apierr.NotFound(fmt.Errorf("no questions in session"))
  }
  if level < types.ConfidenceMin || level > types.ConfidenceMax {
    return apierr.Validation(fmt.Errorf("confidence must be between %d and %d, got %d", types.ConfidenceMin, types.ConfidenceMax, level))
  }
  q := s.questions[s.index]
  draft := s.answers[q.ID]
  draft.Confidence = level
  s.answers[q.ID] = draft
  return nil
}

// Advance persists the drafted answers through the saver, then moves the
// cursor forward. At the last question it reports completion instead of
// incrementing. A failed save keeps the cursor in place so no progress is
// silently skipped; the caller may retry. Overlapping calls fail fast with
// ErrSaveInFlight.
func (s *Session) Advance(ctx context.Context, saver Saver) (bool, error) {
  s.mu.Lock()
  if len(s.questions) == 0 {
    s.mu.Unlock()
    return false, apierr.NotFound(fmt.Errorf("no questions in session"))
  }
  if s.saving {
    s.mu.Unlock()
    return false, ErrSaveInFlight
  }
  s.saving = true
  entries := s.snapshotLocked()
  s.mu.Unlock()

  err := saver.SaveResponses(ctx, s.assessmentID, entries)

  s.mu.Lock()
  defer s.mu.Unlock()
  s.saving = false
  if err != nil {
    return false, apierr.Persistence(fmt.Errorf("save progress: %w", err))
  }
  if s.index >= len(s.questions)-1 {
    return true, nil
  }
  s.index++
  return false, nil
}

// Retreat moves the cursor back one question, floored at zero. Nothing is
// persisted.
func (s *Session) Retreat() {
  s.mu.Lock()
  defer s.mu.Unlock()
  if s.index > 0 {
    s.index--
  }
}

// Index returns the zero-based cursor position.
func (s *Session) Index() int {
  s.mu.Lock()
  defer s.mu.Unlock()
  return s.index
}

// Len returns the number of questions in the snapshot.
func (s *Session) Len() int {
  s.mu.Lock()
  defer s.mu.Unlock()
  return len(s.questions)
}

// Questions returns the snapshotted, ordered question list.
func (s *Session) Questions() []*types.Question {
  s.mu.Lock()
  defer s.mu.Unlock()
  out := make([]*types.Question, len(s.questions))
  copy(out, s.questions)
  return out
}

// Answers returns a copy of the draft answer map.
func (s *Session) Answers() map[uuid.UUID]Answer {
  s.mu.Lock()
  defer s.mu.Unlock()
  out := make(map[uuid.UUID]Answer, len(s.answers))
  for k, v := range s.answers {
    out[k] = v
  }
  return out
}

// Snapshot returns the drafted entries in question order, ready for an
// upsert batch.
func (s *Session) Snapshot() []Entry {
  s.mu.Lock()
  defer s.mu.Unlock()
  return s.snapshotLocked()
}

func (s *Session) snapshotLocked() []Entry {
  entries := make([]Entry, 0, len(s.answers))
  for _, q := range s.questions {
    draft, ok := s.answers[q.ID]
    if !ok {
      continue
    }
    entries = append(entries, Entry{
      QuestionID: q.ID,
      Answer:     draft.Answer,
      Confidence: draft.Confidence,
    })
  }
  return entries
}
