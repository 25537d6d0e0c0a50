package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/venturecanvas/assessment-backend/internal/apierr"
	"github.com/venturecanvas/assessment-backend/internal/types"
)

func makeQuestion(categoryOrder, questionOrder int) *types.Question {
	return &types.Question{
		ID: uuid.New(),
		Category: &types.Category{
			ID:    uuid.New(),
			Name:  fmt.Sprintf("Category %d", categoryOrder),
			Order: categoryOrder,
		},
		Content: fmt.Sprintf("Question %d.%d", categoryOrder, questionOrder),
		Order:   questionOrder,
	}
}

type recordingSaver struct {
	calls   int
	batches [][]Entry
	err     error
	block   chan struct{}
}

func (rs *recordingSaver) SaveResponses(ctx context.Context, assessmentID uuid.UUID, entries []Entry) error {
	if rs.block != nil {
		<-rs.block
	}
	rs.calls++
	rs.batches = append(rs.batches, entries)
	return rs.err
}

func TestSetConfidenceBounds(t *testing.T) {
	cases := []struct {
		name    string
		level   int
		wantErr bool
	}{
		{name: "below_min", level: 0, wantErr: true},
		{name: "min", level: 1, wantErr: false},
		{name: "mid", level: 3, wantErr: false},
		{name: "max", level: 5, wantErr: false},
		{name: "above_max", level: 6, wantErr: true},
		{name: "negative", level: -2, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(uuid.New(), []*types.Question{makeQuestion(1, 1)}, nil)
			err := s.SetConfidence(tc.level)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("SetConfidence(%d) accepted an out-of-range value", tc.level)
				}
				if apierr.CodeOf(err) != apierr.CodeValidation {
					t.Fatalf("SetConfidence(%d) code = %q, want %q", tc.level, apierr.CodeOf(err), apierr.CodeValidation)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetConfidence(%d) rejected a valid value: %v", tc.level, err)
			}
		})
	}
}

func TestCompositeOrdering(t *testing.T) {
	// Deliberately shuffled input: category 2 first, question orders reversed.
	q21 := makeQuestion(2, 1)
	q12 := makeQuestion(1, 2)
	q11 := makeQuestion(1, 1)
	s := New(uuid.New(), []*types.Question{q21, q12, q11}, nil)

	got := s.Questions()
	want := []*types.Question{q11, q12, q21}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Fatalf("position %d: got %q, want %q", i, got[i].Content, want[i].Content)
		}
	}
}

func TestAdvanceStopsAtLastQuestion(t *testing.T) {
	questions := []*types.Question{makeQuestion(1, 1), makeQuestion(1, 2)}
	s := New(uuid.New(), questions, nil)
	saver := &recordingSaver{}

	done, err := s.Advance(context.Background(), saver)
	if err != nil {
		t.Fatalf("first Advance: %v", err)
	}
	if done {
		t.Fatal("first Advance signalled completion too early")
	}
	if s.Index() != 1 {
		t.Fatalf("index after first Advance = %d, want 1", s.Index())
	}

	// At the last question, repeated advances signal completion and never
	// move the cursor past the end.
	for i := 0; i < 3; i++ {
		done, err = s.Advance(context.Background(), saver)
		if err != nil {
			t.Fatalf("Advance at last question: %v", err)
		}
		if !done {
			t.Fatal("Advance at last question did not signal completion")
		}
		if s.Index() != 1 {
			t.Fatalf("index moved past the last question: %d", s.Index())
		}
	}
}

func TestAdvanceFailedSaveKeepsIndex(t *testing.T) {
	s := New(uuid.New(), []*types.Question{makeQuestion(1, 1), makeQuestion(1, 2)}, nil)
	if err := s.SetAnswer("draft answer"); err != nil {
		t.Fatalf("SetAnswer: %v", err)
	}
	if err := s.SetConfidence(4); err != nil {
		t.Fatalf("SetConfidence: %v", err)
	}

	saver := &recordingSaver{err: fmt.Errorf("store unavailable")}
	done, err := s.Advance(context.Background(), saver)
	if err == nil {
		t.Fatal("Advance swallowed the save failure")
	}
	if apierr.CodeOf(err) != apierr.CodePersistence {
		t.Fatalf("code = %q, want %q", apierr.CodeOf(err), apierr.CodePersistence)
	}
	if done {
		t.Fatal("failed Advance signalled completion")
	}
	if s.Index() != 0 {
		t.Fatalf("failed Advance moved the index to %d", s.Index())
	}

	// Retry succeeds and moves forward without losing the draft.
	saver.err = nil
	done, err = s.Advance(context.Background(), saver)
	if err != nil {
		t.Fatalf("retried Advance: %v", err)
	}
	if done || s.Index() != 1 {
		t.Fatalf("retried Advance: done=%v index=%d, want false/1", done, s.Index())
	}
	last := saver.batches[len(saver.batches)-1]
	if len(last) != 1 || last[0].Answer != "draft answer" || last[0].Confidence != 4 {
		t.Fatalf("retried batch lost the draft: %+v", last)
	}
}

func TestAdvanceSerializesOverlappingSaves(t *testing.T) {
	s := New(uuid.New(), []*types.Question{makeQuestion(1, 1), makeQuestion(1, 2)}, nil)
	block := make(chan struct{})
	saver := &recordingSaver{block: block}

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Advance(context.Background(), saver)
		firstDone <- err
	}()

	// Second Advance while the first save is still in flight must fail fast.
	var overlapped error
	for {
		_, err := s.Advance(context.Background(), &recordingSaver{})
		if err == ErrSaveInFlight {
			overlapped = err
			break
		}
		// The goroutine may not have taken the lock yet; spin until it has.
		s.Retreat()
	}
	if overlapped != ErrSaveInFlight {
		t.Fatalf("overlapping Advance error = %v, want ErrSaveInFlight", overlapped)
	}

	close(block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first Advance: %v", err)
	}
}

func TestResumeSeedsAnswersAndIndex(t *testing.T) {
	assessmentID := uuid.New()
	q1 := makeQuestion(1, 1)
	q2 := makeQuestion(1, 2)
	q3 := makeQuestion(2, 1)
	prior := []*types.Response{
		{AssessmentID: assessmentID, QuestionID: q1.ID, Answer: "first", ConfidenceLevel: 5},
		{AssessmentID: assessmentID, QuestionID: q2.ID, Answer: "second", ConfidenceLevel: 2},
	}

	s := New(assessmentID, []*types.Question{q3, q2, q1}, prior)

	if s.Index() != 2 {
		t.Fatalf("resume index = %d, want 2 (first unanswered question)", s.Index())
	}
	answers := s.Answers()
	if got := answers[q1.ID]; got.Answer != "first" || got.Confidence != 5 {
		t.Fatalf("q1 draft = %+v, want the persisted response", got)
	}
	if got := answers[q2.ID]; got.Answer != "second" || got.Confidence != 2 {
		t.Fatalf("q2 draft = %+v, want the persisted response", got)
	}
	if _, ok := answers[q3.ID]; ok {
		t.Fatal("unanswered question has a draft")
	}
}

func TestResumeFullyAnsweredClampsToLast(t *testing.T) {
	assessmentID := uuid.New()
	q1 := makeQuestion(1, 1)
	q2 := makeQuestion(1, 2)
	prior := []*types.Response{
		{AssessmentID: assessmentID, QuestionID: q1.ID, Answer: "a", ConfidenceLevel: 3},
		{AssessmentID: assessmentID, QuestionID: q2.ID, Answer: "b", ConfidenceLevel: 3},
	}

	s := New(assessmentID, []*types.Question{q1, q2}, prior)
	if s.Index() != 1 {
		t.Fatalf("fully answered resume index = %d, want last question", s.Index())
	}
}

func TestRetreatFloorsAtZero(t *testing.T) {
	s := New(uuid.New(), []*types.Question{makeQuestion(1, 1), makeQuestion(1, 2)}, nil)
	s.Retreat()
	if s.Index() != 0 {
		t.Fatalf("Retreat below zero: index = %d", s.Index())
	}

	if _, err := s.Advance(context.Background(), &recordingSaver{}); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	s.Retreat()
	s.Retreat()
	s.Retreat()
	if s.Index() != 0 {
		t.Fatalf("index after repeated Retreat = %d, want 0", s.Index())
	}
}

func TestSnapshotFollowsQuestionOrder(t *testing.T) {
	q2 := makeQuestion(1, 2)
	q1 := makeQuestion(1, 1)
	s := New(uuid.New(), []*types.Question{q2, q1}, []*types.Response{
		{QuestionID: q2.ID, Answer: "later", ConfidenceLevel: 1},
		{QuestionID: q1.ID, Answer: "earlier", ConfidenceLevel: 2},
	})

	entries := s.Snapshot()
	if len(entries) != 2 {
		t.Fatalf("snapshot size = %d, want 2", len(entries))
	}
	if entries[0].QuestionID != q1.ID || entries[1].QuestionID != q2.ID {
		t.Fatal("snapshot not in question display order")
	}
}
