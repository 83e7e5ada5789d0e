package core

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// recordingSink collects drafts and can fail on the Nth call.
type recordingSink struct {
	mu      sync.Mutex
	created []TaskDraft
	failAt  int // 1-based; 0 never fails
}

func (s *recordingSink) CreateTask(_ context.Context, d TaskDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAt > 0 && len(s.created)+1 == s.failAt {
		return errors.New("sink unavailable")
	}
	s.created = append(s.created, d)
	return nil
}

// =============================================================================
// Scenarios
// =============================================================================

func TestImportSession_Scenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("A csv happy path", func(t *testing.T) {
		s := NewImportSession("u1")
		err := s.RunFileImport(ctx, []byte("title,category,startTime,endTime\nTeam Meeting,work,09:00,10:30\n"), KindCSV)
		if err != nil {
			t.Fatalf("RunFileImport() unexpected error: %v", err)
		}
		p := s.Snapshot()
		want := TaskDraft{Title: "Team Meeting", Category: CategoryWork, StartTime: "09:00", EndTime: "10:30"}
		if len(p.Drafts) != 1 || p.Drafts[0] != want {
			t.Errorf("Drafts = %+v, want [%+v]", p.Drafts, want)
		}
		if p.Err != nil {
			t.Errorf("Err = %v, want nil", p.Err)
		}
	})

	t.Run("B text four segments", func(t *testing.T) {
		s := NewImportSession("u1")
		if err := s.RunTextImport(ctx, "Exercise | health | 07:00 | 08:00"); err != nil {
			t.Fatalf("RunTextImport() unexpected error: %v", err)
		}
		want := TaskDraft{Title: "Exercise", Category: CategoryHealth, StartTime: "07:00", EndTime: "08:00"}
		if p := s.Snapshot(); len(p.Drafts) != 1 || p.Drafts[0] != want {
			t.Errorf("Drafts = %+v, want [%+v]", p.Drafts, want)
		}
	})

	t.Run("C text five segments", func(t *testing.T) {
		s := NewImportSession("u1")
		if err := s.RunTextImport(ctx, "Meeting | Discuss roadmap | work | 09:00 | 10:00"); err != nil {
			t.Fatalf("RunTextImport() unexpected error: %v", err)
		}
		p := s.Snapshot()
		if len(p.Drafts) != 1 || p.Drafts[0].Description != "Discuss roadmap" || p.Drafts[0].Category != CategoryWork {
			t.Errorf("Drafts = %+v", p.Drafts)
		}
	})

	t.Run("D time inversion rejected", func(t *testing.T) {
		s := NewImportSession("u1")
		err := s.RunTextImport(ctx, "Task | work | 10:00 | 09:00")
		if !errors.Is(err, ErrNoValidRows) {
			t.Fatalf("RunTextImport() error = %v, want ErrNoValidRows", err)
		}
		p := s.Snapshot()
		if len(p.Drafts) != 0 || !errors.Is(p.Err, ErrNoValidRows) {
			t.Errorf("Snapshot = %+v, want empty drafts with ErrNoValidRows", p)
		}
		if p.Report.Rejected != 1 {
			t.Errorf("Report.Rejected = %d, want 1", p.Report.Rejected)
		}
	})

	t.Run("E malformed time rejected", func(t *testing.T) {
		s := NewImportSession("u1")
		err := s.RunFileImport(ctx, []byte("title,category,startTime,endTime\nNight,work,24:10,23:00\nDay,work,08:00,09:00\n"), KindCSV)
		if err != nil {
			t.Fatalf("RunFileImport() unexpected error: %v", err)
		}
		p := s.Snapshot()
		if len(p.Drafts) != 1 || p.Drafts[0].Title != "Day" {
			t.Errorf("Drafts = %+v, want only Day", p.Drafts)
		}
	})

	t.Run("F unknown category defaulted", func(t *testing.T) {
		s := NewImportSession("u1")
		if err := s.RunTextImport(ctx, "Paint | xyz | 15:00 | 16:00"); err != nil {
			t.Fatalf("RunTextImport() unexpected error: %v", err)
		}
		if p := s.Snapshot(); len(p.Drafts) != 1 || p.Drafts[0].Category != CategoryPersonal {
			t.Errorf("Drafts = %+v, want category personal", p.Drafts)
		}
	})
}

// =============================================================================
// State transitions
// =============================================================================

func TestImportSession_ParseReplacesPending(t *testing.T) {
	ctx := context.Background()
	s := NewImportSession("u1")

	if err := s.RunTextImport(ctx, "A|work|08:00|09:00\nB|work|09:00|10:00"); err != nil {
		t.Fatalf("first parse: %v", err)
	}
	if err := s.RunTextImport(ctx, "C|work|10:00|11:00"); err != nil {
		t.Fatalf("second parse: %v", err)
	}

	p := s.Snapshot()
	if len(p.Drafts) != 1 || p.Drafts[0].Title != "C" {
		t.Errorf("Drafts = %+v, want only C", p.Drafts)
	}
}

func TestImportSession_EmptyTextKeepsPending(t *testing.T) {
	ctx := context.Background()
	s := NewImportSession("u1")

	if err := s.RunTextImport(ctx, "A|work|08:00|09:00"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := s.RunTextImport(ctx, "   "); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("RunTextImport(blank) error = %v, want ErrEmptyInput", err)
	}

	p := s.Snapshot()
	if len(p.Drafts) != 1 {
		t.Errorf("len(Drafts) = %d, want 1", len(p.Drafts))
	}
	if !errors.Is(p.Err, ErrEmptyInput) {
		t.Errorf("Err = %v, want ErrEmptyInput", p.Err)
	}
}

func TestImportSession_ReaderFailureKeepsPending(t *testing.T) {
	ctx := context.Background()
	s := NewImportSession("u1")

	if err := s.RunTextImport(ctx, "A|work|08:00|09:00"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	err := s.RunFileImport(ctx, []byte("not a workbook"), KindSpreadsheet)
	if !errors.Is(err, ErrFileParse) {
		t.Fatalf("RunFileImport() error = %v, want ErrFileParse", err)
	}

	p := s.Snapshot()
	if len(p.Drafts) != 1 || p.Drafts[0].Title != "A" {
		t.Errorf("Drafts = %+v, want A kept", p.Drafts)
	}
	if !errors.Is(p.Err, ErrFileParse) {
		t.Errorf("Err = %v, want ErrFileParse", p.Err)
	}
	if !p.Stale {
		t.Error("Stale = false, want true for drafts left from the earlier parse")
	}

	if err := s.RunTextImport(ctx, "B|work|08:00|09:00"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Snapshot().Stale {
		t.Error("Stale = true after a successful parse")
	}
}

func TestImportSession_TextKindRejectedForFiles(t *testing.T) {
	s := NewImportSession("u1")
	err := s.RunFileImport(context.Background(), []byte("A|work|08:00|09:00"), KindText)
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("RunFileImport(KindText) error = %v, want ErrUnsupportedFileType", err)
	}
}

func TestImportSession_SuccessClearsError(t *testing.T) {
	ctx := context.Background()
	s := NewImportSession("u1")

	_ = s.RunTextImport(ctx, "Task | work | 10:00 | 09:00")
	if s.Snapshot().Err == nil {
		t.Fatal("expected error after invalid parse")
	}
	if err := s.RunTextImport(ctx, "Task | work | 09:00 | 10:00"); err != nil {
		t.Fatalf("valid parse: %v", err)
	}
	if err := s.Snapshot().Err; err != nil {
		t.Errorf("Err = %v, want nil after successful parse", err)
	}
}

func TestImportSession_ClearPendingKeepsError(t *testing.T) {
	ctx := context.Background()
	s := NewImportSession("u1")

	_ = s.RunTextImport(ctx, "A|work|08:00|09:00")
	_ = s.RunTextImport(ctx, "")
	s.ClearPending()

	p := s.Snapshot()
	if len(p.Drafts) != 0 {
		t.Errorf("len(Drafts) = %d, want 0", len(p.Drafts))
	}
	if !errors.Is(p.Err, ErrEmptyInput) {
		t.Errorf("Err = %v, want ErrEmptyInput kept", p.Err)
	}
}

func TestImportSession_SkippedLinesReported(t *testing.T) {
	s := NewImportSession("u1")
	_ = s.RunTextImport(context.Background(), "A|work|08:00|09:00\nshort|line\nB|work|25:00|26:00")

	r := s.Snapshot().Report
	want := ImportReport{TotalRows: 2, Accepted: 1, Rejected: 1, SkippedLines: 1}
	if r != want {
		t.Errorf("Report = %+v, want %+v", r, want)
	}
}

// =============================================================================
// Commit
// =============================================================================

func TestImportSession_Commit(t *testing.T) {
	ctx := context.Background()

	t.Run("commits in order and empties pending", func(t *testing.T) {
		s := NewImportSession("u1")
		_ = s.RunTextImport(ctx, "A|work|08:00|09:00\nB|health|09:00|10:00\nC|family|10:00|11:00")

		sink := &recordingSink{}
		res, err := s.Commit(ctx, sink)
		if err != nil {
			t.Fatalf("Commit() unexpected error: %v", err)
		}
		if res.Committed != 3 || res.Remaining != 0 {
			t.Errorf("result = %+v, want 3 committed", res)
		}
		for i, title := range []string{"A", "B", "C"} {
			if sink.created[i].Title != title {
				t.Errorf("created[%d] = %q, want %q", i, sink.created[i].Title, title)
			}
		}
		if n := s.PendingCount(); n != 0 {
			t.Errorf("PendingCount = %d, want 0", n)
		}
	})

	t.Run("partial failure keeps the rest pending", func(t *testing.T) {
		s := NewImportSession("u1")
		_ = s.RunTextImport(ctx, "A|work|08:00|09:00\nB|health|09:00|10:00\nC|family|10:00|11:00")

		sink := &recordingSink{failAt: 2}
		res, err := s.Commit(ctx, sink)
		if err == nil {
			t.Fatal("Commit() expected error")
		}
		if res.Committed != 1 || res.Remaining != 2 {
			t.Errorf("result = %+v, want 1 committed 2 remaining", res)
		}
		p := s.Snapshot()
		if len(p.Drafts) != 2 || p.Drafts[0].Title != "B" {
			t.Errorf("pending = %+v, want B and C", p.Drafts)
		}
	})

	t.Run("nothing to commit", func(t *testing.T) {
		s := NewImportSession("u1")
		if _, err := s.Commit(ctx, &recordingSink{}); !errors.Is(err, ErrNothingToCommit) {
			t.Errorf("Commit() error = %v, want ErrNothingToCommit", err)
		}
	})

	t.Run("cancelled context stops before first create", func(t *testing.T) {
		s := NewImportSession("u1")
		_ = s.RunTextImport(ctx, "A|work|08:00|09:00")

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		sink := &recordingSink{}
		if _, err := s.Commit(cctx, sink); !errors.Is(err, context.Canceled) {
			t.Errorf("Commit() error = %v, want context.Canceled", err)
		}
		if len(sink.created) != 0 || s.PendingCount() != 1 {
			t.Errorf("created = %d, pending = %d; want 0, 1", len(sink.created), s.PendingCount())
		}
	})
}

func TestImportSession_SnapshotIsCopy(t *testing.T) {
	s := NewImportSession("u1")
	_ = s.RunTextImport(context.Background(), "A|work|08:00|09:00")

	p := s.Snapshot()
	p.Drafts[0].Title = "mutated"

	if got := s.Snapshot().Drafts[0].Title; got != "A" {
		t.Errorf("session draft title = %q, want A", got)
	}
}
