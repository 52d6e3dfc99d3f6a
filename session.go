package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/suapapa/lotto645_recommender/lotto"
)

const (
	noticeTimeout     = 2400 * time.Millisecond
	failNoticeTimeout = 3200 * time.Millisecond
)

// Notice is a transient message a frontend shows and hides after Timeout.
type Notice struct {
	Title   string
	Message string
	Timeout time.Duration
}

// Outcome is what a user action reports back: a status line and a notice.
type Outcome struct {
	Status string
	Notice Notice
}

// Session owns the only mutable copy of the lotto state for one frontend.
// Actions run one at a time on the frontend's event loop.
type Session struct {
	store    *lotto.HistoryStore
	gen      *lotto.Generator
	setCount int
	now      func() time.Time
	log      zerolog.Logger

	state lotto.State
}

func NewSession(store *lotto.HistoryStore, gen *lotto.Generator, setCount int, log zerolog.Logger) *Session {
	return &Session{
		store:    store,
		gen:      gen,
		setCount: lotto.ClampCount(setCount),
		now:      time.Now,
		log:      log.With().Str("component", "session").Logger(),
	}
}

// State returns a snapshot for rendering.
func (s *Session) State() lotto.State {
	return s.state
}

// Load reads the stored history into the session.
func (s *Session) Load(ctx context.Context) {
	s.state.History = s.store.Load(ctx)
}

// Start loads history and generates once if this store has never been used.
func (s *Session) Start(ctx context.Context) (Outcome, bool) {
	s.Load(ctx)
	if !s.store.FirstRun(ctx) {
		return Outcome{}, false
	}
	s.log.Info().Msg("first run, generating initial sets")
	return s.Generate(ctx, s.setCount), true
}

// Resume makes the newest stored entry the copy target, for frontends that
// start without generating.
func (s *Session) Resume() bool {
	e, ok := s.state.History.Latest()
	if !ok {
		return false
	}
	s.state.LastSets = e.Sets
	return true
}

// Generate draws n sets (0 means the configured count), records and saves
// them.
func (s *Session) Generate(ctx context.Context, n int) Outcome {
	if n == 0 {
		n = s.setCount
	}
	s.state = lotto.Generate(s.state, s.gen, n, s.now())
	s.store.Save(ctx, s.state.History)

	s.log.Debug().Int("sets", len(s.state.LastSets)).Msg("generated")
	return generatedOutcome(len(s.state.LastSets))
}

// Record stores sets produced elsewhere, such as AI picks.
func (s *Session) Record(ctx context.Context, sets []lotto.Set) Outcome {
	s.state = lotto.State{
		History:  lotto.Record(s.state.History, lotto.NewEntry(s.now(), sets)),
		LastSets: sets,
	}
	s.store.Save(ctx, s.state.History)
	return generatedOutcome(len(sets))
}

func generatedOutcome(cnt int) Outcome {
	return Outcome{
		Status: fmt.Sprintf("생성 완료: %d세트", cnt),
		Notice: Notice{
			Title:   "추천 완료",
			Message: fmt.Sprintf("%d세트(보너스 포함) 번호를 생성했어요.", cnt),
			Timeout: noticeTimeout,
		},
	}
}

// CopyText is the export text of the last sets; false when there is
// nothing to copy.
func (s *Session) CopyText() (string, bool) {
	if len(s.state.LastSets) == 0 {
		return "", false
	}
	return lotto.ExportText(s.state.LastSets), true
}

// CopyResult turns the result of a copy into an outcome.
func (s *Session) CopyResult(err error) Outcome {
	if err != nil {
		s.log.Warn().Err(err).Msg("copy failed")
		return Outcome{
			Status: "복사에 실패했어요. 클립보드 권한을 확인해주세요.",
			Notice: Notice{
				Title:   "복사 실패",
				Message: "클립보드 권한을 확인해주세요.",
				Timeout: failNoticeTimeout,
			},
		}
	}
	return Outcome{
		Status: "클립보드에 복사했어요.",
		Notice: Notice{
			Title:   "복사 완료",
			Message: "클립보드에 결과를 복사했어요.",
			Timeout: noticeTimeout,
		},
	}
}

// Copy exports the last sets through c. It reports false without touching c
// when there is nothing to copy.
func (s *Session) Copy(ctx context.Context, c Copier) (Outcome, bool) {
	text, ok := s.CopyText()
	if !ok {
		return Outcome{}, false
	}
	return s.CopyResult(c.Copy(ctx, text)), true
}

// Clear deletes the stored history. The last sets stay copyable.
func (s *Session) Clear(ctx context.Context) Outcome {
	s.store.Clear(ctx)
	s.state = lotto.ClearHistory(s.state)
	return Outcome{
		Status: "기록을 삭제했어요.",
		Notice: Notice{
			Title:   "기록 삭제",
			Message: "저장된 최근 추천 기록을 삭제했어요.",
			Timeout: noticeTimeout,
		},
	}
}
