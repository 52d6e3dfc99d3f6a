package main

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/suapapa/lotto645_recommender/lotto"
)

// Lucky is what the model answers with. A pick may hold 6 or 7 numbers;
// each one is normalized like an old-format history set.
type Lucky struct {
	Picks [][]int `json:"picks" yaml:"picks"`
}

type LottoAI struct {
	PickLuckyNumsFlow *core.Flow[int, Lucky, struct{}]

	log zerolog.Logger
}

// NewLottoAI sets up genkit with Gemini. docs are attached to every
// generate call as reference material.
func NewLottoAI(
	ctx context.Context,
	cfg AIConfig,
	docs []*ai.Document,
	log zerolog.Logger,
) (*LottoAI, error) {
	// GEMINI_API_KEY or GOOGLE_API_KEY is read by the plugin.
	g, err := genkit.Init(ctx,
		genkit.WithPlugins(&googlegenai.GoogleAI{}),
		genkit.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Genkit: %w", err)
	}

	systemPrompt := cfg.Prompt.System
	userPromptFmt := cfg.Prompt.User

	pickNumFlow := genkit.DefineFlow(
		g, "pickLuckyNumsFlow",
		func(ctx context.Context, cnt int) (Lucky, error) {
			s, _, err := genkit.GenerateData[Lucky](
				ctx, g,
				ai.WithDocs(docs...),
				ai.WithSystem(systemPrompt),
				ai.WithPrompt(fmt.Sprintf(userPromptFmt, cnt)),
			)
			if err != nil {
				return Lucky{}, fmt.Errorf("failed to generate lucky numbers: %w", err)
			}
			if s == nil {
				return Lucky{}, fmt.Errorf("empty answer from model")
			}
			return *s, nil
		},
	)

	return &LottoAI{
		PickLuckyNumsFlow: pickNumFlow,
		log:               log.With().Str("component", "lotto_ai").Logger(),
	}, nil
}

// Pick asks the model for cnt sets, clamped like any batch. Picks that do
// not normalize are dropped.
func (l *LottoAI) Pick(ctx context.Context, cnt int) ([]lotto.Set, error) {
	cnt = lotto.ClampCount(cnt)
	lucky, err := l.PickLuckyNumsFlow.Run(ctx, cnt)
	if err != nil {
		return nil, err
	}
	sets, dropped := picksToSets(lucky, cnt)
	if dropped > 0 {
		l.log.Warn().Int("dropped", dropped).Msg("model returned invalid picks")
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("invalid winning numbers: %v", lucky.Picks)
	}
	return sets, nil
}

// picksToSets keeps at most limit valid picks and counts the invalid ones.
func picksToSets(l Lucky, limit int) ([]lotto.Set, int) {
	sets := make([]lotto.Set, 0, min(len(l.Picks), limit))
	dropped := 0
	for _, p := range l.Picks {
		s, err := lotto.NormalizeNumbers(p)
		if err != nil {
			dropped++
			continue
		}
		if len(sets) < limit {
			sets = append(sets, s)
		}
	}
	return sets, dropped
}

// winningDocs turns draws into yaml documents for the model. bar may be nil.
func winningDocs(wh WinningHistory, bar *progressbar.ProgressBar) ([]*ai.Document, error) {
	docs := make([]*ai.Document, 0, len(wh))
	for _, w := range wh {
		if bar != nil {
			bar.Add(1)
		}
		if _, err := w.Set(); err != nil {
			continue
		}
		b, err := yaml.Marshal(w)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal winning: %w", err)
		}
		docs = append(docs, ai.DocumentFromText(string(b), map[string]any{
			"issue_no": w.IssueNo,
		}))
	}
	return docs, nil
}

// loadWinningDocs reads the draw CSV and keeps the most recent ones. An
// empty path means no reference documents.
func loadWinningDocs(cfg AIConfig, showProgress bool) ([]*ai.Document, error) {
	if cfg.WinningCSV == "" {
		return nil, nil
	}
	wh, err := loadWinningHistory(cfg.WinningCSV)
	if err != nil {
		return nil, fmt.Errorf("failed to load winning history: %w", err)
	}
	wh = wh.Recent(cfg.RecentDocs)

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(len(wh)), "당첨 기록 준비")
	}
	return winningDocs(wh, bar)
}
