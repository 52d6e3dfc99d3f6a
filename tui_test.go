package main

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suapapa/lotto645_recommender/lotto"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m tuiModel, msg tea.Msg) (tuiModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(tuiModel)
	require.True(t, ok)
	return nm, cmd
}

func TestTUIGenerate(t *testing.T) {
	sess := newTestSession(t, nil)
	m := newTUIModel(context.Background(), sess, &fakeCopier{}, nil)
	assert.Contains(t, m.View(), lotto.NoHistoryText)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "notice hide timer")
	assert.Equal(t, "생성 완료: 5세트", m.status)
	require.NotNil(t, m.notice)
	assert.Equal(t, "추천 완료", m.notice.Title)
	assert.Len(t, sess.State().LastSets, lotto.DefaultSetCount)
	assert.NotContains(t, m.View(), lotto.NoHistoryText)
	assert.Contains(t, m.View(), "2026-10-19 14:03")
}

func TestTUICopy(t *testing.T) {
	sess := newTestSession(t, nil)
	copier := &fakeCopier{}
	m := newTUIModel(context.Background(), sess, copier, nil)

	// Nothing to copy yet.
	m, cmd := update(t, m, runeKey('c'))
	assert.Nil(t, cmd)
	assert.False(t, m.copying)

	m, _ = update(t, m, runeKey('g'))
	m, cmd = update(t, m, runeKey('c'))
	require.NotNil(t, cmd)
	assert.True(t, m.copying)

	// A second press while the copy is pending is ignored.
	_, again := update(t, m, runeKey('c'))
	assert.Nil(t, again)

	msg := cmd()
	done, ok := msg.(copyDoneMsg)
	require.True(t, ok)
	assert.NoError(t, done.err)
	assert.Equal(t, []string{lotto.ExportText(sess.State().LastSets)}, copier.texts)

	m, _ = update(t, m, done)
	assert.False(t, m.copying)
	assert.Equal(t, "클립보드에 복사했어요.", m.status)
	assert.Equal(t, "복사 완료", m.notice.Title)
}

func TestTUICopyFailure(t *testing.T) {
	sess := newTestSession(t, nil)
	m := newTUIModel(context.Background(), sess, &fakeCopier{}, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, copyDoneMsg{err: errors.New("no display")})
	assert.Equal(t, "복사에 실패했어요. 클립보드 권한을 확인해주세요.", m.status)
	assert.Equal(t, "복사 실패", m.notice.Title)
}

func TestTUIClear(t *testing.T) {
	sess := newTestSession(t, nil)
	m := newTUIModel(context.Background(), sess, &fakeCopier{}, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotEmpty(t, sess.State().History)

	m, _ = update(t, m, runeKey('x'))
	assert.Equal(t, "기록을 삭제했어요.", m.status)
	assert.Empty(t, sess.State().History)
	assert.Contains(t, m.View(), lotto.NoHistoryText)
}

func TestTUINoticeTimer(t *testing.T) {
	sess := newTestSession(t, nil)
	m := newTUIModel(context.Background(), sess, &fakeCopier{}, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	first := m.noticeID
	m, _ = update(t, m, runeKey('x'))
	require.NotEqual(t, first, m.noticeID)

	// The older timer does not hide the newer notice.
	m, _ = update(t, m, hideNoticeMsg{id: first})
	require.NotNil(t, m.notice)
	assert.Equal(t, "기록 삭제", m.notice.Title)

	m, _ = update(t, m, hideNoticeMsg{id: m.noticeID})
	assert.Nil(t, m.notice)
}

func TestTUIEscAndQuit(t *testing.T) {
	sess := newTestSession(t, nil)
	m := newTUIModel(context.Background(), sess, &fakeCopier{}, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.notice)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.notice)

	_, cmd := update(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTUIInitialOutcome(t *testing.T) {
	sess := newTestSession(t, nil)
	o, generated := sess.Start(context.Background())
	require.True(t, generated)

	m := newTUIModel(context.Background(), sess, &fakeCopier{}, &o)
	cmd := m.Init()
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())
	assert.Equal(t, "생성 완료: 5세트", m.status)

	assert.Nil(t, newTUIModel(context.Background(), sess, &fakeCopier{}, nil).Init())
}
