package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mymmrac/telego"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suapapa/lotto645_recommender/lotto"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		cmd  string
		args []string
	}{
		{text: "/rand", cmd: "/rand"},
		{text: "/rand 3", cmd: "/rand", args: []string{"3"}},
		{text: "  /ai   7  ", cmd: "/ai", args: []string{"7"}},
		{text: "/rand@lotto645_bot 2", cmd: "/rand", args: []string{"2"}},
		{text: "번호 줘", cmd: "번호 줘"},
	}
	for _, tt := range tests {
		cmd, args := parseCommand(tt.text)
		assert.Equal(t, tt.cmd, cmd, tt.text)
		assert.Equal(t, tt.args, args, tt.text)
	}
}

func TestFormatSet(t *testing.T) {
	s := lotto.Set{Main: []int{3, 12, 21, 33, 40, 41}, Bonus: 45}
	assert.Equal(t, "1세트: 🟡03 🔵12 🔴21 ⚫33 ⚫40 🟢41 + 보너스 🟢45", formatSet(0, s))

	s.Bonus = 0
	assert.Equal(t, "2세트: 🟡03 🔵12 🔴21 ⚫33 ⚫40 🟢41 + 보너스 -", formatSet(1, s))
}

func TestFormatSetMessages(t *testing.T) {
	g := lotto.NewGenerator(nil)
	msgs := formatSetMessages(g.GenerateBatch(7))
	require.Len(t, msgs, 2)
	assert.Len(t, strings.Split(msgs[0], "\n"), 5)
	assert.Len(t, strings.Split(msgs[1], "\n"), 2)
	assert.True(t, strings.HasPrefix(msgs[1], "6세트: "))

	assert.Empty(t, formatSetMessages(nil))
}

func newTestBot(t *testing.T) *TelegramBot {
	return &TelegramBot{
		sess: newTestSession(t, nil),
		log:  zerolog.Nop(),
	}
}

func TestBotRand(t *testing.T) {
	tb := newTestBot(t)

	replies := tb.handle(context.Background(), "/rand", []string{"3"})
	require.Len(t, replies, 3)
	assert.Equal(t, "로또 번호 3 개를 생성합니다...", replies[0])
	assert.Len(t, strings.Split(replies[1], "\n"), 3)
	assert.Equal(t, "생성 완료: 3세트", replies[2])
	assert.EqualValues(t, 3, tb.randGenCnt)

	replies = tb.handle(context.Background(), "/lotto", []string{"abc"})
	assert.Equal(t, "로또 번호 5 개를 생성합니다...", replies[0])
	assert.EqualValues(t, 8, tb.randGenCnt)
	assert.Len(t, tb.sess.State().History, 2)
}

func TestBotHistoryCopyClear(t *testing.T) {
	ctx := context.Background()
	tb := newTestBot(t)

	assert.Equal(t, []string{"복사할 번호가 없습니다. /rand 로 먼저 추천받으세요."}, tb.handle(ctx, "/copy", nil))
	assert.Equal(t, []string{lotto.NoHistoryText}, tb.handle(ctx, "/history", nil))

	tb.handle(ctx, "/rand", []string{"2"})

	replies := tb.handle(ctx, "/history", nil)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "2026-10-19 14:03 · 1세트: ")

	replies = tb.handle(ctx, "/copy", nil)
	require.Len(t, replies, 2)
	assert.Equal(t, lotto.ExportText(tb.sess.State().LastSets), replies[0])
	assert.Equal(t, "클립보드에 복사했어요.", replies[1])

	assert.Equal(t, []string{"기록을 삭제했어요."}, tb.handle(ctx, "/clear", nil))
	assert.Equal(t, []string{lotto.NoHistoryText}, tb.handle(ctx, "/history", nil))
}

func TestBotMisc(t *testing.T) {
	ctx := context.Background()
	tb := newTestBot(t)

	assert.Equal(t, []string{"pong"}, tb.handle(ctx, "/start", nil))
	assert.Equal(t, []string{"AI 추천이 설정되지 않았습니다."}, tb.handle(ctx, "/ai", nil))
	assert.Equal(t, []string{"AI 생성 횟수: 0\n랜덤 생성 횟수: 0"}, tb.handle(ctx, "/stat", nil))
	assert.Equal(t, []string{botUsage}, tb.handle(ctx, "안녕", nil))
}

func TestBotServeWaitsForInFlightUpdate(t *testing.T) {
	updates := make(chan telego.Update, 2)
	tb := newTestBot(t)
	tb.UpdateCh = updates
	tb.chatIDs = []int64{42}
	tb.cancelF = func() { close(updates) }

	started := make(chan struct{})
	release := make(chan struct{})
	var sent []string
	tb.reply = func(_ context.Context, id int64, text string) {
		if len(sent) == 0 {
			close(started)
			<-release
		}
		sent = append(sent, text)
	}

	updates <- telego.Update{Message: &telego.Message{Chat: telego.Chat{ID: 7}, Text: "/clear"}}
	updates <- telego.Update{Message: &telego.Message{Chat: telego.Chat{ID: 42}, Text: "/stat"}}

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan struct{})
	go func() {
		tb.Serve(ctx)
		close(served)
	}()

	<-started
	cancel()
	select {
	case <-served:
		t.Fatal("Serve returned while an update was being handled")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-served
	assert.Equal(t, []string{"AI 생성 횟수: 0\n랜덤 생성 횟수: 0"}, sent, "unknown chats get no reply")
}
