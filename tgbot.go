package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoutil"
	"github.com/rs/zerolog"

	"github.com/suapapa/lotto645_recommender/lotto"
)

const botUsage = "Usage:\n" +
	"/rand [count] - 랜덤 로또 번호 생성\n" +
	"/ai [count] - AI 로또 번호 생성\n" +
	"/history - 최근 추천 기록\n" +
	"/copy - 마지막 추천 번호를 복사용 텍스트로 받기\n" +
	"/clear - 추천 기록 삭제\n" +
	"/stat - 통계 확인"

// setsPerMessage is how many sets go in one chat message.
const setsPerMessage = 5

var ballEmojis = map[lotto.Bucket]string{
	lotto.Bucket1to10:  "🟡",
	lotto.Bucket11to20: "🔵",
	lotto.Bucket21to30: "🔴",
	lotto.Bucket31to40: "⚫",
	lotto.Bucket41to45: "🟢",
}

type TelegramBot struct {
	sess     *Session
	ai       *LottoAI
	b        *telego.Bot
	UpdateCh <-chan telego.Update
	cancelF  context.CancelFunc
	chatIDs  []int64
	log      zerolog.Logger
	reply    func(ctx context.Context, chatID int64, text string)

	aiGenCnt   uint64
	randGenCnt uint64
}

// NewTelegramBot starts long polling. lottoAI may be nil, which turns /ai
// off.
func NewTelegramBot(sess *Session, lottoAI *LottoAI, log zerolog.Logger, apiToken string, chatIDs ...int64) (*TelegramBot, error) {
	b, err := telego.NewBot(apiToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	ctx, cancelF := context.WithCancel(context.Background())
	tuCh, err := b.UpdatesViaLongPolling(ctx, nil) // 폴링방식으로
	if err != nil {
		cancelF()
		return nil, fmt.Errorf("failed to get updates: %w", err)
	}

	tb := &TelegramBot{
		sess:     sess,
		ai:       lottoAI,
		b:        b,
		UpdateCh: tuCh,
		cancelF:  cancelF,
		chatIDs:  chatIDs,
		log:      log.With().Str("component", "tgbot").Logger(),
	}
	tb.reply = tb.sendMessage
	return tb, nil
}

func (tb *TelegramBot) Close() {
	tb.cancelF()
}

// Serve runs Listen until ctx is done, then stops polling and returns once
// the update in flight has been handled.
func (tb *TelegramBot) Serve(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		tb.Listen(ctx)
	}()

	<-ctx.Done()
	tb.Close()
	<-done
}

// Listen handles updates one at a time until the update channel closes.
func (tb *TelegramBot) Listen(ctx context.Context) {
	for update := range tb.UpdateCh {
		if update.Message == nil {
			continue
		}
		id := update.Message.Chat.ID
		if !slices.Contains(tb.chatIDs, id) {
			tb.log.Warn().Int64("chat_id", id).Msg("ignoring message from unknown chat")
			continue
		}

		cmd, args := parseCommand(update.Message.Text)
		for _, reply := range tb.handle(ctx, cmd, args) {
			tb.reply(ctx, id, reply)
		}
		tb.log.Info().
			Str("username", update.Message.Chat.Username).
			Str("cmd", cmd).
			Msg("handled command")
	}
}

// handle runs one command and returns the replies in order.
func (tb *TelegramBot) handle(ctx context.Context, cmd string, args []string) []string {
	switch cmd {
	case "/start":
		return []string{"pong"}

	case "/rand", "/lotto":
		cnt := countArg(args)
		out := tb.sess.Generate(ctx, cnt)
		tb.randGenCnt += uint64(len(tb.sess.State().LastSets))
		replies := []string{fmt.Sprintf("로또 번호 %d 개를 생성합니다...", cnt)}
		replies = append(replies, formatSetMessages(tb.sess.State().LastSets)...)
		return append(replies, out.Status)

	case "/ai", "/ailotto":
		if tb.ai == nil {
			return []string{"AI 추천이 설정되지 않았습니다."}
		}
		cnt := countArg(args)
		sets, err := tb.ai.Pick(ctx, cnt)
		if err != nil {
			tb.log.Error().Err(err).Msg("ai pick failed")
			return []string{fmt.Sprintf("로또 번호 생성 실패: %v", err)}
		}
		out := tb.sess.Record(ctx, sets)
		tb.aiGenCnt += uint64(len(sets))
		replies := []string{fmt.Sprintf("초지능의 힘으로 로또 번호 %d 개를 생성합니다...", cnt)}
		replies = append(replies, formatSetMessages(sets)...)
		return append(replies, out.Status)

	case "/history":
		return []string{strings.Join(lotto.HistoryLines(tb.sess.State().History), "\n")}

	case "/copy":
		c := &replyCopier{}
		out, ok := tb.sess.Copy(ctx, c)
		if !ok {
			return []string{"복사할 번호가 없습니다. /rand 로 먼저 추천받으세요."}
		}
		return append(c.texts, out.Status)

	case "/clear":
		return []string{tb.sess.Clear(ctx).Status}

	case "/stat":
		return []string{fmt.Sprintf("AI 생성 횟수: %d\n랜덤 생성 횟수: %d", tb.aiGenCnt, tb.randGenCnt)}

	default:
		return []string{botUsage}
	}
}

func (tb *TelegramBot) sendMessage(ctx context.Context, id int64, text string) {
	cid := telego.ChatID{ID: id}
	msg := telegoutil.Message(cid, text)
	if _, err := tb.b.SendMessage(ctx, msg); err != nil {
		tb.log.Error().Err(err).Int64("chat_id", id).Msg("failed to send message")
	}
}

// replyCopier delivers the export text as a chat message.
type replyCopier struct {
	texts []string
}

func (c *replyCopier) Copy(_ context.Context, text string) error {
	c.texts = append(c.texts, text)
	return nil
}

// parseCommand splits "/rand 3" into "/rand" and ["3"]. Text that is not a
// slash command comes back whole with no args.
func parseCommand(text string) (string, []string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text, nil
	}
	fields := strings.Fields(text)
	cmd := fields[0]
	// "/rand@lotto_bot" in group chats
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	if len(fields) == 1 {
		return cmd, nil
	}
	return cmd, fields[1:]
}

func countArg(args []string) int {
	if len(args) == 0 {
		return lotto.DefaultSetCount
	}
	return lotto.ParseCount(args[0])
}

// formatSet renders "1세트: 🟡03 🔵12 ... + 보너스 🟢45".
func formatSet(i int, s lotto.Set) string {
	nums := make([]string, len(s.Main))
	for j, n := range s.Main {
		nums[j] = fmt.Sprintf("%s%02d", ballEmojis[lotto.BucketOf(n)], n)
	}
	bonus := "-"
	if s.HasBonus() {
		bonus = fmt.Sprintf("%s%02d", ballEmojis[lotto.BucketOf(s.Bonus)], s.Bonus)
	}
	return fmt.Sprintf("%s: %s + 보너스 %s", lotto.SetLabel(i), strings.Join(nums, " "), bonus)
}

// formatSetMessages groups sets setsPerMessage to a message.
func formatSetMessages(sets []lotto.Set) []string {
	var (
		msgs   []string
		result []string
		shown  int
	)
	for _, s := range sets {
		if s.Validate() != nil {
			continue
		}
		result = append(result, formatSet(shown, s))
		shown++
		if shown%setsPerMessage == 0 {
			msgs = append(msgs, strings.Join(result, "\n"))
			result = nil
		}
	}
	if len(result) > 0 {
		msgs = append(msgs, strings.Join(result, "\n"))
	}
	return msgs
}
