package main

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type copyDoneMsg struct {
	err error
}

type hideNoticeMsg struct {
	id int
}

var (
	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B50FF")).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00CED1"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4D4C57"))
)

// tuiModel is the terminal page. It holds the session and hands every key
// to it on bubbletea's single update loop.
type tuiModel struct {
	ctx    context.Context
	sess   *Session
	copier Copier

	status   string
	notice   *Notice
	noticeID int
	copying  bool
	initial  *Outcome
}

func newTUIModel(ctx context.Context, sess *Session, copier Copier, initial *Outcome) tuiModel {
	return tuiModel{
		ctx:     ctx,
		sess:    sess,
		copier:  copier,
		initial: initial,
	}
}

func (m tuiModel) Init() tea.Cmd {
	if m.initial == nil {
		return nil
	}
	o := *m.initial
	return func() tea.Msg { return o }
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case Outcome:
		return m.show(msg)
	case copyDoneMsg:
		m.copying = false
		return m.show(m.sess.CopyResult(msg.err))
	case hideNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = nil
		}
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter", "g":
		return m.show(m.sess.Generate(m.ctx, 0))
	case "c":
		text, ok := m.sess.CopyText()
		if !ok || m.copying {
			return m, nil
		}
		m.copying = true
		ctx, copier := m.ctx, m.copier
		return m, func() tea.Msg {
			return copyDoneMsg{err: copier.Copy(ctx, text)}
		}
	case "x":
		return m.show(m.sess.Clear(m.ctx))
	case "esc":
		m.notice = nil
	}
	return m, nil
}

// show sets the status and the notice; a newer notice outlives the hide
// timer of an older one.
func (m tuiModel) show(o Outcome) (tea.Model, tea.Cmd) {
	m.status = o.Status
	if o.Notice.Title == "" {
		return m, nil
	}
	m.noticeID++
	n := o.Notice
	m.notice = &n
	id := m.noticeID
	return m, tea.Tick(n.Timeout, func(time.Time) tea.Msg {
		return hideNoticeMsg{id: id}
	})
}

func (m tuiModel) View() string {
	st := m.sess.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render("로또 6/45 번호 추천"))
	b.WriteString("\n\n")

	if len(st.LastSets) > 0 {
		b.WriteString(renderSets(st.LastSets))
	} else {
		b.WriteString(mutedStyle.Render("Enter를 눌러 번호를 추천받으세요."))
	}
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("최근 추천 기록"))
	b.WriteString("\n")
	b.WriteString(renderHistory(st.History))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.notice != nil {
		b.WriteString(toastStyle.Render(titleStyle.Render(m.notice.Title) + "\n" + m.notice.Message))
		b.WriteString("\n")
	}

	help := "enter 추천받기 · c 복사 · x 기록 삭제 · esc 알림 닫기 · q 종료"
	if len(st.LastSets) == 0 {
		help = "enter 추천받기 · x 기록 삭제 · esc 알림 닫기 · q 종료"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}

func runTUI(ctx context.Context, sess *Session, copier Copier, initial *Outcome) error {
	p := tea.NewProgram(
		newTUIModel(ctx, sess, copier, initial),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
