package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntrack/internal/engine"
	"github.com/abhisek/learntrack/internal/router"
	"github.com/abhisek/learntrack/internal/screen"
	"github.com/abhisek/learntrack/internal/screens/history"
	quizscreen "github.com/abhisek/learntrack/internal/screens/quiz"
	"github.com/abhisek/learntrack/internal/screens/topics"
	"github.com/abhisek/learntrack/internal/topic"
	"github.com/abhisek/learntrack/internal/ui/components"
	"github.com/abhisek/learntrack/internal/ui/theme"
)

// Content identifies learner-supplied study material registered for
// custom quizzes this run.
type Content struct {
	ID    string
	Title string
}

// HomeScreen is the main entry screen of the application.
type HomeScreen struct {
	svc  *engine.Service
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. content may be nil when no study material
// was supplied.
func New(svc *engine.Service, content *Content) *HomeScreen {
	items := []components.MenuItem{
		{Label: "TOPIC BOARD", Hint: "work through the curriculum", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: topics.New(svc)}
			}
		}},
	}
	if content != nil {
		c := *content
		items = append(items, components.MenuItem{
			Label: "CONTENT QUIZ",
			Hint:  "quiz on " + c.Title,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quizscreen.NewContent(svc, c.ID, c.Title)}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "QUIZ HISTORY", Hint: "review past attempts", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(svc)}
			}
		}},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	return &HomeScreen{
		svc:  svc,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("LearnTrack"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Data structures & algorithms, one quiz at a time"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.renderStats()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// renderStats builds the streak / mastery / attempt summary card.
func (h *HomeScreen) renderStats() string {
	all := h.svc.Topics()
	var mastered, inProgress int
	for _, t := range all {
		st, err := h.svc.EffectiveStatus(t.ID)
		if err != nil {
			continue
		}
		switch st {
		case topic.Mastered:
			mastered++
		case topic.InProgress:
			inProgress++
		}
	}

	streak := h.svc.Streak().Streak
	attempts := h.svc.Ledger().Len()

	line := fmt.Sprintf("★ %d day streak    ✓ %d/%d mastered    📖 %d in progress    %d quizzes taken",
		streak, mastered, len(all), inProgress, attempts)

	return lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Foreground(theme.Text).
		Render(line)
}
