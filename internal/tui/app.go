// Package tui implements the interactive excerpt browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ersonp/quill/internal/application/handlers"
	"github.com/ersonp/quill/internal/domain/entities"
	"github.com/ersonp/quill/internal/domain/services"
)

const descriptionRunes = 80

type panel int

const (
	panelNone panel = iota
	panelDetail
	panelStats
	panelHelp
)

var (
	searchStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	panelStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type model struct {
	ctx      context.Context
	query    *handlers.QueryHandler
	excerpts *handlers.ExcerptHandler

	searchInput textinput.Model
	list        list.Model
	sort        entities.SortOption
	matched     int
	total       int

	panel         panel
	confirmDelete bool
	status        string
	width         int
	height        int
	searching     bool
	err           error
}

type excerptItem struct {
	excerpt entities.Excerpt
	query   string
}

func (i excerptItem) Title() string {
	title := i.excerpt.Date
	if source := sourceLine(i.excerpt); source != "" {
		title += " · " + source
	}
	return highlight(title, i.query)
}

func (i excerptItem) Description() string {
	content := strings.Join(strings.Fields(i.excerpt.Content), " ")
	return highlight(truncate(content, descriptionRunes), i.query)
}

func (i excerptItem) FilterValue() string {
	return i.excerpt.Content
}

func sourceLine(e entities.Excerpt) string {
	var parts []string
	if e.Author != "" {
		parts = append(parts, e.Author)
	}
	if e.WorkTitle != "" {
		parts = append(parts, "《"+e.WorkTitle+"》")
	}
	return strings.Join(parts, " ")
}

func highlight(text, query string) string {
	return services.Highlight(text, query, func(s string) string {
		return highlightStyle.Render(s)
	})
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

func initialModel(ctx context.Context, query *handlers.QueryHandler, excerpts *handlers.ExcerptHandler, sort entities.SortOption) model {
	ti := textinput.New()
	ti.Placeholder = "搜索摘抄内容、作者、作品或批注..."
	ti.CharLimit = 256
	ti.Width = 50

	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 80, 18)
	l.Title = "Quill"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	if sort == "" {
		sort = entities.SortDateDesc
	}

	m := model{
		ctx:         ctx,
		query:       query,
		excerpts:    excerpts,
		searchInput: ti,
		list:        l,
		sort:        sort,
	}
	m.refresh()
	return m
}

// refresh reruns the search and sort over the current journal.
func (m *model) refresh() {
	result := m.query.Handle(handlers.QueryOptions{
		Filters: entities.SearchFilters{Query: m.searchInput.Value()},
		Sort:    m.sort,
	})
	m.matched = result.Matched
	m.total = result.Total

	items := make([]list.Item, 0, len(result.Excerpts))
	for _, e := range result.Excerpts {
		items = append(items, excerptItem{excerpt: e, query: m.searchInput.Value()})
	}
	m.list.SetItems(items)
}

func (m model) selected() (entities.Excerpt, bool) {
	item, ok := m.list.SelectedItem().(excerptItem)
	if !ok {
		return entities.Excerpt{}, false
	}
	return item.excerpt, true
}

type deletedMsg struct {
	excerpt entities.Excerpt
	err     error
}

func (m model) deleteExcerpt(id string) tea.Cmd {
	return func() tea.Msg {
		excerpt, err := m.excerpts.Delete(m.ctx, id)
		return deletedMsg{excerpt: excerpt, err: err}
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDelete {
			return m.updateConfirm(msg)
		}
		if handled, next, cmd := m.updateKey(msg); handled {
			return next, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-7)
		m.searchInput.Width = msg.Width - 30

	case deletedMsg:
		if msg.err != nil {
			m.status = warnStyle.Render(fmt.Sprintf("删除失败: %v", msg.err))
			return m, nil
		}
		m.status = fmt.Sprintf("已删除 %s", truncate(msg.excerpt.Content, 20))
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	if m.searching {
		before := m.searchInput.Value()
		m.searchInput, cmd = m.searchInput.Update(msg)
		// Live search on input change
		if m.searchInput.Value() != before {
			m.refresh()
			m.list.Select(0)
		}
	} else if m.panel == panelNone {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// updateKey handles shortcuts. It reports false for keys that should fall
// through to the focused component.
func (m model) updateKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return true, m, tea.Quit
	case "ctrl+s":
		m.panel = togglePanel(m.panel, panelStats)
		return true, m, nil
	case "esc":
		switch {
		case m.panel != panelNone:
			m.panel = panelNone
		case m.searching:
			m.searching = false
			m.searchInput.Blur()
		}
		return true, m, nil
	case "enter":
		if m.searching {
			m.searching = false
			m.searchInput.Blur()
			return true, m, nil
		}
		if _, ok := m.selected(); ok {
			m.panel = togglePanel(m.panel, panelDetail)
		}
		return true, m, nil
	}

	if m.searching {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		return true, m, tea.Quit
	case "/":
		m.panel = panelNone
		m.searching = true
		m.searchInput.Focus()
		return true, m, textinput.Blink
	case "?":
		m.panel = togglePanel(m.panel, panelHelp)
		return true, m, nil
	case "s":
		m.sort = m.sort.Next()
		m.refresh()
		m.status = "排序: " + m.sort.Label()
		return true, m, nil
	case "d":
		if _, ok := m.selected(); ok {
			m.confirmDelete = true
		}
		return true, m, nil
	case "j", "down":
		m.list.CursorDown()
		return true, m, nil
	case "k", "up":
		m.list.CursorUp()
		return true, m, nil
	case "g":
		m.list.Select(0)
		return true, m, nil
	case "G":
		if n := len(m.list.Items()); n > 0 {
			m.list.Select(n - 1)
		}
		return true, m, nil
	}
	return false, m, nil
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmDelete = false
	if msg.String() != "y" {
		m.status = "已取消"
		return m, nil
	}
	excerpt, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.panel = panelNone
	return m, m.deleteExcerpt(excerpt.ID)
}

func togglePanel(current, target panel) panel {
	if current == target {
		return panelNone
	}
	return target
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	var b strings.Builder

	searchBox := searchStyle.Render(m.searchInput.View())
	counts := mutedStyle.Render(fmt.Sprintf("%d / %d", m.matched, m.total))
	sortLabel := accentStyle.Render(m.sort.Label())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, searchBox, "  ", sortLabel, "  ", counts))
	b.WriteString("\n\n")

	switch m.panel {
	case panelDetail:
		if e, ok := m.selected(); ok {
			b.WriteString(panelStyle.Render(renderDetail(e, m.searchInput.Value())))
		}
	case panelStats:
		b.WriteString(panelStyle.Render(renderStats(m.query.Stats())))
	case panelHelp:
		b.WriteString(panelStyle.Render(renderHelp()))
	default:
		if len(m.list.Items()) == 0 {
			b.WriteString(mutedStyle.Render(emptyMessage(m.total)))
		} else {
			b.WriteString(m.list.View())
		}
	}

	b.WriteString("\n")
	switch {
	case m.confirmDelete:
		b.WriteString(warnStyle.Render("确定要删除这条摘抄吗？(y/N)"))
	case m.status != "":
		b.WriteString(m.status)
	}

	help := "[j/k]nav [/]search [enter]open [s]ort [d]elete [ctrl+s]stats [?]help [q]uit"
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func emptyMessage(total int) string {
	if total == 0 {
		return "还没有摘抄记录。使用 quill add 添加第一条。"
	}
	return "没有找到匹配的摘抄。"
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, query *handlers.QueryHandler, excerpts *handlers.ExcerptHandler, sort entities.SortOption) error {
	p := tea.NewProgram(initialModel(ctx, query, excerpts, sort), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
