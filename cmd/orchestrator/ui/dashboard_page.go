package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/MyroslavG/orchestrator/internal/api"
)

// DashboardModel shows aggregate stats, the post grid and active campaigns.
// It owns the delete-with-confirmation flow and the post detail overlay.
type DashboardModel struct {
	client *api.Client
	styles Styles
	gen    int

	width  int
	height int

	spinner spinner.Model
	loading bool

	posts        []api.Post
	campaigns    []api.Campaign
	postsErr     error
	campaignsErr error

	cursor        int
	selected      *api.Post // detail overlay, value copy of a loaded post
	confirmDelete string    // post id awaiting confirmation, "" if none
	deleting      bool
	notice        string // blocking error notice, "" if none

	renderer *glamour.TermRenderer
}

// Stats are the three counters derived from the loaded collections.
type Stats struct {
	TotalPosts      int
	ScheduledPosts  int
	ActiveCampaigns int
}

// NewDashboardModel creates a dashboard bound to the given mount generation.
func NewDashboardModel(client *api.Client, styles Styles, gen int) DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	return DashboardModel{
		client:   client,
		styles:   styles,
		gen:      gen,
		spinner:  sp,
		loading:  true,
		renderer: renderer,
		width:    80,
		height:   24,
	}
}

// Init starts the parallel posts/campaigns load.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadDashboard(m.client, m.gen))
}

// Stats derives the dashboard counters from the loaded collections.
func (m DashboardModel) Stats() Stats {
	s := Stats{TotalPosts: len(m.posts)}
	for _, p := range m.posts {
		if p.Scheduled() {
			s.ScheduledPosts++
		}
	}
	for _, c := range m.campaigns {
		if c.Active() {
			s.ActiveCampaigns++
		}
	}
	return s
}

// Update handles messages for the dashboard screen.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.deleting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dashboardLoadedMsg:
		m.loading = false
		m.posts = msg.posts
		m.campaigns = msg.campaigns
		m.postsErr = msg.postsErr
		m.campaignsErr = msg.campaignsErr
		m.cursor = 0
		return m, nil

	case postDeletedMsg:
		m.deleting = false
		m.confirmDelete = ""
		if msg.err != nil {
			// Collection left untouched; the user re-initiates if desired.
			m.notice = "Failed to delete post. Please try again."
			return m, nil
		}
		m.removePost(msg.id)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	key := msg.String()

	// A notice blocks everything until dismissed.
	if m.notice != "" {
		if key == "enter" || key == "esc" {
			m.notice = ""
		}
		return m, nil
	}

	// Confirmation prompt for a pending delete.
	if m.confirmDelete != "" {
		switch key {
		case "y", "enter":
			if m.deleting {
				return m, nil
			}
			m.deleting = true
			return m, tea.Batch(m.spinner.Tick, deletePost(m.client, m.gen, m.confirmDelete))
		case "n", "esc":
			m.confirmDelete = ""
		}
		return m, nil
	}

	// Detail overlay.
	if m.selected != nil {
		switch key {
		case "esc", "q":
			m.selected = nil
		case "d":
			m.confirmDelete = m.selected.ID
		}
		return m, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.posts) {
			post := m.posts[m.cursor]
			m.selected = &post
		}
	case "d":
		if m.cursor < len(m.posts) {
			m.confirmDelete = m.posts[m.cursor].ID
		}
	case "r":
		m.loading = true
		m.postsErr = nil
		m.campaignsErr = nil
		return m, tea.Batch(m.spinner.Tick, loadDashboard(m.client, m.gen))
	}
	return m, nil
}

// removePost removes exactly one entry matching id and clears the selection
// and detail overlay if they were bound to it.
func (m *DashboardModel) removePost(id string) {
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			break
		}
	}
	if m.selected != nil && m.selected.ID == id {
		m.selected = nil
	}
	if m.cursor >= len(m.posts) && m.cursor > 0 {
		m.cursor = len(m.posts) - 1
	}
}

// View renders the dashboard screen.
func (m DashboardModel) View() string {
	if m.loading {
		return m.styles.Content.Render(m.spinner.View() + " Loading dashboard...")
	}
	if m.notice != "" {
		return m.styles.Content.Render(m.noticeView())
	}
	if m.confirmDelete != "" {
		return m.styles.Content.Render(m.confirmView())
	}
	if m.selected != nil {
		return m.styles.Content.Render(m.detailView())
	}

	var sb strings.Builder
	sb.WriteString(m.statsView())
	sb.WriteString("\n")

	if m.postsErr != nil {
		sb.WriteString(m.styles.Warning.Render("⚠ Could not load posts") + "\n")
	}
	if m.campaignsErr != nil {
		sb.WriteString(m.styles.Warning.Render("⚠ Could not load campaigns") + "\n")
	}

	sb.WriteString(m.postsView())
	sb.WriteString(m.campaignsView())
	sb.WriteString("\n" + m.styles.Footer.Render("j/k move  enter details  d delete  r reload"))
	return m.styles.Content.Render(sb.String())
}

func (m DashboardModel) statsView() string {
	stats := m.Stats()
	card := func(label string, n int) string {
		return m.styles.Card.Render(
			m.styles.Muted.Render(label) + "\n" +
				m.styles.Bold.Render(strconv.Itoa(n)),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Posts", stats.TotalPosts),
		card("Scheduled", stats.ScheduledPosts),
		card("Active Campaigns", stats.ActiveCampaigns),
	)
}

func (m DashboardModel) postsView() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Recent Posts") + "\n")

	if len(m.posts) == 0 {
		sb.WriteString(m.styles.Muted.Render("No posts yet. Create your first post to get started!") + "\n")
		return sb.String()
	}

	for i, p := range m.posts {
		marker := "  "
		if i == m.cursor {
			marker = m.styles.Bold.Render("> ")
		}
		status := m.styles.BadgeMuted.Render(string(p.Status))
		if p.Scheduled() {
			status = m.styles.Badge.Render(string(p.Status))
		}
		line := fmt.Sprintf("%s%s  %s  %s",
			marker,
			m.styles.Info.Render(prettyType(p.TemplateType)),
			status,
			firstLine(p.Caption),
		)
		sb.WriteString(line + "\n")
		if tags := m.hashtagLine(p.Hashtags); tags != "" {
			sb.WriteString("    " + tags + "\n")
		}
		if p.ScheduledAt != nil {
			sb.WriteString("    " + m.styles.Muted.Render("Scheduled: "+p.ScheduledAt.Local().Format("2006-01-02 15:04")) + "\n")
		}
	}
	return sb.String()
}

func (m DashboardModel) campaignsView() string {
	table := NewSimpleTable("Active Campaigns", []string{"Name", "Template", "Frequency", "Posts", "Status"})
	for _, c := range m.campaigns {
		if !c.Active() {
			continue
		}
		table.AddRow(
			c.Name,
			prettyType(c.TemplateType),
			prettyType(string(c.Frequency)),
			strconv.Itoa(len(c.Posts)),
			string(c.Status),
		)
	}
	out := table.View(m.styles)
	if out == "" {
		return ""
	}
	return "\n" + out
}

func (m DashboardModel) detailView() string {
	p := m.selected
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Post Details") + "\n")
	sb.WriteString(m.styles.Info.Render(prettyType(p.TemplateType)) + "  ")
	if p.Scheduled() {
		sb.WriteString(m.styles.Badge.Render(string(p.Status)))
	} else {
		sb.WriteString(m.styles.BadgeMuted.Render(string(p.Status)))
	}
	sb.WriteString("\n\n")

	caption := p.Caption
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(p.Caption); err == nil {
			caption = strings.TrimSpace(rendered)
		}
	}
	sb.WriteString(caption + "\n\n")

	if len(p.Hashtags) > 0 {
		tags := make([]string, len(p.Hashtags))
		for i, t := range p.Hashtags {
			tags[i] = "#" + t
		}
		sb.WriteString(m.styles.Hashtag.Render(strings.Join(tags, " ")) + "\n\n")
	}
	if p.ImageURL != "" {
		sb.WriteString(m.styles.Muted.Render("Image: "+p.ImageURL) + "\n")
	}
	if p.ImagePrompt != "" {
		sb.WriteString(m.styles.Muted.Render("Image prompt: "+p.ImagePrompt) + "\n")
	}
	sb.WriteString(m.styles.Muted.Render("Created: "+p.CreatedAt.Local().Format("2006-01-02 15:04")) + "\n")
	if p.ScheduledAt != nil {
		sb.WriteString(m.styles.Muted.Render("Scheduled: "+p.ScheduledAt.Local().Format("2006-01-02 15:04")) + "\n")
	}
	sb.WriteString("\n" + m.styles.Footer.Render("d delete  esc close"))
	return m.styles.Overlay.Render(sb.String())
}

func (m DashboardModel) confirmView() string {
	body := m.styles.Bold.Render("Delete this post?") + "\n\n" +
		m.styles.Muted.Render("id: "+m.confirmDelete) + "\n\n"
	if m.deleting {
		body += m.spinner.View() + " Deleting..."
	} else {
		body += m.styles.Footer.Render("y confirm  n cancel")
	}
	return m.styles.Notice.Render(body)
}

func (m DashboardModel) noticeView() string {
	return m.styles.Notice.Render(
		m.styles.Error.Render(m.notice) + "\n\n" +
			m.styles.Footer.Render("enter dismiss"),
	)
}

func (m DashboardModel) hashtagLine(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	shown := tags
	more := ""
	if len(tags) > 3 {
		shown = tags[:3]
		more = m.styles.Muted.Render(fmt.Sprintf(" +%d more", len(tags)-3))
	}
	parts := make([]string, len(shown))
	for i, t := range shown {
		parts[i] = "#" + t
	}
	return m.styles.Hashtag.Render(strings.Join(parts, " ")) + more
}

// prettyType turns wire identifiers like "book_blog" into "book blog".
func prettyType(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return s
}
