package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MyroslavG/orchestrator/internal/api"
)

// View identifies the mounted screen.
type View int

const (
	ViewDashboard View = iota
	ViewCreatePost
	ViewCreateCampaign
)

// App is the top-level model: a discriminated selector over the three
// screens. Switching screens constructs a fresh page model, so a re-entered
// screen reloads its resources from scratch; there is no cross-screen cache.
type App struct {
	client *api.Client
	styles Styles

	width  int
	height int

	view View
	gen  int // mount generation, bumped on every switch

	dashboard      DashboardModel
	createPost     CreatePostModel
	createCampaign CreateCampaignModel
}

// NewApp creates the application model starting on the dashboard.
func NewApp(client *api.Client, styles Styles) App {
	app := App{
		client: client,
		styles: styles,
		view:   ViewDashboard,
		gen:    1,
		width:  80,
		height: 24,
	}
	app.dashboard = NewDashboardModel(client, styles, app.gen)
	return app
}

// Init mounts the initial screen.
func (m App) Init() tea.Cmd {
	return m.dashboard.Init()
}

// Update routes messages. Request results are delivered only when their mount
// generation matches the active screen; anything that arrives late for an
// unmounted screen is dropped (in-flight requests are never cancelled).
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.forward(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "f1", "alt+1":
			return m.switchTo(ViewDashboard)
		case "f2", "alt+2":
			return m.switchTo(ViewCreatePost)
		case "f3", "alt+3":
			return m.switchTo(ViewCreateCampaign)
		}
		return m.forward(msg)
	}

	if gen, ok := msgGen(msg); ok && gen != m.gen {
		return m, nil // stale result for an unmounted screen
	}
	return m.forward(msg)
}

// forward delivers a message to the active page only.
func (m App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewCreatePost:
		m.createPost, cmd = m.createPost.Update(msg)
	case ViewCreateCampaign:
		m.createCampaign, cmd = m.createCampaign.Update(msg)
	}
	return m, cmd
}

// switchTo unmounts the current screen and mounts v fresh.
func (m App) switchTo(v View) (tea.Model, tea.Cmd) {
	if v == m.view {
		return m, nil
	}
	m.view = v
	m.gen++

	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
	var cmd tea.Cmd
	switch v {
	case ViewDashboard:
		m.dashboard = NewDashboardModel(m.client, m.styles, m.gen)
		m.dashboard, _ = m.dashboard.Update(size)
		cmd = m.dashboard.Init()
	case ViewCreatePost:
		m.createPost = NewCreatePostModel(m.client, m.styles, m.gen)
		m.createPost, _ = m.createPost.Update(size)
		cmd = m.createPost.Init()
	case ViewCreateCampaign:
		m.createCampaign = NewCreateCampaignModel(m.client, m.styles, m.gen)
		m.createCampaign, _ = m.createCampaign.Update(size)
		cmd = m.createCampaign.Init()
	}
	return m, cmd
}

// msgGen extracts the mount generation from request-result messages.
func msgGen(msg tea.Msg) (int, bool) {
	switch msg := msg.(type) {
	case templatesLoadedMsg:
		return msg.gen, true
	case dashboardLoadedMsg:
		return msg.gen, true
	case postCreatedMsg:
		return msg.gen, true
	case campaignCreatedMsg:
		return msg.gen, true
	case postDeletedMsg:
		return msg.gen, true
	case previewFocusMsg:
		return msg.gen, true
	}
	return 0, false
}

// View renders the header navigation plus the active screen.
func (m App) View() string {
	tab := func(label string, v View) string {
		if v == m.view {
			return m.styles.TabOn.Render(label)
		}
		return m.styles.Tab.Render(label)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Header.Render("✦ Media Orchestrator"),
		tab("Dashboard [F1]", ViewDashboard),
		tab("Create Post [F2]", ViewCreatePost),
		tab("Create Campaign [F3]", ViewCreateCampaign),
	)

	var page string
	switch m.view {
	case ViewDashboard:
		page = m.dashboard.View()
	case ViewCreatePost:
		page = m.createPost.View()
	case ViewCreateCampaign:
		page = m.createCampaign.View()
	}
	return header + "\n" + m.styles.RenderDivider(m.width) + "\n" + page
}
