package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MyroslavG/orchestrator/internal/api"
)

// Frequencies offered by the campaign form, in display order.
var Frequencies = []api.Frequency{
	api.FrequencyDaily,
	api.FrequencyTwiceDaily,
	api.FrequencyThreeTimesDaily,
}

// DefaultPostsCount is the posts_count the form resets to.
const DefaultPostsCount = 7

type campaignFormZone int

const (
	zoneCampaignName campaignFormZone = iota
	zoneCampaignTemplates
	zoneCampaignFrequency
	zoneCampaignCount
	zoneCampaignStart
	zoneCampaignSubmit
	campaignZoneCount
)

// CreateCampaignModel is the campaign creation form. Campaigns are generated
// asynchronously server-side, so success shows a flag rather than a preview.
type CreateCampaignModel struct {
	client *api.Client
	styles Styles
	gen    int

	width  int
	height int

	spinner  spinner.Model
	viewport viewport.Model

	loadingTemplates bool
	templates        []api.Template
	templatesErr     error
	templateIdx      int

	name         textinput.Model
	frequencyIdx int
	postsCount   int
	startDate    textinput.Model
	zone         campaignFormZone

	submitting bool
	success    bool
	notice     string
}

// NewCreateCampaignModel creates the campaign form bound to a mount generation.
func NewCreateCampaignModel(client *api.Client, styles Styles, gen int) CreateCampaignModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	name := textinput.New()
	name.Placeholder = "e.g., January Growth Campaign"
	name.CharLimit = 120
	name.Focus()

	start := textinput.New()
	start.Placeholder = localDateTimeLayout
	start.CharLimit = len(localDateTimeLayout)

	return CreateCampaignModel{
		client:           client,
		styles:           styles,
		gen:              gen,
		spinner:          sp,
		viewport:         viewport.New(80, 20),
		loadingTemplates: true,
		templateIdx:      -1,
		name:             name,
		postsCount:       DefaultPostsCount,
		startDate:        start,
		width:            80,
		height:           24,
	}
}

// Init loads the template catalog for this form mount.
func (m CreateCampaignModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadTemplates(m.client, m.gen))
}

// CanSubmit reports whether the create control is enabled: name, template and
// a parsable start date are all required, and no request may be outstanding.
func (m CreateCampaignModel) CanSubmit() bool {
	if m.submitting {
		return false
	}
	if strings.TrimSpace(m.name.Value()) == "" {
		return false
	}
	if m.templateIdx < 0 || m.templateIdx >= len(m.templates) {
		return false
	}
	s := strings.TrimSpace(m.startDate.Value())
	if s == "" {
		return false
	}
	_, err := time.ParseInLocation(localDateTimeLayout, s, time.Local)
	return err == nil
}

// Draft builds the creation request from the current field state. The local
// start date is converted to an absolute UTC instant.
func (m CreateCampaignModel) Draft() api.CreateCampaignRequest {
	req := api.CreateCampaignRequest{
		Name:       strings.TrimSpace(m.name.Value()),
		Frequency:  Frequencies[m.frequencyIdx],
		PostsCount: api.ClampPostsCount(m.postsCount),
	}
	if m.templateIdx >= 0 && m.templateIdx < len(m.templates) {
		req.TemplateType = m.templates[m.templateIdx].Type
	}
	if at, err := time.ParseInLocation(localDateTimeLayout, strings.TrimSpace(m.startDate.Value()), time.Local); err == nil {
		req.StartDate = at.UTC()
	}
	return req
}

// SetPostsCount sets posts_count, clamped to the allowed range.
func (m *CreateCampaignModel) SetPostsCount(n int) {
	m.postsCount = api.ClampPostsCount(n)
}

// Update handles messages for the create-campaign screen.
func (m CreateCampaignModel) Update(msg tea.Msg) (CreateCampaignModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.loadingTemplates && !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case templatesLoadedMsg:
		m.loadingTemplates = false
		m.templates = msg.templates
		m.templatesErr = msg.err
		if msg.err == nil && len(msg.templates) > 0 {
			m.templateIdx = 0
		}
		m.refresh()
		return m, nil

	case campaignCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.notice = "Failed to create campaign. Please try again."
			m.refresh()
			return m, nil
		}
		// Template and frequency stay selected for the next campaign.
		m.success = true
		m.name.Reset()
		m.startDate.Reset()
		m.postsCount = DefaultPostsCount
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m CreateCampaignModel) handleKey(msg tea.KeyMsg) (CreateCampaignModel, tea.Cmd) {
	key := msg.String()

	if m.notice != "" {
		if key == "enter" || key == "esc" {
			m.notice = ""
			m.refresh()
		}
		return m, nil
	}

	switch key {
	case "tab":
		m.setZone((m.zone + 1) % campaignZoneCount)
		m.refresh()
		return m, nil
	case "shift+tab":
		m.setZone((m.zone + campaignZoneCount - 1) % campaignZoneCount)
		m.refresh()
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "pgup":
		if m.zone == zoneCampaignCount {
			m.SetPostsCount(m.postsCount + 7)
			m.refresh()
		} else {
			m.viewport.HalfViewUp()
		}
		return m, nil
	case "pgdown":
		if m.zone == zoneCampaignCount {
			m.SetPostsCount(m.postsCount - 7)
			m.refresh()
		} else {
			m.viewport.HalfViewDown()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.zone {
	case zoneCampaignName:
		m.name, cmd = m.name.Update(msg)
	case zoneCampaignTemplates:
		switch key {
		case "left", "up", "k", "h":
			if m.templateIdx > 0 {
				m.templateIdx--
			}
		case "right", "down", "j", "l":
			if m.templateIdx < len(m.templates)-1 {
				m.templateIdx++
			}
		}
	case zoneCampaignFrequency:
		switch key {
		case "left", "h":
			if m.frequencyIdx > 0 {
				m.frequencyIdx--
			}
		case "right", "l":
			if m.frequencyIdx < len(Frequencies)-1 {
				m.frequencyIdx++
			}
		}
	case zoneCampaignCount:
		switch key {
		case "up", "k", "+", "=":
			m.SetPostsCount(m.postsCount + 1)
		case "down", "j", "-":
			m.SetPostsCount(m.postsCount - 1)
		}
	case zoneCampaignStart:
		m.startDate, cmd = m.startDate.Update(msg)
	case zoneCampaignSubmit:
		if key == "enter" {
			return m.submit()
		}
	}
	m.refresh()
	return m, cmd
}

func (m *CreateCampaignModel) setZone(z campaignFormZone) {
	m.zone = z
	if z == zoneCampaignName {
		m.name.Focus()
	} else {
		m.name.Blur()
	}
	if z == zoneCampaignStart {
		m.startDate.Focus()
	} else {
		m.startDate.Blur()
	}
}

func (m CreateCampaignModel) submit() (CreateCampaignModel, tea.Cmd) {
	if !m.CanSubmit() {
		return m, nil
	}
	m.submitting = true
	m.success = false
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, createCampaign(m.client, m.gen, m.Draft()))
}

func (m *CreateCampaignModel) refresh() {
	m.viewport.SetContent(m.contentView())
}

// View renders the create-campaign screen.
func (m CreateCampaignModel) View() string {
	if m.notice != "" {
		return m.styles.Content.Render(
			m.styles.Notice.Render(
				m.styles.Error.Render(m.notice) + "\n\n" +
					m.styles.Footer.Render("enter dismiss"),
			),
		)
	}
	footer := m.styles.Footer.Render("tab next field  ctrl+s create")
	return m.viewport.View() + "\n" + footer
}

func (m CreateCampaignModel) contentView() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Create Campaign") + "\n")
	sb.WriteString(m.styles.Subtitle.Render("Schedule multiple posts with consistent publishing") + "\n\n")

	if m.success {
		sb.WriteString(m.styles.Success.Render("Campaign created successfully!") + "\n\n")
	}
	if m.loadingTemplates {
		sb.WriteString(m.spinner.View() + " Loading templates...\n")
		return m.styles.Content.Render(sb.String())
	}
	if m.templatesErr != nil {
		sb.WriteString(m.styles.Warning.Render("⚠ Could not load templates") + "\n")
	}

	sb.WriteString(m.sectionLabel("Campaign Name", m.zone == zoneCampaignName) + "\n")
	sb.WriteString(m.name.View() + "\n\n")

	sb.WriteString(m.sectionLabel("Choose Template", m.zone == zoneCampaignTemplates) + "\n")
	for i, t := range m.templates {
		card := m.styles.Card
		if i == m.templateIdx {
			card = m.styles.CardOn
		}
		sb.WriteString(card.Render(fmt.Sprintf("%s %s", t.Icon, t.Name)) + "\n")
	}

	sb.WriteString("\n" + m.sectionLabel("Posting Frequency", m.zone == zoneCampaignFrequency) + "\n")
	var freqs []string
	for i := range Frequencies {
		label := fmt.Sprintf("%d× daily", i+1)
		if i == m.frequencyIdx {
			freqs = append(freqs, m.styles.CardOn.Render(label))
		} else {
			freqs = append(freqs, m.styles.Muted.Render(label))
		}
	}
	sb.WriteString(strings.Join(freqs, "  ") + "\n")

	sb.WriteString("\n" + m.sectionLabel("Number of Posts", m.zone == zoneCampaignCount) + "\n")
	sb.WriteString(m.styles.Bold.Render(fmt.Sprintf("%d", m.postsCount)) +
		m.styles.Muted.Render(fmt.Sprintf("  (%d-%d, ↑/↓ to adjust)", api.MinPostsCount, api.MaxPostsCount)) + "\n")

	sb.WriteString("\n" + m.sectionLabel("Start Date", m.zone == zoneCampaignStart) + "\n")
	sb.WriteString(m.startDate.View() + "\n")

	if m.submitting {
		sb.WriteString("\n" + m.spinner.View() + " Creating Campaign...\n")
	} else {
		style := m.styles.Muted
		if m.CanSubmit() {
			style = m.styles.Bold
			if m.zone == zoneCampaignSubmit {
				style = m.styles.Success
			}
		}
		sb.WriteString("\n" + style.Render("[ Create Campaign ]") + "\n")
	}
	return m.styles.Content.Render(sb.String())
}

func (m CreateCampaignModel) sectionLabel(label string, focused bool) string {
	if focused {
		return m.styles.Info.Render("» " + label)
	}
	return m.styles.Bold.Render(label)
}
