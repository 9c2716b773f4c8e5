package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MyroslavG/orchestrator/internal/api"
)

// Tones offered by the post form; the first is the default.
var Tones = []string{"professional", "casual", "inspirational", "educational", "entertaining"}

// localDateTimeLayout is the datetime-local entry format.
const localDateTimeLayout = "2006-01-02T15:04"

// postFormZone is the focused region of the create-post form.
type postFormZone int

const (
	zonePostTemplates postFormZone = iota
	zonePostPrompt
	zonePostTone
	zonePostSchedule
	zonePostSubmit
	postZoneCount
)

// CreatePostModel is the post creation form: template picker, optional custom
// prompt, tone, optional schedule, and the inline generated-post preview.
type CreatePostModel struct {
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
	templateIdx      int // -1 until the catalog arrives

	prompt   textarea.Model
	toneIdx  int
	schedule textinput.Model
	zone     postFormZone

	submitting bool
	success    bool
	preview    *api.Post
	notice     string
}

// NewCreatePostModel creates the post form bound to a mount generation.
func NewCreatePostModel(client *api.Client, styles Styles, gen int) CreatePostModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	prompt := textarea.New()
	prompt.Placeholder = "Add specific instructions for content generation..."
	prompt.SetHeight(4)
	prompt.CharLimit = 2000

	schedule := textinput.New()
	schedule.Placeholder = localDateTimeLayout
	schedule.CharLimit = len(localDateTimeLayout)

	vp := viewport.New(80, 20)

	return CreatePostModel{
		client:           client,
		styles:           styles,
		gen:              gen,
		spinner:          sp,
		viewport:         vp,
		loadingTemplates: true,
		templateIdx:      -1,
		prompt:           prompt,
		schedule:         schedule,
		width:            80,
		height:           24,
	}
}

// Init loads the template catalog for this form mount.
func (m CreatePostModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadTemplates(m.client, m.gen))
}

// CanSubmit reports whether the generate control is enabled: a template must
// be selected, the custom template requires a non-empty prompt, a non-empty
// schedule must parse, and no request may be outstanding.
func (m CreatePostModel) CanSubmit() bool {
	if m.submitting {
		return false
	}
	if m.templateIdx < 0 || m.templateIdx >= len(m.templates) {
		return false
	}
	if m.templates[m.templateIdx].Type == api.TemplateTypeCustom &&
		strings.TrimSpace(m.prompt.Value()) == "" {
		return false
	}
	if s := strings.TrimSpace(m.schedule.Value()); s != "" {
		if _, err := time.ParseInLocation(localDateTimeLayout, s, time.Local); err != nil {
			return false
		}
	}
	return true
}

// Draft builds the creation request from the current field state.
func (m CreatePostModel) Draft() api.CreatePostRequest {
	req := api.CreatePostRequest{
		CustomPrompt: strings.TrimSpace(m.prompt.Value()),
		Tone:         Tones[m.toneIdx],
	}
	if m.templateIdx >= 0 && m.templateIdx < len(m.templates) {
		req.TemplateType = m.templates[m.templateIdx].Type
	}
	if s := strings.TrimSpace(m.schedule.Value()); s != "" {
		if at, err := time.ParseInLocation(localDateTimeLayout, s, time.Local); err == nil {
			utc := at.UTC()
			req.ScheduleAt = &utc
		}
	}
	return req
}

// Update handles messages for the create-post screen.
func (m CreatePostModel) Update(msg tea.Msg) (CreatePostModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.prompt.SetWidth(min(msg.Width-8, 72))
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

	case postCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			// Fields stay intact so the user can retry without re-entering data.
			m.notice = "Failed to create post. Please try again."
			m.refresh()
			return m, nil
		}
		m.success = true
		m.preview = msg.post
		m.prompt.Reset()
		m.schedule.Reset()
		m.refresh()
		return m, focusPreview(m.gen)

	case previewFocusMsg:
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m CreatePostModel) handleKey(msg tea.KeyMsg) (CreatePostModel, tea.Cmd) {
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
		m.setZone((m.zone + 1) % postZoneCount)
		m.refresh()
		return m, nil
	case "shift+tab":
		m.setZone((m.zone + postZoneCount - 1) % postZoneCount)
		m.refresh()
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "ctrl+x":
		// The preview is dismissible at any time.
		m.preview = nil
		m.success = false
		m.refresh()
		return m, nil
	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil
	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.zone {
	case zonePostTemplates:
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
	case zonePostPrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	case zonePostTone:
		switch key {
		case "left", "h":
			if m.toneIdx > 0 {
				m.toneIdx--
			}
		case "right", "l":
			if m.toneIdx < len(Tones)-1 {
				m.toneIdx++
			}
		}
	case zonePostSchedule:
		m.schedule, cmd = m.schedule.Update(msg)
	case zonePostSubmit:
		if key == "enter" {
			return m.submit()
		}
	}
	m.refresh()
	return m, cmd
}

func (m *CreatePostModel) setZone(z postFormZone) {
	m.zone = z
	if z == zonePostPrompt {
		m.prompt.Focus()
	} else {
		m.prompt.Blur()
	}
	if z == zonePostSchedule {
		m.schedule.Focus()
	} else {
		m.schedule.Blur()
	}
}

func (m CreatePostModel) submit() (CreatePostModel, tea.Cmd) {
	if !m.CanSubmit() {
		return m, nil
	}
	m.submitting = true
	m.success = false
	m.preview = nil
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, createPost(m.client, m.gen, m.Draft()))
}

// refresh re-renders the form into the viewport.
func (m *CreatePostModel) refresh() {
	m.viewport.SetContent(m.contentView())
}

// View renders the create-post screen.
func (m CreatePostModel) View() string {
	if m.notice != "" {
		return m.styles.Content.Render(
			m.styles.Notice.Render(
				m.styles.Error.Render(m.notice) + "\n\n" +
					m.styles.Footer.Render("enter dismiss"),
			),
		)
	}
	footer := m.styles.Footer.Render("tab next field  ctrl+s generate  ctrl+x clear preview")
	return m.viewport.View() + "\n" + footer
}

func (m CreatePostModel) contentView() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Create Post") + "\n")
	sb.WriteString(m.styles.Subtitle.Render("Generate AI-powered content for your social media") + "\n\n")

	if m.loadingTemplates {
		sb.WriteString(m.spinner.View() + " Loading templates...\n")
		return m.styles.Content.Render(sb.String())
	}
	if m.templatesErr != nil {
		sb.WriteString(m.styles.Warning.Render("⚠ Could not load templates") + "\n")
	}

	sb.WriteString(m.templatePicker())
	sb.WriteString(m.promptField())
	sb.WriteString(m.toneField())
	sb.WriteString(m.scheduleField())
	sb.WriteString(m.submitControl())

	if m.success {
		sb.WriteString("\n" + m.styles.Success.Render("✨ Post created successfully!") + "\n")
	}
	if m.preview != nil {
		sb.WriteString(m.previewView())
	}
	return m.styles.Content.Render(sb.String())
}

func (m CreatePostModel) templatePicker() string {
	var sb strings.Builder
	sb.WriteString(m.sectionLabel("Choose Template", m.zone == zonePostTemplates) + "\n")
	for i, t := range m.templates {
		card := m.styles.Card
		if i == m.templateIdx {
			card = m.styles.CardOn
		}
		line := fmt.Sprintf("%s %s", t.Icon, t.Name)
		if i == m.templateIdx {
			line += "\n" + m.styles.Muted.Render(t.Description)
		}
		sb.WriteString(card.Render(line) + "\n")
	}
	return sb.String()
}

func (m CreatePostModel) promptField() string {
	label := "Custom Prompt (Optional)"
	if m.customSelected() {
		label = "Custom Prompt (Required) - Describe what you want to generate"
	}
	out := "\n" + m.sectionLabel(label, m.zone == zonePostPrompt) + "\n" + m.prompt.View() + "\n"
	if m.customSelected() && strings.TrimSpace(m.prompt.Value()) == "" {
		out += m.styles.Muted.Render("Tip: be specific about subject, setting, mood, colors and style.") + "\n"
	}
	return out
}

func (m CreatePostModel) toneField() string {
	var parts []string
	for i, tone := range Tones {
		if i == m.toneIdx {
			parts = append(parts, m.styles.CardOn.Render(tone))
		} else {
			parts = append(parts, m.styles.Muted.Render(tone))
		}
	}
	return "\n" + m.sectionLabel("Tone", m.zone == zonePostTone) + "\n" +
		strings.Join(parts, "  ") + "\n"
}

func (m CreatePostModel) scheduleField() string {
	return "\n" + m.sectionLabel("Schedule (Optional)", m.zone == zonePostSchedule) + "\n" +
		m.schedule.View() + "\n"
}

func (m CreatePostModel) submitControl() string {
	label := "Generate Post"
	if m.submitting {
		return "\n" + m.spinner.View() + " Generating...\n"
	}
	style := m.styles.Muted
	if m.CanSubmit() {
		style = m.styles.Bold
		if m.zone == zonePostSubmit {
			style = m.styles.Success
		}
	}
	return "\n" + style.Render("[ "+label+" ]") + "\n"
}

func (m CreatePostModel) previewView() string {
	p := m.preview
	var sb strings.Builder
	sb.WriteString(m.styles.Bold.Render("Generated Post") + "\n\n")
	sb.WriteString(p.Caption + "\n")
	if len(p.Hashtags) > 0 {
		tags := make([]string, len(p.Hashtags))
		for i, t := range p.Hashtags {
			tags[i] = "#" + t
		}
		sb.WriteString(m.styles.Hashtag.Render(strings.Join(tags, " ")) + "\n")
	}
	if p.ImageURL != "" {
		sb.WriteString(m.styles.Muted.Render("Image: "+p.ImageURL) + "\n")
	}
	if p.ImagePrompt != "" {
		sb.WriteString(m.styles.Muted.Render("Image prompt: "+p.ImagePrompt) + "\n")
	}
	return "\n" + m.styles.Overlay.Render(sb.String())
}

func (m CreatePostModel) customSelected() bool {
	return m.templateIdx >= 0 && m.templateIdx < len(m.templates) &&
		m.templates[m.templateIdx].Type == api.TemplateTypeCustom
}

func (m CreatePostModel) sectionLabel(label string, focused bool) string {
	if focused {
		return m.styles.Info.Render("» " + label)
	}
	return m.styles.Bold.Render(label)
}
