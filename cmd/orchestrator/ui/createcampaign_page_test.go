package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyroslavG/orchestrator/internal/api"
)

func loadedCampaignForm(t *testing.T) CreateCampaignModel {
	t.Helper()
	m := NewCreateCampaignModel(testClient(), NewStyles(DarkTheme()), 1)
	m, _ = m.Update(templatesLoadedMsg{gen: 1, templates: testTemplates()})
	return m
}

// =============================================================================
// SUBMIT GATING
// =============================================================================

func TestCreateCampaign_GatingRequiresNameTemplateStart(t *testing.T) {
	t.Parallel()
	m := loadedCampaignForm(t)

	assert.False(t, m.CanSubmit(), "empty name and start date must disable submit")

	m.name.SetValue("January Growth")
	assert.False(t, m.CanSubmit(), "start date still missing")

	m.startDate.SetValue("2026-01-05T08:00")
	assert.True(t, m.CanSubmit())
}

func TestCreateCampaign_InvalidStartDateDisablesSubmit(t *testing.T) {
	t.Parallel()
	m := loadedCampaignForm(t)
	m.name.SetValue("January Growth")

	m.startDate.SetValue("tomorrow")
	assert.False(t, m.CanSubmit())
}

func TestCreateCampaign_SubmitDisabledWhileInFlight(t *testing.T) {
	t.Parallel()
	m := loadedCampaignForm(t)
	m.name.SetValue("January Growth")
	m.startDate.SetValue("2026-01-05T08:00")

	m, cmd := m.submit()
	require.NotNil(t, cmd)
	assert.False(t, m.CanSubmit())
}

// =============================================================================
// POSTS COUNT CLAMPING
// =============================================================================

func TestCreateCampaign_PostsCountClamped(t *testing.T) {
	t.Parallel()
	m := loadedCampaignForm(t)

	m.SetPostsCount(0)
	assert.Equal(t, 1, m.postsCount)

	m.SetPostsCount(500)
	assert.Equal(t, 90, m.postsCount)

	m.SetPostsCount(45)
	assert.Equal(t, 45, m.postsCount)
}

func TestCreateCampaign_CountKeysStayInRange(t *testing.T) {
	t.Parallel()
	m := loadedCampaignForm(t)
	m.setZone(zoneCampaignCount)
	m.SetPostsCount(90)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 90, m.postsCount, "increment at max stays at max")

	m.SetPostsCount(1)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.postsCount, "decrement at min stays at min")
}

func TestCreateCampaign_DraftClampsCount(t *testing.T) {
	t.Parallel()
	m := loadedCampaignForm(t)
	m.name.SetValue("Jan")
	m.startDate.SetValue("2026-01-05T08:00")
	m.postsCount = 900 // bypass the setter

	assert.Equal(t, 90, m.Draft().PostsCount)
}

// =============================================================================
// DRAFT & SUBMISSION RESULTS
// =============================================================================

func TestCreateCampaign_DraftConvertsStartDateToUTC(t *testing.T) {
	t.Parallel()
	m := loadedCampaignForm(t)
	m.name.SetValue("  January Growth  ")
	m.startDate.SetValue("2026-01-05T08:00")

	draft := m.Draft()
	assert.Equal(t, "January Growth", draft.Name)
	assert.Equal(t, api.FrequencyDaily, draft.Frequency)
	want := time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local).UTC()
	assert.True(t, draft.StartDate.Equal(want))
	assert.Equal(t, time.UTC, draft.StartDate.Location())
}

func TestCreateCampaign_SuccessResetsDraftKeepsSelections(t *testing.T) {
	t.Parallel()
	m := loadedCampaignForm(t)
	m.name.SetValue("January Growth")
	m.startDate.SetValue("2026-01-05T08:00")
	m.SetPostsCount(30)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, m.submitting)

	// Move selections off the defaults first so persistence is observable.
	m.templateIdx = 1
	m.frequencyIdx = 2

	m, _ = m.Update(campaignCreatedMsg{gen: 1, campaign: &api.Campaign{ID: "c9", Status: api.CampaignStatusActive}})

	assert.True(t, m.success)
	assert.Empty(t, m.name.Value())
	assert.Empty(t, m.startDate.Value())
	assert.Equal(t, DefaultPostsCount, m.postsCount)
	assert.Equal(t, 1, m.templateIdx, "template selection persists")
	assert.Equal(t, 2, m.frequencyIdx, "frequency selection persists")
}

func TestCreateCampaign_FailurePreservesFields(t *testing.T) {
	t.Parallel()
	m := loadedCampaignForm(t)
	m.name.SetValue("January Growth")
	m.startDate.SetValue("2026-01-05T08:00")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	m, _ = m.Update(campaignCreatedMsg{gen: 1, err: errors.New("boom")})

	assert.False(t, m.success)
	assert.NotEmpty(t, m.notice)
	assert.Equal(t, "January Growth", m.name.Value())
	assert.Equal(t, "2026-01-05T08:00", m.startDate.Value())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.notice)
	assert.True(t, m.CanSubmit(), "form returns to an actionable idle state")
}
