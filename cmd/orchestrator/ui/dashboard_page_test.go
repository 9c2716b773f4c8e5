package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/MyroslavG/orchestrator/internal/api"
)

func testClient() *api.Client {
	// Never dialed by these tests; commands returned by Update are not executed
	// unless a test runs them explicitly.
	return api.New("http://127.0.0.1:1", nil)
}

func testPosts() []api.Post {
	created := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	return []api.Post{
		{ID: "1", TemplateType: "aesthetic", Caption: "first", Status: api.PostStatusScheduled, CreatedAt: created},
		{ID: "2", TemplateType: "book_blog", Caption: "second", Status: api.PostStatusDraft, CreatedAt: created},
	}
}

func loadedDashboard(t *testing.T) DashboardModel {
	t.Helper()
	m := NewDashboardModel(testClient(), NewStyles(DarkTheme()), 1)
	m, _ = m.Update(dashboardLoadedMsg{
		gen:       1,
		posts:     testPosts(),
		campaigns: []api.Campaign{{ID: "c1", Name: "Jan", Status: api.CampaignStatusActive}},
	})
	return m
}

// =============================================================================
// LOADING
// =============================================================================

func TestDashboard_LoadingUntilJoinedMessage(t *testing.T) {
	t.Parallel()
	m := NewDashboardModel(testClient(), NewStyles(DarkTheme()), 1)

	if !m.loading {
		t.Fatal("dashboard should start in loading state")
	}

	m, _ = m.Update(dashboardLoadedMsg{gen: 1, posts: testPosts()})
	if m.loading {
		t.Error("loading should clear once the joined load message arrives")
	}
}

func TestDashboard_PartialFailureStillPopulatesOtherCollection(t *testing.T) {
	t.Parallel()
	m := NewDashboardModel(testClient(), NewStyles(DarkTheme()), 1)

	m, _ = m.Update(dashboardLoadedMsg{
		gen:          1,
		postsErr:     errors.New("boom"),
		campaigns:    []api.Campaign{{ID: "c1", Status: api.CampaignStatusActive}},
		campaignsErr: nil,
	})

	if m.loading {
		t.Error("loading should clear even on partial failure")
	}
	if len(m.posts) != 0 {
		t.Errorf("failed collection should be empty, got %d posts", len(m.posts))
	}
	if len(m.campaigns) != 1 {
		t.Errorf("healthy collection should populate, got %d campaigns", len(m.campaigns))
	}
	if m.postsErr == nil {
		t.Error("posts error should be surfaced for the inline notice")
	}
}

// =============================================================================
// STATS
// =============================================================================

func TestDashboard_Stats(t *testing.T) {
	t.Parallel()
	m := loadedDashboard(t)

	got := m.Stats()
	want := Stats{TotalPosts: 2, ScheduledPosts: 1, ActiveCampaigns: 1}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestDashboard_StatsIgnoresInactiveCampaigns(t *testing.T) {
	t.Parallel()
	m := NewDashboardModel(testClient(), NewStyles(DarkTheme()), 1)
	m, _ = m.Update(dashboardLoadedMsg{
		gen: 1,
		campaigns: []api.Campaign{
			{ID: "c1", Status: api.CampaignStatusActive},
			{ID: "c2", Status: api.CampaignStatusPaused},
			{ID: "c3", Status: api.CampaignStatusCompleted},
		},
	})

	if got := m.Stats().ActiveCampaigns; got != 1 {
		t.Errorf("ActiveCampaigns = %d, want 1", got)
	}
}

// =============================================================================
// DELETE FLOW
// =============================================================================

func TestDashboard_DeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()
	m := loadedDashboard(t)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd != nil {
		t.Error("pressing d must not issue the request before confirmation")
	}
	if m.confirmDelete != "1" {
		t.Errorf("confirmDelete = %q, want %q", m.confirmDelete, "1")
	}

	// Declining leaves everything untouched.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.confirmDelete != "" {
		t.Error("n should cancel the pending confirmation")
	}
	if len(m.posts) != 2 {
		t.Error("declined delete must not touch the collection")
	}
}

func TestDashboard_ConfirmIssuesDelete(t *testing.T) {
	t.Parallel()
	m := loadedDashboard(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	if cmd == nil {
		t.Fatal("confirming should issue the delete request")
	}
	if !m.deleting {
		t.Error("model should be in deleting state while the request is in flight")
	}
}

func TestDashboard_DeleteSuccessRemovesExactlyOne(t *testing.T) {
	t.Parallel()
	m := loadedDashboard(t)
	before := len(m.posts)

	m, _ = m.Update(postDeletedMsg{gen: 1, id: "1"})

	if len(m.posts) != before-1 {
		t.Errorf("collection size = %d, want %d", len(m.posts), before-1)
	}
	for _, p := range m.posts {
		if p.ID == "1" {
			t.Error("deleted id still present in collection")
		}
	}
}

func TestDashboard_DeleteSuccessClosesBoundOverlay(t *testing.T) {
	t.Parallel()
	m := loadedDashboard(t)

	// Open the detail overlay on post "1".
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.selected == nil || m.selected.ID != "1" {
		t.Fatal("overlay should be bound to post 1")
	}

	m, _ = m.Update(postDeletedMsg{gen: 1, id: "1"})
	if m.selected != nil {
		t.Error("overlay bound to the deleted post must close")
	}
}

func TestDashboard_DeleteSuccessKeepsUnrelatedOverlay(t *testing.T) {
	t.Parallel()
	m := loadedDashboard(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.selected == nil || m.selected.ID != "2" {
		t.Fatal("overlay should be bound to post 2")
	}

	m, _ = m.Update(postDeletedMsg{gen: 1, id: "1"})
	if m.selected == nil || m.selected.ID != "2" {
		t.Error("overlay bound to a different post must stay open")
	}
}

func TestDashboard_DeleteFailureLeavesCollectionUntouched(t *testing.T) {
	t.Parallel()
	m := loadedDashboard(t)
	before := append([]api.Post(nil), m.posts...)

	m, _ = m.Update(postDeletedMsg{gen: 1, id: "1", err: errors.New("boom")})

	if diff := cmp.Diff(before, m.posts); diff != "" {
		t.Errorf("collection changed on failed delete (-before +after):\n%s", diff)
	}
	if m.notice == "" {
		t.Error("failed delete must surface a blocking notice")
	}
}

func TestDashboard_NoticeBlocksInputUntilDismissed(t *testing.T) {
	t.Parallel()
	m := loadedDashboard(t)
	m, _ = m.Update(postDeletedMsg{gen: 1, id: "1", err: errors.New("boom")})

	// Keys other than enter/esc are swallowed.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd != nil || m.confirmDelete != "" {
		t.Error("notice must block the delete flow")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.notice != "" {
		t.Error("enter should dismiss the notice")
	}
}

// =============================================================================
// DETAIL OVERLAY
// =============================================================================

func TestDashboard_OverlayOpensAndCloses(t *testing.T) {
	t.Parallel()
	m := loadedDashboard(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.selected == nil {
		t.Fatal("enter should open the detail overlay")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.selected != nil {
		t.Error("esc should close the detail overlay")
	}
}

func TestDashboard_ViewRendersCounters(t *testing.T) {
	t.Parallel()
	m := loadedDashboard(t)

	out := m.View()
	for _, want := range []string{"Total Posts", "Scheduled", "Active Campaigns", "Recent Posts"} {
		if !containsPlain(out, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}
}
