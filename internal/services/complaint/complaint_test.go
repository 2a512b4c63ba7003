package complaint

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trackingIDPattern = regexp.MustCompile(`^NYC-[0-9A-F]{8}$`)

func TestNewTrackingID_Format(t *testing.T) {
	id := NewTrackingID()
	assert.Regexp(t, trackingIDPattern, id)
}

func TestNewTrackingID_Unique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := NewTrackingID()
		require.Regexp(t, trackingIDPattern, id)
		assert.False(t, seen[id], "tracking ID reused: %s", id)
		seen[id] = true
	}
}

func TestProcessVoiceComplaint(t *testing.T) {
	s := NewDefault()

	result, err := s.ProcessVoiceComplaint(context.Background(), "https://example.com/audio.mp3", "hi")
	require.NoError(t, err)

	assert.Regexp(t, trackingIDPattern, result.TrackingID)
	assert.Equal(t, StatusSubmitted, result.Status)
	assert.True(t, result.Status.Valid())
	assert.Equal(t, "municipal", result.ComplaintType)
	assert.Equal(t, "roads", result.Category)
	assert.Equal(t, "roads@municipal.gov.in", result.DepartmentEmail)
	assert.NotEmpty(t, result.Timestamp)
	assert.NotEmpty(t, result.TranscribedText)
}

func TestCategorize(t *testing.T) {
	s := NewDefault()

	tests := []struct {
		text     string
		category string
		email    string
	}{
		{"The water pipeline is leaking", "water", "water@municipal.gov.in"},
		{"Huge pothole near the school", "roads", "roads@municipal.gov.in"},
		{"Power cut since morning, transformer sparking", "electricity", "electricity@municipal.gov.in"},
	}

	for _, tt := range tests {
		cat, err := s.Categorize(tt.text)
		require.NoError(t, err, "text %q", tt.text)
		assert.Equal(t, tt.category, cat.Category)
		assert.Equal(t, tt.email, cat.Department)
		assert.Equal(t, "municipal", cat.Type)
	}
}

func TestCategorize_Unrouted(t *testing.T) {
	s := NewDefault()

	_, err := s.Categorize("my neighbour plays loud music at night")
	assert.ErrorIs(t, err, ErrUnroutedCategory)
}

func TestCategorize_CategoryWithoutDepartment(t *testing.T) {
	// Table missing the matched category: explicit unrouted outcome,
	// never a guessed department.
	s := New(StubTranscriber{}, map[string]string{"water": "water@municipal.gov.in"})

	_, err := s.Categorize("pothole near the bus stand")
	assert.ErrorIs(t, err, ErrUnroutedCategory)
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusSubmitted, StatusInProgress, StatusResolved, StatusRejected} {
		assert.True(t, s.Valid(), "status %q", s)
	}
	assert.False(t, Status("pending").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatus_Transitions(t *testing.T) {
	assert.True(t, StatusSubmitted.CanTransitionTo(StatusInProgress))
	assert.True(t, StatusInProgress.CanTransitionTo(StatusResolved))
	assert.True(t, StatusInProgress.CanTransitionTo(StatusRejected))

	assert.False(t, StatusSubmitted.CanTransitionTo(StatusResolved))
	assert.False(t, StatusResolved.CanTransitionTo(StatusSubmitted))
	assert.False(t, StatusRejected.CanTransitionTo(StatusInProgress))
}

func TestExtractLocation(t *testing.T) {
	assert.Equal(t, "the market", extractLocation("Pothole on the road near the market"))
	assert.Equal(t, "the temple", extractLocation("water logging near the temple, very bad"))
	assert.Equal(t, "unspecified", extractLocation("no water supply"))
}

func TestLoadDepartments_MissingFileUsesDefaults(t *testing.T) {
	table, err := LoadDepartments(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDepartments(), table)
}

func TestLoadDepartments_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "departments.yaml")
	content := `departments:
  - category: water
    email: jal@example.gov.in
  - category: sanitation
    email: safai@example.gov.in
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := LoadDepartments(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"water":      "jal@example.gov.in",
		"sanitation": "safai@example.gov.in",
	}, table)
}
