package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kyber/internal/rmm"
)

func wizardWithComponents(components ...rmm.Component) *WizardModal {
	w := NewWizardModal("d1", "srv01")
	w.SetComponents(components)
	return w
}

func press(w *WizardModal, key tea.KeyMsg) tea.Cmd {
	next, cmd := w.Update(key)
	_ = next
	return cmd
}

func TestWizardSkipsVariablesStepWhenComponentHasNone(t *testing.T) {
	w := wizardWithComponents(rmm.Component{UID: "c1", Name: "Cleanup"})

	press(w, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StepReview, w.Step())

	// Esc from review goes back to search, not to the skipped step.
	press(w, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StepSearch, w.Step())
}

func TestWizardWalksEveryStepForwardAndBackward(t *testing.T) {
	w := wizardWithComponents(rmm.Component{
		UID:  "c1",
		Name: "Deploy",
		Variables: []rmm.ComponentVariable{
			{Name: "version", Default: "1.0"},
		},
	})

	press(w, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StepVariables, w.Step())
	press(w, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StepReview, w.Step())

	press(w, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StepVariables, w.Step())
	press(w, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StepSearch, w.Step())
}

func TestWizardLaunchProducesRequestWithDefaults(t *testing.T) {
	w := wizardWithComponents(rmm.Component{
		UID:  "c1",
		Name: "Deploy",
		Variables: []rmm.ComponentVariable{
			{Name: "version", Default: "1.0"},
		},
	})

	press(w, tea.KeyMsg{Type: tea.KeyEnter})
	press(w, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StepReview, w.Step())

	cmd := press(w, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(runWizardJobMsg)
	require.True(t, ok)

	assert.Equal(t, "d1", msg.deviceUID)
	assert.Equal(t, "Deploy on srv01", msg.request.JobName)
	assert.Equal(t, "c1", msg.request.JobComponent.ComponentUID)
	require.Len(t, msg.request.JobComponent.Variables, 1)
	assert.Equal(t, rmm.JobVariable{Name: "version", Value: "1.0"},
		msg.request.JobComponent.Variables[0])
}

func TestWizardFuzzyFilterNarrowsComponents(t *testing.T) {
	w := wizardWithComponents(
		rmm.Component{UID: "c1", Name: "Disk Cleanup"},
		rmm.Component{UID: "c2", Name: "Reboot Schedule"},
		rmm.Component{UID: "c3", Name: "Cleanup Temp Files"},
	)
	require.Equal(t, 3, w.filtered.Len())

	w.filter.SetValue("cleanup")
	w.applyFilter()
	assert.Equal(t, 2, w.filtered.Len())
	for _, c := range w.filtered.Items {
		assert.Contains(t, c.Name, "Cleanup")
	}
}

func TestWizardResultStepClosesOnEnter(t *testing.T) {
	w := wizardWithComponents(rmm.Component{UID: "c1", Name: "Cleanup"})
	w.SetLaunchResult("job-9", nil)
	require.Equal(t, StepResult, w.Step())

	cmd := press(w, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(dismissModalMsg)
	assert.True(t, ok)
}
