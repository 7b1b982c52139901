package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"kyber/internal/rmm"
	"kyber/internal/ui/state"
	"kyber/internal/ui/textutil"
)

// runWizardJobMsg asks the state machine to launch the reviewed job.
type runWizardJobMsg struct {
	deviceUID string
	request   rmm.QuickJobRequest
}

// WizardStep is the strictly ordered position inside the run-component
// wizard. Submit advances one step forward, Esc one step backward; Esc on
// the first step closes the wizard.
type WizardStep int

const (
	StepSearch WizardStep = iota
	StepVariables
	StepReview
	StepResult
)

// WizardModal runs a component on a device: pick a component from the
// fuzzy-filtered account library, fill its variables, review, launch, and
// read the outcome. The terminal step accepts only Enter and Esc, both of
// which close the wizard and leave the underlying view untouched.
type WizardModal struct {
	deviceUID string
	hostname  string

	step WizardStep

	// StepSearch
	filter     textinput.Model
	components []rmm.Component
	filtered   state.List[rmm.Component]
	loading    bool
	loadErr    string

	// StepVariables
	selected rmm.Component
	varInput []textinput.Model
	varFocus int

	// StepResult
	launched bool
	jobUID   string
	runErr   string
}

// NewWizardModal opens the wizard on its search step. The component library
// arrives later via SetComponents.
func NewWizardModal(deviceUID, hostname string) *WizardModal {
	ti := textinput.New()
	ti.Placeholder = "component name"
	ti.Width = 48
	ti.Focus()
	return &WizardModal{
		deviceUID: deviceUID,
		hostname:  hostname,
		filter:    ti,
		filtered:  state.NewList[rmm.Component](),
		loading:   true,
	}
}

// SetComponents installs the fetched component library.
func (m *WizardModal) SetComponents(components []rmm.Component) {
	m.loading = false
	m.loadErr = ""
	m.components = components
	m.applyFilter()
}

// SetLoadError surfaces a failed component fetch on the search step.
func (m *WizardModal) SetLoadError(msg string) {
	m.loading = false
	m.loadErr = msg
}

// SetLaunchResult moves the wizard to its terminal step.
func (m *WizardModal) SetLaunchResult(jobUID string, err error) {
	m.step = StepResult
	m.launched = true
	m.jobUID = jobUID
	if err != nil {
		m.runErr = err.Error()
	}
}

// Step returns the wizard's current step.
func (m *WizardModal) Step() WizardStep { return m.step }

func (m *WizardModal) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.filtered.Replace(append([]rmm.Component(nil), m.components...))
		return
	}
	names := make([]string, len(m.components))
	for i, c := range m.components {
		names[i] = c.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	matched := make([]rmm.Component, 0, len(ranks))
	seen := make(map[int]struct{}, len(ranks))
	for _, r := range ranks {
		if _, dup := seen[r.OriginalIndex]; dup {
			continue
		}
		seen[r.OriginalIndex] = struct{}{}
		matched = append(matched, m.components[r.OriginalIndex])
	}
	m.filtered.Replace(matched)
}

// Update implements Modal.
func (m *WizardModal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch m.step {
	case StepSearch:
		switch key.String() {
		case "esc":
			return m, dismissModal
		case "up":
			m.filtered.Prev()
			return m, nil
		case "down":
			m.filtered.Next()
			return m, nil
		case "enter":
			component, ok := m.filtered.Selected()
			if !ok {
				return m, nil
			}
			m.selected = component
			m.buildVariableInputs()
			if len(m.varInput) == 0 {
				m.step = StepReview
			} else {
				m.step = StepVariables
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd

	case StepVariables:
		switch key.String() {
		case "esc":
			m.step = StepSearch
			return m, nil
		case "tab", "shift+tab":
			m.varInput[m.varFocus].Blur()
			if key.String() == "tab" {
				m.varFocus = (m.varFocus + 1) % len(m.varInput)
			} else {
				m.varFocus = (m.varFocus - 1 + len(m.varInput)) % len(m.varInput)
			}
			m.varInput[m.varFocus].Focus()
			return m, nil
		case "enter":
			m.step = StepReview
			return m, nil
		}
		var cmd tea.Cmd
		m.varInput[m.varFocus], cmd = m.varInput[m.varFocus].Update(msg)
		return m, cmd

	case StepReview:
		switch key.String() {
		case "esc":
			if len(m.varInput) == 0 {
				m.step = StepSearch
			} else {
				m.step = StepVariables
			}
			return m, nil
		case "enter":
			req := m.buildRequest()
			deviceUID := m.deviceUID
			return m, func() tea.Msg {
				return runWizardJobMsg{deviceUID: deviceUID, request: req}
			}
		}
		return m, nil

	case StepResult:
		switch key.String() {
		case "enter", "esc":
			return m, dismissModal
		}
		return m, nil
	}
	return m, nil
}

func (m *WizardModal) updateInputs(msg tea.Msg) (Modal, tea.Cmd) {
	var cmd tea.Cmd
	switch m.step {
	case StepSearch:
		m.filter, cmd = m.filter.Update(msg)
	case StepVariables:
		if len(m.varInput) > 0 {
			m.varInput[m.varFocus], cmd = m.varInput[m.varFocus].Update(msg)
		}
	}
	return m, cmd
}

func (m *WizardModal) buildVariableInputs() {
	m.varInput = make([]textinput.Model, len(m.selected.Variables))
	for i, v := range m.selected.Variables {
		ti := textinput.New()
		ti.Placeholder = v.Name
		ti.Width = 40
		ti.SetValue(v.Default)
		ti.CursorEnd()
		m.varInput[i] = ti
	}
	m.varFocus = 0
	if len(m.varInput) > 0 {
		m.varInput[0].Focus()
	}
}

func (m *WizardModal) buildRequest() rmm.QuickJobRequest {
	vars := make([]rmm.JobVariable, 0, len(m.varInput))
	for i, input := range m.varInput {
		vars = append(vars, rmm.JobVariable{
			Name:  m.selected.Variables[i].Name,
			Value: input.Value(),
		})
	}
	return rmm.QuickJobRequest{
		JobName: fmt.Sprintf("%s on %s", m.selected.Name, m.hostname),
		JobComponent: rmm.JobComponent{
			ComponentUID: m.selected.UID,
			Variables:    vars,
		},
	}
}

// View implements Modal.
func (m *WizardModal) View() string {
	var b strings.Builder
	b.WriteString(ModalStyles.Title.Render("Run component on "+m.hostname) + "\n\n")

	switch m.step {
	case StepSearch:
		b.WriteString(m.filter.View() + "\n\n")
		switch {
		case m.loading:
			b.WriteString(Styles.Muted.Render("loading components…") + "\n")
		case m.loadErr != "":
			b.WriteString(ModalStyles.Error.Render(m.loadErr) + "\n")
		case m.filtered.Len() == 0:
			b.WriteString(Styles.Empty.Render("no matching components") + "\n")
		default:
			for i, c := range m.filtered.Items {
				line := textutil.Truncate(c.Name, 52)
				if i == m.filtered.Cursor {
					b.WriteString(Styles.Selected.Render("> "+line) + "\n")
				} else {
					b.WriteString(Styles.Normal.Render("  "+line) + "\n")
				}
			}
		}
		b.WriteString("\n" + ModalStyles.Help.Render("type to filter  ↑/↓: select  Enter: next  Esc: close"))

	case StepVariables:
		b.WriteString(ModalStyles.Label.Render(m.selected.Name) + "\n\n")
		for i, v := range m.selected.Variables {
			label := v.Name
			if i == m.varFocus {
				b.WriteString(ModalStyles.Focused.Render(label) + "\n")
			} else {
				b.WriteString(ModalStyles.Label.Render(label) + "\n")
			}
			b.WriteString(m.varInput[i].View() + "\n")
		}
		b.WriteString("\n" + ModalStyles.Help.Render("Enter: review  Tab: next field  Esc: back"))

	case StepReview:
		b.WriteString(ModalStyles.Label.Render("Component: "+m.selected.Name) + "\n")
		b.WriteString(ModalStyles.Label.Render("Device:    "+m.hostname) + "\n")
		for i, input := range m.varInput {
			b.WriteString(ModalStyles.Label.Render(
				fmt.Sprintf("  %s = %s", m.selected.Variables[i].Name, input.Value())) + "\n")
		}
		b.WriteString("\n" + ModalStyles.Help.Render("Enter: launch  Esc: back"))

	case StepResult:
		if m.runErr != "" {
			b.WriteString(ModalStyles.Error.Render("Launch failed: "+m.runErr) + "\n")
		} else {
			b.WriteString(Styles.OK.Render("Job launched") + "\n")
			if m.jobUID != "" {
				b.WriteString(ModalStyles.Label.Render("Job UID: "+m.jobUID) + "\n")
			}
		}
		b.WriteString("\n" + ModalStyles.Help.Render("Enter/Esc: close"))
	}

	return ModalStyles.Box.Render(b.String())
}
