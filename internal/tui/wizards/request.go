package wizards

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pslits/oai-pmh-sub003/internal/tui"
	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

// RequestChecker validates an assembled query string before the wizard
// hands it back.
type RequestChecker interface {
	CheckRequest(query string) (summary string, err error)
}

type pipelineChecker struct{}

func (pipelineChecker) CheckRequest(query string) (string, error) {
	q, err := oaipmh.ParseQuery(query)
	if err != nil {
		return "", err
	}
	req, err := oaipmh.Validate(q)
	if err != nil {
		return "", err
	}
	if err := oaipmh.ValidateArguments(req); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s request with %d argument(s)", req.Verb(), len(req.Arguments())), nil
}

// WizardOption configures a RequestWizard.
type WizardOption func(*RequestWizard)

// WithChecker injects a RequestChecker (for testing/mocking).
func WithChecker(c RequestChecker) WizardOption {
	return func(w *RequestWizard) {
		w.checker = c
	}
}

// RequestResult holds the result of the request wizard.
type RequestResult struct {
	Cancelled bool
	Query     string
	Checked   bool
}

// fieldSpec describes one argument input for a verb.
type fieldSpec struct {
	arg         oaipmh.Argument
	label       string
	placeholder string
	hint        string
	required    bool
	check       func(string) error
}

// verbChoice describes one protocol verb in the selection list.
type verbChoice struct {
	verb        oaipmh.Verb
	description string
	fields      []fieldSpec
}

func identifierField(required bool) fieldSpec {
	return fieldSpec{
		arg:         oaipmh.ArgIdentifier,
		label:       "Identifier:",
		placeholder: "oai:example.org:1234",
		required:    required,
		check: func(v string) error {
			_, err := oaipmh.NewIdentifier(v)
			return err
		},
	}
}

func prefixField() fieldSpec {
	return fieldSpec{
		arg:         oaipmh.ArgMetadataPrefix,
		label:       "Metadata prefix:",
		placeholder: "oai_dc",
		required:    true,
		check: func(v string) error {
			_, err := oaipmh.NewMetadataPrefix(v)
			return err
		},
	}
}

func datestampField(arg oaipmh.Argument, label string) fieldSpec {
	return fieldSpec{
		arg:         arg,
		label:       label,
		placeholder: "2024-01-01",
		hint:        "YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ",
		check: func(v string) error {
			_, err := oaipmh.NewUTCDatetime(v)
			return err
		},
	}
}

func setField() fieldSpec {
	return fieldSpec{
		arg:         oaipmh.ArgSet,
		label:       "Set:",
		placeholder: "physics:hep",
		check: func(v string) error {
			_, err := oaipmh.NewSetSpec(v)
			return err
		},
	}
}

func harvestFields() []fieldSpec {
	return []fieldSpec{
		prefixField(),
		datestampField(oaipmh.ArgFrom, "From:"),
		datestampField(oaipmh.ArgUntil, "Until:"),
		setField(),
	}
}

// The six protocol verbs, in the order the wizard offers them.
var verbChoices = []verbChoice{
	{
		verb:        oaipmh.VerbIdentify,
		description: "Describe the repository",
	},
	{
		verb:        oaipmh.VerbGetRecord,
		description: "Fetch a single record in a given format",
		fields:      []fieldSpec{identifierField(true), prefixField()},
	},
	{
		verb:        oaipmh.VerbListIdentifiers,
		description: "Harvest record headers, optionally filtered",
		fields:      harvestFields(),
	},
	{
		verb:        oaipmh.VerbListMetadataFormats,
		description: "List available metadata formats",
		fields:      []fieldSpec{identifierField(false)},
	},
	{
		verb:        oaipmh.VerbListRecords,
		description: "Harvest full records, optionally filtered",
		fields:      harvestFields(),
	},
	{
		verb:        oaipmh.VerbListSets,
		description: "List the set hierarchy",
	},
}

// RequestWizard guides users through assembling a protocol request.
type RequestWizard struct {
	// Current step
	step wizardStep

	// Verb selection
	verbIdx int
	verb    *verbChoice

	// Form inputs
	inputs        []textinput.Model
	focusIndex    int
	validationErr string

	// Request checking
	spinner   spinner.Model
	checking  bool
	checkDone bool
	checkOK   bool
	checkErr  error
	summary   string

	// Result
	result RequestResult

	// Dimensions
	width  int
	height int

	// Key bindings
	keys tui.KeyMap

	// Request checker (injectable for testing)
	checker RequestChecker
}

type wizardStep int

const (
	stepSelectVerb wizardStep = iota
	stepInputArguments
	stepCheckRequest
	stepDone
)

// NewRequestWizard creates a new request wizard.
func NewRequestWizard(opts ...WizardOption) RequestWizard {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = tui.SpinnerStyle

	w := RequestWizard{
		step:    stepSelectVerb,
		spinner: s,
		width:   80,
		height:  24,
		keys:    tui.DefaultKeyMap(),
		checker: pipelineChecker{},
	}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

// Init implements tea.Model.
func (w RequestWizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w RequestWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		// ctrl+c always quits
		if msg.String() == "ctrl+c" {
			w.result.Cancelled = true
			return w, tea.Quit
		}

		switch w.step {
		case stepSelectVerb:
			return w.updateVerbSelection(msg)
		case stepInputArguments:
			return w.updateArgumentForm(msg)
		case stepCheckRequest:
			return w.updateCheckRequest(msg)
		}

	case checkResultMsg:
		w.checking = false
		w.checkDone = true
		w.checkOK = msg.ok
		w.checkErr = msg.err
		w.summary = msg.summary
		return w, nil

	case spinner.TickMsg:
		if w.checking {
			var cmd tea.Cmd
			w.spinner, cmd = w.spinner.Update(msg)
			return w, cmd
		}

	default:
		// Forward non-key messages (focus, blink cursor) to active text input
		if w.step == stepInputArguments && w.focusIndex >= 0 && w.focusIndex < len(w.inputs) {
			var cmd tea.Cmd
			w.inputs[w.focusIndex], cmd = w.inputs[w.focusIndex].Update(msg)
			return w, cmd
		}
	}

	return w, nil
}

func (w RequestWizard) updateVerbSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.verbIdx > 0 {
			w.verbIdx--
		}
	case key.Matches(msg, w.keys.Down):
		if w.verbIdx < len(verbChoices)-1 {
			w.verbIdx++
		}
	case key.Matches(msg, w.keys.Select):
		w.verb = &verbChoices[w.verbIdx]
		if len(w.verb.fields) == 0 {
			// Argument-free verbs skip the form entirely.
			return w.startCheck()
		}
		w.step = stepInputArguments
		return w, w.initInputs()
	case key.Matches(msg, w.keys.Back), key.Matches(msg, w.keys.Quit):
		w.result.Cancelled = true
		return w, tea.Quit
	}
	return w, nil
}

func (w *RequestWizard) initInputs() tea.Cmd {
	w.inputs = nil
	w.focusIndex = 0
	w.validationErr = ""

	for _, f := range w.verb.fields {
		in := textinput.New()
		in.Placeholder = f.placeholder
		in.CharLimit = 256
		in.Width = 40
		w.inputs = append(w.inputs, in)
	}

	if len(w.inputs) > 0 {
		return w.inputs[0].Focus()
	}
	return nil
}

func (w RequestWizard) updateArgumentForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Tab), msg.String() == "down":
		if w.focusIndex < len(w.inputs)-1 {
			w.inputs[w.focusIndex].Blur()
			w.focusIndex++
			return w, w.inputs[w.focusIndex].Focus()
		}
	case key.Matches(msg, w.keys.ShiftTab), msg.String() == "up":
		if w.focusIndex > 0 {
			w.inputs[w.focusIndex].Blur()
			w.focusIndex--
			return w, w.inputs[w.focusIndex].Focus()
		}
	case key.Matches(msg, w.keys.Select):
		// Enter on non-last field advances to next field
		if w.focusIndex < len(w.inputs)-1 {
			w.inputs[w.focusIndex].Blur()
			w.focusIndex++
			return w, w.inputs[w.focusIndex].Focus()
		}
		// Enter on last field submits the form
		if err := w.validateInputs(); err != nil {
			w.validationErr = err.Error()
			return w, nil
		}
		w.validationErr = ""
		return w.startCheck()
	case key.Matches(msg, w.keys.Back):
		w.step = stepSelectVerb
		return w, nil
	default:
		w.validationErr = ""
		var cmd tea.Cmd
		w.inputs[w.focusIndex], cmd = w.inputs[w.focusIndex].Update(msg)
		return w, cmd
	}
	return w, nil
}

// validateInputs checks each filled field against its value grammar and
// each required field for presence. The cross-argument rules run later,
// in the check step.
func (w *RequestWizard) validateInputs() error {
	for i, f := range w.verb.fields {
		value := strings.TrimSpace(w.inputs[i].Value())
		if value == "" {
			if f.required {
				return fmt.Errorf("%s is required for %s", f.arg, w.verb.verb)
			}
			continue
		}
		if err := f.check(value); err != nil {
			return err
		}
	}
	return nil
}

// buildQuery assembles the query string from the verb and the filled
// fields, escaping values the way a harvester would.
func (w *RequestWizard) buildQuery() string {
	pairs := []string{"verb=" + w.verb.verb.String()}
	for i, f := range w.verb.fields {
		value := strings.TrimSpace(w.inputs[i].Value())
		if value == "" {
			continue
		}
		pairs = append(pairs, string(f.arg)+"="+url.QueryEscape(value))
	}
	return strings.Join(pairs, "&")
}

func (w RequestWizard) startCheck() (tea.Model, tea.Cmd) {
	w.result.Query = w.buildQuery()
	w.step = stepCheckRequest
	w.checking = true
	w.checkDone = false
	return w, tea.Batch(w.spinner.Tick, w.checkRequest())
}

type checkResultMsg struct {
	ok      bool
	err     error
	summary string
}

func (w *RequestWizard) checkRequest() tea.Cmd {
	query := w.result.Query
	checker := w.checker
	return func() tea.Msg {
		summary, err := checker.CheckRequest(query)
		if err != nil {
			return checkResultMsg{err: err}
		}
		return checkResultMsg{ok: true, summary: summary}
	}
}

func (w RequestWizard) updateCheckRequest(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !w.checkDone {
		return w, nil
	}

	switch {
	case key.Matches(msg, w.keys.Select):
		if w.checkOK {
			w.result.Checked = true
			w.step = stepDone
			return w, tea.Quit
		}
		return w.backToForm()
	case key.Matches(msg, w.keys.Back):
		return w.backToForm()
	}
	return w, nil
}

// backToForm returns to the argument form keeping the typed values, or to
// verb selection for argument-free verbs.
func (w RequestWizard) backToForm() (tea.Model, tea.Cmd) {
	if len(w.verb.fields) == 0 {
		w.step = stepSelectVerb
		return w, nil
	}
	w.step = stepInputArguments
	for i := range w.inputs {
		w.inputs[i].Blur()
	}
	w.focusIndex = 0
	return w, w.inputs[0].Focus()
}

// View implements tea.Model.
func (w RequestWizard) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("oaipmh - Request Builder"))
	b.WriteString("\n")

	switch w.step {
	case stepSelectVerb:
		b.WriteString(w.viewVerbSelection())
	case stepInputArguments:
		b.WriteString(w.viewArgumentForm())
	case stepCheckRequest:
		b.WriteString(w.viewCheck())
	}

	return b.String()
}

func (w RequestWizard) viewVerbSelection() string {
	var b strings.Builder

	b.WriteString(tui.SubtitleStyle.Render("Which request do you want to build?"))
	b.WriteString("\n\n")

	for i, choice := range verbChoices {
		cursor := "  "
		style := tui.UnselectedStyle
		symbol := tui.SymbolUnselected

		if i == w.verbIdx {
			cursor = ""
			style = tui.SelectedStyle
			symbol = tui.SymbolSelected
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + choice.verb.String()))
		b.WriteString("\n")
		b.WriteString(tui.DescriptionStyle.Render(choice.description))
		b.WriteString("\n")
	}

	b.WriteString(tui.HelpStyle.Render("\n" + w.keys.HelpText()))

	return b.String()
}

func (w RequestWizard) viewArgumentForm() string {
	var b strings.Builder

	b.WriteString(tui.SubtitleStyle.Render(fmt.Sprintf("%s - Arguments", w.verb.verb)))
	b.WriteString("\n\n")

	for i, input := range w.inputs {
		f := w.verb.fields[i]
		style := tui.InputStyle
		if i == w.focusIndex {
			style = tui.FocusedInputStyle
		}

		label := f.label
		if f.required {
			label += " *"
		}
		b.WriteString(tui.InputLabelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(style.Render(input.View()))
		if f.hint != "" {
			b.WriteString("\n")
			b.WriteString(tui.DescriptionStyle.Render(f.hint))
		}
		b.WriteString("\n\n")
	}

	if w.validationErr != "" {
		b.WriteString(tui.ErrorStyle.Render("Error: " + w.validationErr))
		b.WriteString("\n\n")
	}

	b.WriteString(tui.HelpStyle.Render(w.keys.InputHelpText()))

	return b.String()
}

func (w RequestWizard) viewCheck() string {
	var b strings.Builder

	b.WriteString(tui.SubtitleStyle.Render("Checking Request"))
	b.WriteString("\n\n")

	b.WriteString("Query: ")
	b.WriteString(w.result.Query)
	b.WriteString("\n\n")

	if w.checking {
		b.WriteString(w.spinner.View())
		b.WriteString(" Validating...")
	} else if w.checkDone {
		if w.checkOK {
			b.WriteString(tui.SuccessStyle.Render(tui.SymbolCheck + " Request is valid"))
			b.WriteString("\n")
			b.WriteString(tui.DescriptionStyle.Render(w.summary))
			b.WriteString("\n\n")
			b.WriteString(tui.HelpStyle.Render("enter accept • esc edit"))
		} else {
			b.WriteString(tui.ErrorStyle.Render(tui.SymbolCross + " Request is invalid"))
			b.WriteString("\n")
			errMsg := "unknown error"
			if w.checkErr != nil {
				errMsg = w.checkErr.Error()
			}
			b.WriteString(tui.DescriptionStyle.Render(errMsg))
			b.WriteString("\n\n")
			b.WriteString(tui.HelpStyle.Render("enter edit • esc back"))
		}
	}

	return b.String()
}

// Result returns the wizard result.
func (w RequestWizard) Result() RequestResult {
	return w.result
}

// RunRequestWizard executes the request wizard and returns the result.
func RunRequestWizard(opts ...WizardOption) (RequestResult, error) {
	wizard := NewRequestWizard(opts...)

	model, err := tui.Run(wizard)
	if err != nil {
		return RequestResult{Cancelled: true}, err
	}

	return model.(RequestWizard).Result(), nil
}
