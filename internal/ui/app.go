// Package ui is the terminal front end: a splash screen, the document
// intake view, a loading screen while the analysis runs and the result
// view. One Model drives all of them; views switch through navigate.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/intake"
	"github.com/yildizm/RFPCheck/internal/loading"
	"github.com/yildizm/RFPCheck/internal/logger"
	"github.com/yildizm/RFPCheck/internal/results"
	"github.com/yildizm/RFPCheck/internal/submission"
)

// Slot names, shared with the inbox directories
const (
	RFPSlot      = "rfp"
	ProposalSlot = "proposal"
)

// Copy shown by the views
const (
	HeaderTitle        = "Welcome to the Proposal Analyzer"
	HeaderSubtitle     = "Please upload your RFP (Request for Proposal) and Proposal documents for analysis."
	AnalyzeLabel       = "Analyze Documents"
	AnalyzingLabel     = "Analyzing..."
	FailureMessage     = "There was an error analyzing the documents."
	ResultTitle        = "Analysis Result"
	EmptyResultMessage = "No Analysis Result Found"
	BackLabel          = "Go Back to Main Page"
	NotFoundMessage    = "404 - Page Not Found"
	SplashTitle        = "Welcome to RFPCheck"
	SplashSubtitle     = "Let's innovate together"
)

const (
	DefaultSplashDuration = 4500 * time.Millisecond
	DefaultSplashBuffer   = 800 * time.Millisecond
)

// View identifies a screen of the TUI
type View int

const (
	ViewSplash View = iota
	ViewIntake
	ViewLoading
	ViewResults
	ViewNotFound
)

func (v View) String() string {
	switch v {
	case ViewSplash:
		return "splash"
	case ViewIntake:
		return "intake"
	case ViewLoading:
		return "loading"
	case ViewResults:
		return "results"
	default:
		return "not-found"
	}
}

// ParseView maps a route name to a view. Unknown names map to ViewNotFound.
func ParseView(name string) View {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "/", "intake":
		return ViewIntake
	case "splash":
		return ViewSplash
	case "loading":
		return ViewLoading
	case "results":
		return ViewResults
	default:
		return ViewNotFound
	}
}

// Options configures a Model
type Options struct {
	Analyzer      submission.Analyzer
	AcceptedTypes []string
	MaxFiles      int

	// Files placed in the slots before the first render
	RFPFiles      []intake.File
	ProposalFiles []intake.File

	// FactsSource is a path or URL; empty uses the built-in facts. Facts,
	// when non-nil, is used as is and nothing is loaded.
	FactsSource string
	Facts       []loading.Fact

	RotationPeriod time.Duration
	TickPeriod     time.Duration
	// MinimumDuration is used as given; zero lets the result view follow
	// the first tick after the outcome arrives
	MinimumDuration time.Duration
	EnforceMinimum  bool

	ShowSplash     bool
	SplashDuration time.Duration
	SplashBuffer   time.Duration

	// InitialView is a route name; see ParseView
	InitialView string

	// InboxDir, when set, is watched for dropped files by Run
	InboxDir string

	// OnStateChange observes submission state transitions
	OnStateChange func(from, to submission.State)

	Logger  *logger.Logger
	Context context.Context
}

type focusArea int

const (
	focusRFP focusArea = iota
	focusProposal
	focusButton
	focusCount
)

// Model is the Bubble Tea model for the whole application
type Model struct {
	opts   Options
	ctx    context.Context
	log    *logger.Logger
	styles *Styles
	keys   keyMap
	help   help.Model

	width    int
	height   int
	view     View
	initial  View
	quitting bool

	// Intake
	rfp      *intake.Slot
	proposal *intake.Slot
	coord    *submission.Coordinator
	focus    focusArea
	cursor   [2]int
	input    textinput.Model
	inputErr string
	notice   string

	// Request
	seq        int
	inFlight   bool
	requestCtx context.Context
	cancel     context.CancelFunc
	outcome    *analysis.Outcome

	// Loading
	loading        *loading.Presenter
	loadFacts      func(ctx context.Context, source string) ([]loading.Fact, error)
	spinner        spinner.Model
	minimumReached bool
	standalone     bool

	// Results
	results      *results.Presenter
	resultCursor int
	viewport     viewport.Model

	splashFading bool
}

// NewModel creates the application model
func NewModel(opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if len(opts.AcceptedTypes) == 0 {
		opts.AcceptedTypes = []string{"application/pdf"}
	}
	if opts.MaxFiles < 1 {
		opts.MaxFiles = 1
	}
	if opts.SplashDuration <= 0 {
		opts.SplashDuration = DefaultSplashDuration
	}
	if opts.SplashBuffer <= 0 {
		opts.SplashBuffer = DefaultSplashBuffer
	}

	m := &Model{
		opts:      opts,
		ctx:       opts.Context,
		log:       opts.Logger.WithComponent("ui"),
		styles:    GetStyles(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		results:   results.NewPresenter(),
		viewport:  viewport.New(80, 20),
		loadFacts: loading.LoadFacts,
	}

	m.rfp = intake.NewSlot(RFPSlot, opts.AcceptedTypes, opts.MaxFiles,
		intake.WithLabels("Upload RFP Document (PDF)", "Drop your RFP PDF file here."),
		intake.WithListener(m.slotListener(RFPSlot)))
	m.proposal = intake.NewSlot(ProposalSlot, opts.AcceptedTypes, opts.MaxFiles,
		intake.WithLabels("Upload Proposal (PDF)", "Drop your Proposal PDF here."),
		intake.WithListener(m.slotListener(ProposalSlot)))
	if len(opts.RFPFiles) > 0 {
		m.rfp.Submit(opts.RFPFiles)
	}
	if len(opts.ProposalFiles) > 0 {
		m.proposal.Submit(opts.ProposalFiles)
	}

	coordOpts := []submission.Option{submission.WithLogger(opts.Logger.WithComponent("submission"))}
	if opts.OnStateChange != nil {
		coordOpts = append(coordOpts, submission.OnStateChange(opts.OnStateChange))
	}
	m.coord = submission.New(m.rfp, m.proposal, opts.Analyzer, coordOpts...)

	loadingOpts := []loading.Option{
		loading.WithRotationPeriod(opts.RotationPeriod),
		loading.WithTickPeriod(opts.TickPeriod),
		loading.WithMinimum(opts.MinimumDuration),
		loading.OnMinimum(m.handleMinimumReached),
	}
	m.loading = loading.NewPresenter(nil, loadingOpts...)

	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(m.styles.Title),
	)

	m.input = textinput.New()
	m.input.Placeholder = "path/to/document.pdf"
	m.input.Prompt = "> "
	m.input.CharLimit = 4096

	switch {
	case opts.InitialView != "":
		m.initial = ParseView(opts.InitialView)
	case opts.ShowSplash:
		m.initial = ViewSplash
	default:
		m.initial = ViewIntake
	}
	m.standalone = m.initial == ViewLoading
	m.view = m.initial

	return m
}

// Init starts the initial view
func (m *Model) Init() tea.Cmd {
	return m.navigate(m.initial, nil)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case DropMsg:
		return m.handleDrop(msg)
	case splashTimeoutMsg:
		return m.handleSplashTimeout()
	case splashDoneMsg:
		if m.view == ViewSplash {
			return m, m.navigate(ViewIntake, nil)
		}
		return m, nil
	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)
	case factsLoadedMsg:
		return m.handleFactsLoaded(msg)
	case rotateMsg:
		return m.handleRotate(msg)
	case tickMsg:
		return m.handleTick(msg)
	case navigateMsg:
		return m, m.navigate(msg.view, msg.outcome)
	case spinner.TickMsg:
		if m.view != ViewLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other textinput internals
	if m.view == ViewIntake {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the active view
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.view {
	case ViewSplash:
		body = m.renderSplash()
	case ViewIntake:
		body = m.renderIntake()
	case ViewLoading:
		body = m.renderLoading()
	case ViewResults:
		body = m.renderResults()
	default:
		body = m.renderNotFound()
	}
	if m.notice != "" {
		body = m.renderNotice()
	}
	if m.view == ViewSplash {
		return body
	}

	return body + "\n\n" + m.help.View(m.keys.helpFor(m.view, m.notice != ""))
}

// CurrentView returns the active view
func (m *Model) CurrentView() View {
	return m.view
}

// Notice returns the blocking notice text, or "" when none is shown
func (m *Model) Notice() string {
	return m.notice
}

// State returns the submission state
func (m *Model) State() submission.State {
	return m.coord.State()
}

// navigate switches to view. outcome is only read by the result view; a nil
// outcome there redirects to intake.
func (m *Model) navigate(view View, outcome *analysis.Outcome) tea.Cmd {
	if m.view == ViewLoading {
		m.loading.Unmount()
	}
	from := m.view

	var cmd tea.Cmd
	switch view {
	case ViewSplash:
		m.view = ViewSplash
		m.splashFading = false
		cmd = splashAfter(m.opts.SplashDuration, splashTimeoutMsg{})
	case ViewIntake:
		m.view = ViewIntake
		cmd = m.applyFocus()
	case ViewLoading:
		m.view = ViewLoading
		cmd = m.mountLoading()
	case ViewResults:
		if outcome == nil {
			m.log.WarnWithFields("redirecting to intake", []logger.Field{logger.Error(ErrMissingNavigationState)})
			return m.navigate(ViewIntake, nil)
		}
		m.results.Load(outcome)
		m.resultCursor = 0
		m.view = ViewResults
		m.refreshResults()
	default:
		m.view = ViewNotFound
	}

	m.log.DebugWithFields("navigate", []logger.Field{logger.F("from", from), logger.F("to", m.view)})
	return cmd
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.input.Width = max(20, m.contentWidth()-4)

	m.viewport.Width = m.contentWidth()
	// Header, summary, help and margins
	m.viewport.Height = max(5, msg.Height-9)
	if m.view == ViewResults {
		m.refreshResults()
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.cancelRequest()
		return m, tea.Quit
	}

	// The notice is modal
	if m.notice != "" {
		if key.Matches(msg, m.keys.Dismiss) {
			m.notice = ""
		}
		return m, nil
	}

	switch m.view {
	case ViewSplash:
		return m, m.navigate(ViewIntake, nil)
	case ViewIntake:
		return m.handleIntakeKey(msg)
	case ViewLoading:
		return m.handleLoadingKey(msg)
	case ViewResults:
		return m.handleResultsKey(msg)
	default:
		if key.Matches(msg, m.keys.Back) || msg.Type == tea.KeyEnter {
			return m, m.navigate(ViewIntake, nil)
		}
		return m, nil
	}
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return min(m.width-2, 120)
}
