package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piecemeal-studio/piecemeal/internal/browser"
	"github.com/piecemeal-studio/piecemeal/internal/session"
	"github.com/piecemeal-studio/piecemeal/internal/wizard"
	"github.com/piecemeal-studio/piecemeal/pkg/client"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

// exitArmDelay keeps the likely-exit detector quiet right after launch
// so stray mouse motion during startup never fires it.
const exitArmDelay = 3 * time.Second

// likelyExitMsg is delivered when the detector decides the customer is
// about to leave.
type likelyExitMsg struct{}

// Services bundles everything the TUI needs from the entrypoint.
type Services struct {
	Controller *wizard.Controller
	Progress   *session.ProgressStore
	Consent    *session.ConsentStore
	Visitor    *session.VisitorStore
	Client     *client.Client
	ExitFlag   *session.Flag
	InviteBase string
	OrderBase  string
	VisitCount int
	Log        *slog.Logger
}

// App is the root Bubbletea model.
type App struct {
	svc      Services
	ctrl     *wizard.Controller
	detector *session.Detector
	exitCh   chan struct{}

	recovery   session.Recovery
	bannerOpen bool
	exitOpen   bool
	status     string

	home      homeModel
	tier      tierModel
	shapes    shapesModel
	partner   partnerModel
	image     imageModel
	hints     hintsModel
	packaging packagingModel
	checkout  checkoutModel
	confirm   confirmModel

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the TUI application. The controller has already
// resolved whether this run starts fresh or resumes a draft; the app
// only decides what to say about it.
func NewApp(svc Services) App {
	if svc.Log == nil {
		svc.Log = slog.Default()
	}
	a := App{
		svc:      svc,
		ctrl:     svc.Controller,
		detector: session.NewDetector(svc.ExitFlag, exitArmDelay),
		exitCh:   make(chan struct{}, 1),
	}
	a.recovery = session.DecideBanner(a.ctrl.Session(), svc.Progress.Load(), svc.VisitCount)
	a.bannerOpen = a.recovery.Banner != session.BannerNone

	a.detector.OnLikelyExit(func() {
		select {
		case a.exitCh <- struct{}{}:
		default:
		}
	})
	a.detector.Arm()

	a.home = newHomeModel(a.ctrl, svc.Consent)
	a.tier = newTierModel(a.ctrl)
	a.shapes = newShapesModel(a.ctrl)
	a.partner = newPartnerModel(a.ctrl, svc.Client, svc.InviteBase)
	a.image = newImageModel(a.ctrl)
	a.hints = newHintsModel(a.ctrl)
	a.packaging = newPackagingModel(a.ctrl)
	a.checkout = newCheckoutModel(a.ctrl, svc.Progress, svc.Client)
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.waitLikelyExit())
}

func (a App) waitLikelyExit() tea.Cmd {
	ch := a.exitCh
	return func() tea.Msg {
		<-ch
		return likelyExitMsg{}
	}
}

// Teardown disables the exit detector. The entrypoint calls it once the
// program loop has ended.
func (a App) Teardown() {
	a.detector.Teardown()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case shimmerTickMsg:
		a.frame++
		// Editing models blink their cursors off the same tick.
		a.shapes, _ = a.shapes.Update(msg)
		a.partner, _ = a.partner.Update(msg)
		a.image, _ = a.image.Update(msg)
		a.hints, _ = a.hints.Update(msg)
		a.checkout, _ = a.checkout.Update(msg)
		return a, shimmerTickCmd()

	case tea.BlurMsg:
		a.detector.Hidden()
		return a, nil

	case tea.FocusMsg:
		a.detector.PointerReenter()
		return a, nil

	case tea.MouseMsg:
		if msg.Y == 0 {
			a.detector.PointerTop()
		} else {
			a.detector.PointerReenter()
		}
		return a, nil

	case likelyExitMsg:
		// Only interrupt while something is actually at stake.
		if s := a.ctrl.Session(); s != nil && !s.OrderComplete {
			a.exitOpen = true
			a.markAbandoned()
		}
		return a, nil

	case tierViewedMsg:
		p := a.svc.Visitor.Load()
		p.MarkTierViewed(msg.tier)
		a.svc.Visitor.Save(p)
		return a, nil

	case shapeViewedMsg:
		p := a.svc.Visitor.Load()
		p.MarkShapeViewed(msg.id)
		a.svc.Visitor.Save(p)
		return a, nil

	case inviteSentMsg:
		if msg.err != nil {
			a.status = "invite could not be sent to " + msg.email
			a.svc.Log.Warn("invite delivery failed", "error", msg.err)
		} else {
			a.status = "invite sent to " + msg.email
		}
		return a, nil

	case orderSubmittedMsg:
		if msg.err != nil {
			a.svc.Log.Warn("order submission failed", "error", msg.err)
			var cmd tea.Cmd
			a.checkout, cmd = a.checkout.Update(msg)
			return a, cmd
		}
		a.ctrl.CompleteOrder()
		a.confirm = confirmModel{conf: msg.conf}
		a.status = ""
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	return a.route(msg)
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""
	if a.bannerOpen {
		// The recovery banner is informational; the first keypress
		// dismisses it and is then handled normally.
		a.bannerOpen = false
	}

	// Exit offer captures all keys while open.
	if a.exitOpen {
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "ctrl+r":
			return a.startOver()
		default:
			a.exitOpen = false
		}
		return a, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+r":
		return a.startOver()
	}

	if !a.isEditing() {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "esc":
			if a.ctrl.Step() != domain.StepPartner {
				a.ctrl.Back()
				return a, nil
			}
		}
	}

	if a.ctrl.Step() == domain.StepConfirmation {
		switch msg.String() {
		case "enter":
			return a, tea.Quit
		case "o":
			if a.confirm.conf != nil && a.svc.OrderBase != "" {
				browser.Open(a.svc.OrderBase + a.confirm.conf.OrderRef) //nolint:errcheck // best-effort browser open
			}
			return a, nil
		}
	}

	return a.route(msg)
}

// startOver abandons the draft everywhere and rebuilds the per-step
// models so no stale form state survives.
func (a App) startOver() (tea.Model, tea.Cmd) {
	a.ctrl.StartOver()
	a.exitOpen = false
	a.home = newHomeModel(a.ctrl, a.svc.Consent)
	a.tier = newTierModel(a.ctrl)
	a.shapes = newShapesModel(a.ctrl)
	a.partner = newPartnerModel(a.ctrl, a.svc.Client, a.svc.InviteBase)
	a.image = newImageModel(a.ctrl)
	a.hints = newHintsModel(a.ctrl)
	a.packaging = newPackagingModel(a.ctrl)
	a.checkout = newCheckoutModel(a.ctrl, a.svc.Progress, a.svc.Client)
	return a, nil
}

// markAbandoned records where the customer was when the exit offer
// fired, for the next run's personalization.
func (a App) markAbandoned() {
	p := a.svc.Visitor.Load()
	p.AbandonedAt = a.ctrl.Step().String()
	a.svc.Visitor.Save(p)
}

func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.ctrl.Step() {
	case domain.StepHome:
		a.home, cmd = a.home.Update(msg)
	case domain.StepTier:
		a.tier, cmd = a.tier.Update(msg)
	case domain.StepShapes:
		a.shapes, cmd = a.shapes.Update(msg)
	case domain.StepPartner:
		a.partner, cmd = a.partner.Update(msg)
	case domain.StepImage:
		a.image, cmd = a.image.Update(msg)
	case domain.StepHints:
		a.hints, cmd = a.hints.Update(msg)
	case domain.StepPackaging:
		a.packaging, cmd = a.packaging.Update(msg)
	case domain.StepCheckout:
		a.checkout, cmd = a.checkout.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.ctrl.Step() {
	case domain.StepShapes:
		return a.shapes.editing
	case domain.StepPartner, domain.StepCheckout:
		return true
	case domain.StepImage:
		return a.image.editing
	case domain.StepHints:
		return a.hints.editing
	}
	return false
}

// bannerLine renders the recovery banner, or "" when dismissed.
func (a App) bannerLine() string {
	if !a.bannerOpen {
		return ""
	}
	switch a.recovery.Banner {
	case session.BannerAbandonedCart:
		text := "Your puzzle is right where you left it."
		if s := a.ctrl.Session(); s != nil {
			text = fmt.Sprintf("Your puzzle is right where you left it — %d shapes picked.", len(s.SelectedShapes))
		}
		if a.recovery.ResumeCheckout {
			text += " Your checkout details were kept too."
		}
		return " " + bannerStyle.Render(text)
	case session.BannerWelcomeBack:
		return " " + bannerStyle.Render("Welcome back.")
	}
	return ""
}

func (a App) stepBar() string {
	steps := []domain.Step{
		domain.StepTier, domain.StepShapes, domain.StepPartner, domain.StepImage,
		domain.StepHints, domain.StepPackaging, domain.StepCheckout,
	}
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		label := s.String()
		switch {
		case s == a.ctrl.Step():
			label = accentStyle.Render(label)
		case s < a.ctrl.Step():
			label = dimStyle.Render(label)
		default:
			label = metaStyle.Render(label)
		}
		parts = append(parts, label)
	}
	bar := strings.Join(parts, metaStyle.Render(" · "))
	pad := (a.width - lipgloss.Width(bar)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + bar
}

func (a App) exitOfferView() string {
	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Leaving already?") + "\n\n")
	if s := a.ctrl.Session(); s != nil {
		b.WriteString(" " + normalStyle.Render(fmt.Sprintf(
			"Your %s puzzle has %d shapes so far. It will wait here for a day.",
			s.Tier, len(s.SelectedShapes))) + "\n\n")
	}
	b.WriteString(" " + helpEntry("any key", "keep going") + "  " +
		helpEntry("ctrl+r", "start fresh") + "  " + helpEntry("q", "quit") + "\n")
	return b.String()
}

func (a App) helpLine() string {
	switch a.ctrl.Step() {
	case domain.StepHome:
		return " " + helpEntry("enter", "begin") + "  " + helpEntry("q", "quit")
	case domain.StepTier:
		return " " + helpEntry("j/k", "nav") + "  " + helpEntry("space", "select") + "  " + helpEntry("enter", "continue") + "  " + helpEntry("q", "quit")
	case domain.StepShapes:
		if a.shapes.editing {
			return " " + helpEntry("enter", "save note") + "  " + helpEntry("esc", "cancel")
		}
		return " " + helpEntry("j/k", "nav") + "  " + helpEntry("space", "toggle") + "  " + helpEntry("m", "meaning") + "  " + helpEntry("enter", "continue") + "  " + helpEntry("esc", "back")
	case domain.StepPartner:
		return " " + helpEntry("enter", "invite") + "  " + helpEntry("esc", "skip")
	case domain.StepImage:
		if a.image.editing {
			return " " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
		}
		return " " + helpEntry("p", "photo") + "  " + helpEntry("h/l", "color") + "  " + helpEntry("x", "clear") + "  " + helpEntry("enter", "continue") + "  " + helpEntry("esc", "back")
	case domain.StepHints:
		if a.hints.editing {
			return " " + helpEntry("enter", "add") + "  " + helpEntry("esc", "cancel")
		}
		return " " + helpEntry("a", "add") + "  " + helpEntry("d", "delete") + "  " + helpEntry("enter", "continue") + "  " + helpEntry("esc", "back")
	case domain.StepPackaging:
		return " " + helpEntry("j/k", "row") + "  " + helpEntry("h/l", "cycle") + "  " + helpEntry("enter", "continue") + "  " + helpEntry("esc", "back")
	case domain.StepCheckout:
		return " " + helpEntry("tab", "next field") + "  " + helpEntry("ctrl+s", "place order") + "  " + helpEntry("esc", "back")
	case domain.StepConfirmation:
		return " " + helpEntry("o", "track order") + "  " + helpEntry("enter", "done")
	}
	return ""
}

func (a App) View() string {
	// Header: centered shimmer logo plus a draft meta line.
	logo := renderShimmerLogo(a.frame)
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	metaLine := ""
	if s := a.ctrl.Session(); s != nil {
		cfg := domain.TierSpec(s.Tier)
		parts := []string{
			TierStyle(s.Tier).Render(string(s.Tier)),
			fmt.Sprintf("%d/%d shapes", len(s.SelectedShapes), cfg.ShapeQuota),
			priceLabel(cfg.PriceCents),
		}
		metaLine = metaStyle.Render(strings.Join(parts, " · "))
	}
	if metaLine != "" {
		metaPad := (a.width - lipgloss.Width(metaLine)) / 2
		if metaPad < 0 {
			metaPad = 0
		}
		header += "\n" + strings.Repeat(" ", metaPad) + metaLine
	} else {
		header += "\n"
	}

	var body string
	switch {
	case a.exitOpen:
		body = a.exitOfferView()
	default:
		switch a.ctrl.Step() {
		case domain.StepHome:
			body = a.home.View()
		case domain.StepTier:
			body = a.tier.View()
		case domain.StepShapes:
			body = a.shapes.View()
		case domain.StepPartner:
			body = a.partner.View()
		case domain.StepImage:
			body = a.image.View()
		case domain.StepHints:
			body = a.hints.View()
		case domain.StepPackaging:
			body = a.packaging.View()
		case domain.StepCheckout:
			body = a.checkout.View()
		case domain.StepConfirmation:
			body = a.confirm.View()
		}
	}

	statusLine := " "
	if !a.exitOpen {
		if a.status != "" {
			statusLine += dimStyle.Render(a.status)
		} else if b := a.bannerLine(); b != "" {
			statusLine = b
		}
	}

	help := a.helpLine()
	if a.exitOpen {
		help = ""
	}

	// Chrome budget: header(2) + steps(1) + status(1) + help(1) = 5.
	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, a.stepBar(), body, statusLine, help)
}
