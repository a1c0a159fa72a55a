//go:build cucumber

package usecases

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"github.com/aimcourse/ragdemo/internal/adapters/catalog"
	"github.com/aimcourse/ragdemo/internal/adapters/resolver"
	"github.com/aimcourse/ragdemo/internal/domain/entities"
)

// TestFeatureScenarios runs the query panel and slideshow feature files.
func TestFeatureScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "usecases",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("testdata", "features")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeScenario wires the feature steps.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &scenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = scenarioState{}
		return ctx, nil
	})

	ctx.Step(`^a query panel backed by canned answers$`, state.givenCannedPanel)
	ctx.Step(`^a query panel whose resolver fails$`, state.givenFailingPanel)
	ctx.Step(`^I submit "([^"]*)"$`, state.whenISubmit)
	ctx.Step(`^I see the alert "([^"]*)"$`, state.thenAlert)
	ctx.Step(`^the resolver was not called$`, state.thenResolverNotCalled)
	ctx.Step(`^nothing is rendered$`, state.thenNothingRendered)
	ctx.Step(`^the results show (\d+) citations$`, state.thenCitationCount)
	ctx.Step(`^citation (\d+) has score "([^"]*)"$`, state.thenCitationScore)
	ctx.Step(`^citation (\d+) has no page$`, state.thenCitationNoPage)
	ctx.Step(`^citation (\d+) has page "([^"]*)"$`, state.thenCitationPage)
	ctx.Step(`^the loading indicator is hidden$`, state.thenLoadingHidden)

	ctx.Step(`^a slideshow with (\d+) slides$`, state.givenSlideshow)
	ctx.Step(`^I go to slide (\d+)$`, state.whenGoTo)
	ctx.Step(`^I press next$`, state.whenNext)
	ctx.Step(`^I press previous$`, state.whenPrevious)
	ctx.Step(`^I press next (\d+) times$`, state.whenNextTimes)
	ctx.Step(`^slide (\d+) is active$`, state.thenSlideActive)
	ctx.Step(`^the indicator reads "([^"]*)"$`, state.thenIndicator)
}

type scenarioState struct {
	resolver *mockResolver
	view     *mockView
	notifier *mockNotifier
	panel    *QueryPanel

	slides *Slideshow
	frames []entities.SlideFrame
}

func (s *scenarioState) ShowSlide(frame entities.SlideFrame) {
	s.frames = append(s.frames, frame)
}

func (s *scenarioState) givenCannedPanel() error {
	canned := resolver.NewLocalCannedResolver(catalog.NewStore(nil), 0)
	s.resolver = &mockResolver{resolveFn: func(q string) (*entities.QueryResult, error) {
		return canned.Resolve(context.Background(), q)
	}}
	return s.buildPanel()
}

func (s *scenarioState) givenFailingPanel() error {
	s.resolver = &mockResolver{resolveFn: func(string) (*entities.QueryResult, error) {
		return nil, errors.New("endpoint unreachable")
	}}
	return s.buildPanel()
}

func (s *scenarioState) buildPanel() error {
	s.view = &mockView{}
	s.notifier = &mockNotifier{}
	s.panel = NewQueryPanel(s.resolver, s.view, s.notifier, nil)
	return nil
}

func (s *scenarioState) whenISubmit(query string) error {
	s.panel.SetInput(query)
	_ = s.panel.SubmitQuery(context.Background())
	return nil
}

func (s *scenarioState) thenAlert(message string) error {
	for _, alert := range s.notifier.alerts {
		if alert.Message == message {
			return nil
		}
	}
	return fmt.Errorf("alert %q not raised, got %+v", message, s.notifier.alerts)
}

func (s *scenarioState) thenResolverNotCalled() error {
	if s.resolver.calls != 0 {
		return fmt.Errorf("resolver called %d times", s.resolver.calls)
	}
	return nil
}

func (s *scenarioState) thenNothingRendered() error {
	if len(s.view.renders) != 0 || s.view.visible {
		return fmt.Errorf("unexpected render: %+v", s.view.renders)
	}
	return nil
}

func (s *scenarioState) lastRender() (entities.ResultView, error) {
	if len(s.view.renders) == 0 {
		return entities.ResultView{}, fmt.Errorf("nothing rendered")
	}
	return s.view.renders[len(s.view.renders)-1], nil
}

func (s *scenarioState) citation(n int) (entities.CitationRow, error) {
	view, err := s.lastRender()
	if err != nil {
		return entities.CitationRow{}, err
	}
	if n < 1 || n > len(view.Citations) {
		return entities.CitationRow{}, fmt.Errorf("no citation %d", n)
	}
	row := view.Citations[n-1]
	if row.Index != n {
		return row, fmt.Errorf("citation %d displayed as [%d]", n, row.Index)
	}
	return row, nil
}

func (s *scenarioState) thenCitationCount(n int) error {
	view, err := s.lastRender()
	if err != nil {
		return err
	}
	if len(view.Citations) != n {
		return fmt.Errorf("expected %d citations, got %d", n, len(view.Citations))
	}
	if !s.view.visible {
		return fmt.Errorf("results region hidden")
	}
	return nil
}

func (s *scenarioState) thenCitationScore(n int, score string) error {
	row, err := s.citation(n)
	if err != nil {
		return err
	}
	if row.Score != score {
		return fmt.Errorf("expected score %s, got %s", score, row.Score)
	}
	return nil
}

func (s *scenarioState) thenCitationNoPage(n int) error {
	row, err := s.citation(n)
	if err != nil {
		return err
	}
	if row.HasPage {
		return fmt.Errorf("citation %d has page %s", n, row.Page)
	}
	return nil
}

func (s *scenarioState) thenCitationPage(n int, page string) error {
	row, err := s.citation(n)
	if err != nil {
		return err
	}
	if !row.HasPage || row.Page != page {
		return fmt.Errorf("expected page %s, got %q", page, row.Page)
	}
	return nil
}

func (s *scenarioState) thenLoadingHidden() error {
	if s.view.loading {
		return fmt.Errorf("loading indicator still visible")
	}
	return nil
}

func (s *scenarioState) givenSlideshow(total int) error {
	slides, err := NewSlideshow(total, 1, s)
	if err != nil {
		return err
	}
	s.slides = slides
	return nil
}

func (s *scenarioState) whenGoTo(n int) error {
	s.slides.GoTo(n)
	return nil
}

func (s *scenarioState) whenNext() error {
	s.slides.Next()
	return nil
}

func (s *scenarioState) whenPrevious() error {
	s.slides.Previous()
	return nil
}

func (s *scenarioState) whenNextTimes(n int) error {
	for i := 0; i < n; i++ {
		s.slides.Next()
	}
	return nil
}

func (s *scenarioState) thenSlideActive(n int) error {
	if s.slides.Current() != n {
		return fmt.Errorf("expected slide %d, got %d", n, s.slides.Current())
	}
	last := s.frames[len(s.frames)-1]
	if last.Active != n {
		return fmt.Errorf("view shows slide %d, want %d", last.Active, n)
	}
	return nil
}

func (s *scenarioState) thenIndicator(want string) error {
	if got := s.slides.Indicator(); got != want {
		return fmt.Errorf("expected indicator %q, got %q", want, got)
	}
	return nil
}
