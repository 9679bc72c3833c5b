package picker

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/person"
	"github.com/kettleby/dossier/internal/search"
	"github.com/kettleby/dossier/internal/store"
)

func newTestModel(t *testing.T, people ...string) Model {
	t.Helper()

	settings := config.Default()
	settings.VaultDir = t.TempDir()

	for _, name := range people {
		dir := filepath.Join(settings.PeopleRoot(), name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	index := person.NewIndex(store.NewOS(), settings)
	async := search.NewAsync(search.New(index))

	return NewModel(async)
}

func TestUpdateIgnoresStaleOutcome(t *testing.T) {
	m := newTestModel(t, "John Doe")
	m.input.SetValue("john")

	stale := outcomeMsg{
		Query: "jane",
		Results: []search.Result{
			{Person: person.PersonRecord{Name: "jane"}, IsNewPerson: true, MatchScore: 0.5},
		},
	}

	updated, _ := m.Update(stale)

	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}
	if got := len(model.list.Items()); got != 0 {
		t.Fatalf("stale outcome populated list with %d items", got)
	}
}

func TestUpdateRendersMatchingOutcome(t *testing.T) {
	m := newTestModel(t, "John Doe", "Jane Roe")
	m.input.SetValue("john")

	outcome := search.Outcome{
		Query: "john",
		Results: []search.Result{
			{Person: person.PersonRecord{Name: "John Doe"}, MatchScore: 0.8},
			{Person: person.PersonRecord{Name: "john"}, IsNewPerson: true, MatchScore: 0.5},
		},
	}

	updated, _ := m.Update(outcomeMsg(outcome))

	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}

	items := model.list.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first, ok := items[0].(resultItem)
	if !ok {
		t.Fatalf("unexpected item type %T", items[0])
	}
	if first.result.Person.Name != "John Doe" {
		t.Fatalf("expected ranked person first, got %q", first.result.Person.Name)
	}
}

func TestUpdateEnterSelectsHighlightedResult(t *testing.T) {
	m := newTestModel(t, "John Doe")
	m.input.SetValue("john")

	outcome := search.Outcome{
		Query: "john",
		Results: []search.Result{
			{Person: person.PersonRecord{Name: "John Doe"}, MatchScore: 0.8},
		},
	}

	updated, _ := m.Update(outcomeMsg(outcome))
	model := updated.(Model)

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	if cmd == nil {
		t.Fatalf("expected quit command after selection")
	}

	r, ok := model.Selection()
	if !ok {
		t.Fatalf("expected a selection")
	}
	if r.Person.Name != "John Doe" {
		t.Fatalf("selected %q", r.Person.Name)
	}
}

func TestUpdateEscAbortsWithoutSelection(t *testing.T) {
	m := newTestModel(t, "John Doe")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model := updated.(Model)

	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := model.Selection(); ok {
		t.Fatalf("expected no selection after abort")
	}
}

func TestTypingDispatchesSearch(t *testing.T) {
	m := newTestModel(t, "John Doe")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	model := updated.(Model)

	if got := model.input.Value(); got != "j" {
		t.Fatalf("input value %q", got)
	}

	outcome := <-model.outcomes
	if outcome.Query != "j" {
		t.Fatalf("dispatched query %q", outcome.Query)
	}
}
