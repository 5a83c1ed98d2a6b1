package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"skincare-backend/application/queries"
)

var (
	colorAccent   = lipgloss.Color("#E8A0BF")
	colorConflict = lipgloss.Color("#E74C3C")
	colorCaution  = lipgloss.Color("#F4D03F")
	colorSynergy  = lipgloss.Color("#2CD7C7")
	colorMuted    = lipgloss.Color("#6E7681")
)

var styles = struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Conflict lipgloss.Style
	Caution  lipgloss.Style
	Synergy  lipgloss.Style
	Error    lipgloss.Style
	Box      lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Label:    lipgloss.NewStyle().Bold(true),
	Muted:    lipgloss.NewStyle().Foreground(colorMuted),
	Conflict: lipgloss.NewStyle().Bold(true).Foreground(colorConflict),
	Caution:  lipgloss.NewStyle().Bold(true).Foreground(colorCaution),
	Synergy:  lipgloss.NewStyle().Bold(true).Foreground(colorSynergy),
	Error:    lipgloss.NewStyle().Bold(true).Foreground(colorConflict),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1),
}

var titleCaser = cases.Title(language.English)

// humanize turns identifiers like "vitamin_c" or "CAUTION" into title case
func humanize(value string) string {
	return titleCaser.String(strings.ReplaceAll(value, "_", " "))
}

func kindStyle(kind string) lipgloss.Style {
	switch kind {
	case "CONFLICT":
		return styles.Conflict
	case "CAUTION":
		return styles.Caution
	case "SYNERGY":
		return styles.Synergy
	default:
		return styles.Label
	}
}

func field(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%s %s\n", styles.Label.Render(label+":"), value)
}

func listField(w io.Writer, label string, values []string) {
	if len(values) == 0 {
		return
	}
	humanized := make([]string, len(values))
	for i, v := range values {
		humanized[i] = humanize(v)
	}
	field(w, label, strings.Join(humanized, ", "))
}

func bullets(w io.Writer, heading string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, styles.Label.Render(heading))
	for _, line := range lines {
		fmt.Fprintf(w, "  • %s\n", line)
	}
}

func renderIngredient(w io.Writer, r *queries.IngredientResult) {
	fmt.Fprintln(w, styles.Title.Render(r.Name)+" "+styles.Muted.Render("("+r.ID+")"))
	field(w, "Category", humanize(r.Category))
	if len(r.Aliases) > 0 {
		field(w, "Also known as", strings.Join(r.Aliases, ", "))
	}
	field(w, "Best used", r.TimeOfDay)
	listField(w, "Helps with", r.Concerns)
	listField(w, "Caution for", r.CautionSkinTypes)
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Description)
	if r.HowItWorks != "" {
		fmt.Fprintln(w, styles.Muted.Render(r.HowItWorks))
	}
	bullets(w, "Tips", r.UsageTips)
}

func renderIngredientList(w io.Writer, r *queries.ListIngredientsResult) {
	fmt.Fprintln(w, styles.Title.Render(fmt.Sprintf("%d ingredients", r.Total)))
	for _, ingredient := range r.Ingredients {
		fmt.Fprintf(w, "  %-24s %s\n", ingredient.Name, styles.Muted.Render(humanize(ingredient.Category)))
	}
}

func renderSearch(w io.Writer, r *queries.SearchIngredientsResult) {
	if len(r.Matches) == 0 {
		fmt.Fprintf(w, "No ingredients match %q\n", r.Query)
		return
	}
	fmt.Fprintln(w, styles.Title.Render(fmt.Sprintf("Matches for %q", r.Query)))
	for _, match := range r.Matches {
		fmt.Fprintf(w, "  %-24s %s\n", match.Ingredient.Name,
			styles.Muted.Render(fmt.Sprintf("%.0f%% via %q", match.Score*100, match.MatchedKey)))
	}
}

func renderInteractions(w io.Writer, r *queries.IngredientInteractionsResult) {
	fmt.Fprintln(w, styles.Title.Render("Interactions of "+humanize(r.Ingredient)))
	if len(r.Interactions) == 0 {
		fmt.Fprintln(w, "  No known interactions")
		return
	}
	for _, interaction := range r.Interactions {
		other := interaction.IngredientB
		if other == r.Ingredient {
			other = interaction.IngredientA
		}
		fmt.Fprintf(w, "  %s %s\n", kindStyle(interaction.Kind).Render(fmt.Sprintf("%-8s", humanize(interaction.Kind))), humanize(other))
	}
}

func renderExplanation(w io.Writer, r *queries.ExplainInteractionResult) {
	kind := "UNKNOWN"
	if r.Interaction != nil {
		kind = r.Interaction.Kind
	}
	header := kindStyle(kind).Render(humanize(kind)) + " " + styles.Muted.Render(r.A+" + "+r.B)
	fmt.Fprintln(w, styles.Box.Render(header+"\n"+r.Explanation))
}

func renderPairs(w io.Writer, heading string, kind string, pairs []queries.PairFindingResult) {
	if len(pairs) == 0 {
		return
	}
	fmt.Fprintln(w, kindStyle(kind).Render(heading))
	for _, pair := range pairs {
		fmt.Fprintf(w, "  • %s + %s: %s\n", pair.NameA, pair.NameB, pair.Explanation)
		if pair.Recommendation != "" {
			fmt.Fprintf(w, "    %s\n", styles.Muted.Render(pair.Recommendation))
		}
	}
}

func renderWaits(w io.Writer, waits []queries.WaitTimeResult) {
	if len(waits) == 0 {
		return
	}
	fmt.Fprintln(w, styles.Label.Render("Wait times"))
	for _, wait := range waits {
		fmt.Fprintf(w, "  • %d min between %s and %s\n", wait.Minutes, wait.NameA, wait.NameB)
	}
}

func renderFindings(w io.Writer, conflicts, cautions, synergies []queries.PairFindingResult, waits []queries.WaitTimeResult) {
	renderPairs(w, "Conflicts", "CONFLICT", conflicts)
	renderPairs(w, "Cautions", "CAUTION", cautions)
	renderPairs(w, "Synergies", "SYNERGY", synergies)
	renderWaits(w, waits)
}

func verdict(ok bool, yes, no string) string {
	if ok {
		return styles.Synergy.Render("✓ " + yes)
	}
	return styles.Conflict.Render("✗ " + no)
}

func renderCompatibility(w io.Writer, r *queries.CompatibilityResult) {
	if r.InsufficientInput {
		fmt.Fprintln(w, "Give at least two different ingredients to check compatibility.")
		return
	}
	fmt.Fprintln(w, verdict(r.IsCompatible, "Compatible", "Not compatible"))
	renderFindings(w, r.Conflicts, r.Cautions, r.Synergies, r.WaitTimes)
}

func renderComparison(w io.Writer, r *queries.ComparisonResult) {
	if !r.InsufficientInput {
		fmt.Fprintln(w, verdict(r.CanUseTogether, "Can be used together", "Do not use together"))
		renderFindings(w, r.Conflicts, r.Cautions, r.Synergies, r.WaitTimes)
	}
	fmt.Fprintln(w, styles.Box.Render(r.Recommendation))
}

func renderRoutine(w io.Writer, r *queries.RoutineResult) {
	fmt.Fprintln(w, styles.Title.Render(r.Time+" routine")+" "+styles.Muted.Render(r.ID))
	for _, step := range r.Steps {
		line := fmt.Sprintf("  %d. %s", step.Position, step.ProductName)
		if step.WaitAfter > 0 {
			line += styles.Muted.Render(fmt.Sprintf("  (wait %d min)", step.WaitAfter))
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	analysis := r.Analysis
	fmt.Fprintln(w, verdict(analysis.IsValid, "No conflicts", "Routine has conflicts"))
	renderFindings(w, analysis.Conflicts, analysis.Cautions, analysis.Synergies, analysis.WaitTimes)
	bullets(w, "Ordering issues", analysis.OrderingIssues)
	bullets(w, "Missing", analysis.MissingEssentials)
	bullets(w, "Suggestions", analysis.Suggestions)
}

func renderSuggestion(w io.Writer, r *queries.SuggestRoutineResult) {
	fmt.Fprintln(w, styles.Title.Render(fmt.Sprintf("Suggested %s routine (%s)", r.Time, r.Budget)))
	for i, step := range r.Steps {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, styles.Label.Render(step.Step), styles.Muted.Render("["+step.Priority+"]"))
		fmt.Fprintf(w, "     %s\n", step.Why)
		if len(step.Ingredients) > 0 {
			fmt.Fprintf(w, "     %s\n", styles.Muted.Render("Look for: "+strings.Join(step.Ingredients, ", ")))
		}
	}
}

func renderIngredientAnalysis(w io.Writer, r *queries.IngredientListResult) {
	fmt.Fprintln(w, styles.Box.Render(r.Summary))
	for _, identified := range r.Identified {
		name := identified.Name
		if identified.Fuzzy {
			name += styles.Muted.Render(fmt.Sprintf(" (from %q)", identified.Input))
		}
		fmt.Fprintf(w, "  • %s %s\n", name, styles.Muted.Render(humanize(identified.Category)))
	}
	if len(r.Unrecognized) > 0 {
		field(w, "Unrecognized", strings.Join(r.Unrecognized, ", "))
	}
	listField(w, "Addresses", r.ConcernsAddressed)
	renderFindings(w, r.Compatibility.Conflicts, r.Compatibility.Cautions, r.Compatibility.Synergies, r.Compatibility.WaitTimes)
}

func renderAnswer(w io.Writer, r *queries.AdvisorResult) {
	fmt.Fprintln(w, styles.Box.Render(r.Answer))
	if len(r.Sources) > 0 {
		fmt.Fprintln(w, styles.Muted.Render("Sources: "+strings.Join(r.Sources, ", ")))
	}
	bullets(w, "You could also ask", r.FollowUps)
}
