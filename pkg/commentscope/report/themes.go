package report

import (
	"strings"

	"github.com/cognicore/commentscope/pkg/commentscope/analytics"
	"github.com/cognicore/commentscope/pkg/commentscope/taxonomy"
)

// ThemeSummary renders the service-theme listing followed by the
// country-specific section.
func (r *Renderer) ThemeSummary(res analytics.Result) string {
	if res.Empty() {
		return NoData
	}

	var b strings.Builder
	line(&b, rule)
	line(&b, "=== Themes Analysis Summary ===")
	line(&b, "Total Comments Analyzed: %d", res.TotalComments)
	blank(&b)
	line(&b, "--- Service-Related Themes ---")

	for _, st := range res.Group(taxonomy.GroupService) {
		tally := ""
		if st.Count > 0 {
			tally = tallyString(st.Sentiments)
		}
		line(&b, "%s: %d (%.2f%%) %s", st.Theme.DisplayName(), st.Count, res.Percentage(st.Count), tally)
		line(&b, "Keywords: %s", strings.Join(st.Theme.Keywords, ", "))
		if st.Count == 0 {
			continue
		}
		line(&b, "Comments:")
		for _, mc := range st.ByLikes() {
			line(&b, "- %s", excerpt(mc.Text))
		}
		blank(&b)
	}

	blank(&b)
	blank(&b)
	b.WriteString(indent + "--- Country-Specific Comments ---")
	for _, st := range res.MentionedCountries() {
		line(&b, "%s: %d (%.2f%%) %s", st.Theme.DisplayName(), st.Count, res.Percentage(st.Count), tallyString(st.Sentiments))
	}

	merged, total := res.CountryComments()
	if total > 0 {
		blank(&b)
		line(&b, "Total Country-Related Comments: %d (%.2f%%)", total, res.Percentage(total))
		line(&b, "Comments by Country:")
		for _, cc := range merged {
			line(&b, "- [%s] %s", cc.Country, excerpt(cc.Text))
		}
	}

	line(&b, rule)
	return b.String()
}
