package laws

import (
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

// maxResults caps how many laws a retrieval returns.
const maxResults = 5

// ScoredLaw is a corpus record annotated with its relevance to a query.
type ScoredLaw struct {
	models.Law
	RelevanceScore int `json:"relevance_score"`
}

// Engine ranks the statute corpus against free-text queries. The corpus is
// an immutable snapshot taken at construction; Retrieve is a pure function
// over it.
type Engine struct {
	corpus []models.Law
}

// NewEngine builds an engine over the given corpus snapshot.
func NewEngine(corpus []models.Law) *Engine {
	return &Engine{corpus: corpus}
}

// LoadEngine reads the full law table (in load order) and builds an engine.
func LoadEngine(db *gorm.DB) (*Engine, error) {
	var corpus []models.Law
	if err := db.Order("id ASC").Find(&corpus).Error; err != nil {
		return nil, err
	}
	return NewEngine(corpus), nil
}

// Corpus returns the snapshot the engine ranks against.
func (e *Engine) Corpus() []models.Law { return e.corpus }

// Retrieve scores every law against the query and returns the top matches,
// highest score first (ties keep corpus order). Scoring: +1 per query token
// (longer than 2 chars, lowercased) found as a substring of the law's
// searchable text; +5 when the law's section label appears verbatim in the
// query; +3 likewise for the act name.
func (e *Engine) Retrieve(query string) []ScoredLaw {
	queryLower := strings.ToLower(query)

	var words []string
	for _, w := range strings.Fields(queryLower) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}

	var scored []ScoredLaw
	for _, law := range e.corpus {
		searchable := strings.ToLower(law.Title + " " + law.Description + " " +
			law.Keywords + " " + law.Section + " " + law.ActName + " " + law.Penalty)

		score := 0
		for _, w := range words {
			if strings.Contains(searchable, w) {
				score++
			}
		}
		if law.Section != "" && strings.Contains(queryLower, strings.ToLower(law.Section)) {
			score += 5
		}
		if law.ActName != "" && strings.Contains(queryLower, strings.ToLower(law.ActName)) {
			score += 3
		}

		if score > 0 {
			scored = append(scored, ScoredLaw{Law: law, RelevanceScore: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}
