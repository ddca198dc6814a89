package simulador

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Directory holds the fund reference base and resolves free-form holding
// descriptions to canonical FundRecords.
//
// It is loaded once at process start and never mutated afterwards, so it
// can be shared across concurrent simulation runs without locking.
type Directory struct {
	funds    []*FundRecord
	byCode   map[string]*FundRecord
	byTicker map[string]*FundRecord
	byName   map[string]*FundRecord // normalized name -> record

	fuzzyThreshold float64
}

// DefaultFuzzyThreshold is the minimum similarity the last-resort name
// rule accepts. Below it, a query stays unresolved rather than risking a
// false positive.
const DefaultFuzzyThreshold = 0.84

// NewDirectory builds a Directory from the given funds. Duplicate codes
// are rejected: the fund base is reference data and must be unambiguous.
func NewDirectory(funds ...*FundRecord) (*Directory, error) {
	d := &Directory{
		funds:          make([]*FundRecord, 0, len(funds)),
		byCode:         make(map[string]*FundRecord, len(funds)),
		byTicker:       make(map[string]*FundRecord),
		byName:         make(map[string]*FundRecord, len(funds)),
		fuzzyThreshold: DefaultFuzzyThreshold,
	}
	for _, f := range funds {
		if err := d.add(f); err != nil {
			return nil, err
		}
	}
	slices.SortFunc(d.funds, func(a, b *FundRecord) int {
		return strings.Compare(a.Code, b.Code)
	})
	return d, nil
}

func (d *Directory) add(f *FundRecord) error {
	if f.Code == "" {
		return fmt.Errorf("fund %q has no code", f.Name)
	}
	if _, dup := d.byCode[f.Code]; dup {
		return fmt.Errorf("fund code %q is already defined", f.Code)
	}
	d.funds = append(d.funds, f)
	d.byCode[f.Code] = f
	if f.Ticker != "" {
		d.byTicker[strings.ToUpper(f.Ticker)] = f
	}
	d.byName[normalizeName(f.Name)] = f
	return nil
}

// SetFuzzyThreshold overrides the similarity threshold of the last-resort
// name rule. It is meant to be called once, right after load.
func (d *Directory) SetFuzzyThreshold(t float64) { d.fuzzyThreshold = t }

// Len returns the number of funds in the base.
func (d *Directory) Len() int { return len(d.funds) }

// Get returns the fund with this exact code, or nil.
func (d *Directory) Get(code string) *FundRecord { return d.byCode[code] }

// All returns the funds sorted by code.
func (d *Directory) All() []*FundRecord { return slices.Clone(d.funds) }

// MatchRule identifies which rule of the priority chain resolved a query.
type MatchRule int

const (
	MatchByCode MatchRule = iota
	MatchByTicker
	MatchByName
	MatchByFuzzyName
)

func (r MatchRule) String() string {
	switch r {
	case MatchByCode:
		return "code"
	case MatchByTicker:
		return "ticker"
	case MatchByName:
		return "name"
	case MatchByFuzzyName:
		return "fuzzy-name"
	default:
		return "unknown"
	}
}

// MatchResult reports a successful resolution: the record, the rule that
// won, and for the fuzzy rule the similarity score.
type MatchResult struct {
	Fund  *FundRecord
	Rule  MatchRule
	Score float64
}

// Match resolves a free-text identifier (code, exchange ticker, or fund
// name) to a FundRecord. Rules are tried in priority order and the first
// hit wins; there is no fallback once a higher rule succeeds:
//
//  1. exact code match
//  2. exact ticker match (case-insensitive)
//  3. case-insensitive, whitespace-normalized exact name match
//  4. fuzzy/substring name match, accepted only above the similarity
//     threshold
//
// An unresolvable query returns ok == false, never an error: unresolved
// holdings are surfaced to the caller for manual resolution.
func (d *Directory) Match(query string) (MatchResult, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return MatchResult{}, false
	}

	if f, hit := d.byCode[trimmed]; hit {
		return MatchResult{Fund: f, Rule: MatchByCode, Score: 1}, true
	}
	if f, hit := d.byTicker[strings.ToUpper(trimmed)]; hit {
		return MatchResult{Fund: f, Rule: MatchByTicker, Score: 1}, true
	}

	normalized := normalizeName(trimmed)
	if f, hit := d.byName[normalized]; hit {
		return MatchResult{Fund: f, Rule: MatchByName, Score: 1}, true
	}

	return d.fuzzyMatch(normalized)
}

// fuzzyMatch scans the whole base for the most similar name. Funds are
// already sorted by code, so equal scores resolve deterministically to
// the lexicographically smallest code.
func (d *Directory) fuzzyMatch(normalized string) (MatchResult, bool) {
	best := MatchResult{Rule: MatchByFuzzyName}
	for _, f := range d.funds {
		score := nameSimilarity(normalized, normalizeName(f.Name))
		if score > best.Score {
			best.Fund = f
			best.Score = score
		}
	}
	if best.Fund == nil || best.Score < d.fuzzyThreshold {
		return MatchResult{}, false
	}
	return best, true
}

// Search returns up to limit funds whose code, ticker or normalized name
// contains the query, sorted by code. It serves the interactive fund
// lookup, not the matcher.
func (d *Directory) Search(query string, limit int) []*FundRecord {
	normalized := normalizeName(query)
	if normalized == "" {
		return nil
	}
	var out []*FundRecord
	for _, f := range d.funds {
		if len(out) == limit {
			break
		}
		if strings.Contains(f.Code, query) ||
			strings.Contains(strings.ToUpper(f.Ticker), strings.ToUpper(query)) ||
			strings.Contains(normalizeName(f.Name), normalized) {
			out = append(out, f)
		}
	}
	return out
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalizeName uppercases and collapses runs of whitespace.
func normalizeName(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.ToUpper(strings.TrimSpace(s)), " ")
}

// nameSimilarity scores two normalized names in [0, 1].
//
// Containment of a long-enough name counts as a near-certain hit, the way
// the reference fund base matches nicknames against full legal names.
// Otherwise the score is the Sørensen–Dice coefficient over character
// bigrams.
func nameSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	const minContainment = 6 // too-short fragments match everything
	if len(a) >= minContainment && len(b) >= minContainment {
		if strings.Contains(a, b) || strings.Contains(b, a) {
			return 0.95
		}
	}
	return diceCoefficient(bigrams(a), bigrams(b))
}

func bigrams(s string) map[string]int {
	grams := make(map[string]int)
	runes := []rune(s)
	for i := 0; i+1 < len(runes); i++ {
		grams[string(runes[i:i+2])]++
	}
	return grams
}

func diceCoefficient(a, b map[string]int) float64 {
	var total, shared int
	for _, n := range a {
		total += n
	}
	for _, n := range b {
		total += n
	}
	if total == 0 {
		return 0
	}
	for g, n := range a {
		if m, ok := b[g]; ok {
			shared += min(n, m)
		}
	}
	return 2 * float64(shared) / float64(total)
}
