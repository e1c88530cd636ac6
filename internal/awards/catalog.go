package awards

const (
	KeyCaptain        = "captain"
	KeyBench          = "bench"
	KeyHits           = "hits"
	KeyTransferGain   = "transfer_gain"
	KeyBestGW         = "best_gw"
	KeyWorstGW        = "worst_gw"
	KeyRoundProgress  = "round_progress"
	KeyRoundRegress   = "round_regress"
	KeyEfficiency     = "efficiency"
	KeyAutosubs       = "autosubs"
	KeyTransfers      = "transfers"
	KeyBenchBoost     = "bench_boost"
	KeyTripleCaptain  = "triple_captain"
	KeyFreeHit        = "free_hit"
	KeyMostPicked     = "most_picked"
	KeyLowestGW       = "lowest_gw"
	KeyHighestGW      = "highest_gw"
	KeyHighestBenchGW = "highest_bench_gw"
)

// Keys is the presentation order of awards.
var Keys = []string{
	KeyCaptain, KeyBench, KeyHits, KeyTransferGain, KeyBestGW, KeyWorstGW,
	KeyRoundProgress, KeyRoundRegress, KeyEfficiency, KeyAutosubs, KeyTransfers,
	KeyBenchBoost, KeyTripleCaptain, KeyFreeHit, KeyMostPicked,
	KeyLowestGW, KeyHighestGW, KeyHighestBenchGW,
}

type Entry struct {
	Title  string `yaml:"title" json:"title"`
	Reason string `yaml:"reason" json:"reason"`
}

// Catalog holds the display text of each award, keyed by award key.
type Catalog map[string]Entry

func DefaultCatalog() Catalog {
	return Catalog{
		KeyCaptain:        {"Captain Fantastic", "Most captain points"},
		KeyBench:          {"Bench Warmer", "Most points left on the bench"},
		KeyHits:           {"Hit Collector", "Most points spent on hits"},
		KeyTransferGain:   {"Autosub Alchemist", "Most points gained from automatic substitutions"},
		KeyBestGW:         {"Weekly Winner", "Most gameweeks with the league's top score"},
		KeyWorstGW:        {"Wooden Spoon", "Most gameweeks with the league's lowest score"},
		KeyRoundProgress:  {"Second-Half Surge", "Biggest gain from the first half to the second"},
		KeyRoundRegress:   {"Fading Star", "Biggest drop from the first half to the second"},
		KeyEfficiency:     {"Efficiency Expert", "Highest net points per gameweek"},
		KeyAutosubs:       {"Autosub Magnet", "Most automatic substitutions"},
		KeyTransfers:      {"Transfer Addict", "Most transfers made"},
		KeyBenchBoost:     {"Bench Boost Master", "Best Bench Boost"},
		KeyTripleCaptain:  {"Triple Threat", "Best Triple Captain"},
		KeyFreeHit:        {"Free Hit Hero", "Best Free Hit"},
		KeyMostPicked:     {"Fan Favourite", "Most picked player of the league"},
		KeyLowestGW:       {"Rock Bottom", "Lowest gameweek score of the season"},
		KeyHighestGW:      {"Record Breaker", "Highest gameweek score of the season"},
		KeyHighestBenchGW: {"Bench Party", "Most bench points in a single gameweek"},
	}
}

// Merge returns the catalog with non-empty fields from overrides applied.
func (c Catalog) Merge(overrides Catalog) Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range overrides {
		e := out[k]
		if v.Title != "" {
			e.Title = v.Title
		}
		if v.Reason != "" {
			e.Reason = v.Reason
		}
		out[k] = e
	}
	return out
}

// Entry returns the text for key, falling back to the key itself.
func (c Catalog) Entry(key string) Entry {
	e, ok := c[key]
	if !ok || e.Title == "" {
		if d, ok := DefaultCatalog()[key]; ok {
			if e.Title == "" {
				e.Title = d.Title
			}
			if e.Reason == "" {
				e.Reason = d.Reason
			}
		} else if e.Title == "" {
			e.Title = key
		}
	}
	return e
}
