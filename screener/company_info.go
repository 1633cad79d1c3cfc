package screener

import "github.com/tidwall/gjson"

// Candidate state paths per field, tried in order. Upstream has renamed
// fields between page revisions, so each target keeps its known aliases.
var (
	namePaths      = []string{"company.name"}
	urlPaths       = []string{"company.url"}
	marketCapPaths = []string{"company.mcap", "company.market_cap"}
	pricePaths     = []string{"company.current_price", "company.price"}
	highLowPaths   = []string{"company.high_low"}
)

// ExtractCompanyInfo walks the parsed state with the known field paths. A
// missing path leaves that field empty and never disturbs the others.
func ExtractCompanyInfo(st gjson.Result) CompanyInfo {
	info := CompanyInfo{
		Name:         firstPath(st, namePaths),
		URL:          firstPath(st, urlPaths),
		MarketCap:    firstPath(st, marketCapPaths),
		CurrentPrice: firstPath(st, pricePaths),
		HighLow:      firstPath(st, highLowPaths),
	}

	if info.HighLow == "" {
		high := st.Get("company.high_52w")
		low := st.Get("company.low_52w")
		if high.Exists() && low.Exists() {
			info.HighLow = high.String() + " / " + low.String()
		}
	}

	return info
}

// ExtractRatios copies every entry of the ratios container verbatim,
// preserving source order. Values stay raw strings; no unit conversion.
func ExtractRatios(st gjson.Result) RatioSet {
	container := st.Get("ratios")
	if !container.Exists() {
		container = st.Get("company.ratios")
	}
	if !container.IsObject() {
		return nil
	}

	var ratios RatioSet
	container.ForEach(func(key, value gjson.Result) bool {
		ratios = append(ratios, Ratio{Label: key.String(), Value: value.String()})
		return true
	})
	return ratios
}

func firstPath(st gjson.Result, paths []string) string {
	for _, p := range paths {
		if v := st.Get(p); v.Exists() {
			return v.String()
		}
	}
	return ""
}
