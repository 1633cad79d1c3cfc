package screener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestExtractCompanyInfo(t *testing.T) {
	st := gjson.Parse(`{"company":{"name":"TCS","mcap":"12,34,567","current_price":"3500","high_low":"4000 / 3100"}}`)

	info := ExtractCompanyInfo(st)
	assert.Equal(t, "TCS", info.Name)
	assert.Equal(t, "12,34,567", info.MarketCap)
	assert.Equal(t, "3500", info.CurrentPrice)
	assert.Equal(t, "4000 / 3100", info.HighLow)
}

func TestExtractCompanyInfoMissingPathsOmitted(t *testing.T) {
	st := gjson.Parse(`{"company":{"name":"TCS"}}`)

	info := ExtractCompanyInfo(st)
	assert.Equal(t, "TCS", info.Name)
	assert.Empty(t, info.MarketCap)
	assert.Empty(t, info.CurrentPrice)
	assert.Empty(t, info.HighLow)
	assert.Empty(t, info.URL)
}

func TestExtractCompanyInfoAliasPaths(t *testing.T) {
	st := gjson.Parse(`{"company":{"market_cap":"99","price":"12.5"}}`)

	info := ExtractCompanyInfo(st)
	assert.Equal(t, "99", info.MarketCap)
	assert.Equal(t, "12.5", info.CurrentPrice)
}

func TestExtractCompanyInfoHighLowPair(t *testing.T) {
	st := gjson.Parse(`{"company":{"high_52w":"4000","low_52w":"3100"}}`)

	info := ExtractCompanyInfo(st)
	assert.Equal(t, "4000 / 3100", info.HighLow)
}

func TestExtractRatiosPreservesOrderAndRawValues(t *testing.T) {
	st := gjson.Parse(`{"ratios":{"P/E":"28.5","ROE":"45.2 %","Dividend Yield":"1.2 %","Book Value":"₹ 110"}}`)

	ratios := ExtractRatios(st)
	require.Len(t, ratios, 4)
	assert.Equal(t, Ratio{Label: "P/E", Value: "28.5"}, ratios[0])
	assert.Equal(t, Ratio{Label: "ROE", Value: "45.2 %"}, ratios[1])
	assert.Equal(t, Ratio{Label: "Dividend Yield", Value: "1.2 %"}, ratios[2])
	assert.Equal(t, Ratio{Label: "Book Value", Value: "₹ 110"}, ratios[3])
}

func TestExtractRatiosFallbackContainer(t *testing.T) {
	st := gjson.Parse(`{"company":{"ratios":{"P/E":"10"}}}`)

	ratios := ExtractRatios(st)
	require.Len(t, ratios, 1)
	assert.Equal(t, "P/E", ratios[0].Label)
}

func TestExtractRatiosAbsent(t *testing.T) {
	assert.Nil(t, ExtractRatios(gjson.Parse(`{"company":{}}`)))
}

func TestExtractRatiosNonStringScalars(t *testing.T) {
	st := gjson.Parse(`{"ratios":{"P/E":28.5,"Listed":true}}`)

	ratios := ExtractRatios(st)
	require.Len(t, ratios, 2)
	assert.Equal(t, "28.5", ratios[0].Value)
	assert.Equal(t, "true", ratios[1].Value)
}
