package retirement

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/language"
)

// cacheKey identifies an analysis by everything that influences its output.
func cacheKey(p Profile, r Rates, tag language.Tag) string {
	h := xxhash.New()
	_, _ = fmt.Fprintf(h, "%d|%d|%g|%g|%g|%g|%g|%g|%g|%g|%s",
		p.CurrentAge, p.RetirementAge, p.CurrentWealth, p.CurrentIncome, p.MonthlyPayoutRequired,
		r.WithdrawalRate, r.GrowthRatePreRetirement, r.GrowthRatePostRetirement, r.InflationRate, r.TaxRate,
		tag.String())
	return fmt.Sprintf("analysis:%016x", h.Sum64())
}

// encodeResult serialises a result with msgpack, reusing the JSON field names.
func encodeResult(result AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeResult(data []byte) (AnalysisResult, error) {
	var result AnalysisResult
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&result); err != nil {
		return AnalysisResult{}, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return result, nil
}
