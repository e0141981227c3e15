package reconcile

import "time"

// Config holds the reconciliation settings loaded from the environment.
type Config struct {
	// PairCeiling is the leftover size above which similarity pairing is skipped.
	PairCeiling int `mapstructure:"pair_ceiling" default:"5000"`
	// ReferenceLabel names the SQL side in status text and reports.
	ReferenceLabel string `mapstructure:"reference_label" default:"SQL"`
	// PreviewRows is how many display rows a comparison response carries.
	PreviewRows int `mapstructure:"preview_rows" default:"50"`
	// PageSize is the default page size for paginated results.
	PageSize int `mapstructure:"page_size" default:"100"`
	// ResultTTLMinutes is how long loaded results stay in the in-process cache.
	ResultTTLMinutes int `mapstructure:"result_ttl_minutes" default:"30"`
}

// ResultTTL returns the in-process result cache lifetime.
func (c Config) ResultTTL() time.Duration {
	return time.Duration(c.ResultTTLMinutes) * time.Minute
}
