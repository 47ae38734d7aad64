package models

// Requests for the report HTTP endpoints. Defined in domain for consistency
// and reuse.

// ReportRequest is the POST /api/reports body: everything the pipeline needs,
// gathered by the (external) data layer. ModelResults lets offline callers
// supply pre-computed model analyses instead of invoking the LLM clients.
type ReportRequest struct {
	Symbol       string                `json:"symbol" validate:"required"`
	Name         string                `json:"name"`
	News         []NewsItem            `json:"news" validate:"max=50,dive"`
	Stock        StockFacts            `json:"stock"`
	Market       MarketFacts           `json:"market"`
	Context      MarketContext         `json:"market_context"`
	Sector       *SectorRelative       `json:"sector,omitempty"`
	Analyst      *AnalystOpinion       `json:"analyst_opinion,omitempty"`
	ModelResults []ModelAnalysisResult `json:"model_results,omitempty" validate:"max=8"`
}

// ReportLookupRequest is the GET /api/reports/:symbol binding.
type ReportLookupRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}
