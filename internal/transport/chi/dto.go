package chi

import (
	"github.com/kailas-cloud/vetdex/internal/usecase/answer"
	"github.com/kailas-cloud/vetdex/internal/usecase/compare"
	healthuc "github.com/kailas-cloud/vetdex/internal/usecase/health"
)

// AskRequest is the body of POST /v1/ask.
type AskRequest struct {
	Query      string   `json:"query"`
	Categories []string `json:"categories,omitempty"`
	Animal     string   `json:"animal,omitempty"`
}

// AnswerResponse is returned by the ask and lookup endpoints.
// Each drug is a flat map keyed by facet name; absent facets are "".
type AnswerResponse struct {
	Status     string              `json:"status"`
	Query      string              `json:"query"`
	Cleaned    string              `json:"cleaned"`
	Categories []string            `json:"categories"`
	Animal     string              `json:"animal"`
	Drugs      []map[string]string `json:"drugs"`
	Candidates []CandidateResponse `json:"candidates,omitempty"`
}

// CandidateResponse explains why a record ranked where it did.
type CandidateResponse struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Word    string  `json:"word"`
	Field   string  `json:"field"`
	Segment string  `json:"segment"`
}

// ComparisonResponse is returned by GET /v1/compare.
type ComparisonResponse struct {
	First   string           `json:"first"`
	Second  string           `json:"second"`
	Aspects []AspectResponse `json:"aspects"`
}

// AspectResponse is one compared field.
type AspectResponse struct {
	Field   string `json:"field"`
	Verdict string `json:"verdict"`
	First   string `json:"first"`
	Second  string `json:"second"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Records int               `json:"records"`
	Checks  map[string]string `json:"checks"`
}

func answerToResponse(a *answer.Answer) AnswerResponse {
	drugs := make([]map[string]string, len(a.Drugs))
	for i := range a.Drugs {
		drugs[i] = a.Drugs[i].Map()
	}

	var candidates []CandidateResponse
	for _, c := range a.Top {
		candidates = append(candidates, CandidateResponse{
			Name:    c.Record.Name,
			Score:   c.Score,
			Word:    c.Evidence.Word,
			Field:   string(c.Evidence.Field),
			Segment: c.Evidence.Segment,
		})
	}

	return AnswerResponse{
		Status:     string(a.Kind),
		Query:      a.Query.Raw,
		Cleaned:    a.Query.Cleaned,
		Categories: a.Query.Categories.Strings(),
		Animal:     string(a.Query.Animal),
		Drugs:      drugs,
		Candidates: candidates,
	}
}

func comparisonToResponse(c *compare.Comparison) ComparisonResponse {
	aspects := make([]AspectResponse, len(c.Aspects))
	for i, a := range c.Aspects {
		aspects[i] = AspectResponse{
			Field:   string(a.Field),
			Verdict: string(a.Verdict),
			First:   a.First,
			Second:  a.Second,
		}
	}
	return ComparisonResponse{First: c.First, Second: c.Second, Aspects: aspects}
}

func healthToResponse(r *healthuc.Report) HealthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return HealthResponse{Status: string(r.Status), Records: r.Records, Checks: checks}
}
