package vetdex

import (
	"context"
	"strings"

	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
	"github.com/kailas-cloud/vetdex/internal/domain/query/category"
	"github.com/kailas-cloud/vetdex/internal/usecase/answer"
	compareuc "github.com/kailas-cloud/vetdex/internal/usecase/compare"
	healthuc "github.com/kailas-cloud/vetdex/internal/usecase/health"
)

// --- answerUseCase mock ---

type mockAnswerUC struct {
	askFn    func(ctx context.Context, req answer.Request) (answer.Answer, error)
	lookupFn func(ctx context.Context, name string, cats category.Set, a animal.Animal) (answer.Answer, error)
}

func (m *mockAnswerUC) Ask(ctx context.Context, req answer.Request) (answer.Answer, error) {
	return m.askFn(ctx, req)
}

func (m *mockAnswerUC) Lookup(
	ctx context.Context, name string, cats category.Set, a animal.Animal,
) (answer.Answer, error) {
	return m.lookupFn(ctx, name, cats, a)
}

// --- compareUseCase mock ---

type mockCompareUC struct {
	compareFn func(ctx context.Context, first, second string) (compareuc.Comparison, error)
}

func (m *mockCompareUC) Compare(ctx context.Context, first, second string) (compareuc.Comparison, error) {
	return m.compareFn(ctx, first, second)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- Normalizer mock ---

type countingNormalizer struct {
	calls int
	pings int
	err   error
}

func (n *countingNormalizer) Analyze(_ context.Context, text string) ([]Token, error) {
	n.calls++
	if n.err != nil {
		return nil, n.err
	}
	var out []Token
	for _, w := range strings.Fields(text) {
		out = append(out, Token{Text: w, Lemma: w, POS: "NOUN"})
	}
	return out, nil
}

func (n *countingNormalizer) Ping(context.Context) error {
	n.pings++
	return n.err
}

// --- helpers ---

func testClient(answers answerUseCase, compare compareUseCase, health healthUseCase) *Client {
	return &Client{
		answers:   answers,
		compare:   compare,
		healthSvc: health,
	}
}
