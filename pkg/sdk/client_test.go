package vetdex

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/vetdex/internal/domain"
	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
	"github.com/kailas-cloud/vetdex/internal/domain/query/category"
	"github.com/kailas-cloud/vetdex/internal/usecase/answer"
	compareuc "github.com/kailas-cloud/vetdex/internal/usecase/compare"
	healthuc "github.com/kailas-cloud/vetdex/internal/usecase/health"
)

func testDrugs() []Drug {
	return []Drug{
		{
			Name:           "Мелоксикам",
			TradeNames:     "Метакам, Локсиком",
			Classification: "НПВС",
			Storage:        "При комнатной температуре",
			DogDosage:      "0,2 мг/кг",
			CatDosage:      "0,05 мг/кг",
		},
		{
			Name:           "Пироксикам",
			Classification: "НПВС",
			CatDosage:      "Противопоказан кошкам",
		},
	}
}

func TestNew_NoSource(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no knowledge base is given")
	}
}

func TestNew_SeveralSources(t *testing.T) {
	_, err := New(context.Background(), WithRecords(testDrugs()), WithTabularFile("drugs.csv"))
	if err == nil {
		t.Fatal("expected error for ambiguous knowledge base")
	}
}

func TestNew_EmptyRecords(t *testing.T) {
	_, err := New(context.Background(), WithRecords([]Drug{{Name: "  "}}))
	if !errors.Is(err, ErrCatalogEmpty) {
		t.Fatalf("expected ErrCatalogEmpty, got %v", err)
	}
}

func TestClient_AskSingle(t *testing.T) {
	c, err := New(context.Background(), WithRecords(testDrugs()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	ans, err := c.Ask(context.Background(), AskRequest{Query: "дозировка мелоксикам для собак"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Status != StatusSingle || len(ans.Drugs) != 1 {
		t.Fatalf("unexpected answer %+v", ans)
	}
	if ans.Animal != "dog" || ans.Drugs[0]["dog_dosage"] != "0,2 мг/кг" {
		t.Errorf("unexpected facets %v (animal %q)", ans.Drugs[0], ans.Animal)
	}
	if ans.Drugs[0].Name() != "Мелоксикам" {
		t.Errorf("Name() = %q", ans.Drugs[0].Name())
	}
}

func TestClient_AskMultipleThenLookup(t *testing.T) {
	c, err := New(context.Background(), WithRecords(testDrugs()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ans, err := c.Ask(context.Background(), AskRequest{Query: "оксикам"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Status != StatusMultiple || len(ans.Drugs) != 2 {
		t.Fatalf("unexpected answer %+v", ans)
	}

	picked, err := c.Lookup(context.Background(), ans.Drugs[1].Name(), nil, "cat")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if picked.Drugs[0].Warning() != "Противопоказан кошкам" {
		t.Errorf("expected contraindication warning, got %v", picked.Drugs[0])
	}
}

func TestClient_AskErrors(t *testing.T) {
	c, err := New(context.Background(), WithRecords(testDrugs()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		req  AskRequest
		want error
	}{
		{AskRequest{Query: "zzzz qqqq"}, ErrDrugNotFound},
		{AskRequest{Query: "  "}, ErrDrugNotFound},
		{AskRequest{Query: "мелоксикам", Categories: []string{"price"}}, ErrInvalidCategory},
		{AskRequest{Query: "мелоксикам", Animal: "horse"}, ErrInvalidAnimal},
	}
	for _, tc := range tests {
		_, err := c.Ask(context.Background(), tc.req)
		if !errors.Is(err, tc.want) {
			t.Errorf("%+v: expected %v, got %v", tc.req, tc.want, err)
		}
	}
}

func TestClient_Compare(t *testing.T) {
	c, err := New(context.Background(), WithRecords(testDrugs()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cmp, err := c.Compare(context.Background(), "мелоксикам", "Пироксикам")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(cmp.Aspects) != 1 || !cmp.Aspects[0].Same || cmp.Aspects[0].First != "НПВС" {
		t.Errorf("unexpected comparison %+v", cmp)
	}

	_, err = c.Compare(context.Background(), "мелоксикам", "аспирин")
	if !errors.Is(err, ErrDrugNotFound) {
		t.Errorf("expected ErrDrugNotFound, got %v", err)
	}
}

func TestClient_TabularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drugs.csv")
	csv := "Name;Trade_and_other_names;Functional_classification\n" +
		"Ивермектин;Ивомек;Противопаразитарное\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := New(context.Background(), WithTabularFile(path), WithCSVFormat(';', "utf-8"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ans, err := c.Ask(context.Background(), AskRequest{Query: "ивомек"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Drugs[0].Name() != "Ивермектин" {
		t.Errorf("unexpected drug %q", ans.Drugs[0].Name())
	}
	if h := c.Health(context.Background()); h.Status != "ok" || h.Records != 1 {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestClient_TabularFileMissing(t *testing.T) {
	_, err := New(context.Background(), WithTabularFile(filepath.Join(t.TempDir(), "none.csv")))
	if err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestClient_CustomNormalizer(t *testing.T) {
	norm := &countingNormalizer{}
	c, err := New(context.Background(), WithRecords(testDrugs()), WithNormalizer(norm))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Ask(context.Background(), AskRequest{Query: "метакам хранение"}); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if norm.calls != 1 {
		t.Errorf("expected one normalizer call, got %d", norm.calls)
	}

	if h := c.Health(context.Background()); h.Checks["normalizer"] != "ok" || norm.pings != 1 {
		t.Errorf("health must ping the normalizer, got %+v (pings %d)", h, norm.pings)
	}

	norm.err = errors.New("down")
	if _, err := c.Ask(context.Background(), AskRequest{Query: "метакам хранение"}); !errors.Is(err, ErrNormalizerUnavailable) {
		t.Errorf("expected ErrNormalizerUnavailable, got %v", err)
	}
	if h := c.Health(context.Background()); h.Status != "degraded" {
		t.Errorf("expected degraded, got %q", h.Status)
	}
}

func TestClient_Threshold(t *testing.T) {
	c, err := New(context.Background(), WithRecords(testDrugs()), WithThreshold(0.9))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// substring hits score 0.85
	if _, err := c.Ask(context.Background(), AskRequest{Query: "оксикам"}); !errors.Is(err, ErrDrugNotFound) {
		t.Errorf("expected ErrDrugNotFound, got %v", err)
	}
}

func TestClient_PassesHintsToPipeline(t *testing.T) {
	var got answer.Request
	mock := &mockAnswerUC{
		askFn: func(_ context.Context, req answer.Request) (answer.Answer, error) {
			got = req
			return answer.Answer{}, domain.ErrSearchFailed
		},
	}
	c := testClient(mock, nil, nil)

	_, err := c.Ask(context.Background(), AskRequest{Query: "q", Categories: []string{"Dosage", ""}, Animal: "Cat"})
	if !errors.Is(err, ErrSearchFailed) {
		t.Fatalf("expected ErrSearchFailed, got %v", err)
	}
	if !got.Categories.Has(category.Dosage) || len(got.Categories) != 1 || got.Animal != animal.Cat {
		t.Errorf("unexpected request %+v", got)
	}
}

func TestClient_CompareConversion(t *testing.T) {
	mock := &mockCompareUC{
		compareFn: func(_ context.Context, first, second string) (compareuc.Comparison, error) {
			return compareuc.Comparison{First: first, Second: second, Aspects: []compareuc.Aspect{
				{Field: "classification", Verdict: compareuc.Different, First: "a", Second: "b"},
			}}, nil
		},
	}
	c := testClient(nil, mock, nil)

	cmp, err := c.Compare(context.Background(), "x", "y")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp.Aspects[0].Same || cmp.Aspects[0].Field != "classification" {
		t.Errorf("unexpected aspect %+v", cmp.Aspects[0])
	}
}

func TestClient_HealthConversion(t *testing.T) {
	c := testClient(nil, nil, &mockHealthUC{report: healthuc.Report{
		Status:  healthuc.Degraded,
		Records: 7,
		Checks:  map[string]healthuc.CheckResult{"database": healthuc.CheckError},
	}})

	h := c.Health(context.Background())
	if h.Status != "degraded" || h.Records != 7 || h.Checks["database"] != "error" {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithRedis("localhost:6379", "secret").apply(cfg)
	WithKeyPrefix("vet:").apply(cfg)
	if cfg.addrs[0] != "localhost:6379" || cfg.password != "secret" || cfg.keyPrefix != "vet:" {
		t.Errorf("unexpected redis config %+v", cfg)
	}

	WithCSVFormat(';', "windows-1251").apply(cfg)
	WithSheet("Лист1").apply(cfg)
	if cfg.separator != ';' || cfg.encoding != "windows-1251" || cfg.sheet != "Лист1" {
		t.Errorf("unexpected tabular config %+v", cfg)
	}

	WithThreshold(0.8).apply(cfg)
	WithExactCutoff(0.95).apply(cfg)
	if cfg.threshold != 0.8 || cfg.exactCutoff != 0.95 {
		t.Errorf("unexpected ranking config %+v", cfg)
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	// Close на клиенте с nil store не паникует.
	c := &Client{store: nil}
	c.Close()
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(context.Background(), WithRecords(testDrugs()), WithPrometheus(reg))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, _ = c.Ask(context.Background(), AskRequest{Query: "мелоксикам"})
	_, _ = c.Ask(context.Background(), AskRequest{Query: "zzzz"})
	_, _ = c.Ask(context.Background(), AskRequest{Query: "мелоксикам", Animal: "horse"})

	ops := c.obs.metrics.operations
	for status, want := range map[string]float64{"ok": 1, "not_found": 1, "error": 1} {
		if got := testutil.ToFloat64(ops.WithLabelValues("ask", status)); got != want {
			t.Errorf("ask/%s = %v, want %v", status, got, want)
		}
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second newObserver: %v", err)
	}

	first.observe("lookup", time.Now(), nil)
	second.observe("lookup", time.Now(), nil)
	if got := testutil.ToFloat64(first.metrics.operations.WithLabelValues("lookup", "ok")); got != 2 {
		t.Errorf("shared counter = %v, want 2", got)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs, err := newObserver(logger, nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("ask", time.Now(), nil, "query", "мелоксикам")
	obs.observe("ask", time.Now(), domain.ErrDrugNotFound)
	obs.observe("ask", time.Now(), errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"operation completed", "query=мелоксикам", "no drug matched", "operation failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output misses %q:\n%s", want, out)
		}
	}
}
