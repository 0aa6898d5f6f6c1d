package ocr

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

// fakeEngine returns scripted results keyed by strategy signature and records
// every call for order assertions.
type fakeEngine struct {
	results map[string]string
	errors  map[string]error
	calls   []string
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(_ context.Context, in Input) (Result, error) {
	key := fmt.Sprintf("%s/%s", strings.Join(in.Languages, "+"), in.Metadata["tessedit_pageseg_mode"])
	f.calls = append(f.calls, key)
	if err, ok := f.errors[key]; ok {
		return Result{}, err
	}
	return Result{PlainText: f.results[key]}, nil
}

func testImage() *NormalizedImage {
	return &NormalizedImage{Processed: []byte("processed"), Original: []byte("original")}
}

func testRunner(engine Engine) *Runner {
	return NewRunner(engine, DefaultStrategies("hin", "eng"), "eng", logger.GetLogger())
}

func TestRunEarlyExitSkipsRemainingStrategies(t *testing.T) {
	substantial := strings.Repeat("x", 150)
	engine := &fakeEngine{results: map[string]string{
		"hin+eng/6": strings.Repeat("a", 30),
		"hin+eng/4": substantial,
	}}

	got := testRunner(engine).Run(context.Background(), testImage())

	assert.Equal(t, substantial, got)
	// Strategy 2 crossed the 100-char threshold; strategies 3-5 never run.
	assert.Equal(t, []string{"hin+eng/6", "hin+eng/4"}, engine.calls)
}

func TestRunRetriesOriginalOnShortText(t *testing.T) {
	engine := &fakeEngine{results: map[string]string{}}
	// Every strategy returns short text on the processed image; the runner
	// should retry each on the original too (same key, so calls double up).
	engine.results["hin+eng/6"] = "short"

	testRunner(engine).Run(context.Background(), testImage())

	// First two calls belong to strategy 1: processed then original retry.
	require.GreaterOrEqual(t, len(engine.calls), 2)
	assert.Equal(t, "hin+eng/6", engine.calls[0])
	assert.Equal(t, "hin+eng/6", engine.calls[1])
}

func TestRunKeepsLongestResult(t *testing.T) {
	engine := &fakeEngine{results: map[string]string{
		"hin+eng/6": strings.Repeat("a", 25),
		"hin+eng/4": strings.Repeat("b", 40),
		"eng/6":     strings.Repeat("c", 30),
		"hin/6":     strings.Repeat("d", 22),
		"hin+eng/3": strings.Repeat("e", 35),
	}}

	got := testRunner(engine).Run(context.Background(), testImage())

	assert.Equal(t, strings.Repeat("b", 40), got)
}

func TestRunTieKeepsFirstSeen(t *testing.T) {
	first := strings.Repeat("a", 40)
	second := strings.Repeat("b", 40)
	engine := &fakeEngine{results: map[string]string{
		"hin+eng/6": first,
		"hin+eng/4": second,
		"eng/6":     strings.Repeat("c", 21),
		"hin/6":     strings.Repeat("d", 21),
		"hin+eng/3": strings.Repeat("e", 21),
	}}

	got := testRunner(engine).Run(context.Background(), testImage())

	assert.Equal(t, first, got)
}

func TestRunFallbackBarePassWhenMinimal(t *testing.T) {
	engine := &fakeEngine{results: map[string]string{
		// All strategies return near-empty text; the bare eng pass (no PSM)
		// finds something longer.
		"eng/": "recovered text from bare pass",
	}}

	got := testRunner(engine).Run(context.Background(), testImage())

	assert.Equal(t, "recovered text from bare pass", got)
	assert.Equal(t, "eng/", engine.calls[len(engine.calls)-1])
}

func TestRunSentinelOnTotalDegradation(t *testing.T) {
	engine := &fakeEngine{results: map[string]string{}}

	got := testRunner(engine).Run(context.Background(), testImage())

	assert.Equal(t, NoTextSentinel, got)
}

func TestRunSkipsFailingStrategies(t *testing.T) {
	engine := &fakeEngine{
		results: map[string]string{
			"hin+eng/4": strings.Repeat("ok", 60),
		},
		errors: map[string]error{
			"hin+eng/6": fmt.Errorf("tesseract crashed"),
		},
	}

	got := testRunner(engine).Run(context.Background(), testImage())

	assert.Equal(t, strings.Repeat("ok", 60), got)
}

func TestRunMeasuresRunesNotBytes(t *testing.T) {
	// 101 Devanagari characters is over the early-exit threshold even though
	// each is multiple bytes.
	devanagari := strings.Repeat("क", 101)
	engine := &fakeEngine{results: map[string]string{
		"hin+eng/6": devanagari,
	}}

	got := testRunner(engine).Run(context.Background(), testImage())

	assert.Equal(t, devanagari, got)
	assert.Equal(t, []string{"hin+eng/6"}, engine.calls)
}

func TestDefaultStrategiesOrder(t *testing.T) {
	strategies := DefaultStrategies("hin", "eng")

	require.Len(t, strategies, 5)
	assert.Equal(t, []string{"hin", "eng"}, strategies[0].Languages)
	assert.Equal(t, psmUniformBlock, strategies[0].PageSeg)
	assert.Equal(t, psmSingleColumn, strategies[1].PageSeg)
	assert.Equal(t, []string{"eng"}, strategies[2].Languages)
	assert.Equal(t, []string{"hin"}, strategies[3].Languages)
	assert.Equal(t, psmAuto, strategies[4].PageSeg)
}
