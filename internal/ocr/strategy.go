package ocr

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Tesseract page segmentation modes used by the strategy list.
const (
	psmAuto         = 3
	psmSingleColumn = 4
	psmUniformBlock = 6
)

// Text-length thresholds steering the strategy loop.
const (
	// shortTextThreshold: below this, retry the strategy on the original
	// (non-normalized) image since normalization sometimes destroys faint text.
	shortTextThreshold = 20
	// substantialTextThreshold: once any result exceeds this, stop trying
	// further strategies.
	substantialTextThreshold = 100
	// minimalTextThreshold: if the best result is still under this after the
	// whole loop, run one bare default-language pass.
	minimalTextThreshold = 10
)

// NoTextSentinel is returned when every strategy degrades to empty output.
// Downstream treats it as insufficient input, not a failure.
const NoTextSentinel = "No text could be extracted"

// Strategy is one recognition configuration, tried in priority order.
type Strategy struct {
	Languages []string
	PageSeg   int
}

// Runner iterates an ordered strategy list against normalized and original
// image variants and keeps the best textual result.
type Runner struct {
	engine      Engine
	strategies  []Strategy
	defaultLang string
	log         *zap.SugaredLogger
}

// DefaultStrategies builds the priority-ordered strategy list for a
// primary/secondary language pair. Dual-language uniform block first since
// bilingual forms are the common case; the auto mode trails as a catch-all.
func DefaultStrategies(primary, secondary string) []Strategy {
	dual := []string{primary, secondary}
	return []Strategy{
		{Languages: dual, PageSeg: psmUniformBlock},
		{Languages: dual, PageSeg: psmSingleColumn},
		{Languages: []string{secondary}, PageSeg: psmUniformBlock},
		{Languages: []string{primary}, PageSeg: psmUniformBlock},
		{Languages: dual, PageSeg: psmAuto},
	}
}

// NewRunner creates a Runner over the given engine and strategy list.
// defaultLang is used for the final bare fallback pass.
func NewRunner(engine Engine, strategies []Strategy, defaultLang string, log *zap.SugaredLogger) *Runner {
	return &Runner{
		engine:      engine,
		strategies:  strategies,
		defaultLang: defaultLang,
		log:         log,
	}
}

// Run tries each strategy in order and returns the best-effort text. It never
// returns an error: individual strategy failures are logged and skipped, and
// total degradation yields the sentinel text.
func (r *Runner) Run(ctx context.Context, img *NormalizedImage) string {
	best := ""

	for i, s := range r.strategies {
		text, err := r.recognize(ctx, img.Processed, s)
		if err != nil {
			r.log.Warnw("Recognition strategy failed",
				"strategy", i, "languages", s.Languages, "psm", s.PageSeg, "error", err)
			continue
		}

		// Normalization sometimes erases faint handwriting; give the
		// untouched image a chance before moving on.
		if runeLen(text) < shortTextThreshold {
			retry, err := r.recognize(ctx, img.Original, s)
			if err == nil && runeLen(retry) > runeLen(text) {
				text = retry
			}
		}

		if runeLen(text) > runeLen(best) {
			best = text
		}

		if runeLen(best) > substantialTextThreshold {
			r.log.Infow("Substantial text found, stopping strategy loop",
				"strategy", i, "length", runeLen(best))
			break
		}
	}

	// Last resort: one bare pass with the default language alone.
	if runeLen(best) < minimalTextThreshold {
		text, err := r.recognize(ctx, img.Original, Strategy{Languages: []string{r.defaultLang}})
		if err != nil {
			r.log.Warnw("Fallback recognition pass failed", "error", err)
		} else if runeLen(text) > runeLen(best) {
			best = text
		}
	}

	if best == "" {
		return NoTextSentinel
	}
	return best
}

func (r *Runner) recognize(ctx context.Context, image []byte, s Strategy) (string, error) {
	opts := []InputOption{WithLanguages(s.Languages...)}
	if s.PageSeg > 0 {
		opts = append(opts, WithPageSegMode(s.PageSeg))
	}
	res, err := r.engine.Recognize(ctx, NewInput(image, opts...))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.PlainText), nil
}

// runeLen measures stripped text length in characters, not bytes, so
// Devanagari output is weighed the same as Latin output.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
