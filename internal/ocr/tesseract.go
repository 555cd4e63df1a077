package ocr

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/math-solver/internal/solver"
)

// Whitelist is the set of characters recognised in strict mode.
const Whitelist = "0123456789+-*/=(). "

// PSMSingleBlock is Tesseract page segmentation mode 6: assume a single
// uniform block of text.
const PSMSingleBlock = 6

// Recognition modes accepted by OptionsForMode.
const (
	ModeStrict = "strict"
	ModeLoose  = "loose"
)

// Options configures a single recognition.
type Options struct {
	// Whitelist restricts the characters Tesseract may output.
	// Empty means unrestricted.
	Whitelist string

	// PageSegMode is the Tesseract page segmentation mode.
	// Zero leaves the engine default in place.
	PageSegMode int
}

// StrictOptions returns the options tuned for one line of arithmetic.
func StrictOptions() Options {
	return Options{
		Whitelist:   Whitelist,
		PageSegMode: PSMSingleBlock,
	}
}

// OptionsForMode maps a mode name to its options.
func OptionsForMode(mode string) (Options, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeStrict, "":
		return StrictOptions(), nil
	case ModeLoose:
		return Options{}, nil
	default:
		return Options{}, fmt.Errorf("unknown OCR mode %q (want %s or %s)", mode, ModeStrict, ModeLoose)
	}
}

// Config configures the Tesseract engine.
type Config struct {
	// Language is the Tesseract language code, e.g. "eng".
	Language string

	// TessdataPrefix overrides the directory holding *.traineddata files.
	TessdataPrefix string

	// Options is applied to every recognition.
	Options Options

	// Debug logs word counts and mean confidence of every recognition.
	Debug bool
}

// Tesseract implements solver.Recognizer with a local Tesseract installation.
type Tesseract struct {
	cfg           Config
	clientFactory func() *gosseract.Client
}

var _ solver.Recognizer = (*Tesseract)(nil)

// New creates a Tesseract engine. An empty language defaults to "eng".
func New(cfg Config) *Tesseract {
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Tesseract{cfg: cfg, clientFactory: gosseract.NewClient}
}

// Recognize runs OCR on an encoded image and returns the raw recognised text.
//
// The context is checked before the engine starts; Tesseract itself cannot be
// interrupted once running.
func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := t.clientFactory()
	defer client.Close()

	if err := t.configure(client); err != nil {
		return "", err
	}

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	if t.cfg.Debug {
		words, conf := wordConfidence(client)
		log.Printf("ocr: %d words, mean confidence %.2f, text %q", words, conf, text)
	}

	return text, nil
}

func (t *Tesseract) configure(client *gosseract.Client) error {
	if t.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.cfg.TessdataPrefix); err != nil {
			return fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(t.cfg.Language); err != nil {
		return fmt.Errorf("failed to set language: %w", err)
	}

	if wl := t.cfg.Options.Whitelist; wl != "" {
		if err := client.SetWhitelist(wl); err != nil {
			return fmt.Errorf("failed to set whitelist: %w", err)
		}
	}

	if psm := t.cfg.Options.PageSegMode; psm != 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
			return fmt.Errorf("failed to set page segmentation mode: %w", err)
		}
	}

	return nil
}

// wordConfidence returns the number of recognised words and their mean
// confidence (0.0 to 1.0). Box extraction failures count as zero words.
func wordConfidence(client *gosseract.Client) (int, float64) {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return 0, 0
	}

	var n int
	var sum float64
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		sum += box.Confidence / 100.0
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return n, sum / float64(n)
}

// Info reports whether Tesseract is usable and which version is installed.
func (t *Tesseract) Info() solver.EngineInfo {
	client := t.clientFactory()
	defer client.Close()

	info := solver.EngineInfo{
		Backend:  "gosseract",
		Language: t.cfg.Language,
	}

	if err := t.configure(client); err != nil {
		info.Error = err.Error()
		return info
	}

	version := client.Version()
	if version == "" {
		info.Error = "tesseract version unavailable"
		return info
	}

	info.Available = true
	info.Version = version
	return info
}
