package client

import (
	"fmt"
	"os"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/logger"
)

// TesseractClient runs OCR over invoice page images. It backs the scanned-PDF
// fallback, so every call assumes the structural text extraction already came
// up empty.
type TesseractClient struct {
	dataPath string
	log      zerolog.Logger
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
		log:      logger.New("tesseract"),
	}
}

// ExtractTextFromImage runs OCR over an image held in memory. The extension
// hints the temp file type so tesseract picks the right decoder.
func (tc *TesseractClient) ExtractTextFromImage(data []byte, ext string) (string, error) {
	if ext == "" {
		ext = ".png"
	}
	tempFile, err := os.CreateTemp("", "invoice-ocr-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	tempFile.Close()

	return tc.ExtractTextFromFile(tempFile.Name())
}

// ExtractTextFromFile runs OCR over an image on disk.
func (tc *TesseractClient) ExtractTextFromFile(path string) (string, error) {
	text, _, err := tc.ExtractTextAndQuality(path)
	return text, err
}

// ExtractTextAndQuality runs OCR and reports the mean word confidence
// tesseract assigned, scaled 0-100.
func (tc *TesseractClient) ExtractTextAndQuality(path string) (string, float64, error) {
	ocr := gosseract.NewClient()
	defer ocr.Close()

	ocr.SetTessdataPrefix(tc.dataPath)
	if err := ocr.SetLanguage("eng"); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := ocr.SetImage(path); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := ocr.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := ocr.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return text, 0, nil
	}

	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	avg := 0.0
	if len(boxes) > 0 {
		avg = total / float64(len(boxes))
	}

	tc.log.Debug().Int("chars", len(text)).Float64("confidence", avg).Msg("ocr pass complete")
	return text, avg, nil
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	tc.log.Info().Msg("tesseract client closed")
}
