package service

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/client"
	"github.com/spendlens/purchase-parser/logger"
	"github.com/spendlens/purchase-parser/utils"
)

// PDFExtraction is everything one PDF yielded: cleaned text, how it was
// obtained, and any payment hints decoded from QR codes on page images.
type PDFExtraction struct {
	Text    string
	OCRUsed bool
	UPI     *utils.UPIPayment
}

// TextExtractor runs the PDF text fallback chain: structural page text
// first, the raw byte scan when that comes up short, and image OCR as the
// final (config-gated) resort. QR decoding rides on the OCR image pass.
type TextExtractor struct {
	processor PDFProcessor
	tesseract *client.TesseractClient
	enableOCR bool
	log       zerolog.Logger
}

func NewTextExtractor(processor PDFProcessor, tesseract *client.TesseractClient, enableOCR bool) *TextExtractor {
	return &TextExtractor{
		processor: processor,
		tesseract: tesseract,
		enableOCR: enableOCR,
		log:       logger.New("text-extractor"),
	}
}

// ExtractPDF recovers whatever text the PDF bytes hold. It never returns an
// error: a corrupt buffer yields empty text and the caller treats that as
// "no signal".
func (t *TextExtractor) ExtractPDF(data []byte) PDFExtraction {
	var result PDFExtraction

	text, err := t.structuralText(data)
	if err != nil {
		t.log.Debug().Err(err).Msg("structural pdf extraction failed")
	}
	text = utils.CleanText(text)
	if len(text) >= scanMinChars && utils.IsReadableText(text) {
		result.Text = text
		return result
	}

	scanned := utils.CleanText(scanPDFText(data))
	if len(scanned) > len(text) {
		text = scanned
	}
	if len(text) >= scanMinChars && utils.IsReadableText(text) {
		result.Text = text
		return result
	}

	if t.enableOCR && t.tesseract != nil {
		if ocrText, upi := t.ocrPass(data); ocrText != "" || upi != nil {
			result.OCRUsed = ocrText != ""
			result.UPI = upi
			if len(ocrText) > len(text) {
				text = ocrText
			}
		}
	}

	result.Text = text
	return result
}

// structuralText wraps the page-structure pass with a panic guard; the
// reader panics on some malformed cross-reference tables.
func (t *TextExtractor) structuralText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf reader panicked: %v", r)
		}
	}()
	return t.processor.ExtractText(data)
}

// ocrPass extracts page images, OCRs each, and tries a QR decode per image.
// Failures on individual images are skipped.
func (t *TextExtractor) ocrPass(data []byte) (string, *utils.UPIPayment) {
	images, err := t.processor.ExtractImages(data)
	if err != nil || len(images) == 0 {
		t.log.Debug().Err(err).Msg("pdf image extraction failed")
		return "", nil
	}

	var combined strings.Builder
	var upi *utils.UPIPayment

	for _, img := range images {
		if upi == nil {
			upi = decodeUPIQR(img)
		}

		tmp, err := saveImageToTempFile(img)
		if err != nil {
			continue
		}
		pageText, err := t.tesseract.ExtractTextFromFile(tmp)
		os.Remove(tmp)
		if err != nil {
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			combined.WriteString(pageText)
			combined.WriteString("\n")
		}
	}

	return utils.CleanText(combined.String()), upi
}

// decodeUPIQR looks for a UPI payment QR on the image. Most invoice QRs in
// scope are upi://pay deep links carrying payee name and amount.
func decodeUPIQR(img image.Image) *utils.UPIPayment {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return nil
	}
	payment, err := utils.ParseUPIPayload(result.GetText())
	if err != nil {
		return nil
	}
	return payment
}

// saveImageToTempFile writes an image to a temporary PNG so the OCR binary
// can read it.
func saveImageToTempFile(img image.Image) (string, error) {
	tmp, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", err
	}
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	tmp.Close()
	return tmp.Name(), nil
}
