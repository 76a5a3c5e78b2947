package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/Aashish23092/das-field-extraction/dto"
	"github.com/Aashish23092/das-field-extraction/utils/das"
	"go.uber.org/zap"
)

// minTextLayerChars is the shortest text layer treated as a digital PDF;
// anything shorter is OCRed as a scan.
const minTextLayerChars = 20

// OCRClient recognises text in an image file.
type OCRClient interface {
	ExtractTextAndQuality(filePath string) (string, float64, error)
}

// BarcodeDecoder reads the payment barcode from an image.
type BarcodeDecoder interface {
	Decode(img image.Image) (string, error)
}

// DASService acquires text from an uploaded DAS and extracts its fields.
type DASService struct {
	ocr            OCRClient
	pdfProcessor   PDFProcessor
	barcode        BarcodeDecoder
	extractor      *das.Extractor
	includeRawText bool
	logger         *zap.Logger
}

type DASServiceOption func(*DASService)

// WithBarcodeDecoder enables barcode reading on image inputs.
func WithBarcodeDecoder(b BarcodeDecoder) DASServiceOption {
	return func(s *DASService) { s.barcode = b }
}

// WithExtractor replaces the default field extractor.
func WithExtractor(e *das.Extractor) DASServiceOption {
	return func(s *DASService) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithRawText returns the normalized text in every response.
func WithRawText(include bool) DASServiceOption {
	return func(s *DASService) { s.includeRawText = include }
}

func NewDASService(ocr OCRClient, pdfProcessor PDFProcessor, logger *zap.Logger, opts ...DASServiceOption) *DASService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DASService{
		ocr:          ocr,
		pdfProcessor: pdfProcessor,
		extractor:    das.NewExtractor(),
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractFromText runs the field extractor over text the caller already has.
func (s *DASService) ExtractFromText(ctx context.Context, text string) (*dto.DASExtractResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, dto.ErrEmptyText
	}

	quality := dto.DocumentQuality{OcrConfidence: 100, FinalScore: 100, Issues: []string{}}
	return s.buildResponse(text, dto.SourceText, quality, ""), nil
}

// ExtractFromFile acquires the text of a PDF or image DAS and extracts its fields.
func (s *DASService) ExtractFromFile(ctx context.Context, data []byte, filename, password string) (*dto.DASExtractResponse, error) {
	if !dto.IsSupportedFile(filename) {
		return nil, dto.ErrUnsupportedFileType
	}

	log := s.logger.With(zap.String("filename", filename))

	var (
		text    string
		source  string
		barcode string
		quality = dto.DocumentQuality{Issues: []string{}}
		err     error
	)

	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		text, err = s.pdfProcessor.ExtractText(data, password)
		if err != nil {
			log.Warn("pdf text extraction failed", zap.Error(err))
			quality.Issues = append(quality.Issues, "pdf_text_extraction_failed")
		}

		if len(strings.TrimSpace(text)) >= minTextLayerChars {
			source = dto.SourcePDFText
			quality.OcrConfidence = 100
			quality.FinalScore = 100
		} else {
			log.Info("pdf has no usable text layer, running OCR on page images")

			images, imgErr := s.pdfProcessor.ExtractImages(data, password)
			if imgErr != nil || len(images) == 0 {
				log.Warn("failed to extract images from pdf", zap.Error(imgErr))
				quality.Issues = append(quality.Issues, "pdf_image_extraction_failed")
				if err != nil {
					return nil, fmt.Errorf("%w: %s: %w", dto.ErrNoTextExtracted, filename, err)
				}
				return nil, fmt.Errorf("%w: %s", dto.ErrNoTextExtracted, filename)
			}

			text, barcode, err = s.ocrImages(ctx, images, &quality)
			if err != nil {
				return nil, err
			}
			source = dto.SourceOCR
		}
	} else {
		img, _, decErr := image.Decode(bytes.NewReader(data))
		if decErr != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", filename, decErr)
		}

		text, barcode, err = s.ocrImages(ctx, []image.Image{img}, &quality)
		if err != nil {
			return nil, err
		}
		source = dto.SourceOCR
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", dto.ErrNoTextExtracted, filename)
	}

	resp := s.buildResponse(text, source, quality, barcode)
	resp.Filename = filename

	log.Info("das extraction done",
		zap.String("source", source),
		zap.String("document_number", resp.DocumentNumber),
		zap.Strings("missing", resp.Missing))

	return resp, nil
}

// ocrImages OCRs each page and concatenates the text. The first decodable
// barcode is returned as well.
func (s *DASService) ocrImages(ctx context.Context, images []image.Image, quality *dto.DocumentQuality) (string, string, error) {
	var (
		combined   strings.Builder
		barcode    string
		totalConf  float64
		imageCount int
	)

	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}

		if barcode == "" && s.barcode != nil {
			if digits, err := s.barcode.Decode(img); err == nil {
				barcode = digits
			} else {
				s.logger.Debug("no barcode on page", zap.Int("page", i+1), zap.Error(err))
			}
		}

		tempImgFile, err := saveImageToTempFile(img)
		if err != nil {
			s.logger.Warn("failed to save temporary image for OCR", zap.Error(err))
			continue
		}

		pageText, pageConf, err := s.ocr.ExtractTextAndQuality(tempImgFile)
		os.Remove(tempImgFile)
		if err != nil {
			s.logger.Warn("OCR failed for page", zap.Int("page", i+1), zap.Error(err))
			continue
		}

		combined.WriteString(pageText)
		combined.WriteString("\n")
		totalConf += pageConf
		imageCount++
	}

	quality.PageCount = imageCount
	if imageCount == 0 {
		quality.Issues = append(quality.Issues, "ocr_failed")
		return "", barcode, dto.ErrNoTextExtracted
	}

	quality.OcrConfidence = totalConf / float64(imageCount)
	quality.FinalScore = quality.OcrConfidence
	if quality.FinalScore < 60 {
		quality.Issues = append(quality.Issues, "low_quality_document")
	}

	return combined.String(), barcode, nil
}

func (s *DASService) buildResponse(text, source string, quality dto.DocumentQuality, barcode string) *dto.DASExtractResponse {
	doc, normalized := s.extractor.ExtractWithText(text)

	resp := &dto.DASExtractResponse{
		ExtractedDocument: doc,
		Source:            source,
		Barcode:           barcode,
		Missing:           doc.MissingFields(),
		Quality:           quality,
	}
	if s.includeRawText {
		resp.RawText = normalized
	}
	return resp
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "das-img-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
