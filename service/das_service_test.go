package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/Aashish23092/das-field-extraction/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slipText = `Documento de Arrecadação do Simples Nacional
Número do Documento 07.20.25319.3494827-4
Pagar este documento até 21/11/2025
Valor Total do Documento 3.412,23`

type fakePDF struct {
	text    string
	textErr error
	images  []image.Image
	imgErr  error

	gotPassword string
}

func (f *fakePDF) ExtractText(_ []byte, password string) (string, error) {
	f.gotPassword = password
	return f.text, f.textErr
}

func (f *fakePDF) ExtractImages(_ []byte, _ string) ([]image.Image, error) {
	return f.images, f.imgErr
}

type fakeOCR struct {
	pages []string
	conf  float64
	err   error
	calls int
}

func (f *fakeOCR) ExtractTextAndQuality(_ string) (string, float64, error) {
	if f.err != nil {
		return "", 0, f.err
	}
	page := f.pages[f.calls%len(f.pages)]
	f.calls++
	return page, f.conf, nil
}

type fakeBarcode struct{ digits string }

func (f fakeBarcode) Decode(image.Image) (string, error) {
	if f.digits == "" {
		return "", errors.New("not found")
	}
	return f.digits, nil
}

func blankPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 10, 10))))
	return buf.Bytes()
}

func TestExtractFromFileTextPDF(t *testing.T) {
	pdf := &fakePDF{text: slipText}
	ocr := &fakeOCR{}
	svc := NewDASService(ocr, pdf, nil)

	resp, err := svc.ExtractFromFile(context.Background(), []byte("%PDF"), "das.pdf", "secret")
	require.NoError(t, err)

	assert.Equal(t, "secret", pdf.gotPassword)
	assert.Equal(t, 0, ocr.calls)
	assert.Equal(t, dto.SourcePDFText, resp.Source)
	assert.Equal(t, "07.20.25319.3494827-4", resp.DocumentNumber)
	assert.Equal(t, "2025-11-21", resp.DueDate)
	assert.Equal(t, "", resp.AcceptanceDeadline)
	assert.Equal(t, "3412.23", resp.TotalAmount)
	assert.Equal(t, []string{"acceptance_deadline"}, resp.Missing)
	assert.Equal(t, "das.pdf", resp.Filename)
	assert.Empty(t, resp.RawText)
}

func TestExtractFromFileScannedPDF(t *testing.T) {
	pdf := &fakePDF{
		text:   "  ",
		images: []image.Image{image.NewGray(image.Rect(0, 0, 4, 4)), image.NewGray(image.Rect(0, 0, 4, 4))},
	}
	ocr := &fakeOCR{
		pages: []string{"Número do Documento 07.20.25319.3494827-4", "Pagar até 21/11/2025 Valor Total do Documento 0,00"},
		conf:  50,
	}
	svc := NewDASService(ocr, pdf, nil, WithBarcodeDecoder(fakeBarcode{digits: "85890000034"}), WithRawText(true))

	resp, err := svc.ExtractFromFile(context.Background(), []byte("%PDF"), "scan.PDF", "")
	require.NoError(t, err)

	assert.Equal(t, 2, ocr.calls)
	assert.Equal(t, dto.SourceOCR, resp.Source)
	assert.Equal(t, "07.20.25319.3494827-4", resp.DocumentNumber)
	assert.Equal(t, "2025-11-21", resp.DueDate)
	assert.Equal(t, "0", resp.TotalAmount)
	assert.Equal(t, "85890000034", resp.Barcode)
	assert.Equal(t, 2, resp.Quality.PageCount)
	assert.Contains(t, resp.Quality.Issues, "low_quality_document")
	assert.Contains(t, resp.RawText, "Pagar até 21/11/2025")
}

func TestExtractFromFileScannedPDFWithoutImages(t *testing.T) {
	pdf := &fakePDF{textErr: errors.New("broken xref")}
	svc := NewDASService(&fakeOCR{}, pdf, nil)

	_, err := svc.ExtractFromFile(context.Background(), []byte("%PDF"), "das.pdf", "")
	assert.ErrorIs(t, err, dto.ErrNoTextExtracted)
}

func TestExtractFromFileImage(t *testing.T) {
	ocr := &fakeOCR{pages: []string{slipText}, conf: 91}
	svc := NewDASService(ocr, &fakePDF{}, nil)

	resp, err := svc.ExtractFromFile(context.Background(), blankPNG(t), "das.png", "")
	require.NoError(t, err)

	assert.Equal(t, dto.SourceOCR, resp.Source)
	assert.Equal(t, "3412.23", resp.TotalAmount)
	assert.Equal(t, 91.0, resp.Quality.OcrConfidence)
	assert.Empty(t, resp.Quality.Issues)
	assert.Empty(t, resp.Barcode)
}

func TestExtractFromFileOCRFailure(t *testing.T) {
	svc := NewDASService(&fakeOCR{err: errors.New("tesseract crashed")}, &fakePDF{}, nil)

	_, err := svc.ExtractFromFile(context.Background(), blankPNG(t), "das.png", "")
	assert.ErrorIs(t, err, dto.ErrNoTextExtracted)
}

func TestExtractFromFileRejectsUnknownType(t *testing.T) {
	svc := NewDASService(&fakeOCR{}, &fakePDF{}, nil)

	_, err := svc.ExtractFromFile(context.Background(), []byte("x"), "das.docx", "")
	assert.ErrorIs(t, err, dto.ErrUnsupportedFileType)
}

func TestExtractFromFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewDASService(&fakeOCR{pages: []string{slipText}}, &fakePDF{}, nil)
	_, err := svc.ExtractFromFile(ctx, blankPNG(t), "das.png", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractFromText(t *testing.T) {
	svc := NewDASService(&fakeOCR{}, &fakePDF{}, nil)

	resp, err := svc.ExtractFromText(context.Background(), slipText)
	require.NoError(t, err)
	assert.Equal(t, dto.SourceText, resp.Source)
	assert.Equal(t, "2025-11-21", resp.DueDate)

	_, err = svc.ExtractFromText(context.Background(), " \n ")
	assert.ErrorIs(t, err, dto.ErrEmptyText)
}

func TestExtractFromTextPartialRecord(t *testing.T) {
	svc := NewDASService(&fakeOCR{}, &fakePDF{}, nil)

	resp, err := svc.ExtractFromText(context.Background(), "texto ilegível")
	require.NoError(t, err)
	assert.Equal(t, dto.ExtractedDocument{}, resp.ExtractedDocument)
	assert.Len(t, resp.Missing, 4)
}

func TestExtractFromFileKeepsTextLayerError(t *testing.T) {
	decryptErr := errors.New("failed to decrypt pdf: wrong password")
	pdf := &fakePDF{textErr: decryptErr, imgErr: errors.New("encrypted")}
	svc := NewDASService(&fakeOCR{}, pdf, nil)

	_, err := svc.ExtractFromFile(context.Background(), []byte("%PDF"), "das.pdf", "bad")
	assert.ErrorIs(t, err, dto.ErrNoTextExtracted)
	assert.ErrorIs(t, err, decryptErr)
	assert.Contains(t, err.Error(), "wrong password")
}
