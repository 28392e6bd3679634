package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/macrolens/capture/internal/domain"
)

func TestValidCheckDigit(t *testing.T) {
	testCases := []struct {
		name      string
		candidate domain.BarcodeCandidate
		want      bool
	}{
		{name: "ean13", candidate: domain.BarcodeCandidate{Value: "4006381333931", Symbology: domain.SymbologyEAN13}, want: true},
		{name: "ean13 wrong check digit", candidate: domain.BarcodeCandidate{Value: "4006381333932", Symbology: domain.SymbologyEAN13}, want: false},
		{name: "ean8", candidate: domain.BarcodeCandidate{Value: "96385074", Symbology: domain.SymbologyEAN8}, want: true},
		{name: "upca", candidate: domain.BarcodeCandidate{Value: "036000291452", Symbology: domain.SymbologyUPCA}, want: true},
		{name: "upce", candidate: domain.BarcodeCandidate{Value: "04252614", Symbology: domain.SymbologyUPCE}, want: true},
		{name: "upce wrong number system", candidate: domain.BarcodeCandidate{Value: "54252614", Symbology: domain.SymbologyUPCE}, want: false},
		{name: "letters", candidate: domain.BarcodeCandidate{Value: "40063813339A1", Symbology: domain.SymbologyEAN13}, want: false},
		{name: "wrong length", candidate: domain.BarcodeCandidate{Value: "12345", Symbology: domain.SymbologyEAN13}, want: false},
		{name: "qr is never verified", candidate: domain.BarcodeCandidate{Value: "4006381333931", Symbology: domain.SymbologyQR}, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validCheckDigit(tc.candidate))
		})
	}
}

func TestExpandUPCE(t *testing.T) {
	testCases := []struct {
		code string
		want string
	}{
		{"04252614", "042100005264"},
		{"01234505", "012000003455"},
		{"01234531", "012300000451"},
		{"01234543", "012340000053"},
		{"01234565", "012345000065"},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			got, ok := expandUPCE(tc.code)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBarcodeConfidence(t *testing.T) {
	assert.Equal(t, 1.0, barcodeConfidence(domain.BarcodeCandidate{Value: "4006381333931", Symbology: domain.SymbologyEAN13}))
	assert.Equal(t, 0.85, barcodeConfidence(domain.BarcodeCandidate{Value: "4006381333932", Symbology: domain.SymbologyEAN13}))
}

func TestProductBarcode(t *testing.T) {
	candidates := []domain.BarcodeCandidate{
		{Value: "https://example.com", Symbology: domain.SymbologyQR},
		{Value: "   ", Symbology: domain.SymbologyEAN13},
		{Value: " 96385074 ", Symbology: domain.SymbologyEAN8},
		{Value: "4006381333931", Symbology: domain.SymbologyEAN13},
	}

	got, ok := productBarcode(candidates)
	require.True(t, ok)
	assert.Equal(t, domain.BarcodeCandidate{Value: "96385074", Symbology: domain.SymbologyEAN8}, got)

	_, ok = productBarcode(candidates[:2])
	assert.False(t, ok)
}

// barrier blocks each caller until n callers have arrived
type barrier struct {
	wg sync.WaitGroup
}

func newBarrier(n int) *barrier {
	b := &barrier{}
	b.wg.Add(n)
	return b
}

func (b *barrier) arrive() bool {
	b.wg.Done()
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

type barrierRecognizer struct{ b *barrier }

func (r barrierRecognizer) Recognize(ctx context.Context, img domain.Image) (domain.TextRecognition, error) {
	if !r.b.arrive() {
		return domain.TextRecognition{}, errors.New("decoder never started")
	}
	return domain.TextRecognition{Text: "Calories 230"}, nil
}

type barrierDecoder struct{ b *barrier }

func (d barrierDecoder) Decode(ctx context.Context, img domain.Image) ([]domain.BarcodeCandidate, error) {
	if !d.b.arrive() {
		return nil, errors.New("recognizer never started")
	}
	return []domain.BarcodeCandidate{{Value: "96385074", Symbology: domain.SymbologyEAN8}}, nil
}

func TestRecognizeConcurrently(t *testing.T) {
	ctx := context.Background()
	img := domain.Image{Data: []byte{0xff, 0xd8}, MimeType: "image/jpeg"}

	t.Run("runs both capabilities in parallel", func(t *testing.T) {
		b := newBarrier(2)
		rec := recognizeConcurrently(ctx, barrierRecognizer{b}, barrierDecoder{b}, img, zap.NewNop())

		require.NoError(t, rec.textErr)
		require.NoError(t, rec.barcodeErr)
		assert.Equal(t, "Calories 230", rec.text.Text)
		assert.Len(t, rec.barcodes, 1)
	})

	t.Run("panics become errors", func(t *testing.T) {
		rec := recognizeConcurrently(ctx,
			&mockRecognizer{panicValue: "boom"},
			&mockDecoder{panicValue: "bang"},
			img, zap.NewNop())

		assert.ErrorIs(t, rec.textErr, domain.ErrRecognitionFailed)
		assert.ErrorIs(t, rec.barcodeErr, domain.ErrRecognitionFailed)
	})

	t.Run("one failure does not hide the other result", func(t *testing.T) {
		rec := recognizeConcurrently(ctx,
			&mockRecognizer{err: errors.New("engine missing")},
			&mockDecoder{candidates: []domain.BarcodeCandidate{{Value: "4006381333931", Symbology: domain.SymbologyEAN13}}},
			img, zap.NewNop())

		assert.ErrorIs(t, rec.textErr, domain.ErrRecognitionFailed)
		assert.NoError(t, rec.barcodeErr)
		assert.Len(t, rec.barcodes, 1)
	})

	t.Run("nil decoder and recognizer", func(t *testing.T) {
		rec := recognizeConcurrently(ctx, nil, nil, img, zap.NewNop())

		assert.ErrorIs(t, rec.textErr, domain.ErrRecognitionFailed)
		assert.NoError(t, rec.barcodeErr)
		assert.Empty(t, rec.barcodes)
	})

	t.Run("result counts blocks", func(t *testing.T) {
		rec := recognizeConcurrently(ctx, &mockRecognizer{result: textResult("a\nb\nc")}, nil, img, zap.NewNop())

		result := rec.result()
		assert.Equal(t, "a\nb\nc", result.RawText)
		assert.Equal(t, 3, result.BlockCount)
	})
}
