package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/capture/internal/domain"
)

const franText = "21-15-9 For Time\nThrusters 95/65 lb\nPull-ups"

func newTestWorkoutService(recognizer domain.TextRecognizer, files *FileService) *WorkoutService {
	return NewWorkoutService(recognizer, nil, nil, files, WorkoutServiceConfig{
		Detection: DefaultDetectionConfig(),
	}, nil)
}

func TestWorkoutProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("camera photo of a whiteboard", func(t *testing.T) {
		svc := newTestWorkoutService(&mockRecognizer{result: textResult(franText)}, nil)

		outcome := svc.Process(ctx, domain.CaptureInput{
			Data:     []byte{0xff, 0xd8},
			Filename: "IMG_0042.jpg",
			MimeType: "image/jpeg",
			Source:   domain.SourceCamera,
		})

		extracted, ok := outcome.(domain.TextExtracted)
		require.True(t, ok, "outcome = %T", outcome)
		assert.Equal(t, domain.InputCameraImage, extracted.Source)
		assert.Equal(t, franText, extracted.RawText)
		assert.Equal(t, []string{"for time", "thrusters", "pull-ups"}, extracted.Patterns)
		assert.False(t, extracted.RecommendAI)
		assert.GreaterOrEqual(t, extracted.Confidence, 0.5)
	})

	t.Run("spreadsheet upload", func(t *testing.T) {
		files := NewFileService(newPlanSpreadsheet(), nil, nil, FileServiceConfig{}, nil)
		recognizer := &mockRecognizer{}
		svc := newTestWorkoutService(recognizer, files)

		outcome := svc.Process(ctx, domain.CaptureInput{
			Data:     []byte("xlsx"),
			Filename: "plan.xlsx",
			Source:   domain.SourceUpload,
		})

		parsed, ok := outcome.(domain.FileParsed)
		require.True(t, ok, "outcome = %T", outcome)
		assert.Equal(t, planRows, parsed.Rows)
		assert.Zero(t, recognizer.calls.Load(), "files never reach text recognition")
	})

	t.Run("unreadable file fails without escalation", func(t *testing.T) {
		files := NewFileService(&mockSpreadsheetDecoder{err: domain.ErrCorruptFile}, nil, nil, FileServiceConfig{}, nil)
		svc := newTestWorkoutService(&mockRecognizer{}, files)

		outcome := svc.Process(ctx, domain.CaptureInput{Data: []byte("x"), Filename: "plan.xlsx"})

		failed, ok := outcome.(domain.ExtractionFailed)
		require.True(t, ok, "outcome = %T", outcome)
		assert.Equal(t, "not enough readable text in file", failed.Message)
	})

	t.Run("unsupported input", func(t *testing.T) {
		svc := newTestWorkoutService(&mockRecognizer{}, nil)

		outcome := svc.Process(ctx, domain.CaptureInput{Data: []byte("x"), Filename: "song.mp3", MimeType: "audio/mpeg"})

		failed, ok := outcome.(domain.ExtractionFailed)
		require.True(t, ok, "outcome = %T", outcome)
		assert.Contains(t, failed.Message, "song.mp3")
	})

	t.Run("file extraction not configured", func(t *testing.T) {
		svc := newTestWorkoutService(&mockRecognizer{}, nil)

		outcome := svc.Process(ctx, domain.CaptureInput{Data: []byte("a,b"), Filename: "plan.csv"})

		failed, ok := outcome.(domain.ExtractionFailed)
		require.True(t, ok, "outcome = %T", outcome)
		assert.Equal(t, "file extraction is not configured", failed.Message)
	})
}

func TestWorkoutAnalyzeImage(t *testing.T) {
	ctx := context.Background()
	gallery := domain.Image{Data: []byte{0x89, 0x50}, MimeType: "image/png", Source: domain.SourceGallery}

	testCases := []struct {
		name       string
		recognizer *mockRecognizer
		wantReason string
	}{
		{
			name:       "recognition failure",
			recognizer: &mockRecognizer{err: errors.New("engine crashed")},
			wantReason: "text recognition failed",
		},
		{
			name:       "recognizer panic",
			recognizer: &mockRecognizer{panicValue: "boom"},
			wantReason: "text recognition failed",
		},
		{
			name:       "no text",
			recognizer: &mockRecognizer{result: textResult("  \n ")},
			wantReason: "no text recognized",
		},
		{
			name:       "not a workout",
			recognizer: &mockRecognizer{result: textResult("Happy birthday Anna")},
			wantReason: "only 0 workout keywords found",
		},
		{
			name:       "too little evidence",
			recognizer: &mockRecognizer{result: textResult("rest\nrow")},
			wantReason: "low confidence",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestWorkoutService(tc.recognizer, nil)

			outcome := svc.AnalyzeImage(ctx, gallery)
			escalated, ok := outcome.(domain.RequiresVisionAI)
			require.True(t, ok, "outcome = %T", outcome)
			assert.True(t, strings.HasPrefix(escalated.Reason, tc.wantReason), "reason = %q", escalated.Reason)
		})
	}

	t.Run("gallery source is kept", func(t *testing.T) {
		svc := newTestWorkoutService(&mockRecognizer{result: textResult(franText)}, nil)

		extracted, ok := svc.AnalyzeImage(ctx, gallery).(domain.TextExtracted)
		require.True(t, ok)
		assert.Equal(t, domain.InputGalleryImage, extracted.Source)
	})
}

func TestWorkoutFindStructuredText(t *testing.T) {
	ctx := context.Background()

	t.Run("trusted text is parsed", func(t *testing.T) {
		svc := newTestWorkoutService(&mockRecognizer{result: textResult(franText)}, nil)

		result := svc.FindStructuredText(ctx, testImage)
		require.NotNil(t, result)
		assert.Equal(t, domain.WodForTime, result.Workout.WodType)
		assert.Len(t, result.Workout.Movements, 2)
	})

	t.Run("untrusted text returns nil", func(t *testing.T) {
		svc := newTestWorkoutService(&mockRecognizer{result: textResult("Happy birthday Anna")}, nil)
		assert.Nil(t, svc.FindStructuredText(ctx, testImage))
	})

	t.Run("recognition failure returns nil", func(t *testing.T) {
		svc := newTestWorkoutService(&mockRecognizer{err: errors.New("engine crashed")}, nil)
		assert.Nil(t, svc.FindStructuredText(ctx, testImage))
	})
}

func TestWorkoutQuickCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("workout text", func(t *testing.T) {
		svc := newTestWorkoutService(&mockRecognizer{result: textResult("AMRAP 12\n10 burpees")}, nil)
		frame := &mockFrame{img: testImage}

		signal := svc.QuickCheck(ctx, frame)
		assert.True(t, signal.HasWodText)
		assert.InDelta(t, 0.4, signal.Confidence, 1e-9)
		assert.EqualValues(t, 1, frame.closed.Load())
	})

	t.Run("single keyword", func(t *testing.T) {
		svc := newTestWorkoutService(&mockRecognizer{result: textResult("Go for a run")}, nil)
		frame := &mockFrame{img: testImage}

		signal := svc.QuickCheck(ctx, frame)
		assert.False(t, signal.HasWodText)
		assert.InDelta(t, 0.2, signal.Confidence, 1e-9)
		assert.EqualValues(t, 1, frame.closed.Load())
	})

	t.Run("recognition failure", func(t *testing.T) {
		svc := newTestWorkoutService(&mockRecognizer{err: errors.New("engine crashed")}, nil)
		frame := &mockFrame{img: testImage}

		assert.Equal(t, domain.WorkoutSignal{}, svc.QuickCheck(ctx, frame))
		assert.EqualValues(t, 1, frame.closed.Load())
	})
}

func TestFileErrorMessage(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{domain.ErrUnsupportedInput, "unsupported file type"},
		{domain.ErrInsufficientText, "not enough readable text in file"},
		{domain.ErrCorruptFile, "file could not be read"},
		{errors.New("disk full"), "disk full"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, fileErrorMessage(tc.err))
	}
}
