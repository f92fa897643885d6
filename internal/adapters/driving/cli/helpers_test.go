package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/services"
	"github.com/custodia-labs/shotbrain/internal/extract"
)

// recordingActions resolves actions like the real service but records
// Perform calls instead of launching handlers.
type recordingActions struct {
	*services.ActionService
	performed []domain.Action
	err       error
}

func (r *recordingActions) Perform(_ context.Context, a domain.Action) error {
	r.performed = append(r.performed, a)
	return r.err
}

// testServices holds the collaborators wired by setupTestServices.
type testServices struct {
	store    *memory.CaptureStore
	actions  *recordingActions
	settings *services.SettingsService
}

// setupTestServices wires real services over in-memory stores and resets
// every command flag once the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	engine, err := extract.New()
	require.NoError(t, err)

	ts := &testServices{
		store:    memory.NewCaptureStore(),
		actions:  &recordingActions{ActionService: services.NewActionService()},
		settings: services.NewSettingsService(memory.NewConfigStore()),
	}
	SetServices(Services{
		Analysis: services.NewAnalysisService(engine, ts.store, services.ImageAdapters{}),
		Capture:  services.NewCaptureService(ts.store, nil),
		Actions:  ts.actions,
		Settings: ts.settings,
	})

	t.Cleanup(func() {
		SetServices(Services{})
		resetFlags()
	})
	return ts
}

// seed stores captures directly, bypassing analysis.
func (ts *testServices) seed(t *testing.T, captures ...domain.Capture) {
	t.Helper()
	for i := range captures {
		require.NoError(t, ts.store.Save(context.Background(), &captures[i]))
	}
}

func resetFlags() {
	analyseQR = ""
	analyseAnnotations = ""
	analyseImage = ""
	analyseJSON = false
	analyseNoSave = false

	captureCategory = ""
	captureQuery = ""
	captureAll = false
	captureLimit = 20
	captureJSON = false

	watchPattern = ""
	tuiWatch = false
	versionJSON = false
	mcpPort = 0
	mcpHost = "localhost"
	verbose = false
}

// execute runs the root command with args and empty stdin.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, strings.NewReader(""), args...)
}

// executeWithInput runs the root command with args, reading stdin from in.
func executeWithInput(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func sampleCaptures() []domain.Capture {
	at := time.Date(2026, 7, 4, 9, 15, 0, 0, time.UTC)
	return []domain.Capture{
		{
			ID: "a1b2c3d4-0000-0000-0000-000000000001", Category: domain.CategoryURL,
			Title: "shopee.vn", RawText: "Săn sale https://shopee.vn/flash",
			ExtractedContent: "https://shopee.vn/flash",
			Blocks:           []domain.TextBlock{{Kind: domain.BlockURLLink, Content: "https://shopee.vn/flash"}},
			CapturedAt:       at, CreatedAt: at,
		},
		{
			ID: "b2c3d4e5-0000-0000-0000-000000000002", Category: domain.CategoryPhone,
			Title: "0912 345 678", RawText: "Hotline 0912 345 678\nGọi ngay",
			ExtractedContent: "0912345678",
			Blocks: []domain.TextBlock{
				{Kind: domain.BlockPhoneNumber, Content: "0912345678"},
				{Kind: domain.BlockText, Content: "Gọi ngay"},
			},
			CapturedAt: at.Add(time.Minute), CreatedAt: at.Add(time.Minute),
		},
		{
			ID: "c3d4e5f6-0000-0000-0000-000000000003", Category: domain.CategoryBank,
			Title: "Vietcombank", RawText: "VCB 0123456789",
			ExtractedContent: "Vietcombank (NGUYEN VAN A)\n0123456789",
			Blocks:           []domain.TextBlock{{Kind: domain.BlockBankInfo, Content: "Vietcombank (NGUYEN VAN A)\n0123456789"}},
			CapturedAt:       at.Add(2 * time.Minute), CreatedAt: at.Add(2 * time.Minute),
		},
	}
}
