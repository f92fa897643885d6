package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

var (
	analyseQR          string
	analyseAnnotations string
	analyseImage       string
	analyseJSON        bool
	analyseNoSave      bool
)

var analyseCmd = &cobra.Command{
	Use:     "analyse [text]",
	Aliases: []string{"analyze"},
	Short:   "Classify screenshot text",
	Long: `Classifies recognised screenshot text, splits it into blocks and stores the
result as a capture.

Text is taken from the argument, or from stdin when the argument is "-" or
omitted and stdin is not a terminal. With --image the screenshot is
recognised first; supplied text and QR payload take precedence.

Annotations are a JSON array of entity spans, given inline or as @file:
  [{"start": 12, "end": 22, "kind": "datetime", "timestamp_ms": 1773603000000}]

Examples:
  shotbrain analyse "Hotline: 0901 234 567"
  shotbrain analyse --qr "$(cat qr.txt)" "Chuyển khoản"
  shotbrain analyse --image ~/Pictures/Screenshot_1.png
  pbpaste | shotbrain analyse --no-save --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyse,
}

func init() {
	analyseCmd.Flags().StringVar(&analyseQR, "qr", "", "decoded QR payload")
	analyseCmd.Flags().StringVar(&analyseAnnotations, "annotations", "", "entity annotations as JSON or @file")
	analyseCmd.Flags().StringVarP(&analyseImage, "image", "i", "", "screenshot to recognise")
	analyseCmd.Flags().BoolVar(&analyseJSON, "json", false, "output the capture as JSON")
	analyseCmd.Flags().BoolVar(&analyseNoSave, "no-save", false, "preview without storing")
	rootCmd.AddCommand(analyseCmd)
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	text, err := analyseText(cmd, args)
	if err != nil {
		return err
	}
	annotations, err := parseAnnotations(analyseAnnotations)
	if err != nil {
		return err
	}

	input := domain.CaptureInput{
		Text:        text,
		QRPayload:   analyseQR,
		Annotations: annotations,
	}

	ctx := cmd.Context()
	var capture *domain.Capture
	switch {
	case analyseImage != "" && analyseNoSave:
		return errors.New("--no-save cannot be combined with --image")
	case analyseImage != "":
		capture, err = analysisService.AnalyseImage(ctx, analyseImage, input)
	case analyseNoSave:
		capture, err = analysisService.Preview(ctx, input)
		if capture != nil {
			capture.ID = ""
		}
	default:
		capture, err = analysisService.Analyse(ctx, input)
	}
	if errors.Is(err, domain.ErrNoContent) {
		return errors.New("nothing to analyse: pass text, --qr or --image")
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyseJSON {
		return outputJSON(cmd, capture)
	}
	printCapture(cmd, capture)
	return nil
}

// analyseText returns the text argument, reading stdin when asked to.
func analyseText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}

	in := cmd.InOrStdin()
	explicit := len(args) == 1
	if !explicit && (analyseQR != "" || analyseImage != "" || isTerminal(in)) {
		return "", nil
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// parseAnnotations decodes inline JSON or an @file reference.
func parseAnnotations(value string) ([]domain.Annotation, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	data := []byte(value)
	if strings.HasPrefix(value, "@") {
		var err error
		data, err = os.ReadFile(value[1:])
		if err != nil {
			return nil, fmt.Errorf("reading annotations: %w", err)
		}
	}

	var annotations []domain.Annotation
	if err := json.Unmarshal(data, &annotations); err != nil {
		return nil, fmt.Errorf("parsing annotations: %w", err)
	}
	return annotations, nil
}
