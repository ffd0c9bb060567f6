package inventory

import (
	"context"
	"io"
	"net/url"
	"regexp"
	"strings"

	"stockpilot/infrastructure/backend"
)

// Report is the downloadable AI inventory report as handed back by the
// backend: raw bytes plus the filename negotiated from its headers.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}

var (
	filenameStarRe = regexp.MustCompile(`(?i)filename\*=UTF-8''([^;\n]+)`)
	filenameRe     = regexp.MustCompile(`(?i)filename="?([^;\n"]+)"?`)
)

// GenerateReport POSTs /inventory/ai-report and captures the response as
// a download.
func GenerateReport(ctx context.Context, api *backend.Client) (Report, error) {
	resp, err := api.PostRaw(ctx, "/inventory/ai-report", struct{}{})
	if err != nil {
		return Report{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Report{}, err
	}
	contentType := resp.Header.Get("Content-Type")
	return Report{
		Filename:    ReportFilename(resp.Header.Get("Content-Disposition"), contentType),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// ReportFilename derives a download filename: the Content-Disposition
// header first (RFC 5987 form, then the plain form), otherwise a
// content-type-based extension, defaulting to report.bin.
func ReportFilename(disposition, contentType string) string {
	filename := "report"
	if m := filenameStarRe.FindStringSubmatch(disposition); len(m) == 2 {
		filename = decodeFilename(m[1])
	} else if m := filenameRe.FindStringSubmatch(disposition); len(m) == 2 {
		filename = strings.ReplaceAll(m[1], `"`, "")
	}

	if strings.Contains(filename, ".") {
		return filename
	}
	switch {
	case strings.Contains(contentType, "json"):
		return filename + ".json"
	case strings.Contains(contentType, "pdf"):
		return filename + ".pdf"
	case contentType != "":
		return filename
	default:
		return filename + ".bin"
	}
}

func decodeFilename(v string) string {
	v = strings.ReplaceAll(v, `"`, "")
	if decoded, err := url.QueryUnescape(v); err == nil {
		return decoded
	}
	return v
}
