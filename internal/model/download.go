package model

import "time"

// DownloadTimestampLayout is the layout of DownloadResult.DownloadedAt.
// Microsecond precision, local time, no zone. The fraction is omitted when
// it is zero.
const DownloadTimestampLayout = "2006-01-02 15:04:05.000000"

const downloadTimestampSecondsLayout = "2006-01-02 15:04:05"

// DownloadResult records a spreadsheet that was saved to disk during a crawl.
// Results are accumulated in traversal order and written once, as a row of the
// download summary file.
type DownloadResult struct {
	// Filename is the base name of the saved file, which is also the last
	// path component of the link it was downloaded from.
	Filename string `json:"filename"`

	// Association is the certifying body or equipment group the link was
	// listed under.
	Association string `json:"association"`

	// DownloadedAt is the local time the download finished,
	// formatted with DownloadTimestampLayout.
	DownloadedAt string `json:"downloaded_at"`
}

// NewDownloadResult creates a DownloadResult stamped with t.
func NewDownloadResult(filename, association string, t time.Time) DownloadResult {
	layout := DownloadTimestampLayout
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		layout = downloadTimestampSecondsLayout
	}
	return DownloadResult{
		Filename:     filename,
		Association:  association,
		DownloadedAt: t.Format(layout),
	}
}

// Record returns the result as a summary row: filename, association, timestamp.
func (r DownloadResult) Record() []string {
	return []string{r.Filename, r.Association, r.DownloadedAt}
}
