package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptGenerator writes data-deletion receipts under the files root.
type ReceiptGenerator struct {
	RootDir string // storage root, e.g. "./files"
}

func NewReceiptGenerator(rootDir string) *ReceiptGenerator {
	return &ReceiptGenerator{RootDir: filepath.Clean(rootDir)}
}

// DeletionReceipt renders the audit record for a deletion request and returns
// the absolute path of the written file.
func (g *ReceiptGenerator) DeletionReceipt(handle, email, comment string, at time.Time) (string, error) {
	dir := filepath.Join(g.RootDir, "receipts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipts dir: %w", err)
	}
	absPath := filepath.Join(dir, fmt.Sprintf("deletion_%s_%d.pdf", handle, at.Unix()))

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Data Deletion Request", false)
	doc.SetAuthor("SoccerMASS", false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "DATA DELETION REQUEST", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 7, at.Format("2006-01-02 15:04:05 MST"), "", 1, "C", false, 0, "")
	doc.Ln(4)

	kv := func(key, value string) {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(40, 7, key, "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, 7, value, "", "L", false)
	}
	kv("Handle", handle)
	kv("Email", email)
	kv("Comment", comment)
	doc.Ln(4)

	doc.SetFont("Helvetica", "I", 10)
	doc.MultiCell(0, 6,
		"The account has been marked for deletion. Personal data will be purged by the offline process after the retention window.",
		"", "L", false)

	if err := doc.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}
	return absPath, nil
}
