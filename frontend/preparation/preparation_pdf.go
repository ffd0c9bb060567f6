package preparation

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"stockpilot/frontend/flights"
)

// renderManifestPDF builds the printable pick manifest for a flight:
// header with a code128 flight tag, then one row per manifest line
// with category, quantity and priority-lot code.
func renderManifestPDF(details flights.FlightDetails, printedAt time.Time) ([]byte, error) {
	if len(details.Products) == 0 {
		return nil, fmt.Errorf("no manifest lines for flight %s", details.FlightNumber)
	}

	tagPNG, err := renderCode128PNG(details.FlightNumber, 1200, 220)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Pick Manifest", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 26)
	pdf.CellFormat(0, 12, "Pick Manifest "+details.FlightNumber, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	departure := details.DepartureRaw
	if !details.DepartureTime.IsZero() {
		departure = details.DepartureTime.Format("02/01/2006 15:04")
	}
	pdf.CellFormat(0, 7, "Destination: "+details.Destination, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Departure: "+departure, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Printed: "+printedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := "flight-tag-" + details.FlightNumber
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(tagPNG))
	pageW, _ := pdf.GetPageSize()
	imgW := 90.0
	imgH := 18.0
	pdf.ImageOptions(imageName, pageW-imgW-10, 12, imgW, imgH, false, opt, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(80, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 8, "Category", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "Lot", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, p := range details.Products {
		pdf.CellFormat(80, 8, p.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 8, p.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", p.CategoryQuantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 8, p.PriorityLot, "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(135, 8, "Total units", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, fmt.Sprintf("%d", details.TotalUnits()), "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 8, "", "1", 1, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var buf bytes.Buffer
	if err := png.Encode(&buf, normalized); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
