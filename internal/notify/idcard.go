// Package notify renders booking ID cards and sends customer email.
package notify

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// Card dimensions in millimetres (ISO/IEC 7810 ID-1).
const (
	cardWidth  = 85.6
	cardHeight = 54.0
)

// IDCardRenderer draws the membership card attached to confirmation
// emails.
type IDCardRenderer struct {
	business string
}

func NewIDCardRenderer(business string) *IDCardRenderer {
	return &IDCardRenderer{business: business}
}

// Render returns a one-page PDF for a booking.  The booking must have a
// seat.
func (r *IDCardRenderer) Render(d model.BookingDetail) ([]byte, error) {
	if d.SeatNumber == nil {
		return nil, fmt.Errorf("booking %d has no seat", d.ID)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: cardWidth, Ht: cardHeight},
	})
	pdf.SetTitle(r.business+" ID card", true)
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// header band
	pdf.SetFillColor(11, 116, 255)
	pdf.Rect(0, 0, cardWidth, 12, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(4, 3)
	pdf.CellFormat(cardWidth-8, 6, tr(r.business), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(4, 3)
	pdf.CellFormat(cardWidth-8, 6, "#"+strconv.FormatUint(d.ID, 10), "", 0, "R", false, 0, "")

	// seat badge
	pdf.SetFillColor(240, 244, 250)
	pdf.Rect(cardWidth-26, 16, 22, 22, "F")
	pdf.SetTextColor(11, 116, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(cardWidth-26, 19)
	pdf.CellFormat(22, 10, strconv.FormatUint(uint64(*d.SeatNumber), 10), "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetXY(cardWidth-26, 30)
	pdf.CellFormat(22, 4, "SEAT", "", 0, "C", false, 0, "")

	pdf.SetTextColor(34, 34, 34)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(4, 15)
	pdf.CellFormat(cardWidth-34, 6, tr(d.CustomerName), "", 1, "L", false, 0, "")

	rows := [][2]string{
		{"Phone", d.CustomerPhone},
		{"Plan", d.DurationType.Label() + ", " + d.SubscriptionPeriod.Label()},
		{"Valid from", d.StartDate.Format(model.DateLayout)},
		{"Valid until", d.ExpiryDate},
	}
	y := 22.0
	for _, row := range rows {
		pdf.SetXY(4, y)
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(16, 4.5, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(cardWidth-50, 4.5, tr(row[1]), "", 0, "L", false, 0, "")
		y += 5
	}
	if d.StartTime != "" {
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetXY(4, cardHeight-7)
		pdf.CellFormat(cardWidth-8, 4, "Session starts "+d.StartTime, "", 0, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render id card: %w", err)
	}
	return buf.Bytes(), nil
}
