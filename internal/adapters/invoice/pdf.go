// Package invoice renders the downloadable booking invoice.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"vungtau_stay/internal/app"
)

// Render produces an A4 PDF for a finalized booking. The built-in PDF
// fonts only cover Latin-1, so labels use undiacritized Vietnamese, as
// printed receipts commonly do.
func Render(inv app.Invoice) ([]byte, error) {
	qrPNG, err := qrcode.Encode(inv.BookingCode, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts take cp1252 bytes; the translator handles what latin1
	// leaves in place.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "HOA DON DAT PHONG")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Vung Tau Stay - "+inv.IssuedAt)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Ma dat phong: %s", inv.BookingCode))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Khach san", latin1(inv.HotelName)},
		{"Dia chi", latin1(inv.HotelAddress)},
		{"Phong", latin1(inv.RoomName) + " (" + latin1(inv.RoomType) + ")"},
		{"Khach", latin1(inv.GuestName)},
		{"Email", inv.GuestEmail},
		{"Dien thoai", inv.GuestPhone},
		{"Nhan phong", inv.CheckIn},
		{"Tra phong", inv.CheckOut},
		{"So dem", fmt.Sprintf("%d", inv.Nights)},
		{"So khach", fmt.Sprintf("%d", inv.Guests)},
		{"Thanh toan", latin1(inv.PaymentLabel)},
		{"Trang thai", inv.Status},
	}
	if inv.SpecialRequests != "" {
		rows = append(rows, [2]string{"Yeu cau", latin1(inv.SpecialRequests)})
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(45, 8, row[0])
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, tr(row[1]))
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(45, 10, "Tong cong")
	pdf.Cell(0, 10, tr(latin1(inv.TotalDisplay)))
	pdf.Ln(10)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 155, 30, 40, 40, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// latin1 strips characters the core fonts cannot draw.
func latin1(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 0x100 {
			out = append(out, r)
			continue
		}
		if sub, ok := viFold[r]; ok {
			out = append(out, sub)
		} else {
			out = append(out, '?')
		}
	}
	return string(out)
}

// viFold maps the Vietnamese letters outside Latin-1 to their base forms.
var viFold = map[rune]rune{
	'ă': 'a', 'Ă': 'A', 'â': 'a', 'Â': 'A', 'đ': 'd', 'Đ': 'D',
	'ê': 'e', 'Ê': 'E', 'ô': 'o', 'Ô': 'O', 'ơ': 'o', 'Ơ': 'O',
	'ư': 'u', 'Ư': 'U',
	'ả': 'a', 'ạ': 'a',
	'ắ': 'a', 'ằ': 'a', 'ẳ': 'a', 'ẵ': 'a', 'ặ': 'a',
	'ấ': 'a', 'ầ': 'a', 'ẩ': 'a', 'ẫ': 'a', 'ậ': 'a',
	'ẻ': 'e', 'ẽ': 'e', 'ẹ': 'e',
	'ế': 'e', 'ề': 'e', 'ể': 'e', 'ễ': 'e', 'ệ': 'e',
	'ỉ': 'i', 'ĩ': 'i', 'ị': 'i',
	'ỏ': 'o', 'ọ': 'o',
	'ố': 'o', 'ồ': 'o', 'ổ': 'o', 'ỗ': 'o', 'ộ': 'o',
	'ớ': 'o', 'ờ': 'o', 'ở': 'o', 'ỡ': 'o', 'ợ': 'o',
	'ủ': 'u', 'ũ': 'u', 'ụ': 'u',
	'ứ': 'u', 'ừ': 'u', 'ử': 'u', 'ữ': 'u', 'ự': 'u',
	'ỳ': 'y', 'ỷ': 'y', 'ỹ': 'y', 'ỵ': 'y',
}
