package pms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(cells ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, c := range cells {
		b.WriteString("<td>" + c + "</td>")
	}
	b.WriteString("</tr>")
	return b.String()
}

// fullRow renders a 17-cell data row like the live report table.
func fullRow(overrides map[int]string) string {
	cells := []string{
		"BK001", "OTA12345678", "Nguyen A", "RIVERSIDE - 1N1K VIEW", "1N1K - 450",
		"Agoda", "Đã xác nhận", "01/08/2025", "10/08/2025", "14:00",
		"12/08/2025", "12:00", "500.000 đ", "500.000 đ", "0 đ",
		"x", "note here",
	}
	for i, v := range overrides {
		cells[i] = v
	}
	return row(cells...)
}

func reportHTML(rows, paginate string) string {
	return `<html><body>
<table class="table table-bordered"><tr><th>h</th></tr>` + rows + `</table>
` + paginate + `
</body></html>`
}

func TestParseReportPageRows(t *testing.T) {
	html := reportHTML(fullRow(nil), "")

	page, err := ParseReportPage(html)
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)

	r := page.Rows[0]
	assert.Equal(t, "BK001", r.BookingCode)
	assert.Equal(t, "OTA12345678", r.OTAReference)
	assert.Equal(t, "Nguyen A", r.GuestName)
	assert.Equal(t, "1N1K - 450", r.Room)
	assert.Equal(t, "Agoda", r.Source)
	assert.Equal(t, "Đã xác nhận", r.Status)
	assert.Equal(t, "10/08/2025", r.CheckinDate)
	assert.Equal(t, "12/08/2025", r.CheckoutDate)
	assert.Equal(t, "500.000", r.TotalAmount)
	assert.Equal(t, "0", r.Balance)
	assert.Equal(t, "note here", r.Notes)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.TotalPages)
}

func TestParseReportPageSkipsShortRows(t *testing.T) {
	html := reportHTML(
		row("Tổng cộng", "1.500.000")+fullRow(nil),
		"",
	)

	page, err := ParseReportPage(html)
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "BK001", page.Rows[0].BookingCode)
}

func TestParseReportPageFifteenCellRowHasNoNotes(t *testing.T) {
	cells := strings.Repeat("<td>v</td>", 15)
	html := reportHTML("<tr>"+cells+"</tr>", "")

	page, err := ParseReportPage(html)
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Empty(t, page.Rows[0].Notes)
}

func TestParseReportPageDecodesEntities(t *testing.T) {
	html := reportHTML(fullRow(map[int]string{
		2:  "Smith &amp; Jones",
		12: "1.200.000&nbsp;&#273;",
	}), "")

	page, err := ParseReportPage(html)
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Smith & Jones", page.Rows[0].GuestName)
	assert.Equal(t, "1.200.000", page.Rows[0].TotalAmount)
}

func TestParseReportPagePagination(t *testing.T) {
	paginate := `<div class="dataTables_paginate">
<a class="paginate_button">Previous</a>
<a class="paginate_button">2</a>
<a class="paginate_button">3</a>
<a class="paginate_button current">4</a>
<a class="paginate_button">5</a>
<a class="paginate_button">Next</a>
</div>`
	html := reportHTML(fullRow(nil), paginate)

	page, err := ParseReportPage(html)
	require.NoError(t, err)
	assert.Equal(t, 4, page.CurrentPage)
	assert.Equal(t, 5, page.TotalPages)
}

func TestParseReportPagePaginationTextFallback(t *testing.T) {
	html := reportHTML(fullRow(nil), "<span>Trang 2 / 7</span>")

	page, err := ParseReportPage(html)
	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 7, page.TotalPages)
}

func TestParseReportPageEmpty(t *testing.T) {
	page, err := ParseReportPage("<html><body><p>no table</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.TotalPages)
}

func TestCleanAmount(t *testing.T) {
	assert.Equal(t, "500.000", cleanAmount("500.000 đ"))
	assert.Equal(t, "1,200.50", cleanAmount(" 1,200.50 VND "))
	assert.Equal(t, "-30.000", cleanAmount("-30.000đ"))
	assert.Equal(t, "", cleanAmount("miễn phí"))
}
