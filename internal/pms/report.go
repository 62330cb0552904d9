package pms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReportRow is one decoded row of the reservation report table, fields in the
// order the PMS renders its columns.
type ReportRow struct {
	BookingCode  string
	OTAReference string
	GuestName    string
	Property     string
	Room         string
	Source       string
	Status       string
	BookingDate  string
	CheckinDate  string
	CheckinTime  string
	CheckoutDate string
	CheckoutTime string
	TotalAmount  string
	Paid         string
	Balance      string
	Notes        string
}

// reportColumns is the minimum cell count for a data row. Rows with fewer
// cells are subtotal or filler rows and are skipped, not errors.
const reportColumns = 15

// ParsedPage is the result of parsing one report page.
type ParsedPage struct {
	CurrentPage int
	TotalPages  int
	Rows        []ReportRow
}

var (
	// Plain-text fallback when the structured pagination block is missing.
	paginationTextRe = regexp.MustCompile(`(?i)Trang\s+(\d+)\s*/\s*(\d+)|Page\s+(\d+)\s+of\s+(\d+)`)
	amountJunkRe     = regexp.MustCompile(`[^0-9,.\-]`)
)

// ParseReportPage extracts pagination bounds and booking rows from one
// rendered report page. Malformed markup degrades to fewer rows rather than
// an error; only a document that cannot be tokenized at all fails.
func ParseReportPage(html string) (ParsedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ParsedPage{CurrentPage: 1, TotalPages: 1}, fmt.Errorf("parse report page: %w", err)
	}

	page := ParsedPage{CurrentPage: 1, TotalPages: 1}
	page.CurrentPage, page.TotalPages = parsePagination(doc, html)

	table := doc.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return strings.Contains(class, "table")
	}).First()

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header
		}
		cells := row.Find("td")
		if cells.Length() < reportColumns {
			return
		}

		r := ReportRow{
			BookingCode:  cellText(cells.Eq(0)),
			OTAReference: cellText(cells.Eq(1)),
			GuestName:    cellText(cells.Eq(2)),
			Property:     cellText(cells.Eq(3)),
			Room:         cellText(cells.Eq(4)),
			Source:       cellText(cells.Eq(5)),
			Status:       cellText(cells.Eq(6)),
			BookingDate:  cellText(cells.Eq(7)),
			CheckinDate:  cellText(cells.Eq(8)),
			CheckinTime:  cellText(cells.Eq(9)),
			CheckoutDate: cellText(cells.Eq(10)),
			CheckoutTime: cellText(cells.Eq(11)),
			TotalAmount:  cleanAmount(cellText(cells.Eq(12))),
			Paid:         cleanAmount(cellText(cells.Eq(13))),
			Balance:      cleanAmount(cellText(cells.Eq(14))),
		}
		if cells.Length() > 16 {
			r.Notes = cellText(cells.Eq(16))
		}
		page.Rows = append(page.Rows, r)
	})

	return page, nil
}

// parsePagination reads the DataTables paginate block; totalPages is the max
// of every page-number anchor including the current one. Falls back to the
// older "Trang X / Y" text, then to a single page.
func parsePagination(doc *goquery.Document, html string) (currentPage, totalPages int) {
	currentPage, totalPages = 1, 1

	paginate := doc.Find("div.dataTables_paginate").First()
	if paginate.Length() > 0 {
		found := false
		paginate.Find("a.paginate_button").Each(func(_ int, a *goquery.Selection) {
			n, err := strconv.Atoi(strings.TrimSpace(a.Text()))
			if err != nil {
				return // previous/next arrows
			}
			found = true
			if a.HasClass("current") {
				currentPage = n
			}
			if n > totalPages {
				totalPages = n
			}
		})
		if found {
			return currentPage, totalPages
		}
	}

	if m := paginationTextRe.FindStringSubmatch(html); m != nil {
		cur, total := m[1], m[2]
		if cur == "" {
			cur, total = m[3], m[4]
		}
		if n, err := strconv.Atoi(cur); err == nil && n > 0 {
			currentPage = n
		}
		if n, err := strconv.Atoi(total); err == nil && n > 0 {
			totalPages = n
		}
	}
	return currentPage, totalPages
}

// cellText returns the cell's visible text. goquery decodes entities
// (including numeric references) during parsing; non-breaking spaces are
// normalized to plain spaces to match what operators see.
func cellText(s *goquery.Selection) string {
	text := strings.ReplaceAll(s.Text(), "\u00a0", " ")
	return strings.TrimSpace(text)
}

// cleanAmount strips everything that is not part of a formatted decimal.
func cleanAmount(s string) string {
	return strings.TrimSpace(amountJunkRe.ReplaceAllString(s, ""))
}
