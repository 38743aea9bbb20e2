// Package mapgen renders a player's conquest of the four kingdoms as a
// printable PDF map (old-map style) with a crest per kingdom.
package mapgen

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"clovermud/internal/game"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	crestSize = 90.0
	fontSize  = 9
	titleSize = 18
	labelSize = 8
)

// Kingdom crests sit on a winding road down the page.
var crestPositions = [][2]float64{
	{170, 250},
	{420, 360},
	{170, 480},
	{420, 600},
}

// Generate returns PDF bytes for p's conquest map. Conquered kingdoms are
// crossed with swords and labelled with the sword won there; the current
// target is ringed and marked "You are here".
func Generate(p *game.PlayerState, title string) ([]byte, error) {
	if p == nil {
		return nil, errors.New("mapgen: no player")
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(fmt.Sprintf("%s: conquest of %s", title, p.Name), true)
	pdf.AddPage()

	// Parchment background
	pdf.SetFillColor(245, 235, 210)
	pdf.Rect(0, 0, pageW, pageH, "F")
	drawWavyBorder(pdf)

	pdf.SetDrawColor(80, 50, 30)
	pdf.SetTextColor(80, 50, 30)
	pdf.SetLineWidth(1)

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+10, margin+12)
	pdf.CellFormat(pageW-2*margin-20, 18, "Conquest Map", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", fontSize)
	pdf.SetXY(margin+10, margin+34)
	header := fmt.Sprintf("%s, %s mage, level %d", p.Name, p.Affinity, p.Level)
	if title != "" {
		header = title + " | " + header
	}
	pdf.CellFormat(pageW-2*margin-20, 12, header, "", 0, "L", false, 0, "")

	drawCompassRose(pdf, pageW-margin-55, margin+60)

	// Dashed red road joining the kingdoms in menu order
	pdf.SetDrawColor(180, 40, 40)
	pdf.SetLineWidth(2)
	pdf.SetDashPattern([]float64{10, 6}, 0)
	for i := 0; i < len(crestPositions)-1; i++ {
		a, b := crestPositions[i], crestPositions[i+1]
		pdf.Line(a[0], a[1], b[0], b[1])
	}
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)

	for i, k := range game.Kingdoms {
		x, y := crestPositions[i][0], crestPositions[i][1]
		conquered := p.HasConquered(k)
		current := k == p.Kingdom && !conquered
		drawCrest(pdf, x, y, k, conquered, current)

		pdf.SetFont("Helvetica", "B", labelSize+2)
		pdf.SetTextColor(40, 25, 15)
		pdf.SetXY(x-crestSize/2-10, y+crestSize/2+6)
		pdf.CellFormat(crestSize+20, 12, strings.ToUpper(string(k)), "", 0, "C", false, 0, "")

		pdf.SetFont("Helvetica", "I", labelSize)
		pdf.SetXY(x-crestSize/2-20, y+crestSize/2+18)
		switch {
		case conquered:
			pdf.CellFormat(crestSize+40, 10, string(game.AwardSword(k)), "", 0, "C", false, 0, "")
		case current:
			pdf.CellFormat(crestSize+40, 10, "You are here", "", 0, "C", false, 0, "")
		}
		pdf.SetTextColor(80, 50, 30)
	}

	if game.HasAllSwords(p) {
		drawSeal(pdf, pageW/2, pageH-margin-70)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawWavyBorder draws an organic, tattered black border around the map.
func drawWavyBorder(pdf *gofpdf.Fpdf) {
	pts := wavyRectPoints(margin, margin, pageW-2*margin, pageH-2*margin, 12, 4)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(2)
	pdf.Polygon(pts, "D")
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
}

// wavyRectPoints returns polygon points for a rectangle with sinusoidal wobble on each side.
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + t*w + amp*math.Sin(float64(i)*0.7), Y: y + amp*math.Cos(float64(i)*0.5)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w + amp*math.Sin(float64(i)*0.6), Y: y + t*h + amp*math.Cos(float64(i)*0.4)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w - t*w + amp*math.Sin(float64(i)*0.8), Y: y + h + amp*math.Cos(float64(i)*0.3)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + amp*math.Sin(float64(i)*0.5), Y: y + h - t*h + amp*math.Cos(float64(i)*0.6)})
	}
	return pts
}

// drawCompassRose draws an eight-point compass rose with N/S/E/W labels.
func drawCompassRose(pdf *gofpdf.Fpdf, cx, cy float64) {
	const rad = 22.0
	pdf.SetDrawColor(101, 67, 33)
	pdf.Circle(cx, cy, rad, "D")
	for i := 0; i < 8; i++ {
		angle := float64(i)*math.Pi/4 - math.Pi/2
		if i%2 == 0 {
			pdf.SetDrawColor(180, 40, 40)
			pdf.SetLineWidth(1.5)
		} else {
			pdf.SetDrawColor(180, 140, 60)
			pdf.SetLineWidth(1)
		}
		pdf.Line(cx, cy, cx+rad*math.Cos(angle), cy+rad*math.Sin(angle))
	}
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
	pdf.SetFont("Helvetica", "B", 8)
	for _, lab := range []struct {
		label  string
		dx, dy float64
	}{
		{"N", 0, -rad - 10},
		{"S", 0, rad + 10},
		{"E", rad + 8, 0},
		{"W", -rad - 8, 0},
	} {
		pdf.SetXY(cx+lab.dx-4, cy+lab.dy-3)
		pdf.CellFormat(8, 6, lab.label, "", 0, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", fontSize)
}

// drawCrest draws the kingdom's suit emblem inside a shield circle.
func drawCrest(pdf *gofpdf.Fpdf, x, y float64, k game.Kingdom, conquered, current bool) {
	r := crestSize / 2
	if current {
		pdf.SetDrawColor(80, 50, 20)
		pdf.SetLineWidth(2.5)
		pdf.Circle(x, y, r+6, "D")
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1.2)
	pdf.Circle(x, y, r, "D")

	switch k {
	case game.Clover:
		drawClover(pdf, x, y, r)
	case game.Diamond:
		drawDiamond(pdf, x, y, r)
	case game.Heart:
		drawHeart(pdf, x, y, r)
	case game.Spade:
		drawSpade(pdf, x, y, r)
	}
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
	if conquered {
		drawSwords(pdf, x, y, r)
	}
}

func drawClover(pdf *gofpdf.Fpdf, x, y, r float64) {
	leaf := r * 0.22
	pdf.Circle(x, y-leaf, leaf, "D")
	pdf.Circle(x-leaf, y+leaf*0.3, leaf, "D")
	pdf.Circle(x+leaf, y+leaf*0.3, leaf, "D")
	pdf.Line(x, y+leaf, x, y+r*0.6)
}

func drawDiamond(pdf *gofpdf.Fpdf, x, y, r float64) {
	pdf.Polygon([]gofpdf.PointType{
		{X: x, Y: y - r*0.6},
		{X: x + r*0.4, Y: y},
		{X: x, Y: y + r*0.6},
		{X: x - r*0.4, Y: y},
	}, "D")
}

func drawHeart(pdf *gofpdf.Fpdf, x, y, r float64) {
	lobe := r * 0.22
	pdf.Arc(x-lobe, y-lobe*0.5, lobe, lobe, 0, 180, 360, "D")
	pdf.Arc(x+lobe, y-lobe*0.5, lobe, lobe, 0, 180, 360, "D")
	pdf.Line(x-2*lobe, y-lobe*0.5, x, y+r*0.55)
	pdf.Line(x+2*lobe, y-lobe*0.5, x, y+r*0.55)
}

func drawSpade(pdf *gofpdf.Fpdf, x, y, r float64) {
	lobe := r * 0.22
	pdf.Arc(x-lobe, y+lobe*0.3, lobe, lobe, 0, 0, 180, "D")
	pdf.Arc(x+lobe, y+lobe*0.3, lobe, lobe, 0, 0, 180, "D")
	pdf.Line(x-2*lobe, y+lobe*0.3, x, y-r*0.55)
	pdf.Line(x+2*lobe, y+lobe*0.3, x, y-r*0.55)
	pdf.Line(x, y+lobe*0.3, x, y+r*0.6)
}

// drawSwords crosses two blades over a conquered crest.
func drawSwords(pdf *gofpdf.Fpdf, x, y, r float64) {
	pdf.SetDrawColor(150, 20, 20)
	pdf.SetLineWidth(2.5)
	pdf.Line(x-r*0.75, y-r*0.75, x+r*0.75, y+r*0.75)
	pdf.Line(x-r*0.75, y+r*0.75, x+r*0.75, y-r*0.75)
	pdf.SetLineWidth(1.5)
	// hilts
	pdf.Line(x+r*0.5, y+r*0.65, x+r*0.65, y+r*0.5)
	pdf.Line(x-r*0.5, y+r*0.65, x-r*0.65, y+r*0.5)
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
}

// drawSeal stamps the Wizard King seal at the foot of the map.
func drawSeal(pdf *gofpdf.Fpdf, cx, cy float64) {
	pdf.SetDrawColor(150, 20, 20)
	pdf.SetLineWidth(2)
	pdf.Circle(cx, cy, 40, "D")
	pdf.Circle(cx, cy, 34, "D")
	pdf.SetTextColor(150, 20, 20)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(cx-34, cy-10)
	pdf.CellFormat(68, 10, "WIZARD", "", 0, "C", false, 0, "")
	pdf.SetXY(cx-34, cy)
	pdf.CellFormat(68, 10, "KING", "", 0, "C", false, 0, "")
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
	pdf.SetTextColor(80, 50, 30)
	pdf.SetFont("Helvetica", "", fontSize)
}
