// Generates a demo workbook for the xlsx sheet backend, with a tournaments
// tab and one 32-draw bracket tab. Useful for local development without
// Google credentials.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/nvoropaev/bracketeer/internal/draw"
	"github.com/xuri/excelize/v2"
)

const (
	outPath = "demo.xlsx"
	drawTab = "DEMO25"
)

var firstRoundPlayers = []string{
	"Jannik Sinner (1)", "BYE",
	"Tallon Griekspoor", "Flavio Cobolli",
	"Jiri Lehecka", "Alex Michelsen",
	"BYE", "Tommy Paul (7)",
	"Daniil Medvedev (3)", "Fabian Marozsan",
	"Alejandro Tabilo", "Sebastian Korda",
	"Frances Tiafoe", "Matteo Berrettini",
	"BYE", "Andrey Rublev (6)",
	"Alexander Zverev (2)", "BYE",
	"Ugo Humbert", "Jack Draper",
	"Felix Auger-Aliassime", "Arthur Fils",
	"BYE", "Casper Ruud (8)",
	"Holger Rune (4)", "Alexander Bublik",
	"Jordan Thompson", "Lorenzo Musetti",
	"Karen Khachanov", "Alexei Popyrin",
	"BYE", "Taylor Fritz (5)",
}

func main() {
	log.Info("Generating demo workbook...", "path", outPath)

	f := excelize.NewFile()
	defer f.Close()

	if err := writeTournamentsTab(f); err != nil {
		log.Fatalf("Failed to write tournaments tab: %s", err)
	}
	if err := writeDrawTab(f); err != nil {
		log.Fatalf("Failed to write draw tab: %s", err)
	}

	if err := f.SaveAs(outPath); err != nil {
		log.Fatalf("Failed to save workbook: %s", err)
	}
	abs, _ := os.Getwd()
	log.Info("Demo workbook written.", "dir", abs, "file", outPath)
}

func writeTournamentsTab(f *excelize.File) error {
	// The default sheet becomes the tournaments tab.
	if err := f.SetSheetName("Sheet1", "tournaments"); err != nil {
		return err
	}
	rows := [][]string{
		{"id", "name", "dates", "status", "sheet", "starting_round", "type", "start", "close", "tag", "surface", "defending_champion", "description", "matches_count", "month", "image_url"},
		{"1", "Demo Open", "Jan 1-14", "", drawTab, "", "ATP 250", "01.01.2025", "", "", "Hard", "Jannik Sinner", "A demo event", "31", "January", ""},
		{"2", "Future Masters", "Dec 1-14", "", "", "", "ATP 1000", "01.12.2099", "", "", "Clay", "", "Not started yet", "63", "December", ""},
	}
	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			if err := setCell(f, "tournaments", r, c, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeDrawTab(f *excelize.File) error {
	if _, err := f.NewSheet(drawTab); err != nil {
		return err
	}

	// Round headers sit two columns apart, leaving room for set scores.
	headers := []draw.Round{draw.R32, draw.R16, draw.QF, draw.SF, draw.F, draw.Champion}
	for i, round := range headers {
		if err := setCell(f, drawTab, 0, i*2, string(round)); err != nil {
			return err
		}
	}

	rows, err := draw.MatchRowIndices(draw.R32, 32)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if err := setCell(f, drawTab, row, 0, firstRoundPlayers[i*2]); err != nil {
			return err
		}
		if err := setCell(f, drawTab, row+1, 0, firstRoundPlayers[i*2+1]); err != nil {
			return err
		}
	}
	return nil
}

// setCell writes a value at zero-based grid coordinates, matching how the
// sheet source reads tabs back.
func setCell(f *excelize.File, sheet string, row, col int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("bad cell coordinates (%d, %d): %w", row, col, err)
	}
	return f.SetCellValue(sheet, cell, value)
}
