package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/macanangkasa/klondike"
	"github.com/macanangkasa/klondike/deck"
)

// wasteFan is how many waste cards the display fans out, newest first.
const wasteFan = 3

const (
	welcomeText        = "Welcome to Klondike! Type \"h\" for help.\n\n"
	promptText         = "> "
	helpText           = "Commands:\n  d             draw from the stock\n  f <card>      send a card to its foundation, e.g. \"f as\"\n  t <card> <n>  move a card and everything on it onto column n, e.g. \"t 10h 3\"\n  r             restart the same deal\n  n             start a new game with a fresh shuffle\n  q             quit\n"
	rejectedMoveText   = "That move is not allowed.\n"
	unknownCommandText = "I don't know that command. Type \"h\" for help.\n"
	missingCardText    = "Which card? Name one by its short code, e.g. \"as\" or \"10h\".\n"
	missingColumnText  = "Which column? Name a card and a column, e.g. \"t 10h 3\".\n"
	badColumnText      = "Columns are numbered 0 to %d.\n"
	wonText            = "You won in %d moves with a score of %d!\n"
	goodbyeText        = "Thanks for playing!\n"
)

func sendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

func buildBoardDisplayText(game *klondike.Game) string {
	statusText := fmt.Sprintf("Stock: %d cards   Waste: %s   Foundations: %s\n\n",
		game.StockSize(), buildWasteText(game), buildFoundationsText(game))
	scoreText := fmt.Sprintf("\nMoves: %d   Score: %d   Time: %s\n",
		game.Moves(), game.Score(), game.Elapsed().Round(time.Second))

	return statusText + buildTableauText(game) + scoreText
}

func buildWasteText(game *klondike.Game) string {
	waste := game.WasteTop(wasteFan)
	if len(waste) == 0 {
		return "empty"
	}

	codes := []string{}
	for _, card := range waste {
		codes = append(codes, card.Code())
	}
	return strings.Join(codes, " ")
}

func buildFoundationsText(game *klondike.Game) string {
	slots := []string{}
	for slot := 0; slot < klondike.NumFoundations; slot++ {
		top, ok := game.FoundationTop(slot)
		if !ok {
			slots = append(slots, "[--]")
			continue
		}
		slots = append(slots, "["+top.Code()+"]")
	}
	return strings.Join(slots, " ")
}

// buildTableauText lays the columns out side by side, one board row per
// line. Face-down cards show as "##".
func buildTableauText(game *klondike.Game) string {
	columns := make([][]deck.Card, klondike.NumColumns)
	height := 0
	for col := range columns {
		columns[col] = game.TableauColumn(col)
		if len(columns[col]) > height {
			height = len(columns[col])
		}
	}

	var text string
	for col := range columns {
		text += fmt.Sprintf("%5s", fmt.Sprintf("(%d)", col))
	}
	text += "\n"

	for row := 0; row < height; row++ {
		for _, column := range columns {
			switch {
			case row >= len(column):
				text += strings.Repeat(" ", 5)
			case game.FaceUp(column[row]):
				text += fmt.Sprintf("%5s", column[row].Code())
			default:
				text += fmt.Sprintf("%5s", "##")
			}
		}
		text += "\n"
	}

	return text
}
